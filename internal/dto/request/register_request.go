package request

// RegisterRequest 用户注册请求
// 使用位置:
//   - internal/handler/user_handler.go: Register
//   - internal/service/user/service.go: Register
type RegisterRequest struct {
	Name      string `json:"name" binding:"required,max=30"`
	Telephone string `json:"telephone" binding:"required,len=11"`
	Email     string `json:"email" binding:"omitempty,email"`
	Password  string `json:"password" binding:"required,min=6"`
	UserType  int8   `json:"user_type" binding:"min=0,max=2"`
}
