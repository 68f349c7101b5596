package respond

// RegisterRespond 注册响应
// 使用位置:
//   - internal/service/user/service.go: Register
type RegisterRespond struct {
	Uuid     string `json:"uuid"`
	Name     string `json:"name"`
	UserType int8   `json:"user_type"`
}
