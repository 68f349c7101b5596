package respond

// LoginRespond 登录响应
// 使用位置:
//   - internal/service/user/service.go: Login
type LoginRespond struct {
	Uuid         string `json:"uuid"`
	Name         string `json:"name"`
	Avatar       string `json:"avatar"`
	UserType     int8   `json:"user_type"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
