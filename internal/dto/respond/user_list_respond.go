package respond

// UserListRespond 用户列表项响应
// 使用位置:
//   - internal/service/user/service.go: GetAdminList, GetUserList
type UserListRespond struct {
	Uuid     string `json:"uuid"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
	UserType int8   `json:"user_type"`
	Status   int8   `json:"status"`
}

// UserInfoRespond 用户详情响应
// 使用位置:
//   - internal/service/user/service.go: GetUserInfo
type UserInfoRespond struct {
	Uuid      string `json:"uuid"`
	Name      string `json:"name"`
	Telephone string `json:"telephone"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar"`
	UserType  int8   `json:"user_type"`
	Status    int8   `json:"status"`
	CreatedAt string `json:"created_at"`
}
