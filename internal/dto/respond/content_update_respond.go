package respond

// ContentUpdateRespond 学生内容更新列表项，按创建时间倒序
// 使用位置:
//   - internal/service/feed/service.go: GetUpdateList
type ContentUpdateRespond struct {
	Uuid        string `json:"uuid"`
	UpdateType  int8   `json:"update_type"`
	Title       string `json:"title"`
	ReferenceId string `json:"reference_id"`
	IsRead      bool   `json:"is_read"`
	CreatedAt   string `json:"created_at"`
}
