package respond

// MessageListRespond 会话消息列表项，按创建时间正序
// 使用位置:
//   - internal/service/conversation/service.go: GetMessageList
type MessageListRespond struct {
	Uuid      string `json:"uuid"`
	SendId    string `json:"send_id"`
	Content   string `json:"content"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}
