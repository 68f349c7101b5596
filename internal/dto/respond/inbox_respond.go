package respond

// InboxRespond 定向消息收件箱列表项，按创建时间倒序
// CanReply 为 false 时前端禁用回复入口（如广播消息无明确回复对象）
// 使用位置:
//   - internal/service/directed/service.go: Inbox
type InboxRespond struct {
	Uuid       string `json:"uuid"`
	SenderType int8   `json:"sender_type"`
	SendId     string `json:"send_id"`
	SenderName string `json:"sender_name"`
	Subject    string `json:"subject"`
	Content    string `json:"content"`
	IsRead     bool   `json:"is_read"`
	CanReply   bool   `json:"can_reply"`
	CreatedAt  string `json:"created_at"`
}
