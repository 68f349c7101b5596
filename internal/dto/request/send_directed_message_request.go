package request

// SendDirectedMessageRequest 发送定向消息请求
// RecipientKind 取值: "admin" | "teacher" | "student" | "any_admin"
// any_admin 表示广播给任意管理员，此时 RecipientId 必须为空
// 使用位置:
//   - internal/handler/directed_message_handler.go: Send
//   - internal/service/directed/service.go: Send
type SendDirectedMessageRequest struct {
	SenderType    int8   `json:"sender_type" binding:"min=0,max=2"`
	SendId        string `json:"send_id" binding:"required"`
	RecipientKind string `json:"recipient_kind" binding:"required,oneof=admin teacher student any_admin"`
	RecipientId   string `json:"recipient_id"`
	Subject       string `json:"subject" binding:"max=100"`
	Content       string `json:"content" binding:"required"`
}
