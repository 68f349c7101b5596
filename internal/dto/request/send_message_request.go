package request

// SendMessageRequest 会话内发送消息请求
// 使用位置:
//   - internal/handler/conversation_handler.go: SendMessage
//   - internal/service/conversation/service.go: SendMessage
type SendMessageRequest struct {
	ConversationId string `json:"conversation_id" binding:"required"`
	SendId         string `json:"send_id" binding:"required"`
	Content        string `json:"content" binding:"required"`
}
