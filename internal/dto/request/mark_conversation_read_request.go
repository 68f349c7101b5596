package request

// MarkConversationReadRequest 标记会话已读请求
// 使用位置:
//   - internal/handler/conversation_handler.go: MarkConversationRead
//   - internal/service/conversation/service.go: MarkConversationRead
type MarkConversationReadRequest struct {
	ConversationId string `json:"conversation_id" binding:"required"`
	ReaderId       string `json:"reader_id" binding:"required"`
}
