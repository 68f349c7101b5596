package request

// OpenConversationRequest 打开（查找或创建）会话请求
// 参与者顺序无关，Service 层按字典序规范化
// 使用位置:
//   - internal/handler/conversation_handler.go: OpenConversation
//   - internal/service/conversation/service.go: OpenConversation
type OpenConversationRequest struct {
	OwnerId  string `json:"owner_id" binding:"required"`
	TargetId string `json:"target_id" binding:"required"`
}
