package respond

// ConversationRespond 会话详情响应
// 使用位置:
//   - internal/service/conversation/service.go: OpenConversation
type ConversationRespond struct {
	ConversationId string `json:"conversation_id"`
	ParticipantA   string `json:"participant_a"`
	ParticipantB   string `json:"participant_b"`
	LastMessage    string `json:"last_message"`
	LastMessageAt  string `json:"last_message_at"`
}

// ConversationListRespond 会话列表项响应，按最近消息时间倒序
// 使用位置:
//   - internal/service/conversation/service.go: GetConversationList
type ConversationListRespond struct {
	ConversationId string `json:"conversation_id"`
	OtherId        string `json:"other_id"`
	OtherName      string `json:"other_name"`
	OtherAvatar    string `json:"other_avatar"`
	LastMessage    string `json:"last_message"`
	LastMessageAt  string `json:"last_message_at"`
	UnreadCount    int64  `json:"unread_count"`
}
