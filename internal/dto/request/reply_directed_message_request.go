package request

// ReplyDirectedMessageRequest 回复定向消息请求
// 回复主题由原消息派生："Re: " + 原主题，原消息无主题时使用占位主题
// 使用位置:
//   - internal/handler/directed_message_handler.go: Reply
//   - internal/service/directed/service.go: Reply
type ReplyDirectedMessageRequest struct {
	ReplyToUuid string `json:"reply_to_uuid" binding:"required"` // 原消息雪花 ID（字符串形式）
	SenderType  int8   `json:"sender_type" binding:"min=0,max=2"`
	SendId      string `json:"send_id" binding:"required"`
	Content     string `json:"content" binding:"required"`
}
