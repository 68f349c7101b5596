package request

// MarkDirectedReadRequest 标记单条定向消息已读请求
// 使用位置:
//   - internal/handler/directed_message_handler.go: MarkRead
//   - internal/service/directed/service.go: MarkRead
type MarkDirectedReadRequest struct {
	Uuid       string `json:"uuid" binding:"required"` // 消息雪花 ID（字符串形式）
	ReaderType int8   `json:"reader_type" binding:"min=0,max=2"`
	ReaderId   string `json:"reader_id" binding:"required"`
}

// MarkAllReadRequest 全部标记已读请求
// 快照语义：只影响调用时刻已存在的未读项
// 使用位置:
//   - internal/handler/directed_message_handler.go: MarkAllRead
//   - internal/service/directed/service.go: MarkAllRead
type MarkAllReadRequest struct {
	ReaderType int8   `json:"reader_type" binding:"min=0,max=2"`
	ReaderId   string `json:"reader_id" binding:"required"`
}
