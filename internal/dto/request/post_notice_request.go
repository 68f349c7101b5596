package request

// PostNoticeRequest 发布通知请求
// 使用位置:
//   - internal/handler/notice_handler.go: PostNotice
//   - internal/service/notice/service.go: PostNotice
type PostNoticeRequest struct {
	StudentId  string `json:"student_id" binding:"required"`
	PostedBy   string `json:"posted_by" binding:"required"`
	NoticeType int8   `json:"notice_type" binding:"min=0,max=3"`
	Title      string `json:"title" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

// MarkNoticeReadRequest 标记通知已读请求
// 使用位置:
//   - internal/handler/notice_handler.go: MarkNoticeRead
//   - internal/service/notice/service.go: MarkNoticeRead
type MarkNoticeReadRequest struct {
	Uuid      string `json:"uuid" binding:"required"`
	StudentId string `json:"student_id" binding:"required"`
}
