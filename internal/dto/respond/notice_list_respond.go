package respond

// NoticeListRespond 学生通知列表项，按创建时间倒序
// 使用位置:
//   - internal/service/notice/service.go: GetNoticeList
type NoticeListRespond struct {
	Uuid       string `json:"uuid"`
	PostedBy   string `json:"posted_by"`
	NoticeType int8   `json:"notice_type"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	IsRead     bool   `json:"is_read"`
	CreatedAt  string `json:"created_at"`
}
