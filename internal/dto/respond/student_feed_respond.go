package respond

// StudentFeedRespond 学生综合视图快照
// 轮询与实时事件触发的重新拉取共用同一构造路径，保证两种模式结果一致
// 使用位置:
//   - internal/service/feed/service.go: GetStudentFeed
//   - internal/service/live/poller.go
type StudentFeedRespond struct {
	Notices      []NoticeListRespond    `json:"notices"`
	Updates      []ContentUpdateRespond `json:"updates"`
	Inbox        []InboxRespond         `json:"inbox"`
	NoticeBadge  BadgeRespond           `json:"notice_badge"`
	UpdateBadge  BadgeRespond           `json:"update_badge"`
	MessageBadge BadgeRespond           `json:"message_badge"`
	GeneratedAt  string                 `json:"generated_at"`
}
