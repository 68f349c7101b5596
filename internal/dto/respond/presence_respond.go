package respond

// PresenceEntryRespond 单个在线用户条目
// Timestamp 是该用户最近一次在线宣告的时间
type PresenceEntryRespond struct {
	Uuid      string `json:"uuid"`
	Name      string `json:"name"`
	UserType  int8   `json:"user_type"`
	Timestamp string `json:"timestamp"`
}

// PresenceRespond 在线状态全量快照响应
// 使用位置:
//   - internal/service/live/presence.go: Snapshot
//   - internal/handler/presence_handler.go: GetOnlineUsers
type PresenceRespond struct {
	Online []PresenceEntryRespond `json:"online"`
	Total  int                    `json:"total"`
}
