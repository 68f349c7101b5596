package request

// LiveCommandRequest WebSocket 客户端指令
// Command 取值:
//   - "subscribe": 订阅 Tables 中各表的变更事件
//   - "track":     加入在线状态跟踪（出现在他人的在线列表中），
//     同时宣告自己的展示名和用户类型
//   - "untrack":   退出在线状态跟踪
//
// 不发送 track 的连接是纯观察者：能收到在线快照但不出现在快照里
// 使用位置:
//   - internal/service/live/conn.go: Read
type LiveCommandRequest struct {
	Command  string   `json:"command"`
	Tables   []string `json:"tables,omitempty"`
	Name     string   `json:"name,omitempty"`
	UserType int8     `json:"user_type,omitempty"`
}
