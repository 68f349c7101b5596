// Package live 实现实时更新通道
// presence.go
// 核心职责：在线状态跟踪
// 纯内存状态，不落库：进程重启后在线列表从零开始重建，
// 同步方式是全量快照而非增量 diff，客户端收到即覆盖本地状态
package live

import (
	"sort"
	"sync"
	"time"

	"campus_msg_server/internal/dto/respond"
)

// presenceEntry 单个在线用户的身份与最近一次宣告时间
type presenceEntry struct {
	name       string
	userType   int8
	announceAt time.Time
}

// PresenceTracker 在线状态跟踪器
// Track/Untrack 并发安全；连接断开时由 Broker 负责调用 Untrack
type PresenceTracker struct {
	mu     sync.RWMutex
	online map[string]*presenceEntry
}

// NewPresenceTracker 创建空的在线状态跟踪器
func NewPresenceTracker() *PresenceTracker {
	return &PresenceTracker{
		online: make(map[string]*presenceEntry),
	}
}

// Track 记录一次在线宣告，携带展示名和用户类型
// 返回在线集合是否发生变化；已在线用户重复宣告只刷新身份和宣告时间
func (p *PresenceTracker) Track(uuid string, name string, userType int8) bool {
	if uuid == "" {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if entry, ok := p.online[uuid]; ok {
		entry.name = name
		entry.userType = userType
		entry.announceAt = time.Now()
		return false
	}
	p.online[uuid] = &presenceEntry{
		name:       name,
		userType:   userType,
		announceAt: time.Now(),
	}
	return true
}

// Untrack 将用户标记为离线
// 返回状态是否发生变化；对不在线的用户调用是空操作
func (p *PresenceTracker) Untrack(uuid string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.online[uuid]; !ok {
		return false
	}
	delete(p.online, uuid)
	return true
}

// IsOnline 查询用户是否在线
func (p *PresenceTracker) IsOnline(uuid string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.online[uuid]
	return ok
}

// Snapshot 当前在线用户的全量快照
// 按 uuid 排序后返回，同一状态下的快照内容稳定
func (p *PresenceTracker) Snapshot() respond.PresenceRespond {
	p.mu.RLock()
	entries := make([]respond.PresenceEntryRespond, 0, len(p.online))
	for uuid, entry := range p.online {
		entries = append(entries, respond.PresenceEntryRespond{
			Uuid:      uuid,
			Name:      entry.name,
			UserType:  entry.userType,
			Timestamp: entry.announceAt.Format("2006-01-02 15:04:05"),
		})
	}
	p.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Uuid < entries[j].Uuid
	})
	return respond.PresenceRespond{
		Online: entries,
		Total:  len(entries),
	}
}
