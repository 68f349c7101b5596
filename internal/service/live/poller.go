// Package live 实现实时更新通道
// poller.go
// 核心职责：学生端定时轮询
// 学生门户不走 WebSocket 推送，按固定间隔重新拉取综合视图快照；
// 拉取路径与事件触发的重新拉取完全相同，两种模式展示结果一致
package live

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"campus_msg_server/internal/dto/respond"
	"campus_msg_server/pkg/constants"
)

// FeedFetcher 综合视图拉取函数
// 由 FeedService.GetStudentFeed 适配而来，避免 live 包反向依赖业务层
type FeedFetcher func(studentId string) (*respond.StudentFeedRespond, error)

// StudentPoller 学生端轮询器
// Stop 返回后不会再有任何快照回调
type StudentPoller struct {
	studentId  string
	interval   time.Duration
	fetch      FeedFetcher
	onSnapshot func(*respond.StudentFeedRespond)

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewStudentPoller 创建轮询器，间隔固定为 STUDENT_POLL_INTERVAL
func NewStudentPoller(studentId string, fetch FeedFetcher, onSnapshot func(*respond.StudentFeedRespond)) *StudentPoller {
	return &StudentPoller{
		studentId:  studentId,
		interval:   constants.STUDENT_POLL_INTERVAL,
		fetch:      fetch,
		onSnapshot: onSnapshot,
		stop:       make(chan struct{}),
	}
}

// Start 启动轮询
// 启动时立刻拉取一次，之后按固定间隔拉取
func (p *StudentPoller) Start() {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.poll()
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-p.stop:
				return
			case <-ticker.C:
				p.poll()
			}
		}
	}()
}

// poll 拉取一次快照并回调
// 拉取失败只记日志，下个周期重试
func (p *StudentPoller) poll() {
	snapshot, err := p.fetch(p.studentId)
	if err != nil {
		zap.L().Error("轮询综合视图失败", zap.String("student_id", p.studentId), zap.Error(err))
		return
	}
	// 拉取期间可能已经 Stop，停止后不再回调
	select {
	case <-p.stop:
		return
	default:
	}
	p.onSnapshot(snapshot)
}

// Stop 停止轮询
// 返回时轮询 goroutine 已退出，之后不会再有回调
func (p *StudentPoller) Stop() {
	p.stopOnce.Do(func() {
		close(p.stop)
	})
	p.wg.Wait()
}
