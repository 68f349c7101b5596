package live

import (
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"campus_msg_server/internal/dto/respond"
	"campus_msg_server/pkg/constants"
)

// countingFetcher 记录拉取次数并返回可区分的快照
type countingFetcher struct {
	calls atomic.Int64
}

func (f *countingFetcher) fetch(studentId string) (*respond.StudentFeedRespond, error) {
	n := f.calls.Add(1)
	return &respond.StudentFeedRespond{
		NoticeBadge: respond.NewBadgeRespond(n),
		GeneratedAt: time.Now().Format("2006-01-02 15:04:05"),
	}, nil
}

// snapshotRecorder 收集回调到的快照
type snapshotRecorder struct {
	mu        sync.Mutex
	snapshots []*respond.StudentFeedRespond
}

func (r *snapshotRecorder) record(snapshot *respond.StudentFeedRespond) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, snapshot)
}

func (r *snapshotRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snapshots)
}

func TestPollerUsesConfiguredInterval(t *testing.T) {
	p := NewStudentPoller("S_alice", (&countingFetcher{}).fetch, func(*respond.StudentFeedRespond) {})
	if p.interval != constants.STUDENT_POLL_INTERVAL {
		t.Fatalf("interval = %v, want %v", p.interval, constants.STUDENT_POLL_INTERVAL)
	}
}

// 启动时立刻拉取一次，之后按间隔重复
func TestPollerFetchesImmediatelyThenPeriodically(t *testing.T) {
	fetcher := &countingFetcher{}
	recorder := &snapshotRecorder{}
	p := NewStudentPoller("S_alice", fetcher.fetch, recorder.record)
	p.interval = 5 * time.Millisecond

	p.Start()
	defer p.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for recorder.count() < 3 && time.Now().Before(deadline) {
		time.Sleep(2 * time.Millisecond)
	}
	if recorder.count() < 3 {
		t.Fatalf("expected at least 3 snapshots, got %d", recorder.count())
	}
}

// Stop 返回后不再有任何回调
func TestPollerStopPreventsFurtherCallbacks(t *testing.T) {
	fetcher := &countingFetcher{}
	recorder := &snapshotRecorder{}
	p := NewStudentPoller("S_alice", fetcher.fetch, recorder.record)
	p.interval = time.Millisecond

	p.Start()
	deadline := time.Now().Add(2 * time.Second)
	for recorder.count() < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	p.Stop()
	countAtStop := recorder.count()

	time.Sleep(20 * time.Millisecond)
	if recorder.count() != countAtStop {
		t.Fatalf("callbacks after Stop: had %d, now %d", countAtStop, recorder.count())
	}

	// 重复 Stop 安全
	p.Stop()
}

// 轮询路径与直接调用拉取函数产出同构的快照
func TestPollerSnapshotMatchesDirectFetch(t *testing.T) {
	feed := &respond.StudentFeedRespond{
		NoticeBadge:  respond.NewBadgeRespond(2),
		UpdateBadge:  respond.NewBadgeRespond(0),
		MessageBadge: respond.NewBadgeRespond(11),
		GeneratedAt:  "2026-08-28 10:00:00",
	}
	fetch := func(studentId string) (*respond.StudentFeedRespond, error) {
		copied := *feed
		return &copied, nil
	}

	recorder := &snapshotRecorder{}
	p := NewStudentPoller("S_alice", fetch, recorder.record)
	p.interval = time.Hour // 只靠启动时的首次拉取

	p.Start()
	deadline := time.Now().Add(2 * time.Second)
	for recorder.count() < 1 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	p.Stop()

	if recorder.count() < 1 {
		t.Fatal("no snapshot delivered")
	}
	direct, err := fetch("S_alice")
	if err != nil {
		t.Fatalf("direct fetch: %v", err)
	}
	got := recorder.snapshots[0]
	if !reflect.DeepEqual(got, direct) {
		t.Fatalf("polled snapshot %+v differs from direct fetch %+v", got, direct)
	}
}
