package live

import (
	"reflect"
	"testing"

	"campus_msg_server/pkg/enum/user/user_type_enum"
)

func TestTrackIdempotent(t *testing.T) {
	p := NewPresenceTracker()

	if !p.Track("T_teacher", "张老师", user_type_enum.Teacher) {
		t.Fatal("first track should report a change")
	}
	if p.Track("T_teacher", "张老师", user_type_enum.Teacher) {
		t.Fatal("repeated track must be a no-op")
	}
	if !p.IsOnline("T_teacher") {
		t.Fatal("user should be online")
	}
}

func TestTrackRejectsEmptyUuid(t *testing.T) {
	p := NewPresenceTracker()

	if p.Track("", "无名", user_type_enum.Student) {
		t.Fatal("empty uuid must not be tracked")
	}
	if p.Snapshot().Total != 0 {
		t.Fatal("snapshot should be empty")
	}
}

func TestUntrackIdempotent(t *testing.T) {
	p := NewPresenceTracker()
	p.Track("T_teacher", "张老师", user_type_enum.Teacher)

	if !p.Untrack("T_teacher") {
		t.Fatal("untrack should report a change")
	}
	if p.Untrack("T_teacher") {
		t.Fatal("repeated untrack must be a no-op")
	}
	if p.Untrack("S_never_tracked") {
		t.Fatal("untracking an offline user must be a no-op")
	}
}

// 快照条目携带完整身份：uuid、展示名、用户类型、最近宣告时间
func TestSnapshotCarriesIdentity(t *testing.T) {
	p := NewPresenceTracker()
	p.Track("T_teacher", "张老师", user_type_enum.Teacher)

	snapshot := p.Snapshot()
	if snapshot.Total != 1 {
		t.Fatalf("total = %d, want 1", snapshot.Total)
	}
	entry := snapshot.Online[0]
	if entry.Uuid != "T_teacher" {
		t.Fatalf("uuid = %q, want T_teacher", entry.Uuid)
	}
	if entry.Name != "张老师" {
		t.Fatalf("name = %q, want 张老师", entry.Name)
	}
	if entry.UserType != user_type_enum.Teacher {
		t.Fatalf("user_type = %d, want %d", entry.UserType, user_type_enum.Teacher)
	}
	if entry.Timestamp == "" {
		t.Fatal("timestamp should record the announce time")
	}
}

// 重复宣告刷新展示名，在线集合不变
func TestRepeatedTrackRefreshesIdentity(t *testing.T) {
	p := NewPresenceTracker()
	p.Track("T_teacher", "张老师", user_type_enum.Teacher)
	p.Track("T_teacher", "张小明", user_type_enum.Teacher)

	snapshot := p.Snapshot()
	if snapshot.Total != 1 {
		t.Fatalf("total = %d, want 1", snapshot.Total)
	}
	if snapshot.Online[0].Name != "张小明" {
		t.Fatalf("name = %q, want 张小明", snapshot.Online[0].Name)
	}
}

// 快照内容按 uuid 排序，同一状态下稳定
func TestSnapshotSorted(t *testing.T) {
	p := NewPresenceTracker()
	users := map[string]string{
		"T_zoe":     "Zoe",
		"A_admin":   "管理员",
		"S_student": "小王",
		"T_amy":     "Amy",
	}
	for uuid, name := range users {
		p.Track(uuid, name, user_type_enum.Teacher)
	}

	snapshot := p.Snapshot()
	want := []string{"A_admin", "S_student", "T_amy", "T_zoe"}
	got := make([]string, 0, len(snapshot.Online))
	for _, entry := range snapshot.Online {
		got = append(got, entry.Uuid)
		if entry.Name != users[entry.Uuid] {
			t.Fatalf("name for %s = %q, want %q", entry.Uuid, entry.Name, users[entry.Uuid])
		}
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("snapshot order = %v, want %v", got, want)
	}
	if snapshot.Total != 4 {
		t.Fatalf("total = %d, want 4", snapshot.Total)
	}

	if !reflect.DeepEqual(p.Snapshot(), snapshot) {
		t.Fatal("repeated snapshots of the same state must be equal")
	}
}
