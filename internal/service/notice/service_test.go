package notice

import (
	"database/sql"
	"strconv"
	"sync"
	"testing"
	"time"

	"campus_msg_server/internal/dao/mysql/repository"
	"campus_msg_server/internal/dto/request"
	"campus_msg_server/internal/model"
	"campus_msg_server/internal/service/live"
	"campus_msg_server/pkg/enum/notice/notice_type_enum"
	"campus_msg_server/pkg/enum/user/user_type_enum"
	"campus_msg_server/pkg/errorx"
)

// ==================== 内存版测试替身 ====================

type fakeUserRepo struct {
	users map[string]*model.UserInfo
}

func (f *fakeUserRepo) FindByUuid(uuid string) (*model.UserInfo, error) {
	if u, ok := f.users[uuid]; ok {
		return u, nil
	}
	return nil, errorx.New(errorx.CodeNotFound, "record not found")
}

func (f *fakeUserRepo) FindByTelephone(telephone string) (*model.UserInfo, error) {
	return nil, errorx.New(errorx.CodeNotFound, "record not found")
}

func (f *fakeUserRepo) FindByUuids(uuids []string) ([]model.UserInfo, error) {
	result := make([]model.UserInfo, 0, len(uuids))
	for _, uuid := range uuids {
		if u, ok := f.users[uuid]; ok {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (f *fakeUserRepo) FindByType(userType int8) ([]model.UserInfo, error) { return nil, nil }

func (f *fakeUserRepo) Create(user *model.UserInfo) error {
	f.users[user.Uuid] = user
	return nil
}

type fakeNoticeRepo struct {
	mu      sync.Mutex
	notices map[int64]*model.Notice
}

func newFakeNoticeRepo() *fakeNoticeRepo {
	return &fakeNoticeRepo{notices: make(map[int64]*model.Notice)}
}

func (f *fakeNoticeRepo) Create(notice *model.Notice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	notice.CreatedAt = time.Now()
	f.notices[notice.Uuid] = notice
	return nil
}

func (f *fakeNoticeRepo) FindByUuid(uuid int64) (*model.Notice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n, ok := f.notices[uuid]; ok {
		return n, nil
	}
	return nil, errorx.New(errorx.CodeNotFound, "record not found")
}

func (f *fakeNoticeRepo) FindByStudentId(studentId string) ([]model.Notice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]model.Notice, 0)
	for _, n := range f.notices {
		if n.StudentId == studentId {
			result = append(result, *n)
		}
	}
	return result, nil
}

func (f *fakeNoticeRepo) MarkRead(uuid int64, studentId string, readAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.notices[uuid]
	if !ok || n.StudentId != studentId {
		return errorx.New(errorx.CodeNotFound, "record not found")
	}
	if !n.IsRead {
		n.IsRead = true
		n.ReadAt = sql.NullTime{Time: readAt, Valid: true}
	}
	return nil
}

func (f *fakeNoticeRepo) CountUnread(studentId string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, n := range f.notices {
		if n.StudentId == studentId && !n.IsRead {
			count++
		}
	}
	return count, nil
}

// stubSmsService 记录提醒调用
type stubSmsService struct {
	mu     sync.Mutex
	alerts []string // telephone|title
}

func (s *stubSmsService) SendVerificationCode(telephone string) error { return nil }

func (s *stubSmsService) SendNoticeAlert(telephone string, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, telephone+"|"+title)
	return nil
}

func newTestService(userRepo *fakeUserRepo, noticeRepo *fakeNoticeRepo, smsStub *stubSmsService) *noticeService {
	repos := &repository.Repositories{
		User:   userRepo,
		Notice: noticeRepo,
	}
	return NewNoticeService(repos, live.NopPublisher{}, smsStub)
}

func schoolUsers() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.UserInfo{
		"A_admin":   {Uuid: "A_admin", Name: "Admin", UserType: user_type_enum.Admin},
		"T_teacher": {Uuid: "T_teacher", Name: "Teacher", UserType: user_type_enum.Teacher},
		"S_alice":   {Uuid: "S_alice", Name: "Alice", UserType: user_type_enum.Student, Telephone: "13800000001"},
		"S_bob":     {Uuid: "S_bob", Name: "Bob", UserType: user_type_enum.Student},
	}}
}

// ==================== 测试用例 ====================

// 警告和考勤类通知触发短信提醒，普通和成就类不触发
func TestPostNoticeSmsAlertByType(t *testing.T) {
	tests := []struct {
		name       string
		noticeType int8
		wantAlert  bool
	}{
		{"info", notice_type_enum.Info, false},
		{"warning", notice_type_enum.Warning, true},
		{"attendance", notice_type_enum.Attendance, true},
		{"achievement", notice_type_enum.Achievement, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			smsStub := &stubSmsService{}
			svc := newTestService(schoolUsers(), newFakeNoticeRepo(), smsStub)

			_, err := svc.PostNotice(request.PostNoticeRequest{
				StudentId:  "S_alice",
				PostedBy:   "T_teacher",
				NoticeType: tt.noticeType,
				Title:      "Homework",
				Content:    "Please check the portal",
			})
			if err != nil {
				t.Fatalf("post notice: %v", err)
			}

			gotAlert := len(smsStub.alerts) == 1
			if gotAlert != tt.wantAlert {
				t.Fatalf("sms alert = %v, want %v (alerts: %v)", gotAlert, tt.wantAlert, smsStub.alerts)
			}
			if tt.wantAlert && smsStub.alerts[0] != "13800000001|Homework" {
				t.Fatalf("unexpected alert payload: %q", smsStub.alerts[0])
			}
		})
	}
}

// 学生没留手机号时跳过短信，但通知本身照常落库
func TestPostNoticeSkipsSmsWithoutTelephone(t *testing.T) {
	smsStub := &stubSmsService{}
	noticeRepo := newFakeNoticeRepo()
	svc := newTestService(schoolUsers(), noticeRepo, smsStub)

	uuid, err := svc.PostNotice(request.PostNoticeRequest{
		StudentId:  "S_bob",
		PostedBy:   "T_teacher",
		NoticeType: notice_type_enum.Warning,
		Title:      "Late again",
		Content:    "Second warning this month",
	})
	if err != nil {
		t.Fatalf("post notice: %v", err)
	}
	if len(smsStub.alerts) != 0 {
		t.Fatalf("expected no sms alert, got %v", smsStub.alerts)
	}

	id, _ := strconv.ParseInt(uuid, 10, 64)
	if noticeRepo.notices[id] == nil {
		t.Fatal("notice not stored")
	}
}

func TestPostNoticeRejectsStudentPoster(t *testing.T) {
	svc := newTestService(schoolUsers(), newFakeNoticeRepo(), &stubSmsService{})

	_, err := svc.PostNotice(request.PostNoticeRequest{
		StudentId:  "S_alice",
		PostedBy:   "S_bob",
		NoticeType: notice_type_enum.Info,
		Title:      "hi",
		Content:    "hello",
	})
	if errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("expected invalid param, got %v", err)
	}
}

func TestPostNoticeRejectsNonStudentTarget(t *testing.T) {
	svc := newTestService(schoolUsers(), newFakeNoticeRepo(), &stubSmsService{})

	_, err := svc.PostNotice(request.PostNoticeRequest{
		StudentId:  "T_teacher",
		PostedBy:   "A_admin",
		NoticeType: notice_type_enum.Info,
		Title:      "hi",
		Content:    "hello",
	})
	if errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("expected invalid param, got %v", err)
	}
}

// 只有目标学生本人能标记通知已读；read_at 仅首次写入
func TestMarkNoticeReadOwnerAndIdempotence(t *testing.T) {
	noticeRepo := newFakeNoticeRepo()
	svc := newTestService(schoolUsers(), noticeRepo, &stubSmsService{})

	uuid, err := svc.PostNotice(request.PostNoticeRequest{
		StudentId:  "S_alice",
		PostedBy:   "T_teacher",
		NoticeType: notice_type_enum.Info,
		Title:      "Field trip",
		Content:    "Bring a packed lunch",
	})
	if err != nil {
		t.Fatalf("post notice: %v", err)
	}

	err = svc.MarkNoticeRead(request.MarkNoticeReadRequest{Uuid: uuid, StudentId: "S_bob"})
	if errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("expected invalid param for foreign student, got %v", err)
	}

	ownReq := request.MarkNoticeReadRequest{Uuid: uuid, StudentId: "S_alice"}
	if err := svc.MarkNoticeRead(ownReq); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	id, _ := strconv.ParseInt(uuid, 10, 64)
	firstReadAt := noticeRepo.notices[id].ReadAt

	if err := svc.MarkNoticeRead(ownReq); err != nil {
		t.Fatalf("mark read twice: %v", err)
	}
	if noticeRepo.notices[id].ReadAt != firstReadAt {
		t.Fatal("read_at must not change on repeated reads")
	}

	badge, err := svc.Badge("S_alice")
	if err != nil {
		t.Fatalf("badge: %v", err)
	}
	if badge.Count != 0 {
		t.Fatalf("expected 0 unread, got %d", badge.Count)
	}
}
