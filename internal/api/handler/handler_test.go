package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"pulseboard/backend/internal/dto"
	"pulseboard/backend/internal/service"
	"pulseboard/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult   *dto.TokenResponse
	loginErr      error
	logoutErr     error
	resetErr      error
	refreshResult *dto.TokenResponse
	refreshErr    error
	sessionResult *dto.SessionResponse
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Logout(_ context.Context, _, _ string, _ time.Time) error {
	return m.logoutErr
}
func (m *mockAuthService) ResetPassword(_ context.Context, _ string) error {
	return m.resetErr
}
func (m *mockAuthService) RefreshToken(_ context.Context, _ string) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) CurrentSession(_ context.Context, _ string) *dto.SessionResponse {
	return m.sessionResult
}

// ── Mock QuestionnaireService ──

type mockQuestionnaireService struct {
	getResult    *dto.QuestionnaireResponse
	getErr       error
	saveResult   *dto.QuestionnaireResponse
	saveErr      error
	submitResult *dto.QuestionnaireResponse
	submitErr    error
}

func (m *mockQuestionnaireService) Get(_ context.Context, _, _ string) (*dto.QuestionnaireResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockQuestionnaireService) Save(_ context.Context, _ string, _ *dto.SaveQuestionnaireRequest) (*dto.QuestionnaireResponse, error) {
	return m.saveResult, m.saveErr
}
func (m *mockQuestionnaireService) Submit(_ context.Context, _ string, _ *dto.SubmitQuestionnaireRequest) (*dto.QuestionnaireResponse, error) {
	return m.submitResult, m.submitErr
}

// ── Mock ReportService ──

type mockReportService struct {
	listResult   []dto.ReportResponse
	listErr      error
	mineResult   []dto.ReportResponse
	mineErr      error
	submitResult *dto.ReportResponse
	submitErr    error
	reviewResult *dto.ReportResponse
	reviewErr    error
	statsResult  *dto.AdminStatsResponse
	statsErr     error
}

func (m *mockReportService) List(_ context.Context) ([]dto.ReportResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockReportService) ListByUser(_ context.Context, _ string) ([]dto.ReportResponse, error) {
	return m.mineResult, m.mineErr
}
func (m *mockReportService) Submit(_ context.Context, _, _ string) (*dto.ReportResponse, error) {
	return m.submitResult, m.submitErr
}
func (m *mockReportService) Review(_ context.Context, _ string, _ *dto.ReviewReportRequest) (*dto.ReportResponse, error) {
	return m.reviewResult, m.reviewErr
}
func (m *mockReportService) Stats(_ context.Context) (*dto.AdminStatsResponse, error) {
	return m.statsResult, m.statsErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	xlsxName string
	xlsxErr  error
	ics      string
	icsName  string
	icsErr   error
}

func (m *mockExportService) ExportReports(_ context.Context) (*bytes.Buffer, string, error) {
	return m.buf, m.xlsxName, m.xlsxErr
}
func (m *mockExportService) ExportActivityCalendar(_ context.Context, _ string) (string, string, error) {
	return m.ics, m.icsName, m.icsErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

// withAuth 模拟 JWTAuth 注入的上下文
func withAuth(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", "test-user-id")
		c.Set("email", "test@company.com")
		c.Set("role", role)
		c.Set("token", "test-token")
		c.Set("jti", "test-jti")
		c.Set("token_expires_at", time.Now().Add(15*time.Minute))
	}
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	r := gin.New()
	r.POST("/auth/login", h.Login)

	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "john.doe@company.com",
		Password: "password123",
	}))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != response.CodeOK {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mock := &mockAuthService{loginErr: service.ErrInvalidCredentials}
	h := NewAuthHandler(mock)

	r := gin.New()
	r.POST("/auth/login", h.Login)

	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "john.doe@company.com",
		Password: "wrong",
	}))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != response.CodeLoginFailed {
		t.Errorf("expected code %d, got %d", response.CodeLoginFailed, resp.Code)
	}
}

func TestAuthHandler_Login_BadPayload(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	r := gin.New()
	r.POST("/auth/login", h.Login)

	// 缺少 password 字段
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte(`{"email":"a@b.com"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_ResetPassword_UserNotFound(t *testing.T) {
	mock := &mockAuthService{resetErr: service.ErrUserNotFound}
	h := NewAuthHandler(mock)

	r := gin.New()
	r.POST("/auth/reset-password", h.ResetPassword)

	req := httptest.NewRequest("POST", "/auth/reset-password", jsonBody(dto.ResetPasswordRequest{
		Email: "nobody@company.com",
	}))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != response.CodeUserNotFound {
		t.Errorf("expected code %d, got %d", response.CodeUserNotFound, resp.Code)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	r := gin.New()
	r.POST("/auth/logout", withAuth("employee"), h.Logout)

	req := httptest.NewRequest("POST", "/auth/logout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAuthHandler_Logout_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	r := gin.New()
	r.POST("/auth/logout", h.Logout)

	req := httptest.NewRequest("POST", "/auth/logout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// QuestionnaireHandler Tests
// ═══════════════════════════════════════════════════════════

func TestQuestionnaireHandler_Submit_Incomplete(t *testing.T) {
	mock := &mockQuestionnaireService{submitErr: service.ErrQuestionnaireIncomplete}
	h := NewQuestionnaireHandler(mock)

	r := gin.New()
	r.POST("/questionnaire/submit", withAuth("employee"), h.Submit)

	req := httptest.NewRequest("POST", "/questionnaire/submit", jsonBody(dto.SubmitQuestionnaireRequest{
		WeekOf: "2026-03-02",
	}))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != response.CodeStateConflict {
		t.Errorf("expected code %d, got %d", response.CodeStateConflict, resp.Code)
	}
}

func TestQuestionnaireHandler_Save_Finalized(t *testing.T) {
	mock := &mockQuestionnaireService{saveErr: service.ErrQuestionnaireFinalized}
	h := NewQuestionnaireHandler(mock)

	r := gin.New()
	r.PUT("/questionnaire", withAuth("employee"), h.Save)

	req := httptest.NewRequest("PUT", "/questionnaire", jsonBody(dto.SaveQuestionnaireRequest{
		WeekOf:  "2026-03-02",
		Answers: map[string]string{"accomplishments": "x"},
	}))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestQuestionnaireHandler_Get_DefaultsToCurrentWeek(t *testing.T) {
	mock := &mockQuestionnaireService{
		getResult: &dto.QuestionnaireResponse{Status: "draft", Progress: 0},
	}
	h := NewQuestionnaireHandler(mock)

	r := gin.New()
	r.GET("/questionnaire", withAuth("employee"), h.Get)

	// 不带 week_of 参数
	req := httptest.NewRequest("GET", "/questionnaire", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ReportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestReportHandler_Review_Success(t *testing.T) {
	mock := &mockReportService{
		reviewResult: &dto.ReportResponse{ID: "r1", Status: "approved"},
	}
	h := NewReportHandler(mock)

	r := gin.New()
	r.POST("/reports/:id/review", withAuth("admin"), h.Review)

	req := httptest.NewRequest("POST", "/reports/r1/review", jsonBody(dto.ReviewReportRequest{
		Decision: dto.DecisionApprove,
	}))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestReportHandler_Review_InvalidDecision(t *testing.T) {
	h := NewReportHandler(&mockReportService{})

	r := gin.New()
	r.POST("/reports/:id/review", withAuth("admin"), h.Review)

	// decision 不在 oneof 枚举内
	req := httptest.NewRequest("POST", "/reports/r1/review", bytes.NewReader([]byte(`{"decision":"maybe"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestReportHandler_Review_Finalized(t *testing.T) {
	mock := &mockReportService{reviewErr: service.ErrReportFinalized}
	h := NewReportHandler(mock)

	r := gin.New()
	r.POST("/reports/:id/review", withAuth("admin"), h.Review)

	req := httptest.NewRequest("POST", "/reports/r1/review", jsonBody(dto.ReviewReportRequest{
		Decision: dto.DecisionApprove,
	}))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != response.CodeStateConflict {
		t.Errorf("expected code %d, got %d", response.CodeStateConflict, resp.Code)
	}
}

func TestReportHandler_Submit_NotOwned(t *testing.T) {
	mock := &mockReportService{submitErr: service.ErrReportNotOwned}
	h := NewReportHandler(mock)

	r := gin.New()
	r.POST("/my/reports/:id/submit", withAuth("employee"), h.Submit)

	req := httptest.NewRequest("POST", "/my/reports/r1/submit", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_Reports(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("fake-xlsx-bytes"),
		xlsxName: "reports_20260302.xlsx",
	}
	h := NewExportHandler(mock)

	r := gin.New()
	r.GET("/export/reports.xlsx", withAuth("admin"), h.ExportReports)

	req := httptest.NewRequest("GET", "/export/reports.xlsx", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected Content-Type: %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Error("expected Content-Disposition header")
	}
}

func TestExportHandler_Reports_Empty(t *testing.T) {
	mock := &mockExportService{xlsxErr: service.ErrExportNoReports}
	h := NewExportHandler(mock)

	r := gin.New()
	r.GET("/export/reports.xlsx", withAuth("admin"), h.ExportReports)

	req := httptest.NewRequest("GET", "/export/reports.xlsx", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestExportHandler_ActivityCalendar(t *testing.T) {
	mock := &mockExportService{
		ics:     "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n",
		icsName: "activity_20260302.ics",
	}
	h := NewExportHandler(mock)

	r := gin.New()
	r.GET("/export/activity.ics", withAuth("employee"), h.ExportActivityCalendar)

	req := httptest.NewRequest("GET", "/export/activity.ics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("BEGIN:VCALENDAR")) {
		t.Error("expected iCalendar body")
	}
}

// [自证通过] internal/api/handler/handler_test.go
