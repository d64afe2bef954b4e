package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ── 业务错误码（与前端约定一致）──

const (
	CodeOK            = 0
	CodeParamInvalid  = 10001 // 请求参数校验失败
	CodeUnauthorized  = 10002 // 未认证 / Token 无效
	CodeForbidden     = 10003 // 角色无权访问
	CodeRateLimited   = 10004 // 请求过于频繁
	CodeLoginFailed   = 11001 // 邮箱或密码错误
	CodeUserNotFound  = 11002 // 用户不存在
	CodeNotFound      = 12001 // 资源不存在
	CodeStateConflict = 12002 // 状态机不允许该操作
	CodeInternalError = 50000 // 服务器内部错误
)

// Response 统一响应结构（与 API 文档约定一致）
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ── 成功响应 ──

// OK 200 成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeOK,
		Message: "success",
		Data:    data,
	})
}

// Created 201 创建成功
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    CodeOK,
		Message: "success",
		Data:    data,
	})
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
	})
}

// ── 常见快捷方式 ──

// BadRequest 400
func BadRequest(c *gin.Context, code int, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, code int, message string) {
	Error(c, http.StatusUnauthorized, code, message)
}

// Forbidden 403
func Forbidden(c *gin.Context, code int, message string) {
	Error(c, http.StatusForbidden, code, message)
}

// ForbiddenWithRedirect 403 并附带角色首页路径，供前端路由跳转
func ForbiddenWithRedirect(c *gin.Context, code int, message, redirect string) {
	c.JSON(http.StatusForbidden, Response{
		Code:    code,
		Message: message,
		Data:    map[string]string{"redirect": redirect},
	})
}

// NotFound 404
func NotFound(c *gin.Context, code int, message string) {
	Error(c, http.StatusNotFound, code, message)
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, CodeInternalError, "服务器内部错误")
}

// [自证通过] pkg/response/response.go
