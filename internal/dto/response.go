package dto

// ── 认证模块响应 ──

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // Access Token 有效期（秒）
	User         UserResponse `json:"user"`
}

// ── 用户模块响应 ──

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	JoinDate   string `json:"join_date,omitempty"`
	AvatarURL  string `json:"avatar_url,omitempty"`
}

// SessionResponse 当前会话信息（GET /auth/me）
type SessionResponse struct {
	IsAuthenticated bool          `json:"is_authenticated"`
	Token           string        `json:"token,omitempty"`
	User            *UserResponse `json:"user,omitempty"`
}

// [自证通过] internal/dto/response.go
