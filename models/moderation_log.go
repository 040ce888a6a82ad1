package models

import "time"

// Moderation log action kinds.
const (
	ModerationActionAutoAnalyzed = "auto_analyzed"
	ModerationActionManualReview = "manual_review"
)

// ModerationLog is the append-only audit record for moderation actions.
// Rows are created once per status-changing event and never updated.
type ModerationLog struct {
	LogID          int       `gorm:"primaryKey;column:log_id" json:"log_id"`
	SubmissionID   int       `gorm:"column:submission_id;index" json:"submission_id"`
	Action         string    `gorm:"column:action" json:"action"`
	PreviousStatus string    `gorm:"column:previous_status" json:"previous_status"`
	NewStatus      string    `gorm:"column:new_status" json:"new_status"`
	AdminID        *int      `gorm:"column:admin_id" json:"admin_id"` // nil for automatic actions
	Reason         string    `gorm:"column:reason" json:"reason"`
	Details        string    `gorm:"column:details;type:text" json:"details"` // JSON blob
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName specifies the table for ModerationLog.
func (ModerationLog) TableName() string {
	return "moderation_logs"
}
