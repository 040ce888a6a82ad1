package models

import "time"

// ContestAnalysisCache stores the durable snapshot of a contest's last batch
// analysis. One row per contest, replaced wholesale on every refresh.
type ContestAnalysisCache struct {
	ContestID  int       `gorm:"primaryKey;column:contest_id" json:"contest_id"`
	Payload    string    `gorm:"column:payload;type:longtext" json:"payload"` // JSON encoded entry
	ComputedAt time.Time `gorm:"column:computed_at" json:"computed_at"`
}

// TableName specifies the table for ContestAnalysisCache.
func (ContestAnalysisCache) TableName() string {
	return "contest_analysis_cache"
}
