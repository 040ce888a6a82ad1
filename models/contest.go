package models

import "time"

// Contest represents one writing contest that submissions belong to.
type Contest struct {
	ContestID   int        `gorm:"primaryKey;column:contest_id" json:"contest_id"`
	Title       string     `gorm:"column:title" json:"title"`
	Slug        string     `gorm:"column:slug;unique" json:"slug"`
	Description string     `gorm:"column:description" json:"description"`
	Theme       *string    `gorm:"column:theme" json:"theme,omitempty"`
	Status      string     `gorm:"column:status" json:"status"` // draft, open, judging, closed
	OpensAt     *time.Time `gorm:"column:opens_at" json:"opens_at,omitempty"`
	ClosesAt    *time.Time `gorm:"column:closes_at" json:"closes_at,omitempty"`
	CreatedBy   int        `gorm:"column:created_by" json:"created_by"`
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt    *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	Creator *User `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

// TableName specifies the table for Contest.
func (Contest) TableName() string {
	return "contests"
}

// IsOpen reports whether the contest currently accepts submissions.
func (ct *Contest) IsOpen(now time.Time) bool {
	if ct.Status != "open" {
		return false
	}
	if ct.OpensAt != nil && now.Before(*ct.OpensAt) {
		return false
	}
	if ct.ClosesAt != nil && now.After(*ct.ClosesAt) {
		return false
	}
	return true
}
