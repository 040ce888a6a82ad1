package models

import (
	"strings"
	"time"
)

// Submission represents one user-authored entry under a contest.
type Submission struct {
	SubmissionID int        `gorm:"primaryKey;column:submission_id" json:"submission_id"`
	ContestID    int        `gorm:"column:contest_id;index" json:"contest_id"`
	UserID       int        `gorm:"column:user_id;index" json:"user_id"`
	Title        string     `gorm:"column:title" json:"title"`
	Body         string     `gorm:"column:body;type:longtext" json:"body"`
	IsMature     bool       `gorm:"column:is_mature" json:"is_mature"`
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Moderation fields written by the analysis pipeline and the review workflow.
	ModerationScore      int        `gorm:"column:moderation_score" json:"moderation_score"`
	ModerationFlags      string     `gorm:"column:moderation_flags" json:"moderation_flags"` // comma separated
	ModerationStatus     string     `gorm:"column:moderation_status;default:pending" json:"moderation_status"`
	ModerationReviewedAt *time.Time `gorm:"column:moderation_reviewed_at" json:"moderation_reviewed_at,omitempty"`
	ModerationReviewedBy *int       `gorm:"column:moderation_reviewed_by" json:"moderation_reviewed_by,omitempty"`
	ModerationNotes      *string    `gorm:"column:moderation_notes" json:"moderation_notes,omitempty"`

	// Relations
	Contest *Contest `gorm:"foreignKey:ContestID" json:"contest,omitempty"`
	Author  *User    `gorm:"foreignKey:UserID" json:"author,omitempty"`
}

// TableName specifies the table for Submission.
func (Submission) TableName() string {
	return "submissions"
}

// FlagList splits the comma separated moderation_flags column.
func (s *Submission) FlagList() []string {
	if s.ModerationFlags == "" {
		return nil
	}
	return strings.Split(s.ModerationFlags, ",")
}

// SetFlagList joins flags back into the moderation_flags column.
func (s *Submission) SetFlagList(flags []string) {
	s.ModerationFlags = strings.Join(flags, ",")
}
