package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"concurso-api/config"
	"concurso-api/models"
	"concurso-api/moderation"

	"gorm.io/gorm"
)

// manualTransitions is the single authority for legal admin-driven status
// changes. rejected is terminal: nothing manual leaves it.
var manualTransitions = map[moderation.Status][]moderation.Status{
	moderation.StatusApproved: {
		moderation.StatusFlagged,
		moderation.StatusUnderReview,
		moderation.StatusApproved,
		moderation.StatusApprovedWithNotice,
	},
	moderation.StatusRejected: {
		moderation.StatusFlagged,
		moderation.StatusUnderReview,
		moderation.StatusApproved,
		moderation.StatusApprovedWithNotice,
	},
	moderation.StatusUnderReview: {
		moderation.StatusFlagged,
		moderation.StatusApproved,
		moderation.StatusApprovedWithNotice,
	},
}

func transitionAllowed(from, to moderation.Status) bool {
	for _, s := range manualTransitions[to] {
		if s == from {
			return true
		}
	}
	return false
}

// SetStatus applies a manual review decision. The status update and its audit
// log entry commit in one transaction: either both are visible or neither.
func SetStatus(submissionID int, newStatus moderation.Status, adminID int, notes string) (*models.Submission, error) {
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, newStatus)
	}
	if newStatus == moderation.StatusRejected && strings.TrimSpace(notes) == "" {
		return nil, ErrNotesRequired
	}

	var submission models.Submission
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("submission_id = ? AND delete_at IS NULL", submissionID).
			First(&submission).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: id %d", ErrSubmissionNotFound, submissionID)
			}
			return err
		}

		previous := moderation.Status(submission.ModerationStatus)
		if !transitionAllowed(previous, newStatus) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, previous, newStatus)
		}

		now := time.Now()
		trimmed := strings.TrimSpace(notes)
		submission.ModerationStatus = string(newStatus)
		submission.ModerationReviewedAt = &now
		submission.ModerationReviewedBy = &adminID
		if trimmed != "" {
			submission.ModerationNotes = &trimmed
		}
		submission.UpdateAt = &now

		if err := tx.Save(&submission).Error; err != nil {
			return fmt.Errorf("failed to update submission status: %w", err)
		}

		entry := models.ModerationLog{
			SubmissionID:   submission.SubmissionID,
			Action:         models.ModerationActionManualReview,
			PreviousStatus: string(previous),
			NewStatus:      string(newStatus),
			AdminID:        &adminID,
			Reason:         trimmed,
			Details:        mustDetails(map[string]any{"decision": string(newStatus)}),
			CreatedAt:      now,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to append moderation log: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// SetMaturityFlag toggles the author maturity flag under admin action. The
// flag change does not touch the moderation status but still logs its own
// entry; a later re-analysis will pick the new flag up in the score.
func SetMaturityFlag(submissionID int, value bool, adminID int, notes string) (*models.Submission, error) {
	var submission models.Submission
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("submission_id = ? AND delete_at IS NULL", submissionID).
			First(&submission).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: id %d", ErrSubmissionNotFound, submissionID)
			}
			return err
		}

		now := time.Now()
		submission.IsMature = value
		submission.UpdateAt = &now
		if err := tx.Save(&submission).Error; err != nil {
			return fmt.Errorf("failed to update maturity flag: %w", err)
		}

		action := "mark_as_mature"
		if !value {
			action = "unmark_as_mature"
		}
		entry := models.ModerationLog{
			SubmissionID:   submission.SubmissionID,
			Action:         models.ModerationActionManualReview,
			PreviousStatus: submission.ModerationStatus,
			NewStatus:      submission.ModerationStatus,
			AdminID:        &adminID,
			Reason:         strings.TrimSpace(notes),
			Details:        mustDetails(map[string]any{"maturity_action": action, "is_mature": value}),
			CreatedAt:      now,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to append moderation log: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// GetModerationLog returns the audit trail for one submission, oldest first.
func GetModerationLog(submissionID int) ([]models.ModerationLog, error) {
	var entries []models.ModerationLog
	if err := config.DB.Where("submission_id = ?", submissionID).
		Order("log_id ASC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to load moderation log: %w", err)
	}
	return entries, nil
}

func mustDetails(payload map[string]any) string {
	data, err := json.Marshal(payload)
	if err != nil {
		return "{}"
	}
	return string(data)
}
