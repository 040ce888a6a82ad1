package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"concurso-api/config"
	"concurso-api/models"
	"concurso-api/moderation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// batchThrottle spaces out bulk writes so a large contest does not saturate
// the store. Purely a throttle, not a correctness requirement.
var batchThrottle = 25 * time.Millisecond

// analyzeFn is the pipeline entry point, replaceable in tests.
var analyzeFn = moderation.Analyze

// BatchStats aggregates one contest-wide analysis run.
type BatchStats struct {
	Total              int     `json:"total"`
	MeanScore          float64 `json:"mean_score"`
	Approved           int     `json:"approved"`
	ApprovedWithNotice int     `json:"approved_with_notice"`
	Flagged            int     `json:"flagged"`
	Rejected           int     `json:"rejected"`
	RequiresReview     int     `json:"requires_review"`
	Unpersisted        int     `json:"unpersisted,omitempty"`
}

// BatchResult is the outcome of running the pipeline over every submission
// under one contest.
type BatchResult struct {
	ContestID  int                         `json:"contest_id"`
	RunID      string                      `json:"run_id"`
	Results    []moderation.AnalysisResult `json:"results"`
	Stats      BatchStats                  `json:"stats"`
	ComputedAt time.Time                   `json:"computed_at"`
}

// RunBatch analyzes every live submission under contestID in submission-id
// order. With persist=true each result is written onto its submission together
// with an auto_analyzed log entry; a persistence failure marks that result
// unpersisted and the run continues. Cancellation is honored between items.
func RunBatch(ctx context.Context, contestID int, persist bool) (*BatchResult, error) {
	var contest models.Contest
	if err := config.DB.Where("contest_id = ? AND delete_at IS NULL", contestID).
		First(&contest).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: id %d", ErrContestNotFound, contestID)
		}
		return nil, fmt.Errorf("failed to load contest: %w", err)
	}

	var submissions []models.Submission
	if err := config.DB.Where("contest_id = ? AND delete_at IS NULL", contestID).
		Order("submission_id ASC").Find(&submissions).Error; err != nil {
		return nil, fmt.Errorf("failed to load submissions: %w", err)
	}

	run := &BatchResult{
		ContestID: contestID,
		RunID:     uuid.NewString(),
	}

	for i, submission := range submissions {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("batch run cancelled after %d of %d submissions: %w",
				i, len(submissions), err)
		}
		if i > 0 && batchThrottle > 0 {
			time.Sleep(batchThrottle)
		}

		result := analyzeSubmission(submission)
		if persist {
			if err := persistResult(&submission, &result, run.RunID); err != nil {
				result.PersistError = err.Error()
				log.Printf("moderation batch %s: submission %d not persisted: %v",
					run.RunID, submission.SubmissionID, err)
			} else if result.AutoAction == moderation.ActionApproveAndNotify {
				NotifyAuthorOfNotice(&submission, &result)
			}
		}
		run.Results = append(run.Results, result)
	}

	run.Stats = computeStats(run.Results)
	run.ComputedAt = time.Now().UTC()
	return run, nil
}

// analyzeSubmission wraps the pure pipeline with the fail-safe policy: a
// panic inside pattern matching degrades to "ask a human", never to a crash
// or a silent approval.
func analyzeSubmission(submission models.Submission) (result moderation.AnalysisResult) {
	in := moderation.Input{
		Title:    submission.Title,
		Body:     submission.Body,
		IsMature: submission.IsMature,
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("moderation analysis failed for submission %d: %v", submission.SubmissionID, r)
			result = moderation.FailSafeResult(in, fmt.Errorf("%v", r))
			result.SubmissionID = submission.SubmissionID
		}
	}()
	result = analyzeFn(in)
	result.SubmissionID = submission.SubmissionID
	return result
}

func persistResult(submission *models.Submission, result *moderation.AnalysisResult, runID string) error {
	return config.DB.Transaction(func(tx *gorm.DB) error {
		previous := submission.ModerationStatus
		now := time.Now()
		submission.ModerationScore = result.Score
		submission.SetFlagList(result.Flags)
		submission.ModerationStatus = string(result.Status)
		submission.UpdateAt = &now

		if err := tx.Save(submission).Error; err != nil {
			return fmt.Errorf("failed to save analysis result: %w", err)
		}

		entry := models.ModerationLog{
			SubmissionID:   submission.SubmissionID,
			Action:         models.ModerationActionAutoAnalyzed,
			PreviousStatus: previous,
			NewStatus:      string(result.Status),
			Reason:         firstReason(result.Reasons),
			Details: mustDetails(map[string]any{
				"run_id":      runID,
				"score":       result.Score,
				"flags":       result.Flags,
				"auto_action": string(result.AutoAction),
			}),
			CreatedAt: now,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to append moderation log: %w", err)
		}
		return nil
	})
}

func firstReason(reasons []string) string {
	if len(reasons) == 0 {
		return "sin coincidencias"
	}
	return reasons[0]
}

// RequiresReview applies the dashboard triage rule: moderate-or-worse score,
// hard block, or author-declared mature content.
func RequiresReview(result moderation.AnalysisResult) bool {
	if result.Score >= moderation.NoticeThreshold || result.IsMature {
		return true
	}
	for _, f := range result.Flags {
		if f == moderation.FlagHardBlock {
			return true
		}
	}
	return false
}

func computeStats(results []moderation.AnalysisResult) BatchStats {
	stats := BatchStats{Total: len(results)}
	if len(results) == 0 {
		return stats
	}
	sum := 0
	for _, r := range results {
		sum += r.Score
		switch r.Status {
		case moderation.StatusApproved:
			stats.Approved++
		case moderation.StatusApprovedWithNotice:
			stats.ApprovedWithNotice++
		case moderation.StatusFlagged:
			stats.Flagged++
		case moderation.StatusRejected:
			stats.Rejected++
		}
		if RequiresReview(r) {
			stats.RequiresReview++
		}
		if r.PersistError != "" {
			stats.Unpersisted++
		}
	}
	stats.MeanScore = float64(sum) / float64(len(results))
	return stats
}
