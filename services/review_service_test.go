package services

import (
	"errors"
	"strings"
	"testing"

	"concurso-api/config"
	"concurso-api/models"
	"concurso-api/moderation"
)

func TestSetStatusApproveAppendsOneLog(t *testing.T) {
	setupTestDB(t)
	contest := seedContest(t)
	submission := seedSubmission(t, contest.ContestID, "Relato", "texto", false, moderation.StatusFlagged)

	updated, err := SetStatus(submission.SubmissionID, moderation.StatusApproved, 7, "revisado, sin problemas")
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	if updated.ModerationStatus != string(moderation.StatusApproved) {
		t.Errorf("status = %s, want approved", updated.ModerationStatus)
	}
	if updated.ModerationReviewedBy == nil || *updated.ModerationReviewedBy != 7 {
		t.Errorf("reviewed_by = %v, want 7", updated.ModerationReviewedBy)
	}
	if updated.ModerationReviewedAt == nil {
		t.Error("reviewed_at should be set")
	}

	if got := countLogs(t, submission.SubmissionID); got != 1 {
		t.Fatalf("log count = %d, want exactly 1", got)
	}

	var entry models.ModerationLog
	if err := config.DB.Where("submission_id = ?", submission.SubmissionID).First(&entry).Error; err != nil {
		t.Fatalf("failed to load log entry: %v", err)
	}
	if entry.Action != models.ModerationActionManualReview {
		t.Errorf("action = %s, want manual_review", entry.Action)
	}
	if entry.PreviousStatus != string(moderation.StatusFlagged) {
		t.Errorf("previous_status = %s, want flagged", entry.PreviousStatus)
	}
	if entry.NewStatus != string(moderation.StatusApproved) {
		t.Errorf("new_status = %s, want approved", entry.NewStatus)
	}
	if entry.AdminID == nil || *entry.AdminID != 7 {
		t.Errorf("admin_id = %v, want 7", entry.AdminID)
	}
}

func TestSetStatusRejectRequiresNotes(t *testing.T) {
	setupTestDB(t)
	contest := seedContest(t)
	submission := seedSubmission(t, contest.ContestID, "Relato", "texto", false, moderation.StatusFlagged)

	for _, notes := range []string{"", "   ", "\t\n"} {
		_, err := SetStatus(submission.SubmissionID, moderation.StatusRejected, 7, notes)
		if !errors.Is(err, ErrNotesRequired) {
			t.Errorf("notes %q: err = %v, want ErrNotesRequired", notes, err)
		}
	}

	// Nothing may have mutated: no status change, no log entries.
	var reloaded models.Submission
	if err := config.DB.First(&reloaded, submission.SubmissionID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.ModerationStatus != string(moderation.StatusFlagged) {
		t.Errorf("status mutated to %s on failed validation", reloaded.ModerationStatus)
	}
	if got := countLogs(t, submission.SubmissionID); got != 0 {
		t.Errorf("log count = %d, want 0 after failed validation", got)
	}
}

func TestSetStatusRejectWithNotes(t *testing.T) {
	setupTestDB(t)
	contest := seedContest(t)
	submission := seedSubmission(t, contest.ContestID, "Relato", "texto", false, moderation.StatusUnderReview)

	updated, err := SetStatus(submission.SubmissionID, moderation.StatusRejected, 7, "incumple las bases")
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if updated.ModerationStatus != string(moderation.StatusRejected) {
		t.Errorf("status = %s, want rejected", updated.ModerationStatus)
	}
	if updated.ModerationNotes == nil || *updated.ModerationNotes != "incumple las bases" {
		t.Errorf("notes = %v, want the rejection reason", updated.ModerationNotes)
	}
	if got := countLogs(t, submission.SubmissionID); got != 1 {
		t.Errorf("log count = %d, want 1", got)
	}
}

func TestSetStatusRejectedIsTerminal(t *testing.T) {
	setupTestDB(t)
	contest := seedContest(t)
	submission := seedSubmission(t, contest.ContestID, "Relato", "texto", false, moderation.StatusRejected)

	_, err := SetStatus(submission.SubmissionID, moderation.StatusApproved, 7, "reconsiderado")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("err = %v, want ErrInvalidTransition", err)
	}
	if got := countLogs(t, submission.SubmissionID); got != 0 {
		t.Errorf("log count = %d, want 0", got)
	}
}

func TestSetStatusUnknownStatus(t *testing.T) {
	setupTestDB(t)
	contest := seedContest(t)
	submission := seedSubmission(t, contest.ContestID, "Relato", "texto", false, moderation.StatusFlagged)

	_, err := SetStatus(submission.SubmissionID, moderation.Status("banana"), 7, "")
	if !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("err = %v, want ErrUnknownStatus", err)
	}
}

func TestSetStatusMissingSubmission(t *testing.T) {
	setupTestDB(t)

	_, err := SetStatus(9999, moderation.StatusApproved, 7, "")
	if !errors.Is(err, ErrSubmissionNotFound) {
		t.Errorf("err = %v, want ErrSubmissionNotFound", err)
	}
}

func TestSetStatusSuccessiveTransitionsLogPreviousStatus(t *testing.T) {
	setupTestDB(t)
	contest := seedContest(t)
	submission := seedSubmission(t, contest.ContestID, "Relato", "texto", false, moderation.StatusFlagged)

	steps := []struct {
		to    moderation.Status
		notes string
	}{
		{moderation.StatusUnderReview, ""},
		{moderation.StatusApproved, ""},
		{moderation.StatusRejected, "reconsiderado tras una queja"},
	}

	previous := moderation.StatusFlagged
	for _, step := range steps {
		if _, err := SetStatus(submission.SubmissionID, step.to, 7, step.notes); err != nil {
			t.Fatalf("SetStatus(%s): %v", step.to, err)
		}

		var entry models.ModerationLog
		if err := config.DB.Where("submission_id = ?", submission.SubmissionID).
			Order("log_id DESC").First(&entry).Error; err != nil {
			t.Fatalf("load latest log: %v", err)
		}
		if entry.PreviousStatus != string(previous) {
			t.Errorf("transition to %s: previous_status = %s, want %s",
				step.to, entry.PreviousStatus, previous)
		}
		previous = step.to
	}

	if got := countLogs(t, submission.SubmissionID); got != int64(len(steps)) {
		t.Errorf("log count = %d, want %d", got, len(steps))
	}
}

func TestSetMaturityFlagLogsWithoutStatusChange(t *testing.T) {
	setupTestDB(t)
	contest := seedContest(t)
	submission := seedSubmission(t, contest.ContestID, "Relato", "texto", false, moderation.StatusApproved)

	updated, err := SetMaturityFlag(submission.SubmissionID, true, 7, "contenido adulto evidente")
	if err != nil {
		t.Fatalf("SetMaturityFlag: %v", err)
	}

	if !updated.IsMature {
		t.Error("is_mature should be true")
	}
	if updated.ModerationStatus != string(moderation.StatusApproved) {
		t.Errorf("maturity toggle changed status to %s", updated.ModerationStatus)
	}

	var entry models.ModerationLog
	if err := config.DB.Where("submission_id = ?", submission.SubmissionID).First(&entry).Error; err != nil {
		t.Fatalf("load log: %v", err)
	}
	if entry.PreviousStatus != entry.NewStatus {
		t.Errorf("maturity log must not record a status change: %s -> %s",
			entry.PreviousStatus, entry.NewStatus)
	}
	if !strings.Contains(entry.Details, "mark_as_mature") {
		t.Errorf("details = %s, want mark_as_mature action", entry.Details)
	}

	// Unmark logs its own entry too.
	if _, err := SetMaturityFlag(submission.SubmissionID, false, 7, ""); err != nil {
		t.Fatalf("SetMaturityFlag(false): %v", err)
	}
	if got := countLogs(t, submission.SubmissionID); got != 2 {
		t.Errorf("log count = %d, want 2", got)
	}
}

func TestGetModerationLogOrder(t *testing.T) {
	setupTestDB(t)
	contest := seedContest(t)
	submission := seedSubmission(t, contest.ContestID, "Relato", "texto", false, moderation.StatusFlagged)

	if _, err := SetStatus(submission.SubmissionID, moderation.StatusApproved, 7, ""); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if _, err := SetMaturityFlag(submission.SubmissionID, true, 7, ""); err != nil {
		t.Fatalf("SetMaturityFlag: %v", err)
	}

	entries, err := GetModerationLog(submission.SubmissionID)
	if err != nil {
		t.Fatalf("GetModerationLog: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].LogID > entries[1].LogID {
		t.Error("entries should be ordered oldest first")
	}
}
