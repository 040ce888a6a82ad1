package moderation

// Status is the closed set of moderation dispositions a submission can carry.
type Status string

const (
	StatusPending            Status = "pending"
	StatusApproved           Status = "approved"
	StatusApprovedWithNotice Status = "approved_with_notice"
	StatusFlagged            Status = "flagged"
	StatusUnderReview        Status = "under_review"
	StatusRejected           Status = "rejected"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusApprovedWithNotice,
		StatusFlagged, StatusUnderReview, StatusRejected:
		return true
	}
	return false
}

// AutoAction is the automatic directive attached to a disposition.
type AutoAction string

const (
	ActionApprove          AutoAction = "approve"
	ActionApproveAndNotify AutoAction = "approve_and_notify"
	ActionFlagForReview    AutoAction = "flag_for_review"
	ActionReject           AutoAction = "reject"
)

// Disposition thresholds. A pure mapping from score to outcome, no history.
const (
	FlagThreshold   = 80 // score >= 80: flagged, manual review required
	NoticeThreshold = 50 // 50-79: approved with a notice to the author
)

// Disposition is the decided outcome for one scored submission.
type Disposition struct {
	Status               Status     `json:"status"`
	AutoAction           AutoAction `json:"auto_action"`
	RequiresManualReview bool       `json:"requires_manual_review"`
}

// Decide maps a score to its disposition. A hard block overrides every
// threshold. A mature self-flag forces manual review sampling without
// changing the score or the status itself.
func Decide(score int, hardBlocked, isMature bool) Disposition {
	var d Disposition
	switch {
	case hardBlocked:
		d = Disposition{Status: StatusRejected, AutoAction: ActionReject, RequiresManualReview: true}
	case score >= FlagThreshold:
		d = Disposition{Status: StatusFlagged, AutoAction: ActionFlagForReview, RequiresManualReview: true}
	case score >= NoticeThreshold:
		d = Disposition{Status: StatusApprovedWithNotice, AutoAction: ActionApproveAndNotify}
	default:
		d = Disposition{Status: StatusApproved, AutoAction: ActionApprove}
	}
	if isMature {
		d.RequiresManualReview = true
	}
	return d
}
