package moderation

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// Input is the part of a submission the pipeline looks at.
type Input struct {
	Title    string
	Body     string
	IsMature bool
}

// AnalysisResult is the full outcome of the pipeline for one submission.
// Everything except AnalyzedAt is a deterministic function of the input and
// the pattern library version.
type AnalysisResult struct {
	SubmissionID         int        `json:"submission_id,omitempty"`
	Score                int        `json:"score"`
	Flags                []string   `json:"flags"`
	Reasons              []string   `json:"reasons"`
	Status               Status     `json:"status"`
	AutoAction           AutoAction `json:"auto_action"`
	RequiresManualReview bool       `json:"requires_manual_review"`
	IsMature             bool       `json:"is_mature"`
	AnalyzedAt           time.Time  `json:"analyzed_at"`
	PersistError         string     `json:"persist_error,omitempty"` // set by the batch driver
}

var nowUTC = func() time.Time { return time.Now().UTC() }

// FailSafeScore is assigned when the pipeline itself fails; the result lands
// in the flagged band so a human looks at it instead of it auto-approving.
const FailSafeScore = 50

// Analyze runs classifier, scorer and decider over one submission. Pure: no
// persistence, no network, no shared state.
func Analyze(in Input) AnalysisResult {
	text := in.Title + "\n" + in.Body
	cls := Classify(text)
	scored := Score(cls, utf8.RuneCountInString(text), in.IsMature)
	disposition := Decide(scored.Value, scored.HardBlocked(), in.IsMature)

	return AnalysisResult{
		Score:                scored.Value,
		Flags:                scored.Flags,
		Reasons:              scored.Reasons,
		Status:               disposition.Status,
		AutoAction:           disposition.AutoAction,
		RequiresManualReview: disposition.RequiresManualReview,
		IsMature:             in.IsMature,
		AnalyzedAt:           nowUTC(),
	}
}

// FailSafeResult converts a pipeline fault into an "ask a human" outcome
// instead of silently approving or dropping the submission.
func FailSafeResult(in Input, cause error) AnalysisResult {
	return AnalysisResult{
		Score:                FailSafeScore,
		Flags:                []string{FlagErrorAnalysis},
		Reasons:              []string{fmt.Sprintf("fallo del análisis automático: %v", cause)},
		Status:               StatusFlagged,
		AutoAction:           ActionFlagForReview,
		RequiresManualReview: true,
		IsMature:             in.IsMature,
		AnalyzedAt:           nowUTC(),
	}
}

// MaturityCheck is the outcome of the lightweight pre-scoring check.
type MaturityCheck struct {
	Needed bool   `json:"needed"`
	Reason string `json:"reason,omitempty"`
}

// NeedsMaturityFlag reports whether a submission should carry the mature
// self-flag, based only on sexual, violence and strong-language matches.
// Independent of the flag's current value.
func NeedsMaturityFlag(title, body string) MaturityCheck {
	cls := Classify(title + "\n" + body)
	switch {
	case cls.Sexual.Present():
		return MaturityCheck{Needed: true, Reason: "contiene contenido sexual explícito"}
	case cls.Violence.Present():
		return MaturityCheck{Needed: true, Reason: "contiene violencia extrema"}
	case cls.Language.Present():
		return MaturityCheck{Needed: true, Reason: "contiene lenguaje fuerte"}
	}
	return MaturityCheck{}
}
