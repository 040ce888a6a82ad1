package moderation

import (
	"fmt"
	"strings"
)

// Scoring weights. The exact magnitudes are tunable policy; what must hold is
// the severity ordering: hard-block > unflagged sexual > extreme violence >
// sensitive topic ≈ unflagged language > self-flagged sexual/language.
const (
	HardBlockScore = 100

	SexualUnflaggedPenalty = 55 // alone reaches the notice band (>= 50)
	SexualFlaggedPenalty   = 8

	ViolencePenalty = 30

	LanguageBasePenalty    = 12
	LanguagePerTermPenalty = 4 // per additional distinct term
	LanguagePenaltyCap     = 24
	LanguageFlaggedPenalty = 2

	SensitivePenalty = 25

	ShortSubmissionLength = 300 // characters of title+body
	ShortPenaltyFloor     = 20  // escalate only if this much already accumulated
	ShortPenalty          = 10

	RepetitionThreshold = 10 // total sexual+violence+language occurrences
	RepetitionPenalty   = 15
)

// Flag tags emitted by the scorer, in rule evaluation order.
const (
	FlagHardBlock        = "hard_block"
	FlagSexualUnflagged  = "sexual_unflagged"
	FlagSexualSelfFlag   = "sexual_self_flagged"
	FlagViolenceExtreme  = "violence_extreme"
	FlagLanguageUnflag   = "language_unflagged"
	FlagLanguageSelfFlag = "language_self_flagged"
	FlagSensitiveTopic   = "sensitive_topic"
	FlagShortProblematic = "short_problematic"
	FlagExcessContent    = "excess_problematic_content"
	FlagErrorAnalysis    = "error_analysis"
)

// ScoreResult aggregates the penalties into one clamped value plus the flags
// and the parallel reviewer-facing explanations, both in rule order.
type ScoreResult struct {
	Value   int      `json:"value"`
	Reasons []string `json:"reasons"`
	Flags   []string `json:"flags"`
}

// HardBlocked reports whether the terminal hard-block rule fired.
func (r ScoreResult) HardBlocked() bool {
	for _, f := range r.Flags {
		if f == FlagHardBlock {
			return true
		}
	}
	return false
}

// Score turns a classification into a 0-100 risk score. submissionLength is
// the combined title+body character count; isMature is the author's own
// maturity declaration.
func Score(cls Classification, submissionLength int, isMature bool) ScoreResult {
	var result ScoreResult

	// Rule 1: any hard-block match is terminal.
	if cls.HardBlock.Present() {
		result.Value = HardBlockScore
		result.Flags = append(result.Flags, FlagHardBlock)
		result.Reasons = append(result.Reasons,
			fmt.Sprintf("contenido bloqueado: %s", strings.Join(cls.HardBlock.Labels, ", ")))
		return result
	}

	// Rule 2: explicit sexual content, dominant when the author did not
	// declare the entry as mature.
	if cls.Sexual.Present() {
		if isMature {
			result.Value += SexualFlaggedPenalty
			result.Flags = append(result.Flags, FlagSexualSelfFlag)
			result.Reasons = append(result.Reasons,
				fmt.Sprintf("contenido sexual en obra marcada como adulta: %s", strings.Join(cls.Sexual.Labels, ", ")))
		} else {
			result.Value += SexualUnflaggedPenalty
			result.Flags = append(result.Flags, FlagSexualUnflagged)
			result.Reasons = append(result.Reasons,
				fmt.Sprintf("contenido sexual sin marcar como adulto: %s", strings.Join(cls.Sexual.Labels, ", ")))
		}
	}

	// Rule 3: extreme violence, maturity flag does not soften it.
	if cls.Violence.Present() {
		result.Value += ViolencePenalty
		result.Flags = append(result.Flags, FlagViolenceExtreme)
		result.Reasons = append(result.Reasons,
			fmt.Sprintf("violencia extrema: %s", strings.Join(cls.Violence.Labels, ", ")))
	}

	// Rule 4: strong language, scaling mildly with distinct terms.
	if cls.Language.Present() {
		if isMature {
			result.Value += LanguageFlaggedPenalty
			result.Flags = append(result.Flags, FlagLanguageSelfFlag)
			result.Reasons = append(result.Reasons,
				fmt.Sprintf("lenguaje fuerte en obra marcada como adulta: %s", strings.Join(cls.Language.Labels, ", ")))
		} else {
			penalty := LanguageBasePenalty + LanguagePerTermPenalty*(len(cls.Language.Labels)-1)
			if penalty > LanguagePenaltyCap {
				penalty = LanguagePenaltyCap
			}
			result.Value += penalty
			result.Flags = append(result.Flags, FlagLanguageUnflag)
			result.Reasons = append(result.Reasons,
				fmt.Sprintf("lenguaje fuerte sin marcar como adulto: %s", strings.Join(cls.Language.Labels, ", ")))
		}
	}

	// Rule 5: sensitive topics, each match keeps its specific reason.
	if len(cls.Sensitive) > 0 {
		result.Flags = append(result.Flags, FlagSensitiveTopic)
		for _, m := range cls.Sensitive {
			result.Value += SensitivePenalty
			result.Reasons = append(result.Reasons, m.Reason)
		}
	}

	// Rule 6: short submissions that already look problematic carry less
	// surrounding signal and get escalated.
	if submissionLength < ShortSubmissionLength && result.Value >= ShortPenaltyFloor {
		result.Value += ShortPenalty
		result.Flags = append(result.Flags, FlagShortProblematic)
		result.Reasons = append(result.Reasons,
			fmt.Sprintf("texto corto (%d caracteres) con contenido problemático", submissionLength))
	}

	// Rule 7: saturation signal when matches pile up across categories.
	totalMatches := cls.Sexual.Occurrences + cls.Violence.Occurrences + cls.Language.Occurrences
	if totalMatches > RepetitionThreshold {
		result.Value += RepetitionPenalty
		result.Flags = append(result.Flags, FlagExcessContent)
		result.Reasons = append(result.Reasons,
			fmt.Sprintf("densidad alta de términos problemáticos (%d coincidencias)", totalMatches))
	}

	// Rule 8: clamp.
	if result.Value > 100 {
		result.Value = 100
	}
	if result.Value < 0 {
		result.Value = 0
	}
	return result
}
