package moderation

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func stripTimestamp(r AnalysisResult) AnalysisResult {
	r.AnalyzedAt = time.Time{}
	return r
}

func TestAnalyzeDeterministic(t *testing.T) {
	in := Input{
		Title: "Confesiones",
		Body:  "Dijo mierda, describió la tortura y habló de cocaína.",
	}

	first := stripTimestamp(Analyze(in))
	second := stripTimestamp(Analyze(in))

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("analysis not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

// Scenario: strong language only, author did not self-flag.
func TestAnalyzeStrongLanguageUnflagged(t *testing.T) {
	result := Analyze(Input{
		Title: "Un día cualquiera",
		Body:  "Él dijo mierda y se fue.",
	})

	if !hasFlag(result.Flags, FlagLanguageUnflag) {
		t.Errorf("missing %s in %v", FlagLanguageUnflag, result.Flags)
	}
	if result.Score <= 0 || result.Score >= NoticeThreshold {
		t.Errorf("score = %d, want moderate-low (0 < s < %d)", result.Score, NoticeThreshold)
	}
	if result.Status != StatusApproved {
		t.Errorf("status = %s, want %s", result.Status, StatusApproved)
	}
	if result.RequiresManualReview {
		t.Error("plain approved result should not require manual review")
	}
}

// Same text self-flagged mature scores strictly lower.
func TestAnalyzeStrongLanguageMatureFlagged(t *testing.T) {
	in := Input{Title: "Un día cualquiera", Body: "Él dijo mierda y se fue."}

	plain := Analyze(in)
	in.IsMature = true
	mature := Analyze(in)

	if mature.Score >= plain.Score {
		t.Errorf("mature score %d should be strictly below unflagged %d", mature.Score, plain.Score)
	}
	if mature.Status != StatusApproved {
		t.Errorf("status = %s, want %s", mature.Status, StatusApproved)
	}
	if !mature.RequiresManualReview {
		t.Error("mature-flagged submissions are always sampled for review")
	}
}

// Explicit sexual content without the mature flag lands in the notice band.
func TestAnalyzeSexualContentUnflagged(t *testing.T) {
	result := Analyze(Input{
		Title: "Noche",
		Body:  "Describió la penetración sin ningún pudor.",
	})

	if result.Score < NoticeThreshold {
		t.Errorf("score = %d, want >= %d", result.Score, NoticeThreshold)
	}
	if result.Status != StatusApprovedWithNotice && result.Status != StatusFlagged {
		t.Errorf("status = %s, want notice or flagged", result.Status)
	}
	if result.AutoAction == ActionApprove {
		t.Errorf("auto action %s too lenient for score %d", result.AutoAction, result.Score)
	}
}

// Hard-block co-occurrence is terminal regardless of other content.
func TestAnalyzeHardBlock(t *testing.T) {
	result := Analyze(Input{
		Title: "Relato",
		Body:  "Una historia preciosa sobre la amistad. Pero describía sexo con una niña.",
	})

	if result.Score != 100 {
		t.Errorf("score = %d, want 100", result.Score)
	}
	if result.Status != StatusRejected {
		t.Errorf("status = %s, want %s", result.Status, StatusRejected)
	}
	if result.AutoAction != ActionReject {
		t.Errorf("auto action = %s, want %s", result.AutoAction, ActionReject)
	}
	if !result.RequiresManualReview {
		t.Error("rejected content still goes to the human queue")
	}
}

func TestFailSafeResult(t *testing.T) {
	result := FailSafeResult(Input{Title: "x", Body: "y"}, errors.New("pattern engine exploded"))

	if result.Score != FailSafeScore {
		t.Errorf("score = %d, want %d", result.Score, FailSafeScore)
	}
	if result.Status != StatusFlagged {
		t.Errorf("status = %s, want %s", result.Status, StatusFlagged)
	}
	if !result.RequiresManualReview {
		t.Error("fail-safe results must ask for a human")
	}
	if !hasFlag(result.Flags, FlagErrorAnalysis) {
		t.Errorf("missing %s in %v", FlagErrorAnalysis, result.Flags)
	}
}

func TestNeedsMaturityFlag(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantNeeded bool
	}{
		{"sexual content", "Habló de la penetración.", true},
		{"extreme violence", "La tortura duró tres días.", true},
		{"strong language", "Dijo mierda en voz alta.", true},
		{"clean text", "La lluvia caía sobre el tejado.", false},
		{"sensitive topic alone does not force the flag", "Vendía heroína.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := NeedsMaturityFlag("Título", tt.body)
			if check.Needed != tt.wantNeeded {
				t.Errorf("Needed = %v, want %v (reason %q)", check.Needed, tt.wantNeeded, check.Reason)
			}
			if tt.wantNeeded && check.Reason == "" {
				t.Error("a positive check must carry a reason")
			}
		})
	}
}

// The check ignores the flag's current value; it reports need, not delta.
func TestNeedsMaturityFlagIndependentOfCurrentValue(t *testing.T) {
	check := NeedsMaturityFlag("x", "Describió la penetración.")
	if !check.Needed {
		t.Fatal("sexual content must always report needed=true")
	}
}
