package moderation

// CategoryMatches collects the matches of one pattern set.
type CategoryMatches struct {
	Labels      []string `json:"labels"`      // deduplicated, insertion order
	Occurrences int      `json:"occurrences"` // total raw match count, repeats included
}

// Present reports whether the category matched at all.
func (m CategoryMatches) Present() bool {
	return len(m.Labels) > 0
}

// SensitiveMatch is one sensitive-topic hit with its reviewer-facing reason.
type SensitiveMatch struct {
	Label  string `json:"label"`
	Reason string `json:"reason"`
}

// Classification is the result of running every pattern set over a text.
type Classification struct {
	HardBlock CategoryMatches  `json:"hard_block"`
	Sexual    CategoryMatches  `json:"sexual"`
	Violence  CategoryMatches  `json:"violence"`
	Language  CategoryMatches  `json:"language"`
	Sensitive []SensitiveMatch `json:"sensitive"`
}

// Classify runs the full pattern library against text. It is a pure function:
// no side effects, and identical input always yields identical output. Repeated
// matches of the same label are deduplicated but still counted in Occurrences.
func Classify(text string) Classification {
	return Classification{
		HardBlock: matchCategory(library.hardBlock, text),
		Sexual:    matchCategory(library.sexual, text),
		Violence:  matchCategory(library.violence, text),
		Language:  matchCategory(library.language, text),
		Sensitive: matchSensitive(library.sensitive, text),
	}
}

func matchCategory(patterns []Pattern, text string) CategoryMatches {
	var matches CategoryMatches
	seen := make(map[string]struct{})
	for _, p := range patterns {
		hits := p.re.FindAllStringIndex(text, -1)
		if len(hits) == 0 {
			continue
		}
		matches.Occurrences += len(hits)
		if _, ok := seen[p.Label]; ok {
			continue
		}
		seen[p.Label] = struct{}{}
		matches.Labels = append(matches.Labels, p.Label)
	}
	return matches
}

func matchSensitive(patterns []Pattern, text string) []SensitiveMatch {
	var matches []SensitiveMatch
	seen := make(map[string]struct{})
	for _, p := range patterns {
		if !p.re.MatchString(text) {
			continue
		}
		key := p.Label + "|" + p.Reason
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		matches = append(matches, SensitiveMatch{Label: p.Label, Reason: p.Reason})
	}
	return matches
}
