package moderation

import (
	"fmt"
	"regexp"
)

// LibraryVersion identifies the lexicon revision. Bump whenever a pattern set
// changes so cached analysis snapshots can be told apart from fresh ones.
const LibraryVersion = "2026.02"

// Category groups patterns by the weight class the scorer applies to them.
type Category string

const (
	CategoryHardBlock Category = "hard_block"
	CategorySexual    Category = "sexual"
	CategoryViolence  Category = "violence"
	CategoryLanguage  Category = "language"
	CategorySensitive Category = "sensitive"
)

// PatternSpec is one declarative entry of the pattern library.
type PatternSpec struct {
	Expr   string
	Label  string
	Reason string // only set for sensitive-topic patterns
}

// Pattern is a compiled library entry.
type Pattern struct {
	re     *regexp.Regexp
	Label  string
	Reason string
}

// wholeWord builds a case-insensitive expression that matches term only as a
// complete word. RE2's \b is ASCII-only, so accented Spanish terms such as
// "penetración" need explicit letter-class boundaries; this also keeps the
// term from matching inside longer words ("penetrante").
func wholeWord(term string) string {
	return `(?i)(?:\A|[^\p{L}\p{N}])` + regexp.QuoteMeta(term) + `(?:[^\p{L}\p{N}]|\z)`
}

// nearby builds a co-occurrence expression: a match of either group within
// window characters of the other, in either order.
func nearby(a, b string, window int) string {
	return fmt.Sprintf(`(?is)(?:(?:%s)[\s\S]{0,%d}(?:%s)|(?:%s)[\s\S]{0,%d}(?:%s))`,
		a, window, b, b, window, a)
}

const coOccurrenceWindow = 50

// Hard-block set. Any single match here is terminal: score 100, rejected.
var hardBlockSpecs = []PatternSpec{
	{
		Expr: nearby(
			`sexo|sexual(?:es)?|desnud\p{L}*|pene|vagina|polla|follar|violar|masturb\p{L}*`,
			`niñ[oa]s?|menor(?:es)?\s+de\s+edad|infantil(?:es)?|criaturas?|adolescentes?`,
			coOccurrenceWindow,
		),
		Label: "contenido_sexual_menores",
	},
	{
		Expr: nearby(
			`sexo|sexual(?:es)?|penetra\p{L}*|violar|follar`,
			`animal(?:es)?|perr[oa]s?|caball[oa]s?|yeguas?|burr[oa]s?|cabras?`,
			coOccurrenceWindow,
		),
		Label: "zoofilia",
	},
	{Expr: wholeWord("zoofilia"), Label: "zoofilia"},
	{Expr: wholeWord("bestialismo"), Label: "zoofilia"},
	{
		Expr:  `(?i)(?:hay\s+que|debemos|vamos\s+a)\s+(?:matar|exterminar|eliminar)\s+a\s+(?:todos\s+)?l[oa]s\s+\p{L}+`,
		Label: "incitacion_odio",
	},
	{
		Expr:  `(?i)(?:l[oa]s\s+\p{L}+\s+no\s+merecen\s+vivir)`,
		Label: "incitacion_odio",
	},
	{
		Expr:  `(?:\A|[^\p{N}])(?:\+?[0-9][0-9 .\-]{7,}[0-9])(?:[^\p{N}]|\z)`,
		Label: "telefono_sin_redactar",
	},
	{
		Expr:  `[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`,
		Label: "email_sin_redactar",
	},
}

// Sexual-content set: explicit anatomical or act terms, whole-word only.
var sexualTerms = []string{
	"penetración",
	"felación",
	"masturbación",
	"coito",
	"orgasmo",
	"erección",
	"semen",
	"vagina",
	"pene",
	"polla",
	"verga",
	"follar",
	"tetas",
	"corrida",
}

// Extreme-violence set: graphic torture and mutilation vocabulary.
var violenceTerms = []string{
	"tortura",
	"torturar",
	"mutilación",
	"mutilar",
	"desmembrar",
	"descuartizar",
	"decapitar",
	"destripar",
	"empalar",
	"desollar",
	"eviscerar",
}

// Strong-language set: profanity, whole-word only.
var languageTerms = []string{
	"mierda",
	"joder",
	"puta",
	"puto",
	"cabrón",
	"coño",
	"gilipollas",
	"carajo",
	"pendejo",
	"hostia",
	"cojones",
}

// Sensitive-topics set: contextual matchers whose reason is surfaced verbatim
// to reviewers, never grouped under a generic label.
var sensitiveSpecs = []PatternSpec{
	{
		Expr: nearby(
			`suicid\p{L}*|quitar(?:me|se)\s+la\s+vida|matar(?:me|se)`,
			`ahorc\p{L}*|pastillas|veneno|cortar(?:me|se)\s+las\s+venas|tirar(?:me|se)|saltar\s+de`,
			coOccurrenceWindow,
		),
		Label:  "ideacion_suicida",
		Reason: "ideación suicida explícita con método",
	},
	{Expr: wholeWord("heroína"), Label: "drogas_duras", Reason: "mención de drogas duras ilegales: heroína"},
	{Expr: wholeWord("cocaína"), Label: "drogas_duras", Reason: "mención de drogas duras ilegales: cocaína"},
	{Expr: wholeWord("metanfetamina"), Label: "drogas_duras", Reason: "mención de drogas duras ilegales: metanfetamina"},
	{Expr: wholeWord("fentanilo"), Label: "drogas_duras", Reason: "mención de drogas duras ilegales: fentanilo"},
	{
		Expr:   `(?i)(?:me|la|le|lo)\s+(?:pega|pegaba|golpea|golpeaba|maltrata|maltrataba)\b`,
		Label:  "violencia_domestica",
		Reason: "descripción explícita de violencia doméstica",
	},
	{
		Expr:   `(?i)maltrato\s+físico|violencia\s+(?:doméstica|machista)`,
		Label:  "violencia_domestica",
		Reason: "descripción explícita de violencia doméstica",
	},
}

// library holds every compiled pattern set, built once at package init.
type patternLibrary struct {
	hardBlock []Pattern
	sexual    []Pattern
	violence  []Pattern
	language  []Pattern
	sensitive []Pattern
}

var library = compileLibrary()

func compileLibrary() patternLibrary {
	return patternLibrary{
		hardBlock: compileSpecs(hardBlockSpecs),
		sexual:    compileTerms(sexualTerms),
		violence:  compileTerms(violenceTerms),
		language:  compileTerms(languageTerms),
		sensitive: compileSpecs(sensitiveSpecs),
	}
}

func compileSpecs(specs []PatternSpec) []Pattern {
	patterns := make([]Pattern, 0, len(specs))
	for _, spec := range specs {
		patterns = append(patterns, Pattern{
			re:     regexp.MustCompile(spec.Expr),
			Label:  spec.Label,
			Reason: spec.Reason,
		})
	}
	return patterns
}

func compileTerms(terms []string) []Pattern {
	patterns := make([]Pattern, 0, len(terms))
	for _, term := range terms {
		patterns = append(patterns, Pattern{
			re:    regexp.MustCompile(wholeWord(term)),
			Label: term,
		})
	}
	return patterns
}
