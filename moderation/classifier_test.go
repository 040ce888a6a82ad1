package moderation

import (
	"reflect"
	"testing"
)

func TestClassifyDeterministic(t *testing.T) {
	text := "Una noche de tortura y mierda, dijo: joder. La penetración fue descrita sin pudor."

	first := Classify(text)
	second := Classify(text)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("classification not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestClassifyWholeWordAnchoring(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		match bool
	}{
		{"explicit term matches", "Describió la penetración con detalle.", true},
		{"term inside longer word does not match", "Una mirada penetrante y fría.", false},
		{"term with accent at edge", "penetración", true},
		{"substring of benign word", "La vergüenza lo invadió por completo.", false},
		{"standalone vulgar term", "Sacó la verga sin pudor.", true},
		{"case insensitive", "PENETRACIÓN", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls := Classify(tt.text)
			if got := cls.Sexual.Present(); got != tt.match {
				t.Errorf("Classify(%q).Sexual.Present() = %v, want %v (labels %v)",
					tt.text, got, tt.match, cls.Sexual.Labels)
			}
		})
	}
}

func TestClassifyDeduplicatesLabels(t *testing.T) {
	text := "mierda, mierda y otra vez mierda"

	cls := Classify(text)

	if len(cls.Language.Labels) != 1 {
		t.Fatalf("expected one deduplicated label, got %v", cls.Language.Labels)
	}
	if cls.Language.Labels[0] != "mierda" {
		t.Errorf("label = %q, want %q", cls.Language.Labels[0], "mierda")
	}
	if cls.Language.Occurrences != 3 {
		t.Errorf("occurrences = %d, want 3", cls.Language.Occurrences)
	}
}

func TestClassifyHardBlockCoOccurrence(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		match bool
	}{
		{"sexual term near minor term", "Escribió sobre sexo con una niña del pueblo.", true},
		{"minor term before sexual term", "La niña presenció una escena de sexo.", true},
		{"terms far apart", "La niña jugaba en el parque. Muchos párrafos después, en otro capítulo completamente distinto de la novela, los adultos hablaban de sexo.", false},
		{"sexual term alone", "Una escena de sexo entre adultos.", false},
		{"minor term alone", "La niña jugaba en el parque.", false},
		{"unredacted email", "Escríbeme a juan.perez@example.com para más.", true},
		{"unredacted phone", "Llámame al 612345678 esta noche.", true},
		{"incitement phrase", "Hay que exterminar a todos los forasteros.", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls := Classify(tt.text)
			if got := cls.HardBlock.Present(); got != tt.match {
				t.Errorf("HardBlock.Present() = %v, want %v (labels %v)",
					got, tt.match, cls.HardBlock.Labels)
			}
		})
	}
}

func TestClassifySensitiveCarriesReason(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantLabel  string
		wantReason string
	}{
		{
			"ideation with method",
			"Pensaba en suicidarse con pastillas cada noche.",
			"ideacion_suicida",
			"ideación suicida explícita con método",
		},
		{
			"hard drug mention",
			"Vendía heroína en el callejón.",
			"drogas_duras",
			"mención de drogas duras ilegales: heroína",
		},
		{
			"domestic violence phrasing",
			"Mi padre me pegaba cuando bebía.",
			"violencia_domestica",
			"descripción explícita de violencia doméstica",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls := Classify(tt.text)
			if len(cls.Sensitive) == 0 {
				t.Fatalf("expected a sensitive match for %q", tt.text)
			}
			m := cls.Sensitive[0]
			if m.Label != tt.wantLabel {
				t.Errorf("label = %q, want %q", m.Label, tt.wantLabel)
			}
			if m.Reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", m.Reason, tt.wantReason)
			}
		})
	}
}

func TestClassifyCleanText(t *testing.T) {
	cls := Classify("Era una tarde tranquila y la lluvia caía sobre los tejados del pueblo.")

	if cls.HardBlock.Present() || cls.Sexual.Present() || cls.Violence.Present() ||
		cls.Language.Present() || len(cls.Sensitive) > 0 {
		t.Errorf("clean text should not match anything: %+v", cls)
	}
}
