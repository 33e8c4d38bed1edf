package query

import (
	"errors"
	"testing"

	"github.com/va2ai/bvaapi2/internal/model"
)

func TestTranslate_BooleanOperators(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
	}{
		{"implicit and", "PTSD combat", "PTSD combat"},
		{"explicit and", "PTSD AND combat", "PTSD combat"},
		{"not prefix", "PTSD AND combat NOT TBI", "PTSD combat -TBI"},
		{"or preserved", "tinnitus OR vertigo", "tinnitus OR vertigo"},
		{"lowercase operators", "ptsd and combat not tbi", "ptsd combat -tbi"},
		{"phrase preserved", `"individual unemployability" rating`, `"individual unemployability" rating`},
		{"negated phrase", `PTSD NOT "traumatic brain injury"`, `PTSD -"traumatic brain injury"`},
		{"mixed", `"effective date" OR CUE NOT remand`, `"effective date" OR CUE -remand`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Translate(tt.in)
			if err != nil {
				t.Fatalf("Translate(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Translate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTranslate_Idempotent(t *testing.T) {
	inputs := []string{
		"PTSD AND combat NOT TBI",
		`"individual unemployability" OR TDIU`,
		"hearing loss tinnitus",
	}

	for _, in := range inputs {
		first, err := Translate(in)
		if err != nil {
			t.Fatalf("first translate of %q: %v", in, err)
		}
		second, err := Translate(first)
		if err != nil {
			t.Fatalf("second translate of %q: %v", first, err)
		}
		if second != first {
			t.Errorf("not idempotent: %q -> %q -> %q", in, first, second)
		}
	}
}

func TestTranslate_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"only operators", "AND OR"},
		{"dangling not", "PTSD NOT"},
		{"leading or", "OR PTSD"},
		{"trailing or", "PTSD OR"},
		{"unbalanced quote", `PTSD "combat`},
		{"empty phrase only", `""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Translate(tt.in)
			if !errors.Is(err, model.ErrInvalidQuery) {
				t.Errorf("Translate(%q) error = %v, want ErrInvalidQuery", tt.in, err)
			}
		})
	}
}

func TestTranslate_Pure(t *testing.T) {
	in := "PTSD AND combat NOT TBI"
	a, _ := Translate(in)
	b, _ := Translate(in)
	if a != b {
		t.Errorf("same input produced different outputs: %q vs %q", a, b)
	}
}
