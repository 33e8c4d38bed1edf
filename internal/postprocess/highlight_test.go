package postprocess

import (
	"reflect"
	"testing"
)

func TestHighlight_Basic(t *testing.T) {
	got := Highlight("PTSD claim granted", []string{"ptsd"})
	want := "<em>PTSD</em> claim granted"
	if got != want {
		t.Errorf("Highlight = %q, want %q", got, want)
	}
}

func TestHighlight_CaseInsensitiveMultipleTerms(t *testing.T) {
	got := Highlight("Combat PTSD and combat stress", []string{"combat", "PTSD"})
	want := "<em>Combat</em> <em>PTSD</em> and <em>combat</em> stress"
	if got != want {
		t.Errorf("Highlight = %q, want %q", got, want)
	}
}

func TestHighlight_LeftmostLongestWins(t *testing.T) {
	// "hearing loss" covers "hearing"; the longer span starting at the same
	// offset must win and the shorter overlap must be dropped.
	got := Highlight("bilateral hearing loss", []string{"hearing", "hearing loss"})
	want := "bilateral <em>hearing loss</em>"
	if got != want {
		t.Errorf("Highlight = %q, want %q", got, want)
	}
}

func TestHighlight_NoMatchesUnchanged(t *testing.T) {
	text := "no relevant terms here"
	if got := Highlight(text, []string{"ptsd"}); got != text {
		t.Errorf("Highlight changed text without matches: %q", got)
	}
	if got := Highlight(text, nil); got != text {
		t.Errorf("Highlight changed text without terms: %q", got)
	}
}

func TestHighlightTerms_SkipsNegationsAndOperators(t *testing.T) {
	got := HighlightTerms(`PTSD combat -TBI OR "hearing loss"`)
	want := []string{"PTSD", "combat", "hearing loss"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("HighlightTerms = %v, want %v", got, want)
	}
}
