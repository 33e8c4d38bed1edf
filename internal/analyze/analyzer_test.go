package analyze

import (
	"errors"
	"strings"
	"testing"

	"github.com/va2ai/bvaapi2/internal/model"
)

func testConfig() model.AnalyzeConfig {
	return model.AnalyzeConfig{
		MinTextLength:      100,
		ContextWindow:      30,
		MaxContextsPerTerm: 3,
		VATerms:            model.DefaultVATerms(),
	}
}

const analyzeSample = `The veteran seeks service connection for PTSD. ` +
	`The examiner diagnosed PTSD related to combat service. ` +
	`A disability rating of 70 percent was assigned. ` +
	`The effective date of the award remains in dispute.`

func TestAnalyze_TooShort(t *testing.T) {
	a := NewAnalyzer(testConfig())

	_, err := a.Analyze(strings.Repeat("x", 50), nil, false)
	if !errors.Is(err, model.ErrTextTooShort) {
		t.Errorf("expected ErrTextTooShort, got %v", err)
	}
}

func TestAnalyze_KeywordCounts(t *testing.T) {
	a := NewAnalyzer(testConfig())

	res, err := a.Analyze(analyzeSample, []string{"ptsd", "combat", "absent"}, false)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	if got := res.KeywordCounts["ptsd"]; got != 2 {
		t.Errorf("ptsd count = %d, want 2", got)
	}
	if got := res.KeywordCounts["combat"]; got != 1 {
		t.Errorf("combat count = %d, want 1", got)
	}
	if got := res.KeywordCounts["absent"]; got != 0 {
		t.Errorf("absent count = %d, want 0", got)
	}
	if res.KeywordContexts != nil {
		t.Error("contexts should be nil when not requested")
	}
}

func TestAnalyze_VATermCensusAlwaysRuns(t *testing.T) {
	a := NewAnalyzer(testConfig())

	res, err := a.Analyze(analyzeSample, nil, false)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	if got := res.VATermsFound["PTSD"]; got != 2 {
		t.Errorf("PTSD census = %d, want 2", got)
	}
	if got := res.VATermsFound["disability rating"]; got != 1 {
		t.Errorf("disability rating census = %d, want 1", got)
	}
	if _, ok := res.VATermsFound["TDIU"]; !ok {
		t.Error("census should include zero-count terms")
	}
}

func TestAnalyze_ContextsBounded(t *testing.T) {
	cfg := testConfig()
	cfg.MaxContextsPerTerm = 2
	a := NewAnalyzer(cfg)

	text := strings.Repeat("The PTSD claim was reviewed. ", 20)
	res, err := a.Analyze(text, []string{"PTSD"}, true)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	if got := res.KeywordCounts["PTSD"]; got != 20 {
		t.Errorf("count = %d, want 20", got)
	}
	if got := len(res.KeywordContexts["PTSD"]); got != 2 {
		t.Errorf("contexts = %d, want cap of 2", got)
	}
	for _, ctx := range res.KeywordContexts["PTSD"] {
		if !strings.Contains(ctx, "PTSD") {
			t.Errorf("context %q does not contain the term", ctx)
		}
	}
}

func TestReadability_MonotonicWithComplexity(t *testing.T) {
	simple := strings.Repeat("The claim was denied. ", 10)
	complexText := strings.Repeat(
		"Notwithstanding the examiner's unequivocal determination, which the representative characterized as dispositive, entitlement remains contested because supplementary documentation was unavailable. ", 10)

	simpleGrade := FleschKincaidGrade(simple)
	complexGrade := FleschKincaidGrade(complexText)

	if complexGrade <= simpleGrade {
		t.Errorf("complex grade %.2f should exceed simple grade %.2f", complexGrade, simpleGrade)
	}
}

func TestReadability_EmptyText(t *testing.T) {
	if got := FleschKincaidGrade(""); got != 0 {
		t.Errorf("empty text grade = %.2f, want 0", got)
	}
}
