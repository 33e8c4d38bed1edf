package extract

import (
	"reflect"
	"strings"
	"testing"
)

const sampleDecision = `Citation Nr: 1234567
Decision Date: 03/15/19    Archive Date: 03/25/19

Docket No.  16-22 345

DATE: March 15, 2019

On appeal from the Department of Veterans Affairs Regional Office in St. Petersburg, Florida.

THE ISSUES

1. Entitlement to service connection for PTSD.
2. Entitlement to an increased rating for bilateral hearing loss.

Pursuant to 38 C.F.R. § 3.303 and 38 U.S.C. § 1110, service connection
requires evidence of a current disability. See also 38 C.F.R. § 4.85 and
M21-1, Part III.

ORDER

Entitlement to service connection for PTSD is GRANTED.

JANE A. EXAMPLE
Veterans Law Judge, Board of Veterans' Appeals`

func TestExtract_FullDocument(t *testing.T) {
	md := NewExtractor().Extract(sampleDecision)

	if md.DocketNo != "16-22 345" {
		t.Errorf("docket = %q, want %q", md.DocketNo, "16-22 345")
	}
	if md.DecisionDate != "2019-03-15" {
		t.Errorf("decision_date = %q, want 2019-03-15", md.DecisionDate)
	}
	if md.Outcome != "Granted" {
		t.Errorf("outcome = %q, want Granted", md.Outcome)
	}
	if md.Judge != "JANE A. EXAMPLE" {
		t.Errorf("judge = %q, want JANE A. EXAMPLE", md.Judge)
	}
	if !strings.Contains(md.RegionalOffice, "St. Petersburg") {
		t.Errorf("regional_office = %q, want St. Petersburg", md.RegionalOffice)
	}
}

func TestExtract_IssuesVocabularyOrderAndDedup(t *testing.T) {
	md := NewExtractor().Extract(sampleDecision)

	// Ordered by first occurrence in the text, one entry per term.
	want := []string{"service connection", "PTSD", "increased rating", "hearing loss"}
	if !reflect.DeepEqual(md.Issues, want) {
		t.Fatalf("issues = %v, want %v", md.Issues, want)
	}
	seen := make(map[string]int)
	for _, issue := range md.Issues {
		seen[issue]++
		if seen[issue] > 1 {
			t.Errorf("issue %q reported more than once", issue)
		}
	}
	if len(md.Issues) > maxIssues {
		t.Errorf("issues capped at %d, got %d", maxIssues, len(md.Issues))
	}
}

func TestExtract_Citations(t *testing.T) {
	md := NewExtractor().Extract(sampleDecision)

	want := []string{
		"38 C.F.R. § 3.303",
		"38 U.S.C. § 1110",
		"38 C.F.R. § 4.85",
		"M21-1, Part III",
	}
	if !reflect.DeepEqual(md.Citations, want) {
		t.Errorf("citations = %v, want %v", md.Citations, want)
	}
}

func TestExtract_OutcomePrecedence(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			// Remand is the operative disposition even when a denial
			// appears earlier in the text.
			name: "denied then remanded",
			text: "The claim was previously denied.\n\nORDER\n\nThe issue is REMANDED for further development.",
			want: "Remanded",
		},
		{
			name: "all three dispositions",
			text: "ORDER\n\nService connection is GRANTED. The rating claim is DENIED. The TDIU claim is REMANDED.",
			want: "Mixed",
		},
		{
			name: "order granted",
			text: "ORDER\n\nEntitlement to service connection is GRANTED.",
			want: "Granted",
		},
		{
			name: "order denied",
			text: "ORDER\n\nEntitlement to an increased rating is DENIED.",
			want: "Denied",
		},
		{
			name: "no disposition",
			text: "This document discusses procedural history only.",
			want: "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := NewExtractor().Extract(tt.text)
			if md.Outcome != tt.want {
				t.Errorf("outcome = %q, want %q", md.Outcome, tt.want)
			}
		})
	}
}

func TestExtract_NeverFails(t *testing.T) {
	for _, text := range []string{"", "short", strings.Repeat("x", 10000)} {
		md := NewExtractor().Extract(text)
		if md.Outcome != "Unknown" {
			t.Errorf("outcome for unmatched text = %q, want Unknown", md.Outcome)
		}
		if md.DocketNo != "" || md.Judge != "" {
			t.Errorf("expected empty fields for unmatched text, got %+v", md)
		}
	}
}

func TestYearFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want int
	}{
		{"https://www.va.gov/vetapp19/files3/1912345.txt", 0},
		{"https://www.va.gov/vetapp/2019/1912345.txt", 2019},
		{"https://example.com/files/1998/9801234.txt", 1998},
		{"https://example.com/no-year/file.txt", 0},
	}
	for _, tt := range tests {
		if got := YearFromURL(tt.url); got != tt.want {
			t.Errorf("YearFromURL(%q) = %d, want %d", tt.url, got, tt.want)
		}
	}
}

func TestCaseNumberFromURL(t *testing.T) {
	if got := CaseNumberFromURL("https://example.com/2019/1912345.txt"); got != "1912345" {
		t.Errorf("case number = %q, want 1912345", got)
	}
	if got := CaseNumberFromURL("https://example.com/2019/page.html"); got != "" {
		t.Errorf("case number for non-txt = %q, want empty", got)
	}
}
