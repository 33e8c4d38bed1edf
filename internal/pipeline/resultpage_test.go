package pipeline

import (
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html><body>
<div id="results-count">About 1,234 results</div>
<div class="result">
  <h4 class="title"><a href="https://www.va.gov/vetapp21/files5/21034567.txt">Citation Nr: 21034567</a></h4>
  <span class="description">Entitlement to service connection for PTSD is granted.</span>
</div>
<div class="result">
  <h4 class="title"><a href="https://www.va.gov/vetapp21/files5/21098765.txt">Citation Nr: 21098765</a></h4>
  <span class="description">The claim for an increased rating is remanded.</span>
</div>
<div class="result">
  <h4 class="title">Unlinked stray result</h4>
</div>
<a class="next" href="/search?affiliate=bvadecisions&amp;page=2&amp;query=PTSD">Next</a>
</body></html>`

func TestParse_Fragments(t *testing.T) {
	p := NewResultPageParser()
	page, err := p.Parse(samplePage, "https://search.usa.gov/search?affiliate=bvadecisions&query=PTSD")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if len(page.Fragments) != 2 {
		t.Fatalf("fragments = %d, want 2 (unlinked result skipped)", len(page.Fragments))
	}

	first := page.Fragments[0]
	if first.URL != "https://www.va.gov/vetapp21/files5/21034567.txt" {
		t.Errorf("url = %q", first.URL)
	}
	if first.Title != "Citation Nr: 21034567" {
		t.Errorf("title = %q", first.Title)
	}
	if first.Snippet != "Entitlement to service connection for PTSD is granted." {
		t.Errorf("snippet = %q", first.Snippet)
	}
	if first.CaseNumber != "21034567" {
		t.Errorf("case number = %q", first.CaseNumber)
	}
}

func TestParse_NextLinkResolved(t *testing.T) {
	p := NewResultPageParser()
	page, err := p.Parse(samplePage, "https://search.usa.gov/search?affiliate=bvadecisions&query=PTSD")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	want := "https://search.usa.gov/search?affiliate=bvadecisions&page=2&query=PTSD"
	if page.NextURL != want {
		t.Errorf("next url = %q, want %q", page.NextURL, want)
	}
}

func TestParse_TotalCount(t *testing.T) {
	p := NewResultPageParser()
	page, err := p.Parse(samplePage, "https://search.usa.gov/search")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if page.TotalCount != 1234 {
		t.Errorf("total = %d, want 1234", page.TotalCount)
	}
}

func TestParse_EmptyPage(t *testing.T) {
	p := NewResultPageParser()
	page, err := p.Parse("<html><body><p>No results found.</p></body></html>", "https://search.usa.gov/search")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(page.Fragments) != 0 {
		t.Errorf("fragments = %d, want 0", len(page.Fragments))
	}
	if page.NextURL != "" {
		t.Errorf("next url = %q, want empty", page.NextURL)
	}
}

func TestParse_NextByAnchorText(t *testing.T) {
	pageHTML := `<html><body>
<div class="result"><h4 class="title"><a href="https://www.va.gov/vetapp20/files2/20011111.txt">Doc</a></h4></div>
<a href="/search?page=3">next</a>
</body></html>`

	p := NewResultPageParser()
	page, err := p.Parse(pageHTML, "https://search.usa.gov/search?page=2")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if page.NextURL != "https://search.usa.gov/search?page=3" {
		t.Errorf("next url = %q", page.NextURL)
	}
}
