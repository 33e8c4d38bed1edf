package pipeline

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/va2ai/bvaapi2/internal/extract"
	"github.com/va2ai/bvaapi2/internal/model"
)

// ParsedPage is the structured view of one search-results page. An empty
// Fragments slice is not an error: the orchestrator treats it as the natural
// end of pagination.
type ParsedPage struct {
	Fragments  []model.ResultFragment
	NextURL    string // absolute URL of the next page, or "" when exhausted
	TotalCount int    // source-reported total, or 0 when not shown
}

// ResultPageParser extracts result fragments from the search affiliate's
// HTML. Markup drift upstream degrades to fewer fragments, never an error.
type ResultPageParser struct{}

// NewResultPageParser creates a ResultPageParser.
func NewResultPageParser() *ResultPageParser {
	return &ResultPageParser{}
}

var totalCountRe = regexp.MustCompile(`([\d,]+)\s+results`)

// Parse extracts the fragments, next-page link and reported total from one
// fetched page. pageURL anchors relative links.
func (p *ResultPageParser) Parse(pageHTML string, pageURL string) (*ParsedPage, error) {
	doc, err := html.Parse(strings.NewReader(pageHTML))
	if err != nil {
		return nil, fmt.Errorf("parse results page: %w", err)
	}

	page := &ParsedPage{}

	for _, result := range findAll(doc, func(n *html.Node) bool {
		return isElement(n, "div") && hasClass(n, "result")
	}) {
		if frag, ok := parseResult(result); ok {
			page.Fragments = append(page.Fragments, frag)
		}
	}

	page.NextURL = nextLink(doc, pageURL)

	if m := totalCountRe.FindStringSubmatch(pageHTML); m != nil {
		if n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", "")); err == nil {
			page.TotalCount = n
		}
	}

	return page, nil
}

// parseResult extracts one fragment from a div.result node. A result with no
// linked title is skipped.
func parseResult(result *html.Node) (model.ResultFragment, bool) {
	title := findFirst(result, func(n *html.Node) bool {
		return isElement(n, "h4") && hasClass(n, "title")
	})
	if title == nil {
		return model.ResultFragment{}, false
	}
	link := findFirst(title, func(n *html.Node) bool {
		return isElement(n, "a") && getAttribute(n, "href") != ""
	})
	if link == nil {
		return model.ResultFragment{}, false
	}

	href := getAttribute(link, "href")
	frag := model.ResultFragment{
		URL:        href,
		Title:      extractText(link),
		Year:       extract.YearFromURL(href),
		CaseNumber: extract.CaseNumberFromURL(href),
	}

	if snippet := findFirst(result, func(n *html.Node) bool {
		return isElement(n, "span") && hasClass(n, "description")
	}); snippet != nil {
		frag.Snippet = extractText(snippet)
	}

	return frag, true
}

// nextLink finds the pagination link, either by class or by anchor text, and
// resolves it against the current page URL.
func nextLink(doc *html.Node, pageURL string) string {
	anchor := findFirst(doc, func(n *html.Node) bool {
		return isElement(n, "a") && hasClass(n, "next") && getAttribute(n, "href") != ""
	})
	if anchor == nil {
		anchor = findFirst(doc, func(n *html.Node) bool {
			return isElement(n, "a") && getAttribute(n, "href") != "" &&
				strings.EqualFold(extractText(n), "Next")
		})
	}
	if anchor == nil {
		return ""
	}

	href := getAttribute(anchor, "href")
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	next, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(next).String()
}
