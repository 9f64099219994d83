// Package extract pulls structured metadata out of raw HTML: title,
// description, headings, links and plain text, each independently
// selectable. A selector that matches nothing yields an empty value,
// never an error.
package extract

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mattvollmer/jobs-agent/pkg/webfetch"
)

// Field names one of the extractable metadata fields.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldHeadings    Field = "headings"
	FieldLinks       Field = "links"
	FieldText        Field = "text"
)

const (
	defaultTextLimit = 10000
	maxTextLimit     = 200000
	maxLinks         = 500
)

// AllFields lists every extractable field, in output order.
func AllFields() []Field {
	return []Field{FieldTitle, FieldDescription, FieldHeadings, FieldLinks, FieldText}
}

// Options selects which fields to extract and how much text to keep.
type Options struct {
	Fields    []Field // empty means all
	TextLimit int     // characters; <=0 means the default
}

// Link pairs a raw (unresolved) href with its trimmed anchor text.
type Link struct {
	Href string `json:"href"`
	Text string `json:"text"`
}

// Headings holds level-1 and level-2 heading text in document order.
type Headings struct {
	H1 []string `json:"h1"`
	H2 []string `json:"h2"`
}

// Metadata holds the extracted fields. A nil pointer means the field was
// not requested; a requested field is always non-nil, possibly empty.
type Metadata struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Headings    *Headings `json:"headings,omitempty"`
	Links       *[]Link   `json:"links,omitempty"`
	Text        *string   `json:"text,omitempty"`
}

// PageResult is Metadata plus the always-present response facts.
type PageResult struct {
	URL         string   `json:"url"`
	StatusCode  int      `json:"status"`
	ContentType string   `json:"contentType"`
	Metadata    Metadata `json:"metadata"`
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Extract parses html and computes the requested fields. Fields are
// computed independently; a missing selector never fails the others.
func Extract(html string, opts Options) (Metadata, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Metadata{}, fmt.Errorf("parsing HTML: %w", err)
	}

	fields := opts.Fields
	if len(fields) == 0 {
		fields = AllFields()
	}

	limit := opts.TextLimit
	if limit <= 0 {
		limit = defaultTextLimit
	}
	if limit > maxTextLimit {
		limit = maxTextLimit
	}

	var meta Metadata
	for _, f := range fields {
		switch f {
		case FieldTitle:
			t := extractTitle(doc)
			meta.Title = &t
		case FieldDescription:
			d := extractDescription(doc)
			meta.Description = &d
		case FieldHeadings:
			h := extractHeadings(doc)
			meta.Headings = &h
		case FieldLinks:
			l := extractLinks(doc)
			meta.Links = &l
		}
	}

	// Text last: stripping script/style mutates the document.
	for _, f := range fields {
		if f == FieldText {
			t := extractText(doc, limit)
			meta.Text = &t
		}
	}

	return meta, nil
}

func extractTitle(doc *goquery.Document) string {
	if og, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok && strings.TrimSpace(og) != "" {
		return strings.TrimSpace(og)
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func extractDescription(doc *goquery.Document) string {
	if d, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok && strings.TrimSpace(d) != "" {
		return strings.TrimSpace(d)
	}
	if og, ok := doc.Find(`meta[property="og:description"]`).First().Attr("content"); ok {
		return strings.TrimSpace(og)
	}
	return ""
}

func extractHeadings(doc *goquery.Document) Headings {
	var h Headings
	doc.Find("h1").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			h.H1 = append(h.H1, text)
		}
	})
	doc.Find("h2").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			h.H2 = append(h.H2, text)
		}
	})
	return h
}

func extractLinks(doc *goquery.Document) []Link {
	links := []Link{}
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if href == "" {
			// empty hrefs are dropped and do not count toward the cap
			return true
		}
		links = append(links, Link{Href: href, Text: strings.TrimSpace(s.Text())})
		return len(links) < maxLinks
	})
	return links
}

func extractText(doc *goquery.Document, limit int) string {
	doc.Find("script, style, noscript").Remove()
	text := whitespaceRun.ReplaceAllString(doc.Find("body").Text(), " ")
	return Truncate(strings.TrimSpace(text), limit)
}

// Truncate slices s to at most limit characters. Not word-boundary aware.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// Fetcher is the single-call HTTP dependency of the extraction service.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*webfetch.Result, error)
}

// Service fetches a page and extracts metadata from it.
type Service struct {
	fetcher Fetcher
}

func NewService(f Fetcher) *Service {
	return &Service{fetcher: f}
}

// ExtractPage fetches url and returns the requested metadata alongside
// the response status and content type.
func (s *Service) ExtractPage(ctx context.Context, url string, opts Options) (*PageResult, error) {
	res, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	meta, err := Extract(res.Body, opts)
	if err != nil {
		return nil, err
	}

	return &PageResult{
		URL:         res.URL,
		StatusCode:  res.StatusCode,
		ContentType: res.ContentType,
		Metadata:    meta,
	}, nil
}
