package docs

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mattvollmer/jobs-agent/pkg/webfetch"
)

type fakeFetcher struct {
	body        string
	contentType string
	err         error

	calls      int
	lastURL    string
	lastAccept string
}

func (f *fakeFetcher) FetchAs(_ context.Context, url, accept string) (*webfetch.Result, error) {
	f.calls++
	f.lastURL = url
	f.lastAccept = accept
	if f.err != nil {
		return nil, f.err
	}
	return &webfetch.Result{URL: url, StatusCode: 200, ContentType: f.contentType, Body: f.body}, nil
}

func TestReadMissingURLFailsBeforeFetch(t *testing.T) {
	f := &fakeFetcher{}
	r := NewReader(f, "", "", nil)

	_, err := r.Read(context.Background(), "", FormatText, 0)
	if !errors.Is(err, ErrMissingURL) {
		t.Fatalf("err = %v, want ErrMissingURL", err)
	}
	if f.calls != 0 {
		t.Errorf("fetcher was called %d times, want 0", f.calls)
	}
}

func TestReadURLResolutionOrder(t *testing.T) {
	tests := []struct {
		name        string
		arg         string
		defaultURL  string
		defaultList string
		want        string
	}{
		{"explicit argument wins", "https://a.example.com", "https://b.example.com", "https://c.example.com", "https://a.example.com"},
		{"single default next", "", "https://b.example.com", "https://c.example.com", "https://b.example.com"},
		{"first list entry last", "", "", " https://c.example.com , https://d.example.com", "https://c.example.com"},
	}

	for _, tt := range tests {
		f := &fakeFetcher{body: "<html><body>doc</body></html>"}
		r := NewReader(f, tt.defaultURL, tt.defaultList, nil)

		doc, err := r.Read(context.Background(), tt.arg, FormatText, 0)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if doc.SourceURL != tt.want {
			t.Errorf("%s: SourceURL = %q, want %q", tt.name, doc.SourceURL, tt.want)
		}
	}
}

func TestReadDirectExport(t *testing.T) {
	src := "https://docs.google.com/document/d/abc123_-XYZ/edit?tab=t.0"

	tests := []struct {
		format       Format
		wantResolved string
	}{
		{FormatText, "https://docs.google.com/document/d/abc123_-XYZ/export?format=txt"},
		{FormatHTML, "https://docs.google.com/document/d/abc123_-XYZ/export?format=html"},
		{FormatMarkdown, "https://docs.google.com/document/d/abc123_-XYZ/export?format=html"},
	}

	for _, tt := range tests {
		f := &fakeFetcher{body: "<html><body><p>exported</p></body></html>"}
		r := NewReader(f, "", "", nil)

		doc, err := r.Read(context.Background(), src, tt.format, 0)
		if err != nil {
			t.Fatalf("format %s: %v", tt.format, err)
		}

		if doc.AccessMode != ModeDirectExport {
			t.Errorf("format %s: AccessMode = %q", tt.format, doc.AccessMode)
		}
		if doc.ResolvedURL != tt.wantResolved {
			t.Errorf("format %s: ResolvedURL = %q, want %q", tt.format, doc.ResolvedURL, tt.wantResolved)
		}
		// the original edit link must never be fetched directly
		if f.lastURL == src {
			t.Errorf("format %s: fetched the edit URL directly", tt.format)
		}
		if f.calls != 1 {
			t.Errorf("format %s: calls = %d, want 1", tt.format, f.calls)
		}
	}
}

func TestReadPublishedWeb(t *testing.T) {
	src := "https://docs.google.com/document/d/e/2PACX-longtoken/pub"

	f := &fakeFetcher{body: "<html><body><p>published  content</p></body></html>"}
	r := NewReader(f, "", "", nil)

	doc, err := r.Read(context.Background(), src, FormatText, 0)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if doc.AccessMode != ModePublishedWeb {
		t.Errorf("AccessMode = %q", doc.AccessMode)
	}
	if want := "https://docs.google.com/document/d/e/2PACX-longtoken/pub?embedded=true"; doc.ResolvedURL != want {
		t.Errorf("ResolvedURL = %q, want %q", doc.ResolvedURL, want)
	}
	if doc.Content != "published content" {
		t.Errorf("Content = %q", doc.Content)
	}
}

func TestReadRawFetch(t *testing.T) {
	src := "https://example.com/about"
	html := "<html><head><style>p{}</style></head><body><p>hello   world</p></body></html>"

	tests := []struct {
		format Format
		want   string
	}{
		{FormatText, "hello world"},
		{FormatHTML, html},
		{FormatMarkdown, "hello world"},
	}

	for _, tt := range tests {
		f := &fakeFetcher{body: html}
		r := NewReader(f, "", "", nil)

		doc, err := r.Read(context.Background(), src, tt.format, 0)
		if err != nil {
			t.Fatalf("format %s: %v", tt.format, err)
		}
		if doc.AccessMode != ModeRawFetch {
			t.Errorf("format %s: AccessMode = %q", tt.format, doc.AccessMode)
		}
		if doc.ResolvedURL != src {
			t.Errorf("format %s: ResolvedURL = %q", tt.format, doc.ResolvedURL)
		}
		if doc.Content != tt.want {
			t.Errorf("format %s: Content = %q, want %q", tt.format, doc.Content, tt.want)
		}
	}
}

func TestReadTruncation(t *testing.T) {
	f := &fakeFetcher{body: "<html><body>" + strings.Repeat("x", 200) + "</body></html>"}
	r := NewReader(f, "", "", nil)

	doc, err := r.Read(context.Background(), "https://example.com/x", FormatText, 50)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(doc.Content) != 50 {
		t.Errorf("len(Content) = %d, want 50", len(doc.Content))
	}
	if doc.Length != 50 {
		t.Errorf("Length = %d, want 50", doc.Length)
	}
}

func TestReadUnsupportedFormat(t *testing.T) {
	f := &fakeFetcher{}
	r := NewReader(f, "", "", nil)

	if _, err := r.Read(context.Background(), "https://example.com", Format("pdf"), 0); err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if f.calls != 0 {
		t.Errorf("fetcher was called %d times, want 0", f.calls)
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		limit  int
		format Format
		want   int
	}{
		{0, FormatText, defaultTextChars},
		{0, FormatMarkdown, defaultTextChars},
		{0, FormatHTML, defaultHTMLChars},
		{100, FormatText, 100},
		{9999999, FormatHTML, maxChars},
	}
	for _, tt := range tests {
		if got := clampLimit(tt.limit, tt.format); got != tt.want {
			t.Errorf("clampLimit(%d, %s) = %d, want %d", tt.limit, tt.format, got, tt.want)
		}
	}
}
