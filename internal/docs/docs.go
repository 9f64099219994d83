// Package docs reads publicly reachable documents. Document links come
// in three shapes: direct collaborative-editing links (rewritten to the
// unauthenticated export endpoint), publish-to-web links (fetched as
// published HTML) and arbitrary public pages (fetched as-is).
package docs

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"

	"github.com/mattvollmer/jobs-agent/internal/extract"
	"github.com/mattvollmer/jobs-agent/pkg/logging"
	"github.com/mattvollmer/jobs-agent/pkg/webfetch"
)

// ErrMissingURL means no document URL was given and none is configured.
var ErrMissingURL = errors.New("no document url provided and no default configured")

// AccessMode records how the document was reached.
type AccessMode string

const (
	ModeDirectExport AccessMode = "direct-export"
	ModePublishedWeb AccessMode = "published-web"
	ModeRawFetch     AccessMode = "raw-fetch"
)

// Format selects the output representation.
type Format string

const (
	FormatText     Format = "text"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

const (
	defaultTextChars = 100000
	defaultHTMLChars = 200000
	maxChars         = 500000
)

// Document is the normalized result of one read.
type Document struct {
	SourceURL   string     `json:"sourceUrl"`
	ResolvedURL string     `json:"resolvedUrl"`
	AccessMode  AccessMode `json:"accessMode"`
	Format      Format     `json:"format"`
	Content     string     `json:"content"`
	Length      int        `json:"length"`
}

// Published links carry an "e/" prefixed ID; check them before the plain
// document-ID shape, which would also match.
var (
	publishedIDPattern = regexp.MustCompile(`/document/d/e/([a-zA-Z0-9_-]+)`)
	documentIDPattern  = regexp.MustCompile(`/document/d/([a-zA-Z0-9_-]+)`)
)

// Fetcher is the HTTP dependency of the reader.
type Fetcher interface {
	FetchAs(ctx context.Context, url, accept string) (*webfetch.Result, error)
}

// Reader fetches and normalizes public documents.
type Reader struct {
	fetcher     Fetcher
	defaultURL  string
	defaultURLs []string
	log         *logging.Logger
}

// NewReader builds a Reader. defaultURL is a single configured link;
// defaultURLList is a comma-separated fallback list of which only the
// first entry is ever used.
func NewReader(f Fetcher, defaultURL, defaultURLList string, log *logging.Logger) *Reader {
	if log == nil {
		log = logging.Nop()
	}

	var list []string
	for _, entry := range strings.Split(defaultURLList, ",") {
		if trimmed := strings.TrimSpace(entry); trimmed != "" {
			list = append(list, trimmed)
		}
	}

	return &Reader{
		fetcher:     f,
		defaultURL:  defaultURL,
		defaultURLs: list,
		log:         log.Named("docs"),
	}
}

// Read fetches the document at rawURL (or the configured default when
// rawURL is empty) and returns it in the requested format, truncated to
// limit characters (0 means the format default).
func (r *Reader) Read(ctx context.Context, rawURL string, format Format, limit int) (*Document, error) {
	src := r.resolveSource(rawURL)
	if src == "" {
		return nil, ErrMissingURL
	}

	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatText, FormatHTML, FormatMarkdown:
	default:
		return nil, fmt.Errorf("unsupported document format %q", format)
	}

	limit = clampLimit(limit, format)

	mode, resolved := resolveAccess(src, format)

	accept := webfetch.AcceptHTML
	if mode == ModeDirectExport && format == FormatText {
		accept = webfetch.AcceptText
	}

	res, err := r.fetcher.FetchAs(ctx, resolved, accept)
	if err != nil {
		return nil, err
	}

	content := res.Body
	switch mode {
	case ModeDirectExport:
		// The export endpoint already returns the requested format,
		// except markdown which is converted from the HTML export.
		if format == FormatMarkdown {
			content = toMarkdown(content)
		}
	default:
		switch format {
		case FormatText:
			content = htmlToText(content)
		case FormatMarkdown:
			content = toMarkdown(content)
		}
	}

	content = extract.Truncate(content, limit)

	r.log.Debug("read document", "source", src, "mode", mode, "format", format, "length", len(content))

	return &Document{
		SourceURL:   src,
		ResolvedURL: resolved,
		AccessMode:  mode,
		Format:      format,
		Content:     content,
		Length:      len([]rune(content)),
	}, nil
}

// resolveSource applies the URL resolution order: explicit argument,
// configured single default, first of the configured list.
func (r *Reader) resolveSource(rawURL string) string {
	if rawURL != "" {
		return rawURL
	}
	if r.defaultURL != "" {
		return r.defaultURL
	}
	if len(r.defaultURLs) > 0 {
		return r.defaultURLs[0]
	}
	return ""
}

// resolveAccess classifies the link shape and constructs the URL that is
// actually fetched. Direct-edit links are never fetched directly; the
// export endpoint is used instead.
func resolveAccess(src string, format Format) (AccessMode, string) {
	if m := publishedIDPattern.FindStringSubmatch(src); m != nil {
		return ModePublishedWeb, fmt.Sprintf("https://docs.google.com/document/d/e/%s/pub?embedded=true", m[1])
	}

	if m := documentIDPattern.FindStringSubmatch(src); m != nil {
		exportFormat := "txt"
		if format == FormatHTML || format == FormatMarkdown {
			exportFormat = "html"
		}
		return ModeDirectExport, fmt.Sprintf("https://docs.google.com/document/d/%s/export?format=%s", m[1], exportFormat)
	}

	return ModeRawFetch, src
}

func clampLimit(limit int, format Format) int {
	if limit <= 0 {
		if format == FormatHTML {
			return defaultHTMLChars
		}
		return defaultTextChars
	}
	if limit > maxChars {
		return maxChars
	}
	return limit
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// htmlToText strips markup down to collapsed body text. Unparseable
// input falls back to the raw string.
func htmlToText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	doc.Find("script, style, noscript").Remove()
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(doc.Find("body").Text(), " "))
}

func toMarkdown(html string) string {
	md, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return htmlToText(html)
	}
	return strings.TrimSpace(md)
}
