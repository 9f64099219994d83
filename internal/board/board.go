// Package board scrapes a server-rendered job board: the listing page and
// individual job pages both carry a JSON payload assigned to a global
// variable inside a script block, readable without executing any script.
package board

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/microcosm-cc/bluemonday"

	"github.com/mattvollmer/jobs-agent/internal/jsontree"
	"github.com/mattvollmer/jobs-agent/pkg/logging"
	"github.com/mattvollmer/jobs-agent/pkg/webfetch"
)

var (
	// ErrPayloadNotFound means the page did not carry the embedded data
	// payload at all, usually an upstream markup change.
	ErrPayloadNotFound = errors.New("embedded job data payload not found")

	// ErrMalformedPayload means the payload was present but not parseable.
	ErrMalformedPayload = errors.New("embedded job data payload is malformed")
)

// payloadPattern matches the global-variable assignment that carries the
// board's data. The non-greedy body bounded by the closing script tag is
// best current behavior, not a contract; the upstream markup can change
// without notice.
var payloadPattern = regexp.MustCompile(`(?s)window\.__appData\s*=\s*(\{.*?\})\s*;?\s*</script>`)

// Fetcher is the single-call HTTP dependency of the board service.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*webfetch.Result, error)
}

// Service reads listings and job details from one configured job board.
type Service struct {
	fetcher  Fetcher
	boardURL string
	sanitize *bluemonday.Policy
	log      *logging.Logger
}

func NewService(f Fetcher, boardURL string, log *logging.Logger) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{
		fetcher:  f,
		boardURL: boardURL,
		sanitize: bluemonday.UGCPolicy(),
		log:      log.Named("board"),
	}
}

// extractPayload pulls the embedded payload out of raw HTML and parses it.
func extractPayload(html string) (jsontree.Value, error) {
	m := payloadPattern.FindStringSubmatch(html)
	if m == nil {
		return jsontree.Value{}, ErrPayloadNotFound
	}

	v, err := jsontree.Parse(m[1])
	if err != nil {
		return jsontree.Value{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return v, nil
}
