package board

import (
	"context"
	"strings"

	"github.com/mattvollmer/jobs-agent/internal/jsontree"
)

// JobSummary is one posting as it appears on the listing page.
// CompensationSummary is populated only when the source marks
// compensation as publicly displayable; otherwise it stays empty even if
// a value exists upstream.
type JobSummary struct {
	ID                  string `json:"id"`
	Title               string `json:"title"`
	Department          string `json:"department,omitempty"`
	Team                string `json:"team,omitempty"`
	Location            string `json:"location,omitempty"`
	WorkplaceType       string `json:"workplaceType,omitempty"`
	EmploymentType      string `json:"employmentType,omitempty"`
	IsListed            *bool  `json:"isListed,omitempty"`
	PublishedDate       string `json:"publishedDate,omitempty"`
	CompensationSummary string `json:"compensationSummary,omitempty"`
	JobURL              string `json:"jobUrl"`
}

// Listing is the normalized result of reading the board page once.
type Listing struct {
	SourceURL string       `json:"sourceUrl"`
	Count     int          `json:"count"`
	Jobs      []JobSummary `json:"jobs"`
}

// postingsPaths lists the payload nesting shapes observed across site
// versions, probed in order.
var postingsPaths = [][]string{
	{"jobBoard", "jobPostings"},
	{"jobPostings"},
}

// ListJobs fetches the board page and returns its postings in source
// order. An absent postings collection is an empty listing, not an error.
func (s *Service) ListJobs(ctx context.Context) (*Listing, error) {
	res, err := s.fetcher.Fetch(ctx, s.boardURL)
	if err != nil {
		return nil, err
	}

	payload, err := extractPayload(res.Body)
	if err != nil {
		return nil, err
	}

	postings := jsontree.FirstArray(payload, postingsPaths...)

	jobs := make([]JobSummary, 0, len(postings))
	for _, p := range postings {
		if p.Kind != jsontree.Object {
			continue
		}
		jobs = append(jobs, s.projectSummary(p))
	}

	s.log.Debug("listed jobs", "source", s.boardURL, "count", len(jobs))

	return &Listing{
		SourceURL: s.boardURL,
		Count:     len(jobs),
		Jobs:      jobs,
	}, nil
}

func (s *Service) projectSummary(p jsontree.Value) JobSummary {
	sum := JobSummary{
		ID:             p.StrAt("id"),
		Title:          p.StrAt("title"),
		Department:     p.StrAt("departmentName"),
		Team:           p.StrAt("teamName"),
		Location:       p.StrAt("locationName"),
		WorkplaceType:  p.StrAt("workplaceType"),
		EmploymentType: p.StrAt("employmentType"),
		PublishedDate:  p.StrAt("publishedDate"),
	}

	if listed, ok := p.Get("isListed"); ok && listed.Kind == jsontree.Bool {
		v := listed.B
		sum.IsListed = &v
	}

	// Redaction rule: the tier summary is surfaced only when the board
	// explicitly flags compensation as displayable.
	if p.BoolAt("shouldDisplayCompensationOnJobPostings") {
		sum.CompensationSummary = p.StrAt("compensationTierSummary")
	}

	// The payload's own URL field is ignored; the link is always derived
	// from the configured board URL.
	sum.JobURL = strings.TrimSuffix(s.boardURL, "/") + "/" + sum.ID

	return sum
}
