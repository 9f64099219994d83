package board

import (
	"context"
	"net/url"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"

	"github.com/mattvollmer/jobs-agent/internal/jsontree"
)

// JobDetail is the reconciled view of a single job page. Fields come
// from up to three independent sources merged by precedence; any of them
// may be absent without failing the operation.
type JobDetail struct {
	ID                  string `json:"id,omitempty"`
	URL                 string `json:"url"`
	Title               string `json:"title"`
	Department          string `json:"department,omitempty"`
	Team                string `json:"team,omitempty"`
	Location            string `json:"location,omitempty"`
	EmploymentType      string `json:"employmentType,omitempty"`
	PublishedDate       string `json:"publishedDate,omitempty"`
	CompensationSummary string `json:"compensationSummary,omitempty"`
	DescriptionMarkup   string `json:"descriptionMarkup,omitempty"`
	DescriptionMarkdown string `json:"descriptionMarkdown,omitempty"`
	ApplyURL            string `json:"applyUrl,omitempty"`
}

// GetJobDetail fetches one job page and reconciles its data sources:
//
//	B: the first nested `posting` object inside the embedded payload
//	A: the first payload node shaped like a job record (id + title),
//	   constrained to the URL-derived id when one is available
//	C: the page's JSON-LD job-posting script block
//
// Merge precedence is B > A > C; the nested posting shape carries the
// most complete data when it is present. Only a missing or malformed
// payload is fatal; each candidate source tolerates absence.
func (s *Service) GetJobDetail(ctx context.Context, jobURL string) (*JobDetail, error) {
	res, err := s.fetcher.Fetch(ctx, jobURL)
	if err != nil {
		return nil, err
	}

	payload, err := extractPayload(res.Body)
	if err != nil {
		return nil, err
	}

	wantID := idFromURL(jobURL)

	candA := findJobRecord(payload, wantID)
	candB := findNestedPosting(payload)
	candC := findStructuredData(res.Body)

	merged := mergeCandidates(candB, candA, candC)

	detail := &JobDetail{
		ID:                  merged.id,
		URL:                 jobURL,
		Title:               merged.title,
		Department:          merged.department,
		Team:                merged.team,
		Location:            merged.location,
		EmploymentType:      merged.employmentType,
		PublishedDate:       merged.publishedDate,
		CompensationSummary: merged.compensation,
	}

	if merged.description != "" {
		detail.DescriptionMarkup = s.sanitize.Sanitize(merged.description)
		if md, err := htmltomarkdown.ConvertString(merged.description); err == nil {
			detail.DescriptionMarkdown = strings.TrimSpace(md)
		}
	}

	detail.ApplyURL = findApplyLink(res.Body, jobURL)

	s.log.Debug("resolved job detail", "url", jobURL, "id", detail.ID,
		"haveNestedPosting", candB != nil, "haveStructuredData", candC != nil)

	return detail, nil
}

// idFromURL derives a candidate job identifier from the final path
// segment. Best effort: an unparseable URL yields "".
func idFromURL(jobURL string) string {
	u, err := url.Parse(jobURL)
	if err != nil {
		return ""
	}
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

// findJobRecord is candidate A: the first payload node carrying a
// non-empty id and a string title, matching wantID when given.
func findJobRecord(payload jsontree.Value, wantID string) *candidate {
	node, ok := jsontree.FindFirst(payload, func(v jsontree.Value) bool {
		if v.Kind != jsontree.Object {
			return false
		}
		id := v.StrAt("id")
		if id == "" {
			return false
		}
		if title, ok := v.Get("title"); !ok || title.Kind != jsontree.String {
			return false
		}
		return wantID == "" || id == wantID
	})
	if !ok {
		return nil
	}
	return candidateFromPosting(node)
}

// findNestedPosting is candidate B: the first wrapper whose `posting`
// member is an object with a string title. The candidate is the nested
// posting, not the wrapper.
func findNestedPosting(payload jsontree.Value) *candidate {
	wrapper, ok := jsontree.FindFirst(payload, func(v jsontree.Value) bool {
		posting, ok := v.Get("posting")
		if !ok || posting.Kind != jsontree.Object {
			return false
		}
		title, ok := posting.Get("title")
		return ok && title.Kind == jsontree.String
	})
	if !ok {
		return nil
	}
	posting, _ := wrapper.Get("posting")
	return candidateFromPosting(posting)
}

// candidateFromPosting projects the payload's posting schema, applying
// the compensation redaction rule.
func candidateFromPosting(p jsontree.Value) *candidate {
	c := &candidate{
		id:             p.StrAt("id"),
		title:          p.StrAt("title"),
		department:     p.StrAt("departmentName"),
		team:           p.StrAt("teamName"),
		location:       p.StrAt("locationName"),
		employmentType: p.StrAt("employmentType"),
		publishedDate:  p.StrAt("publishedDate"),
		description:    p.StrAt("descriptionHtml"),
	}
	if p.BoolAt("shouldDisplayCompensationOnJobPostings") {
		c.compensation = p.StrAt("compensationTierSummary")
	}
	return c
}

// findStructuredData is candidate C: the first JSON-LD script block
// typed as a job posting. Parse failures yield no candidate rather than
// an error.
func findStructuredData(html string) *candidate {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var cand *candidate
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		v, err := jsontree.Parse(s.Text())
		if err != nil {
			return true
		}
		if !strings.EqualFold(v.StrAt("@type"), "JobPosting") {
			return true
		}
		cand = &candidate{
			title:          v.StrAt("title"),
			employmentType: v.StrAt("employmentType"),
			publishedDate:  v.StrAt("datePosted"),
			location:       v.StrAt("jobLocation", "address", "addressLocality"),
			description:    v.StrAt("description"),
		}
		return false
	})
	return cand
}

// findApplyLink scans for the first anchor whose visible text contains
// "apply" and resolves its href against the job page URL. A malformed
// href leaves the result empty instead of failing the operation.
func findApplyLink(html, jobURL string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	base, err := url.Parse(jobURL)
	if err != nil {
		return ""
	}

	var apply string
	doc.Find("a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.Contains(strings.ToLower(s.Text()), "apply") {
			return true
		}
		// First matching anchor decides the outcome: a missing or
		// malformed href leaves the result empty.
		href, _ := s.Attr("href")
		if href != "" {
			if ref, err := url.Parse(href); err == nil {
				apply = base.ResolveReference(ref).String()
			}
		}
		return false
	})
	return apply
}
