package board

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestMergeCandidatesPrecedence(t *testing.T) {
	a := &candidate{title: "from-a", location: "loc-a", department: "dep-a"}
	b := &candidate{title: "from-b", location: "loc-b"}
	c := &candidate{title: "from-c", location: "loc-c", department: "dep-c", publishedDate: "2026-01-01"}

	merged := mergeCandidates(b, a, c)

	if merged.title != "from-b" {
		t.Errorf("title = %q, want b's value", merged.title)
	}
	if merged.location != "loc-b" {
		t.Errorf("location = %q, want b's value", merged.location)
	}
	// b has no department: falls through to a
	if merged.department != "dep-a" {
		t.Errorf("department = %q, want a's value", merged.department)
	}
	// only c has publishedDate
	if merged.publishedDate != "2026-01-01" {
		t.Errorf("publishedDate = %q, want c's value", merged.publishedDate)
	}
}

func TestMergeCandidatesNilAndEmpty(t *testing.T) {
	c := &candidate{title: "only"}

	merged := mergeCandidates(nil, &candidate{}, c)
	if merged.title != "only" {
		t.Errorf("title = %q, want %q", merged.title, "only")
	}
	if merged.location != "" {
		t.Errorf("location = %q, want empty", merged.location)
	}
}

const jobPageURL = boardURL + "/j1"

// detailPage builds a job page whose payload carries both a plain job
// record and a nested posting wrapper, plus JSON-LD and an apply anchor.
func detailPage(payload, extraHTML string) string {
	return fmt.Sprintf(`<html><head><script>window.__appData = %s;</script></head><body>%s</body></html>`, payload, extraHTML)
}

func TestGetJobDetailMergesSources(t *testing.T) {
	payload := `{
		"jobPosting": {"id":"j1","title":"Engineer (flat)","departmentName":"Engineering"},
		"posting": {"id":"j1","title":"Engineer (nested)","locationName":"Berlin",
			"shouldDisplayCompensationOnJobPostings":true,"compensationTierSummary":"$170K",
			"descriptionHtml":"<p>Build <b>things</b>.</p>"}
	}`
	jsonLD := `<script type="application/ld+json">{"@type":"JobPosting","title":"Engineer (ld)","datePosted":"2026-02-01","employmentType":"FULL_TIME"}</script>`
	applyAnchor := `<a href="/acme/j1/application">Apply for this Job</a>`

	svc := newTestService(map[string]string{
		jobPageURL: detailPage(payload, jsonLD+applyAnchor),
	})

	detail, err := svc.GetJobDetail(context.Background(), jobPageURL)
	if err != nil {
		t.Fatalf("GetJobDetail: %v", err)
	}

	// nested posting (B) wins over the flat record (A) and JSON-LD (C)
	if detail.Title != "Engineer (nested)" {
		t.Errorf("Title = %q, want nested posting's title", detail.Title)
	}
	if detail.Location != "Berlin" {
		t.Errorf("Location = %q", detail.Location)
	}
	// B has no department: falls through to A
	if detail.Department != "Engineering" {
		t.Errorf("Department = %q, want flat record's value", detail.Department)
	}
	// only C has these
	if detail.PublishedDate != "2026-02-01" {
		t.Errorf("PublishedDate = %q, want JSON-LD value", detail.PublishedDate)
	}
	if detail.EmploymentType != "FULL_TIME" {
		t.Errorf("EmploymentType = %q, want JSON-LD value", detail.EmploymentType)
	}

	if detail.CompensationSummary != "$170K" {
		t.Errorf("CompensationSummary = %q", detail.CompensationSummary)
	}
	if !strings.Contains(detail.DescriptionMarkup, "<b>things</b>") {
		t.Errorf("DescriptionMarkup = %q", detail.DescriptionMarkup)
	}
	if !strings.Contains(detail.DescriptionMarkdown, "**things**") {
		t.Errorf("DescriptionMarkdown = %q", detail.DescriptionMarkdown)
	}
	if detail.ApplyURL != "https://jobs.example.com/acme/j1/application" {
		t.Errorf("ApplyURL = %q", detail.ApplyURL)
	}
	if detail.URL != jobPageURL {
		t.Errorf("URL = %q", detail.URL)
	}
}

func TestGetJobDetailIDConstraint(t *testing.T) {
	// two plain job records; the URL-derived id must select the second
	payload := `{
		"other": {"id":"j0","title":"Wrong role"},
		"wanted": {"id":"j1","title":"Right role"}
	}`

	svc := newTestService(map[string]string{jobPageURL: detailPage(payload, "")})

	detail, err := svc.GetJobDetail(context.Background(), jobPageURL)
	if err != nil {
		t.Fatalf("GetJobDetail: %v", err)
	}
	if detail.Title != "Right role" {
		t.Errorf("Title = %q, want the id-matched record", detail.Title)
	}
	if detail.ID != "j1" {
		t.Errorf("ID = %q, want j1", detail.ID)
	}
}

func TestGetJobDetailMissingSourcesAreNotFatal(t *testing.T) {
	// payload parses but contains no recognizable job record, no nested
	// posting; page has no JSON-LD and no apply anchor
	svc := newTestService(map[string]string{
		jobPageURL: detailPage(`{"organization":{"name":"Acme"}}`, ""),
	})

	detail, err := svc.GetJobDetail(context.Background(), jobPageURL)
	if err != nil {
		t.Fatalf("GetJobDetail: %v", err)
	}
	if detail.Title != "" || detail.ApplyURL != "" {
		t.Errorf("expected empty fields, got %+v", detail)
	}
}

func TestGetJobDetailPayloadErrorsAreFatal(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"missing payload", `<html><body>plain page</body></html>`, ErrPayloadNotFound},
		{"malformed payload", `<script>window.__appData = {"x": };</script>`, ErrMalformedPayload},
	}

	for _, tt := range tests {
		svc := newTestService(map[string]string{jobPageURL: tt.body})
		_, err := svc.GetJobDetail(context.Background(), jobPageURL)
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestFindApplyLink(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			"relative href resolved",
			`<a href="/acme/j1/application">Apply now</a>`,
			"https://jobs.example.com/acme/j1/application",
		},
		{
			"case insensitive match",
			`<a href="https://apply.example.com/form">APPLY HERE</a>`,
			"https://apply.example.com/form",
		},
		{
			"first matching anchor wins",
			`<a href="/first">apply</a><a href="/second">apply too</a>`,
			"https://jobs.example.com/first",
		},
		{
			"no apply anchor",
			`<a href="/somewhere">View team</a>`,
			"",
		},
		{
			"malformed href swallowed",
			`<a href=":">apply</a>`,
			"",
		},
	}

	for _, tt := range tests {
		got := findApplyLink("<html><body>"+tt.html+"</body></html>", jobPageURL)
		if got != tt.want {
			t.Errorf("%s: applyURL = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestIDFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://jobs.example.com/acme/j1", "j1"},
		{"https://jobs.example.com/acme/j1/", "j1"},
		{"https://jobs.example.com/", ""},
		{"://not-a-url", ""},
	}

	for _, tt := range tests {
		if got := idFromURL(tt.url); got != tt.want {
			t.Errorf("idFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
