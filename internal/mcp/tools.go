package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mattvollmer/jobs-agent/internal/docs"
	"github.com/mattvollmer/jobs-agent/internal/extract"
	"github.com/mattvollmer/jobs-agent/pkg/logging"
)

// ExtractPageParams defines the arguments for the extract_page tool.
type ExtractPageParams struct {
	URL             string   `json:"url" jsonschema:"Absolute URL of the page to fetch"`
	Extract         []string `json:"extract,omitempty" jsonschema:"Fields to extract: title, description, headings, links, text. Defaults to all."`
	MaxContentChars int      `json:"maxContentChars,omitempty" jsonschema:"Character cap for the text field, max 200000 (default 10000)"`
}

// ListJobsParams defines the arguments for the list_jobs tool.
type ListJobsParams struct{}

// JobDetailParams defines the arguments for the get_job_detail tool.
type JobDetailParams struct {
	URL string `json:"url" jsonschema:"URL of a single job page on the configured board"`
}

// ReadDocumentParams defines the arguments for the read_document tool.
type ReadDocumentParams struct {
	URL      string `json:"url,omitempty" jsonschema:"Public document link; falls back to the configured default"`
	Format   string `json:"format,omitempty" jsonschema:"Output format: text, html or markdown (default text)"`
	MaxChars int    `json:"maxChars,omitempty" jsonschema:"Character cap for the content, max 500000"`
}

// registerTools wires the four scraping tools into the MCP server.
func registerTools(s *sdkmcp.Server, res *Resources, log *logging.Logger) {
	tl := log.Named("tools")

	sdkmcp.AddTool(s, &sdkmcp.Tool{
		Name:        "extract_page",
		Description: "Fetch any web page and extract its title, description, headings, links and plain text",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params *ExtractPageParams) (*sdkmcp.CallToolResult, any, error) {
		callLog := tl.With("tool", "extract_page", "call_id", uuid.NewString())

		fields, err := parseFields(params.Extract)
		if err != nil {
			return nil, nil, err
		}

		result, err := res.Extract.ExtractPage(ctx, params.URL, extract.Options{
			Fields:    fields,
			TextLimit: params.MaxContentChars,
		})
		if err != nil {
			callLog.Warn("extract failed", "url", params.URL, "err", err)
			return nil, nil, err
		}

		callLog.Info("page extracted", "url", params.URL, "status", result.StatusCode)
		return jsonResult(result)
	})

	sdkmcp.AddTool(s, &sdkmcp.Tool{
		Name:        "list_jobs",
		Description: "List all open roles currently published on the job board",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params *ListJobsParams) (*sdkmcp.CallToolResult, any, error) {
		callLog := tl.With("tool", "list_jobs", "call_id", uuid.NewString())

		listing, err := res.Board.ListJobs(ctx)
		if err != nil {
			callLog.Warn("listing failed", "err", err)
			return nil, nil, err
		}

		callLog.Info("jobs listed", "count", listing.Count)
		return jsonResult(listing)
	})

	sdkmcp.AddTool(s, &sdkmcp.Tool{
		Name:        "get_job_detail",
		Description: "Fetch one job page and return its full reconciled detail, including description and apply link",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params *JobDetailParams) (*sdkmcp.CallToolResult, any, error) {
		callLog := tl.With("tool", "get_job_detail", "call_id", uuid.NewString())

		detail, err := res.Board.GetJobDetail(ctx, params.URL)
		if err != nil {
			callLog.Warn("detail failed", "url", params.URL, "err", err)
			return nil, nil, err
		}

		callLog.Info("job detail resolved", "url", params.URL, "id", detail.ID)
		return jsonResult(detail)
	})

	sdkmcp.AddTool(s, &sdkmcp.Tool{
		Name:        "read_document",
		Description: "Read a publicly shared document (or the configured default) as text, html or markdown",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params *ReadDocumentParams) (*sdkmcp.CallToolResult, any, error) {
		callLog := tl.With("tool", "read_document", "call_id", uuid.NewString())

		doc, err := res.Docs.Read(ctx, params.URL, docs.Format(params.Format), params.MaxChars)
		if err != nil {
			callLog.Warn("read failed", "url", params.URL, "err", err)
			return nil, nil, err
		}

		callLog.Info("document read", "resolved", doc.ResolvedURL, "mode", doc.AccessMode, "length", doc.Length)
		return jsonResult(doc)
	})
}

// parseFields validates requested extraction field names.
func parseFields(names []string) ([]extract.Field, error) {
	fields := make([]extract.Field, 0, len(names))
	for _, name := range names {
		f := extract.Field(strings.ToLower(strings.TrimSpace(name)))
		switch f {
		case extract.FieldTitle, extract.FieldDescription, extract.FieldHeadings, extract.FieldLinks, extract.FieldText:
			fields = append(fields, f)
		default:
			return nil, fmt.Errorf("unknown extract field %q (valid: title, description, headings, links, text)", name)
		}
	}
	return fields, nil
}

// jsonResult marshals v into a text content block and also returns it as
// structured output.
func jsonResult(v any) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, err
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: string(data)},
		},
	}, v, nil
}
