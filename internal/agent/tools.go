package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/mattvollmer/jobs-agent/internal/board"
	"github.com/mattvollmer/jobs-agent/internal/docs"
	"github.com/mattvollmer/jobs-agent/internal/extract"
)

// DefaultTools exposes the scraping services as OpenAI function tools,
// mirroring the MCP tool surface.
func DefaultTools(ex *extract.Service, b *board.Service, d *docs.Reader) []Tool {
	return []Tool{
		{
			Definition: functionDef("extract_page",
				"Fetch any web page and extract its title, description, headings, links and plain text.",
				map[string]any{
					"type": "object",
					"properties": map[string]any{
						"url": map[string]any{
							"type":        "string",
							"description": "Absolute URL of the page to fetch",
						},
						"extract": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Fields to extract: title, description, headings, links, text. Defaults to all.",
						},
						"maxContentChars": map[string]any{
							"type":        "integer",
							"description": "Character cap for the text field, max 200000",
						},
					},
					"required": []string{"url"},
				}),
			Run: func(ctx context.Context, args json.RawMessage) (any, error) {
				var p struct {
					URL             string   `json:"url"`
					Extract         []string `json:"extract"`
					MaxContentChars int      `json:"maxContentChars"`
				}
				if err := json.Unmarshal(args, &p); err != nil {
					return nil, fmt.Errorf("decoding extract_page args: %w", err)
				}
				fields := make([]extract.Field, 0, len(p.Extract))
				for _, name := range p.Extract {
					fields = append(fields, extract.Field(name))
				}
				return ex.ExtractPage(ctx, p.URL, extract.Options{Fields: fields, TextLimit: p.MaxContentChars})
			},
		},
		{
			Definition: functionDef("list_jobs",
				"List all open roles currently published on the job board.",
				map[string]any{
					"type":       "object",
					"properties": map[string]any{},
				}),
			Run: func(ctx context.Context, _ json.RawMessage) (any, error) {
				return b.ListJobs(ctx)
			},
		},
		{
			Definition: functionDef("get_job_detail",
				"Fetch one job page and return its full detail, including description and apply link.",
				map[string]any{
					"type": "object",
					"properties": map[string]any{
						"url": map[string]any{
							"type":        "string",
							"description": "URL of a single job page on the board",
						},
					},
					"required": []string{"url"},
				}),
			Run: func(ctx context.Context, args json.RawMessage) (any, error) {
				var p struct {
					URL string `json:"url"`
				}
				if err := json.Unmarshal(args, &p); err != nil {
					return nil, fmt.Errorf("decoding get_job_detail args: %w", err)
				}
				return b.GetJobDetail(ctx, p.URL)
			},
		},
		{
			Definition: functionDef("read_document",
				"Read a publicly shared document (or the configured default) as text, html or markdown.",
				map[string]any{
					"type": "object",
					"properties": map[string]any{
						"url": map[string]any{
							"type":        "string",
							"description": "Public document link; omit to use the configured default",
						},
						"format": map[string]any{
							"type":        "string",
							"enum":        []string{"text", "html", "markdown"},
							"description": "Output format, default text",
						},
						"maxChars": map[string]any{
							"type":        "integer",
							"description": "Character cap for the content, max 500000",
						},
					},
				}),
			Run: func(ctx context.Context, args json.RawMessage) (any, error) {
				var p struct {
					URL      string `json:"url"`
					Format   string `json:"format"`
					MaxChars int    `json:"maxChars"`
				}
				if err := json.Unmarshal(args, &p); err != nil {
					return nil, fmt.Errorf("decoding read_document args: %w", err)
				}
				return d.Read(ctx, p.URL, docs.Format(p.Format), p.MaxChars)
			},
		},
	}
}

func functionDef(name, description string, parameters map[string]any) openai.Tool {
	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        name,
			Description: description,
			Parameters:  parameters,
		},
	}
}
