package mcp

import (
	"github.com/mattvollmer/jobs-agent/internal/board"
	"github.com/mattvollmer/jobs-agent/internal/docs"
	"github.com/mattvollmer/jobs-agent/internal/extract"
)

// Resources bundles the services the tool handlers depend on.
type Resources struct {
	Extract *extract.Service
	Board   *board.Service
	Docs    *docs.Reader
}

func newResources(ex *extract.Service, b *board.Service, d *docs.Reader) *Resources {
	return &Resources{
		Extract: ex,
		Board:   b,
		Docs:    d,
	}
}
