//go:build wireinject
// +build wireinject

package mcp

import (
	"github.com/google/wire"

	"github.com/mattvollmer/jobs-agent/internal/config"
	"github.com/mattvollmer/jobs-agent/internal/extract"
	"github.com/mattvollmer/jobs-agent/pkg/logging"
	"github.com/mattvollmer/jobs-agent/pkg/webfetch"
)

// InitializeResources creates Resources with all services wired up.
func InitializeResources(cfg config.Config, log *logging.Logger) (*Resources, error) {
	wire.Build(
		provideFetchClient,
		wire.Bind(new(extract.Fetcher), new(*webfetch.Client)),

		extract.NewService,
		provideBoardService,
		provideDocsReader,

		newResources,
	)

	return &Resources{}, nil
}
