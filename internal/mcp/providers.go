package mcp

import (
	"github.com/mattvollmer/jobs-agent/internal/board"
	"github.com/mattvollmer/jobs-agent/internal/config"
	"github.com/mattvollmer/jobs-agent/internal/docs"
	"github.com/mattvollmer/jobs-agent/pkg/logging"
	"github.com/mattvollmer/jobs-agent/pkg/webfetch"
)

// provideFetchClient supplies the shared HTTP fetcher.
func provideFetchClient() *webfetch.Client {
	return webfetch.New()
}

// provideBoardService builds the job-board service from config.
func provideBoardService(cfg config.Config, log *logging.Logger, client *webfetch.Client) *board.Service {
	return board.NewService(client, cfg.BoardURL, log)
}

// provideDocsReader builds the document reader from config.
func provideDocsReader(cfg config.Config, log *logging.Logger, client *webfetch.Client) *docs.Reader {
	return docs.NewReader(client, cfg.DefaultDocURL, cfg.DefaultDocURLs, log)
}
