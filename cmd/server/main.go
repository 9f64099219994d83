package main

import (
	"log"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/mattvollmer/jobs-agent/internal/config"
	"github.com/mattvollmer/jobs-agent/internal/mcp"
	"github.com/mattvollmer/jobs-agent/pkg/logging"
	"github.com/mattvollmer/jobs-agent/pkg/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel, false)
	defer func() { _ = logger.Sync() }()

	res, err := mcp.InitializeResources(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize resources", "err", err)
		os.Exit(1)
	}

	srv := mcp.NewServer(logger, cfg, res)

	go shutdown.Graceful(
		[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
		srv,
		10*time.Second,
		logger,
	)

	logger.Info("MCP server initialized and starting",
		"addr", net.JoinHostPort(cfg.Host, cfg.Port), "board", cfg.BoardURL)

	if err := srv.Run(); err != nil {
		logger.Error("MCP server exited with error", "err", err)
		os.Exit(1)
	}
	logger.Info("MCP server stopped")
}
