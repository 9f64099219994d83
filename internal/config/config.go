package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config contains runtime settings shared by the MCP server and the
// chat agent CLI.
type Config struct {
	LogLevel string
	Host     string // default 0.0.0.0
	Port     string // default PORT env or 8080

	// BoardURL is the job-board listing page the tools scrape.
	BoardURL string

	// Docs defaults consumed only by the document reader: a single
	// default link, or a comma-separated list of which the first entry
	// is used.
	DefaultDocURL  string
	DefaultDocURLs string

	OpenAI struct {
		APIKey string
		Model  string
	}
}

// Load populates config from the environment, reading a .env file first
// when one is present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		LogLevel: "info",
		Host:     "0.0.0.0",
		Port:     "8080",
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("MCP_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}

	cfg.BoardURL = os.Getenv("JOB_BOARD_URL")
	cfg.DefaultDocURL = os.Getenv("DEFAULT_DOC_URL")
	cfg.DefaultDocURLs = os.Getenv("DEFAULT_DOC_URLS")

	cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.OpenAI.Model = v
	} else {
		cfg.OpenAI.Model = "gpt-4o-mini"
	}

	var missingVars []string

	if cfg.BoardURL == "" {
		missingVars = append(missingVars, "JOB_BOARD_URL")
	}

	if len(missingVars) > 0 {
		return cfg, fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	return cfg, nil
}
