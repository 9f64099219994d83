package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JOB_BOARD_URL", "https://jobs.example.com/acme")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("MCP_HOST", "")
	t.Setenv("PORT", "")
	t.Setenv("OPENAI_MODEL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.LogLevel != "info" || cfg.Host != "0.0.0.0" || cfg.Port != "8080" {
		t.Errorf("defaults = %q %q %q", cfg.LogLevel, cfg.Host, cfg.Port)
	}
	if cfg.BoardURL != "https://jobs.example.com/acme" {
		t.Errorf("BoardURL = %q", cfg.BoardURL)
	}
	if cfg.OpenAI.Model == "" {
		t.Error("expected a default model")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JOB_BOARD_URL", "https://jobs.example.com/acme")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PORT", "9090")
	t.Setenv("DEFAULT_DOC_URL", "https://docs.google.com/document/d/abc/edit")
	t.Setenv("DEFAULT_DOC_URLS", "https://a.example.com,https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.LogLevel != "debug" || cfg.Port != "9090" {
		t.Errorf("overrides = %q %q", cfg.LogLevel, cfg.Port)
	}
	if cfg.DefaultDocURL == "" || cfg.DefaultDocURLs == "" {
		t.Errorf("doc defaults not loaded: %+v", cfg)
	}
}

func TestLoadMissingBoardURL(t *testing.T) {
	t.Setenv("JOB_BOARD_URL", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing JOB_BOARD_URL")
	}
	if !strings.Contains(err.Error(), "JOB_BOARD_URL") {
		t.Errorf("err = %v, want it to name the missing variable", err)
	}
}
