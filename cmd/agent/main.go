// Command agent is the interactive chat frontend: it connects the
// scraping tools to an OpenAI-compatible model and answers job-seeker
// questions on the terminal.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mattvollmer/jobs-agent/internal/agent"
	"github.com/mattvollmer/jobs-agent/internal/config"
	"github.com/mattvollmer/jobs-agent/internal/mcp"
	"github.com/mattvollmer/jobs-agent/pkg/logging"
)

var flagModel string

var rootCmd = &cobra.Command{
	Use:   "agent",
	Short: "Chat with the jobs agent on the terminal",
	Long: `Starts an interactive chat session. The model can call the scraping
tools (extract_page, list_jobs, get_job_detail, read_document) to answer
questions about open roles and public documents.`,
	RunE: runChat,
}

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single question and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "Override the OPENAI_MODEL setting")
	rootCmd.AddCommand(askCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildAgent() (*agent.Agent, *logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if cfg.OpenAI.APIKey == "" {
		return nil, nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	model := cfg.OpenAI.Model
	if flagModel != "" {
		model = flagModel
	}

	logger := logging.New(cfg.LogLevel, true)

	res, err := mcp.InitializeResources(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	tools := agent.DefaultTools(res.Extract, res.Board, res.Docs)
	return agent.New(cfg.OpenAI.APIKey, model, tools, logger), logger, nil
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, logger, err := buildAgent()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	answer, err := a.Ask(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	fmt.Println(answer)
	return nil
}

func runChat(cmd *cobra.Command, _ []string) error {
	a, logger, err := buildAgent()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	fmt.Println("jobs-agent chat. Type a question, or 'exit' to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			break
		}

		answer, err := a.Ask(cmd.Context(), question)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		fmt.Println(answer)
	}

	return scanner.Err()
}
