// Package agent runs a chat loop against an OpenAI-compatible model,
// letting it call the scraping tools until it can answer the user.
package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/mattvollmer/jobs-agent/pkg/logging"
)

const (
	// maxSteps bounds how many completion rounds a single question may
	// take; each round can execute several tool calls.
	maxSteps = 8

	systemPrompt = `You are a helpful assistant for job seekers. You answer questions
about open roles, individual postings and public documents by calling the
available tools and summarizing their results. Cite the job URL when you
describe a specific posting. If a tool fails, tell the user what went
wrong instead of guessing.`
)

// Tool pairs an OpenAI function definition with its executor.
type Tool struct {
	Definition openai.Tool
	Run        func(ctx context.Context, args json.RawMessage) (any, error)
}

// Agent holds one conversation. The transcript lives in memory for the
// life of the process only.
type Agent struct {
	client   *openai.Client
	model    string
	tools    []openai.Tool
	byName   map[string]Tool
	log      *logging.Logger
	messages []openai.ChatCompletionMessage
}

func New(apiKey, model string, tools []Tool, log *logging.Logger) *Agent {
	if log == nil {
		log = logging.Nop()
	}

	defs := make([]openai.Tool, 0, len(tools))
	byName := make(map[string]Tool, len(tools))
	for _, t := range tools {
		defs = append(defs, t.Definition)
		byName[t.Definition.Function.Name] = t
	}

	return &Agent{
		client: openai.NewClient(apiKey),
		model:  model,
		tools:  defs,
		byName: byName,
		log:    log.Named("agent"),
		messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		},
	}
}

// Ask appends the user's question to the transcript and drives the
// completion/tool loop until the model produces a final answer.
func (a *Agent) Ask(ctx context.Context, question string) (string, error) {
	a.messages = append(a.messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: question,
	})

	for step := 0; step < maxSteps; step++ {
		resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    a.model,
			Messages: a.messages,
			Tools:    a.tools,
		})
		if err != nil {
			return "", fmt.Errorf("chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("chat completion returned no choices")
		}

		msg := resp.Choices[0].Message
		a.messages = append(a.messages, msg)

		if len(msg.ToolCalls) == 0 {
			return msg.Content, nil
		}

		for _, call := range msg.ToolCalls {
			a.messages = append(a.messages, a.executeCall(ctx, call))
		}
	}

	return "", fmt.Errorf("no final answer after %d steps", maxSteps)
}

// executeCall runs one tool call and wraps its outcome as a tool message.
// Tool failures are reported back to the model rather than aborting the
// conversation.
func (a *Agent) executeCall(ctx context.Context, call openai.ToolCall) openai.ChatCompletionMessage {
	name := call.Function.Name
	a.log.Debug("tool call", "tool", name, "args", call.Function.Arguments)

	content := func() string {
		tool, ok := a.byName[name]
		if !ok {
			return fmt.Sprintf(`{"error":"unknown tool %q"}`, name)
		}

		result, err := tool.Run(ctx, json.RawMessage(call.Function.Arguments))
		if err != nil {
			a.log.Warn("tool failed", "tool", name, "err", err)
			data, _ := json.Marshal(map[string]string{"error": err.Error()})
			return string(data)
		}

		data, err := json.Marshal(result)
		if err != nil {
			return fmt.Sprintf(`{"error":"marshaling result: %s"}`, err)
		}
		return string(data)
	}()

	return openai.ChatCompletionMessage{
		Role:       openai.ChatMessageRoleTool,
		Content:    content,
		Name:       name,
		ToolCallID: call.ID,
	}
}
