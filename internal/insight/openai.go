package insight

import (
	"context"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/LorenzoOliveira534/youpagev1/internal/core"
)

// chatCompleter is the slice of the OpenAI client the advisor needs; tests
// substitute a stub.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIAdvisor asks a chat-completion endpoint for the advisory text.
// A zero-value API key constructs a disabled advisor that always answers
// with the fallback.
type OpenAIAdvisor struct {
	client  chatCompleter
	model   string
	timeout time.Duration
}

var _ Advisor = (*OpenAIAdvisor)(nil)

func NewOpenAIAdvisor(apiKey, model string, timeout time.Duration) *OpenAIAdvisor {
	a := &OpenAIAdvisor{model: model, timeout: timeout}
	if apiKey != "" {
		a.client = openai.NewClient(apiKey)
	}
	return a
}

// Advise makes at most one attempt, no retry. Transport, auth and service
// errors, along with empty completions, all map to the fixed fallback.
func (a *OpenAIAdvisor) Advise(ctx context.Context, snap core.Snapshot) string {
	if a.client == nil {
		slog.DebugContext(ctx, "Insight advisor disabled, returning fallback")
		return Fallback
	}

	cctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.client.CreateChatCompletion(cctx, openai.ChatCompletionRequest{
		Model:     a.model,
		MaxTokens: 160,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(snap)},
		},
	})
	if err != nil {
		slog.WarnContext(ctx, "Insight request failed, returning fallback", "error", err)
		return Fallback
	}
	if len(resp.Choices) == 0 {
		slog.WarnContext(ctx, "Insight response empty, returning fallback")
		return Fallback
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return Fallback
	}
	return text
}
