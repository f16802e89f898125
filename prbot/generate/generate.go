package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/byte4ever/llm_gitops/prbot/host"
)

// ErrMissingAPIKey is returned when the API key is
// empty.
var ErrMissingAPIKey = errors.New("missing API key")

// Settings tunes the model call.
type Settings struct {
	// Model is the model identifier.
	Model string
	// MaxTokens caps the reply length.
	MaxTokens int64
	// Temperature is the sampling temperature. It is
	// forced to 1.0 while extended thinking is
	// enabled, the API rejects anything else.
	Temperature float64
	// ThinkingBudgetTokens caps the extended
	// thinking budget. Zero disables thinking.
	ThinkingBudgetTokens int64
}

// Result holds the model reply split into the answer
// text and the reasoning trace.
type Result struct {
	// Text is the concatenated text content.
	Text string
	// Reasoning is the concatenated thinking
	// content.
	Reasoning string
}

// Generator calls the model with a fixed settings set.
type Generator struct {
	client   anthropic.Client
	settings Settings
}

// New creates a Generator talking to the API with the
// given key.
func New(
	apiKey string,
	settings Settings,
) (*Generator, error) {
	const errCtx = "creating generator"

	if apiKey == "" {
		return nil, fmt.Errorf(
			"%s: %w", errCtx, ErrMissingAPIKey,
		)
	}

	return &Generator{
		client: anthropic.NewClient(
			option.WithAPIKey(apiKey),
		),
		settings: settings,
	}, nil
}

// Generate sends the repository files and the change
// request to the model and returns its reply.
func (g *Generator) Generate(
	ctx context.Context,
	files []host.File,
	request string,
) (*Result, error) {
	const errCtx = "generating change set"

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(g.settings.Model),
		MaxTokens: g.settings.MaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: instructions(files)},
		},
		Messages: []anthropic.MessageParam{{
			Role: anthropic.MessageParamRoleUser,
			Content: []anthropic.ContentBlockParamUnion{
				anthropic.NewTextBlock(request),
			},
		}},
		Temperature: anthropic.Float(
			g.settings.Temperature,
		),
	}

	if g.settings.ThinkingBudgetTokens > 0 {
		params.Thinking = anthropic.ThinkingConfigParamUnion{
			OfEnabled: &anthropic.ThinkingConfigEnabledParam{
				BudgetTokens: g.settings.ThinkingBudgetTokens,
			},
		}
		params.Temperature = anthropic.Float(1.0)
	}

	slog.Info(
		"calling model",
		"model", g.settings.Model,
		"files", len(files),
	)

	msg, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	var text, reasoning strings.Builder

	for _, block := range msg.Content {
		switch block.Type {
		case "text":
			text.WriteString(block.Text)
		case "thinking", "redacted_thinking":
			reasoning.WriteString(block.Thinking)
		}
	}

	if text.Len() == 0 {
		return nil, fmt.Errorf(
			"%s: reply contains no text", errCtx,
		)
	}

	slog.Info(
		"model replied",
		"input_tokens", msg.Usage.InputTokens,
		"output_tokens", msg.Usage.OutputTokens,
	)

	return &Result{
		Text:      text.String(),
		Reasoning: reasoning.String(),
	}, nil
}
