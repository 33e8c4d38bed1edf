// Package llm provides the optional case summarizer. Summarization is off
// unless a provider is configured; nothing else in the service depends on it.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/va2ai/bvaapi2/internal/model"
)

// ErrDisabled is returned when no summarizer provider is configured.
var ErrDisabled = errors.New("llm: summarizer not configured")

// Summarizer produces a short plain-language summary of a decision document.
type Summarizer interface {
	Summarize(ctx context.Context, fullText string) (string, error)
}

// maxPromptChars truncates very long decisions before sending them upstream.
// Decision documents routinely exceed model context windows; the opening
// sections carry the issues, findings and order.
const maxPromptChars = 24_000

const systemPrompt = `You summarize Board of Veterans' Appeals decisions for veterans and their representatives. In 3-5 sentences, state the issues on appeal, the outcome for each issue, and the key reasoning. Use plain language. Do not speculate beyond the document.`

// OpenAISummarizer talks to OpenAI or any OpenAI-compatible endpoint.
type OpenAISummarizer struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// New builds a Summarizer from config. Returns ErrDisabled when no provider
// is set, so callers can distinguish "off" from a construction failure.
func New(cfg model.LLMConfig) (Summarizer, error) {
	if cfg.Provider == "" {
		return nil, ErrDisabled
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm: provider %q requires an api key", cfg.Provider)
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &OpenAISummarizer{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}, nil
}

// Summarize sends the document to the configured model and returns its
// summary text.
func (s *OpenAISummarizer) Summarize(ctx context.Context, fullText string) (string, error) {
	text := fullText
	if len(text) > maxPromptChars {
		text = text[:maxPromptChars]
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     s.model,
		MaxTokens: s.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm: completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("llm: empty completion response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
