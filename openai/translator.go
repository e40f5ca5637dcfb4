// Package openai implements webtab.Translator using the OpenAI chat
// completions API or any compatible backend.
package openai

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/webtab"
	openai "github.com/sashabaranov/go-openai"
)

// DefaultModel is the chat model used for selector translation.
const DefaultModel = openai.GPT4

// DefaultTimeout bounds a single translation request.
const DefaultTimeout = 20 * time.Second

// ChatClient is the subset of *openai.Client used by Translator.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// NewClient returns a chat client for apiKey. An empty baseURL selects the
// public OpenAI endpoint.
func NewClient(apiKey, baseURL string) *openai.Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(config)
}

// Ensure Translator implements webtab.Translator at compile time.
var _ webtab.Translator = (*Translator)(nil)

// Translator turns natural-language instructions into CSS selectors with
// a chat model.
type Translator struct {
	client  ChatClient
	model   string
	timeout time.Duration
}

// Option configures a Translator.
type Option func(*Translator)

// WithModel overrides DefaultModel.
func WithModel(model string) Option {
	return func(t *Translator) {
		t.model = model
	}
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(t *Translator) {
		t.timeout = d
	}
}

// NewTranslator creates a new Translator.
func NewTranslator(client ChatClient, opts ...Option) *Translator {
	t := &Translator{
		client:  client,
		model:   DefaultModel,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate asks the model for a selector matching instruction on the page
// at url. On any failure it returns webtab.DefaultSelector with the error.
func (t *Translator) Translate(ctx context.Context, instruction, url string) (string, error) {
	if strings.TrimSpace(instruction) == "" {
		return webtab.DefaultSelector, webtab.Errorf(webtab.EINVALID, "instruction required")
	}
	if t.client == nil {
		return webtab.DefaultSelector, webtab.Errorf(webtab.EINTERNAL, "openai client not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	resp, err := t.client.CreateChatCompletion(ctx, BuildRequest(t.model, url, instruction))
	if err != nil {
		return webtab.DefaultSelector, err
	}
	if len(resp.Choices) == 0 {
		return webtab.DefaultSelector, webtab.Errorf(webtab.EINTERNAL, "openai returned no choices")
	}

	answer := resp.Choices[0].Message.Content
	if strings.TrimSpace(answer) == "" {
		return webtab.DefaultSelector, webtab.Errorf(webtab.EINTERNAL, "openai returned empty answer")
	}
	return webtab.NormalizeSelector(answer), nil
}

// BuildRequest returns the chat completion request for a translation.
func BuildRequest(model, url, instruction string) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: webtab.SelectorSystemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: webtab.SelectorPrompt(url, instruction)},
		},
		Temperature: 0.2,
		N:           1,
	}
}
