// Package gemini implements webtab.Translator using Google Gemini.
package gemini

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/webtab"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used for selector translation.
const DefaultModel = "gemini-2.5-flash"

// DefaultTimeout bounds a single translation request.
const DefaultTimeout = 20 * time.Second

// Ensure Translator implements webtab.Translator at compile time.
var _ webtab.Translator = (*Translator)(nil)

// Translator turns natural-language instructions into CSS selectors with
// a Gemini model.
type Translator struct {
	client  *genai.Client
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
func NewTranslator(client *genai.Client, opts ...Option) *Translator {
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
		return webtab.DefaultSelector, webtab.Errorf(webtab.EINTERNAL, "gemini client not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	result, err := t.client.Models.GenerateContent(ctx, t.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: webtab.SelectorPrompt(url, instruction)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return webtab.DefaultSelector, err
	}
	if result == nil {
		return webtab.DefaultSelector, webtab.Errorf(webtab.EINTERNAL, "gemini returned nil result")
	}

	answer := result.Text()
	if strings.TrimSpace(answer) == "" {
		return webtab.DefaultSelector, webtab.Errorf(webtab.EINTERNAL, "gemini returned empty answer")
	}
	return webtab.NormalizeSelector(answer), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: webtab.SelectorSystemInstruction,
			}},
		},
		Temperature: &temp,
	}
}
