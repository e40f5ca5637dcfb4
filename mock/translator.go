package mock

import (
	"context"

	"github.com/fwojciec/webtab"
)

var _ webtab.Translator = (*Translator)(nil)

// Translator is a mock implementation of webtab.Translator.
type Translator struct {
	TranslateFn func(ctx context.Context, instruction, url string) (string, error)
}

func (t *Translator) Translate(ctx context.Context, instruction, url string) (string, error) {
	return t.TranslateFn(ctx, instruction, url)
}
