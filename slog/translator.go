package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webtab"
)

// Ensure LoggingTranslator implements webtab.Translator.
var _ webtab.Translator = (*LoggingTranslator)(nil)

// LoggingTranslator wraps a Translator with logging.
type LoggingTranslator struct {
	next   webtab.Translator
	logger *slog.Logger
}

// NewLoggingTranslator creates a new LoggingTranslator.
func NewLoggingTranslator(next webtab.Translator, logger *slog.Logger) *LoggingTranslator {
	return &LoggingTranslator{next: next, logger: logger}
}

// Translate logs the instruction and resulting selector and delegates to the wrapped translator.
func (t *LoggingTranslator) Translate(ctx context.Context, instruction, url string) (selector string, err error) {
	defer func(begin time.Time) {
		t.logger.Info("translate",
			"url", url,
			"instruction", instruction,
			"selector", selector,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return t.next.Translate(ctx, instruction, url)
}
