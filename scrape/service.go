package scrape

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fwojciec/webtab"
)

// Ensure Service implements webtab.ExtractionService at compile time.
var _ webtab.ExtractionService = (*Service)(nil)

// Service runs one extraction per call as a single sequential unit of
// work: validate, translate, fetch, extract.
type Service struct {
	Fetcher   webtab.PageFetcher
	Extractor webtab.Extractor

	// Translator resolves instructions in custom mode. Optional; without
	// it instructions resolve to webtab.DefaultSelector.
	Translator webtab.Translator

	Logger *slog.Logger
}

// Extract validates req, resolves its selector, fetches the page and
// extracts a table from it. Invalid requests fail before any network
// activity.
func (s *Service) Extract(ctx context.Context, req webtab.ExtractionRequest) (*webtab.ExtractionResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.Mode == webtab.ModeCustomSelector {
		req.Selector = s.resolveSelector(ctx, req)
	}

	page, err := s.Fetcher.FetchPage(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	table, err := s.Extractor.Extract(page.HTML, req)
	if err != nil {
		return nil, err
	}

	return &webtab.ExtractionResult{
		Table:    table,
		Source:   page.Source,
		Selector: req.Selector,
	}, nil
}

// resolveSelector returns the explicit selector when present and
// otherwise translates the instruction. Translation failures never fail
// the request.
func (s *Service) resolveSelector(ctx context.Context, req webtab.ExtractionRequest) string {
	if selector := strings.TrimSpace(req.Selector); selector != "" {
		return selector
	}
	if s.Translator == nil {
		s.logger().Warn("no translator configured, using default selector",
			"instruction", req.Instruction,
			"selector", webtab.DefaultSelector,
		)
		return webtab.DefaultSelector
	}

	selector, err := s.Translator.Translate(ctx, req.Instruction, req.URL)
	if err != nil {
		s.logger().Warn("selector translation failed",
			"instruction", req.Instruction,
			"selector", selector,
			"err", err,
		)
	}
	if strings.TrimSpace(selector) == "" {
		return webtab.DefaultSelector
	}
	return selector
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
