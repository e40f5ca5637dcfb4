package mock

import (
	"context"

	"github.com/fwojciec/webtab"
)

var _ webtab.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of webtab.Extractor.
type Extractor struct {
	ExtractFn func(html string, req webtab.ExtractionRequest) (*webtab.Table, error)
}

func (e *Extractor) Extract(html string, req webtab.ExtractionRequest) (*webtab.Table, error) {
	return e.ExtractFn(html, req)
}

var _ webtab.ExtractionService = (*ExtractionService)(nil)

// ExtractionService is a mock implementation of webtab.ExtractionService.
type ExtractionService struct {
	ExtractFn func(ctx context.Context, req webtab.ExtractionRequest) (*webtab.ExtractionResult, error)
}

func (s *ExtractionService) Extract(ctx context.Context, req webtab.ExtractionRequest) (*webtab.ExtractionResult, error) {
	return s.ExtractFn(ctx, req)
}
