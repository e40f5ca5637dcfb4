package webtab_test

import (
	"testing"

	"github.com/fwojciec/webtab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  webtab.Mode
	}{
		{"tables", webtab.ModeAllTables},
		{"All Tables", webtab.ModeAllTables},
		{"headings", webtab.ModeHeadings},
		{"HEADINGS", webtab.ModeHeadings},
		{"row", webtab.ModeSpecificCell},
		{"Specific Row/Column", webtab.ModeSpecificCell},
		{"custom", webtab.ModeCustomSelector},
		{" Custom Selector ", webtab.ModeCustomSelector},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := webtab.ParseMode(tt.input)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects unknown mode", func(t *testing.T) {
		t.Parallel()

		_, err := webtab.ParseMode("images")

		require.Error(t, err)
		assert.Equal(t, webtab.EINVALID, webtab.ErrorCode(err))
	})
}

func TestExtractionRequest_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts table mode without selector", func(t *testing.T) {
		t.Parallel()

		req := webtab.ExtractionRequest{URL: "https://example.com", Mode: webtab.ModeAllTables}

		assert.NoError(t, req.Validate())
	})

	t.Run("rejects malformed url", func(t *testing.T) {
		t.Parallel()

		req := webtab.ExtractionRequest{URL: "not a url", Mode: webtab.ModeAllTables}

		err := req.Validate()

		require.Error(t, err)
		assert.Equal(t, webtab.EINVALIDURL, webtab.ErrorCode(err))
	})

	t.Run("rejects empty url", func(t *testing.T) {
		t.Parallel()

		req := webtab.ExtractionRequest{Mode: webtab.ModeHeadings}

		err := req.Validate()

		require.Error(t, err)
		assert.Equal(t, webtab.EINVALIDURL, webtab.ErrorCode(err))
	})

	t.Run("rejects unknown mode", func(t *testing.T) {
		t.Parallel()

		req := webtab.ExtractionRequest{URL: "https://example.com", Mode: "images"}

		err := req.Validate()

		require.Error(t, err)
		assert.Equal(t, webtab.EINVALID, webtab.ErrorCode(err))
	})

	t.Run("custom mode requires selector or instruction", func(t *testing.T) {
		t.Parallel()

		req := webtab.ExtractionRequest{URL: "https://example.com", Mode: webtab.ModeCustomSelector}

		err := req.Validate()

		require.Error(t, err)
		assert.Equal(t, webtab.EINVALID, webtab.ErrorCode(err))
	})

	t.Run("custom mode accepts instruction alone", func(t *testing.T) {
		t.Parallel()

		req := webtab.ExtractionRequest{URL: "https://example.com", Mode: webtab.ModeCustomSelector, Instruction: "all prices"}

		assert.NoError(t, req.Validate())
	})

	t.Run("selector outside custom mode is rejected", func(t *testing.T) {
		t.Parallel()

		req := webtab.ExtractionRequest{URL: "https://example.com", Mode: webtab.ModeHeadings, Selector: "p"}

		err := req.Validate()

		require.Error(t, err)
		assert.Equal(t, webtab.EINVALID, webtab.ErrorCode(err))
	})
}
