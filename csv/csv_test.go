package csv_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fwojciec/webtab"
	"github.com/fwojciec/webtab/csv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	t.Parallel()

	t.Run("writes header and rows", func(t *testing.T) {
		t.Parallel()

		table := webtab.NewTable("Name", "Price")
		require.NoError(t, table.AppendRow(webtab.StringCell("apple"), webtab.StringCell("1,50")))
		require.NoError(t, table.AppendRow(webtab.StringCell("pear"), webtab.NumberCell(2)))

		var buf bytes.Buffer
		require.NoError(t, csv.Encode(&buf, table))

		assert.Equal(t, "Name,Price\napple,\"1,50\"\npear,2\n", buf.String())
	})

	t.Run("writes null cells as empty fields", func(t *testing.T) {
		t.Parallel()

		table := webtab.NewTable("a", "b")
		require.NoError(t, table.AppendRow(webtab.NullCell(), webtab.StringCell("x")))

		var buf bytes.Buffer
		require.NoError(t, csv.Encode(&buf, table))

		assert.Equal(t, "a,b\n,x\n", buf.String())
	})

	t.Run("writes header only for empty table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, csv.Encode(&buf, webtab.NewTable(webtab.ColumnNoData)))

		assert.Equal(t, webtab.ColumnNoData+"\n", buf.String())
	})

	t.Run("rejects nil table", func(t *testing.T) {
		t.Parallel()

		err := csv.Encode(&bytes.Buffer{}, nil)
		assert.Equal(t, webtab.EINVALID, webtab.ErrorCode(err))
	})

	t.Run("rejects ragged table", func(t *testing.T) {
		t.Parallel()

		table := &webtab.Table{Columns: []string{"a"}, Rows: [][]webtab.Cell{{webtab.NullCell(), webtab.NullCell()}}}

		err := csv.Encode(&bytes.Buffer{}, table)
		assert.Equal(t, webtab.EINVALID, webtab.ErrorCode(err))
	})

	t.Run("returns writer error", func(t *testing.T) {
		t.Parallel()

		table := webtab.NewTable("a")
		err := csv.Encode(failingWriter{}, table)
		assert.Error(t, err)
	})
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}
