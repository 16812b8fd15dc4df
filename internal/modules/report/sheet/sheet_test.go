package sheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		for j, cell := range row {
			axis, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", axis, cell))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestParse(t *testing.T) {
	t.Run("reads rows from the first sheet", func(t *testing.T) {
		content := buildWorkbook(t, [][]any{
			{"name", "amount"},
			{"widgets", 42},
			{"gadgets", 7},
		})

		table, err := Parse(content)
		require.NoError(t, err)

		assert.Equal(t, "Sheet1", table.Sheet)
		require.Equal(t, 3, table.RowCount())
		assert.Equal(t, []string{"name", "amount"}, table.Rows[0])
		assert.Equal(t, []string{"widgets", "42"}, table.Rows[1])
	})

	t.Run("empty workbook has zero rows", func(t *testing.T) {
		content := buildWorkbook(t, nil)

		table, err := Parse(content)
		require.NoError(t, err)
		assert.Equal(t, 0, table.RowCount())
	})

	t.Run("garbage content returns ParseError", func(t *testing.T) {
		_, err := Parse([]byte("definitely not a zip archive"))
		require.Error(t, err)

		var perr *ParseError
		assert.ErrorAs(t, err, &perr)
	})
}
