package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestXLSXWritesHeaderAndRows(t *testing.T) {
	data, err := XLSX(Sheet{
		Name:    "Chemicals",
		Columns: []Column{{Header: "Name", Width: 30}, {Header: "Quantity"}},
		Rows: [][]any{
			{"Acetone", "12.5"},
			{"Chlorine", nil},
		},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Chemicals"}, f.GetSheetList())

	header, err := f.GetCellValue("Chemicals", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Name", header)

	v, err := f.GetCellValue("Chemicals", "B2")
	require.NoError(t, err)
	assert.Equal(t, "12.5", v)

	empty, err := f.GetCellValue("Chemicals", "B3")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestXLSXWithoutRows(t *testing.T) {
	data, err := XLSX(Sheet{Name: "PPE Issues", Columns: []Column{{Header: "Person"}}})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
