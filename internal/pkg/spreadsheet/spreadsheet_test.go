package spreadsheet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadRows_CSV(t *testing.T) {
	csv := "\ufeffUserID,Name,DateTime\n" +
		"1210710,Ali Khan,2024-03-05 08:45:00\n" +
		",,\n" +
		"1210711, Sara ,2024-03-05 09:20:00\n"

	rows, err := ReadRows("punches.CSV", strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "1210710", rows[0]["UserID"])
	assert.Equal(t, "Sara", rows[1]["Name"])
	assert.Equal(t, "2024-03-05 09:20:00", rows[1]["DateTime"])
}

func TestReadRows_XLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"ID", "Name", "Date/Time"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"O-1210710", "Ali Khan", "2024-03-05 08:45"}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]interface{}{"1210711", "Sara", "2024-03-05 17:05"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := ReadRows("export.xlsx", buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "O-1210710", rows[0]["ID"])
	assert.Equal(t, "2024-03-05 17:05", rows[1]["Date/Time"])
}

func TestReadRows_Unsupported(t *testing.T) {
	_, err := ReadRows("punches.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestToMaps_ShortRowsAndEmptySheet(t *testing.T) {
	rows, err := toMaps([][]string{{"", ""}, {"ID", "Name"}, {"7"}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0]["Name"])

	_, err = toMaps([][]string{{" "}})
	assert.ErrorIs(t, err, ErrEmptyWorksheet)
}
