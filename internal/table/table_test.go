package table

import (
	"testing"

	"attendance-tracker/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

func TestLoadCSV(t *testing.T) {
	data := []byte(" Email , DATE ,In Time\na@x.com,01/05/2024,09:00\nb@y.com,02/05/2024\n")

	tbl, err := LoadCSV(data)
	assert.NoError(t, err)
	assert.Equal(t, []string{"email", "date", "in time"}, tbl.Headers)
	assert.Len(t, tbl.Rows, 2)

	assert.Equal(t, "a@x.com", tbl.Cell(tbl.Rows[0], "email"))
	assert.Equal(t, "09:00", tbl.Cell(tbl.Rows[0], "in time"))

	// Ragged row: missing trailing cell reads as empty.
	assert.Equal(t, "", tbl.Cell(tbl.Rows[1], "in time"))
	assert.Equal(t, "", tbl.Cell(tbl.Rows[1], "no such column"))
}

func TestLoadCSVHeaderOnly(t *testing.T) {
	tbl, err := LoadCSV([]byte("email,date,in time\n"))
	assert.NoError(t, err)
	assert.Len(t, tbl.Rows, 0)
}

func TestLoadCSVEmpty(t *testing.T) {
	_, err := LoadCSV([]byte(""))
	assert.ErrorIs(t, err, errors.ErrInvalidFileFormat)
}

func TestLoadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	assert.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Email", "Date", "In Time"}))
	assert.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"a@x.com", "01/05/2024", "09:00"}))

	buf, err := f.WriteToBuffer()
	assert.NoError(t, err)

	tbl, err := LoadXLSX(buf.Bytes())
	assert.NoError(t, err)
	assert.Equal(t, []string{"email", "date", "in time"}, tbl.Headers)
	assert.Len(t, tbl.Rows, 1)
	assert.Equal(t, "a@x.com", tbl.Cell(tbl.Rows[0], "email"))
}

func TestLoadXLSXGarbage(t *testing.T) {
	_, err := LoadXLSX([]byte("definitely not a zip archive"))
	assert.ErrorIs(t, err, errors.ErrFileUnreadable)
}

func TestLoadPicksReaderByExtension(t *testing.T) {
	csvData := []byte("email,date,in time\na@x.com,01/05/2024,09:00\n")

	tbl, err := Load("uploads/may.CSV", csvData)
	assert.NoError(t, err)
	assert.Len(t, tbl.Rows, 1)

	// A CSV payload under a spreadsheet name fails the spreadsheet reader.
	_, err = Load("uploads/may.xlsx", csvData)
	assert.ErrorIs(t, err, errors.ErrFileUnreadable)
}
