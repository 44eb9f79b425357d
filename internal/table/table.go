package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path"
	"strings"

	"attendance-tracker/pkg/errors"

	"github.com/xuri/excelize/v2"
)

// Table is an uploaded sheet held in memory: a header row plus data rows.
// Header names are lowercased and trimmed on load; rows may be ragged.
type Table struct {
	Headers []string
	Rows    [][]string

	index map[string]int
}

// Load picks a reader by file extension: .csv goes through encoding/csv,
// everything else is treated as a spreadsheet.
func Load(filename string, data []byte) (*Table, error) {
	if strings.HasSuffix(strings.ToLower(path.Base(filename)), ".csv") {
		return LoadCSV(data)
	}
	return LoadXLSX(data)
}

func LoadXLSX(data []byte) (*Table, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrFileUnreadable, err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.ErrInvalidFileFormat
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrFileUnreadable, err)
	}

	return build(rows)
}

func LoadCSV(data []byte) (*Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errors.ErrFileUnreadable, err)
		}
		records = append(records, record)
	}

	return build(records)
}

func build(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, errors.ErrInvalidFileFormat
	}

	headers := make([]string, len(records[0]))
	index := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		name := strings.ToLower(strings.TrimSpace(h))
		headers[i] = name
		if _, exists := index[name]; !exists {
			index[name] = i
		}
	}

	return &Table{
		Headers: headers,
		Rows:    records[1:],
		index:   index,
	}, nil
}

// Cell returns the value of the named column in row, or "" when the row is
// too short or the column unknown.
func (t *Table) Cell(row []string, column string) string {
	idx, ok := t.index[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}
