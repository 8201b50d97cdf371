package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Required columns of a streaming history export.
const (
	ColumnEndTime    = "endTime"
	ColumnArtistName = "artistName"
	ColumnTrackName  = "trackName"
	ColumnMsPlayed   = "msPlayed"
)

// RequiredColumns lists the header names a usable export must carry.
var RequiredColumns = []string{ColumnEndTime, ColumnArtistName, ColumnTrackName, ColumnMsPlayed}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Row is one CSV record keyed by its header names.
type Row map[string]string

// Decode reads a CSV document with a header row into string-keyed rows.
// Blank lines are skipped, extra columns are kept, and short rows simply
// lack the trailing keys. An empty document yields no rows and no error.
func Decode(r io.Reader) ([]Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Cause: err}
	}
	return DecodeBytes(data)
}

// DecodeBytes is Decode over an in-memory document.
func DecodeBytes(data []byte) ([]Row, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, &ParseError{Cause: errors.New("input is not valid UTF-8 text")}
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return nil, &ParseError{Cause: errors.New("input contains binary data")}
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		var csvErr *csv.ParseError
		if errors.As(err, &csvErr) {
			return nil, &ParseError{Line: csvErr.Line, Cause: csvErr.Err}
		}
		return nil, &ParseError{Cause: err}
	}

	if len(records) == 0 {
		return []Row{}, nil
	}

	header := make([]string, len(records[0]))
	for i, name := range records[0] {
		header[i] = strings.TrimSpace(name)
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(header))
		for i, name := range header {
			if name == "" || i >= len(record) {
				continue
			}
			row[name] = record[i]
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Headers returns the trimmed header names of a CSV document without
// decoding the body.
func Headers(data []byte) ([]string, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	reader.FieldsPerRecord = -1
	first, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, &ParseError{Cause: err}
	}
	headers := make([]string, len(first))
	for i, h := range first {
		headers[i] = strings.TrimSpace(h)
	}
	return headers, nil
}

// ValidateHeaders reports which required columns are missing, if any.
func ValidateHeaders(headers []string) error {
	var missing []string
	for _, col := range RequiredColumns {
		if indexOf(headers, col) < 0 {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// indexOf returns the index of a string in a slice or -1 if not found
func indexOf(slice []string, item string) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}
