package exporters

import (
	"fmt"
	"io"
	"strings"

	"archiveheart/internal/track"
)

// Exporter writes a dataset in one file format so it can be opened in
// other tools or fed back into an ingest.
type Exporter interface {
	Format() Format
	Extension() string
	Export(w io.Writer, ds *track.Dataset) error
}

// Format represents the supported export formats
type Format string

const (
	CSVFormat  Format = "csv"
	JSONFormat Format = "json"
	YAMLFormat Format = "yaml"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{CSVFormat, JSONFormat, YAMLFormat}
}

// New is a factory function that creates an exporter for the given format
func New(format string) (Exporter, error) {
	f := Format(strings.ToLower(strings.TrimSpace(format)))
	switch f {
	case CSVFormat:
		return NewCSVExporter(), nil
	case JSONFormat:
		return NewJSONExporter(), nil
	case YAMLFormat, "yml":
		return NewYAMLExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}
