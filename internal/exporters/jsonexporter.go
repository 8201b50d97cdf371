package exporters

import (
	"io"

	"github.com/goccy/go-json"

	"archiveheart/internal/track"
)

// JSONExporter writes the full Document as indented JSON.
type JSONExporter struct {
	BaseExporter
}

func NewJSONExporter() *JSONExporter {
	return &JSONExporter{BaseExporter: NewBaseExporter(JSONFormat, ".json")}
}

func (e *JSONExporter) Export(w io.Writer, ds *track.Dataset) error {
	if err := e.CheckDataset(ds); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDocument(ds))
}
