package exporters

import (
	"io"

	"gopkg.in/yaml.v3"

	"archiveheart/internal/track"
)

// YAMLExporter writes the full Document as YAML.
type YAMLExporter struct {
	BaseExporter
}

func NewYAMLExporter() *YAMLExporter {
	return &YAMLExporter{BaseExporter: NewBaseExporter(YAMLFormat, ".yaml")}
}

func (e *YAMLExporter) Export(w io.Writer, ds *track.Dataset) error {
	if err := e.CheckDataset(ds); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(BuildDocument(ds)); err != nil {
		return err
	}
	return enc.Close()
}
