package exporters

import (
	"io"
	"reflect"

	"archiveheart/internal/track"
	"archiveheart/internal/utils"
)

// CSVExporter writes one row per classified track. The required ingest
// columns come first, so the file can be ingested again.
type CSVExporter struct {
	BaseExporter
}

func NewCSVExporter() *CSVExporter {
	return &CSVExporter{BaseExporter: NewBaseExporter(CSVFormat, ".csv")}
}

func (e *CSVExporter) Export(w io.Writer, ds *track.Dataset) error {
	if err := e.CheckDataset(ds); err != nil {
		return err
	}
	headers := utils.StructToCsvHeader(reflect.TypeOf(track.Track{}))
	return utils.WriteCsv(w, headers, ds.Tracks())
}
