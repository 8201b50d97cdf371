package exporters

import (
	"errors"

	"archiveheart/internal/emotion"
	"archiveheart/internal/timeline"
	"archiveheart/internal/track"
)

// BaseExporter provides common functionality for exporters
type BaseExporter struct {
	format    Format
	extension string
}

// NewBaseExporter creates a new BaseExporter
func NewBaseExporter(format Format, extension string) BaseExporter {
	return BaseExporter{format: format, extension: extension}
}

// Format returns the format handled by the exporter
func (b BaseExporter) Format() Format {
	return b.format
}

// Extension returns the file extension including the dot
func (b BaseExporter) Extension() string {
	return b.extension
}

// CheckDataset ensures there is something to export
func (b BaseExporter) CheckDataset(ds *track.Dataset) error {
	if ds == nil || ds.Len() == 0 {
		return errors.New("nothing to export: dataset is empty")
	}
	return nil
}

// Document is the full structured export: dataset plus the derived
// groupings the timeline view draws.
type Document struct {
	track.View   `yaml:",inline"`
	Distribution map[track.Emotion]int `json:"distribution" yaml:"distribution"`
	Years        []YearEntry           `json:"years" yaml:"years"`
	Months       []timeline.MonthBucket `json:"months" yaml:"months"`
}

// YearEntry is one year's summary.
type YearEntry struct {
	Year  int             `json:"year" yaml:"year"`
	Stats track.YearStats `json:"stats" yaml:"stats"`
}

// BuildDocument derives the structured export from a dataset.
func BuildDocument(ds *track.Dataset) Document {
	view := ds.View()
	groups := timeline.GroupByYear(view.Tracks)

	years := make([]YearEntry, 0, len(groups))
	for _, y := range timeline.Years(groups) {
		years = append(years, YearEntry{Year: y, Stats: timeline.YearStatsOf(groups[y])})
	}

	return Document{
		View:         view,
		Distribution: emotion.Distribution(view.Tracks),
		Years:        years,
		Months:       timeline.GroupByMonth(view.Tracks),
	}
}
