package track

// YearRange is an inclusive span of years.
type YearRange struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Stats summarises a whole dataset.
type Stats struct {
	TotalSongs       int    `json:"totalSongs" yaml:"totalSongs"`
	UniqueArtists    int    `json:"uniqueArtists" yaml:"uniqueArtists"`
	MostPlayedArtist string `json:"mostPlayedArtist" yaml:"mostPlayedArtist"`
}

// YearStats summarises the tracks of a single year (or any subset).
type YearStats struct {
	TotalSongs       int    `json:"totalSongs" yaml:"totalSongs"`
	TotalMinutes     int    `json:"totalMinutes" yaml:"totalMinutes"`
	UniqueArtists    int    `json:"uniqueArtists" yaml:"uniqueArtists"`
	MostPlayedArtist string `json:"mostPlayedArtist" yaml:"mostPlayedArtist"`
}

// Dataset is the aggregated, classified view of a track collection.
// It is immutable: build a new one instead of changing fields.
type Dataset struct {
	tracks       []Track
	yearRange    YearRange
	totalMinutes int
	stats        Stats
}

// NewDataset wraps already computed aggregates. The track slice is copied.
func NewDataset(tracks []Track, yearRange YearRange, totalMinutes int, stats Stats) *Dataset {
	return &Dataset{
		tracks:       CloneAll(tracks),
		yearRange:    yearRange,
		totalMinutes: totalMinutes,
		stats:        stats,
	}
}

// Tracks returns a copy of the chronological track list.
func (d *Dataset) Tracks() []Track {
	return CloneAll(d.tracks)
}

// Len is the number of tracks without copying them.
func (d *Dataset) Len() int {
	return len(d.tracks)
}

func (d *Dataset) YearRange() YearRange {
	return d.yearRange
}

func (d *Dataset) TotalMinutes() int {
	return d.totalMinutes
}

func (d *Dataset) Stats() Stats {
	return d.stats
}

// View is the serialisable form of a dataset used by exporters and the HTTP API.
type View struct {
	Tracks       []Track   `json:"tracks" yaml:"tracks"`
	YearRange    YearRange `json:"yearRange" yaml:"yearRange"`
	TotalMinutes int       `json:"totalMinutes" yaml:"totalMinutes"`
	Stats        Stats     `json:"stats" yaml:"stats"`
}

// View returns a detached snapshot of the dataset.
func (d *Dataset) View() View {
	return View{
		Tracks:       d.Tracks(),
		YearRange:    d.yearRange,
		TotalMinutes: d.totalMinutes,
		Stats:        d.stats,
	}
}
