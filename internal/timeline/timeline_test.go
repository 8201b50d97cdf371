package timeline

import (
	"errors"
	"testing"
	"time"

	"archiveheart/internal/emotion"
	"archiveheart/internal/parser"
	"archiveheart/internal/track"
)

func tr(endTime, artist string, ms int) track.Track {
	return track.Track{EndTime: endTime, ArtistName: artist, TrackName: "song", MsPlayed: ms}
}

func TestTotalMinutes(t *testing.T) {
	testCases := []struct {
		name string
		ms   []int
		want int
	}{
		{"empty", nil, 0},
		{"three minutes", []int{180000}, 3},
		{"rounds down", []int{89999}, 1},
		{"half rounds up", []int{90000}, 2},
		{"summed before rounding", []int{30000, 30000, 30000}, 2},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var tracks []track.Track
			for _, ms := range tc.ms {
				tracks = append(tracks, tr("2023-01-01", "A", ms))
			}
			if got := TotalMinutes(tracks); got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestYearRange(t *testing.T) {
	tracks := []track.Track{
		tr("2021-06-01 10:00", "A", 1),
		tr("garbage", "A", 1),
		tr("2019-01-01 10:00", "A", 1),
		tr("2023-12-31 23:59", "A", 1),
	}
	got := YearRange(tracks)
	if got.Start != 2019 || got.End != 2023 {
		t.Errorf("expected 2019-2023, got %+v", got)
	}
}

func TestYearRange_EmptyUsesCurrentYear(t *testing.T) {
	orig := now
	now = func() time.Time { return time.Date(2031, 3, 1, 0, 0, 0, 0, time.UTC) }
	defer func() { now = orig }()

	for _, tracks := range [][]track.Track{nil, {tr("nope", "A", 1)}} {
		got := YearRange(tracks)
		if got.Start != 2031 || got.End != 2031 {
			t.Errorf("expected current year, got %+v", got)
		}
	}
}

func TestUniqueArtists(t *testing.T) {
	tracks := []track.Track{
		tr("2023-01-01", "Adele", 1),
		tr("2023-01-01", "adele", 1),
		tr("2023-01-01", "Adele", 1),
		tr("2023-01-01", "Bjork", 1),
	}
	if got := UniqueArtists(tracks); got != 3 {
		t.Errorf("expected 3 case-sensitive artists, got %d", got)
	}
	names := ArtistNames(tracks)
	if names[0] != "Adele" || names[1] != "adele" || names[2] != "Bjork" {
		t.Errorf("unexpected order: %v", names)
	}
}

func TestMostPlayedArtist(t *testing.T) {
	testCases := []struct {
		name    string
		artists []string
		want    string
	}{
		{"tie goes to first seen", []string{"A", "B", "A", "B", "C"}, "A"},
		{"later leader with tie", []string{"A", "B", "B", "A"}, "A"},
		{"clear winner", []string{"A", "B", "B", "C"}, "B"},
		{"single", []string{"Solo"}, "Solo"},
		{"empty", nil, ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var tracks []track.Track
			for _, a := range tc.artists {
				tracks = append(tracks, tr("2023-01-01", a, 1))
			}
			if got := MostPlayedArtist(tracks); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestGroupByYear(t *testing.T) {
	tracks := []track.Track{
		tr("2022-05-01 10:00", "first-2022", 1),
		tr("2021-05-01 10:00", "only-2021", 1),
		tr("bad", "dropped", 1),
		tr("2022-01-01 10:00", "second-2022", 1),
	}
	groups := GroupByYear(tracks)
	if len(groups) != 2 {
		t.Fatalf("expected 2 years, got %d", len(groups))
	}
	if g := groups[2022]; len(g) != 2 || g[0].ArtistName != "first-2022" || g[1].ArtistName != "second-2022" {
		t.Errorf("2022 bucket should keep input order: %+v", g)
	}
	years := Years(groups)
	if len(years) != 2 || years[0] != 2021 || years[1] != 2022 {
		t.Errorf("unexpected years: %v", years)
	}
}

func TestFilterByYearAndStats(t *testing.T) {
	tracks := []track.Track{
		tr("2022-05-01 10:00", "A", 60000),
		tr("2021-05-01 10:00", "B", 60000),
		tr("2022-06-01 10:00", "C", 120000),
		tr("2022-07-01 10:00", "C", 60000),
	}
	year := FilterByYear(tracks, 2022)
	stats := YearStatsOf(year)
	want := track.YearStats{TotalSongs: 3, TotalMinutes: 4, UniqueArtists: 2, MostPlayedArtist: "C"}
	if stats != want {
		t.Errorf("expected %+v, got %+v", want, stats)
	}

	none := YearStatsOf(FilterByYear(tracks, 1999))
	if none != (track.YearStats{}) {
		t.Errorf("expected zero stats, got %+v", none)
	}
}

func TestGroupByMonth(t *testing.T) {
	tracks := []track.Track{
		tr("2023-02-10 10:00", "A", 60000).WithClassification(track.Sad, 0.3),
		tr("2023-01-10 10:00", "A", 60000).WithClassification(track.Happy, 0.7),
		tr("2023-02-11 10:00", "A", 60000).WithClassification(track.Sad, 0.3),
		tr("2023-02-12 10:00", "A", 60000).WithClassification(track.Energetic, 0.9),
	}
	buckets := GroupByMonth(tracks)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 months, got %d", len(buckets))
	}
	if buckets[0].Key != "2023-01" || buckets[1].Key != "2023-02" {
		t.Errorf("unexpected order: %s, %s", buckets[0].Key, buckets[1].Key)
	}
	feb := buckets[1]
	if feb.Tracks != 3 || feb.TotalMinutes != 3 || feb.Dominant != track.Sad || feb.Emotions[track.Sad] != 2 {
		t.Errorf("unexpected february bucket: %+v", feb)
	}
	if feb.Year != 2023 || feb.Month != 2 {
		t.Errorf("unexpected year/month: %d/%d", feb.Year, feb.Month)
	}
}

func TestBuildDataset_Empty(t *testing.T) {
	_, err := BuildDataset(nil)
	if !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("expected ErrEmptyDataset, got %v", err)
	}
	_, err = BuildDataset([]track.Track{})
	if !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("expected ErrEmptyDataset, got %v", err)
	}
}

func TestBuildDataset_ConcreteScenario(t *testing.T) {
	rows := []parser.Row{
		{"endTime": "2023-01-01T10:00:00", "artistName": "Test Artist", "trackName": "Happy Song", "msPlayed": "180000"},
		{"endTime": "2023-01-01T11:00:00", "artistName": "Test Artist", "msPlayed": "5"},
	}
	parsed := parser.Parse(rows)
	if len(parsed) != 1 {
		t.Fatalf("expected 1 parsed record, got %d", len(parsed))
	}

	classified := emotion.NewClassifier(nil).ClassifyAll(parsed)
	if classified[0].Emotion != track.Happy {
		t.Errorf("expected happy, got %s", classified[0].Emotion)
	}

	ds, err := BuildDataset(classified)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.TotalMinutes() != 3 {
		t.Errorf("expected 3 minutes, got %d", ds.TotalMinutes())
	}
	if ds.Stats().TotalSongs != 1 || ds.Stats().UniqueArtists != 1 {
		t.Errorf("unexpected stats: %+v", ds.Stats())
	}
	if ds.Stats().MostPlayedArtist != "Test Artist" {
		t.Errorf("unexpected top artist %q", ds.Stats().MostPlayedArtist)
	}
	if ds.YearRange() != (track.YearRange{Start: 2023, End: 2023}) {
		t.Errorf("unexpected year range: %+v", ds.YearRange())
	}
}

func TestBuildDataset_InvariantsAndOrdering(t *testing.T) {
	input := []track.Track{
		tr("2023-03-01 10:00", "A", 1),
		tr("2021-03-01 10:00", "B", 1),
		tr("2022-03-01 10:00", "A", 1),
	}
	ds, err := BuildDataset(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tracks := ds.Tracks()
	if ds.Stats().TotalSongs != len(tracks) {
		t.Errorf("totalSongs %d != len(tracks) %d", ds.Stats().TotalSongs, len(tracks))
	}
	if tracks[0].EndTime != "2021-03-01 10:00" || tracks[2].EndTime != "2023-03-01 10:00" {
		t.Errorf("tracks not chronological: %+v", tracks)
	}
	if input[0].EndTime != "2023-03-01 10:00" {
		t.Error("BuildDataset must not reorder the caller's slice")
	}

	tracks[0].ArtistName = "mutated"
	if ds.Tracks()[0].ArtistName == "mutated" {
		t.Error("dataset must not expose its internal slice")
	}
}

func TestBuildDataset_MostPlayedTieUsesInputOrder(t *testing.T) {
	input := []track.Track{
		tr("2023-03-01 10:00", "A", 1),
		tr("2023-01-01 10:00", "B", 1),
		tr("2023-04-01 10:00", "A", 1),
		tr("2023-02-01 10:00", "B", 1),
	}
	ds, err := BuildDataset(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := ds.Stats().MostPlayedArtist; got != "A" {
		t.Errorf("expected A, got %q", got)
	}
	if got := MostPlayedArtist(input); got != ds.Stats().MostPlayedArtist {
		t.Errorf("dataset disagrees with MostPlayedArtist: %q vs %q", ds.Stats().MostPlayedArtist, got)
	}
	if ds.Tracks()[0].ArtistName != "B" {
		t.Error("tracks should still be chronological")
	}
}
