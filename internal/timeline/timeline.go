package timeline

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"archiveheart/internal/emotion"
	"archiveheart/internal/parser"
	"archiveheart/internal/track"
)

// ErrEmptyDataset is returned when a dataset would contain no tracks.
var ErrEmptyDataset = errors.New("no valid tracks found")

// now is swapped in tests to pin the current year.
var now = time.Now

// yearOf parses the year from a track's endTime.
func yearOf(t track.Track) (int, bool) {
	when, ok := parser.ParseTime(t.EndTime)
	if !ok {
		return 0, false
	}
	return when.Year(), true
}

// TotalMinutes sums msPlayed and converts to minutes, rounding half up.
func TotalMinutes(tracks []track.Track) int {
	var total int64
	for _, t := range tracks {
		total += int64(t.MsPlayed)
	}
	return int(math.Floor(float64(total)/60000 + 0.5))
}

// YearRange returns the min and max parsed year. Without any valid year
// both ends are the current year.
func YearRange(tracks []track.Track) track.YearRange {
	r := track.YearRange{}
	found := false
	for _, t := range tracks {
		y, ok := yearOf(t)
		if !ok {
			continue
		}
		if !found {
			r.Start, r.End, found = y, y, true
			continue
		}
		if y < r.Start {
			r.Start = y
		}
		if y > r.End {
			r.End = y
		}
	}
	if !found {
		current := now().Year()
		return track.YearRange{Start: current, End: current}
	}
	return r
}

// ArtistNames returns the distinct artist names in first-seen order.
func ArtistNames(tracks []track.Track) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, t := range tracks {
		if _, ok := seen[t.ArtistName]; ok {
			continue
		}
		seen[t.ArtistName] = struct{}{}
		names = append(names, t.ArtistName)
	}
	return names
}

// UniqueArtists counts distinct artist names (exact, case-sensitive).
func UniqueArtists(tracks []track.Track) int {
	return len(ArtistNames(tracks))
}

// MostPlayedArtist returns the artist with the most tracks. On a tie the
// artist seen first wins. Empty input yields "".
func MostPlayedArtist(tracks []track.Track) string {
	counts := make(map[string]int)
	for _, t := range tracks {
		counts[t.ArtistName]++
	}

	top := ""
	max := 0
	for _, artist := range ArtistNames(tracks) {
		if counts[artist] > max {
			top, max = artist, counts[artist]
		}
	}
	return top
}

// GroupByYear buckets tracks by parsed year, keeping input order inside
// each bucket. Tracks without a valid endTime are left out.
func GroupByYear(tracks []track.Track) map[int][]track.Track {
	groups := make(map[int][]track.Track)
	for _, t := range tracks {
		y, ok := yearOf(t)
		if !ok {
			continue
		}
		groups[y] = append(groups[y], t)
	}
	return groups
}

// Years returns the keys of a year grouping in ascending order.
func Years(groups map[int][]track.Track) []int {
	years := make([]int, 0, len(groups))
	for y := range groups {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// FilterByYear keeps the tracks whose endTime falls in year.
func FilterByYear(tracks []track.Track, year int) []track.Track {
	filtered := []track.Track{}
	for _, t := range tracks {
		if y, ok := yearOf(t); ok && y == year {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// YearStatsOf computes summary statistics for a subset of tracks.
func YearStatsOf(tracks []track.Track) track.YearStats {
	return track.YearStats{
		TotalSongs:       len(tracks),
		TotalMinutes:     TotalMinutes(tracks),
		UniqueArtists:    UniqueArtists(tracks),
		MostPlayedArtist: MostPlayedArtist(tracks),
	}
}

// MonthBucket is one calendar month of listening.
type MonthBucket struct {
	Key          string                `json:"key" yaml:"key"`
	Year         int                   `json:"year" yaml:"year"`
	Month        int                   `json:"month" yaml:"month"`
	Tracks       int                   `json:"tracks" yaml:"tracks"`
	TotalMinutes int                   `json:"totalMinutes" yaml:"totalMinutes"`
	Emotions     map[track.Emotion]int `json:"emotions" yaml:"emotions"`
	Dominant     track.Emotion         `json:"dominant" yaml:"dominant"`
}

// GroupByMonth buckets tracks into YYYY-MM keys, sorted ascending, with the
// per-month emotion counts the timeline chart stacks.
func GroupByMonth(tracks []track.Track) []MonthBucket {
	grouped := make(map[string][]track.Track)
	months := make(map[string][2]int)
	for _, t := range tracks {
		when, ok := parser.ParseTime(t.EndTime)
		if !ok {
			continue
		}
		key := fmt.Sprintf("%04d-%02d", when.Year(), int(when.Month()))
		grouped[key] = append(grouped[key], t)
		months[key] = [2]int{when.Year(), int(when.Month())}
	}

	keys := make([]string, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buckets := make([]MonthBucket, 0, len(keys))
	for _, k := range keys {
		ts := grouped[k]
		buckets = append(buckets, MonthBucket{
			Key:          k,
			Year:         months[k][0],
			Month:        months[k][1],
			Tracks:       len(ts),
			TotalMinutes: TotalMinutes(ts),
			Emotions:     emotion.Distribution(ts),
			Dominant:     emotion.DominantOf(ts),
		})
	}
	return buckets
}

// BuildDataset aggregates a track collection into a Dataset. Tracks are
// ordered chronologically; an empty collection is rejected.
func BuildDataset(tracks []track.Track) (*track.Dataset, error) {
	if len(tracks) == 0 {
		return nil, ErrEmptyDataset
	}

	// Ties between artists go to the one seen first in the caller's order.
	mostPlayed := MostPlayedArtist(tracks)

	ordered := track.CloneAll(tracks)
	parser.SortChronological(ordered)

	stats := track.Stats{
		TotalSongs:       len(ordered),
		UniqueArtists:    UniqueArtists(ordered),
		MostPlayedArtist: mostPlayed,
	}

	return track.NewDataset(ordered, YearRange(ordered), TotalMinutes(ordered), stats), nil
}
