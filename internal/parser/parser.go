package parser

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"archiveheart/internal/track"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTime parses the timestamp formats seen in streaming history exports.
// Values without a zone are read as UTC.
func ParseTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Parse converts decoded rows into tracks. Rows whose endTime, trackName
// or artistName is empty after trimming are dropped; everything else is
// normalised, never rejected.
func Parse(rows []Row) []track.Track {
	tracks := make([]track.Track, 0, len(rows))
	for _, row := range rows {
		t, ok := parseRow(row)
		if !ok {
			continue
		}
		tracks = append(tracks, t)
	}
	return tracks
}

func parseRow(row Row) (track.Track, bool) {
	endTime := row[ColumnEndTime]
	trackName := strings.TrimSpace(row[ColumnTrackName])
	artistName := strings.TrimSpace(row[ColumnArtistName])
	if strings.TrimSpace(endTime) == "" || trackName == "" || artistName == "" {
		return track.Track{}, false
	}

	t := track.Track{
		EndTime:    endTime,
		ArtistName: artistName,
		TrackName:  trackName,
		MsPlayed:   parseMsPlayed(row[ColumnMsPlayed]),
	}

	if when, ok := ParseTime(endTime); ok {
		t.Year = track.IntPtr(when.Year())
		t.Month = track.IntPtr(int(when.Month()))
	}

	return t, true
}

// parseMsPlayed reads the leading integer of value. Anything unusable,
// including negative durations, becomes 0.
func parseMsPlayed(value string) int {
	value = strings.TrimSpace(value)
	end := 0
	for end < len(value) {
		c := value[end]
		if c >= '0' && c <= '9' || (end == 0 && (c == '+' || c == '-')) {
			end++
			continue
		}
		break
	}
	n, err := strconv.ParseInt(value[:end], 10, 64)
	if err != nil || n < 0 || n > math.MaxInt {
		return 0
	}
	return int(n)
}

// Merge combines several parsed exports, keeping the first occurrence of
// each (artist, track, endTime) and ordering the result by endTime.
func Merge(collections ...[]track.Track) []track.Track {
	seen := make(map[string]struct{})
	merged := []track.Track{}

	for _, tracks := range collections {
		for _, t := range tracks {
			key := t.Key()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, t)
		}
	}

	SortChronological(merged)
	return merged
}

// SortChronological stable-sorts tracks by parsed endTime in place.
// Unparseable timestamps go last and keep their relative order.
func SortChronological(tracks []track.Track) {
	times := make([]time.Time, len(tracks))
	valid := make([]bool, len(tracks))
	for i, t := range tracks {
		times[i], valid[i] = ParseTime(t.EndTime)
	}

	idx := make([]int, len(tracks))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ia, ib := idx[a], idx[b]
		if valid[ia] != valid[ib] {
			return valid[ia]
		}
		if !valid[ia] {
			return false
		}
		return times[ia].Before(times[ib])
	})

	sorted := make([]track.Track, len(tracks))
	for i, j := range idx {
		sorted[i] = tracks[j]
	}
	copy(tracks, sorted)
}
