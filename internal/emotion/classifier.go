package emotion

import (
	"math"
	"strings"

	"archiveheart/internal/track"
)

// Result is the outcome of classifying one track.
type Result struct {
	Emotion     track.Emotion `json:"emotion"`
	Confidence  float64       `json:"confidence"`
	EnergyLevel float64       `json:"energyLevel"`
}

// Scores holds the keyword hit count per emotion.
type Scores struct {
	Happy     int
	Sad       int
	Energetic int
	Calm      int
}

// Of returns the score for a single emotion.
func (s Scores) Of(e track.Emotion) int {
	switch e {
	case track.Happy:
		return s.Happy
	case track.Sad:
		return s.Sad
	case track.Energetic:
		return s.Energetic
	case track.Calm:
		return s.Calm
	default:
		return 0
	}
}

// Total is the sum over all emotions.
func (s Scores) Total() int {
	return s.Happy + s.Sad + s.Energetic + s.Calm
}

// Dominant returns the emotion with the strictly highest score and that
// emotion's own score. Any tie at the top, and the all-zero case, resolve
// to calm.
func (s Scores) Dominant() (track.Emotion, int) {
	best := track.Calm
	max := 0
	tied := false
	for _, e := range track.AllEmotions() {
		score := s.Of(e)
		switch {
		case score > max:
			best, max, tied = e, score, false
		case score == max && max > 0:
			tied = true
		}
	}
	if tied || max == 0 {
		return track.Calm, s.Calm
	}
	return best, max
}

// Classifier assigns an emotion and energy level using keyword heuristics.
// It never touches the network.
type Classifier struct {
	jitter Jitter
}

// NewClassifier creates a classifier using the given jitter source. A nil
// jitter falls back to uniform random placement.
func NewClassifier(jitter Jitter) *Classifier {
	if jitter == nil {
		jitter = NewRandomJitter()
	}
	return &Classifier{jitter: jitter}
}

// Score counts keyword hits for a track. Each keyword counts at most once.
func Score(t track.Track) Scores {
	text := strings.ToLower(t.ArtistName + " " + t.TrackName)
	count := func(keywords []string) int {
		n := 0
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				n++
			}
		}
		return n
	}
	return Scores{
		Happy:     count(happyKeywords),
		Sad:       count(sadKeywords),
		Energetic: count(energeticKeywords),
		Calm:      count(calmKeywords),
	}
}

// Classify detects the dominant emotion of a track.
func (c *Classifier) Classify(t track.Track) Result {
	scores := Score(t)
	dominant, winning := scores.Dominant()

	confidence := 0.0
	if total := scores.Total(); total > 0 {
		confidence = math.Min(float64(winning)/(float64(total)*0.5), 1)
	}

	return Result{
		Emotion:     dominant,
		Confidence:  confidence,
		EnergyLevel: c.energy(dominant, t),
	}
}

func (c *Classifier) energy(e track.Emotion, t track.Track) float64 {
	band := EnergyBand(e)
	frac := c.jitter.Fraction(t)
	if frac < 0 || frac >= 1 || math.IsNaN(frac) {
		frac = 0
	}
	v := band.Low + frac*(band.High-band.Low)
	if v >= band.High {
		v = math.Nextafter(band.High, band.Low)
	}
	return v
}

// ClassifyAll returns a classified copy of tracks; the input is not modified.
func (c *Classifier) ClassifyAll(tracks []track.Track) []track.Track {
	out := make([]track.Track, len(tracks))
	for i, t := range tracks {
		r := c.Classify(t)
		out[i] = t.Clone().WithClassification(r.Emotion, r.EnergyLevel)
	}
	return out
}

// Distribution counts tracks per emotion. All four emotions are always
// present; unclassified tracks are not counted.
func Distribution(tracks []track.Track) map[track.Emotion]int {
	dist := make(map[track.Emotion]int, 4)
	for _, e := range track.AllEmotions() {
		dist[e] = 0
	}
	for _, t := range tracks {
		if t.Emotion.Valid() {
			dist[t.Emotion]++
		}
	}
	return dist
}

// DominantOf returns the most frequent emotion among tracks, with the same
// tie rule as single-track classification.
func DominantOf(tracks []track.Track) track.Emotion {
	dist := Distribution(tracks)
	e, _ := Scores{
		Happy:     dist[track.Happy],
		Sad:       dist[track.Sad],
		Energetic: dist[track.Energetic],
		Calm:      dist[track.Calm],
	}.Dominant()
	return e
}
