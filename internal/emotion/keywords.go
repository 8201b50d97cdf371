package emotion

import "archiveheart/internal/track"

var happyKeywords = []string{
	"love", "happy", "joy", "celebrate", "party", "smile", "laugh",
	"sunshine", "summer", "bright", "dance", "fun", "good", "best",
	"paradise", "wonderful", "beautiful", "dream", "magic",
}

var sadKeywords = []string{
	"sad", "cry", "lonely", "alone", "heartbreak", "goodbye", "lose",
	"funeral", "death", "pain", "sorrow", "tears", "broken", "broken heart",
	"midnight", "dark", "empty", "ghost", "fade", "end",
}

var energeticKeywords = []string{
	"rock", "heavy", "metal", "punk", "electric", "power", "thunder",
	"wild", "crazy", "fast", "speed", "blast", "rush", "pump",
	"hyper", "extreme", "dunk", "turbo", "adrenaline",
}

var calmKeywords = []string{
	"peace", "calm", "quiet", "sleep", "dream", "night", "soft",
	"gentle", "lullaby", "meditation", "zen", "flow", "easy",
	"ambient", "chill", "relax", "breathe", "still", "serene",
}

// Keywords returns the keyword list for an emotion.
func Keywords(e track.Emotion) []string {
	switch e {
	case track.Happy:
		return happyKeywords
	case track.Sad:
		return sadKeywords
	case track.Energetic:
		return energeticKeywords
	case track.Calm:
		return calmKeywords
	default:
		return nil
	}
}

// Band is the half-open energy interval [Low, High) for an emotion.
type Band struct {
	Low  float64
	High float64
}

// Contains reports whether v lies inside the band.
func (b Band) Contains(v float64) bool {
	return v >= b.Low && v < b.High
}

// EnergyBand returns the energy interval associated with an emotion.
func EnergyBand(e track.Emotion) Band {
	switch e {
	case track.Energetic:
		return Band{Low: 0.8, High: 1.0}
	case track.Happy:
		return Band{Low: 0.6, High: 0.8}
	case track.Sad:
		return Band{Low: 0.2, High: 0.4}
	default:
		return Band{Low: 0.3, High: 0.5}
	}
}
