package track

// Emotion is the coarse mood assigned to a track by the classifier.
type Emotion string

const (
	Happy     Emotion = "happy"
	Sad       Emotion = "sad"
	Energetic Emotion = "energetic"
	Calm      Emotion = "calm"
)

// AllEmotions returns the closed emotion set in display order.
func AllEmotions() []Emotion {
	return []Emotion{Happy, Sad, Energetic, Calm}
}

// Valid reports whether e is one of the four known emotions.
func (e Emotion) Valid() bool {
	switch e {
	case Happy, Sad, Energetic, Calm:
		return true
	default:
		return false
	}
}

// Track represents a single listening event from a streaming history export
type Track struct {
	EndTime     string   `json:"endTime" yaml:"endTime" csv:"endTime" validate:"required"`
	ArtistName  string   `json:"artistName" yaml:"artistName" csv:"artistName" validate:"required"`
	TrackName   string   `json:"trackName" yaml:"trackName" csv:"trackName" validate:"required"`
	MsPlayed    int      `json:"msPlayed" yaml:"msPlayed" csv:"msPlayed" validate:"gte=0"`
	Year        *int     `json:"year,omitempty" yaml:"year,omitempty" csv:"year"`
	Month       *int     `json:"month,omitempty" yaml:"month,omitempty" csv:"month" validate:"omitempty,gte=1,lte=12"`
	Emotion     Emotion  `json:"emotion,omitempty" yaml:"emotion,omitempty" csv:"emotion" validate:"omitempty,oneof=happy sad energetic calm"`
	EnergyLevel *float64 `json:"energyLevel,omitempty" yaml:"energyLevel,omitempty" csv:"energyLevel" validate:"omitempty,gte=0,lte=1"`
}

// Key is the composite identity used to deduplicate merged exports.
func (t Track) Key() string {
	return t.ArtistName + "|" + t.TrackName + "|" + t.EndTime
}

// IsClassified reports whether both the emotion and the energy level are set.
func (t Track) IsClassified() bool {
	return t.Emotion != "" && t.EnergyLevel != nil
}

// IsRaw reports whether neither classification field is set.
func (t Track) IsRaw() bool {
	return t.Emotion == "" && t.EnergyLevel == nil
}

// WithClassification returns a copy of t carrying the given emotion and energy.
func (t Track) WithClassification(e Emotion, energy float64) Track {
	t.Emotion = e
	t.EnergyLevel = &energy
	return t
}

// Raw returns a copy of t with classification fields cleared.
func (t Track) Raw() Track {
	t.Emotion = ""
	t.EnergyLevel = nil
	return t
}

// Clone returns a deep copy so callers can never alias pointer fields.
func (t Track) Clone() Track {
	if t.Year != nil {
		y := *t.Year
		t.Year = &y
	}
	if t.Month != nil {
		m := *t.Month
		t.Month = &m
	}
	if t.EnergyLevel != nil {
		e := *t.EnergyLevel
		t.EnergyLevel = &e
	}
	return t
}

// CloneAll deep-copies a slice of tracks.
func CloneAll(tracks []Track) []Track {
	out := make([]Track, len(tracks))
	for i, t := range tracks {
		out[i] = t.Clone()
	}
	return out
}

// IntPtr is a small helper for building optional year/month values.
func IntPtr(v int) *int {
	return &v
}

// FloatPtr is a small helper for building optional energy values.
func FloatPtr(v float64) *float64 {
	return &v
}
