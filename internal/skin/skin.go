package skin

// DefaultID is the skin used when none is chosen or the id is unknown.
const DefaultID = "ocean"

// ColorScheme is the palette of a skin. The pipeline never interprets it.
type ColorScheme struct {
	Primary    string `json:"primary" yaml:"primary"`
	Secondary  string `json:"secondary" yaml:"secondary"`
	Background string `json:"background" yaml:"background"`
	Text       string `json:"text" yaml:"text"`
	Happy      string `json:"happy" yaml:"happy"`
	Sad        string `json:"sad" yaml:"sad"`
	Energetic  string `json:"energetic" yaml:"energetic"`
	Calm       string `json:"calm" yaml:"calm"`
}

// Skin is a visual theme selected by id.
type Skin struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Colors      ColorScheme `json:"colors" yaml:"colors"`
}

var order = []string{"cityscape", "futuristic", "ocean", "minimalistic", "sparkly_space", "girly_pink"}

var registry = map[string]Skin{
	"cityscape": {
		ID:          "cityscape",
		Name:        "Cityscape",
		Description: "Urban geometry with neon accents. Your listening as a bustling metropolis.",
		Colors: ColorScheme{
			Primary: "#1a1a2e", Secondary: "#16213e", Background: "#0f3460", Text: "#eaeaea",
			Happy: "#ff006e", Sad: "#4361ee", Energetic: "#ffbe0b", Calm: "#00bbf9",
		},
	},
	"futuristic": {
		ID:          "futuristic",
		Name:        "Futuristic",
		Description: "Holographic and sleek. Your music as cutting-edge technology.",
		Colors: ColorScheme{
			Primary: "#0a0e27", Secondary: "#1a1f3a", Background: "#0f1419", Text: "#ffffff",
			Happy: "#00ff88", Sad: "#ff006e", Energetic: "#00d4ff", Calm: "#a78bfa",
		},
	},
	"ocean": {
		ID:          "ocean",
		Name:        "Ocean",
		Description: "Flowing blues and teals. Your listening as waves and currents.",
		Colors: ColorScheme{
			Primary: "#0a3d62", Secondary: "#1f5a7a", Background: "#164863", Text: "#e8f4f8",
			Happy: "#76c893", Sad: "#3d5a80", Energetic: "#ee964b", Calm: "#4ecdc4",
		},
	},
	"minimalistic": {
		ID:          "minimalistic",
		Name:        "Minimalistic Modern Art",
		Description: "Clean lines and breathing space. Your music distilled to essence.",
		Colors: ColorScheme{
			Primary: "#ffffff", Secondary: "#f5f5f5", Background: "#fafafa", Text: "#1a1a1a",
			Happy: "#ff6b35", Sad: "#004e89", Energetic: "#f7931e", Calm: "#95b8d1",
		},
	},
	"sparkly_space": {
		ID:          "sparkly_space",
		Name:        "Sparkly Space",
		Description: "Cosmic wonder with glitter and stars. Your music as the universe.",
		Colors: ColorScheme{
			Primary: "#0b0014", Secondary: "#200030", Background: "#0d0011", Text: "#e0d5ff",
			Happy: "#ffd700", Sad: "#4a0080", Energetic: "#ff1493", Calm: "#00ffff",
		},
	},
	"girly_pink": {
		ID:          "girly_pink",
		Name:        "Girly Pink Pastel Flowers",
		Description: "Soft, dreamy, and floral. Your music as a flower garden in spring.",
		Colors: ColorScheme{
			Primary: "#fce4ec", Secondary: "#f8bbd0", Background: "#fff0f5", Text: "#880e4f",
			Happy: "#f06292", Sad: "#ce93d8", Energetic: "#ff80ab", Calm: "#b39ddb",
		},
	},
}

// Lookup returns the skin for id and whether it exists.
func Lookup(id string) (Skin, bool) {
	s, ok := registry[id]
	return s, ok
}

// Resolve always yields a usable skin, falling back to the default.
func Resolve(id string) Skin {
	if s, ok := registry[id]; ok {
		return s
	}
	return registry[DefaultID]
}

// Default returns the skin offered to new timelines.
func Default() Skin {
	return registry[DefaultID]
}

// All returns every registered skin in display order.
func All() []Skin {
	skins := make([]Skin, 0, len(order))
	for _, id := range order {
		skins = append(skins, registry[id])
	}
	return skins
}
