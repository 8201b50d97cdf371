package share

import (
	"archiveheart/internal/track"
)

// Version is written into every payload's metadata.
const Version = "1.0.0"

// Metadata is informational; decoding does not depend on it.
type Metadata struct {
	CreatedAt string `json:"createdAt"`
	Version   string `json:"version" validate:"required"`
}

// Payload is the exact structure compressed into a share link. It carries
// the raw classified tracks, never the derived aggregates.
type Payload struct {
	Tracks   []track.Track `json:"tracks"`
	SkinID   string        `json:"skinId"`
	Metadata Metadata      `json:"metadata"`
}

// wirePayload distinguishes missing keys from zero values while decoding.
type wirePayload struct {
	Tracks   *[]track.Track `json:"tracks"`
	SkinID   *string        `json:"skinId"`
	Metadata *Metadata      `json:"metadata"`
}
