package share

import (
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"

	"archiveheart/internal/track"
)

const maxDecodedSize = 64 << 20

var encoding = base64.RawURLEncoding.Strict()

var (
	encOnce sync.Once
	encoder *zstd.Encoder
	encErr  error

	decOnce sync.Once
	decoder *zstd.Decoder
	decErr  error

	validate = validator.New()
)

func getEncoder() (*zstd.Encoder, error) {
	encOnce.Do(func() {
		encoder, encErr = zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedBestCompression),
			zstd.WithEncoderCRC(true),
		)
	})
	return encoder, encErr
}

func getDecoder() (*zstd.Decoder, error) {
	decOnce.Do(func() {
		decoder, decErr = zstd.NewReader(nil,
			zstd.WithDecoderMaxMemory(maxDecodedSize),
			zstd.WithDecoderConcurrency(0),
		)
	})
	return decoder, decErr
}

// Codec turns track collections into URL-safe strings and back.
type Codec struct {
	// Clock stamps metadata.createdAt.
	Clock func() time.Time
}

// NewCodec returns a codec stamped with the wall clock.
func NewCodec() *Codec {
	return &Codec{Clock: time.Now}
}

// NewPayload wraps tracks and a skin id with fresh metadata.
func (c *Codec) NewPayload(tracks []track.Track, skinID string) Payload {
	if tracks == nil {
		tracks = []track.Track{}
	}
	clock := c.Clock
	if clock == nil {
		clock = time.Now
	}
	return Payload{
		Tracks: tracks,
		SkinID: skinID,
		Metadata: Metadata{
			CreatedAt: clock().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
			Version:   Version,
		},
	}
}

// Encode serialises and compresses tracks plus skin id. The result only
// uses the base64url alphabet, so it needs no escaping inside a URL.
func (c *Codec) Encode(tracks []track.Track, skinID string) (string, error) {
	return c.EncodePayload(c.NewPayload(tracks, skinID))
}

// EncodePayload compresses an already built payload.
func (c *Codec) EncodePayload(p Payload) (string, error) {
	if p.Tracks == nil {
		p.Tracks = []track.Track{}
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return "", &CompressionError{Cause: fmt.Errorf("serialise payload: %w", err)}
	}

	enc, err := getEncoder()
	if err != nil {
		return "", &CompressionError{Cause: err}
	}

	compressed := enc.EncodeAll(raw, make([]byte, 0, len(raw)/2))
	if len(compressed) == 0 {
		return "", &CompressionError{Cause: errors.New("compressor produced no output")}
	}

	return encoding.EncodeToString(compressed), nil
}

// Decode reverses Encode. Any malformed input yields a DecodeError.
func (c *Codec) Decode(data string) (Payload, error) {
	if data == "" {
		return Payload{}, decodeErr("empty payload", nil)
	}

	compressed, err := encoding.DecodeString(data)
	if err != nil {
		return Payload{}, decodeErr("payload is not base64url", err)
	}

	dec, err := getDecoder()
	if err != nil {
		return Payload{}, decodeErr("decompressor unavailable", err)
	}

	raw, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return Payload{}, decodeErr("decompression failed", err)
	}
	if len(raw) == 0 {
		return Payload{}, decodeErr("decompression returned empty output", nil)
	}

	return parsePayload(raw)
}

func parsePayload(raw []byte) (Payload, error) {
	var wire wirePayload
	if err := json.Unmarshal(raw, &wire); err != nil {
		return Payload{}, decodeErr("payload is not valid JSON", err)
	}

	switch {
	case wire.Tracks == nil:
		return Payload{}, decodeErr("payload has no tracks array", nil)
	case wire.SkinID == nil:
		return Payload{}, decodeErr("payload has no skinId", nil)
	case wire.Metadata == nil:
		return Payload{}, decodeErr("payload has no metadata", nil)
	}

	if err := validate.Struct(wire.Metadata); err != nil {
		return Payload{}, decodeErr("payload metadata is malformed", err)
	}

	tracks := *wire.Tracks
	if tracks == nil {
		tracks = []track.Track{}
	}
	for i, t := range tracks {
		if err := validate.Struct(t); err != nil {
			return Payload{}, decodeErr(fmt.Sprintf("track %d is malformed", i), err)
		}
		if !t.IsClassified() && !t.IsRaw() {
			return Payload{}, decodeErr(fmt.Sprintf("track %d is partially classified", i), nil)
		}
	}

	return Payload{
		Tracks:   tracks,
		SkinID:   *wire.SkinID,
		Metadata: *wire.Metadata,
	}, nil
}

var defaultCodec = NewCodec()

// Encode uses the default wall-clock codec.
func Encode(tracks []track.Track, skinID string) (string, error) {
	return defaultCodec.Encode(tracks, skinID)
}

// Decode uses the default codec.
func Decode(data string) (Payload, error) {
	return defaultCodec.Decode(data)
}
