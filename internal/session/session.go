package session

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/revx-official/output/log"

	"archiveheart/internal/emotion"
	"archiveheart/internal/metrics"
	"archiveheart/internal/parser"
	"archiveheart/internal/share"
	"archiveheart/internal/skin"
	"archiveheart/internal/timeline"
	"archiveheart/internal/track"
)

// State is where a session sits in its lifecycle.
type State int

const (
	Empty State = iota
	Ingesting
	Ready
	Viewing
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Ingesting:
		return "ingesting"
	case Ready:
		return "ready"
	case Viewing:
		return "viewing"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Source is one uploaded export file.
type Source struct {
	Name   string
	Reader io.Reader
}

// Options configures a Session.
type Options struct {
	BaseURL     string
	MaxFileSize int64
	DefaultSkin string
	Classifier  *emotion.Classifier
	Codec       *share.Codec
}

type snapshot struct {
	state   State
	dataset *track.Dataset
	skinID  string
}

// Session owns the current timeline of one user. Every transition swaps
// the whole snapshot, so readers never observe a half-built dataset.
type Session struct {
	classifier  *emotion.Classifier
	codec       *share.Codec
	baseURL     string
	maxFileSize int64
	defaultSkin string

	current   atomic.Pointer[snapshot]
	ingesting atomic.Bool
}

// New creates an empty session.
func New(opts Options) *Session {
	if opts.Classifier == nil {
		opts.Classifier = emotion.NewClassifier(nil)
	}
	if opts.Codec == nil {
		opts.Codec = share.NewCodec()
	}
	if opts.DefaultSkin == "" {
		opts.DefaultSkin = skin.DefaultID
	}

	s := &Session{
		classifier:  opts.Classifier,
		codec:       opts.Codec,
		baseURL:     opts.BaseURL,
		maxFileSize: opts.MaxFileSize,
		defaultSkin: opts.DefaultSkin,
	}
	s.current.Store(&snapshot{state: Empty, skinID: opts.DefaultSkin})
	return s
}

// State reports the lifecycle state.
func (s *Session) State() State {
	if s.ingesting.Load() {
		return Ingesting
	}
	return s.current.Load().state
}

// Current returns the active dataset, or nil when the session is empty.
func (s *Session) Current() *track.Dataset {
	return s.current.Load().dataset
}

// SkinID returns the selected skin id.
func (s *Session) SkinID() string {
	return s.current.Load().skinID
}

// Skin resolves the selected skin, falling back to the default skin.
func (s *Session) Skin() skin.Skin {
	return skin.Resolve(s.SkinID())
}

// SelectSkin switches the skin without touching the dataset.
func (s *Session) SelectSkin(id string) {
	prev := s.current.Load()
	s.current.Store(&snapshot{state: prev.state, dataset: prev.dataset, skinID: id})
}

// Reset clears the dataset and restores the default skin.
func (s *Session) Reset() {
	s.current.Store(&snapshot{state: Empty, skinID: s.defaultSkin})
}

// Ingest parses, classifies and aggregates one or more exports. Several
// files are merged and deduplicated. On failure the previous dataset stays.
func (s *Session) Ingest(sources ...Source) (ds *track.Dataset, err error) {
	start := time.Now()
	defer func() { metrics.Observe("ingest", start, err) }()

	if !s.ingesting.CompareAndSwap(false, true) {
		return nil, errors.New("an ingest is already running")
	}
	defer s.ingesting.Store(false)

	if len(sources) == 0 {
		return nil, timeline.ErrEmptyDataset
	}

	collections := make([][]track.Track, 0, len(sources))
	for _, src := range sources {
		tracks, err := s.parseSource(src)
		if err != nil {
			log.Errorf("failed to read %s: %s", src.Name, err)
			return nil, fmt.Errorf("%s: %w", src.Name, err)
		}
		log.Infof("parsed %d tracks from %s", len(tracks), src.Name)
		collections = append(collections, tracks)
	}

	tracks := collections[0]
	if len(collections) > 1 {
		tracks = parser.Merge(collections...)
		log.Infof("merged %d files into %d unique tracks", len(collections), len(tracks))
	}

	classified := s.classifier.ClassifyAll(tracks)

	ds, err = timeline.BuildDataset(classified)
	if err != nil {
		return nil, err
	}
	metrics.TracksIngested(ds.Len())

	prev := s.current.Load()
	s.current.Store(&snapshot{state: Ready, dataset: ds, skinID: prev.skinID})
	return ds, nil
}

func (s *Session) parseSource(src Source) ([]track.Track, error) {
	if src.Reader == nil {
		return nil, &parser.ParseError{Cause: errors.New("no file content")}
	}

	reader := src.Reader
	if s.maxFileSize > 0 {
		reader = io.LimitReader(src.Reader, s.maxFileSize+1)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, &parser.ParseError{Cause: err}
	}
	if s.maxFileSize > 0 && int64(len(data)) > s.maxFileSize {
		return nil, &parser.ParseError{Cause: fmt.Errorf("file exceeds %d bytes", s.maxFileSize)}
	}

	if headers, err := parser.Headers(data); err == nil && len(headers) > 0 {
		if err := parser.ValidateHeaders(headers); err != nil {
			log.Warnf("%s: %s", src.Name, err)
		}
	}

	rows, err := parser.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return parser.Parse(rows), nil
}

// Share encodes the dataset's tracks into a link. An empty skin id uses
// the session's selected skin.
func (s *Session) Share(ds *track.Dataset, skinID string) (link string, err error) {
	start := time.Now()
	defer func() { metrics.Observe("share", start, err) }()

	if ds == nil {
		return "", timeline.ErrEmptyDataset
	}
	if skinID == "" {
		skinID = s.SkinID()
	}

	link, err = s.codec.ShareURL(s.baseURL, ds.Tracks(), skinID)
	if err != nil {
		log.Errorf("failed to generate share link: %s", err)
		return "", err
	}
	log.Tracef("generated share link of %d bytes for %d tracks", len(link), ds.Len())
	return link, nil
}

// Load decodes a share link and rebuilds the dataset from its tracks.
// Aggregates are always recomputed.
func (s *Session) Load(link string) (ds *track.Dataset, err error) {
	start := time.Now()
	defer func() { metrics.Observe("load", start, err) }()

	payload, err := s.codec.ParseURL(link)
	if err != nil {
		log.Warnf("rejected share link: %s", err)
		return nil, err
	}

	ds, err = timeline.BuildDataset(s.ensureClassified(payload.Tracks))
	if err != nil {
		return nil, err
	}

	s.current.Store(&snapshot{state: Viewing, dataset: ds, skinID: payload.SkinID})
	return ds, nil
}

// ensureClassified classifies tracks that arrived without an emotion and
// keeps the ones that already carry one.
func (s *Session) ensureClassified(tracks []track.Track) []track.Track {
	out := make([]track.Track, len(tracks))
	for i, t := range tracks {
		if t.IsClassified() {
			out[i] = t
			continue
		}
		r := s.classifier.Classify(t)
		out[i] = t.WithClassification(r.Emotion, r.EnergyLevel)
	}
	return out
}

// StatsFor summarises one year of a dataset.
func (s *Session) StatsFor(ds *track.Dataset, year int) track.YearStats {
	if ds == nil {
		return track.YearStats{}
	}
	return timeline.YearStatsOf(timeline.FilterByYear(ds.Tracks(), year))
}

// UserMessage maps pipeline errors to the text shown to users.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, parser.ErrParse):
		return "Could not read file. Please upload a valid Spotify CSV export."
	case errors.Is(err, timeline.ErrEmptyDataset):
		return "No valid tracks found in the file."
	case errors.Is(err, share.ErrCompression):
		return "Failed to generate link."
	case errors.Is(err, share.ErrDecode):
		return "This link is invalid or corrupted. Create your own timeline to start again."
	default:
		return "Something went wrong: " + err.Error()
	}
}
