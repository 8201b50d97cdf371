package actions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/revx-official/output/log"
	"github.com/urfave/cli/v2"

	"archiveheart/internal/config"
	"archiveheart/internal/emotion"
	"archiveheart/internal/session"
	"archiveheart/internal/skin"
	"archiveheart/internal/track"
)

// Actions holds the command handlers of the CLI. Prompts and the spinner are
// fields so they can be swapped out when there is no terminal.
type Actions struct {
	cfg *config.Config

	promptFile   func(title string, value *string) error
	promptSkin   func(value *string) error
	promptFormat func(value *string) error
	withSpin     func(title string, fn func(ctx context.Context) error) error
	open         func(url string) error
}

// New creates the command handlers for a loaded configuration.
func New(cfg *config.Config) *Actions {
	return &Actions{
		cfg:          cfg,
		promptFile:   askInput,
		promptSkin:   askSkin,
		promptFormat: askFormat,
		withSpin:     spin,
		open:         openLink,
	}
}

// Classifier builds the classifier the configuration asks for.
func Classifier(cfg *config.Config) *emotion.Classifier {
	if cfg.Classifier.Deterministic {
		return emotion.NewClassifier(emotion.HashJitter{})
	}
	return emotion.NewClassifier(nil)
}

func (a *Actions) newSession() *session.Session {
	return session.New(session.Options{
		BaseURL:     a.cfg.App.URL,
		MaxFileSize: a.cfg.Upload.MaxFileSize,
		DefaultSkin: a.cfg.App.DefaultSkin,
		Classifier:  Classifier(a.cfg),
	})
}

// SourceFlags are shared by every command that needs a dataset.
func SourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "Spotify streaming history CSV export (repeat to merge several)",
		},
		&cli.StringFlag{
			Name:    "link",
			Aliases: []string{"l"},
			Usage:   "share link or bare payload to load instead of files",
		},
	}
}

// loadDataset builds the dataset from --link when given, otherwise from the
// CSV files (asking for one when none was passed).
func (a *Actions) loadDataset(c *cli.Context, sess *session.Session) (*track.Dataset, error) {
	if link := strings.TrimSpace(c.String("link")); link != "" {
		ds, err := sess.Load(link)
		if err != nil {
			return nil, errors.New(session.UserMessage(err))
		}
		return ds, nil
	}

	paths := append(c.StringSlice("file"), c.Args().Slice()...)
	if len(paths) == 0 {
		var path string
		if err := a.promptFile("Enter the path of your Spotify streaming history CSV", &path); err != nil {
			return nil, err
		}
		if path = strings.TrimSpace(path); path == "" {
			return nil, errors.New("no file given")
		}
		paths = []string{path}
	}

	var ds *track.Dataset
	ingest := func(ctx context.Context) error {
		sources := make([]session.Source, 0, len(paths))
		for _, p := range paths {
			f, err := os.Open(p)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", p, err)
			}
			defer f.Close()
			sources = append(sources, session.Source{Name: p, Reader: f})
		}

		var err error
		ds, err = sess.Ingest(sources...)
		return err
	}

	if err := a.withSpin("Analyzing your music...", ingest); err != nil {
		log.Errorf("ingest failed: %v", err)
		return nil, errors.New(session.UserMessage(err))
	}
	return ds, nil
}

func askInput(title string, value *string) error {
	return huh.NewInput().
		Title(title).
		Value(value).
		Run()
}

func askSkin(value *string) error {
	return huh.NewSelect[string]().
		Title("Choose a skin for your timeline").
		Options(skinOptions(skin.All())...).
		Value(value).
		Run()
}

func skinOptions(skins []skin.Skin) []huh.Option[string] {
	options := make([]huh.Option[string], len(skins))
	for i, s := range skins {
		options[i] = huh.NewOption(s.Name+" - "+s.Description, s.ID)
	}
	return options
}

func spin(title string, fn func(ctx context.Context) error) error {
	return spinner.New().Title(title).Context(context.Background()).ActionWithErr(fn).Run()
}

func out(c *cli.Context) io.Writer {
	if c.App != nil && c.App.Writer != nil {
		return c.App.Writer
	}
	return os.Stdout
}
