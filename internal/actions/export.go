package actions

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/revx-official/output/log"
	"github.com/urfave/cli/v2"

	"archiveheart/internal/api"
	"archiveheart/internal/exporters"
)

// Export writes the timeline to a csv, json or yaml file.
func (a *Actions) Export(c *cli.Context) error {
	format := strings.ToLower(c.String("format"))
	destFile := c.String("output")

	if format == "" {
		if err := a.promptFormat(&format); err != nil {
			return err
		}
	}
	exp, err := exporters.New(format)
	if err != nil {
		return err
	}

	ds, err := a.loadDataset(c, a.newSession())
	if err != nil {
		return err
	}

	if destFile == "" {
		destFile = "timeline" + exp.Extension()
		if err := a.promptFile("Enter the file path to save the exported timeline", &destFile); err != nil {
			return err
		}
	}

	if destFile == "-" {
		return exp.Export(out(c), ds)
	}

	write := func(ctx context.Context) error {
		file, err := os.Create(destFile)
		if err != nil {
			return err
		}
		defer file.Close()

		if err := exp.Export(file, ds); err != nil {
			return fmt.Errorf("failed to export %s: %w", exp.Format(), err)
		}
		return file.Close()
	}

	if err := a.withSpin("Exporting...", write); err != nil {
		return err
	}
	log.Infof("exported %d tracks to %s", ds.Len(), destFile)
	fmt.Fprintf(out(c), "Saved %s\n", destFile)
	return nil
}

func askFormat(value *string) error {
	options := make([]huh.Option[string], 0, len(exporters.Formats()))
	for _, f := range exporters.Formats() {
		options = append(options, huh.NewOption(strings.ToUpper(string(f)), string(f)))
	}
	return huh.NewSelect[string]().
		Title("Choose the export format").
		Options(options...).
		Value(value).
		Run()
}

// Serve runs the HTTP view server until it fails.
func (a *Actions) Serve(c *cli.Context) error {
	addr := a.cfg.Server.Addr
	if c.IsSet("addr") {
		addr = c.String("addr")
	}

	srv := api.NewServer(api.Options{
		Addr:           addr,
		BaseURL:        a.cfg.App.URL,
		DefaultSkin:    a.cfg.App.DefaultSkin,
		MaxFileSize:    a.cfg.Upload.MaxFileSize,
		AllowedOrigins: a.cfg.Server.AllowedOrigins,
		Classifier:     Classifier(a.cfg),
	})
	return srv.Run()
}
