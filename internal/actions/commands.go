package actions

import (
	"github.com/urfave/cli/v2"
)

// Commands returns the CLI command tree.
func (a *Actions) Commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "ingest",
			Usage:     "Analyze streaming history files and print a summary",
			ArgsUsage: "[file.csv...]",
			Flags:     SourceFlags(),
			Action:    a.Ingest,
		},
		{
			Name:      "share",
			Usage:     "Create a shareable timeline link",
			ArgsUsage: "[file.csv...]",
			Flags: append(SourceFlags(),
				&cli.StringFlag{Name: "skin", Aliases: []string{"s"}, Usage: "skin id (see `skins`)"},
				&cli.BoolFlag{Name: "open", Aliases: []string{"o"}, Usage: "open the link in the browser"},
			),
			Action: a.Share,
		},
		{
			Name:      "view",
			Usage:     "Decode a share link and print its timeline",
			ArgsUsage: "[link]",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "link", Aliases: []string{"l"}, Usage: "share link or bare payload"},
				&cli.BoolFlag{Name: "open", Aliases: []string{"o"}, Usage: "open the link in the browser"},
			},
			Action: a.View,
		},
		{
			Name:      "stats",
			Usage:     "Print per-year listening statistics",
			ArgsUsage: "[file.csv...]",
			Flags: append(SourceFlags(),
				&cli.IntFlag{Name: "year", Aliases: []string{"y"}, Usage: "only this year"},
			),
			Action: a.Stats,
		},
		{
			Name:      "export",
			Usage:     "Export the timeline to csv, json or yaml",
			ArgsUsage: "[file.csv...]",
			Flags: append(SourceFlags(),
				&cli.StringFlag{Name: "format", Usage: "csv, json or yaml"},
				&cli.StringFlag{Name: "output", Aliases: []string{"out"}, Usage: "destination file, - for stdout"},
			),
			Action: a.Export,
		},
		{
			Name:   "skins",
			Usage:  "List the available skins",
			Action: a.Skins,
		},
		{
			Name:  "serve",
			Usage: "Run the HTTP view server",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "addr", Usage: "listen address"},
			},
			Action: a.Serve,
		},
	}
}
