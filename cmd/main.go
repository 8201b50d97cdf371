package main

import (
	"fmt"
	"os"

	"github.com/revx-official/output/log"
	"github.com/urfave/cli/v2"

	"archiveheart/internal/actions"
	"archiveheart/internal/config"
	"archiveheart/internal/metrics"
)

func init() {
	log.Level = log.LevelInfo
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	metrics.Register()

	a := actions.New(cfg)
	app := &cli.App{
		Name:     "timeline",
		Usage:    cfg.App.Description,
		Commands: a.Commands(),
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
