package actions

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/revx-official/output/log"
	"github.com/urfave/cli/v2"

	"archiveheart/internal/emotion"
	"archiveheart/internal/session"
	"archiveheart/internal/skin"
	"archiveheart/internal/timeline"
	"archiveheart/internal/track"
	"archiveheart/internal/utils"
)

// Ingest parses, classifies and summarises streaming history files.
func (a *Actions) Ingest(c *cli.Context) error {
	ds, err := a.loadDataset(c, a.newSession())
	if err != nil {
		return err
	}
	printSummary(out(c), ds)
	return nil
}

// Share ingests the files and prints a self-contained share link.
func (a *Actions) Share(c *cli.Context) error {
	sess := a.newSession()

	skinID := c.String("skin")
	if skinID == "" {
		if err := a.promptSkin(&skinID); err != nil {
			return err
		}
	}
	if _, ok := skin.Lookup(skinID); !ok {
		log.Warnf("unknown skin %q, using %s", skinID, skin.DefaultID)
	}

	ds, err := a.loadDataset(c, sess)
	if err != nil {
		return err
	}
	sess.SelectSkin(skinID)

	link, err := sess.Share(ds, "")
	if err != nil {
		return errors.New(session.UserMessage(err))
	}

	w := out(c)
	fmt.Fprintf(w, "Your timeline (%d tracks, %s skin):\n%s\n", ds.Len(), sess.Skin().Name, link)
	if c.Bool("open") {
		return a.open(link)
	}
	return nil
}

// View decodes a share link and prints the timeline it carries.
func (a *Actions) View(c *cli.Context) error {
	link := strings.TrimSpace(c.Args().First())
	if link == "" {
		link = strings.TrimSpace(c.String("link"))
	}
	if link == "" {
		if err := a.promptFile("Paste the share link", &link); err != nil {
			return err
		}
	}

	sess := a.newSession()
	ds, err := sess.Load(link)
	if err != nil {
		return errors.New(session.UserMessage(err))
	}

	w := out(c)
	s := sess.Skin()
	fmt.Fprintf(w, "Skin: %s (%s)\n", s.Name, s.ID)
	printSummary(w, ds)

	if c.Bool("open") {
		return a.open(link)
	}
	return nil
}

// Stats prints per-year statistics, for one year when --year is set.
func (a *Actions) Stats(c *cli.Context) error {
	sess := a.newSession()
	ds, err := a.loadDataset(c, sess)
	if err != nil {
		return err
	}

	w := out(c)
	if c.IsSet("year") {
		year := c.Int("year")
		printYear(w, year, sess.StatsFor(ds, year), timeline.FilterByYear(ds.Tracks(), year))
		return nil
	}

	groups := timeline.GroupByYear(ds.Tracks())
	for _, year := range timeline.Years(groups) {
		printYear(w, year, timeline.YearStatsOf(groups[year]), groups[year])
	}
	return nil
}

// Skins lists the available skins.
func (a *Actions) Skins(c *cli.Context) error {
	w := out(c)
	for _, s := range skin.All() {
		marker := " "
		if s.ID == a.cfg.App.DefaultSkin {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-10s %-18s %s\n", marker, s.ID, s.Name, s.Description)
	}
	return nil
}

func printSummary(w io.Writer, ds *track.Dataset) {
	stats := ds.Stats()
	yr := ds.YearRange()
	tracks := ds.Tracks()

	fmt.Fprintf(w, "Tracks:          %d\n", stats.TotalSongs)
	fmt.Fprintf(w, "Minutes played:  %d\n", ds.TotalMinutes())
	fmt.Fprintf(w, "Unique artists:  %d\n", stats.UniqueArtists)
	fmt.Fprintf(w, "Top artist:      %s\n", stats.MostPlayedArtist)
	if yr.Start == yr.End {
		fmt.Fprintf(w, "Years:           %d\n", yr.Start)
	} else {
		fmt.Fprintf(w, "Years:           %d-%d\n", yr.Start, yr.End)
	}
	printDistribution(w, tracks)
}

func printYear(w io.Writer, year int, stats track.YearStats, tracks []track.Track) {
	fmt.Fprintf(w, "%d: %d tracks, %d minutes, %d artists", year, stats.TotalSongs, stats.TotalMinutes, stats.UniqueArtists)
	if stats.MostPlayedArtist != "" {
		fmt.Fprintf(w, ", top artist %s", stats.MostPlayedArtist)
	}
	fmt.Fprintln(w)
	if len(tracks) > 0 {
		printDistribution(w, tracks)
	}
}

func printDistribution(w io.Writer, tracks []track.Track) {
	dist := emotion.Distribution(tracks)
	parts := make([]string, 0, len(dist))
	for _, e := range track.AllEmotions() {
		parts = append(parts, fmt.Sprintf("%s %d", e, dist[e]))
	}
	fmt.Fprintf(w, "Emotions:        %s\n", strings.Join(parts, ", "))
}

func openLink(url string) error {
	if err := utils.OpenBrowser(url); err != nil {
		log.Warnf("%v", err)
	}
	return nil
}
