package commands

import (
	"fmt"
	"io"
	"likedigest/lib/serviceutil"
	"likedigest/services/digest"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

var (
	scrapeSource  string
	scrapeScrolls int
	scrapeHours   int
	scrapeLimit   int
)

func init() {
	scrapeCmd.Flags().StringVar(&scrapeSource, "source", sourceBrowser, "Where liked tweets come from: api or browser.")
	scrapeCmd.Flags().IntVar(&scrapeScrolls, "scrolls", 0, "How many times to scroll the likes feed (defaults to the configured amount).")
	scrapeCmd.Flags().IntVar(&scrapeHours, "hours", 24, "Only shows tweets from the past N hours, 0 shows everything.")
	scrapeCmd.Flags().IntVar(&scrapeLimit, "limit", 0, "Shows at most N tweets, 0 shows all of them.")
	rootCmd.AddCommand(scrapeCmd)
}

func writePostTable(out io.Writer, posts []digest.Post, loc *time.Location) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"#", "Author", "Text", "Time", "Media", "URL"})
	for i, p := range posts {
		created := "unknown"
		if p.CreatedAt != nil {
			created = p.CreatedAt.In(loc).Format("Jan 02 03:04 PM")
		}
		t.AppendRow(table.Row{
			i + 1,
			"@" + p.Author.Handle,
			text.Trim(strings.ReplaceAll(p.Text, "\n", " "), 100),
			created,
			len(p.Media),
			p.URL,
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Text", WidthMax: 50},
	})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--scrolls N] [--hours H] [--limit N]",
	Short: "Prints recently liked tweets without sending anything.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		a, err := setup(ctx)
		if err != nil {
			serviceutil.Fatal("failed to load config", err)
		}
		defer a.close()

		source := strings.ToLower(scrapeSource)
		err = a.cfg.Validate(source, false)
		if err != nil {
			a.fatal("invalid config", err)
		}
		src, err := a.source(sourceOptions{kind: source, scrolls: scrapeScrolls, hours: scrapeHours})
		if err != nil {
			a.fatal("failed to create source", err)
		}

		posts, err := digest.NewService(src, nil, a.clock).Scrape(ctx, scrapeHours)
		if err != nil {
			a.fatal("failed to scrape liked tweets", err)
		}

		total := len(posts)
		if scrapeLimit > 0 && len(posts) > scrapeLimit {
			posts = posts[:scrapeLimit]
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Found %d liked tweets\n", total)
		writePostTable(cmd.OutOrStdout(), posts, a.clock.Location())
	},
}
