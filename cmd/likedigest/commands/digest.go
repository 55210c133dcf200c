package commands

import (
	"fmt"
	"likedigest/lib/mailer"
	"likedigest/lib/serviceutil"
	"likedigest/services/digest"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
)

var (
	digestSource string
	digestDryRun bool
)

func init() {
	digestCmd.Flags().StringVar(&digestSource, "source", "", "Where liked tweets come from: api or browser (defaults to the configured source).")
	digestCmd.Flags().BoolVar(&digestDryRun, "dry-run", false, "Prints the rendered email instead of sending it.")
	rootCmd.AddCommand(digestCmd)
}

func timeframeNames() []string {
	names := make([]string, len(digest.Timeframes))
	for i, tf := range digest.Timeframes {
		names[i] = string(tf)
	}
	return names
}

func timeframeArg(cmd *cobra.Command, args []string) error {
	err := cobra.ExactArgs(1)(cmd, args)
	if err != nil {
		return err
	}
	_, err = digest.ParseTimeframe(args[0])
	return err
}

var digestCmd = &cobra.Command{
	Use:       "digest <daily|weekly|monthly>",
	Short:     "Fetches recently liked tweets and emails them as a digest.",
	ValidArgs: timeframeNames(),
	Args:      timeframeArg,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		tf, _ := digest.ParseTimeframe(args[0])

		a, err := setup(ctx)
		if err != nil {
			serviceutil.Fatal("failed to load config", err)
		}
		defer a.close()

		source := strings.ToLower(digestSource)
		if source == "" {
			source = a.cfg.Source
		}
		err = a.cfg.Validate(source, !digestDryRun)
		if err != nil {
			a.fatal("invalid config", err)
		}

		src, err := a.source(sourceOptions{kind: source, hours: a.cfg.Browser.HoursFilter})
		if err != nil {
			a.fatal("failed to create source", err)
		}

		var m digest.Mailer
		if !digestDryRun {
			m = mailer.NewMailer(a.cfg.Smtp)
		}
		service := digest.NewService(src, m, a.clock)

		slog.InfoContext(ctx, "running digest", "timeframe", string(tf), "source", source)
		if digestDryRun {
			d, posts, err := service.Build(ctx, tf)
			if err != nil {
				a.fatal("failed to build digest", err)
			}
			slog.InfoContext(ctx, "built digest", "subject", d.Subject, "posts", len(posts))
			fmt.Fprintln(cmd.OutOrStdout(), d.HTML)
			return
		}

		_, err = service.Run(ctx, tf)
		if err != nil {
			a.fatal(fmt.Sprintf("failed to run %s digest", tf), err)
		}
	},
}
