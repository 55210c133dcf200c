package commands

import (
	"fmt"
	"io"
	"likedigest/lib/scrapers/twitter/browser"
	"likedigest/lib/serviceutil"
	"likedigest/lib/session"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	sessionCmd.AddCommand(sessionCaptureCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	rootCmd.AddCommand(sessionCmd)
}

// only the names and domains are printed, never the values
func writeCookieSummary(out io.Writer, cookies []session.Cookie) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Name", "Domain", "Expires"})
	for _, c := range cookies {
		expires := "session"
		if c.Expires > 0 {
			expires = fmt.Sprintf("%.0f", c.Expires)
		}
		t.AppendRow(table.Row{c.Name, c.Domain, expires})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manages the logged in browser session used by the browser source.",
}

var sessionCaptureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Opens a browser to log in by hand and saves the session cookies.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		a, err := setup(ctx)
		if err != nil {
			serviceutil.Fatal("failed to load config", err)
		}
		defer a.close()

		cookies, err := browser.CaptureSession(ctx, browser.CaptureOptions{
			SessionFile: a.cfg.Browser.SessionFile,
			UserAgent:   a.cfg.Browser.UserAgent,
			Confirm:     os.Stdin,
			Prompt:      cmd.OutOrStdout(),
		})
		if err != nil {
			a.fatal("failed to capture session", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Saved %d cookies to %s\n", len(cookies), a.cfg.Browser.SessionFile)
		writeCookieSummary(cmd.OutOrStdout(), cookies)
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Lists the cookies of the saved session.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfigFromEnv()
		if err != nil {
			serviceutil.Fatal("failed to load config", err)
		}
		cookies, err := session.Load(cfg.Browser.SessionFile)
		if err != nil {
			serviceutil.Fatal("failed to load session", err)
		}
		writeCookieSummary(cmd.OutOrStdout(), cookies)
	},
}
