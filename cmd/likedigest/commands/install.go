package commands

import (
	"likedigest/lib/scrapers/twitter/browser"
	"likedigest/lib/serviceutil"
	"log/slog"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(installBrowserCmd)
}

var installBrowserCmd = &cobra.Command{
	Use:   "install-browser",
	Short: "Downloads the chromium build used by the browser source.",
	Run: func(cmd *cobra.Command, args []string) {
		slog.Info("installing chromium")
		err := browser.Install()
		if err != nil {
			serviceutil.Fatal("failed to install chromium", err)
		}
		slog.Info("chromium installed")
	},
}
