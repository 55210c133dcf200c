package commands

import (
	"context"
	"fmt"
	"likedigest/lib/restyutil"
	"likedigest/lib/scrapers/twitter/api"
	"likedigest/lib/scrapers/twitter/browser"
	"likedigest/lib/serviceutil"
	"likedigest/lib/telemetry"
	"likedigest/lib/timezone"
	"likedigest/services/digest"
	"log/slog"
	"path/filepath"
)

// app is what every command needs once the configuration is resolved.
type app struct {
	cfg       Config
	clock     timezone.Clock
	telemetry telemetry.Telemetry
}

func setup(ctx context.Context) (app, error) {
	cfg, err := loadConfigFromEnv()
	if err != nil {
		return app{}, err
	}
	loc, err := timezone.Load(cfg.Timezone)
	if err != nil {
		return app{}, err
	}
	tel, err := telemetry.Setup(ctx, "likedigest", cfg.Telemetry)
	if err != nil {
		return app{}, fmt.Errorf("setup telemetry: %w", err)
	}
	return app{
		cfg:       cfg,
		clock:     timezone.NewSystemClock(loc),
		telemetry: tel,
	}, nil
}

func (a app) close() {
	err := a.telemetry.Shutdown(context.Background())
	if err != nil {
		slog.Warn("failed to flush telemetry", "err", err)
	}
}

// replaced in tests
var exit = serviceutil.Fatal

// fatal flushes telemetry before exiting, deferred calls do not run on exit.
func (a app) fatal(message string, err error) {
	a.close()
	exit(message, err)
}

type sourceOptions struct {
	kind    string
	scrolls int
	hours   int
}

func (a app) source(opts sourceOptions) (digest.Source, error) {
	switch opts.kind {
	case sourceAPI:
		var output restyutil.InstrumentOutput
		if a.cfg.Debug.HttpDumpDir != "" {
			out, err := restyutil.NewFilesystemOutput(filepath.Join(a.cfg.Debug.HttpDumpDir, "api"))
			if err != nil {
				return nil, err
			}
			output = out
		}
		client := api.NewClient(api.ClientOptions{
			BaseUrl:     a.cfg.Twitter.ApiBaseUrl,
			BearerToken: a.cfg.Twitter.BearerToken,
			MaxPages:    a.cfg.Twitter.MaxPages,
			Output:      output,
		})
		return digest.APISource{Client: client, UserID: a.cfg.Twitter.UserID}, nil
	case sourceBrowser:
		scrolls := a.cfg.Browser.Scrolls
		if opts.scrolls > 0 {
			scrolls = opts.scrolls
		}
		extractor := browser.NewExtractor(browser.ExtractorOptions{
			SessionFile: a.cfg.Browser.SessionFile,
			Headless:    !a.cfg.Browser.Headed,
			NumScrolls:  scrolls,
			UserAgent:   a.cfg.Browser.UserAgent,
		})
		return digest.BrowserSource{Extractor: extractor, Hours: opts.hours}, nil
	default:
		return nil, fmt.Errorf("unknown source %q", opts.kind)
	}
}
