package browser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"likedigest/lib/scrapers/twitter"
	"likedigest/lib/session"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/codes"
)

var ErrLoginNotVerified = errors.New("could not verify the login, make sure the home feed is visible before confirming")

type CaptureOptions struct {
	SessionFile string
	UserAgent   string
	BaseURL     string
	// where the user confirms the login, usually stdin
	Confirm io.Reader
	// where instructions are printed, usually stdout
	Prompt io.Writer
}

func waitForEnter(ctx context.Context, r io.Reader) error {
	done := make(chan error, 1)
	go func() {
		_, err := bufio.NewReader(r).ReadString('\n')
		if errors.Is(err, io.EOF) {
			err = nil
		}
		done <- err
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

// CaptureSession opens a visible browser on the login flow, lets the user log
// in by hand and saves the resulting cookies once they confirm.
func CaptureSession(ctx context.Context, opts CaptureOptions) ([]session.Cookie, error) {
	ctx, span := tracer.Start(ctx, "CaptureSession")
	defer span.End()

	if opts.SessionFile == "" {
		opts.SessionFile = session.DefaultPath
	}
	if opts.BaseURL == "" {
		opts.BaseURL = twitter.WebURL
	}
	if opts.Prompt == nil {
		opts.Prompt = io.Discard
	}
	baseUrl := strings.TrimSuffix(opts.BaseURL, "/")

	inst, err := launch(false, opts.UserAgent)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to launch browser")
		return nil, err
	}
	defer func() {
		err := inst.close()
		if err != nil {
			slog.WarnContext(ctx, "failed to close browser", "err", err)
		}
	}()

	_, err = inst.page.Goto(baseUrl + twitter.LoginPath)
	if err != nil {
		return nil, fmt.Errorf("open login page: %w", err)
	}

	fmt.Fprintln(opts.Prompt, "Log in to Twitter in the browser window.")
	fmt.Fprintln(opts.Prompt, "Once your home feed is visible, press Enter here.")
	err = waitForEnter(ctx, opts.Confirm)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "verifying login", "url", inst.page.URL())
	loggedIn := hasLoginIndicator(inst.page)
	if !loggedIn && !twitter.IsLoginURL(inst.page.URL()) {
		slog.InfoContext(ctx, "verifying login through the home page")
		_, err = inst.page.Goto(baseUrl + twitter.HomePath)
		if err != nil {
			return nil, fmt.Errorf("open home page: %w", err)
		}
		err = sleep(ctx, settleDelay)
		if err != nil {
			return nil, err
		}
		loggedIn = hasLoginIndicator(inst.page)
	}
	if !loggedIn {
		span.SetStatus(codes.Error, "login not verified")
		return nil, ErrLoginNotVerified
	}

	raw, err := inst.context.Cookies()
	if err != nil {
		return nil, fmt.Errorf("read cookies: %w", err)
	}
	cookies := fromPlaywrightCookies(raw)
	if len(cookies) == 0 {
		return nil, session.ErrSessionEmpty
	}
	cookies = session.FilterDomains(cookies, twitter.SessionDomains...)

	err = session.Save(opts.SessionFile, cookies)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to save session")
		return nil, err
	}
	slog.InfoContext(ctx, "saved session", "file", opts.SessionFile, "cookies", len(cookies))

	return cookies, nil
}
