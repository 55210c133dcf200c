// Package browser drives a real chromium through playwright with a captured
// session to read the rendered likes feed.
package browser

import (
	"context"
	"errors"
	"fmt"
	"likedigest/lib/scrapers/twitter"
	"likedigest/lib/session"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("likedigest/lib/scrapers/twitter/browser")

var ErrSessionExpired = errors.New("session expired, run `likedigest session capture` to log in again")

const (
	DefaultScrolls     = 5
	DefaultScrollDelay = 2 * time.Second

	settleDelay      = 3 * time.Second
	tweetWaitTimeout = 10 * time.Second
)

// Install downloads the chromium build the playwright driver expects.
func Install() error {
	return playwright.Install(&playwright.RunOptions{
		Browsers: []string{"chromium"},
	})
}

type instance struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
}

func launch(headless bool, userAgent string) (*instance, error) {
	if userAgent == "" {
		userAgent = twitter.UserAgent
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}
	bctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(userAgent),
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("create browser context: %w", err)
	}
	page, err := bctx.NewPage()
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("open page: %w", err)
	}

	return &instance{
		pw:      pw,
		browser: browser,
		context: bctx,
		page:    page,
	}, nil
}

func (i *instance) close() error {
	return errors.Join(i.browser.Close(), i.pw.Stop())
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func hasLoginIndicator(page playwright.Page) bool {
	for _, indicator := range twitter.LoginIndicators {
		count, err := page.Locator(indicator).Count()
		if err == nil && count > 0 {
			return true
		}
	}
	return false
}

func toPlaywrightCookies(cookies []session.Cookie) []playwright.OptionalCookie {
	out := make([]playwright.OptionalCookie, 0, len(cookies))
	for _, c := range cookies {
		oc := playwright.OptionalCookie{
			Name:  c.Name,
			Value: c.Value,
		}
		if c.Domain != "" {
			oc.Domain = playwright.String(c.Domain)
		}
		if c.Path != "" {
			oc.Path = playwright.String(c.Path)
		}
		if c.Expires != 0 {
			oc.Expires = playwright.Float(c.Expires)
		}
		if c.HttpOnly {
			oc.HttpOnly = playwright.Bool(true)
		}
		if c.Secure {
			oc.Secure = playwright.Bool(true)
		}
		if c.SameSite != "" {
			sameSite := playwright.SameSiteAttribute(c.SameSite)
			oc.SameSite = &sameSite
		}
		out = append(out, oc)
	}
	return out
}

func fromPlaywrightCookies(cookies []playwright.Cookie) []session.Cookie {
	out := make([]session.Cookie, 0, len(cookies))
	for _, c := range cookies {
		sc := session.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Expires:  c.Expires,
			HttpOnly: c.HttpOnly,
			Secure:   c.Secure,
		}
		if c.SameSite != nil {
			sc.SameSite = string(*c.SameSite)
		}
		out = append(out, sc)
	}
	return out
}
