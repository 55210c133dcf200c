package commands

import (
	"errors"
	"fmt"
	"likedigest/lib/configutil"
	"likedigest/lib/mailer"
	"likedigest/lib/scrapers/twitter/browser"
	"likedigest/lib/session"
	"likedigest/lib/telemetry"
	"likedigest/lib/timezone"
	"path/filepath"
	"strings"
)

const defaultConfigPath = "likedigest.json5"

const (
	sourceAPI     = "api"
	sourceBrowser = "browser"
)

type TwitterConfig struct {
	BearerToken string `json:"bearer_token"`
	UserID      string `json:"user_id"`
	// overrides the api host, mostly for testing against a mock
	ApiBaseUrl string `json:"api_base_url"`
	// 0 follows pagination to the end
	MaxPages int `json:"max_pages"`
}

type BrowserConfig struct {
	SessionFile string `json:"session_file"`
	// shows the browser window while scraping
	Headed    bool   `json:"headed"`
	Scrolls   int    `json:"scrolls"`
	UserAgent string `json:"user_agent"`
	// posts older than this many hours are dropped before the exact digest
	// window is applied, 0 uses the span of the fetch window
	HoursFilter int `json:"hours_filter"`
}

type DebugConfig struct {
	// every api exchange is written here when set
	HttpDumpDir string `json:"http_dump_dir"`
}

type Config struct {
	Timezone  string            `json:"timezone"`
	Source    string            `json:"source"`
	Twitter   TwitterConfig     `json:"twitter"`
	Browser   BrowserConfig     `json:"browser"`
	Smtp      mailer.SmtpConfig `json:"smtp"`
	Telemetry telemetry.Config  `json:"telemetry"`
	Debug     DebugConfig       `json:"debug"`
}

func (c *Config) applyDefaults() {
	if c.Timezone == "" {
		c.Timezone = timezone.DefaultName
	}
	if c.Source == "" {
		c.Source = sourceAPI
	}
	if c.Smtp.Port == 0 {
		c.Smtp.Port = 587
	}
	if c.Browser.SessionFile == "" {
		c.Browser.SessionFile = session.DefaultPath
	}
	if c.Browser.Scrolls == 0 {
		c.Browser.Scrolls = browser.DefaultScrolls
	}
}

func (c *Config) applyEnv(env configutil.Env) error {
	env.String(&c.Twitter.BearerToken, "TWITTER_BEARER_TOKEN")
	env.String(&c.Twitter.UserID, "TWITTER_USER_ID")
	env.String(&c.Smtp.Server, "SMTP_HOST")
	env.String(&c.Smtp.Username, "SMTP_USER")
	env.String(&c.Smtp.Password, "SMTP_PASS")
	env.String(&c.Smtp.From, "EMAIL_FROM")
	env.List(&c.Smtp.To, "EMAIL_TO")
	env.String(&c.Timezone, "TIMEZONE")
	return env.Int(&c.Smtp.Port, "SMTP_PORT")
}

// loadConfig resolves the configuration once: config files first, then the
// environment (including .env files next to the config) on top.
func loadConfig(path string, env configutil.Env) (Config, error) {
	cfg, err := configutil.ReadOptional[Config](path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	err = cfg.applyEnv(env)
	if err != nil {
		return Config{}, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func loadConfigFromEnv() (Config, error) {
	err := configutil.LoadEnvFiles(filepath.Dir(configPath))
	if err != nil {
		return Config{}, err
	}
	return loadConfig(configPath, configutil.CurrentEnv())
}

func (c Config) validateSource(source string) error {
	switch source {
	case sourceAPI:
		var missing []string
		if c.Twitter.BearerToken == "" {
			missing = append(missing, "twitter.bearer_token (TWITTER_BEARER_TOKEN)")
		}
		if c.Twitter.UserID == "" {
			missing = append(missing, "twitter.user_id (TWITTER_USER_ID)")
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing api settings: %s", strings.Join(missing, ", "))
		}
		return nil
	case sourceBrowser:
		return nil
	default:
		return fmt.Errorf("unknown source %q, expected %q or %q", source, sourceAPI, sourceBrowser)
	}
}

// Validate checks everything a run needs before any network call is made.
func (c Config) Validate(source string, sendsMail bool) error {
	errs := []error{c.validateSource(source)}
	if sendsMail {
		errs = append(errs, c.Smtp.Validate())
	}
	return errors.Join(errs...)
}
