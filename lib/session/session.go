// Package session reads and writes the captured browser session, a json
// array of cookie objects in the format playwright exports.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

const DefaultPath = "twitter_cookies.json"

const regenerateHint = "run `likedigest session capture` to regenerate it"

var (
	ErrSessionMissing   = errors.New("session file not found")
	ErrSessionEmpty     = errors.New("session file is empty")
	ErrSessionMalformed = errors.New("session file is malformed")
)

type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain,omitempty"`
	Path     string  `json:"path,omitempty"`
	Expires  float64 `json:"expires,omitempty"`
	HttpOnly bool    `json:"httpOnly,omitempty"`
	Secure   bool    `json:"secure,omitempty"`
	SameSite string  `json:"sameSite,omitempty"`
}

// Load reads the cookie store at path, every failure wraps one of the
// ErrSession* sentinels and says how to fix it.
func Load(path string) ([]Cookie, error) {
	contents, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s, %s", ErrSessionMissing, path, regenerateHint)
	}
	if err != nil {
		return nil, fmt.Errorf("read session file %s: %w", path, err)
	}
	if strings.TrimSpace(string(contents)) == "" {
		return nil, fmt.Errorf("%w: %s, %s", ErrSessionEmpty, path, regenerateHint)
	}

	var cookies []Cookie
	err = json.Unmarshal(contents, &cookies)
	if err != nil {
		return nil, fmt.Errorf("%w: %s (%s), %s", ErrSessionMalformed, path, err.Error(), regenerateHint)
	}
	if len(cookies) == 0 {
		return nil, fmt.Errorf("%w: %s, %s", ErrSessionEmpty, path, regenerateHint)
	}
	return cookies, nil
}

func Save(path string, cookies []Cookie) error {
	if len(cookies) == 0 {
		return ErrSessionEmpty
	}
	contents, err := json.MarshalIndent(cookies, "", "  ")
	if err != nil {
		return err
	}
	err = os.WriteFile(path, contents, 0600)
	if err != nil {
		return fmt.Errorf("write session file %s: %w", path, err)
	}
	return nil
}

// FilterDomains keeps cookies whose domain contains one of domains, if none
// match every cookie is returned instead.
func FilterDomains(cookies []Cookie, domains ...string) []Cookie {
	var filtered []Cookie
	for _, c := range cookies {
		for _, d := range domains {
			if strings.Contains(c.Domain, d) {
				filtered = append(filtered, c)
				break
			}
		}
	}
	if len(filtered) == 0 {
		return cookies
	}
	return filtered
}
