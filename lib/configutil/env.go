package configutil

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnvFiles loads .env.local and then .env into the process environment.
// godotenv never overrides variables that are already set, so real
// environment variables win over .env.local, which wins over .env.
func LoadEnvFiles(dir string) error {
	for _, name := range []string{".env.local", ".env"} {
		path := name
		if dir != "" {
			path = dir + string(os.PathSeparator) + name
		}
		err := godotenv.Load(path)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// Env is a snapshot of environment variables, configuration is resolved
// from it once at startup so that no component reads os.Getenv directly.
type Env map[string]string

func CurrentEnv() Env {
	env := Env{}
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if ok {
			env[key] = value
		}
	}
	return env
}

// String overrides dst if key is set to a non-empty value.
func (e Env) String(dst *string, key string) {
	if v := strings.TrimSpace(e[key]); v != "" {
		*dst = v
	}
}

// List overrides dst with a comma separated list.
func (e Env) List(dst *[]string, key string) {
	v := strings.TrimSpace(e[key])
	if v == "" {
		return
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	*dst = out
}

func (e Env) Int(dst *int, key string) error {
	v := strings.TrimSpace(e[key])
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}
