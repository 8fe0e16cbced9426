package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverBrowser = "browser"
	DriverHTTP    = "http"
)

type Config struct {
	RemoteURL     string        `envconfig:"REMOTE_URL" default:"https://quest-cms-production.railway.app"`
	LocalURL      string        `envconfig:"LOCAL_URL" default:"http://localhost:8080"`
	RemoteTimeout time.Duration `envconfig:"REMOTE_TIMEOUT" default:"30s"`
	LocalTimeout  time.Duration `envconfig:"LOCAL_TIMEOUT" default:"10s"`
	IdleWindow    time.Duration `envconfig:"IDLE_WINDOW" default:"500ms"` // network quiet period before a page counts as loaded
	Driver        string        `envconfig:"DRIVER" default:"browser"`    // "browser" or "http"
	Headless      bool          `envconfig:"HEADLESS" default:"true"`
	BrowserBin    string        `envconfig:"BROWSER_BIN"` // empty lets rod find or download Chromium
	LogDir        string        `envconfig:"LOG_DIR" default:"logs"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
}

// FromEnv loads an optional .env file and then decodes DEPLOYPROBE_* variables.
// Values already present in the environment win over the file.
func FromEnv() (Config, error) {
	envFile := os.Getenv("DEPLOYPROBE_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	var cfg Config
	if err := envconfig.Process("deployprobe", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode env: %w", err)
	}
	cfg.RemoteURL = NormalizeHTTPURL(cfg.RemoteURL)
	cfg.LocalURL = NormalizeHTTPURL(cfg.LocalURL)
	cfg.Driver = strings.ToLower(strings.TrimSpace(cfg.Driver))
	return cfg, nil
}

func (c Config) Validate() error {
	var problems []string
	if !IsValidHTTPURL(c.RemoteURL) {
		problems = append(problems, fmt.Sprintf("remote url %q is not http(s)", c.RemoteURL))
	}
	if !IsValidHTTPURL(c.LocalURL) {
		problems = append(problems, fmt.Sprintf("local url %q is not http(s)", c.LocalURL))
	}
	if c.RemoteTimeout <= 0 || c.LocalTimeout <= 0 {
		problems = append(problems, "timeouts must be positive")
	}
	if c.IdleWindow < 0 {
		problems = append(problems, "idle window must not be negative")
	}
	switch c.Driver {
	case DriverBrowser, DriverHTTP:
	default:
		problems = append(problems, fmt.Sprintf("unknown driver %q", c.Driver))
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func IsValidHTTPURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// NormalizeHTTPURL lowercases scheme and host, drops default ports and a bare
// trailing slash. Anything unparsable is returned trimmed but otherwise as-is.
func NormalizeHTTPURL(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	u.Scheme = strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	port := u.Port()
	if (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") {
		port = ""
	}
	if port != "" {
		host = host + ":" + port
	}
	u.Host = host
	if u.Path == "/" {
		u.Path = ""
	}
	return u.String()
}
