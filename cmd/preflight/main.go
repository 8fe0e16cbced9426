// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/hamed0406/deployprobe/internal/config"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	cfg, err := config.FromEnv()
	if err != nil {
		fail(err.Error())
	}
	if err := cfg.Validate(); err != nil {
		fail(err.Error())
	}

	ok("REMOTE_URL=" + cfg.RemoteURL)
	ok("LOCAL_URL=" + cfg.LocalURL)
	ok(fmt.Sprintf("timeouts remote=%s local=%s idle=%s", cfg.RemoteTimeout, cfg.LocalTimeout, cfg.IdleWindow))

	if cfg.Driver == config.DriverBrowser {
		switch {
		case cfg.BrowserBin == "":
			warn("DEPLOYPROBE_BROWSER_BIN empty; rod will look for Chromium and may download one on first run.")
		default:
			if _, err := exec.LookPath(cfg.BrowserBin); err != nil {
				fail("DEPLOYPROBE_BROWSER_BIN not executable: " + cfg.BrowserBin)
			}
			ok("BROWSER_BIN=" + cfg.BrowserBin)
		}
		if !cfg.Headless {
			warn("HEADLESS=false needs a display.")
		}
	} else {
		warn("http driver does not run page scripts; client-rendered markers will be missed.")
	}

	ok("preflight passed")
}
