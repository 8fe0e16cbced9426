// Package browser drives a real Chromium through the DevTools protocol.
package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/hamed0406/deployprobe/internal/probe"
)

type Driver struct {
	Logger     *zap.Logger
	Headless   bool
	Bin        string        // explicit Chromium path; empty lets rod find or fetch one
	IdleWindow time.Duration // no requests for this long counts as network idle
}

func NewDriver(logger *zap.Logger, headless bool, bin string, idle time.Duration) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{Logger: logger, Headless: headless, Bin: bin, IdleWindow: idle}
}

func (d *Driver) Open(ctx context.Context) (probe.Session, error) {
	l := launcher.New().Context(ctx).Headless(d.Headless)
	if d.Bin != "" {
		l = l.Bin(d.Bin)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	d.Logger.Info("browser_started", zap.Bool("headless", d.Headless), zap.String("bin", d.Bin))

	idle := d.IdleWindow
	return &Session{
		openTab: func() (tab, error) {
			p, err := b.Page(proto.TargetCreateTarget{URL: ""})
			if err != nil {
				return nil, err
			}
			return &rodTab{page: p, idle: idle}, nil
		},
		shutdown: func() error {
			err := b.Close()
			l.Kill()
			l.Cleanup()
			return err
		},
	}, nil
}

// tab is the part of a browser tab a load needs.
type tab interface {
	// WaitIdle subscribes to network events; the returned func blocks until
	// the network has been quiet for the idle window or ctx is done.
	WaitIdle(ctx context.Context) func()
	Navigate(ctx context.Context, url string) error
	Title(ctx context.Context) (string, error)
	HTML(ctx context.Context) (string, error)
	Close() error
}

type rodTab struct {
	page *rod.Page
	idle time.Duration
}

func (t *rodTab) WaitIdle(ctx context.Context) func() {
	return t.page.Context(ctx).WaitRequestIdle(t.idle, nil, nil, nil)
}

func (t *rodTab) Navigate(ctx context.Context, url string) error {
	return t.page.Context(ctx).Navigate(url)
}

// Title reads document.title. The DevTools target title falls back to the
// URL for untitled pages and is not used.
func (t *rodTab) Title(ctx context.Context) (string, error) {
	obj, err := t.page.Context(ctx).Eval(`() => document.title`)
	if err != nil {
		return "", err
	}
	return obj.Value.Str(), nil
}

func (t *rodTab) HTML(ctx context.Context) (string, error) {
	return t.page.Context(ctx).HTML()
}

func (t *rodTab) Close() error { return t.page.Close() }

// Session owns one browser and one tab, reused for every load.
type Session struct {
	openTab  func() (tab, error)
	shutdown func() error

	mu  sync.Mutex
	cur tab
}

func (s *Session) current() (tab, error) {
	if s.cur != nil {
		return s.cur, nil
	}
	t, err := s.openTab()
	if err != nil {
		return nil, fmt.Errorf("open tab: %w", err)
	}
	s.cur = t
	return t, nil
}

// Load navigates and waits for the network to go quiet, the equivalent of a
// networkidle0 wait, bounded by timeout.
func (s *Session) Load(ctx context.Context, url string, timeout time.Duration) (probe.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.current()
	if err != nil {
		return probe.Page{}, err
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return load(ctx, t, url)
}

func load(ctx context.Context, t tab, url string) (probe.Page, error) {
	lctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// subscribe before navigating so early requests are counted
	wait := t.WaitIdle(lctx)
	if err := t.Navigate(lctx, url); err != nil {
		cancel()
		wait() // returns at once on a done ctx and drops the subscription
		return probe.Page{}, err
	}
	wait()
	if err := ctx.Err(); err != nil {
		return probe.Page{}, fmt.Errorf("wait for network idle: %w", err)
	}

	title, err := t.Title(lctx)
	if err != nil {
		return probe.Page{}, fmt.Errorf("read title: %w", err)
	}
	html, err := t.HTML(lctx)
	if err != nil {
		return probe.Page{}, fmt.Errorf("read content: %w", err)
	}
	return probe.Page{URL: url, Title: title, HTML: html}, nil
}

// Close shuts the browser down and removes its profile directory. Errors
// from the tab and the browser are combined; the caller logs them.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.cur != nil {
		err = multierr.Append(err, s.cur.Close())
		s.cur = nil
	}
	return multierr.Append(err, s.shutdown())
}
