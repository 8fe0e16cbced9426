package probe

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"
)

// Prober runs each check once, in order, against a single session.
type Prober struct {
	Logger *zap.Logger
	Driver Driver
	Checks []Check
	Out    io.Writer
}

func NewProber(logger *zap.Logger, d Driver, out io.Writer, checks []Check) *Prober {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Prober{Logger: logger, Driver: d, Checks: checks, Out: out}
}

// Run never aborts early: every failure is printed and the next check runs.
// The session is opened once and closed once. If it cannot be opened no
// checks run and Run returns nil.
func (p *Prober) Run(ctx context.Context) []CheckResult {
	con := newConsole(p.Out)

	sess, err := p.Driver.Open(ctx)
	if err != nil {
		con.openFailed(err)
		p.Logger.Error("session_open_error", zap.Error(err))
		return nil
	}
	defer func() {
		if err := sess.Close(); err != nil {
			p.Logger.Warn("session_close_error", zap.Error(err))
			return
		}
		p.Logger.Info("session_closed")
	}()

	results := make([]CheckResult, 0, len(p.Checks))
	section := ""
	for _, c := range p.Checks {
		if c.Section != "" && c.Section != section {
			con.section(c.Section)
			section = c.Section
		}
		results = append(results, p.runCheck(ctx, sess, c, con))
	}
	return results
}

func (p *Prober) runCheck(ctx context.Context, sess Session, c Check, con *console) CheckResult {
	con.checking(c.URL)

	cctx := ctx
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		cctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	start := time.Now()
	page, err := sess.Load(cctx, c.URL, c.Timeout)
	latency := time.Since(start).Seconds() * 1000 // ms

	res := CheckResult{Name: c.Name, URL: c.URL, LatencyMS: latency}
	if err != nil {
		res.Kind = Classify(err)
		res.Message = err.Error()
		res.Err = err
		if res.Kind == KindNameNotResolved {
			con.stillBuilding(c.Name, err)
		} else {
			con.failed(c.Name, err)
		}
		p.Logger.Warn("check_failed",
			zap.String("check", c.Name),
			zap.String("url", c.URL),
			zap.String("kind", string(res.Kind)),
			zap.Bool("timeout", isTimeout(err)),
			zap.Float64("latency_ms", latency),
			zap.Error(err),
		)
		return res
	}

	res.Title = page.Title
	con.title(page.Title)

	// Markers are matched against the document only. Browsers report the URL
	// as the title of an untitled page, so the title can't be trusted here.
	marker, ok := Match(page.HTML, c.Markers)
	if !ok {
		res.Kind = KindContentMissing
		res.Message = "expected content not found"
		con.contentMissing(c.Name, page.HTML)
		p.Logger.Warn("check_content_missing",
			zap.String("check", c.Name),
			zap.String("url", c.URL),
			zap.Strings("markers", c.Markers),
			zap.Int("status", page.StatusCode),
			zap.Float64("latency_ms", latency),
		)
		return res
	}

	res.Success = true
	res.Kind = KindLive
	res.Marker = marker
	res.Message = "live"
	con.live(c.Name)
	p.Logger.Info("check_live",
		zap.String("check", c.Name),
		zap.String("url", c.URL),
		zap.String("marker", marker),
		zap.String("title", page.Title),
		zap.Int("status", page.StatusCode),
		zap.Float64("latency_ms", latency),
	)
	return res
}
