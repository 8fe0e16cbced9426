// Package fetch loads pages with a plain HTTP GET. It does not run scripts,
// so it only suits server-rendered pages.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/hamed0406/deployprobe/internal/probe"
)

const maxBody = 5 << 20

type Driver struct {
	Client *http.Client
}

func NewDriver() *Driver {
	return &Driver{Client: &http.Client{}}
}

func (d *Driver) Open(context.Context) (probe.Session, error) {
	c := d.Client
	if c == nil {
		c = &http.Client{}
	}
	return &Session{Client: c}, nil
}

type Session struct {
	Client *http.Client
}

// StatusError is returned for 4xx/5xx responses.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string { return "HTTP " + e.Status }

func (s *Session) Load(ctx context.Context, url string, timeout time.Duration) (probe.Page, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return probe.Page{}, err
	}
	req.Header.Set("User-Agent", "deployprobe/1")

	resp, err := s.Client.Do(req)
	if err != nil {
		return probe.Page{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return probe.Page{StatusCode: resp.StatusCode}, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return probe.Page{}, fmt.Errorf("read body: %w", err)
	}
	body := string(b)
	return probe.Page{
		URL:        resp.Request.URL.String(),
		Title:      Title(body),
		HTML:       body,
		StatusCode: resp.StatusCode,
	}, nil
}

func (s *Session) Close() error {
	s.Client.CloseIdleConnections()
	return nil
}

// Title returns the text of the first <title> element, or "".
func Title(doc string) string {
	z := html.NewTokenizer(strings.NewReader(doc))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			name, _ := z.TagName()
			if string(name) != "title" {
				continue
			}
			if z.Next() == html.TextToken {
				return strings.TrimSpace(string(z.Text()))
			}
			return ""
		}
	}
}
