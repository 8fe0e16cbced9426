package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hamed0406/deployprobe/internal/probe"
)

// fakeDeployment mimics the app's public routes.
func fakeDeployment() http.Handler {
	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title> Quest CMS </title></head><body>welcome</body></html>`))
	})
	r.Get("/admin", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><h1>Dashboard</h1></body></html>`))
	})
	r.Get("/slow", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte("late"))
	})
	return r
}

func open(t *testing.T) probe.Session {
	t.Helper()
	sess, err := NewDriver().Open(context.Background())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = sess.Close() })
	return sess
}

func TestSession_LoadsTitleAndBody(t *testing.T) {
	s := httptest.NewServer(fakeDeployment())
	defer s.Close()

	page, err := open(t).Load(context.Background(), s.URL, 2*time.Second)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if page.Title != "Quest CMS" {
		t.Fatalf("want title Quest CMS, got %q", page.Title)
	}
	if page.StatusCode != 200 || !strings.Contains(page.HTML, "welcome") {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestSession_NotFoundIsStatusError(t *testing.T) {
	s := httptest.NewServer(fakeDeployment())
	defer s.Close()

	_, err := open(t).Load(context.Background(), s.URL+"/missing", 2*time.Second)
	var se *StatusError
	if !errors.As(err, &se) || se.Code != 404 {
		t.Fatalf("want 404 StatusError, got %v", err)
	}
	if probe.Classify(err) != probe.KindFailed {
		t.Fatalf("404 should be a generic failure")
	}
}

func TestSession_TimeoutIsGenericFailure(t *testing.T) {
	s := httptest.NewServer(fakeDeployment())
	defer s.Close()

	_, err := open(t).Load(context.Background(), s.URL+"/slow", 50*time.Millisecond)
	if err == nil {
		t.Fatalf("want timeout error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("want deadline exceeded, got %v", err)
	}
}

func TestTitle(t *testing.T) {
	cases := []struct{ in, want string }{
		{"<title>A</title>", "A"},
		{"<html><head><TITLE>Upper</TITLE></head></html>", "Upper"},
		{"<html><body>no title</body></html>", ""},
		{"<title></title>", ""},
	}
	for _, c := range cases {
		if got := Title(c.in); got != c.want {
			t.Fatalf("Title(%q)=%q want %q", c.in, got, c.want)
		}
	}
}
