package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	errs "github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/pipeline"
)

func TestRenderCommandFetchesOnce(t *testing.T) {
	dir, _ := writeFixture(t)
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(moviesFixture))
	}))
	defer srv.Close()

	out := filepath.Join(dir, "movies.html")
	if err := runCLI(t, "render", "--url", srv.URL, "-o", out, "--no-cache"); err == nil {
		t.Fatal("render should fail on a 503")
	}
	if got := requests.Load(); got != 1 {
		t.Errorf("requests = %d, want 1", got)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("no output should be written, stat err = %v", err)
	}
}

func TestRenderCommandRejectsDirectoryOutput(t *testing.T) {
	dir, input := writeFixture(t)
	out := filepath.Join(dir, "out") + "/"

	for _, cmd := range []string{"render", "layout"} {
		t.Run(cmd, func(t *testing.T) {
			err := runCLI(t, cmd, "--input", input, "-o", out, "--no-cache")
			if !errs.Is(err, errs.ErrCodeInvalidInput) {
				t.Errorf("error = %v, want INVALID_INPUT", err)
			}
		})
	}
	if _, err := os.Stat(filepath.Join(dir, "out")); !os.IsNotExist(err) {
		t.Errorf("nothing should be created, stat err = %v", err)
	}
}

func TestNewFetcher(t *testing.T) {
	var calls atomic.Int32
	var gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		gotHeader = r.Header.Get("Authorization")
		w.Write([]byte(strings.Repeat("x", 2048)))
	}))
	defer srv.Close()

	f, err := newFetcher(sourceFlags{timeout: time.Second, maxSize: "1KiB", headers: []string{"Authorization: Bearer t0k"}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Fetch(context.Background(), srv.URL); err == nil {
		t.Error("a body over --max-size should be rejected")
	}
	if gotHeader != "Bearer t0k" {
		t.Errorf("Authorization = %q, want %q", gotHeader, "Bearer t0k")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestNewFetcherInvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		sf   sourceFlags
	}{
		{"bad size", sourceFlags{maxSize: "lots"}},
		{"zero size", sourceFlags{maxSize: "0B"}},
		{"header without colon", sourceFlags{headers: []string{"Authorization"}}},
		{"header without key", sourceFlags{headers: []string{": value"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := newFetcher(tt.sf); !errs.Is(err, errs.ErrCodeInvalidInput) {
				t.Errorf("newFetcher() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestWarnIgnoredFlags(t *testing.T) {
	writeFixture(t)
	warnIgnoredFlags(pipeline.Options{Input: "movies.json", Cached: true}, sourceFlags{retries: 2})

	out := stdout.(*bytes.Buffer).String() + stderr.(*bytes.Buffer).String()
	for _, want := range []string{"--cached has no effect", "--retries has no effect"} {
		if !strings.Contains(out, want) {
			t.Errorf("warnings %q missing %q", out, want)
		}
	}
}
