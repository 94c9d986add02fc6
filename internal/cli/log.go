package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treemap/pkg/observability"
)

// newLogger creates a logger writing to w at the given level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs completion of an operation with its elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Rendered treemap (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability
// =============================================================================

// logHooks reports pipeline, cache and HTTP events as debug log lines.
type logHooks struct {
	logger *log.Logger
}

// installLogHooks registers l as the sink for all observability hooks.
func installLogHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h logHooks) OnFetchStart(_ context.Context, source string) {
	h.logger.Debug("fetch start", "source", source)
}

func (h logHooks) OnFetchComplete(_ context.Context, source string, leafCount int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("fetch failed", "source", source, "duration", d, "err", err)
		return
	}
	h.logger.Debug("fetch complete", "source", source, "leaves", leafCount, "duration", d)
}

func (h logHooks) OnLayoutStart(_ context.Context, leafCount int) {
	h.logger.Debug("layout start", "leaves", leafCount)
}

func (h logHooks) OnLayoutComplete(_ context.Context, tileCount int, d time.Duration) {
	h.logger.Debug("layout complete", "tiles", tileCount, "duration", d)
}

func (h logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "formats", formats, "err", err)
		return
	}
	h.logger.Debug("render complete", "formats", formats, "duration", d)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d)
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}

var (
	_ observability.PipelineHooks = logHooks{}
	_ observability.CacheHooks    = logHooks{}
	_ observability.HTTPHooks     = logHooks{}
)
