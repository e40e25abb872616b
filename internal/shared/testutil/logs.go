package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// LogRecord is a captured log record with its attributes flattened
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// recordStore is shared by a Recorder and the handlers derived from it
type recordStore struct {
	mu      sync.Mutex
	records []LogRecord
}

// Recorder is a slog.Handler that keeps every record for inspection.
// Attributes added with Logger.With are included in each record.
type Recorder struct {
	store *recordStore
	attrs []slog.Attr
	t     *testing.T
}

// NewLogger returns a logger that records into the returned Recorder and
// echoes each record to the test log.
func NewLogger(t *testing.T) (*slog.Logger, *Recorder) {
	rec := &Recorder{store: &recordStore{}, t: t}
	return slog.New(rec), rec
}

// Enabled implements slog.Handler; every level is captured
func (r *Recorder) Enabled(context.Context, slog.Level) bool {
	return true
}

// Handle implements slog.Handler
func (r *Recorder) Handle(_ context.Context, record slog.Record) error {
	attrs := make(map[string]any, len(r.attrs)+record.NumAttrs())
	for _, a := range r.attrs {
		attrs[a.Key] = a.Value.Any()
	}
	record.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	r.store.mu.Lock()
	r.store.records = append(r.store.records, LogRecord{
		Level:   record.Level,
		Message: record.Message,
		Attrs:   attrs,
	})
	r.store.mu.Unlock()

	if r.t != nil {
		r.t.Logf("[%s] %s %v", record.Level, record.Message, attrs)
	}
	return nil
}

// WithAttrs implements slog.Handler
func (r *Recorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append(append([]slog.Attr(nil), r.attrs...), attrs...)
	return &Recorder{store: r.store, attrs: merged, t: r.t}
}

// WithGroup implements slog.Handler; groups are ignored
func (r *Recorder) WithGroup(string) slog.Handler {
	return r
}

// Records returns a copy of the captured records
func (r *Recorder) Records() []LogRecord {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return append([]LogRecord(nil), r.store.records...)
}

// Find returns the records at level whose message contains msg
func (r *Recorder) Find(level slog.Level, msg string) []LogRecord {
	var found []LogRecord
	for _, rec := range r.Records() {
		if rec.Level == level && strings.Contains(rec.Message, msg) {
			found = append(found, rec)
		}
	}
	return found
}

// AssertLogged fails the test unless a record at level contains msg
func AssertLogged(t *testing.T, r *Recorder, level slog.Level, msg string) {
	t.Helper()
	if len(r.Find(level, msg)) > 0 {
		return
	}
	t.Errorf("expected %s log containing %q", level, msg)
	for _, rec := range r.Records() {
		t.Logf("  - [%s] %s", rec.Level, rec.Message)
	}
}

// AssertNoErrors fails the test if any ERROR record was captured
func AssertNoErrors(t *testing.T, r *Recorder) {
	t.Helper()
	for _, rec := range r.Records() {
		if rec.Level == slog.LevelError {
			t.Errorf("unexpected error log: %s %v", rec.Message, rec.Attrs)
		}
	}
}
