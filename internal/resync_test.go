package internal

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/starford/foliocal/internal/index"
	"github.com/starford/foliocal/internal/testutil"
)

type countingResyncer struct {
	calls atomic.Int32
	err   error
}

func (r *countingResyncer) Resync(index.EventCallback) error {
	r.calls.Add(1)
	return r.err
}

func TestRunResync_EmptyScheduleDisabled(t *testing.T) {
	r := &countingResyncer{}
	if err := runResync(context.Background(), "", r, testutil.Logger(), nil); err != nil {
		t.Fatalf("err = %v", err)
	}
	if r.calls.Load() != 0 {
		t.Errorf("calls = %d", r.calls.Load())
	}
}

func TestRunResync_BadSchedule(t *testing.T) {
	r := &countingResyncer{}
	if err := runResync(context.Background(), "not a cron", r, testutil.Logger(), nil); err == nil {
		t.Fatal("expected an error")
	}
}

func TestRunResync_RunsOnScheduleAndStops(t *testing.T) {
	r := &countingResyncer{err: errors.New("disk gone")}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runResync(ctx, "@every 1s", r, testutil.Logger(), nil) }()

	deadline := time.Now().Add(3 * time.Second)
	for r.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	if r.calls.Load() == 0 {
		t.Fatal("resync never ran")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("err = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("runResync did not stop")
	}
}

func TestCronLogger(t *testing.T) {
	var h recordHandler
	l := cronLogger{slog.New(&h)}
	l.Info("start")
	l.Error(errors.New("boom"), "job failed", "entry", 1)
	if len(h.msgs) != 2 || h.msgs[0] != "cron: start" || h.msgs[1] != "cron: job failed" {
		t.Errorf("messages = %v", h.msgs)
	}
}

type recordHandler struct{ msgs []string }

func (h *recordHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *recordHandler) Handle(_ context.Context, r slog.Record) error {
	h.msgs = append(h.msgs, r.Message)
	return nil
}
func (h *recordHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordHandler) WithGroup(string) slog.Handler      { return h }
