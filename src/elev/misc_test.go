package elev

import (
	"log/slog"
	"testing"
	"time"
)

func TestCompactAttr(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 5, 7, 0, time.UTC)
	if got := compactAttr(nil, slog.Time(slog.TimeKey, at)).Value.String(); got != "09:05:07" {
		t.Errorf("time = %q, want 09:05:07", got)
	}

	src := &slog.Source{File: "/home/ci/twinlift/src/elev/fsm.go", Line: 42}
	if got := compactAttr(nil, slog.Any(slog.SourceKey, src)).Value.String(); got != "fsm.go:42" {
		t.Errorf("source = %q, want fsm.go:42", got)
	}

	other := slog.Int("floor", 3)
	if got := compactAttr(nil, other); !got.Equal(other) {
		t.Errorf("unrelated attr changed: %v", got)
	}
}
