package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestHandlerFormatsCommandRecord(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandlerWithWriter(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	log.Info("Command completed",
		slog.String("type", "cmd"),
		slog.String("name", "win"),
		slog.String("user_name", "rohit"),
		slog.String("status", "success"),
		slog.Int("match", 12),
	)

	out := buf.String()
	for _, want := range []string{"[D11]", "[INFO]", "[CMD]", "Command completed [win by rohit]", "[Status: success]", "match=12"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestHandlerErrorDetails(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandlerWithWriter(&buf, nil))

	log.Error("Query failed", slog.String("type", "db"), slog.Any("error", errors.New("boom")))

	out := buf.String()
	if !strings.Contains(out, "[ERROR]") || !strings.Contains(out, "[DB]") || !strings.Contains(out, ": boom") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestHandlerLevelAndSkips(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandlerWithWriter(&buf, nil))

	log.Debug("hidden")
	log.Info("sending heartbeat")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing written, got %q", buf.String())
	}

	log.With(slog.String("component", "notifier")).Warn("late")
	if out := buf.String(); !strings.Contains(out, "[WARN]") || !strings.Contains(out, "component=notifier") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestHandlerColorsOnlyTerminals(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandlerWithWriter(&buf, nil)
	if h.color {
		t.Fatal("buffer writer treated as a terminal")
	}

	slog.New(h).Info("plain")
	if strings.Contains(buf.String(), "\033[") {
		t.Errorf("escape codes in non-terminal output %q", buf.String())
	}

	buf.Reset()
	h.color = true
	slog.New(h).Info("colored")
	if out := buf.String(); !strings.Contains(out, colorGreen+"INFO") || !strings.HasSuffix(out, colorReset+"\n") {
		t.Errorf("colored output %q", out)
	}
}

func TestHandlerAddSource(t *testing.T) {
	tests := []struct {
		name      string
		addSource bool
		want      bool
	}{
		{name: "enabled", addSource: true, want: true},
		{name: "disabled", addSource: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := slog.New(NewHandlerWithWriter(&buf, &slog.HandlerOptions{AddSource: tt.addSource}))
			log.Info("Schedule loaded")

			if got := strings.Contains(buf.String(), "source=logger_test.go:"); got != tt.want {
				t.Errorf("output %q, source present = %v, want %v", buf.String(), got, tt.want)
			}
		})
	}
}
