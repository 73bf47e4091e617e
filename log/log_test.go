package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestZeroLoggerDiscards(t *testing.T) {
	var l Logger

	// Must not panic and must not write anywhere.
	l.Trace("trace")
	l.Debug("debug")
	l.Info("info")
	l.Warn("warn")
	l.Error("error")

	if got := l.Level(); got != DefaultLevel {
		t.Errorf("zero logger Level() = %v, want %v", got, DefaultLevel)
	}
}

func TestMakeTextFormat(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf,
		WithFormat(FormatText),
		WithPretty(false),
		WithTimeLayout("none"),
	)

	l.Info("hello", slog.String("key", "value"))

	out := buf.String()
	if !strings.Contains(out, "hello") {
		t.Errorf("output missing message: %q", out)
	}

	if !strings.Contains(out, "key=value") {
		t.Errorf("output missing attribute: %q", out)
	}

	if strings.Contains(out, "time=") {
		t.Errorf("output has timestamp despite layout none: %q", out)
	}
}

func TestMakeJSONFormat(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatJSON), WithTimeLayout("none"))

	l.Warn("caution", slog.Int("count", 3))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}

	if record["msg"] != "caution" {
		t.Errorf("msg = %v, want caution", record["msg"])
	}

	if record["level"] != "WARN" {
		t.Errorf("level = %v, want WARN", record["level"])
	}

	if record["count"] != float64(3) {
		t.Errorf("count = %v, want 3", record["count"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf,
		WithFormat(FormatJSON),
		WithLevel(LevelWarn),
		WithTimeLayout("none"),
	)

	l.Trace("t")
	l.Debug("d")
	l.Info("i")

	if buf.Len() != 0 {
		t.Errorf("messages below warn were written: %q", buf.String())
	}

	l.Warn("w")
	l.Error("e")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Errorf("got %d records, want 2: %q", len(lines), buf.String())
	}
}

func TestTraceLevel(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf,
		WithFormat(FormatJSON),
		WithLevel(LevelTrace),
		WithTimeLayout("none"),
	)

	l.Trace("fine-grained")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}

	if record["level"] != "TRACE" {
		t.Errorf("level = %v, want TRACE", record["level"])
	}
}

func TestWrap(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatJSON), WithLevel(LevelError))

	l = l.Wrap(WithLevel(LevelDebug))
	if got := l.Level(); got != LevelDebug {
		t.Errorf("Level() = %v, want %v", got, LevelDebug)
	}

	l.Debug("now visible")

	if buf.Len() == 0 {
		t.Error("debug message not written after Wrap lowered the level")
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatJSON), WithTimeLayout("none")).
		With(slog.String("component", "lexer"))

	l.Info("tokenized")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}

	if record["component"] != "lexer" {
		t.Errorf("component = %v, want lexer", record["component"])
	}

	// With on a zero logger is still a no-op logger.
	var zero Logger

	zero.With(slog.String("k", "v")).Info("dropped")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"text", FormatText},
		{" text ", FormatText},
		{"bogus", DefaultFormat},
	}

	for _, tt := range tests {
		if got := ParseFormat(tt.in); got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelTrace, "trace"},
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q",
				tt.level, got, tt.want)
		}
	}
}
