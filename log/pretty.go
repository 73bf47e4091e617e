package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"
)

// ANSI color codes for pretty printing.
const (
	colorReset   = "\033[0m"
	colorGray    = "\033[90m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorCyan    = "\033[36m"
	colorMagenta = "\033[35m"
)

// prettyHandler implements a colorized text handler for log messages.
type prettyHandler struct {
	opts  slog.HandlerOptions
	mu    *sync.Mutex
	w     io.Writer
	attrs []slog.Attr
}

func newPrettyHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyHandler {
	return &prettyHandler{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() {
		h.writeAttr(buf, slog.Time(slog.TimeKey, r.Time))
	}

	h.writeAttr(buf, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			source := src.File + ":" + strconv.Itoa(src.Line)
			h.writeAttr(buf, slog.String(slog.SourceKey, source))
		}
	}

	h.writeAttr(buf, slog.String(slog.MessageKey, r.Message))

	for _, a := range h.attrs {
		h.writeAttr(buf, a)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)

	return &prettyHandler{
		opts:  h.opts,
		mu:    h.mu,
		w:     h.w,
		attrs: merged,
	}
}

func (h *prettyHandler) WithGroup(string) slog.Handler {
	// Groups are flattened in pretty output.
	return h
}

// writeAttr renders one attribute with color keyed by its role.
func (h *prettyHandler) writeAttr(buf *bytes.Buffer, a slog.Attr) {
	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(nil, a)
	}

	if a.Equal(slog.Attr{}) {
		return
	}

	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	switch a.Key {
	case slog.TimeKey:
		buf.WriteString(colorGray + a.Value.String() + colorReset)

	case slog.LevelKey:
		buf.WriteString(levelColor(a.Value.String()) +
			a.Value.String() + colorReset)

	case slog.SourceKey:
		buf.WriteString(colorGray + a.Value.String() + colorReset)

	case slog.MessageKey:
		buf.WriteString(a.Value.String())

	default:
		buf.WriteString(colorCyan + a.Key + colorReset + "=" +
			a.Value.String())
	}
}

func levelColor(level string) string {
	switch level {
	case "TRACE":
		return colorMagenta
	case "DEBUG":
		return colorGray
	case "INFO":
		return colorGreen
	case "WARN":
		return colorYellow
	case "ERROR":
		return colorRed
	default:
		return colorReset
	}
}
