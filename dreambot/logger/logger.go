package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorWhite  = "\033[37m"
)

type LogType string

const (
	TypeCommand LogType = "CMD"
	TypeDB      LogType = "DB"
	TypeSystem  LogType = "SYS"
	TypeError   LogType = "ERR"
)

// CustomHandler renders one line per record, colored when writing to a
// terminal:
//
//	[D11] [15:04:05] [INFO] [CMD] Command completed [win by someone] [Status: success] k=v
type CustomHandler struct {
	opts   *slog.HandlerOptions
	out    io.Writer
	color  bool
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string
}

func NewHandler(opts *slog.HandlerOptions) *CustomHandler {
	return NewHandlerWithWriter(os.Stdout, opts)
}

func NewHandlerWithWriter(out io.Writer, opts *slog.HandlerOptions) *CustomHandler {
	o := slog.HandlerOptions{}
	if opts != nil {
		o = *opts
	}
	if o.Level == nil {
		o.Level = slog.LevelInfo
	}
	return &CustomHandler{
		opts:   &o,
		out:    out,
		color:  isTerminal(out),
		mu:     &sync.Mutex{},
		attrs:  make([]slog.Attr, 0),
		groups: make([]string, 0),
	}
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (h *CustomHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *CustomHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	return &CustomHandler{
		opts:   h.opts,
		out:    h.out,
		color:  h.color,
		mu:     h.mu,
		attrs:  append(merged, attrs...),
		groups: h.groups,
	}
}

func (h *CustomHandler) WithGroup(name string) slog.Handler {
	groups := make([]string, 0, len(h.groups)+1)
	groups = append(groups, h.groups...)
	return &CustomHandler{
		opts:   h.opts,
		out:    h.out,
		color:  h.color,
		mu:     h.mu,
		attrs:  h.attrs,
		groups: append(groups, name),
	}
}

func (h *CustomHandler) Handle(_ context.Context, r slog.Record) error {
	if shouldSkipLog(&r) {
		return nil
	}

	timestamp := r.Time
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	var levelColor, levelText string
	switch {
	case r.Level >= slog.LevelError:
		levelColor, levelText = colorRed, "ERROR"
	case r.Level >= slog.LevelWarn:
		levelColor, levelText = colorYellow, "WARN"
	case r.Level >= slog.LevelInfo:
		levelColor, levelText = colorGreen, "INFO"
	default:
		levelColor, levelText = colorPurple, "DEBUG"
	}

	fields := collect(&r)

	message := r.Message
	if r.Level >= slog.LevelError {
		if fields.errorLocation != "" {
			message = fmt.Sprintf("%s (%s)", message, fields.errorLocation)
		}
		if fields.errorDetails != "" {
			message = fmt.Sprintf("%s: %s", message, fields.errorDetails)
		}
	}

	if fields.cmdName != "" && fields.userName != "" {
		message = fmt.Sprintf("%s [%s by %s]", message, fields.cmdName, fields.userName)
	}

	if fields.status != "" {
		message = fmt.Sprintf("%s [Status: %s]", message, fields.status)
	}

	var attrsStr strings.Builder
	for _, attr := range h.attrs {
		if !isInternalAttr(attr.Key) {
			fmt.Fprintf(&attrsStr, " %s=%v", attr.Key, attr.Value)
		}
	}
	for _, attr := range fields.extra {
		fmt.Fprintf(&attrsStr, " %s=%v", attr.Key, attr.Value)
	}
	if h.opts.AddSource {
		if src := source(r.PC); src != "" {
			fmt.Fprintf(&attrsStr, " source=%s", src)
		}
	}

	base, reset := colorWhite, colorReset
	if !h.color {
		base, levelColor, reset = "", "", ""
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.out, "%s[D11] [%s] [%s%s%s] [%s] %s%s%s\n",
		base,
		timestamp.Format("15:04:05"),
		levelColor,
		levelText,
		base,
		fields.logType,
		message,
		attrsStr.String(),
		reset,
	)
	return err
}

func source(pc uintptr) string {
	if pc == 0 {
		return ""
	}
	frames := runtime.CallersFrames([]uintptr{pc})
	frame, _ := frames.Next()
	if frame.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
}

type recordFields struct {
	logType       LogType
	status        string
	userName      string
	cmdName       string
	errorDetails  string
	errorLocation string
	extra         []slog.Attr
}

func collect(r *slog.Record) recordFields {
	f := recordFields{logType: TypeSystem}
	r.Attrs(func(a slog.Attr) bool {
		switch a.Key {
		case "type":
			switch a.Value.String() {
			case "cmd":
				f.logType = TypeCommand
			case "db":
				f.logType = TypeDB
			case "error":
				f.logType = TypeError
			}
		case "status":
			f.status = a.Value.String()
		case "user_name":
			f.userName = a.Value.String()
		case "name":
			f.cmdName = a.Value.String()
		case "error":
			f.errorDetails = fmt.Sprintf("%v", a.Value.Any())
		case "error_location":
			f.errorLocation = a.Value.String()
		default:
			f.extra = append(f.extra, a)
		}
		return true
	})
	if f.errorLocation == "" && r.Level >= slog.LevelError {
		f.errorLocation = source(r.PC)
	}
	return f
}

// gateway and rest chatter from disgo
var skippedMessages = []string{
	"locking buckets",
	"unlocking buckets",
	"gateway event",
	"cleaning up bucket",
	"cleaned up rate limit buckets",
	"binary message received",
	"received gateway message",
	"opening gateway connection",
	"locking gateway rate limiter",
	"unlocking gateway rate limiter",
	"sending gateway command",
	"new request",
	"new response",
	"locking rest bucket",
	"unlocking rest bucket",
	"rate limit response headers",
	"sending heartbeat",
}

func shouldSkipLog(r *slog.Record) bool {
	msg := strings.ToLower(r.Message)
	for _, skip := range skippedMessages {
		if strings.Contains(msg, skip) {
			return true
		}
	}
	return false
}

func isInternalAttr(key string) bool {
	switch key {
	case "type", "name", "user_name", "status":
		return true
	}
	return false
}
