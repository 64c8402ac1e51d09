package logging

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func parseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Logger writes one JSON object per line: ts, level, msg, optional
// component, plus any event fields.
type Logger struct {
	level     Level
	component string
	mu        *sync.Mutex
	out       io.Writer
}

func NewLogger(levelStr string) *Logger {
	return NewLoggerWithWriter(levelStr, os.Stdout)
}

func NewLoggerWithWriter(levelStr string, w io.Writer) *Logger {
	return &Logger{
		level: parseLevel(levelStr),
		mu:    &sync.Mutex{},
		out:   w,
	}
}

// WithComponent returns a logger that stamps every line with the given
// component name. The underlying writer and level are shared.
func (l *Logger) WithComponent(name string) *Logger {
	clone := *l
	clone.component = name
	return &clone
}

func (l *Logger) Debugw(msg string, fields map[string]any) { l.write(LevelDebug, msg, fields) }
func (l *Logger) Infow(msg string, fields map[string]any)  { l.write(LevelInfo, msg, fields) }
func (l *Logger) Warnw(msg string, fields map[string]any)  { l.write(LevelWarn, msg, fields) }
func (l *Logger) Errorw(msg string, fields map[string]any) { l.write(LevelError, msg, fields) }

func (l *Logger) Debug(msg string) { l.write(LevelDebug, msg, nil) }
func (l *Logger) Info(msg string)  { l.write(LevelInfo, msg, nil) }
func (l *Logger) Warn(msg string)  { l.write(LevelWarn, msg, nil) }
func (l *Logger) Error(msg string) { l.write(LevelError, msg, nil) }

func (l *Logger) write(level Level, msg string, fields map[string]any) {
	if level < l.level {
		return
	}

	rec := make(map[string]any, len(fields)+4)
	for k, v := range fields {
		rec[k] = v
	}
	rec["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	rec["level"] = level.String()
	rec["msg"] = msg
	if l.component != "" {
		rec["component"] = l.component
	}

	line, err := json.Marshal(rec)
	if err != nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Write(append(line, '\n'))
}
