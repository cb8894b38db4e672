package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level represents the logging level.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

var levelColors = map[Level]string{
	DEBUG: "\033[36m", // Cyan
	INFO:  "\033[32m", // Green
	WARN:  "\033[33m", // Yellow
	ERROR: "\033[31m", // Red
}

const colorReset = "\033[0m"

// Logger writes leveled messages to a single writer.
type Logger struct {
	mu          sync.Mutex
	level       Level
	out         *log.Logger
	colorEnable bool
}

// New creates a logger writing to w at the given level.
func New(w io.Writer, levelStr string) *Logger {
	return &Logger{
		level:       ParseLevel(levelStr),
		out:         log.New(w, "", log.LstdFlags),
		colorEnable: false,
	}
}

var (
	defaultMu     sync.Mutex
	defaultLogger = &Logger{
		level:       INFO,
		out:         log.New(os.Stderr, "", log.LstdFlags),
		colorEnable: true,
	}
)

func std() *Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultLogger
}

// SetLevel sets the logging level for the default logger.
func SetLevel(levelStr string) {
	l := std()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = ParseLevel(levelStr)
}

// SetOutput sets the output destination for the default logger.
func SetOutput(w io.Writer) {
	l := std()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.SetOutput(w)
}

// SetColorEnable enables or disables color output.
func SetColorEnable(enable bool) {
	l := std()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.colorEnable = enable
}

// ParseLevel converts a string to a Level. Unknown names map to INFO.
func ParseLevel(levelStr string) Level {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// Enabled reports whether messages at level would be written.
func (l *Logger) Enabled(level Level) bool {
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return level >= l.level
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	message := fmt.Sprintf(format, args...)
	if l.colorEnable {
		l.out.Printf("%s[%s]%s %s", levelColors[level], levelNames[level], colorReset, message)
		return
	}
	l.out.Printf("[%s] %s", levelNames[level], message)
}

// Debugf logs a debug message.
func (l *Logger) Debugf(format string, args ...interface{}) { l.log(DEBUG, format, args...) }

// Infof logs an info message.
func (l *Logger) Infof(format string, args ...interface{}) { l.log(INFO, format, args...) }

// Warnf logs a warning message.
func (l *Logger) Warnf(format string, args ...interface{}) { l.log(WARN, format, args...) }

// Errorf logs an error message.
func (l *Logger) Errorf(format string, args ...interface{}) { l.log(ERROR, format, args...) }

// DebugEnabled reports whether the default logger writes debug messages.
func DebugEnabled() bool {
	return std().Enabled(DEBUG)
}

// Debug logs a debug message.
func Debug(format string, args ...interface{}) {
	std().log(DEBUG, format, args...)
}

// Info logs an info message.
func Info(format string, args ...interface{}) {
	std().log(INFO, format, args...)
}

// Warn logs a warning message.
func Warn(format string, args ...interface{}) {
	std().log(WARN, format, args...)
}

// Error logs an error message.
func Error(format string, args ...interface{}) {
	std().log(ERROR, format, args...)
}
