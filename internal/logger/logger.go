package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Level represents log severity
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name to a Level, case-insensitively.
// Unknown names map to INFO.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DEBUG
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// Field is a key-value pair attached to an entry
type Field struct {
	Key   string
	Value interface{}
}

// F is a shorthand for creating a Field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Config holds logger configuration
type Config struct {
	Level      Level
	FilePath   string    // optional log file
	MaxSize    int64     // rotate the file past this many bytes
	MaxBackups int       // rotated files kept as FilePath.1 .. FilePath.N
	Console    bool      // also write to stderr
	Output     io.Writer // extra sink, used by tests
}

// DefaultConfig logs INFO and above to stderr only
func DefaultConfig() Config {
	return Config{
		Level:      INFO,
		MaxSize:    10 * 1024 * 1024,
		MaxBackups: 5,
		Console:    true,
	}
}

// Logger writes leveled entries with structured fields
type Logger struct {
	config Config
	fields []Field
	sink   *sink
}

// sink is shared between a logger and the children made by WithFields
type sink struct {
	mu      sync.Mutex
	file    *os.File
	size    int64
	writers []io.Writer
}

var (
	globalMu     sync.RWMutex
	globalLogger *Logger
)

// Init replaces the global logger. The previous one is closed.
func Init(config Config) error {
	l, err := New(config)
	if err != nil {
		return err
	}
	globalMu.Lock()
	prev := globalLogger
	globalLogger = l
	globalMu.Unlock()
	if prev != nil {
		prev.Close()
	}
	return nil
}

// New creates a logger instance
func New(config Config) (*Logger, error) {
	s := &sink{}

	if config.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(config.FilePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		if err := s.open(config.FilePath); err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
	}
	if config.Console {
		s.writers = append(s.writers, os.Stderr)
	}
	if config.Output != nil {
		s.writers = append(s.writers, config.Output)
	}

	return &Logger{config: config, sink: s}, nil
}

func (s *sink) open(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return err
	}
	s.file = file
	s.size = info.Size()
	return nil
}

// rotate shifts FilePath.N-1 to FilePath.N and starts a fresh file.
// Caller holds s.mu.
func (l *Logger) rotate() error {
	s := l.sink
	path := l.config.FilePath
	if s.file != nil {
		s.file.Close()
		s.file = nil
	}

	for i := l.config.MaxBackups - 1; i >= 1; i-- {
		os.Rename(fmt.Sprintf("%s.%d", path, i), fmt.Sprintf("%s.%d", path, i+1))
	}
	if l.config.MaxBackups > 0 {
		if err := os.Rename(path, path+".1"); err != nil && !os.IsNotExist(err) {
			return err
		}
	} else {
		os.Remove(path)
	}

	return s.open(path)
}

func (l *Logger) log(level Level, msg string, fields []Field) {
	if level < l.config.Level {
		return
	}

	_, file, line, ok := runtime.Caller(2)
	caller := "???"
	if ok {
		caller = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %-5s %s: %s", time.Now().Format("2006-01-02T15:04:05.000Z07:00"), level, caller, msg)
	for _, f := range append(l.fields[:len(l.fields):len(l.fields)], fields...) {
		b.WriteByte(' ')
		b.WriteString(f.Key)
		b.WriteByte('=')
		b.WriteString(formatValue(f.Value))
	}
	b.WriteByte('\n')
	entry := []byte(b.String())

	s := l.sink
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file != nil {
		if l.config.MaxSize > 0 && s.size+int64(len(entry)) > l.config.MaxSize {
			if err := l.rotate(); err != nil {
				fmt.Fprintf(os.Stderr, "logger: rotate %s: %v\n", l.config.FilePath, err)
			}
		}
		if s.file != nil {
			n, _ := s.file.Write(entry)
			s.size += int64(n)
		}
	}
	for _, w := range s.writers {
		w.Write(entry)
	}
}

func formatValue(v interface{}) string {
	var s string
	switch x := v.(type) {
	case error:
		s = x.Error()
	case time.Duration:
		s = x.String()
	default:
		s = fmt.Sprint(x)
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return fmt.Sprintf("%q", s)
	}
	return s
}

// WithFields returns a child logger that adds fields to every entry
func (l *Logger) WithFields(fields ...Field) *Logger {
	merged := make([]Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)
	return &Logger{config: l.config, fields: merged, sink: l.sink}
}

func (l *Logger) Debug(msg string, fields ...Field) { l.log(DEBUG, msg, fields) }
func (l *Logger) Info(msg string, fields ...Field)  { l.log(INFO, msg, fields) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.log(WARN, msg, fields) }
func (l *Logger) Error(msg string, fields ...Field) { l.log(ERROR, msg, fields) }

// Close closes the log file, if any
func (l *Logger) Close() error {
	s := l.sink
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file != nil {
		err := s.file.Close()
		s.file = nil
		return err
	}
	return nil
}

// Global logger functions. They are no-ops until Init is called.

func global() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

func Debug(msg string, fields ...Field) {
	if l := global(); l != nil {
		l.log(DEBUG, msg, fields)
	}
}

func Info(msg string, fields ...Field) {
	if l := global(); l != nil {
		l.log(INFO, msg, fields)
	}
}

func Warn(msg string, fields ...Field) {
	if l := global(); l != nil {
		l.log(WARN, msg, fields)
	}
}

func Error(msg string, fields ...Field) {
	if l := global(); l != nil {
		l.log(ERROR, msg, fields)
	}
}

// WithFields returns a child of the global logger, or nil before Init
func WithFields(fields ...Field) *Logger {
	if l := global(); l != nil {
		return l.WithFields(fields...)
	}
	return nil
}

// Close closes the global logger
func Close() error {
	if l := global(); l != nil {
		return l.Close()
	}
	return nil
}
