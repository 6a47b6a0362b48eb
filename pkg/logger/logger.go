package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Category represents a log category
type Category string

const (
	CategoryAuth       Category = "auth"
	CategoryAPI        Category = "api"
	CategoryDB         Category = "db"
	CategoryCache      Category = "cache"
	CategoryModeration Category = "moderation"
	CategoryFamily     Category = "family"
	CategoryWebSocket  Category = "websocket"
	CategoryStartup    Category = "startup"
	CategoryScheduler  Category = "scheduler"
)

// Level represents log level
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// LogEntry represents a structured log entry
type LogEntry struct {
	Level     Level
	Category  Category
	Action    string
	Message   string
	Data      map[string]interface{}
	UserID    string
	RequestID string
	Duration  string
	Error     string
}

// Logger writes every entry as JSON to a daily file and, optionally, as text to stdout.
type Logger struct {
	mu      sync.Mutex
	logDir  string
	day     string
	file    *os.File
	fileLog *logrus.Logger
	console *logrus.Logger
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Init initializes the default logger
func Init(logDir string, console bool) error {
	var err error
	once.Do(func() {
		defaultLogger, err = NewLogger(logDir, console)
		if err != nil {
			// keep logging to the console rather than not at all
			defaultLogger, _ = NewLogger("", true)
		}
	})
	return err
}

// NewLogger creates a new logger. An empty logDir disables file output.
func NewLogger(logDir string, console bool) (*Logger, error) {
	l := &Logger{logDir: logDir}

	if logDir != "" {
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		l.fileLog = logrus.New()
		l.fileLog.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
		l.fileLog.SetLevel(logrus.DebugLevel)
	}

	if console {
		l.console = logrus.New()
		l.console.SetOutput(os.Stdout)
		l.console.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05.000",
			ForceColors:     true,
		})
		l.console.SetLevel(logrus.DebugLevel)
	}

	return l, nil
}

// SetLevel sets the minimum level for both outputs
func (l *Logger) SetLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	if l.fileLog != nil {
		l.fileLog.SetLevel(lvl)
	}
	if l.console != nil {
		l.console.SetLevel(lvl)
	}
}

// rotate switches the file output when the day changes. Caller holds mu.
func (l *Logger) rotate() error {
	today := time.Now().Format("2006-01-02")
	if l.file != nil && l.day == today {
		return nil
	}
	if l.file != nil {
		l.file.Close()
	}

	path := filepath.Join(l.logDir, fmt.Sprintf("app_%s.log", today))
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	l.file = file
	l.day = today
	l.fileLog.SetOutput(file)
	return nil
}

// Log writes a log entry
func (l *Logger) Log(entry LogEntry) {
	fields := logrus.Fields{
		"category": entry.Category,
		"action":   entry.Action,
	}
	for k, v := range entry.Data {
		fields[k] = v
	}
	if entry.UserID != "" {
		fields["user_id"] = entry.UserID
	}
	if entry.RequestID != "" {
		fields["request_id"] = entry.RequestID
	}
	if entry.Duration != "" {
		fields["duration"] = entry.Duration
	}
	if entry.Error != "" {
		fields["error"] = entry.Error
	}

	if l.fileLog != nil {
		l.mu.Lock()
		if err := l.rotate(); err != nil {
			fmt.Printf("Error getting log writer: %v\n", err)
		} else {
			l.fileLog.WithFields(fields).Log(toLogrus(entry.Level), entry.Message)
		}
		l.mu.Unlock()
	}

	if l.console != nil {
		l.console.WithFields(fields).Log(toLogrus(entry.Level), entry.Message)
	}
}

// Close closes the file writer
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
}

func toLogrus(level Level) logrus.Level {
	switch level {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Default returns the default logger. Without Init it logs to the console only.
func Default() *Logger {
	once.Do(func() {
		defaultLogger, _ = NewLogger("", true)
	})
	return defaultLogger
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// Auth logs authentication related events
func Auth(action, message string, data map[string]interface{}) {
	Info(CategoryAuth, action, message, data)
}

// AuthError logs authentication errors
func AuthError(action, message string, err error, data map[string]interface{}) {
	Error(CategoryAuth, action, message, err, data)
}

// API logs API request/response events
func API(action, message string, data map[string]interface{}) {
	Info(CategoryAPI, action, message, data)
}

// DB logs database operations
func DB(action, message string, data map[string]interface{}) {
	Debug(CategoryDB, action, message, data)
}

// Moderation logs administrator actions
func Moderation(action, message string, data map[string]interface{}) {
	Info(CategoryModeration, action, message, data)
}

// ModerationError logs failed administrator actions
func ModerationError(action, message string, err error, data map[string]interface{}) {
	Error(CategoryModeration, action, message, err, data)
}

// WebSocket logs WebSocket related events
func WebSocket(action, message string, data map[string]interface{}) {
	Info(CategoryWebSocket, action, message, data)
}

// WebSocketError logs WebSocket errors
func WebSocketError(action, message string, err error, data map[string]interface{}) {
	Error(CategoryWebSocket, action, message, err, data)
}

// Startup logs startup/initialization events
func Startup(action, message string, data map[string]interface{}) {
	Info(CategoryStartup, action, message, data)
}

// StartupError logs startup errors
func StartupError(action, message string, err error, data map[string]interface{}) {
	Error(CategoryStartup, action, message, err, data)
}

// StartupWarn logs startup warnings
func StartupWarn(action, message string, data map[string]interface{}) {
	Warn(CategoryStartup, action, message, data)
}

// Scheduler logs maintenance job events
func Scheduler(action, message string, data map[string]interface{}) {
	Info(CategoryScheduler, action, message, data)
}

// SchedulerWarn logs maintenance job warnings
func SchedulerWarn(action, message string, data map[string]interface{}) {
	Warn(CategoryScheduler, action, message, data)
}

// SchedulerError logs failed maintenance jobs
func SchedulerError(action, message string, err error, data map[string]interface{}) {
	Error(CategoryScheduler, action, message, err, data)
}

// Info logs info level message
func Info(category Category, action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{
		Level:    LevelInfo,
		Category: category,
		Action:   action,
		Message:  message,
		Data:     data,
	})
}

// Error logs error level message
func Error(category Category, action, message string, err error, data map[string]interface{}) {
	Default().Log(LogEntry{
		Level:    LevelError,
		Category: category,
		Action:   action,
		Message:  message,
		Error:    errString(err),
		Data:     data,
	})
}

// Debug logs debug level message
func Debug(category Category, action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{
		Level:    LevelDebug,
		Category: category,
		Action:   action,
		Message:  message,
		Data:     data,
	})
}

// Warn logs warning level message
func Warn(category Category, action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{
		Level:    LevelWarn,
		Category: category,
		Action:   action,
		Message:  message,
		Data:     data,
	})
}

// GetTypeName returns the dynamic type name of v, for diagnostics
func GetTypeName(v interface{}) string {
	return fmt.Sprintf("%T", v)
}
