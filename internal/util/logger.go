package util

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const LOG_BUFFER_SIZE = 1000

var ErrLogNotInitialized = errors.New("log object is not initialized yet")

const (
	LOG_LEVEL_ERROR = iota + 1
	LOG_LEVEL_WARN
	LOG_LEVEL_INFO
	LOG_LEVEL_DEBUG
)

// LoggerOptions selects where and how much MetricsLogger writes.
// Writer wins over Folder; an empty Folder means stderr.
type LoggerOptions struct {
	Level   int
	Folder  string
	File    string
	Rewrite bool
	Writer  zapcore.WriteSyncer
}

// MetricsLogger hands log lines to a single writer goroutine through a
// buffered channel. The zero value is safe to call and drops everything
// with ErrLogNotInitialized.
type MetricsLogger struct {
	mu                sync.RWMutex
	logBuffer         chan LeveledLogger
	handle            *os.File
	wg                sync.WaitGroup
	loggerInitialized bool
	zapLogger         *zap.Logger
}

type LeveledLogger struct {
	level  int
	logMsg string
	fields []zap.Field
}

func (m *MetricsLogger) Init(opts LoggerOptions) error {
	writer := opts.Writer
	if writer == nil {
		if opts.Folder == "" {
			writer = zapcore.Lock(os.Stderr)
		} else {
			if err := CheckAndCreateLogFolder(opts.Folder); err != nil {
				return err
			}
			flags := os.O_RDWR | os.O_CREATE | os.O_APPEND
			if opts.Rewrite {
				flags = os.O_RDWR | os.O_CREATE | os.O_TRUNC
			}
			handle, err := os.OpenFile(opts.Folder+string(os.PathSeparator)+opts.File, flags, 0666)
			if err != nil {
				return fmt.Errorf("error opening log file: %w", err)
			}
			m.handle = handle
			writer = zapcore.AddSync(handle)
		}
	}

	m.zapLoggerInit(writer, opts.Level)
	m.logBuffer = make(chan LeveledLogger, LOG_BUFFER_SIZE)

	m.wg.Add(1)
	go m.logWritter()

	m.mu.Lock()
	m.loggerInitialized = true
	m.mu.Unlock()
	return nil
}

func (m *MetricsLogger) zapLoggerInit(writer zapcore.WriteSyncer, level int) {
	config := zap.NewProductionEncoderConfig()
	config.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(config), writer, ZapLevel(level))
	m.zapLogger = zap.New(core)
}

// ZapLevel maps a LOG_LEVEL_* constant onto zap. Unknown values log at info.
func ZapLevel(level int) zapcore.Level {
	switch level {
	case LOG_LEVEL_ERROR:
		return zapcore.ErrorLevel
	case LOG_LEVEL_WARN:
		return zapcore.WarnLevel
	case LOG_LEVEL_DEBUG:
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}

func ParseLogLevel(s string) int {
	switch strings.ToLower(s) {
	case "error":
		return LOG_LEVEL_ERROR
	case "warn":
		return LOG_LEVEL_WARN
	case "debug":
		return LOG_LEVEL_DEBUG
	default:
		return LOG_LEVEL_INFO
	}
}

func (m *MetricsLogger) logWritter() {
	defer m.wg.Done()
	for logdata := range m.logBuffer {
		switch logdata.level {
		case LOG_LEVEL_ERROR:
			m.zapLogger.Error(logdata.logMsg, logdata.fields...)
		case LOG_LEVEL_WARN:
			m.zapLogger.Warn(logdata.logMsg, logdata.fields...)
		case LOG_LEVEL_DEBUG:
			m.zapLogger.Debug(logdata.logMsg, logdata.fields...)
		default:
			m.zapLogger.Info(logdata.logMsg, logdata.fields...)
		}
	}
	_ = m.zapLogger.Sync()
}

// LogEvent accepts either a single message, logged at info, or a
// LOG_LEVEL_* constant followed by the message parts.
func (m *MetricsLogger) LogEvent(v ...interface{}) error {
	if len(v) == 0 {
		return nil
	}

	level := LOG_LEVEL_INFO
	parts := v
	if l, ok := v[0].(int); ok && len(v) > 1 && l >= LOG_LEVEL_ERROR && l <= LOG_LEVEL_DEBUG {
		level = l
		parts = v[1:]
	}

	return m.enqueue(LeveledLogger{level: level, logMsg: strings.TrimSuffix(fmt.Sprintln(parts...), "\n")})
}

// LogFields logs msg with structured zap fields.
func (m *MetricsLogger) LogFields(level int, msg string, fields ...zap.Field) error {
	return m.enqueue(LeveledLogger{level: level, logMsg: msg, fields: fields})
}

func (m *MetricsLogger) enqueue(l LeveledLogger) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.loggerInitialized {
		return ErrLogNotInitialized
	}
	m.logBuffer <- l
	return nil
}

// DeInit flushes buffered lines and closes the log file.
func (m *MetricsLogger) DeInit() {
	m.mu.Lock()
	if !m.loggerInitialized {
		m.mu.Unlock()
		return
	}
	m.loggerInitialized = false
	close(m.logBuffer)
	m.mu.Unlock()

	m.wg.Wait()

	if m.handle != nil {
		m.handle.Close()
	}
}

func CheckAndCreateLogFolder(folderNameWithPath string) error {
	_, err := os.Stat(folderNameWithPath)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(folderNameWithPath, 0755); err != nil {
			return fmt.Errorf("failed to create the log folder: %w", err)
		}
	}
	return nil
}
