package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Level уровень логирования
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Logger простой уровневый логгер, пишет одновременно в stdout и файл
type Logger struct {
	level Level
	out   *log.Logger
	file  *os.File
}

// New создает логгер с записью в файл filePath и уровнем level (debug|info|warn|error)
// Директория файла создается автоматически
func New(filePath, level string) (*Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return nil, fmt.Errorf("logger: failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logger: failed to open log file: %w", err)
	}

	return &Logger{
		level: lvl,
		out:   log.New(io.MultiWriter(os.Stdout, file), "", log.LstdFlags|log.Lmicroseconds),
		file:  file,
	}, nil
}

func parseLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return 0, fmt.Errorf("logger: unknown log level %q", level)
	}
}

// Close закрывает файл логов
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func (l *Logger) logf(lvl Level, prefix, format string, v ...interface{}) {
	if lvl < l.level {
		return
	}
	l.out.Printf(prefix+" "+format, v...)
}

// Debug пишет сообщение уровня DEBUG
func (l *Logger) Debug(format string, v ...interface{}) {
	l.logf(LevelDebug, "[DEBUG]", format, v...)
}

// Info пишет сообщение уровня INFO
func (l *Logger) Info(format string, v ...interface{}) {
	l.logf(LevelInfo, "[INFO]", format, v...)
}

// Warn пишет сообщение уровня WARN
func (l *Logger) Warn(format string, v ...interface{}) {
	l.logf(LevelWarn, "[WARN]", format, v...)
}

// Error пишет сообщение уровня ERROR
func (l *Logger) Error(format string, v ...interface{}) {
	l.logf(LevelError, "[ERROR]", format, v...)
}

// Fatal пишет сообщение уровня ERROR и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.logf(LevelError, "[FATAL]", format, v...)
	l.Close()
	os.Exit(1)
}
