package logging

import (
	"fmt"
	"os"
	"time"
)

// Level 表示日志级别
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

// Logger 是只写 stderr 的分级日志器。
// 诊断输出与 stdout 上的图表输出彻底分离，保证管道可用。
type Logger struct {
	prefix string
	level  Level
}

// NewLogger 创建一个带前缀的 Logger，默认级别 INFO
func NewLogger(prefix string) *Logger {
	return &Logger{
		prefix: prefix,
		level:  LevelInfo,
	}
}

// SetLevel 设置最低输出级别
func (l *Logger) SetLevel(level Level) {
	l.level = level
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	if level < l.level {
		return
	}

	timestamp := time.Now().Format("2006/01/02 15:04:05")
	message := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "%s [%s] %s: %s\n", timestamp, levelNames[level], l.prefix, message)
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}
