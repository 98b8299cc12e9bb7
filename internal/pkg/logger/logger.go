package logger

import (
	"fmt"
	"log"
	"os"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	FATAL
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

type Logger struct {
	level Level
	log   *log.Logger
}

func New(level Level) *Logger {
	return &Logger{
		level: level,
		log:   log.New(os.Stdout, "", log.LstdFlags),
	}
}

func (l *Logger) print(level Level, format string, v ...interface{}) {
	if level < l.level {
		return
	}
	msg := fmt.Sprintf("[%s] %s", levelNames[level], fmt.Sprintf(format, v...))
	if level == FATAL {
		l.log.Fatal(msg)
		return
	}
	l.log.Print(msg)
}

func (l *Logger) Debug(format string, v ...interface{}) { l.print(DEBUG, format, v...) }
func (l *Logger) Info(format string, v ...interface{})  { l.print(INFO, format, v...) }
func (l *Logger) Warn(format string, v ...interface{})  { l.print(WARN, format, v...) }
func (l *Logger) Error(format string, v ...interface{}) { l.print(ERROR, format, v...) }
func (l *Logger) Fatal(format string, v ...interface{}) { l.print(FATAL, format, v...) }

// SetLevel changes the logging level
func (l *Logger) SetLevel(level Level) { l.level = level }

var defaultLogger = New(INFO)

// Package-level functions for easy access
func Debug(format string, v ...interface{}) { defaultLogger.Debug(format, v...) }
func Info(format string, v ...interface{})  { defaultLogger.Info(format, v...) }
func Warn(format string, v ...interface{})  { defaultLogger.Warn(format, v...) }
func Error(format string, v ...interface{}) { defaultLogger.Error(format, v...) }
func Fatal(format string, v ...interface{}) { defaultLogger.Fatal(format, v...) }

// SetGlobalLevel sets the level for the global logger
func SetGlobalLevel(level Level) { defaultLogger.SetLevel(level) }
