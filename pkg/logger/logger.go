package logger

import (
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	InfoLogger  *log.Logger
	ErrorLogger *log.Logger
	DebugLogger *log.Logger
	WarnLogger  *log.Logger

	level atomic.Int32
)

func init() {
	InfoLogger = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	DebugLogger = log.New(os.Stdout, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarnLogger = log.New(os.Stdout, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	level.Store(int32(LevelInfo))
}

// SetLevel accepts debug, info, warn or error. Unknown names fall back to info.
func SetLevel(name string) {
	switch strings.ToLower(name) {
	case "debug":
		level.Store(int32(LevelDebug))
	case "warn":
		level.Store(int32(LevelWarn))
	case "error":
		level.Store(int32(LevelError))
	default:
		level.Store(int32(LevelInfo))
	}
}

// SetOutput redirects every level to w. Used by tests.
func SetOutput(w io.Writer) {
	InfoLogger.SetOutput(w)
	ErrorLogger.SetOutput(w)
	DebugLogger.SetOutput(w)
	WarnLogger.SetOutput(w)
}

func enabled(l Level) bool {
	return Level(level.Load()) <= l
}

// calldepth 2 keeps Lshortfile pointing at the caller instead of this file.
func Info(format string, v ...interface{}) {
	if enabled(LevelInfo) {
		_ = InfoLogger.Output(2, sprintf(format, v...))
	}
}

func Error(format string, v ...interface{}) {
	if enabled(LevelError) {
		_ = ErrorLogger.Output(2, sprintf(format, v...))
	}
}

func Debug(format string, v ...interface{}) {
	if enabled(LevelDebug) {
		_ = DebugLogger.Output(2, sprintf(format, v...))
	}
}

func Warn(format string, v ...interface{}) {
	if enabled(LevelWarn) {
		_ = WarnLogger.Output(2, sprintf(format, v...))
	}
}
