// Package logger provides leveled diagnostic logging for voltdesk on top of
// pterm. All diagnostics go to stderr so stdout stays clean for JSON and
// table output.
package logger

import (
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
)

// Log is the process-wide logger instance.
var Log = &Logger{level: LevelInfo}

// LogLevel orders the verbosity levels.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// Logger is a thin leveled facade over pterm's prefix printers.
type Logger struct {
	level LogLevel
}

func (l *Logger) Debugf(format string, args ...any) {
	if l.level <= LevelDebug {
		pterm.Debug.Printfln(format, args...)
	}
}

func (l *Logger) Infof(format string, args ...any) {
	if l.level <= LevelInfo {
		pterm.Info.Printfln(format, args...)
	}
}

func (l *Logger) Warnf(format string, args ...any) {
	if l.level <= LevelWarn {
		pterm.Warning.Printfln(format, args...)
	}
}

func (l *Logger) Errorf(format string, args ...any) {
	if l.level <= LevelError {
		pterm.Error.Printfln(format, args...)
	}
}

func (l *Logger) Fatalf(format string, args ...any) {
	pterm.Error.Printfln(format, args...)
	os.Exit(1)
}

func (l *Logger) Debug(args ...any) {
	if l.level <= LevelDebug {
		pterm.Debug.Println(args...)
	}
}

func (l *Logger) Info(args ...any) {
	if l.level <= LevelInfo {
		pterm.Info.Println(args...)
	}
}

func (l *Logger) Warn(args ...any) {
	if l.level <= LevelWarn {
		pterm.Warning.Println(args...)
	}
}

func (l *Logger) Error(args ...any) {
	if l.level <= LevelError {
		pterm.Error.Println(args...)
	}
}

func (l *Logger) Fatal(args ...any) {
	pterm.Error.Println(args...)
	os.Exit(1)
}

// SetLevel parses and applies a level name.
func SetLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug":
		Log.level = LevelDebug
	case "info":
		Log.level = LevelInfo
	case "warn", "warning":
		Log.level = LevelWarn
	case "error":
		Log.level = LevelError
	case "fatal":
		Log.level = LevelFatal
	default:
		return fmt.Errorf("invalid log level: %s", level)
	}

	return nil
}

// InitPterm points every pterm prefix printer at stderr. Interactive
// components and tables keep their defaults because they are part of the
// structured output.
func InitPterm() {
	pterm.Info.Writer = os.Stderr
	pterm.Success.Writer = os.Stderr
	pterm.Warning.Writer = os.Stderr
	pterm.Error.Writer = os.Stderr
	pterm.Debug.Writer = os.Stderr
}
