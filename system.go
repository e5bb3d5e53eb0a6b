package rig

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// LogType is the severity of a message routed through
// SystemInterface.LogMessage.
type LogType int

const (
	// LogError reports an unrecoverable problem in the core.
	LogError LogType = iota
	// LogAssert reports a failed internal consistency check. A host that
	// returns false from LogMessage for an assert asks the caller to
	// break into the debugger or halt.
	LogAssert
	// LogWarning reports a recoverable problem, such as a missing asset.
	LogWarning
	// LogInfo reports general progress information.
	LogInfo
	// LogDebug reports verbose diagnostics, compiled out of release
	// builds of most hosts.
	LogDebug
)

// String returns the lowercase name of the log type.
func (t LogType) String() string {
	switch t {
	case LogError:
		return "error"
	case LogAssert:
		return "assert"
	case LogWarning:
		return "warning"
	case LogInfo:
		return "info"
	case LogDebug:
		return "debug"
	default:
		return fmt.Sprintf("logtype(%d)", int(t))
	}
}

// slogLevel maps a LogType onto the slog level used by the default
// system interface. Asserts log as errors.
func (t LogType) slogLevel() slog.Level {
	switch t {
	case LogError, LogAssert:
		return slog.LevelError
	case LogWarning:
		return slog.LevelWarn
	case LogInfo:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// SystemInterface provides clock, translation, and logging services to
// the core. The host supplies an implementation at startup; the default
// uses the process clock, performs no translation, and logs through the
// package logger.
type SystemInterface interface {
	// GetElapsedTime returns seconds elapsed since the host started,
	// strictly non-decreasing across calls. The core uses it to drive
	// animations and input timing; it must not jump backwards when the
	// wall clock is adjusted.
	GetElapsedTime() float64

	// TranslateString translates input into the host's current locale,
	// returning the translated text and the number of substitutions
	// made. A host with no translation for input returns the input
	// unchanged with a count of zero. Translated text may itself contain
	// translatable tokens; the core re-submits such output, so hosts
	// need not expand recursively themselves.
	TranslateString(input string) (string, int)

	// LogMessage logs a message at the given severity. The return value
	// is an interrupt request: false asks the core to halt execution at
	// the log site, which hosts typically reserve for failed asserts.
	LogMessage(logType LogType, message string) bool
}

// DefaultSystemInterface is the fallback SystemInterface. Elapsed time
// is measured from construction using the monotonic clock, translation
// is the identity, and messages go to the package logger.
type DefaultSystemInterface struct {
	start time.Time
}

// NewDefaultSystemInterface creates a system interface whose elapsed
// time starts at zero now.
func NewDefaultSystemInterface() *DefaultSystemInterface {
	return &DefaultSystemInterface{start: time.Now()}
}

// GetElapsedTime implements SystemInterface. time.Since uses the
// monotonic clock reading carried by the start time, so the result
// never decreases even if the wall clock is stepped.
func (s *DefaultSystemInterface) GetElapsedTime() float64 {
	return time.Since(s.start).Seconds()
}

// TranslateString implements SystemInterface as the identity.
func (s *DefaultSystemInterface) TranslateString(input string) (string, int) {
	return input, 0
}

// LogMessage implements SystemInterface, forwarding to the package
// logger. It always returns true: the default host never requests an
// interrupt.
func (s *DefaultSystemInterface) LogMessage(logType LogType, message string) bool {
	Logger().Log(context.Background(), logType.slogLevel(), message, "source", "core")
	return true
}

// Log formats a message and routes it through the installed
// SystemInterface. It returns the interrupt request from LogMessage so
// call sites can honor a host's halt decision on asserts.
func Log(logType LogType, format string, args ...any) bool {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return GetSystemInterface().LogMessage(logType, msg)
}
