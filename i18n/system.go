package i18n

import (
	"time"

	"github.com/gogui/rig"
)

// SystemInterface is a rig.SystemInterface backed by a Catalog. Time
// and logging behave like the rig default; TranslateString performs one
// catalog expansion pass per call and reports the substitution count,
// leaving recursive re-expansion to the core.
type SystemInterface struct {
	catalog *Catalog
	start   time.Time
}

// NewSystemInterface creates a system interface over the given catalog.
func NewSystemInterface(catalog *Catalog) *SystemInterface {
	return &SystemInterface{catalog: catalog, start: time.Now()}
}

// Catalog returns the underlying catalog.
func (s *SystemInterface) Catalog() *Catalog { return s.catalog }

// GetElapsedTime implements rig.SystemInterface.
func (s *SystemInterface) GetElapsedTime() float64 {
	return time.Since(s.start).Seconds()
}

// TranslateString implements rig.SystemInterface.
func (s *SystemInterface) TranslateString(input string) (string, int) {
	return s.catalog.Expand(input)
}

// LogMessage implements rig.SystemInterface, forwarding to the rig
// package logger. It never requests an interrupt.
func (s *SystemInterface) LogMessage(logType rig.LogType, message string) bool {
	switch logType {
	case rig.LogError, rig.LogAssert:
		rig.Logger().Error(message, "type", logType.String())
	case rig.LogWarning:
		rig.Logger().Warn(message)
	case rig.LogInfo:
		rig.Logger().Info(message)
	default:
		rig.Logger().Debug(message)
	}
	return true
}
