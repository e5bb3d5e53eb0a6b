package rig

import (
	"testing"
	"time"
)

func TestLogTypeString(t *testing.T) {
	tests := []struct {
		logType LogType
		want    string
	}{
		{LogError, "error"},
		{LogAssert, "assert"},
		{LogWarning, "warning"},
		{LogInfo, "info"},
		{LogDebug, "debug"},
		{LogType(99), "logtype(99)"},
	}
	for _, tt := range tests {
		if got := tt.logType.String(); got != tt.want {
			t.Errorf("LogType(%d).String() = %q, want %q", int(tt.logType), got, tt.want)
		}
	}
}

func TestDefaultSystemInterfaceElapsedTime(t *testing.T) {
	si := NewDefaultSystemInterface()

	first := si.GetElapsedTime()
	if first < 0 {
		t.Errorf("GetElapsedTime() = %v, want >= 0", first)
	}
	time.Sleep(time.Millisecond)
	second := si.GetElapsedTime()
	if second < first {
		t.Errorf("GetElapsedTime() decreased: %v then %v", first, second)
	}

	// Repeated calls without sleeping are still non-decreasing.
	prev := si.GetElapsedTime()
	for i := 0; i < 1000; i++ {
		now := si.GetElapsedTime()
		if now < prev {
			t.Fatalf("GetElapsedTime() decreased: %v then %v", prev, now)
		}
		prev = now
	}
}

func TestDefaultSystemInterfaceTranslate(t *testing.T) {
	si := NewDefaultSystemInterface()

	for _, input := range []string{"", "hello", "[[token]] text", "ünïcôde"} {
		got, count := si.TranslateString(input)
		if got != input {
			t.Errorf("TranslateString(%q) = %q, want input unchanged", input, got)
		}
		if count != 0 {
			t.Errorf("TranslateString(%q) count = %d, want 0", input, count)
		}
	}
}

func TestDefaultSystemInterfaceLogMessage(t *testing.T) {
	si := NewDefaultSystemInterface()
	for _, lt := range []LogType{LogError, LogAssert, LogWarning, LogInfo, LogDebug} {
		if !si.LogMessage(lt, "message") {
			t.Errorf("LogMessage(%v) = false, want true", lt)
		}
	}
}

// haltingSystem requests an interrupt for asserts, like a host that
// breaks into the debugger.
type haltingSystem struct {
	DefaultSystemInterface
	messages []string
}

func (s *haltingSystem) LogMessage(logType LogType, message string) bool {
	s.messages = append(s.messages, message)
	return logType != LogAssert
}

func TestLogRoutesThroughSystemInterface(t *testing.T) {
	hs := &haltingSystem{}
	SetSystemInterface(hs)
	defer SetSystemInterface(nil)

	if !Log(LogInfo, "count = %d", 7) {
		t.Error("Log(LogInfo) = false, want true")
	}
	if Log(LogAssert, "invariant broken") {
		t.Error("Log(LogAssert) = true, want interrupt request")
	}

	want := []string{"count = 7", "invariant broken"}
	if len(hs.messages) != len(want) {
		t.Fatalf("got %d messages, want %d", len(hs.messages), len(want))
	}
	for i := range want {
		if hs.messages[i] != want[i] {
			t.Errorf("message[%d] = %q, want %q", i, hs.messages[i], want[i])
		}
	}
}

func TestString16RoundTripBasic(t *testing.T) {
	tests := []struct {
		input string
		units int
	}{
		{"", 0},
		{"ascii", 5},
		{"héllo", 5},
		{"日本語", 3},
		{"emoji \U0001F600", 8},
	}
	for _, tt := range tests {
		s16 := NewString16(tt.input)
		if s16.Len() != tt.units {
			t.Errorf("NewString16(%q).Len() = %d, want %d", tt.input, s16.Len(), tt.units)
		}
		if got := s16.String(); got != tt.input {
			t.Errorf("String16 round trip of %q = %q", tt.input, got)
		}
	}
}
