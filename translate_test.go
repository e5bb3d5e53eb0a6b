package rig

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// catalogSystem performs one pass of token substitution per
// TranslateString call, reporting how many tokens it replaced.
type catalogSystem struct {
	DefaultSystemInterface
	catalog map[string]string
	calls   int
}

func (s *catalogSystem) TranslateString(input string) (string, int) {
	s.calls++
	out := input
	count := 0
	for token, replacement := range s.catalog {
		n := strings.Count(out, token)
		if n > 0 {
			out = strings.ReplaceAll(out, token, replacement)
			count += n
		}
	}
	return out, count
}

func TestExpandTranslationsPassThrough(t *testing.T) {
	cs := &catalogSystem{catalog: map[string]string{}}
	SetSystemInterface(cs)
	defer SetSystemInterface(nil)

	input := "plain text with no tokens"
	if got := ExpandTranslations(input); got != input {
		t.Errorf("ExpandTranslations(%q) = %q, want input unchanged", input, got)
	}
	if cs.calls != 1 {
		t.Errorf("TranslateString called %d times, want 1", cs.calls)
	}
}

func TestExpandTranslationsSinglePass(t *testing.T) {
	cs := &catalogSystem{catalog: map[string]string{
		"[[title]]": "Settings",
	}}
	SetSystemInterface(cs)
	defer SetSystemInterface(nil)

	got := ExpandTranslations("Window: [[title]]")
	if want := "Window: Settings"; got != want {
		t.Errorf("ExpandTranslations() = %q, want %q", got, want)
	}
}

func TestExpandTranslationsNested(t *testing.T) {
	cs := &catalogSystem{catalog: map[string]string{
		"[[greeting]]": "[[hello]], [[name]]",
		"[[hello]]":    "Hello",
		"[[name]]":     "world",
	}}
	SetSystemInterface(cs)
	defer SetSystemInterface(nil)

	got := ExpandTranslations("[[greeting]]")
	if want := "Hello, world"; got != want {
		t.Errorf("ExpandTranslations() = %q, want %q", got, want)
	}
}

func TestExpandTranslationsDepthBound(t *testing.T) {
	// A self-referring catalog entry would expand forever without the
	// depth bound.
	cs := &catalogSystem{catalog: map[string]string{
		"[[loop]]": "x[[loop]]",
	}}
	SetSystemInterface(cs)
	defer SetSystemInterface(nil)

	got := ExpandTranslations("[[loop]]")
	if cs.calls != MaxTranslationDepth {
		t.Errorf("TranslateString called %d times, want %d", cs.calls, MaxTranslationDepth)
	}
	if want := strings.Repeat("x", MaxTranslationDepth) + "[[loop]]"; got != want {
		t.Errorf("ExpandTranslations() = %q, want %q", got, want)
	}
}

func TestTranslationIdentityProperty(t *testing.T) {
	cs := &catalogSystem{catalog: map[string]string{}}
	SetSystemInterface(cs)
	defer SetSystemInterface(nil)

	properties := gopter.NewProperties(nil)
	properties.Property("empty catalog expansion is the identity", prop.ForAll(
		func(input string) bool {
			return ExpandTranslations(input) == input
		},
		gen.AnyString(),
	))
	properties.TestingRun(t)
}
