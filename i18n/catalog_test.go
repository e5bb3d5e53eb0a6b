package i18n

import (
	"testing"

	"golang.org/x/text/language"

	"github.com/gogui/rig"
)

func testCatalog() *Catalog {
	c := NewCatalog()
	c.SetAll(language.English, map[string]string{
		"hello":    "Hello",
		"world":    "world",
		"greeting": "[[hello]], [[world]]!",
	})
	c.SetAll(language.German, map[string]string{
		"hello":    "Hallo",
		"world":    "Welt",
		"greeting": "[[hello]], [[world]]!",
	})
	return c
}

func TestCatalogLookup(t *testing.T) {
	c := testCatalog()
	c.SelectLocale("de")

	text, ok := c.Lookup("hello")
	if !ok {
		t.Fatal("Lookup(hello) not found")
	}
	if text != "Hallo" {
		t.Errorf("Lookup(hello) = %q, want %q", text, "Hallo")
	}

	if _, ok := c.Lookup("nonexistent"); ok {
		t.Error("Lookup(nonexistent) found")
	}
}

func TestCatalogLocaleMatching(t *testing.T) {
	c := testCatalog()

	tests := []struct {
		name      string
		preferred []string
		want      language.Tag
	}{
		{"exact", []string{"de"}, language.German},
		{"regional variant falls back", []string{"de-AT"}, language.German},
		{"first preference wins", []string{"de", "en"}, language.German},
		{"unknown falls back to first catalog language", []string{"ja"}, language.English},
		{"unparseable tags are skipped", []string{"!!", "de"}, language.German},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.SelectLocale(tt.preferred...); got != tt.want {
				t.Errorf("SelectLocale(%v) = %v, want %v", tt.preferred, got, tt.want)
			}
		})
	}
}

func TestCatalogEmptySelect(t *testing.T) {
	c := NewCatalog()
	if got := c.SelectLocale("en"); got != language.Und {
		t.Errorf("SelectLocale() on empty catalog = %v, want Und", got)
	}
}

func TestExpandSinglePass(t *testing.T) {
	c := testCatalog()
	c.SelectLocale("en")

	tests := []struct {
		input     string
		want      string
		wantCount int
	}{
		{"no tokens", "no tokens", 0},
		{"[[hello]]", "Hello", 1},
		{"[[hello]] [[world]]", "Hello world", 2},
		{"[[missing]] stays", "[[missing]] stays", 0},
		{"unterminated [[token", "unterminated [[token", 0},
		{"[[greeting]]", "[[hello]], [[world]]!", 1},
	}
	for _, tt := range tests {
		got, count := c.Expand(tt.input)
		if got != tt.want || count != tt.wantCount {
			t.Errorf("Expand(%q) = (%q, %d), want (%q, %d)",
				tt.input, got, count, tt.want, tt.wantCount)
		}
	}
}

func TestSystemInterfaceRecursiveExpansion(t *testing.T) {
	c := testCatalog()
	c.SelectLocale("de")

	rig.SetSystemInterface(NewSystemInterface(c))
	defer rig.SetSystemInterface(nil)

	// The core re-submits until a pass makes no substitutions, so the
	// nested greeting fully expands.
	got := rig.ExpandTranslations("[[greeting]]")
	if want := "Hallo, Welt!"; got != want {
		t.Errorf("ExpandTranslations() = %q, want %q", got, want)
	}
}

func TestSystemInterfaceContract(t *testing.T) {
	si := NewSystemInterface(testCatalog())

	first := si.GetElapsedTime()
	second := si.GetElapsedTime()
	if first < 0 || second < first {
		t.Errorf("GetElapsedTime() not monotonic: %v then %v", first, second)
	}

	for _, lt := range []rig.LogType{rig.LogError, rig.LogAssert, rig.LogWarning, rig.LogInfo, rig.LogDebug} {
		if !si.LogMessage(lt, "message") {
			t.Errorf("LogMessage(%v) = false, want true", lt)
		}
	}
}

func TestExpandMemoization(t *testing.T) {
	c := testCatalog()
	c.SelectLocale("en")

	got, count := c.Expand("[[hello]]")
	if got != "Hello" || count != 1 {
		t.Fatalf("Expand() = (%q, %d), want (Hello, 1)", got, count)
	}
	// Same input again is served from the memo.
	c.Expand("[[hello]]")

	// Catalog edits invalidate memoized expansions.
	c.Set(language.English, "hello", "Hi")
	if got, _ := c.Expand("[[hello]]"); got != "Hi" {
		t.Errorf("Expand() after Set = %q, want Hi", got)
	}

	// So does switching locale.
	c.SelectLocale("de")
	if got, _ := c.Expand("[[hello]]"); got != "Hallo" {
		t.Errorf("Expand() after SelectLocale = %q, want Hallo", got)
	}
}
