// Package i18n provides a translation catalog and a system interface
// that expands [[key]] tokens through it.
//
// Catalogs hold entries per language; lookup picks the best catalog for
// the host's locale with golang.org/x/text language matching, so a host
// running under "en-AU" falls back to "en" entries. Translated text may
// itself contain tokens, which the core re-expands.
package i18n

import (
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/gogui/rig/cache"
)

// tokenOpen and tokenClose delimit a translatable token in text.
const (
	tokenOpen  = "[["
	tokenClose = "]]"
)

// expansion is a memoized Expand result.
type expansion struct {
	text  string
	count int
}

// Catalog maps translation keys to text, per language. Safe for
// concurrent use.
type Catalog struct {
	mu       sync.RWMutex
	tags     []language.Tag
	entries  map[language.Tag]map[string]string
	matcher  language.Matcher
	selected language.Tag

	// expansions memoizes Expand per input string; any catalog or
	// locale change drops it.
	expansions *cache.Cache[string, expansion]
}

// NewCatalog creates an empty catalog with no selected language.
func NewCatalog() *Catalog {
	return &Catalog{
		entries:    make(map[language.Tag]map[string]string),
		expansions: cache.New[string, expansion](cache.DefaultCapacity),
	}
}

// Set adds or replaces an entry for a language.
func (c *Catalog) Set(tag language.Tag, key, text string) {
	c.mu.Lock()
	m, ok := c.entries[tag]
	if !ok {
		m = make(map[string]string)
		c.entries[tag] = m
		c.tags = append(c.tags, tag)
		c.matcher = language.NewMatcher(c.tags)
	}
	m[key] = text
	c.mu.Unlock()

	c.expansions.Clear()
}

// SetAll adds or replaces a batch of entries for a language.
func (c *Catalog) SetAll(tag language.Tag, entries map[string]string) {
	for key, text := range entries {
		c.Set(tag, key, text)
	}
}

// SelectLocale picks the catalog language best matching the host's
// locale preferences, in order. Returns the chosen tag; language.Und
// if the catalog is empty.
func (c *Catalog) SelectLocale(preferred ...string) language.Tag {
	c.mu.Lock()
	if c.matcher == nil {
		c.selected = language.Und
		c.mu.Unlock()
		return language.Und
	}

	prefs := make([]language.Tag, 0, len(preferred))
	for _, p := range preferred {
		tag, err := language.Parse(p)
		if err != nil {
			continue
		}
		prefs = append(prefs, tag)
	}

	_, index, _ := c.matcher.Match(prefs...)
	selected := c.tags[index]
	c.selected = selected
	c.mu.Unlock()

	c.expansions.Clear()
	return selected
}

// Selected returns the currently selected catalog language.
func (c *Catalog) Selected() language.Tag {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selected
}

// Lookup returns the text for a key in the selected language.
func (c *Catalog) Lookup(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	m, ok := c.entries[c.selected]
	if !ok {
		return "", false
	}
	text, ok := m[key]
	return text, ok
}

// Expand performs one pass of [[key]] substitution over input,
// returning the result and the number of tokens replaced. Tokens
// without a catalog entry are left in place and not counted, so
// repeated expansion terminates. Substituted text is not rescanned
// within the same pass; callers re-submit the output to expand nested
// tokens.
func (c *Catalog) Expand(input string) (string, int) {
	if !strings.Contains(input, tokenOpen) {
		return input, 0
	}
	if e, ok := c.expansions.Get(input); ok {
		return e.text, e.count
	}

	text, count := c.expand(input)
	c.expansions.Set(input, expansion{text: text, count: count})
	return text, count
}

func (c *Catalog) expand(input string) (string, int) {
	var b strings.Builder
	b.Grow(len(input))
	count := 0
	rest := input

	for {
		open := strings.Index(rest, tokenOpen)
		if open < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.Index(rest[open:], tokenClose)
		if end < 0 {
			b.WriteString(rest)
			break
		}
		end += open

		key := rest[open+len(tokenOpen) : end]
		if text, ok := c.Lookup(key); ok {
			b.WriteString(rest[:open])
			b.WriteString(text)
			count++
		} else {
			b.WriteString(rest[:end+len(tokenClose)])
		}
		rest = rest[end+len(tokenClose):]
	}

	return b.String(), count
}
