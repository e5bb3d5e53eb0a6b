package rig

// MaxTranslationDepth bounds the re-expansion loop in
// ExpandTranslations. Translated text may itself contain translatable
// tokens, and a catalog with mutually referring entries would otherwise
// expand forever. Thirty-two passes is far beyond any legitimate
// nesting depth.
const MaxTranslationDepth = 32

// ExpandTranslations translates input through the installed
// SystemInterface, re-submitting the output while the host keeps
// reporting substitutions. Expansion stops when a pass makes no
// substitutions or when MaxTranslationDepth passes have run, in which
// case the last output is returned and a warning is logged.
func ExpandTranslations(input string) string {
	si := GetSystemInterface()
	text := input
	for depth := 0; depth < MaxTranslationDepth; depth++ {
		translated, count := si.TranslateString(text)
		if count == 0 {
			return translated
		}
		text = translated
	}
	Logger().Warn("translation expansion depth exceeded",
		"input", input, "depth", MaxTranslationDepth)
	return text
}
