package resolve

import (
	"regexp"
	"strings"
)

var (
	parentheticalRe = regexp.MustCompile(`\s*\([^)]*\)`)
	ordinalRe       = regexp.MustCompile(`^\d+\.\s*`)
	nonKeyRe        = regexp.MustCompile(`[^\w-]`)
	hyphenRunRe     = regexp.MustCompile(`-+`)
)

// NormalizeName turns a display name into the canonical matching key used by
// asset indexes and override tables: parenthetical suffixes and leading
// ordinals removed, apostrophes dropped, spaces hyphenated, anything outside
// the word-plus-hyphen set stripped, hyphen runs collapsed, trailing hyphens
// trimmed. "Winged Beast's Roar" becomes "Winged-Beasts-Roar".
//
// Every name-based matching pass must go through this function. Keys produced
// anywhere else will drift.
func NormalizeName(name string) string {
	name = parentheticalRe.ReplaceAllString(name, "")
	name = ordinalRe.ReplaceAllString(name, "")
	name = strings.NewReplacer("'", "", "’", "", " ", "-").Replace(name)
	name = nonKeyRe.ReplaceAllString(name, "")
	name = hyphenRunRe.ReplaceAllString(name, "-")
	return strings.TrimRight(name, "-")
}
