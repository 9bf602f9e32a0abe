package resolve

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Overrides is the curated correction table: normalized name to the index key
// of the asset that should serve it. It repairs known naming inconsistencies
// (localized renames, near-duplicate spellings) and is consulted only after
// the whole matching chain failed. It must never lend a different card's art
// to a card that legitimately has none.
type Overrides map[string]string

// LoadOverrides reads a YAML mapping of card name to asset key. Both sides
// are renormalized on load so hand-authored entries cannot drift from the
// matching key format, and a value carrying a file extension is accepted and
// reduced to its key.
func LoadOverrides(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read override table: %w", err)
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unable to parse override table %s: %w", path, err)
	}

	ov := make(Overrides, len(raw))
	for name, target := range raw {
		target = strings.TrimSuffix(target, filepath.Ext(target))
		ov[NormalizeName(name)] = NormalizeName(target)
	}
	return ov, nil
}

// lookup resolves key through the table, honoring the existence requirement:
// an override pointing at an asset missing from the index is not a match.
func (ov Overrides) lookup(key string, idx Index) (string, bool) {
	if len(ov) == 0 {
		return "", false
	}
	target, ok := ov[key]
	if !ok {
		return "", false
	}
	return idx.Lookup(target)
}
