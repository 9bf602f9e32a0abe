// Package deck parses human-authored deck list text into typed card entries.
//
// Deck lists are loosely structured: section headers in a handful of known
// spellings, numbered card lines with optional catalog ID and copy count
// annotations, and free-form commentary in between. Parsing is deliberately
// lenient - anything not recognized is skipped and reported, never fatal.
package deck

import "fmt"

// Section is a canonical deck list grouping.
type Section int

const (
	// SectionNone marks lines seen before any section header.
	SectionNone Section = iota
	SectionExtraDeck
	SectionMonster
	SectionSpell
	SectionTrap
)

func (s Section) String() string {
	switch s {
	case SectionExtraDeck:
		return "Extra Deck"
	case SectionMonster:
		return "Monster"
	case SectionSpell:
		return "Spell"
	case SectionTrap:
		return "Trap"
	default:
		return "None"
	}
}

// Monsterlike reports whether the section is laid out as a monster section.
// Extra Deck keeps its own tag for page break purposes but legacy callers
// treat its cards as monsters.
func (s Section) Monsterlike() bool {
	return s == SectionExtraDeck || s == SectionMonster
}

// Sections lists canonical section emission order.
func Sections() []Section {
	return []Section{SectionExtraDeck, SectionMonster, SectionSpell, SectionTrap}
}

// Entry is one parsed card line.
type Entry struct {
	Ordinal    int     // positive, as written; used only for diagnostics
	Name       string  // verbatim except surrounding whitespace
	Identifier string  // external catalog key, may be empty
	Count      int     // number of copies, 1 when not specified
	Section    Section // inherited from tokenizer state at parse time
	Line       int     // 1-based source line
}

func (e Entry) String() string {
	if len(e.Identifier) != 0 {
		return fmt.Sprintf("%s [%s]", e.Name, e.Identifier)
	}
	return e.Name
}
