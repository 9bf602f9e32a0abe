// Package layout turns resolved cards into an ordered plan of fixed-capacity
// grid pages. It performs no I/O and never inspects pixel data.
package layout

import (
	"go.uber.org/zap"

	"dkc/deck"
	"dkc/resolve"
)

// DefaultCapacity is the number of grid slots per page.
const DefaultCapacity = 4

// Page is one printable grid page. Cards holds at most the plan capacity;
// an under-full final page leaves the remaining slots blank.
type Page struct {
	Section      deck.Section
	Number       int // 1-based within its section
	SectionStart bool
	Cards        []resolve.Card
}

// Plan is the ordered page sequence for one deck.
type Plan struct {
	Capacity int
	Pages    []Page
}

// Paginate deduplicates cards, groups them by section in canonical order and
// packs each group into pages of the given capacity. Sections never share a
// page. Removed duplicates are reported, not silently dropped.
func Paginate(cards []resolve.Card, capacity int, log *zap.Logger) (Plan, []deck.Diagnostic) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	unique, diags := dedup(cards, log)

	groups := make(map[deck.Section][]resolve.Card)
	for _, card := range unique {
		groups[card.Entry.Section] = append(groups[card.Entry.Section], card)
	}

	plan := Plan{Capacity: capacity}
	for _, section := range deck.Sections() {
		members := groups[section]
		for i := 0; i < len(members); i += capacity {
			end := min(i+capacity, len(members))
			plan.Pages = append(plan.Pages, Page{
				Section:      section,
				Number:       i/capacity + 1,
				SectionStart: i == 0,
				Cards:        members[i:end],
			})
		}
	}

	log.Debug("Deck paginated",
		zap.Int("cards", len(unique)),
		zap.Int("pages", len(plan.Pages)),
		zap.Int("capacity", capacity))
	return plan, diags
}

// dedup drops any card whose name or resolved asset path was already emitted.
// Both tests apply independently and the first occurrence always wins. Cards
// without art never collide on the empty path.
func dedup(cards []resolve.Card, log *zap.Logger) ([]resolve.Card, []deck.Diagnostic) {
	var (
		unique    []resolve.Card
		diags     []deck.Diagnostic
		seenNames = make(map[string]struct{})
		seenArt   = make(map[string]struct{})
	)

	for _, card := range cards {
		if _, dup := seenNames[card.Entry.Name]; dup {
			diags = append(diags, deck.Diagnostic{
				Kind:    deck.DiagDuplicateName,
				Line:    card.Entry.Line,
				Section: card.Entry.Section,
				Subject: card.Entry.Name,
				Detail:  "name already listed",
			})
			log.Debug("Duplicate card name", zap.String("name", card.Entry.Name))
			continue
		}
		if len(card.ArtPath) != 0 {
			if _, dup := seenArt[card.ArtPath]; dup {
				diags = append(diags, deck.Diagnostic{
					Kind:    deck.DiagDuplicateArt,
					Line:    card.Entry.Line,
					Section: card.Entry.Section,
					Subject: card.Entry.Name,
					Detail:  "asset already placed: " + card.ArtPath,
				})
				log.Debug("Duplicate card art", zap.String("name", card.Entry.Name), zap.String("art", card.ArtPath))
				continue
			}
			seenArt[card.ArtPath] = struct{}{}
		}
		seenNames[card.Entry.Name] = struct{}{}
		unique = append(unique, card)
	}
	return unique, diags
}
