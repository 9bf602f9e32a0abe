package resolve

import (
	"go.uber.org/zap"

	"dkc/deck"
)

// Index maps matching keys (catalog identifiers or normalized names) to
// existing asset file paths. It is built elsewhere and treated as read-only
// here.
type Index map[string]string

// Lookup returns the asset path stored under key.
func (idx Index) Lookup(key string) (string, bool) {
	path, ok := idx[key]
	return path, ok
}

// CardText is the supplemental display record attached to a resolved card
// when the catalog knows its identifier.
type CardText struct {
	Name        string
	Category    string
	Attack      int
	Defense     int
	Level       int
	HasStats    bool
	Description string
}

// TextSource supplies supplemental records by catalog identifier.
type TextSource interface {
	CardText(identifier string) (CardText, bool)
}

// Strategy identifies which step of the matching chain produced an asset.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategyIdentifier
	StrategyNameExact
	StrategyPlural
	StrategyAltArt
	StrategyOverride
)

func (s Strategy) String() string {
	switch s {
	case StrategyNone:
		return "none"
	case StrategyIdentifier:
		return "identifier"
	case StrategyNameExact:
		return "name-exact"
	case StrategyPlural:
		return "plural"
	case StrategyAltArt:
		return "alt-art"
	case StrategyOverride:
		return "override"
	default:
		return "unknown"
	}
}

// Card is a deck entry after asset and supplemental resolution. ArtPath is
// empty when no strategy matched; Text is nil when the catalog has nothing.
// An entry missing both still produces a Card so downstream layout can keep
// its slot.
type Card struct {
	Entry    deck.Entry
	Key      string
	ArtPath  string
	Strategy Strategy
	Text     *CardText
}

// Unresolved reports whether the card carries neither art nor supplemental
// text.
func (c *Card) Unresolved() bool {
	return len(c.ArtPath) == 0 && c.Text == nil
}

// matchFunc is the common strategy contract: given the entry and its
// normalized name key, return an asset path from the index or report no
// match. Strategies hold no state and consult nothing but the index.
type matchFunc func(entry deck.Entry, key string, idx Index) (string, bool)

func matchIdentifier(entry deck.Entry, _ string, idx Index) (string, bool) {
	if len(entry.Identifier) == 0 {
		return "", false
	}
	return idx.Lookup(entry.Identifier)
}

func matchNameExact(_ deck.Entry, key string, idx Index) (string, bool) {
	if len(key) == 0 {
		return "", false
	}
	return idx.Lookup(key)
}

func matchPlural(_ deck.Entry, key string, idx Index) (string, bool) {
	if len(key) == 0 {
		return "", false
	}
	return idx.Lookup(key + "s")
}

func matchAltArt(_ deck.Entry, key string, idx Index) (string, bool) {
	if len(key) == 0 {
		return "", false
	}
	return idx.Lookup(key + "-alt-art")
}

// chain is tried in order; the first hit wins and later strategies are never
// consulted. Identifier matching is authoritative and outranks every name
// heuristic.
var chain = []struct {
	strategy Strategy
	match    matchFunc
}{
	{StrategyIdentifier, matchIdentifier},
	{StrategyNameExact, matchNameExact},
	{StrategyPlural, matchPlural},
	{StrategyAltArt, matchAltArt},
}

// Resolver maps parsed deck entries to assets and supplemental records.
type Resolver struct {
	index     Index
	overrides Overrides
	texts     TextSource
	log       *zap.Logger
}

// NewResolver builds a resolver over an asset index. overrides and texts may
// be nil.
func NewResolver(index Index, overrides Overrides, texts TextSource, log *zap.Logger) *Resolver {
	return &Resolver{index: index, overrides: overrides, texts: texts, log: log}
}

// ResolveEntry resolves a single entry. It always returns a card, resolved or
// not.
func (r *Resolver) ResolveEntry(entry deck.Entry) Card {
	card := Card{Entry: entry, Key: NormalizeName(entry.Name)}

	for _, s := range chain {
		if path, ok := s.match(entry, card.Key, r.index); ok {
			card.ArtPath = path
			card.Strategy = s.strategy
			break
		}
	}
	// curated corrections are consulted only after every heuristic failed
	if len(card.ArtPath) == 0 {
		if path, ok := r.overrides.lookup(card.Key, r.index); ok {
			card.ArtPath = path
			card.Strategy = StrategyOverride
		}
	}

	// supplemental data is keyed by identifier alone and does not depend on
	// the asset outcome
	if r.texts != nil && len(entry.Identifier) != 0 {
		if text, ok := r.texts.CardText(entry.Identifier); ok {
			card.Text = &text
		}
	}
	return card
}

// Resolve resolves entries in order, reporting a diagnostic for every card
// left without art and without supplemental text. Such cards are still
// returned; dropping them would misrepresent deck composition.
func (r *Resolver) Resolve(entries []deck.Entry) ([]Card, []deck.Diagnostic) {
	cards := make([]Card, 0, len(entries))
	var diags []deck.Diagnostic

	for _, entry := range entries {
		card := r.ResolveEntry(entry)
		cards = append(cards, card)
		if card.Unresolved() {
			diags = append(diags, deck.Diagnostic{
				Kind:    deck.DiagResolutionMiss,
				Line:    entry.Line,
				Section: entry.Section,
				Subject: entry.Name,
				Detail:  "no asset matched key " + card.Key + " and no catalog text available",
			})
			r.log.Warn("Card unresolved", zap.String("name", entry.Name), zap.String("key", card.Key), zap.String("id", entry.Identifier))
			continue
		}
		r.log.Debug("Card resolved",
			zap.String("name", entry.Name),
			zap.Stringer("strategy", card.Strategy),
			zap.String("art", card.ArtPath),
			zap.Bool("text", card.Text != nil))
	}
	return cards, diags
}
