// Package content assembles everything known about a single deck: the parsed
// entries, their resolved assets and text, the paginated layout plan and the
// diagnostics every stage accumulated along the way.
package content

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"dkc/assets"
	"dkc/catalog"
	"dkc/config"
	"dkc/deck"
	"dkc/layout"
	"dkc/resolve"
	"dkc/state"
)

// Content is the immutable result of compiling one deck, consumed by the
// rendering backends and the reporting code.
type Content struct {
	ID           string
	SrcName      string
	DeckName     string
	OutputFormat config.OutputFmt
	Entries      []deck.Entry
	Cards        []resolve.Card
	Plan         layout.Plan
	Diags        []deck.Diagnostic
	Placeholder  []byte
}

// Pipeline holds the shared read-only collaborators built once per run and
// reused for every deck in a batch. It is safe for concurrent use.
type Pipeline struct {
	index     resolve.Index
	overrides resolve.Overrides
	texts     *catalog.Catalog
	format    config.OutputFmt
}

// NewPipeline prepares the asset index, override table and card database from
// the active configuration. A missing card database is not fatal, decks then
// compile without supplemental text.
func NewPipeline(ctx context.Context, format config.OutputFmt, log *zap.Logger) (*Pipeline, error) {
	env := state.EnvFromContext(ctx)
	p := &Pipeline{format: format}

	var err error
	if p.index, err = assets.BuildIndex(env.Cfg.Deck.Assets.Dir, log); err != nil {
		return nil, fmt.Errorf("unable to build asset index: %w", err)
	}

	if path := env.Cfg.Deck.Assets.OverridePath; len(path) != 0 {
		if p.overrides, err = resolve.LoadOverrides(path); err != nil {
			return nil, err
		}
	}

	if path := env.Cfg.Deck.Catalog.DatabasePath; len(path) != 0 {
		p.texts, err = catalog.Open(path, log)
		if err != nil {
			log.Warn("Card database unavailable, compiling without card text", zap.String("path", path), zap.Error(err))
			p.texts = nil
		}
	}

	log.Info("Pipeline prepared",
		zap.Int("assets", len(p.index)),
		zap.Int("overrides", len(p.overrides)),
		zap.Int("cards", p.texts.Len()))
	return p, nil
}

// Prepare runs the sequential stages for one deck. Diagnostics from every
// stage are accumulated on the content, never returned as errors; the only
// failure mode is unreadable input.
func (p *Pipeline) Prepare(ctx context.Context, r io.Reader, src string, log *zap.Logger) (*Content, error) {
	env := state.EnvFromContext(ctx)

	entries, diags, err := deck.Parse(r, log)
	if err != nil {
		return nil, err
	}

	resolver := resolve.NewResolver(p.index, p.overrides, p.texts, log)
	cards, resolveDiags := resolver.Resolve(entries)
	diags = append(diags, resolveDiags...)

	plan, layoutDiags := layout.Paginate(cards, env.Cfg.Deck.Page.CardsPerPage, log)
	diags = append(diags, layoutDiags...)

	return &Content{
		ID:           uuid.NewString(),
		SrcName:      src,
		DeckName:     DeckDisplayName(src),
		OutputFormat: p.format,
		Entries:      entries,
		Cards:        cards,
		Plan:         plan,
		Diags:        diags,
		Placeholder:  env.PlaceholderArt,
	}, nil
}

// Identifiers returns every distinct card identifier the pipeline saw in the
// given deck text, in first-seen order. Used by the art fetcher.
func Identifiers(r io.Reader, log *zap.Logger) ([]string, error) {
	entries, _, err := deck.Parse(r, log)
	if err != nil {
		return nil, err
	}
	var (
		ids  []string
		seen = make(map[string]struct{})
	)
	for _, entry := range entries {
		if len(entry.Identifier) == 0 {
			continue
		}
		if _, dup := seen[entry.Identifier]; dup {
			continue
		}
		seen[entry.Identifier] = struct{}{}
		ids = append(ids, entry.Identifier)
	}
	return ids, nil
}

var titleCaser = cases.Title(language.English)

// DeckDisplayName derives a human readable deck name from the source file
// name: administrative suffixes dropped, separators spaced, words titled.
// "blue_eyes_deck_cards.txt" becomes "Blue Eyes".
func DeckDisplayName(src string) string {
	name := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	name = strings.TrimSuffix(name, "_cards")
	name = strings.TrimSuffix(name, "_deck")
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	if len(name) == 0 {
		return "Deck"
	}
	return titleCaser.String(name)
}

// HeaderTitle is the text of the band above the card grid on one page.
func (c *Content) HeaderTitle(page layout.Page) string {
	title := fmt.Sprintf("%s - %s Cards", c.DeckName, page.Section)
	if !page.SectionStart {
		title = fmt.Sprintf("%s (page %d)", title, page.Number)
	}
	return title
}
