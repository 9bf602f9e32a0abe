package raster

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"go.uber.org/zap/zaptest"

	"dkc/config"
	"dkc/content"
	"dkc/deck"
	"dkc/layout"
	"dkc/resolve"
	"dkc/state"
)

func testContext(t *testing.T) context.Context {
	t.Helper()

	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)

	var err error
	if env.Cfg, err = config.LoadConfiguration(""); err != nil {
		t.Fatalf("unable to load default configuration: %v", err)
	}
	env.Log = zaptest.NewLogger(t)
	return ctx
}

func testContent(t *testing.T, ctx context.Context, cards []resolve.Card) *content.Content {
	t.Helper()

	env := state.EnvFromContext(ctx)
	plan, _ := layout.Paginate(cards, env.Cfg.Deck.Page.CardsPerPage, env.Log)
	return &content.Content{
		ID:           "test",
		SrcName:      "test_deck.txt",
		DeckName:     "Test",
		OutputFormat: config.OutputFmtPng,
		Cards:        cards,
		Plan:         plan,
		Placeholder:  env.PlaceholderArt,
	}
}

func TestPageFileNames(t *testing.T) {
	if got := PageFileName("/out/deck.png", 1); got != "/out/deck-01.png" {
		t.Errorf("PageFileName = %q", got)
	}
	if got := PageFileName("/out/deck.png", 12); got != "/out/deck-12.png" {
		t.Errorf("PageFileName = %q", got)
	}
	match, err := filepath.Match(filepath.Base(PageFilePattern("/out/deck.png")), "deck-03.png")
	if err != nil || !match {
		t.Errorf("pattern does not match page files: %v", err)
	}
}

func TestGenerate(t *testing.T) {
	ctx := testContext(t)
	env := state.EnvFromContext(ctx)
	dir := t.TempDir()

	art := filepath.Join(dir, "art.jpg")
	if err := imaging.Save(imaging.New(42, 61, color.NRGBA{R: 200, A: 255}), art); err != nil {
		t.Fatal(err)
	}

	cards := []resolve.Card{
		{Entry: deck.Entry{Name: "With Art", Count: 1, Section: deck.SectionMonster}, ArtPath: art, Strategy: resolve.StrategyNameExact},
		{Entry: deck.Entry{Name: "Text Only", Count: 1, Section: deck.SectionMonster},
			Text: &resolve.CardText{Name: "Text Only", Category: "Monster", Attack: 1200, Defense: 800, Level: 4, HasStats: true,
				Description: "A monster defined entirely by its written effect, wrapped over several lines of tile text."}},
		{Entry: deck.Entry{Name: "Nothing Known", Count: 1, Section: deck.SectionMonster}},
		{Entry: deck.Entry{Name: "Lone Trap", Count: 1, Section: deck.SectionTrap}},
	}

	out := filepath.Join(dir, "deck.png")
	if err := Generate(ctx, testContent(t, ctx, cards), out, env.Log); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// monsters and the trap land on separate pages
	for _, name := range []string{"deck-01.png", "deck-02.png"} {
		page, err := imaging.Open(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("page %s missing: %v", name, err)
		}
		// letter at 150 DPI
		if page.Bounds().Dx() != 1275 || page.Bounds().Dy() != 1650 {
			t.Errorf("page %s dimensions %v", name, page.Bounds())
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "deck-03.png")); err == nil {
		t.Error("unexpected third page")
	}
}

func TestGenerateCancelled(t *testing.T) {
	ctx := testContext(t)
	env := state.EnvFromContext(ctx)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()

	cards := []resolve.Card{{Entry: deck.Entry{Name: "Card", Count: 1, Section: deck.SectionSpell}}}
	err := Generate(cancelled, testContent(t, ctx, cards), filepath.Join(t.TempDir(), "deck.png"), env.Log)
	if err == nil {
		t.Fatal("expected cancellation error")
	}
}
