// Package html renders a layout plan into a single self-contained HTML file,
// one print-sized page section per grid page.
package html

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"dkc/content"
	"dkc/misc"
	"dkc/resolve"
)

// stylesheet keeps the output printable: letter-proportioned pages with a 2
// column card grid, page breaks between sections.
const stylesheet = `
body { font-family: Arial, sans-serif; margin: 0; background: white; }
.page { width: 8.5in; min-height: 11in; margin: 0 auto; padding: 0.4in; box-sizing: border-box; page-break-after: always; }
.page h2 { height: 0.6in; margin: 0; text-align: center; font-size: 18pt; }
.grid { display: grid; grid-template-columns: 1fr 1fr; gap: 0.2in; }
.slot { min-height: 4.7in; display: flex; align-items: center; justify-content: center; }
.slot img { max-width: 100%; max-height: 4.7in; object-fit: contain; }
.tile { border: 2px solid #000; padding: 0.15in; width: 100%; height: 100%; box-sizing: border-box; }
.tile h3 { margin-top: 0; font-size: 12pt; }
.tile .stats { color: #646464; font-size: 10pt; }
.tile .desc { color: #3c3c3c; font-size: 9pt; white-space: pre-wrap; }
.tile.empty { border-style: dashed; color: #888; text-align: center; }
`

// Generate writes the whole deck as one HTML document. Art is referenced
// relative to the output location when possible.
func Generate(ctx context.Context, c *content.Content, outputName string, log *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := etree.NewDocument()
	doc.CreateDirective("DOCTYPE html")

	root := doc.CreateElement("html")
	root.CreateAttr("lang", "en")

	head := root.CreateElement("head")
	head.CreateElement("meta").CreateAttr("charset", "utf-8")
	generator := head.CreateElement("meta")
	generator.CreateAttr("name", "generator")
	generator.CreateAttr("content", misc.GetAppName()+" "+misc.GetVersion())
	deckID := head.CreateElement("meta")
	deckID.CreateAttr("name", "deck-id")
	deckID.CreateAttr("content", c.ID)
	head.CreateElement("title").SetText(c.DeckName)
	head.CreateElement("style").SetText(stylesheet)

	body := root.CreateElement("body")
	for _, page := range c.Plan.Pages {
		div := body.CreateElement("div")
		div.CreateAttr("class", "page")
		div.CreateElement("h2").SetText(c.HeaderTitle(page))

		grid := div.CreateElement("div")
		grid.CreateAttr("class", "grid")
		for _, card := range page.Cards {
			addSlot(grid, card, outputName, log)
		}
		// blank filler keeps the grid shape of an under-full page
		for i := len(page.Cards); i < c.Plan.Capacity; i++ {
			grid.CreateElement("div").CreateAttr("class", "slot")
		}
	}

	out, err := os.Create(outputName)
	if err != nil {
		return fmt.Errorf("unable to create output file %s: %w", outputName, err)
	}
	defer out.Close()

	doc.Indent(2)
	if _, err := doc.WriteTo(out); err != nil {
		return fmt.Errorf("unable to write output file %s: %w", outputName, err)
	}

	log.Debug("Document rendered", zap.String("file", outputName), zap.Int("pages", len(c.Plan.Pages)))
	return nil
}

func addSlot(grid *etree.Element, card resolve.Card, outputName string, log *zap.Logger) {
	slot := grid.CreateElement("div")
	slot.CreateAttr("class", "slot")

	if len(card.ArtPath) != 0 {
		img := slot.CreateElement("img")
		img.CreateAttr("src", artHref(card.ArtPath, outputName, log))
		img.CreateAttr("alt", card.Entry.Name)
		return
	}

	if card.Text != nil {
		tile := slot.CreateElement("div")
		tile.CreateAttr("class", "tile")
		tile.CreateElement("h3").SetText(card.Entry.Name)
		if card.Text.HasStats {
			stats := tile.CreateElement("div")
			stats.CreateAttr("class", "stats")
			stats.SetText(fmt.Sprintf("ATK: %d / DEF: %d · Level: %d", card.Text.Attack, card.Text.Defense, card.Text.Level))
		}
		if len(card.Text.Description) != 0 {
			desc := tile.CreateElement("div")
			desc.CreateAttr("class", "desc")
			desc.SetText(card.Text.Description)
		}
		return
	}

	tile := slot.CreateElement("div")
	tile.CreateAttr("class", "tile empty")
	tile.CreateElement("h3").SetText(card.Entry.Name)
	tile.CreateElement("div").SetText("no card data available")
}

// artHref prefers a path relative to the document so the output directory
// stays relocatable together with its art.
func artHref(artPath, outputName string, log *zap.Logger) string {
	rel, err := filepath.Rel(filepath.Dir(outputName), artPath)
	if err != nil {
		log.Debug("Unable to relativize art path", zap.String("art", artPath), zap.Error(err))
		return filepath.ToSlash(artPath)
	}
	return filepath.ToSlash(rel)
}
