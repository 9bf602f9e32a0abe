// Package raster renders a layout plan into one PNG file per page.
package raster

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"dkc/content"
	"dkc/layout"
	"dkc/resolve"
	"dkc/state"
	"dkc/utils/images"
)

// PageFileName returns the file written for the 1-based page number of the
// given output name: "deck.png" pages become "deck-01.png", "deck-02.png".
func PageFileName(outputName string, page int) string {
	ext := filepath.Ext(outputName)
	return fmt.Sprintf("%s-%02d%s", strings.TrimSuffix(outputName, ext), page, ext)
}

// PageFilePattern returns a glob matching every page file of outputName.
func PageFilePattern(outputName string) string {
	ext := filepath.Ext(outputName)
	return strings.TrimSuffix(outputName, ext) + "-*" + ext
}

// Generate renders every page of the plan. Pixel dimensions come from the
// configured page size and raster DPI.
func Generate(ctx context.Context, c *content.Content, outputName string, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	pageCfg := env.Cfg.Deck.Page
	ptW, ptH := pageCfg.Size.Dims()
	scale := float64(env.Cfg.Deck.Raster.DPI) / 72.0

	geom := layout.NewGeometry(ptW, ptH, pageCfg.MarginPt, pageCfg.HeaderPt, pageCfg.GapPt, pageCfg.CardsPerPage, 2)

	for i, page := range c.Plan.Pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		canvas := imaging.New(pixels(ptW, scale), pixels(ptH, scale), color.White)

		drawHeader(canvas, scaleRect(geom.HeaderBox(), scale), c.HeaderTitle(page))

		for slot, card := range page.Cards {
			cell := scaleRect(geom.Cell(slot), scale)
			drawCard(canvas, cell, card, c.Placeholder, log)
		}

		name := PageFileName(outputName, i+1)
		if err := imaging.Save(canvas, name, imaging.PNGCompressionLevel(png.DefaultCompression)); err != nil {
			return fmt.Errorf("unable to save page %s: %w", name, err)
		}
		log.Debug("Page rendered", zap.String("file", name), zap.Stringer("section", page.Section), zap.Int("cards", len(page.Cards)))
	}
	return nil
}

func pixels(pt, scale float64) int {
	return int(pt*scale + 0.5)
}

func scaleRect(r layout.Rect, scale float64) image.Rectangle {
	return image.Rect(
		pixels(r.X, scale),
		pixels(r.Y, scale),
		pixels(r.X+r.W, scale),
		pixels(r.Y+r.H, scale))
}

// drawCard fills one grid cell: card art when resolved, a text tile when only
// catalog text exists, the placeholder back otherwise.
func drawCard(canvas *image.NRGBA, cell image.Rectangle, card resolve.Card, placeholder []byte, log *zap.Logger) {
	if len(card.ArtPath) != 0 {
		img, err := imaging.Open(card.ArtPath)
		if err == nil {
			drawFitted(canvas, cell, img)
			return
		}
		log.Warn("Unable to open card art, falling back to text tile", zap.String("path", card.ArtPath), zap.Error(err))
	}
	if card.Text != nil {
		drawTextTile(canvas, cell, card)
		return
	}
	drawBackTile(canvas, cell, card, placeholder, log)
}

// drawFitted scales img to fit the cell preserving aspect ratio and centers
// it.
func drawFitted(canvas *image.NRGBA, cell image.Rectangle, img image.Image) {
	fit := layout.FitRect(
		layout.Rect{X: float64(cell.Min.X), Y: float64(cell.Min.Y), W: float64(cell.Dx()), H: float64(cell.Dy())},
		float64(img.Bounds().Dx()), float64(img.Bounds().Dy()))

	resized := imaging.Resize(img, int(fit.W+0.5), int(fit.H+0.5), imaging.Lanczos)
	target := image.Rect(int(fit.X+0.5), int(fit.Y+0.5), int(fit.X+fit.W+0.5), int(fit.Y+fit.H+0.5))
	draw.Draw(canvas, target, resized, resized.Bounds().Min, draw.Over)
}

// drawTextTile renders name, stats and wrapped description inside a bordered
// cell for cards that have catalog text but no art.
func drawTextTile(canvas *image.NRGBA, cell image.Rectangle, card resolve.Card) {
	drawBorder(canvas, cell, 3, color.NRGBA{A: 255})

	pad := cell.Dx() / 20
	inner := cell.Inset(pad)

	y := inner.Min.Y + textLineHeight
	y = drawWrapped(canvas, inner, y, card.Entry.Name, color.NRGBA{A: 255})
	y += textLineHeight / 2

	text := card.Text
	if text.HasStats {
		y = drawWrapped(canvas, inner, y, fmt.Sprintf("ATK: %d / DEF: %d", text.Attack, text.Defense), color.NRGBA{R: 100, G: 100, B: 100, A: 255})
		y = drawWrapped(canvas, inner, y, fmt.Sprintf("Level: %d", text.Level), color.NRGBA{R: 100, G: 100, B: 100, A: 255})
		y += textLineHeight / 2
	}
	if len(text.Description) != 0 {
		drawWrapped(canvas, inner, y, text.Description, color.NRGBA{R: 60, G: 60, B: 60, A: 255})
	}
}

// drawBackTile renders the generic card back for entries with neither art nor
// text, with the listed name underneath so the slot stays attributable.
func drawBackTile(canvas *image.NRGBA, cell image.Rectangle, card resolve.Card, placeholder []byte, log *zap.Logger) {
	label := cell.Dy() / 10
	artCell := image.Rect(cell.Min.X, cell.Min.Y, cell.Max.X, cell.Max.Y-label)

	back, err := images.RasterizeSVGToImage(placeholder, artCell.Dx(), artCell.Dy())
	if err != nil {
		log.Warn("Unable to rasterize placeholder", zap.Error(err))
		drawBorder(canvas, cell, 3, color.NRGBA{A: 255})
	} else {
		drawFitted(canvas, artCell, back)
	}

	labelCell := image.Rect(cell.Min.X, cell.Max.Y-label, cell.Max.X, cell.Max.Y)
	drawWrapped(canvas, labelCell, labelCell.Min.Y+textLineHeight, card.Entry.Name+" (no data)", color.NRGBA{A: 255})
}

// drawHeader centers the page title in the header band.
func drawHeader(canvas *image.NRGBA, band image.Rectangle, title string) {
	w := textWidth(title)
	x := band.Min.X + (band.Dx()-w)/2
	if x < band.Min.X {
		x = band.Min.X
	}
	drawString(canvas, x, (band.Min.Y+band.Max.Y)/2, title, color.NRGBA{A: 255})
}
