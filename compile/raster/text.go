package raster

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// textLineHeight leaves breathing room around the fixed 7x13 face.
const textLineHeight = 16

func textWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}

// drawString draws one line with its baseline at y.
func drawString(canvas *image.NRGBA, x, y int, s string, col color.Color) {
	d := font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// drawWrapped word-wraps text into the box starting at baseline y and
// returns the baseline following the last drawn line. Lines that would fall
// below the box are dropped.
func drawWrapped(canvas *image.NRGBA, box image.Rectangle, y int, text string, col color.Color) int {
	words := strings.Fields(text)
	if len(words) == 0 {
		return y
	}

	line := words[0]
	for _, word := range words[1:] {
		if textWidth(line+" "+word) > box.Dx() {
			if y > box.Max.Y {
				return y
			}
			drawString(canvas, box.Min.X, y, line, col)
			y += textLineHeight
			line = word
			continue
		}
		line += " " + word
	}
	if y <= box.Max.Y {
		drawString(canvas, box.Min.X, y, line, col)
		y += textLineHeight
	}
	return y
}

// drawBorder strokes the rectangle outline with the given width in pixels.
func drawBorder(canvas *image.NRGBA, r image.Rectangle, width int, col color.Color) {
	src := image.NewUniform(col)
	draw.Draw(canvas, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width), src, image.Point{}, draw.Src)
	draw.Draw(canvas, image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(canvas, image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(canvas, image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y), src, image.Point{}, draw.Src)
}
