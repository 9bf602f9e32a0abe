package layout

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func letterGeometry() Geometry {
	// letter page, 0.4in margins, 0.6in header band, 0.2in gaps
	return NewGeometry(612, 792, 28.8, 43.2, 14.4, 4, 2)
}

func TestCellSize(t *testing.T) {
	g := letterGeometry()
	w, h := g.CellSize()
	if !approx(w, 270.0) {
		t.Errorf("cell width = %v, want 270", w)
	}
	if !approx(h, 338.4) {
		t.Errorf("cell height = %v, want 338.4", h)
	}
}

func TestCellPositions(t *testing.T) {
	g := letterGeometry()
	w, h := g.CellSize()

	tests := []struct {
		slot int
		x, y float64
	}{
		{0, 28.8, 72.0},                       // top-left
		{1, 28.8 + w + 14.4, 72.0},            // top-right
		{2, 28.8, 72.0 + h + 14.4},            // bottom-left
		{3, 28.8 + w + 14.4, 72.0 + h + 14.4}, // bottom-right
	}
	for _, tc := range tests {
		cell := g.Cell(tc.slot)
		if !approx(cell.X, tc.x) || !approx(cell.Y, tc.y) {
			t.Errorf("slot %d at (%v,%v), want (%v,%v)", tc.slot, cell.X, cell.Y, tc.x, tc.y)
		}
		if !approx(cell.W, w) || !approx(cell.H, h) {
			t.Errorf("slot %d size (%v,%v), want (%v,%v)", tc.slot, cell.W, cell.H, w, h)
		}
	}

	last := g.Cell(3)
	if got := last.X + last.W + g.Margin; !approx(got, g.PageW) {
		t.Errorf("grid overflows page width: %v", got)
	}
	if got := last.Y + last.H + g.Margin; !approx(got, g.PageH) {
		t.Errorf("grid overflows page height: %v", got)
	}
}

func TestHeaderBox(t *testing.T) {
	g := letterGeometry()
	hdr := g.HeaderBox()
	if !approx(hdr.Y, 28.8) || !approx(hdr.H, 43.2) || !approx(hdr.W, 612-2*28.8) {
		t.Errorf("header box = %+v", hdr)
	}
}

func TestFitRect(t *testing.T) {
	cell := Rect{X: 100, Y: 200, W: 200, H: 300}

	// tall card art limited by height, centered horizontally
	fit := FitRect(cell, 421, 614)
	if !approx(fit.H, 300) {
		t.Errorf("height-limited fit: %+v", fit)
	}
	if fit.W >= cell.W {
		t.Errorf("aspect ratio lost: %+v", fit)
	}
	if !approx(fit.X-cell.X, cell.X+cell.W-(fit.X+fit.W)) {
		t.Errorf("not centered horizontally: %+v", fit)
	}

	// wide source limited by width, centered vertically
	fit = FitRect(cell, 400, 200)
	if !approx(fit.W, 200) || !approx(fit.H, 100) {
		t.Errorf("width-limited fit: %+v", fit)
	}
	if !approx(fit.Y-cell.Y, cell.Y+cell.H-(fit.Y+fit.H)) {
		t.Errorf("not centered vertically: %+v", fit)
	}

	// degenerate source fills the cell
	if fit = FitRect(cell, 0, 0); fit != cell {
		t.Errorf("degenerate source: %+v", fit)
	}
}
