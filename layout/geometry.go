package layout

// Rect is an axis-aligned box in page points, origin at the top-left corner
// of the page.
type Rect struct {
	X, Y, W, H float64
}

// Geometry describes the printable 2-column grid of one page. All values are
// points. Computation here is dimension-only and deterministic.
type Geometry struct {
	PageW, PageH float64
	Margin       float64
	Header       float64
	Gap          float64
	Columns      int
	Rows         int
}

// NewGeometry divides the printable area (page net of margins and the header
// band) into an even grid holding capacity cells over the given column count.
func NewGeometry(pageW, pageH, margin, header, gap float64, capacity, columns int) Geometry {
	if columns <= 0 {
		columns = 2
	}
	rows := (capacity + columns - 1) / columns
	if rows <= 0 {
		rows = 1
	}
	return Geometry{
		PageW:   pageW,
		PageH:   pageH,
		Margin:  margin,
		Header:  header,
		Gap:     gap,
		Columns: columns,
		Rows:    rows,
	}
}

// CellSize returns the width and height of a single grid cell.
func (g Geometry) CellSize() (float64, float64) {
	w := (g.PageW - 2*g.Margin - float64(g.Columns-1)*g.Gap) / float64(g.Columns)
	h := (g.PageH - 2*g.Margin - g.Header - float64(g.Rows-1)*g.Gap) / float64(g.Rows)
	return w, h
}

// Cell returns the box of the slot at the given row-major index: top-left,
// top-right, then the next row down.
func (g Geometry) Cell(slot int) Rect {
	w, h := g.CellSize()
	row := slot / g.Columns
	col := slot % g.Columns
	return Rect{
		X: g.Margin + float64(col)*(w+g.Gap),
		Y: g.Margin + g.Header + float64(row)*(h+g.Gap),
		W: w,
		H: h,
	}
}

// HeaderBox returns the band above the grid reserved for the page title.
func (g Geometry) HeaderBox() Rect {
	return Rect{X: g.Margin, Y: g.Margin, W: g.PageW - 2*g.Margin, H: g.Header}
}

// FitRect scales a source of the given dimensions to fit inside cell while
// preserving aspect ratio, centering the remainder on both axes. Degenerate
// sources collapse to the cell itself.
func FitRect(cell Rect, srcW, srcH float64) Rect {
	if srcW <= 0 || srcH <= 0 {
		return cell
	}
	scale := min(cell.W/srcW, cell.H/srcH)
	w := srcW * scale
	h := srcH * scale
	return Rect{
		X: cell.X + (cell.W-w)/2,
		Y: cell.Y + (cell.H-h)/2,
		W: w,
		H: h,
	}
}
