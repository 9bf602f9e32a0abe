package config

// Specification of requested output type.
// ENUM(png, html)
type OutputFmt int

func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtPng:
		return ".png"
	case OutputFmtHtml:
		return ".html"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// Specification of physical output page size.
// ENUM(letter, a4)
type PageSize int

// Dims returns page dimensions in points (1/72 of an inch).
func (p PageSize) Dims() (width, height float64) {
	switch p {
	case PageSizeLetter:
		return 612, 792
	case PageSizeA4:
		return 595.276, 841.89
	default:
		// this should never happen
		panic("unsupported page size requested")
	}
}
