package content

import (
	"fmt"
	"strconv"
	"strings"
)

// dumpWriter accumulates the indented compilation dump.
type dumpWriter struct {
	w strings.Builder
}

func (dw *dumpWriter) line(depth int, format string, args ...any) {
	for range depth {
		dw.w.WriteString("  ")
	}
	fmt.Fprintf(&dw.w, format, args...)
	dw.w.WriteByte('\n')
}

func (dw *dumpWriter) text(depth int, label, value string) {
	dw.line(depth, "%s: %s", label, strconv.Quote(value))
}

// String returns a readable tree of the whole compilation result. It exists
// solely for manual inspection during debugging and for the debug report.
func (c *Content) String() string {
	if c == nil {
		return "<nil Content>"
	}

	dw := &dumpWriter{}
	dw.line(0, "Deck %q from %q id[%s] format[%s]", c.DeckName, c.SrcName, c.ID, c.OutputFormat)

	dw.line(0, "Entries: %d", len(c.Entries))
	for _, e := range c.Entries {
		dw.line(1, "%s", e.String())
	}

	dw.line(0, "Cards: %d", len(c.Cards))
	for _, card := range c.Cards {
		dw.line(1, "%s via[%s]", card.Entry.Name, card.Strategy)
		if len(card.ArtPath) != 0 {
			dw.text(2, "art", card.ArtPath)
		}
		if card.Text != nil {
			dw.text(2, "text", card.Text.Description)
		}
		if card.Unresolved() {
			dw.line(2, "UNRESOLVED")
		}
	}

	dw.line(0, "Pages: %d (capacity %d)", len(c.Plan.Pages), c.Plan.Capacity)
	for i, page := range c.Plan.Pages {
		dw.line(1, "page[%d] section[%s] number[%d] start[%t] cards[%d]", i, page.Section, page.Number, page.SectionStart, len(page.Cards))
	}

	dw.line(0, "Diagnostics: %d", len(c.Diags))
	for _, d := range c.Diags {
		dw.line(1, "%s", d.String())
	}
	return dw.w.String()
}
