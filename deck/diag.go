package deck

import "fmt"

// DiagKind classifies non-fatal conditions observed while compiling a deck.
type DiagKind int

const (
	// DiagSkippedLine - unrecognized line: commentary, boilerplate, or
	// a card line seen before any section header.
	DiagSkippedLine DiagKind = iota
	// DiagParseAnomaly - line with a leading ordinal-dot shape which failed
	// full card line extraction.
	DiagParseAnomaly
	// DiagResolutionMiss - no art strategy succeeded for an entry.
	DiagResolutionMiss
	// DiagDuplicateName - entry removed, its name already placed.
	DiagDuplicateName
	// DiagDuplicateArt - entry removed, its resolved art already placed.
	DiagDuplicateArt
)

func (k DiagKind) String() string {
	switch k {
	case DiagSkippedLine:
		return "skipped line"
	case DiagParseAnomaly:
		return "parse anomaly"
	case DiagResolutionMiss:
		return "resolution miss"
	case DiagDuplicateName:
		return "duplicate name"
	case DiagDuplicateArt:
		return "duplicate art"
	default:
		return "unknown"
	}
}

// Diagnostic records a single non-fatal condition. Diagnostics accumulate
// through the whole pipeline and are returned alongside the layout plan -
// a partial best-effort layout always wins over aborting a deck.
type Diagnostic struct {
	Kind    DiagKind
	Line    int     // 1-based source line, 0 when not tied to one
	Section Section // section state at the time of observation
	Subject string  // offending line or entry name
	Detail  string  // optional human-readable context
}

func (d Diagnostic) String() string {
	if len(d.Detail) != 0 {
		return fmt.Sprintf("%s: %q (%s)", d.Kind, d.Subject, d.Detail)
	}
	return fmt.Sprintf("%s: %q", d.Kind, d.Subject)
}

// CountKind returns number of accumulated diagnostics of a particular kind.
func CountKind(diags []Diagnostic, kind DiagKind) int {
	n := 0
	for _, d := range diags {
		if d.Kind == kind {
			n++
		}
	}
	return n
}
