package deck

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Section headers are matched exactly after trimming. Legacy spellings map to
// the same canonical sections newer lists use.
var headerSections = map[string]Section{
	"EXTRA DECK:":      SectionExtraDeck,
	"MONSTER CARDS:":   SectionMonster,
	"FUSION MONSTERS:": SectionMonster, // legacy
	"RITUAL MONSTERS:": SectionMonster, // legacy
	"SPELL CARDS:":     SectionSpell,
	"TRAP CARDS:":      SectionTrap,
}

var (
	// "1. Card Name (ID: 160301001) (3 copies)" - ID and count are optional.
	// EDOPro marker is the historical spelling of the ID annotation.
	cardLineRe = regexp.MustCompile(`^(\d+)\.\s*(.+?)(?:\s*\((?:ID|EDOPro):\s*([^)]+)\))?\s*(?:\((\d+)\s*[Cc]op(?:ies|y)\))?$`)

	// Shape that makes a malformed line an anomaly rather than a silent skip.
	ordinalPrefixRe = regexp.MustCompile(`^\d+\.`)
)

// commentPrefix marks administrative banner lines dropped without diagnostics.
const commentPrefix = "#"

// Parse consumes deck list text and produces card entries in file order
// together with accumulated diagnostics. Lines before the first recognized
// section header never produce entries. The only fatal condition is a failure
// to read the input itself.
func Parse(r io.Reader, log *zap.Logger) ([]Entry, []Diagnostic, error) {
	var (
		entries []Entry
		diags   []Diagnostic
		current = SectionNone
		lineNo  int
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}
		if strings.HasPrefix(line, commentPrefix) {
			continue
		}

		if section, ok := headerSections[line]; ok {
			log.Debug("Section header", zap.Int("line", lineNo), zap.Stringer("section", section))
			current = section
			continue
		}

		entry, ok, diag := parseCardLine(line, current, lineNo)
		if ok {
			entries = append(entries, entry)
			continue
		}
		diags = append(diags, diag)
		switch diag.Kind {
		case DiagParseAnomaly:
			log.Warn("Malformed card line", zap.Int("line", lineNo), zap.String("text", line))
		default:
			log.Debug("Skipping line", zap.Int("line", lineNo), zap.String("text", line))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, diags, fmt.Errorf("unable to read deck list: %w", err)
	}

	log.Debug("Deck list parsed", zap.Int("lines", lineNo), zap.Int("entries", len(entries)), zap.Int("diagnostics", len(diags)))
	return entries, diags, nil
}

// parseCardLine attempts full card line extraction. On failure it classifies
// the line either as an anomaly (looks like a card line but does not extract)
// or as a skip (commentary, boilerplate, or card line outside any section).
func parseCardLine(line string, current Section, lineNo int) (Entry, bool, Diagnostic) {
	m := cardLineRe.FindStringSubmatch(line)
	if m == nil {
		kind := DiagSkippedLine
		detail := "unrecognized line"
		if ordinalPrefixRe.MatchString(line) {
			kind = DiagParseAnomaly
			detail = "ordinal prefix without card name"
		}
		return Entry{}, false, Diagnostic{Kind: kind, Line: lineNo, Section: current, Subject: line, Detail: detail}
	}
	if current == SectionNone {
		// card line before any header never produces an entry
		return Entry{}, false, Diagnostic{Kind: DiagSkippedLine, Line: lineNo, Section: current, Subject: line, Detail: "card line before first section header"}
	}

	ordinal, err := strconv.Atoi(m[1])
	if err != nil || ordinal <= 0 {
		return Entry{}, false, Diagnostic{Kind: DiagParseAnomaly, Line: lineNo, Section: current, Subject: line, Detail: "bad ordinal"}
	}

	entry := Entry{
		Ordinal: ordinal,
		Name:    strings.TrimSpace(m[2]),
		Count:   1,
		Section: current,
		Line:    lineNo,
	}
	if len(m[3]) != 0 {
		entry.Identifier = strings.TrimSpace(m[3])
	}
	if len(m[4]) != 0 {
		count, err := strconv.Atoi(m[4])
		if err != nil || count <= 0 {
			return Entry{}, false, Diagnostic{Kind: DiagParseAnomaly, Line: lineNo, Section: current, Subject: line, Detail: "bad copy count"}
		}
		entry.Count = count
	}
	if len(entry.Name) == 0 {
		return Entry{}, false, Diagnostic{Kind: DiagParseAnomaly, Line: lineNo, Section: current, Subject: line, Detail: "empty card name"}
	}
	return entry, true, Diagnostic{}
}
