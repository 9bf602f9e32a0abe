package deck

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func testLogger(t *testing.T) *zap.Logger {
	t.Helper()
	return zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
}

func TestParseFullAnnotatedLine(t *testing.T) {
	input := `MONSTER CARDS:
1. Sample Dragon (ID: 900001) (2 copies)
`
	entries, diags, err := Parse(strings.NewReader(input), testLogger(t))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	e := entries[0]
	if e.Ordinal != 1 {
		t.Errorf("ordinal = %d, want 1", e.Ordinal)
	}
	if e.Name != "Sample Dragon" {
		t.Errorf("name = %q, want %q", e.Name, "Sample Dragon")
	}
	if e.Identifier != "900001" {
		t.Errorf("identifier = %q, want %q", e.Identifier, "900001")
	}
	if e.Count != 2 {
		t.Errorf("count = %d, want 2", e.Count)
	}
	if e.Section != SectionMonster {
		t.Errorf("section = %v, want Monster", e.Section)
	}
}

func TestParseOptionalAnnotations(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Entry
	}{
		{
			name: "bare name",
			line: "3. Blue-Eyes White Dragon",
			want: Entry{Ordinal: 3, Name: "Blue-Eyes White Dragon", Count: 1},
		},
		{
			name: "id only",
			line: "12. Node of Legend (ID: 160204001)",
			want: Entry{Ordinal: 12, Name: "Node of Legend", Identifier: "160204001", Count: 1},
		},
		{
			name: "count only",
			line: "4. Dragon's Inferno (3 copies)",
			want: Entry{Ordinal: 4, Name: "Dragon's Inferno", Count: 3},
		},
		{
			name: "single copy spelled out",
			line: "5. Sanctum of Legend (1 copy)",
			want: Entry{Ordinal: 5, Name: "Sanctum of Legend", Count: 1},
		},
		{
			name: "legacy id marker",
			line: "2. Phoenix Dragoon (EDOPro: 160002000) (2 copies)",
			want: Entry{Ordinal: 2, Name: "Phoenix Dragoon", Identifier: "160002000", Count: 2},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := "SPELL CARDS:\n" + tc.line + "\n"
			entries, diags, err := Parse(strings.NewReader(input), testLogger(t))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if len(diags) != 0 {
				t.Fatalf("unexpected diagnostics: %v", diags)
			}
			if len(entries) != 1 {
				t.Fatalf("expected 1 entry, got %d", len(entries))
			}
			e := entries[0]
			if e.Ordinal != tc.want.Ordinal || e.Name != tc.want.Name ||
				e.Identifier != tc.want.Identifier || e.Count != tc.want.Count {
				t.Errorf("entry = %+v, want %+v", e, tc.want)
			}
			if e.Section != SectionSpell {
				t.Errorf("section = %v, want Spell", e.Section)
			}
		})
	}
}

func TestParseSectionState(t *testing.T) {
	input := `Some deck notes nobody asked for.
1. Orphan Card Before Header

EXTRA DECK:
1. Blue-Eyes Ultimate Dragon

FUSION MONSTERS:
2. Twin-Edge Dragon

RITUAL MONSTERS:
3. Black Magic Veil

MONSTER CARDS:
4. Soul Drake

SPELL CARDS:
5. The Ultimate Blue-Eyed Legend

TRAP CARDS:
6. Treasure of Eyes of Blue
`
	entries, diags, err := Parse(strings.NewReader(input), testLogger(t))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	wantSections := []Section{
		SectionExtraDeck,
		SectionMonster, // FUSION MONSTERS: is a legacy monster header
		SectionMonster, // RITUAL MONSTERS: is a legacy monster header
		SectionMonster,
		SectionSpell,
		SectionTrap,
	}
	if len(entries) != len(wantSections) {
		t.Fatalf("expected %d entries, got %d: %v", len(wantSections), len(entries), entries)
	}
	for i, want := range wantSections {
		if entries[i].Section != want {
			t.Errorf("entry %d (%s) section = %v, want %v", i, entries[i].Name, entries[i].Section, want)
		}
	}

	// both pre-header lines are skips, the card-shaped one included
	if got := CountKind(diags, DiagSkippedLine); got != 2 {
		t.Errorf("skipped lines = %d, want 2: %v", got, diags)
	}
	if got := CountKind(diags, DiagParseAnomaly); got != 0 {
		t.Errorf("anomalies = %d, want 0: %v", got, diags)
	}
}

func TestParseAnomalies(t *testing.T) {
	input := `MONSTER CARDS:
1.
2. Fine Card
3. Bad Copies (0 copies)
`
	entries, diags, err := Parse(strings.NewReader(input), testLogger(t))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "Fine Card" {
		t.Fatalf("expected only the well-formed entry, got %v", entries)
	}
	if got := CountKind(diags, DiagParseAnomaly); got != 2 {
		t.Fatalf("anomalies = %d, want 2: %v", got, diags)
	}
	for _, d := range diags {
		if d.Kind == DiagParseAnomaly && d.Section != SectionMonster {
			t.Errorf("anomaly lost section context: %+v", d)
		}
	}
}

func TestParseSkipsCommentaryAndComments(t *testing.T) {
	input := `# banner line
Deck assembled for local tournament play.

MONSTER CARDS:
1. Dragorite
Random remark between cards.
2. Sylphidra
`
	entries, diags, err := Parse(strings.NewReader(input), testLogger(t))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	// comment line produces no diagnostic at all, free-form remarks do
	if got := CountKind(diags, DiagSkippedLine); got != 2 {
		t.Errorf("skipped lines = %d, want 2: %v", got, diags)
	}
}

func TestParsePreservesFileOrder(t *testing.T) {
	input := `MONSTER CARDS:
1. Third
2. First
3. Second
`
	entries, _, err := Parse(strings.NewReader(input), testLogger(t))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := []string{"Third", "First", "Second"}
	for i, name := range want {
		if entries[i].Name != name {
			t.Errorf("entry %d = %q, want %q (parser must not reorder)", i, entries[i].Name, name)
		}
	}
}

func TestSectionMonsterlike(t *testing.T) {
	if !SectionExtraDeck.Monsterlike() {
		t.Error("Extra Deck must be monster-like for layout callers")
	}
	if !SectionMonster.Monsterlike() {
		t.Error("Monster must be monster-like")
	}
	if SectionSpell.Monsterlike() || SectionTrap.Monsterlike() {
		t.Error("Spell/Trap must not be monster-like")
	}
}
