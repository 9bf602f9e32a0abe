// Package catalog loads card data from an EDOPro style SQLite database (.cdb)
// and serves supplemental records by card identifier.
package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"dkc/resolve"
)

// card type bitmask in the datas table
const (
	typeMonster = 0x1
	typeSpell   = 0x2
	typeTrap    = 0x4
)

// Catalog is an in-memory snapshot of the card database. The .cdb is read
// once on open and never touched again, so lookups are safe from any
// goroutine.
type Catalog struct {
	cards map[string]resolve.CardText
}

// Open reads every card from the database at path. The texts table is
// authoritative for presence; stats come from datas when a matching row
// exists.
func Open(path string, log *zap.Logger) (*Catalog, error) {
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadOnly)
	if err != nil {
		return nil, fmt.Errorf("unable to open card database %s: %w", path, err)
	}
	defer conn.Close()

	cat := &Catalog{cards: make(map[string]resolve.CardText)}

	err = sqlitex.Execute(conn,
		`SELECT t.id, t.name, t.desc, IFNULL(d.type, 0), IFNULL(d.atk, 0), IFNULL(d.def, 0), IFNULL(d.level, 0)
			FROM texts t LEFT JOIN datas d ON t.id = d.id ORDER BY t.id`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			id := stmt.ColumnInt64(0)
			mask := stmt.ColumnInt64(3)

			text := resolve.CardText{
				Name:        strings.TrimSpace(stmt.ColumnText(1)),
				Category:    categoryName(mask),
				Description: strings.TrimSpace(stmt.ColumnText(2)),
			}
			if mask&typeMonster != 0 {
				text.Attack = int(stmt.ColumnInt64(4))
				text.Defense = int(stmt.ColumnInt64(5))
				text.Level = int(stmt.ColumnInt64(6))
				text.HasStats = true
			}
			cat.cards[strconv.FormatInt(id, 10)] = text
			return nil
		}})
	if err != nil {
		return nil, fmt.Errorf("unable to read card database %s: %w", path, err)
	}

	log.Debug("Card database loaded", zap.String("path", path), zap.Int("cards", len(cat.cards)))
	return cat, nil
}

// CardText implements resolve.TextSource.
func (c *Catalog) CardText(identifier string) (resolve.CardText, bool) {
	if c == nil {
		return resolve.CardText{}, false
	}
	text, ok := c.cards[identifier]
	return text, ok
}

// Len returns the number of cards loaded.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.cards)
}

func categoryName(mask int64) string {
	switch {
	case mask&typeMonster != 0:
		return "Monster"
	case mask&typeSpell != 0:
		return "Spell"
	case mask&typeTrap != 0:
		return "Trap"
	default:
		return "Unknown"
	}
}
