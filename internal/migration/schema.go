package migration

import (
	"fmt"
	"strings"
)

// tableDef is the current shape of a catalog table. The create statement
// takes the table name so the same definition builds rebuild targets.
type tableDef struct {
	name    string
	columns []string
	create  string
	// coalesce maps a column to the fallback used when copying legacy rows.
	coalesce map[string]string
}

func (t tableDef) createSQL(name string, ifNotExists bool) string {
	clause := ""
	if ifNotExists {
		clause = "IF NOT EXISTS "
	}
	return fmt.Sprintf(t.create, clause+name)
}

func (t tableDef) hasColumn(col string) bool {
	for _, c := range t.columns {
		if c == col {
			return true
		}
	}
	return false
}

var fansTable = tableDef{
	name: "fans",
	columns: []string{
		"id", "name", "description", "airflow", "catalog_file_path",
		"price_wholesale", "price_retail", "quantity", "created_at", "updated_at",
	},
	create: `
        CREATE TABLE %s (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL,
            description TEXT,
            airflow TEXT,
            catalog_file_path TEXT,
            price_wholesale REAL NOT NULL,
            price_retail REAL NOT NULL,
            quantity INTEGER NOT NULL DEFAULT 0,
            created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
}

var sheetMetalTable = tableDef{
	name: "sheet_metal",
	columns: []string{
		"id", "thickness", "dimensions", "measurement", "cost", "extra", "created_at", "updated_at",
	},
	create: `
        CREATE TABLE %s (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            thickness TEXT,
            dimensions TEXT,
            measurement TEXT,
            cost REAL NOT NULL DEFAULT 0,
            extra TEXT,
            created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
	coalesce: map[string]string{
		"cost":       "0",
		"created_at": "CURRENT_TIMESTAMP",
		"updated_at": "CURRENT_TIMESTAMP",
	},
}

var flexibleTable = tableDef{
	name: "flexible",
	columns: []string{
		"id", "description", "diameter", "collection", "meter", "created_at", "updated_at",
	},
	create: `
        CREATE TABLE %s (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            description TEXT,
            diameter TEXT,
            collection TEXT,
            meter REAL NOT NULL DEFAULT 0,
            created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
	coalesce: map[string]string{
		"meter":      "0",
		"created_at": "CURRENT_TIMESTAMP",
		"updated_at": "CURRENT_TIMESTAMP",
	},
}

// copyExprs returns the insert column list and the matching select
// expressions for the columns shared by the legacy and current shapes.
func (t tableDef) copyExprs(legacy []string) (string, string) {
	have := make(map[string]bool, len(legacy))
	for _, c := range legacy {
		have[c] = true
	}

	var cols, exprs []string
	for _, c := range t.columns {
		if !have[c] {
			continue
		}
		cols = append(cols, c)
		if fb, ok := t.coalesce[c]; ok {
			exprs = append(exprs, fmt.Sprintf("COALESCE(%s, %s)", c, fb))
		} else {
			exprs = append(exprs, c)
		}
	}
	return strings.Join(cols, ", "), strings.Join(exprs, ", ")
}
