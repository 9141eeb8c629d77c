package database

import (
	"strings"

	"github.com/octobees/battlecards/internal/entity"
)

// PostgresSchema returns the DDL for the battlecards table on PostgreSQL.
// Every attribute column is TEXT; lists and mappings are stored flattened.
func PostgresSchema() string {
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS battlecards (\n")
	b.WriteString("  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),\n")
	writeAttributeColumns(&b)
	b.WriteString("  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),\n")
	b.WriteString("  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),\n")
	b.WriteString("  last_updated TIMESTAMPTZ\n")
	b.WriteString(");\n")
	b.WriteString("CREATE INDEX IF NOT EXISTS idx_battlecards_updated_at ON battlecards(updated_at DESC);\n")
	return b.String()
}

// SQLiteSchema returns the DDL for the battlecards table on SQLite.
func SQLiteSchema() string {
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS battlecards (\n")
	b.WriteString("  id TEXT PRIMARY KEY,\n")
	writeAttributeColumns(&b)
	b.WriteString("  created_at TEXT NOT NULL,\n")
	b.WriteString("  updated_at TEXT NOT NULL,\n")
	b.WriteString("  last_updated TEXT\n")
	b.WriteString(");\n")
	b.WriteString("CREATE INDEX IF NOT EXISTS idx_battlecards_updated_at ON battlecards(updated_at);\n")
	return b.String()
}

func writeAttributeColumns(b *strings.Builder) {
	for _, column := range entity.Columns() {
		b.WriteString("  ")
		b.WriteString(column)
		if column == "company_name" {
			b.WriteString(" TEXT NOT NULL,\n")
			continue
		}
		b.WriteString(" TEXT,\n")
	}
}
