package gen

import (
	"fmt"
	"strings"

	"github.com/hlop3z/typesmith/internal/schema"
	"github.com/hlop3z/typesmith/internal/strutil"
	"github.com/hlop3z/typesmith/internal/tserr"
)

// ConstantConfig controls identifier constant table emission.
type ConstantConfig struct {
	// Prefix and Suffix wrap every derived constant key.
	Prefix string
	Suffix string
	// Transform sanitizes an entity display name into an identifier.
	// nil uses strutil.ConstantCase.
	Transform func(string) string
	// IncludeComments emits a doc comment naming the source entity
	// before each table entry.
	IncludeComments bool
}

// ConstantEntry is one key -> identifier pair in a constant table.
type ConstantEntry struct {
	Key     string
	Value   string
	Comment string
}

// ConstantTables holds the two flat, order-preserving identifier tables.
type ConstantTables struct {
	Databases   []ConstantEntry
	Collections []ConstantEntry
}

// BuildConstantTables derives the database and collection identifier
// tables from the schema's entity lists. Keys that collide after
// sanitization silently overwrite earlier entries, keeping the earlier
// position.
func BuildConstantTables(s *schema.Schema, cfg *ConstantConfig) (*ConstantTables, error) {
	if s == nil {
		return nil, tserr.New(tserr.ErrSchemaShape, "constant builder received a nil schema")
	}

	tables := &ConstantTables{}
	for _, db := range s.Databases {
		tables.Databases = appendEntry(tables.Databases, constantKey(db.Name, cfg), db.ID, db.Name)
	}
	for _, col := range s.Collections {
		tables.Collections = appendEntry(tables.Collections, constantKey(col.Name, cfg), col.ID, col.Name)
	}
	return tables, nil
}

// constantKey derives the table key for an entity display name:
// transform, uppercase, digit guard, then prefix/suffix.
func constantKey(name string, cfg *ConstantConfig) string {
	transform := cfg.Transform
	if transform == nil {
		transform = strutil.ConstantCase
	}

	key := strings.ToUpper(transform(name))
	if key != "" && key[0] >= '0' && key[0] <= '9' {
		key = "_" + key
	}
	return cfg.Prefix + key + cfg.Suffix
}

func appendEntry(entries []ConstantEntry, key, value, comment string) []ConstantEntry {
	for i := range entries {
		if entries[i].Key == key {
			entries[i].Value = value
			entries[i].Comment = comment
			return entries
		}
	}
	return append(entries, ConstantEntry{Key: key, Value: value, Comment: comment})
}

// RenderConstantTable renders one constant table as an `as const` object.
// Returns "" for an empty table.
func RenderConstantTable(name string, entries []ConstantEntry, cfg *ConstantConfig) string {
	if len(entries) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("export const %s = {\n", name))
	for _, e := range entries {
		if cfg.IncludeComments && e.Comment != "" {
			sb.WriteString(fmt.Sprintf("  /** %s */\n", e.Comment))
		}
		sb.WriteString(fmt.Sprintf("  %s: %s,\n", e.Key, strutil.QuoteSingle(e.Value)))
	}
	sb.WriteString("} as const;\n")
	return sb.String()
}
