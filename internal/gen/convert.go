// Package gen implements the schema-to-declaration generation engine:
// attribute type conversion, enum extraction, interface synthesis,
// identifier constant tables, and the pipeline that orchestrates them.
package gen

import (
	"strings"

	"github.com/hlop3z/typesmith/internal/schema"
	"github.com/hlop3z/typesmith/internal/strutil"
	"github.com/hlop3z/typesmith/internal/tserr"
)

// primitiveTypes maps schema primitive types to TypeScript types.
// Conversion of any type outside this table is a fatal error.
var primitiveTypes = map[string]string{
	"string":   "string",
	"integer":  "number",
	"float":    "number",
	"boolean":  "boolean",
	"datetime": "string",
}

// Convert converts one attribute descriptor into a TypeScript type
// expression. Collection context is optional and only used for error
// diagnostics.
//
// Priority order: inline enum union, relationship shape, primitive table.
// The primitive lookup is the only path that can fail.
func Convert(attr *schema.Attribute, col *schema.Collection) (string, error) {
	if attr.IsEnum() {
		union := literalUnion(attr.EnumValues)
		if attr.IsArray {
			return "(" + union + ")[]", nil
		}
		return union, nil
	}

	if attr.IsRelationship() {
		return relationshipType(attr), nil
	}

	base, ok := primitiveTypes[attr.Type]
	if !ok {
		err := tserr.Newf(tserr.ErrUnsupportedType, "unsupported attribute type %q", attr.Type).
			WithAttribute(attr.Key).
			With("type", attr.Type)
		if col != nil {
			err.WithCollection(col.Name)
		}
		return "", err
	}

	if attr.IsArray {
		// Rare inline-literal array case: an explicit element list without
		// the enum format still narrows the array to a literal union.
		if len(attr.EnumValues) > 0 {
			return "(" + literalUnion(attr.EnumValues) + ")[]", nil
		}
		return base + "[]", nil
	}
	return base, nil
}

// relationshipType derives the type expression for a relationship
// attribute. Cardinality and side jointly determine the shape; unknown
// cardinalities fall back to "unknown" rather than failing.
func relationshipType(attr *schema.Attribute) string {
	rel := attr.Relationship
	related := attr.RelatedEntityName()

	switch rel.Cardinality {
	case schema.OneToMany:
		if rel.Side == schema.SideParent {
			return related + "[]"
		}
		return related + " | null"
	case schema.ManyToOne:
		if rel.Side == schema.SideParent {
			return related + " | null"
		}
		return related + "[]"
	case schema.OneToOne, schema.ManyToMany:
		return related + "[]"
	default:
		return "unknown"
	}
}

// literalUnion renders a double-quoted literal union over the given values.
// Example: ["admin", "member"] -> "admin" | "member"
func literalUnion(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strutil.QuoteDouble(v)
	}
	return strings.Join(quoted, " | ")
}
