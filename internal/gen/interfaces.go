package gen

import (
	"fmt"
	"strings"

	"github.com/hlop3z/typesmith/internal/schema"
)

// InterfaceConfig controls record declaration emission.
type InterfaceConfig struct {
	// IncludeMetadata includes the six document metadata fields.
	IncludeMetadata bool
	// OptionalMetadata marks every metadata field optional.
	OptionalMetadata bool
	// Prefix and Suffix wrap the derived declaration name.
	Prefix string
	Suffix string
}

// metadataFields are the fixed document metadata fields, in emission order.
var metadataFields = []struct {
	name   string
	tsType string
}{
	{"$id", "string"},
	{"$createdAt", "string"},
	{"$updatedAt", "string"},
	{"$databaseId", "string"},
	{"$collectionId", "string"},
	{"$permissions", "string[]"},
}

// InterfaceName returns the declaration name for a collection:
// prefix + pascal-cased singular name + suffix.
func InterfaceName(col *schema.Collection, cfg *InterfaceConfig) string {
	return cfg.Prefix + col.EntityName() + cfg.Suffix
}

// BuildInterface composes the record declaration for one collection.
// A single unconvertible attribute fails the whole declaration; the
// conversion error propagates unchanged.
func BuildInterface(col *schema.Collection, cfg *InterfaceConfig) (string, error) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("export interface %s {\n", InterfaceName(col, cfg)))

	if cfg.IncludeMetadata {
		optional := ""
		if cfg.OptionalMetadata {
			optional = "?"
		}
		for _, f := range metadataFields {
			sb.WriteString(fmt.Sprintf("  %s%s: %s;\n", f.name, optional, f.tsType))
		}
	}

	for i := range col.Attributes {
		attr := &col.Attributes[i]

		tsType, err := Convert(attr, col)
		if err != nil {
			return "", err
		}

		writeFieldComment(&sb, attr)

		optional := "?"
		if attr.Required {
			optional = ""
		}
		sb.WriteString(fmt.Sprintf("  %s%s: %s;\n", attr.Key, optional, tsType))
	}

	sb.WriteString("}\n")
	return sb.String(), nil
}

// writeFieldComment emits the descriptive JSDoc lines for a field:
// max size, enumerated values, and relationship details.
func writeFieldComment(sb *strings.Builder, attr *schema.Attribute) {
	var lines []string

	if attr.Size > 0 {
		lines = append(lines, fmt.Sprintf("Max size: %d", attr.Size))
	}
	if attr.IsEnum() {
		lines = append(lines, "Possible values: "+strings.Join(attr.EnumValues, ", "))
	}
	if rel := attr.Relationship; rel != nil {
		lines = append(lines, fmt.Sprintf("Relationship: %s with %s", rel.Cardinality, rel.RelatedCollection))
		if rel.TwoWay && rel.TwoWayKey != "" {
			lines = append(lines, "Two-way key: "+rel.TwoWayKey)
		}
		if rel.OnDelete != "" {
			lines = append(lines, "On delete: "+rel.OnDelete)
		}
	}

	switch len(lines) {
	case 0:
	case 1:
		sb.WriteString(fmt.Sprintf("  /** %s */\n", lines[0]))
	default:
		sb.WriteString("  /**\n")
		for _, line := range lines {
			sb.WriteString("   * " + line + "\n")
		}
		sb.WriteString("   */\n")
	}
}
