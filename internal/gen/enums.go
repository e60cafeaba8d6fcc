package gen

import (
	"fmt"
	"strings"

	"github.com/hlop3z/typesmith/internal/schema"
	"github.com/hlop3z/typesmith/internal/strutil"
)

// EnumConfig controls enum and union-type emission.
type EnumConfig struct {
	// GenerateEnums emits named `export enum` declarations.
	GenerateEnums bool
	// GenerateUnionTypes emits `export type X = "a" | "b";` aliases.
	GenerateUnionTypes bool
	// NamingStrategy selects the member identifier form:
	// "pascal" (UPPER_SNAKE sanitized, default), "camel", or "snake".
	NamingStrategy string
}

// EnumDecl is one extracted enum: a qualified type name plus its ordered
// value list.
type EnumDecl struct {
	Name   string
	Values []string
}

// ExtractEnums scans all collections for enumerable attributes and returns
// the ordered enum declarations. The qualified name is the pascal-cased
// collection name concatenated with the pascal-cased attribute key
// ("Users" + "role" -> UsersRole).
//
// A later attribute producing an identical qualified name silently
// overwrites the earlier one's values while keeping its original position.
func ExtractEnums(collections []schema.Collection) []EnumDecl {
	var decls []EnumDecl
	index := make(map[string]int)

	for i := range collections {
		col := &collections[i]
		for j := range col.Attributes {
			attr := &col.Attributes[j]
			if !attr.IsEnum() {
				continue
			}

			name := strutil.ToPascalCase(col.Name) + strutil.ToPascalCase(attr.Key)
			values := append([]string(nil), attr.EnumValues...)

			if at, seen := index[name]; seen {
				decls[at].Values = values
				continue
			}
			index[name] = len(decls)
			decls = append(decls, EnumDecl{Name: name, Values: values})
		}
	}

	return decls
}

// BuildEnumSection renders the named enum declarations for all extracted
// enums. Returns "" when the config disables enums or nothing was extracted.
func BuildEnumSection(decls []EnumDecl, cfg *EnumConfig) string {
	if !cfg.GenerateEnums || len(decls) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, decl := range decls {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("export enum %s {\n", decl.Name))
		for _, v := range decl.Values {
			member := strutil.EnumMember(v, cfg.NamingStrategy)
			sb.WriteString(fmt.Sprintf("  %s = %s,\n", member, strutil.QuoteDouble(v)))
		}
		sb.WriteString("}\n")
	}
	return sb.String()
}

// BuildUnionSection renders the literal-union type aliases for all
// extracted enums. Returns "" when disabled or nothing was extracted.
func BuildUnionSection(decls []EnumDecl, cfg *EnumConfig) string {
	if !cfg.GenerateUnionTypes || len(decls) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, decl := range decls {
		sb.WriteString(fmt.Sprintf("export type %s = %s;\n", decl.Name, literalUnion(decl.Values)))
	}
	return sb.String()
}
