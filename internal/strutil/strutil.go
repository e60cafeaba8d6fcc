// Package strutil provides string utilities for case conversion and
// identifier naming used throughout the Typesmith codebase.
package strutil

import (
	"strings"
	"unicode"
)

// -----------------------------------------------------------------------------
// Case Conversion
// -----------------------------------------------------------------------------

// ToPascalCase converts a string to PascalCase, splitting on underscores,
// dashes and spaces.
// Examples: user_name -> UserName, tech-companies -> TechCompanies
func ToPascalCase(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(s))

	capitalizeNext := true
	for _, r := range s {
		if r == '_' || r == '-' || r == ' ' {
			capitalizeNext = true
			continue
		}
		if capitalizeNext {
			result.WriteRune(unicode.ToUpper(r))
			capitalizeNext = false
		} else {
			result.WriteRune(unicode.ToLower(r))
		}
	}

	return result.String()
}

// ToCamelCase converts a string to camelCase.
// Examples: user_name -> userName, UserName -> userName
func ToCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if pascal == "" {
		return ""
	}

	runes := []rune(pascal)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// -----------------------------------------------------------------------------
// Entity Naming
// -----------------------------------------------------------------------------

// Singularize strips a trailing "s" from a name.
// Examples: users -> user, address -> addres. Any trailing "s" is
// stripped, plural or not; the derivation rule is fixed on this form.
func Singularize(s string) string {
	if len(s) > 1 && strings.HasSuffix(s, "s") {
		return s[:len(s)-1]
	}
	return s
}

// EntityName derives a nominal type name from a collection name:
// singularized, then pascal-cased.
// Examples: users -> User, tech-companies -> TechCompanie
func EntityName(s string) string {
	return ToPascalCase(Singularize(s))
}

// -----------------------------------------------------------------------------
// Constant Naming
// -----------------------------------------------------------------------------

// ConstantCase sanitizes an entity display name into an UPPER_SNAKE
// identifier safe for a constant table key:
// trim, collapse whitespace runs to "_", strip remaining characters outside
// [A-Za-z0-9_], uppercase, and prefix "_" if the result starts with a digit.
// Examples: "Main DB" -> MAIN_DB, "2nd shard" -> _2ND_SHARD
func ConstantCase(s string) string {
	s = strings.TrimSpace(s)

	var result strings.Builder
	result.Grow(len(s))

	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace {
			result.WriteByte('_')
			inSpace = false
		}
		switch {
		case r >= 'a' && r <= 'z':
			result.WriteRune(unicode.ToUpper(r))
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_':
			result.WriteRune(r)
		}
	}

	out := result.String()
	if out != "" && out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	return out
}

// -----------------------------------------------------------------------------
// Enum Member Naming
// -----------------------------------------------------------------------------

// Enum member naming strategies.
const (
	StrategyPascal = "pascal"
	StrategyCamel  = "camel"
	StrategySnake  = "snake"
)

// EnumMember converts an enum value into a member identifier using the
// given naming strategy:
//
//	pascal -> UPPER_SNAKE sanitized form ("in-progress" -> INPROGRESS,
//	          dashes are stripped by the sanitizer; "on hold" -> ON_HOLD)
//	camel  -> sanitized form with the first character lowercased
//	snake  -> sanitized form fully lowercased
//
// Unknown strategies fall back to pascal.
func EnumMember(value, strategy string) string {
	sanitized := ConstantCase(value)
	switch strategy {
	case StrategyCamel:
		if sanitized == "" {
			return sanitized
		}
		runes := []rune(sanitized)
		runes[0] = unicode.ToLower(runes[0])
		return string(runes)
	case StrategySnake:
		return strings.ToLower(sanitized)
	default:
		return sanitized
	}
}

// -----------------------------------------------------------------------------
// Formatting
// -----------------------------------------------------------------------------

// Indent indents each non-empty line of text with the given number of spaces.
func Indent(text string, spaces int) string {
	prefix := strings.Repeat(" ", spaces)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

// QuoteSingle quotes a string with single quotes, escaping embedded quotes.
func QuoteSingle(s string) string {
	escaped := strings.ReplaceAll(s, `'`, `\'`)
	return "'" + escaped + "'"
}

// QuoteDouble quotes a string with double quotes, escaping embedded quotes.
func QuoteDouble(s string) string {
	escaped := strings.ReplaceAll(s, `"`, `\"`)
	return `"` + escaped + `"`
}
