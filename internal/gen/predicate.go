package gen

import (
	"math"

	"github.com/hlop3z/typesmith/internal/schema"
)

// Predicate returns a runtime conformance test for the attribute's type:
// enum membership for enum attributes, a per-primitive check otherwise,
// applied elementwise when the attribute is an array.
//
// Predicates never fail; an attribute with no known primitive mapping
// yields a predicate that rejects everything. They are used by the
// validation helpers (typesmith check), never for control flow inside
// generation.
func Predicate(attr *schema.Attribute) func(any) bool {
	base := basePredicate(attr)
	if !attr.IsArray {
		return base
	}

	return func(v any) bool {
		items, ok := v.([]any)
		if !ok {
			return false
		}
		for _, item := range items {
			if !base(item) {
				return false
			}
		}
		return true
	}
}

func basePredicate(attr *schema.Attribute) func(any) bool {
	if attr.IsEnum() {
		allowed := make(map[string]struct{}, len(attr.EnumValues))
		for _, v := range attr.EnumValues {
			allowed[v] = struct{}{}
		}
		return func(v any) bool {
			s, ok := v.(string)
			if !ok {
				return false
			}
			_, ok = allowed[s]
			return ok
		}
	}

	if attr.IsRelationship() {
		// Related documents are opaque to the generator; only nil is rejected.
		return func(v any) bool { return v != nil }
	}

	switch attr.Type {
	case "string", "datetime":
		return func(v any) bool {
			_, ok := v.(string)
			return ok
		}
	case "integer":
		return func(v any) bool {
			switch n := v.(type) {
			case int, int32, int64:
				return true
			case float64:
				return n == math.Trunc(n)
			default:
				return false
			}
		}
	case "float":
		return func(v any) bool {
			switch v.(type) {
			case float32, float64, int, int32, int64:
				return true
			default:
				return false
			}
		}
	case "boolean":
		return func(v any) bool {
			_, ok := v.(bool)
			return ok
		}
	default:
		return func(any) bool { return false }
	}
}
