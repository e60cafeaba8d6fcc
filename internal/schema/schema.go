// Package schema defines the typed in-memory model for a backend schema
// document: databases, collections, and their typed attributes.
//
// The model is materialized once per generation run and never mutated;
// generators only project it into strings.
package schema

import (
	"encoding/json"

	"github.com/hlop3z/typesmith/internal/strutil"
)

// Relationship cardinalities.
const (
	OneToMany  = "oneToMany"
	ManyToOne  = "manyToOne"
	OneToOne   = "oneToOne"
	ManyToMany = "manyToMany"
)

// Relationship sides.
const (
	SideParent = "parent"
	SideChild  = "child"
)

// TypeRelationship is the attribute type string that marks a relationship.
const TypeRelationship = "relationship"

// FormatEnum is the attribute format string that marks an enum.
const FormatEnum = "enum"

// Schema is the root of a parsed schema document.
type Schema struct {
	Databases   []Database   `json:"databases"`
	Collections []Collection `json:"collections"`
}

// Database identifies one backend database.
type Database struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Collection is a named grouping of attributes.
type Collection struct {
	ID         string      `json:"id"`
	DatabaseID string      `json:"databaseId"`
	Name       string      `json:"name"`
	Attributes []Attribute `json:"attributes"`
}

// Processable reports whether the collection has any attributes.
// Empty collections are skipped by the pipeline.
func (c *Collection) Processable() bool {
	return len(c.Attributes) > 0
}

// EntityName returns the singularized, pascal-cased type name for the
// collection. Example: "tech-companies" -> "TechCompanie"
func (c *Collection) EntityName() string {
	return strutil.EntityName(c.Name)
}

// Attribute is one typed field descriptor within a collection.
// Relationship attributes carry a non-nil Relationship variant.
type Attribute struct {
	Key        string   `json:"key"`
	Type       string   `json:"type"`
	Required   bool     `json:"required"`
	IsArray    bool     `json:"isArray"`
	Size       int      `json:"size,omitempty"`
	EnumValues []string `json:"enumValues,omitempty"`
	Format     string   `json:"format,omitempty"`
	Default    any      `json:"default,omitempty"`

	Relationship *Relationship `json:"-"`
}

// Relationship holds the relationship-specific fields of an attribute.
type Relationship struct {
	RelatedCollection string `json:"relatedCollection"`
	Cardinality       string `json:"relationCardinality"`
	TwoWay            bool   `json:"isTwoWay"`
	TwoWayKey         string `json:"twoWayKey,omitempty"`
	Side              string `json:"side"`
	OnDelete          string `json:"onDelete,omitempty"`
}

// IsEnum reports whether the attribute is an enumerable attribute with
// at least one declared value.
func (a *Attribute) IsEnum() bool {
	return a.Format == FormatEnum && len(a.EnumValues) > 0
}

// IsRelationship reports whether the attribute is a relationship attribute.
func (a *Attribute) IsRelationship() bool {
	return a.Type == TypeRelationship
}

// RelatedEntityName returns the nominal type name derived from the related
// collection, or "" for non-relationship attributes.
func (a *Attribute) RelatedEntityName() string {
	if a.Relationship == nil {
		return ""
	}
	return strutil.EntityName(a.Relationship.RelatedCollection)
}

// UnmarshalJSON decodes an attribute from its flat wire form, splitting
// relationship fields into the tagged Relationship variant.
func (a *Attribute) UnmarshalJSON(data []byte) error {
	type plain Attribute
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*a = Attribute(p)

	if a.Type == TypeRelationship {
		var rel Relationship
		if err := json.Unmarshal(data, &rel); err != nil {
			return err
		}
		a.Relationship = &rel
	}
	return nil
}

// MarshalJSON encodes an attribute back into its flat wire form,
// re-inlining the relationship fields that UnmarshalJSON split out.
func (a Attribute) MarshalJSON() ([]byte, error) {
	type plain Attribute
	data, err := json.Marshal(plain(a))
	if err != nil {
		return nil, err
	}
	if a.Relationship == nil {
		return data, nil
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	relData, err := json.Marshal(a.Relationship)
	if err != nil {
		return nil, err
	}
	var relFields map[string]any
	if err := json.Unmarshal(relData, &relFields); err != nil {
		return nil, err
	}
	for k, v := range relFields {
		fields[k] = v
	}
	return json.Marshal(fields)
}
