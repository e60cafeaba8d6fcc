package schema

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/hlop3z/typesmith/internal/tserr"
)

// Load reads and parses a schema document from disk, then validates its
// structural invariants. This is the single ingestion path: generators
// only ever see a validated *Schema.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, tserr.Wrap(tserr.ErrSchemaNotFound, err, "schema file not found").
				WithFile(path).
				WithHelp("check the input path in typesmith.yaml or pass --schema")
		}
		return nil, tserr.Wrap(tserr.ErrSchemaRead, err, "failed to read schema file").
			WithFile(path)
	}

	s, err := Parse(data)
	if err != nil {
		var tsErr *tserr.Error
		if errors.As(err, &tsErr) {
			tsErr.WithFile(path)
		}
		return nil, err
	}
	return s, nil
}

// Parse decodes a schema document from raw bytes and validates it.
func Parse(data []byte) (*Schema, error) {
	// Decode the top level loosely first so a well-formed but non-object
	// document reports a structural error rather than a parse error.
	var top any
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, tserr.Wrap(tserr.ErrSchemaParse, err, "schema is not valid JSON")
	}
	obj, ok := top.(map[string]any)
	if !ok {
		return nil, tserr.Newf(tserr.ErrSchemaShape, "schema must be a JSON object, got %T", top)
	}
	if _, ok := obj["collections"]; !ok {
		return nil, tserr.New(tserr.ErrMissingCollections, "schema has no collections sequence").
			WithHelp(`add a top-level "collections" array to the schema document`)
	}

	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, tserr.Wrap(tserr.ErrSchemaParse, err, "schema document does not match the expected shape")
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the structural invariants of the schema in a single
// up-front pass so generators can trust the model:
//
//   - every attribute has a non-empty key
//   - enum-format attributes declare at least one value
//   - relationship attributes name a related collection
func (s *Schema) Validate() error {
	for i := range s.Collections {
		col := &s.Collections[i]
		for j := range col.Attributes {
			attr := &col.Attributes[j]

			if attr.Key == "" {
				return tserr.New(tserr.ErrInvalidAttribute, "attribute has an empty key").
					WithCollection(col.Name).
					With("index", j)
			}

			if attr.Format == FormatEnum && len(attr.EnumValues) == 0 {
				return tserr.New(tserr.ErrInvalidAttribute, "enum attribute has no values").
					WithCollection(col.Name).
					WithAttribute(attr.Key).
					WithHelp("declare enumValues for enum attributes")
			}

			if attr.IsRelationship() && (attr.Relationship == nil || attr.Relationship.RelatedCollection == "") {
				return tserr.New(tserr.ErrInvalidAttribute, "relationship attribute has no related collection").
					WithCollection(col.Name).
					WithAttribute(attr.Key)
			}
		}
	}
	return nil
}

// Processable returns the collections that have at least one attribute,
// preserving document order.
func (s *Schema) Processable() []Collection {
	out := make([]Collection, 0, len(s.Collections))
	for _, c := range s.Collections {
		if c.Processable() {
			out = append(out, c)
		}
	}
	return out
}
