// Package typesmith provides the public API for the Typesmith declaration
// generator. It reads a declarative backend schema (databases, collections,
// typed attributes) and emits a single TypeScript declaration document with
// enums, union types, record interfaces, and identifier constant tables.
//
// Example:
//
//	client, err := typesmith.New(
//	    typesmith.WithSchemaPath("./appwrite.json"),
//	    typesmith.WithOutputPath("./src/types.ts"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := client.Generate(); err != nil {
//	    log.Fatal(err)
//	}
package typesmith

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hlop3z/typesmith/internal/gen"
	"github.com/hlop3z/typesmith/internal/schema"
	"github.com/hlop3z/typesmith/internal/transform"
	"github.com/hlop3z/typesmith/internal/tserr"
)

// Client is the main entry point for Typesmith.
// Create one with New and reuse it across generation runs; it holds no
// open resources.
type Client struct {
	config *Config
}

// New creates a new Client with the given options applied over the
// documented defaults.
func New(opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Client{config: cfg}, nil
}

// Config returns a copy of the client configuration.
func (c *Client) Config() Config {
	return *c.config
}

// Result summarizes a completed generation run.
type Result struct {
	// OutputPath is the file the declarations were written to.
	OutputPath string
	// Bytes is the size of the written document.
	Bytes int
	// Collections is the number of processable collections rendered.
	Collections int
	// Enums is the number of enum declarations extracted.
	Enums int
}

// Generate runs the full pipeline and writes the declaration document to
// the configured output path. The file is written atomically: a failed run
// never leaves a partial document behind.
func (c *Client) Generate() (*Result, error) {
	if c.config.OutputPath == "" {
		return nil, tserr.Wrap(tserr.ErrConfigMissingPath, ErrMissingOutputPath, "no output path configured").
			WithHelp("set output in typesmith.yaml or pass --out")
	}

	text, res, err := c.generate()
	if err != nil {
		return nil, err
	}

	if err := writeAtomic(c.config.OutputPath, []byte(text)); err != nil {
		return nil, err
	}

	c.log("wrote %d bytes to %s", res.Bytes, res.OutputPath)
	return res, nil
}

// GenerateText runs the full pipeline and returns the declaration document
// without writing anything.
func (c *Client) GenerateText() (string, error) {
	text, _, err := c.generate()
	return text, err
}

func (c *Client) generate() (string, *Result, error) {
	if c.config.SchemaPath == "" {
		return "", nil, tserr.Wrap(tserr.ErrConfigMissingPath, ErrMissingSchemaPath, "no schema path configured").
			WithHelp("set schema in typesmith.yaml or pass --schema")
	}

	s, err := schema.Load(c.config.SchemaPath)
	if err != nil {
		return "", nil, err
	}

	genCfg, err := c.genConfig()
	if err != nil {
		return "", nil, err
	}

	text, err := gen.Run(s, genCfg)
	if err != nil {
		return "", nil, err
	}

	collections := s.Processable()
	return text, &Result{
		OutputPath:  c.config.OutputPath,
		Bytes:       len(text),
		Collections: len(collections),
		Enums:       len(gen.ExtractEnums(collections)),
	}, nil
}

// genConfig projects the public configuration into the engine configuration,
// wrapping Go transformers and compiling JS transformer scripts.
func (c *Client) genConfig() (*gen.Config, error) {
	cfg := &gen.Config{
		GenerateEnums:               c.config.GenerateEnums,
		GenerateInterfaces:          c.config.GenerateInterfaces,
		GenerateDatabaseConstants:   c.config.GenerateDatabaseConstants,
		GenerateCollectionConstants: c.config.GenerateCollectionConstants,
		Enum: gen.EnumConfig{
			GenerateEnums:      c.config.Enums.GenerateEnums,
			GenerateUnionTypes: c.config.Enums.GenerateUnionTypes,
			NamingStrategy:     c.config.Enums.NamingStrategy,
		},
		Interface: gen.InterfaceConfig{
			IncludeMetadata:  c.config.Interfaces.IncludeMetadata,
			OptionalMetadata: c.config.Interfaces.OptionalMetadata,
			Prefix:           c.config.Interfaces.Prefix,
			Suffix:           c.config.Interfaces.Suffix,
		},
		Constants: gen.ConstantConfig{
			Prefix:          c.config.Constants.Prefix,
			Suffix:          c.config.Constants.Suffix,
			Transform:       c.config.Constants.Transform,
			IncludeComments: c.config.Constants.IncludeComments,
		},
		Now: c.config.now,
	}

	for _, fn := range c.config.Transformers {
		cfg.Transformers = append(cfg.Transformers, wrapTransformer(fn))
	}
	for _, path := range c.config.TransformerPaths {
		tr, err := transform.FromFile(path, c.config.TransformerTimeout)
		if err != nil {
			return nil, err
		}
		cfg.Transformers = append(cfg.Transformers, tr)
	}

	return cfg, nil
}

// wrapTransformer adapts a public transformer to the engine signature.
func wrapTransformer(fn Transformer) gen.Transformer {
	return func(text string, ctx *gen.TransformContext) (string, error) {
		names := make([]string, 0, len(ctx.Collections))
		for i := range ctx.Collections {
			names = append(names, ctx.Collections[i].Name)
		}
		return fn(text, &TransformContext{
			Schema:      mirrorSchema(ctx.Schema),
			Collections: names,
		})
	}
}

// mirrorSchema copies the loaded schema into the transformer-facing view.
func mirrorSchema(s *schema.Schema) *Schema {
	if s == nil {
		return nil
	}

	out := &Schema{
		Databases:   make([]Database, len(s.Databases)),
		Collections: make([]Collection, len(s.Collections)),
	}
	for i, db := range s.Databases {
		out.Databases[i] = Database{ID: db.ID, Name: db.Name}
	}
	for i := range s.Collections {
		col := &s.Collections[i]
		mirrored := Collection{
			ID:         col.ID,
			DatabaseID: col.DatabaseID,
			Name:       col.Name,
			Attributes: make([]Attribute, len(col.Attributes)),
		}
		for j := range col.Attributes {
			attr := &col.Attributes[j]
			m := Attribute{
				Key:        attr.Key,
				Type:       attr.Type,
				Required:   attr.Required,
				IsArray:    attr.IsArray,
				Size:       attr.Size,
				EnumValues: append([]string(nil), attr.EnumValues...),
				Format:     attr.Format,
				Default:    attr.Default,
			}
			if rel := attr.Relationship; rel != nil {
				m.Relationship = &Relationship{
					RelatedCollection: rel.RelatedCollection,
					Cardinality:       rel.Cardinality,
					TwoWay:            rel.TwoWay,
					TwoWayKey:         rel.TwoWayKey,
					Side:              rel.Side,
					OnDelete:          rel.OnDelete,
				}
			}
			mirrored.Attributes[j] = m
		}
		out.Collections[i] = mirrored
	}
	return out
}

// Problem is one issue found by Check.
type Problem struct {
	// Collection and Attribute locate the issue.
	Collection string
	Attribute  string
	// Code is the stable error code, when the issue maps to one.
	Code string
	// Message describes the issue.
	Message string
}

// CheckReport summarizes a schema check.
type CheckReport struct {
	Databases   int
	Collections int
	Attributes  int
	Problems    []Problem
}

// OK reports whether the check found no problems.
func (r *CheckReport) OK() bool {
	return len(r.Problems) == 0
}

// Check loads the schema, verifies every attribute converts to a
// declaration type, and validates declared default values against the
// attribute's runtime predicate. Structural load failures return an error;
// per-attribute issues are collected into the report.
func (c *Client) Check() (*CheckReport, error) {
	if c.config.SchemaPath == "" {
		return nil, tserr.Wrap(tserr.ErrConfigMissingPath, ErrMissingSchemaPath, "no schema path configured").
			WithHelp("set schema in typesmith.yaml or pass --schema")
	}

	s, err := schema.Load(c.config.SchemaPath)
	if err != nil {
		return nil, err
	}

	report := &CheckReport{
		Databases:   len(s.Databases),
		Collections: len(s.Collections),
	}

	for i := range s.Collections {
		col := &s.Collections[i]
		for j := range col.Attributes {
			attr := &col.Attributes[j]
			report.Attributes++

			if _, err := gen.Convert(attr, col); err != nil {
				report.Problems = append(report.Problems, Problem{
					Collection: col.Name,
					Attribute:  attr.Key,
					Code:       string(tserr.GetErrorCode(err)),
					Message:    fmt.Sprintf("no declaration type for %q", attr.Type),
				})
				continue
			}

			if attr.Default != nil && !gen.Predicate(attr)(attr.Default) {
				report.Problems = append(report.Problems, Problem{
					Collection: col.Name,
					Attribute:  attr.Key,
					Message:    fmt.Sprintf("default value %v does not conform to type %q", attr.Default, attr.Type),
				})
			}
		}
	}

	return report, nil
}

// writeAtomic writes data to path via a same-directory temp file and rename.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("typesmith: create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".typesmith-*")
	if err != nil {
		return fmt.Errorf("typesmith: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("typesmith: write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("typesmith: close output: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("typesmith: replace output: %w", err)
	}
	return nil
}

// log logs a message if a logger is configured.
func (c *Client) log(format string, v ...any) {
	if c.config.Logger != nil {
		c.config.Logger.Printf(format, v...)
	}
}
