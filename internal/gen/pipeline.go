package gen

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/hlop3z/typesmith/internal/schema"
	"github.com/hlop3z/typesmith/internal/tserr"
)

// Config is the full engine configuration for one generation run.
type Config struct {
	// Section toggles.
	GenerateEnums               bool
	GenerateInterfaces          bool
	GenerateDatabaseConstants   bool
	GenerateCollectionConstants bool

	Enum      EnumConfig
	Interface InterfaceConfig
	Constants ConstantConfig

	// Transformers run in order over the generated text, each output
	// feeding the next.
	Transformers []Transformer

	// Now supplies the header timestamp. nil uses time.Now.
	Now func() time.Time
}

// Transformer is a user-supplied pure text transform applied after
// generation.
type Transformer func(text string, ctx *TransformContext) (string, error)

// TransformContext is the read-only view handed to each transformer.
type TransformContext struct {
	Schema      *schema.Schema
	Collections []schema.Collection
}

// Names of the emitted constant tables.
const (
	databaseTableName   = "DATABASES"
	collectionTableName = "COLLECTIONS"
)

// Run executes the Generate, Transform, and Finalize stages over an
// already-loaded schema and returns the final text document.
//
// Generation errors are wrapped into the single ErrGeneration kind;
// transformer errors propagate as-is.
func Run(s *schema.Schema, cfg *Config) (string, error) {
	text, err := Generate(s, cfg)
	if err != nil {
		return "", tserr.Wrap(tserr.ErrGeneration, err, "generation failed")
	}

	ctx := &TransformContext{Schema: s, Collections: s.Processable()}
	for _, transform := range cfg.Transformers {
		text, err = transform(text, ctx)
		if err != nil {
			return "", err
		}
	}

	return Finalize(text), nil
}

// Generate concatenates the document sections in their fixed order:
// header, union types, enums, interfaces, constant tables.
func Generate(s *schema.Schema, cfg *Config) (string, error) {
	var sections []string

	sections = append(sections, header(cfg))

	collections := s.Processable()

	if cfg.GenerateEnums {
		decls := ExtractEnums(collections)
		if union := BuildUnionSection(decls, &cfg.Enum); union != "" {
			sections = append(sections, union)
		}
		if enums := BuildEnumSection(decls, &cfg.Enum); enums != "" {
			sections = append(sections, enums)
		}
	}

	if cfg.GenerateInterfaces {
		for i := range collections {
			decl, err := BuildInterface(&collections[i], &cfg.Interface)
			if err != nil {
				return "", err
			}
			sections = append(sections, decl)
		}
	}

	if cfg.GenerateDatabaseConstants || cfg.GenerateCollectionConstants {
		tables, err := BuildConstantTables(s, &cfg.Constants)
		if err != nil {
			return "", err
		}
		if cfg.GenerateDatabaseConstants {
			if t := RenderConstantTable(databaseTableName, tables.Databases, &cfg.Constants); t != "" {
				sections = append(sections, t)
			}
		}
		if cfg.GenerateCollectionConstants {
			if t := RenderConstantTable(collectionTableName, tables.Collections, &cfg.Constants); t != "" {
				sections = append(sections, t)
			}
		}
	}

	return strings.Join(sections, "\n"), nil
}

// header renders the generated-file banner with a UTC timestamp.
func header(cfg *Config) string {
	now := time.Now
	if cfg.Now != nil {
		now = cfg.Now
	}

	var sb strings.Builder
	sb.WriteString("// Auto-generated TypeScript declarations from backend schema\n")
	sb.WriteString(fmt.Sprintf("// Generated at: %s\n", now().UTC().Format(time.RFC3339)))
	sb.WriteString("// Do not edit manually\n")
	return sb.String()
}

// blankRuns matches runs of two or more consecutive blank lines.
var blankRuns = regexp.MustCompile(`(\n[ \t]*){3,}`)

// Finalize normalizes whitespace: consecutive blank lines collapse to
// exactly one, outer whitespace is trimmed, and the document ends with a
// single trailing newline.
func Finalize(text string) string {
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text) + "\n"
}
