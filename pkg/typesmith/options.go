package typesmith

import "time"

// Config holds all configuration options for the Client.
type Config struct {
	// SchemaPath is the path to the JSON schema document.
	SchemaPath string

	// OutputPath is where Generate writes the declaration file.
	OutputPath string

	// Section toggles. All sections are on by default.
	GenerateEnums               bool
	GenerateInterfaces          bool
	GenerateDatabaseConstants   bool
	GenerateCollectionConstants bool

	Enums      EnumConfig
	Interfaces InterfaceConfig
	Constants  ConstantConfig

	// Transformers are Go post-processing functions, applied in order.
	Transformers []Transformer

	// TransformerPaths lists JavaScript transformer scripts, executed in
	// order after the Go transformers.
	TransformerPaths []string

	// TransformerTimeout bounds a single JS transformer invocation.
	// Default: 5s
	TransformerTimeout time.Duration

	// Logger is used for logging operations. If nil, no logging is performed.
	Logger Logger

	// now supplies the header timestamp; overridable in tests.
	now func() time.Time
}

// EnumConfig controls enum and union-type emission.
type EnumConfig struct {
	// GenerateEnums emits named `export enum` declarations.
	GenerateEnums bool
	// GenerateUnionTypes emits `export type X = ... | ...;` aliases.
	GenerateUnionTypes bool
	// NamingStrategy selects enum member naming: "pascal" (default),
	// "camel", or "snake".
	NamingStrategy string
}

// InterfaceConfig controls record interface emission.
type InterfaceConfig struct {
	// IncludeMetadata adds the backend metadata fields ($id, $createdAt, ...).
	IncludeMetadata bool
	// OptionalMetadata marks all metadata fields optional.
	OptionalMetadata bool
	// Prefix and Suffix wrap every interface name.
	Prefix string
	Suffix string
}

// ConstantConfig controls identifier constant table emission.
type ConstantConfig struct {
	// Prefix and Suffix wrap every constant key.
	Prefix string
	Suffix string
	// Transform overrides the default identifier sanitization.
	// The result is uppercased and digit-guarded either way.
	Transform func(string) string
	// IncludeComments emits a doc comment naming the source entity.
	IncludeComments bool
}

// Transformer is a post-processing function applied to the generated text.
type Transformer func(text string, ctx *TransformContext) (string, error)

// TransformContext is the read-only view handed to each transformer.
// Mutating it has no effect on the pipeline.
type TransformContext struct {
	// Schema is the loaded schema document.
	Schema *Schema
	// Collections lists the processable collection names in document order.
	Collections []string
}

// Schema is the transformer-facing view of a loaded schema document.
type Schema struct {
	Databases   []Database
	Collections []Collection
}

// Database identifies one backend database.
type Database struct {
	ID   string
	Name string
}

// Collection is a named grouping of attributes.
type Collection struct {
	ID         string
	DatabaseID string
	Name       string
	Attributes []Attribute
}

// Attribute is one typed field descriptor within a collection.
// Relationship attributes carry a non-nil Relationship.
type Attribute struct {
	Key        string
	Type       string
	Required   bool
	IsArray    bool
	Size       int
	EnumValues []string
	Format     string
	Default    any

	Relationship *Relationship
}

// Relationship holds the relationship-specific fields of an attribute.
type Relationship struct {
	RelatedCollection string
	Cardinality       string
	TwoWay            bool
	TwoWayKey         string
	Side              string
	OnDelete          string
}

// Logger is the interface for logging operations.
// It's compatible with the standard library's log.Logger.
type Logger interface {
	Printf(format string, v ...any)
}

// Option is a functional option for configuring the Client.
type Option func(*Config)

// WithSchemaPath sets the path to the JSON schema document.
func WithSchemaPath(path string) Option {
	return func(c *Config) {
		c.SchemaPath = path
	}
}

// WithOutputPath sets the declaration output file path.
func WithOutputPath(path string) Option {
	return func(c *Config) {
		c.OutputPath = path
	}
}

// WithEnums toggles the enum declaration section.
func WithEnums(on bool) Option {
	return func(c *Config) {
		c.GenerateEnums = on
	}
}

// WithUnionTypes toggles the literal-union type alias section.
func WithUnionTypes(on bool) Option {
	return func(c *Config) {
		c.Enums.GenerateUnionTypes = on
	}
}

// WithNamingStrategy sets the enum member naming strategy:
// "pascal", "camel", or "snake".
func WithNamingStrategy(strategy string) Option {
	return func(c *Config) {
		c.Enums.NamingStrategy = strategy
	}
}

// WithInterfaces toggles the record interface section.
func WithInterfaces(on bool) Option {
	return func(c *Config) {
		c.GenerateInterfaces = on
	}
}

// WithMetadata controls the backend metadata fields on interfaces.
func WithMetadata(include, optional bool) Option {
	return func(c *Config) {
		c.Interfaces.IncludeMetadata = include
		c.Interfaces.OptionalMetadata = optional
	}
}

// WithInterfaceAffixes wraps every interface name with a prefix and suffix.
func WithInterfaceAffixes(prefix, suffix string) Option {
	return func(c *Config) {
		c.Interfaces.Prefix = prefix
		c.Interfaces.Suffix = suffix
	}
}

// WithDatabaseConstants toggles the DATABASES constant table.
func WithDatabaseConstants(on bool) Option {
	return func(c *Config) {
		c.GenerateDatabaseConstants = on
	}
}

// WithCollectionConstants toggles the COLLECTIONS constant table.
func WithCollectionConstants(on bool) Option {
	return func(c *Config) {
		c.GenerateCollectionConstants = on
	}
}

// WithConstantAffixes wraps every constant key with a prefix and suffix.
func WithConstantAffixes(prefix, suffix string) Option {
	return func(c *Config) {
		c.Constants.Prefix = prefix
		c.Constants.Suffix = suffix
	}
}

// WithConstantTransform overrides the default constant key sanitization.
func WithConstantTransform(fn func(string) string) Option {
	return func(c *Config) {
		c.Constants.Transform = fn
	}
}

// WithConstantComments toggles per-entry doc comments in constant tables.
func WithConstantComments(on bool) Option {
	return func(c *Config) {
		c.Constants.IncludeComments = on
	}
}

// WithTransformer appends a Go transformer to the pipeline.
func WithTransformer(fn Transformer) Option {
	return func(c *Config) {
		c.Transformers = append(c.Transformers, fn)
	}
}

// WithTransformerScript appends a JavaScript transformer file to the
// pipeline. Scripts run after all Go transformers.
func WithTransformerScript(path string) Option {
	return func(c *Config) {
		c.TransformerPaths = append(c.TransformerPaths, path)
	}
}

// WithTransformerTimeout bounds a single JS transformer invocation.
func WithTransformerTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.TransformerTimeout = d
	}
}

// WithLogger sets the logger for the client.
func WithLogger(l Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// defaultConfig returns the documented defaults: everything on, metadata
// optional, no affixes.
func defaultConfig() *Config {
	return &Config{
		GenerateEnums:               true,
		GenerateInterfaces:          true,
		GenerateDatabaseConstants:   true,
		GenerateCollectionConstants: true,
		Enums: EnumConfig{
			GenerateEnums:      true,
			GenerateUnionTypes: true,
			NamingStrategy:     "pascal",
		},
		Interfaces: InterfaceConfig{
			IncludeMetadata:  true,
			OptionalMetadata: true,
		},
		Constants: ConstantConfig{
			IncludeComments: true,
		},
		TransformerTimeout: 5 * time.Second,
	}
}
