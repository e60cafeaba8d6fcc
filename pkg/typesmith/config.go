package typesmith

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hlop3z/typesmith/internal/tserr"
)

// Patch is a partial configuration overlay, typically decoded from a
// typesmith.yaml file. nil fields inherit the layer below; set fields win.
// Nested sections merge field by field, never wholesale.
type Patch struct {
	Schema *string `yaml:"schema"`
	Output *string `yaml:"output"`

	GenerateEnums               *bool `yaml:"generateEnums"`
	GenerateInterfaces          *bool `yaml:"generateInterfaces"`
	GenerateDatabaseConstants   *bool `yaml:"generateDatabaseConstants"`
	GenerateCollectionConstants *bool `yaml:"generateCollectionConstants"`

	Enums       *EnumPatch      `yaml:"enums"`
	Interfaces  *InterfacePatch `yaml:"interfaces"`
	IDConstants *ConstantPatch  `yaml:"idConstants"`

	// Transformers appends JS script paths to the pipeline.
	Transformers []string `yaml:"transformers"`

	// TransformerTimeout is a Go duration string, e.g. "5s".
	TransformerTimeout *string `yaml:"transformerTimeout"`
}

// EnumPatch overlays the enum section.
type EnumPatch struct {
	GenerateEnums      *bool   `yaml:"generateEnums"`
	GenerateUnionTypes *bool   `yaml:"generateUnionTypes"`
	NamingStrategy     *string `yaml:"namingStrategy"`
}

// InterfacePatch overlays the interface section.
type InterfacePatch struct {
	IncludeMetadata  *bool   `yaml:"includeMetadata"`
	OptionalMetadata *bool   `yaml:"optionalMetadata"`
	Prefix           *string `yaml:"prefix"`
	Suffix           *string `yaml:"suffix"`
}

// ConstantPatch overlays the identifier constant section.
type ConstantPatch struct {
	Prefix          *string `yaml:"prefix"`
	Suffix          *string `yaml:"suffix"`
	IncludeComments *bool   `yaml:"includeComments"`
}

// LoadPatch reads and decodes a YAML configuration file.
func LoadPatch(path string) (*Patch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, tserr.Wrap(tserr.ErrConfigInvalid, err, "cannot read config file").
			WithFile(path)
	}
	return ParsePatch(data, path)
}

// ParsePatch decodes a YAML configuration document. path is used for error
// reporting only.
func ParsePatch(data []byte, path string) (*Patch, error) {
	var p Patch
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, tserr.Wrap(tserr.ErrConfigInvalid, err, "config file is not valid YAML").
			WithFile(path)
	}
	if p.TransformerTimeout != nil {
		if _, err := time.ParseDuration(*p.TransformerTimeout); err != nil {
			return nil, tserr.Wrap(tserr.ErrConfigInvalid, err, "invalid transformerTimeout").
				WithFile(path).
				WithHelp("use a Go duration string such as \"5s\" or \"250ms\"")
		}
	}
	return &p, nil
}

// ApplyTo merges the patch onto cfg: set fields overwrite, nil fields keep
// the existing value, transformer lists append.
func (p *Patch) ApplyTo(cfg *Config) {
	if p == nil {
		return
	}

	setString(&cfg.SchemaPath, p.Schema)
	setString(&cfg.OutputPath, p.Output)

	setBool(&cfg.GenerateEnums, p.GenerateEnums)
	setBool(&cfg.GenerateInterfaces, p.GenerateInterfaces)
	setBool(&cfg.GenerateDatabaseConstants, p.GenerateDatabaseConstants)
	setBool(&cfg.GenerateCollectionConstants, p.GenerateCollectionConstants)

	if p.Enums != nil {
		setBool(&cfg.Enums.GenerateEnums, p.Enums.GenerateEnums)
		setBool(&cfg.Enums.GenerateUnionTypes, p.Enums.GenerateUnionTypes)
		setString(&cfg.Enums.NamingStrategy, p.Enums.NamingStrategy)
	}
	if p.Interfaces != nil {
		setBool(&cfg.Interfaces.IncludeMetadata, p.Interfaces.IncludeMetadata)
		setBool(&cfg.Interfaces.OptionalMetadata, p.Interfaces.OptionalMetadata)
		setString(&cfg.Interfaces.Prefix, p.Interfaces.Prefix)
		setString(&cfg.Interfaces.Suffix, p.Interfaces.Suffix)
	}
	if p.IDConstants != nil {
		setString(&cfg.Constants.Prefix, p.IDConstants.Prefix)
		setString(&cfg.Constants.Suffix, p.IDConstants.Suffix)
		setBool(&cfg.Constants.IncludeComments, p.IDConstants.IncludeComments)
	}

	cfg.TransformerPaths = append(cfg.TransformerPaths, p.Transformers...)

	if p.TransformerTimeout != nil {
		if d, err := time.ParseDuration(*p.TransformerTimeout); err == nil {
			cfg.TransformerTimeout = d
		}
	}
}

// WithPatch applies a configuration overlay as a functional option.
// Layer patches in precedence order: the last one applied wins.
func WithPatch(p *Patch) Option {
	return func(c *Config) {
		p.ApplyTo(c)
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
