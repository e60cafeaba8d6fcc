package typesmith

import (
	"strings"
	"testing"
	"time"
)

func TestParsePatch(t *testing.T) {
	doc := `
schema: ./appwrite.json
output: ./src/types.ts
generateEnums: false
enums:
  generateUnionTypes: false
  namingStrategy: snake
interfaces:
  prefix: I
  optionalMetadata: false
idConstants:
  includeComments: false
transformers:
  - ./scripts/banner.js
transformerTimeout: 250ms
`
	p, err := ParsePatch([]byte(doc), "typesmith.yaml")
	if err != nil {
		t.Fatalf("ParsePatch: %v", err)
	}

	cfg := defaultConfig()
	p.ApplyTo(cfg)

	if cfg.SchemaPath != "./appwrite.json" || cfg.OutputPath != "./src/types.ts" {
		t.Errorf("paths = %q, %q", cfg.SchemaPath, cfg.OutputPath)
	}
	if cfg.GenerateEnums {
		t.Error("generateEnums: false should override the default")
	}
	if cfg.Enums.GenerateUnionTypes || cfg.Enums.NamingStrategy != "snake" {
		t.Errorf("enums = %+v", cfg.Enums)
	}
	// Untouched nested fields keep their defaults
	if !cfg.Enums.GenerateEnums {
		t.Error("nested merge should not clear unset fields")
	}
	if cfg.Interfaces.Prefix != "I" || cfg.Interfaces.OptionalMetadata {
		t.Errorf("interfaces = %+v", cfg.Interfaces)
	}
	if !cfg.Interfaces.IncludeMetadata {
		t.Error("includeMetadata default lost in merge")
	}
	if cfg.Constants.IncludeComments {
		t.Error("idConstants.includeComments: false should apply")
	}
	if len(cfg.TransformerPaths) != 1 || cfg.TransformerPaths[0] != "./scripts/banner.js" {
		t.Errorf("transformers = %v", cfg.TransformerPaths)
	}
	if cfg.TransformerTimeout != 250*time.Millisecond {
		t.Errorf("timeout = %v", cfg.TransformerTimeout)
	}
}

func TestParsePatchInvalidYAML(t *testing.T) {
	_, err := ParsePatch([]byte("schema: [unclosed"), "typesmith.yaml")
	if err == nil {
		t.Fatal("expected error")
	}
	if ErrorCode(err) != "E1001" {
		t.Errorf("code = %q", ErrorCode(err))
	}
}

func TestParsePatchInvalidTimeout(t *testing.T) {
	_, err := ParsePatch([]byte("transformerTimeout: soon"), "typesmith.yaml")
	if err == nil {
		t.Fatal("expected error")
	}
	if ErrorCode(err) != "E1001" {
		t.Errorf("code = %q", ErrorCode(err))
	}
	if !strings.Contains(err.Error(), "transformerTimeout") {
		t.Errorf("error should name the field: %s", err)
	}
}

func TestApplyToNilPatch(t *testing.T) {
	cfg := defaultConfig()
	var p *Patch
	p.ApplyTo(cfg)

	if !cfg.GenerateEnums || !cfg.GenerateInterfaces {
		t.Error("nil patch must not change anything")
	}
}

func TestPatchLayering(t *testing.T) {
	// defaults <- file <- flags: the later layer wins per field.
	cfg := defaultConfig()

	file, err := ParsePatch([]byte("schema: from-file.json\noutput: from-file.ts"), "")
	if err != nil {
		t.Fatal(err)
	}
	file.ApplyTo(cfg)

	flagOut := "from-flag.ts"
	flags := &Patch{Output: &flagOut}
	flags.ApplyTo(cfg)

	if cfg.SchemaPath != "from-file.json" {
		t.Errorf("schema = %q", cfg.SchemaPath)
	}
	if cfg.OutputPath != "from-flag.ts" {
		t.Errorf("output = %q, later layer should win", cfg.OutputPath)
	}
}
