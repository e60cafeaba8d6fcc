package main

import (
	"os"

	"github.com/hlop3z/typesmith/pkg/typesmith"
)

// Environment variable overrides.
const (
	EnvSchema = "TYPESMITH_SCHEMA"
	EnvOut    = "TYPESMITH_OUT"
)

// newClient builds a client from the layered configuration.
// Precedence: CLI flags > env vars > config file > defaults.
func newClient(schemaFlag, outFlag string) (*typesmith.Client, error) {
	var opts []typesmith.Option

	// Config file layer. A missing default file is fine; an explicit
	// --config pointing nowhere is not.
	if _, err := os.Stat(configFile); err == nil || configFile != "typesmith.yaml" {
		patch, err := typesmith.LoadPatch(configFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, typesmith.WithPatch(patch))
	}

	opts = append(opts, typesmith.WithPatch(envPatch()))
	opts = append(opts, typesmith.WithPatch(flagPatch(schemaFlag, outFlag)))

	return typesmith.New(opts...)
}

// envPatch collects TYPESMITH_* environment overrides.
func envPatch() *typesmith.Patch {
	p := &typesmith.Patch{}
	if v := os.Getenv(EnvSchema); v != "" {
		p.Schema = &v
	}
	if v := os.Getenv(EnvOut); v != "" {
		p.Output = &v
	}
	return p
}

// flagPatch collects the per-command flag overrides.
func flagPatch(schemaFlag, outFlag string) *typesmith.Patch {
	p := &typesmith.Patch{}
	if schemaFlag != "" {
		p.Schema = &schemaFlag
	}
	if outFlag != "" {
		p.Output = &outFlag
	}
	return p
}
