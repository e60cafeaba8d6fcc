package gen

import (
	"strings"
	"testing"

	"github.com/hlop3z/typesmith/internal/schema"
	"github.com/hlop3z/typesmith/internal/tserr"
)

func TestBuildInterface(t *testing.T) {
	col := schema.Collection{Name: "Users", Attributes: []schema.Attribute{
		{Key: "role", Type: "string", Required: true,
			Format: schema.FormatEnum, EnumValues: []string{"admin", "member"}},
		{Key: "age", Type: "integer"},
	}}

	got, err := BuildInterface(&col, &InterfaceConfig{})
	if err != nil {
		t.Fatalf("BuildInterface: %v", err)
	}

	if !strings.Contains(got, "export interface User {") {
		t.Errorf("declaration name:\n%s", got)
	}
	// Required attribute has no "?", optional one does
	if !strings.Contains(got, `  role: "admin" | "member";`) {
		t.Errorf("enum field:\n%s", got)
	}
	if !strings.Contains(got, "  age?: number;") {
		t.Errorf("optional field:\n%s", got)
	}
	// Metadata disabled
	if strings.Contains(got, "$id") {
		t.Errorf("metadata should be absent:\n%s", got)
	}
}

func TestBuildInterfaceMetadata(t *testing.T) {
	col := schema.Collection{Name: "posts", Attributes: []schema.Attribute{
		{Key: "title", Type: "string", Required: true},
	}}

	got, err := BuildInterface(&col, &InterfaceConfig{IncludeMetadata: true, OptionalMetadata: true})
	if err != nil {
		t.Fatal(err)
	}

	for _, field := range []string{
		"$id?: string;",
		"$createdAt?: string;",
		"$updatedAt?: string;",
		"$databaseId?: string;",
		"$collectionId?: string;",
		"$permissions?: string[];",
	} {
		if !strings.Contains(got, field) {
			t.Errorf("missing metadata field %q:\n%s", field, got)
		}
	}

	// Metadata precedes attribute fields
	if strings.Index(got, "$permissions") > strings.Index(got, "title:") {
		t.Errorf("metadata should come first:\n%s", got)
	}

	// Required metadata when the optional flag is off
	got, err = BuildInterface(&col, &InterfaceConfig{IncludeMetadata: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "$id: string;") || strings.Contains(got, "$id?: string;") {
		t.Errorf("metadata optionality:\n%s", got)
	}
}

func TestBuildInterfacePrefixSuffix(t *testing.T) {
	col := schema.Collection{Name: "users", Attributes: []schema.Attribute{
		{Key: "name", Type: "string", Required: true},
	}}

	got, err := BuildInterface(&col, &InterfaceConfig{Prefix: "I", Suffix: "Doc"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "export interface IUserDoc {") {
		t.Errorf("prefixed name:\n%s", got)
	}
}

func TestBuildInterfaceComments(t *testing.T) {
	col := schema.Collection{Name: "users", Attributes: []schema.Attribute{
		{Key: "bio", Type: "string", Size: 500},
		{Key: "role", Type: "string", Format: schema.FormatEnum, EnumValues: []string{"a", "b"}},
		{Key: "posts", Type: schema.TypeRelationship, Relationship: &schema.Relationship{
			RelatedCollection: "posts",
			Cardinality:       schema.OneToMany,
			Side:              schema.SideParent,
			TwoWay:            true,
			TwoWayKey:         "author",
			OnDelete:          "cascade",
		}},
	}}

	got, err := BuildInterface(&col, &InterfaceConfig{})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(got, "/** Max size: 500 */") {
		t.Errorf("size comment:\n%s", got)
	}
	if !strings.Contains(got, "/** Possible values: a, b */") {
		t.Errorf("enum comment:\n%s", got)
	}
	for _, line := range []string{
		"* Relationship: oneToMany with posts",
		"* Two-way key: author",
		"* On delete: cascade",
	} {
		if !strings.Contains(got, line) {
			t.Errorf("missing relationship comment %q:\n%s", line, got)
		}
	}
}

func TestBuildInterfaceUnsupportedType(t *testing.T) {
	col := schema.Collection{Name: "users", Attributes: []schema.Attribute{
		{Key: "ok", Type: "string"},
		{Key: "bad", Type: "blob"},
	}}

	_, err := BuildInterface(&col, &InterfaceConfig{})
	if err == nil {
		t.Fatal("expected error")
	}
	// The conversion error propagates unchanged
	if !tserr.Is(err, tserr.ErrUnsupportedType) {
		t.Errorf("code = %v", tserr.GetErrorCode(err))
	}
}
