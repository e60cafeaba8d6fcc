package typesmith

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testSchema = `{
  "databases": [
    {"id": "db1", "name": "Main DB"}
  ],
  "collections": [
    {
      "id": "col1",
      "databaseId": "db1",
      "name": "Users",
      "attributes": [
        {"key": "role", "type": "string", "required": true,
         "format": "enum", "enumValues": ["admin", "member"]},
        {"key": "age", "type": "integer", "default": 18}
      ]
    },
    {"id": "col2", "databaseId": "db1", "name": "drafts", "attributes": []}
  ]
}`

func writeSchema(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "appwrite.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGenerateText(t *testing.T) {
	client, err := New(WithSchemaPath(writeSchema(t, testSchema)))
	if err != nil {
		t.Fatal(err)
	}
	client.config.now = func() time.Time {
		return time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	}

	got, err := client.GenerateText()
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}

	for _, want := range []string{
		"// Generated at: 2024-01-15T10:30:00Z",
		`export type UsersRole = "admin" | "member";`,
		"export enum UsersRole {",
		"export interface User {",
		"$id?: string;",
		"age?: number;",
		"export const DATABASES = {",
		"MAIN_DB: 'db1',",
		"export const COLLECTIONS = {",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}

	if !strings.HasSuffix(got, "\n") || strings.HasSuffix(got, "\n\n") {
		t.Errorf("document should end with exactly one newline")
	}
}

func TestGenerateWritesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "types.ts")
	client, err := New(
		WithSchemaPath(writeSchema(t, testSchema)),
		WithOutputPath(out),
	)
	if err != nil {
		t.Fatal(err)
	}

	res, err := client.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if len(data) != res.Bytes {
		t.Errorf("Bytes = %d, file has %d", res.Bytes, len(data))
	}
	if res.Collections != 1 || res.Enums != 1 {
		t.Errorf("result = %+v", res)
	}
}

func TestGenerateFailureLeavesNoFile(t *testing.T) {
	badSchema := `{
  "collections": [
    {"id": "c1", "name": "users", "attributes": [
      {"key": "blob", "type": "binary"}
    ]}
  ]
}`
	out := filepath.Join(t.TempDir(), "types.ts")
	client, err := New(
		WithSchemaPath(writeSchema(t, badSchema)),
		WithOutputPath(out),
	)
	if err != nil {
		t.Fatal(err)
	}

	_, genErr := client.Generate()
	if genErr == nil {
		t.Fatal("expected generation failure")
	}
	if ErrorCode(genErr) != "E5001" {
		t.Errorf("code = %q", ErrorCode(genErr))
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("failed run must not leave an output file")
	}
}

func TestMissingPaths(t *testing.T) {
	client, err := New()
	if err != nil {
		t.Fatal(err)
	}

	if _, err := client.Generate(); !errors.Is(err, ErrMissingOutputPath) {
		t.Errorf("Generate without output: %v", err)
	}
	if _, err := client.GenerateText(); !errors.Is(err, ErrMissingSchemaPath) {
		t.Errorf("GenerateText without schema: %v", err)
	}
	if _, err := client.Check(); !errors.Is(err, ErrMissingSchemaPath) {
		t.Errorf("Check without schema: %v", err)
	}
}

func TestSchemaNotFound(t *testing.T) {
	client, err := New(WithSchemaPath(filepath.Join(t.TempDir(), "missing.json")))
	if err != nil {
		t.Fatal(err)
	}

	_, err = client.GenerateText()
	if err == nil {
		t.Fatal("expected error")
	}
	if ErrorCode(err) != "E2001" {
		t.Errorf("code = %q", ErrorCode(err))
	}
}

func TestOptionsDisableSections(t *testing.T) {
	client, err := New(
		WithSchemaPath(writeSchema(t, testSchema)),
		WithEnums(false),
		WithInterfaces(false),
		WithDatabaseConstants(false),
	)
	if err != nil {
		t.Fatal(err)
	}

	got, err := client.GenerateText()
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "export enum") || strings.Contains(got, "export interface") {
		t.Errorf("disabled sections present:\n%s", got)
	}
	if strings.Contains(got, "DATABASES") {
		t.Errorf("database table should be off:\n%s", got)
	}
	if !strings.Contains(got, "COLLECTIONS") {
		t.Errorf("collection table missing:\n%s", got)
	}
}

func TestInterfaceAffixes(t *testing.T) {
	client, err := New(
		WithSchemaPath(writeSchema(t, testSchema)),
		WithInterfaceAffixes("I", "Doc"),
	)
	if err != nil {
		t.Fatal(err)
	}

	got, err := client.GenerateText()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "export interface IUserDoc {") {
		t.Errorf("affixed interface missing:\n%s", got)
	}
}

func TestGoTransformer(t *testing.T) {
	var saw []string
	client, err := New(
		WithSchemaPath(writeSchema(t, testSchema)),
		WithTransformer(func(text string, ctx *TransformContext) (string, error) {
			saw = ctx.Collections
			return "// prelude\n" + text, nil
		}),
	)
	if err != nil {
		t.Fatal(err)
	}

	got, err := client.GenerateText()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "// prelude\n") {
		t.Errorf("transformer output not applied:\n%s", got)
	}
	if len(saw) != 1 || saw[0] != "Users" {
		t.Errorf("transformer context = %v", saw)
	}
}

func TestGoTransformerSchemaView(t *testing.T) {
	relSchema := `{
  "databases": [
    {"id": "db1", "name": "Main DB"}
  ],
  "collections": [
    {
      "id": "col1",
      "databaseId": "db1",
      "name": "Users",
      "attributes": [
        {"key": "role", "type": "string", "required": true,
         "format": "enum", "enumValues": ["admin", "member"]},
        {"key": "posts", "type": "relationship",
         "relatedCollection": "posts", "relationCardinality": "oneToMany",
         "side": "parent", "isTwoWay": true, "twoWayKey": "author"}
      ]
    },
    {
      "id": "col2",
      "databaseId": "db1",
      "name": "posts",
      "attributes": [
        {"key": "title", "type": "string", "required": true}
      ]
    }
  ]
}`

	var seen *Schema
	client, err := New(
		WithSchemaPath(writeSchema(t, relSchema)),
		WithTransformer(func(text string, ctx *TransformContext) (string, error) {
			seen = ctx.Schema
			return text, nil
		}),
	)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := client.GenerateText(); err != nil {
		t.Fatal(err)
	}

	if seen == nil {
		t.Fatal("transformer received no schema view")
	}
	if len(seen.Databases) != 1 || seen.Databases[0].ID != "db1" {
		t.Errorf("databases = %+v", seen.Databases)
	}
	if len(seen.Collections) != 2 || seen.Collections[0].Name != "Users" {
		t.Fatalf("collections = %+v", seen.Collections)
	}

	role := seen.Collections[0].Attributes[0]
	if role.Format != "enum" || len(role.EnumValues) != 2 || role.EnumValues[0] != "admin" {
		t.Errorf("enum attribute = %+v", role)
	}

	rel := seen.Collections[0].Attributes[1].Relationship
	if rel == nil {
		t.Fatal("relationship attribute lost its variant")
	}
	if rel.RelatedCollection != "posts" || rel.Cardinality != "oneToMany" || rel.Side != "parent" {
		t.Errorf("relationship = %+v", rel)
	}
	if !rel.TwoWay || rel.TwoWayKey != "author" {
		t.Errorf("two-way fields = %+v", rel)
	}
}

func TestTransformerErrorPropagates(t *testing.T) {
	boom := errors.New("nope")
	client, err := New(
		WithSchemaPath(writeSchema(t, testSchema)),
		WithTransformer(func(string, *TransformContext) (string, error) {
			return "", boom
		}),
	)
	if err != nil {
		t.Fatal(err)
	}

	_, err = client.GenerateText()
	if !errors.Is(err, boom) {
		t.Errorf("transformer error should propagate unchanged: %v", err)
	}
}

func TestJSTransformerScript(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "banner.js")
	if err := os.WriteFile(script, []byte(
		`export default function (text, context) {
			return "// collections: " + context.collections.join(",") + "\n" + text;
		}`), 0o644); err != nil {
		t.Fatal(err)
	}

	client, err := New(
		WithSchemaPath(writeSchema(t, testSchema)),
		WithTransformerScript(script),
	)
	if err != nil {
		t.Fatal(err)
	}

	got, err := client.GenerateText()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "// collections: Users\n") {
		t.Errorf("JS transformer not applied:\n%s", got)
	}
}

func TestCheck(t *testing.T) {
	client, err := New(WithSchemaPath(writeSchema(t, testSchema)))
	if err != nil {
		t.Fatal(err)
	}

	report, err := client.Check()
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !report.OK() {
		t.Errorf("problems = %+v", report.Problems)
	}
	if report.Databases != 1 || report.Collections != 2 || report.Attributes != 2 {
		t.Errorf("report = %+v", report)
	}
}

func TestCheckReportsProblems(t *testing.T) {
	badSchema := `{
  "collections": [
    {"id": "c1", "name": "users", "attributes": [
      {"key": "payload", "type": "binary"},
      {"key": "age", "type": "integer", "default": "not a number"}
    ]}
  ]
}`
	client, err := New(WithSchemaPath(writeSchema(t, badSchema)))
	if err != nil {
		t.Fatal(err)
	}

	report, err := client.Check()
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Problems) != 2 {
		t.Fatalf("problems = %+v", report.Problems)
	}
	if report.Problems[0].Attribute != "payload" || report.Problems[0].Code != "E4001" {
		t.Errorf("unsupported type problem = %+v", report.Problems[0])
	}
	if report.Problems[1].Attribute != "age" || !strings.Contains(report.Problems[1].Message, "default value") {
		t.Errorf("default value problem = %+v", report.Problems[1])
	}
}
