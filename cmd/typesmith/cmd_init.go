package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hlop3z/typesmith/internal/ui"
)

const defaultConfigContent = `# typesmith.yaml
schema: ./appwrite.json
output: ./src/types.ts

generateEnums: true
generateInterfaces: true
generateDatabaseConstants: true
generateCollectionConstants: true

enums:
  generateUnionTypes: true
  namingStrategy: pascal # pascal | camel | snake

interfaces:
  includeMetadata: true
  optionalMetadata: true
  # prefix: I
  # suffix: Doc

idConstants:
  includeComments: true

# transformers:
#   - ./scripts/banner.js
`

const exampleSchemaContent = `{
  "databases": [
    {"id": "main", "name": "Main DB"}
  ],
  "collections": [
    {
      "id": "users",
      "databaseId": "main",
      "name": "Users",
      "attributes": [
        {"key": "name", "type": "string", "required": true, "size": 120},
        {"key": "age", "type": "integer"},
        {"key": "role", "type": "string", "required": true,
         "format": "enum", "enumValues": ["admin", "member"]},
        {"key": "posts", "type": "relationship",
         "relatedCollection": "posts", "relationCardinality": "oneToMany",
         "side": "parent", "isTwoWay": true, "twoWayKey": "author"}
      ]
    },
    {
      "id": "posts",
      "databaseId": "main",
      "name": "posts",
      "attributes": [
        {"key": "title", "type": "string", "required": true},
        {"key": "published", "type": "boolean"},
        {"key": "author", "type": "relationship",
         "relatedCollection": "Users", "relationCardinality": "oneToMany",
         "side": "child"}
      ]
    }
  ]
}
`

// initCmd writes a starter config and example schema.
func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create typesmith.yaml and an example schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			created := 0

			if _, err := os.Stat(configFile); os.IsNotExist(err) {
				if err := os.WriteFile(configFile, []byte(defaultConfigContent), 0o644); err != nil {
					return fmt.Errorf("failed to create %s: %w", configFile, err)
				}
				fmt.Printf("Created %s\n", configFile)
				created++
			} else {
				fmt.Print(ui.FormatNote(fmt.Sprintf("%s already exists, skipping", configFile)))
			}

			schemaPath := "appwrite.json"
			if _, err := os.Stat(schemaPath); os.IsNotExist(err) {
				if err := os.WriteFile(schemaPath, []byte(exampleSchemaContent), 0o644); err != nil {
					return fmt.Errorf("failed to create %s: %w", schemaPath, err)
				}
				fmt.Printf("Created %s\n", schemaPath)
				created++
			} else {
				fmt.Print(ui.FormatNote(fmt.Sprintf("%s already exists, skipping", schemaPath)))
			}

			if created > 0 {
				fmt.Println()
				fmt.Print(ui.FormatSuccess("project initialized"))
				fmt.Print(ui.FormatHelp("run `typesmith generate` to produce src/types.ts"))
			}
			return nil
		},
	}
}
