package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hlop3z/typesmith/internal/ui"
)

// checkCmd validates the schema without generating anything.
func checkCmd() *cobra.Command {
	var schemaFlag string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the schema and report problems",
		Long:  `Check loads the schema document, verifies its structure, confirms every attribute maps to a declaration type, and validates declared default values.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(schemaFlag, "")
			if err != nil {
				return err
			}

			report, err := client.Check()
			if err != nil {
				return err
			}

			fmt.Printf("  %s\n", ui.FormatKeyValue("databases", fmt.Sprintf("%d", report.Databases)))
			fmt.Printf("  %s\n", ui.FormatKeyValue("collections", fmt.Sprintf("%d", report.Collections)))
			fmt.Printf("  %s\n", ui.FormatKeyValue("attributes", fmt.Sprintf("%d", report.Attributes)))
			fmt.Println()

			if report.OK() {
				fmt.Print(ui.FormatSuccess("schema is valid"))
				return nil
			}

			for _, p := range report.Problems {
				location := p.Collection
				if p.Attribute != "" {
					location += "." + p.Attribute
				}
				line := fmt.Sprintf("%s: %s", ui.FilePath(location), p.Message)
				if p.Code != "" {
					line += " " + ui.Dim("["+p.Code+"]")
				}
				fmt.Printf("  %s %s\n", ui.Error("✗"), line)
			}
			fmt.Println()

			return fmt.Errorf("schema check found %s",
				ui.FormatCount(len(report.Problems), "problem", "problems"))
		},
	}

	cmd.Flags().StringVar(&schemaFlag, "schema", "", "Path to the schema document (overrides config)")
	return cmd
}
