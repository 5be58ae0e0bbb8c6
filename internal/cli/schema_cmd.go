package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Inspect question schemas and canonical references",
	Long: `Inspect the answer schemas the question catalog declares.

Examples:
  # Print a synthesized OpenAPI document covering the whole catalog
  dakfaq schema openapi

  # Audit canonical URL coverage across question schemas
  dakfaq schema audit

  # Show the answer schema of one question
  dakfaq schema show dak-version
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var schemaOpenAPICmd = &cobra.Command{
	Use:   "openapi",
	Short: "Print an OpenAPI document for the question catalog",
	Long: `Synthesize and print an OpenAPI 3.0 document describing the execute
endpoint and every answer schema the catalog declares.

The document is rebuilt from the loaded catalog on every invocation, so it
always reflects the questions compiled into this binary.

Examples:
  dakfaq schema openapi > openapi.json
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := newEngine()
		if err != nil {
			return err
		}
		printLoadWarnings(eng.Initialize(context.Background()))

		return printJSON(cmd, eng.Schemas().OpenAPIDocument())
	},
}

var schemaAuditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit canonical URL coverage across question schemas",
	Long: `Report which questions declare canonical terminology URLs in their
answer schemas, which do not, and which schema fields look like candidates
for a canonical binding.

Examples:
  dakfaq schema audit
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := newEngine()
		if err != nil {
			return err
		}
		printLoadWarnings(eng.Initialize(context.Background()))

		return printJSON(cmd, eng.Schemas().AuditCanonicalReferences())
	},
}

var schemaShowCmd = &cobra.Command{
	Use:   "show [question-id]",
	Short: "Show the answer schema of a specific question",
	Long: `Print the declared answer schema of one question as JSON.

Examples:
  dakfaq schema show data-elements
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := newEngine()
		if err != nil {
			return err
		}
		printLoadWarnings(eng.Initialize(context.Background()))

		s, err := eng.Schemas().QuestionSchema(args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, s)
	},
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.AddCommand(schemaOpenAPICmd)
	schemaCmd.AddCommand(schemaAuditCmd)
	schemaCmd.AddCommand(schemaShowCmd)
}
