package cli

import (
	"fmt"
	"os"

	"dakfaq/internal/engine"
	"dakfaq/internal/flags"

	"github.com/spf13/cobra"
)

var (
	askParams     []string
	askAssetFiles []string
)

var askCmd = &cobra.Command{
	Use:   "ask [question-id]",
	Short: "Execute a single question against a DAK repository",
	Long: `Execute one question from the catalog and print its answer.

A failing question never aborts the command with a stack trace: unknown
question IDs, parameter violations, and executor failures all come back as a
structured failure response.

Output:
	Console output is controlled by --console-format (default: text).
	Structured outputs can be written via:
	- --out / --out-format: write an aggregate JSON array or NDJSON stream to a file
	- --emit: write an additional structured stream to stdout (json or ndjson)
	- --report: write a Markdown report
	- --no-console: suppress the console sink (use with --emit/--out for machine output)

	NDJSON mode emits one JSON object per line. Objects are lifecycle Events with
	a "type" field (run.started, question.result, run.finished).

Exit codes:
	0 = question answered
	1 = question failed
	3 = fatal error (nothing executed)

Examples:
  # Ask about the DAK version
  dakfaq ask dak-version --param repository=.

  # Ask about business processes in another repository, in French
  dakfaq ask business-processes --repo /srv/measles-dak --locale fr

  # Summarize a specific asset
  dakfaq ask asset-summary --asset-file input/process/registration.bpmn

  # AI Agent: stream machine-readable events to stdout
  dakfaq ask dak-name --no-console --emit ndjson
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		params, err := parseParamAssignments(askParams)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}
		req := engine.Request{
			QuestionID: args[0],
			Parameters: params,
			AssetFiles: askAssetFiles,
		}
		os.Exit(executeRequests([]engine.Request{req}, true))
	},
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringSliceVar(&askParams, flags.FlagParam, nil, "Question parameter as key=value (repeatable; comma-separated accepted)")
	askCmd.Flags().StringSliceVar(&askAssetFiles, flags.FlagAssetFile, nil, "Asset file path relative to the repository root (repeatable; comma-separated accepted)")

	addOutputFlags(askCmd)
	addRuntimeFlags(askCmd)
}
