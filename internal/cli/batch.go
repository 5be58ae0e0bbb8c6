package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"dakfaq/internal/engine"
	"dakfaq/internal/flags"

	"github.com/spf13/cobra"
)

var batchFilePath string

type batchFile struct {
	Requests []engine.Request `json:"requests"`
	Context  struct {
		RepositoryPath string `json:"repositoryPath"`
	} `json:"context"`
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Execute a batch of questions from a JSON file",
	Long: `Execute a batch of questions and print per-question answers plus a summary.

Responses come back in request order regardless of execution order, and one
failing question never aborts the rest of the batch.

Request file format (JSON):
  {
    "requests": [
      {"questionId": "dak-version", "parameters": {"repository": "."}},
      {"questionId": "business-processes"},
      {"questionId": "asset-summary", "assetFiles": ["input/process/registration.bpmn"]}
    ],
    "context": {"repositoryPath": "/srv/measles-dak"}
  }

The context block is optional; --repo takes precedence when passed. A bare
JSON array of requests is also accepted.

Exit codes:
	0 = every question answered
	1 = one or more questions failed
	3 = fatal error (nothing executed)

Examples:
  dakfaq batch --file requests.json
  dakfaq batch --file requests.json --report report.md --out results.ndjson
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		reqs, repoPath, err := readBatchFile(batchFilePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}
		// The file's context wins only when --repo was not passed.
		if repoPath != "" && !cmd.Root().PersistentFlags().Changed(flags.FlagRepo) {
			cfg.Repository.Path = repoPath
		}
		os.Exit(executeRequests(reqs, false))
	},
}

func readBatchFile(path string) ([]engine.Request, string, error) {
	if path == "" {
		return nil, "", fmt.Errorf("--%s is required", flags.FlagFile)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read batch file: %w", err)
	}

	var wrapped batchFile
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Requests != nil {
		return wrapped.Requests, wrapped.Context.RepositoryPath, nil
	}

	var bare []engine.Request
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, "", fmt.Errorf("parse batch file %s: %w", path, err)
	}
	return bare, "", nil
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchFilePath, flags.FlagFile, "", "Path to the JSON batch request file (required)")
	_ = batchCmd.MarkFlagRequired(flags.FlagFile)

	addOutputFlags(batchCmd)
	addRuntimeFlags(batchCmd)
}
