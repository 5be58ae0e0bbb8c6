package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"dakfaq/internal/engine"
	"dakfaq/internal/flags"
	"dakfaq/internal/question"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	questionsListQuiet   bool
	questionsListFilters engine.Filters
	questionsListTags    []string
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Manage and list questions",
	Long: `Manage the dakfaq question catalog.

This command group helps you discover which questions exist, what each
question answers, and which parameters it accepts.
Questions are executed with "dakfaq ask" and "dakfaq batch".

Examples:
  # List all available questions
  dakfaq questions list
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available questions",
	Long: `List all questions currently registered in this build.

Questions are listed in registration order and can be filtered by level,
tags, component type, or asset type.

Examples:
  dakfaq questions list
  dakfaq questions list --level component
  dakfaq questions list --tags terminology,metadata

Output:
  A vertical list of questions:
    ----------------------------------------
    QUESTION: {ID} ({LEVEL})
    ----------------------------------------
    {TITLE}
    {DESCRIPTION}
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := newEngine()
		if err != nil {
			return err
		}
		ctx := context.Background()
		printLoadWarnings(eng.Initialize(ctx))

		questionsListFilters.Tags = questionsListTags
		for _, d := range eng.Catalog(ctx, questionsListFilters) {
			if questionsListQuiet {
				fmt.Fprintln(cmd.OutOrStdout(), d.ID)
			} else {
				printQuestion(cmd.OutOrStdout(), d)
			}
		}
		return nil
	},
}

var questionsShowCmd = &cobra.Command{
	Use:   "show [question-id]",
	Short: "Show details of a specific question",
	Long: `Show details of a specific question by its ID.

Examples:
  dakfaq questions show dak-version
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := newEngine()
		if err != nil {
			return err
		}
		ctx := context.Background()
		printLoadWarnings(eng.Initialize(ctx))

		for _, d := range eng.Catalog(ctx, engine.Filters{}) {
			if d.ID == args[0] {
				printQuestion(cmd.OutOrStdout(), d)
				return nil
			}
		}
		return fmt.Errorf("question not found: %s", args[0])
	},
}

func printQuestion(w io.Writer, d question.Definition) {
	bold := color.New(color.Bold)
	fmt.Fprintln(w, "----------------------------------------")
	bold.Fprintf(w, "QUESTION: %s (%s)\n", d.ID, d.Level)
	fmt.Fprintln(w, "----------------------------------------")
	fmt.Fprintln(w, d.Title)
	fmt.Fprintln(w, d.Description)

	if len(d.Tags) > 0 {
		fmt.Fprintf(w, "Tags: %s\n", strings.Join(d.Tags, ", "))
	}
	if d.ComponentType != "" {
		fmt.Fprintf(w, "Component type: %s\n", d.ComponentType)
	}
	if d.AssetType != "" {
		fmt.Fprintf(w, "Asset type: %s\n", d.AssetType)
	}

	if len(d.Parameters) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Parameters:")
		for _, p := range d.Parameters {
			fmt.Fprintf(w, "  %s\n", p.Name)
			fmt.Fprintf(w, "    Description: %s\n", p.Description)
			fmt.Fprintf(w, "    Type:        %s\n", p.Type)
			fmt.Fprintf(w, "    Required:    %t\n", p.Required)
		}
	}
	fmt.Fprintln(w)
}

func init() {
	rootCmd.AddCommand(questionsCmd)
	questionsCmd.AddCommand(questionsListCmd)
	questionsListCmd.Flags().BoolVarP(&questionsListQuiet, "quiet", "q", false, "Only print question IDs")
	questionsListCmd.Flags().StringVar(&questionsListFilters.Level, flags.FlagLevel, "", "Filter by level: dak|component|asset")
	questionsListCmd.Flags().StringSliceVar(&questionsListTags, flags.FlagTags, nil, "Filter by tag (any match; repeatable; comma-separated accepted)")
	questionsListCmd.Flags().StringVar(&questionsListFilters.ComponentType, flags.FlagComponentType, "", "Filter by component type")
	questionsListCmd.Flags().StringVar(&questionsListFilters.AssetType, flags.FlagAssetType, "", "Filter by asset type")
	questionsCmd.AddCommand(questionsShowCmd)
}
