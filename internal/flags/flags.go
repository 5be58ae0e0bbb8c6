package flags

// Package flags defines canonical CLI flag names shared across the CLI.
// Keeping these as constants helps avoid drift between Cobra flag wiring and
// other code paths that need to reference flags (e.g. error messages).
// IMPORTANT: These are flag *names* without leading dashes.
// Example usage:
//
//	cmd.Flags().StringVar(&cfg.Repository.Path, flags.FlagRepo, ".", "...")
//	arg := "--" + flags.FlagRepo
const (
	// Repository
	FlagRepo   = "repo"
	FlagLocale = "locale"

	// Question selection
	FlagLevel         = "level"
	FlagTags          = "tags"
	FlagComponentType = "component-type"
	FlagAssetType     = "asset-type"

	// Execution
	FlagParam     = "param"
	FlagAssetFile = "asset-file"
	FlagFile      = "file"

	// Canonical
	FlagCanonicalTTL = "canonical-ttl"

	// Output
	FlagConsoleFormat        = "console-format"
	FlagConsoleFilterOutcome = "console-filter-outcome"
	FlagReport               = "report"
	FlagOut                  = "out"
	FlagOutFormat            = "out-format"
	FlagEmit                 = "emit"
	FlagNoConsole            = "no-console"

	// Runtime
	FlagConcurrency = "concurrency"
	FlagTimeout     = "timeout"
	FlagVerbose     = "verbose"
)
