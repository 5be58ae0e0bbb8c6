package cli

import (
	"fmt"
	"os"

	"dakfaq/internal/flags"

	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "dakfaq",
	Short: "Answer structured questions about WHO Digital Adaptation Kit repositories",
	Long: `dakfaq answers a catalog of structured questions about a DAK repository:
its metadata, its components (business processes, decision tables, data
elements, terminology), and individual assets.

Every answer carries both a machine-readable structure and a human-readable
narrative, localized when a translation catalog is available.

Examples:
	# Show available commands and global flags
	dakfaq --help

	# Ask a single question about the repository in the current directory
	dakfaq ask dak-version --param repository=.

	# List the question catalog
	dakfaq questions list

	# Print build info
	dakfaq version

Output:
	By default, commands write human-readable output to stdout.
	Execution commands support structured output via emitter flags (see each
	command's --help).`,
}

func init() {
	// Defaults come from the config so DAKFAQ_* environment variables survive
	// when the flag is not passed.
	rootCmd.PersistentFlags().StringVar(&cfg.Repository.Path, flags.FlagRepo, cfg.Repository.Path, "Path to the DAK repository root")
	rootCmd.PersistentFlags().StringVar(&cfg.Repository.Locale, flags.FlagLocale, cfg.Repository.Locale, "Narrative locale as a BCP 47 tag (falls back to en)")
	rootCmd.PersistentFlags().BoolVar(&cfg.Runtime.Verbose, flags.FlagVerbose, false, "Enable verbose diagnostics (prints question load warnings and full error details)")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
