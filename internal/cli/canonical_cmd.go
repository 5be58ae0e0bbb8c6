package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"dakfaq/internal/canonical"
	"dakfaq/internal/flags"

	"github.com/spf13/cobra"
)

var canonicalCmd = &cobra.Command{
	Use:   "canonical",
	Short: "Resolve canonical terminology references",
	Long: `Resolve the canonical terminology URLs referenced by question schemas.

Canonical URLs identify FHIR terminology resources (code systems, value sets).
Resolution fetches each resource over HTTP and caches it for the run; duplicate
URLs are fetched once.

Examples:
  # Resolve every canonical URL the catalog references
  dakfaq canonical resolve

  # Resolve specific URLs
  dakfaq canonical resolve http://hl7.org/fhir/ValueSet/binding-strength
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

type canonicalOutcome struct {
	URL      string `json:"url"`
	Resolved bool   `json:"resolved"`
	Type     string `json:"type,omitempty"`
	Error    string `json:"error,omitempty"`
}

var canonicalResolveCmd = &cobra.Command{
	Use:   "resolve [url]...",
	Short: "Fetch and cache canonical resources",
	Long: `Fetch the given canonical URLs and print a resolution outcome per URL.

With no arguments, every canonical URL referenced by the loaded question
catalog is resolved. A URL that cannot be fetched or parsed is reported as
unresolved; it does not abort the rest.

Exit codes:
	0 = every URL resolved
	1 = one or more URLs failed to resolve
	3 = fatal error (nothing resolved)

Examples:
  dakfaq canonical resolve
  dakfaq canonical resolve http://smart.who.int/base/ValueSet/DAKComponents
`,
	Run: func(cmd *cobra.Command, args []string) {
		eng, _, err := newEngine()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}
		ctx := context.Background()
		printLoadWarnings(eng.Initialize(ctx))

		urls := args
		if len(urls) == 0 {
			urls = eng.Schemas().AuditCanonicalReferences().AllCanonicals()
		}
		if len(urls) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No canonical references to resolve.")
			return
		}

		svc := canonical.NewService(canonical.WithTTL(cfg.Canonical.TTL))

		outcomes := make([]canonicalOutcome, 0, len(urls))
		failures := 0
		for _, url := range urls {
			res, err := svc.Resolve(ctx, url)
			if err != nil {
				failures++
				outcome := canonicalOutcome{URL: url, Error: err.Error()}
				var rerr *canonical.ResolutionError
				if errors.As(err, &rerr) && cfg.Runtime.Verbose {
					fmt.Fprintf(os.Stderr, "Warning: resolve %s: %v\n", rerr.URL, rerr.Err)
				}
				outcomes = append(outcomes, outcome)
				continue
			}
			outcomes = append(outcomes, canonicalOutcome{URL: url, Resolved: true, Type: res.Type})
		}

		if err := printJSON(cmd, outcomes); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}
		if failures > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(canonicalCmd)
	canonicalCmd.AddCommand(canonicalResolveCmd)

	canonicalResolveCmd.Flags().DurationVar(&cfg.Canonical.TTL, flags.FlagCanonicalTTL, cfg.Canonical.TTL, "Freshness window for cached canonical resources (default: 1h)")
}
