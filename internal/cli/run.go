package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"dakfaq/internal/config"
	"dakfaq/internal/engine"
	"dakfaq/internal/flags"
	"dakfaq/internal/i18n"
	"dakfaq/internal/output"
	"dakfaq/internal/question"
	"dakfaq/internal/storage"

	"github.com/spf13/cobra"
)

var cfg = loadConfig()

func loadConfig() *config.Config {
	c, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		return config.New()
	}
	return c
}

// newEngine builds the engine over the package-level question registrations.
func newEngine() (*engine.Engine, *i18n.Bundle, error) {
	bundle, err := i18n.LoadEmbedded()
	if err != nil {
		return nil, nil, fmt.Errorf("load locale catalogs: %w", err)
	}
	eng := engine.New(question.NewRegistry(),
		engine.WithI18n(bundle),
		engine.WithConcurrency(cfg.Runtime.Concurrency),
	)
	return eng, bundle, nil
}

func printLoadWarnings(warnings []question.LoadError) {
	if !cfg.Runtime.Verbose {
		return
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: question module %s: %s\n", w.Source, w.Reason)
	}
}

// buildManager assembles the sink fan-out from output config. levels maps
// question IDs to their level for the Markdown report.
func buildManager(levels map[string]string) (*output.Manager, error) {
	mgr := output.NewManager()

	if !cfg.Output.NoConsole {
		sink := output.NewConsoleSink(os.Stdout, cfg.Output.ConsoleFormat, cfg.Output.ConsoleFilterOutcome)
		if err := mgr.AddSink(sink); err != nil {
			return nil, err
		}
	}

	for _, format := range cfg.Output.Emit {
		sink, err := output.NewEmitSink(os.Stdout, format)
		if err != nil {
			return nil, err
		}
		if err := mgr.AddSink(sink); err != nil {
			return nil, err
		}
	}

	if cfg.Output.Out != "" {
		sink, err := output.NewFileSink(cfg.Output.Out, cfg.Output.OutFormat)
		if err != nil {
			return nil, err
		}
		if err := mgr.AddSink(sink); err != nil {
			return nil, err
		}
	}

	if cfg.Output.Report != "" {
		sink, err := output.NewReportSink(cfg.Output.Report, levels)
		if err != nil {
			return nil, err
		}
		if err := mgr.AddSink(sink); err != nil {
			return nil, err
		}
	}

	return mgr, nil
}

func questionLevels(eng *engine.Engine, ctx context.Context) map[string]string {
	levels := make(map[string]string)
	for _, d := range eng.Catalog(ctx, engine.Filters{}) {
		levels[d.ID] = string(d.Level)
	}
	return levels
}

// executeRequests runs requests through the engine and fans responses out to
// the configured sinks. coerceStrings converts --param string values to the
// declared parameter types; batch JSON carries real types and passes false.
// Exit codes: 0 = all answered, 1 = one or more failed, 3 = fatal error
// (nothing executed).
func executeRequests(reqs []engine.Request, coerceStrings bool) int {
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 3
	}

	eng, _, err := newEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 3
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Runtime.Timeout)
	defer cancel()

	printLoadWarnings(eng.Initialize(ctx))

	if coerceStrings {
		coerceParamStrings(eng, ctx, reqs)
	}

	st, err := storage.NewLocal(cfg.Repository.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: open repository %s: %v\n", cfg.Repository.Path, err)
		return 3
	}

	mgr, err := buildManager(questionLevels(eng, ctx))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 3
	}

	ec := engine.Context{
		Storage:        st,
		Locale:         cfg.Repository.Locale,
		RepositoryPath: cfg.Repository.Path,
	}

	if err := mgr.Write(output.Event{Type: "run.started", Questions: len(reqs)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	batch := eng.ExecuteBatch(ctx, reqs, ec)
	for _, r := range batch.Responses {
		if err := mgr.Write(r); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}
	if err := mgr.Write(batch.Summary); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	exitCode := 0
	if batch.Summary.Failed > 0 {
		exitCode = 1
	}

	if err := mgr.Write(output.Event{Type: "run.finished", ExitCode: exitCode}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if err := mgr.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if exitCode == 0 {
			exitCode = 1
		}
	}
	return exitCode
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&cfg.Output.ConsoleFormat, flags.FlagConsoleFormat, cfg.Output.ConsoleFormat, "Console output format: text|json|ndjson (default: text)")
	cmd.Flags().StringSliceVar(&cfg.Output.ConsoleFilterOutcome, flags.FlagConsoleFilterOutcome, nil, "Filter console output by outcome (success, failure). Comma-separated.")
	cmd.Flags().StringVar(&cfg.Output.Report, flags.FlagReport, "", "Write a Markdown report to this path")
	cmd.Flags().StringVar(&cfg.Output.Out, flags.FlagOut, "", "Write structured output to this path")
	cmd.Flags().StringVar(&cfg.Output.OutFormat, flags.FlagOutFormat, "", "Structured output format for --out: json|ndjson (default: inferred from file extension)")
	cmd.Flags().StringSliceVar(&cfg.Output.Emit, flags.FlagEmit, nil, "Emit additional structured stream to stdout: json|ndjson (repeatable; comma-separated accepted)")
	cmd.Flags().BoolVar(&cfg.Output.NoConsole, flags.FlagNoConsole, false, "Suppress console output (use with --emit/--out/--report)")
}

func addRuntimeFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&cfg.Runtime.Concurrency, flags.FlagConcurrency, cfg.Runtime.Concurrency, "Concurrent question executions (default: 8)")
	cmd.Flags().DurationVar(&cfg.Runtime.Timeout, flags.FlagTimeout, cfg.Runtime.Timeout, "Global timeout (default: 10m)")
}

// coerceParamStrings converts string parameter values to the type each
// question declares, so --param includeExtensions=true reaches a boolean
// parameter as a bool. Values that do not parse stay strings and fail
// validation with the type mismatch.
func coerceParamStrings(eng *engine.Engine, ctx context.Context, reqs []engine.Request) {
	defs := make(map[string]question.Definition)
	for _, d := range eng.Catalog(ctx, engine.Filters{}) {
		defs[d.ID] = d
	}
	for _, req := range reqs {
		def, ok := defs[req.QuestionID]
		if !ok {
			continue
		}
		for _, p := range def.Parameters {
			raw, isString := req.Parameters[p.Name].(string)
			if !isString {
				continue
			}
			switch p.Type {
			case "boolean":
				if b, err := strconv.ParseBool(raw); err == nil {
					req.Parameters[p.Name] = b
				}
			case "integer":
				if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
					req.Parameters[p.Name] = n
				}
			case "number":
				if f, err := strconv.ParseFloat(raw, 64); err == nil {
					req.Parameters[p.Name] = f
				}
			}
		}
	}
}

// parseParamAssignments parses repeated --param values of the form key=value.
// Values stay strings here; coerceParamStrings applies the declared types
// once the catalog is loaded.
func parseParamAssignments(values []string) (map[string]any, error) {
	if len(values) == 0 {
		return nil, nil
	}
	params := make(map[string]any, len(values))
	for _, raw := range values {
		key, value, ok := strings.Cut(raw, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --param entry %q: expected key=value", raw)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("invalid --param entry %q: expected non-empty key", raw)
		}
		params[key] = value
	}
	return params, nil
}
