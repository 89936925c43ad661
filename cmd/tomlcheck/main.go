package main

import (
	"fmt"
	"os"
	"time"

	"github.com/aledsdavies/tomlfront/internal/checker"
	"github.com/aledsdavies/tomlfront/internal/diag"
	"github.com/aledsdavies/tomlfront/pkgs/document"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Build-time variables, set via ldflags.
var (
	Version string = "dev"
	Commit  string = "unknown"
)

var (
	jsonOutput bool
	noColor    bool
	verbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(2)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tomlcheck [flags] <file>...",
	Short: "Check TOML files for syntax errors",
	Long: `tomlcheck lexes and parses one or more TOML files and reports every
syntax diagnostic it finds, without evaluating or coercing values.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tomlcheck %s (%s)\n", Version, Commit)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit diagnostics as JSON instead of text")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored terminal output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log startup and per-file timing")
	rootCmd.AddCommand(versionCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := newLogger(verbose)
	defer logger.Sync()

	logger.Info("starting check", zap.Int("file_count", len(args)))

	var all []diag.Diagnostic
	sources := make(map[string]string, len(args))
	for _, file := range args {
		start := time.Now()

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading %s: %w", file, err)
		}
		sources[file] = string(content)

		doc := document.New(string(content))
		errs := checker.Check(doc)
		for _, e := range errs {
			all = append(all, diag.FromParseError(doc, file, e))
		}

		logger.Debug("checked file",
			zap.String("file", file),
			zap.Int("diagnostic_count", len(errs)),
			zap.Duration("elapsed", time.Since(start)),
		)
	}

	if jsonOutput {
		out, err := diag.FormatJSON(all)
		if err != nil {
			return fmt.Errorf("formatting diagnostics as JSON: %w", err)
		}
		fmt.Println(out)
	} else {
		for _, d := range all {
			fmt.Print(diag.FormatTerminal(d, sources[d.File], noColor))
		}
	}

	logger.Info("check complete", zap.Int("diagnostic_count", len(all)))

	if len(all) > 0 {
		return fmt.Errorf("%d diagnostic(s) found", len(all))
	}
	return nil
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = ""
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
