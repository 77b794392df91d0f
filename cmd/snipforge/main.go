package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"snipforge/internal/config"
	"snipforge/internal/logging"
	"snipforge/internal/testgen"
	"snipforge/internal/transpile"
	"snipforge/internal/verify"
	"snipforge/internal/watch"
)

var (
	// Global flags
	verbose    bool
	configPath string
	target     string

	logger *zap.Logger
	cfg    *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "snipforge",
	Short: "snipforge - multi-target snippet transpiler",
	Long: `snipforge transpiles small, verified code snippets between languages.

It parses a C-family scripting dialect into a uniform syntax tree and
regenerates idiomatic Python, TypeScript, Go, or Rust, then optionally
synthesizes unit tests and compile-verifies the result in a sandbox.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err = logging.New(verbose || cfg.Debug)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// transpileCmd converts one snippet file to a target language
var transpileCmd = &cobra.Command{
	Use:   "transpile <file>",
	Short: "Transpile a snippet to a target language (or all targets)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read source: %w", err)
		}

		if target == "all" {
			results := transpile.All(cmd.Context(), string(source))
			for _, lang := range transpile.Targets() {
				printResult(lang, results[lang])
			}
			return nil
		}

		result := transpile.Transpile(string(source), transpile.Language(target))
		printResult(transpile.Language(target), result)
		if !result.Success {
			return fmt.Errorf("transpilation failed: %s", result.Error)
		}
		return nil
	},
}

// verifyCmd transpiles a snippet and compile-verifies it with its test
var verifyCmd = &cobra.Command{
	Use:   "verify <file> <testfile>",
	Short: "Transpile a snippet and verify it compiles against its test",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read source: %w", err)
		}
		testSource, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("failed to read test source: %w", err)
		}

		lang := transpile.Language(target)
		if target == "all" {
			lang = transpile.Go
		}
		result := transpile.Transpile(string(source), lang)
		if !result.Success {
			return fmt.Errorf("transpilation failed: %s", result.Error)
		}

		funcName := firstFunctionName(string(source))
		if lang == transpile.Go {
			if test, ok := testgen.GenerateGoTest(result.Code, string(testSource), funcName); ok {
				logger.Debug("synthesized test", zap.Int("bytes", len(test)))
			}
		}

		sandbox := verify.NewGoSandbox()
		for _, pkg := range cfg.Verify.AllowedPackages {
			sandbox.AllowPackage(pkg)
		}
		verifier := verify.NewVerifier(
			verify.WithTimeout(cfg.VerifyTimeout()),
			verify.WithSandbox(transpile.Go, sandbox),
			verify.WithLogger(logging.Named(logger, logging.CategoryVerify)),
		)
		report := verifier.Verify(cmd.Context(), result.Code, string(testSource), lang)

		fmt.Printf("verification %s\n", report.ID)
		fmt.Printf("  compiled:  %v\n", report.Compiled)
		fmt.Printf("  sandboxed: %v\n", report.Sandboxed)
		fmt.Printf("  output:    %s\n", report.Output)
		if !report.Compiled {
			os.Exit(1)
		}
		return nil
	},
}

// watchCmd re-transpiles snippets as they change on disk
var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Watch a directory and re-transpile snippets on change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		watcher, err := watch.NewSourceWatcher(
			args[0],
			[]string{".js", ".snip"},
			cfg.WatchDebounce(),
			func(path string) {
				source, err := os.ReadFile(path)
				if err != nil {
					logger.Warn("failed to read changed snippet", zap.String("path", path), zap.Error(err))
					return
				}
				results := transpile.All(ctx, string(source))
				for _, lang := range transpile.Targets() {
					result := results[lang]
					if !result.Success {
						logger.Warn("transpilation failed",
							zap.String("path", path),
							zap.String("target", string(lang)),
							zap.String("error", result.Error))
						continue
					}
					out := outputPath(path, lang)
					if err := os.WriteFile(out, []byte(result.Code), 0644); err != nil {
						logger.Warn("failed to write output", zap.String("path", out), zap.Error(err))
						continue
					}
					logger.Info("transpiled", zap.String("source", path), zap.String("output", out))
				}
			},
			logging.Named(logger, logging.CategoryWatch),
		)
		if err != nil {
			return fmt.Errorf("failed to create watcher: %w", err)
		}
		if err := watcher.Start(ctx); err != nil {
			return err
		}
		defer watcher.Stop()

		<-ctx.Done()
		return nil
	},
}

func printResult(lang transpile.Language, result transpile.Result) {
	fmt.Printf("=== %s ===\n", lang)
	if !result.Success {
		fmt.Printf("error: %s\n\n", result.Error)
		return
	}
	fmt.Println(result.Code)
	for _, w := range result.Warnings {
		fmt.Printf("note: %s\n", w)
	}
	fmt.Println()
}

// outputPath maps snippet.js to snippet.py / snippet.ts / snippet.go /
// snippet.rs beside the source.
func outputPath(source string, lang transpile.Language) string {
	base := strings.TrimSuffix(source, filepath.Ext(source))
	switch lang {
	case transpile.Python:
		return base + ".py"
	case transpile.TypeScript:
		return base + ".ts"
	case transpile.Go:
		return base + ".go"
	case transpile.Rust:
		return base + ".rs"
	}
	return base + ".out"
}

// firstFunctionName pulls the leading function's name out of snippet source
// for test synthesis.
func firstFunctionName(source string) string {
	fields := strings.Fields(source)
	for i, f := range fields {
		if f == "function" && i+1 < len(fields) {
			name := fields[i+1]
			if idx := strings.IndexAny(name, "("); idx > 0 {
				name = name[:idx]
			}
			return name
		}
	}
	return ""
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".snipforge.yaml", "config file path")
	rootCmd.PersistentFlags().StringVarP(&target, "target", "t", "all", "target language (python|typescript|go|rust|all)")

	rootCmd.AddCommand(transpileCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(watchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
