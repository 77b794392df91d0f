// Package transpile is the public boundary of the transpiler core. It wires
// tokenizer, parser, generator, and import detection into one call and
// represents every failure mode in the returned Result rather than panicking:
// callers batch-generate variants across targets and must continue past
// individual failures.
package transpile

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"snipforge/internal/ast"
	"snipforge/internal/gen"
	"snipforge/internal/parser"
)

// Language re-exports the generator's target set.
type Language = gen.Language

const (
	Python     = gen.Python
	TypeScript = gen.TypeScript
	Go         = gen.Go
	Rust       = gen.Rust
)

// Targets lists every supported language in deterministic order.
func Targets() []Language {
	return []Language{Python, TypeScript, Go, Rust}
}

// Result is the outcome of one transpilation. Code and Imports are only
// meaningful when Success is true; AST is set whenever parsing succeeded,
// even for an unsupported target. Warnings lists generation degradations:
// approximate renderings that are documented, not errors.
type Result struct {
	Code     string
	AST      *ast.Program
	Success  bool
	Error    string
	Imports  []string
	Warnings []string
}

// Transpile converts source to the target language. It never panics; every
// failure is reported through the Result.
func Transpile(source string, target Language) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = Result{Success: false, Error: fmt.Sprintf("internal error: %v", r)}
		}
	}()

	prog, err := parser.Parse(source)
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}

	if !gen.Supported(target) {
		return Result{
			AST:     prog,
			Success: false,
			Error:   fmt.Sprintf("Unsupported target language: %s", target),
		}
	}

	code, warnings, err := gen.Generate(prog, target)
	if err != nil {
		return Result{AST: prog, Success: false, Error: err.Error()}
	}

	imports := gen.DetectImports(target, code)
	code = gen.PrependImports(target, code, imports)

	return Result{
		Code:     code,
		AST:      prog,
		Success:  true,
		Imports:  imports,
		Warnings: warnings,
	}
}

// All transpiles source to every target concurrently. Each call builds its
// own token stream and tree, so the fan-out shares no mutable state; a failed
// target never cancels its siblings.
func All(ctx context.Context, source string) map[Language]Result {
	targets := Targets()
	results := make([]Result, len(targets))

	g, _ := errgroup.WithContext(ctx)
	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			results[i] = Transpile(source, target)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures live in the results

	out := make(map[Language]Result, len(targets))
	for i, target := range targets {
		out[target] = results[i]
	}
	return out
}
