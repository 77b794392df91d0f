package verify

import (
	"context"
	"fmt"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"snipforge/internal/testgen"
)

// GoSandbox verifies generated Go in-process with the yaegi interpreter
// instead of shelling out to the toolchain: no compilation hangs, no binary
// version mismatches, no dependency fetching. Only allowlisted stdlib imports
// may appear in the code under test.
type GoSandbox struct {
	allowedPackages map[string]bool
}

// NewGoSandbox builds a sandbox with the default stdlib allowlist.
func NewGoSandbox() *GoSandbox {
	return &GoSandbox{
		allowedPackages: map[string]bool{
			"fmt":     true,
			"strings": true,
			"strconv": true,
			"math":    true,
			"sort":    true,
			"errors":  true,
			"bytes":   true,
			"unicode": true,

			// blocked: os, os/exec, net, net/http, syscall, unsafe
		},
	}
}

// AllowPackage extends the allowlist; used by configuration.
func (s *GoSandbox) AllowPackage(pkg string) {
	s.allowedPackages[pkg] = true
}

// Run evaluates code in a fresh interpreter, then re-runs the assertions
// extracted from testSource against the interpreted definitions. A code that
// evaluates and passes every assertion is considered compiled.
func (s *GoSandbox) Run(ctx context.Context, code, testSource string) (string, error) {
	if err := s.validateImports(code); err != nil {
		return "", fmt.Errorf("invalid imports: %w", err)
	}

	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return "", fmt.Errorf("failed to load stdlib: %w", err)
	}

	if _, err := i.EvalWithContext(ctx, wrapPackageMain(code)); err != nil {
		return "", fmt.Errorf("code evaluation failed: %w", err)
	}

	descriptors := testgen.ExtractTestCalls(testSource)
	if len(descriptors) == 0 {
		return "compiled; no assertions to run", nil
	}

	for _, d := range descriptors {
		// descriptor op is the failure condition; evaluate it directly
		expr := fmt.Sprintf("%s(%s) %s %s", d.Func, d.Args, d.Op, d.Expected)
		v, err := i.EvalWithContext(ctx, expr)
		if err != nil {
			return "", fmt.Errorf("assertion %q did not evaluate: %w", expr, err)
		}
		if failed, ok := v.Interface().(bool); ok && failed {
			return "", fmt.Errorf("assertion failed: %s(%s) %s %s", d.Func, d.Args, d.Op, d.Expected)
		}
	}
	return fmt.Sprintf("compiled; %d assertion(s) passed", len(descriptors)), nil
}

// validateImports rejects code importing anything off the allowlist.
func (s *GoSandbox) validateImports(code string) error {
	var forbidden []string
	inBlock := false
	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "import ("):
			inBlock = true
		case inBlock && strings.HasPrefix(trimmed, ")"):
			inBlock = false
		case inBlock && trimmed != "":
			if pkg := strings.Trim(trimmed, `"`); !s.allowedPackages[pkg] {
				forbidden = append(forbidden, pkg)
			}
		case strings.HasPrefix(trimmed, "import "):
			pkg := strings.Trim(strings.TrimPrefix(trimmed, "import "), `"`)
			if !s.allowedPackages[pkg] {
				forbidden = append(forbidden, pkg)
			}
		}
	}
	if len(forbidden) > 0 {
		return fmt.Errorf("forbidden imports: %v", forbidden)
	}
	return nil
}

func wrapPackageMain(code string) string {
	if strings.Contains(code, "package ") {
		return code
	}
	return "package main\n\n" + code
}
