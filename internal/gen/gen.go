// Package gen emits target-language source from the shared syntax tree.
//
// One Emitter per target walks the tree depth-first. Emitters are pure over
// the tree: the only state they carry is the degradation warning list, so a
// fresh emitter is built per generation call. A construct with no idiomatic
// equivalent in a target produces an explicitly-approximate rendering plus a
// recorded warning; output stays syntactically valid in the target, and silent
// data loss is not allowed.
package gen

import (
	"fmt"

	"snipforge/internal/ast"
)

// Language names a transpilation target.
type Language string

const (
	Python     Language = "python"
	TypeScript Language = "typescript"
	Go         Language = "go"
	Rust       Language = "rust"
)

// Supported reports whether lang is a known target.
func Supported(lang Language) bool {
	switch lang {
	case Python, TypeScript, Go, Rust:
		return true
	}
	return false
}

// Emitter generates target text for tree nodes. EmitStmt indents its output
// proportionally to depth using the target's native convention.
type Emitter interface {
	Language() Language
	EmitStmt(s ast.Stmt, depth int) string
	EmitExpr(e ast.Expr) string
	Warnings() []string
}

// New returns a fresh emitter for lang.
func New(lang Language) (Emitter, error) {
	switch lang {
	case Python:
		return &pythonEmitter{}, nil
	case TypeScript:
		return &typescriptEmitter{}, nil
	case Go:
		return &goEmitter{}, nil
	case Rust:
		return &rustEmitter{}, nil
	default:
		return nil, fmt.Errorf("Unsupported target language: %s", lang)
	}
}

// Generate emits the whole program and returns the code together with any
// degradation warnings the emitter recorded.
func Generate(prog *ast.Program, lang Language) (string, []string, error) {
	em, err := New(lang)
	if err != nil {
		return "", nil, err
	}
	var out string
	for _, stmt := range prog.Body {
		out += em.EmitStmt(stmt, 0)
	}
	return out, em.Warnings(), nil
}

// warnings is embedded by every emitter to record degradations.
type warnings struct {
	list []string
}

func (w *warnings) warnf(format string, args ...interface{}) {
	w.list = append(w.list, fmt.Sprintf(format, args...))
}

func (w *warnings) Warnings() []string {
	return w.list
}
