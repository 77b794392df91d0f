package gen

import (
	"strings"

	"snipforge/internal/ast"
)

// TypeHint is the heuristic inference result used by the typed targets. It is
// a plausible default, never a soundness guarantee.
type TypeHint int

const (
	HintUnknown TypeHint = iota
	HintInt
	HintFloat
	HintString
	HintBool
	HintArray
	HintObject
)

// integer-pattern, string-pattern, and boolean-prefix tables for parameter
// name inference
var intNameParts = []string{"count", "index", "size", "num", "len", "total"}

var stringNameParts = []string{"str", "name", "text", "word", "msg", "message", "path"}

var boolPrefixes = []string{"is", "has", "should", "can"}

// InferParamType guesses a parameter's type from its name.
func InferParamType(name string) TypeHint {
	lower := strings.ToLower(name)
	for _, prefix := range boolPrefixes {
		if strings.HasPrefix(lower, prefix) && len(lower) > len(prefix) {
			return HintBool
		}
	}
	for _, part := range intNameParts {
		if strings.Contains(lower, part) {
			return HintInt
		}
	}
	for _, part := range stringNameParts {
		if strings.Contains(lower, part) {
			return HintString
		}
	}
	if lower == "i" || lower == "j" || lower == "k" || lower == "n" {
		return HintInt
	}
	if name == "arr" || strings.HasSuffix(lower, "s") && len(lower) > 2 {
		return HintArray
	}
	return HintUnknown
}

// InferReturnType guesses a function's return type from the literal type of
// the first return argument found anywhere in the body, depth-first.
func InferReturnType(body []ast.Stmt) TypeHint {
	for _, stmt := range body {
		if hint := returnHint(stmt); hint != HintUnknown {
			return hint
		}
	}
	return HintUnknown
}

func returnHint(stmt ast.Stmt) TypeHint {
	switch s := stmt.(type) {
	case *ast.ReturnStmt:
		if s.Argument == nil {
			return HintUnknown
		}
		return LiteralHint(s.Argument)
	case *ast.IfStmt:
		if hint := InferReturnType(s.Consequent); hint != HintUnknown {
			return hint
		}
		return InferReturnType(s.Alternate)
	case *ast.ForStmt:
		return InferReturnType(s.Body)
	case *ast.ForOfStmt:
		return InferReturnType(s.Body)
	case *ast.WhileStmt:
		return InferReturnType(s.Body)
	case *ast.TryStmt:
		if hint := InferReturnType(s.Block); hint != HintUnknown {
			return hint
		}
		if hint := InferReturnType(s.Handler); hint != HintUnknown {
			return hint
		}
		return InferReturnType(s.Finalizer)
	default:
		return HintUnknown
	}
}

// LiteralHint classifies an expression by its literal shape, HintUnknown when
// the expression carries no literal signal.
func LiteralHint(expr ast.Expr) TypeHint {
	switch e := expr.(type) {
	case *ast.Literal:
		raw := e.Raw
		switch {
		case raw == "true" || raw == "false":
			return HintBool
		case raw == "null" || raw == "undefined":
			return HintUnknown
		case raw[0] == '"' || raw[0] == '\'':
			return HintString
		case strings.Contains(raw, "."):
			return HintFloat
		default:
			return HintInt
		}
	case *ast.TemplateLiteral:
		return HintString
	case *ast.ArrayExpr:
		return HintArray
	case *ast.ObjectExpr:
		return HintObject
	case *ast.BinaryExpr:
		switch e.Op {
		case "===", "!==", "==", "!=", "<", "<=", ">", ">=", "&&", "||":
			return HintBool
		}
		// arithmetic result takes the hint of either literal side
		if hint := LiteralHint(e.Left); hint != HintUnknown {
			return hint
		}
		return LiteralHint(e.Right)
	case *ast.UnaryExpr:
		if e.Op == "!" {
			return HintBool
		}
		return LiteralHint(e.Argument)
	}
	return HintUnknown
}

// per-target type name tables, including each target's "unknown" fallback

var goTypeNames = map[TypeHint]string{
	HintUnknown: "interface{}",
	HintInt:     "int",
	HintFloat:   "float64",
	HintString:  "string",
	HintBool:    "bool",
	HintArray:   "[]interface{}",
	HintObject:  "map[string]interface{}",
}

var rustTypeNames = map[TypeHint]string{
	HintUnknown: "i64",
	HintInt:     "i64",
	HintFloat:   "f64",
	HintString:  "String",
	HintBool:    "bool",
	HintArray:   "Vec<i64>",
	HintObject:  "std::collections::HashMap<String, String>",
}

var tsTypeNames = map[TypeHint]string{
	HintUnknown: "any",
	HintInt:     "number",
	HintFloat:   "number",
	HintString:  "string",
	HintBool:    "boolean",
	HintArray:   "any[]",
	HintObject:  "Record<string, any>",
}

// GoTypeName maps a hint to Go source text.
func GoTypeName(hint TypeHint) string { return goTypeNames[hint] }

// RustTypeName maps a hint to Rust source text.
func RustTypeName(hint TypeHint) string { return rustTypeNames[hint] }

// TSTypeName maps a hint to TypeScript source text.
func TSTypeName(hint TypeHint) string { return tsTypeNames[hint] }
