// Package testgen synthesizes target-language unit tests from companion test
// source. It recognizes two assertion shapes: an equality comparison embedded
// in a conditional-throw (`if (f(x) !== 5) throw ...`), and a bare comparison
// expression (`f(x) === 5`). Unrecognized input yields an empty descriptor
// list, never an error.
package testgen

import (
	"fmt"
	"strings"

	"snipforge/internal/ast"
	"snipforge/internal/gen"
	"snipforge/internal/parser"
)

// CallDescriptor is one extracted assertion. Op is the failure condition
// operator: the generated test reports a failure when `got Op expected`
// holds. A conditional-throw contributes its test operator directly (the
// throw fires when it holds); a bare comparison contributes the negation of
// the operator that is asserted to hold.
type CallDescriptor struct {
	Func     string
	Args     string
	Expected string
	Op       string
}

// comparison operators accepted in assertion shapes, normalized to their
// two-character forms
var normalizeOps = map[string]string{
	"===": "==",
	"!==": "!=",
	"==":  "==",
	"!=":  "!=",
	"<":   "<",
	"<=":  "<=",
	">":   ">",
	">=":  ">=",
}

var negateOps = map[string]string{
	"==": "!=",
	"!=": "==",
	"<":  ">=",
	"<=": ">",
	">":  "<=",
	">=": "<",
}

// ExtractTestCalls pulls assertion descriptors out of testSource. Input the
// parser cannot handle yields an empty list.
func ExtractTestCalls(testSource string) []CallDescriptor {
	prog, err := parser.Parse(testSource)
	if err != nil {
		return nil
	}
	var descriptors []CallDescriptor
	for _, stmt := range prog.Body {
		switch s := stmt.(type) {
		case *ast.IfStmt:
			if !containsThrow(s.Consequent) {
				continue
			}
			if d, ok := describeComparison(s.Test, false); ok {
				descriptors = append(descriptors, d)
			}
		case *ast.ExprStmt:
			if d, ok := describeComparison(s.Expression, true); ok {
				descriptors = append(descriptors, d)
			}
		}
	}
	return descriptors
}

// describeComparison matches `call(args) <op> literal`. For the bare shape
// the operator asserts, so the recorded failure op is its negation.
func describeComparison(expr ast.Expr, bare bool) (CallDescriptor, bool) {
	bin, ok := expr.(*ast.BinaryExpr)
	if !ok {
		return CallDescriptor{}, false
	}
	op, ok := normalizeOps[bin.Op]
	if !ok {
		return CallDescriptor{}, false
	}
	call, ok := bin.Left.(*ast.CallExpr)
	if !ok {
		return CallDescriptor{}, false
	}
	callee, ok := call.Callee.(*ast.Ident)
	if !ok {
		return CallDescriptor{}, false
	}
	if bare {
		op = negateOps[op]
	}

	em, err := gen.New(gen.TypeScript) // unchanged-idiom rendering for args
	if err != nil {
		return CallDescriptor{}, false
	}
	args := make([]string, len(call.Arguments))
	for i, arg := range call.Arguments {
		args[i] = em.EmitExpr(arg)
	}
	return CallDescriptor{
		Func:     callee.Name,
		Args:     strings.Join(args, ", "),
		Expected: em.EmitExpr(bin.Right),
		Op:       op,
	}, true
}

func containsThrow(body []ast.Stmt) bool {
	for _, stmt := range body {
		if _, ok := stmt.(*ast.ThrowStmt); ok {
			return true
		}
	}
	return false
}

// GenerateGoTest emits a Go test file for the generated code. ok is false
// only when testSource or functionName is empty; with zero extracted
// assertions it still emits a compiles smoke test so verification always has
// something runnable.
func GenerateGoTest(code, testSource, functionName string) (string, bool) {
	if testSource == "" || functionName == "" {
		return "", false
	}
	descriptors := ExtractTestCalls(testSource)

	var b strings.Builder
	b.WriteString("package main\n\n")
	b.WriteString("import \"testing\"\n\n")

	if len(descriptors) == 0 {
		fmt.Fprintf(&b, "func Test%sCompiles(t *testing.T) {\n", gen.ToPascalCase(functionName))
		b.WriteString("\tt.Log(\"compiles\")\n")
		b.WriteString("}\n")
		return b.String(), true
	}

	for i, d := range descriptors {
		fmt.Fprintf(&b, "func Test%s%d(t *testing.T) {\n", gen.ToPascalCase(d.Func), i)
		fmt.Fprintf(&b, "\tgot := %s(%s)\n", d.Func, d.Args)
		fmt.Fprintf(&b, "\tif got %s %s {\n", d.Op, d.Expected)
		fmt.Fprintf(&b, "\t\tt.Errorf(\"%s(%s) = %%v, want %%v\", got, %s)\n", d.Func, escapePercents(d.Args), d.Expected)
		b.WriteString("\t}\n")
		b.WriteString("}\n")
		if i < len(descriptors)-1 {
			b.WriteString("\n")
		}
	}
	return b.String(), true
}

// GenerateRustTest emits a Rust #[cfg(test)] module for the generated code,
// with the same null and smoke-test contract as GenerateGoTest.
func GenerateRustTest(code, testSource, functionName string) (string, bool) {
	if testSource == "" || functionName == "" {
		return "", false
	}
	descriptors := ExtractTestCalls(testSource)

	var b strings.Builder
	b.WriteString("#[cfg(test)]\n")
	b.WriteString("mod tests {\n")
	b.WriteString("    use super::*;\n\n")

	if len(descriptors) == 0 {
		b.WriteString("    #[test]\n")
		fmt.Fprintf(&b, "    fn test_%s_compiles() {\n", gen.ToSnakeCase(functionName))
		b.WriteString("        // compile-verification smoke test\n")
		b.WriteString("    }\n")
	}

	for i, d := range descriptors {
		name := gen.ToSnakeCase(d.Func)
		b.WriteString("    #[test]\n")
		fmt.Fprintf(&b, "    fn test_%s_%d() {\n", name, i)
		if d.Op == "!=" {
			fmt.Fprintf(&b, "        assert_eq!(%s(%s), %s);\n", name, d.Args, d.Expected)
		} else {
			// failure op recorded; assert its negation
			fmt.Fprintf(&b, "        assert!(%s(%s) %s %s);\n", name, d.Args, negateOps[d.Op], d.Expected)
		}
		b.WriteString("    }\n")
		if i < len(descriptors)-1 {
			b.WriteString("\n")
		}
	}
	b.WriteString("}\n")
	return b.String(), true
}

func escapePercents(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}
