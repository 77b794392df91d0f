package gen

import "snipforge/internal/ast"

// RangeLoop describes a bounded counting for-loop: a single counter starting
// at From, compared against To, stepping by exactly one. Targets with a native
// range idiom (Python, Rust) rewrite the loop; the rest keep the C-style form.
type RangeLoop struct {
	Var       string
	From      ast.Expr
	To        ast.Expr
	Inclusive bool // <= or >= comparison
	Down      bool // counting downward (i--)
}

// DetectRangeLoop pattern-matches loop into a RangeLoop. The match is
// deliberately narrow: one counter declared or assigned in the init clause,
// a relational test on that counter, and a ±1 update. Anything else reports
// ok=false and the caller falls back to the general rendering.
func DetectRangeLoop(loop *ast.ForStmt) (RangeLoop, bool) {
	if loop.Init == nil || loop.Test == nil || loop.Update == nil {
		return RangeLoop{}, false
	}

	var name string
	var from ast.Expr
	switch init := loop.Init.(type) {
	case *ast.VariableDecl:
		if init.Init == nil {
			return RangeLoop{}, false
		}
		name, from = init.Name, init.Init
	case *ast.ExprStmt:
		assign, ok := init.Expression.(*ast.AssignExpr)
		if !ok || assign.Op != "=" {
			return RangeLoop{}, false
		}
		ident, ok := assign.Left.(*ast.Ident)
		if !ok {
			return RangeLoop{}, false
		}
		name, from = ident.Name, assign.Right
	default:
		return RangeLoop{}, false
	}

	test, ok := loop.Test.(*ast.BinaryExpr)
	if !ok {
		return RangeLoop{}, false
	}
	left, ok := test.Left.(*ast.Ident)
	if !ok || left.Name != name {
		return RangeLoop{}, false
	}
	var inclusive, down bool
	switch test.Op {
	case "<":
	case "<=":
		inclusive = true
	case ">":
		down = true
	case ">=":
		inclusive, down = true, true
	default:
		return RangeLoop{}, false
	}

	if !isUnitStep(loop.Update, name, down) {
		return RangeLoop{}, false
	}

	return RangeLoop{Var: name, From: from, To: test.Right, Inclusive: inclusive, Down: down}, true
}

// isUnitStep reports whether update moves name by exactly one in the loop's
// direction: i++/i-- or i += 1 / i -= 1.
func isUnitStep(update ast.Expr, name string, down bool) bool {
	switch u := update.(type) {
	case *ast.UpdateExpr:
		ident, ok := u.Argument.(*ast.Ident)
		if !ok || ident.Name != name {
			return false
		}
		if down {
			return u.Op == "--"
		}
		return u.Op == "++"
	case *ast.AssignExpr:
		ident, ok := u.Left.(*ast.Ident)
		if !ok || ident.Name != name {
			return false
		}
		lit, ok := u.Right.(*ast.Literal)
		if !ok || lit.Raw != "1" {
			return false
		}
		if down {
			return u.Op == "-="
		}
		return u.Op == "+="
	}
	return false
}
