package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"snipforge/internal/ast"
)

func mustParse(t *testing.T, source string) *ast.Program {
	t.Helper()
	prog, err := Parse(source)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", source, err)
	}
	return prog
}

func TestParseFunctionDecl(t *testing.T) {
	prog := mustParse(t, "function add(a, b) { return a + b; }")

	want := &ast.Program{Body: []ast.Stmt{
		&ast.FunctionDecl{
			Name:   "add",
			Params: []ast.Param{{Name: "a"}, {Name: "b"}},
			Body: []ast.Stmt{
				&ast.ReturnStmt{Argument: &ast.BinaryExpr{
					Op:    "+",
					Left:  &ast.Ident{Name: "a"},
					Right: &ast.Ident{Name: "b"},
				}},
			},
		},
	}}
	if diff := cmp.Diff(want, prog); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDefaultParam(t *testing.T) {
	prog := mustParse(t, "function greet(name = \"world\") { return name; }")
	fn := prog.Body[0].(*ast.FunctionDecl)
	if len(fn.Params) != 1 || fn.Params[0].Name != "name" {
		t.Fatalf("params = %#v", fn.Params)
	}
	def, ok := fn.Params[0].Default.(*ast.Literal)
	if !ok || def.Raw != `"world"` {
		t.Fatalf("default = %#v", fn.Params[0].Default)
	}
}

func TestParseAsyncFunction(t *testing.T) {
	prog := mustParse(t, "async function fetchIt(url) { const r = await get(url); return r; }")
	fn := prog.Body[0].(*ast.FunctionDecl)
	if !fn.Async || fn.Name != "fetchIt" {
		t.Fatalf("fn = %#v", fn)
	}
	decl := fn.Body[0].(*ast.VariableDecl)
	if _, ok := decl.Init.(*ast.AwaitExpr); !ok {
		t.Fatalf("init = %#v, want await", decl.Init)
	}
}

func TestParsePrecedence(t *testing.T) {
	// 1 + 2 * 3 groups the multiplication under the addition
	prog := mustParse(t, "let x = 1 + 2 * 3;")
	init := prog.Body[0].(*ast.VariableDecl).Init.(*ast.BinaryExpr)
	if init.Op != "+" {
		t.Fatalf("top op = %q, want +", init.Op)
	}
	right := init.Right.(*ast.BinaryExpr)
	if right.Op != "*" {
		t.Fatalf("right op = %q, want *", right.Op)
	}
}

func TestParseLeftAssociativity(t *testing.T) {
	// a - b - c parses as (a - b) - c
	prog := mustParse(t, "let x = a - b - c;")
	init := prog.Body[0].(*ast.VariableDecl).Init.(*ast.BinaryExpr)
	left, ok := init.Left.(*ast.BinaryExpr)
	if !ok || left.Op != "-" {
		t.Fatalf("left = %#v", init.Left)
	}
	if r, ok := init.Right.(*ast.Ident); !ok || r.Name != "c" {
		t.Fatalf("right = %#v", init.Right)
	}
}

func TestParseTernary(t *testing.T) {
	prog := mustParse(t, "let m = a > b ? a : b;")
	cond, ok := prog.Body[0].(*ast.VariableDecl).Init.(*ast.ConditionalExpr)
	if !ok {
		t.Fatalf("init = %#v, want conditional", prog.Body[0])
	}
	if _, ok := cond.Test.(*ast.BinaryExpr); !ok {
		t.Fatalf("test = %#v", cond.Test)
	}
}

func TestParseElseIfChains(t *testing.T) {
	prog := mustParse(t, `
function sign(x) {
	if (x > 0) { return 1; }
	else if (x < 0) { return -1; }
	else { return 0; }
}`)
	fn := prog.Body[0].(*ast.FunctionDecl)
	outer := fn.Body[0].(*ast.IfStmt)
	if len(outer.Alternate) != 1 {
		t.Fatalf("alternate = %#v", outer.Alternate)
	}
	inner, ok := outer.Alternate[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("alternate[0] = %#v, want nested if", outer.Alternate[0])
	}
	if len(inner.Alternate) != 1 {
		t.Fatalf("inner alternate = %#v", inner.Alternate)
	}
}

func TestParseForOf(t *testing.T) {
	prog := mustParse(t, "for (const item of items) { process(item); }")
	loop, ok := prog.Body[0].(*ast.ForOfStmt)
	if !ok {
		t.Fatalf("stmt = %#v, want for-of", prog.Body[0])
	}
	if loop.Variable != "item" {
		t.Fatalf("variable = %q", loop.Variable)
	}
	if it, ok := loop.Iterable.(*ast.Ident); !ok || it.Name != "items" {
		t.Fatalf("iterable = %#v", loop.Iterable)
	}
}

func TestParseCStyleFor(t *testing.T) {
	prog := mustParse(t, "for (let i = 0; i < n; i++) { sum += i; }")
	loop := prog.Body[0].(*ast.ForStmt)
	if loop.Init == nil || loop.Test == nil || loop.Update == nil {
		t.Fatalf("loop = %#v", loop)
	}
	if _, ok := loop.Update.(*ast.UpdateExpr); !ok {
		t.Fatalf("update = %#v", loop.Update)
	}
}

func TestParseClass(t *testing.T) {
	prog := mustParse(t, `
class Counter extends Base {
	constructor(start) { this.count = start; }
	increment() { this.count++; }
	async flush() { await save(this.count); }
}`)
	decl := prog.Body[0].(*ast.ClassDecl)
	if decl.Name != "Counter" || decl.SuperClass != "Base" {
		t.Fatalf("decl = %#v", decl)
	}
	if len(decl.Methods) != 3 {
		t.Fatalf("methods = %d, want 3", len(decl.Methods))
	}
	if decl.Methods[0].Name != "constructor" {
		t.Fatalf("methods[0] = %q", decl.Methods[0].Name)
	}
	if !decl.Methods[2].Async {
		t.Fatalf("flush should be async")
	}
}

func TestParseTryCatchFinally(t *testing.T) {
	prog := mustParse(t, `
try { risky(); }
catch (err) { handle(err); }
finally { cleanup(); }`)
	stmt := prog.Body[0].(*ast.TryStmt)
	if stmt.Param != "err" || stmt.Handler == nil || stmt.Finalizer == nil {
		t.Fatalf("try = %#v", stmt)
	}
}

func TestParseTryRequiresHandler(t *testing.T) {
	_, err := Parse("try { risky(); }")
	if err == nil {
		t.Fatal("expected error for try without catch or finally")
	}
}

func TestParseDestructuring(t *testing.T) {
	prog := mustParse(t, "const {a, b} = obj; const [x, y] = pair;")
	objDes := prog.Body[0].(*ast.ObjectDestructuring)
	if len(objDes.Properties) != 2 || objDes.Properties[0] != "a" {
		t.Fatalf("object destructuring = %#v", objDes)
	}
	arrDes := prog.Body[1].(*ast.ArrayDestructuring)
	if len(arrDes.Elements) != 2 || arrDes.Elements[1] != "y" {
		t.Fatalf("array destructuring = %#v", arrDes)
	}
}

func TestParseArrowFunctions(t *testing.T) {
	t.Run("expression_body", func(t *testing.T) {
		prog := mustParse(t, "const dbl = (x) => x * 2;")
		fn := prog.Body[0].(*ast.VariableDecl).Init.(*ast.ArrowFunction)
		if !fn.Expression || fn.ExprBody == nil {
			t.Fatalf("fn = %#v", fn)
		}
	})
	t.Run("single_param_no_parens", func(t *testing.T) {
		prog := mustParse(t, "const dbl = x => x * 2;")
		fn := prog.Body[0].(*ast.VariableDecl).Init.(*ast.ArrowFunction)
		if len(fn.Params) != 1 || fn.Params[0].Name != "x" {
			t.Fatalf("params = %#v", fn.Params)
		}
	})
	t.Run("statement_body", func(t *testing.T) {
		prog := mustParse(t, "const f = (x) => { return x; };")
		fn := prog.Body[0].(*ast.VariableDecl).Init.(*ast.ArrowFunction)
		if fn.Expression || len(fn.Body) != 1 {
			t.Fatalf("fn = %#v", fn)
		}
	})
	t.Run("parenthesized_group_is_not_arrow", func(t *testing.T) {
		prog := mustParse(t, "let y = (a + b) * 2;")
		init := prog.Body[0].(*ast.VariableDecl).Init.(*ast.BinaryExpr)
		if init.Op != "*" {
			t.Fatalf("op = %q", init.Op)
		}
	})
}

func TestParseTemplateLiteral(t *testing.T) {
	prog := mustParse(t, "let s = `sum is ${a + b}!`;")
	tpl := prog.Body[0].(*ast.VariableDecl).Init.(*ast.TemplateLiteral)
	if len(tpl.Quasis) != 2 || len(tpl.Expressions) != 1 {
		t.Fatalf("quasis=%d expressions=%d", len(tpl.Quasis), len(tpl.Expressions))
	}
	if tpl.Quasis[0] != "sum is " || tpl.Quasis[1] != "!" {
		t.Fatalf("quasis = %q", tpl.Quasis)
	}
	if _, ok := tpl.Expressions[0].(*ast.BinaryExpr); !ok {
		t.Fatalf("expression = %#v", tpl.Expressions[0])
	}
}

func TestParseObjectLiteral(t *testing.T) {
	prog := mustParse(t, `let o = {a: 1, "b c": 2, shorthand};`)
	obj := prog.Body[0].(*ast.VariableDecl).Init.(*ast.ObjectExpr)
	if len(obj.Properties) != 3 {
		t.Fatalf("properties = %#v", obj.Properties)
	}
	if obj.Properties[1].Key != "b c" {
		t.Fatalf("quoted key = %q", obj.Properties[1].Key)
	}
	if v, ok := obj.Properties[2].Value.(*ast.Ident); !ok || v.Name != "shorthand" {
		t.Fatalf("shorthand value = %#v", obj.Properties[2].Value)
	}
}

func TestParseRejectsUnsupported(t *testing.T) {
	cases := []struct {
		name    string
		source  string
		wantMsg string
	}{
		{name: "decorator", source: "@deco\nfunction f() {}", wantMsg: "decorator"},
		{name: "generator", source: "function *gen() {}", wantMsg: "generator"},
		{name: "function_expression", source: "let f = function() { return 1; };", wantMsg: "arrow"},
		{name: "unterminated_block", source: "function f() { return 1;", wantMsg: "unterminated"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prog, err := Parse(tc.source)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tc.source)
			}
			if prog != nil {
				t.Fatalf("failed parse returned a tree: %#v", prog)
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("error %q does not mention %q", err, tc.wantMsg)
			}
		})
	}
}

func TestParseErrorCarriesOffset(t *testing.T) {
	_, err := Parse("let x = ;")
	perr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error type = %T", err)
	}
	if perr.Pos != 8 {
		t.Fatalf("Pos = %d, want 8", perr.Pos)
	}
}

func TestParseCommentsPreserved(t *testing.T) {
	prog := mustParse(t, "// setup\nlet x = 1;")
	c, ok := prog.Body[0].(*ast.CommentStmt)
	if !ok || c.Value != "setup" {
		t.Fatalf("comment = %#v", prog.Body[0])
	}
}

func TestParseEmptySource(t *testing.T) {
	prog := mustParse(t, "")
	if len(prog.Body) != 0 {
		t.Fatalf("body = %#v, want empty", prog.Body)
	}
}

func TestParseDeterministic(t *testing.T) {
	source := "function f(a) { return a > 0 ? a : -a; }"
	first := mustParse(t, source)
	for i := 0; i < 5; i++ {
		if diff := cmp.Diff(first, mustParse(t, source)); diff != "" {
			t.Fatalf("parse %d differs:\n%s", i, diff)
		}
	}
}
