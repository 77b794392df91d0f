package gen

import (
	"fmt"
	"strings"

	"snipforge/internal/ast"
)

// pythonEmitter renders the tree as idiomatic Python: snake_case names,
// and/or/not logic, f-strings, native range loops, 4-space indentation.
type pythonEmitter struct {
	warnings
}

func (e *pythonEmitter) Language() Language { return Python }

func pyIndent(depth int) string {
	return strings.Repeat("    ", depth)
}

// exception mapping for throw/new Error forms
var pyExceptions = map[string]string{
	"Error":          "Exception",
	"TypeError":      "TypeError",
	"RangeError":     "ValueError",
	"SyntaxError":    "SyntaxError",
	"ReferenceError": "NameError",
}

var pyBinaryOps = map[string]string{
	"===": "==",
	"!==": "!=",
	"&&":  "and",
	"||":  "or",
}

// namespace-level call rewrites (callee object.method -> target callable)
var pyCallTable = map[string]string{
	"console.log":    "print",
	"console.error":  "print",
	"console.warn":   "print",
	"Math.floor":     "math.floor",
	"Math.ceil":      "math.ceil",
	"Math.sqrt":      "math.sqrt",
	"Math.abs":       "abs",
	"Math.max":       "max",
	"Math.min":       "min",
	"Math.pow":       "pow",
	"Math.random":    "random.random",
	"JSON.stringify": "json.dumps",
	"JSON.parse":     "json.loads",
}

// instance-method rewrites (method name only)
var pyMethodTable = map[string]string{
	"push":        "append",
	"toUpperCase": "upper",
	"toLowerCase": "lower",
	"trim":        "strip",
	"charAt":      "__getitem__",
}

func (e *pythonEmitter) EmitStmt(s ast.Stmt, depth int) string {
	ind := pyIndent(depth)
	switch st := s.(type) {
	case *ast.Program:
		var b strings.Builder
		for _, inner := range st.Body {
			b.WriteString(e.EmitStmt(inner, depth))
		}
		return b.String()

	case *ast.FunctionDecl:
		keyword := "def"
		if st.Async {
			keyword = "async def"
		}
		header := fmt.Sprintf("%s%s %s(%s):\n", ind, keyword, ToSnakeCase(st.Name), e.paramList(st.Params))
		return header + e.emitBody(st.Body, depth+1)

	case *ast.VariableDecl:
		if st.Init == nil {
			return fmt.Sprintf("%s%s = None\n", ind, ToSnakeCase(st.Name))
		}
		return fmt.Sprintf("%s%s = %s\n", ind, ToSnakeCase(st.Name), e.EmitExpr(st.Init))

	case *ast.ObjectDestructuring:
		init := e.EmitExpr(st.Init)
		var b strings.Builder
		for _, prop := range st.Properties {
			fmt.Fprintf(&b, "%s%s = %s[%q]\n", ind, ToSnakeCase(prop), init, prop)
		}
		return b.String()

	case *ast.ArrayDestructuring:
		names := make([]string, len(st.Elements))
		for i, el := range st.Elements {
			names[i] = ToSnakeCase(el)
		}
		return fmt.Sprintf("%s%s = %s\n", ind, strings.Join(names, ", "), e.EmitExpr(st.Init))

	case *ast.IfStmt:
		out := fmt.Sprintf("%sif %s:\n", ind, e.EmitExpr(st.Test)) + e.emitBody(st.Consequent, depth+1)
		if st.Alternate != nil {
			if nested, ok := elifChain(st.Alternate); ok {
				out += fmt.Sprintf("%selif %s:\n", ind, e.EmitExpr(nested.Test)) + e.emitBody(nested.Consequent, depth+1)
				for nested.Alternate != nil {
					inner, ok := elifChain(nested.Alternate)
					if !ok {
						out += fmt.Sprintf("%selse:\n", ind) + e.emitBody(nested.Alternate, depth+1)
						return out
					}
					out += fmt.Sprintf("%selif %s:\n", ind, e.EmitExpr(inner.Test)) + e.emitBody(inner.Consequent, depth+1)
					nested = inner
				}
				return out
			}
			out += fmt.Sprintf("%selse:\n", ind) + e.emitBody(st.Alternate, depth+1)
		}
		return out

	case *ast.ForStmt:
		if rl, ok := DetectRangeLoop(st); ok {
			return fmt.Sprintf("%sfor %s in %s:\n", ind, ToSnakeCase(rl.Var), e.rangeCall(rl)) +
				e.emitBody(st.Body, depth+1)
		}
		// general three-clause loop lowers to a while
		var b strings.Builder
		if st.Init != nil {
			b.WriteString(e.EmitStmt(st.Init, depth))
		}
		test := "True"
		if st.Test != nil {
			test = e.EmitExpr(st.Test)
		}
		fmt.Fprintf(&b, "%swhile %s:\n", ind, test)
		b.WriteString(e.emitBody(st.Body, depth+1))
		if st.Update != nil {
			b.WriteString(e.EmitStmt(&ast.ExprStmt{Expression: st.Update}, depth+1))
		}
		return b.String()

	case *ast.ForOfStmt:
		return fmt.Sprintf("%sfor %s in %s:\n", ind, ToSnakeCase(st.Variable), e.EmitExpr(st.Iterable)) +
			e.emitBody(st.Body, depth+1)

	case *ast.WhileStmt:
		return fmt.Sprintf("%swhile %s:\n", ind, e.EmitExpr(st.Test)) + e.emitBody(st.Body, depth+1)

	case *ast.ClassDecl:
		header := fmt.Sprintf("%sclass %s:\n", ind, st.Name)
		if st.SuperClass != "" {
			header = fmt.Sprintf("%sclass %s(%s):\n", ind, st.Name, st.SuperClass)
		}
		if len(st.Methods) == 0 {
			return header + pyIndent(depth+1) + "pass\n"
		}
		var b strings.Builder
		b.WriteString(header)
		for i, m := range st.Methods {
			if i > 0 {
				b.WriteString("\n")
			}
			name := ToSnakeCase(m.Name)
			if m.Name == "constructor" {
				name = "__init__"
			}
			keyword := "def"
			if m.Async {
				keyword = "async def"
			}
			params := "self"
			if list := e.paramList(m.Params); list != "" {
				params += ", " + list
			}
			fmt.Fprintf(&b, "%s%s %s(%s):\n", pyIndent(depth+1), keyword, name, params)
			b.WriteString(e.emitBody(m.Body, depth+2))
		}
		return b.String()

	case *ast.TryStmt:
		var b strings.Builder
		fmt.Fprintf(&b, "%stry:\n", ind)
		b.WriteString(e.emitBody(st.Block, depth+1))
		if st.Handler != nil {
			if st.Param != "" {
				fmt.Fprintf(&b, "%sexcept Exception as %s:\n", ind, ToSnakeCase(st.Param))
			} else {
				fmt.Fprintf(&b, "%sexcept Exception:\n", ind)
			}
			b.WriteString(e.emitBody(st.Handler, depth+1))
		}
		if st.Finalizer != nil {
			fmt.Fprintf(&b, "%sfinally:\n", ind)
			b.WriteString(e.emitBody(st.Finalizer, depth+1))
		}
		return b.String()

	case *ast.ThrowStmt:
		if n, ok := st.Argument.(*ast.NewExpr); ok {
			return fmt.Sprintf("%sraise %s(%s)\n", ind, pyException(n.Callee), e.exprList(n.Arguments))
		}
		return fmt.Sprintf("%sraise Exception(%s)\n", ind, e.EmitExpr(st.Argument))

	case *ast.ReturnStmt:
		if st.Argument == nil {
			return ind + "return\n"
		}
		return fmt.Sprintf("%sreturn %s\n", ind, e.EmitExpr(st.Argument))

	case *ast.ExprStmt:
		// postfix update is only legal as augmented assignment
		if u, ok := st.Expression.(*ast.UpdateExpr); ok {
			op := "+="
			if u.Op == "--" {
				op = "-="
			}
			return fmt.Sprintf("%s%s %s 1\n", ind, e.EmitExpr(u.Argument), op)
		}
		return ind + e.EmitExpr(st.Expression) + "\n"

	case *ast.CommentStmt:
		return fmt.Sprintf("%s# %s\n", ind, st.Value)

	default:
		e.warnf("python: no rendering for statement %T", s)
		return ind + "pass\n"
	}
}

func (e *pythonEmitter) emitBody(body []ast.Stmt, depth int) string {
	if len(body) == 0 {
		return pyIndent(depth) + "pass\n"
	}
	var b strings.Builder
	for _, stmt := range body {
		b.WriteString(e.EmitStmt(stmt, depth))
	}
	return b.String()
}

// elifChain reports whether alternate is a lone nested if, the shape that
// renders as elif.
func elifChain(alternate []ast.Stmt) (*ast.IfStmt, bool) {
	if len(alternate) != 1 {
		return nil, false
	}
	nested, ok := alternate[0].(*ast.IfStmt)
	return nested, ok
}

func (e *pythonEmitter) rangeCall(rl RangeLoop) string {
	from := e.EmitExpr(rl.From)
	to := e.EmitExpr(rl.To)
	if rl.Down {
		stop := to
		if rl.Inclusive {
			stop = to + " - 1"
		}
		// counting down needs the explicit stop-exclusive form
		return fmt.Sprintf("range(%s, %s, -1)", from, stop)
	}
	if rl.Inclusive {
		to += " + 1"
	}
	if from == "0" {
		return fmt.Sprintf("range(%s)", to)
	}
	return fmt.Sprintf("range(%s, %s)", from, to)
}

func (e *pythonEmitter) paramList(params []ast.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = ToSnakeCase(p.Name)
		if p.Default != nil {
			parts[i] += "=" + e.EmitExpr(p.Default)
		}
	}
	return strings.Join(parts, ", ")
}

func (e *pythonEmitter) exprList(exprs []ast.Expr) string {
	parts := make([]string, len(exprs))
	for i, ex := range exprs {
		parts[i] = e.EmitExpr(ex)
	}
	return strings.Join(parts, ", ")
}

func (e *pythonEmitter) EmitExpr(expr ast.Expr) string {
	switch ex := expr.(type) {
	case *ast.Literal:
		switch ex.Raw {
		case "true":
			return "True"
		case "false":
			return "False"
		case "null", "undefined":
			return "None"
		}
		return ex.Raw

	case *ast.Ident:
		if ex.Name == "this" {
			return "self"
		}
		return ToSnakeCase(ex.Name)

	case *ast.BinaryExpr:
		op := ex.Op
		if mapped, ok := pyBinaryOps[op]; ok {
			op = mapped
		}
		return fmt.Sprintf("%s %s %s", e.EmitExpr(ex.Left), op, e.EmitExpr(ex.Right))

	case *ast.UnaryExpr:
		switch ex.Op {
		case "!":
			return "not " + e.EmitExpr(ex.Argument)
		case "typeof":
			return fmt.Sprintf("type(%s).__name__", e.EmitExpr(ex.Argument))
		}
		return ex.Op + e.EmitExpr(ex.Argument)

	case *ast.ConditionalExpr:
		return fmt.Sprintf("%s if %s else %s",
			e.EmitExpr(ex.Consequent), e.EmitExpr(ex.Test), e.EmitExpr(ex.Alternate))

	case *ast.CallExpr:
		return e.emitCall(ex)

	case *ast.MemberExpr:
		if ex.Property == "length" {
			return fmt.Sprintf("len(%s)", e.EmitExpr(ex.Object))
		}
		return fmt.Sprintf("%s.%s", e.EmitExpr(ex.Object), ToSnakeCase(ex.Property))

	case *ast.ComputedMemberExpr:
		return fmt.Sprintf("%s[%s]", e.EmitExpr(ex.Object), e.EmitExpr(ex.Property))

	case *ast.UpdateExpr:
		e.warnf("python: postfix %s has no expression form; emitted operand only", ex.Op)
		return e.EmitExpr(ex.Argument)

	case *ast.ArrayExpr:
		return "[" + e.exprList(ex.Elements) + "]"

	case *ast.ObjectExpr:
		parts := make([]string, len(ex.Properties))
		for i, prop := range ex.Properties {
			parts[i] = fmt.Sprintf("%q: %s", prop.Key, e.EmitExpr(prop.Value))
		}
		return "{" + strings.Join(parts, ", ") + "}"

	case *ast.NewExpr:
		return fmt.Sprintf("%s(%s)", pyException(ex.Callee), e.exprList(ex.Arguments))

	case *ast.SpreadElement:
		return "*" + e.EmitExpr(ex.Argument)

	case *ast.AwaitExpr:
		return "await " + e.EmitExpr(ex.Argument)

	case *ast.ArrowFunction:
		if ex.Expression {
			return fmt.Sprintf("lambda %s: %s", e.paramList(ex.Params), e.EmitExpr(ex.ExprBody))
		}
		e.warnf("python: arrow function with statement body approximated as lambda returning None")
		return fmt.Sprintf("lambda %s: None", e.paramList(ex.Params))

	case *ast.TemplateLiteral:
		return e.emitFString(ex)

	case *ast.AssignExpr:
		return fmt.Sprintf("%s %s %s", e.EmitExpr(ex.Left), ex.Op, e.EmitExpr(ex.Right))

	default:
		e.warnf("python: no rendering for expression %T", expr)
		return "None"
	}
}

func (e *pythonEmitter) emitCall(call *ast.CallExpr) string {
	if member, ok := call.Callee.(*ast.MemberExpr); ok {
		if obj, ok := member.Object.(*ast.Ident); ok {
			if target, ok := pyCallTable[obj.Name+"."+member.Property]; ok {
				return fmt.Sprintf("%s(%s)", target, e.exprList(call.Arguments))
			}
			if obj.Name == "Object" && member.Property == "keys" && len(call.Arguments) == 1 {
				return fmt.Sprintf("list(%s.keys())", e.EmitExpr(call.Arguments[0]))
			}
		}
		object := e.EmitExpr(member.Object)
		switch member.Property {
		case "join":
			if len(call.Arguments) == 1 {
				return fmt.Sprintf("%s.join(%s)", e.EmitExpr(call.Arguments[0]), object)
			}
		case "includes":
			if len(call.Arguments) == 1 {
				return fmt.Sprintf("%s in %s", e.EmitExpr(call.Arguments[0]), object)
			}
		case "slice":
			if len(call.Arguments) == 2 {
				return fmt.Sprintf("%s[%s:%s]", object, e.EmitExpr(call.Arguments[0]), e.EmitExpr(call.Arguments[1]))
			}
			if len(call.Arguments) == 1 {
				return fmt.Sprintf("%s[%s:]", object, e.EmitExpr(call.Arguments[0]))
			}
		}
		if method, ok := pyMethodTable[member.Property]; ok {
			if method == "__getitem__" && len(call.Arguments) == 1 {
				return fmt.Sprintf("%s[%s]", object, e.EmitExpr(call.Arguments[0]))
			}
			return fmt.Sprintf("%s.%s(%s)", object, method, e.exprList(call.Arguments))
		}
		return fmt.Sprintf("%s.%s(%s)", object, ToSnakeCase(member.Property), e.exprList(call.Arguments))
	}
	return fmt.Sprintf("%s(%s)", e.EmitExpr(call.Callee), e.exprList(call.Arguments))
}

// emitFString renders a template literal as an f-string, escaping literal
// braces and quotes inside the quasis.
func (e *pythonEmitter) emitFString(tpl *ast.TemplateLiteral) string {
	var b strings.Builder
	b.WriteString(`f"`)
	for i, quasi := range tpl.Quasis {
		b.WriteString(escapeFStringQuasi(quasi))
		if i < len(tpl.Expressions) {
			b.WriteString("{")
			b.WriteString(e.EmitExpr(tpl.Expressions[i]))
			b.WriteString("}")
		}
	}
	b.WriteString(`"`)
	return b.String()
}

func escapeFStringQuasi(s string) string {
	s = strings.ReplaceAll(s, "{", "{{")
	s = strings.ReplaceAll(s, "}", "}}")
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}

func pyException(name string) string {
	if mapped, ok := pyExceptions[name]; ok {
		return mapped
	}
	return name
}
