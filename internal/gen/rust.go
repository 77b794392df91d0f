package gen

import (
	"fmt"
	"strings"

	"snipforge/internal/ast"
)

// rustEmitter renders the tree as Rust: snake_case names, 4-space
// indentation, native a..b range loops, struct + impl lowering for classes,
// and a Result-returning closure for try/catch. The try mapping is
// known-approximate: a try-block that must return a value to its enclosing
// function is not modeled, and each such rendering records a warning.
type rustEmitter struct {
	warnings
	inTry bool // inside a try-block closure, where throw becomes return Err
}

func (e *rustEmitter) Language() Language { return Rust }

func rsIndent(depth int) string {
	return strings.Repeat("    ", depth)
}

var rustBinaryOps = map[string]string{
	"===": "==",
	"!==": "!=",
}

func (e *rustEmitter) EmitStmt(s ast.Stmt, depth int) string {
	ind := rsIndent(depth)
	switch st := s.(type) {
	case *ast.Program:
		var b strings.Builder
		for _, inner := range st.Body {
			b.WriteString(e.EmitStmt(inner, depth))
		}
		return b.String()

	case *ast.FunctionDecl:
		keyword := "fn"
		if st.Async {
			keyword = "async fn"
		}
		ret := ""
		if returnsValue(st.Body) {
			ret = " -> " + RustTypeName(InferReturnType(st.Body))
		}
		return fmt.Sprintf("%s%s %s(%s)%s {\n%s%s}\n",
			ind, keyword, ToSnakeCase(st.Name), e.typedParams(st.Params), ret,
			e.emitBody(st.Body, depth+1), ind)

	case *ast.VariableDecl:
		if st.Init == nil {
			return fmt.Sprintf("%slet mut %s;\n", ind, ToSnakeCase(st.Name))
		}
		keyword := "let mut"
		if st.Kind == "const" {
			keyword = "let"
		}
		return fmt.Sprintf("%s%s %s = %s;\n", ind, keyword, ToSnakeCase(st.Name), e.EmitExpr(st.Init))

	case *ast.ObjectDestructuring:
		e.warnf("rust: object destructuring approximated with field access")
		init := e.EmitExpr(st.Init)
		var b strings.Builder
		for _, prop := range st.Properties {
			fmt.Fprintf(&b, "%slet %s = %s.%s;\n", ind, ToSnakeCase(prop), init, ToSnakeCase(prop))
		}
		return b.String()

	case *ast.ArrayDestructuring:
		init := e.EmitExpr(st.Init)
		var b strings.Builder
		for i, el := range st.Elements {
			fmt.Fprintf(&b, "%slet %s = %s[%d];\n", ind, ToSnakeCase(el), init, i)
		}
		return b.String()

	case *ast.IfStmt:
		out := fmt.Sprintf("%sif %s {\n%s%s}", ind, e.EmitExpr(st.Test), e.emitBody(st.Consequent, depth+1), ind)
		if st.Alternate != nil {
			if nested, ok := elifChain(st.Alternate); ok {
				out += " else " + strings.TrimPrefix(e.EmitStmt(nested, depth), ind)
				return out
			}
			out += fmt.Sprintf(" else {\n%s%s}", e.emitBody(st.Alternate, depth+1), ind)
		}
		return out + "\n"

	case *ast.ForStmt:
		if rl, ok := DetectRangeLoop(st); ok {
			return fmt.Sprintf("%sfor %s in %s {\n%s%s}\n", ind, ToSnakeCase(rl.Var), e.rangeExpr(rl),
				e.emitBody(st.Body, depth+1), ind)
		}
		// no C-style loop in Rust; lower to a while
		var b strings.Builder
		if st.Init != nil {
			b.WriteString(e.EmitStmt(st.Init, depth))
		}
		test := "true"
		if st.Test != nil {
			test = e.EmitExpr(st.Test)
		}
		fmt.Fprintf(&b, "%swhile %s {\n", ind, test)
		b.WriteString(e.emitBody(st.Body, depth+1))
		if st.Update != nil {
			b.WriteString(e.EmitStmt(&ast.ExprStmt{Expression: st.Update}, depth+1))
		}
		fmt.Fprintf(&b, "%s}\n", ind)
		return b.String()

	case *ast.ForOfStmt:
		return fmt.Sprintf("%sfor %s in %s.iter() {\n%s%s}\n", ind, ToSnakeCase(st.Variable),
			e.EmitExpr(st.Iterable), e.emitBody(st.Body, depth+1), ind)

	case *ast.WhileStmt:
		return fmt.Sprintf("%swhile %s {\n%s%s}\n", ind, e.EmitExpr(st.Test), e.emitBody(st.Body, depth+1), ind)

	case *ast.ClassDecl:
		return e.emitClass(st, depth)

	case *ast.TryStmt:
		return e.emitTry(st, depth)

	case *ast.ThrowStmt:
		if e.inTry {
			if n, ok := st.Argument.(*ast.NewExpr); ok {
				return fmt.Sprintf("%sreturn Err(format!(%s));\n", ind, e.exprList(n.Arguments))
			}
			return fmt.Sprintf("%sreturn Err(format!(\"{}\", %s));\n", ind, e.EmitExpr(st.Argument))
		}
		if n, ok := st.Argument.(*ast.NewExpr); ok {
			return fmt.Sprintf("%spanic!(%s);\n", ind, e.exprList(n.Arguments))
		}
		return fmt.Sprintf("%spanic!(\"{}\", %s);\n", ind, e.EmitExpr(st.Argument))

	case *ast.ReturnStmt:
		if st.Argument == nil {
			return ind + "return;\n"
		}
		return fmt.Sprintf("%sreturn %s;\n", ind, e.EmitExpr(st.Argument))

	case *ast.ExprStmt:
		if u, ok := st.Expression.(*ast.UpdateExpr); ok {
			op := "+="
			if u.Op == "--" {
				op = "-="
			}
			return fmt.Sprintf("%s%s %s 1;\n", ind, e.EmitExpr(u.Argument), op)
		}
		return ind + e.EmitExpr(st.Expression) + ";\n"

	case *ast.CommentStmt:
		return fmt.Sprintf("%s// %s\n", ind, st.Value)

	default:
		e.warnf("rust: no rendering for statement %T", s)
		return ind + "();\n"
	}
}

func (e *rustEmitter) emitBody(body []ast.Stmt, depth int) string {
	var b strings.Builder
	for _, stmt := range body {
		b.WriteString(e.EmitStmt(stmt, depth))
	}
	return b.String()
}

func (e *rustEmitter) rangeExpr(rl RangeLoop) string {
	from := e.EmitExpr(rl.From)
	to := e.EmitExpr(rl.To)
	if rl.Down {
		start := to + " + 1"
		if rl.Inclusive {
			start = to
		}
		return fmt.Sprintf("(%s..=%s).rev()", start, from)
	}
	if rl.Inclusive {
		return fmt.Sprintf("%s..=%s", from, to)
	}
	return fmt.Sprintf("%s..%s", from, to)
}

// emitClass lowers a class to a struct plus an impl block; the constructor
// becomes an associated new function returning Self.
func (e *rustEmitter) emitClass(decl *ast.ClassDecl, depth int) string {
	ind := rsIndent(depth)
	if decl.SuperClass != "" {
		e.warnf("rust: class %s extends %s has no inheritance equivalent; superclass dropped", decl.Name, decl.SuperClass)
	}

	var ctor *ast.Method
	var methods []ast.Method
	for i := range decl.Methods {
		if decl.Methods[i].Name == "constructor" {
			ctor = &decl.Methods[i]
		} else {
			methods = append(methods, decl.Methods[i])
		}
	}

	fields := e.classFields(ctor)
	var b strings.Builder
	fmt.Fprintf(&b, "%sstruct %s {\n", ind, decl.Name)
	for _, f := range fields {
		fmt.Fprintf(&b, "%s%s: %s,\n", rsIndent(depth+1), f.name, f.typ)
	}
	fmt.Fprintf(&b, "%s}\n\n", ind)

	fmt.Fprintf(&b, "%simpl %s {\n", ind, decl.Name)
	if ctor != nil {
		fmt.Fprintf(&b, "%spub fn new(%s) -> Self {\n", rsIndent(depth+1), e.typedParams(ctor.Params))
		fmt.Fprintf(&b, "%sSelf {\n", rsIndent(depth+2))
		for _, f := range fields {
			fmt.Fprintf(&b, "%s%s: %s,\n", rsIndent(depth+3), f.name, f.init)
		}
		fmt.Fprintf(&b, "%s}\n%s}\n", rsIndent(depth+2), rsIndent(depth+1))
	}
	for _, m := range methods {
		if len(b.String()) > 0 {
			b.WriteString("\n")
		}
		keyword := "pub fn"
		if m.Async {
			keyword = "pub async fn"
		}
		ret := ""
		if returnsValue(m.Body) {
			ret = " -> " + RustTypeName(InferReturnType(m.Body))
		}
		params := "&mut self"
		if list := e.typedParams(m.Params); list != "" {
			params += ", " + list
		}
		fmt.Fprintf(&b, "%s%s %s(%s)%s {\n", rsIndent(depth+1), keyword, ToSnakeCase(m.Name), params, ret)
		b.WriteString(e.emitBody(m.Body, depth+2))
		fmt.Fprintf(&b, "%s}\n", rsIndent(depth+1))
	}
	fmt.Fprintf(&b, "%s}\n", ind)
	return b.String()
}

type rustField struct {
	name string
	typ  string
	init string
}

// classFields derives struct fields and their constructor initializers from
// `this.x = ...` assignments in the constructor body.
func (e *rustEmitter) classFields(ctor *ast.Method) []rustField {
	if ctor == nil {
		return nil
	}
	paramHints := map[string]TypeHint{}
	for _, p := range ctor.Params {
		paramHints[p.Name] = InferParamType(p.Name)
	}
	var fields []rustField
	seen := map[string]bool{}
	for _, stmt := range ctor.Body {
		expr, ok := stmt.(*ast.ExprStmt)
		if !ok {
			continue
		}
		assign, ok := expr.Expression.(*ast.AssignExpr)
		if !ok || assign.Op != "=" {
			continue
		}
		member, ok := assign.Left.(*ast.MemberExpr)
		if !ok {
			continue
		}
		obj, ok := member.Object.(*ast.Ident)
		if !ok || obj.Name != "this" || seen[member.Property] {
			continue
		}
		seen[member.Property] = true
		hint := LiteralHint(assign.Right)
		if hint == HintUnknown {
			if ident, ok := assign.Right.(*ast.Ident); ok {
				hint = paramHints[ident.Name]
			}
		}
		fields = append(fields, rustField{
			name: ToSnakeCase(member.Property),
			typ:  RustTypeName(hint),
			init: e.EmitExpr(assign.Right),
		})
	}
	return fields
}

// emitTry wraps the block in a closure returning Result<(), String> and
// unwraps the failure with if let Err. Known-approximate: the block cannot
// return a value to the enclosing function through this form.
func (e *rustEmitter) emitTry(st *ast.TryStmt, depth int) string {
	e.warnf("rust: try/catch rendered as a Result-returning closure; returns inside try are not propagated")
	ind := rsIndent(depth)
	var b strings.Builder
	fmt.Fprintf(&b, "%slet try_result: Result<(), String> = (|| {\n", ind)
	prev := e.inTry
	e.inTry = true
	b.WriteString(e.emitBody(st.Block, depth+1))
	e.inTry = prev
	fmt.Fprintf(&b, "%sOk(())\n", rsIndent(depth+1))
	fmt.Fprintf(&b, "%s})();\n", ind)
	if st.Handler != nil {
		param := ToSnakeCase(st.Param)
		if param == "" {
			param = "err"
		}
		fmt.Fprintf(&b, "%sif let Err(%s) = try_result {\n", ind, param)
		b.WriteString(e.emitBody(st.Handler, depth+1))
		fmt.Fprintf(&b, "%s}\n", ind)
	}
	if st.Finalizer != nil {
		b.WriteString(e.emitBody(st.Finalizer, depth))
	}
	return b.String()
}

func (e *rustEmitter) typedParams(params []ast.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		if p.Default != nil {
			e.warnf("rust: default value for parameter %s dropped (no Rust equivalent)", p.Name)
		}
		parts[i] = fmt.Sprintf("%s: %s", ToSnakeCase(p.Name), RustTypeName(InferParamType(p.Name)))
	}
	return strings.Join(parts, ", ")
}

func (e *rustEmitter) exprList(exprs []ast.Expr) string {
	parts := make([]string, len(exprs))
	for i, ex := range exprs {
		parts[i] = e.EmitExpr(ex)
	}
	return strings.Join(parts, ", ")
}

func (e *rustEmitter) EmitExpr(expr ast.Expr) string {
	switch ex := expr.(type) {
	case *ast.Literal:
		switch ex.Raw {
		case "null", "undefined":
			return "None"
		}
		return normalizeQuotes(ex.Raw)

	case *ast.Ident:
		if ex.Name == "this" {
			return "self"
		}
		return ToSnakeCase(ex.Name)

	case *ast.BinaryExpr:
		op := ex.Op
		if mapped, ok := rustBinaryOps[op]; ok {
			op = mapped
		}
		return fmt.Sprintf("%s %s %s", e.EmitExpr(ex.Left), op, e.EmitExpr(ex.Right))

	case *ast.UnaryExpr:
		if ex.Op == "typeof" {
			e.warnf("rust: typeof has no equivalent; emitted a type_name call")
			return fmt.Sprintf("std::any::type_name_of_val(&%s)", e.EmitExpr(ex.Argument))
		}
		return ex.Op + e.EmitExpr(ex.Argument)

	case *ast.ConditionalExpr:
		// if-else is an expression in Rust, so the ternary maps directly
		return fmt.Sprintf("if %s { %s } else { %s }",
			e.EmitExpr(ex.Test), e.EmitExpr(ex.Consequent), e.EmitExpr(ex.Alternate))

	case *ast.CallExpr:
		return e.emitCall(ex)

	case *ast.MemberExpr:
		if ex.Property == "length" {
			return fmt.Sprintf("%s.len()", e.EmitExpr(ex.Object))
		}
		return fmt.Sprintf("%s.%s", e.EmitExpr(ex.Object), ToSnakeCase(ex.Property))

	case *ast.ComputedMemberExpr:
		return fmt.Sprintf("%s[%s]", e.EmitExpr(ex.Object), e.EmitExpr(ex.Property))

	case *ast.UpdateExpr:
		e.warnf("rust: postfix %s in expression position emitted as operand only", ex.Op)
		return e.EmitExpr(ex.Argument)

	case *ast.ArrayExpr:
		return fmt.Sprintf("vec![%s]", e.exprList(ex.Elements))

	case *ast.ObjectExpr:
		e.warnf("rust: object literal approximated as a HashMap")
		parts := make([]string, len(ex.Properties))
		for i, prop := range ex.Properties {
			parts[i] = fmt.Sprintf("(%q.to_string(), %s)", prop.Key, e.EmitExpr(prop.Value))
		}
		return fmt.Sprintf("std::collections::HashMap::from([%s])", strings.Join(parts, ", "))

	case *ast.NewExpr:
		if isErrorName(ex.Callee) {
			return fmt.Sprintf("format!(%s)", e.exprList(ex.Arguments))
		}
		return fmt.Sprintf("%s::new(%s)", ex.Callee, e.exprList(ex.Arguments))

	case *ast.SpreadElement:
		e.warnf("rust: spread element emitted as a clone of its argument")
		return e.EmitExpr(ex.Argument) + ".clone()"

	case *ast.AwaitExpr:
		return e.EmitExpr(ex.Argument) + ".await"

	case *ast.ArrowFunction:
		if ex.Expression {
			return fmt.Sprintf("|%s| %s", e.closureParams(ex.Params), e.EmitExpr(ex.ExprBody))
		}
		return fmt.Sprintf("|%s| {\n%s}", e.closureParams(ex.Params), e.emitBody(ex.Body, 1))

	case *ast.TemplateLiteral:
		return e.emitFormat(ex)

	case *ast.AssignExpr:
		return fmt.Sprintf("%s %s %s", e.EmitExpr(ex.Left), ex.Op, e.EmitExpr(ex.Right))

	default:
		e.warnf("rust: no rendering for expression %T", expr)
		return "()"
	}
}

func (e *rustEmitter) closureParams(params []ast.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = ToSnakeCase(p.Name)
	}
	return strings.Join(parts, ", ")
}

func (e *rustEmitter) emitCall(call *ast.CallExpr) string {
	if member, ok := call.Callee.(*ast.MemberExpr); ok {
		if obj, ok := member.Object.(*ast.Ident); ok && obj.Name == "console" {
			if len(call.Arguments) == 1 {
				return fmt.Sprintf("println!(\"{}\", %s)", e.EmitExpr(call.Arguments[0]))
			}
			return fmt.Sprintf("println!(\"{:?}\", (%s))", e.exprList(call.Arguments))
		}
		if obj, ok := member.Object.(*ast.Ident); ok && obj.Name == "Math" {
			switch member.Property {
			case "floor", "ceil", "sqrt", "abs":
				if len(call.Arguments) == 1 {
					return fmt.Sprintf("(%s as f64).%s()", e.EmitExpr(call.Arguments[0]), member.Property)
				}
			case "max", "min":
				if len(call.Arguments) == 2 {
					return fmt.Sprintf("std::cmp::%s(%s, %s)", member.Property,
						e.EmitExpr(call.Arguments[0]), e.EmitExpr(call.Arguments[1]))
				}
			}
		}
		if member.Property == "push" {
			return fmt.Sprintf("%s.push(%s)", e.EmitExpr(member.Object), e.exprList(call.Arguments))
		}
		return fmt.Sprintf("%s.%s(%s)", e.EmitExpr(member.Object), ToSnakeCase(member.Property), e.exprList(call.Arguments))
	}
	return fmt.Sprintf("%s(%s)", e.EmitExpr(call.Callee), e.exprList(call.Arguments))
}

// emitFormat renders a template literal as format! with positional {} verbs.
func (e *rustEmitter) emitFormat(tpl *ast.TemplateLiteral) string {
	var format strings.Builder
	args := make([]string, 0, len(tpl.Expressions))
	for i, quasi := range tpl.Quasis {
		format.WriteString(strings.ReplaceAll(strings.ReplaceAll(quasi, "{", "{{"), "}", "}}"))
		if i < len(tpl.Expressions) {
			format.WriteString("{}")
			args = append(args, e.EmitExpr(tpl.Expressions[i]))
		}
	}
	if len(args) == 0 {
		return fmt.Sprintf("%q.to_string()", format.String())
	}
	return fmt.Sprintf("format!(%q, %s)", format.String(), strings.Join(args, ", "))
}

// isErrorName matches the source dialect's built-in error constructors.
func isErrorName(name string) bool {
	switch name {
	case "Error", "TypeError", "RangeError", "SyntaxError", "ReferenceError":
		return true
	}
	return false
}
