package gen

import (
	"fmt"
	"strings"

	"snipforge/internal/ast"
)

// goEmitter renders the tree as Go: tab indentation, struct + receiver
// lowering for classes, a deferred recover() closure for try/catch, and
// C-style counting loops kept as-is (Go has no native range-to idiom for
// them). Exported method names are capitalized; everything else keeps the
// source casing.
type goEmitter struct {
	warnings
	receiver string // active receiver name inside a method body, "" elsewhere
}

func (e *goEmitter) Language() Language { return Go }

func goIndent(depth int) string {
	return strings.Repeat("\t", depth)
}

var goBinaryOps = map[string]string{
	"===": "==",
	"!==": "!=",
}

var goCallTable = map[string]string{
	"console.log":   "fmt.Println",
	"console.error": "fmt.Println",
	"console.warn":  "fmt.Println",
	"Math.floor":    "math.Floor",
	"Math.ceil":     "math.Ceil",
	"Math.sqrt":     "math.Sqrt",
	"Math.abs":      "math.Abs",
	"Math.pow":      "math.Pow",
	"Math.max":      "math.Max",
	"Math.min":      "math.Min",
}

func (e *goEmitter) EmitStmt(s ast.Stmt, depth int) string {
	ind := goIndent(depth)
	switch st := s.(type) {
	case *ast.Program:
		var b strings.Builder
		for _, inner := range st.Body {
			b.WriteString(e.EmitStmt(inner, depth))
		}
		return b.String()

	case *ast.FunctionDecl:
		if st.Async {
			e.warnf("go: async function %s emitted as a synchronous func", st.Name)
		}
		ret := e.returnType(st.Body)
		if ret != "" {
			ret = " " + ret
		}
		return fmt.Sprintf("%sfunc %s(%s)%s {\n%s%s}\n",
			ind, st.Name, e.typedParams(st.Params), ret, e.emitBody(st.Body, depth+1), ind)

	case *ast.VariableDecl:
		if st.Init == nil {
			return fmt.Sprintf("%svar %s interface{}\n", ind, st.Name)
		}
		return fmt.Sprintf("%s%s := %s\n", ind, st.Name, e.EmitExpr(st.Init))

	case *ast.ObjectDestructuring:
		e.warnf("go: object destructuring approximated with indexed map access")
		init := e.EmitExpr(st.Init)
		var b strings.Builder
		for _, prop := range st.Properties {
			fmt.Fprintf(&b, "%s%s := %s[%q]\n", ind, prop, init, prop)
		}
		return b.String()

	case *ast.ArrayDestructuring:
		init := e.EmitExpr(st.Init)
		var b strings.Builder
		for i, el := range st.Elements {
			fmt.Fprintf(&b, "%s%s := %s[%d]\n", ind, el, init, i)
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
		init := ""
		if st.Init != nil {
			init = e.forInit(st.Init)
		}
		test := ""
		if st.Test != nil {
			test = e.EmitExpr(st.Test)
		}
		update := ""
		if st.Update != nil {
			update = e.EmitExpr(st.Update)
		}
		return fmt.Sprintf("%sfor %s; %s; %s {\n%s%s}\n", ind, init, test, update,
			e.emitBody(st.Body, depth+1), ind)

	case *ast.ForOfStmt:
		return fmt.Sprintf("%sfor _, %s := range %s {\n%s%s}\n", ind, st.Variable, e.EmitExpr(st.Iterable),
			e.emitBody(st.Body, depth+1), ind)

	case *ast.WhileStmt:
		return fmt.Sprintf("%sfor %s {\n%s%s}\n", ind, e.EmitExpr(st.Test), e.emitBody(st.Body, depth+1), ind)

	case *ast.ClassDecl:
		return e.emitClass(st, depth)

	case *ast.TryStmt:
		return e.emitTry(st, depth)

	case *ast.ThrowStmt:
		if n, ok := st.Argument.(*ast.NewExpr); ok {
			return fmt.Sprintf("%spanic(fmt.Errorf(%s))\n", ind, e.exprList(n.Arguments))
		}
		return fmt.Sprintf("%spanic(%s)\n", ind, e.EmitExpr(st.Argument))

	case *ast.ReturnStmt:
		if st.Argument == nil {
			return ind + "return\n"
		}
		return fmt.Sprintf("%sreturn %s\n", ind, e.EmitExpr(st.Argument))

	case *ast.ExprStmt:
		// arr.push(x) becomes a reassigning append
		if call, ok := st.Expression.(*ast.CallExpr); ok {
			if member, ok := call.Callee.(*ast.MemberExpr); ok && member.Property == "push" {
				obj := e.EmitExpr(member.Object)
				return fmt.Sprintf("%s%s = append(%s, %s)\n", ind, obj, obj, e.exprList(call.Arguments))
			}
		}
		if u, ok := st.Expression.(*ast.UpdateExpr); ok {
			return fmt.Sprintf("%s%s%s\n", ind, e.EmitExpr(u.Argument), u.Op)
		}
		return ind + e.EmitExpr(st.Expression) + "\n"

	case *ast.CommentStmt:
		return fmt.Sprintf("%s// %s\n", ind, st.Value)

	default:
		e.warnf("go: no rendering for statement %T", s)
		return ind + "_ = struct{}{}\n"
	}
}

func (e *goEmitter) emitBody(body []ast.Stmt, depth int) string {
	var b strings.Builder
	for _, stmt := range body {
		b.WriteString(e.EmitStmt(stmt, depth))
	}
	return b.String()
}

// forInit renders the first clause of a C-style loop inline.
func (e *goEmitter) forInit(init ast.Stmt) string {
	switch st := init.(type) {
	case *ast.VariableDecl:
		if st.Init == nil {
			return fmt.Sprintf("%s := 0", st.Name)
		}
		return fmt.Sprintf("%s := %s", st.Name, e.EmitExpr(st.Init))
	case *ast.ExprStmt:
		return e.EmitExpr(st.Expression)
	default:
		return ""
	}
}

// emitClass lowers a class to a struct, a New<Type> constructor, and pointer
// receiver methods with capitalized (exported) names.
func (e *goEmitter) emitClass(decl *ast.ClassDecl, depth int) string {
	ind := goIndent(depth)
	recv := strings.ToLower(decl.Name[:1])
	if decl.SuperClass != "" {
		e.warnf("go: class %s extends %s approximated by embedding", decl.Name, decl.SuperClass)
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

	var b strings.Builder
	fmt.Fprintf(&b, "%stype %s struct {\n", ind, decl.Name)
	if decl.SuperClass != "" {
		fmt.Fprintf(&b, "%s%s\n", goIndent(depth+1), decl.SuperClass)
	}
	fields := e.classFields(ctor)
	for _, f := range fields {
		fmt.Fprintf(&b, "%s%s %s\n", goIndent(depth+1), f.name, f.typ)
	}
	fmt.Fprintf(&b, "%s}\n\n", ind)

	if ctor != nil {
		fmt.Fprintf(&b, "%sfunc New%s(%s) *%s {\n", ind, decl.Name, e.typedParams(ctor.Params), decl.Name)
		fmt.Fprintf(&b, "%s%s := &%s{}\n", goIndent(depth+1), recv, decl.Name)
		prev := e.receiver
		e.receiver = recv
		b.WriteString(e.emitBody(ctor.Body, depth+1))
		e.receiver = prev
		fmt.Fprintf(&b, "%sreturn %s\n%s}\n", goIndent(depth+1), recv, ind)
	}

	for _, m := range methods {
		if m.Async {
			e.warnf("go: async method %s.%s emitted as a synchronous method", decl.Name, m.Name)
		}
		ret := e.returnType(m.Body)
		if ret != "" {
			ret = " " + ret
		}
		fmt.Fprintf(&b, "\n%sfunc (%s *%s) %s(%s)%s {\n", ind, recv, decl.Name, Capitalize(m.Name),
			e.typedParams(m.Params), ret)
		prev := e.receiver
		e.receiver = recv
		b.WriteString(e.emitBody(m.Body, depth+1))
		e.receiver = prev
		fmt.Fprintf(&b, "%s}\n", ind)
	}
	return b.String()
}

type goField struct {
	name string
	typ  string
}

// classFields derives struct fields from `this.x = ...` assignments in the
// constructor body, typing each from the assigned expression's literal shape
// with the parameter-name heuristic as backup.
func (e *goEmitter) classFields(ctor *ast.Method) []goField {
	if ctor == nil {
		return nil
	}
	paramHints := map[string]TypeHint{}
	for _, p := range ctor.Params {
		paramHints[p.Name] = InferParamType(p.Name)
	}
	var fields []goField
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
		fields = append(fields, goField{name: Capitalize(member.Property), typ: GoTypeName(hint)})
	}
	return fields
}

// emitTry wraps the block in an immediately-invoked closure whose deferred
// recover() runs the catch handler. A try-block that must return a value to
// its enclosing function is not modeled.
func (e *goEmitter) emitTry(st *ast.TryStmt, depth int) string {
	ind := goIndent(depth)
	var b strings.Builder
	fmt.Fprintf(&b, "%sfunc() {\n", ind)
	if st.Handler != nil {
		fmt.Fprintf(&b, "%sdefer func() {\n", goIndent(depth+1))
		fmt.Fprintf(&b, "%sif r := recover(); r != nil {\n", goIndent(depth+2))
		if st.Param != "" {
			fmt.Fprintf(&b, "%s%s := r\n", goIndent(depth+3), st.Param)
			fmt.Fprintf(&b, "%s_ = %s\n", goIndent(depth+3), st.Param)
		} else {
			fmt.Fprintf(&b, "%s_ = r\n", goIndent(depth+3))
		}
		b.WriteString(e.emitBody(st.Handler, depth+3))
		fmt.Fprintf(&b, "%s}\n", goIndent(depth+2))
		fmt.Fprintf(&b, "%s}()\n", goIndent(depth+1))
	}
	b.WriteString(e.emitBody(st.Block, depth+1))
	fmt.Fprintf(&b, "%s}()\n", ind)
	if st.Finalizer != nil {
		b.WriteString(e.emitBody(st.Finalizer, depth))
	}
	return b.String()
}

// returnType infers the emitted return type, empty when the body never
// returns a value.
func (e *goEmitter) returnType(body []ast.Stmt) string {
	if !returnsValue(body) {
		return ""
	}
	return GoTypeName(InferReturnType(body))
}

// returnsValue walks statements looking for any return with an argument.
func returnsValue(body []ast.Stmt) bool {
	for _, stmt := range body {
		switch s := stmt.(type) {
		case *ast.ReturnStmt:
			if s.Argument != nil {
				return true
			}
		case *ast.IfStmt:
			if returnsValue(s.Consequent) || returnsValue(s.Alternate) {
				return true
			}
		case *ast.ForStmt:
			if returnsValue(s.Body) {
				return true
			}
		case *ast.ForOfStmt:
			if returnsValue(s.Body) {
				return true
			}
		case *ast.WhileStmt:
			if returnsValue(s.Body) {
				return true
			}
		case *ast.TryStmt:
			if returnsValue(s.Block) || returnsValue(s.Handler) || returnsValue(s.Finalizer) {
				return true
			}
		}
	}
	return false
}

func (e *goEmitter) typedParams(params []ast.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		if p.Default != nil {
			e.warnf("go: default value for parameter %s dropped (no Go equivalent)", p.Name)
		}
		parts[i] = fmt.Sprintf("%s %s", p.Name, GoTypeName(InferParamType(p.Name)))
	}
	return strings.Join(parts, ", ")
}

func (e *goEmitter) exprList(exprs []ast.Expr) string {
	parts := make([]string, len(exprs))
	for i, ex := range exprs {
		parts[i] = e.EmitExpr(ex)
	}
	return strings.Join(parts, ", ")
}

func (e *goEmitter) EmitExpr(expr ast.Expr) string {
	switch ex := expr.(type) {
	case *ast.Literal:
		switch ex.Raw {
		case "null", "undefined":
			return "nil"
		}
		return normalizeQuotes(ex.Raw)

	case *ast.Ident:
		if ex.Name == "this" && e.receiver != "" {
			return e.receiver
		}
		return ex.Name

	case *ast.BinaryExpr:
		op := ex.Op
		if mapped, ok := goBinaryOps[op]; ok {
			op = mapped
		}
		return fmt.Sprintf("%s %s %s", e.EmitExpr(ex.Left), op, e.EmitExpr(ex.Right))

	case *ast.UnaryExpr:
		if ex.Op == "typeof" {
			return fmt.Sprintf("fmt.Sprintf(%q, %s)", "%T", e.EmitExpr(ex.Argument))
		}
		return ex.Op + e.EmitExpr(ex.Argument)

	case *ast.ConditionalExpr:
		// Go has no ternary; lower to the map-free closure form
		e.warnf("go: ternary expression lowered to an immediately-invoked closure")
		return fmt.Sprintf("func() interface{} { if %s { return %s }; return %s }()",
			e.EmitExpr(ex.Test), e.EmitExpr(ex.Consequent), e.EmitExpr(ex.Alternate))

	case *ast.CallExpr:
		return e.emitCall(ex)

	case *ast.MemberExpr:
		if ex.Property == "length" {
			return fmt.Sprintf("len(%s)", e.EmitExpr(ex.Object))
		}
		if obj, ok := ex.Object.(*ast.Ident); ok && obj.Name == "this" && e.receiver != "" {
			return fmt.Sprintf("%s.%s", e.receiver, Capitalize(ex.Property))
		}
		return fmt.Sprintf("%s.%s", e.EmitExpr(ex.Object), ex.Property)

	case *ast.ComputedMemberExpr:
		return fmt.Sprintf("%s[%s]", e.EmitExpr(ex.Object), e.EmitExpr(ex.Property))

	case *ast.UpdateExpr:
		e.warnf("go: postfix %s in expression position emitted as operand only", ex.Op)
		return e.EmitExpr(ex.Argument)

	case *ast.ArrayExpr:
		return fmt.Sprintf("[]interface{}{%s}", e.exprList(ex.Elements))

	case *ast.ObjectExpr:
		parts := make([]string, len(ex.Properties))
		for i, prop := range ex.Properties {
			parts[i] = fmt.Sprintf("%q: %s", prop.Key, e.EmitExpr(prop.Value))
		}
		return fmt.Sprintf("map[string]interface{}{%s}", strings.Join(parts, ", "))

	case *ast.NewExpr:
		return fmt.Sprintf("New%s(%s)", Capitalize(ex.Callee), e.exprList(ex.Arguments))

	case *ast.SpreadElement:
		e.warnf("go: spread element approximated with variadic expansion")
		return e.EmitExpr(ex.Argument) + "..."

	case *ast.AwaitExpr:
		// deliberately lossy placeholder: await maps to a channel receive
		e.warnf("go: await lowered to a channel receive placeholder")
		return "<-" + e.EmitExpr(ex.Argument)

	case *ast.ArrowFunction:
		if ex.Expression {
			return fmt.Sprintf("func(%s) interface{} { return %s }", e.typedParams(ex.Params), e.EmitExpr(ex.ExprBody))
		}
		ret := e.returnType(ex.Body)
		if ret != "" {
			ret = " " + ret
		}
		return fmt.Sprintf("func(%s)%s {\n%s}", e.typedParams(ex.Params), ret, e.emitBody(ex.Body, 1))

	case *ast.TemplateLiteral:
		return e.emitSprintf(ex)

	case *ast.AssignExpr:
		return fmt.Sprintf("%s %s %s", e.EmitExpr(ex.Left), ex.Op, e.EmitExpr(ex.Right))

	default:
		e.warnf("go: no rendering for expression %T", expr)
		return "nil"
	}
}

func (e *goEmitter) emitCall(call *ast.CallExpr) string {
	if member, ok := call.Callee.(*ast.MemberExpr); ok {
		if obj, ok := member.Object.(*ast.Ident); ok {
			if target, ok := goCallTable[obj.Name+"."+member.Property]; ok {
				return fmt.Sprintf("%s(%s)", target, e.exprList(call.Arguments))
			}
		}
		if member.Property == "push" {
			return fmt.Sprintf("append(%s, %s)", e.EmitExpr(member.Object), e.exprList(call.Arguments))
		}
	}
	return fmt.Sprintf("%s(%s)", e.EmitExpr(call.Callee), e.exprList(call.Arguments))
}

// emitSprintf renders a template literal as fmt.Sprintf with positional %v
// verbs.
func (e *goEmitter) emitSprintf(tpl *ast.TemplateLiteral) string {
	var format strings.Builder
	args := make([]string, 0, len(tpl.Expressions))
	for i, quasi := range tpl.Quasis {
		format.WriteString(quasi)
		if i < len(tpl.Expressions) {
			format.WriteString("%v")
			args = append(args, e.EmitExpr(tpl.Expressions[i]))
		}
	}
	if len(args) == 0 {
		return fmt.Sprintf("%q", format.String())
	}
	return fmt.Sprintf("fmt.Sprintf(%q, %s)", format.String(), strings.Join(args, ", "))
}

// normalizeQuotes rewrites a single-quoted source string as a double-quoted
// literal for targets that reserve single quotes.
func normalizeQuotes(raw string) string {
	if len(raw) >= 2 && raw[0] == '\'' && raw[len(raw)-1] == '\'' {
		inner := raw[1 : len(raw)-1]
		inner = strings.ReplaceAll(inner, `\'`, `'`)
		inner = strings.ReplaceAll(inner, `"`, `\"`)
		return `"` + inner + `"`
	}
	return raw
}
