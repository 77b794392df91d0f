package gen

import (
	"fmt"
	"strings"

	"snipforge/internal/ast"
)

// typescriptEmitter regenerates the tree as TypeScript. The source dialect is
// already valid TypeScript syntax, so the work is annotation: heuristic types
// on parameters and returns, `unknown` on catch bindings. Identifiers, casing,
// operators, and brace style pass through unchanged.
type typescriptEmitter struct {
	warnings
}

func (e *typescriptEmitter) Language() Language { return TypeScript }

func tsIndent(depth int) string {
	return strings.Repeat("    ", depth)
}

func (e *typescriptEmitter) EmitStmt(s ast.Stmt, depth int) string {
	ind := tsIndent(depth)
	switch st := s.(type) {
	case *ast.Program:
		var b strings.Builder
		for _, inner := range st.Body {
			b.WriteString(e.EmitStmt(inner, depth))
		}
		return b.String()

	case *ast.FunctionDecl:
		prefix := ""
		if st.Async {
			prefix = "async "
		}
		ret := TSTypeName(InferReturnType(st.Body))
		if st.Async {
			ret = fmt.Sprintf("Promise<%s>", ret)
		}
		return fmt.Sprintf("%s%sfunction %s(%s): %s {\n%s%s}\n",
			ind, prefix, st.Name, e.typedParams(st.Params), ret,
			e.emitBody(st.Body, depth+1), ind)

	case *ast.VariableDecl:
		if st.Init == nil {
			return fmt.Sprintf("%s%s %s;\n", ind, st.Kind, st.Name)
		}
		return fmt.Sprintf("%s%s %s = %s;\n", ind, st.Kind, st.Name, e.EmitExpr(st.Init))

	case *ast.ObjectDestructuring:
		return fmt.Sprintf("%sconst { %s } = %s;\n", ind, strings.Join(st.Properties, ", "), e.EmitExpr(st.Init))

	case *ast.ArrayDestructuring:
		return fmt.Sprintf("%sconst [%s] = %s;\n", ind, strings.Join(st.Elements, ", "), e.EmitExpr(st.Init))

	case *ast.IfStmt:
		out := fmt.Sprintf("%sif (%s) {\n%s%s}", ind, e.EmitExpr(st.Test), e.emitBody(st.Consequent, depth+1), ind)
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
			init = strings.TrimSuffix(strings.TrimPrefix(e.EmitStmt(st.Init, 0), ""), ";\n")
			init = strings.TrimSuffix(init, "\n")
		}
		test := ""
		if st.Test != nil {
			test = e.EmitExpr(st.Test)
		}
		update := ""
		if st.Update != nil {
			update = e.EmitExpr(st.Update)
		}
		return fmt.Sprintf("%sfor (%s; %s; %s) {\n%s%s}\n", ind, init, test, update,
			e.emitBody(st.Body, depth+1), ind)

	case *ast.ForOfStmt:
		return fmt.Sprintf("%sfor (const %s of %s) {\n%s%s}\n", ind, st.Variable, e.EmitExpr(st.Iterable),
			e.emitBody(st.Body, depth+1), ind)

	case *ast.WhileStmt:
		return fmt.Sprintf("%swhile (%s) {\n%s%s}\n", ind, e.EmitExpr(st.Test),
			e.emitBody(st.Body, depth+1), ind)

	case *ast.ClassDecl:
		header := fmt.Sprintf("%sclass %s", ind, st.Name)
		if st.SuperClass != "" {
			header += " extends " + st.SuperClass
		}
		var b strings.Builder
		b.WriteString(header + " {\n")
		for i, m := range st.Methods {
			if i > 0 {
				b.WriteString("\n")
			}
			prefix := ""
			if m.Async {
				prefix = "async "
			}
			if m.Name == "constructor" {
				fmt.Fprintf(&b, "%sconstructor(%s) {\n", tsIndent(depth+1), e.typedParams(m.Params))
			} else {
				ret := TSTypeName(InferReturnType(m.Body))
				fmt.Fprintf(&b, "%s%s%s(%s): %s {\n", tsIndent(depth+1), prefix, m.Name, e.typedParams(m.Params), ret)
			}
			b.WriteString(e.emitBody(m.Body, depth+2))
			b.WriteString(tsIndent(depth+1) + "}\n")
		}
		b.WriteString(ind + "}\n")
		return b.String()

	case *ast.TryStmt:
		var b strings.Builder
		fmt.Fprintf(&b, "%stry {\n%s%s}", ind, e.emitBody(st.Block, depth+1), ind)
		if st.Handler != nil {
			param := st.Param
			if param == "" {
				param = "err"
			}
			fmt.Fprintf(&b, " catch (%s: unknown) {\n%s%s}", param, e.emitBody(st.Handler, depth+1), ind)
		}
		if st.Finalizer != nil {
			fmt.Fprintf(&b, " finally {\n%s%s}", e.emitBody(st.Finalizer, depth+1), ind)
		}
		b.WriteString("\n")
		return b.String()

	case *ast.ThrowStmt:
		return fmt.Sprintf("%sthrow %s;\n", ind, e.EmitExpr(st.Argument))

	case *ast.ReturnStmt:
		if st.Argument == nil {
			return ind + "return;\n"
		}
		return fmt.Sprintf("%sreturn %s;\n", ind, e.EmitExpr(st.Argument))

	case *ast.ExprStmt:
		return ind + e.EmitExpr(st.Expression) + ";\n"

	case *ast.CommentStmt:
		return fmt.Sprintf("%s// %s\n", ind, st.Value)

	default:
		e.warnf("typescript: no rendering for statement %T", s)
		return ind + ";\n"
	}
}

func (e *typescriptEmitter) emitBody(body []ast.Stmt, depth int) string {
	var b strings.Builder
	for _, stmt := range body {
		b.WriteString(e.EmitStmt(stmt, depth))
	}
	return b.String()
}

func (e *typescriptEmitter) typedParams(params []ast.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprintf("%s: %s", p.Name, TSTypeName(InferParamType(p.Name)))
		if p.Default != nil {
			parts[i] += " = " + e.EmitExpr(p.Default)
		}
	}
	return strings.Join(parts, ", ")
}

func (e *typescriptEmitter) exprList(exprs []ast.Expr) string {
	parts := make([]string, len(exprs))
	for i, ex := range exprs {
		parts[i] = e.EmitExpr(ex)
	}
	return strings.Join(parts, ", ")
}

func (e *typescriptEmitter) EmitExpr(expr ast.Expr) string {
	switch ex := expr.(type) {
	case *ast.Literal:
		return ex.Raw
	case *ast.Ident:
		return ex.Name
	case *ast.BinaryExpr:
		return fmt.Sprintf("%s %s %s", e.EmitExpr(ex.Left), ex.Op, e.EmitExpr(ex.Right))
	case *ast.UnaryExpr:
		if ex.Op == "typeof" {
			return "typeof " + e.EmitExpr(ex.Argument)
		}
		return ex.Op + e.EmitExpr(ex.Argument)
	case *ast.ConditionalExpr:
		return fmt.Sprintf("%s ? %s : %s", e.EmitExpr(ex.Test), e.EmitExpr(ex.Consequent), e.EmitExpr(ex.Alternate))
	case *ast.CallExpr:
		return fmt.Sprintf("%s(%s)", e.EmitExpr(ex.Callee), e.exprList(ex.Arguments))
	case *ast.MemberExpr:
		return fmt.Sprintf("%s.%s", e.EmitExpr(ex.Object), ex.Property)
	case *ast.ComputedMemberExpr:
		return fmt.Sprintf("%s[%s]", e.EmitExpr(ex.Object), e.EmitExpr(ex.Property))
	case *ast.UpdateExpr:
		return e.EmitExpr(ex.Argument) + ex.Op
	case *ast.ArrayExpr:
		return "[" + e.exprList(ex.Elements) + "]"
	case *ast.ObjectExpr:
		parts := make([]string, len(ex.Properties))
		for i, prop := range ex.Properties {
			parts[i] = fmt.Sprintf("%s: %s", prop.Key, e.EmitExpr(prop.Value))
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case *ast.NewExpr:
		return fmt.Sprintf("new %s(%s)", ex.Callee, e.exprList(ex.Arguments))
	case *ast.SpreadElement:
		return "..." + e.EmitExpr(ex.Argument)
	case *ast.AwaitExpr:
		return "await " + e.EmitExpr(ex.Argument)
	case *ast.ArrowFunction:
		prefix := ""
		if ex.Async {
			prefix = "async "
		}
		if ex.Expression {
			return fmt.Sprintf("%s(%s) => %s", prefix, e.typedParams(ex.Params), e.EmitExpr(ex.ExprBody))
		}
		return fmt.Sprintf("%s(%s) => {\n%s}", prefix, e.typedParams(ex.Params), e.emitBody(ex.Body, 1))
	case *ast.TemplateLiteral:
		var b strings.Builder
		b.WriteString("`")
		for i, quasi := range ex.Quasis {
			b.WriteString(quasi)
			if i < len(ex.Expressions) {
				b.WriteString("${")
				b.WriteString(e.EmitExpr(ex.Expressions[i]))
				b.WriteString("}")
			}
		}
		b.WriteString("`")
		return b.String()
	case *ast.AssignExpr:
		return fmt.Sprintf("%s %s %s", e.EmitExpr(ex.Left), ex.Op, e.EmitExpr(ex.Right))
	default:
		e.warnf("typescript: no rendering for expression %T", expr)
		return "undefined"
	}
}
