// Package parser turns snippet source into the uniform syntax tree.
//
// This is not a full grammar for the source dialect. It targets the shapes
// typical of small utility functions: top-level declarations, the statement
// forms in the ast package, and a fixed precedence ladder parsed with simple
// recursive descent. Parse failure is all-or-nothing: a construct outside the
// supported subset fails the whole call with a descriptive message, never a
// partial tree. Decorators, generator functions, and regex literals in
// arbitrary expression position are out of the subset.
package parser

import (
	"fmt"
	"strings"

	"snipforge/internal/ast"
	"snipforge/internal/token"
)

// Error is a parse failure. Pos is a byte offset into the original source,
// best-effort (0 when the failure has no anchoring token).
type Error struct {
	Msg string
	Pos int
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Pos, e.Msg)
}

// Parse tokenizes and parses source into a Program. On failure it returns a
// nil tree and a *Error; callers must treat failure as all-or-nothing.
func Parse(source string) (*ast.Program, error) {
	p := &parser{toks: token.Tokenize(source)}
	prog := &ast.Program{}
	for !p.done() {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		prog.Body = append(prog.Body, stmt)
	}
	return prog, nil
}

type parser struct {
	toks []token.Token
	pos  int
}

func (p *parser) done() bool {
	return p.pos >= len(p.toks)
}

func (p *parser) cur() token.Token {
	if p.done() {
		return token.Token{}
	}
	return p.toks[p.pos]
}

func (p *parser) peek(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return token.Token{}
	}
	return p.toks[p.pos+n]
}

func (p *parser) at(kind token.Kind, text string) bool {
	t := p.cur()
	return !p.done() && t.Kind == kind && t.Text == text
}

func (p *parser) atIdent(name string) bool {
	return p.at(token.Identifier, name)
}

func (p *parser) advance() token.Token {
	t := p.cur()
	p.pos++
	return t
}

func (p *parser) expect(kind token.Kind, text string) error {
	if !p.at(kind, text) {
		return p.errorf("expected %q, got %q", text, p.cur().Text)
	}
	p.pos++
	return nil
}

func (p *parser) errorf(format string, args ...interface{}) *Error {
	return &Error{Msg: fmt.Sprintf(format, args...), Pos: p.cur().Pos}
}

// skipSemicolons consumes optional statement terminators.
func (p *parser) skipSemicolons() {
	for p.at(token.Punct, ";") {
		p.pos++
	}
}

// =============================================================================
// STATEMENTS
// =============================================================================

func (p *parser) parseStmt() (ast.Stmt, error) {
	t := p.cur()

	if t.Kind == token.Comment {
		p.pos++
		return &ast.CommentStmt{Value: commentValue(t.Text)}, nil
	}

	if t.Kind == token.Identifier {
		switch t.Text {
		case "function":
			return p.parseFunction(false)
		case "async":
			if p.peek(1).Kind == token.Identifier && p.peek(1).Text == "function" {
				p.pos++
				return p.parseFunction(true)
			}
		case "let", "const", "var":
			return p.parseVariableDecl()
		case "if":
			return p.parseIf()
		case "for":
			return p.parseFor()
		case "while":
			return p.parseWhile()
		case "class":
			return p.parseClass()
		case "try":
			return p.parseTry()
		case "throw":
			p.pos++
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			p.skipSemicolons()
			return &ast.ThrowStmt{Argument: arg}, nil
		case "return":
			p.pos++
			if p.done() || p.at(token.Punct, ";") || p.at(token.Punct, "}") {
				p.skipSemicolons()
				return &ast.ReturnStmt{}, nil
			}
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			p.skipSemicolons()
			return &ast.ReturnStmt{Argument: arg}, nil
		}
	}

	// decorators are outside the supported subset
	if p.at(token.Punct, "@") {
		return nil, p.errorf("decorators are not supported")
	}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSemicolons()
	return &ast.ExprStmt{Expression: expr}, nil
}

func (p *parser) parseFunction(async bool) (ast.Stmt, error) {
	p.pos++ // function
	if p.at(token.Operator, "*") {
		return nil, p.errorf("generator functions are not supported")
	}
	if p.cur().Kind != token.Identifier {
		return nil, p.errorf("expected function name, got %q", p.cur().Text)
	}
	name := p.advance().Text
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDecl{Name: name, Params: params, Body: body, Async: async}, nil
}

// parseParams parses a parenthesized parameter list with optional defaults.
func (p *parser) parseParams() ([]ast.Param, error) {
	if err := p.expect(token.Punct, "("); err != nil {
		return nil, err
	}
	var params []ast.Param
	for !p.at(token.Punct, ")") {
		if p.done() {
			return nil, p.errorf("unterminated parameter list")
		}
		if p.cur().Kind != token.Identifier {
			return nil, p.errorf("unsupported parameter form %q", p.cur().Text)
		}
		param := ast.Param{Name: p.advance().Text}
		if p.at(token.Operator, "=") {
			p.pos++
			def, err := p.parseTernary()
			if err != nil {
				return nil, err
			}
			param.Default = def
		}
		params = append(params, param)
		if p.at(token.Punct, ",") {
			p.pos++
		}
	}
	p.pos++ // )
	return params, nil
}

// parseBlock parses a brace-delimited statement list. Nesting is handled by
// recursion, so arbitrarily deep blocks close against the right brace.
func (p *parser) parseBlock() ([]ast.Stmt, error) {
	if err := p.expect(token.Punct, "{"); err != nil {
		return nil, err
	}
	stmts := []ast.Stmt{}
	for !p.at(token.Punct, "}") {
		if p.done() {
			return nil, p.errorf("unterminated block")
		}
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	p.pos++ // }
	return stmts, nil
}

func (p *parser) parseVariableDecl() (ast.Stmt, error) {
	kind := p.advance().Text

	// destructuring forms
	if p.at(token.Punct, "{") {
		names, err := p.parseNameList("{", "}")
		if err != nil {
			return nil, err
		}
		init, err := p.parseInitializer()
		if err != nil {
			return nil, err
		}
		return &ast.ObjectDestructuring{Properties: names, Init: init}, nil
	}
	if p.at(token.Punct, "[") {
		names, err := p.parseNameList("[", "]")
		if err != nil {
			return nil, err
		}
		init, err := p.parseInitializer()
		if err != nil {
			return nil, err
		}
		return &ast.ArrayDestructuring{Elements: names, Init: init}, nil
	}

	if p.cur().Kind != token.Identifier {
		return nil, p.errorf("expected variable name, got %q", p.cur().Text)
	}
	name := p.advance().Text
	decl := &ast.VariableDecl{Kind: kind, Name: name}
	if p.at(token.Operator, "=") {
		p.pos++
		init, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		decl.Init = init
	}
	p.skipSemicolons()
	return decl, nil
}

// parseNameList reads a simple identifier list between open and close. Nested
// patterns and renames are outside the subset.
func (p *parser) parseNameList(open, close string) ([]string, error) {
	if err := p.expect(token.Punct, open); err != nil {
		return nil, err
	}
	var names []string
	for !p.at(token.Punct, close) {
		if p.done() {
			return nil, p.errorf("unterminated destructuring pattern")
		}
		if p.cur().Kind != token.Identifier {
			return nil, p.errorf("unsupported destructuring element %q", p.cur().Text)
		}
		names = append(names, p.advance().Text)
		if p.at(token.Punct, ",") {
			p.pos++
		}
	}
	p.pos++ // close
	return names, nil
}

func (p *parser) parseInitializer() (ast.Expr, error) {
	if err := p.expect(token.Operator, "="); err != nil {
		return nil, err
	}
	init, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSemicolons()
	return init, nil
}

func (p *parser) parseIf() (ast.Stmt, error) {
	p.pos++ // if
	if err := p.expect(token.Punct, "("); err != nil {
		return nil, err
	}
	test, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.Punct, ")"); err != nil {
		return nil, err
	}
	consequent, err := p.parseBranchBody()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStmt{Test: test, Consequent: consequent}
	if p.atIdent("else") {
		p.pos++
		if p.atIdent("if") {
			nested, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			stmt.Alternate = []ast.Stmt{nested}
		} else {
			alt, err := p.parseBranchBody()
			if err != nil {
				return nil, err
			}
			stmt.Alternate = alt
		}
	}
	return stmt, nil
}

// parseBranchBody accepts either a braced block or a single statement.
func (p *parser) parseBranchBody() ([]ast.Stmt, error) {
	if p.at(token.Punct, "{") {
		return p.parseBlock()
	}
	stmt, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	return []ast.Stmt{stmt}, nil
}

func (p *parser) parseFor() (ast.Stmt, error) {
	p.pos++ // for
	if err := p.expect(token.Punct, "("); err != nil {
		return nil, err
	}

	// for-of: `for (let x of iterable)` or `for (x of iterable)`
	if stmt, ok, err := p.tryParseForOf(); ok || err != nil {
		return stmt, err
	}

	loop := &ast.ForStmt{}
	if !p.at(token.Punct, ";") {
		init, err := p.parseForInit()
		if err != nil {
			return nil, err
		}
		loop.Init = init
	}
	if err := p.expect(token.Punct, ";"); err != nil {
		return nil, err
	}
	if !p.at(token.Punct, ";") {
		test, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		loop.Test = test
	}
	if err := p.expect(token.Punct, ";"); err != nil {
		return nil, err
	}
	if !p.at(token.Punct, ")") {
		update, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		loop.Update = update
	}
	if err := p.expect(token.Punct, ")"); err != nil {
		return nil, err
	}
	body, err := p.parseBranchBody()
	if err != nil {
		return nil, err
	}
	loop.Body = body
	return loop, nil
}

func (p *parser) tryParseForOf() (ast.Stmt, bool, error) {
	start := p.pos
	if p.atIdent("let") || p.atIdent("const") || p.atIdent("var") {
		p.pos++
	}
	if p.cur().Kind == token.Identifier && p.peek(1).Kind == token.Identifier && p.peek(1).Text == "of" {
		variable := p.advance().Text
		p.pos++ // of
		iterable, err := p.parseExpr()
		if err != nil {
			return nil, true, err
		}
		if err := p.expect(token.Punct, ")"); err != nil {
			return nil, true, err
		}
		body, err := p.parseBranchBody()
		if err != nil {
			return nil, true, err
		}
		return &ast.ForOfStmt{Variable: variable, Iterable: iterable, Body: body}, true, nil
	}
	p.pos = start
	return nil, false, nil
}

// parseForInit parses the first clause of a C-style for without consuming the
// terminating semicolon.
func (p *parser) parseForInit() (ast.Stmt, error) {
	if p.atIdent("let") || p.atIdent("const") || p.atIdent("var") {
		kind := p.advance().Text
		if p.cur().Kind != token.Identifier {
			return nil, p.errorf("expected loop variable, got %q", p.cur().Text)
		}
		name := p.advance().Text
		decl := &ast.VariableDecl{Kind: kind, Name: name}
		if p.at(token.Operator, "=") {
			p.pos++
			init, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			decl.Init = init
		}
		return decl, nil
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Expression: expr}, nil
}

func (p *parser) parseWhile() (ast.Stmt, error) {
	p.pos++ // while
	if err := p.expect(token.Punct, "("); err != nil {
		return nil, err
	}
	test, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.Punct, ")"); err != nil {
		return nil, err
	}
	body, err := p.parseBranchBody()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Test: test, Body: body}, nil
}

func (p *parser) parseClass() (ast.Stmt, error) {
	p.pos++ // class
	if p.cur().Kind != token.Identifier {
		return nil, p.errorf("expected class name, got %q", p.cur().Text)
	}
	decl := &ast.ClassDecl{Name: p.advance().Text}
	if p.atIdent("extends") {
		p.pos++
		if p.cur().Kind != token.Identifier {
			return nil, p.errorf("expected superclass name, got %q", p.cur().Text)
		}
		decl.SuperClass = p.advance().Text
	}
	if err := p.expect(token.Punct, "{"); err != nil {
		return nil, err
	}
	for !p.at(token.Punct, "}") {
		if p.done() {
			return nil, p.errorf("unterminated class body")
		}
		if p.cur().Kind == token.Comment {
			p.pos++
			continue
		}
		if p.at(token.Punct, ";") {
			p.pos++
			continue
		}
		async := false
		if p.atIdent("async") && p.peek(1).Kind == token.Identifier {
			async = true
			p.pos++
		}
		if p.cur().Kind != token.Identifier {
			return nil, p.errorf("unsupported class member %q", p.cur().Text)
		}
		name := p.advance().Text
		params, err := p.parseParams()
		if err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		decl.Methods = append(decl.Methods, ast.Method{Name: name, Params: params, Body: body, Async: async})
	}
	p.pos++ // }
	return decl, nil
}

func (p *parser) parseTry() (ast.Stmt, error) {
	p.pos++ // try
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.TryStmt{Block: block}
	if p.atIdent("catch") {
		p.pos++
		if p.at(token.Punct, "(") {
			p.pos++
			if p.cur().Kind != token.Identifier {
				return nil, p.errorf("expected catch binding, got %q", p.cur().Text)
			}
			stmt.Param = p.advance().Text
			if err := p.expect(token.Punct, ")"); err != nil {
				return nil, err
			}
		}
		handler, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Handler = handler
	}
	if p.atIdent("finally") {
		p.pos++
		finalizer, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Finalizer = finalizer
	}
	if stmt.Handler == nil && stmt.Finalizer == nil {
		return nil, p.errorf("try without catch or finally")
	}
	return stmt, nil
}

// =============================================================================
// EXPRESSIONS
// =============================================================================
// Precedence ladder, lowest binding first: assignment, ternary, logical-or,
// logical-and, equality, relational, additive, multiplicative, unary, postfix
// call/member, primary. Binary levels associate left-to-right.

func (p *parser) parseExpr() (ast.Expr, error) {
	return p.parseAssign()
}

var assignOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
}

func (p *parser) parseAssign() (ast.Expr, error) {
	left, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind == token.Operator && assignOps[p.cur().Text] {
		op := p.advance().Text
		right, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		return &ast.AssignExpr{Left: left, Op: op, Right: right}, nil
	}
	return left, nil
}

func (p *parser) parseTernary() (ast.Expr, error) {
	test, err := p.parseBinary(0)
	if err != nil {
		return nil, err
	}
	if !p.at(token.Operator, "?") {
		return test, nil
	}
	p.pos++
	consequent, err := p.parseAssign()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.Operator, ":"); err != nil {
		return nil, err
	}
	alternate, err := p.parseAssign()
	if err != nil {
		return nil, err
	}
	return &ast.ConditionalExpr{Test: test, Consequent: consequent, Alternate: alternate}, nil
}

// binaryLevels orders operators from loosest to tightest binding.
var binaryLevels = [][]string{
	{"||"},
	{"&&"},
	{"===", "!==", "==", "!="},
	{"<", "<=", ">", ">="},
	{"+", "-"},
	{"*", "/", "%"},
}

func (p *parser) parseBinary(level int) (ast.Expr, error) {
	if level >= len(binaryLevels) {
		return p.parseUnary()
	}
	left, err := p.parseBinary(level + 1)
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == token.Operator && contains(binaryLevels[level], p.cur().Text) {
		op := p.advance().Text
		right, err := p.parseBinary(level + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (ast.Expr, error) {
	if p.cur().Kind == token.Operator {
		switch op := p.cur().Text; op {
		case "!", "-", "+":
			p.pos++
			arg, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			return &ast.UnaryExpr{Op: op, Argument: arg}, nil
		case "...":
			p.pos++
			arg, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			return &ast.SpreadElement{Argument: arg}, nil
		}
	}
	if p.atIdent("typeof") {
		p.pos++
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: "typeof", Argument: arg}, nil
	}
	if p.atIdent("await") {
		p.pos++
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.AwaitExpr{Argument: arg}, nil
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary followed by any chain of calls, member
// accesses, computed accesses, and postfix increment/decrement.
func (p *parser) parsePostfix() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.at(token.Punct, "("):
			args, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			expr = &ast.CallExpr{Callee: expr, Arguments: args}
		case p.at(token.Punct, "."):
			p.pos++
			if p.cur().Kind != token.Identifier {
				return nil, p.errorf("expected property name, got %q", p.cur().Text)
			}
			expr = &ast.MemberExpr{Object: expr, Property: p.advance().Text}
		case p.at(token.Punct, "["):
			p.pos++
			prop, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expect(token.Punct, "]"); err != nil {
				return nil, err
			}
			expr = &ast.ComputedMemberExpr{Object: expr, Property: prop}
		case p.at(token.Operator, "++"), p.at(token.Operator, "--"):
			op := p.advance().Text
			expr = &ast.UpdateExpr{Op: op, Argument: expr}
		default:
			return expr, nil
		}
	}
}

func (p *parser) parseArguments() ([]ast.Expr, error) {
	p.pos++ // (
	args := []ast.Expr{}
	for !p.at(token.Punct, ")") {
		if p.done() {
			return nil, p.errorf("unterminated argument list")
		}
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.at(token.Punct, ",") {
			p.pos++
		}
	}
	p.pos++ // )
	return args, nil
}

func (p *parser) parsePrimary() (ast.Expr, error) {
	t := p.cur()
	switch t.Kind {
	case token.Number:
		p.pos++
		return &ast.Literal{Raw: t.Text}, nil
	case token.String:
		p.pos++
		return &ast.Literal{Raw: t.Text}, nil
	case token.Template:
		p.pos++
		return parseTemplate(t.Text)
	case token.Identifier:
		switch t.Text {
		case "true", "false", "null", "undefined":
			p.pos++
			return &ast.Literal{Raw: t.Text}, nil
		case "new":
			return p.parseNew()
		case "async":
			if fn, ok, err := p.tryParseArrow(true); ok || err != nil {
				return fn, err
			}
		case "function":
			return nil, p.errorf("function expressions are not supported; use an arrow function")
		}
		// single-parameter arrow: x => ...
		if p.peek(1).Kind == token.Operator && p.peek(1).Text == "=>" {
			return p.parseArrowFromIdent(false)
		}
		p.pos++
		return &ast.Ident{Name: t.Text}, nil
	}

	if p.at(token.Punct, "(") {
		if fn, ok, err := p.tryParseArrow(false); ok || err != nil {
			return fn, err
		}
		p.pos++
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.Punct, ")"); err != nil {
			return nil, err
		}
		return expr, nil
	}
	if p.at(token.Punct, "[") {
		return p.parseArrayLiteral()
	}
	if p.at(token.Punct, "{") {
		return p.parseObjectLiteral()
	}
	if p.done() {
		return nil, p.errorf("unexpected end of input")
	}
	return nil, p.errorf("unsupported expression starting with %q", t.Text)
}

func (p *parser) parseNew() (ast.Expr, error) {
	p.pos++ // new
	if p.cur().Kind != token.Identifier {
		return nil, p.errorf("expected constructor name, got %q", p.cur().Text)
	}
	callee := p.advance().Text
	args := []ast.Expr{}
	if p.at(token.Punct, "(") {
		var err error
		args, err = p.parseArguments()
		if err != nil {
			return nil, err
		}
	}
	return &ast.NewExpr{Callee: callee, Arguments: args}, nil
}

func (p *parser) parseArrayLiteral() (ast.Expr, error) {
	p.pos++ // [
	arr := &ast.ArrayExpr{Elements: []ast.Expr{}}
	for !p.at(token.Punct, "]") {
		if p.done() {
			return nil, p.errorf("unterminated array literal")
		}
		el, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		arr.Elements = append(arr.Elements, el)
		if p.at(token.Punct, ",") {
			p.pos++
		}
	}
	p.pos++ // ]
	return arr, nil
}

func (p *parser) parseObjectLiteral() (ast.Expr, error) {
	p.pos++ // {
	obj := &ast.ObjectExpr{Properties: []ast.ObjectProp{}}
	for !p.at(token.Punct, "}") {
		if p.done() {
			return nil, p.errorf("unterminated object literal")
		}
		var key string
		switch p.cur().Kind {
		case token.Identifier, token.Number:
			key = p.advance().Text
		case token.String:
			key = stripQuotes(p.advance().Text)
		default:
			return nil, p.errorf("unsupported object key %q", p.cur().Text)
		}
		var value ast.Expr
		if p.at(token.Operator, ":") {
			p.pos++
			var err error
			value, err = p.parseExpr()
			if err != nil {
				return nil, err
			}
		} else {
			// shorthand {a} means {a: a}
			value = &ast.Ident{Name: key}
		}
		obj.Properties = append(obj.Properties, ast.ObjectProp{Key: key, Value: value})
		if p.at(token.Punct, ",") {
			p.pos++
		}
	}
	p.pos++ // }
	return obj, nil
}

// tryParseArrow attempts `(params) => body` (or `async (params) => body` when
// async is true) at the current position, restoring it when the lookahead does
// not find an arrow.
func (p *parser) tryParseArrow(async bool) (ast.Expr, bool, error) {
	start := p.pos
	if async {
		if !p.atIdent("async") {
			return nil, false, nil
		}
		p.pos++
		if p.cur().Kind == token.Identifier && p.peek(1).Kind == token.Operator && p.peek(1).Text == "=>" {
			fn, err := p.parseArrowFromIdent(true)
			return fn, true, err
		}
	}
	if !p.at(token.Punct, "(") || !p.arrowAhead() {
		p.pos = start
		return nil, false, nil
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, true, err
	}
	if err := p.expect(token.Operator, "=>"); err != nil {
		return nil, true, err
	}
	fn, err := p.parseArrowBody(params, async)
	return fn, true, err
}

// arrowAhead reports whether the parenthesized group at the current position
// is followed by "=>", scanning with paren depth.
func (p *parser) arrowAhead() bool {
	depth := 0
	for i := p.pos; i < len(p.toks); i++ {
		t := p.toks[i]
		if t.Kind != token.Punct {
			continue
		}
		switch t.Text {
		case "(":
			depth++
		case ")":
			depth--
			if depth == 0 {
				next := p.peek(i + 1 - p.pos)
				return next.Kind == token.Operator && next.Text == "=>"
			}
		}
	}
	return false
}

func (p *parser) parseArrowFromIdent(async bool) (ast.Expr, error) {
	params := []ast.Param{{Name: p.advance().Text}}
	p.pos++ // =>
	return p.parseArrowBody(params, async)
}

func (p *parser) parseArrowBody(params []ast.Param, async bool) (ast.Expr, error) {
	fn := &ast.ArrowFunction{Params: params, Async: async}
	if p.at(token.Punct, "{") {
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		fn.Body = body
		return fn, nil
	}
	// no opening brace: single-expression body
	expr, err := p.parseAssign()
	if err != nil {
		return nil, err
	}
	fn.Expression = true
	fn.ExprBody = expr
	return fn, nil
}

// parseTemplate splits a raw backtick literal into quasis and parsed
// interpolation expressions. Quasis always outnumber expressions by one.
func parseTemplate(raw string) (ast.Expr, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(raw, "`"), "`")
	tpl := &ast.TemplateLiteral{}
	var quasi strings.Builder
	i := 0
	for i < len(inner) {
		if inner[i] == '\\' && i+1 < len(inner) {
			quasi.WriteByte(inner[i])
			quasi.WriteByte(inner[i+1])
			i += 2
			continue
		}
		if inner[i] == '$' && i+1 < len(inner) && inner[i+1] == '{' {
			end := matchingBrace(inner, i+1)
			if end < 0 {
				return nil, &Error{Msg: "unterminated template interpolation"}
			}
			exprSrc := inner[i+2 : end]
			sub := &parser{toks: token.Tokenize(exprSrc)}
			expr, err := sub.parseExpr()
			if err != nil {
				return nil, err
			}
			tpl.Quasis = append(tpl.Quasis, quasi.String())
			tpl.Expressions = append(tpl.Expressions, expr)
			quasi.Reset()
			i = end + 1
			continue
		}
		quasi.WriteByte(inner[i])
		i++
	}
	tpl.Quasis = append(tpl.Quasis, quasi.String())
	return tpl, nil
}

// matchingBrace returns the index of the brace closing the one at open.
func matchingBrace(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func commentValue(text string) string {
	if strings.HasPrefix(text, "//") {
		return strings.TrimSpace(strings.TrimPrefix(text, "//"))
	}
	text = strings.TrimPrefix(text, "/*")
	text = strings.TrimSuffix(text, "*/")
	return strings.TrimSpace(text)
}

func stripQuotes(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
