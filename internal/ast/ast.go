// Package ast defines the uniform syntax tree shared by the parser and all
// four code generators. The node set is closed: Stmt and Expr are sealed
// interfaces whose variants are exactly the structs below, so every consumer
// can switch exhaustively and treat an unknown node as a programming error.
//
// Trees are immutable by convention. The parser is the only producer;
// generators only read. Identifier text is never case-converted inside the
// tree; casing is a generator concern applied at emission time, which keeps
// one tree reusable across all targets.
package ast

// Stmt is a statement node.
type Stmt interface {
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	exprNode()
}

// =============================================================================
// STATEMENTS
// =============================================================================

// Program is the root node.
type Program struct {
	Body []Stmt
}

// Param is a function or method parameter, with an optional default.
type Param struct {
	Name    string
	Default Expr // nil when absent
}

// FunctionDecl is a top-level or nested function declaration.
type FunctionDecl struct {
	Name   string
	Params []Param
	Body   []Stmt
	Async  bool
}

// VariableDecl covers let/const/var declarations.
type VariableDecl struct {
	Kind string // "let", "const", "var"
	Name string
	Init Expr // nil when declared without initializer
}

// ObjectDestructuring is `const {a, b} = init`.
type ObjectDestructuring struct {
	Properties []string
	Init       Expr
}

// ArrayDestructuring is `const [a, b] = init`.
type ArrayDestructuring struct {
	Elements []string
	Init     Expr
}

// IfStmt is a conditional with an optional else branch.
type IfStmt struct {
	Test       Expr
	Consequent []Stmt
	Alternate  []Stmt // nil when there is no else
}

// ForStmt is the C-style three-clause loop. Any clause may be nil.
type ForStmt struct {
	Init   Stmt
	Test   Expr
	Update Expr
	Body   []Stmt
}

// ForOfStmt iterates over a collection.
type ForOfStmt struct {
	Variable string
	Iterable Expr
	Body     []Stmt
}

// WhileStmt loops while the test holds.
type WhileStmt struct {
	Test Expr
	Body []Stmt
}

// Method is a class method; the constructor appears with Name "constructor".
type Method struct {
	Name   string
	Params []Param
	Body   []Stmt
	Async  bool
}

// ClassDecl is a class with optional superclass.
type ClassDecl struct {
	Name       string
	SuperClass string // empty when the class has no parent
	Methods    []Method
}

// TryStmt is try/catch/finally. Handler is nil when only finally is present.
type TryStmt struct {
	Block     []Stmt
	Param     string // catch binding, may be empty
	Handler   []Stmt // nil when there is no catch clause
	Finalizer []Stmt // nil when there is no finally clause
}

// ThrowStmt raises an error value.
type ThrowStmt struct {
	Argument Expr
}

// ReturnStmt returns from the enclosing function.
type ReturnStmt struct {
	Argument Expr // nil for a bare return
}

// ExprStmt wraps an expression used as a statement.
type ExprStmt struct {
	Expression Expr
}

// CommentStmt preserves a source comment in statement position.
type CommentStmt struct {
	Value string
}

func (*Program) stmtNode()             {}
func (*FunctionDecl) stmtNode()        {}
func (*VariableDecl) stmtNode()        {}
func (*ObjectDestructuring) stmtNode() {}
func (*ArrayDestructuring) stmtNode()  {}
func (*IfStmt) stmtNode()              {}
func (*ForStmt) stmtNode()             {}
func (*ForOfStmt) stmtNode()           {}
func (*WhileStmt) stmtNode()           {}
func (*ClassDecl) stmtNode()           {}
func (*TryStmt) stmtNode()             {}
func (*ThrowStmt) stmtNode()           {}
func (*ReturnStmt) stmtNode()          {}
func (*ExprStmt) stmtNode()            {}
func (*CommentStmt) stmtNode()         {}

// =============================================================================
// EXPRESSIONS
// =============================================================================

// Literal holds a literal in raw source form: "42", "\"hi\"", "true", "null".
type Literal struct {
	Raw string
}

// Ident is an identifier reference.
type Ident struct {
	Name string
}

// BinaryExpr is a two-operand expression, including logical && and ||.
type BinaryExpr struct {
	Op    string
	Left  Expr
	Right Expr
}

// UnaryExpr is a prefix operator expression.
type UnaryExpr struct {
	Op       string
	Argument Expr
}

// ConditionalExpr is the ternary test ? consequent : alternate.
type ConditionalExpr struct {
	Test       Expr
	Consequent Expr
	Alternate  Expr
}

// CallExpr invokes a callee with arguments.
type CallExpr struct {
	Callee    Expr
	Arguments []Expr
}

// MemberExpr is dotted member access, object.property.
type MemberExpr struct {
	Object   Expr
	Property string
}

// ComputedMemberExpr is bracketed access, object[property].
type ComputedMemberExpr struct {
	Object   Expr
	Property Expr
}

// UpdateExpr is postfix ++ or --.
type UpdateExpr struct {
	Op       string
	Argument Expr
}

// ArrayExpr is an array literal.
type ArrayExpr struct {
	Elements []Expr
}

// ObjectProp is one key/value pair of an object literal.
type ObjectProp struct {
	Key   string
	Value Expr
}

// ObjectExpr is an object literal.
type ObjectExpr struct {
	Properties []ObjectProp
}

// NewExpr is `new Callee(args)`.
type NewExpr struct {
	Callee    string
	Arguments []Expr
}

// SpreadElement is `...argument` in call or array position.
type SpreadElement struct {
	Argument Expr
}

// AwaitExpr awaits a promise-like value.
type AwaitExpr struct {
	Argument Expr
}

// ArrowFunction is an arrow function. When Expression is true the body is the
// single expression in ExprBody; otherwise Body holds the statement list.
type ArrowFunction struct {
	Params     []Param
	Expression bool
	ExprBody   Expr
	Body       []Stmt
	Async      bool
}

// TemplateLiteral is a backtick string: Quasis has one more element than
// Expressions and the two interleave, quasi-expr-quasi.
type TemplateLiteral struct {
	Quasis      []string
	Expressions []Expr
}

// AssignExpr is assignment, including compound forms (+=, -=, ...).
type AssignExpr struct {
	Left  Expr
	Op    string
	Right Expr
}

func (*Literal) exprNode()            {}
func (*Ident) exprNode()              {}
func (*BinaryExpr) exprNode()         {}
func (*UnaryExpr) exprNode()          {}
func (*ConditionalExpr) exprNode()    {}
func (*CallExpr) exprNode()           {}
func (*MemberExpr) exprNode()         {}
func (*ComputedMemberExpr) exprNode() {}
func (*UpdateExpr) exprNode()         {}
func (*ArrayExpr) exprNode()          {}
func (*ObjectExpr) exprNode()         {}
func (*NewExpr) exprNode()            {}
func (*SpreadElement) exprNode()      {}
func (*AwaitExpr) exprNode()          {}
func (*ArrowFunction) exprNode()      {}
func (*TemplateLiteral) exprNode()    {}
func (*AssignExpr) exprNode()         {}
