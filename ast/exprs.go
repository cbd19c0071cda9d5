package ast

import (
	"github.com/danue1/danube/lexer"
	"github.com/danue1/danube/syntax"
)

// Stmt is a LetStmt or an ExprStmt. A block's tail expression is not a
// statement; see BlockExpr.Tail.
type Stmt interface {
	Node
	stmt()
}

func CastStmt(n *syntax.SyntaxNode) (Stmt, bool) {
	if n == nil {
		return nil, false
	}
	switch n.Kind() {
	case syntax.LetStatement:
		return LetStmt{view{n}}, true
	case syntax.ExpressionStatement:
		return ExprStmt{view{n}}, true
	}
	return nil, false
}

func (LetStmt) stmt()  {}
func (ExprStmt) stmt() {}

type LetStmt struct{ view }

func CastLetStmt(n *syntax.SyntaxNode) (LetStmt, bool) {
	return cast[LetStmt](n, syntax.LetStatement)
}

func (s LetStmt) Pattern() (Pattern, bool)  { return child(s.node, CastPattern) }
func (s LetStmt) Type() (Type, bool)        { return child(s.node, CastType) }
func (s LetStmt) Initializer() (Expr, bool) { return child(s.node, CastExpr) }

type ExprStmt struct{ view }

func CastExprStmt(n *syntax.SyntaxNode) (ExprStmt, bool) {
	return cast[ExprStmt](n, syntax.ExpressionStatement)
}

func (s ExprStmt) Expr() (Expr, bool)  { return child(s.node, CastExpr) }
func (s ExprStmt) HasSemicolon() bool { return hasToken(s.node, lexer.Semicolon) }

// Expr is any expression wrapper.
type Expr interface {
	Node
	expr()
}

func CastExpr(n *syntax.SyntaxNode) (Expr, bool) {
	if n == nil {
		return nil, false
	}
	v := view{n}
	switch n.Kind() {
	case syntax.Literal:
		return Literal{v}, true
	case syntax.PathExpression:
		return PathExpr{v}, true
	case syntax.BlockExpression:
		return BlockExpr{v}, true
	case syntax.IfExpression:
		return IfExpr{v}, true
	case syntax.WhileExpression:
		return WhileExpr{v}, true
	case syntax.LoopExpression:
		return LoopExpr{v}, true
	case syntax.ForExpression:
		return ForExpr{v}, true
	case syntax.MatchExpression:
		return MatchExpr{v}, true
	case syntax.ReturnExpression:
		return ReturnExpr{v}, true
	case syntax.BreakExpression:
		return BreakExpr{v}, true
	case syntax.ContinueExpression:
		return ContinueExpr{v}, true
	case syntax.ParenExpression:
		return ParenExpr{v}, true
	case syntax.TupleExpression:
		return TupleExpr{v}, true
	case syntax.ArrayExpression:
		return ArrayExpr{v}, true
	case syntax.StructExpression:
		return StructExpr{v}, true
	case syntax.PrefixExpression:
		return PrefixExpr{v}, true
	case syntax.BinaryExpression:
		return BinaryExpr{v}, true
	case syntax.CallExpression:
		return CallExpr{v}, true
	case syntax.FieldExpression:
		return FieldExpr{v}, true
	case syntax.IndexExpression:
		return IndexExpr{v}, true
	case syntax.TryExpression:
		return TryExpr{v}, true
	}
	return nil, false
}

func (Literal) expr()      {}
func (PathExpr) expr()     {}
func (BlockExpr) expr()    {}
func (IfExpr) expr()       {}
func (WhileExpr) expr()    {}
func (LoopExpr) expr()     {}
func (ForExpr) expr()      {}
func (MatchExpr) expr()    {}
func (ReturnExpr) expr()   {}
func (BreakExpr) expr()    {}
func (ContinueExpr) expr() {}
func (ParenExpr) expr()    {}
func (TupleExpr) expr()    {}
func (ArrayExpr) expr()    {}
func (StructExpr) expr()   {}
func (PrefixExpr) expr()   {}
func (BinaryExpr) expr()   {}
func (CallExpr) expr()     {}
func (FieldExpr) expr()    {}
func (IndexExpr) expr()    {}
func (TryExpr) expr()      {}

type Literal struct{ view }

func CastLiteral(n *syntax.SyntaxNode) (Literal, bool) { return cast[Literal](n, syntax.Literal) }

func (l Literal) Token() (*syntax.SyntaxToken, bool) { return firstSignificant(l.node) }

type PathExpr struct{ view }

func CastPathExpr(n *syntax.SyntaxNode) (PathExpr, bool) {
	return cast[PathExpr](n, syntax.PathExpression)
}

func (e PathExpr) Path() (Path, bool) { return child(e.node, CastPath) }

type BlockExpr struct{ view }

func CastBlockExpr(n *syntax.SyntaxNode) (BlockExpr, bool) {
	return cast[BlockExpr](n, syntax.BlockExpression)
}

func (b BlockExpr) Statements() []Stmt { return children(b.node, CastStmt) }

// Tail returns the trailing expression that gives the block its value.
func (b BlockExpr) Tail() (Expr, bool) { return child(b.node, CastExpr) }

type IfExpr struct{ view }

func CastIfExpr(n *syntax.SyntaxNode) (IfExpr, bool) {
	return cast[IfExpr](n, syntax.IfExpression)
}

func (e IfExpr) Condition() (Expr, bool) { return nth(e.node, CastExpr, 0) }

func (e IfExpr) Then() (BlockExpr, bool) {
	x, ok := nth(e.node, CastExpr, 1)
	if !ok {
		return BlockExpr{}, false
	}
	return CastBlockExpr(x.Syntax())
}

// Else returns the else branch: a BlockExpr or a nested IfExpr.
func (e IfExpr) Else() (Expr, bool) { return nth(e.node, CastExpr, 2) }

type WhileExpr struct{ view }

func CastWhileExpr(n *syntax.SyntaxNode) (WhileExpr, bool) {
	return cast[WhileExpr](n, syntax.WhileExpression)
}

func (e WhileExpr) Condition() (Expr, bool) { return nth(e.node, CastExpr, 0) }

func (e WhileExpr) Body() (BlockExpr, bool) {
	x, ok := nth(e.node, CastExpr, 1)
	if !ok {
		return BlockExpr{}, false
	}
	return CastBlockExpr(x.Syntax())
}

type LoopExpr struct{ view }

func CastLoopExpr(n *syntax.SyntaxNode) (LoopExpr, bool) {
	return cast[LoopExpr](n, syntax.LoopExpression)
}

func (e LoopExpr) Body() (BlockExpr, bool) { return child(e.node, CastBlockExpr) }

type ForExpr struct{ view }

func CastForExpr(n *syntax.SyntaxNode) (ForExpr, bool) {
	return cast[ForExpr](n, syntax.ForExpression)
}

func (e ForExpr) Pattern() (Pattern, bool) { return child(e.node, CastPattern) }
func (e ForExpr) Iterable() (Expr, bool)   { return nth(e.node, CastExpr, 0) }

func (e ForExpr) Body() (BlockExpr, bool) {
	x, ok := nth(e.node, CastExpr, 1)
	if !ok {
		return BlockExpr{}, false
	}
	return CastBlockExpr(x.Syntax())
}

type MatchExpr struct{ view }

func CastMatchExpr(n *syntax.SyntaxNode) (MatchExpr, bool) {
	return cast[MatchExpr](n, syntax.MatchExpression)
}

func (e MatchExpr) Scrutinee() (Expr, bool) { return child(e.node, CastExpr) }

func (e MatchExpr) Arms() []MatchArm {
	if l, ok := child(e.node, CastMatchArmList); ok {
		return l.Arms()
	}
	return nil
}

type MatchArmList struct{ view }

func CastMatchArmList(n *syntax.SyntaxNode) (MatchArmList, bool) {
	return cast[MatchArmList](n, syntax.MatchArmList)
}

func (l MatchArmList) Arms() []MatchArm { return children(l.node, CastMatchArm) }

type MatchArm struct{ view }

func CastMatchArm(n *syntax.SyntaxNode) (MatchArm, bool) {
	return cast[MatchArm](n, syntax.MatchArm)
}

func (a MatchArm) Pattern() (Pattern, bool)  { return child(a.node, CastPattern) }
func (a MatchArm) Guard() (MatchGuard, bool) { return child(a.node, CastMatchGuard) }
func (a MatchArm) Body() (Expr, bool)        { return child(a.node, CastExpr) }

type MatchGuard struct{ view }

func CastMatchGuard(n *syntax.SyntaxNode) (MatchGuard, bool) {
	return cast[MatchGuard](n, syntax.MatchGuard)
}

func (g MatchGuard) Condition() (Expr, bool) { return child(g.node, CastExpr) }

type ReturnExpr struct{ view }

func CastReturnExpr(n *syntax.SyntaxNode) (ReturnExpr, bool) {
	return cast[ReturnExpr](n, syntax.ReturnExpression)
}

func (e ReturnExpr) Value() (Expr, bool) { return child(e.node, CastExpr) }

type BreakExpr struct{ view }

func CastBreakExpr(n *syntax.SyntaxNode) (BreakExpr, bool) {
	return cast[BreakExpr](n, syntax.BreakExpression)
}

func (e BreakExpr) Value() (Expr, bool) { return child(e.node, CastExpr) }

type ContinueExpr struct{ view }

func CastContinueExpr(n *syntax.SyntaxNode) (ContinueExpr, bool) {
	return cast[ContinueExpr](n, syntax.ContinueExpression)
}

type ParenExpr struct{ view }

func CastParenExpr(n *syntax.SyntaxNode) (ParenExpr, bool) {
	return cast[ParenExpr](n, syntax.ParenExpression)
}

func (e ParenExpr) Inner() (Expr, bool) { return child(e.node, CastExpr) }

type TupleExpr struct{ view }

func CastTupleExpr(n *syntax.SyntaxNode) (TupleExpr, bool) {
	return cast[TupleExpr](n, syntax.TupleExpression)
}

func (e TupleExpr) Elements() []Expr { return children(e.node, CastExpr) }

type ArrayExpr struct{ view }

func CastArrayExpr(n *syntax.SyntaxNode) (ArrayExpr, bool) {
	return cast[ArrayExpr](n, syntax.ArrayExpression)
}

func (e ArrayExpr) Elements() []Expr { return children(e.node, CastExpr) }

type StructExpr struct{ view }

func CastStructExpr(n *syntax.SyntaxNode) (StructExpr, bool) {
	return cast[StructExpr](n, syntax.StructExpression)
}

func (e StructExpr) Path() (Path, bool) { return child(e.node, CastPath) }

func (e StructExpr) Fields() []RecordField {
	if l, ok := child(e.node, CastRecordFieldList); ok {
		return l.Fields()
	}
	return nil
}

type RecordFieldList struct{ view }

func CastRecordFieldList(n *syntax.SyntaxNode) (RecordFieldList, bool) {
	return cast[RecordFieldList](n, syntax.RecordFieldList)
}

func (l RecordFieldList) Fields() []RecordField { return children(l.node, CastRecordField) }

type RecordField struct{ view }

func CastRecordField(n *syntax.SyntaxNode) (RecordField, bool) {
	return cast[RecordField](n, syntax.RecordField)
}

func (f RecordField) NameRef() (NameRef, bool) { return child(f.node, CastNameRef) }

// Value is absent for the shorthand form.
func (f RecordField) Value() (Expr, bool) { return child(f.node, CastExpr) }

type PrefixExpr struct{ view }

func CastPrefixExpr(n *syntax.SyntaxNode) (PrefixExpr, bool) {
	return cast[PrefixExpr](n, syntax.PrefixExpression)
}

func (e PrefixExpr) Op() (*syntax.SyntaxToken, bool) { return firstSignificant(e.node) }
func (e PrefixExpr) Operand() (Expr, bool)           { return child(e.node, CastExpr) }

type BinaryExpr struct{ view }

func CastBinaryExpr(n *syntax.SyntaxNode) (BinaryExpr, bool) {
	return cast[BinaryExpr](n, syntax.BinaryExpression)
}

func (e BinaryExpr) LHS() (Expr, bool) { return nth(e.node, CastExpr, 0) }
func (e BinaryExpr) RHS() (Expr, bool) { return nth(e.node, CastExpr, 1) }

// Op returns the operator token, the only significant token directly
// inside the node.
func (e BinaryExpr) Op() (*syntax.SyntaxToken, bool) { return firstSignificant(e.node) }

type CallExpr struct{ view }

func CastCallExpr(n *syntax.SyntaxNode) (CallExpr, bool) {
	return cast[CallExpr](n, syntax.CallExpression)
}

func (e CallExpr) Callee() (Expr, bool) { return child(e.node, CastExpr) }

func (e CallExpr) Args() []Expr {
	if l, ok := child(e.node, CastArgList); ok {
		return l.Args()
	}
	return nil
}

type ArgList struct{ view }

func CastArgList(n *syntax.SyntaxNode) (ArgList, bool) { return cast[ArgList](n, syntax.ArgList) }

func (l ArgList) Args() []Expr { return children(l.node, CastExpr) }

type FieldExpr struct{ view }

func CastFieldExpr(n *syntax.SyntaxNode) (FieldExpr, bool) {
	return cast[FieldExpr](n, syntax.FieldExpression)
}

func (e FieldExpr) Receiver() (Expr, bool)   { return child(e.node, CastExpr) }
func (e FieldExpr) NameRef() (NameRef, bool) { return child(e.node, CastNameRef) }

// Field returns the field name or the tuple index digits.
func (e FieldExpr) Field() (string, bool) {
	if r, ok := e.NameRef(); ok {
		return r.Ident(), true
	}
	if t, ok := token(e.node, lexer.Int); ok {
		return t.Text(), true
	}
	return "", false
}

type IndexExpr struct{ view }

func CastIndexExpr(n *syntax.SyntaxNode) (IndexExpr, bool) {
	return cast[IndexExpr](n, syntax.IndexExpression)
}

func (e IndexExpr) Base() (Expr, bool)  { return nth(e.node, CastExpr, 0) }
func (e IndexExpr) Index() (Expr, bool) { return nth(e.node, CastExpr, 1) }

type TryExpr struct{ view }

func CastTryExpr(n *syntax.SyntaxNode) (TryExpr, bool) {
	return cast[TryExpr](n, syntax.TryExpression)
}

func (e TryExpr) Inner() (Expr, bool) { return child(e.node, CastExpr) }
