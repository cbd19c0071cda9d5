// Package owned holds the detached AST produced by lowering. Values carry
// spans and interned names but no references into the syntax tree.
package owned

import (
	"github.com/danue1/danube/intern"
	"github.com/danue1/danube/source"
)

type Node interface {
	Span() source.Span
}

// Base carries the source range of a node.
type Base struct {
	Range source.Span
}

func (b Base) Span() source.Span { return b.Range }

type Item interface {
	Node
	itemNode()
}

type Stmt interface {
	Node
	stmtNode()
}

type Expr interface {
	Node
	exprNode()
}

type Type interface {
	Node
	typeNode()
}

type Pattern interface {
	Node
	patternNode()
}

// SourceFile lists the lowered items. Items whose subtree contained syntax
// errors are not lowered; their ranges are listed in Skipped.
type SourceFile struct {
	Base
	Items   []Item
	Skipped []source.Span
}

// StructKind tells which field syntax a struct or variant uses.
type StructKind uint8

const (
	UnitStruct StructKind = iota
	NamedStruct
	TupleStruct
)

func (k StructKind) String() string {
	switch k {
	case NamedStruct:
		return "named"
	case TupleStruct:
		return "tuple"
	}
	return "unit"
}

type Function struct {
	Base
	Public    bool
	Name      intern.Symbol
	SelfParam bool
	Params    []Param
	Return    Type
	Body      *Block
}

type Param struct {
	Base
	Mutable bool
	Name    intern.Symbol
	Type    Type
}

type Struct struct {
	Base
	Public bool
	Name   intern.Symbol
	Kind   StructKind
	Fields []Field
}

// Field is a struct or variant field. Tuple fields have no name.
type Field struct {
	Base
	Public bool
	Name   intern.Symbol
	Type   Type
}

type Enum struct {
	Base
	Public   bool
	Name     intern.Symbol
	Variants []Variant
}

type Variant struct {
	Base
	Name   intern.Symbol
	Kind   StructKind
	Fields []Field
}

type Use struct {
	Base
	Public bool
	Tree   UseTree
}

type UseTree struct {
	Base
	Path     []intern.Symbol
	Glob     bool
	Children []UseTree
}

type Const struct {
	Base
	Public bool
	Name   intern.Symbol
	Type   Type
	Value  Expr
}

type TypeAlias struct {
	Base
	Public bool
	Name   intern.Symbol
	Type   Type
}

type Impl struct {
	Base
	Trait    Type
	SelfType Type
	Items    []Item
}

type Trait struct {
	Base
	Public bool
	Name   intern.Symbol
	Items  []Item
}

// Module is inline when it has a body; "mod name;" has Inline false.
type Module struct {
	Base
	Public bool
	Name   intern.Symbol
	Inline bool
	Items  []Item
}

func (*Function) itemNode()  {}
func (*Struct) itemNode()    {}
func (*Enum) itemNode()      {}
func (*Use) itemNode()       {}
func (*Const) itemNode()     {}
func (*TypeAlias) itemNode() {}
func (*Impl) itemNode()      {}
func (*Trait) itemNode()     {}
func (*Module) itemNode()    {}

type Path struct {
	Base
	Segments []intern.Symbol
}

type PathType struct {
	Base
	Path Path
}

type TupleType struct {
	Base
	Elems []Type
}

type ArrayType struct {
	Base
	Elem Type
	Len  Expr
}

func (*PathType) typeNode()  {}
func (*TupleType) typeNode() {}
func (*ArrayType) typeNode() {}

type Let struct {
	Base
	Pattern Pattern
	Type    Type
	Init    Expr
}

type ExprStmt struct {
	Base
	Expr      Expr
	Semicolon bool
}

func (*Let) stmtNode()      {}
func (*ExprStmt) stmtNode() {}

type LiteralKind uint8

const (
	IntLit LiteralKind = iota
	FloatLit
	StringLit
	CharLit
	BoolLit
)

func (k LiteralKind) String() string {
	switch k {
	case IntLit:
		return "int"
	case FloatLit:
		return "float"
	case StringLit:
		return "string"
	case CharLit:
		return "char"
	}
	return "bool"
}

// Literal holds the decoded value: digits without separators for numbers,
// unescaped contents for strings and chars, "true" or "false" for bools.
type Literal struct {
	Base
	Kind  LiteralKind
	Value string
}

type PathExpr struct {
	Base
	Path Path
}

type Block struct {
	Base
	Stmts []Stmt
	Tail  Expr
}

type If struct {
	Base
	Cond Expr
	Then *Block
	Else Expr
}

type While struct {
	Base
	Cond Expr
	Body *Block
}

type Loop struct {
	Base
	Body *Block
}

type For struct {
	Base
	Pattern Pattern
	Iter    Expr
	Body    *Block
}

type Match struct {
	Base
	Scrutinee Expr
	Arms      []Arm
}

type Arm struct {
	Base
	Pattern Pattern
	Guard   Expr
	Body    Expr
}

type Return struct {
	Base
	Value Expr
}

type Break struct {
	Base
	Value Expr
}

type Continue struct {
	Base
}

type Paren struct {
	Base
	Inner Expr
}

type Tuple struct {
	Base
	Elems []Expr
}

type Array struct {
	Base
	Elems []Expr
}

type StructLit struct {
	Base
	Path   Path
	Fields []FieldInit
}

// FieldInit is one "name: value" entry of a struct literal. Value is nil
// for the shorthand form "name".
type FieldInit struct {
	Base
	Name  intern.Symbol
	Value Expr
}

type UnaryOp string

const (
	Neg UnaryOp = "-"
	Not UnaryOp = "!"
)

type Unary struct {
	Base
	Op      UnaryOp
	Operand Expr
}

// BinaryOp is the operator's source spelling, e.g. "+" or "<<=".
type BinaryOp string

type Binary struct {
	Base
	Op  BinaryOp
	LHS Expr
	RHS Expr
}

type Call struct {
	Base
	Callee Expr
	Args   []Expr
}

// Field access; tuple indices are interned as their decimal text.
type FieldAccess struct {
	Base
	Receiver Expr
	Name     intern.Symbol
}

type Index struct {
	Base
	Target Expr
	Index  Expr
}

type Try struct {
	Base
	Inner Expr
}

func (*Literal) exprNode()     {}
func (*PathExpr) exprNode()    {}
func (*Block) exprNode()       {}
func (*If) exprNode()          {}
func (*While) exprNode()       {}
func (*Loop) exprNode()        {}
func (*For) exprNode()         {}
func (*Match) exprNode()       {}
func (*Return) exprNode()      {}
func (*Break) exprNode()       {}
func (*Continue) exprNode()    {}
func (*Paren) exprNode()       {}
func (*Tuple) exprNode()       {}
func (*Array) exprNode()       {}
func (*StructLit) exprNode()   {}
func (*Unary) exprNode()       {}
func (*Binary) exprNode()      {}
func (*Call) exprNode()        {}
func (*FieldAccess) exprNode() {}
func (*Index) exprNode()       {}
func (*Try) exprNode()         {}

type BindingPat struct {
	Base
	Mutable bool
	Name    intern.Symbol
}

type WildcardPat struct {
	Base
}

type LiteralPat struct {
	Base
	Negative bool
	Literal  Literal
}

type PathPat struct {
	Base
	Path Path
}

type TupleStructPat struct {
	Base
	Path   Path
	Fields []Pattern
}

type TuplePat struct {
	Base
	Fields []Pattern
}

func (*BindingPat) patternNode()     {}
func (*WildcardPat) patternNode()    {}
func (*LiteralPat) patternNode()     {}
func (*PathPat) patternNode()        {}
func (*TupleStructPat) patternNode() {}
func (*TuplePat) patternNode()       {}
