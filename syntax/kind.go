package syntax

import "github.com/danue1/danube/lexer"

// SyntaxKind tags both tree layers. Values below lexer.KindCount are token
// kinds with the same numeric value as their lexer.TokenKind; the rest name
// grammar productions.
type SyntaxKind uint16

const (
	SourceFile SyntaxKind = iota + SyntaxKind(lexer.KindCount)
	Error

	// Items
	Function
	Struct
	Enum
	Use
	Const
	TypeAlias
	Impl
	Trait
	Module

	// Item components
	Visibility
	Name
	NameRef
	ParamList
	Param
	SelfParam
	RetType
	NamedFieldList
	NamedField
	TupleFieldList
	TupleField
	VariantList
	Variant
	UseTree
	UseTreeList
	ItemList

	// Types and paths
	PathType
	TupleType
	ArrayType
	Path
	PathSegment

	// Statements
	LetStatement
	ExpressionStatement

	// Expressions
	Literal
	PathExpression
	BlockExpression
	IfExpression
	WhileExpression
	LoopExpression
	ForExpression
	MatchExpression
	MatchArmList
	MatchArm
	MatchGuard
	ReturnExpression
	BreakExpression
	ContinueExpression
	ParenExpression
	TupleExpression
	ArrayExpression
	StructExpression
	RecordFieldList
	RecordField
	PrefixExpression
	BinaryExpression
	CallExpression
	ArgList
	FieldExpression
	IndexExpression
	TryExpression

	// Patterns
	IdentPattern
	WildcardPattern
	LiteralPattern
	PathPattern
	TupleStructPattern
	TuplePattern

	kindEnd
)

var nodeKindNames = map[SyntaxKind]string{
	SourceFile:          "SourceFile",
	Error:               "Error",
	Function:            "Function",
	Struct:              "Struct",
	Enum:                "Enum",
	Use:                 "Use",
	Const:               "Const",
	TypeAlias:           "TypeAlias",
	Impl:                "Impl",
	Trait:               "Trait",
	Module:              "Module",
	Visibility:          "Visibility",
	Name:                "Name",
	NameRef:             "NameRef",
	ParamList:           "ParamList",
	Param:               "Param",
	SelfParam:           "SelfParam",
	RetType:             "RetType",
	NamedFieldList:      "NamedFieldList",
	NamedField:          "NamedField",
	TupleFieldList:      "TupleFieldList",
	TupleField:          "TupleField",
	VariantList:         "VariantList",
	Variant:             "Variant",
	UseTree:             "UseTree",
	UseTreeList:         "UseTreeList",
	ItemList:            "ItemList",
	PathType:            "PathType",
	TupleType:           "TupleType",
	ArrayType:           "ArrayType",
	Path:                "Path",
	PathSegment:         "PathSegment",
	LetStatement:        "LetStatement",
	ExpressionStatement: "ExpressionStatement",
	Literal:             "Literal",
	PathExpression:      "PathExpression",
	BlockExpression:     "BlockExpression",
	IfExpression:        "IfExpression",
	WhileExpression:     "WhileExpression",
	LoopExpression:      "LoopExpression",
	ForExpression:       "ForExpression",
	MatchExpression:     "MatchExpression",
	MatchArmList:        "MatchArmList",
	MatchArm:            "MatchArm",
	MatchGuard:          "MatchGuard",
	ReturnExpression:    "ReturnExpression",
	BreakExpression:     "BreakExpression",
	ContinueExpression:  "ContinueExpression",
	ParenExpression:     "ParenExpression",
	TupleExpression:     "TupleExpression",
	ArrayExpression:     "ArrayExpression",
	StructExpression:    "StructExpression",
	RecordFieldList:     "RecordFieldList",
	RecordField:         "RecordField",
	PrefixExpression:    "PrefixExpression",
	BinaryExpression:    "BinaryExpression",
	CallExpression:      "CallExpression",
	ArgList:             "ArgList",
	FieldExpression:     "FieldExpression",
	IndexExpression:     "IndexExpression",
	TryExpression:       "TryExpression",
	IdentPattern:        "IdentPattern",
	WildcardPattern:     "WildcardPattern",
	LiteralPattern:      "LiteralPattern",
	PathPattern:         "PathPattern",
	TupleStructPattern:  "TupleStructPattern",
	TuplePattern:        "TuplePattern",
}

// TokenKind converts a lexer kind into the shared tag space.
func TokenKind(k lexer.TokenKind) SyntaxKind {
	return SyntaxKind(k)
}

// IsToken reports whether k tags a leaf.
func (k SyntaxKind) IsToken() bool {
	return k < SyntaxKind(lexer.KindCount)
}

// AsToken returns the lexer kind for token tags.
func (k SyntaxKind) AsToken() (lexer.TokenKind, bool) {
	if !k.IsToken() {
		return 0, false
	}
	return lexer.TokenKind(k), true
}

func (k SyntaxKind) IsTrivia() bool {
	tk, ok := k.AsToken()
	return ok && tk.IsTrivia()
}

func (k SyntaxKind) String() string {
	if tk, ok := k.AsToken(); ok {
		return tk.String()
	}
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// NodeKinds lists every production kind in declaration order.
func NodeKinds() []SyntaxKind {
	kinds := make([]SyntaxKind, 0, int(kindEnd-SourceFile))
	for k := SourceFile; k < kindEnd; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}
