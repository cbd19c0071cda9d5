package ast

import (
	"github.com/danue1/danube/lexer"
	"github.com/danue1/danube/syntax"
)

type SourceFile struct{ view }

func CastSourceFile(n *syntax.SyntaxNode) (SourceFile, bool) {
	return cast[SourceFile](n, syntax.SourceFile)
}

func (f SourceFile) Items() []Item { return children(f.node, CastItem) }

// Item is one of Function, Struct, Enum, Use, Const, TypeAlias, Impl,
// Trait or Module.
type Item interface {
	Node
	item()
}

func CastItem(n *syntax.SyntaxNode) (Item, bool) {
	if n == nil {
		return nil, false
	}
	v := view{n}
	switch n.Kind() {
	case syntax.Function:
		return Function{v}, true
	case syntax.Struct:
		return Struct{v}, true
	case syntax.Enum:
		return Enum{v}, true
	case syntax.Use:
		return Use{v}, true
	case syntax.Const:
		return Const{v}, true
	case syntax.TypeAlias:
		return TypeAlias{v}, true
	case syntax.Impl:
		return Impl{v}, true
	case syntax.Trait:
		return Trait{v}, true
	case syntax.Module:
		return Module{v}, true
	}
	return nil, false
}

func (Function) item()  {}
func (Struct) item()    {}
func (Enum) item()      {}
func (Use) item()       {}
func (Const) item()     {}
func (TypeAlias) item() {}
func (Impl) item()      {}
func (Trait) item()     {}
func (Module) item()    {}

type Visibility struct{ view }

func CastVisibility(n *syntax.SyntaxNode) (Visibility, bool) {
	return cast[Visibility](n, syntax.Visibility)
}

func isPublic(n *syntax.SyntaxNode) bool {
	_, ok := child(n, CastVisibility)
	return ok
}

type Name struct{ view }

func CastName(n *syntax.SyntaxNode) (Name, bool) { return cast[Name](n, syntax.Name) }

// Ident returns the identifier text.
func (n Name) Ident() string {
	if t, ok := token(n.node, lexer.Ident); ok {
		return t.Text()
	}
	return ""
}

type NameRef struct{ view }

func CastNameRef(n *syntax.SyntaxNode) (NameRef, bool) { return cast[NameRef](n, syntax.NameRef) }

func (n NameRef) Ident() string {
	if t, ok := token(n.node, lexer.Ident); ok {
		return t.Text()
	}
	return ""
}

type Function struct{ view }

func CastFunction(n *syntax.SyntaxNode) (Function, bool) {
	return cast[Function](n, syntax.Function)
}

func (f Function) IsPublic() bool                  { return isPublic(f.node) }
func (f Function) Name() (Name, bool)              { return child(f.node, CastName) }
func (f Function) ParamList() (ParamList, bool)    { return child(f.node, CastParamList) }
func (f Function) RetType() (RetType, bool)        { return child(f.node, CastRetType) }
func (f Function) Body() (BlockExpr, bool)         { return child(f.node, CastBlockExpr) }

type ParamList struct{ view }

func CastParamList(n *syntax.SyntaxNode) (ParamList, bool) {
	return cast[ParamList](n, syntax.ParamList)
}

func (l ParamList) SelfParam() (SelfParam, bool) { return child(l.node, CastSelfParam) }
func (l ParamList) Params() []Param             { return children(l.node, CastParam) }

type SelfParam struct{ view }

func CastSelfParam(n *syntax.SyntaxNode) (SelfParam, bool) {
	return cast[SelfParam](n, syntax.SelfParam)
}

type Param struct{ view }

func CastParam(n *syntax.SyntaxNode) (Param, bool) { return cast[Param](n, syntax.Param) }

func (p Param) IsMut() bool        { return hasToken(p.node, lexer.KwMut) }
func (p Param) Name() (Name, bool) { return child(p.node, CastName) }
func (p Param) Type() (Type, bool) { return child(p.node, CastType) }

type RetType struct{ view }

func CastRetType(n *syntax.SyntaxNode) (RetType, bool) { return cast[RetType](n, syntax.RetType) }

func (r RetType) Type() (Type, bool) { return child(r.node, CastType) }

type Struct struct{ view }

func CastStruct(n *syntax.SyntaxNode) (Struct, bool) { return cast[Struct](n, syntax.Struct) }

func (s Struct) IsPublic() bool                          { return isPublic(s.node) }
func (s Struct) Name() (Name, bool)                      { return child(s.node, CastName) }
func (s Struct) NamedFields() (NamedFieldList, bool)     { return child(s.node, CastNamedFieldList) }
func (s Struct) TupleFields() (TupleFieldList, bool)     { return child(s.node, CastTupleFieldList) }

type NamedFieldList struct{ view }

func CastNamedFieldList(n *syntax.SyntaxNode) (NamedFieldList, bool) {
	return cast[NamedFieldList](n, syntax.NamedFieldList)
}

func (l NamedFieldList) Fields() []NamedField { return children(l.node, CastNamedField) }

type NamedField struct{ view }

func CastNamedField(n *syntax.SyntaxNode) (NamedField, bool) {
	return cast[NamedField](n, syntax.NamedField)
}

func (f NamedField) IsPublic() bool     { return isPublic(f.node) }
func (f NamedField) Name() (Name, bool) { return child(f.node, CastName) }
func (f NamedField) Type() (Type, bool) { return child(f.node, CastType) }

type TupleFieldList struct{ view }

func CastTupleFieldList(n *syntax.SyntaxNode) (TupleFieldList, bool) {
	return cast[TupleFieldList](n, syntax.TupleFieldList)
}

func (l TupleFieldList) Fields() []TupleField { return children(l.node, CastTupleField) }

type TupleField struct{ view }

func CastTupleField(n *syntax.SyntaxNode) (TupleField, bool) {
	return cast[TupleField](n, syntax.TupleField)
}

func (f TupleField) IsPublic() bool     { return isPublic(f.node) }
func (f TupleField) Type() (Type, bool) { return child(f.node, CastType) }

type Enum struct{ view }

func CastEnum(n *syntax.SyntaxNode) (Enum, bool) { return cast[Enum](n, syntax.Enum) }

func (e Enum) IsPublic() bool                    { return isPublic(e.node) }
func (e Enum) Name() (Name, bool)                { return child(e.node, CastName) }
func (e Enum) VariantList() (VariantList, bool)  { return child(e.node, CastVariantList) }

// Variants is shorthand for the variants of the variant list, if any.
func (e Enum) Variants() []Variant {
	if l, ok := e.VariantList(); ok {
		return l.Variants()
	}
	return nil
}

type VariantList struct{ view }

func CastVariantList(n *syntax.SyntaxNode) (VariantList, bool) {
	return cast[VariantList](n, syntax.VariantList)
}

func (l VariantList) Variants() []Variant { return children(l.node, CastVariant) }

type Variant struct{ view }

func CastVariant(n *syntax.SyntaxNode) (Variant, bool) { return cast[Variant](n, syntax.Variant) }

func (v Variant) Name() (Name, bool)                  { return child(v.node, CastName) }
func (v Variant) NamedFields() (NamedFieldList, bool) { return child(v.node, CastNamedFieldList) }
func (v Variant) TupleFields() (TupleFieldList, bool) { return child(v.node, CastTupleFieldList) }

type Use struct{ view }

func CastUse(n *syntax.SyntaxNode) (Use, bool) { return cast[Use](n, syntax.Use) }

func (u Use) IsPublic() bool           { return isPublic(u.node) }
func (u Use) Tree() (UseTree, bool)    { return child(u.node, CastUseTree) }

type UseTree struct{ view }

func CastUseTree(n *syntax.SyntaxNode) (UseTree, bool) { return cast[UseTree](n, syntax.UseTree) }

func (t UseTree) Path() (Path, bool) { return child(t.node, CastPath) }
func (t UseTree) IsGlob() bool       { return hasToken(t.node, lexer.Star) }

// Children returns the nested trees of a "path::{...}" group.
func (t UseTree) Children() []UseTree {
	if l, ok := child(t.node, CastUseTreeList); ok {
		return l.Trees()
	}
	return nil
}

type UseTreeList struct{ view }

func CastUseTreeList(n *syntax.SyntaxNode) (UseTreeList, bool) {
	return cast[UseTreeList](n, syntax.UseTreeList)
}

func (l UseTreeList) Trees() []UseTree { return children(l.node, CastUseTree) }

type Const struct{ view }

func CastConst(n *syntax.SyntaxNode) (Const, bool) { return cast[Const](n, syntax.Const) }

func (c Const) IsPublic() bool     { return isPublic(c.node) }
func (c Const) Name() (Name, bool) { return child(c.node, CastName) }
func (c Const) Type() (Type, bool) { return child(c.node, CastType) }
func (c Const) Value() (Expr, bool) { return child(c.node, CastExpr) }

type TypeAlias struct{ view }

func CastTypeAlias(n *syntax.SyntaxNode) (TypeAlias, bool) {
	return cast[TypeAlias](n, syntax.TypeAlias)
}

func (a TypeAlias) IsPublic() bool     { return isPublic(a.node) }
func (a TypeAlias) Name() (Name, bool) { return child(a.node, CastName) }
func (a TypeAlias) Type() (Type, bool) { return child(a.node, CastType) }

type Impl struct{ view }

func CastImpl(n *syntax.SyntaxNode) (Impl, bool) { return cast[Impl](n, syntax.Impl) }

// Trait returns the implemented trait of "impl Trait for Type".
func (i Impl) Trait() (Type, bool) {
	if !hasToken(i.node, lexer.KwFor) {
		return nil, false
	}
	return nth(i.node, CastType, 0)
}

// SelfType returns the type the block implements items for.
func (i Impl) SelfType() (Type, bool) {
	if hasToken(i.node, lexer.KwFor) {
		return nth(i.node, CastType, 1)
	}
	return nth(i.node, CastType, 0)
}

func (i Impl) ItemList() (ItemList, bool) { return child(i.node, CastItemList) }

type Trait struct{ view }

func CastTrait(n *syntax.SyntaxNode) (Trait, bool) { return cast[Trait](n, syntax.Trait) }

func (t Trait) IsPublic() bool             { return isPublic(t.node) }
func (t Trait) Name() (Name, bool)         { return child(t.node, CastName) }
func (t Trait) ItemList() (ItemList, bool) { return child(t.node, CastItemList) }

type Module struct{ view }

func CastModule(n *syntax.SyntaxNode) (Module, bool) { return cast[Module](n, syntax.Module) }

func (m Module) IsPublic() bool             { return isPublic(m.node) }
func (m Module) Name() (Name, bool)         { return child(m.node, CastName) }
func (m Module) ItemList() (ItemList, bool) { return child(m.node, CastItemList) }

type ItemList struct{ view }

func CastItemList(n *syntax.SyntaxNode) (ItemList, bool) {
	return cast[ItemList](n, syntax.ItemList)
}

func (l ItemList) Items() []Item { return children(l.node, CastItem) }
