package ast

import (
	"strings"

	"github.com/danue1/danube/ast/owned"
	"github.com/danue1/danube/diag"
	"github.com/danue1/danube/intern"
	"github.com/danue1/danube/lexer"
	"github.com/danue1/danube/logging"
	"github.com/danue1/danube/syntax"
)

// LowerSourceFile lowers every item that is free of Error nodes and of
// diagnostics. The other items are recorded in Skipped. A tree that is
// inconsistent with the grammar yields an *InternalError.
func LowerSourceFile(file SourceFile, diags []diag.Diagnostic, in *intern.Interner) (out *owned.SourceFile, err error) {
	defer func() {
		if r := recover(); r != nil {
			ie, ok := r.(*InternalError)
			if !ok {
				panic(r)
			}
			out, err = nil, ie
		}
	}()

	log := logging.GetLogger("danube.ast")
	out = &owned.SourceFile{Base: base(file)}
	for _, it := range file.Items() {
		n := it.Syntax()
		if n.ContainsError() || len(diag.Within(diags, n.Span())) > 0 {
			log.Debugf("skipping %s at %s", n.Kind(), n.Span())
			out.Skipped = append(out.Skipped, n.Span())
			continue
		}
		out.Items = append(out.Items, LowerItem(it, in))
	}
	return out, nil
}

// LowerFragment lowers the expression, type or pattern under a root built
// by parser.ParseExpression, ParseType or ParsePattern. The fragment must
// be free of Error nodes.
func LowerFragment(root *syntax.SyntaxNode, in *intern.Interner) (out owned.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			ie, ok := r.(*InternalError)
			if !ok {
				panic(r)
			}
			out, err = nil, ie
		}
	}()

	n := root.FirstChild()
	if n == nil || root.ContainsError() {
		return nil, &InternalError{Kind: root.Kind(), Span: root.Span(), Child: "fragment"}
	}
	if e, ok := CastExpr(n); ok {
		return LowerExpr(e, in), nil
	}
	if t, ok := CastType(n); ok {
		return LowerType(t, in), nil
	}
	if p, ok := CastPattern(n); ok {
		return LowerPattern(p, in), nil
	}
	return nil, &InternalError{Kind: n.Kind(), Span: n.Span(), Child: "fragment"}
}

func base(n Node) owned.Base {
	return owned.Base{Range: n.Syntax().Span()}
}

func ident(n Name, ok bool, parent Node, in *intern.Interner) intern.Symbol {
	return in.Intern(must(n, ok, parent, "name").Ident())
}

// LowerItem lowers one item. It panics with *InternalError when a required
// child is missing.
func LowerItem(it Item, in *intern.Interner) owned.Item {
	switch it := it.(type) {
	case Function:
		return it.Lower(in)
	case Struct:
		return it.Lower(in)
	case Enum:
		return it.Lower(in)
	case Use:
		return it.Lower(in)
	case Const:
		return it.Lower(in)
	case TypeAlias:
		return it.Lower(in)
	case Impl:
		return it.Lower(in)
	case Trait:
		return it.Lower(in)
	case Module:
		return it.Lower(in)
	}
	panic(&InternalError{Kind: it.Syntax().Kind(), Span: it.Syntax().Span(), Child: "item lowering"})
}

func lowerItems(items []Item, in *intern.Interner) []owned.Item {
	var out []owned.Item
	for _, it := range items {
		out = append(out, LowerItem(it, in))
	}
	return out
}

func (f Function) Lower(in *intern.Interner) *owned.Function {
	name, ok := f.Name()
	out := &owned.Function{
		Base:   base(f),
		Public: f.IsPublic(),
		Name:   ident(name, ok, f, in),
	}
	params, ok := f.ParamList()
	params = must(params, ok, f, "parameter list")
	_, out.SelfParam = params.SelfParam()
	for _, p := range params.Params() {
		out.Params = append(out.Params, p.Lower(in))
	}
	if ret, ok := f.RetType(); ok {
		ty, ok := ret.Type()
		out.Return = LowerType(must(ty, ok, ret, "type"), in)
	}
	if body, ok := f.Body(); ok {
		out.Body = body.Lower(in)
	}
	return out
}

func (p Param) Lower(in *intern.Interner) owned.Param {
	name, ok := p.Name()
	ty, tok := p.Type()
	return owned.Param{
		Base:    base(p),
		Mutable: p.IsMut(),
		Name:    ident(name, ok, p, in),
		Type:    LowerType(must(ty, tok, p, "type"), in),
	}
}

func (s Struct) Lower(in *intern.Interner) *owned.Struct {
	name, ok := s.Name()
	out := &owned.Struct{Base: base(s), Public: s.IsPublic(), Name: ident(name, ok, s, in)}
	out.Kind, out.Fields = lowerFields(s.node, in)
	return out
}

// lowerFields lowers the named or tuple field list below n, if any.
func lowerFields(n *syntax.SyntaxNode, in *intern.Interner) (owned.StructKind, []owned.Field) {
	if l, ok := child(n, CastNamedFieldList); ok {
		fields := []owned.Field{}
		for _, f := range l.Fields() {
			name, ok := f.Name()
			ty, tok := f.Type()
			fields = append(fields, owned.Field{
				Base:   base(f),
				Public: f.IsPublic(),
				Name:   ident(name, ok, f, in),
				Type:   LowerType(must(ty, tok, f, "type"), in),
			})
		}
		return owned.NamedStruct, fields
	}
	if l, ok := child(n, CastTupleFieldList); ok {
		fields := []owned.Field{}
		for _, f := range l.Fields() {
			ty, ok := f.Type()
			fields = append(fields, owned.Field{
				Base:   base(f),
				Public: f.IsPublic(),
				Type:   LowerType(must(ty, ok, f, "type"), in),
			})
		}
		return owned.TupleStruct, fields
	}
	return owned.UnitStruct, nil
}

func (e Enum) Lower(in *intern.Interner) *owned.Enum {
	name, ok := e.Name()
	out := &owned.Enum{Base: base(e), Public: e.IsPublic(), Name: ident(name, ok, e, in)}
	for _, v := range e.Variants() {
		vname, ok := v.Name()
		ov := owned.Variant{Base: base(v), Name: ident(vname, ok, v, in)}
		ov.Kind, ov.Fields = lowerFields(v.node, in)
		out.Variants = append(out.Variants, ov)
	}
	return out
}

func (u Use) Lower(in *intern.Interner) *owned.Use {
	tree, ok := u.Tree()
	return &owned.Use{Base: base(u), Public: u.IsPublic(), Tree: must(tree, ok, u, "use tree").Lower(in)}
}

func (t UseTree) Lower(in *intern.Interner) owned.UseTree {
	path, ok := t.Path()
	out := owned.UseTree{
		Base: base(t),
		Path: lowerPath(must(path, ok, t, "path"), in).Segments,
		Glob: t.IsGlob(),
	}
	for _, c := range t.Children() {
		out.Children = append(out.Children, c.Lower(in))
	}
	return out
}

func (c Const) Lower(in *intern.Interner) *owned.Const {
	name, ok := c.Name()
	ty, tok := c.Type()
	val, vok := c.Value()
	return &owned.Const{
		Base:   base(c),
		Public: c.IsPublic(),
		Name:   ident(name, ok, c, in),
		Type:   LowerType(must(ty, tok, c, "type"), in),
		Value:  LowerExpr(must(val, vok, c, "value"), in),
	}
}

func (a TypeAlias) Lower(in *intern.Interner) *owned.TypeAlias {
	name, ok := a.Name()
	ty, tok := a.Type()
	return &owned.TypeAlias{
		Base:   base(a),
		Public: a.IsPublic(),
		Name:   ident(name, ok, a, in),
		Type:   LowerType(must(ty, tok, a, "type"), in),
	}
}

func (i Impl) Lower(in *intern.Interner) *owned.Impl {
	self, ok := i.SelfType()
	out := &owned.Impl{Base: base(i), SelfType: LowerType(must(self, ok, i, "self type"), in)}
	if tr, ok := i.Trait(); ok {
		out.Trait = LowerType(tr, in)
	}
	list, ok := i.ItemList()
	out.Items = lowerItems(must(list, ok, i, "item list").Items(), in)
	return out
}

func (t Trait) Lower(in *intern.Interner) *owned.Trait {
	name, ok := t.Name()
	list, lok := t.ItemList()
	return &owned.Trait{
		Base:   base(t),
		Public: t.IsPublic(),
		Name:   ident(name, ok, t, in),
		Items:  lowerItems(must(list, lok, t, "item list").Items(), in),
	}
}

func (m Module) Lower(in *intern.Interner) *owned.Module {
	name, ok := m.Name()
	out := &owned.Module{Base: base(m), Public: m.IsPublic(), Name: ident(name, ok, m, in)}
	if list, ok := m.ItemList(); ok {
		out.Inline = true
		out.Items = lowerItems(list.Items(), in)
	}
	return out
}

func lowerPath(p Path, in *intern.Interner) owned.Path {
	out := owned.Path{Base: base(p)}
	for _, s := range p.Segments() {
		text := s.Ident()
		if text == "" {
			panic(&InternalError{Kind: syntax.PathSegment, Span: s.Span(), Child: "identifier"})
		}
		out.Segments = append(out.Segments, in.Intern(text))
	}
	return out
}

func (p Path) Lower(in *intern.Interner) owned.Path { return lowerPath(p, in) }

// LowerType lowers any type wrapper.
func LowerType(t Type, in *intern.Interner) owned.Type {
	switch t := t.(type) {
	case PathType:
		path, ok := t.Path()
		return &owned.PathType{Base: base(t), Path: lowerPath(must(path, ok, t, "path"), in)}
	case TupleType:
		out := &owned.TupleType{Base: base(t), Elems: []owned.Type{}}
		for _, e := range t.Elements() {
			out.Elems = append(out.Elems, LowerType(e, in))
		}
		return out
	case ArrayType:
		elem, ok := t.Element()
		out := &owned.ArrayType{Base: base(t), Elem: LowerType(must(elem, ok, t, "element type"), in)}
		if n, ok := t.Len(); ok {
			out.Len = LowerExpr(n, in)
		}
		return out
	}
	panic(&InternalError{Kind: t.Syntax().Kind(), Span: t.Syntax().Span(), Child: "type lowering"})
}

// LowerPattern lowers any pattern wrapper.
func LowerPattern(p Pattern, in *intern.Interner) owned.Pattern {
	switch p := p.(type) {
	case IdentPattern:
		name, ok := p.Name()
		return &owned.BindingPat{Base: base(p), Mutable: p.IsMut(), Name: ident(name, ok, p, in)}
	case WildcardPattern:
		return &owned.WildcardPat{Base: base(p)}
	case LiteralPattern:
		tok, ok := p.Token()
		tok = must(tok, ok, p, "literal")
		return &owned.LiteralPat{Base: base(p), Negative: p.IsNegative(), Literal: lowerLiteral(p, tok)}
	case PathPattern:
		path, ok := p.Path()
		return &owned.PathPat{Base: base(p), Path: lowerPath(must(path, ok, p, "path"), in)}
	case TupleStructPattern:
		path, ok := p.Path()
		return &owned.TupleStructPat{
			Base:   base(p),
			Path:   lowerPath(must(path, ok, p, "path"), in),
			Fields: lowerPatterns(p.Fields(), in),
		}
	case TuplePattern:
		return &owned.TuplePat{Base: base(p), Fields: lowerPatterns(p.Fields(), in)}
	}
	panic(&InternalError{Kind: p.Syntax().Kind(), Span: p.Syntax().Span(), Child: "pattern lowering"})
}

func lowerPatterns(ps []Pattern, in *intern.Interner) []owned.Pattern {
	out := []owned.Pattern{}
	for _, p := range ps {
		out = append(out, LowerPattern(p, in))
	}
	return out
}

func lowerLiteral(n Node, tok *syntax.SyntaxToken) owned.Literal {
	out := owned.Literal{Base: owned.Base{Range: tok.Span()}}
	kind, _ := tok.Kind().AsToken()
	text := tok.Text()
	switch kind {
	case lexer.Int:
		out.Kind, out.Value = owned.IntLit, strings.ReplaceAll(text, "_", "")
	case lexer.Float:
		out.Kind, out.Value = owned.FloatLit, strings.ReplaceAll(text, "_", "")
	case lexer.String:
		out.Kind, out.Value = owned.StringLit, unquote(text)
	case lexer.Char:
		out.Kind, out.Value = owned.CharLit, unquote(text)
	case lexer.KwTrue, lexer.KwFalse:
		out.Kind, out.Value = owned.BoolLit, text
	default:
		s := n.Syntax()
		panic(&InternalError{Kind: s.Kind(), Span: s.Span(), Child: "literal token"})
	}
	return out
}

// unquote strips the delimiters of a terminated string or char literal and
// decodes its escapes.
func unquote(text string) string {
	if len(text) < 2 {
		return ""
	}
	v, _ := lexer.Unescape(text[1 : len(text)-1])
	return v
}

func (b BlockExpr) Lower(in *intern.Interner) *owned.Block {
	out := &owned.Block{Base: base(b)}
	for _, s := range b.Statements() {
		out.Stmts = append(out.Stmts, LowerStmt(s, in))
	}
	if tail, ok := b.Tail(); ok {
		out.Tail = LowerExpr(tail, in)
	}
	return out
}

// LowerStmt lowers a let or expression statement.
func LowerStmt(s Stmt, in *intern.Interner) owned.Stmt {
	switch s := s.(type) {
	case LetStmt:
		pat, ok := s.Pattern()
		out := &owned.Let{Base: base(s), Pattern: LowerPattern(must(pat, ok, s, "pattern"), in)}
		if ty, ok := s.Type(); ok {
			out.Type = LowerType(ty, in)
		}
		if init, ok := s.Initializer(); ok {
			out.Init = LowerExpr(init, in)
		}
		return out
	case ExprStmt:
		e, ok := s.Expr()
		return &owned.ExprStmt{
			Base:      base(s),
			Expr:      LowerExpr(must(e, ok, s, "expression"), in),
			Semicolon: s.HasSemicolon(),
		}
	}
	panic(&InternalError{Kind: s.Syntax().Kind(), Span: s.Syntax().Span(), Child: "statement lowering"})
}

func optExpr(e Expr, ok bool, in *intern.Interner) owned.Expr {
	if !ok {
		return nil
	}
	return LowerExpr(e, in)
}

func lowerExprs(es []Expr, in *intern.Interner) []owned.Expr {
	out := []owned.Expr{}
	for _, e := range es {
		out = append(out, LowerExpr(e, in))
	}
	return out
}

// LowerExpr lowers any expression wrapper.
func LowerExpr(e Expr, in *intern.Interner) owned.Expr {
	switch e := e.(type) {
	case Literal:
		tok, ok := e.Token()
		lit := lowerLiteral(e, must(tok, ok, e, "token"))
		lit.Range = e.Span()
		return &lit
	case PathExpr:
		path, ok := e.Path()
		return &owned.PathExpr{Base: base(e), Path: lowerPath(must(path, ok, e, "path"), in)}
	case BlockExpr:
		return e.Lower(in)
	case IfExpr:
		cond, ok := e.Condition()
		then, tok := e.Then()
		out := &owned.If{
			Base: base(e),
			Cond: LowerExpr(must(cond, ok, e, "condition"), in),
			Then: must(then, tok, e, "then block").Lower(in),
		}
		if els, ok := e.Else(); ok {
			out.Else = LowerExpr(els, in)
		}
		return out
	case WhileExpr:
		cond, ok := e.Condition()
		body, bok := e.Body()
		return &owned.While{
			Base: base(e),
			Cond: LowerExpr(must(cond, ok, e, "condition"), in),
			Body: must(body, bok, e, "body").Lower(in),
		}
	case LoopExpr:
		body, ok := e.Body()
		return &owned.Loop{Base: base(e), Body: must(body, ok, e, "body").Lower(in)}
	case ForExpr:
		pat, ok := e.Pattern()
		iter, iok := e.Iterable()
		body, bok := e.Body()
		return &owned.For{
			Base:    base(e),
			Pattern: LowerPattern(must(pat, ok, e, "pattern"), in),
			Iter:    LowerExpr(must(iter, iok, e, "iterable"), in),
			Body:    must(body, bok, e, "body").Lower(in),
		}
	case MatchExpr:
		scrut, ok := e.Scrutinee()
		out := &owned.Match{Base: base(e), Scrutinee: LowerExpr(must(scrut, ok, e, "scrutinee"), in)}
		for _, a := range e.Arms() {
			out.Arms = append(out.Arms, a.Lower(in))
		}
		return out
	case ReturnExpr:
		v, ok := e.Value()
		return &owned.Return{Base: base(e), Value: optExpr(v, ok, in)}
	case BreakExpr:
		v, ok := e.Value()
		return &owned.Break{Base: base(e), Value: optExpr(v, ok, in)}
	case ContinueExpr:
		return &owned.Continue{Base: base(e)}
	case ParenExpr:
		inner, ok := e.Inner()
		return &owned.Paren{Base: base(e), Inner: LowerExpr(must(inner, ok, e, "expression"), in)}
	case TupleExpr:
		return &owned.Tuple{Base: base(e), Elems: lowerExprs(e.Elements(), in)}
	case ArrayExpr:
		return &owned.Array{Base: base(e), Elems: lowerExprs(e.Elements(), in)}
	case StructExpr:
		path, ok := e.Path()
		out := &owned.StructLit{Base: base(e), Path: lowerPath(must(path, ok, e, "path"), in), Fields: []owned.FieldInit{}}
		for _, f := range e.Fields() {
			ref, ok := f.NameRef()
			v, vok := f.Value()
			out.Fields = append(out.Fields, owned.FieldInit{
				Base:  base(f),
				Name:  in.Intern(must(ref, ok, f, "field name").Ident()),
				Value: optExpr(v, vok, in),
			})
		}
		return out
	case PrefixExpr:
		op, ok := e.Op()
		operand, ook := e.Operand()
		return &owned.Unary{
			Base:    base(e),
			Op:      owned.UnaryOp(must(op, ok, e, "operator").Text()),
			Operand: LowerExpr(must(operand, ook, e, "operand"), in),
		}
	case BinaryExpr:
		op, ok := e.Op()
		lhs, lok := e.LHS()
		rhs, rok := e.RHS()
		return &owned.Binary{
			Base: base(e),
			Op:   owned.BinaryOp(must(op, ok, e, "operator").Text()),
			LHS:  LowerExpr(must(lhs, lok, e, "left operand"), in),
			RHS:  LowerExpr(must(rhs, rok, e, "right operand"), in),
		}
	case CallExpr:
		callee, ok := e.Callee()
		return &owned.Call{
			Base:   base(e),
			Callee: LowerExpr(must(callee, ok, e, "callee"), in),
			Args:   lowerExprs(e.Args(), in),
		}
	case FieldExpr:
		recv, ok := e.Receiver()
		name, nok := e.Field()
		return &owned.FieldAccess{
			Base:     base(e),
			Receiver: LowerExpr(must(recv, ok, e, "receiver"), in),
			Name:     in.Intern(must(name, nok, e, "field")),
		}
	case IndexExpr:
		target, ok := e.Base()
		index, iok := e.Index()
		return &owned.Index{
			Base:   base(e),
			Target: LowerExpr(must(target, ok, e, "indexed expression"), in),
			Index:  LowerExpr(must(index, iok, e, "index"), in),
		}
	case TryExpr:
		inner, ok := e.Inner()
		return &owned.Try{Base: base(e), Inner: LowerExpr(must(inner, ok, e, "expression"), in)}
	}
	panic(&InternalError{Kind: e.Syntax().Kind(), Span: e.Syntax().Span(), Child: "expression lowering"})
}

func (a MatchArm) Lower(in *intern.Interner) owned.Arm {
	pat, ok := a.Pattern()
	body, bok := a.Body()
	out := owned.Arm{
		Base:    base(a),
		Pattern: LowerPattern(must(pat, ok, a, "pattern"), in),
		Body:    LowerExpr(must(body, bok, a, "body"), in),
	}
	if g, ok := a.Guard(); ok {
		cond, cok := g.Condition()
		out.Guard = LowerExpr(must(cond, cok, g, "condition"), in)
	}
	return out
}
