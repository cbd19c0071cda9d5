package owned

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/danue1/danube/intern"
	"gopkg.in/yaml.v3"
)

// Term is a generic rendering of a node: a head and ordered attributes.
// Attribute values are string, bool, *Term, []*Term or nil.
type Term struct {
	Kind  string
	Attrs []Attr
}

type Attr struct {
	Key   string
	Value any
}

func (t *Term) add(key string, value any) *Term {
	t.Attrs = append(t.Attrs, Attr{Key: key, Value: value})
	return t
}

// Dump renders a node as an S-expression. Names print bare, true flags
// print as their key, false flags and absent children are omitted and
// lists print as (key elem...).
func Dump(n Node, in *intern.Interner) string {
	return ToTerm(n, in).String()
}

func (t *Term) String() string {
	if t == nil {
		return "()"
	}
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t *Term) write(sb *strings.Builder) {
	sb.WriteByte('(')
	sb.WriteString(t.Kind)
	for _, a := range t.Attrs {
		switch v := a.Value.(type) {
		case nil:
		case bool:
			if v {
				sb.WriteByte(' ')
				sb.WriteString(a.Key)
			}
		case string:
			sb.WriteByte(' ')
			sb.WriteString(atom(v))
		case *Term:
			if v != nil {
				sb.WriteByte(' ')
				v.write(sb)
			}
		case []*Term:
			sb.WriteString(" (")
			sb.WriteString(a.Key)
			for _, e := range v {
				sb.WriteByte(' ')
				e.write(sb)
			}
			sb.WriteByte(')')
		}
	}
	sb.WriteByte(')')
}

func atom(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\r()\"'\\") {
		return strconv.Quote(s)
	}
	return s
}

// MarshalJSON writes {"kind": ..., key: value, ...} keeping attribute order.
func (t *Term) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteString(`{"kind":`)
	kind, _ := json.Marshal(t.Kind)
	buf.Write(kind)
	for _, a := range t.Attrs {
		key, _ := json.Marshal(a.Key)
		val, err := json.Marshal(a.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal %s.%s: %w", t.Kind, a.Key, err)
		}
		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML returns a mapping node that keeps attribute order.
func (t *Term) MarshalYAML() (any, error) {
	if t == nil {
		return nil, nil
	}
	m := &yaml.Node{Kind: yaml.MappingNode}
	m.Content = append(m.Content, scalar("kind"), scalar(t.Kind))
	for _, a := range t.Attrs {
		var v yaml.Node
		if err := v.Encode(a.Value); err != nil {
			return nil, fmt.Errorf("marshal %s.%s: %w", t.Kind, a.Key, err)
		}
		m.Content = append(m.Content, scalar(a.Key), &v)
	}
	return m, nil
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// ToTerm converts an owned node. Symbols are resolved through in.
func ToTerm(n Node, in *intern.Interner) *Term {
	c := converter{in: in}
	return c.node(n)
}

type converter struct {
	in *intern.Interner
}

func (c converter) name(s intern.Symbol) any {
	if s == 0 {
		return nil
	}
	return c.in.Lookup(s)
}

func (c converter) path(p Path) string {
	parts := make([]string, len(p.Segments))
	for i, s := range p.Segments {
		parts[i] = c.in.Lookup(s)
	}
	return strings.Join(parts, "::")
}

func (c converter) node(n Node) *Term {
	switch n := n.(type) {
	case *SourceFile:
		t := &Term{Kind: "file"}
		t.add("items", c.items(n.Items))
		if len(n.Skipped) > 0 {
			skipped := make([]*Term, len(n.Skipped))
			for i, s := range n.Skipped {
				skipped[i] = (&Term{Kind: "span"}).add("range", s.String())
			}
			t.add("skipped", skipped)
		}
		return t
	case *Function:
		t := &Term{Kind: "fn"}
		t.add("pub", n.Public).add("name", c.name(n.Name))
		params := []*Term{}
		if n.SelfParam {
			params = append(params, &Term{Kind: "self"})
		}
		for _, p := range n.Params {
			params = append(params, c.param(p))
		}
		t.add("params", params).add("return", c.opt(n.Return))
		if n.Body != nil {
			t.add("body", c.node(n.Body))
		}
		return t
	case *Struct:
		t := &Term{Kind: "struct"}
		t.add("pub", n.Public).add("name", c.name(n.Name))
		if n.Kind != UnitStruct {
			t.add(n.Kind.String(), c.fields(n.Fields))
		}
		return t
	case *Enum:
		t := &Term{Kind: "enum"}
		t.add("pub", n.Public).add("name", c.name(n.Name))
		variants := []*Term{}
		for _, v := range n.Variants {
			vt := (&Term{Kind: "variant"}).add("name", c.name(v.Name))
			if v.Kind != UnitStruct {
				vt.add(v.Kind.String(), c.fields(v.Fields))
			}
			variants = append(variants, vt)
		}
		return t.add("variants", variants)
	case *Use:
		return (&Term{Kind: "use"}).add("pub", n.Public).add("tree", c.useTree(n.Tree))
	case *Const:
		t := &Term{Kind: "const"}
		return t.add("pub", n.Public).add("name", c.name(n.Name)).add("type", c.opt(n.Type)).add("value", c.opt(n.Value))
	case *TypeAlias:
		t := &Term{Kind: "type"}
		return t.add("pub", n.Public).add("name", c.name(n.Name)).add("type", c.opt(n.Type))
	case *Impl:
		t := &Term{Kind: "impl"}
		return t.add("trait", c.opt(n.Trait)).add("self", c.opt(n.SelfType)).add("items", c.items(n.Items))
	case *Trait:
		t := &Term{Kind: "trait"}
		return t.add("pub", n.Public).add("name", c.name(n.Name)).add("items", c.items(n.Items))
	case *Module:
		t := &Term{Kind: "mod"}
		t.add("pub", n.Public).add("name", c.name(n.Name))
		if n.Inline {
			t.add("items", c.items(n.Items))
		}
		return t

	case *PathType:
		return (&Term{Kind: "path-type"}).add("path", c.path(n.Path))
	case *TupleType:
		elems := []*Term{}
		for _, e := range n.Elems {
			elems = append(elems, c.node(e))
		}
		return (&Term{Kind: "tuple-type"}).add("elems", elems)
	case *ArrayType:
		return (&Term{Kind: "array-type"}).add("elem", c.opt(n.Elem)).add("len", c.opt(n.Len))

	case *Let:
		t := &Term{Kind: "let"}
		return t.add("pattern", c.opt(n.Pattern)).add("type", c.opt(n.Type)).add("init", c.opt(n.Init))
	case *ExprStmt:
		return (&Term{Kind: "expr-stmt"}).add("expr", c.opt(n.Expr)).add("semi", n.Semicolon)

	case *Literal:
		return c.literal(*n)
	case *PathExpr:
		return (&Term{Kind: "path"}).add("path", c.path(n.Path))
	case *Block:
		stmts := []*Term{}
		for _, s := range n.Stmts {
			stmts = append(stmts, c.node(s))
		}
		return (&Term{Kind: "block"}).add("stmts", stmts).add("tail", c.opt(n.Tail))
	case *If:
		t := &Term{Kind: "if"}
		return t.add("cond", c.opt(n.Cond)).add("then", c.node(n.Then)).add("else", c.opt(n.Else))
	case *While:
		return (&Term{Kind: "while"}).add("cond", c.opt(n.Cond)).add("body", c.node(n.Body))
	case *Loop:
		return (&Term{Kind: "loop"}).add("body", c.node(n.Body))
	case *For:
		t := &Term{Kind: "for"}
		return t.add("pattern", c.opt(n.Pattern)).add("iter", c.opt(n.Iter)).add("body", c.node(n.Body))
	case *Match:
		arms := []*Term{}
		for _, a := range n.Arms {
			at := (&Term{Kind: "arm"}).add("pattern", c.opt(a.Pattern))
			at.add("guard", c.opt(a.Guard)).add("body", c.opt(a.Body))
			arms = append(arms, at)
		}
		return (&Term{Kind: "match"}).add("scrutinee", c.opt(n.Scrutinee)).add("arms", arms)
	case *Return:
		return (&Term{Kind: "return"}).add("value", c.opt(n.Value))
	case *Break:
		return (&Term{Kind: "break"}).add("value", c.opt(n.Value))
	case *Continue:
		return &Term{Kind: "continue"}
	case *Paren:
		return (&Term{Kind: "paren"}).add("inner", c.opt(n.Inner))
	case *Tuple:
		return (&Term{Kind: "tuple"}).add("elems", c.exprs(n.Elems))
	case *Array:
		return (&Term{Kind: "array"}).add("elems", c.exprs(n.Elems))
	case *StructLit:
		fields := []*Term{}
		for _, f := range n.Fields {
			fields = append(fields, (&Term{Kind: "field"}).add("name", c.name(f.Name)).add("value", c.opt(f.Value)))
		}
		return (&Term{Kind: "struct-lit"}).add("path", c.path(n.Path)).add("fields", fields)
	case *Unary:
		return (&Term{Kind: "unary"}).add("op", string(n.Op)).add("operand", c.opt(n.Operand))
	case *Binary:
		t := &Term{Kind: "binary"}
		return t.add("op", string(n.Op)).add("lhs", c.opt(n.LHS)).add("rhs", c.opt(n.RHS))
	case *Call:
		return (&Term{Kind: "call"}).add("callee", c.opt(n.Callee)).add("args", c.exprs(n.Args))
	case *FieldAccess:
		return (&Term{Kind: "field"}).add("receiver", c.opt(n.Receiver)).add("name", c.name(n.Name))
	case *Index:
		return (&Term{Kind: "index"}).add("target", c.opt(n.Target)).add("index", c.opt(n.Index))
	case *Try:
		return (&Term{Kind: "try"}).add("inner", c.opt(n.Inner))

	case *BindingPat:
		return (&Term{Kind: "bind"}).add("mut", n.Mutable).add("name", c.name(n.Name))
	case *WildcardPat:
		return &Term{Kind: "wildcard"}
	case *LiteralPat:
		t := c.literal(n.Literal)
		t.Attrs = append([]Attr{{Key: "neg", Value: n.Negative}}, t.Attrs...)
		return t
	case *PathPat:
		return (&Term{Kind: "path-pat"}).add("path", c.path(n.Path))
	case *TupleStructPat:
		return (&Term{Kind: "tuple-struct-pat"}).add("path", c.path(n.Path)).add("fields", c.patterns(n.Fields))
	case *TuplePat:
		return (&Term{Kind: "tuple-pat"}).add("fields", c.patterns(n.Fields))
	}
	panic(fmt.Sprintf("owned: no term for %T", n))
}

// opt converts a child that may be absent. Typed nil interfaces and nil
// pointers both count as absent.
func (c converter) opt(n Node) any {
	if n == nil {
		return nil
	}
	if b, ok := n.(*Block); ok && b == nil {
		return nil
	}
	return c.node(n)
}

func (c converter) literal(l Literal) *Term {
	return (&Term{Kind: l.Kind.String()}).add("value", l.Value)
}

func (c converter) param(p Param) *Term {
	return (&Term{Kind: "param"}).add("mut", p.Mutable).add("name", c.name(p.Name)).add("type", c.opt(p.Type))
}

func (c converter) fields(fs []Field) []*Term {
	out := []*Term{}
	for _, f := range fs {
		out = append(out, (&Term{Kind: "field"}).add("pub", f.Public).add("name", c.name(f.Name)).add("type", c.opt(f.Type)))
	}
	return out
}

func (c converter) useTree(u UseTree) *Term {
	t := (&Term{Kind: "use-tree"}).add("path", c.path(Path{Segments: u.Path})).add("glob", u.Glob)
	if len(u.Children) > 0 {
		children := make([]*Term, len(u.Children))
		for i, ch := range u.Children {
			children[i] = c.useTree(ch)
		}
		t.add("children", children)
	}
	return t
}

func (c converter) items(items []Item) []*Term {
	out := []*Term{}
	for _, it := range items {
		out = append(out, c.node(it))
	}
	return out
}

func (c converter) exprs(es []Expr) []*Term {
	out := []*Term{}
	for _, e := range es {
		out = append(out, c.node(e))
	}
	return out
}

func (c converter) patterns(ps []Pattern) []*Term {
	out := []*Term{}
	for _, p := range ps {
		out = append(out, c.node(p))
	}
	return out
}
