package grammar

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/exp/ebnf"

	"github.com/danue1/danube/lexer"
)

// Terminal is one significant token handed to the recognizer. Kind names
// the lexical production the token belongs to (ident, int, ...) and is
// empty for keywords and punctuation, which match quoted tokens by text.
type Terminal struct {
	Kind   string
	Text   string
	Offset int
}

var lexicalKinds = map[lexer.TokenKind]string{
	lexer.Ident:  "ident",
	lexer.Int:    "int",
	lexer.Float:  "float",
	lexer.String: "string",
	lexer.Char:   "char",
}

// Terminals lexes src and drops trivia and the EOF token.
func Terminals(src string) []Terminal {
	tokens, _ := lexer.Lex(src)
	out := make([]Terminal, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind == lexer.EOF || tok.Kind.IsTrivia() {
			continue
		}
		out = append(out, Terminal{
			Kind:   lexicalKinds[tok.Kind],
			Text:   tok.Text(src),
			Offset: tok.Span.Start,
		})
	}
	return out
}

type symbol struct {
	name     string
	terminal bool
	// literal is set for quoted tokens.
	literal bool
}

func (s symbol) String() string {
	if s.literal {
		return strconv.Quote(s.name)
	}
	return s.name
}

func (s symbol) matches(t Terminal) bool {
	if s.literal {
		return t.Kind == "" && t.Text == s.name
	}
	return t.Kind == s.name
}

type rule struct {
	lhs string
	rhs []symbol
}

// Recognizer decides whether a token stream derives from a start
// production. Syntactic productions are rewritten into plain rules, with
// a fresh nonterminal for every group, option and repetition, and run
// through an Earley chart so the grammar may be ambiguous.
type Recognizer struct {
	start    string
	rules    []rule
	byLHS    map[string][]int
	nullable map[string]bool
	fresh    int
}

// NewRecognizer compiles the productions of g reachable from start.
func NewRecognizer(g ebnf.Grammar, start string) (*Recognizer, error) {
	if _, ok := g[start]; !ok {
		return nil, fmt.Errorf("production %q not found", start)
	}
	r := &Recognizer{start: start, byLHS: make(map[string][]int)}
	seen := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		prod, ok := g[name]
		if !ok {
			return nil, fmt.Errorf("production %q not found", name)
		}
		alts, err := r.alternatives(name, prod.Expr)
		if err != nil {
			return nil, err
		}
		for _, rhs := range alts {
			r.add(name, rhs)
		}
		for _, ru := range r.rules {
			for _, s := range ru.rhs {
				if !s.terminal && !seen[s.name] && !strings.Contains(s.name, "#") {
					seen[s.name] = true
					queue = append(queue, s.name)
				}
			}
		}
	}
	r.computeNullable()
	return r, nil
}

func (r *Recognizer) add(lhs string, rhs []symbol) {
	r.byLHS[lhs] = append(r.byLHS[lhs], len(r.rules))
	r.rules = append(r.rules, rule{lhs: lhs, rhs: rhs})
}

func (r *Recognizer) alternatives(owner string, expr ebnf.Expression) ([][]symbol, error) {
	if alt, ok := expr.(ebnf.Alternative); ok {
		var out [][]symbol
		for _, e := range alt {
			alts, err := r.alternatives(owner, e)
			if err != nil {
				return nil, err
			}
			out = append(out, alts...)
		}
		return out, nil
	}
	seq, err := r.sequence(owner, expr)
	if err != nil {
		return nil, err
	}
	return [][]symbol{seq}, nil
}

func (r *Recognizer) sequence(owner string, expr ebnf.Expression) ([]symbol, error) {
	switch e := expr.(type) {
	case nil:
		return nil, nil
	case ebnf.Sequence:
		var out []symbol
		for _, item := range e {
			syms, err := r.sequence(owner, item)
			if err != nil {
				return nil, err
			}
			out = append(out, syms...)
		}
		return out, nil
	case *ebnf.Name:
		if isLexical(e.String) {
			return []symbol{{name: e.String, terminal: true}}, nil
		}
		return []symbol{{name: e.String}}, nil
	case *ebnf.Token:
		return []symbol{{name: e.String, terminal: true, literal: true}}, nil
	case *ebnf.Group:
		return r.derived(owner, e.Body, false, false)
	case ebnf.Alternative:
		return r.derived(owner, e, false, false)
	case *ebnf.Option:
		return r.derived(owner, e.Body, true, false)
	case *ebnf.Repetition:
		return r.derived(owner, e.Body, true, true)
	case *ebnf.Range:
		return nil, fmt.Errorf("%s: character range in syntactic production %s", e.Pos(), owner)
	}
	return nil, fmt.Errorf("%s: unsupported expression %T", expr.Pos(), expr)
}

// derived introduces a nonterminal for body. Optional adds an empty rule
// and repeat makes the nonterminal right recursive.
func (r *Recognizer) derived(owner string, body ebnf.Expression, optional, repeat bool) ([]symbol, error) {
	r.fresh++
	name := fmt.Sprintf("%s#%d", owner, r.fresh)
	alts, err := r.alternatives(owner, body)
	if err != nil {
		return nil, err
	}
	self := symbol{name: name}
	if optional {
		r.add(name, nil)
	}
	for _, rhs := range alts {
		if repeat {
			rhs = append(append([]symbol(nil), rhs...), self)
		}
		r.add(name, rhs)
	}
	return []symbol{self}, nil
}

func (r *Recognizer) computeNullable() {
	r.nullable = make(map[string]bool)
	for changed := true; changed; {
		changed = false
		for _, ru := range r.rules {
			if r.nullable[ru.lhs] {
				continue
			}
			empty := true
			for _, s := range ru.rhs {
				if s.terminal || !r.nullable[s.name] {
					empty = false
					break
				}
			}
			if empty {
				r.nullable[ru.lhs] = true
				changed = true
			}
		}
	}
}

// SyntaxError is the first token no rule can accept.
type SyntaxError struct {
	Offset   int
	Found    string
	Expected []string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("offset %d: unexpected %s, expected %s", e.Offset, e.Found, strings.Join(e.Expected, " or "))
}

type item struct {
	rule   int
	dot    int
	origin int
}

type itemSet struct {
	items []item
	seen  map[item]bool
}

func (s *itemSet) add(it item) {
	if s.seen[it] {
		return
	}
	s.seen[it] = true
	s.items = append(s.items, it)
}

// Recognize runs the chart over tokens. end is the offset reported when
// the input stops early.
func (r *Recognizer) Recognize(tokens []Terminal, end int) error {
	n := len(tokens)
	chart := make([]*itemSet, n+1)
	for i := range chart {
		chart[i] = &itemSet{seen: make(map[item]bool)}
	}
	for _, ri := range r.byLHS[r.start] {
		chart[0].add(item{rule: ri})
	}

	for i := 0; i <= n; i++ {
		set := chart[i]
		for j := 0; j < len(set.items); j++ {
			it := set.items[j]
			ru := r.rules[it.rule]
			if it.dot == len(ru.rhs) {
				origin := chart[it.origin]
				for k := 0; k < len(origin.items); k++ {
					parent := origin.items[k]
					prhs := r.rules[parent.rule].rhs
					if parent.dot < len(prhs) && !prhs[parent.dot].terminal && prhs[parent.dot].name == ru.lhs {
						set.add(item{parent.rule, parent.dot + 1, parent.origin})
					}
				}
				continue
			}
			next := ru.rhs[it.dot]
			if next.terminal {
				if i < n && next.matches(tokens[i]) {
					chart[i+1].add(item{it.rule, it.dot + 1, it.origin})
				}
				continue
			}
			for _, ri := range r.byLHS[next.name] {
				set.add(item{rule: ri, origin: i})
			}
			if r.nullable[next.name] {
				set.add(item{it.rule, it.dot + 1, it.origin})
			}
		}
		if i < n && len(chart[i+1].items) == 0 {
			return r.syntaxError(set, tokens[i].Offset, strconv.Quote(tokens[i].Text))
		}
	}

	for _, it := range chart[n].items {
		ru := r.rules[it.rule]
		if ru.lhs == r.start && it.origin == 0 && it.dot == len(ru.rhs) {
			return nil
		}
	}
	return r.syntaxError(chart[n], end, "end of input")
}

func (r *Recognizer) syntaxError(set *itemSet, offset int, found string) error {
	expected := map[string]bool{}
	for _, it := range set.items {
		rhs := r.rules[it.rule].rhs
		if it.dot < len(rhs) && rhs[it.dot].terminal {
			expected[rhs[it.dot].String()] = true
		}
	}
	names := make([]string, 0, len(expected))
	for name := range expected {
		names = append(names, name)
	}
	sort.Strings(names)
	return &SyntaxError{Offset: offset, Found: found, Expected: names}
}

// RecognizeSource lexes src and recognizes it from the start production.
func (r *Recognizer) RecognizeSource(src string) error {
	return r.Recognize(Terminals(src), len(src))
}
