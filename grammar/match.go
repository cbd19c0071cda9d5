package grammar

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

type memoKey struct {
	name   string
	offset int
}

// Matcher matches lexical productions (lowercase names) against text.
// Repetitions are greedy and alternatives take the longest match; there
// is no backtracking, which is enough for token shaped productions.
type Matcher struct {
	grammar  ebnf.Grammar
	input    string
	memo     map[memoKey]int
	visiting map[memoKey]bool
}

func NewMatcher(g ebnf.Grammar) *Matcher {
	return &Matcher{grammar: g}
}

// Match returns the length of the longest prefix of input derived from
// the production name, or -1 when nothing matches.
func (m *Matcher) Match(name, input string) int {
	m.input = input
	m.memo = make(map[memoKey]int)
	m.visiting = make(map[memoKey]bool)
	return m.matchName(name, 0)
}

// MatchAll reports whether the whole of input derives from name.
func (m *Matcher) MatchAll(name, input string) bool {
	return m.Match(name, input) == len(input)
}

func (m *Matcher) match(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case nil:
		return 0
	case *ebnf.Token:
		if strings.HasPrefix(m.input[offset:], e.String) {
			return len(e.String)
		}
		return -1
	case *ebnf.Range:
		return m.matchRange(e, offset)
	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n := m.match(item, offset+total)
			if n < 0 {
				return -1
			}
			total += n
		}
		return total
	case ebnf.Alternative:
		best := -1
		for _, alt := range e {
			best = max(best, m.match(alt, offset))
		}
		return best
	case *ebnf.Repetition:
		total := 0
		for {
			n := m.match(e.Body, offset+total)
			if n <= 0 {
				return total
			}
			total += n
		}
	case *ebnf.Option:
		return max(0, m.match(e.Body, offset))
	case *ebnf.Group:
		return m.match(e.Body, offset)
	case *ebnf.Name:
		return m.matchName(e.String, offset)
	}
	return -1
}

func (m *Matcher) matchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}
	if n, ok := m.memo[key]; ok {
		return n
	}
	// Left recursion never matches.
	if m.visiting[key] {
		return -1
	}
	prod, ok := m.grammar[name]
	if !ok {
		m.memo[key] = -1
		return -1
	}
	m.visiting[key] = true
	n := m.match(prod.Expr, offset)
	delete(m.visiting, key)
	m.memo[key] = n
	return n
}

func (m *Matcher) matchRange(e *ebnf.Range, offset int) int {
	r, size := utf8.DecodeRuneInString(m.input[offset:])
	if size == 0 {
		return -1
	}
	lo, _ := utf8.DecodeRuneInString(e.Begin.String)
	hi, _ := utf8.DecodeRuneInString(e.End.String)
	if r < lo || r > hi {
		return -1
	}
	return size
}
