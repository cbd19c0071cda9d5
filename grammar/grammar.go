// Package grammar carries the EBNF description of the Danube surface
// syntax and checks it with golang.org/x/exp/ebnf.
package grammar

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"golang.org/x/exp/ebnf"
)

// Start is the production every Danube file derives from.
const Start = "SourceFile"

//go:embed danube.ebnf
var source string

// Source returns the embedded grammar text.
func Source() string {
	return source
}

// Parse parses an EBNF grammar. The error is ebnf's error list when the
// grammar has syntax errors.
func Parse(name string, r io.Reader) (ebnf.Grammar, error) {
	return ebnf.Parse(name, r)
}

// Verify parses src and checks it from start: every production used is
// defined, every defined production is reachable and lexical productions
// only refer to lexical ones. An empty start only checks syntax.
func Verify(name string, r io.Reader, start string) (ebnf.Grammar, error) {
	g, err := Parse(name, r)
	if err != nil {
		return nil, err
	}
	if start == "" {
		return g, nil
	}
	if err := ebnf.Verify(g, start); err != nil {
		return g, err
	}
	return g, nil
}

// Embedded parses and verifies the embedded grammar.
func Embedded() (ebnf.Grammar, error) {
	g, err := Verify("danube.ebnf", strings.NewReader(source), Start)
	if err != nil {
		return nil, fmt.Errorf("danube.ebnf: %w", err)
	}
	return g, nil
}

// Productions returns the production names of g in sorted order, grammar
// productions first and lexical ones after.
func Productions(g ebnf.Grammar) []string {
	var upper, lower []string
	for name := range g {
		if isLexical(name) {
			lower = append(lower, name)
		} else {
			upper = append(upper, name)
		}
	}
	sort.Strings(upper)
	sort.Strings(lower)
	return append(upper, lower...)
}

func isLexical(name string) bool {
	return name != "" && name[0] >= 'a' && name[0] <= 'z'
}

// Errors flattens an error returned by Parse or Verify into one message per
// problem. ebnf reports several problems as a slice of errors.
func Errors(err error) []string {
	if err == nil {
		return nil
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		v := reflect.ValueOf(e)
		if v.Kind() != reflect.Slice {
			continue
		}
		out := make([]string, v.Len())
		for i := range v.Len() {
			out[i] = fmt.Sprint(v.Index(i).Interface())
		}
		return out
	}
	return []string{err.Error()}
}
