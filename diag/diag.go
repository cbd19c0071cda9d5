// Package diag carries parse diagnostics from the front end to whoever
// surfaces them.
package diag

import (
	"fmt"
	"sort"

	"github.com/danue1/danube/source"
)

type Severity int

const (
	Error Severity = iota
	Warning
	Info
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Diagnostic is a structural problem found in the input. File is empty when
// the text did not come from a file.
type Diagnostic struct {
	Severity Severity    `json:"severity" yaml:"severity"`
	Message  string      `json:"message" yaml:"message"`
	Span     source.Span `json:"span" yaml:"span"`
	File     string      `json:"file,omitempty" yaml:"file,omitempty"`
}

func Errorf(span source.Span, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: Error, Message: fmt.Sprintf(format, args...), Span: span}
}

func (d Diagnostic) String() string {
	if d.File != "" {
		return fmt.Sprintf("%s:%v: %v: %s", d.File, d.Span, d.Severity, d.Message)
	}
	return fmt.Sprintf("%v: %v: %s", d.Span, d.Severity, d.Message)
}

// Sink receives diagnostics as they are produced.
type Sink interface {
	Report(d Diagnostic)
}

type SinkFunc func(d Diagnostic)

func (f SinkFunc) Report(d Diagnostic) { f(d) }

// Discard drops every diagnostic.
var Discard Sink = SinkFunc(func(Diagnostic) {})

// Tee forwards each diagnostic to every sink in order.
func Tee(sinks ...Sink) Sink {
	return SinkFunc(func(d Diagnostic) {
		for _, s := range sinks {
			s.Report(d)
		}
	})
}

// Bag collects diagnostics in report order. The zero value is ready to use.
type Bag struct {
	items []Diagnostic
}

func (b *Bag) Report(d Diagnostic) {
	b.items = append(b.items, d)
}

func (b *Bag) Items() []Diagnostic {
	return b.items
}

func (b *Bag) Len() int {
	return len(b.items)
}

func (b *Bag) HasErrors() bool {
	return HasErrors(b.items)
}

// Sorted returns a copy ordered by position; ties keep report order.
func (b *Bag) Sorted() []Diagnostic {
	out := make([]Diagnostic, len(b.items))
	copy(out, b.items)
	Sort(out)
	return out
}

func HasErrors(ds []Diagnostic) bool {
	for _, d := range ds {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Sort orders ds by file, then start offset, then end offset.
func Sort(ds []Diagnostic) {
	sort.SliceStable(ds, func(i, j int) bool {
		a, b := ds[i], ds[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Span.Start != b.Span.Start {
			return a.Span.Start < b.Span.Start
		}
		return a.Span.End < b.Span.End
	})
}

// Within returns the diagnostics whose span lies inside span.
func Within(ds []Diagnostic, span source.Span) []Diagnostic {
	var out []Diagnostic
	for _, d := range ds {
		if span.ContainsSpan(d.Span) {
			out = append(out, d)
		}
	}
	return out
}
