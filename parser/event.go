package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/danue1/danube/syntax"
)

type eventKind uint8

const (
	evPlaceholder eventKind = iota
	evStart
	evToken
	evFinish
)

// event is one entry of the construction log. For starts, forwardParent is
// the absolute index of a later start event that must open before this one
// (0 means none; a forward parent always sits after its child).
type event struct {
	kind          eventKind
	node          syntax.SyntaxKind
	forwardParent int
}

// Marker is an open node with a completion obligation: it must be either
// completed or abandoned before the log is finalized.
type Marker struct {
	p    *Parser
	pos  int
	done bool
}

// CompletedMarker refers to the start event of a finished node.
type CompletedMarker struct {
	p    *Parser
	pos  int
	kind syntax.SyntaxKind
}

// Checkpoint records a log position that a node may later be started at.
// It carries no obligation.
type Checkpoint struct {
	pos int
}

func (p *Parser) reserve() *Marker {
	pos := len(p.events)
	p.events = append(p.events, event{kind: evPlaceholder})
	return p.track(pos)
}

func (p *Parser) track(pos int) *Marker {
	p.open[pos] = struct{}{}
	return &Marker{p: p, pos: pos}
}

func (p *Parser) checkpoint() Checkpoint {
	pos := len(p.events)
	p.events = append(p.events, event{kind: evPlaceholder})
	return Checkpoint{pos: pos}
}

// startAt opens a node beginning at cp, so every event recorded since the
// checkpoint ends up inside it. A checkpoint can be used any number of
// times; each use wraps the previous one.
func (p *Parser) startAt(cp Checkpoint) *Marker {
	if p.events[cp.pos].kind == evPlaceholder {
		if _, taken := p.open[cp.pos]; !taken {
			return p.track(cp.pos)
		}
	}
	return p.wrap(cp.pos)
}

// wrap appends a new placeholder and links it as the outermost forward
// parent of the start event at pos.
func (p *Parser) wrap(pos int) *Marker {
	for p.events[pos].forwardParent != 0 {
		pos = p.events[pos].forwardParent
	}
	m := p.reserve()
	p.events[pos].forwardParent = m.pos
	return m
}

func (m *Marker) Complete(kind syntax.SyntaxKind) CompletedMarker {
	if m.done {
		panic(fmt.Sprintf("parser: marker at event %d completed twice", m.pos))
	}
	m.done = true
	delete(m.p.open, m.pos)
	ev := &m.p.events[m.pos]
	ev.kind = evStart
	ev.node = kind
	m.p.events = append(m.p.events, event{kind: evFinish})
	return CompletedMarker{p: m.p, pos: m.pos, kind: kind}
}

// Abandon releases the marker without creating a node. Its placeholder
// stays in the log and is skipped during replay.
func (m *Marker) Abandon() {
	if m.done {
		panic(fmt.Sprintf("parser: marker at event %d abandoned after use", m.pos))
	}
	m.done = true
	delete(m.p.open, m.pos)
}

func (c CompletedMarker) Kind() syntax.SyntaxKind { return c.kind }

// Precede opens a node that will wrap c.
func (c CompletedMarker) Precede() *Marker {
	return c.p.wrap(c.pos)
}

// checkBalanced panics if any marker is still open.
func (p *Parser) checkBalanced() {
	if len(p.open) == 0 {
		return
	}
	var positions []int
	for pos := range p.open {
		positions = append(positions, pos)
	}
	sort.Ints(positions)
	var sb strings.Builder
	for i, pos := range positions {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d", pos)
	}
	panic(fmt.Sprintf("parser: %d markers never completed (events %s)", len(positions), sb.String()))
}
