package parser

import (
	"fmt"

	"github.com/danue1/danube/lexer"
	"github.com/danue1/danube/syntax"
)

// finalize replays the event log into a green tree. Token events consume
// significant tokens in order; trivia between them is emitted as leaves of
// the innermost node open at that point, except that trivia in front of a
// node start goes to the enclosing node and trivia after the last token
// goes to the root.
func finalize(events []event, tokens []lexer.Token, src string) *syntax.GreenNode {
	b := syntax.NewBuilder()
	pos := 0
	depth := 0
	var kinds []syntax.SyntaxKind

	flushTrivia := func() {
		for pos < len(tokens) && tokens[pos].Kind.IsTrivia() {
			tok := tokens[pos]
			b.Token(syntax.TokenKind(tok.Kind), tok.Text(src))
			pos++
		}
	}

	for i := range events {
		ev := events[i]
		switch ev.kind {
		case evPlaceholder:
			continue

		case evStart:
			kinds = append(kinds[:0], ev.node)
			for fp := ev.forwardParent; fp != 0; {
				parent := events[fp]
				if parent.kind == evStart {
					kinds = append(kinds, parent.node)
				}
				events[fp] = event{kind: evPlaceholder}
				fp = parent.forwardParent
			}
			if depth > 0 {
				flushTrivia()
			}
			for j := len(kinds) - 1; j >= 0; j-- {
				b.StartNode(kinds[j])
				depth++
			}

		case evToken:
			flushTrivia()
			if pos >= len(tokens) || tokens[pos].Kind == lexer.EOF {
				panic("parser: token event past end of input")
			}
			tok := tokens[pos]
			b.Token(syntax.TokenKind(tok.Kind), tok.Text(src))
			pos++

		case evFinish:
			if depth == 1 {
				flushTrivia()
				if pos < len(tokens) && tokens[pos].Kind != lexer.EOF {
					panic(fmt.Sprintf("parser: token %v at %v never consumed", tokens[pos].Kind, tokens[pos].Span))
				}
			}
			b.FinishNode()
			depth--
		}
	}
	return b.Finish()
}
