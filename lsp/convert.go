package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/danue1/danube/diag"
	"github.com/danue1/danube/source"
)

// position converts a byte offset into an LSP position, whose character
// counts UTF-16 code units.
func position(lines *source.LineIndex, offset int) protocol.Position {
	pos := lines.Position(offset)
	text := lines.LineText(pos.Line)
	prefix := text[:min(pos.Column-1, len(text))]
	var units int
	for _, r := range prefix {
		if r >= 0x10000 {
			units += 2
		} else {
			units++
		}
	}
	return protocol.Position{
		Line:      protocol.UInteger(pos.Line - 1),
		Character: protocol.UInteger(units),
	}
}

// offset is the inverse of position.
func offset(lines *source.LineIndex, pos protocol.Position) int {
	line := int(pos.Line) + 1
	text := lines.LineText(line)
	units := int(pos.Character)
	i := 0
	for units > 0 && i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r >= 0x10000 {
			units -= 2
		} else {
			units--
		}
		i += size
	}
	return lines.Offset(line, i+1)
}

func toRange(lines *source.LineIndex, span source.Span) protocol.Range {
	return protocol.Range{
		Start: position(lines, span.Start),
		End:   position(lines, span.End),
	}
}

func toDiagnostic(lines *source.LineIndex, d diag.Diagnostic) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	switch d.Severity {
	case diag.Warning:
		severity = protocol.DiagnosticSeverityWarning
	case diag.Info:
		severity = protocol.DiagnosticSeverityInformation
	}
	src := lsName
	return protocol.Diagnostic{
		Range:    toRange(lines, d.Span),
		Severity: &severity,
		Source:   &src,
		Message:  d.Message,
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func pathToURI(path string) string {
	if strings.Contains(path, "://") {
		return path
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func boolPtr(b bool) *bool {
	return &b
}
