package format

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/danue1/danube/ast/owned"
	"github.com/danue1/danube/intern"
)

// Lowered output formats.
const (
	SExpr = "sexpr"
	JSON  = "json"
	YAML  = "yaml"
)

// LoweredEncoder writes a lowered file in one of the formats above.
type LoweredEncoder struct {
	w      io.Writer
	in     *intern.Interner
	format string
}

func NewLoweredEncoder(w io.Writer, in *intern.Interner, format string) (*LoweredEncoder, error) {
	switch format {
	case SExpr, JSON, YAML:
	default:
		return nil, fmt.Errorf("unknown format %q (want %s, %s or %s)", format, SExpr, JSON, YAML)
	}
	return &LoweredEncoder{w: w, in: in, format: format}, nil
}

func (e *LoweredEncoder) Encode(file *owned.SourceFile) error {
	text, err := e.MarshalText(file)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LoweredEncoder) MarshalText(file *owned.SourceFile) ([]byte, error) {
	term := owned.ToTerm(file, e.in)
	switch e.format {
	case JSON:
		data, err := json.MarshalIndent(term, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case YAML:
		return yaml.Marshal(term)
	}
	return []byte(term.String() + "\n"), nil
}
