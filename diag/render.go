package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/danue1/danube/source"
)

// Styles holds the lipgloss styles used by Renderer.
type Styles struct {
	Error      lipgloss.Style
	Warning    lipgloss.Style
	Info       lipgloss.Style
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	Message    lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style
	Dim        lipgloss.Style
}

func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &Styles{
			Error:      plain,
			Warning:    plain,
			Info:       plain,
			FilePath:   plain,
			Location:   plain,
			Message:    plain,
			SourceLine: plain,
			Caret:      plain,
			Dim:        plain,
		}
	}
	return &Styles{
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Info:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		FilePath:   lipgloss.NewStyle().Bold(true),
		Location:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Message:    lipgloss.NewStyle(),
		SourceLine: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Caret:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// ColorEnabled resolves a colour mode ("auto", "always", "never") against
// the writer. Auto enables colour only for terminals and honours NO_COLOR.
func ColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// Renderer prints diagnostics against the text they refer to:
//
//	main.dn:3:9  error  expected ';'
//	        let x = 1
//	                 ^
type Renderer struct {
	styles  *Styles
	context bool
}

func NewRenderer(styles *Styles, showContext bool) *Renderer {
	return &Renderer{styles: styles, context: showContext}
}

func (r *Renderer) Render(w io.Writer, file, text string, ds []Diagnostic) error {
	lines := source.NewLineIndex(text)
	for _, d := range ds {
		if _, err := io.WriteString(w, r.Format(lines, file, d)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) Format(lines *source.LineIndex, file string, d Diagnostic) string {
	var sb strings.Builder
	if d.File != "" {
		file = d.File
	}
	if file == "" {
		file = "<input>"
	}
	pos := lines.Position(d.Span.Start)
	fmt.Fprintf(&sb, "%s%s  %s  %s\n",
		r.styles.FilePath.Render(file),
		r.styles.Location.Render(":"+pos.String()),
		r.severity(d.Severity),
		r.styles.Message.Render(d.Message),
	)
	if !r.context {
		return sb.String()
	}
	const indent = "        "
	line := lines.LineText(pos.Line)
	sb.WriteString(indent + r.styles.SourceLine.Render(line) + "\n")
	width := 1
	if end := lines.Position(d.Span.End); end.Line == pos.Line && end.Column > pos.Column {
		width = end.Column - pos.Column
	}
	sb.WriteString(indent + strings.Repeat(" ", pos.Column-1) + r.styles.Caret.Render(strings.Repeat("^", width)) + "\n")
	return sb.String()
}

func (r *Renderer) severity(s Severity) string {
	switch s {
	case Error:
		return r.styles.Error.Render(s.String())
	case Warning:
		return r.styles.Warning.Render(s.String())
	}
	return r.styles.Info.Render(s.String())
}

// Summary renders "N errors, M warnings" for the given diagnostics.
func (r *Renderer) Summary(ds []Diagnostic) string {
	var errs, warns int
	for _, d := range ds {
		switch d.Severity {
		case Error:
			errs++
		case Warning:
			warns++
		}
	}
	return r.styles.Dim.Render(fmt.Sprintf("%d %s, %d %s", errs, plural(errs, "error"), warns, plural(warns, "warning")))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
