// Package diag implements the typed diagnostic taxonomy: compile errors,
// warnings, notes, and hints carrying source position, collected in a
// Bag so the CLI can print every diagnostic before exiting.
package diag

import "fmt"

// Kind classifies a Diagnostic's severity.
type Kind int

const (
	Error Kind = iota
	Warning
	Note
	Help
)

func (k Kind) String() string {
	switch k {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	case Help:
		return "help"
	default:
		return "unknown"
	}
}

// Diagnostic is one typed compile message with source position.
type Diagnostic struct {
	Kind    Kind
	Path    string
	Line    int
	Column  int
	Message string
}

func (d Diagnostic) String() string {
	if d.Path == "" {
		return fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s", d.Path, d.Line, d.Column, d.Kind, d.Message)
}

// Bag collects diagnostics across a compile.
type Bag struct {
	items []Diagnostic
}

// Add appends a diagnostic.
func (b *Bag) Add(d Diagnostic) { b.items = append(b.items, d) }

// Errorf appends an Error-kind diagnostic at path:line:col.
func (b *Bag) Errorf(path string, line, col int, format string, args ...any) {
	b.Add(Diagnostic{Kind: Error, Path: path, Line: line, Column: col, Message: fmt.Sprintf(format, args...)})
}

// Warnf appends a Warning-kind diagnostic.
func (b *Bag) Warnf(path string, line, col int, format string, args ...any) {
	b.Add(Diagnostic{Kind: Warning, Path: path, Line: line, Column: col, Message: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether any collected diagnostic is Error-kind.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Kind == Error {
			return true
		}
	}
	return false
}

// All returns every collected diagnostic, in insertion order.
func (b *Bag) All() []Diagnostic { return b.items }

// Len reports how many diagnostics have been collected.
func (b *Bag) Len() int { return len(b.items) }
