// Package preprocess locates and splices the embedded quantum program
// block inside a classical host source file, grounded on
// original_source/cli/src/preprocessor.rs's EmbeddedStateqSource. It
// does not parse the host language itself: it only finds the
// "@stateq { … }" label, matches braces by counting, and later splices
// compiled host source back into the same span.
package preprocess

import (
	"fmt"
	"strings"
)

// HostLanguage identifies the classical language a quantum block is
// embedded in. It determines only the suffix of emitted output, never
// the grammar used to parse the surrounding source.
type HostLanguage int

const (
	C HostLanguage = iota
	Cpp
	Java
	Rust
	Python
)

// Extension returns the file suffix associated with a host language.
func (h HostLanguage) Extension() string {
	switch h {
	case C:
		return "c"
	case Cpp:
		return "cpp"
	case Java:
		return "java"
	case Rust:
		return "rs"
	case Python:
		return "py"
	default:
		return ""
	}
}

// HostLanguageFromExtension maps a bare file extension (no leading
// dot) to the host language it implies. ok is false for any extension
// this system does not support splicing into.
func HostLanguageFromExtension(ext string) (lang HostLanguage, ok bool) {
	switch ext {
	case "c":
		return C, true
	case "cpp":
		return Cpp, true
	case "java":
		return Java, true
	case "rs":
		return Rust, true
	case "py":
		return Python, true
	default:
		return 0, false
	}
}

const label = "@stateq"

// EmbeddedSource holds a host source file with exactly one located
// "@stateq { … }" region, ready to have its enclosed text read out and
// later overwritten with compiled host source.
type EmbeddedSource struct {
	hostLanguage HostLanguage
	source       string
	labelLoc     int
	tokenBegin   int
	tokenEnd     int
}

// New locates the single @stateq block in source. It returns an error
// rather than panicking (unlike the original's expect()-driven parser)
// so the CLI can fold this into its own diagnostic reporting.
func New(hostLanguage HostLanguage, source string) (*EmbeddedSource, error) {
	labelLoc := strings.Index(source, label)
	if labelLoc < 0 {
		return nil, fmt.Errorf("preprocess: no %s block found", label)
	}

	braceOffset := strings.IndexByte(source[labelLoc:], '{')
	if braceOffset < 0 {
		return nil, fmt.Errorf("preprocess: no opening brace found after %s", label)
	}
	tokenBegin := labelLoc + braceOffset

	braceCount := 1
	for i := tokenBegin + 1; i < len(source); i++ {
		switch source[i] {
		case '{':
			braceCount++
		case '}':
			braceCount--
		}
		if braceCount == 0 {
			return &EmbeddedSource{
				hostLanguage: hostLanguage,
				source:       source,
				labelLoc:     labelLoc,
				tokenBegin:   tokenBegin,
				tokenEnd:     i,
			}, nil
		}
	}
	return nil, fmt.Errorf("preprocess: unbalanced braces in %s block", label)
}

// HostLanguage reports the host language this block was located in.
func (e *EmbeddedSource) HostLanguage() HostLanguage { return e.hostLanguage }

// EmbeddedSource returns the text strictly between the matched braces.
func (e *EmbeddedSource) EmbeddedSource() string {
	return e.source[e.tokenBegin+1 : e.tokenEnd]
}

// ReplaceEmbeddedSource splices newSource in place of the original
// @stateq{...} block (braces included) and returns the full host file.
func (e *EmbeddedSource) ReplaceEmbeddedSource(newSource string) string {
	var b strings.Builder
	b.WriteString(e.source[:e.labelLoc])
	b.WriteString(newSource)
	b.WriteString(e.source[e.tokenEnd+1:])
	return b.String()
}
