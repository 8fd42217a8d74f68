package bitbake

import (
	"fmt"
	"strings"
)

// Op is a BitBake variable assignment operator
type Op string

// Supported assignment operators. The overlay vocabulary is deliberately
// small; anything fancier belongs in a real recipe, not a generated append.
const (
	// OpSet is plain assignment: KEY = "value"
	OpSet Op = "="

	// OpAppend is immediate list append with a leading space: KEY += "value"
	OpAppend Op = "+="
)

// Statement is a single line of generated BitBake configuration,
// either a variable assignment or a varflag assignment.
type Statement struct {
	// Key is the variable name, optionally with an override suffix
	// (e.g. "DISTRO_FEATURES:append") or a varflag (e.g.
	// "do_testimage[depends]").
	Key string

	// Op is the assignment operator
	Op Op

	// Value is the unquoted right-hand side
	Value string
}

// Set builds a plain assignment statement
func Set(key, value string) Statement {
	return Statement{Key: key, Op: OpSet, Value: value}
}

// Append builds a += statement
func Append(key, value string) Statement {
	return Statement{Key: key, Op: OpAppend, Value: value}
}

// Render serializes the statement as a single BitBake configuration line
func (s Statement) Render() string {
	return fmt.Sprintf("%s %s \"%s\"", s.Key, s.Op, s.Value)
}

// RenderAll serializes statements into bbappend file content,
// one statement per line with a trailing newline
func RenderAll(statements []Statement) string {
	var b strings.Builder
	for _, s := range statements {
		b.WriteString(s.Render())
		b.WriteString("\n")
	}
	return b.String()
}
