package expr

import (
	"fmt"
	"strings"

	"github.com/dop251/goja"
)

// Program is a compiled integrand. It is immutable and may be shared by
// any number of runtimes.
type Program struct {
	source string
	prog   *goja.Program
}

// Compile parses an expression of x
func Compile(source string) (*Program, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrCompile)
	}

	wrapped := "(function (x) {\n\"use strict\";\nreturn (" + source + "\n);\n})"
	prog, err := goja.Compile("integrand", wrapped, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompile, err)
	}
	return &Program{source: source, prog: prog}, nil
}

// Source returns the expression as written
func (p *Program) Source() string {
	return p.source
}

func (p *Program) String() string {
	return p.source
}
