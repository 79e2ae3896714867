// Package expr compiles CEL expressions into row predicates for the
// expression-filter mode. The record under test is bound to the variable
// `_`, so filters read like `_.dept == "eng" && _.name.startsWith("A")`.
package expr

import (
	"fmt"

	"github.com/google/cel-go/cel"
	celext "github.com/google/cel-go/ext"

	"github.com/oakwood-commons/gridx/pkg/grid"
)

// Predicate is a compiled row filter. Compile once per expression edit,
// evaluate once per record.
type Predicate struct {
	src string
	prg cel.Program
}

// newEnv creates the CEL environment with the common extension libraries
// enabled so expressions get strings, lists, and math helpers.
func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("_", cel.DynType),
		celext.Strings(),
		celext.Encoders(),
		celext.Lists(),
		celext.Math(),
	)
}

// Compile parses and type-checks a CEL expression. Compilation errors are
// returned to the caller (they are user input errors); evaluation errors
// later degrade to non-match instead.
func Compile(src string) (*Predicate, error) {
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	ast, issues := env.Compile(src)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}

	return &Predicate{src: src, prg: prg}, nil
}

// Source returns the original expression text.
func (p *Predicate) Source() string { return p.src }

// Eval evaluates the predicate against one record. Any evaluation error
// (missing field, type mismatch) and any non-boolean result count as a
// non-match; the pipeline never aborts on a bad row.
func (p *Predicate) Eval(rec grid.Record) bool {
	out, _, err := p.prg.Eval(map[string]any{
		"_": map[string]any(rec),
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}

// Func adapts the predicate to the session's SetPredicate hook.
func (p *Predicate) Func() func(grid.Record) bool {
	return p.Eval
}
