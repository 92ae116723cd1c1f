// Package sketch renders transition sequences as program-sketch text.
// Rendering is purely presentational; it has no effect on search
// correctness.
package sketch

import (
	"fmt"
	"strings"
)

// Call renders one component application as a call expression with
// positional placeholder arguments: Call("add", 2) is "add(x_1, x_2)".
func Call(name string, arity int) string {
	args := make([]string, arity)
	for i := range args {
		args[i] = fmt.Sprintf("x_%d", i+1)
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(args, ", "))
}

// Emit renders each transition of a path as a call expression, using the
// arity table to size the argument list. Transitions missing from the
// table render with no arguments.
func Emit(path []string, arities map[string]int) []string {
	calls := make([]string, len(path))
	for i, name := range path {
		calls[i] = Call(name, arities[name])
	}
	return calls
}

// Render joins the emitted calls into one sketch, one application per line.
func Render(path []string, arities map[string]int) string {
	return strings.Join(Emit(path, arities), "\n")
}
