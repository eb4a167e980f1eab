package convert

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/forgecad/scadview/pkg/ast"
)

// Fallback parameter extraction: when a transform node reaches the
// converter without structured parameters (a known parser limitation for
// some call forms), its numeric arguments are recovered from the original
// source text at the node's byte-offset span. This is a side channel, not
// the steady-state path; it only activates when the context carries source
// text and the node carries a span.

// numberPattern matches signed decimal numbers.
var numberPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?(?:[eE][-+]?\d+)?`)

// callPattern matches "name ( ... )" capturing the argument text up to the
// first closing parenthesis.
func callPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(name + `\s*\(([^)]*)\)`)
}

// extractVectorFromSource slices the source at the node's span and pulls up
// to three numbers out of the named call's argument list. A single number
// is broadcast across all axes, matching scalar call forms.
func extractVectorFromSource(source string, span *ast.Span, name string) (ast.Vec3, bool) {
	text, ok := sliceSpan(source, span)
	if !ok {
		return ast.Vec3{}, false
	}
	m := callPattern(name).FindStringSubmatch(text)
	if m == nil {
		return ast.Vec3{}, false
	}
	nums := numberPattern.FindAllString(m[1], 3)
	if len(nums) == 0 {
		return ast.Vec3{}, false
	}
	var vals [3]float64
	for i, s := range nums {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return ast.Vec3{}, false
		}
		vals[i] = f
	}
	if len(nums) == 1 {
		return ast.Vec3{X: vals[0], Y: vals[0], Z: vals[0]}, true
	}
	return ast.Vec3{X: vals[0], Y: vals[1], Z: vals[2]}, true
}

// sliceSpan returns the source substring covered by the span.
func sliceSpan(source string, span *ast.Span) (string, bool) {
	if source == "" || span == nil {
		return "", false
	}
	start, end := span.Start.Offset, span.End.Offset
	if start < 0 || end > len(source) || start >= end {
		return "", false
	}
	return source[start:end], true
}

// identPattern matches a leading identifier.
var identPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_]*`)

// leadingIdentifier extracts the callee name when a call node's name field
// holds full call text such as "my_module(1, 2)".
func leadingIdentifier(s string) string {
	s = strings.TrimSpace(s)
	return identPattern.FindString(s)
}
