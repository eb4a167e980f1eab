package convert

import (
	"fmt"

	"github.com/forgecad/scadview/pkg/ast"
	"github.com/forgecad/scadview/pkg/kernel"
)

// Boolean converters convert every child in order first, then fold the
// results left-to-right: the first child seeds the accumulator. For union,
// children that degrade to the empty placeholder contribute nothing. For
// difference and intersection an empty first child empties the whole
// result, since every later child would subtract from or intersect with
// nothing; later empty children are skipped. A child that yields a bare 2D
// profile violates the 3D geometry invariant and aborts the whole
// operation. Partial results are never returned.

func (c *Converter) booleanHandler(op string) handler {
	return func(ctx *Context, n *ast.Node) (geometry, error) {
		return c.convertBoolean(ctx, n, op)
	}
}

func (c *Converter) convertBoolean(ctx *Context, n *ast.Node, op string) (geometry, error) {
	solids := make([]kernel.Solid, 0, len(n.Children))
	firstEmpty := false
	for i, child := range n.Children {
		g, err := c.convertNode(ctx, child)
		if err != nil {
			return emptyGeometry, fmt.Errorf("%s child %d: %w", op, i, err)
		}
		if err := validateBooleanOperand(g, op, i); err != nil {
			return emptyGeometry, err
		}
		if g.solid != nil {
			solids = append(solids, g.solid)
		} else if i == 0 {
			firstEmpty = true
		}
	}

	// A later operand must never slide into the accumulator seat: with no
	// first operand there is nothing to subtract from or intersect with.
	if firstEmpty && op != "union" {
		return emptyGeometry, nil
	}
	if len(solids) == 0 {
		return emptyGeometry, nil
	}
	// A single operand short-circuits to that child's geometry unchanged;
	// validation above has already run for it.
	acc := solids[0]
	for _, s := range solids[1:] {
		switch op {
		case "union":
			acc = c.kernel.Union(acc, s)
		case "intersection":
			acc = c.kernel.Intersection(acc, s)
		case "difference":
			acc = c.kernel.Difference(acc, s)
		}
	}
	return geometry{solid: acc}, nil
}

// validateBooleanOperand is the CSG preparation step: it runs even for a
// single-element child list so geometry invariants are checked up front.
// Placeholder (empty) children are legal and contribute nothing.
func validateBooleanOperand(g geometry, op string, index int) error {
	if g.solid == nil && g.profile != nil {
		return fmt.Errorf("%s child %d: geometry has no 3D position data (2D profile in a boolean operation)", op, index)
	}
	return nil
}
