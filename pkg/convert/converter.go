// Package convert implements the AST-to-mesh conversion engine: a
// recursive, table-driven dispatcher that walks an OpenSCAD AST and
// produces boolean-combined solid geometry through an abstract kernel.
//
// Failure philosophy: unsupported or malformed individual nodes degrade to
// an empty placeholder so one bad subtree never aborts a whole scene;
// structural failures (unknown function or module names, invalid boolean
// operands, timeouts) propagate to the caller as typed failures.
package convert

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/forgecad/scadview/pkg/ast"
	"github.com/forgecad/scadview/pkg/kernel"
)

// geometry is the internal dispatch result: a 3D solid, a 2D profile, or
// neither (the empty placeholder every unsupported node degrades to).
type geometry struct {
	solid   kernel.Solid
	profile kernel.Profile
}

var emptyGeometry = geometry{}

// errWalkAbandoned unwinds an abandoned walk. It never reaches the caller;
// the abandoning ConvertNode has already reported the timeout.
var errWalkAbandoned = errors.New("conversion abandoned")

func (g geometry) isEmpty() bool {
	return g.solid == nil && g.profile == nil
}

// handler converts one node kind. Handlers recurse through
// Converter.convertNode, which is the continuation threaded through the
// whole tree.
type handler func(*Context, *ast.Node) (geometry, error)

// Converter routes AST nodes to kind-specific converters over a geometry
// kernel. A Converter is stateless apart from its kernel and logger and is
// safe for concurrent use with distinct Contexts.
type Converter struct {
	kernel   kernel.Kernel
	log      *zap.Logger
	handlers map[ast.Kind]handler
}

// New builds a Converter over the given kernel. A nil logger disables
// conversion logging.
func New(k kernel.Kernel, log *zap.Logger) *Converter {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Converter{kernel: k, log: log}
	c.handlers = map[ast.Kind]handler{
		ast.KindCube:     c.convertCube,
		ast.KindSphere:   c.convertSphere,
		ast.KindCylinder: c.convertCylinder,
		ast.KindCircle:   c.convertCircle,
		ast.KindSquare:   c.convertSquare,
		ast.KindPolygon:  c.convertPolygon,
		ast.KindText:     c.convertText,

		ast.KindTranslate: c.convertTranslate,
		ast.KindRotate:    c.convertRotate,
		ast.KindScale:     c.convertScale,
		ast.KindMirror:    c.convertMirror,

		ast.KindLinearExtrude: c.convertLinearExtrude,
		ast.KindRotateExtrude: c.convertRotateExtrude,

		ast.KindUnion:        c.booleanHandler("union"),
		ast.KindIntersection: c.booleanHandler("intersection"),
		ast.KindDifference:   c.booleanHandler("difference"),

		ast.KindModuleDefinition:    c.convertModuleDefinition,
		ast.KindModuleInstantiation: c.convertCall,
		ast.KindFunctionCall:        c.convertCall,

		ast.KindAssignment: c.convertAssignment,
		ast.KindAssign:     c.convertAssign,
		ast.KindIf:         c.convertIf,
		ast.KindForLoop:    c.convertForLoop,
		ast.KindExpression: c.convertExpression,
	}
	return c
}

// convertNode is the core dispatcher. Unrecognized kinds (polyhedron,
// offset, hull, minkowski, ...) return the empty placeholder rather than
// failing the tree.
func (c *Converter) convertNode(ctx *Context, n *ast.Node) (geometry, error) {
	if ctx.walkCanceled() {
		return emptyGeometry, errWalkAbandoned
	}
	if n == nil {
		return emptyGeometry, nil
	}
	if h, ok := c.handlers[n.Kind]; ok {
		return h(ctx, n)
	}
	c.log.Warn("unsupported node kind, using placeholder",
		zap.String("type", n.RawType))
	return emptyGeometry, nil
}

// convertChildren converts a node list in order, combining 3D results into
// an implicit union and 2D results into an implicit 2D union. Side effects
// of earlier siblings (assignments, module definitions) are visible to
// later siblings because children are converted strictly in sequence.
func (c *Converter) convertChildren(ctx *Context, children []*ast.Node) (geometry, error) {
	var out geometry
	for _, child := range children {
		g, err := c.convertNode(ctx, child)
		if err != nil {
			return emptyGeometry, err
		}
		out = c.merge(out, g)
	}
	return out, nil
}

// merge folds one child result into the running implicit union.
func (c *Converter) merge(acc, g geometry) geometry {
	if g.solid != nil {
		if acc.solid == nil {
			acc.solid = g.solid
		} else {
			acc.solid = c.kernel.Union(acc.solid, g.solid)
		}
	}
	if g.profile != nil {
		if acc.profile == nil {
			acc.profile = g.profile
		} else {
			acc.profile = c.kernel.Union2(acc.profile, g.profile)
		}
	}
	return acc
}

// nodeDataError reports a payload type mismatch. This indicates a decoding
// bug, not bad user input, so it is a hard error.
func nodeDataError(n *ast.Node, want string) error {
	return fmt.Errorf("%s node has %T payload, want %s", n.Kind, n.Data, want)
}
