package convert

import (
	"go.uber.org/zap"

	"github.com/forgecad/scadview/pkg/ast"
)

// Transform converters recursively convert the child subtree, then apply
// the affine transform to the result. Parameter extraction is layered:
// structured payload first, then regex extraction from the original source
// text at the node's span, then an identity fallback — a malformed
// transform never fails the tree.

func (c *Converter) convertTranslate(ctx *Context, n *ast.Node) (geometry, error) {
	v := c.transformVector(ctx, n, "translate", func() (ast.Vec3, bool) {
		d, ok := n.Data.(ast.TranslateData)
		return d.Vector, ok
	})
	child, err := c.convertChildren(ctx, n.Children)
	if err != nil {
		return emptyGeometry, err
	}
	if child.isEmpty() {
		return emptyGeometry, nil
	}
	if child.solid != nil {
		child.solid = c.kernel.Translate(child.solid, v.X, v.Y, v.Z)
	}
	if child.profile != nil {
		child.profile = c.kernel.Translate2(child.profile, v.X, v.Y)
	}
	return child, nil
}

func (c *Converter) convertRotate(ctx *Context, n *ast.Node) (geometry, error) {
	v := c.transformVector(ctx, n, "rotate", func() (ast.Vec3, bool) {
		d, ok := n.Data.(ast.RotateData)
		return d.Angles, ok
	})
	child, err := c.convertChildren(ctx, n.Children)
	if err != nil {
		return emptyGeometry, err
	}
	if child.isEmpty() {
		return emptyGeometry, nil
	}
	if child.solid != nil {
		child.solid = c.kernel.Rotate(child.solid, v.X, v.Y, v.Z)
	}
	if child.profile != nil {
		// A 2D child only has a meaningful in-plane rotation.
		child.profile = c.kernel.Rotate2(child.profile, v.Z)
	}
	return child, nil
}

func (c *Converter) convertScale(ctx *Context, n *ast.Node) (geometry, error) {
	v := c.transformVector(ctx, n, "scale", func() (ast.Vec3, bool) {
		d, ok := n.Data.(ast.ScaleData)
		return d.Factors, ok
	})
	// Zero factors would make the transform singular.
	if v.X == 0 {
		v.X = 1
	}
	if v.Y == 0 {
		v.Y = 1
	}
	if v.Z == 0 {
		v.Z = 1
	}
	child, err := c.convertChildren(ctx, n.Children)
	if err != nil {
		return emptyGeometry, err
	}
	if child.isEmpty() {
		return emptyGeometry, nil
	}
	if child.solid != nil {
		child.solid = c.kernel.Scale(child.solid, v.X, v.Y, v.Z)
	}
	if child.profile != nil {
		child.profile = c.kernel.Scale2(child.profile, v.X, v.Y)
	}
	return child, nil
}

func (c *Converter) convertMirror(ctx *Context, n *ast.Node) (geometry, error) {
	v := c.transformVector(ctx, n, "mirror", func() (ast.Vec3, bool) {
		d, ok := n.Data.(ast.MirrorData)
		return d.Normal, ok
	})
	child, err := c.convertChildren(ctx, n.Children)
	if err != nil {
		return emptyGeometry, err
	}
	if child.isEmpty() {
		return emptyGeometry, nil
	}
	if child.solid != nil {
		child.solid = c.kernel.Mirror(child.solid, v.X, v.Y, v.Z)
	}
	if child.profile != nil {
		sx, sy := 1.0, 1.0
		if v.X != 0 {
			sx = -1
		}
		if v.Y != 0 {
			sy = -1
		}
		child.profile = c.kernel.Scale2(child.profile, sx, sy)
	}
	return child, nil
}

// transformVector resolves a transform's numeric arguments: structured
// payload, then source-text extraction, then the zero vector (identity for
// translate/rotate/mirror; scale remaps zero to one).
func (c *Converter) transformVector(ctx *Context, n *ast.Node, name string, structured func() (ast.Vec3, bool)) ast.Vec3 {
	if v, ok := structured(); ok {
		return v
	}
	if v, ok := extractVectorFromSource(ctx.Source(), n.Span, name); ok {
		c.log.Debug("transform parameters recovered from source text",
			zap.String("transform", name))
		return v
	}
	c.log.Warn("transform parameters unavailable, applying identity",
		zap.String("transform", name))
	return ast.Vec3{}
}
