package convert

import (
	"go.uber.org/zap"

	"github.com/forgecad/scadview/pkg/ast"
)

// Primitive converters are terminal: they never recurse. Degenerate
// parameters fall back to the OpenSCAD defaults (unit sizes) so a sloppy
// script still produces visible geometry.

func (c *Converter) convertCube(ctx *Context, n *ast.Node) (geometry, error) {
	data, ok := n.Data.(ast.CubeData)
	if !ok {
		return emptyGeometry, nodeDataError(n, "CubeData")
	}
	size := data.Size
	if size.IsZero() {
		size = ast.Vec3{X: 1, Y: 1, Z: 1} // cube() with no size
	}
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		c.log.Warn("cube with non-positive dimension, using placeholder",
			zap.Float64("x", size.X), zap.Float64("y", size.Y), zap.Float64("z", size.Z))
		return emptyGeometry, nil
	}
	return geometry{solid: c.kernel.Box(size.X, size.Y, size.Z, data.Center)}, nil
}

func (c *Converter) convertSphere(ctx *Context, n *ast.Node) (geometry, error) {
	data, ok := n.Data.(ast.SphereData)
	if !ok {
		return emptyGeometry, nodeDataError(n, "SphereData")
	}
	r := data.Radius
	if r <= 0 {
		r = 1
	}
	return geometry{solid: c.kernel.Sphere(r, data.Segments)}, nil
}

func (c *Converter) convertCylinder(ctx *Context, n *ast.Node) (geometry, error) {
	data, ok := n.Data.(ast.CylinderData)
	if !ok {
		return emptyGeometry, nodeDataError(n, "CylinderData")
	}
	h := data.Height
	if h <= 0 {
		h = 1
	}
	r1, r2 := data.R1, data.R2
	if r1 <= 0 && r2 <= 0 {
		r1, r2 = 1, 1
	}
	return geometry{solid: c.kernel.Cylinder(h, r1, r2, data.Center, data.Segments)}, nil
}

func (c *Converter) convertCircle(ctx *Context, n *ast.Node) (geometry, error) {
	data, ok := n.Data.(ast.CircleData)
	if !ok {
		return emptyGeometry, nodeDataError(n, "CircleData")
	}
	r := data.Radius
	if r <= 0 {
		r = 1
	}
	return geometry{profile: c.kernel.Circle(r, data.Segments)}, nil
}

func (c *Converter) convertSquare(ctx *Context, n *ast.Node) (geometry, error) {
	data, ok := n.Data.(ast.SquareData)
	if !ok {
		return emptyGeometry, nodeDataError(n, "SquareData")
	}
	size := data.Size
	if size.X <= 0 || size.Y <= 0 {
		size = ast.Vec2{X: 1, Y: 1}
	}
	return geometry{profile: c.kernel.Square(size.X, size.Y, data.Center)}, nil
}

func (c *Converter) convertPolygon(ctx *Context, n *ast.Node) (geometry, error) {
	data, ok := n.Data.(ast.PolygonData)
	if !ok {
		return emptyGeometry, nodeDataError(n, "PolygonData")
	}
	pts := make([][2]float64, 0, len(data.Points))
	for _, p := range data.Points {
		pts = append(pts, [2]float64{p.X, p.Y})
	}
	profile, err := c.kernel.Polygon(pts)
	if err != nil {
		// A degenerate polygon degrades rather than failing the tree.
		c.log.Warn("invalid polygon, using placeholder", zap.Error(err))
		return emptyGeometry, nil
	}
	return geometry{profile: profile}, nil
}

func (c *Converter) convertText(ctx *Context, n *ast.Node) (geometry, error) {
	data, ok := n.Data.(ast.TextData)
	if !ok {
		return emptyGeometry, nodeDataError(n, "TextData")
	}
	if data.Text == "" {
		return emptyGeometry, nil
	}
	return geometry{profile: c.kernel.Text(data.Text, data.Size)}, nil
}
