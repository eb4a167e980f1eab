package convert

import (
	"fmt"

	"github.com/forgecad/scadview/pkg/ast"
	"github.com/forgecad/scadview/pkg/kernel"
)

// Extrusion converters convert the child subtree to a 2D profile and sweep
// it. A 3D child is a script error and fails hard; an empty child degrades
// to the placeholder.

func (c *Converter) extrudeProfile(ctx *Context, n *ast.Node, what string) (kernel.Profile, error) {
	child, err := c.convertChildren(ctx, n.Children)
	if err != nil {
		return nil, err
	}
	if child.profile == nil {
		if child.solid != nil {
			return nil, fmt.Errorf("%s requires a 2D child profile, got 3D geometry", what)
		}
		return nil, nil
	}
	return child.profile, nil
}

func (c *Converter) convertLinearExtrude(ctx *Context, n *ast.Node) (geometry, error) {
	data, ok := n.Data.(ast.LinearExtrudeData)
	if !ok {
		return emptyGeometry, nodeDataError(n, "LinearExtrudeData")
	}
	if data.Height <= 0 {
		return emptyGeometry, fmt.Errorf("linear_extrude: height must be positive, got %g", data.Height)
	}
	profile, err := c.extrudeProfile(ctx, n, "linear_extrude")
	if err != nil {
		return emptyGeometry, err
	}
	if profile == nil {
		return emptyGeometry, nil
	}
	solid, err := c.kernel.LinearExtrude(profile, kernel.ExtrudeOptions{
		Height: data.Height,
		Center: data.Center,
		Twist:  data.Twist,
		ScaleX: data.ScaleTop.X,
		ScaleY: data.ScaleTop.Y,
		Slices: data.Slices,
	})
	if err != nil {
		return emptyGeometry, err
	}
	return geometry{solid: solid}, nil
}

func (c *Converter) convertRotateExtrude(ctx *Context, n *ast.Node) (geometry, error) {
	data, ok := n.Data.(ast.RotateExtrudeData)
	if !ok {
		return emptyGeometry, nodeDataError(n, "RotateExtrudeData")
	}
	angle := data.Angle
	if angle == 0 {
		angle = 360 // omitted angle means a full revolution
	}
	profile, err := c.extrudeProfile(ctx, n, "rotate_extrude")
	if err != nil {
		return emptyGeometry, err
	}
	if profile == nil {
		return emptyGeometry, nil
	}
	solid, err := c.kernel.RotateExtrude(profile, angle)
	if err != nil {
		return emptyGeometry, err
	}
	return geometry{solid: solid}, nil
}
