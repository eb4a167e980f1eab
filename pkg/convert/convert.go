package convert

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/forgecad/scadview/pkg/ast"
	"github.com/forgecad/scadview/pkg/kernel"
	"github.com/forgecad/scadview/pkg/result"
)

// ErrComplexity is wrapped into conversion failures whose mesh exceeded the
// configured triangle ceiling.
var ErrComplexity = errors.New("mesh exceeds complexity limit")

// convertOutcome passes one node's result through the conversion goroutine.
type convertOutcome struct {
	mesh *Mesh3D
	err  error
}

// ConvertNode converts a single AST node into a renderer-ready mesh under
// the configured timeout. The conversion, including tessellation, runs in a
// worker goroutine: a panic inside the kernel or the walker surfaces as a
// failure, never as a crash.
//
// Abandonment contract: the walk phase mutates the context (scope, module
// registry), so on timeout the worker is told to abandon and ConvertNode
// blocks until the walk has actually stopped before returning -- the
// context is safe to reuse for the next node the moment this returns. The
// tessellation phase only reads the context, so a worker still tessellating
// is left behind; its late result lands in the buffered channel and is
// garbage collected.
//
// Cancellation of ctx aborts the same way.
func (c *Converter) ConvertNode(ctx context.Context, cc *Context, n *ast.Node, index int) result.Result[*Mesh3D] {
	cc.armWalk()
	ch := make(chan convertOutcome, 1)
	walkDone := make(chan struct{})

	go func() {
		walkEnded := false
		endWalk := func() {
			if !walkEnded {
				walkEnded = true
				close(walkDone)
			}
		}
		defer func() {
			if r := recover(); r != nil {
				endWalk()
				ch <- convertOutcome{err: fmt.Errorf("panic during conversion: %v", r)}
			}
		}()

		g, err := c.convertNode(cc, n)
		endWalk()
		if err != nil {
			ch <- convertOutcome{err: err}
			return
		}
		mesh, err := c.buildMesh3D(cc, g, n, index)
		ch <- convertOutcome{mesh: mesh, err: err}
	}()

	timer := time.NewTimer(cc.Config.Timeout)
	defer timer.Stop()

	select {
	case out := <-ch:
		if out.err != nil {
			return result.Err[*Mesh3D](out.err.Error())
		}
		return result.Ok(out.mesh)
	case <-timer.C:
		cc.cancelWalk()
		<-walkDone
		return result.Err[*Mesh3D](fmt.Sprintf("conversion timed out after %s", cc.Config.Timeout))
	case <-ctx.Done():
		cc.cancelWalk()
		<-walkDone
		return result.Err[*Mesh3D](fmt.Sprintf("conversion canceled: %v", ctx.Err()))
	}
}

// NodeError records a per-node failure from a best-effort program pass.
type NodeError struct {
	Index    int    `json:"index"`
	NodeType string `json:"nodeType"`
	Message  string `json:"message"`
}

// ConvertProgram converts each top-level node independently, best-effort:
// a failing node contributes a NodeError while the rest of the program still
// produces meshes. Scope and module state accumulate across nodes in order,
// so definitions and assignments affect everything after them.
func (c *Converter) ConvertProgram(ctx context.Context, cc *Context, nodes []*ast.Node) ([]*Mesh3D, []NodeError) {
	var meshes []*Mesh3D
	var errs []NodeError

	for i, n := range nodes {
		res := c.ConvertNode(ctx, cc, n, i)
		if !res.IsOk() {
			c.log.Warn("node conversion failed",
				zap.Int("index", i),
				zap.String("type", n.RawType),
				zap.String("error", res.ErrMsg()))
			errs = append(errs, NodeError{Index: i, NodeType: n.RawType, Message: res.ErrMsg()})
			continue
		}
		meshes = append(meshes, res.Value())
	}
	return meshes, errs
}

// ConvertUnion converts a whole program into a single combined mesh: all
// top-level geometry is folded into one implicit union and tessellated once.
// The entire pass shares one timeout.
func (c *Converter) ConvertUnion(ctx context.Context, cc *Context, nodes []*ast.Node) result.Result[*Mesh3D] {
	root := &ast.Node{Kind: ast.KindUnion, RawType: "union", Children: nodes}
	return c.ConvertNode(ctx, cc, root, 0)
}

// buildMesh3D tessellates a dispatch result into the public mesh type.
// Empty geometry yields an invisible placeholder mesh; a bare 2D profile at
// the top level is logged and degraded the same way, since the renderer only
// draws solids.
func (c *Converter) buildMesh3D(cc *Context, g geometry, n *ast.Node, index int) (*Mesh3D, error) {
	nodeType := n.RawType
	if nodeType == "" {
		nodeType = n.Kind.String()
	}

	if g.solid == nil {
		if g.profile != nil {
			c.log.Warn("2D profile reached top level without extrusion, using placeholder",
				zap.String("type", nodeType))
		}
		return newMesh3D(&kernel.Mesh{}, BoundingBox{}, nodeType, index, cc.Config), nil
	}

	mesh, err := c.kernel.ToMesh(g.solid, cc.Config.MeshCells)
	if err != nil {
		return nil, fmt.Errorf("tessellating %s: %w", nodeType, err)
	}
	if tc := mesh.TriangleCount(); tc > cc.Config.MaxComplexity {
		mesh.Release()
		return nil, fmt.Errorf("%w: %d triangles, limit %d", ErrComplexity, tc, cc.Config.MaxComplexity)
	}

	min, max := g.solid.BoundingBox()
	return newMesh3D(mesh, BoundingBox{Min: min, Max: max}, nodeType, index, cc.Config), nil
}
