package convert

import (
	"fmt"
	"sync"

	"github.com/forgecad/scadview/pkg/kernel"
)

// BoundingBox is an axis-aligned bounding box.
type BoundingBox struct {
	Min [3]float64 `json:"min"`
	Max [3]float64 `json:"max"`
}

// Size returns the per-axis extents.
func (b BoundingBox) Size() [3]float64 {
	return [3]float64{
		b.Max[0] - b.Min[0],
		b.Max[1] - b.Min[1],
		b.Max[2] - b.Min[2],
	}
}

// Metadata describes a converted mesh for the renderer and inspector.
type Metadata struct {
	ID            string      `json:"id"` // node type + index, stable per call
	NodeType      string      `json:"nodeType"`
	Index         int         `json:"index"`
	TriangleCount int         `json:"triangleCount"`
	VertexCount   int         `json:"vertexCount"`
	BoundingBox   BoundingBox `json:"boundingBox"`
	Color         string      `json:"color"`
	Opacity       float64     `json:"opacity"`
	Visible       bool        `json:"visible"`
}

// Mesh3D is the public conversion output: a renderer-ready mesh plus
// metadata and a disposal contract. Each successful conversion creates a
// brand-new Mesh3D; nothing is cached or reused across calls. The consumer
// must call Dispose exactly once to release the geometry; additional calls
// are no-ops.
type Mesh3D struct {
	Mesh     *kernel.Mesh `json:"mesh"`
	Metadata Metadata     `json:"metadata"`

	disposeOnce sync.Once
	dispose     func()
}

// Dispose releases the mesh geometry. Safe to call more than once; only the
// first call has an effect.
func (m *Mesh3D) Dispose() {
	m.disposeOnce.Do(func() {
		if m.dispose != nil {
			m.dispose()
		}
	})
}

// newMesh3D wraps a kernel mesh with metadata derived from the solid's
// bounding box and the conversion config.
func newMesh3D(mesh *kernel.Mesh, bbox BoundingBox, nodeType string, index int, cfg Config) *Mesh3D {
	m := &Mesh3D{
		Mesh: mesh,
		Metadata: Metadata{
			ID:            fmt.Sprintf("%s-%d", nodeType, index),
			NodeType:      nodeType,
			Index:         index,
			TriangleCount: mesh.TriangleCount(),
			VertexCount:   mesh.VertexCount(),
			BoundingBox:   bbox,
			Color:         cfg.Material.Color,
			Opacity:       cfg.Material.Opacity,
			Visible:       !mesh.IsEmpty(),
		},
	}
	m.dispose = mesh.Release
	return m
}
