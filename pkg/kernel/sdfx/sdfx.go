// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/forgecad/scadview/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// defaultMeshCells controls marching cubes tessellation resolution when the
// caller does not request a specific cell count.
const defaultMeshCells = 128

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// sdfxProfile wraps an sdf.SDF2 to implement kernel.Profile.
type sdfxProfile struct {
	s sdf.SDF2
}

// BoundingBox returns the axis-aligned 2D bounding box.
func (p *sdfxProfile) BoundingBox() (min, max [2]float64) {
	bb := p.s.BoundingBox()
	min = [2]float64{bb.Min.X, bb.Min.Y}
	max = [2]float64{bb.Max.X, bb.Max.Y}
	return min, max
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct{}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{}
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

func unwrap2(p kernel.Profile) sdf.SDF2 {
	return p.(*sdfxProfile).s
}

func wrap2(s sdf.SDF2) kernel.Profile {
	return &sdfxProfile{s: s}
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// ---------------------------------------------------------------------------
// 3D primitives
// ---------------------------------------------------------------------------

// Box creates a box. OpenSCAD places the minimum corner at the origin
// unless center is true; sdf.Box3D centers the box, so the uncentered form
// is shifted by half-dimensions.
func (k *SdfxKernel) Box(x, y, z float64, center bool) kernel.Solid {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Box3D: %v", err))
	}
	if !center {
		m := sdf.Translate3d(v3.Vec{X: x / 2, Y: y / 2, Z: z / 2})
		s = sdf.Transform3D(s, m)
	}
	return wrap(s)
}

// Sphere creates an origin-centered sphere. The segments parameter is
// ignored since SDF represents smooth surfaces.
func (k *SdfxKernel) Sphere(radius float64, segments int) kernel.Solid {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Sphere3D: %v", err))
	}
	return wrap(s)
}

// Cylinder creates a cylinder, or a cone when r1 != r2. The base sits at
// z=0 unless center is true.
func (k *SdfxKernel) Cylinder(height, r1, r2 float64, center bool, segments int) kernel.Solid {
	var s sdf.SDF3
	var err error
	if r1 == r2 {
		s, err = sdf.Cylinder3D(height, r1, 0)
	} else {
		s, err = sdf.Cone3D(height, r1, r2, 0)
	}
	if err != nil {
		panic(fmt.Sprintf("sdfx cylinder: %v", err))
	}
	if !center {
		s = sdf.Transform3D(s, sdf.Translate3d(v3.Vec{Z: height / 2}))
	}
	return wrap(s)
}

// ---------------------------------------------------------------------------
// 2D profiles
// ---------------------------------------------------------------------------

// Circle creates an origin-centered 2D disc.
func (k *SdfxKernel) Circle(radius float64, segments int) kernel.Profile {
	s, err := sdf.Circle2D(radius)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Circle2D: %v", err))
	}
	return wrap2(s)
}

// Square creates a 2D rectangle, min corner at the origin unless centered.
func (k *SdfxKernel) Square(x, y float64, center bool) kernel.Profile {
	s := sdf.Box2D(v2.Vec{X: x, Y: y}, 0)
	if !center {
		s = sdf.Transform2D(s, sdf.Translate2d(v2.Vec{X: x / 2, Y: y / 2}))
	}
	return wrap2(s)
}

// Polygon creates a 2D polygon from an ordered vertex list.
func (k *SdfxKernel) Polygon(points [][2]float64) (kernel.Profile, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("polygon needs at least 3 points, got %d", len(points))
	}
	verts := make([]v2.Vec, 0, len(points))
	for _, p := range points {
		verts = append(verts, v2.Vec{X: p[0], Y: p[1]})
	}
	s, err := sdf.Polygon2D(verts)
	if err != nil {
		return nil, fmt.Errorf("sdfx.Polygon2D: %w", err)
	}
	return wrap2(s), nil
}

// Text approximates a text profile as one block per glyph, advanced
// monospace-style. Real font outlines are the frontend's concern; the CPU
// side only needs a sweepable region of roughly the right footprint.
func (k *SdfxKernel) Text(text string, size float64) kernel.Profile {
	if size <= 0 {
		size = 10
	}
	advance := size * 0.7
	var glyphs []sdf.SDF2
	x := 0.0
	for _, r := range text {
		if r != ' ' && r != '\t' {
			g := sdf.Box2D(v2.Vec{X: advance * 0.85, Y: size}, size*0.1)
			g = sdf.Transform2D(g, sdf.Translate2d(v2.Vec{X: x + advance/2, Y: size / 2}))
			glyphs = append(glyphs, g)
		}
		x += advance
	}
	if len(glyphs) == 0 {
		// Degenerate text still yields a tiny valid profile.
		return wrap2(sdf.Box2D(v2.Vec{X: size * 0.01, Y: size * 0.01}, 0))
	}
	return wrap2(sdf.Union2D(glyphs...))
}

// ---------------------------------------------------------------------------
// Boolean operations
// ---------------------------------------------------------------------------

// Union returns the union of two solids.
func (k *SdfxKernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Union3D(unwrap(a), unwrap(b)))
}

// Difference returns the difference a - b.
func (k *SdfxKernel) Difference(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Difference3D(unwrap(a), unwrap(b)))
}

// Intersection returns the intersection of two solids.
func (k *SdfxKernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Intersect3D(unwrap(a), unwrap(b)))
}

// Union2 returns the union of two profiles.
func (k *SdfxKernel) Union2(a, b kernel.Profile) kernel.Profile {
	return wrap2(sdf.Union2D(unwrap2(a), unwrap2(b)))
}

// ---------------------------------------------------------------------------
// Transforms
// ---------------------------------------------------------------------------

// Translate moves a solid by (x, y, z).
func (k *SdfxKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	m := sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z})
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes,
// applied in OpenSCAD order: X first, then Y, then Z.
func (k *SdfxKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	m := sdf.RotateZ(radians(z)).Mul(sdf.RotateY(radians(y))).Mul(sdf.RotateX(radians(x)))
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Scale scales a solid by per-axis factors.
func (k *SdfxKernel) Scale(s kernel.Solid, x, y, z float64) kernel.Solid {
	m := sdf.Scale3d(v3.Vec{X: x, Y: y, Z: z})
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Mirror reflects a solid across the plane whose normal is (x, y, z).
// Only principal-plane reflections are exact; other normals snap to the
// dominant axis, which covers the axis-aligned mirrors OpenSCAD scripts
// use in practice.
func (k *SdfxKernel) Mirror(s kernel.Solid, x, y, z float64) kernel.Solid {
	ax, ay, az := math.Abs(x), math.Abs(y), math.Abs(z)
	var m sdf.M44
	switch {
	case ax == 0 && ay == 0 && az == 0:
		return s
	case ax >= ay && ax >= az:
		m = sdf.MirrorYZ()
	case ay >= az:
		m = sdf.MirrorXZ()
	default:
		m = sdf.MirrorXY()
	}
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Translate2 moves a profile by (x, y).
func (k *SdfxKernel) Translate2(p kernel.Profile, x, y float64) kernel.Profile {
	return wrap2(sdf.Transform2D(unwrap2(p), sdf.Translate2d(v2.Vec{X: x, Y: y})))
}

// Rotate2 rotates a profile by angle degrees about the origin.
func (k *SdfxKernel) Rotate2(p kernel.Profile, angle float64) kernel.Profile {
	return wrap2(sdf.Transform2D(unwrap2(p), sdf.Rotate2d(radians(angle))))
}

// Scale2 scales a profile by per-axis factors.
func (k *SdfxKernel) Scale2(p kernel.Profile, x, y float64) kernel.Profile {
	return wrap2(sdf.Transform2D(unwrap2(p), sdf.Scale2d(v2.Vec{X: x, Y: y})))
}

// ---------------------------------------------------------------------------
// Extrusions
// ---------------------------------------------------------------------------

// LinearExtrude sweeps a 2D profile along the Z axis, optionally twisted
// and tapered. sdfx extrusions are centered about z=0; the uncentered form
// is shifted so the profile starts at z=0. The slices hint is ignored
// because SDF surfaces are resolution-free.
func (k *SdfxKernel) LinearExtrude(p kernel.Profile, opt kernel.ExtrudeOptions) (kernel.Solid, error) {
	if opt.Height <= 0 {
		return nil, fmt.Errorf("linear_extrude: height must be positive, got %g", opt.Height)
	}
	sx, sy := opt.ScaleX, opt.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	if sx < 0 || sy < 0 {
		return nil, fmt.Errorf("linear_extrude: scale must be positive, got (%g, %g)", sx, sy)
	}

	profile := unwrap2(p)
	twist := radians(opt.Twist)
	tapered := sx != 1 || sy != 1

	var s sdf.SDF3
	switch {
	case twist == 0 && !tapered:
		s = sdf.Extrude3D(profile, opt.Height)
	case twist != 0 && !tapered:
		s = sdf.TwistExtrude3D(profile, opt.Height, twist)
	case twist == 0 && tapered:
		s = sdf.ScaleExtrude3D(profile, opt.Height, v2.Vec{X: sx, Y: sy})
	default:
		s = sdf.ScaleTwistExtrude3D(profile, opt.Height, twist, v2.Vec{X: sx, Y: sy})
	}

	if !opt.Center {
		s = sdf.Transform3D(s, sdf.Translate3d(v3.Vec{Z: opt.Height / 2}))
	}
	return wrap(s), nil
}

// RotateExtrude revolves a 2D profile around the Z axis. A full 360 degree
// angle produces a closed ring; smaller angles produce an open arc. The
// profile is expected to lie on one side of the axis; straddling profiles
// are the caller's responsibility.
func (k *SdfxKernel) RotateExtrude(p kernel.Profile, angle float64) (kernel.Solid, error) {
	if angle <= 0 {
		return nil, fmt.Errorf("rotate_extrude: angle must be positive, got %g", angle)
	}
	profile := unwrap2(p)
	if angle >= 360 {
		s, err := sdf.Revolve3D(profile)
		if err != nil {
			return nil, fmt.Errorf("sdfx.Revolve3D: %w", err)
		}
		return wrap(s), nil
	}
	s, err := sdf.RevolveTheta3D(profile, radians(angle))
	if err != nil {
		return nil, fmt.Errorf("sdfx.RevolveTheta3D: %w", err)
	}
	return wrap(s), nil
}

// ---------------------------------------------------------------------------
// Mesh output
// ---------------------------------------------------------------------------

// ToMesh converts a solid to a triangle mesh using marching cubes.
func (k *SdfxKernel) ToMesh(s kernel.Solid, cells int) (*kernel.Mesh, error) {
	if cells <= 0 {
		cells = defaultMeshCells
	}
	sdf3 := unwrap(s)

	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(sdf3, renderer)

	numTri := len(triangles)
	numVerts := numTri * 3

	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		// Compute face normal.
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}
