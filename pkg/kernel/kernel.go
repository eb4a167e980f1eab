// Package kernel defines the abstract geometry kernel interface.
// Implementations (sdfx, manifold) provide solid modeling, boolean
// operations and tessellation behind this interface. The kernel abstraction
// allows swapping backends without changing the conversion engine.
package kernel

// Solid is an opaque handle to a 3D solid. Implementations wrap their
// internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Profile is an opaque handle to a 2D region used as extrusion input.
type Profile interface {
	// BoundingBox returns the axis-aligned 2D bounding box.
	BoundingBox() (min, max [2]float64)
}

// ExtrudeOptions parameterizes a linear extrusion. Twist is the total
// rotation in degrees applied across the height; ScaleX/ScaleY are the
// end-scale reached at full height; Slices is a subdivision hint that
// smooth-surface backends may ignore.
type ExtrudeOptions struct {
	Height float64
	Center bool
	Twist  float64
	ScaleX float64
	ScaleY float64
	Slices int
}

// Kernel is the abstract geometry kernel interface. All angles are in
// degrees; segment counts are tessellation hints only.
type Kernel interface {
	// 3D primitives. Box and Cylinder sit on the XY plane (min corner /
	// base at z=0) unless center is true, matching OpenSCAD placement.
	Box(x, y, z float64, center bool) Solid
	Sphere(radius float64, segments int) Solid
	Cylinder(height, r1, r2 float64, center bool, segments int) Solid

	// 2D profiles for extrusion.
	Circle(radius float64, segments int) Profile
	Square(x, y float64, center bool) Profile
	Polygon(points [][2]float64) (Profile, error)
	Text(text string, size float64) Profile

	// Boolean operations.
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid
	Union2(a, b Profile) Profile

	// Affine transforms.
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees
	Scale(s Solid, x, y, z float64) Solid
	Mirror(s Solid, x, y, z float64) Solid // reflect across plane with this normal

	// 2D transforms, used when transform nodes wrap 2D children.
	Translate2(p Profile, x, y float64) Profile
	Rotate2(p Profile, angle float64) Profile
	Scale2(p Profile, x, y float64) Profile

	// Extrusions.
	LinearExtrude(p Profile, opt ExtrudeOptions) (Solid, error)
	RotateExtrude(p Profile, angle float64) (Solid, error)

	// Mesh output. cells controls tessellation resolution; zero selects
	// the backend default.
	ToMesh(s Solid, cells int) (*Mesh, error)
}
