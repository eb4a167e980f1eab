package sdfx

import (
	"math"
	"testing"

	"github.com/forgecad/scadview/pkg/kernel"
)

// meshCells keeps tessellation cheap in tests.
const meshCells = 32

func TestBoxCornerOrigin(t *testing.T) {
	k := New()
	box := k.Box(100, 50, 25, false)
	min, max := box.BoundingBox()

	const tol = 0.5
	expectMin := [3]float64{0, 0, 0}
	expectMax := [3]float64{100, 50, 25}
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected ~%f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected ~%f", i, max[i], expectMax[i])
		}
	}
}

func TestBoxCentered(t *testing.T) {
	k := New()
	box := k.Box(100, 50, 25, true)
	min, max := box.BoundingBox()

	const tol = 0.5
	expectMin := [3]float64{-50, -25, -12.5}
	expectMax := [3]float64{50, 25, 12.5}
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected ~%f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected ~%f", i, max[i], expectMax[i])
		}
	}
}

func TestBoxMesh(t *testing.T) {
	k := New()
	mesh, err := k.ToMesh(k.Box(100, 50, 25, true), meshCells)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if mesh.VertexCount() == 0 {
		t.Fatal("expected non-zero vertex count")
	}
	// Verify vertex and index array sizes are consistent.
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	if len(mesh.Indices) != mesh.TriangleCount()*3 {
		t.Fatalf("indices length %d != triCount*3 %d", len(mesh.Indices), mesh.TriangleCount()*3)
	}
}

func TestSphere(t *testing.T) {
	k := New()
	sphere := k.Sphere(10, 0)
	min, max := sphere.BoundingBox()

	const tol = 0.5
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]+10) > tol || math.Abs(max[i]-10) > tol {
			t.Errorf("axis %d bounds = [%f, %f], expected ~[-10, 10]", i, min[i], max[i])
		}
	}
}

func TestCylinderBaseAtZero(t *testing.T) {
	k := New()
	cyl := k.Cylinder(50, 10, 10, false, 32)
	min, max := cyl.BoundingBox()

	const tol = 0.5
	if math.Abs(min[2]) > tol {
		t.Errorf("base z = %f, expected ~0", min[2])
	}
	if math.Abs(max[2]-50) > tol {
		t.Errorf("top z = %f, expected ~50", max[2])
	}
}

func TestCylinderCentered(t *testing.T) {
	k := New()
	cyl := k.Cylinder(50, 10, 10, true, 32)
	min, max := cyl.BoundingBox()

	const tol = 0.5
	if math.Abs(min[2]+25) > tol || math.Abs(max[2]-25) > tol {
		t.Errorf("z bounds = [%f, %f], expected ~[-25, 25]", min[2], max[2])
	}
}

func TestCone(t *testing.T) {
	k := New()
	cone := k.Cylinder(40, 20, 5, false, 32)
	mesh, err := k.ToMesh(cone, meshCells)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("cone mesh is empty")
	}
}

func TestDifference(t *testing.T) {
	k := New()

	box := k.Box(100, 100, 100, true)
	boxMesh, err := k.ToMesh(box, meshCells)
	if err != nil {
		t.Fatalf("ToMesh(box) failed: %v", err)
	}

	cyl := k.Cylinder(120, 20, 20, true, 32)
	diff := k.Difference(box, cyl)
	diffMesh, err := k.ToMesh(diff, meshCells)
	if err != nil {
		t.Fatalf("ToMesh(diff) failed: %v", err)
	}
	if diffMesh.IsEmpty() {
		t.Fatal("difference mesh is empty")
	}
	// A box with a hole should have more triangles than a plain box.
	if diffMesh.TriangleCount() <= boxMesh.TriangleCount() {
		t.Fatalf("difference (%d triangles) should have more triangles than box (%d triangles)",
			diffMesh.TriangleCount(), boxMesh.TriangleCount())
	}
}

func TestUnion(t *testing.T) {
	k := New()
	box1 := k.Box(50, 50, 50, true)
	box2 := k.Translate(k.Box(50, 50, 50, true), 30, 0, 0)
	u := k.Union(box1, box2)
	mesh, err := k.ToMesh(u, meshCells)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("union mesh is empty")
	}
}

func TestIntersection(t *testing.T) {
	k := New()
	box1 := k.Box(100, 100, 100, true)
	box2 := k.Translate(k.Box(100, 100, 100, true), 50, 0, 0)
	inter := k.Intersection(box1, box2)
	min, max := inter.BoundingBox()

	// Overlap region spans x in [0, 50].
	const tol = 1.0
	if min[0] < -tol || max[0] > 50+tol {
		t.Errorf("intersection x bounds = [%f, %f], expected within [0, 50]", min[0], max[0])
	}
}

func TestTranslate(t *testing.T) {
	k := New()
	box := k.Box(10, 10, 10, true)
	translated := k.Translate(box, 100, 200, 300)

	min, max := translated.BoundingBox()

	const tol = 0.5
	expectMin := [3]float64{95, 195, 295}
	expectMax := [3]float64{105, 205, 305}
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected ~%f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected ~%f", i, max[i], expectMax[i])
		}
	}
}

func TestRotate(t *testing.T) {
	k := New()
	box := k.Box(100, 10, 10, true)

	// A long box along X rotated 90 degrees around Z should extend along Y.
	rotated := k.Rotate(box, 0, 0, 90)
	min, max := rotated.BoundingBox()

	xExtent := max[0] - min[0]
	yExtent := max[1] - min[1]

	const tol = 1.0
	if math.Abs(xExtent-10) > tol {
		t.Errorf("rotated X extent = %f, expected ~10", xExtent)
	}
	if math.Abs(yExtent-100) > tol {
		t.Errorf("rotated Y extent = %f, expected ~100", yExtent)
	}
}

func TestScale(t *testing.T) {
	k := New()
	scaled := k.Scale(k.Box(10, 10, 10, true), 2, 3, 0.5)
	min, max := scaled.BoundingBox()

	const tol = 0.5
	expect := [3]float64{20, 30, 5}
	for i := 0; i < 3; i++ {
		if math.Abs((max[i]-min[i])-expect[i]) > tol {
			t.Errorf("scaled extent[%d] = %f, expected ~%f", i, max[i]-min[i], expect[i])
		}
	}
}

func TestMirror(t *testing.T) {
	k := New()
	box := k.Translate(k.Box(10, 10, 10, true), 20, 0, 0)
	mirrored := k.Mirror(box, 1, 0, 0)
	min, max := mirrored.BoundingBox()

	const tol = 0.5
	if math.Abs(min[0]+25) > tol || math.Abs(max[0]+15) > tol {
		t.Errorf("mirrored x bounds = [%f, %f], expected ~[-25, -15]", min[0], max[0])
	}
}

func TestSquareAndCircleProfiles(t *testing.T) {
	k := New()

	sq := k.Square(20, 10, false)
	min, max := sq.BoundingBox()
	const tol = 0.5
	if math.Abs(min[0]) > tol || math.Abs(max[0]-20) > tol {
		t.Errorf("square x bounds = [%f, %f], expected ~[0, 20]", min[0], max[0])
	}
	if math.Abs(min[1]) > tol || math.Abs(max[1]-10) > tol {
		t.Errorf("square y bounds = [%f, %f], expected ~[0, 10]", min[1], max[1])
	}

	c := k.Circle(5, 0)
	cmin, cmax := c.BoundingBox()
	for i := 0; i < 2; i++ {
		if math.Abs(cmin[i]+5) > tol || math.Abs(cmax[i]-5) > tol {
			t.Errorf("circle axis %d bounds = [%f, %f], expected ~[-5, 5]", i, cmin[i], cmax[i])
		}
	}
}

func TestTextProfile(t *testing.T) {
	k := New()

	p := k.Text("ab", 10)
	min, max := p.BoundingBox()
	if max[0]-min[0] <= 0 || max[1]-min[1] <= 0 {
		t.Errorf("text bounds = [%v, %v], expected a non-empty footprint", min, max)
	}
	if max[1]-min[1] < 5 {
		t.Errorf("text height = %f, expected roughly the glyph size", max[1]-min[1])
	}

	blank := k.Text(" \t ", 10)
	bmin, bmax := blank.BoundingBox()
	if bmax[0]-bmin[0] <= 0 {
		t.Error("whitespace-only text should still yield a tiny valid profile")
	}
}

func TestPolygon(t *testing.T) {
	k := New()
	p, err := k.Polygon([][2]float64{{0, 0}, {10, 0}, {10, 5}, {0, 5}})
	if err != nil {
		t.Fatalf("Polygon failed: %v", err)
	}
	min, max := p.BoundingBox()
	const tol = 0.5
	if math.Abs(max[0]-min[0]-10) > tol {
		t.Errorf("polygon x extent = %f, expected ~10", max[0]-min[0])
	}

	if _, err := k.Polygon([][2]float64{{0, 0}, {1, 1}}); err == nil {
		t.Error("expected error for polygon with fewer than 3 points")
	}
}

func TestLinearExtrude(t *testing.T) {
	k := New()
	sq := k.Square(10, 10, true)

	solid, err := k.LinearExtrude(sq, kernel.ExtrudeOptions{Height: 30})
	if err != nil {
		t.Fatalf("LinearExtrude failed: %v", err)
	}
	min, max := solid.BoundingBox()
	const tol = 0.5
	if math.Abs(min[2]) > tol || math.Abs(max[2]-30) > tol {
		t.Errorf("z bounds = [%f, %f], expected ~[0, 30]", min[2], max[2])
	}
}

func TestLinearExtrudeCentered(t *testing.T) {
	k := New()
	sq := k.Square(10, 10, true)
	solid, err := k.LinearExtrude(sq, kernel.ExtrudeOptions{Height: 30, Center: true})
	if err != nil {
		t.Fatalf("LinearExtrude failed: %v", err)
	}
	min, max := solid.BoundingBox()
	const tol = 0.5
	if math.Abs(min[2]+15) > tol || math.Abs(max[2]-15) > tol {
		t.Errorf("z bounds = [%f, %f], expected ~[-15, 15]", min[2], max[2])
	}
}

func TestLinearExtrudeTwist(t *testing.T) {
	k := New()
	sq := k.Square(10, 4, true)
	solid, err := k.LinearExtrude(sq, kernel.ExtrudeOptions{Height: 20, Twist: 90})
	if err != nil {
		t.Fatalf("LinearExtrude failed: %v", err)
	}
	mesh, err := k.ToMesh(solid, meshCells)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("twisted extrusion mesh is empty")
	}
}

func TestLinearExtrudeInvalidHeight(t *testing.T) {
	k := New()
	sq := k.Square(10, 10, true)
	if _, err := k.LinearExtrude(sq, kernel.ExtrudeOptions{Height: 0}); err == nil {
		t.Error("expected error for zero height")
	}
	if _, err := k.LinearExtrude(sq, kernel.ExtrudeOptions{Height: -5}); err == nil {
		t.Error("expected error for negative height")
	}
}

func TestRotateExtrudeFull(t *testing.T) {
	k := New()
	// A square offset from the axis revolves into a ring.
	profile := k.Translate2(k.Square(5, 5, true), 20, 0)
	solid, err := k.RotateExtrude(profile, 360)
	if err != nil {
		t.Fatalf("RotateExtrude failed: %v", err)
	}
	min, max := solid.BoundingBox()
	const tol = 1.0
	if math.Abs(max[0]-22.5) > tol || math.Abs(min[0]+22.5) > tol {
		t.Errorf("ring x bounds = [%f, %f], expected ~[-22.5, 22.5]", min[0], max[0])
	}
}

func TestRotateExtrudePartial(t *testing.T) {
	k := New()
	profile := k.Translate2(k.Square(5, 5, true), 20, 0)
	solid, err := k.RotateExtrude(profile, 90)
	if err != nil {
		t.Fatalf("RotateExtrude failed: %v", err)
	}
	mesh, err := k.ToMesh(solid, meshCells)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("partial revolve mesh is empty")
	}
}

func TestUnion2(t *testing.T) {
	k := New()
	a := k.Square(10, 10, false)
	b := k.Translate2(k.Square(10, 10, false), 20, 0)
	u := k.Union2(a, b)
	min, max := u.BoundingBox()
	const tol = 0.5
	if math.Abs(min[0]) > tol || math.Abs(max[0]-30) > tol {
		t.Errorf("union2 x bounds = [%f, %f], expected ~[0, 30]", min[0], max[0])
	}
}
