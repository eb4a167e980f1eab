package kernel

import "testing"

// --- Mesh helper method tests ---

func TestMeshVertexCount(t *testing.T) {
	tests := []struct {
		name     string
		vertices []float32
		want     int
	}{
		{"empty", nil, 0},
		{"one vertex", []float32{1, 2, 3}, 1},
		{"four vertices", []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Vertices: tt.vertices}
			if got := m.VertexCount(); got != tt.want {
				t.Errorf("VertexCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshTriangleCount(t *testing.T) {
	tests := []struct {
		name    string
		indices []uint32
		want    int
	}{
		{"empty", nil, 0},
		{"one triangle", []uint32{0, 1, 2}, 1},
		{"two triangles", []uint32{0, 1, 2, 2, 3, 0}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Indices: tt.indices}
			if got := m.TriangleCount(); got != tt.want {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshIsEmpty(t *testing.T) {
	t.Run("empty mesh", func(t *testing.T) {
		m := &Mesh{}
		if !m.IsEmpty() {
			t.Error("IsEmpty() = false for empty mesh, want true")
		}
	})
	t.Run("non-empty mesh", func(t *testing.T) {
		m := &Mesh{Vertices: []float32{1, 2, 3}}
		if m.IsEmpty() {
			t.Error("IsEmpty() = true for non-empty mesh, want false")
		}
	})
}

func TestMeshRelease(t *testing.T) {
	m := &Mesh{
		Vertices: []float32{0, 0, 0},
		Normals:  []float32{0, 0, 1},
		Indices:  []uint32{0},
	}
	m.Release()
	if !m.IsEmpty() {
		t.Error("Release() should empty the mesh")
	}
	// A second release is harmless.
	m.Release()
}

// --- Compile-time interface check with a stub kernel ---

// stubSolid is a minimal Solid implementation for testing.
type stubSolid struct {
	minBB, maxBB [3]float64
}

func (s *stubSolid) BoundingBox() (min, max [3]float64) {
	return s.minBB, s.maxBB
}

// stubProfile is a minimal Profile implementation for testing.
type stubProfile struct {
	minBB, maxBB [2]float64
}

func (p *stubProfile) BoundingBox() (min, max [2]float64) {
	return p.minBB, p.maxBB
}

// stubKernel is a minimal Kernel implementation that proves the interface
// is satisfiable. All methods return trivial results.
type stubKernel struct{}

func (k *stubKernel) Box(x, y, z float64, center bool) Solid {
	if center {
		return &stubSolid{
			minBB: [3]float64{-x / 2, -y / 2, -z / 2},
			maxBB: [3]float64{x / 2, y / 2, z / 2},
		}
	}
	return &stubSolid{maxBB: [3]float64{x, y, z}}
}

func (k *stubKernel) Sphere(r float64, _ int) Solid {
	return &stubSolid{minBB: [3]float64{-r, -r, -r}, maxBB: [3]float64{r, r, r}}
}

func (k *stubKernel) Cylinder(height, r1, r2 float64, center bool, _ int) Solid {
	r := r1
	if r2 > r {
		r = r2
	}
	if center {
		return &stubSolid{
			minBB: [3]float64{-r, -r, -height / 2},
			maxBB: [3]float64{r, r, height / 2},
		}
	}
	return &stubSolid{
		minBB: [3]float64{-r, -r, 0},
		maxBB: [3]float64{r, r, height},
	}
}

func (k *stubKernel) Circle(r float64, _ int) Profile {
	return &stubProfile{minBB: [2]float64{-r, -r}, maxBB: [2]float64{r, r}}
}

func (k *stubKernel) Square(x, y float64, center bool) Profile {
	if center {
		return &stubProfile{minBB: [2]float64{-x / 2, -y / 2}, maxBB: [2]float64{x / 2, y / 2}}
	}
	return &stubProfile{maxBB: [2]float64{x, y}}
}

func (k *stubKernel) Polygon(points [][2]float64) (Profile, error) {
	return &stubProfile{}, nil
}

func (k *stubKernel) Text(_ string, _ float64) Profile { return &stubProfile{} }

func (k *stubKernel) Union(a, _ Solid) Solid        { return a }
func (k *stubKernel) Difference(a, _ Solid) Solid   { return a }
func (k *stubKernel) Intersection(a, _ Solid) Solid { return a }
func (k *stubKernel) Union2(a, _ Profile) Profile   { return a }

func (k *stubKernel) Translate(s Solid, _, _, _ float64) Solid { return s }
func (k *stubKernel) Rotate(s Solid, _, _, _ float64) Solid    { return s }
func (k *stubKernel) Scale(s Solid, _, _, _ float64) Solid     { return s }
func (k *stubKernel) Mirror(s Solid, _, _, _ float64) Solid    { return s }

func (k *stubKernel) Translate2(p Profile, _, _ float64) Profile { return p }
func (k *stubKernel) Rotate2(p Profile, _ float64) Profile       { return p }
func (k *stubKernel) Scale2(p Profile, _, _ float64) Profile     { return p }

func (k *stubKernel) LinearExtrude(_ Profile, opt ExtrudeOptions) (Solid, error) {
	return &stubSolid{maxBB: [3]float64{1, 1, opt.Height}}, nil
}

func (k *stubKernel) RotateExtrude(_ Profile, _ float64) (Solid, error) {
	return &stubSolid{}, nil
}

func (k *stubKernel) ToMesh(_ Solid, _ int) (*Mesh, error) {
	return &Mesh{}, nil
}

// Compile-time checks that the stubs implement the interfaces.
var _ Solid = (*stubSolid)(nil)
var _ Profile = (*stubProfile)(nil)
var _ Kernel = (*stubKernel)(nil)

func TestStubKernelBoxBoundingBox(t *testing.T) {
	var k Kernel = &stubKernel{}
	s := k.Box(10, 20, 30, false)
	min, max := s.BoundingBox()
	if min != [3]float64{0, 0, 0} {
		t.Errorf("Box min = %v, want [0 0 0]", min)
	}
	if max != [3]float64{10, 20, 30} {
		t.Errorf("Box max = %v, want [10 20 30]", max)
	}
}

func TestStubKernelToMesh(t *testing.T) {
	var k Kernel = &stubKernel{}
	s := k.Box(1, 1, 1, true)
	m, err := k.ToMesh(s, 0)
	if err != nil {
		t.Fatalf("ToMesh() error = %v", err)
	}
	if m == nil {
		t.Fatal("ToMesh() returned nil mesh")
	}
	if !m.IsEmpty() {
		t.Error("stub ToMesh() should return empty mesh")
	}
}
