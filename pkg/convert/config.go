package convert

import "time"

// DefaultTimeout is the hard limit for a single conversion.
const DefaultTimeout = 10 * time.Second

// DefaultMaxComplexity is the triangle-count ceiling per converted mesh.
const DefaultMaxComplexity = 50000

// Material describes the display attributes attached to converted meshes.
// The geometry kernel never looks at these; they ride along in metadata for
// the renderer.
type Material struct {
	Color       string  `json:"color" yaml:"color"`
	Opacity     float64 `json:"opacity" yaml:"opacity"`
	Metalness   float64 `json:"metalness" yaml:"metalness"`
	Roughness   float64 `json:"roughness" yaml:"roughness"`
	Wireframe   bool    `json:"wireframe" yaml:"wireframe"`
	Transparent bool    `json:"transparent" yaml:"transparent"`
	Side        string  `json:"side" yaml:"side"` // front, back, double
}

// Config is the per-conversion configuration. It is immutable for the
// duration of one conversion call.
type Config struct {
	Material           Material      `json:"material" yaml:"material"`
	EnableOptimization bool          `json:"enableOptimization" yaml:"enable_optimization"`
	MaxComplexity      int           `json:"maxComplexity" yaml:"max_complexity"`
	// Timeout marshals as integer nanoseconds, time.Duration's native
	// JSON form.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
	// MeshCells controls marching-cubes tessellation resolution.
	// Zero selects the kernel default.
	MeshCells int `json:"meshCells" yaml:"mesh_cells"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Material: Material{
			Color:     "#00ff88",
			Opacity:   1,
			Metalness: 0.1,
			Roughness: 0.7,
			Side:      "double",
		},
		MaxComplexity: DefaultMaxComplexity,
		Timeout:       DefaultTimeout,
	}
}

// withDefaults fills unset fields so partially populated configs behave.
func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxComplexity <= 0 {
		c.MaxComplexity = DefaultMaxComplexity
	}
	if c.Material.Color == "" {
		c.Material.Color = "#00ff88"
	}
	if c.Material.Opacity == 0 {
		c.Material.Opacity = 1
	}
	return c
}
