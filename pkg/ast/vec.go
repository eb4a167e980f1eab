package ast

import (
	"encoding/json"
	"fmt"
)

// Vec2 is a 2D vector. OpenSCAD accepts either a vector or a single scalar
// for most size-like parameters; a scalar decodes to a uniform vector.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vec3 is a 3D vector with the same scalar-or-vector decoding as Vec2.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// UnmarshalJSON accepts [x, y], [x] or a bare scalar.
func (v *Vec2) UnmarshalJSON(data []byte) error {
	var scalar float64
	if err := json.Unmarshal(data, &scalar); err == nil {
		v.X, v.Y = scalar, scalar
		return nil
	}
	var arr []float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("vec2: expected number or array: %w", err)
	}
	switch len(arr) {
	case 0:
	case 1:
		v.X, v.Y = arr[0], arr[0]
	default:
		v.X, v.Y = arr[0], arr[1]
	}
	return nil
}

// UnmarshalJSON accepts [x, y, z], shorter arrays or a bare scalar.
func (v *Vec3) UnmarshalJSON(data []byte) error {
	var scalar float64
	if err := json.Unmarshal(data, &scalar); err == nil {
		v.X, v.Y, v.Z = scalar, scalar, scalar
		return nil
	}
	var arr []float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("vec3: expected number or array: %w", err)
	}
	switch len(arr) {
	case 0:
	case 1:
		v.X, v.Y, v.Z = arr[0], arr[0], arr[0]
	case 2:
		v.X, v.Y = arr[0], arr[1]
	default:
		v.X, v.Y, v.Z = arr[0], arr[1], arr[2]
	}
	return nil
}

// IsZero reports whether all components are zero.
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}
