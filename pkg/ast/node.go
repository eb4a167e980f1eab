// Package ast defines the OpenSCAD abstract syntax tree consumed by the
// conversion engine. The tree is produced by an external parser and arrives
// over the wire as JSON (see json.go); this package is the canonical typed
// form of that contract.
package ast

// Kind enumerates the node kinds the converter understands. Kinds outside
// this set decode as KindUnknown and degrade to placeholder geometry.
type Kind int

const (
	KindUnknown Kind = iota

	// 3D primitives
	KindCube
	KindSphere
	KindCylinder

	// 2D primitives
	KindCircle
	KindSquare
	KindPolygon
	KindText

	// Transformations
	KindTranslate
	KindRotate
	KindScale
	KindMirror

	// Extrusions
	KindLinearExtrude
	KindRotateExtrude

	// Boolean operations
	KindUnion
	KindIntersection
	KindDifference

	// Modules and calls
	KindModuleDefinition
	KindModuleInstantiation
	KindFunctionCall

	// Control flow
	KindAssignment
	KindAssign
	KindIf
	KindForLoop
	KindExpression
)

// kindNames maps wire-format type tags to kinds. The reverse mapping is used
// by String and the metadata layer.
var kindNames = map[string]Kind{
	"cube":                 KindCube,
	"sphere":               KindSphere,
	"cylinder":             KindCylinder,
	"circle":               KindCircle,
	"square":               KindSquare,
	"polygon":              KindPolygon,
	"text":                 KindText,
	"translate":            KindTranslate,
	"rotate":               KindRotate,
	"scale":                KindScale,
	"mirror":               KindMirror,
	"linear_extrude":       KindLinearExtrude,
	"rotate_extrude":       KindRotateExtrude,
	"union":                KindUnion,
	"intersection":         KindIntersection,
	"difference":           KindDifference,
	"module_definition":    KindModuleDefinition,
	"module_instantiation": KindModuleInstantiation,
	"function_call":        KindFunctionCall,
	"assignment":           KindAssignment,
	"assign":               KindAssign,
	"if":                   KindIf,
	"for_loop":             KindForLoop,
	"expression":           KindExpression,
}

var kindStrings = func() map[Kind]string {
	m := make(map[Kind]string, len(kindNames))
	for name, k := range kindNames {
		m[k] = name
	}
	return m
}()

func (k Kind) String() string {
	if s, ok := kindStrings[k]; ok {
		return s
	}
	return "unknown"
}

// KindFromString resolves a wire-format type tag, returning KindUnknown for
// tags outside the supported set.
func KindFromString(s string) Kind {
	if k, ok := kindNames[s]; ok {
		return k
	}
	return KindUnknown
}

// Position is a point in the original source text.
type Position struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Span is a source-location range. It is used only for fallback text slicing
// when structured parameters are unreliable.
type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Node is one parsed OpenSCAD construct. The Kind determines which payload
// type Data holds; leaf nodes have an empty Children slice.
type Node struct {
	Kind     Kind
	RawType  string // original type tag from the parser, kept for diagnostics
	Span     *Span
	Children []*Node
	Data     NodeData
}

// NodeData is the interface for kind-specific node payloads.
// Kinds without parameters (union, intersection, difference) carry nil Data.
type NodeData interface {
	nodeData() // marker method restricting implementations to this package
}

// Param is one declared module parameter with an optional default expression.
type Param struct {
	Name    string
	Default *Expr
}

// Argument is one call-site argument. Name is "" for positional arguments.
type Argument struct {
	Name  string
	Value *Expr
}

// ---------------------------------------------------------------------------
// Primitive payloads
// ---------------------------------------------------------------------------

// CubeData describes a cube primitive. Size components may come from a
// vector or a single scalar applied uniformly.
type CubeData struct {
	Size   Vec3
	Center bool
}

func (CubeData) nodeData() {}

// SphereData describes a sphere primitive. Segments carries $fn and is a
// tessellation hint only.
type SphereData struct {
	Radius   float64
	Segments int
}

func (SphereData) nodeData() {}

// CylinderData describes a cylinder (or cone when R1 != R2).
type CylinderData struct {
	Height   float64
	R1       float64
	R2       float64
	Center   bool
	Segments int
}

func (CylinderData) nodeData() {}

// CircleData describes a 2D circle profile.
type CircleData struct {
	Radius   float64
	Segments int
}

func (CircleData) nodeData() {}

// SquareData describes a 2D rectangle profile.
type SquareData struct {
	Size   Vec2
	Center bool
}

func (SquareData) nodeData() {}

// PolygonData describes a 2D polygon profile from an ordered point list.
type PolygonData struct {
	Points []Vec2
}

func (PolygonData) nodeData() {}

// TextData describes a 2D text profile.
type TextData struct {
	Text string
	Size float64
	Font string
}

func (TextData) nodeData() {}

// ---------------------------------------------------------------------------
// Transform payloads
// ---------------------------------------------------------------------------

// TranslateData moves the child by Vector.
type TranslateData struct {
	Vector Vec3
}

func (TranslateData) nodeData() {}

// RotateData rotates the child by Euler angles in degrees.
type RotateData struct {
	Angles Vec3
}

func (RotateData) nodeData() {}

// ScaleData scales the child by per-axis factors.
type ScaleData struct {
	Factors Vec3
}

func (ScaleData) nodeData() {}

// MirrorData reflects the child across the plane whose normal is Normal.
type MirrorData struct {
	Normal Vec3
}

func (MirrorData) nodeData() {}

// ---------------------------------------------------------------------------
// Extrusion payloads
// ---------------------------------------------------------------------------

// LinearExtrudeData sweeps the 2D child profile along the Z axis.
// ScaleTop is the end-scale reached at full height; Slices is a smoothness
// hint for twist/taper subdivision.
type LinearExtrudeData struct {
	Height   float64
	Center   bool
	Twist    float64 // total twist in degrees
	ScaleTop Vec2
	Slices   int
}

func (LinearExtrudeData) nodeData() {}

// RotateExtrudeData revolves the 2D child profile around the Z axis.
// Angle is in degrees; 360 is a full closed revolution.
type RotateExtrudeData struct {
	Angle     float64
	Convexity int
}

func (RotateExtrudeData) nodeData() {}

// ---------------------------------------------------------------------------
// Module and call payloads
// ---------------------------------------------------------------------------

// ModuleDefinitionData declares a named module. The body is the node's
// Children list.
type ModuleDefinitionData struct {
	Name   string
	Params []Param
}

func (ModuleDefinitionData) nodeData() {}

// CallData is the canonical shape for function calls and module
// instantiations: a callee name plus ordered arguments. The parser is
// expected to normalize whatever name-bearing field it has into Name;
// the converter still tolerates full call text here (see convert).
type CallData struct {
	Name string
	Args []Argument
}

func (CallData) nodeData() {}

// ---------------------------------------------------------------------------
// Control-flow payloads
// ---------------------------------------------------------------------------

// AssignmentData binds Name to the evaluated Value in the current scope.
type AssignmentData struct {
	Name  string
	Value *Expr
}

func (AssignmentData) nodeData() {}

// AssignData is the legacy OpenSCAD assign() block: bindings applied before
// the body (the node's Children) is converted.
type AssignData struct {
	Bindings []AssignmentData
}

func (AssignData) nodeData() {}

// IfData selects Then or Else based on the condition.
type IfData struct {
	Condition *Expr
	Then      []*Node
	Else      []*Node
}

func (IfData) nodeData() {}

// ForData describes a for loop over a numeric range. The body is the node's
// Children. The converter currently executes the body exactly once; the
// range is decoded and retained so full iteration can be added without a
// wire-format change.
type ForData struct {
	Variable string
	Start    *Expr
	End      *Expr
	Step     *Expr
}

func (ForData) nodeData() {}

// ExpressionData wraps a bare expression statement.
type ExpressionData struct {
	Expr *Expr
}

func (ExpressionData) nodeData() {}

// IsLeaf reports whether the node kind never has children.
func (n *Node) IsLeaf() bool {
	switch n.Kind {
	case KindCube, KindSphere, KindCylinder, KindCircle, KindSquare,
		KindPolygon, KindText, KindAssignment, KindExpression:
		return true
	}
	return false
}
