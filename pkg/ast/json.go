package ast

import (
	"encoding/json"
	"fmt"
)

// This file implements the wire contract with the OpenSCAD parser: an
// ordered array of node records, each tagged with "type". Unknown type tags
// decode into KindUnknown nodes rather than failing, matching the
// best-effort conversion philosophy downstream.

// DecodeProgram decodes the parser's top-level node array.
func DecodeProgram(data []byte) ([]*Node, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("ast: program must be a node array: %w", err)
	}
	nodes := make([]*Node, 0, len(raws))
	for i, raw := range raws {
		n, err := DecodeNode(raw)
		if err != nil {
			return nil, fmt.Errorf("ast: node %d: %w", i, err)
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// rawNode is the superset of node fields the parser may emit. Pointer fields
// distinguish absent from zero where the distinction matters.
type rawNode struct {
	Type     string            `json:"type"`
	Location *Span             `json:"location"`
	Children []json.RawMessage `json:"children"`

	// primitives
	Size      json.RawMessage `json:"size"`
	Radius    *float64        `json:"r"`
	RadiusAlt *float64        `json:"radius"`
	Diameter  *float64        `json:"d"`
	Height    *float64        `json:"h"`
	HeightAlt *float64        `json:"height"`
	R1        *float64        `json:"r1"`
	R2        *float64        `json:"r2"`
	D1        *float64        `json:"d1"`
	D2        *float64        `json:"d2"`
	Center    bool            `json:"center"`
	Segments  int             `json:"fn"`
	Points    [][]float64     `json:"points"`
	Text      string          `json:"text"`
	TextSize  *float64        `json:"text_size"`
	Font      string          `json:"font"`

	// transforms
	Vector json.RawMessage `json:"v"`
	Angles json.RawMessage `json:"a"`

	// extrusions
	Twist     float64         `json:"twist"`
	Scale     json.RawMessage `json:"scale"`
	Slices    int             `json:"slices"`
	Angle     *float64        `json:"angle"`
	Convexity int             `json:"convexity"`

	// modules and calls. The parser historically spread the callee name
	// over several fields; all are probed here so the converter sees one
	// canonical CallData.Name.
	Name         string          `json:"name"`
	FunctionName string          `json:"functionName"`
	Function     string          `json:"function"`
	Params       []rawParam      `json:"params"`
	Args         []rawArg        `json:"args"`
	Value        json.RawMessage `json:"value"`

	// control flow
	Bindings  []rawParam        `json:"bindings"`
	Condition json.RawMessage   `json:"condition"`
	Then      []json.RawMessage `json:"then"`
	Else      []json.RawMessage `json:"else"`
	Variable  string            `json:"variable"`
	Start     json.RawMessage   `json:"start"`
	End       json.RawMessage   `json:"end"`
	Step      json.RawMessage   `json:"step"`
	Expr      json.RawMessage   `json:"expr"`
}

type rawParam struct {
	Name    string          `json:"name"`
	Default json.RawMessage `json:"default"`
	Value   json.RawMessage `json:"value"`
}

type rawArg struct {
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value"`
}

// DecodeNode decodes a single node record.
func DecodeNode(data []byte) (*Node, error) {
	var raw rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("ast: malformed node: %w", err)
	}

	n := &Node{
		Kind:    KindFromString(raw.Type),
		RawType: raw.Type,
		Span:    raw.Location,
	}

	for i, rc := range raw.Children {
		child, err := DecodeNode(rc)
		if err != nil {
			return nil, fmt.Errorf("%s child %d: %w", raw.Type, i, err)
		}
		n.Children = append(n.Children, child)
	}

	data2, err := decodePayload(&raw, n.Kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", raw.Type, err)
	}
	n.Data = data2
	return n, nil
}

func decodePayload(raw *rawNode, kind Kind) (NodeData, error) {
	switch kind {
	case KindCube:
		var size Vec3
		if len(raw.Size) > 0 {
			if err := json.Unmarshal(raw.Size, &size); err != nil {
				return nil, err
			}
		}
		return CubeData{Size: size, Center: raw.Center}, nil

	case KindSphere:
		return SphereData{Radius: radiusOf(raw), Segments: raw.Segments}, nil

	case KindCylinder:
		d := CylinderData{Center: raw.Center, Segments: raw.Segments}
		if raw.Height != nil {
			d.Height = *raw.Height
		} else if raw.HeightAlt != nil {
			d.Height = *raw.HeightAlt
		}
		r := radiusOf(raw)
		d.R1, d.R2 = r, r
		if raw.R1 != nil {
			d.R1 = *raw.R1
		} else if raw.D1 != nil {
			d.R1 = *raw.D1 / 2
		}
		if raw.R2 != nil {
			d.R2 = *raw.R2
		} else if raw.D2 != nil {
			d.R2 = *raw.D2 / 2
		}
		return d, nil

	case KindCircle:
		return CircleData{Radius: radiusOf(raw), Segments: raw.Segments}, nil

	case KindSquare:
		var size Vec2
		if len(raw.Size) > 0 {
			if err := json.Unmarshal(raw.Size, &size); err != nil {
				return nil, err
			}
		}
		return SquareData{Size: size, Center: raw.Center}, nil

	case KindPolygon:
		pts := make([]Vec2, 0, len(raw.Points))
		for _, p := range raw.Points {
			if len(p) < 2 {
				return nil, fmt.Errorf("polygon point needs 2 coordinates, got %d", len(p))
			}
			pts = append(pts, Vec2{X: p[0], Y: p[1]})
		}
		return PolygonData{Points: pts}, nil

	case KindText:
		d := TextData{Text: raw.Text, Font: raw.Font, Size: 10}
		if raw.TextSize != nil {
			d.Size = *raw.TextSize
		}
		return d, nil

	case KindTranslate:
		v, err := vec3Of(raw.Vector)
		return TranslateData{Vector: v}, err

	case KindRotate:
		// rotate(a=...) is the canonical form; a bare vector also appears.
		src := raw.Angles
		if len(src) == 0 {
			src = raw.Vector
		}
		v, err := vec3Of(src)
		return RotateData{Angles: v}, err

	case KindScale:
		v, err := vec3Of(raw.Vector)
		if err == nil && v.IsZero() && len(raw.Vector) == 0 {
			v = Vec3{X: 1, Y: 1, Z: 1}
		}
		return ScaleData{Factors: v}, err

	case KindMirror:
		v, err := vec3Of(raw.Vector)
		return MirrorData{Normal: v}, err

	case KindLinearExtrude:
		d := LinearExtrudeData{
			Twist:    raw.Twist,
			Slices:   raw.Slices,
			Center:   raw.Center,
			ScaleTop: Vec2{X: 1, Y: 1},
		}
		if raw.Height != nil {
			d.Height = *raw.Height
		} else if raw.HeightAlt != nil {
			d.Height = *raw.HeightAlt
		}
		if len(raw.Scale) > 0 {
			if err := json.Unmarshal(raw.Scale, &d.ScaleTop); err != nil {
				return nil, err
			}
		}
		return d, nil

	case KindRotateExtrude:
		d := RotateExtrudeData{Angle: 360, Convexity: raw.Convexity}
		if raw.Angle != nil {
			d.Angle = *raw.Angle
		}
		return d, nil

	case KindModuleDefinition:
		d := ModuleDefinitionData{Name: raw.Name}
		for _, p := range raw.Params {
			param := Param{Name: p.Name}
			if len(p.Default) > 0 {
				def, err := DecodeExpr(p.Default)
				if err != nil {
					return nil, fmt.Errorf("param %s default: %w", p.Name, err)
				}
				param.Default = def
			}
			d.Params = append(d.Params, param)
		}
		return d, nil

	case KindModuleInstantiation, KindFunctionCall:
		d := CallData{Name: calleeName(raw)}
		for i, a := range raw.Args {
			arg := Argument{Name: a.Name}
			if len(a.Value) > 0 {
				v, err := DecodeExpr(a.Value)
				if err != nil {
					return nil, fmt.Errorf("arg %d: %w", i, err)
				}
				arg.Value = v
			}
			d.Args = append(d.Args, arg)
		}
		return d, nil

	case KindAssignment:
		d := AssignmentData{Name: raw.Name}
		if len(raw.Value) > 0 {
			v, err := DecodeExpr(raw.Value)
			if err != nil {
				return nil, err
			}
			d.Value = v
		}
		return d, nil

	case KindAssign:
		var d AssignData
		for _, b := range raw.Bindings {
			binding := AssignmentData{Name: b.Name}
			src := b.Value
			if len(src) == 0 {
				src = b.Default
			}
			if len(src) > 0 {
				v, err := DecodeExpr(src)
				if err != nil {
					return nil, fmt.Errorf("binding %s: %w", b.Name, err)
				}
				binding.Value = v
			}
			d.Bindings = append(d.Bindings, binding)
		}
		return d, nil

	case KindIf:
		var d IfData
		if len(raw.Condition) > 0 {
			c, err := DecodeExpr(raw.Condition)
			if err != nil {
				return nil, err
			}
			d.Condition = c
		}
		var err error
		if d.Then, err = decodeNodeList(raw.Then); err != nil {
			return nil, fmt.Errorf("then branch: %w", err)
		}
		if d.Else, err = decodeNodeList(raw.Else); err != nil {
			return nil, fmt.Errorf("else branch: %w", err)
		}
		return d, nil

	case KindForLoop:
		d := ForData{Variable: raw.Variable}
		var err error
		if d.Start, err = maybeExpr(raw.Start); err != nil {
			return nil, err
		}
		if d.End, err = maybeExpr(raw.End); err != nil {
			return nil, err
		}
		if d.Step, err = maybeExpr(raw.Step); err != nil {
			return nil, err
		}
		return d, nil

	case KindExpression:
		var d ExpressionData
		src := raw.Expr
		if len(src) == 0 {
			src = raw.Value
		}
		if len(src) > 0 {
			e, err := DecodeExpr(src)
			if err != nil {
				return nil, err
			}
			d.Expr = e
		}
		return d, nil
	}

	// Unparameterized kinds (booleans) and unknown kinds carry no payload.
	return nil, nil
}

func radiusOf(raw *rawNode) float64 {
	switch {
	case raw.Radius != nil:
		return *raw.Radius
	case raw.RadiusAlt != nil:
		return *raw.RadiusAlt
	case raw.Diameter != nil:
		return *raw.Diameter / 2
	}
	return 1
}

func calleeName(raw *rawNode) string {
	switch {
	case raw.Name != "":
		return raw.Name
	case raw.FunctionName != "":
		return raw.FunctionName
	}
	return raw.Function
}

func vec3Of(data json.RawMessage) (Vec3, error) {
	var v Vec3
	if len(data) == 0 {
		return v, nil
	}
	err := json.Unmarshal(data, &v)
	return v, err
}

func decodeNodeList(raws []json.RawMessage) ([]*Node, error) {
	var nodes []*Node
	for i, raw := range raws {
		n, err := DecodeNode(raw)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func maybeExpr(data json.RawMessage) (*Expr, error) {
	if len(data) == 0 {
		return nil, nil
	}
	return DecodeExpr(data)
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

type rawExpr struct {
	Type  string            `json:"type"`
	Value json.RawMessage   `json:"value"`
	Name  string            `json:"name"`
	Op    string            `json:"op"`
	Left  json.RawMessage   `json:"left"`
	Right json.RawMessage   `json:"right"`
	Inner json.RawMessage   `json:"inner"`
	Args  []json.RawMessage `json:"args"`
}

// DecodeExpr decodes an expression record. A record without a recognized
// type tag but with a bare JSON scalar decodes as a literal, which covers
// parsers that emit raw values for constant arguments.
func DecodeExpr(data []byte) (*Expr, error) {
	var raw rawExpr
	if err := json.Unmarshal(data, &raw); err != nil {
		// Not an object: try a bare literal value.
		lit, litErr := decodeLiteral(data)
		if litErr != nil {
			return nil, fmt.Errorf("ast: malformed expression: %w", err)
		}
		return &Expr{Kind: ExprLiteral, Value: lit}, nil
	}

	kind, ok := exprKindNames[raw.Type]
	if !ok {
		if raw.Type == "" && len(raw.Value) > 0 {
			lit, err := decodeLiteral(raw.Value)
			if err != nil {
				return nil, err
			}
			return &Expr{Kind: ExprLiteral, Value: lit}, nil
		}
		return &Expr{Kind: ExprUnknown, Name: raw.Type}, nil
	}

	e := &Expr{Kind: kind, Name: raw.Name, Op: raw.Op}
	var err error
	switch kind {
	case ExprLiteral:
		if e.Value, err = decodeLiteral(raw.Value); err != nil {
			return nil, err
		}
	case ExprBinary:
		if e.Left, err = maybeExpr(raw.Left); err != nil {
			return nil, fmt.Errorf("binary left: %w", err)
		}
		if e.Right, err = maybeExpr(raw.Right); err != nil {
			return nil, fmt.Errorf("binary right: %w", err)
		}
	case ExprParen, ExprListComprehension, ExprFunctionLiteral:
		if e.Inner, err = maybeExpr(raw.Inner); err != nil {
			return nil, err
		}
	case ExprCall:
		for i, ra := range raw.Args {
			arg, err := DecodeExpr(ra)
			if err != nil {
				return nil, fmt.Errorf("call arg %d: %w", i, err)
			}
			e.Args = append(e.Args, arg)
		}
	}
	return e, nil
}

// decodeLiteral decodes a bare JSON value into a typed literal.
func decodeLiteral(data json.RawMessage) (Literal, error) {
	if len(data) == 0 || string(data) == "null" {
		return Literal{Kind: LitUndef}, nil
	}
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		return Literal{Kind: LitNumber, Number: num}, nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		return Literal{Kind: LitBool, Bool: b}, nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return Literal{Kind: LitString, Str: s}, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err == nil {
		lit := Literal{Kind: LitVector}
		for i, item := range items {
			e, err := DecodeExpr(item)
			if err != nil {
				return Literal{}, fmt.Errorf("vector element %d: %w", i, err)
			}
			lit.Items = append(lit.Items, e)
		}
		return lit, nil
	}
	return Literal{}, fmt.Errorf("ast: unsupported literal %s", string(data))
}
