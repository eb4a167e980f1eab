package convert

import (
	"github.com/forgecad/scadview/pkg/ast"
	"github.com/forgecad/scadview/pkg/eval"
)

// Builtin synthesis: a call node naming a builtin (cube, translate, union,
// ...) is rewritten into the equivalent structured node before dispatch.
// Arguments are bound by position and by name per the builtin's signature,
// with unset parameters taking the OpenSCAD defaults.

// argLookup separates a call's arguments for positional/named resolution.
type argLookup struct {
	positional []*ast.Expr
	named      map[string]*ast.Expr
}

func lookupArgs(args []ast.Argument) argLookup {
	al := argLookup{named: make(map[string]*ast.Expr)}
	for _, a := range args {
		if a.Name == "" {
			al.positional = append(al.positional, a.Value)
		} else {
			al.named[a.Name] = a.Value
		}
	}
	return al
}

// expr resolves an argument by any of the accepted names, falling back to
// the positional slot.
func (al argLookup) expr(pos int, names ...string) *ast.Expr {
	for _, name := range names {
		if e, ok := al.named[name]; ok {
			return e
		}
	}
	if pos >= 0 && pos < len(al.positional) {
		return al.positional[pos]
	}
	return nil
}

func (al argLookup) float(sc *eval.Scope, pos int, def float64, names ...string) float64 {
	e := al.expr(pos, names...)
	if e == nil {
		return def
	}
	res := eval.Evaluate(e, sc)
	if !res.IsOk() {
		return def
	}
	if n, ok := eval.AsNumber(res.Value()); ok {
		return n
	}
	return def
}

func (al argLookup) boolean(sc *eval.Scope, pos int, def bool, names ...string) bool {
	e := al.expr(pos, names...)
	if e == nil {
		return def
	}
	res := eval.Evaluate(e, sc)
	if !res.IsOk() {
		return def
	}
	if b, ok := eval.AsBool(res.Value()); ok {
		return b
	}
	return def
}

func (al argLookup) vec3(sc *eval.Scope, pos int, def ast.Vec3, names ...string) ast.Vec3 {
	e := al.expr(pos, names...)
	if e == nil {
		return def
	}
	res := eval.Evaluate(e, sc)
	if !res.IsOk() {
		return def
	}
	if x, y, z, ok := eval.AsVec3(res.Value()); ok {
		return ast.Vec3{X: x, Y: y, Z: z}
	}
	return def
}

func (al argLookup) vec2(sc *eval.Scope, pos int, def ast.Vec2, names ...string) ast.Vec2 {
	e := al.expr(pos, names...)
	if e == nil {
		return def
	}
	res := eval.Evaluate(e, sc)
	if !res.IsOk() {
		return def
	}
	switch v := res.Value().(type) {
	case eval.Number:
		f := float64(v)
		return ast.Vec2{X: f, Y: f}
	case eval.Vector:
		x, y, _, ok := eval.AsVec3(v)
		if ok {
			return ast.Vec2{X: x, Y: y}
		}
	}
	return def
}

func (al argLookup) str(sc *eval.Scope, pos int, def string, names ...string) string {
	e := al.expr(pos, names...)
	if e == nil {
		return def
	}
	res := eval.Evaluate(e, sc)
	if !res.IsOk() {
		return def
	}
	if s, ok := res.Value().(eval.Str); ok {
		return string(s)
	}
	return def
}

// synthesizeBuiltin rewrites a builtin call into the structured node the
// dispatcher already handles. The second return is false when the name is
// not a builtin.
func (c *Converter) synthesizeBuiltin(ctx *Context, name string, call ast.CallData, n *ast.Node) (*ast.Node, bool) {
	kind := ast.KindFromString(name)
	if kind == ast.KindUnknown {
		return nil, false
	}
	al := lookupArgs(call.Args)
	sc := ctx.Scope

	out := &ast.Node{
		Kind:     kind,
		RawType:  name,
		Span:     n.Span,
		Children: n.Children,
	}

	switch kind {
	case ast.KindCube:
		out.Data = ast.CubeData{
			Size:   al.vec3(sc, 0, ast.Vec3{X: 1, Y: 1, Z: 1}, "size"),
			Center: al.boolean(sc, 1, false, "center"),
		}
	case ast.KindSphere:
		r := al.float(sc, 0, 0, "r", "radius")
		if d := al.float(sc, -1, 0, "d"); d > 0 && r == 0 {
			r = d / 2
		}
		if r == 0 {
			r = 1
		}
		out.Data = ast.SphereData{Radius: r}
	case ast.KindCylinder:
		// Positional form is cylinder(h, r1, r2); a named r sets both ends.
		r := al.float(sc, -1, 1, "r")
		out.Data = ast.CylinderData{
			Height: al.float(sc, 0, 1, "h", "height"),
			R1:     al.float(sc, 1, r, "r1"),
			R2:     al.float(sc, 2, r, "r2"),
			Center: al.boolean(sc, -1, false, "center"),
		}
	case ast.KindCircle:
		r := al.float(sc, 0, 1, "r", "radius")
		out.Data = ast.CircleData{Radius: r}
	case ast.KindSquare:
		out.Data = ast.SquareData{
			Size:   al.vec2(sc, 0, ast.Vec2{X: 1, Y: 1}, "size"),
			Center: al.boolean(sc, 1, false, "center"),
		}
	case ast.KindPolygon:
		out.Data = ast.PolygonData{Points: al.points(sc, 0, "points")}
	case ast.KindText:
		out.Data = ast.TextData{
			Text: al.str(sc, 0, "", "text"),
			Size: al.float(sc, -1, 10, "size"),
			Font: al.str(sc, -1, "", "font"),
		}
	case ast.KindTranslate:
		out.Data = ast.TranslateData{Vector: al.vec3(sc, 0, ast.Vec3{}, "v")}
	case ast.KindRotate:
		out.Data = ast.RotateData{Angles: al.vec3(sc, 0, ast.Vec3{}, "a", "v")}
	case ast.KindScale:
		out.Data = ast.ScaleData{Factors: al.vec3(sc, 0, ast.Vec3{X: 1, Y: 1, Z: 1}, "v")}
	case ast.KindMirror:
		out.Data = ast.MirrorData{Normal: al.vec3(sc, 0, ast.Vec3{}, "v")}
	case ast.KindLinearExtrude:
		out.Data = ast.LinearExtrudeData{
			Height:   al.float(sc, 0, 1, "height", "h"),
			Center:   al.boolean(sc, -1, false, "center"),
			Twist:    al.float(sc, -1, 0, "twist"),
			ScaleTop: al.vec2(sc, -1, ast.Vec2{X: 1, Y: 1}, "scale"),
			Slices:   int(al.float(sc, -1, 0, "slices")),
		}
	case ast.KindRotateExtrude:
		out.Data = ast.RotateExtrudeData{
			Angle:     al.float(sc, -1, 360, "angle"),
			Convexity: int(al.float(sc, -1, 0, "convexity")),
		}
	case ast.KindUnion, ast.KindIntersection, ast.KindDifference:
		// No parameters; children carry the operands.
	default:
		// Builtin kinds that cannot be synthesized from a call form
		// (module_definition etc.) are not routable here.
		return nil, false
	}
	return out, true
}

// points extracts a [[x,y], ...] argument into polygon points.
func (al argLookup) points(sc *eval.Scope, pos int, names ...string) []ast.Vec2 {
	e := al.expr(pos, names...)
	if e == nil {
		return nil
	}
	res := eval.Evaluate(e, sc)
	if !res.IsOk() {
		return nil
	}
	vec, ok := res.Value().(eval.Vector)
	if !ok {
		return nil
	}
	pts := make([]ast.Vec2, 0, len(vec))
	for _, item := range vec {
		x, y, _, ok := eval.AsVec3(item)
		if !ok {
			return nil
		}
		pts = append(pts, ast.Vec2{X: x, Y: y})
	}
	return pts
}
