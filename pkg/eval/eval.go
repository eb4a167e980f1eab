package eval

import (
	"math"

	"github.com/forgecad/scadview/pkg/ast"
	"github.com/forgecad/scadview/pkg/result"
)

// Evaluate attempts static evaluation of an expression against the given
// scope. It never panics for unsupported shapes: anything that cannot be
// reduced to a concrete value yields a failure result, which callers treat
// as "fall back to default/placeholder", not as a fatal error.
func Evaluate(e *ast.Expr, sc *Scope) result.Result[Value] {
	if e == nil {
		return result.Err[Value]("nil expression")
	}

	switch e.Kind {
	case ast.ExprLiteral:
		return evalLiteral(e.Value, sc)

	case ast.ExprVariable:
		if sc != nil {
			if r := sc.Resolve(e.Name); r.IsOk() {
				return r
			}
		}
		return result.Err[Value]("unresolved variable: " + e.Name)

	case ast.ExprParen:
		return Evaluate(e.Inner, sc)

	case ast.ExprBinary:
		return evalBinary(e, sc)

	case ast.ExprSpecialVariable:
		// Special variables ($fn, $t, ...) evaluate to 0 when no runtime
		// context is bound. A scope binding takes precedence.
		if sc != nil {
			if r := sc.Resolve(e.Name); r.IsOk() {
				return r
			}
		}
		return result.Ok[Value](Number(0))

	case ast.ExprFunctionLiteral, ast.ExprListComprehension:
		// Recognized but intentionally not reduced to a geometric value.
		return result.Err[Value]("not statically evaluable: " + e.Kind.String())

	case ast.ExprCall:
		return result.Err[Value]("not statically evaluable: call to " + e.Name)
	}

	return result.Err[Value]("not statically evaluable: " + e.Kind.String())
}

func evalLiteral(lit ast.Literal, sc *Scope) result.Result[Value] {
	switch lit.Kind {
	case ast.LitNumber:
		return result.Ok[Value](Number(lit.Number))
	case ast.LitString:
		return result.Ok[Value](Str(lit.Str))
	case ast.LitBool:
		return result.Ok[Value](Bool(lit.Bool))
	case ast.LitUndef:
		return result.Ok[Value](Null{})
	case ast.LitVector:
		vec := make(Vector, 0, len(lit.Items))
		for _, item := range lit.Items {
			r := Evaluate(item, sc)
			if !r.IsOk() {
				return result.Err[Value]("vector element: " + r.ErrMsg())
			}
			vec = append(vec, r.Value())
		}
		return result.Ok[Value](vec)
	}
	return result.Err[Value]("unsupported literal kind")
}

func evalBinary(e *ast.Expr, sc *Scope) result.Result[Value] {
	left := Evaluate(e.Left, sc)
	if !left.IsOk() {
		return left
	}
	right := Evaluate(e.Right, sc)
	if !right.IsOk() {
		return right
	}

	lv, rv := left.Value(), right.Value()

	// Logical operators accept booleans and numbers.
	switch e.Op {
	case "&&", "||":
		lb, lok := AsBool(lv)
		rb, rok := AsBool(rv)
		if !lok || !rok {
			return result.Err[Value]("logical operand is not boolean-like")
		}
		if e.Op == "&&" {
			return result.Ok[Value](Bool(lb && rb))
		}
		return result.Ok[Value](Bool(lb || rb))
	case "==":
		return result.Ok[Value](Bool(Equal(lv, rv)))
	case "!=":
		return result.Ok[Value](Bool(!Equal(lv, rv)))
	}

	ln, lok := AsNumber(lv)
	rn, rok := AsNumber(rv)
	if !lok || !rok {
		return result.Err[Value]("arithmetic on non-numeric operands (" +
			typeName(lv) + ", " + typeName(rv) + ")")
	}

	switch e.Op {
	case "+":
		return result.Ok[Value](Number(ln + rn))
	case "-":
		return result.Ok[Value](Number(ln - rn))
	case "*":
		return result.Ok[Value](Number(ln * rn))
	case "/":
		if rn == 0 {
			return result.Err[Value]("division by zero")
		}
		return result.Ok[Value](Number(ln / rn))
	case "%":
		if rn == 0 {
			return result.Err[Value]("modulo by zero")
		}
		return result.Ok[Value](Number(math.Mod(ln, rn)))
	case "<":
		return result.Ok[Value](Bool(ln < rn))
	case "<=":
		return result.Ok[Value](Bool(ln <= rn))
	case ">":
		return result.Ok[Value](Bool(ln > rn))
	case ">=":
		return result.Ok[Value](Bool(ln >= rn))
	}

	return result.Err[Value]("unsupported operator: " + e.Op)
}
