package ast

// ExprKind enumerates expression node kinds.
type ExprKind int

const (
	ExprLiteral ExprKind = iota
	ExprVariable
	ExprBinary
	ExprParen
	ExprSpecialVariable
	ExprFunctionLiteral
	ExprListComprehension
	ExprCall
	ExprUnknown
)

var exprKindNames = map[string]ExprKind{
	"literal":            ExprLiteral,
	"variable":           ExprVariable,
	"binary":             ExprBinary,
	"paren":              ExprParen,
	"special_variable":   ExprSpecialVariable,
	"function_literal":   ExprFunctionLiteral,
	"list_comprehension": ExprListComprehension,
	"call":               ExprCall,
}

func (k ExprKind) String() string {
	for name, kind := range exprKindNames {
		if kind == k {
			return name
		}
	}
	return "unknown"
}

// LitKind enumerates literal value kinds.
type LitKind int

const (
	LitUndef LitKind = iota
	LitNumber
	LitString
	LitBool
	LitVector
)

// Literal is a typed literal value. Vector literals hold element
// expressions so nested expressions like [a+1, 2] survive decoding.
type Literal struct {
	Kind   LitKind
	Number float64
	Str    string
	Bool   bool
	Items  []*Expr
}

// Expr is one expression node. Kind determines which fields are populated:
//
//	ExprLiteral           Value
//	ExprVariable          Name
//	ExprBinary            Op, Left, Right
//	ExprParen             Inner
//	ExprSpecialVariable   Name (including the leading $)
//	ExprFunctionLiteral   Args (parameter defaults), Inner (body)
//	ExprListComprehension Inner
//	ExprCall              Name, Args
type Expr struct {
	Kind  ExprKind
	Value Literal
	Name  string
	Op    string
	Left  *Expr
	Right *Expr
	Inner *Expr
	Args  []*Expr
}

// NumberExpr builds a numeric literal expression. Used by tests and by the
// source-text fallback extraction.
func NumberExpr(n float64) *Expr {
	return &Expr{Kind: ExprLiteral, Value: Literal{Kind: LitNumber, Number: n}}
}

// VarExpr builds a variable reference expression.
func VarExpr(name string) *Expr {
	return &Expr{Kind: ExprVariable, Name: name}
}
