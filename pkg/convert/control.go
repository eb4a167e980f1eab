package convert

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/forgecad/scadview/pkg/ast"
	"github.com/forgecad/scadview/pkg/eval"
)

// Control-flow nodes produce no geometry of their own; their job is to
// mutate scope/registry state or select a subtree. They return the empty
// placeholder so the recursion contract (every node yields some geometry
// result) is upheld.

func (c *Converter) convertModuleDefinition(ctx *Context, n *ast.Node) (geometry, error) {
	if data, ok := n.Data.(ast.ModuleDefinitionData); ok && ctx.Modules.Has(data.Name) {
		// Re-registration is silent last-wins; the log line records it so
		// the policy can be revisited.
		c.log.Debug("module redefined", zap.String("module", data.Name))
	}
	if res := ctx.Modules.Register(n); !res.IsOk() {
		c.log.Warn("invalid module definition ignored", zap.String("reason", res.ErrMsg()))
	}
	return emptyGeometry, nil
}

func (c *Converter) convertAssignment(ctx *Context, n *ast.Node) (geometry, error) {
	data, ok := n.Data.(ast.AssignmentData)
	if !ok {
		return emptyGeometry, nodeDataError(n, "AssignmentData")
	}
	ctx.Scope.Define(data.Name, bindingValue(data.Value, ctx.Scope), spanStart(n))
	return emptyGeometry, nil
}

// convertAssign handles the legacy assign() block: bindings apply in a
// dedicated scope frame around the body, so they do not leak to siblings.
func (c *Converter) convertAssign(ctx *Context, n *ast.Node) (geometry, error) {
	data, ok := n.Data.(ast.AssignData)
	if !ok {
		return emptyGeometry, nodeDataError(n, "AssignData")
	}
	ctx.Scope.Enter("assign")
	defer ctx.Scope.Exit()
	for _, b := range data.Bindings {
		ctx.Scope.Define(b.Name, bindingValue(b.Value, ctx.Scope), spanStart(n))
	}
	return c.convertChildren(ctx, n.Children)
}

func (c *Converter) convertIf(ctx *Context, n *ast.Node) (geometry, error) {
	data, ok := n.Data.(ast.IfData)
	if !ok {
		return emptyGeometry, nodeDataError(n, "IfData")
	}
	res := eval.Evaluate(data.Condition, ctx.Scope)
	if !res.IsOk() {
		c.log.Debug("if condition not statically evaluable, using placeholder",
			zap.String("reason", res.ErrMsg()))
		return emptyGeometry, nil
	}
	cond, ok := eval.AsBool(res.Value())
	if !ok {
		return emptyGeometry, nil
	}
	branch := data.Then
	if !cond {
		branch = data.Else
	}
	if len(branch) == 0 {
		return emptyGeometry, nil
	}
	// Only the first statement of the selected branch is converted.
	return c.convertNode(ctx, branch[0])
}

// convertForLoop executes the loop body exactly once with the iterator
// bound to the range start. Full range iteration is a known gap tracked
// against the OpenSCAD semantics; the decoded range is preserved on the
// node so iteration can be added without a wire-format change.
func (c *Converter) convertForLoop(ctx *Context, n *ast.Node) (geometry, error) {
	data, ok := n.Data.(ast.ForData)
	if !ok {
		return emptyGeometry, nodeDataError(n, "ForData")
	}
	ctx.Scope.Enter("for")
	defer ctx.Scope.Exit()
	if data.Variable != "" {
		ctx.Scope.Define(data.Variable, bindingValue(data.Start, ctx.Scope), spanStart(n))
	}
	c.log.Debug("for loop body executed once", zap.String("variable", data.Variable))
	return c.convertChildren(ctx, n.Children)
}

// convertExpression branches on the wrapped expression's own kind: call
// expressions route through the function/module dispatcher; everything
// else is statically evaluated for its side-effect-free value and yields
// the placeholder.
func (c *Converter) convertExpression(ctx *Context, n *ast.Node) (geometry, error) {
	data, ok := n.Data.(ast.ExpressionData)
	if !ok {
		return emptyGeometry, nodeDataError(n, "ExpressionData")
	}
	e := data.Expr
	if e == nil {
		return emptyGeometry, nil
	}
	switch e.Kind {
	case ast.ExprCall:
		args := make([]ast.Argument, 0, len(e.Args))
		for _, a := range e.Args {
			args = append(args, ast.Argument{Value: a})
		}
		call := &ast.Node{
			Kind:    ast.KindFunctionCall,
			RawType: "function_call",
			Span:    n.Span,
			Data:    ast.CallData{Name: e.Name, Args: args},
		}
		return c.convertNode(ctx, call)

	case ast.ExprFunctionLiteral, ast.ExprListComprehension:
		// Recognized but not given a geometric value.
		return emptyGeometry, nil

	default:
		if res := eval.Evaluate(e, ctx.Scope); !res.IsOk() {
			c.log.Debug("expression not statically evaluable",
				zap.String("reason", res.ErrMsg()))
		}
		return emptyGeometry, nil
	}
}

// convertCall routes function_call and module_instantiation nodes: builtin
// names synthesize the matching primitive/transform/boolean node; names in
// the module registry instantiate the module body in a fresh scope frame;
// anything else is a typed failure that propagates to the caller.
func (c *Converter) convertCall(ctx *Context, n *ast.Node) (geometry, error) {
	data, ok := n.Data.(ast.CallData)
	if !ok {
		return emptyGeometry, nodeDataError(n, "CallData")
	}
	name := data.Name
	if leading := leadingIdentifier(name); leading != "" {
		// The stored value may be full call text; reduce it to the callee.
		name = leading
	}
	if name == "" {
		return emptyGeometry, fmt.Errorf("call node has no resolvable callee name")
	}

	if syn, ok := c.synthesizeBuiltin(ctx, name, data, n); ok {
		return c.convertNode(ctx, syn)
	}

	if ctx.Modules.Has(name) {
		return c.instantiateModule(ctx, name, data.Args)
	}

	return emptyGeometry, fmt.Errorf("unsupported function: %s", name)
}

// instantiateModule binds arguments against the registered definition and
// converts the body in a freshly pushed scope frame. The frame is popped
// regardless of conversion outcome so failures never leak scope depth.
func (c *Converter) instantiateModule(ctx *Context, name string, args []ast.Argument) (geometry, error) {
	res := ctx.Modules.Instantiate(name, args, ctx.Scope)
	if !res.IsOk() {
		return emptyGeometry, fmt.Errorf("module %s: %s", name, res.ErrMsg())
	}
	inst := res.Value()

	ctx.Scope.Enter(name)
	defer ctx.Scope.Exit()
	for _, b := range inst.Bindings {
		ctx.Scope.Define(b.Name, b.Value, nil)
	}
	for _, u := range inst.Unbound {
		ctx.Scope.Define(u, eval.Null{}, nil)
	}
	return c.convertChildren(ctx, inst.Definition.Body)
}

// bindingValue evaluates an assignment's right-hand side, degrading to
// undef when it is absent or not statically evaluable.
func bindingValue(e *ast.Expr, sc *eval.Scope) eval.Value {
	if e == nil {
		return eval.Null{}
	}
	if res := eval.Evaluate(e, sc); res.IsOk() {
		return res.Value()
	}
	return eval.Null{}
}

func spanStart(n *ast.Node) *ast.Position {
	if n.Span == nil {
		return nil
	}
	pos := n.Span.Start
	return &pos
}
