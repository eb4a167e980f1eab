// Package modules stores user module definitions and instantiates them by
// binding call-site arguments against declared parameters.
package modules

import (
	"fmt"

	"github.com/forgecad/scadview/pkg/ast"
	"github.com/forgecad/scadview/pkg/eval"
	"github.com/forgecad/scadview/pkg/result"
)

// Definition is a registered module: its parameter list and body.
type Definition struct {
	Name   string
	Params []ast.Param
	Body   []*ast.Node
}

// Instance is a definition with call-site arguments bound to parameters.
// Unbound holds parameters that had neither an argument nor a default; they
// resolve as undef inside the module body.
type Instance struct {
	Definition *Definition
	Bindings   []BoundParam
	Unbound    []string
}

// BoundParam is one resolved parameter value.
type BoundParam struct {
	Name  string
	Value eval.Value
}

// Registry maps module names to definitions. Re-registration is silent
// last-wins. Not safe for concurrent use; one Registry belongs to one
// conversion pass.
type Registry struct {
	defs map[string]*Definition
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Register stores a module definition node. It fails only when the
// definition is structurally invalid (missing name).
func (r *Registry) Register(n *ast.Node) result.Result[struct{}] {
	data, ok := n.Data.(ast.ModuleDefinitionData)
	if !ok {
		return result.Err[struct{}](fmt.Sprintf("not a module definition: %s", n.Kind))
	}
	if data.Name == "" {
		return result.Err[struct{}]("module definition has no name")
	}
	r.defs[data.Name] = &Definition{
		Name:   data.Name,
		Params: data.Params,
		Body:   n.Children,
	}
	return result.Ok(struct{}{})
}

// Has reports whether a module name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.defs[name]
	return ok
}

// Len returns the number of registered modules.
func (r *Registry) Len() int {
	return len(r.defs)
}

// Instantiate binds call-site arguments to the named module's parameters:
// positional arguments first in declared order, then named arguments
// (overriding positional), then declared defaults evaluated in the caller's
// scope. Parameters left without any value are reported as unbound.
func (r *Registry) Instantiate(name string, args []ast.Argument, sc *eval.Scope) result.Result[*Instance] {
	def, ok := r.defs[name]
	if !ok {
		return result.Err[*Instance]("module not registered: " + name)
	}

	bound := make(map[string]eval.Value, len(def.Params))

	var positional []ast.Argument
	named := make(map[string]*ast.Expr)
	for _, a := range args {
		if a.Name == "" {
			positional = append(positional, a)
		} else {
			named[a.Name] = a.Value
		}
	}

	for i, p := range def.Params {
		if i >= len(positional) {
			break
		}
		bound[p.Name] = argValue(positional[i].Value, sc)
	}
	for pname, expr := range named {
		if !hasParam(def.Params, pname) {
			// Unknown named arguments are ignored, matching the lenient
			// call handling elsewhere in the converter.
			continue
		}
		bound[pname] = argValue(expr, sc)
	}

	inst := &Instance{Definition: def}
	for _, p := range def.Params {
		if v, ok := bound[p.Name]; ok {
			inst.Bindings = append(inst.Bindings, BoundParam{Name: p.Name, Value: v})
			continue
		}
		if p.Default != nil {
			if res := eval.Evaluate(p.Default, sc); res.IsOk() {
				inst.Bindings = append(inst.Bindings, BoundParam{Name: p.Name, Value: res.Value()})
				continue
			}
		}
		inst.Unbound = append(inst.Unbound, p.Name)
	}
	return result.Ok(inst)
}

// argValue evaluates an argument expression, degrading to undef when the
// expression is absent or not statically evaluable.
func argValue(expr *ast.Expr, sc *eval.Scope) eval.Value {
	if expr == nil {
		return eval.Null{}
	}
	if res := eval.Evaluate(expr, sc); res.IsOk() {
		return res.Value()
	}
	return eval.Null{}
}

func hasParam(params []ast.Param, name string) bool {
	for _, p := range params {
		if p.Name == name {
			return true
		}
	}
	return false
}
