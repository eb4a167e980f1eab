package eval

import (
	"github.com/forgecad/scadview/pkg/ast"
	"github.com/forgecad/scadview/pkg/result"
)

// Binding is one name→value entry, tagged with the position of the
// defining statement when known.
type Binding struct {
	Name  string
	Value Value
	Pos   *ast.Position
}

// frame is one level of the lexical scope stack.
type frame struct {
	label string
	vars  map[string]Binding
}

// Scope is a stack of lexical frames. The base frame is the global scope
// and can never be popped. Scope is not safe for concurrent use; one Scope
// belongs to one conversion pass.
type Scope struct {
	frames []frame
}

// NewScope returns a scope holding a single empty global frame.
func NewScope() *Scope {
	s := &Scope{}
	s.Reset()
	return s
}

// Enter pushes a new empty frame. The label identifies the frame in
// diagnostics (typically the module name being instantiated).
func (s *Scope) Enter(label string) {
	s.frames = append(s.frames, frame{label: label, vars: make(map[string]Binding)})
}

// Exit pops the current frame. Popping the global frame is an error and
// leaves the scope unchanged.
func (s *Scope) Exit() result.Result[struct{}] {
	if len(s.frames) <= 1 {
		return result.Err[struct{}]("cannot exit the global scope")
	}
	s.frames = s.frames[:len(s.frames)-1]
	return result.Ok(struct{}{})
}

// Define inserts or overwrites a binding in the innermost frame only.
// Shadowing an outer binding never mutates it.
func (s *Scope) Define(name string, v Value, pos *ast.Position) result.Result[struct{}] {
	top := &s.frames[len(s.frames)-1]
	top.vars[name] = Binding{Name: name, Value: v, Pos: pos}
	return result.Ok(struct{}{})
}

// Resolve searches frames innermost-first and returns the first binding.
func (s *Scope) Resolve(name string) result.Result[Value] {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if b, ok := s.frames[i].vars[name]; ok {
			return result.Ok(b.Value)
		}
	}
	return result.Err[Value]("undefined variable: " + name)
}

// Depth returns the number of frames, including the global frame.
func (s *Scope) Depth() int {
	return len(s.frames)
}

// Reset clears all frames back to a single empty global frame.
func (s *Scope) Reset() {
	s.frames = []frame{{label: "global", vars: make(map[string]Binding)}}
}
