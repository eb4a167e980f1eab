package convert

import (
	"sync/atomic"

	"github.com/forgecad/scadview/pkg/eval"
	"github.com/forgecad/scadview/pkg/modules"
)

// Context bundles the mutable state of one conversion pass: the lexical
// scope stack, the module registry, the immutable configuration, and the
// optional original source text used by fallback parameter extraction.
// It is threaded explicitly through every recursive call so concurrent
// conversions never share state; a Context must not be used by two
// conversions at once.
type Context struct {
	Scope   *eval.Scope
	Modules *modules.Registry
	Config  Config

	source string

	// walkCancel is the abandonment token for the walk currently running
	// against this context. ConvertNode arms it before starting a worker
	// and raises it on timeout or caller cancellation; the dispatcher
	// checks it on every node so an abandoned walk stops mutating the
	// scope and registry before the context is reused.
	walkCancel atomic.Bool
}

// NewContext returns a fresh conversion context with an empty global scope
// and an empty module registry.
func NewContext(cfg Config) *Context {
	return &Context{
		Scope:   eval.NewScope(),
		Modules: modules.NewRegistry(),
		Config:  cfg.withDefaults(),
	}
}

// SetSource installs the original source text for fallback parameter
// extraction. Callers pair it with ClearSource around a conversion pass so
// one pass's text never leaks into another's extraction.
func (c *Context) SetSource(text string) {
	c.source = text
}

// ClearSource drops the installed source text.
func (c *Context) ClearSource() {
	c.source = ""
}

// Source returns the installed source text, or "".
func (c *Context) Source() string {
	return c.source
}

// armWalk clears the abandonment token before a new walk starts. Only
// called while no walk is running against this context.
func (c *Context) armWalk() {
	c.walkCancel.Store(false)
}

// cancelWalk tells the running walk to abandon its pass.
func (c *Context) cancelWalk() {
	c.walkCancel.Store(true)
}

// walkCanceled reports whether the current walk has been abandoned.
func (c *Context) walkCanceled() bool {
	return c.walkCancel.Load()
}

// Reset clears scope and registry for reuse across unrelated conversions.
func (c *Context) Reset() {
	c.Scope.Reset()
	c.Modules = modules.NewRegistry()
	c.ClearSource()
}
