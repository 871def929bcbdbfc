package shade

import "slices"

// FunctionChain is an ordered sequence of callback Functions attached
// to one chain hook. The generated main body calls the members in
// attachment order; this ordering is a guarantee, because later
// callbacks may depend on variables written by earlier ones (a color
// support function must run before anything reading its varying).
type FunctionChain struct {
	hook  string
	funcs []*Function
}

// NewFunctionChain creates an empty chain for the named hook.
func NewFunctionChain(hook string) *FunctionChain {
	return &FunctionChain{hook: hook}
}

// Hook returns the hook name the chain is attached to.
func (c *FunctionChain) Hook() string { return c.hook }

// Add appends a callback to the end of the chain.
func (c *FunctionChain) Add(fn *Function) {
	c.funcs = append(c.funcs, fn)
}

// Remove removes the first occurrence of fn from the chain, keeping
// the order of the remaining callbacks. It reports whether fn was
// present.
func (c *FunctionChain) Remove(fn *Function) bool {
	for i, f := range c.funcs {
		if f == fn {
			c.funcs = slices.Delete(c.funcs, i, i+1)
			return true
		}
	}
	return false
}

// Len returns the number of callbacks in the chain.
func (c *FunctionChain) Len() int { return len(c.funcs) }

// Functions returns the callbacks in attachment order.
func (c *FunctionChain) Functions() []*Function {
	out := make([]*Function, len(c.funcs))
	copy(out, c.funcs)
	return out
}
