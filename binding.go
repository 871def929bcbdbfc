package shade

import "fmt"

// VariableID is a handle into a program's resolved variable table.
// IDs are assigned in resolution order during generation, so a given
// bind/append history always yields the same IDs and therefore the
// same generated variable names.
type VariableID int

// linkTarget records that a slot shares its variable with another
// function's slot.
type linkTarget struct {
	fn   *Function
	slot string
}

// Binding declares where a Function slot gets its shader variable:
// either a concrete attribute/uniform/varying, or a link to another
// function's slot (both then resolve to the same VariableID).
type Binding struct {
	Kind Kind
	Type Type

	// Value is the data behind the variable: a render.Field for
	// attributes, a flattenable float value for uniforms, nil for
	// varyings. Never type-checked against the GLSL usage; a mismatch
	// surfaces as a backend compile or draw error.
	Value any

	link *linkTarget
}

// IsLink reports whether the binding is a link to another function's
// slot rather than a concrete variable.
func (b Binding) IsLink() bool { return b.link != nil }

// Link returns the link target, if any.
func (b Binding) Link() (fn *Function, slot string, ok bool) {
	if b.link == nil {
		return nil, "", false
	}
	return b.link.fn, b.link.slot, true
}

// origin identifies the concrete binding a chain of links resolves to.
// Exactly one shader variable exists per origin.
type origin struct {
	fn   *Function
	slot string
}

// variable is one resolved shader variable in a generated program.
type variable struct {
	id    VariableID
	kind  Kind
	typ   Type
	name  string
	value any

	usedVertex   bool
	usedFragment bool
}

func (v *variable) usedIn(st stage) bool {
	if st == stageVertex {
		return v.usedVertex
	}
	return v.usedFragment
}

// registry resolves slot bindings into variables during one generation
// pass. Linked slots resolve to the same VariableID via the byOrigin
// lookup; no mutable state is shared between Functions.
type registry struct {
	vars     []*variable
	byOrigin map[origin]VariableID
}

func newRegistry() *registry {
	return &registry{byOrigin: make(map[origin]VariableID)}
}

// resolve walks the link chain starting at (fn, slot) to its concrete
// binding and returns the variable for it, allocating one on first use.
// The stage is recorded so declarations can be emitted per stage.
func (r *registry) resolve(fn *Function, slot string, st stage) (*variable, error) {
	ofn, oslot := fn, slot
	seen := map[origin]bool{}
	for {
		key := origin{ofn, oslot}
		if seen[key] {
			return nil, fmt.Errorf("%w: starting at function %q slot %q",
				ErrLinkCycle, fn.Name(), slot)
		}
		seen[key] = true
		b, ok := ofn.Binding(oslot)
		if !ok {
			return nil, fmt.Errorf("%w: function %q slot %q",
				ErrUnresolvedSlot, fn.Name(), slot)
		}
		if b.link == nil {
			return r.variableFor(key, b, st), nil
		}
		ofn, oslot = b.link.fn, b.link.slot
	}
}

func (r *registry) variableFor(key origin, b Binding, st stage) *variable {
	var v *variable
	if id, ok := r.byOrigin[key]; ok {
		v = r.vars[id]
	} else {
		id := VariableID(len(r.vars))
		v = &variable{
			id:    id,
			kind:  b.Kind,
			typ:   b.Type,
			name:  identName(b.Kind.prefix(), key.slot, int(id)),
			value: b.Value,
		}
		r.vars = append(r.vars, v)
		r.byOrigin[key] = id
	}
	if st == stageVertex {
		v.usedVertex = true
	} else {
		v.usedFragment = true
	}
	return v
}
