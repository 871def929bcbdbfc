package shade

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	placeholderRe = regexp.MustCompile(`\$(\w+)`)

	// defNameRe matches the placeholder used as the function's own name
	// in its definition, e.g. the $input_xy_pos in
	// "vec4 $input_xy_pos() {".
	defNameRe = regexp.MustCompile(`(?m)^\s*\w+\s+\$(\w+)\s*\(`)
)

// Function is a reusable, parameterized GLSL source fragment. The
// template contains $name placeholders: one names the function itself
// (replaced by a globally unique identifier at compile, so the same
// template can be instantiated several times in one program) and the
// rest are slots bound to typed shader variables via SetBinding or
// linked to other functions' slots via BindSlotTo.
//
//	fn := shade.NewFunction(`
//	    vec4 $input_xy_pos() {
//	        return vec4($xy_pos, $z_pos, 1.0);
//	    }
//	`)
//
// Every slot must be bound before the owning program compiles;
// rendering with an unresolved slot fails with ErrUnresolvedSlot.
type Function struct {
	source   string
	defName  string
	slots    []string
	parseErr error
	bindings map[string]Binding
}

// NewFunction creates a Function from template source. Malformed
// templates (no $name in definition position) are reported when the
// function is first compiled into a program.
func NewFunction(source string) *Function {
	f := &Function{
		source:   source,
		bindings: make(map[string]Binding),
	}
	f.parse()
	return f
}

func (f *Function) parse() {
	m := defNameRe.FindStringSubmatch(f.source)
	if m == nil {
		f.parseErr = fmt.Errorf("shade: function template declares no $name function")
		return
	}
	f.defName = m[1]
	seen := map[string]bool{f.defName: true}
	for _, pm := range placeholderRe.FindAllStringSubmatch(f.source, -1) {
		slot := pm[1]
		if seen[slot] {
			continue
		}
		seen[slot] = true
		f.slots = append(f.slots, slot)
	}
}

// Name returns the template's own function name (without the unique
// suffix applied at compile). Empty for malformed templates.
func (f *Function) Name() string { return f.defName }

// Slots returns the slot names in order of first appearance in the
// template source.
func (f *Function) Slots() []string {
	out := make([]string, len(f.slots))
	copy(out, f.slots)
	return out
}

// SetBinding binds a slot to a concrete shader variable, overwriting
// any prior binding for that slot. Value is a render.Field for
// attributes, a float32 / [N]float32 / []float32 for uniforms, and nil
// for varyings. No type checking is performed against the GLSL usage;
// mismatches surface as backend compile errors.
func (f *Function) SetBinding(slot string, kind Kind, typ Type, value any) {
	f.bindings[slot] = Binding{Kind: kind, Type: typ, Value: value}
}

// BindSlotTo declares that this function's slot receives the same
// underlying shader variable as another function's slot. Both slots
// resolve to one VariableID at compile; the caller must ensure the
// types are compatible. Used for cross-stage sharing via a varying or
// same-stage sharing of an attribute or uniform.
func (f *Function) BindSlotTo(slot string, other *Function, otherSlot string) {
	f.bindings[slot] = Binding{link: &linkTarget{fn: other, slot: otherSlot}}
}

// Binding returns the current binding for a slot, if any.
func (f *Function) Binding(slot string) (Binding, bool) {
	b, ok := f.bindings[slot]
	return b, ok
}

// render produces the final GLSL definition: the $name placeholder is
// replaced by unique, and every slot is substituted with the variable
// name produced by resolve.
func (f *Function) render(unique string, resolve func(slot string) (string, error)) (string, error) {
	if f.parseErr != nil {
		return "", f.parseErr
	}
	var firstErr error
	out := placeholderRe.ReplaceAllStringFunc(f.source, func(m string) string {
		slot := m[1:]
		if slot == f.defName {
			return unique
		}
		name, err := resolve(slot)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return m
		}
		return name
	})
	if firstErr != nil {
		return "", firstErr
	}
	return strings.TrimSpace(dedent(out)), nil
}
