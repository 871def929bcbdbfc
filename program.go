package shade

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gogpu/shade/render"
)

// ModularProgram owns one vertex and one fragment ShaderTemplate and a
// mapping from hook name to bound Function(s). On Draw it resolves all
// bindings, generates the final GLSL for both stages, compiles it
// through the render.Device when the text changed since the last draw,
// and issues the draw call with the current attribute and uniform
// values.
//
// Binding changes recorded before a Draw are always visible in that
// draw's generated shader: the source is regenerated every Draw and
// only the device compilation is cached.
type ModularProgram struct {
	device render.Device
	label  string

	vertex   *ShaderTemplate
	fragment *ShaderTemplate

	single map[string]*Function
	chains map[string]*FunctionChain

	lastVertex   string
	lastFragment string
	compiled     render.Program
}

// ProgramOption configures a ModularProgram during creation.
type ProgramOption func(*ModularProgram)

// WithLabel sets the debug label passed to the device on compilation.
func WithLabel(label string) ProgramOption {
	return func(p *ModularProgram) {
		p.label = label
	}
}

// NewModularProgram creates a program from vertex and fragment template
// source. A nil device falls back to a render.NullDevice so that
// composition works headlessly.
func NewModularProgram(device render.Device, vertexSource, fragmentSource string, opts ...ProgramOption) (*ModularProgram, error) {
	vt, err := NewShaderTemplate(vertexSource)
	if err != nil {
		return nil, fmt.Errorf("vertex template: %w", err)
	}
	ft, err := NewShaderTemplate(fragmentSource)
	if err != nil {
		return nil, fmt.Errorf("fragment template: %w", err)
	}
	if device == nil {
		device = render.NewNullDevice()
	}
	p := &ModularProgram{
		device:   device,
		label:    "modular",
		vertex:   vt,
		fragment: ft,
		single:   make(map[string]*Function),
		chains:   make(map[string]*FunctionChain),
	}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// VertexTemplate returns the vertex stage template.
func (p *ModularProgram) VertexTemplate() *ShaderTemplate { return p.vertex }

// FragmentTemplate returns the fragment stage template.
func (p *ModularProgram) FragmentTemplate() *ShaderTemplate { return p.fragment }

// hook looks the name up in both templates.
func (p *ModularProgram) hook(name string) (Hook, stage, bool) {
	if h, ok := p.vertex.Hook(name); ok {
		return h, stageVertex, true
	}
	if h, ok := p.fragment.Hook(name); ok {
		return h, stageFragment, true
	}
	return Hook{}, 0, false
}

// AddChain declares the named hook as a chain hook: an ordered
// sequence of callbacks instead of a single function. The hook must be
// declared void with no parameters, since the members are called
// sequentially as statements. A chain may stay empty.
func (p *ModularProgram) AddChain(hook string) error {
	h, _, ok := p.hook(hook)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownHook, hook)
	}
	if !h.chainable() {
		return fmt.Errorf("shade: hook %q is %s(%s), chain hooks must be void()",
			hook, h.ReturnType, strings.Join(h.Params, ", "))
	}
	if _, ok := p.single[hook]; ok {
		return fmt.Errorf("shade: hook %q already bound as single-slot", hook)
	}
	if _, ok := p.chains[hook]; !ok {
		p.chains[hook] = NewFunctionChain(hook)
	}
	return nil
}

// boundAt returns the hook the function currently serves, either as a
// single-slot binding or as a chain member.
func (p *ModularProgram) boundAt(fn *Function) (string, bool) {
	for hook, f := range p.single {
		if f == fn {
			return hook, true
		}
	}
	for hook, c := range p.chains {
		for _, f := range c.Functions() {
			if f == fn {
				return hook, true
			}
		}
	}
	return "", false
}

// SetHook binds fn to a single-slot hook, replacing any previous
// binding wholesale. A Function instance serves at most one hook at a
// time: each instance gets exactly one generated name, so binding it
// to a second hook would leave one of the call-sites dangling.
// Rebinding the same hook is always allowed.
func (p *ModularProgram) SetHook(hook string, fn *Function) error {
	if _, _, ok := p.hook(hook); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownHook, hook)
	}
	if _, ok := p.chains[hook]; ok {
		return fmt.Errorf("shade: hook %q is a chain, use AddCallback", hook)
	}
	if fn == nil {
		return fmt.Errorf("shade: hook %q: function must not be nil", hook)
	}
	if at, ok := p.boundAt(fn); ok && at != hook {
		return fmt.Errorf("shade: function %q already bound to hook %q", fn.Name(), at)
	}
	p.single[hook] = fn
	return nil
}

// UnsetHook removes the binding of a single-slot hook. Unknown or
// unbound hooks are a no-op.
func (p *ModularProgram) UnsetHook(hook string) {
	delete(p.single, hook)
}

// BoundFunction returns the Function bound to a single-slot hook.
func (p *ModularProgram) BoundFunction(hook string) (*Function, bool) {
	fn, ok := p.single[hook]
	return fn, ok
}

// AddCallback appends fn to a chain hook. The callback runs after all
// previously attached ones. A Function instance serves at most one
// hook, so attaching one that is already bound anywhere (including the
// same chain) is an error.
func (p *ModularProgram) AddCallback(hook string, fn *Function) error {
	c, ok := p.chains[hook]
	if !ok {
		return fmt.Errorf("shade: hook %q is not a chain (declare it with AddChain)", hook)
	}
	if fn == nil {
		return fmt.Errorf("shade: hook %q: callback must not be nil", hook)
	}
	if at, ok := p.boundAt(fn); ok {
		return fmt.Errorf("shade: function %q already bound to hook %q", fn.Name(), at)
	}
	c.Add(fn)
	return nil
}

// RemoveCallback removes fn from a chain hook. Removing a callback
// that is not attached is a no-op.
func (p *ModularProgram) RemoveCallback(hook string, fn *Function) error {
	c, ok := p.chains[hook]
	if !ok {
		return fmt.Errorf("shade: hook %q is not a chain", hook)
	}
	c.Remove(fn)
	return nil
}

// Callbacks returns the chain members of a chain hook in attachment
// order, or nil for non-chain hooks.
func (p *ModularProgram) Callbacks(hook string) []*Function {
	c, ok := p.chains[hook]
	if !ok {
		return nil
	}
	return c.Functions()
}

// compiledFunc is one entry in the per-generation function arena. The
// arena index is the handle that makes the generated name unique.
type compiledFunc struct {
	fn     *Function
	stage  stage
	unique string
}

// generated holds the outcome of one generation pass.
type generated struct {
	vertexSource   string
	fragmentSource string
	vars           []*variable
}

// GenerateSource resolves all bindings and returns the generated GLSL
// for both stages without compiling or drawing. Identical binding
// histories return byte-identical source.
func (p *ModularProgram) GenerateSource() (vertexSource, fragmentSource string, err error) {
	g, err := p.generate()
	if err != nil {
		return "", "", err
	}
	return g.vertexSource, g.fragmentSource, nil
}

func (p *ModularProgram) generate() (*generated, error) {
	arena, err := p.buildArena()
	if err != nil {
		return nil, err
	}

	reg := newRegistry()
	for i := range arena {
		cf := &arena[i]
		cf.unique = identName("", cf.fn.Name(), i)
	}
	// Render every function through the shared registry so that
	// variables linked across stages resolve to one VariableID.
	rendered := make([]funcDef, len(arena))
	for i := range arena {
		cf := &arena[i]
		src, err := cf.fn.render(cf.unique, func(slot string) (string, error) {
			v, err := reg.resolve(cf.fn, slot, cf.stage)
			if err != nil {
				return "", err
			}
			return v.name, nil
		})
		if err != nil {
			return nil, err
		}
		rendered[i] = funcDef{name: cf.unique, source: src}
	}

	vs, err := p.stageText(p.vertex, stageVertex, arena, rendered, reg)
	if err != nil {
		return nil, err
	}
	fs, err := p.stageText(p.fragment, stageFragment, arena, rendered, reg)
	if err != nil {
		return nil, err
	}
	return &generated{
		vertexSource:   vs,
		fragmentSource: fs,
		vars:           reg.vars,
	}, nil
}

// buildArena collects the bound functions in deterministic order:
// vertex hooks before fragment hooks, each template's hooks in
// declaration order, chain members in attachment order. Every declared
// hook must be bound or a declared chain; otherwise ErrMissingHook.
func (p *ModularProgram) buildArena() ([]compiledFunc, error) {
	var arena []compiledFunc
	add := func(t *ShaderTemplate, st stage) error {
		for _, h := range t.Hooks() {
			if c, ok := p.chains[h.Name]; ok {
				for _, fn := range c.Functions() {
					arena = append(arena, compiledFunc{fn: fn, stage: st})
				}
				continue
			}
			fn, ok := p.single[h.Name]
			if !ok {
				return fmt.Errorf("%w: %q", ErrMissingHook, h.Name)
			}
			arena = append(arena, compiledFunc{fn: fn, stage: st})
		}
		return nil
	}
	if err := add(p.vertex, stageVertex); err != nil {
		return nil, err
	}
	if err := add(p.fragment, stageFragment); err != nil {
		return nil, err
	}
	return arena, nil
}

// stageText assembles and renders the text of one stage: variable
// declarations for everything the stage uses, the stage's function
// definitions, and the template body with hook call-sites substituted.
func (p *ModularProgram) stageText(t *ShaderTemplate, st stage, arena []compiledFunc, rendered []funcDef, reg *registry) (string, error) {
	ir := &stageSource{}
	for _, v := range reg.vars {
		if !v.usedIn(st) {
			continue
		}
		ir.decls = append(ir.decls, varDecl{
			qualifier: v.kind.String(),
			typ:       v.typ.String(),
			name:      v.name,
		})
	}
	for i := range arena {
		if arena[i].stage == st {
			ir.funcs = append(ir.funcs, rendered[i])
		}
	}
	main, err := p.spliceMain(t, arena)
	if err != nil {
		return "", err
	}
	ir.main = main
	w := &writer{}
	return w.render(ir), nil
}

// spliceMain substitutes hook call-sites in the template body: a
// single-slot hook call becomes a call of the bound function's unique
// name; a chain hook statement expands to one call statement per
// member, in attachment order, or disappears when the chain is empty.
func (p *ModularProgram) spliceMain(t *ShaderTemplate, arena []compiledFunc) ([]string, error) {
	uniqueFor := func(fn *Function) string {
		for i := range arena {
			if arena[i].fn == fn {
				return arena[i].unique
			}
		}
		return ""
	}

	var out []string
	for _, line := range t.body() {
		expanded := false
		for _, h := range t.Hooks() {
			c, isChain := p.chains[h.Name]
			if !isChain {
				continue
			}
			trimmed := strings.TrimSpace(line)
			if trimmed != h.Name+"();" {
				continue
			}
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			for _, fn := range c.Functions() {
				out = append(out, indent+uniqueFor(fn)+"();")
			}
			expanded = true
			break
		}
		if expanded {
			continue
		}
		for _, h := range t.Hooks() {
			if _, isChain := p.chains[h.Name]; isChain {
				continue
			}
			fn := p.single[h.Name]
			if fn == nil {
				continue
			}
			re := callSiteRe(h.Name)
			line = re.ReplaceAllString(line, uniqueFor(fn)+"(")
		}
		out = append(out, line)
	}
	return out, nil
}

// callSiteRe matches a call of the hook by name, e.g. "local_position(".
func callSiteRe(hook string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(hook) + `\s*\(`)
}

// Draw ensures the program is compiled for the current bindings and
// issues one draw call. The caller provides topology, vertex buffer,
// count, and line state in call; Draw fills call.Attributes and
// call.Uniforms from the resolved variable table.
//
// Generated source is compared byte-for-byte against the last compiled
// source: value-only binding updates reuse the compiled program, any
// text change recompiles before the draw. A backend rejection wraps
// ErrShaderCompile and carries the stage and diagnostic verbatim.
func (p *ModularProgram) Draw(call render.DrawCall) error {
	g, err := p.generate()
	if err != nil {
		return err
	}
	if p.compiled == nil || g.vertexSource != p.lastVertex || g.fragmentSource != p.lastFragment {
		prog, err := p.device.CompileProgram(render.ProgramDescriptor{
			Label:          p.label,
			VertexSource:   g.vertexSource,
			FragmentSource: g.fragmentSource,
		})
		if err != nil {
			return fmt.Errorf("%w: %w", ErrShaderCompile, err)
		}
		if p.compiled != nil {
			p.compiled.Destroy()
		}
		p.compiled = prog
		p.lastVertex = g.vertexSource
		p.lastFragment = g.fragmentSource
		Logger().Debug("shade: program compiled",
			"label", p.label,
			"variables", len(g.vars),
			"vertexBytes", len(g.vertexSource),
			"fragmentBytes", len(g.fragmentSource))
	}

	call.Attributes = call.Attributes[:0]
	call.Uniforms = call.Uniforms[:0]
	for _, v := range g.vars {
		switch v.kind {
		case Attribute:
			field, ok := v.value.(render.Field)
			if !ok {
				return fmt.Errorf("shade: attribute %s has no vertex buffer field", v.name)
			}
			call.Attributes = append(call.Attributes, render.AttributeBinding{
				Name:  v.name,
				Field: field,
			})
		case Uniform:
			vals, err := uniformFloats(v.value)
			if err != nil {
				return fmt.Errorf("shade: uniform %s: %w", v.name, err)
			}
			if len(vals) != v.typ.Components() {
				return fmt.Errorf("shade: uniform %s: %d floats for %s",
					v.name, len(vals), v.typ)
			}
			call.Uniforms = append(call.Uniforms, render.UniformBinding{
				Name:  v.name,
				Value: vals,
			})
		}
	}
	return p.compiled.Draw(call)
}

// Release destroys the compiled program and clears the source cache.
// The next Draw recompiles from scratch.
func (p *ModularProgram) Release() {
	if p.compiled != nil {
		p.compiled.Destroy()
		p.compiled = nil
	}
	p.lastVertex = ""
	p.lastFragment = ""
}

// uniformFloats flattens a uniform value to its float32 components.
func uniformFloats(value any) ([]float32, error) {
	switch v := value.(type) {
	case float32:
		return []float32{v}, nil
	case float64:
		return []float32{float32(v)}, nil
	case [2]float32:
		return v[:], nil
	case [3]float32:
		return v[:], nil
	case [4]float32:
		return v[:], nil
	case [16]float32:
		return v[:], nil
	case []float32:
		out := make([]float32, len(v))
		copy(out, v)
		return out, nil
	case nil:
		return nil, fmt.Errorf("no value set")
	default:
		return nil, fmt.Errorf("unsupported value type %T", value)
	}
}
