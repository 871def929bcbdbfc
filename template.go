package shade

import (
	"fmt"
	"regexp"
	"strings"
)

// hookDeclRe matches a hook prototype line such as
// "vec4 map_local_to_nd(vec4);".
var hookDeclRe = regexp.MustCompile(`(?m)^\s*(\w+)\s+(\w+)\s*\(([^)]*)\)\s*;\s*$`)

// Hook is a named insertion point declared by a ShaderTemplate: a
// function prototype whose implementation is supplied at compile time
// by the bound Function (single-slot hook) or chain of Functions.
type Hook struct {
	// Name is the hook function name called by the template's main.
	Name string

	// ReturnType is the GLSL return type, e.g. "vec4" or "void".
	ReturnType string

	// Params are the GLSL parameter types, e.g. ["vec4"].
	Params []string
}

// chainable reports whether the hook can hold a chain of callbacks:
// the members are called sequentially as statements, so the hook must
// be void and take no parameters.
func (h Hook) chainable() bool {
	return h.ReturnType == "void" && len(h.Params) == 0
}

// ShaderTemplate is an immutable shader skeleton: hook prototypes plus
// a fixed main that calls them. Generation replaces the prototypes
// with concrete declarations and function definitions and substitutes
// each hook call-site with the generated implementation.
type ShaderTemplate struct {
	source string
	hooks  []Hook
}

// NewShaderTemplate parses the hook prototypes out of source. The
// template must contain a main definition.
func NewShaderTemplate(source string) (*ShaderTemplate, error) {
	if !strings.Contains(source, "main(") {
		return nil, fmt.Errorf("shade: shader template has no main")
	}
	t := &ShaderTemplate{source: source}
	seen := map[string]bool{}
	for _, m := range hookDeclRe.FindAllStringSubmatch(source, -1) {
		name := m[2]
		if seen[name] {
			return nil, fmt.Errorf("shade: duplicate hook declaration %q", name)
		}
		seen[name] = true
		t.hooks = append(t.hooks, Hook{
			Name:       name,
			ReturnType: m[1],
			Params:     splitParams(m[3]),
		})
	}
	return t, nil
}

func splitParams(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "void" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// Source returns the template text.
func (t *ShaderTemplate) Source() string { return t.source }

// Hooks returns the declared hooks in declaration order.
func (t *ShaderTemplate) Hooks() []Hook {
	out := make([]Hook, len(t.hooks))
	copy(out, t.hooks)
	return out
}

// Hook returns the named hook and whether it is declared.
func (t *ShaderTemplate) Hook(name string) (Hook, bool) {
	for _, h := range t.hooks {
		if h.Name == name {
			return h, true
		}
	}
	return Hook{}, false
}

// body returns the template lines with hook prototype lines removed.
// The remaining text is the fixed part of the generated stage.
func (t *ShaderTemplate) body() []string {
	lines := strings.Split(t.source, "\n")
	out := make([]string, 0, len(lines))
	for _, ln := range lines {
		if m := hookDeclRe.FindStringSubmatch(ln); m != nil {
			if _, ok := t.Hook(m[2]); ok {
				continue
			}
		}
		out = append(out, ln)
	}
	return out
}
