package shade

import (
	"regexp"
	"strconv"
	"strings"
)

// stage identifies a shader stage during generation.
type stage uint8

const (
	stageVertex stage = iota
	stageFragment
)

func (s stage) String() string {
	if s == stageVertex {
		return "vertex"
	}
	return "fragment"
}

// varDecl is one global variable declaration in a generated stage.
type varDecl struct {
	qualifier string
	typ       string
	name      string
}

// funcDef is one generated function definition: a Function rendered
// with its unique name and resolved slots.
type funcDef struct {
	name   string
	source string
}

// stageSource is the intermediate form of one generated shader stage,
// assembled before any text is rendered: declarations, function
// definitions, and the main lines with hook call-sites substituted.
type stageSource struct {
	decls []varDecl
	funcs []funcDef
	main  []string
}

// writer renders a stageSource to GLSL text. Output is deterministic:
// declarations in VariableID order, definitions in arena order, then
// the template body.
type writer struct {
	b strings.Builder
}

func (w *writer) render(s *stageSource) string {
	for _, d := range s.decls {
		w.b.WriteString(d.qualifier)
		w.b.WriteByte(' ')
		w.b.WriteString(d.typ)
		w.b.WriteByte(' ')
		w.b.WriteString(d.name)
		w.b.WriteString(";\n")
	}
	if len(s.decls) > 0 {
		w.b.WriteByte('\n')
	}
	for _, f := range s.funcs {
		w.b.WriteString(f.source)
		w.b.WriteString("\n\n")
	}
	w.b.WriteString(strings.TrimSpace(strings.Join(s.main, "\n")))
	w.b.WriteByte('\n')
	return w.b.String()
}

// identName builds a generated identifier from a kind prefix, a slot
// or function name hint, and the arena or variable id that guarantees
// uniqueness.
func identName(prefix, hint string, id int) string {
	var b strings.Builder
	if prefix != "" {
		b.WriteString(prefix)
		b.WriteByte('_')
	}
	for _, r := range hint {
		if r == '_' || ('0' <= r && r <= '9') ||
			('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	b.WriteByte('_')
	b.WriteString(strconv.Itoa(id))
	return b.String()
}

var leadingWS = regexp.MustCompile(`^[ \t]*`)

// dedent strips the common leading whitespace of all non-empty lines,
// so function templates written as indented raw strings render flush
// left.
func dedent(s string) string {
	lines := strings.Split(s, "\n")
	margin := -1
	for _, ln := range lines {
		if strings.TrimSpace(ln) == "" {
			continue
		}
		ws := len(leadingWS.FindString(ln))
		if margin < 0 || ws < margin {
			margin = ws
		}
	}
	if margin <= 0 {
		return s
	}
	for i, ln := range lines {
		if len(ln) >= margin {
			lines[i] = ln[margin:]
		} else {
			lines[i] = strings.TrimLeft(ln, " \t")
		}
	}
	return strings.Join(lines, "\n")
}
