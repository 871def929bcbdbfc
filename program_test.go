package shade

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/shade/render"
)

const testVertexTemplate = `
vec4 local_position();
vec4 map_local_to_nd(vec4);
void vert_post_hook();

void main(void) {
    vec4 local_pos = local_position();
    vec4 nd_pos = map_local_to_nd(local_pos);
    gl_Position = nd_pos;

    vert_post_hook();
}
`

const testFragmentTemplate = `
vec4 frag_color();
void frag_post_hook();

void main(void) {
    gl_FragColor = frag_color();

    frag_post_hook();
}
`

// testProgram builds a program over the line templates with the two
// post-processing chains declared, mirroring how visuals set one up.
func testProgram(t *testing.T, dev render.Device) *ModularProgram {
	t.Helper()
	p, err := NewModularProgram(dev, testVertexTemplate, testFragmentTemplate)
	if err != nil {
		t.Fatal(err)
	}
	for _, hook := range []string{"vert_post_hook", "frag_post_hook"} {
		if err := p.AddChain(hook); err != nil {
			t.Fatal(err)
		}
	}
	return p
}

func posFunction() *Function {
	fn := NewFunction(`
		vec4 $input_xyz_pos() {
		    return vec4($xyz_pos, 1.0);
		}
	`)
	fn.SetBinding("xyz_pos", Attribute, Vec3, render.Field{Name: "pos"})
	return fn
}

func identityTransform() *Function {
	return NewFunction(`
		vec4 $null_transform(vec4 pos) {
		    return pos;
		}
	`)
}

func uniformColorFunction() *Function {
	fn := NewFunction(`
		vec4 $color_input() {
		    return $rgba;
		}
	`)
	fn.SetBinding("rgba", Uniform, Vec4, [4]float32{1, 0, 0, 1})
	return fn
}

// bindAll binds every required single-slot hook.
func bindAll(t *testing.T, p *ModularProgram) {
	t.Helper()
	if err := p.SetHook("local_position", posFunction()); err != nil {
		t.Fatal(err)
	}
	if err := p.SetHook("map_local_to_nd", identityTransform()); err != nil {
		t.Fatal(err)
	}
	if err := p.SetHook("frag_color", uniformColorFunction()); err != nil {
		t.Fatal(err)
	}
}

func TestGenerateSourceDeterministic(t *testing.T) {
	build := func() (string, string) {
		p := testProgram(t, render.NewNullDevice())
		bindAll(t, p)
		vs, fs, err := p.GenerateSource()
		if err != nil {
			t.Fatal(err)
		}
		return vs, fs
	}

	vs1, fs1 := build()
	vs2, fs2 := build()
	if vs1 != vs2 {
		t.Errorf("vertex source differs across identical builds:\n%s\n---\n%s", vs1, vs2)
	}
	if fs1 != fs2 {
		t.Errorf("fragment source differs across identical builds:\n%s\n---\n%s", fs1, fs2)
	}

	// Regenerating from the same program must also be byte-identical.
	p := testProgram(t, render.NewNullDevice())
	bindAll(t, p)
	a1, b1, err := p.GenerateSource()
	if err != nil {
		t.Fatal(err)
	}
	a2, b2, err := p.GenerateSource()
	if err != nil {
		t.Fatal(err)
	}
	if a1 != a2 || b1 != b2 {
		t.Error("repeated GenerateSource on one program is not stable")
	}
}

func TestGeneratedVertexSource(t *testing.T) {
	p := testProgram(t, render.NewNullDevice())
	bindAll(t, p)
	vs, fs, err := p.GenerateSource()
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"attribute vec3 a_xyz_pos_0;",
		"vec4 input_xyz_pos_0() {",
		"vec4 null_transform_1(vec4 pos) {",
		"vec4 local_pos = input_xyz_pos_0();",
		"vec4 nd_pos = null_transform_1(local_pos);",
		"gl_Position = nd_pos;",
	} {
		if !strings.Contains(vs, want) {
			t.Errorf("vertex source missing %q:\n%s", want, vs)
		}
	}
	if strings.Contains(vs, "$") {
		t.Errorf("vertex source contains unsubstituted placeholder:\n%s", vs)
	}
	if strings.Contains(vs, "local_position") {
		t.Errorf("vertex source still mentions the hook name:\n%s", vs)
	}

	for _, want := range []string{
		"uniform vec4 u_rgba_1;",
		"vec4 color_input_2() {",
		"gl_FragColor = color_input_2();",
	} {
		if !strings.Contains(fs, want) {
			t.Errorf("fragment source missing %q:\n%s", want, fs)
		}
	}
	if strings.Contains(fs, "varying") {
		t.Errorf("uniform color program should not declare a varying:\n%s", fs)
	}
}

func TestSingleSlotHookReplaces(t *testing.T) {
	p := testProgram(t, render.NewNullDevice())
	bindAll(t, p)

	first := NewFunction(`
		vec4 $first_color() {
		    return vec4(1.0);
		}
	`)
	second := NewFunction(`
		vec4 $second_color() {
		    return vec4(0.0);
		}
	`)
	if err := p.SetHook("frag_color", first); err != nil {
		t.Fatal(err)
	}
	if err := p.SetHook("frag_color", second); err != nil {
		t.Fatal(err)
	}

	_, fs, err := p.GenerateSource()
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(fs, "first_color") {
		t.Errorf("replaced function still present in output:\n%s", fs)
	}
	if !strings.Contains(fs, "second_color") {
		t.Errorf("replacement function missing from output:\n%s", fs)
	}
}

func TestChainCallbacksInOrder(t *testing.T) {
	p := testProgram(t, render.NewNullDevice())
	bindAll(t, p)

	names := []string{"cb_one", "cb_two", "cb_three"}
	for _, n := range names {
		fn := NewFunction("void $" + n + "() {\n    return;\n}")
		if err := p.AddCallback("vert_post_hook", fn); err != nil {
			t.Fatal(err)
		}
	}

	vs, _, err := p.GenerateSource()
	if err != nil {
		t.Fatal(err)
	}
	last := -1
	for _, n := range names {
		at := strings.Index(vs, n+"_")
		if at < 0 {
			t.Fatalf("callback %q missing from vertex source:\n%s", n, vs)
		}
		if at < last {
			t.Errorf("callback %q generated out of attachment order", n)
		}
		last = at
	}
	// Each callback appears once as a definition and once as a call.
	mainAt := strings.Index(vs, "void main")
	body := vs[mainAt:]
	for _, n := range names {
		if got := strings.Count(body, n+"_"); got != 1 {
			t.Errorf("callback %q called %d times in main, want 1", n, got)
		}
	}
}

func TestMissingHookError(t *testing.T) {
	p := testProgram(t, render.NewNullDevice())
	// local_position deliberately left unbound.
	if err := p.SetHook("map_local_to_nd", identityTransform()); err != nil {
		t.Fatal(err)
	}
	if err := p.SetHook("frag_color", uniformColorFunction()); err != nil {
		t.Fatal(err)
	}

	_, _, err := p.GenerateSource()
	if !errors.Is(err, ErrMissingHook) {
		t.Fatalf("err = %v, want ErrMissingHook", err)
	}
	if !strings.Contains(err.Error(), "local_position") {
		t.Errorf("error %q does not name the missing hook", err)
	}
}

func TestUnresolvedSlotError(t *testing.T) {
	p := testProgram(t, render.NewNullDevice())
	bindAll(t, p)

	fn := NewFunction(`
		vec4 $broken_color() {
		    return $rgba;
		}
	`)
	// rgba left unbound.
	if err := p.SetHook("frag_color", fn); err != nil {
		t.Fatal(err)
	}

	_, _, err := p.GenerateSource()
	if !errors.Is(err, ErrUnresolvedSlot) {
		t.Fatalf("err = %v, want ErrUnresolvedSlot", err)
	}
	for _, want := range []string{"broken_color", "rgba"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestUnknownHookErrors(t *testing.T) {
	p := testProgram(t, render.NewNullDevice())
	if err := p.SetHook("no_such_hook", identityTransform()); !errors.Is(err, ErrUnknownHook) {
		t.Errorf("SetHook err = %v, want ErrUnknownHook", err)
	}
	if err := p.AddChain("no_such_hook"); !errors.Is(err, ErrUnknownHook) {
		t.Errorf("AddChain err = %v, want ErrUnknownHook", err)
	}
}

func TestAddChainRejectsNonVoidHook(t *testing.T) {
	p := testProgram(t, render.NewNullDevice())
	if err := p.AddChain("frag_color"); err == nil {
		t.Error("AddChain on a vec4 hook should fail")
	}
}

func TestFunctionServesOneHook(t *testing.T) {
	p := testProgram(t, render.NewNullDevice())
	bindAll(t, p)

	fn, ok := p.BoundFunction("map_local_to_nd")
	if !ok {
		t.Fatal("map_local_to_nd not bound")
	}
	// Rebinding the hook it already serves stays allowed.
	if err := p.SetHook("map_local_to_nd", fn); err != nil {
		t.Fatalf("rebind of the same hook failed: %v", err)
	}
	// A second hook for the same instance must be rejected: the
	// instance has one generated name, so a second call-site would
	// dangle.
	if err := p.SetHook("frag_color", fn); err == nil {
		t.Error("function accepted on a second hook")
	}
	if err := p.AddCallback("vert_post_hook", fn); err == nil {
		t.Error("single-bound function accepted as a chain callback")
	}

	cb := NewFunction("void $cb() {\n    return;\n}")
	if err := p.AddCallback("vert_post_hook", cb); err != nil {
		t.Fatal(err)
	}
	if err := p.AddCallback("vert_post_hook", cb); err == nil {
		t.Error("duplicate attachment to one chain accepted")
	}
	if err := p.AddCallback("frag_post_hook", cb); err == nil {
		t.Error("callback accepted on a second chain")
	}

	// Removal frees the instance for rebinding elsewhere.
	if err := p.RemoveCallback("vert_post_hook", cb); err != nil {
		t.Fatal(err)
	}
	if err := p.AddCallback("frag_post_hook", cb); err != nil {
		t.Errorf("removed callback not attachable elsewhere: %v", err)
	}
}

func TestLinkedSlotsShareOneVarying(t *testing.T) {
	p := testProgram(t, render.NewNullDevice())
	if err := p.SetHook("local_position", posFunction()); err != nil {
		t.Fatal(err)
	}
	if err := p.SetHook("map_local_to_nd", identityTransform()); err != nil {
		t.Fatal(err)
	}

	frag := NewFunction(`
		vec4 $color_input() {
		    return $rgba;
		}
	`)
	frag.SetBinding("rgba", Varying, Vec4, nil)
	if err := p.SetHook("frag_color", frag); err != nil {
		t.Fatal(err)
	}

	support := NewFunction(`
		void $color_input_support() {
		    $output = $input;
		}
	`)
	support.SetBinding("input", Attribute, Vec4, render.Field{Name: "color"})
	support.BindSlotTo("output", frag, "rgba")
	if err := p.AddCallback("vert_post_hook", support); err != nil {
		t.Fatal(err)
	}

	vs, fs, err := p.GenerateSource()
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(vs, "varying vec4 v_rgba_"); got != 1 {
		t.Errorf("vertex source declares %d varyings, want 1:\n%s", got, vs)
	}
	if got := strings.Count(fs, "varying vec4 v_rgba_"); got != 1 {
		t.Errorf("fragment source declares %d varyings, want 1:\n%s", got, fs)
	}
	// Both stages must use the identical generated name.
	at := strings.Index(vs, "v_rgba_")
	end := at
	for end < len(vs) && vs[end] != ';' {
		end++
	}
	name := vs[at:end]
	if !strings.Contains(fs, name) {
		t.Errorf("fragment source does not share varying %q:\n%s", name, fs)
	}
}

func TestLinkCycleError(t *testing.T) {
	p := testProgram(t, render.NewNullDevice())
	bindAll(t, p)

	a := NewFunction("void $cb_a() {\n    $x;\n}")
	b := NewFunction("void $cb_b() {\n    $y;\n}")
	a.BindSlotTo("x", b, "y")
	b.BindSlotTo("y", a, "x")
	if err := p.AddCallback("vert_post_hook", a); err != nil {
		t.Fatal(err)
	}
	if err := p.AddCallback("vert_post_hook", b); err != nil {
		t.Fatal(err)
	}

	_, _, err := p.GenerateSource()
	if !errors.Is(err, ErrLinkCycle) {
		t.Fatalf("err = %v, want ErrLinkCycle", err)
	}
}

func drawCall(buffer *render.VertexBuffer) render.DrawCall {
	return render.DrawCall{
		Topology:    gputypes.PrimitiveTopologyLineStrip,
		VertexCount: buffer.Count(),
		Buffer:      buffer,
	}
}

func testBuffer(t *testing.T) *render.VertexBuffer {
	t.Helper()
	buffer, err := render.NewVertexBuffer(2,
		render.Field{Name: "pos", Format: gputypes.VertexFormatFloat32x3})
	if err != nil {
		t.Fatal(err)
	}
	if err := buffer.SetField("pos", [][]float32{{0, 0, 0}, {1, 1, 1}}); err != nil {
		t.Fatal(err)
	}
	return buffer
}

// rebindPos binds the position function against the buffer's actual
// field so the draw-time attribute check passes.
func rebindPos(t *testing.T, p *ModularProgram, buffer *render.VertexBuffer) {
	t.Helper()
	fn, ok := p.BoundFunction("local_position")
	if !ok {
		t.Fatal("local_position not bound")
	}
	field, _ := buffer.Field("pos")
	fn.SetBinding("xyz_pos", Attribute, Vec3, field)
}

func TestDrawCompilesOncePerSourceChange(t *testing.T) {
	dev := render.NewNullDevice()
	p := testProgram(t, dev)
	bindAll(t, p)
	buffer := testBuffer(t)
	rebindPos(t, p, buffer)

	if err := p.Draw(drawCall(buffer)); err != nil {
		t.Fatal(err)
	}
	if err := p.Draw(drawCall(buffer)); err != nil {
		t.Fatal(err)
	}
	if len(dev.Compiles) != 1 {
		t.Errorf("compiles = %d, want 1 (unchanged source must not recompile)", len(dev.Compiles))
	}
	if len(dev.Draws) != 2 {
		t.Errorf("draws = %d, want 2", len(dev.Draws))
	}

	// A value-only change keeps the generated text identical: no
	// recompile, but the new value rides with the next draw.
	fn, _ := p.BoundFunction("frag_color")
	fn.SetBinding("rgba", Uniform, Vec4, [4]float32{0, 1, 0, 1})
	if err := p.Draw(drawCall(buffer)); err != nil {
		t.Fatal(err)
	}
	if len(dev.Compiles) != 1 {
		t.Errorf("compiles = %d, want 1 after value-only change", len(dev.Compiles))
	}
	last, _ := dev.LastDraw()
	found := false
	for _, u := range last.Uniforms {
		if strings.HasPrefix(u.Name, "u_rgba_") {
			found = true
			if u.Value[1] != 1 {
				t.Errorf("uniform value = %v, want green", u.Value)
			}
		}
	}
	if !found {
		t.Error("draw call carries no rgba uniform")
	}

	// Rebinding a different function changes the text: recompile.
	other := uniformColorFunction()
	if err := p.SetHook("frag_color", other); err != nil {
		t.Fatal(err)
	}
	if err := p.Draw(drawCall(buffer)); err != nil {
		t.Fatal(err)
	}
	if len(dev.Compiles) != 2 {
		t.Errorf("compiles = %d, want 2 after hook rebind", len(dev.Compiles))
	}
}

// failDevice rejects every compile with a fixed diagnostic.
type failDevice struct{}

func (failDevice) CompileProgram(render.ProgramDescriptor) (render.Program, error) {
	return nil, &render.CompileError{Stage: "fragment", Log: "0:12: 'foo' : undeclared identifier"}
}

func TestDrawPropagatesCompileError(t *testing.T) {
	p := testProgram(t, failDevice{})
	bindAll(t, p)
	buffer := testBuffer(t)
	rebindPos(t, p, buffer)

	err := p.Draw(drawCall(buffer))
	if !errors.Is(err, ErrShaderCompile) {
		t.Fatalf("err = %v, want ErrShaderCompile", err)
	}
	var ce *render.CompileError
	if !errors.As(err, &ce) {
		t.Fatal("compile error not preserved in chain")
	}
	if ce.Stage != "fragment" || !strings.Contains(err.Error(), "undeclared identifier") {
		t.Errorf("diagnostic not propagated verbatim: %v", err)
	}
}

func TestDrawUniformComponentMismatch(t *testing.T) {
	dev := render.NewNullDevice()
	p := testProgram(t, dev)
	bindAll(t, p)
	buffer := testBuffer(t)
	rebindPos(t, p, buffer)

	fn, _ := p.BoundFunction("frag_color")
	fn.SetBinding("rgba", Uniform, Vec4, float32(1)) // one float for a vec4
	if err := p.Draw(drawCall(buffer)); err == nil {
		t.Error("draw should reject a uniform with the wrong component count")
	}
}

func TestReleaseForcesRecompile(t *testing.T) {
	dev := render.NewNullDevice()
	p := testProgram(t, dev)
	bindAll(t, p)
	buffer := testBuffer(t)
	rebindPos(t, p, buffer)

	if err := p.Draw(drawCall(buffer)); err != nil {
		t.Fatal(err)
	}
	p.Release()
	if err := p.Draw(drawCall(buffer)); err != nil {
		t.Fatal(err)
	}
	if len(dev.Compiles) != 2 {
		t.Errorf("compiles = %d, want 2 after Release", len(dev.Compiles))
	}
}

func TestRemoveCallbackRestoresSource(t *testing.T) {
	p := testProgram(t, render.NewNullDevice())
	bindAll(t, p)

	before, _, err := p.GenerateSource()
	if err != nil {
		t.Fatal(err)
	}

	cb := NewFunction("void $extra() {\n    return;\n}")
	if err := p.AddCallback("vert_post_hook", cb); err != nil {
		t.Fatal(err)
	}
	with, _, err := p.GenerateSource()
	if err != nil {
		t.Fatal(err)
	}
	if with == before {
		t.Fatal("adding a callback should change the vertex source")
	}

	if err := p.RemoveCallback("vert_post_hook", cb); err != nil {
		t.Fatal(err)
	}
	after, _, err := p.GenerateSource()
	if err != nil {
		t.Fatal(err)
	}
	if after != before {
		t.Errorf("source after remove differs from original:\n%s\n---\n%s", after, before)
	}
}
