package shade

import "testing"

func chainFn(name string) *Function {
	return NewFunction("void $" + name + "() {\n    return;\n}")
}

func TestFunctionChainOrder(t *testing.T) {
	c := NewFunctionChain("vert_post_hook")
	a, b, d := chainFn("a"), chainFn("b"), chainFn("d")

	c.Add(a)
	c.Add(b)
	c.Add(d)

	got := c.Functions()
	want := []*Function{a, b, d}
	if len(got) != 3 {
		t.Fatalf("Len() = %d, want 3", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("chain[%d] = %v, want %v", i, got[i].Name(), want[i].Name())
		}
	}
}

func TestFunctionChainRemove(t *testing.T) {
	c := NewFunctionChain("vert_post_hook")
	a, b := chainFn("a"), chainFn("b")
	c.Add(a)
	c.Add(b)

	if !c.Remove(a) {
		t.Error("Remove(a) = false, want true")
	}
	if c.Remove(a) {
		t.Error("second Remove(a) = true, want false")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if c.Functions()[0] != b {
		t.Error("remaining callback should be b")
	}
}

func TestFunctionChainHook(t *testing.T) {
	c := NewFunctionChain("frag_post_hook")
	if c.Hook() != "frag_post_hook" {
		t.Errorf("Hook() = %q, want frag_post_hook", c.Hook())
	}
}
