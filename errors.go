package shade

import "errors"

// Composition errors. All of them are fatal for the draw that hits
// them: no partial rendering is attempted and nothing is retried.
var (
	// ErrUnresolvedSlot indicates a Function rendered with a slot that
	// has no binding. The wrapping error names the function and slot.
	ErrUnresolvedSlot = errors.New("shade: unresolved function slot")

	// ErrMissingHook indicates a declared single-slot hook with no
	// bound Function at compile time.
	ErrMissingHook = errors.New("shade: hook has no bound function")

	// ErrUnknownHook indicates a hook name not declared by either
	// shader template.
	ErrUnknownHook = errors.New("shade: unknown hook")

	// ErrShaderCompile indicates the backend rejected generated GLSL.
	// The wrapped render.CompileError carries the stage and the backend
	// diagnostic verbatim.
	ErrShaderCompile = errors.New("shade: shader compilation failed")

	// ErrLinkCycle indicates slot links that form a cycle and can
	// never resolve to a concrete variable.
	ErrLinkCycle = errors.New("shade: slot link cycle")
)
