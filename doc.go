// Package shade composes GLSL shader programs from modular source
// fragments at runtime.
//
// # Overview
//
// shade assembles a complete vertex/fragment program from three pieces:
//
//   - ShaderTemplate: an immutable shader skeleton declaring named hook
//     functions that a fixed main calls.
//   - Function: a reusable GLSL fragment with $name placeholders for its
//     own (globally uniquified) name and for typed variable slots.
//   - ModularProgram: binds Functions into the templates' hooks, resolves
//     slot bindings into concrete attribute/uniform/varying declarations,
//     generates the final GLSL, and compiles it through a render.Device.
//
// Hooks come in two flavors. A single-slot hook holds exactly one
// Function and is replaced wholesale on rebind. A chain hook holds an
// ordered sequence of callback Functions, invoked in attachment order.
//
// # Quick Start
//
//	prog, _ := shade.NewModularProgram(dev, vertexTemplate, fragmentTemplate)
//	prog.AddChain("vert_post_hook")
//
//	fn := shade.NewFunction(`
//	    vec4 $input_xyz_pos() {
//	        return vec4($xyz_pos, 1.0);
//	    }
//	`)
//	fn.SetBinding("xyz_pos", shade.Attribute, shade.Vec3, posField)
//	prog.SetHook("local_position", fn)
//
//	err := prog.Draw(render.DrawCall{ ... })
//
// # Determinism
//
// Generated source is a pure function of the bind/append history:
// identical binding sequences produce byte-identical GLSL. The program
// caches the last generated source and only recompiles through the
// device when the text changes, so value-only updates (e.g. a new
// uniform color) never trigger a recompile.
//
// # Concurrency
//
// A ModularProgram and the visuals built on it are single-threaded by
// design: composition runs on the rendering thread within one frame.
// Callers that share a program across goroutines must serialize access
// themselves; no locking is performed.
package shade

// Version is the current version of the library.
const Version = "0.1.0"
