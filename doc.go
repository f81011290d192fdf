// Package korin is the client core of a 3D MMO-style game: a multi-pass
// forward renderer with shadow mapping, asynchronous GPU picking and UI
// compositing, together with the game-world simulation and window system
// that feed it.
//
// The rendering entry point is graphics.GraphicsEngine, which consumes one
// graphics.RenderInstruction per frame. The instruction is produced by the
// world and ui packages; the gpu package provides the hardware abstraction
// the engine records against, with a production WebGPU backend (gpu/wgpu)
// and an in-memory backend (gpu/headless) for tests and server-side use.
//
// This root package holds the small shared vocabulary: colors, screen
// coordinates and the library-wide logger.
package korin
