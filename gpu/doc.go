// Package gpu is the hardware abstraction the renderer records against.
//
// Resources (Device, Buffer, Texture, ...) are interfaces implemented by
// backends; command recording is concrete: CommandEncoder and
// RenderPassEncoder build a CPU-side CommandBuffer that a backend executes
// on Queue.Submit. Recording is therefore backend-independent and fully
// inspectable, which is what the renderer's tests rely on.
//
// Two backends exist: gpu/wgpu drives real hardware through WebGPU, and
// gpu/headless executes command buffers against in-memory stores.
package gpu
