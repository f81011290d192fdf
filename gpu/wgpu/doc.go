// Package wgpu is the production gpu.Device backend over gogpu/wgpu.
//
// Device, adapter and queue acquisition run against the real WebGPU
// binding, and shader modules are compiled to SPIR-V through naga at
// creation time. Command buffer execution is staged: the recording
// produced by the gpu package is executed by an in-memory store until
// the binding exposes command submission, at which point Submit forwards
// the same recorded commands to the hardware queue.
//
// A backend can own its GPU (Init) or share one through a
// gpucontext.DeviceProvider (NewFromProvider), matching how host
// applications hand their device around.
package wgpu
