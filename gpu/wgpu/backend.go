package wgpu

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"

	"github.com/gogpu/korin"
)

// Backend-specific errors.
var (
	// ErrNoGPU is returned when no suitable GPU adapter is found.
	ErrNoGPU = errors.New("wgpu: no suitable GPU adapter found")

	// ErrNotInitialized is returned when using a backend before Init.
	ErrNotInitialized = errors.New("wgpu: backend not initialized")
)

// Backend owns the WebGPU instance, adapter, device and queue.
//
// Backend is safe for concurrent use.
type Backend struct {
	mu sync.RWMutex

	// GPU resources
	instance *core.Instance
	adapter  core.AdapterID
	device   core.DeviceID
	queue    core.QueueID

	// provider is set when the GPU is shared rather than owned; the
	// backend then never drops the device.
	provider gpucontext.DeviceProvider

	// GPU information
	gpuInfo *GPUInfo

	initialized bool
}

// NewBackend creates a backend that will own its GPU.
// Call Init before use.
func NewBackend() *Backend {
	return &Backend{}
}

// NewFromProvider creates a backend sharing the host application's GPU
// through a gpucontext.DeviceProvider. The backend is initialized
// immediately and Close never drops the shared device.
func NewFromProvider(provider gpucontext.DeviceProvider) (*Backend, error) {
	if provider == nil {
		return nil, fmt.Errorf("%w: nil provider", ErrNoGPU)
	}
	return &Backend{
		provider:    provider,
		initialized: true,
	}, nil
}

// Init creates the instance, requests an adapter, creates the device and
// retrieves the queue. Idempotent.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	desc := &gputypes.InstanceDescriptor{
		Backends: gputypes.BackendsPrimary,
		Flags:    0,
	}
	b.instance = core.NewInstance(desc)

	adapterID, err := b.instance.RequestAdapter(&gputypes.RequestAdapterOptions{
		PowerPreference: gputypes.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoGPU, err)
	}
	b.adapter = adapterID

	b.gpuInfo, _ = getGPUInfo(adapterID)
	if b.gpuInfo != nil {
		korin.Logger().Info("wgpu: adapter selected", "gpu", b.gpuInfo.String())
	}

	deviceID, err := createDevice(adapterID, "korin-device")
	if err != nil {
		return fmt.Errorf("device creation failed: %w", err)
	}
	b.device = deviceID

	queueID, err := core.GetDeviceQueue(deviceID)
	if err != nil {
		_ = releaseDevice(deviceID)
		return fmt.Errorf("queue retrieval failed: %w", err)
	}
	b.queue = queueID

	b.initialized = true
	return nil
}

// Close releases all owned resources. Shared devices (NewFromProvider)
// are left untouched.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}

	if b.provider == nil {
		if !b.device.IsZero() {
			if err := releaseDevice(b.device); err != nil {
				korin.Logger().Warn("wgpu: error releasing device", "err", err)
			}
			b.device = core.DeviceID{}
		}
		if !b.adapter.IsZero() {
			if err := releaseAdapter(b.adapter); err != nil {
				korin.Logger().Warn("wgpu: error releasing adapter", "err", err)
			}
			b.adapter = core.AdapterID{}
		}
	}

	b.instance = nil
	b.queue = core.QueueID{}
	b.gpuInfo = nil
	b.initialized = false
}

// IsInitialized reports whether the backend is ready for use.
func (b *Backend) IsInitialized() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.initialized
}

// GPUInfo returns information about the selected GPU, or nil before Init
// or when the device is shared.
func (b *Backend) GPUInfo() *GPUInfo {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.gpuInfo
}

// DeviceID returns the raw device ID, zero when shared or uninitialized.
func (b *Backend) DeviceID() core.DeviceID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.device
}

// SurfaceFormat returns the negotiated surface format of a shared
// provider, or BGRA8Unorm for owned devices.
func (b *Backend) SurfaceFormat() gputypes.TextureFormat {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.provider != nil {
		return b.provider.SurfaceFormat()
	}
	return gputypes.TextureFormatBGRA8Unorm
}

// GPUInfo contains information about the selected GPU.
type GPUInfo struct {
	// Name is the GPU name (e.g., "NVIDIA GeForce RTX 3080").
	Name string
	// Vendor is the GPU vendor.
	Vendor string
	// DeviceType is the type of GPU (discrete, integrated, etc.).
	DeviceType gputypes.DeviceType
	// Backend is the graphics API in use (Vulkan, Metal, DX12).
	Backend gputypes.Backend
	// Driver is the driver version string.
	Driver string
}

// String returns a human-readable description of the GPU.
func (g *GPUInfo) String() string {
	return fmt.Sprintf("%s (%s, %s)", g.Name, g.DeviceType, g.Backend)
}

// getGPUInfo retrieves information about the GPU adapter.
func getGPUInfo(adapterID core.AdapterID) (*GPUInfo, error) {
	info, err := core.GetAdapterInfo(adapterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get adapter info: %w", err)
	}

	return &GPUInfo{
		Name:       info.Name,
		Vendor:     info.Vendor,
		DeviceType: info.DeviceType,
		Backend:    info.Backend,
		Driver:     info.Driver,
	}, nil
}

// createDevice creates a logical device from an adapter.
func createDevice(adapterID core.AdapterID, label string) (core.DeviceID, error) {
	desc := &gputypes.DeviceDescriptor{
		Label:            label,
		RequiredFeatures: nil,
		RequiredLimits:   gputypes.DefaultLimits(),
	}

	deviceID, err := core.RequestDevice(adapterID, desc)
	if err != nil {
		return core.DeviceID{}, fmt.Errorf("failed to create device: %w", err)
	}
	return deviceID, nil
}

// releaseDevice releases a device and its associated resources.
func releaseDevice(deviceID core.DeviceID) error {
	if deviceID.IsZero() {
		return nil
	}
	if err := core.DeviceDrop(deviceID); err != nil {
		return fmt.Errorf("failed to release device: %w", err)
	}
	return nil
}

// releaseAdapter releases an adapter.
func releaseAdapter(adapterID core.AdapterID) error {
	if adapterID.IsZero() {
		return nil
	}
	if err := core.AdapterDrop(adapterID); err != nil {
		return fmt.Errorf("failed to release adapter: %w", err)
	}
	return nil
}
