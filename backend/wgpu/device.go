package wgpu

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// DeviceProvider supplies a shared GPU device from a host application.
// Hosts built on the gogpu stack pass their gpucontext provider so the
// backend reuses the host's device instead of creating its own.
type DeviceProvider = gpucontext.DeviceProvider

// halProvider is the extension a provider must implement for direct HAL
// access. gogpu's context provider implements it.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// initDevice acquires a GPU device, preferring discrete adapters. The
// instance and device belong to the backend and are destroyed on Close.
func (b *Backend) initDevice() error {
	halBackend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("wgpu: vulkan backend not available")
	}
	instance, err := halBackend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("wgpu: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return fmt.Errorf("wgpu: no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return fmt.Errorf("wgpu: open device: %w", err)
	}

	b.instance = instance
	b.device = openDev.Device
	b.queue = openDev.Queue
	b.externalDevice = false
	b.adapterName = selected.Info.Name
	return nil
}

// SetDeviceProvider switches the backend to a shared GPU device from the
// host. The provider must also implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue. Call before Init;
// Init then skips its own device creation.
func (b *Backend) SetDeviceProvider(provider DeviceProvider) error {
	hp, ok := provider.(halProvider)
	if !ok {
		return fmt.Errorf("wgpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("wgpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("wgpu: provider HalQueue is not hal.Queue")
	}

	b.device = device
	b.queue = queue
	b.externalDevice = true
	return nil
}

// releaseDevice destroys the device and instance unless they came from a
// shared provider.
func (b *Backend) releaseDevice() {
	if !b.externalDevice && b.device != nil {
		b.device.Destroy()
	}
	b.device = nil
	b.queue = nil
	if b.instance != nil {
		b.instance.Destroy()
		b.instance = nil
	}
}
