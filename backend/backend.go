package backend

import (
	"errors"

	"github.com/gogui/rig"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// Well-known backend names.
const (
	// BackendSoftware is the pure-Go software rasterizer.
	BackendSoftware = "software"

	// BackendWGPU renders through the gogpu/wgpu hardware abstraction layer.
	BackendWGPU = "wgpu"

	// BackendEbiten renders through Ebitengine.
	BackendEbiten = "ebiten"
)

// RenderBackend is a host render interface with a lifecycle. It bundles
// the rig.RenderInterface contract with initialization, teardown, and
// access to the rendered output, so applications can select an
// implementation by name at startup.
//
// Backends must be registered via Register() and are selected via
// Get() or Default().
type RenderBackend interface {
	rig.RenderInterface

	// Name returns the backend identifier (e.g., "software", "wgpu").
	Name() string

	// Init prepares the backend for rendering at the given target size
	// in pixels. This must be called before any render interface
	// operations.
	Init(width, height int) error

	// Close releases all backend resources, including any textures and
	// compiled geometry the core did not release. The backend should
	// not be used after Close is called.
	Close()

	// BeginFrame clears the target and resets per-frame state. Render
	// interface calls happen between BeginFrame and EndFrame.
	BeginFrame()

	// EndFrame finishes the frame. For GPU backends this submits the
	// recorded command buffers and blocks until the target is readable.
	EndFrame() error

	// Target returns the rendered output as tightly packed RGBA8 pixels
	// with its width and height, valid after EndFrame and until the
	// next BeginFrame.
	Target() ([]byte, int, int)
}
