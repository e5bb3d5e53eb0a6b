// Package rig provides the host interface boundary for embedding a
// document UI engine in a Go application.
//
// # Overview
//
// rig defines the three interfaces a host application implements so that
// a UI core stays portable across platforms and graphics APIs:
//
//   - FileInterface: file open/read/seek/tell, so the core never touches
//     platform file I/O directly.
//   - SystemInterface: elapsed time, string translation, and logging.
//   - RenderInterface: geometry submission, texture lifecycle, and
//     scissor state, so the core never calls a specific graphics API.
//
// The host supplies concrete implementations at startup and retains
// ownership of them (and of every resource behind a handle) for the
// core's entire lifetime. The core holds non-owning references only.
//
// # Quick Start
//
//	import (
//	    "github.com/gogui/rig"
//	    "github.com/gogui/rig/backend"
//	    _ "github.com/gogui/rig/backend/software"
//	)
//
//	b, err := backend.InitDefault(800, 600)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer b.Close()
//
//	rig.SetRenderInterface(b)
//	if err := rig.Initialise(); err != nil {
//	    log.Fatal(err)
//	}
//	defer rig.Shutdown()
//
// # Handles
//
// Files, textures, and compiled geometry are identified by opaque
// uint64 handles. The zero value is reserved as "invalid" in all three
// handle spaces; a successful creation call never returns zero.
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at the render context's top-left
//   - X increases right
//   - Y increases down
//   - All geometry coordinates are pixel offsets
//
// # Backends
//
// Reference RenderInterface implementations live under backend/:
// a pure-Go software rasterizer, a GPU backend via gogpu/wgpu, and an
// Ebitengine adapter. The recording package provides a command-recording
// implementation for tests.
package rig

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
