package rig

// Handles identify host-owned resources across the interface boundary.
// They are opaque to the core: the host decides how to map them onto its
// own objects (pointers, table indices, GPU resource IDs). The zero value
// is reserved as "invalid" in every handle space, so a successful
// Open/Load/Generate/Compile call never returns zero.

// FileHandle identifies an open file owned by the host's FileInterface.
// Created by Open, destroyed by Close.
type FileHandle uint64

// TextureHandle identifies a host-side texture resource.
// Created by LoadTexture or GenerateTexture, destroyed by ReleaseTexture.
type TextureHandle uint64

// GeometryHandle identifies a host-optimized compiled geometry batch.
// Created by CompileGeometry, destroyed by ReleaseCompiledGeometry.
type GeometryHandle uint64

// Invalid handle sentinels. A zero handle never denotes a valid resource.
const (
	// InvalidFileHandle is returned by Open on failure.
	InvalidFileHandle FileHandle = 0

	// InvalidTextureHandle is returned by texture creation on failure.
	InvalidTextureHandle TextureHandle = 0

	// InvalidGeometryHandle is returned by CompileGeometry when the host
	// declines compilation for a geometry instance.
	InvalidGeometryHandle GeometryHandle = 0
)

// IsValid reports whether the handle refers to an open file.
func (h FileHandle) IsValid() bool { return h != InvalidFileHandle }

// IsValid reports whether the handle refers to a live texture.
func (h TextureHandle) IsValid() bool { return h != InvalidTextureHandle }

// IsValid reports whether the handle refers to a compiled geometry batch.
func (h GeometryHandle) IsValid() bool { return h != InvalidGeometryHandle }
