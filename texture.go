package rig

// Texture is a core-side reference to a host texture, loaded lazily by
// source name. The zero value with a source set loads on first use.
type Texture struct {
	source     string
	handle     TextureHandle
	dimensions Vector2i
	loaded     bool
	failed     bool
}

// Source returns the source name the texture loads from.
func (t *Texture) Source() string { return t.source }

// Handle returns the host handle, loading the texture on first call.
// Returns InvalidTextureHandle if the load failed; the failure is
// remembered so the host is not asked again every frame.
func (t *Texture) Handle() TextureHandle {
	if !t.loaded && !t.failed {
		handle, dimensions, ok := GetRenderInterface().LoadTexture(t.source)
		if !ok {
			t.failed = true
			Log(LogWarning, "failed to load texture %q", t.source)
			return InvalidTextureHandle
		}
		t.handle = handle
		t.dimensions = dimensions
		t.loaded = true
	}
	return t.handle
}

// Dimensions returns the texture size in pixels, loading on first call.
func (t *Texture) Dimensions() Vector2i {
	t.Handle()
	return t.dimensions
}

// release frees the host texture and re-arms loading.
func (t *Texture) release() {
	if t.loaded {
		GetRenderInterface().ReleaseTexture(t.handle)
		t.handle = InvalidTextureHandle
		t.loaded = false
	}
	t.failed = false
}

// TextureDatabase deduplicates textures by source name so that a file
// referenced from many places is loaded by the host once.
type TextureDatabase struct {
	textures map[string]*Texture
}

// NewTextureDatabase creates an empty texture database.
func NewTextureDatabase() *TextureDatabase {
	return &TextureDatabase{textures: make(map[string]*Texture)}
}

// Fetch returns the texture for a source name, creating the entry on
// first request. The host load happens lazily on first Handle call.
func (d *TextureDatabase) Fetch(source string) *Texture {
	if t, ok := d.textures[source]; ok {
		return t
	}
	t := &Texture{source: source}
	d.textures[source] = t
	return t
}

// Len returns the number of distinct source names in the database.
func (d *TextureDatabase) Len() int { return len(d.textures) }

// ReleaseAll frees every loaded texture. Entries remain and reload
// lazily; hosts call this when their graphics device is lost.
func (d *TextureDatabase) ReleaseAll() {
	for _, t := range d.textures {
		t.release()
	}
}
