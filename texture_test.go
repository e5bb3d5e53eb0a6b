package rig

import "testing"

// textureStub issues texture handles and records loads and releases.
type textureStub struct {
	*stubRender

	nextTexture TextureHandle
	loads       map[string]int
	releases    int
	failSources map[string]bool
}

func newTextureStub() *textureStub {
	return &textureStub{
		stubRender:  newStubRender(true),
		nextTexture: 1,
		loads:       make(map[string]int),
		failSources: make(map[string]bool),
	}
}

func (s *textureStub) LoadTexture(source string) (TextureHandle, Vector2i, bool) {
	s.loads[source]++
	if s.failSources[source] {
		return InvalidTextureHandle, Vector2i{}, false
	}
	handle := s.nextTexture
	s.nextTexture++
	return handle, Vector2i{X: 64, Y: 32}, true
}

func (s *textureStub) GenerateTexture(source []byte, dimensions Vector2i) (TextureHandle, bool) {
	if len(source) != dimensions.X*dimensions.Y*4 {
		return InvalidTextureHandle, false
	}
	handle := s.nextTexture
	s.nextTexture++
	return handle, true
}

func (s *textureStub) ReleaseTexture(TextureHandle) {
	s.releases++
}

func TestTextureDatabaseDeduplicates(t *testing.T) {
	stub := newTextureStub()
	SetRenderInterface(stub)
	defer SetRenderInterface(nil)

	db := NewTextureDatabase()
	a := db.Fetch("button.png")
	b := db.Fetch("button.png")
	c := db.Fetch("icon.png")

	if a != b {
		t.Error("Fetch() returned distinct textures for the same source")
	}
	if a == c {
		t.Error("Fetch() returned the same texture for different sources")
	}
	if db.Len() != 2 {
		t.Errorf("Len() = %d, want 2", db.Len())
	}
}

func TestTextureLazyLoadOnce(t *testing.T) {
	stub := newTextureStub()
	SetRenderInterface(stub)
	defer SetRenderInterface(nil)

	db := NewTextureDatabase()
	tex := db.Fetch("button.png")

	if stub.loads["button.png"] != 0 {
		t.Errorf("Fetch() loaded eagerly: %d loads", stub.loads["button.png"])
	}

	h1 := tex.Handle()
	h2 := tex.Handle()
	if !h1.IsValid() {
		t.Fatal("Handle() returned invalid handle for loadable texture")
	}
	if h1 != h2 {
		t.Errorf("Handle() = %d then %d, want stable handle", h1, h2)
	}
	if stub.loads["button.png"] != 1 {
		t.Errorf("LoadTexture called %d times, want 1", stub.loads["button.png"])
	}
	if dims := tex.Dimensions(); dims != (Vector2i{X: 64, Y: 32}) {
		t.Errorf("Dimensions() = %+v, want {64 32}", dims)
	}
}

func TestTextureLoadFailureRemembered(t *testing.T) {
	stub := newTextureStub()
	stub.failSources["missing.png"] = true
	SetRenderInterface(stub)
	defer SetRenderInterface(nil)

	db := NewTextureDatabase()
	tex := db.Fetch("missing.png")

	for i := 0; i < 3; i++ {
		if h := tex.Handle(); h.IsValid() {
			t.Fatalf("Handle() = %d for failing source, want invalid", h)
		}
	}
	if stub.loads["missing.png"] != 1 {
		t.Errorf("LoadTexture called %d times for failing source, want 1", stub.loads["missing.png"])
	}
}

func TestTextureDatabaseReleaseAll(t *testing.T) {
	stub := newTextureStub()
	SetRenderInterface(stub)
	defer SetRenderInterface(nil)

	db := NewTextureDatabase()
	db.Fetch("a.png").Handle()
	db.Fetch("b.png").Handle()
	db.Fetch("never-loaded.png")

	db.ReleaseAll()
	if stub.releases != 2 {
		t.Errorf("ReleaseTexture called %d times, want 2", stub.releases)
	}

	// Entries survive and reload lazily.
	if db.Len() != 3 {
		t.Errorf("Len() = %d after ReleaseAll, want 3", db.Len())
	}
	if h := db.Fetch("a.png").Handle(); !h.IsValid() {
		t.Error("Handle() after ReleaseAll returned invalid handle")
	}
	if stub.loads["a.png"] != 2 {
		t.Errorf("LoadTexture called %d times for reloaded source, want 2", stub.loads["a.png"])
	}
}
