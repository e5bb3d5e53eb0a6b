package rig

import (
	"errors"
	"sync"
)

// Core lifecycle errors.
var (
	// ErrAlreadyInitialised is returned by Initialise when the library
	// is already initialised.
	ErrAlreadyInitialised = errors.New("rig: already initialised")

	// ErrNoRenderInterface is returned by Initialise when no
	// RenderInterface has been installed. Rendering has no usable
	// default; the host must provide one.
	ErrNoRenderInterface = errors.New("rig: no render interface installed")
)

// coreState holds the installed host interfaces. Guarded by a mutex so
// hosts can install interfaces from an init goroutine while tests poke
// at them; the render loop itself is single-goroutine.
type coreState struct {
	mu          sync.RWMutex
	initialised bool

	fileInterface   FileInterface
	systemInterface SystemInterface
	renderInterface RenderInterface

	textures *TextureDatabase
}

var core coreState

// SetFileInterface installs the host's file interface. Call before
// Initialise; a nil value restores the OS default at Initialise time.
func SetFileInterface(fi FileInterface) {
	core.mu.Lock()
	core.fileInterface = fi
	core.mu.Unlock()
}

// GetFileInterface returns the installed file interface, or the OS
// default if none has been installed.
func GetFileInterface() FileInterface {
	core.mu.RLock()
	fi := core.fileInterface
	core.mu.RUnlock()
	if fi == nil {
		return defaultFileInterface()
	}
	return fi
}

// SetSystemInterface installs the host's system interface. Call before
// Initialise; a nil value restores the default at Initialise time.
func SetSystemInterface(si SystemInterface) {
	core.mu.Lock()
	core.systemInterface = si
	core.mu.Unlock()
}

// GetSystemInterface returns the installed system interface, or the
// default if none has been installed.
func GetSystemInterface() SystemInterface {
	core.mu.RLock()
	si := core.systemInterface
	core.mu.RUnlock()
	if si == nil {
		return defaultSystemInterface()
	}
	return si
}

// SetRenderInterface installs the host's render interface. Must be
// called before Initialise; there is no default.
func SetRenderInterface(ri RenderInterface) {
	core.mu.Lock()
	core.renderInterface = ri
	core.mu.Unlock()
}

// GetRenderInterface returns the installed render interface, or nil if
// none has been installed.
func GetRenderInterface() RenderInterface {
	core.mu.RLock()
	defer core.mu.RUnlock()
	return core.renderInterface
}

// Textures returns the shared texture database. Valid between
// Initialise and Shutdown.
func Textures() *TextureDatabase {
	core.mu.RLock()
	defer core.mu.RUnlock()
	return core.textures
}

// Initialise prepares the library for use. A RenderInterface must be
// installed first; missing file and system interfaces fall back to the
// OS file system and the process clock. Call Shutdown when done.
func Initialise() error {
	core.mu.Lock()
	defer core.mu.Unlock()

	if core.initialised {
		return ErrAlreadyInitialised
	}
	if core.renderInterface == nil {
		return ErrNoRenderInterface
	}
	if core.fileInterface == nil {
		core.fileInterface = defaultFileInterface()
	}
	if core.systemInterface == nil {
		core.systemInterface = defaultSystemInterface()
	}
	core.textures = NewTextureDatabase()
	core.initialised = true

	Logger().Info("initialised", "version", Version)
	return nil
}

// Shutdown releases all host resources the core holds and uninstalls
// the interfaces. Textures loaded through the texture database are
// released back to the host.
func Shutdown() {
	core.mu.Lock()
	if !core.initialised {
		core.mu.Unlock()
		return
	}
	textures := core.textures
	core.textures = nil
	core.mu.Unlock()

	// Release textures before the interfaces go away; ReleaseAll calls
	// back into the render interface.
	if textures != nil {
		textures.ReleaseAll()
	}

	core.mu.Lock()
	defer core.mu.Unlock()
	core.fileInterface = nil
	core.systemInterface = nil
	core.renderInterface = nil
	core.initialised = false

	Logger().Info("shut down")
}

// Default interface singletons, created lazily so hosts that install
// their own implementations never pay for them.
var (
	defaultFileOnce sync.Once
	defaultFile     *OSFileInterface

	defaultSystemOnce sync.Once
	defaultSystem     *DefaultSystemInterface
)

func defaultFileInterface() FileInterface {
	defaultFileOnce.Do(func() {
		defaultFile = NewOSFileInterface("")
	})
	return defaultFile
}

func defaultSystemInterface() SystemInterface {
	defaultSystemOnce.Do(func() {
		defaultSystem = NewDefaultSystemInterface()
	})
	return defaultSystem
}
