package rig

import (
	"errors"
	"fmt"
)

// File interface errors.
var (
	// ErrFileOpen is returned when the installed FileInterface cannot
	// open a path.
	ErrFileOpen = errors.New("rig: file open failed")

	// ErrFileRead is returned when a whole-file read stops short of the
	// reported file length.
	ErrFileRead = errors.New("rig: file read failed")
)

// SeekOrigin selects the reference point for FileInterface.Seek.
type SeekOrigin int

const (
	// SeekStart seeks relative to the beginning of the file.
	SeekStart SeekOrigin = iota
	// SeekCurrent seeks relative to the current read position.
	SeekCurrent
	// SeekEnd seeks relative to the end of the file.
	SeekEnd
)

// FileInterface abstracts file access for the core. The host supplies an
// implementation at startup; the default reads from the process's file
// system. Contract mirrors standard buffered file semantics. The core
// calls it from a single goroutine; implementations need no internal
// locking beyond protecting their own handle table.
type FileInterface interface {
	// Open opens a file for reading. Returns InvalidFileHandle on
	// failure; a successful open never returns the zero handle.
	Open(path string) FileHandle

	// Close closes a previously opened file. Closing an invalid or
	// already-closed handle is a no-op.
	Close(handle FileHandle)

	// Read reads up to len(buffer) bytes into buffer and advances the
	// read position. Returns the number of bytes actually read, which
	// is never greater than len(buffer); zero at end of file.
	Read(buffer []byte, handle FileHandle) int

	// Seek moves the read position by offset bytes relative to origin.
	// Returns false if the handle is invalid or the seek failed.
	Seek(handle FileHandle, offset int64, origin SeekOrigin) bool

	// Tell returns the current read position as a byte offset from the
	// start of the file, or -1 for an invalid handle.
	Tell(handle FileHandle) int64
}

// FileLength returns the total byte length of an open file by seeking
// to the end and restoring the previous position afterwards.
func FileLength(fi FileInterface, handle FileHandle) int64 {
	pos := fi.Tell(handle)
	if pos < 0 || !fi.Seek(handle, 0, SeekEnd) {
		return -1
	}
	length := fi.Tell(handle)
	fi.Seek(handle, pos, SeekStart)
	return length
}

// ReadFile reads the entire contents of path through the installed
// FileInterface. This is the loader the core uses for documents, style
// sheets, and translation catalogs.
func ReadFile(path string) ([]byte, error) {
	fi := GetFileInterface()
	handle := fi.Open(path)
	if !handle.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrFileOpen, path)
	}
	defer fi.Close(handle)

	length := FileLength(fi, handle)
	if length < 0 {
		return nil, fmt.Errorf("%w: %s", ErrFileRead, path)
	}

	data := make([]byte, length)
	read := 0
	for read < len(data) {
		n := fi.Read(data[read:], handle)
		if n <= 0 {
			return nil, fmt.Errorf("%w: %s: short read %d of %d bytes",
				ErrFileRead, path, read, length)
		}
		read += n
	}
	return data, nil
}
