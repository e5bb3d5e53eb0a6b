package rig

import (
	"io"
	"io/fs"
	"os"
	"sync"
)

// OSFileInterface is the default FileInterface. It reads from the
// process's file system, resolving relative paths against an optional
// root directory. Handles index an internal table; the zero handle is
// never allocated.
type OSFileInterface struct {
	mu    sync.Mutex
	root  string
	next  FileHandle
	files map[FileHandle]*os.File
}

// NewOSFileInterface creates a file interface rooted at the given
// directory. An empty root resolves paths against the working directory.
func NewOSFileInterface(root string) *OSFileInterface {
	return &OSFileInterface{
		root:  root,
		next:  1,
		files: make(map[FileHandle]*os.File),
	}
}

// Open implements FileInterface.
func (i *OSFileInterface) Open(path string) FileHandle {
	if path == "" {
		Logger().Warn("file open failed", "path", path, "err", fs.ErrInvalid)
		return InvalidFileHandle
	}

	full := path
	if i.root != "" && !os.IsPathSeparator(path[0]) {
		full = i.root + string(os.PathSeparator) + path
	}

	f, err := os.Open(full) //nolint:gosec // paths come from the embedding application
	if err != nil {
		Logger().Warn("file open failed", "path", full, "err", err)
		return InvalidFileHandle
	}

	i.mu.Lock()
	handle := i.next
	i.next++
	i.files[handle] = f
	i.mu.Unlock()
	return handle
}

// Close implements FileInterface.
func (i *OSFileInterface) Close(handle FileHandle) {
	i.mu.Lock()
	f, ok := i.files[handle]
	if ok {
		delete(i.files, handle)
	}
	i.mu.Unlock()

	if ok {
		_ = f.Close()
	}
}

// Read implements FileInterface.
func (i *OSFileInterface) Read(buffer []byte, handle FileHandle) int {
	f := i.lookup(handle)
	if f == nil {
		return 0
	}
	n, err := f.Read(buffer)
	if err != nil && err != io.EOF {
		Logger().Warn("file read failed", "err", err)
	}
	return n
}

// Seek implements FileInterface.
func (i *OSFileInterface) Seek(handle FileHandle, offset int64, origin SeekOrigin) bool {
	f := i.lookup(handle)
	if f == nil {
		return false
	}
	_, err := f.Seek(offset, seekWhence(origin))
	return err == nil
}

// Tell implements FileInterface.
func (i *OSFileInterface) Tell(handle FileHandle) int64 {
	f := i.lookup(handle)
	if f == nil {
		return -1
	}
	pos, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return -1
	}
	return pos
}

func (i *OSFileInterface) lookup(handle FileHandle) *os.File {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.files[handle]
}

// FSFileInterface adapts an fs.FS (for example an embed.FS holding
// packaged documents and fonts) to the FileInterface contract. Seek is
// supported when the underlying fs.File implements io.Seeker, which
// holds for embed.FS and os.DirFS files.
type FSFileInterface struct {
	fsys  fs.FS
	mu    sync.Mutex
	next  FileHandle
	files map[FileHandle]fs.File
}

// NewFSFileInterface creates a file interface over fsys.
func NewFSFileInterface(fsys fs.FS) *FSFileInterface {
	return &FSFileInterface{
		fsys:  fsys,
		next:  1,
		files: make(map[FileHandle]fs.File),
	}
}

// Open implements FileInterface.
func (i *FSFileInterface) Open(path string) FileHandle {
	f, err := i.fsys.Open(path)
	if err != nil {
		Logger().Warn("file open failed", "path", path, "err", err)
		return InvalidFileHandle
	}

	i.mu.Lock()
	handle := i.next
	i.next++
	i.files[handle] = f
	i.mu.Unlock()
	return handle
}

// Close implements FileInterface.
func (i *FSFileInterface) Close(handle FileHandle) {
	i.mu.Lock()
	f, ok := i.files[handle]
	if ok {
		delete(i.files, handle)
	}
	i.mu.Unlock()

	if ok {
		_ = f.Close()
	}
}

// Read implements FileInterface.
func (i *FSFileInterface) Read(buffer []byte, handle FileHandle) int {
	f := i.lookup(handle)
	if f == nil {
		return 0
	}
	n, err := f.Read(buffer)
	if err != nil && err != io.EOF {
		Logger().Warn("file read failed", "err", err)
	}
	return n
}

// Seek implements FileInterface.
func (i *FSFileInterface) Seek(handle FileHandle, offset int64, origin SeekOrigin) bool {
	f := i.lookup(handle)
	if f == nil {
		return false
	}
	s, ok := f.(io.Seeker)
	if !ok {
		return false
	}
	_, err := s.Seek(offset, seekWhence(origin))
	return err == nil
}

// Tell implements FileInterface.
func (i *FSFileInterface) Tell(handle FileHandle) int64 {
	f := i.lookup(handle)
	if f == nil {
		return -1
	}
	s, ok := f.(io.Seeker)
	if !ok {
		return -1
	}
	pos, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return -1
	}
	return pos
}

func (i *FSFileInterface) lookup(handle FileHandle) fs.File {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.files[handle]
}

// seekWhence converts a SeekOrigin to the io package's whence values.
func seekWhence(origin SeekOrigin) int {
	switch origin {
	case SeekCurrent:
		return io.SeekCurrent
	case SeekEnd:
		return io.SeekEnd
	default:
		return io.SeekStart
	}
}
