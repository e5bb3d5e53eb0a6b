package rig

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func writeTestFile(t *testing.T, contents []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.bin")
	if err := os.WriteFile(path, contents, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOSFileInterfaceOpenReadClose(t *testing.T) {
	contents := []byte("hello, file interface")
	path := writeTestFile(t, contents)

	fi := NewOSFileInterface("")
	handle := fi.Open(path)
	if !handle.IsValid() {
		t.Fatal("Open() returned invalid handle for existing file")
	}
	defer fi.Close(handle)

	buf := make([]byte, len(contents))
	if n := fi.Read(buf, handle); n != len(contents) {
		t.Errorf("Read() = %d bytes, want %d", n, len(contents))
	}
	if !bytes.Equal(buf, contents) {
		t.Errorf("Read() = %q, want %q", buf, contents)
	}

	// At end of file further reads return zero.
	if n := fi.Read(buf, handle); n != 0 {
		t.Errorf("Read() at EOF = %d, want 0", n)
	}
}

func TestOSFileInterfaceOpenMissing(t *testing.T) {
	fi := NewOSFileInterface(t.TempDir())
	if handle := fi.Open("does-not-exist.txt"); handle.IsValid() {
		t.Errorf("Open() = %d for missing file, want invalid handle", handle)
	}
}

func TestOSFileInterfaceOpenEmptyPath(t *testing.T) {
	// An empty path must fail cleanly on rooted and unrooted interfaces.
	for _, root := range []string{"", t.TempDir()} {
		fi := NewOSFileInterface(root)
		if handle := fi.Open(""); handle.IsValid() {
			t.Errorf("Open(\"\") with root %q = %d, want invalid handle", root, handle)
		}
	}
}

func TestOSFileInterfaceSeekTell(t *testing.T) {
	contents := []byte("0123456789")
	path := writeTestFile(t, contents)

	fi := NewOSFileInterface("")
	handle := fi.Open(path)
	if !handle.IsValid() {
		t.Fatal("Open() failed")
	}
	defer fi.Close(handle)

	if pos := fi.Tell(handle); pos != 0 {
		t.Errorf("Tell() after open = %d, want 0", pos)
	}
	if !fi.Seek(handle, 4, SeekStart) {
		t.Fatal("Seek(4, SeekStart) failed")
	}
	if pos := fi.Tell(handle); pos != 4 {
		t.Errorf("Tell() after seek = %d, want 4", pos)
	}
	if !fi.Seek(handle, 2, SeekCurrent) {
		t.Fatal("Seek(2, SeekCurrent) failed")
	}
	if pos := fi.Tell(handle); pos != 6 {
		t.Errorf("Tell() after relative seek = %d, want 6", pos)
	}
	if !fi.Seek(handle, 0, SeekEnd) {
		t.Fatal("Seek(0, SeekEnd) failed")
	}
	if pos := fi.Tell(handle); pos != int64(len(contents)) {
		t.Errorf("Tell() at end = %d, want %d", pos, len(contents))
	}
}

func TestOSFileInterfaceInvalidHandle(t *testing.T) {
	fi := NewOSFileInterface("")

	buf := make([]byte, 8)
	if n := fi.Read(buf, InvalidFileHandle); n != 0 {
		t.Errorf("Read(invalid) = %d, want 0", n)
	}
	if fi.Seek(InvalidFileHandle, 0, SeekStart) {
		t.Error("Seek(invalid) = true, want false")
	}
	if pos := fi.Tell(InvalidFileHandle); pos != -1 {
		t.Errorf("Tell(invalid) = %d, want -1", pos)
	}
	// Closing an invalid handle must not panic.
	fi.Close(InvalidFileHandle)
	fi.Close(FileHandle(42))
}

func TestOSFileInterfaceHandlesAreDistinct(t *testing.T) {
	path := writeTestFile(t, []byte("shared"))

	fi := NewOSFileInterface("")
	h1 := fi.Open(path)
	h2 := fi.Open(path)
	if !h1.IsValid() || !h2.IsValid() {
		t.Fatal("Open() failed")
	}
	defer fi.Close(h1)
	defer fi.Close(h2)

	if h1 == h2 {
		t.Errorf("Open() returned the same handle %d twice", h1)
	}

	// Each handle keeps its own read position.
	fi.Seek(h1, 3, SeekStart)
	if pos := fi.Tell(h2); pos != 0 {
		t.Errorf("Tell(h2) = %d after seeking h1, want 0", pos)
	}
}

func TestFileLength(t *testing.T) {
	contents := []byte("exactly twenty bytes")
	path := writeTestFile(t, contents)

	fi := NewOSFileInterface("")
	handle := fi.Open(path)
	if !handle.IsValid() {
		t.Fatal("Open() failed")
	}
	defer fi.Close(handle)

	fi.Seek(handle, 5, SeekStart)
	if length := FileLength(fi, handle); length != int64(len(contents)) {
		t.Errorf("FileLength() = %d, want %d", length, len(contents))
	}
	// The read position is restored.
	if pos := fi.Tell(handle); pos != 5 {
		t.Errorf("Tell() after FileLength = %d, want 5", pos)
	}
}

func TestFSFileInterface(t *testing.T) {
	fsys := fstest.MapFS{
		"assets/doc.rml": {Data: []byte("<body>content</body>")},
	}

	fi := NewFSFileInterface(fsys)
	handle := fi.Open("assets/doc.rml")
	if !handle.IsValid() {
		t.Fatal("Open() returned invalid handle")
	}
	defer fi.Close(handle)

	if length := FileLength(fi, handle); length != 20 {
		t.Errorf("FileLength() = %d, want 20", length)
	}

	buf := make([]byte, 6)
	if n := fi.Read(buf, handle); n != 6 {
		t.Errorf("Read() = %d, want 6", n)
	}
	if string(buf) != "<body>" {
		t.Errorf("Read() = %q, want %q", buf, "<body>")
	}
	if pos := fi.Tell(handle); pos != 6 {
		t.Errorf("Tell() = %d, want 6", pos)
	}

	if handle := fi.Open("missing.rml"); handle.IsValid() {
		t.Error("Open() succeeded for missing file")
	}
}

func TestReadFile(t *testing.T) {
	contents := []byte("document body")
	fsys := fstest.MapFS{"doc.rml": {Data: contents}}

	SetFileInterface(NewFSFileInterface(fsys))
	defer SetFileInterface(nil)

	data, err := ReadFile("doc.rml")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !bytes.Equal(data, contents) {
		t.Errorf("ReadFile() = %q, want %q", data, contents)
	}

	if _, err := ReadFile("missing.rml"); err == nil {
		t.Error("ReadFile() of missing file returned nil error")
	}
}
