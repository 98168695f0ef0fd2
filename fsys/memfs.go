package fsys

import (
	"bytes"
	"context"
	"io"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/shelfhttp/shelf"
)

// MemFS is an in-memory FS for deterministic tests. Directories are
// implied by file names; WriteFile("docs/index.html", ...) makes
// "docs" stat as a directory.
type MemFS struct {
	mu    sync.RWMutex
	files map[string]memFile
}

type memFile struct {
	data    []byte
	created time.Time
}

// NewMemFS returns an empty in-memory filesystem.
func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string]memFile)}
}

// WriteFile stores data under a root-relative name with the given
// creation time.
func (m *MemFS) WriteFile(name string, data []byte, created time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path.Clean(name)] = memFile{data: data, created: created}
}

func (m *MemFS) Stat(ctx context.Context, name string) (FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return FileInfo{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	name = path.Clean(name)
	if f, ok := m.files[name]; ok {
		return FileInfo{Size: int64(len(f.data)), CreatedAt: f.created}, nil
	}
	if m.isDirLocked(name) {
		return FileInfo{IsDir: true}, nil
	}
	return FileInfo{}, shelf.ErrNotFound
}

func (m *MemFS) Open(ctx context.Context, name string) (io.ReadSeekCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	f, ok := m.files[path.Clean(name)]
	if !ok {
		return nil, shelf.ErrNotFound
	}
	return readSeekNopCloser{bytes.NewReader(f.data)}, nil
}

// isDirLocked reports whether name is a prefix directory of any stored
// file. Callers must hold at least a read lock.
func (m *MemFS) isDirLocked(name string) bool {
	if name == "." {
		return true
	}
	prefix := name + "/"
	for p := range m.files {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

type readSeekNopCloser struct {
	*bytes.Reader
}

func (readSeekNopCloser) Close() error { return nil }
