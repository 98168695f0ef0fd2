// Package fsys provides the filesystem capability consumed by the
// static handler. Making stat and open injectable keeps the handler
// testable against an in-memory filesystem instead of real disk I/O.
package fsys

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shelfhttp/shelf"
)

// FileInfo is the subset of file metadata the handler needs.
type FileInfo struct {
	Size  int64
	IsDir bool
	// CreatedAt is the file creation time, surfaced in the Date header
	// of partial-content responses. Implementations without access to
	// a birth time fall back to the modification time.
	CreatedAt time.Time
}

// FS resolves root-relative names ("." for the root itself) to file
// metadata and readable streams. Implementations must be safe for
// concurrent use.
type FS interface {
	// Stat returns metadata for name without following a trailing
	// symlink (lstat semantics): a symbolic link's own metadata is
	// consulted, not the target's.
	Stat(ctx context.Context, name string) (FileInfo, error)

	// Open opens name for reading. The caller owns the returned
	// stream and must close it.
	Open(ctx context.Context, name string) (io.ReadSeekCloser, error)
}

// OS is an FS backed by an *os.Root. The root sandbox refuses opens
// that escape the directory through symlinks, so a link pointing
// outside the root stats (as a link) but never serves foreign bytes.
//
// CreatedAt is filled with the modification time: Go's portable file
// metadata does not expose a birth time.
type OS struct {
	root *os.Root
}

// OpenOS opens dir as a sandboxed filesystem root.
func OpenOS(dir string) (*OS, error) {
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("open root %q: %w", dir, err)
	}
	return &OS{root: root}, nil
}

func (o *OS) Stat(ctx context.Context, name string) (FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return FileInfo{}, err
	}

	fi, err := o.root.Lstat(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return FileInfo{}, shelf.ErrNotFound
		}
		return FileInfo{}, fmt.Errorf("stat %q: %w", name, err)
	}

	return FileInfo{
		Size:      fi.Size(),
		IsDir:     fi.IsDir(),
		CreatedAt: fi.ModTime(),
	}, nil
}

func (o *OS) Open(ctx context.Context, name string) (io.ReadSeekCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := o.root.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, shelf.ErrNotFound
		}
		return nil, fmt.Errorf("open %q: %w", name, err)
	}

	return f, nil
}

// Close releases the underlying root directory handle.
func (o *OS) Close() error {
	return o.root.Close()
}
