// Package precompress generates the on-disk encoded variants the
// static handler serves: for each compressible file under a root it
// writes .br, .zst and .gz siblings. Variants are written atomically
// using a temp file and rename, and a variant that does not end up
// smaller than its source is discarded.
package precompress

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/shelfhttp/shelf"
)

// Codec writes one variant format.
type Codec struct {
	Name   string
	Suffix string
	New    func(w io.Writer) (io.WriteCloser, error)
}

// Codecs returns the supported codecs, matching shelf.Encodings in
// name, suffix and order.
func Codecs() []Codec {
	return []Codec{
		{Name: "br", Suffix: ".br", New: func(w io.Writer) (io.WriteCloser, error) {
			return brotli.NewWriterLevel(w, brotli.BestCompression), nil
		}},
		{Name: "zstd", Suffix: ".zst", New: func(w io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		}},
		{Name: "gzip", Suffix: ".gz", New: func(w io.Writer) (io.WriteCloser, error) {
			return gzip.NewWriterLevel(w, gzip.BestCompression)
		}},
	}
}

// Options controls a precompression run.
type Options struct {
	// Encodings limits the run to the named codecs ("br", "zstd",
	// "gzip"). Empty means all of them.
	Encodings []string

	// Force re-encodes variants even when they are newer than their
	// source.
	Force bool
}

// Result summarizes a run.
type Result struct {
	// Files is the number of source files considered compressible.
	Files int
	// Variants is the number of variant files written.
	Variants int
	// Skipped counts variants left alone: already up to date, or not
	// smaller than their source.
	Skipped int
}

// Run walks dir and generates precompressed variants next to every
// compressible file. Existing variants newer than their source are
// kept unless opts.Force is set.
func Run(ctx context.Context, dir string, opts Options) (Result, error) {
	root, err := os.OpenRoot(dir)
	if err != nil {
		return Result{}, fmt.Errorf("precompress: open root %q: %w", dir, err)
	}
	defer func() { _ = root.Close() }()

	codecs := selectCodecs(opts.Encodings)
	if len(codecs) == 0 {
		return Result{}, fmt.Errorf("precompress: no known encodings in %v", opts.Encodings)
	}

	var res Result

	walkErr := fs.WalkDir(root.FS(), ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || isVariant(name) {
			return nil
		}

		contentType := mime.TypeByExtension(path.Ext(name))
		if contentType != "" && !shelf.IsCompressible(contentType) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("stat %q: %w", name, err)
		}

		res.Files++

		for _, codec := range codecs {
			wrote, encErr := encodeVariant(root, name, info, codec, opts.Force)
			if encErr != nil {
				return fmt.Errorf("encode %q as %s: %w", name, codec.Name, encErr)
			}
			if wrote {
				res.Variants++
			} else {
				res.Skipped++
			}
		}
		return nil
	})
	if walkErr != nil {
		return res, fmt.Errorf("precompress: %w", walkErr)
	}

	return res, nil
}

// encodeVariant writes name+codec.Suffix unless it is already up to
// date. Returns true when a variant was written.
func encodeVariant(root *os.Root, name string, src fs.FileInfo, codec Codec, force bool) (bool, error) {
	variant := name + codec.Suffix

	if !force {
		if vi, err := root.Stat(variant); err == nil && !vi.ModTime().Before(src.ModTime()) {
			return false, nil
		}
	}

	in, err := root.Open(name)
	if err != nil {
		return false, fmt.Errorf("open source: %w", err)
	}
	defer func() { _ = in.Close() }()

	tmpName := fmt.Sprintf(".t%s", uuid.New().String())
	tmp, err := root.Create(tmpName)
	if err != nil {
		return false, fmt.Errorf("create temp file: %w", err)
	}

	success := false
	defer func() {
		if !success {
			if rmErr := root.Remove(tmpName); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
				slog.Warn("failed to remove tmp file", "path", tmpName, "err", rmErr)
			}
		}
	}()

	enc, err := codec.New(tmp)
	if err != nil {
		_ = tmp.Close()
		return false, fmt.Errorf("init encoder: %w", err)
	}

	if _, err := io.Copy(enc, in); err != nil {
		_ = enc.Close()
		_ = tmp.Close()
		return false, fmt.Errorf("compress: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = tmp.Close()
		return false, fmt.Errorf("flush encoder: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return false, fmt.Errorf("sync: %w", err)
	}

	size, err := tmp.Seek(0, io.SeekEnd)
	if err != nil {
		_ = tmp.Close()
		return false, fmt.Errorf("measure: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return false, fmt.Errorf("close temp file: %w", err)
	}

	// A variant that saves nothing is worse than no variant.
	if size >= src.Size() {
		return false, nil
	}

	if err := root.Rename(tmpName, variant); err != nil {
		return false, fmt.Errorf("rename: %w", err)
	}

	success = true
	return true, nil
}

func selectCodecs(names []string) []Codec {
	all := Codecs()
	if len(names) == 0 {
		return all
	}

	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[strings.ToLower(strings.TrimSpace(n))] = true
	}

	var selected []Codec
	for _, c := range all {
		if want[c.Name] {
			selected = append(selected, c)
		}
	}
	return selected
}

func isVariant(name string) bool {
	for _, c := range Codecs() {
		if strings.HasSuffix(name, c.Suffix) {
			return true
		}
	}
	return false
}
