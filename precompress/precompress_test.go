package precompress_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfhttp/shelf"
	"github.com/shelfhttp/shelf/precompress"
)

func TestCodecs_MatchServingTable(t *testing.T) {
	codecs := precompress.Codecs()
	require.Len(t, codecs, len(shelf.Encodings))
	for i, enc := range shelf.Encodings {
		assert.Equal(t, enc.Name, codecs[i].Name)
		assert.Equal(t, enc.Suffix, codecs[i].Suffix)
	}
}

func TestRun_GeneratesVariants(t *testing.T) {
	dir := t.TempDir()
	content := strings.Repeat("the quick brown fox jumps over the lazy dog\n", 200)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "page.html"), []byte(content), 0o644))

	res, err := precompress.Run(context.Background(), dir, precompress.Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Files)
	assert.Equal(t, 3, res.Variants)

	for _, suffix := range []string{".br", ".zst", ".gz"} {
		_, statErr := os.Stat(filepath.Join(dir, "docs", "page.html"+suffix))
		assert.NoError(t, statErr, "expected variant %s", suffix)
	}

	// Each variant must round-trip to the original bytes.
	t.Run("gzip round trip", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(dir, "docs", "page.html.gz"))
		require.NoError(t, err)
		r, err := gzip.NewReader(bytes.NewReader(data))
		require.NoError(t, err)
		got, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, content, string(got))
	})

	t.Run("zstd round trip", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(dir, "docs", "page.html.zst"))
		require.NoError(t, err)
		r, err := zstd.NewReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer r.Close()
		got, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, content, string(got))
	})

	t.Run("brotli round trip", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(dir, "docs", "page.html.br"))
		require.NoError(t, err)
		got, err := io.ReadAll(brotli.NewReader(bytes.NewReader(data)))
		require.NoError(t, err)
		assert.Equal(t, content, string(got))
	})
}

func TestRun_SkipsIncompressibleTypes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "photo.png"), bytes.Repeat([]byte("PNG"), 500), 0o644))

	res, err := precompress.Run(context.Background(), dir, precompress.Options{})
	require.NoError(t, err)

	assert.Equal(t, 0, res.Files)
	_, statErr := os.Stat(filepath.Join(dir, "photo.png.gz"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_DiscardsLargerVariants(t *testing.T) {
	dir := t.TempDir()
	// Too small to compress below its own size once headers are added.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tiny.txt"), []byte("hi"), 0o644))

	res, err := precompress.Run(context.Background(), dir, precompress.Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Files)
	assert.Equal(t, 0, res.Variants)
	assert.Equal(t, 3, res.Skipped)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no variant or temp file may remain")
}

func TestRun_UpToDateVariantsSkipped(t *testing.T) {
	dir := t.TempDir()
	content := strings.Repeat("compress me ", 300)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte(content), 0o644))

	res, err := precompress.Run(context.Background(), dir, precompress.Options{})
	require.NoError(t, err)
	require.Equal(t, 3, res.Variants)

	// Second run finds everything current.
	res, err = precompress.Run(context.Background(), dir, precompress.Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Variants)
	assert.Equal(t, 3, res.Skipped)

	// Force rewrites.
	res, err = precompress.Run(context.Background(), dir, precompress.Options{Force: true})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Variants)
}

func TestRun_VariantsNotRecompressed(t *testing.T) {
	dir := t.TempDir()
	content := strings.Repeat("compress me ", 300)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte(content), 0o644))

	_, err := precompress.Run(context.Background(), dir, precompress.Options{})
	require.NoError(t, err)
	_, err = precompress.Run(context.Background(), dir, precompress.Options{Force: true})
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "a.txt.gz.gz"))
	assert.True(t, os.IsNotExist(statErr), "variants must not be treated as sources")
}

func TestRun_EncodingFilter(t *testing.T) {
	dir := t.TempDir()
	content := strings.Repeat("compress me ", 300)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte(content), 0o644))

	res, err := precompress.Run(context.Background(), dir, precompress.Options{Encodings: []string{"gzip"}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Variants)

	_, statErr := os.Stat(filepath.Join(dir, "a.txt.gz"))
	assert.NoError(t, statErr)
	_, statErr = os.Stat(filepath.Join(dir, "a.txt.br"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_UnknownEncoding(t *testing.T) {
	_, err := precompress.Run(context.Background(), t.TempDir(), precompress.Options{Encodings: []string{"lz4"}})
	assert.Error(t, err)
}

func TestRun_MissingRoot(t *testing.T) {
	_, err := precompress.Run(context.Background(), filepath.Join(t.TempDir(), "nope"), precompress.Options{})
	assert.Error(t, err)
}

func TestRun_ContextCancelled(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte(strings.Repeat("x", 4096)), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := precompress.Run(ctx, dir, precompress.Options{})
	assert.ErrorIs(t, err, context.Canceled)
}
