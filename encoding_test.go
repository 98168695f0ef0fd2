package shelf_test

import (
	"testing"

	"github.com/shelfhttp/shelf"
	"github.com/stretchr/testify/assert"
)

func TestEncodings_TableOrder(t *testing.T) {
	// The table defines server-side preference; br must outrank zstd
	// and gzip regardless of how the client orders its header.
	assert.Equal(t, "br", shelf.Encodings[0].Name)
	assert.Equal(t, "zstd", shelf.Encodings[1].Name)
	assert.Equal(t, "gzip", shelf.Encodings[2].Name)

	assert.Equal(t, ".br", shelf.Encodings[0].Suffix)
	assert.Equal(t, ".zst", shelf.Encodings[1].Suffix)
	assert.Equal(t, ".gz", shelf.Encodings[2].Suffix)
}

func TestAcceptedEncodings(t *testing.T) {
	tt := []struct {
		name   string
		header string
		want   []string
	}{
		{name: "single", header: "gzip", want: []string{"gzip"}},
		{name: "list with spaces", header: "gzip, br", want: []string{"gzip", "br"}},
		{name: "quality values stripped", header: "br;q=0.8, gzip;q=1.0", want: []string{"br", "gzip"}},
		{name: "case folded", header: "GZip, BR", want: []string{"gzip", "br"}},
		{name: "empty header", header: "", want: nil},
		{name: "zstd", header: "zstd", want: []string{"zstd"}},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got := shelf.AcceptedEncodings(tc.header)
			assert.Len(t, got, len(tc.want))
			for _, token := range tc.want {
				assert.True(t, got[token], "expected %q accepted", token)
			}
		})
	}
}

func TestIsCompressible(t *testing.T) {
	compressible := []string{
		"",
		"text/plain",
		"text/html; charset=utf-8",
		"text/css",
		"application/json",
		"application/javascript",
		"application/xml",
		"application/wasm",
		"application/toml",
		"image/svg+xml",
		"application/vnd.api+json",
		"application/x-something+yaml",
		"font/ttf",
		"font/otf",
		"image/x-icon",
		"image/bmp",
		"model/gltf-binary",
	}
	for _, ct := range compressible {
		assert.True(t, shelf.IsCompressible(ct), "expected %q compressible", ct)
	}

	incompressible := []string{
		"image/png",
		"image/jpeg",
		"image/webp",
		"video/mp4",
		"audio/mpeg",
		"application/zip",
		"application/gzip",
		"application/octet-stream",
		"font/woff2",
	}
	for _, ct := range incompressible {
		assert.False(t, shelf.IsCompressible(ct), "expected %q incompressible", ct)
	}
}
