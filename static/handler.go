package static

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"path/filepath"
	"strconv"

	"github.com/shelfhttp/shelf"
	"github.com/shelfhttp/shelf/fsys"
)

// DefaultIndex is the directory index filename used when Config.Index
// is empty.
const DefaultIndex = "index.html"

// streamChunkSize bounds per-request memory during body streaming.
const streamChunkSize = 32 * 1024

// Config holds the construction-time options of a Handler. It is not
// mutated after NewHandler returns.
type Config struct {
	// Root is the base directory for all resolutions, relative to the
	// working directory. Empty means the working directory itself.
	// Absolute paths are unsupported; a handler built with one serves
	// not-found for every request.
	Root string

	// Path, when set, is served for every request verbatim: per-request
	// URL resolution, decoding and rewriting are all skipped.
	Path string

	// Index is the filename appended when a request resolves to a
	// directory. Defaults to DefaultIndex.
	Index string

	// Precompressed enables serving .br/.zst/.gz sibling files to
	// clients that accept the matching encoding.
	Precompressed bool

	// RewriteRequestPath transforms the decoded URL path before it is
	// joined with Root.
	RewriteRequestPath func(string) string

	// OnNotFound replaces the default 404 response. It receives the
	// original request.
	OnNotFound http.Handler

	// CORS configures the router's CORS middleware.
	CORS CORSConfig
}

// Handler serves static files per the Config it was built with. It is
// stateless across requests and safe for concurrent use.
type Handler struct {
	cfg      Config
	fs       fsys.FS
	index    string
	notFound http.Handler
}

// NewHandler creates a Handler serving files from cfg.Root. A root
// that cannot be opened is a non-fatal misconfiguration: the handler
// is still returned, a warning is logged, and every request falls
// through to the not-found handler.
func NewHandler(cfg *Config) *Handler {
	var fs fsys.FS

	dir := cfg.Root
	if dir == "" {
		dir = "."
	}

	if filepath.IsAbs(cfg.Root) {
		slog.Warn("static: absolute root is unsupported, all requests will be served not found", "root", cfg.Root)
	} else if osfs, err := fsys.OpenOS(dir); err != nil {
		slog.Warn("static: root is not accessible, all requests will be served not found", "root", dir, "err", err)
	} else {
		fs = osfs
	}

	return NewHandlerFS(cfg, fs)
}

// NewHandlerFS creates a Handler over an explicit filesystem
// capability. A nil fs degrades every request to not-found. This is
// the constructor tests use with fsys.MemFS.
func NewHandlerFS(cfg *Config, fs fsys.FS) *Handler {
	index := cfg.Index
	if index == "" {
		index = DefaultIndex
	}

	notFound := cfg.OnNotFound
	if notFound == nil {
		notFound = NotFound()
	}

	return &Handler{
		cfg:      *cfg,
		fs:       fs,
		index:    index,
		notFound: notFound,
	}
}

// ServeHTTP resolves the request to a file under the root and streams
// it back. It never fails outward: every error path resolves to the
// not-found handler or, mid-stream, to an aborted response.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.fs == nil {
		h.notFound.ServeHTTP(w, r)
		return
	}

	p := h.cfg.Path
	if p == "" {
		decoded, err := shelf.CleanPath(r.URL.EscapedPath())
		if err != nil {
			h.notFound.ServeHTTP(w, r)
			return
		}
		if h.cfg.RewriteRequestPath != nil {
			decoded = h.cfg.RewriteRequestPath(decoded)
		}
		p = decoded
	}

	name := shelf.FileName(p)

	info, err := h.fs.Stat(ctx, name)
	if err != nil {
		h.notFound.ServeHTTP(w, r)
		return
	}

	if info.IsDir {
		// One re-stat after appending the index name. An index entry
		// that is itself a directory is not resolved further.
		name = path.Join(name, h.index)
		info, err = h.fs.Stat(ctx, name)
		if err != nil || info.IsDir {
			h.notFound.ServeHTTP(w, r)
			return
		}
	}

	// Compressibility is judged on the extension-derived type before the
	// octet-stream fallback so extension-less files still negotiate.
	contentType := mime.TypeByExtension(path.Ext(name))

	if h.cfg.Precompressed && shelf.IsCompressible(contentType) {
		accepted := shelf.AcceptedEncodings(r.Header.Get("Accept-Encoding"))
		for _, enc := range shelf.Encodings {
			if !accepted[enc.Name] {
				continue
			}
			variant, statErr := h.fs.Stat(ctx, name+enc.Suffix)
			if statErr != nil || variant.IsDir {
				continue
			}
			// First hit in table order wins; later encodings are not
			// considered even if also accepted and present.
			name += enc.Suffix
			info = variant
			w.Header().Set("Content-Encoding", enc.Name)
			w.Header().Add("Vary", "Accept-Encoding")
			break
		}
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)

	if r.Method == http.MethodHead || r.Method == http.MethodOptions {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
		w.WriteHeader(http.StatusOK)
		return
	}

	rangeHeader := r.Header.Get("Range")
	if rangeHeader == "" {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
		w.WriteHeader(http.StatusOK)
		h.stream(ctx, w, name, 0, info.Size)
		return
	}

	br := shelf.ParseRange(rangeHeader, info.Size)

	w.Header().Set("Accept-Ranges", "bytes")
	w.Header().Set("Date", info.CreatedAt.UTC().Format(http.TimeFormat))
	w.Header().Set("Content-Length", strconv.FormatInt(br.Length(), 10))
	w.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", br.Start, br.End, info.Size))
	w.WriteHeader(http.StatusPartialContent)

	h.stream(ctx, w, name, br.Start, br.Length())
}

// stream copies length bytes starting at offset from name to w in
// fixed-size chunks. The file is opened only here, after headers are
// out, and is released on every return path. Mid-stream errors cannot
// change the status code anymore; the server aborts the response when
// the declared length goes unmet, and nothing is retried.
func (h *Handler) stream(ctx context.Context, w http.ResponseWriter, name string, offset, length int64) {
	if length <= 0 {
		return
	}

	f, err := h.fs.Open(ctx, name)
	if err != nil {
		slog.Error("static: open for streaming failed", "path", name, "err", err)
		return
	}
	defer func() { _ = f.Close() }()

	if offset > 0 {
		if _, seekErr := f.Seek(offset, io.SeekStart); seekErr != nil {
			slog.Error("static: seek failed", "path", name, "offset", offset, "err", seekErr)
			return
		}
	}

	buf := make([]byte, streamChunkSize)
	if _, copyErr := io.CopyBuffer(w, io.LimitReader(f, length), buf); copyErr != nil {
		slog.Warn("static: stream aborted", "path", name, "err", copyErr)
	}
}
