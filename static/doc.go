// Package static implements the HTTP layer of shelf: a handler that
// maps request paths to files under a configured root, negotiates
// precompressed variants against Accept-Encoding, and serves full or
// partial (byte-range) content without buffering files in memory.
//
// # Usage
//
// Construct a handler from a Config and mount its router:
//
//	handler := static.NewHandler(&static.Config{
//	    Root:          "./public",
//	    Precompressed: true,
//	})
//	http.ListenAndServe(":8080", handler.Router())
//
// All resolution failures (missing files, undecodable paths, path
// traversal attempts) produce the same not-found response, served by
// the configured OnNotFound handler (default: a plain 404 page). The
// distinction is not leaked to clients.
//
// # Range requests
//
// A Range header yields a 206 response with Accept-Ranges,
// Content-Range and a body limited to the requested span. Only
// single-range requests are supported; for a multi-range header the
// first segment is honored and the rest ignored.
package static
