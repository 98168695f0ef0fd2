// Package shelf provides the building blocks for a static file server
// with precompressed-variant negotiation and byte-range support.
//
// The root package holds the protocol-level primitives: request path
// decoding and traversal rejection, the Accept-Encoding preference
// table, compressible content-type classification, and single-range
// parsing. The static package assembles them into an HTTP handler, the
// fsys package supplies the filesystem capability it reads from, and
// the precompress package generates the on-disk encoded variants the
// handler serves.
//
// # Request pipeline
//
// Each request is resolved in a single pass: decode and validate the
// URL path, join it with the configured root, stat the target, fall
// back to the directory index, pick a precompressed sibling when the
// client accepts one, then stream either the whole file or the
// requested byte range. The handler is stateless across requests; all
// failure paths collapse into the configured not-found handler.
//
// See the static package for handler construction and the cmd/shelf
// command for the server binary.
package shelf
