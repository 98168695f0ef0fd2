package shelf

import (
	"regexp"
	"strings"
)

// Encoding pairs a content-coding token with the filename suffix of
// its precompressed variant.
type Encoding struct {
	Name   string
	Suffix string
}

// Encodings is the precompressed-variant preference table. Order is
// significant: when a client accepts several encodings and several
// variants exist on disk, the first match in table order wins, not the
// order the client listed them.
var Encodings = []Encoding{
	{Name: "br", Suffix: ".br"},
	{Name: "zstd", Suffix: ".zst"},
	{Name: "gzip", Suffix: ".gz"},
}

// AcceptedEncodings parses an Accept-Encoding header value into the
// set of accepted content-coding tokens. Quality values are stripped;
// a token is accepted regardless of its q weight.
func AcceptedEncodings(header string) map[string]bool {
	accepted := make(map[string]bool)
	for _, part := range strings.Split(header, ",") {
		token, _, _ := strings.Cut(part, ";")
		token = strings.ToLower(strings.TrimSpace(token))
		if token != "" {
			accepted[token] = true
		}
	}
	return accepted
}

// compressibleRegex classifies content types that benefit from
// compression: text types, structured and script application formats,
// a few font and bitmap image formats, and anything with a
// +json/+text/+xml/+yaml suffix.
var compressibleRegex = regexp.MustCompile(`^\s*(?:text/[^;\s]+|application/(?:javascript|json|xml|xml-dtd|ecmascript|dart|postscript|rtf|tar|toml|vnd\.dart|vnd\.ms-fontobject|vnd\.ms-opentype|wasm|x-httpd-php|x-javascript|x-ns-proxy-autoconfig|x-sh|x-tar|x-virtualbox-hdd|x-virtualbox-ova|x-virtualbox-ovf|x-virtualbox-vbox|x-virtualbox-vdi|x-virtualbox-vhd|x-virtualbox-vmdk|x-www-form-urlencoded)|font/(?:otf|ttf)|image/(?:bmp|vnd\.adobe\.photoshop|vnd\.microsoft\.icon|vnd\.ms-dds|x-icon|x-ms-bmp)|message/rfc822|model/gltf-binary|x-shader/x-(?:fragment|vertex)|[^;\s]+?\+(?:json|text|xml|yaml))(?:[;\s]|$)`)

// IsCompressible reports whether a content type is worth serving from
// a precompressed variant. An empty content type counts as
// compressible so extension-less files still negotiate.
func IsCompressible(contentType string) bool {
	if contentType == "" {
		return true
	}
	return compressibleRegex.MatchString(contentType)
}
