package shelf

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// CleanPath decodes a raw (still percent-encoded) URL path and rejects
// anything that could escape the serve root. It checks that the path:
//   - percent-decodes successfully
//   - does not contain a ".." segment after decoding, bounded by "/"
//     or by the start/end of the string
//
// The traversal check runs on the decoded form so that encoded dots
// ("%2e%2e") cannot bypass it. Returns ErrInvalidPath when the path
// must be treated as not found.
func CleanPath(raw string) (string, error) {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}

	if ContainsDotDot(decoded) {
		return "", ErrInvalidPath
	}

	return decoded, nil
}

// ContainsDotDot reports whether p has a ".." path segment. Substrings
// like "a..b" or "..." inside a segment are not traversal.
func ContainsDotDot(p string) bool {
	if !strings.Contains(p, "..") {
		return false
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return true
		}
	}
	return false
}

// FileName normalizes a decoded request path into a root-relative name
// suitable for the fsys layer. The path is cleaned as if rooted, so
// ".." segments introduced after the traversal gate (by a rewrite
// function, for example) collapse against the root instead of escaping
// it. The root itself is named ".".
func FileName(p string) string {
	p = path.Clean("/" + p)
	if p == "/" {
		return "."
	}
	return p[1:]
}
