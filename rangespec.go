package shelf

import (
	"strconv"
	"strings"
)

// ByteRange is an inclusive byte span of a resource.
type ByteRange struct {
	Start int64
	End   int64
}

// Length returns the number of bytes the range covers.
func (r ByteRange) Length() int64 {
	return r.End - r.Start + 1
}

// ParseRange interprets a Range header value of the form
// "bytes=<start>-<end>" against a resource of the given size.
//
// A missing or unparsable start defaults to 0; a missing or unparsable
// end defaults to size-1. When the requested span exceeds the bytes
// available from start, end is clamped to size-1.
//
// Multi-range requests are not supported: only the substring before
// the first comma is honored, silently. Clients needing
// multipart/byteranges responses are out of scope.
func ParseRange(header string, size int64) ByteRange {
	spec := header
	if cut, _, found := strings.Cut(spec, ","); found {
		spec = cut
	}
	spec = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(spec), "bytes="))

	startStr, endStr, _ := strings.Cut(spec, "-")

	start, err := strconv.ParseInt(strings.TrimSpace(startStr), 10, 64)
	if err != nil || start < 0 {
		start = 0
	}

	end, err := strconv.ParseInt(strings.TrimSpace(endStr), 10, 64)
	if err != nil || end < 0 {
		end = size - 1
	}

	if size < end-start+1 {
		end = size - 1
	}

	return ByteRange{Start: start, End: end}
}
