package shelf_test

import (
	"errors"
	"testing"

	"github.com/shelfhttp/shelf"
)

func TestCleanPath(t *testing.T) {
	tt := []struct {
		Name string
		Raw  string
		Want string
		OK   bool
	}{
		{Name: "plain path", Raw: "/static/app.js", Want: "/static/app.js", OK: true},
		{Name: "root", Raw: "/", Want: "/", OK: true},
		{Name: "encoded space", Raw: "/a%20b.txt", Want: "/a b.txt", OK: true},
		{Name: "encoded unicode", Raw: "/caf%C3%A9.html", Want: "/café.html", OK: true},

		// Traversal, plain and encoded
		{Name: "dotdot segment", Raw: "/../etc/passwd", OK: false},
		{Name: "dotdot in middle", Raw: "/a/../b", OK: false},
		{Name: "trailing dotdot", Raw: "/a/..", OK: false},
		{Name: "bare dotdot", Raw: "..", OK: false},
		{Name: "encoded dotdot", Raw: "/%2e%2e/secret", OK: false},
		{Name: "half encoded dotdot", Raw: "/.%2e/secret", OK: false},

		// Dots inside a segment are not traversal
		{Name: "dots in filename", Raw: "/a..b.txt", Want: "/a..b.txt", OK: true},
		{Name: "triple dots", Raw: "/.../x", Want: "/.../x", OK: true},
		{Name: "hidden file", Raw: "/.well-known/x", Want: "/.well-known/x", OK: true},

		// Decode failures
		{Name: "bad escape", Raw: "/a%zz", OK: false},
		{Name: "truncated escape", Raw: "/a%2", OK: false},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			got, err := shelf.CleanPath(tc.Raw)
			if tc.OK && err != nil {
				t.Fatalf("CleanPath(%q) err = %v, want nil", tc.Raw, err)
			}
			if !tc.OK {
				if !errors.Is(err, shelf.ErrInvalidPath) {
					t.Fatalf("CleanPath(%q) err = %v, want ErrInvalidPath", tc.Raw, err)
				}
				return
			}
			if got != tc.Want {
				t.Errorf("CleanPath(%q) = %q, want %q", tc.Raw, got, tc.Want)
			}
		})
	}
}

func TestFileName(t *testing.T) {
	tt := []struct {
		Path string
		Want string
	}{
		{Path: "/", Want: "."},
		{Path: "", Want: "."},
		{Path: "/app.js", Want: "app.js"},
		{Path: "docs/guide.html", Want: "docs/guide.html"},
		{Path: "/docs//guide.html", Want: "docs/guide.html"},
		{Path: "/docs/./guide.html", Want: "docs/guide.html"},
		// Rewrite-introduced traversal collapses against the root
		{Path: "/../../x", Want: "x"},
		{Path: "/a/../b", Want: "b"},
	}

	for _, tc := range tt {
		if got := shelf.FileName(tc.Path); got != tc.Want {
			t.Errorf("FileName(%q) = %q, want %q", tc.Path, got, tc.Want)
		}
	}
}
