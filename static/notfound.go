package static

import (
	"io"
	"net/http"
)

const defaultNotFoundHTML = `<html>
<head><title>404 Not Found</title></head>
<body>
<center><h1>404 Not Found</h1></center>
<hr><center>shelf</center>
</body>
</html>`

// NotFound returns the default not-found collaborator: a plain HTML
// 404 page. Missing files, undecodable paths and traversal attempts
// all land here so clients cannot tell them apart.
func NotFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, defaultNotFoundHTML)
	})
}
