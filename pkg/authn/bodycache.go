package authn

import (
	"bytes"
	"io"
	"net/http"
	"strings"
)

// maxCachedBody caps how much of a request body the interceptor will buffer
// for logging. Requests larger than this are passed through untouched.
const maxCachedBody = 1 << 20 // 1 MiB

// isMultipart reports whether the request carries a multipart body.
// Multipart uploads bypass body caching and logging so large files are
// never buffered in memory.
func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "multipart/")
}

// cacheRequestBody drains the request body into memory and replaces it with
// a re-readable reader, so the body can be inspected for logging and still
// consumed by the downstream handler. Returns the buffered bytes.
func cacheRequestBody(r *http.Request) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxCachedBody+1))
	if err != nil {
		return nil, err
	}

	if len(body) > maxCachedBody {
		// Too large to buffer: stitch the prefix already read back in
		// front of the unread remainder so the handler still sees the
		// full stream, and skip caching.
		orig := r.Body
		r.Body = struct {
			io.Reader
			io.Closer
		}{io.MultiReader(bytes.NewReader(body), orig), orig}
		return nil, nil
	}

	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}
