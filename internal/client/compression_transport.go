package client

import (
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// acceptEncoding is advertised on every request that does not set its own.
const acceptEncoding = "gzip, br, zstd"

// decoders maps a content coding to a constructor of its decompressor.
var decoders = map[string]func(io.Reader) (io.ReadCloser, error){
	"gzip": func(r io.Reader) (io.ReadCloser, error) {
		return gzip.NewReader(r)
	},
	"br": func(r io.Reader) (io.ReadCloser, error) {
		return io.NopCloser(brotli.NewReader(r)), nil
	},
	"zstd": func(r io.Reader) (io.ReadCloser, error) {
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	},
}

// compressionTransport negotiates gzip, brotli and zstd with the site and
// hands decoded bodies to the layers above it.
type compressionTransport struct {
	next http.RoundTripper
}

func newCompressionTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &compressionTransport{next: next}
}

func (t *compressionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("Accept-Encoding") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("Accept-Encoding", acceptEncoding)
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.Body == nil || resp.Body == http.NoBody {
		return resp, nil
	}

	codings := contentCodings(resp.Header.Get("Content-Encoding"))
	if len(codings) == 0 {
		return resp, nil
	}
	for _, c := range codings {
		if _, ok := decoders[c]; !ok {
			// Leave bodies we cannot fully decode untouched.
			return resp, nil
		}
	}

	body, err := decodeBody(resp.Body, codings)
	if err != nil {
		resp.Body.Close()
		return nil, err
	}

	resp.Body = body
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	resp.Uncompressed = true
	return resp, nil
}

// decodeBody undoes codings in reverse order of application.
func decodeBody(raw io.ReadCloser, codings []string) (io.ReadCloser, error) {
	closers := []io.Closer{raw}
	var reader io.Reader = raw
	for i := len(codings) - 1; i >= 0; i-- {
		rc, err := decoders[codings[i]](reader)
		if err != nil {
			return nil, fmt.Errorf("decode %s body: %w", codings[i], err)
		}
		closers = append(closers, rc)
		reader = rc
	}
	return &decodedBody{Reader: reader, closers: closers}, nil
}

// decodedBody closes every decompressor and the network body.
type decodedBody struct {
	io.Reader
	closers []io.Closer
}

func (d *decodedBody) Close() error {
	var first error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// contentCodings splits a Content-Encoding header into lowercase codings in
// order of application, dropping "identity".
func contentCodings(header string) []string {
	var codings []string
	for _, part := range strings.Split(header, ",") {
		c := strings.ToLower(strings.TrimSpace(part))
		if c == "" || c == "identity" {
			continue
		}
		codings = append(codings, c)
	}
	return codings
}
