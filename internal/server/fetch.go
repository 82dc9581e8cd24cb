package server

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// fetchHTML retrieves a page over plain HTTP, forwarding a few benign
// request headers and transparently undoing gzip/deflate encodings.
func fetchHTML(target string, hdr http.Header) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,*/*;q=0.8")
	if hdr != nil {
		for _, name := range []string{"User-Agent", "Accept-Language", "Cookie", "Referer"} {
			if v := hdr.Get(name); v != "" {
				req.Header.Set(name, v)
			}
		}
	}
	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("upstream status %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return decodeBody(body, resp.Header.Get("Content-Encoding"))
}

// decodeBody undoes gzip/deflate content encodings. The body is fully
// buffered so the raw-deflate fallback can restart from the first byte
// after a failed zlib attempt.
func decodeBody(body []byte, encoding string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "gzip":
		if gr, err := gzip.NewReader(bytes.NewReader(body)); err == nil {
			defer gr.Close()
			return io.ReadAll(gr)
		}
	case "deflate":
		if zr, err := zlib.NewReader(bytes.NewReader(body)); err == nil {
			defer zr.Close()
			return io.ReadAll(zr)
		}
		fr := flate.NewReader(bytes.NewReader(body))
		defer fr.Close()
		return io.ReadAll(fr)
	}
	return body, nil
}
