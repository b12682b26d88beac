package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func gzipEchoHandler(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	defer r.Body.Close()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func TestGzipMiddleware(t *testing.T) {
	payload := `{"product_name":"Gentle Daily Moisturizer","overall_score":"A","ingredients":[]}`

	tests := []struct {
		name            string
		compressBody    bool
		acceptEncoding  string
		wantEncoding    string
	}{
		{
			name:           "client accepts gzip",
			acceptEncoding: "gzip",
			wantEncoding:   "gzip",
		},
		{
			name:           "client does not accept gzip",
			acceptEncoding: "",
			wantEncoding:   "",
		},
		{
			name:           "compressed request body",
			compressBody:   true,
			acceptEncoding: "gzip",
			wantEncoding:   "gzip",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader = strings.NewReader(payload)
			if tt.compressBody {
				var buf bytes.Buffer
				zw := gzip.NewWriter(&buf)
				if _, err := zw.Write([]byte(payload)); err != nil {
					t.Fatalf("write gzip: %v", err)
				}
				if err := zw.Close(); err != nil {
					t.Fatalf("close gzip: %v", err)
				}
				body = &buf
			}

			req := httptest.NewRequest(http.MethodPost, "/cosmetics/analyze", body)
			if tt.compressBody {
				req.Header.Set("Content-Encoding", "gzip")
			}
			req.Header.Set("Accept-Encoding", tt.acceptEncoding)

			w := httptest.NewRecorder()
			GzipMiddleware(http.HandlerFunc(gzipEchoHandler)).ServeHTTP(w, req)

			res := w.Result()
			defer res.Body.Close()

			if res.StatusCode != http.StatusOK {
				t.Fatalf("got status %d, want %d", res.StatusCode, http.StatusOK)
			}
			if got := res.Header.Get("Content-Encoding"); got != tt.wantEncoding {
				t.Fatalf("got encoding %q, want %q", got, tt.wantEncoding)
			}

			var respBody []byte
			var err error
			if tt.wantEncoding == "gzip" {
				zr, zerr := gzip.NewReader(res.Body)
				if zerr != nil {
					t.Fatalf("new gzip reader: %v", zerr)
				}
				defer zr.Close()
				respBody, err = io.ReadAll(zr)
			} else {
				respBody, err = io.ReadAll(res.Body)
			}
			if err != nil {
				t.Fatalf("read body: %v", err)
			}

			if string(respBody) != payload {
				t.Errorf("got body %q, want %q", respBody, payload)
			}
		})
	}
}

func TestGzipMiddlewareBadCompressedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/cosmetics/analyze", strings.NewReader("not gzip at all"))
	req.Header.Set("Content-Encoding", "gzip")

	w := httptest.NewRecorder()
	GzipMiddleware(http.HandlerFunc(gzipEchoHandler)).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusBadRequest)
	}
}
