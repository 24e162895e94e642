// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

var payload = strings.Repeat(`{"paper_ids":[107,110]}`, 100)

func payloadHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	})
}

func TestCompression_Gzip(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/papers/1", nil)
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	rec := httptest.NewRecorder()

	Compression(payloadHandler()).ServeHTTP(rec, req)

	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("Content-Encoding = %q, want gzip", rec.Header().Get("Content-Encoding"))
	}
	zr, err := gzip.NewReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("gzip.NewReader() error = %v", err)
	}
	body, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(body) != payload {
		t.Error("decompressed body differs from payload")
	}
	if rec.Body.Len() >= len(payload) {
		t.Errorf("compressed size %d not smaller than %d", rec.Body.Len(), len(payload))
	}
}

func TestCompression_PassThrough(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		path     string
		encoding string
	}{
		{"no accept-encoding", http.MethodGet, "/api/v1/papers/1", ""},
		{"metrics endpoint", http.MethodGet, "/metrics", "gzip"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.encoding != "" {
				req.Header.Set("Accept-Encoding", tt.encoding)
			}
			rec := httptest.NewRecorder()
			Compression(payloadHandler()).ServeHTTP(rec, req)

			if rec.Header().Get("Content-Encoding") != "" {
				t.Error("response should not be compressed")
			}
			if rec.Body.String() != payload {
				t.Error("body changed")
			}
		})
	}
}
