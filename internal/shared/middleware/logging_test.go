package middleware

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestResponseWriter(t *testing.T) {
	tests := []struct {
		name       string
		write      func(rw *responseWriter)
		wantStatus int
		wantBytes  int
	}{
		{
			name:       "explicit status",
			write:      func(rw *responseWriter) { rw.WriteHeader(http.StatusNotFound) },
			wantStatus: http.StatusNotFound,
		},
		{
			name: "second WriteHeader ignored",
			write: func(rw *responseWriter) {
				rw.WriteHeader(http.StatusNotFound)
				rw.WriteHeader(http.StatusOK)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "body without WriteHeader defaults to 200",
			write:      func(rw *responseWriter) { rw.Write([]byte(`{"status":"ok"}`)) },
			wantStatus: http.StatusOK,
			wantBytes:  15,
		},
		{
			name: "bytes accumulate across writes",
			write: func(rw *responseWriter) {
				rw.WriteHeader(http.StatusCreated)
				rw.Write([]byte("ab"))
				rw.Write([]byte("cde"))
			},
			wantStatus: http.StatusCreated,
			wantBytes:  5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rw := wrapResponseWriter(httptest.NewRecorder())
			tt.write(rw)

			if rw.Status() != tt.wantStatus {
				t.Errorf("Status() = %d, want %d", rw.Status(), tt.wantStatus)
			}
			if rw.bytes != tt.wantBytes {
				t.Errorf("bytes = %d, want %d", rw.bytes, tt.wantBytes)
			}
		})
	}
}

func TestLogging_LineFields(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(orig)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("created"))
	})

	req := httptest.NewRequest(http.MethodPost, "/api/cards/?limit=10", nil)
	rr := httptest.NewRecorder()
	Logging(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rr.Code)
	}

	line := buf.String()
	for _, want := range []string{"POST", "/api/cards/", "201", "7B"} {
		if !strings.Contains(line, want) {
			t.Errorf("log line %q missing %q", line, want)
		}
	}
	if strings.Contains(line, "limit=10") {
		t.Errorf("log line %q should not include the query string", line)
	}
}

func TestLogging_DefaultStatus(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(orig)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	Logging(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(buf.String(), "200") {
		t.Errorf("log line %q missing implicit 200", buf.String())
	}
}
