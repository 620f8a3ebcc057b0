// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoggerPassesThrough(t *testing.T) {
	var gotMethod string
	handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(http.StatusCreated)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/presentations", nil))

	if gotMethod != http.MethodPost {
		t.Errorf("method seen by handler = %q", gotMethod)
	}
	if rr.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rr.Code)
	}
}

func TestLoggerKeepsImplicitStatus(t *testing.T) {
	// A handler that writes without WriteHeader gets the implicit 200.
	handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
	if rr.Body.String() != `{"status":"ok"}` {
		t.Errorf("body = %q", rr.Body.String())
	}
}

// The responseWriter wrapper is what the access log reads its status from;
// it must record the first explicit status and default to 200 on a bare
// Write.
func TestResponseWriterStatusCapture(t *testing.T) {
	t.Run("records first WriteHeader only", func(t *testing.T) {
		rw := &responseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}

		rw.WriteHeader(http.StatusConflict)
		rw.WriteHeader(http.StatusInternalServerError)

		if rw.statusCode != http.StatusConflict {
			t.Errorf("statusCode = %d, want 409 from the first call", rw.statusCode)
		}
		if !rw.written {
			t.Error("written not set after WriteHeader")
		}
	})

	t.Run("bare Write defaults to 200 and counts bytes", func(t *testing.T) {
		rw := &responseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}

		n, err := rw.Write([]byte("data"))
		if err != nil || n != 4 {
			t.Fatalf("Write = (%d, %v)", n, err)
		}
		rw.Write([]byte("more"))

		if rw.statusCode != http.StatusOK {
			t.Errorf("statusCode = %d, want 200", rw.statusCode)
		}
		if rw.bytes != 8 {
			t.Errorf("bytes = %d, want 8", rw.bytes)
		}
	})

	t.Run("Write after WriteHeader keeps the explicit status", func(t *testing.T) {
		rw := &responseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}

		rw.WriteHeader(http.StatusAccepted)
		rw.Write([]byte(`{"status":"pending"}`))

		if rw.statusCode != http.StatusAccepted {
			t.Errorf("statusCode = %d, want 202", rw.statusCode)
		}
	})
}
