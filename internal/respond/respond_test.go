package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/templui/focusflow/internal/schema"
)

func TestJSONNilPointer(t *testing.T) {
	rec := httptest.NewRecorder()

	var missing *struct{ ID int }
	OK(rec, missing)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "null" {
		t.Errorf("body = %q, want null", got)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
}

func TestInvalid(t *testing.T) {
	rec := httptest.NewRecorder()
	if Invalid(rec, errors.New("boom")) {
		t.Fatal("plain error reported as validation failure")
	}
	if rec.Body.Len() != 0 {
		t.Fatal("nothing should be written for non-validation errors")
	}

	rec = httptest.NewRecorder()
	err := &schema.ValidationError{Field: "title", Message: "title is required"}
	if !Invalid(rec, err) {
		t.Fatal("validation error not handled")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}

	var body ErrorBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Field != "title" || body.Message != "title is required" {
		t.Errorf("body = %+v", body)
	}
}

func TestInvalidBodyTooLarge(t *testing.T) {
	rec := httptest.NewRecorder()
	if !Invalid(rec, &http.MaxBytesError{Limit: 10}) {
		t.Fatal("oversized body not handled")
	}
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"message":"Request body too large"}` {
		t.Errorf("body = %s", got)
	}
}

func TestErrorBodies(t *testing.T) {
	tests := []struct {
		name   string
		write  func(http.ResponseWriter)
		status int
		body   string
	}{
		{name: "unauthorized", write: Unauthorized, status: http.StatusUnauthorized, body: `{"message":"Unauthorized"}`},
		{name: "internal", write: InternalError, status: http.StatusInternalServerError, body: `{"message":"Internal Server Error"}`},
		{name: "not found", write: func(w http.ResponseWriter) { NotFound(w, "Goal not found") }, status: http.StatusNotFound, body: `{"message":"Goal not found"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if got := strings.TrimSpace(rec.Body.String()); got != tt.body {
				t.Errorf("body = %s, want %s", got, tt.body)
			}
		})
	}
}
