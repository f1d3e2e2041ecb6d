package json

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	var dst struct {
		Title string `json:"title"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"abc"}`))
	if err := Read(req, &dst); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if dst.Title != "abc" {
		t.Fatalf("title = %q, want abc", dst.Title)
	}
}

func TestReadEmptyBody(t *testing.T) {
	var dst struct{}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	if err := Read(req, &dst); !errors.Is(err, ErrEmptyBody) {
		t.Fatalf("err = %v, want ErrEmptyBody", err)
	}
}

func TestReadMalformedBody(t *testing.T) {
	var dst struct{}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))
	err := Read(req, &dst)
	if err == nil {
		t.Fatal("expected a decode error")
	}
	if errors.Is(err, ErrEmptyBody) {
		t.Fatal("malformed body must not be reported as empty")
	}
}

func TestWriteNull(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteNull(rec, http.StatusOK)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q", ct)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "null" {
		t.Fatalf("body = %q, want null", body)
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusNotFound, errors.New("gone"), "Scenario not found")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != `{"message":"Scenario not found"}` {
		t.Fatalf("body = %q", body)
	}
}

func TestWriteErrorFallsBackToErrorMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusBadRequest, errors.New("limit must be positive"), "")

	if body := strings.TrimSpace(rec.Body.String()); body != `{"message":"limit must be positive"}` {
		t.Fatalf("body = %q", body)
	}
}
