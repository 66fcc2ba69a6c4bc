package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/johnwards/formbuilder/internal/api"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	data := map[string]string{"key": "value"}

	api.WriteJSON(rec, http.StatusOK, data)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	ct := rec.Header().Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/json")
	}

	var result map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result["key"] != "value" {
		t.Errorf("key = %q, want %q", result["key"], "value")
	}
}

func TestWriteJSONStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	api.WriteJSON(rec, http.StatusCreated, map[string]int{"id": 1})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
}

func TestDecodeJSON(t *testing.T) {
	var body struct {
		Title string `json:"title"`
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"Survey"}`))
	if !api.DecodeJSON(rec, req, &body) {
		t.Fatalf("decode failed: %s", rec.Body.String())
	}
	if body.Title != "Survey" {
		t.Errorf("title = %q", body.Title)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":`))
	if api.DecodeJSON(rec, req, &body) {
		t.Fatal("expected malformed JSON to fail")
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestDecodeJSONEmptyBody(t *testing.T) {
	var body map[string]any

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	if api.DecodeJSON(rec, req, &body) {
		t.Fatal("expected empty body to fail")
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestDecodeOptionalJSON(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantPresent bool
		wantOK      bool
	}{
		{name: "empty", body: "", wantPresent: false, wantOK: true},
		{name: "whitespace", body: " \n", wantPresent: false, wantOK: true},
		{name: "object", body: `{"title":"Survey"}`, wantPresent: true, wantOK: true},
		{name: "malformed", body: `{"title":`, wantPresent: false, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]any
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			req.ContentLength = -1
			req.TransferEncoding = []string{"chunked"}

			present, ok := api.DecodeOptionalJSON(rec, req, &body)
			if present != tt.wantPresent || ok != tt.wantOK {
				t.Errorf("got present=%v ok=%v, want present=%v ok=%v", present, ok, tt.wantPresent, tt.wantOK)
			}
			if !tt.wantOK && rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}
