package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/kashmiricraft/treasures-api/internal/storage"
)

func TestServeStoredImage(t *testing.T) {
	store, err := storage.NewLocalImageStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	path, err := store.Save(context.Background(), []byte("jpegdata"), "photo.jpg", "shawls-abc123")
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	r := chi.NewRouter()
	r.Get("/uploads/{filename}", NewUploadsHandler(store).Serve)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Body.String() != "jpegdata" {
		t.Fatalf("unexpected body: %q", rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "image/jpeg") {
		t.Fatalf("unexpected content type: %q", ct)
	}
}

func TestServeMissingImage(t *testing.T) {
	store, err := storage.NewLocalImageStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	r := chi.NewRouter()
	r.Get("/uploads/{filename}", NewUploadsHandler(store).Serve)

	req := httptest.NewRequest(http.MethodGet, "/uploads/missing.jpg", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}
