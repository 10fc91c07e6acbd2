package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kashmiricraft/treasures-api/internal/domain"
	"github.com/kashmiricraft/treasures-api/internal/http/middleware"
	"github.com/kashmiricraft/treasures-api/internal/repository"
	"github.com/kashmiricraft/treasures-api/internal/security"
	"github.com/kashmiricraft/treasures-api/internal/service"
)

type stubProductService struct {
	createErr   error
	updateErr   error
	lastCreate  *service.CreateProductForm
	lastUpdate  *service.UpdateProductForm
	lastUpdated string
	product     domain.Product
	listed      []domain.Product
}

func (s *stubProductService) Create(_ context.Context, form service.CreateProductForm) (*domain.Product, error) {
	s.lastCreate = &form
	if s.createErr != nil {
		return nil, s.createErr
	}
	cp := s.product
	return &cp, nil
}

func (s *stubProductService) Update(_ context.Context, id string, form service.UpdateProductForm) (*domain.Product, error) {
	s.lastUpdated = id
	s.lastUpdate = &form
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	cp := s.product
	return &cp, nil
}

func (s *stubProductService) Delete(_ context.Context, id string) error {
	if id == "missing" {
		return repository.ErrProductNotFound
	}
	return nil
}

func (s *stubProductService) Get(_ context.Context, id string) (*domain.Product, error) {
	if id == "missing" {
		return nil, repository.ErrProductNotFound
	}
	cp := s.product
	return &cp, nil
}

func (s *stubProductService) List(context.Context, string) ([]domain.Product, error) {
	return s.listed, nil
}

func sampleProduct() domain.Product {
	return domain.Product{
		ID:          "shawls-abc123",
		Name:        "Shawl",
		Description: "desc",
		Price:       199.5,
		Image:       "/uploads/shawls-abc123_00000000.jpg",
		Images:      `["/uploads/shawls-abc123_00000000.jpg"]`,
		Category:    "shawls",
		InStock:     true,
	}
}

func adminTokenForTest(t *testing.T) string {
	t.Helper()
	jwt := security.NewJWTManager("iss", "aud", "abcdefghijklmnopqrstuvwxyz123456")
	tok, err := jwt.SignAccessToken("admin", time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func newProductRouter(svc service.ProductServiceInterface) http.Handler {
	jwt := security.NewJWTManager("iss", "aud", "abcdefghijklmnopqrstuvwxyz123456")
	h := NewProductHandler(svc)
	r := chi.NewRouter()
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(jwt))
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
	return r
}

type multipartBody struct {
	buf    bytes.Buffer
	writer *multipart.Writer
}

func newMultipartBody() *multipartBody {
	b := &multipartBody{}
	b.writer = multipart.NewWriter(&b.buf)
	return b
}

func (b *multipartBody) field(key, value string) *multipartBody {
	_ = b.writer.WriteField(key, value)
	return b
}

func (b *multipartBody) file(key, filename, content string) *multipartBody {
	fw, _ := b.writer.CreateFormFile(key, filename)
	_, _ = io.WriteString(fw, content)
	return b
}

func (b *multipartBody) request(t *testing.T, method, target string) *http.Request {
	t.Helper()
	if err := b.writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	req := httptest.NewRequest(method, target, &b.buf)
	req.Header.Set("Content-Type", b.writer.FormDataContentType())
	return req
}

func validCreateBody() *multipartBody {
	return newMultipartBody().
		field("name", "Shawl").
		field("description", "desc").
		field("price", "199.5").
		field("category", "shawls").
		file("image", "shawl.jpg", "jpegdata")
}

func TestCreateRequiresAuth(t *testing.T) {
	r := newProductRouter(&stubProductService{product: sampleProduct()})

	req := validCreateBody().request(t, http.MethodPost, "/api/products/")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCreateReturnsNormalizedView(t *testing.T) {
	svc := &stubProductService{product: sampleProduct()}
	r := newProductRouter(svc)

	req := validCreateBody().request(t, http.MethodPost, "/api/products/")
	req.Header.Set("Authorization", "Bearer "+adminTokenForTest(t))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	var view domain.ProductView
	if err := json.Unmarshal(rr.Body.Bytes(), &view); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if view.ID != "shawls-abc123" || len(view.Images) != 1 || view.Images[0] != view.Image {
		t.Fatalf("unexpected view: %+v", view)
	}
	if svc.lastCreate == nil || svc.lastCreate.Image.Filename != "shawl.jpg" {
		t.Fatalf("expected upload forwarded, got %+v", svc.lastCreate)
	}
	// in_stock not sent: defaults truthy on create
	if svc.lastCreate.InStock != "true" {
		t.Fatalf("expected in_stock default \"true\", got %q", svc.lastCreate.InStock)
	}
}

// An omitted price is a missing required form field and takes the 422
// presence path with the others; INVALID_INPUT (400) is reserved for a
// price that is present but unparseable.
func TestCreateMissingFieldsRejected(t *testing.T) {
	r := newProductRouter(&stubProductService{product: sampleProduct()})

	body := newMultipartBody().field("name", "Shawl")
	req := body.request(t, http.MethodPost, "/api/products/")
	req.Header.Set("Authorization", "Bearer "+adminTokenForTest(t))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rr.Code, rr.Body.String())
	}

	var env struct {
		Error struct {
			Code    string   `json:"code"`
			Details []string `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.Error.Code != "VALIDATION_ERROR" || len(env.Error.Details) != 4 {
		t.Fatalf("unexpected error envelope: %s", rr.Body.String())
	}
}

func TestCreateErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid category", fmt.Errorf("%w: %q", domain.ErrInvalidCategory, "carpets"), http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"invalid price", service.ErrInvalidPrice, http.StatusBadRequest, "INVALID_INPUT"},
		{"primary image required", service.ErrPrimaryImageRequired, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newProductRouter(&stubProductService{createErr: tc.err})
			req := validCreateBody().request(t, http.MethodPost, "/api/products/")
			req.Header.Set("Authorization", "Bearer "+adminTokenForTest(t))
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)
			if rr.Code != tc.status {
				t.Fatalf("expected %d, got %d body=%s", tc.status, rr.Code, rr.Body.String())
			}
			var env struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if env.Error.Code != tc.code {
				t.Fatalf("expected code %q, got %q", tc.code, env.Error.Code)
			}
		})
	}
}

func TestUpdateDistinguishesAbsentFromBlank(t *testing.T) {
	svc := &stubProductService{product: sampleProduct()}
	r := newProductRouter(svc)

	body := newMultipartBody().
		field("name", "Renamed").
		field("original_price", "")
	req := body.request(t, http.MethodPut, "/api/products/shawls-abc123")
	req.Header.Set("Authorization", "Bearer "+adminTokenForTest(t))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	form := svc.lastUpdate
	if form == nil {
		t.Fatal("expected update form forwarded")
	}
	if form.Name == nil || *form.Name != "Renamed" {
		t.Fatalf("expected name supplied, got %v", form.Name)
	}
	if form.OriginalPrice == nil || *form.OriginalPrice != "" {
		t.Fatalf("expected original_price supplied as blank, got %v", form.OriginalPrice)
	}
	if form.Price != nil || form.Variants != nil || form.Image != nil {
		t.Fatalf("expected omitted fields absent, got %+v", form)
	}
	if svc.lastUpdated != "shawls-abc123" {
		t.Fatalf("unexpected id: %q", svc.lastUpdated)
	}
}

func TestUpdateInvalidCategoryRejected(t *testing.T) {
	r := newProductRouter(&stubProductService{updateErr: domain.ErrInvalidCategory})

	req := newMultipartBody().field("category", "carpets").request(t, http.MethodPut, "/api/products/shawls-abc123")
	req.Header.Set("Authorization", "Bearer "+adminTokenForTest(t))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rr.Code, rr.Body.String())
	}
	var env struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected VALIDATION_ERROR, got %q", env.Error.Code)
	}
}

func TestUpdateNotFound(t *testing.T) {
	r := newProductRouter(&stubProductService{updateErr: repository.ErrProductNotFound})

	req := newMultipartBody().field("name", "x").request(t, http.MethodPut, "/api/products/shawls-zzzzzz")
	req.Header.Set("Authorization", "Bearer "+adminTokenForTest(t))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestListAndGet(t *testing.T) {
	svc := &stubProductService{product: sampleProduct(), listed: []domain.Product{sampleProduct()}}
	r := newProductRouter(svc)

	t.Run("list", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/products/", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		var views []domain.ProductView
		if err := json.Unmarshal(rr.Body.Bytes(), &views); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(views) != 1 || views[0].ID != "shawls-abc123" {
			t.Fatalf("unexpected views: %+v", views)
		}
	})

	t.Run("get missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/products/missing", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rr.Code)
		}
	})
}

func TestDelete(t *testing.T) {
	r := newProductRouter(&stubProductService{product: sampleProduct()})
	token := adminTokenForTest(t)

	t.Run("success", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/products/shawls-abc123", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if body["message"] == "" {
			t.Fatalf("expected confirmation message, got %v", body)
		}
	})

	t.Run("missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/products/missing", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rr.Code)
		}
	})
}
