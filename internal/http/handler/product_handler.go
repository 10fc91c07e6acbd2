package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kashmiricraft/treasures-api/internal/domain"
	"github.com/kashmiricraft/treasures-api/internal/http/response"
	"github.com/kashmiricraft/treasures-api/internal/observability"
	"github.com/kashmiricraft/treasures-api/internal/repository"
	"github.com/kashmiricraft/treasures-api/internal/service"
)

// maxMultipartMemory caps the in-memory portion of multipart parsing; larger
// file parts spill to temp files. The request body itself is capped by the
// BodyLimit middleware.
const maxMultipartMemory = 32 << 20

type ProductHandler struct {
	svc service.ProductServiceInterface
}

func NewProductHandler(svc service.ProductServiceInterface) *ProductHandler {
	return &ProductHandler{svc: svc}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid multipart form", nil)
		return
	}

	missing := missingFormFields(r.MultipartForm, "name", "description", "price", "category")
	if len(r.MultipartForm.File["image"]) == 0 {
		missing = append(missing, "image")
	}
	if len(missing) > 0 {
		response.Error(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "missing required fields", missing)
		return
	}

	form := service.CreateProductForm{
		Name:          formValue(r.MultipartForm, "name", ""),
		Description:   formValue(r.MultipartForm, "description", ""),
		Price:         formValue(r.MultipartForm, "price", ""),
		OriginalPrice: formValue(r.MultipartForm, "original_price", ""),
		Category:      formValue(r.MultipartForm, "category", ""),
		InStock:       formValue(r.MultipartForm, "in_stock", "true"),
		Rating:        formValue(r.MultipartForm, "rating", "0.0"),
		Reviews:       formValue(r.MultipartForm, "reviews", "0"),
		Variants:      formValue(r.MultipartForm, "variants", ""),
		Details:       formValue(r.MultipartForm, "details", ""),
		ArtisanStory:  formValue(r.MultipartForm, "artisan_story", ""),
	}

	primary, err := readFileUpload(r.MultipartForm.File["image"][0])
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "failed to read uploaded image", nil)
		return
	}
	form.Image = primary
	form.AdditionalImages, err = readFileUploads(r.MultipartForm.File["additional_images"])
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "failed to read uploaded image", nil)
		return
	}

	created, err := h.svc.Create(r.Context(), form)
	if err != nil {
		writeProductError(w, r, err, "failed to create product")
		return
	}

	observability.Audit(r, "product.create",
		"product_id", created.ID,
		"category", created.Category,
	)
	response.JSON(w, r, http.StatusCreated, created.View())
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	products, err := h.svc.List(r.Context(), category)
	if err != nil {
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to list products", nil)
		return
	}
	views := make([]domain.ProductView, 0, len(products))
	for i := range products {
		views = append(views, products[i].View())
	}
	response.JSON(w, r, http.StatusOK, views)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	product, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to load product", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, product.View())
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid multipart form", nil)
		return
	}

	form := service.UpdateProductForm{
		Name:          formValuePtr(r.MultipartForm, "name"),
		Description:   formValuePtr(r.MultipartForm, "description"),
		Price:         formValuePtr(r.MultipartForm, "price"),
		OriginalPrice: formValuePtr(r.MultipartForm, "original_price"),
		Category:      formValuePtr(r.MultipartForm, "category"),
		InStock:       formValuePtr(r.MultipartForm, "in_stock"),
		Rating:        formValuePtr(r.MultipartForm, "rating"),
		Reviews:       formValuePtr(r.MultipartForm, "reviews"),
		Variants:      formValuePtr(r.MultipartForm, "variants"),
		Details:       formValuePtr(r.MultipartForm, "details"),
		ArtisanStory:  formValuePtr(r.MultipartForm, "artisan_story"),
	}

	if files := r.MultipartForm.File["image"]; len(files) > 0 {
		upload, err := readFileUpload(files[0])
		if err != nil {
			response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "failed to read uploaded image", nil)
			return
		}
		form.Image = &upload
	}
	uploads, err := readFileUploads(r.MultipartForm.File["additional_images"])
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "failed to read uploaded image", nil)
		return
	}
	form.AdditionalImages = uploads

	updated, err := h.svc.Update(r.Context(), id, form)
	if err != nil {
		writeProductError(w, r, err, "failed to update product")
		return
	}

	observability.Audit(r, "product.update", "product_id", updated.ID)
	response.JSON(w, r, http.StatusOK, updated.View())
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to delete product", nil)
		return
	}

	observability.Audit(r, "product.delete", "product_id", id)
	response.JSON(w, r, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

func writeProductError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, service.ErrPrimaryImageRequired):
		response.Error(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error(), nil)
	case errors.Is(err, service.ErrInvalidPrice):
		response.Error(w, r, http.StatusBadRequest, "INVALID_INPUT", err.Error(), nil)
	case errors.Is(err, repository.ErrProductNotFound):
		response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
	default:
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", fallback, nil)
	}
}

func formValue(form *multipart.Form, key, fallback string) string {
	if vals, ok := form.Value[key]; ok && len(vals) > 0 {
		return vals[0]
	}
	return fallback
}

// formValuePtr distinguishes an absent form key from one supplied as blank:
// partial updates treat those two cases differently for several fields.
func formValuePtr(form *multipart.Form, key string) *string {
	vals, ok := form.Value[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	v := vals[0]
	return &v
}

func readFileUpload(fh *multipart.FileHeader) (service.FileUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return service.FileUpload{}, err
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return service.FileUpload{}, err
	}
	return service.FileUpload{Filename: fh.Filename, Content: content}, nil
}

func readFileUploads(headers []*multipart.FileHeader) ([]service.FileUpload, error) {
	if len(headers) == 0 {
		return nil, nil
	}
	uploads := make([]service.FileUpload, 0, len(headers))
	for _, fh := range headers {
		upload, err := readFileUpload(fh)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, upload)
	}
	return uploads, nil
}

func missingFormFields(form *multipart.Form, keys ...string) []string {
	var missing []string
	for _, key := range keys {
		if vals, ok := form.Value[key]; !ok || len(vals) == 0 {
			missing = append(missing, key)
		}
	}
	return missing
}
