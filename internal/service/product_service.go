package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kashmiricraft/treasures-api/internal/domain"
	"github.com/kashmiricraft/treasures-api/internal/observability"
	"github.com/kashmiricraft/treasures-api/internal/repository"
	"github.com/kashmiricraft/treasures-api/internal/storage"
)

var (
	ErrInvalidPrice         = errors.New("price must be a valid number")
	ErrPrimaryImageRequired = errors.New("a primary product image is required")
)

type ProductServiceImpl struct {
	repo   repository.ProductRepository
	images storage.ImageStore
}

func NewProductService(repo repository.ProductRepository, images storage.ImageStore) *ProductServiceImpl {
	return &ProductServiceImpl{repo: repo, images: images}
}

// newProductID builds "{category}-{6 hex}". Collision resistance is
// probabilistic, which is acceptable at catalog scale.
func newProductID(category domain.Category) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%s-%s", category, hex[:6])
}

func (s *ProductServiceImpl) Create(ctx context.Context, form CreateProductForm) (*domain.Product, error) {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordProductOperation(ctx, "create", outcome, time.Since(start)) }()

	category, err := domain.ParseCategory(strings.TrimSpace(form.Category))
	if err != nil {
		outcome = "validation_error"
		return nil, err
	}
	if form.Image.IsEmpty() {
		outcome = "validation_error"
		return nil, ErrPrimaryImageRequired
	}

	id := newProductID(category)

	primary, err := s.images.Save(ctx, form.Image.Content, form.Image.Filename, id)
	if err != nil {
		outcome = "error"
		return nil, err
	}
	images := []string{primary}
	for _, upload := range form.AdditionalImages {
		if upload.IsEmpty() {
			continue
		}
		path, err := s.images.Save(ctx, upload.Content, upload.Filename, id)
		if err != nil {
			outcome = "error"
			return nil, err
		}
		images = append(images, path)
	}

	// Price is the one mandatory numeric: malformed price fails the whole
	// request, while every other numeric coercion below is absorbed.
	price, err := parseFloatForm(form.Price)
	if err != nil {
		outcome = "bad_request"
		return nil, ErrInvalidPrice
	}

	product := &domain.Product{
		ID:           id,
		Name:         form.Name,
		Description:  form.Description,
		Price:        price,
		Image:        primary,
		Category:     string(category),
		InStock:      parseBoolForm(form.InStock),
		Variants:     normalizeJSONDocument(form.Variants),
		Details:      normalizeJSONDocument(form.Details),
		ArtisanStory: optionalText(form.ArtisanStory),
	}
	product.SetImages(images)

	if v, err := parseFloatForm(form.OriginalPrice); err == nil && strings.TrimSpace(form.OriginalPrice) != "" {
		product.OriginalPrice = &v
	}
	if v, err := parseFloatForm(form.Rating); err == nil {
		product.Rating = v
	}
	if v, err := parseIntForm(form.Reviews); err == nil {
		product.Reviews = v
	}

	if err := s.repo.Create(product); err != nil {
		outcome = "error"
		return nil, err
	}
	return product, nil
}

func (s *ProductServiceImpl) Update(ctx context.Context, id string, form UpdateProductForm) (*domain.Product, error) {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordProductOperation(ctx, "update", outcome, time.Since(start)) }()

	product, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			outcome = "not_found"
		} else {
			outcome = "error"
		}
		return nil, err
	}

	if form.Name != nil {
		product.Name = strings.TrimSpace(*form.Name)
	}
	if form.Description != nil {
		product.Description = strings.TrimSpace(*form.Description)
	}
	// Unlike create, a malformed price on update is absorbed and the stored
	// value kept, since the record already carries a valid one.
	if form.Price != nil && strings.TrimSpace(*form.Price) != "" {
		if v, err := parseFloatForm(*form.Price); err == nil {
			product.Price = v
		}
	}
	if form.OriginalPrice != nil {
		if trimmed := strings.TrimSpace(*form.OriginalPrice); trimmed == "" {
			product.OriginalPrice = nil
		} else if v, err := parseFloatForm(trimmed); err == nil {
			// Zero is not a valid original price: it clears the field.
			if v == 0 {
				product.OriginalPrice = nil
			} else {
				product.OriginalPrice = &v
			}
		}
	}
	if form.Category != nil {
		category, err := domain.ParseCategory(strings.TrimSpace(*form.Category))
		if err != nil {
			outcome = "validation_error"
			return nil, err
		}
		product.Category = string(category)
	}
	if form.InStock != nil {
		product.InStock = parseBoolForm(*form.InStock, "on")
	}
	if form.Rating != nil && strings.TrimSpace(*form.Rating) != "" {
		if v, err := parseFloatForm(*form.Rating); err == nil {
			product.Rating = v
		}
	}
	if form.Reviews != nil && strings.TrimSpace(*form.Reviews) != "" {
		if v, err := parseIntForm(*form.Reviews); err == nil {
			product.Reviews = v
		}
	}
	// Malformed variants/details clear the field instead of keeping the old
	// value. Asymmetric with price/rating above, and deliberate.
	if form.Variants != nil {
		product.Variants = normalizeJSONDocument(*form.Variants)
	}
	if form.Details != nil {
		product.Details = normalizeJSONDocument(*form.Details)
	}
	if form.ArtisanStory != nil {
		product.ArtisanStory = optionalText(*form.ArtisanStory)
	}

	previousAdditional := []string{}
	if stored := product.StoredImages(); len(stored) > 1 {
		previousAdditional = stored[1:]
	}

	replacedPrimary := false
	if form.Image != nil && !form.Image.IsEmpty() {
		// Advisory cleanup of the outgoing primary blob; failures never
		// block the update.
		_ = s.images.Remove(ctx, product.Image)
		primary, err := s.images.Save(ctx, form.Image.Content, form.Image.Filename, id)
		if err != nil {
			outcome = "error"
			return nil, err
		}
		product.Image = primary
		replacedPrimary = true
	}

	newAdditional := []string{}
	for _, upload := range form.AdditionalImages {
		if upload.IsEmpty() {
			continue
		}
		path, err := s.images.Save(ctx, upload.Content, upload.Filename, id)
		if err != nil {
			outcome = "error"
			return nil, err
		}
		newAdditional = append(newAdditional, path)
	}

	// New additional uploads are spliced in directly after the primary,
	// ahead of any images the product already had.
	if replacedPrimary || len(newAdditional) > 0 {
		rebuilt := append([]string{product.Image}, newAdditional...)
		rebuilt = append(rebuilt, previousAdditional...)
		product.SetImages(rebuilt)
	}

	if err := s.repo.Save(product); err != nil {
		outcome = "error"
		return nil, err
	}
	return product, nil
}

// Delete removes the record and issues advisory deletes for every stored
// blob path without deduplication; the blobs are not load-bearing and the
// record removal happens regardless of how the deletes fare.
func (s *ProductServiceImpl) Delete(ctx context.Context, id string) error {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordProductOperation(ctx, "delete", outcome, time.Since(start)) }()

	product, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			outcome = "not_found"
		} else {
			outcome = "error"
		}
		return err
	}
	for _, path := range product.ImagePaths() {
		_ = s.images.Remove(ctx, path)
	}
	if err := s.repo.DeleteByID(id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			outcome = "not_found"
		} else {
			outcome = "error"
		}
		return err
	}
	return nil
}

func (s *ProductServiceImpl) Get(ctx context.Context, id string) (*domain.Product, error) {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordProductOperation(ctx, "get", outcome, time.Since(start)) }()

	product, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			outcome = "not_found"
		} else {
			outcome = "error"
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductServiceImpl) List(ctx context.Context, category string) ([]domain.Product, error) {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordProductOperation(ctx, "list", outcome, time.Since(start)) }()

	products, err := s.repo.List(category)
	if err != nil {
		outcome = "error"
		return nil, err
	}
	return products, nil
}

func optionalText(raw string) *string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return &raw
}
