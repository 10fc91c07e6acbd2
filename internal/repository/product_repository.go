package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kashmiricraft/treasures-api/internal/domain"
	"github.com/kashmiricraft/treasures-api/internal/observability"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepository interface {
	Create(product *domain.Product) error
	FindByID(id string) (*domain.Product, error)
	List(category string) ([]domain.Product, error)
	Save(product *domain.Product) error
	DeleteByID(id string) error
}

type GormProductRepository struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Create(product *domain.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "product", "create", "error")
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "product", "create", "success")
	return nil
}

func (r *GormProductRepository) FindByID(id string) (*domain.Product, error) {
	var product domain.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "product", "find_by_id", "not_found")
			return nil, ErrProductNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "product", "find_by_id", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "product", "find_by_id", "success")
	return &product, nil
}

// List returns the catalog, optionally filtered by exact category match.
func (r *GormProductRepository) List(category string) ([]domain.Product, error) {
	query := r.db.Model(&domain.Product{}).Order("created_at desc")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var products []domain.Product
	if err := query.Find(&products).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "product", "list", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "product", "list", "success")
	return products, nil
}

// Save persists the full mutated record in one commit. The write pipeline
// loads, mutates and saves; partial-update semantics live in the pipeline,
// not here.
func (r *GormProductRepository) Save(product *domain.Product) error {
	if err := r.db.Save(product).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "product", "save", "error")
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "product", "save", "success")
	return nil
}

func (r *GormProductRepository) DeleteByID(id string) error {
	res := r.db.Delete(&domain.Product{}, "id = ?", id)
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "product", "delete_by_id", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(context.Background(), "product", "delete_by_id", "not_found")
		return ErrProductNotFound
	}
	observability.RecordRepositoryOperation(context.Background(), "product", "delete_by_id", "success")
	return nil
}
