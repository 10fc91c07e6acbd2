package repository

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kashmiricraft/treasures-api/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Product{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testProduct(id, category string) *domain.Product {
	return &domain.Product{
		ID:          id,
		Name:        "Product " + id,
		Description: "desc",
		Price:       10,
		Image:       "/uploads/" + id + "_00000000.jpg",
		Images:      fmt.Sprintf(`["/uploads/%s_00000000.jpg"]`, id),
		Category:    category,
		InStock:     true,
	}
}

func TestCreateAndFindByID(t *testing.T) {
	repo := NewProductRepository(newTestDB(t))

	if err := repo.Create(testProduct("shawls-aaaaaa", "shawls")); err != nil {
		t.Fatalf("create: %v", err)
	}
	found, err := repo.FindByID("shawls-aaaaaa")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.Name != "Product shawls-aaaaaa" || found.Category != "shawls" {
		t.Fatalf("unexpected record: %+v", found)
	}

	if _, err := repo.FindByID("shawls-zzzzzz"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestListFiltersByExactCategory(t *testing.T) {
	repo := NewProductRepository(newTestDB(t))
	for i, category := range []string{"shawls", "shawls", "pherans"} {
		id := fmt.Sprintf("%s-%06d", category, i)
		if err := repo.Create(testProduct(id, category)); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	shawls, err := repo.List("shawls")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(shawls) != 2 {
		t.Fatalf("expected 2 shawls, got %d", len(shawls))
	}
	for _, p := range shawls {
		if p.Category != "shawls" {
			t.Fatalf("unexpected category in filtered list: %q", p.Category)
		}
	}

	all, err := repo.List("")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 products, got %d", len(all))
	}

	none, err := repo.List("shawl")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected exact matching only, got %d", len(none))
	}
}

func TestSavePersistsMutations(t *testing.T) {
	repo := NewProductRepository(newTestDB(t))
	if err := repo.Create(testProduct("shawls-aaaaaa", "shawls")); err != nil {
		t.Fatalf("create: %v", err)
	}

	product, err := repo.FindByID("shawls-aaaaaa")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	product.Price = 99.5
	product.InStock = false
	if err := repo.Save(product); err != nil {
		t.Fatalf("save: %v", err)
	}

	reloaded, err := repo.FindByID("shawls-aaaaaa")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Price != 99.5 || reloaded.InStock {
		t.Fatalf("mutations not persisted: %+v", reloaded)
	}
}

func TestDeleteByID(t *testing.T) {
	repo := NewProductRepository(newTestDB(t))
	if err := repo.Create(testProduct("shawls-aaaaaa", "shawls")); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.DeleteByID("shawls-aaaaaa"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindByID("shawls-aaaaaa"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := repo.DeleteByID("shawls-aaaaaa"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected not found on repeat delete, got %v", err)
	}
}
