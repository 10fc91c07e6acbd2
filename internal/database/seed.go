package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/kashmiricraft/treasures-api/internal/domain"
	"github.com/kashmiricraft/treasures-api/internal/observability"
)

func ptrFloat(v float64) *float64 { return &v }
func ptrString(v string) *string  { return &v }

// sampleCatalog is a starter catalog for development environments. IDs are
// fixed so seeding stays idempotent across restarts.
var sampleCatalog = []domain.Product{
	{
		ID:            "shawls-3f21ab",
		Name:          "Hand-Embroidered Pashmina Shawl",
		Description:   "Pure pashmina shawl with sozni hand embroidery from Srinagar.",
		Price:         249.00,
		OriginalPrice: ptrFloat(299.00),
		Image:         "/uploads/shawls-3f21ab_seed0001.jpg",
		Images:        `["/uploads/shawls-3f21ab_seed0001.jpg"]`,
		Category:      string(domain.CategoryShawls),
		Rating:        4.8,
		Reviews:       126,
		InStock:       true,
		Variants:      ptrString(`[{"name":"Color","options":["Ivory","Charcoal","Crimson"]}]`),
		Details:       ptrString(`{"material":"100% pashmina wool","origin":"Srinagar, Kashmir"}`),
		ArtisanStory:  ptrString("Woven by third-generation artisans in the old city of Srinagar."),
	},
	{
		ID:          "pherans-9c04de",
		Name:        "Classic Wool Pheran",
		Description: "Traditional winter pheran in hand-spun wool with tilla work.",
		Price:       139.00,
		Image:       "/uploads/pherans-9c04de_seed0001.jpg",
		Images:      `["/uploads/pherans-9c04de_seed0001.jpg"]`,
		Category:    string(domain.CategoryPherans),
		Rating:      4.6,
		Reviews:     58,
		InStock:     true,
	},
	{
		ID:          "handbags-71e2c8",
		Name:        "Chain-Stitch Crewel Handbag",
		Description: "Wool crewel embroidery on cotton canvas with leather trim.",
		Price:       79.00,
		Image:       "/uploads/handbags-71e2c8_seed0001.jpg",
		Images:      `["/uploads/handbags-71e2c8_seed0001.jpg"]`,
		Category:    string(domain.CategoryHandbags),
		Rating:      4.4,
		Reviews:     31,
		InStock:     true,
	},
	{
		ID:          "dry-fruits-b8d410",
		Name:        "Premium Mamra Almonds",
		Description: "Cold-pressed quality mamra almonds from orchards in Pulwama.",
		Price:       34.00,
		Image:       "/uploads/dry-fruits-b8d410_seed0001.jpg",
		Images:      `["/uploads/dry-fruits-b8d410_seed0001.jpg"]`,
		Category:    string(domain.CategoryDryFruits),
		Rating:      4.9,
		Reviews:     204,
		InStock:     true,
		Details:     ptrString(`{"weight":"500g","harvest":"2025"}`),
	},
	{
		ID:          "gift-hampers-5a77f2",
		Name:        "Saffron & Dry Fruit Gift Hamper",
		Description: "Kashmiri kesar, walnuts, almonds and dried apricots in a walnut-wood box.",
		Price:       99.00,
		Image:       "/uploads/gift-hampers-5a77f2_seed0001.jpg",
		Images:      `["/uploads/gift-hampers-5a77f2_seed0001.jpg"]`,
		Category:    string(domain.CategoryGiftHampers),
		Rating:      4.7,
		Reviews:     87,
		InStock:     true,
	},
}

type SeedReport struct {
	CreatedProducts int  `json:"created_products"`
	Noop            bool `json:"noop"`
}

func Seed(db *gorm.DB) (*SeedReport, error) {
	report := &SeedReport{}
	for _, p := range sampleCatalog {
		res := db.Where("id = ?", p.ID).FirstOrCreate(&p)
		if res.Error != nil {
			observability.RecordRepositoryOperation(context.Background(), "product", "seed", "error")
			return nil, res.Error
		}
		if res.RowsAffected > 0 {
			report.CreatedProducts++
		}
	}
	report.Noop = report.CreatedProducts == 0
	observability.RecordRepositoryOperation(context.Background(), "product", "seed", "success")
	return report, nil
}
