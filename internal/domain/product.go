package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Category is the closed set of catalog categories. Product ids are
// prefixed with the category value, so these strings are load-bearing.
type Category string

const (
	CategoryShawls      Category = "shawls"
	CategoryPherans     Category = "pherans"
	CategoryHandbags    Category = "handbags"
	CategoryDryFruits   Category = "dry-fruits"
	CategoryGiftHampers Category = "gift-hampers"
)

var ErrInvalidCategory = errors.New("invalid category")

func Categories() []Category {
	return []Category{CategoryShawls, CategoryPherans, CategoryHandbags, CategoryDryFruits, CategoryGiftHampers}
}

func CategoryValues() []string {
	cats := Categories()
	out := make([]string, 0, len(cats))
	for _, c := range cats {
		out = append(out, string(c))
	}
	return out
}

func ParseCategory(v string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == v {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q, must be one of: %s", ErrInvalidCategory, v, strings.Join(CategoryValues(), ", "))
}

// Product is the persisted catalog record. Images, Variants and Details are
// stored as opaque JSON text and decoded into the exposed shape on read.
type Product struct {
	ID            string  `gorm:"primaryKey;size:255"`
	Name          string  `gorm:"size:255;not null"`
	Description   string  `gorm:"type:text;not null"`
	Price         float64 `gorm:"not null"`
	OriginalPrice *float64
	Image         string  `gorm:"size:500;not null"`
	Images        string  `gorm:"type:text;not null;default:'[]'"`
	Category      string  `gorm:"size:50;not null;index"`
	Rating        float64 `gorm:"default:0"`
	Reviews       int     `gorm:"default:0"`
	InStock       bool    `gorm:"default:true"`
	Variants      *string `gorm:"type:text"`
	Details       *string `gorm:"type:text"`
	ArtisanStory  *string `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProductView is the external JSON contract for a product, with the
// embedded documents decoded from their stored serialized form.
type ProductView struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         float64          `json:"price"`
	OriginalPrice *float64         `json:"originalPrice"`
	Image         string           `json:"image"`
	Images        []string         `json:"images"`
	Category      string           `json:"category"`
	Rating        float64          `json:"rating"`
	Reviews       int              `json:"reviews"`
	InStock       bool             `json:"inStock"`
	Variants      []map[string]any `json:"variants"`
	Details       map[string]any   `json:"details"`
	ArtisanStory  *string          `json:"artisanStory"`
}

// View decodes the serialized sub-documents into the normalized shape.
// Decode failure degrades to an empty array / absent value rather than
// erroring: a corrupt stored blob must never break the read path.
func (p *Product) View() ProductView {
	view := ProductView{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Image:         p.Image,
		Images:        []string{},
		Category:      p.Category,
		Rating:        p.Rating,
		Reviews:       p.Reviews,
		InStock:       p.InStock,
		ArtisanStory:  p.ArtisanStory,
	}
	if p.Images != "" {
		var images []string
		if err := json.Unmarshal([]byte(p.Images), &images); err == nil && images != nil {
			view.Images = images
		}
	}
	if p.Variants != nil {
		var variants []map[string]any
		if err := json.Unmarshal([]byte(*p.Variants), &variants); err == nil {
			view.Variants = variants
		}
	}
	if p.Details != nil {
		var details map[string]any
		if err := json.Unmarshal([]byte(*p.Details), &details); err == nil {
			view.Details = details
		}
	}
	return view
}

// ImagePaths returns every stored image path (primary first) followed by the
// full stored list, without deduplication. Delete uses this for advisory
// blob cleanup; removing the same blob twice is harmless.
func (p *Product) ImagePaths() []string {
	paths := []string{}
	if p.Image != "" {
		paths = append(paths, p.Image)
	}
	paths = append(paths, p.StoredImages()...)
	return paths
}

// SetImages serializes the ordered image list back into the stored column.
func (p *Product) SetImages(images []string) {
	if images == nil {
		images = []string{}
	}
	raw, err := json.Marshal(images)
	if err != nil {
		p.Images = "[]"
		return
	}
	p.Images = string(raw)
}

// StoredImages decodes the persisted image list; a corrupt blob decodes to
// an empty slice so update operations can rebuild it.
func (p *Product) StoredImages() []string {
	if p.Images == "" {
		return []string{}
	}
	var images []string
	if err := json.Unmarshal([]byte(p.Images), &images); err != nil || images == nil {
		return []string{}
	}
	return images
}
