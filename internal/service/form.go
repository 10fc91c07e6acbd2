package service

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cast"
)

// FileUpload is a decoded multipart file part. Empty uploads (blank filename
// or zero bytes) are how some browsers render an unfilled file input; they
// are skipped, never stored.
type FileUpload struct {
	Filename string
	Content  []byte
}

func (f FileUpload) IsEmpty() bool {
	return f.Filename == "" || len(f.Content) == 0
}

// CreateProductForm carries the raw multipart fields of a create request.
// All scalar fields arrive as strings; coercion policy lives in the pipeline,
// not the handler.
type CreateProductForm struct {
	Name             string
	Description      string
	Price            string
	OriginalPrice    string
	Category         string
	InStock          string
	Rating           string
	Reviews          string
	Variants         string
	Details          string
	ArtisanStory     string
	Image            FileUpload
	AdditionalImages []FileUpload
}

// UpdateProductForm carries the raw fields of a partial update. Every field
// is a pointer so "not supplied" and "supplied as blank" stay distinguishable:
// several fields treat those two cases differently.
type UpdateProductForm struct {
	Name             *string
	Description      *string
	Price            *string
	OriginalPrice    *string
	Category         *string
	InStock          *string
	Rating           *string
	Reviews          *string
	Variants         *string
	Details          *string
	ArtisanStory     *string
	Image            *FileUpload
	AdditionalImages []FileUpload
}

var truthyValues = map[string]bool{"true": true, "1": true, "yes": true}

// parseBoolForm reports whether a raw form value is truthy. The accepted set
// is case-insensitive; extra admits per-call additions such as the "on" that
// HTML checkboxes submit on update.
func parseBoolForm(raw string, extra ...string) bool {
	v := strings.ToLower(strings.TrimSpace(raw))
	if truthyValues[v] {
		return true
	}
	for _, e := range extra {
		if v == e {
			return true
		}
	}
	return false
}

func parseFloatForm(raw string) (float64, error) {
	return cast.ToFloat64E(strings.TrimSpace(raw))
}

func parseIntForm(raw string) (int, error) {
	return cast.ToIntE(strings.TrimSpace(raw))
}

// normalizeJSONDocument keeps a raw embedded document only when it is
// well-formed JSON; anything else becomes absent. Malformed sub-documents
// never fail a request.
func normalizeJSONDocument(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || !json.Valid([]byte(trimmed)) {
		return nil
	}
	return &trimmed
}
