package domain

import (
	"strings"
	"testing"
)

func TestParseCategory(t *testing.T) {
	for _, valid := range CategoryValues() {
		if _, err := ParseCategory(valid); err != nil {
			t.Fatalf("expected %q to parse, got %v", valid, err)
		}
	}

	_, err := ParseCategory("jewellery")
	if err == nil {
		t.Fatal("expected error for unknown category")
	}
	for _, valid := range CategoryValues() {
		if !strings.Contains(err.Error(), valid) {
			t.Fatalf("expected error to list %q, got %q", valid, err.Error())
		}
	}
}

func TestViewDecodesStoredDocuments(t *testing.T) {
	variants := `[{"name":"Size","options":["S","M"]}]`
	details := `{"material":"pashmina"}`
	p := Product{
		ID:       "shawls-abc123",
		Name:     "Shawl",
		Image:    "/uploads/shawls-abc123_11112222.jpg",
		Images:   `["/uploads/shawls-abc123_11112222.jpg","/uploads/shawls-abc123_33334444.jpg"]`,
		Variants: &variants,
		Details:  &details,
	}

	view := p.View()
	if len(view.Images) != 2 || view.Images[0] != p.Image {
		t.Fatalf("unexpected images: %+v", view.Images)
	}
	if len(view.Variants) != 1 || view.Variants[0]["name"] != "Size" {
		t.Fatalf("unexpected variants: %+v", view.Variants)
	}
	if view.Details["material"] != "pashmina" {
		t.Fatalf("unexpected details: %+v", view.Details)
	}
}

func TestViewDegradesOnCorruptDocuments(t *testing.T) {
	broken := `{not json`
	p := Product{
		ID:       "shawls-abc123",
		Images:   `{not json`,
		Variants: &broken,
		Details:  &broken,
	}

	view := p.View()
	if view.Images == nil || len(view.Images) != 0 {
		t.Fatalf("expected empty images slice, got %+v", view.Images)
	}
	if view.Variants != nil {
		t.Fatalf("expected absent variants, got %+v", view.Variants)
	}
	if view.Details != nil {
		t.Fatalf("expected absent details, got %+v", view.Details)
	}
}

func TestImagePathsKeepsDuplicates(t *testing.T) {
	p := Product{
		Image:  "/uploads/a.jpg",
		Images: `["/uploads/a.jpg","/uploads/b.jpg"]`,
	}
	paths := p.ImagePaths()
	if len(paths) != 3 {
		t.Fatalf("expected primary plus full list without dedup, got %v", paths)
	}
	if paths[0] != "/uploads/a.jpg" || paths[1] != "/uploads/a.jpg" || paths[2] != "/uploads/b.jpg" {
		t.Fatalf("unexpected order: %v", paths)
	}
}

func TestSetImagesRoundTrip(t *testing.T) {
	var p Product
	p.SetImages([]string{"/uploads/a.jpg", "/uploads/b.jpg"})
	stored := p.StoredImages()
	if len(stored) != 2 || stored[0] != "/uploads/a.jpg" {
		t.Fatalf("unexpected stored images: %v", stored)
	}

	p.SetImages(nil)
	if p.Images != "[]" {
		t.Fatalf("expected empty list serialization, got %q", p.Images)
	}
}
