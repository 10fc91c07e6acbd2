package service

import "testing"

func TestParseBoolForm(t *testing.T) {
	if !parseBoolForm("TRUE") || !parseBoolForm(" yes ") || !parseBoolForm("1") {
		t.Fatal("expected truthy values to parse true")
	}
	if parseBoolForm("on") {
		t.Fatal("\"on\" is not truthy without the extra set")
	}
	if !parseBoolForm("On", "on") {
		t.Fatal("expected \"on\" truthy when admitted")
	}
	if parseBoolForm("false") || parseBoolForm("0") || parseBoolForm("") {
		t.Fatal("expected falsy values to parse false")
	}
}

func TestParseFloatForm(t *testing.T) {
	v, err := parseFloatForm(" 19.99 ")
	if err != nil || v != 19.99 {
		t.Fatalf("expected 19.99, got %v (%v)", v, err)
	}
	if _, err := parseFloatForm("abc"); err == nil {
		t.Fatal("expected error for non-numeric input")
	}
	if _, err := parseFloatForm(""); err == nil {
		t.Fatal("expected error for blank input")
	}
}

func TestNormalizeJSONDocument(t *testing.T) {
	if got := normalizeJSONDocument(""); got != nil {
		t.Fatalf("blank input must normalize to absent, got %q", *got)
	}
	if got := normalizeJSONDocument("   "); got != nil {
		t.Fatalf("whitespace input must normalize to absent, got %q", *got)
	}
	if got := normalizeJSONDocument("{broken"); got != nil {
		t.Fatalf("malformed input must normalize to absent, got %q", *got)
	}
	got := normalizeJSONDocument(` {"a":1} `)
	if got == nil || *got != `{"a":1}` {
		t.Fatalf("expected trimmed document preserved, got %v", got)
	}
}
