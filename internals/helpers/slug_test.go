package helper

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Go From Scratch", "go-from-scratch"},
		{"  Trimmed  Title  ", "trimmed-title"},
		{"C++ & Rust: Systems!", "c-rust-systems"},
		{"already-a-slug", "already-a-slug"},
		{"---", ""},
		{"Ünïcode Ñame", "n-code-ame"},
	}
	for _, tc := range cases {
		if got := GenerateSlug(tc.in); got != tc.want {
			t.Errorf("GenerateSlug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEnsureUniqueSlug(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	type courseRow struct {
		ID   int    `gorm:"primaryKey"`
		Slug string `gorm:"column:course_slug;uniqueIndex"`
	}
	if err := db.AutoMigrate(&courseRow{}); err != nil {
		t.Fatal(err)
	}

	slug, err := EnsureUniqueSlug(db, "course_rows", "course_slug", "go-basics")
	if err != nil {
		t.Fatal(err)
	}
	if slug != "go-basics" {
		t.Fatalf("free slug = %q, want go-basics", slug)
	}

	db.Create(&courseRow{Slug: "go-basics"})
	slug, err = EnsureUniqueSlug(db, "course_rows", "course_slug", "go-basics")
	if err != nil {
		t.Fatal(err)
	}
	if slug != "go-basics-2" {
		t.Fatalf("taken slug = %q, want go-basics-2", slug)
	}

	db.Create(&courseRow{Slug: "go-basics-2"})
	slug, err = EnsureUniqueSlug(db, "course_rows", "course_slug", "go-basics")
	if err != nil {
		t.Fatal(err)
	}
	if slug != "go-basics-3" {
		t.Fatalf("double-taken slug = %q, want go-basics-3", slug)
	}
}
