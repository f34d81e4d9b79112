package helper

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
	dashRuns     = regexp.MustCompile(`-{2,}`)
)

// GenerateSlug lowercases, strips non-alphanumerics and collapses dashes.
func GenerateSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonSlugChars.ReplaceAllString(s, "-")
	s = dashRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// EnsureUniqueSlug appends -2, -3, ... until the slug is free in the given
// table/column. Check-then-insert here is fine: the column also carries a
// unique index, the caller treats a duplicate-key error as Conflict.
func EnsureUniqueSlug(db *gorm.DB, table, column, base string) (string, error) {
	slug := base
	for i := 2; ; i++ {
		var count int64
		if err := db.Table(table).Where(column+" = ?", slug).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
