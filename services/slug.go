package services

import (
	"fmt"
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// SlugExistsFunc reports whether a slug is already taken.
type SlugExistsFunc func(slug string) (bool, error)

// GenerateUniqueSlug derives a URL-safe slug from the title: lowercase,
// every run of non-alphanumeric characters collapsed to a single hyphen,
// leading and trailing hyphens stripped. Titles that normalize to nothing
// fall back to "untitled". If the base slug is taken, integer suffixes -1,
// -2, ... are probed until a free one is found.
func GenerateUniqueSlug(title string, exists SlugExistsFunc) (string, error) {
	base := strings.ToLower(strings.TrimSpace(title))
	base = nonAlphanumeric.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")
	if base == "" {
		base = "untitled"
	}

	slug := base
	for i := 1; ; i++ {
		taken, err := exists(slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
