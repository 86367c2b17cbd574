package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s, collapses every run of non-alphanumeric characters into a
// single hyphen and trims hyphens from both ends.
// Example: "  Jane  O'Hara " -> "jane-o-hara"
func Slugify(s string) string {
	slug := nonSlug.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	return strings.Trim(slug, "-")
}

type slugChecker interface {
	SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error)
}

// uniqueSlug derives a slug from name and appends -2, -3, ... until repo reports it free.
// excludeID lets a record keep its own slug on update.
func uniqueSlug(ctx context.Context, repo slugChecker, name string, fallback string, excludeID uint) (string, error) {
	base := Slugify(name)
	if base == "" {
		base = fallback
	}
	slug := base
	for n := 2; ; n++ {
		taken, err := repo.SlugTaken(ctx, slug, excludeID)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}

// splitLines returns the trimmed, non-blank lines of s.
func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
