package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	maxSlugLen      = 100
	maxSlugAttempts = 100
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenRun     = regexp.MustCompile(`-{2,}`)
)

// Slugify turns a title into a URL-safe slug: lowercased, whitespace runs
// become single hyphens, anything outside [a-z0-9-] is stripped, repeated
// hyphens collapse, and the result is capped at 100 characters with no
// leading or trailing hyphen.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = hyphenRun.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > maxSlugLen {
		s = strings.TrimRight(s[:maxSlugLen], "-")
	}
	return s
}

// UniqueSlug returns base, or base-1, base-2, ... — the first candidate for
// which taken reports false. After 100 attempts, or if any existence check
// errors, it falls back to suffixing the current unix timestamp: uniqueness
// is forced deterministically at the cost of readability.
func UniqueSlug(base string, taken func(slug string) (bool, error)) string {
	if base == "" {
		base = "post"
	}
	for i := 0; i < maxSlugAttempts; i++ {
		candidate := base
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d", base, i)
		}
		inUse, err := taken(candidate)
		if err != nil {
			break
		}
		if !inUse {
			return candidate
		}
	}
	return fmt.Sprintf("%s-%d", base, time.Now().Unix())
}
