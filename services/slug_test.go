package services

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Hello World", "hello-world"},
		{"trims and lowercases", "  Mixed CASE Title  ", "mixed-case-title"},
		{"strips punctuation", "What's New in Go 1.23?", "whats-new-in-go-123"},
		{"collapses whitespace runs", "a \t b\n\nc", "a-b-c"},
		{"collapses hyphen runs", "a -- b - - c", "a-b-c"},
		{"no edge hyphens", "!leading and trailing!", "leading-and-trailing"},
		{"only symbols", "!!!", ""},
		{"unicode stripped", "café émigré", "caf-migr"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.title))
		})
	}
}

func TestSlugifyCharsetAndLength(t *testing.T) {
	valid := regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)
	titles := []string{
		"Hello World",
		strings.Repeat("very long title ", 50),
		"--- odd --- input ---",
		"numbers 123 and CAPS",
		"tabs\tand\nnewlines",
	}
	for _, title := range titles {
		slug := Slugify(title)
		if slug == "" {
			continue
		}
		assert.True(t, valid.MatchString(slug), "slug %q has invalid shape", slug)
		assert.LessOrEqual(t, len(slug), 100, "slug %q too long", slug)
	}
}

func TestUniqueSlugFirstFree(t *testing.T) {
	slug := UniqueSlug("hello-world", func(string) (bool, error) { return false, nil })
	assert.Equal(t, "hello-world", slug)
}

func TestUniqueSlugSequentialSuffix(t *testing.T) {
	// Simulate two sequential creations with the same title: the second
	// sees the first slug taken and gets the -1 suffix.
	existing := map[string]bool{}
	taken := func(s string) (bool, error) { return existing[s], nil }

	first := UniqueSlug("hello-world", taken)
	require.Equal(t, "hello-world", first)
	existing[first] = true

	second := UniqueSlug("hello-world", taken)
	assert.Equal(t, "hello-world-1", second)
	existing[second] = true

	third := UniqueSlug("hello-world", taken)
	assert.Equal(t, "hello-world-2", third)
}

func TestUniqueSlugExhaustionFallsBackToTimestamp(t *testing.T) {
	calls := 0
	before := time.Now().Unix()
	slug := UniqueSlug("popular", func(string) (bool, error) {
		calls++
		return true, nil
	})
	after := time.Now().Unix()

	assert.Equal(t, maxSlugAttempts, calls, "must stop after the attempt bound")
	require.True(t, strings.HasPrefix(slug, "popular-"))
	ts, err := strconv.ParseInt(strings.TrimPrefix(slug, "popular-"), 10, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, ts, before)
	assert.LessOrEqual(t, ts, after)
}

func TestUniqueSlugCheckErrorFallsBackToTimestamp(t *testing.T) {
	slug := UniqueSlug("flaky", func(string) (bool, error) {
		return false, errors.New("connection reset")
	})
	require.True(t, strings.HasPrefix(slug, "flaky-"))
	_, err := strconv.ParseInt(strings.TrimPrefix(slug, "flaky-"), 10, 64)
	assert.NoError(t, err)
}

func TestUniqueSlugEmptyBase(t *testing.T) {
	slug := UniqueSlug("", func(string) (bool, error) { return false, nil })
	assert.Equal(t, "post", slug)
}
