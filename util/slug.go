// Package util provides shared utility functions.
package util

import (
	"regexp"
	"strings"
)

var (
	nonAlphanumHyphen = regexp.MustCompile(`[^a-z0-9-]`)
	multipleHyphens   = regexp.MustCompile(`-{2,}`)
)

// Slugify converts a script name into a file name safe slug. Spaces and
// underscores become hyphens, anything outside [a-z0-9-] is dropped and
// hyphen runs collapse.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.NewReplacer(" ", "-", "_", "-").Replace(s)
	s = nonAlphanumHyphen.ReplaceAllString(s, "")
	s = multipleHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// EntryFileName returns the entry chunk name a bundler emits for a script
// called name, falling back to "main" for names with no usable characters.
func EntryFileName(name string) string {
	slug := Slugify(name)
	if slug == "" {
		slug = "main"
	}
	return slug + ".user.js"
}
