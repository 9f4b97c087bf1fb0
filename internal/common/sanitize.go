package common

import (
	"path/filepath"
	"regexp"
	"strings"
)

var titleCharset = regexp.MustCompile(`[^A-Za-z0-9 ]+`)
var multiSpace = regexp.MustCompile(`\s{2,}`)

// SanitizeTitle strips everything but alphanumerics and spaces from a raw
// title, collapsing runs of whitespace. "My Report (Final)!!" becomes
// "My Report Final".
func SanitizeTitle(raw string) string {
	s := titleCharset.ReplaceAllString(raw, "")
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// TitleFromFilename derives a display title from an uploaded filename by
// dropping the extension and sanitizing the stem.
func TitleFromFilename(filename string) string {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return SanitizeTitle(stem)
}
