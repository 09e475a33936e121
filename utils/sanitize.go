package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugcSanitizer   = bluemonday.UGCPolicy()
	plainSanitizer = bluemonday.StrictPolicy()
)

// Sanitize cleans HTML content from the remote feed to prevent XSS.
func Sanitize(input string) string {
	return ugcSanitizer.Sanitize(input)
}

// SanitizePlain strips all markup, for titles, excerpts and tags.
func SanitizePlain(input string) string {
	return strings.TrimSpace(plainSanitizer.Sanitize(input))
}
