package utils

import "github.com/microcosm-cc/bluemonday"

var sanitizer = bluemonday.UGCPolicy()

// Sanitize cleans HTML in user supplied content before it is stored.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
