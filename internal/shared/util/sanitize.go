package util

import (
	"errors"
	"strings"
)

// SanitizeFileName flattens an uploaded source file name into a single safe
// path component. Traversal sequences are rejected outright rather than
// stripped, so a hostile name fails the upload instead of landing somewhere
// unexpected under the job directory.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	cleaned := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if cleaned == "" {
		return "", errors.New("invalid file name")
	}
	return cleaned, nil
}
