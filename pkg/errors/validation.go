package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxHeaderLength is the longest header accepted, in runes.
const MaxHeaderLength = 256

// ValidateHeader validates the header text printed at the top of every label.
//
// The rules are conservative:
//   - No empty or whitespace-only headers
//   - No control characters (they cannot be drawn)
//   - Maximum length of MaxHeaderLength runes
//   - Must be valid UTF-8
//
// Headers that are merely too wide for the label canvas are accepted; they
// are centred and clipped when drawn.
func ValidateHeader(header string) error {
	if strings.TrimSpace(header) == "" {
		return New(ErrCodeInvalidHeader, "header cannot be empty")
	}
	if !utf8.ValidString(header) {
		return New(ErrCodeInvalidHeader, "header is not valid UTF-8")
	}
	if utf8.RuneCountInString(header) > MaxHeaderLength {
		return New(ErrCodeInvalidHeader, "header too long (max %d characters)", MaxHeaderLength)
	}
	for _, r := range header {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidHeader, "header contains invalid control characters")
		}
	}
	return nil
}

// ValidatePresetName validates a preset name for use as a lookup key and
// as part of generated file names.
func ValidatePresetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPreset, "preset name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidPreset, "preset name too long (max 64 characters)")
	}
	for _, r := range name {
		if !(r == '-' || r == '_' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return New(ErrCodeInvalidPreset, "preset name contains invalid character %q", r)
		}
	}
	return nil
}

// ValidateObjectKey validates a storage key (a relative, slash-separated path).
//
// Validation rules:
//   - Key cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute keys (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidateObjectKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidPath, "key cannot be empty")
	}

	const maxKeyLength = 500
	if len(key) > maxKeyLength {
		return New(ErrCodeInvalidPath, "key too long (max %d characters)", maxKeyLength)
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "key contains invalid characters")
		}
	}

	if strings.HasPrefix(key, "/") {
		return New(ErrCodeInvalidPath, "key must be relative (cannot start with /)")
	}
	if strings.Contains(key, "..") {
		return New(ErrCodeInvalidPath, "key cannot contain path traversal sequences (..)")
	}
	if strings.Contains(key, "\\") {
		return New(ErrCodeInvalidPath, "key cannot contain backslashes")
	}

	return nil
}
