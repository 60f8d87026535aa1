// Package validator provides functionality for validating request fields.
package validator

import (
	"strconv"
	"unicode/utf8"
)

// Validator is a struct that contains field errors.
type Validator struct {
	FieldErrors map[string]string `json:"-"`
}

// Valid returns true if the FieldErrors map is empty, otherwise false.
func (v *Validator) Valid() bool {
	return len(v.FieldErrors) == 0
}

// AddFieldError adds an error message to the FieldErrors map, the first error for a key wins.
func (v *Validator) AddFieldError(key, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}

	if _, exists := v.FieldErrors[key]; !exists {
		v.FieldErrors[key] = message
	}
}

// CheckField adds an error message to the FieldErrors map only if a validation check is not passed.
func (v *Validator) CheckField(ok bool, key, message string) {
	if !ok {
		v.AddFieldError(key, message)
	}
}

// NotEmpty returns true if a value has at least one character, whitespace included.
func NotEmpty(value string) bool {
	return value != ""
}

// MaxChars returns true if a value contains no more than n characters (code points).
func MaxChars(value string, n int) bool {
	return utf8.RuneCountInString(value) <= n
}

// IsToken returns true if a value looks like a message token, 32 lowercase hex characters.
func IsToken(value string) bool {
	if len(value) != 32 {
		return false
	}
	for _, c := range value {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// PositiveID parses a value as a positive int64 id, ok is false for anything else.
func PositiveID(value string) (id int64, ok bool) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
