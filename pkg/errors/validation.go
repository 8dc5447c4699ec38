package errors

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FromValidator converts a go-playground/validator error into a structured
// *Error carrying code. Only the first failing field is reported, named by the
// validator's field name (which callers usually map to the TOML/JSON key).
//
// Errors that are not validator.ValidationErrors are wrapped with
// ErrCodeInvalidInput.
func FromValidator(code Code, err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return Wrap(ErrCodeInvalidInput, err, "validation failed")
	}
	fe := verrs[0]
	return New(code, "%s %s", fe.Field(), describeConstraint(fe))
}

// describeConstraint renders a failed validation tag as a short phrase.
func describeConstraint(fe validator.FieldError) string {
	got := fmt.Sprintf("(got %v)", fe.Value())
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s %s", fe.Param(), got)
	case "gte", "min":
		return fmt.Sprintf("must be at least %s %s", fe.Param(), got)
	case "lt":
		return fmt.Sprintf("must be less than %s %s", fe.Param(), got)
	case "lte", "max":
		return fmt.Sprintf("must be at most %s %s", fe.Param(), got)
	case "oneof":
		return fmt.Sprintf("must be one of [%s] %s", strings.ReplaceAll(fe.Param(), " ", ", "), got)
	}
	return fmt.Sprintf("failed %q constraint %s", fe.Tag(), got)
}

// ValidatePath validates a user-supplied output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateArtifactName validates an artifact name requested over HTTP,
// e.g. "bodice.svg" or "sleeve-page-r1c2.svg". It must be a plain basename.
func ValidateArtifactName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "artifact name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidPath, "artifact name too long (max 128 characters)")
	}
	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return New(ErrCodeInvalidPath, "artifact name cannot contain path components")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "artifact name contains invalid characters")
		}
	}
	return nil
}

// ValidateProfileFilename validates a measurement profile filename.
// Only .toml and .json profiles are understood.
func ValidateProfileFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidProfile, "profile filename cannot be empty")
	}
	lower := strings.ToLower(filename)
	if !strings.HasSuffix(lower, ".toml") && !strings.HasSuffix(lower, ".json") {
		return New(ErrCodeInvalidProfile, "profile must be a .toml or .json file: %q", filename)
	}
	return ValidatePath(filename)
}
