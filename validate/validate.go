// Package validate implements the field rules and sanitizers applied before
// anything reaches a store: names, descriptions, ids and search queries.
// All checks are side-effect-free; sanitizers return the cleaned value.
package validate

import (
	"regexp"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	storeerrors "github.com/storekit/storecore/pkg/errors"
)

const (
	maxNameLength        = 255
	maxDescriptionLength = 500
	maxSearchQueryLength = 100
)

var (
	// Letters, whitespace, hyphens and apostrophes.
	namePattern = regexp.MustCompile(`^[a-zA-Z\s\-']+$`)
	// Descriptions additionally allow digits, periods and commas.
	descriptionPattern = regexp.MustCompile(`^[a-zA-Z0-9\s\-'.,]+$`)
)

// Validator performs field-level rule checks and sanitization.
type Validator struct{}

// New returns a Validator.
func New() *Validator {
	return &Validator{}
}

// ValidateName checks a customer name: required, 1-255 characters, letters,
// spaces, hyphens and apostrophes only.
func (v *Validator) ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return storeerrors.RequiredField("name")
	}

	if err := validation.Validate(trimmed,
		validation.RuneLength(1, maxNameLength).Error("name must be between 1 and 255 characters"),
		validation.Match(namePattern).Error("name can only contain letters, spaces, hyphens, and apostrophes"),
	); err != nil {
		return storeerrors.InvalidInput("name", err.Error())
	}
	return nil
}

// ValidateDescription checks a product description: required, 1-500
// characters, letters, digits, spaces, hyphens, apostrophes, periods and
// commas only.
func (v *Validator) ValidateDescription(description string) error {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return storeerrors.RequiredField("description")
	}

	if err := validation.Validate(trimmed,
		validation.RuneLength(1, maxDescriptionLength).Error("description must be between 1 and 500 characters"),
		validation.Match(descriptionPattern).Error("description can only contain letters, numbers, spaces, hyphens, apostrophes, periods, and commas"),
	); err != nil {
		return storeerrors.InvalidInput("description", err.Error())
	}
	return nil
}

// ValidateID checks an already-bound identifier: must be positive.
func (v *Validator) ValidateID(field string, id int64) error {
	if id <= 0 {
		return storeerrors.InvalidInput(field, "id must be positive")
	}
	return nil
}

// ValidateOptionalID checks a nullable identifier: nil fails as a required
// field, anything non-positive as invalid input.
func (v *Validator) ValidateOptionalID(field string, id *int64) error {
	if id == nil {
		return storeerrors.RequiredField(field)
	}
	return v.ValidateID(field, *id)
}

// ValidateSearchQuery checks a search string. A blank query is valid and
// means "return everything"; a non-empty query is bounded to 1-100
// characters and the name character class.
func (v *Validator) ValidateSearchQuery(query string) error {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil
	}

	if len([]rune(trimmed)) > maxSearchQueryLength {
		return storeerrors.InvalidSearchQuery("search query too long")
	}
	if !namePattern.MatchString(trimmed) {
		return storeerrors.InvalidSearchQuery("search query contains invalid characters")
	}
	return nil
}

// SanitizeName trims and title-cases a customer name. Returns "" when the
// trimmed input is empty. Idempotent.
func (v *Validator) SanitizeName(input string) string {
	return titleCase(input)
}

// SanitizeDescription trims and title-cases a product description. Returns
// "" when the trimmed input is empty. Idempotent.
func (v *Validator) SanitizeDescription(input string) string {
	return titleCase(input)
}

// titleCase lower-cases the input and capitalizes the first letter of every
// whitespace-delimited word. Interior whitespace is preserved as-is.
func titleCase(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}

	runes := []rune(strings.ToLower(trimmed))
	var b strings.Builder
	b.Grow(len(trimmed))

	startOfWord := true
	for _, r := range runes {
		if unicode.IsSpace(r) {
			startOfWord = true
			b.WriteRune(r)
			continue
		}
		if startOfWord {
			b.WriteRune(unicode.ToUpper(r))
			startOfWord = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
