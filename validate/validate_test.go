package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storeerrors "github.com/storekit/storecore/pkg/errors"
)

func TestValidateName(t *testing.T) {
	v := New()

	tests := []struct {
		name     string
		input    string
		wantKind storeerrors.Kind
	}{
		{name: "valid simple", input: "John Doe"},
		{name: "valid hyphen and apostrophe", input: "Mary-Jane O'Brien"},
		{name: "valid at max length", input: strings.Repeat("a", 255)},
		{name: "empty", input: "", wantKind: storeerrors.KindRequiredField},
		{name: "whitespace only", input: "   ", wantKind: storeerrors.KindRequiredField},
		{name: "too long", input: strings.Repeat("a", 256), wantKind: storeerrors.KindInvalidInput},
		{name: "digits rejected", input: "John 2nd", wantKind: storeerrors.KindInvalidInput},
		{name: "punctuation rejected", input: "John; DROP TABLE", wantKind: storeerrors.KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateName(tt.input)
			if tt.wantKind == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, storeerrors.KindOf(err))
		})
	}
}

func TestValidateDescription(t *testing.T) {
	v := New()

	tests := []struct {
		name     string
		input    string
		wantKind storeerrors.Kind
	}{
		{name: "valid simple", input: "Wireless Mouse"},
		{name: "valid digits and punctuation", input: "USB-C Cable, 2m version 3.1"},
		{name: "valid at max length", input: strings.Repeat("a", 500)},
		{name: "empty", input: "", wantKind: storeerrors.KindRequiredField},
		{name: "whitespace only", input: " \t ", wantKind: storeerrors.KindRequiredField},
		{name: "too long", input: strings.Repeat("a", 501), wantKind: storeerrors.KindInvalidInput},
		{name: "invalid characters", input: "50% off!", wantKind: storeerrors.KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateDescription(tt.input)
			if tt.wantKind == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, storeerrors.KindOf(err))
		})
	}
}

func TestValidateID(t *testing.T) {
	v := New()

	assert.NoError(t, v.ValidateID("id", 1))
	assert.NoError(t, v.ValidateID("id", 9999))

	for _, id := range []int64{0, -1, -42} {
		err := v.ValidateID("id", id)
		require.Error(t, err)
		assert.Equal(t, storeerrors.KindInvalidInput, storeerrors.KindOf(err))
	}
}

func TestValidateOptionalID(t *testing.T) {
	v := New()

	err := v.ValidateOptionalID("customerId", nil)
	require.Error(t, err)
	assert.Equal(t, storeerrors.KindRequiredField, storeerrors.KindOf(err))

	zero := int64(0)
	err = v.ValidateOptionalID("customerId", &zero)
	require.Error(t, err)
	assert.Equal(t, storeerrors.KindInvalidInput, storeerrors.KindOf(err))

	one := int64(1)
	assert.NoError(t, v.ValidateOptionalID("customerId", &one))
}

func TestValidateSearchQuery(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "blank means everything", input: ""},
		{name: "whitespace only means everything", input: "   "},
		{name: "valid word", input: "john"},
		{name: "valid with hyphen", input: "mary-jane"},
		{name: "valid at max length", input: strings.Repeat("a", 100)},
		{name: "too long", input: strings.Repeat("a", 101), wantErr: true},
		{name: "digits rejected", input: "user42", wantErr: true},
		{name: "wildcards rejected", input: "john%", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateSearchQuery(tt.input)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, storeerrors.KindInvalidSearchQuery, storeerrors.KindOf(err))
		})
	}
}

func TestSanitizeName(t *testing.T) {
	v := New()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trims and title-cases", input: "  john doe  ", want: "John Doe"},
		{name: "normalizes shouting", input: "JOHN DOE", want: "John Doe"},
		{name: "mixed case", input: "jOhN dOe", want: "John Doe"},
		{name: "empty stays empty", input: "", want: ""},
		{name: "whitespace collapses to empty", input: "   ", want: ""},
		{name: "interior whitespace preserved", input: "john  doe", want: "John  Doe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.SanitizeName(tt.input)
			assert.Equal(t, tt.want, got)

			// Sanitizing an already-sanitized value must be a no-op.
			assert.Equal(t, got, v.SanitizeName(got))
		})
	}
}

func TestSanitizeDescription(t *testing.T) {
	v := New()

	got := v.SanitizeDescription("  wireless mouse, usb-c  ")
	assert.Equal(t, "Wireless Mouse, Usb-c", got)
	assert.Equal(t, got, v.SanitizeDescription(got))
}
