package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a@b.co", true},
		{"first.last@example.com", true},
		{"agent+listings@realty.example.co.uk", true},
		{"not-an-email", false},
		{"", false},
		{"a@b", false},
		{"a b@c.co", false},
		{"@example.com", false},
		{"a@.co", false},
		{"a@b..co", true}, // permissive on purpose: only shape is checked
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidEmail(tt.email))
		})
	}
}

func TestValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"0123456789", true},
		{"+1 (555) 123-4567", true},
		{"555-123-4567", true},
		{"012345678", false}, // nine characters
		{"", false},
		{"phone12345", false},
		{"01234x6789", false},
	}
	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidPhone(tt.phone))
		})
	}
}
