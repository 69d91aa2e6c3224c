package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCNPJ(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12.345.678/0001-90", "12345678000190"},
		{"12345678000190", "12345678000190"},
		{"12 345 678 0001 90", "12345678000190"},
		{"abc", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCNPJ(tt.in), "input %q", tt.in)
	}
}

func TestValidCNPJ(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"12.345.678/0001-90", true},
		{"12345678000190", true},
		{"1234567800019", false},   // 13 digits
		{"123456780001901", false}, // 15 digits
		{"00000000000000", false},  // all-equal digits are never assigned
		{"11111111111111", false},
		{"11.111.111/1111-11", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidCNPJ(tt.in), "input %q", tt.in)
	}
}

func TestFormatCNPJRoundTrip(t *testing.T) {
	// Normalizing and re-applying the display mask is canonical for any
	// 14-digit input, formatted or not.
	for _, in := range []string{"12345678000190", "12.345.678/0001-90", "12.345678/000190"} {
		assert.Equal(t, "12.345.678/0001-90", FormatCNPJ(in), "input %q", in)
		assert.Equal(t, "12345678000190", NormalizeCNPJ(FormatCNPJ(in)))
	}

	// Malformed input passes through untouched.
	assert.Equal(t, "123", FormatCNPJ("123"))
	assert.Equal(t, "", FormatCNPJ(""))
}
