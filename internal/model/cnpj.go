package model

import "strings"

// NormalizeCNPJ strips formatting punctuation, keeping digits only.
func NormalizeCNPJ(cnpj string) string {
	var b strings.Builder
	b.Grow(len(cnpj))
	for _, r := range cnpj {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidCNPJ reports whether cnpj normalizes to exactly 14 digits.
// Sequences of one repeated digit (00000000000000 and friends) are
// never assigned and are rejected outright. Full check-digit
// verification is left to the registry.
func ValidCNPJ(cnpj string) bool {
	n := NormalizeCNPJ(cnpj)
	if len(n) != 14 {
		return false
	}
	for i := 1; i < len(n); i++ {
		if n[i] != n[0] {
			return true
		}
	}
	return false
}

// FormatCNPJ renders a normalized CNPJ as NN.NNN.NNN/NNNN-NN. Input
// that does not normalize to 14 digits is returned unchanged.
func FormatCNPJ(cnpj string) string {
	n := NormalizeCNPJ(cnpj)
	if len(n) != 14 {
		return cnpj
	}
	return n[0:2] + "." + n[2:5] + "." + n[5:8] + "/" + n[8:12] + "-" + n[12:14]
}
