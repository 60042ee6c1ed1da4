package utils

import (
	"regexp"
)

var nonDigit = regexp.MustCompile(`\D`)

var (
	firstWeights  = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	secondWeights = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// CleanCNPJ removes all non-numeric characters from CNPJ
func CleanCNPJ(cnpj string) string {
	return nonDigit.ReplaceAllString(cnpj, "")
}

// FormatCNPJ formats CNPJ with dots, slash and dash (XX.XXX.XXX/XXXX-XX)
func FormatCNPJ(cnpj string) string {
	cleaned := CleanCNPJ(cnpj)
	if len(cleaned) != 14 {
		return cnpj // Return original if invalid length
	}

	return cleaned[:2] + "." + cleaned[2:5] + "." + cleaned[5:8] + "/" + cleaned[8:12] + "-" + cleaned[12:14]
}

// IsValidCNPJ validates CNPJ using the official check digit algorithm
func IsValidCNPJ(cnpj string) bool {
	cleaned := CleanCNPJ(cnpj)
	if len(cleaned) != 14 || isAllSameDigit(cleaned) {
		return false
	}

	digits := make([]int, 14)
	for i := 0; i < 14; i++ {
		digits[i] = int(cleaned[i] - '0')
	}

	return checkDigit(digits[:12], firstWeights) == digits[12] &&
		checkDigit(digits[:13], secondWeights) == digits[13]
}

// NormalizeCNPJ returns the digits-only CNPJ and whether it is valid
func NormalizeCNPJ(cnpj string) (string, bool) {
	cleaned := CleanCNPJ(cnpj)
	return cleaned, IsValidCNPJ(cleaned)
}

// isAllSameDigit checks if all digits in the string are the same
func isAllSameDigit(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return len(s) > 0
}

func checkDigit(digits, weights []int) int {
	sum := 0
	for i, d := range digits {
		sum += d * weights[i]
	}
	if r := sum % 11; r >= 2 {
		return 11 - r
	}
	return 0
}
