// Package validation содержит функции валидации входных данных.
package validation

import "unicode"

// IsValidBarcode проверяет штрихкод GTIN по контрольной цифре.
// Принимаются длины EAN-8, UPC-A, EAN-13 и GTIN-14.
func IsValidBarcode(code string) bool {
	switch len(code) {
	case 8, 12, 13, 14:
	default:
		return false
	}

	sum := 0
	triple := false

	for i := len(code) - 1; i >= 0; i-- {
		ch := rune(code[i])
		if !unicode.IsDigit(ch) {
			return false
		}
		digit := int(ch - '0')
		if triple {
			digit *= 3
		}
		sum += digit
		triple = !triple
	}

	return sum%10 == 0
}
