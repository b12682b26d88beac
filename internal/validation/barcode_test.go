package validation

import "testing"

func TestIsValidBarcode(t *testing.T) {
	tests := []struct {
		name  string
		code  string
		valid bool
	}{
		{
			name:  "valid ean-13",
			code:  "4005900889089",
			valid: true,
		},
		{
			name:  "valid ean-13 with leading zero",
			code:  "0123456789012",
			valid: true,
		},
		{
			name:  "valid ean-8",
			code:  "96385074",
			valid: true,
		},
		{
			name:  "valid upc-a",
			code:  "036000291452",
			valid: true,
		},
		{
			name:  "valid gtin-14",
			code:  "10012345678902",
			valid: true,
		},
		{
			name:  "invalid check digit",
			code:  "5012000000001",
			valid: false,
		},
		{
			name:  "unsupported length",
			code:  "12345",
			valid: false,
		},
		{
			name:  "contains letters",
			code:  "40059008890a9",
			valid: false,
		},
		{
			name:  "empty string",
			code:  "",
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsValidBarcode(tt.code)
			if got != tt.valid {
				t.Fatalf("IsValidBarcode(%q) = %v, want %v", tt.code, got, tt.valid)
			}
		})
	}
}
