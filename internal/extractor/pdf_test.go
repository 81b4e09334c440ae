package extractor

import (
	"strings"
	"testing"
)

func TestTextQuality(t *testing.T) {
	tests := []struct {
		name string
		text string
		min  float64
		max  float64
	}{
		{"clean statement text", "01-01-2024 CARD PAYMENT TESCO 25.99 1,234.56", 0.99, 1.0},
		{"empty input", "", 0, 0},
		{"identity-encoded garbage", "Ẵ╢��̳╣�", 0, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := textQuality(tt.text)
			if got < tt.min || got > tt.max {
				t.Errorf("textQuality: got %.2f, want within [%.2f, %.2f]", got, tt.min, tt.max)
			}
		})
	}
}

func TestIsReadable(t *testing.T) {
	statement := `ACME BANK Statement of account
Date Description Amount Balance
01-01-2024 CARD PAYMENT TESCO 25.99 1,234.56
02-01-2024 SALARY CR 2,500.00 3,734.56`

	if !isReadable(statement) {
		t.Error("isReadable(statement text) = false, want true")
	}

	if isReadable("BANK") {
		t.Error("isReadable(short text) = true, want false")
	}

	// Long, clean ASCII but nothing statement-like in it.
	prose := strings.Repeat("the quick brown fox jumps over a lazy dog ", 5)
	if isReadable(prose) {
		t.Error("isReadable(non-statement prose) = true, want false")
	}

	garbage := strings.Repeat("�╢̳", 100)
	if isReadable(garbage) {
		t.Error("isReadable(garbage) = true, want false")
	}
}

func TestExtractText_MissingFile(t *testing.T) {
	if _, err := ExtractText("testdata/does-not-exist.pdf"); err == nil {
		t.Error("ExtractText on a missing file returned nil error")
	}
}
