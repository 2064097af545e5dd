package utils_test

import (
	"testing"

	"oficina-backend/utils"
)

func TestParseMoneyBRL(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "R$ 1.234,56", want: 123456},
		{in: "1234,56", want: 123456},
		{in: "1234.56", want: 123456},
		{in: "1.234.567,89", want: 123456789},
		{in: "150", want: 15000},
		{in: "0,99", want: 99},
		{in: "R$97", want: 9700},
		{in: "", wantErr: true},
		{in: "R$ ", wantErr: true},
		{in: "abc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := utils.ParseMoneyBRL(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseMoneyBRL(%q): expected error, got %d", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMoneyBRL(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseMoneyBRL(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{cents: 123456, want: "R$ 1.234,56"},
		{cents: 99, want: "R$ 0,99"},
		{cents: 0, want: "R$ 0,00"},
		{cents: 100000000, want: "R$ 1.000.000,00"},
		{cents: -13000, want: "-R$ 130,00"},
	}
	for _, tt := range tests {
		if got := utils.FormatBRL(tt.cents); got != tt.want {
			t.Errorf("FormatBRL(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestToCents(t *testing.T) {
	if got := utils.ToCents(200.00); got != 20000 {
		t.Errorf("ToCents(200.00) = %d, want 20000", got)
	}
	if got := utils.ToCents(50.55); got != 5055 {
		t.Errorf("ToCents(50.55) = %d, want 5055", got)
	}
}

func TestRound2(t *testing.T) {
	if got := utils.Round2(3.14159); got != 3.14 {
		t.Errorf("Round2(3.14159) = %v, want 3.14", got)
	}
}
