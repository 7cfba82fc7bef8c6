package fsm

import "testing"

func TestCurrencyName(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"usd", "USD", false},
		{"  eur ", "EUR", false},
		{"USD", "USD", false},
		{"", "", true},
		{"   ", "", true},
		{"two words", "", true},
	}
	for _, tc := range cases {
		got, err := CurrencyName(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("CurrencyName(%q): expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("CurrencyName(%q): unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("CurrencyName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDecimal(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"90.5", "90.5", false},
		{"90,5", "90.5", false},
		{" 100 ", "100", false},
		{"0", "0", false},
		{"-3,5", "-3.5", false},
		{"abc", "", true},
		{"", "", true},
		{"10..5", "", true},
	}
	for _, tc := range cases {
		got, err := Decimal(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("Decimal(%q): expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Decimal(%q): unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Decimal(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPositiveDecimal(t *testing.T) {
	if _, err := PositiveDecimal("0"); err == nil {
		t.Error("PositiveDecimal(0): expected error")
	}
	if _, err := PositiveDecimal("-1"); err == nil {
		t.Error("PositiveDecimal(-1): expected error")
	}
	got, err := PositiveDecimal("90,5")
	if err != nil {
		t.Fatalf("PositiveDecimal(90,5): unexpected error: %v", err)
	}
	if got != "90.5" {
		t.Errorf("PositiveDecimal(90,5) = %q, want 90.5", got)
	}
}

func TestDate(t *testing.T) {
	got, err := Date(" 2024-02-29 ")
	if err != nil {
		t.Fatalf("Date: unexpected error: %v", err)
	}
	if got != "2024-02-29" {
		t.Errorf("Date = %q, want 2024-02-29", got)
	}

	for _, bad := range []string{"2023-02-29", "29.02.2024", "today", ""} {
		if _, err := Date(bad); err == nil {
			t.Errorf("Date(%q): expected error", bad)
		}
	}
}

func TestOneOf(t *testing.T) {
	validate := OneOf("РАСХОД", "ДОХОД")

	got, err := validate(" РАСХОД ")
	if err != nil {
		t.Fatalf("OneOf: unexpected error: %v", err)
	}
	if got != "РАСХОД" {
		t.Errorf("OneOf = %q, want РАСХОД", got)
	}
	if _, err := validate("расход"); err == nil {
		t.Error("OneOf: lower-case input should be rejected")
	}
	if _, err := validate("other"); err == nil {
		t.Error("OneOf: unlisted input should be rejected")
	}
}

func TestParseDecimal(t *testing.T) {
	if got := ParseDecimal("90.5"); got != 90.5 {
		t.Errorf("ParseDecimal(90.5) = %v", got)
	}
}
