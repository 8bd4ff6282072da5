package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"1.23", "1.23", true},
		{"1,23", "1.23", true},
		{" 2.50 ", "2.50", true},
		{"0.01", "0.01", true},
		{"10.005", "10.005", true}, // parses; rejected later by ValidateRules
		{"", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("%q: unexpected error %v", tc.in, err)
			}
			want, _ := ParseAmount(tc.out)
			if !got.Equal(want) {
				t.Fatalf("%q: expected %s, got %s", tc.in, tc.out, got)
			}
		} else if err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}

func TestAmountCentsRoundTrip(t *testing.T) {
	for _, s := range []string{"0.01", "1", "10.50", "12345.67"} {
		d, err := ParseAmount(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		if back := AmountFromCents(AmountToCents(d)); !back.Equal(d) {
			t.Fatalf("%q: round trip gave %s", s, back)
		}
	}
	if got := AmountToCents(AmountFromCents(1550)); got != 1550 {
		t.Fatalf("expected 1550 cents, got %d", got)
	}
}
