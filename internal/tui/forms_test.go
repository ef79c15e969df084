package tui

import "testing"

func TestParsePositiveAmount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"4500", 4500, true},
		{"  120.50 ", 120.5, true},
		{"0.01", 0.01, true},
		{"0", 0, false},
		{"-5", 0, false},
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
		{"12abc", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"-Inf", 0, false},
		{"1e309", 0, false},
	}
	for _, tc := range cases {
		got, ok := parsePositiveAmount(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("parsePositiveAmount(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{5, "$5"},
		{4500, "$4,500"},
		{1234567, "$1,234,567"},
		{120.5, "$120.50"},
		{9999.99, "$9,999.99"},
	}
	for _, tc := range cases {
		if got := formatMoney(tc.in); got != tc.want {
			t.Errorf("formatMoney(%v) = %q; want %q", tc.in, got, tc.want)
		}
	}
}
