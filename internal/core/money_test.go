package core

import "testing"

func TestParseAmountToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"12.345", 1234, true},
		{"12.346", 1235, true},
		{"5000", 500000, true},
		{"0", 0, true},
		{"-5", -500, true},
		{"-12.50", -1250, true},
		{".5", 50, true},
		{"", 0, false},
		{"   ", 0, false},
		{"oops", 0, false},
		{"1.2.3", 0, false},
		{"12a", 0, false},
		{"-", 0, false},
		{".", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmountToCents(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("ParseAmountToCents(%q) unexpected error: %v", tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseAmountToCents(%q) expected error, got %d", tc.in, got)
		}
		if tc.ok && got != tc.want {
			t.Fatalf("ParseAmountToCents(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestMoneyFormat(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "₹0.00"},
		{500000, "₹5,000.00"},
		{123456789, "₹1,234,567.89"},
		{-1250, "-₹12.50"},
		{5, "₹0.05"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).Format(); got != tc.want {
			t.Fatalf("Format(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestFormatRupees(t *testing.T) {
	if got := FormatRupees(15000); got != "₹15,000.00" {
		t.Fatalf("FormatRupees(15000) = %q", got)
	}
	if got := FormatRupees(0.005); got != "₹0.01" {
		t.Fatalf("FormatRupees(0.005) = %q", got)
	}
}
