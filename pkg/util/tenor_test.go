package util

import (
	"testing"
	"time"
)

func TestTenorDays(t *testing.T) {
	ref := time.Date(2025, 11, 21, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		tenor string
		want  int
	}{
		{"1D", 1},
		{"2W", 14},
		{"1M", 30}, // Nov 21 -> Dec 21
		{"1Y", 365},
	}
	for _, c := range cases {
		got, err := TenorDays(c.tenor, ref)
		if err != nil {
			t.Fatalf("%s: %v", c.tenor, err)
		}
		if got != c.want {
			t.Fatalf("%s: got %d want %d", c.tenor, got, c.want)
		}
	}
}

func TestTenorDaysMalformed(t *testing.T) {
	ref := time.Now()
	for _, s := range []string{"", "M", "xY", "-1D", "10"} {
		if _, err := TenorDays(s, ref); err == nil {
			t.Fatalf("expected error for %q", s)
		}
	}
}

func TestTenorYears(t *testing.T) {
	got, err := TenorYears("6M")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0.5 {
		t.Fatalf("got %v want 0.5", got)
	}
	got, err = TenorYears("10Y")
	if err != nil || got != 10 {
		t.Fatalf("got %v, %v", got, err)
	}
}
