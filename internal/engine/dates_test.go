package engine

import (
	"errors"
	"testing"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-06-01")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Year() != 2026 || d.Month() != 6 || d.Day() != 1 {
		t.Errorf("ParseDate returned %v", d)
	}

	for _, bad := range []string{"", "2026/06/01", "06-01-2026", "2026-13-01", "not a date"} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ParseDate(%q): want ErrInvalidInput, got %v", bad, err)
		}
	}
}

func TestNightsBetween(t *testing.T) {
	cases := []struct {
		in, out string
		want    int
	}{
		{"2026-06-01", "2026-06-02", 1},
		{"2026-06-01", "2026-06-03", 2},
		{"2026-06-01", "2026-06-01", 0},
		{"2026-06-03", "2026-06-01", -2},
	}
	for _, tc := range cases {
		if got := nightsBetween(date(tc.in), date(tc.out)); got != tc.want {
			t.Errorf("nightsBetween(%s, %s) = %d, want %d", tc.in, tc.out, got, tc.want)
		}
	}
}

func TestStayDatesHalfOpen(t *testing.T) {
	got := stayDates(date("2026-06-01"), date("2026-06-04"))
	if len(got) != 3 {
		t.Fatalf("stayDates returned %d dates, want 3", len(got))
	}
	if !got[0].Equal(date("2026-06-01")) || !got[2].Equal(date("2026-06-03")) {
		t.Errorf("stayDates = %v", got)
	}
	if got := stayDates(date("2026-06-01"), date("2026-06-01")); got != nil {
		t.Errorf("zero-night stay should yield nil, got %v", got)
	}
}

func TestInclusiveDates(t *testing.T) {
	got := inclusiveDates(date("2026-06-01"), date("2026-06-03"))
	if len(got) != 3 {
		t.Fatalf("inclusiveDates returned %d dates, want 3", len(got))
	}
	if !got[2].Equal(date("2026-06-03")) {
		t.Errorf("last date = %v, want 2026-06-03", got[2])
	}
	if got := inclusiveDates(date("2026-06-03"), date("2026-06-01")); got != nil {
		t.Errorf("inverted range should yield nil, got %v", got)
	}
	// Single day is a valid inclusive range.
	if got := inclusiveDates(date("2026-06-01"), date("2026-06-01")); len(got) != 1 {
		t.Errorf("single-day range yielded %d dates", len(got))
	}
}

func TestValidateStay(t *testing.T) {
	if err := validateStay(date("2026-06-01"), date("2026-06-05")); err != nil {
		t.Errorf("valid stay rejected: %v", err)
	}
	if err := validateStay(date("2026-06-01"), date("2026-06-01")); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("zero-night stay: want ErrInvalidInput, got %v", err)
	}
	if err := validateStay(date("2026-06-05"), date("2026-06-01")); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("inverted stay: want ErrInvalidInput, got %v", err)
	}
	if err := validateStay(date("2020-01-01"), date("2026-01-01")); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("multi-year stay: want ErrInvalidInput, got %v", err)
	}
}

func TestValidateInclusiveRange(t *testing.T) {
	if err := validateInclusiveRange(date("2026-06-01"), date("2026-06-01")); err != nil {
		t.Errorf("single-day range rejected: %v", err)
	}
	if err := validateInclusiveRange(date("2026-06-02"), date("2026-06-01")); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("inverted range: want ErrInvalidInput, got %v", err)
	}
}
