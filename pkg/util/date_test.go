package util

import (
	"testing"
	"time"
)

func TestParseTime(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2024-03-01T09:30:00Z", time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC), true},
		{"2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), true},
		{"1709285400", time.Unix(1709285400, 0).UTC(), true},
		{"", time.Time{}, false},
		{"yesterday", time.Time{}, false},
		{"-5", time.Time{}, false},
	}
	for _, tc := range cases {
		got, ok := ParseTime(tc.in)
		if ok != tc.ok {
			t.Fatalf("ParseTime(%q) ok = %v, want %v", tc.in, ok, tc.ok)
		}
		if ok && !got.Equal(tc.want) {
			t.Fatalf("ParseTime(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := ParseTimeDefault("", def); !got.Equal(def) {
		t.Fatalf("empty input: got %v, want default", got)
	}
	if got := ParseTimeDefault("2024-03-01", def); got.Equal(def) {
		t.Fatal("valid input must not fall back to default")
	}
}
