package analytics

import (
	"testing"
	"time"
)

func TestResolvePeriodFallback(t *testing.T) {
	for _, tok := range []string{"", "1d", "week", "7D", "365d", "garbage"} {
		if got := ResolvePeriod(tok); got != "7d" {
			t.Errorf("ResolvePeriod(%q) = %q, want 7d", tok, got)
		}
	}
	for _, tok := range []string{"7d", "30d", "90d"} {
		if got := ResolvePeriod(tok); got != tok {
			t.Errorf("ResolvePeriod(%q) = %q, want %q", tok, got, tok)
		}
	}
}

func TestResolveWindowStart(t *testing.T) {
	now := time.Date(2025, 6, 15, 13, 45, 30, 0, time.UTC)

	cases := []struct {
		period string
		days   int
	}{
		{"7d", 7},
		{"30d", 30},
		{"90d", 90},
	}
	for _, tc := range cases {
		w := ResolveWindow(tc.period, now)
		want := now.AddDate(0, 0, -tc.days)
		if !w.Start.Equal(want) {
			t.Errorf("ResolveWindow(%q).Start = %v, want %v", tc.period, w.Start, want)
		}
	}

	// Unrecognized tokens must produce the identical start as 7d.
	want := ResolveWindow("7d", now).Start
	for _, tok := range []string{"", "14d", "bogus"} {
		if got := ResolveWindow(tok, now).Start; !got.Equal(want) {
			t.Errorf("ResolveWindow(%q).Start = %v, want 7d start %v", tok, got, want)
		}
	}
}

func TestResolveWindowBuckets(t *testing.T) {
	now := time.Date(2025, 6, 15, 13, 45, 30, 0, time.UTC)

	cases := []struct {
		period  string
		buckets int
	}{
		{"7d", 7},
		{"30d", 30},
		{"90d", 30}, // capped
	}
	for _, tc := range cases {
		w := ResolveWindow(tc.period, now)
		if len(w.Days) != tc.buckets {
			t.Fatalf("ResolveWindow(%q): got %d buckets, want %d", tc.period, len(w.Days), tc.buckets)
		}

		for i, day := range w.Days {
			if day.Start.Hour() != 0 || day.Start.Minute() != 0 || day.Start.Second() != 0 {
				t.Errorf("bucket %d start %v is not UTC midnight", i, day.Start)
			}
			if got := day.Start.Format("2006-01-02"); got != day.Date {
				t.Errorf("bucket %d date %q does not match start %v", i, day.Date, day.Start)
			}
			if !day.End.After(day.Start) {
				t.Errorf("bucket %d end %v not after start %v", i, day.End, day.Start)
			}
			if i > 0 {
				prev := w.Days[i-1]
				if !day.Start.Equal(prev.Start.AddDate(0, 0, 1)) {
					t.Errorf("bucket %d start %v is not one day after %v", i, day.Start, prev.Start)
				}
			}
		}

		last := w.Days[len(w.Days)-1]
		if now.Before(last.Start) || now.After(last.End) {
			t.Errorf("ResolveWindow(%q): now %v outside last bucket [%v, %v]", tc.period, now, last.Start, last.End)
		}
	}
}

func TestResolveWindowBucketsCrossMonth(t *testing.T) {
	now := time.Date(2025, 3, 3, 1, 0, 0, 0, time.UTC)
	w := ResolveWindow("7d", now)

	if got := w.Days[0].Date; got != "2025-02-25" {
		t.Errorf("first bucket = %q, want 2025-02-25", got)
	}
	if got := w.Days[len(w.Days)-1].Date; got != "2025-03-03" {
		t.Errorf("last bucket = %q, want 2025-03-03", got)
	}
}
