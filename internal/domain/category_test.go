package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseCategory(t *testing.T) {
	t.Run("parses fixed categories", func(t *testing.T) {
		for _, req := range []string{"screenshots", "Recents", " random "} {
			cat, err := ParseCategory(req)
			if err != nil {
				t.Fatalf("ParseCategory(%q) error = %v", req, err)
			}
			if cat.Kind == KindYear || cat.Kind == KindMonth {
				t.Errorf("ParseCategory(%q) = %v, want a fixed category", req, cat)
			}
		}
	})

	t.Run("parses year", func(t *testing.T) {
		cat, err := ParseCategory("2021")
		if err != nil {
			t.Fatalf("ParseCategory() error = %v", err)
		}
		if cat.Kind != KindYear || cat.Year != 2021 {
			t.Errorf("ParseCategory(2021) = %+v, want year 2021", cat)
		}
	})

	t.Run("parses year-month", func(t *testing.T) {
		cat, err := ParseCategory("2021-07")
		if err != nil {
			t.Fatalf("ParseCategory() error = %v", err)
		}
		if cat.Kind != KindMonth || cat.Year != 2021 || cat.Month != 7 {
			t.Errorf("ParseCategory(2021-07) = %+v, want July 2021", cat)
		}
	})

	t.Run("rejects month out of range", func(t *testing.T) {
		for _, req := range []string{"2021-00", "2021-13"} {
			_, err := ParseCategory(req)
			if !errors.Is(err, ErrInvalidCategory) {
				t.Errorf("ParseCategory(%q) error = %v, want ErrInvalidCategory", req, err)
			}
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		for _, req := range []string{"", "photos", "-2021", "2021-jan"} {
			_, err := ParseCategory(req)
			if !errors.Is(err, ErrInvalidCategory) {
				t.Errorf("ParseCategory(%q) error = %v, want ErrInvalidCategory", req, err)
			}
		}
	})

	t.Run("string form round-trips", func(t *testing.T) {
		for _, req := range []string{"screenshots", "recents", "random", "2021", "2021-07"} {
			cat, err := ParseCategory(req)
			if err != nil {
				t.Fatalf("ParseCategory(%q) error = %v", req, err)
			}
			again, err := ParseCategory(cat.String())
			if err != nil {
				t.Fatalf("ParseCategory(%q) error = %v", cat.String(), err)
			}
			if again != cat {
				t.Errorf("round-trip of %q = %+v, want %+v", req, again, cat)
			}
		}
	})
}

func TestCategoryIsMapKey(t *testing.T) {
	a, _ := MonthCategory(2021, 7)
	b, _ := MonthCategory(2021, 7)

	m := map[Category]int{}
	m[a] = 1
	m[b] = 2

	if len(m) != 1 {
		t.Errorf("map has %d entries, want 1 (structural equality)", len(m))
	}
	if m[a] != 2 {
		t.Errorf("m[a] = %d, want 2", m[a])
	}
}

func TestAvailableYears(t *testing.T) {
	date := func(y int) time.Time {
		return time.Date(y, time.March, 1, 0, 0, 0, 0, time.UTC)
	}
	images := []Image{
		{SHA256: "a", CreatedAt: date(2019)},
		{SHA256: "b", CreatedAt: date(2023)},
		{SHA256: "c", CreatedAt: date(2019)},
		{SHA256: "d", CreatedAt: date(2021)},
	}

	years := AvailableYears(images)
	want := []int{2023, 2021, 2019}
	if len(years) != len(want) {
		t.Fatalf("AvailableYears() = %v, want %v", years, want)
	}
	for i := range want {
		if years[i] != want[i] {
			t.Errorf("AvailableYears()[%d] = %d, want %d", i, years[i], want[i])
		}
	}

	if got := AvailableYears(nil); len(got) != 0 {
		t.Errorf("AvailableYears(nil) = %v, want empty", got)
	}
}
