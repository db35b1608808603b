package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// CategoryKind discriminates the category variants.
type CategoryKind int

const (
	KindScreenshots CategoryKind = iota + 1
	KindRecents
	KindRandom
	KindYear
	KindMonth
)

// Category identifies one independently-tracked triage queue. It is a
// comparable value type so it can key the session map directly; two
// categories built from the same request are the same map key.
type Category struct {
	Kind  CategoryKind
	Year  int
	Month int
}

// Fixed categories.
var (
	Screenshots = Category{Kind: KindScreenshots}
	Recents     = Category{Kind: KindRecents}
	Random      = Category{Kind: KindRandom}
)

// YearCategory builds a year-scoped category.
func YearCategory(year int) (Category, error) {
	if year <= 0 {
		return Category{}, fmt.Errorf("%w: year %d must be positive", ErrInvalidCategory, year)
	}
	return Category{Kind: KindYear, Year: year}, nil
}

// MonthCategory builds a month-of-year category. Month is 1..12.
func MonthCategory(year, month int) (Category, error) {
	if year <= 0 {
		return Category{}, fmt.Errorf("%w: year %d must be positive", ErrInvalidCategory, year)
	}
	if month < 1 || month > 12 {
		return Category{}, fmt.Errorf("%w: month %d must be between 1 and 12", ErrInvalidCategory, month)
	}
	return Category{Kind: KindMonth, Year: year, Month: month}, nil
}

// ParseCategory normalizes an external category request. Accepted forms:
// "screenshots", "recents", "random", "2021", "2021-07".
func ParseCategory(request string) (Category, error) {
	s := strings.ToLower(strings.TrimSpace(request))
	switch s {
	case "screenshots":
		return Screenshots, nil
	case "recents":
		return Recents, nil
	case "random":
		return Random, nil
	}
	if year, month, ok := strings.Cut(s, "-"); ok {
		y, err := strconv.Atoi(year)
		if err != nil {
			return Category{}, fmt.Errorf("%w: %q", ErrInvalidCategory, request)
		}
		m, err := strconv.Atoi(month)
		if err != nil {
			return Category{}, fmt.Errorf("%w: %q", ErrInvalidCategory, request)
		}
		return MonthCategory(y, m)
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return Category{}, fmt.Errorf("%w: %q", ErrInvalidCategory, request)
	}
	return YearCategory(y)
}

// String returns the slug form accepted by ParseCategory.
func (c Category) String() string {
	switch c.Kind {
	case KindScreenshots:
		return "screenshots"
	case KindRecents:
		return "recents"
	case KindRandom:
		return "random"
	case KindYear:
		return strconv.Itoa(c.Year)
	case KindMonth:
		return fmt.Sprintf("%d-%02d", c.Year, c.Month)
	}
	return "unknown"
}

// Label returns a human-readable name for the category.
func (c Category) Label() string {
	switch c.Kind {
	case KindScreenshots:
		return "Screenshots"
	case KindRecents:
		return "Recents"
	case KindRandom:
		return "Random"
	case KindYear:
		return strconv.Itoa(c.Year)
	case KindMonth:
		return fmt.Sprintf("%s %d", monthNames[c.Month-1], c.Year)
	}
	return "Unknown"
}

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// AvailableYears returns the distinct creation years present in images,
// newest first. It derives the years from an in-memory snapshot, for
// callers that already hold one; callers with a library index get the
// same list straight from LibraryRepository.Years without loading any
// images, and the app surfaces go that way.
func AvailableYears(images []Image) []int {
	seen := map[int]bool{}
	for _, img := range images {
		seen[img.CreatedAt.Year()] = true
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}
