// Package dashboard derives chart-ready aggregates from the item and category
// collections. Everything is recomputed from scratch on each call.
package dashboard

import (
	"sort"
	"time"

	"itemvault/internal/models"
)

const (
	recentLimit  = 5
	activityDays = 7
)

// Totals are the headline counters.
type Totals struct {
	ItemCount     int `json:"itemCount"`
	CategoryCount int `json:"categoryCount"`
	// FieldCount sums the declared fields of every category.
	FieldCount int `json:"fieldCount"`
	// RecentCount is the length of RecentItems.
	RecentCount   int `json:"recentCount"`
	AddedThisWeek int `json:"addedThisWeek"`
}

// DayActivity counts the items created on one calendar day.
type DayActivity struct {
	Date  string `json:"date"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// CategoryShare counts the items referencing one category.
type CategoryShare struct {
	CategoryID string `json:"categoryId"`
	Name       string `json:"name"`
	Count      int    `json:"count"`
}

// Aggregates is the full dashboard payload.
type Aggregates struct {
	Totals               Totals          `json:"totals"`
	RecentItems          []models.Item   `json:"recentItems"`
	ActivityByDay        []DayActivity   `json:"activityByDay"`
	CategoryDistribution []CategoryShare `json:"categoryDistribution"`
}

// Compute builds the dashboard aggregates as of now. Calendar days are taken in
// now's location. The input slices are not modified.
func Compute(items []models.Item, categories []models.Category, now time.Time) Aggregates {
	recent := RecentItems(items, recentLimit)

	fieldCount := 0
	for i := range categories {
		fieldCount += categories[i].FieldCount()
	}

	return Aggregates{
		Totals: Totals{
			ItemCount:     len(items),
			CategoryCount: len(categories),
			FieldCount:    fieldCount,
			RecentCount:   len(recent),
			AddedThisWeek: AddedSince(items, now.AddDate(0, 0, -activityDays)),
		},
		RecentItems:          recent,
		ActivityByDay:        ActivityByDay(items, now, activityDays),
		CategoryDistribution: CategoryDistribution(items, categories),
	}
}

// RecentItems returns up to limit items, newest first. Items created at the
// same instant keep their input order.
func RecentItems(items []models.Item, limit int) []models.Item {
	sorted := make([]models.Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// ActivityByDay buckets items by creation day for the trailing days ending
// today, oldest first.
func ActivityByDay(items []models.Item, now time.Time, days int) []DayActivity {
	loc := now.Location()
	counts := make(map[string]int, days)
	for i := range items {
		counts[items[i].CreatedAt.In(loc).Format(time.DateOnly)]++
	}

	out := make([]DayActivity, 0, days)
	for offset := days - 1; offset >= 0; offset-- {
		day := now.AddDate(0, 0, -offset)
		key := day.Format(time.DateOnly)
		out = append(out, DayActivity{
			Date:  key,
			Label: day.Format("Mon"),
			Count: counts[key],
		})
	}
	return out
}

// CategoryDistribution counts items per category, in category order, leaving
// out categories no item references.
func CategoryDistribution(items []models.Item, categories []models.Category) []CategoryShare {
	counts := make(map[string]int, len(categories))
	for i := range items {
		counts[items[i].CategoryID]++
	}

	out := make([]CategoryShare, 0, len(categories))
	for i := range categories {
		c := &categories[i]
		n := counts[c.ID]
		if n == 0 {
			continue
		}
		out = append(out, CategoryShare{CategoryID: c.ID, Name: c.Name, Count: n})
	}
	return out
}

// AddedSince counts items created at or after since.
func AddedSince(items []models.Item, since time.Time) int {
	n := 0
	for i := range items {
		if !items[i].CreatedAt.Before(since) {
			n++
		}
	}
	return n
}
