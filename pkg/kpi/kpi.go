// Package kpi provides the counting and bucketing primitives behind
// dashboard indicators. All functions are pure and operate on data
// already fetched by the caller.
package kpi

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// NameValue is a single chart-ready data point.
type NameValue struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// DatePoint is a single day in a time series.
type DatePoint struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

// DateLayout is the wire format for series dates.
const DateLayout = "2006-01-02"

// GroupCount tallies items by the extracted key. Groups appear in
// first-seen order, not sorted.
func GroupCount[T any](items []T, key func(T) string) []NameValue {
	index := make(map[string]int)
	out := make([]NameValue, 0)
	for _, it := range items {
		k := key(it)
		if i, ok := index[k]; ok {
			out[i].Value++
			continue
		}
		index[k] = len(out)
		out = append(out, NameValue{Name: k, Value: 1})
	}
	return out
}

// TopN returns the n largest groups by descending count. Ties keep
// their first-seen order.
func TopN(counts []NameValue, n int) []NameValue {
	out := make([]NameValue, len(counts))
	copy(out, counts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}

// Rate renders part/total as a percentage with one decimal. An empty
// population yields the literal "0", never NaN.
func Rate(part, total int) string {
	if total == 0 {
		return "0"
	}
	return fmt.Sprintf("%.1f", float64(part)/float64(total)*100)
}

// AvgCeilDays averages the given durations after rounding each one up
// to whole days. An empty input yields the literal "0".
func AvgCeilDays(durations []time.Duration) string {
	if len(durations) == 0 {
		return "0"
	}
	var sum float64
	for _, d := range durations {
		sum += math.Ceil(d.Hours() / 24)
	}
	return fmt.Sprintf("%.1f", sum/float64(len(durations)))
}

// Days enumerates every calendar day in the inclusive range [start, end].
func Days(start, end time.Time) []time.Time {
	start = truncateDay(start)
	end = truncateDay(end)
	if end.Before(start) {
		return nil
	}
	var out []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// DailySeries counts same-day events for every calendar day in
// [start, end]. Every day gets a row even when its count is zero, so
// charts have no gaps.
func DailySeries(start, end time.Time, events []time.Time) []DatePoint {
	byDay := make(map[string]int)
	for _, e := range events {
		byDay[e.Format(DateLayout)]++
	}
	days := Days(start, end)
	out := make([]DatePoint, 0, len(days))
	for _, d := range days {
		key := d.Format(DateLayout)
		out = append(out, DatePoint{Date: key, Value: byDay[key]})
	}
	return out
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
