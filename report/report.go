// Package report computes the admin panel's income/loss figures from an
// order list the client already holds; there is no server-side aggregation
// endpoint.
package report

import (
	"sort"
	"time"

	"github.com/ray-remotestate/tableside/models"
)

type Period string

const (
	PeriodToday       Period = "today"
	PeriodWeek        Period = "week"
	PeriodMonth       Period = "month"
	PeriodThreeMonths Period = "3month"
	PeriodYear        Period = "year"
)

// Summary buckets completed orders as income and cancelled orders as loss;
// every other status counts toward neither.
type Summary struct {
	Income         float64
	Loss           float64
	CompletedCount int
	CancelledCount int
}

func Summarize(orders []models.Order) Summary {
	var s Summary
	for _, o := range orders {
		switch o.Status {
		case models.StatusCompleted:
			s.Income += o.Total
			s.CompletedCount++
		case models.StatusCancelled:
			s.Loss += o.Total
			s.CancelledCount++
		}
	}
	return s
}

// ByDay restricts the summary to a single calendar day.
func ByDay(orders []models.Order, day time.Time) Summary {
	var filtered []models.Order
	for _, o := range orders {
		if sameDay(o.CreatedAt, day) {
			filtered = append(filtered, o)
		}
	}
	return Summarize(filtered)
}

// ForPeriod returns the completed orders inside the rolling or calendar
// period ending at now, newest first.
func ForPeriod(orders []models.Order, period Period, now time.Time) []models.Order {
	var filtered []models.Order
	for _, o := range orders {
		if o.Status != models.StatusCompleted {
			continue
		}
		if inPeriod(o.CreatedAt, period, now) {
			filtered = append(filtered, o)
		}
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})
	return filtered
}

func inPeriod(t time.Time, period Period, now time.Time) bool {
	switch period {
	case PeriodToday:
		return sameDay(t, now)
	case PeriodWeek:
		// the window opens six days back at the same time of day
		weekAgo := now.AddDate(0, 0, -6)
		return !t.Before(weekAgo) && !t.After(now)
	case PeriodMonth:
		return t.Year() == now.Year() && t.Month() == now.Month()
	case PeriodThreeMonths:
		// first of the month two months back, keeping now's time of day
		shifted := now.AddDate(0, -2, 0)
		start := time.Date(shifted.Year(), shifted.Month(), 1,
			shifted.Hour(), shifted.Minute(), shifted.Second(), shifted.Nanosecond(), shifted.Location())
		return !t.Before(start) && !t.After(now)
	case PeriodYear:
		return t.Year() == now.Year()
	default:
		return false
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
