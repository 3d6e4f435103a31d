// api/analytics/engine.go
package analytics

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"takamul/api/models"
)

// EventKind selects one of the two append-only event tables.
type EventKind string

const (
	KindVisitor    EventKind = "visitor"
	KindSubmission EventKind = "submission"
)

const topCountriesLimit = 10
const recentLimit = 10

// EventStore is the read-side boundary the engine queries. All methods are
// read-only; implementations must surface query failures as errors rather
// than returning partial results.
type EventStore interface {
	CountEvents(ctx context.Context, kind EventKind) (uint64, error)
	CountEventsSince(ctx context.Context, kind EventKind, since time.Time) (uint64, error)
	// TopCountries groups all-time events by country, collapsing null/empty
	// countries into "Unknown", descending by count.
	TopCountries(ctx context.Context, kind EventKind, limit int) ([]models.CountryCount, error)
	// CountsByDay returns per-UTC-calendar-day counts for events created in
	// [start, end], keyed by ISO date. Days with no events are simply absent.
	CountsByDay(ctx context.Context, kind EventKind, start, end time.Time) (map[string]uint64, error)
	RecentVisitors(ctx context.Context, limit int) ([]models.Visitor, error)
	RecentSubmissions(ctx context.Context, limit int) ([]models.Submission, error)
	// VisitorUserAgentsSince returns the user-agent of every visitor created
	// at or after since; empty string where the column is null.
	VisitorUserAgentsSince(ctx context.Context, since time.Time) ([]string, error)
}

// Engine assembles the dashboard analytics report from the event store.
// It holds no state between calls and is safe for concurrent use.
type Engine struct {
	store EventStore
}

func NewEngine(store EventStore) *Engine {
	return &Engine{store: store}
}

// ComputeReport builds the full analytics report for one period token
// against a single reference instant, so every sub-metric (window, buckets,
// recents) agrees on what "now" is. Sub-queries run concurrently; if any of
// them fails the whole report fails, never a partial one.
func (e *Engine) ComputeReport(ctx context.Context, period string, now time.Time) (*models.AnalyticsReport, error) {
	window := ResolveWindow(period, now)

	var (
		totalVisitors, totalSubmissions   uint64
		periodVisitors, periodSubmissions uint64
		visitorCountries                  []models.CountryCount
		submissionCountries               []models.CountryCount
		visitorsByDay, submissionsByDay   map[string]uint64
		recentVisitors                    []models.Visitor
		recentSubmissions                 []models.Submission
		userAgents                        []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		totalVisitors, err = e.store.CountEvents(gctx, KindVisitor)
		return err
	})
	g.Go(func() (err error) {
		totalSubmissions, err = e.store.CountEvents(gctx, KindSubmission)
		return err
	})
	g.Go(func() (err error) {
		periodVisitors, err = e.store.CountEventsSince(gctx, KindVisitor, window.Start)
		return err
	})
	g.Go(func() (err error) {
		periodSubmissions, err = e.store.CountEventsSince(gctx, KindSubmission, window.Start)
		return err
	})
	g.Go(func() (err error) {
		visitorCountries, err = e.store.TopCountries(gctx, KindVisitor, topCountriesLimit)
		return err
	})
	g.Go(func() (err error) {
		submissionCountries, err = e.store.TopCountries(gctx, KindSubmission, topCountriesLimit)
		return err
	})
	g.Go(func() (err error) {
		visitorsByDay, err = e.store.CountsByDay(gctx, KindVisitor, window.Days[0].Start, window.Days[len(window.Days)-1].End)
		return err
	})
	g.Go(func() (err error) {
		submissionsByDay, err = e.store.CountsByDay(gctx, KindSubmission, window.Days[0].Start, window.Days[len(window.Days)-1].End)
		return err
	})
	g.Go(func() (err error) {
		recentVisitors, err = e.store.RecentVisitors(gctx, recentLimit)
		return err
	})
	g.Go(func() (err error) {
		recentSubmissions, err = e.store.RecentSubmissions(gctx, recentLimit)
		return err
	})
	g.Go(func() (err error) {
		userAgents, err = e.store.VisitorUserAgentsSince(gctx, window.Start)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analytics query failed: %w", err)
	}

	devices := models.DeviceBreakdown{}
	for _, ua := range userAgents {
		switch ClassifyDevice(ua) {
		case DeviceMobile:
			devices.Mobile++
		case DeviceTablet:
			devices.Tablet++
		default:
			devices.Desktop++
		}
	}

	report := &models.AnalyticsReport{
		Overview: models.Overview{
			TotalVisitors:        totalVisitors,
			TotalSubmissions:     totalSubmissions,
			ConversionRate:       conversionRate(totalSubmissions, totalVisitors),
			PeriodVisitors:       periodVisitors,
			PeriodSubmissions:    periodSubmissions,
			PeriodConversionRate: conversionRate(periodSubmissions, periodVisitors),
		},
		Countries: models.ReportCountries{
			Visitors:    visitorCountries,
			Submissions: submissionCountries,
		},
		Trends: models.ReportTrends{
			Daily: models.DailyTrends{
				Visitors:    fillDailySeries(window.Days, visitorsByDay),
				Submissions: fillDailySeries(window.Days, submissionsByDay),
			},
		},
		Devices: devices,
		Recent: models.RecentActivity{
			Visitors:    recentVisitors,
			Submissions: recentSubmissions,
		},
		Period: window.Period,
	}

	// Empty groupings serialize as [] rather than null.
	if report.Countries.Visitors == nil {
		report.Countries.Visitors = []models.CountryCount{}
	}
	if report.Countries.Submissions == nil {
		report.Countries.Submissions = []models.CountryCount{}
	}
	if report.Recent.Visitors == nil {
		report.Recent.Visitors = []models.Visitor{}
	}
	if report.Recent.Submissions == nil {
		report.Recent.Submissions = []models.Submission{}
	}

	return report, nil
}

// fillDailySeries expands a sparse per-day count map into a gap-free series
// over the window's buckets, zero for days with no events.
func fillDailySeries(days []DayBucket, counts map[string]uint64) []models.DailyCount {
	series := make([]models.DailyCount, 0, len(days))
	for _, day := range days {
		series = append(series, models.DailyCount{
			Date:  day.Date,
			Count: counts[day.Date],
		})
	}
	return series
}

// conversionRate is submissions over visitors as a percentage, rounded to 2
// decimal places. Zero visitors means 0, regardless of submissions.
func conversionRate(submissions, visitors uint64) float64 {
	if visitors == 0 {
		return 0
	}
	rate := float64(submissions) / float64(visitors) * 100
	return math.Round(rate*100) / 100
}
