package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"takamul/api/analytics"
	"takamul/api/models"
)

// stubEventStore returns fixed values, or fails every query when err is set.
type stubEventStore struct {
	visitors uint64
	err      error
}

func (s *stubEventStore) CountEvents(ctx context.Context, kind analytics.EventKind) (uint64, error) {
	if s.err != nil {
		return 0, s.err
	}
	if kind == analytics.KindVisitor {
		return s.visitors, nil
	}
	return 0, nil
}

func (s *stubEventStore) CountEventsSince(ctx context.Context, kind analytics.EventKind, since time.Time) (uint64, error) {
	return s.CountEvents(ctx, kind)
}

func (s *stubEventStore) TopCountries(ctx context.Context, kind analytics.EventKind, limit int) ([]models.CountryCount, error) {
	return nil, s.err
}

func (s *stubEventStore) CountsByDay(ctx context.Context, kind analytics.EventKind, start, end time.Time) (map[string]uint64, error) {
	return nil, s.err
}

func (s *stubEventStore) RecentVisitors(ctx context.Context, limit int) ([]models.Visitor, error) {
	return nil, s.err
}

func (s *stubEventStore) RecentSubmissions(ctx context.Context, limit int) ([]models.Submission, error) {
	return nil, s.err
}

func (s *stubEventStore) VisitorUserAgentsSince(ctx context.Context, since time.Time) ([]string, error) {
	return nil, s.err
}

func newAnalyticsRouter(store analytics.EventStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAnalyticsHandlers(analytics.NewEngine(store))
	r.GET("/api/stats/analytics", h.GetAnalytics)
	return r
}

func TestGetAnalyticsPeriodFallback(t *testing.T) {
	r := newAnalyticsRouter(&stubEventStore{visitors: 3})

	req := httptest.NewRequest(http.MethodGet, "/api/stats/analytics?period=12d", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var report models.AnalyticsReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if report.Period != "7d" {
		t.Errorf("period = %q, want fallback 7d", report.Period)
	}
	if len(report.Trends.Daily.Visitors) != 7 {
		t.Errorf("trend length = %d, want 7", len(report.Trends.Daily.Visitors))
	}
	if report.Overview.TotalVisitors != 3 {
		t.Errorf("totalVisitors = %d, want 3", report.Overview.TotalVisitors)
	}
}

func TestGetAnalyticsStoreFailure(t *testing.T) {
	r := newAnalyticsRouter(&stubEventStore{err: errors.New("clickhouse: connection refused")})

	req := httptest.NewRequest(http.MethodGet, "/api/stats/analytics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["error"] != "Failed to fetch analytics" {
		t.Errorf("error body = %q, want generic message", body["error"])
	}
	// Internal detail must not leak to the caller.
	if len(body) != 1 {
		t.Errorf("response has extra fields: %v", body)
	}
}
