// api/store/event_store.go
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"takamul/api/analytics"
	"takamul/api/database"
	"takamul/api/models"
)

// EventStore reads and writes the two append-only ClickHouse event tables
// (visitors, submissions). It implements analytics.EventStore for the
// read side.
type EventStore struct {
	DB *database.ClickHouseClient
}

func NewEventStore(chClient *database.ClickHouseClient) *EventStore {
	return &EventStore{DB: chClient}
}

func tableFor(kind analytics.EventKind) (string, error) {
	switch kind {
	case analytics.KindVisitor:
		return "visitors", nil
	case analytics.KindSubmission:
		return "submissions", nil
	default:
		return "", fmt.Errorf("unknown event kind: %s", kind)
	}
}

func (s *EventStore) InsertVisitor(ctx context.Context, v models.Visitor) (models.Visitor, error) {
	v.ID = uuid.New().String()
	v.CreatedAt = time.Now().UTC()

	err := s.DB.Conn.Exec(ctx, `
		INSERT INTO visitors (
			id, created_at, ip, city, region, country, country_code, timezone,
			org, latitude, longitude, user_agent
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		v.ID, v.CreatedAt, v.IP, v.City, v.Region, v.Country, v.CountryCode,
		v.Timezone, v.Org, v.Latitude, v.Longitude, v.UserAgent,
	)
	if err != nil {
		return models.Visitor{}, fmt.Errorf("failed to insert visitor: %w", err)
	}
	return v, nil
}

func (s *EventStore) InsertSubmission(ctx context.Context, sub models.Submission) (models.Submission, error) {
	sub.ID = uuid.New().String()
	sub.CreatedAt = time.Now().UTC()

	err := s.DB.Conn.Exec(ctx, `
		INSERT INTO submissions (
			id, created_at, name, phone, ip, city, region, country, country_code,
			timezone, org, latitude, longitude
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		sub.ID, sub.CreatedAt, sub.Name, sub.Phone, sub.IP, sub.City, sub.Region,
		sub.Country, sub.CountryCode, sub.Timezone, sub.Org, sub.Latitude, sub.Longitude,
	)
	if err != nil {
		return models.Submission{}, fmt.Errorf("failed to insert submission: %w", err)
	}
	return sub, nil
}

func (s *EventStore) CountEvents(ctx context.Context, kind analytics.EventKind) (uint64, error) {
	table, err := tableFor(kind)
	if err != nil {
		return 0, err
	}

	var count uint64
	query := fmt.Sprintf(`SELECT count() FROM %s`, table)
	if err := s.DB.Conn.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return count, nil
}

func (s *EventStore) CountEventsSince(ctx context.Context, kind analytics.EventKind, since time.Time) (uint64, error) {
	table, err := tableFor(kind)
	if err != nil {
		return 0, err
	}

	var count uint64
	query := fmt.Sprintf(`SELECT count() FROM %s WHERE created_at >= ?`, table)
	if err := s.DB.Conn.QueryRow(ctx, query, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s since %s: %w", table, since.Format(time.RFC3339), err)
	}
	return count, nil
}

func (s *EventStore) TopCountries(ctx context.Context, kind analytics.EventKind, limit int) ([]models.CountryCount, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	// Null/empty countries collapse into one "Unknown" bucket before
	// counting. The secondary ORDER BY keeps ties stable across calls.
	query := fmt.Sprintf(`
		SELECT if(country IS NULL OR country = '', 'Unknown', country) AS country_label, count() AS cnt
		FROM %s
		GROUP BY country_label
		ORDER BY cnt DESC, country_label ASC
		LIMIT ?
	`, table)

	rows, err := s.DB.Conn.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top countries for %s: %w", table, err)
	}
	defer rows.Close()

	var results []models.CountryCount
	for rows.Next() {
		var cc models.CountryCount
		if err := rows.Scan(&cc.Country, &cc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan top countries row for %s: %w", table, err)
		}
		results = append(results, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during top countries query for %s: %w", table, err)
	}

	return results, nil
}

func (s *EventStore) CountsByDay(ctx context.Context, kind analytics.EventKind, start, end time.Time) (map[string]uint64, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	// One grouped query for the whole window instead of a round-trip per
	// day; absent days are zero-filled by the aggregation engine.
	query := fmt.Sprintf(`
		SELECT toDate(created_at) AS day, count() AS cnt
		FROM %s
		WHERE created_at >= ? AND created_at <= ?
		GROUP BY day
	`, table)

	rows, err := s.DB.Conn.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily counts for %s: %w", table, err)
	}
	defer rows.Close()

	counts := make(map[string]uint64)
	for rows.Next() {
		var day time.Time
		var cnt uint64
		if err := rows.Scan(&day, &cnt); err != nil {
			return nil, fmt.Errorf("failed to scan daily counts row for %s: %w", table, err)
		}
		counts[day.Format("2006-01-02")] = cnt
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during daily counts query for %s: %w", table, err)
	}

	return counts, nil
}

func (s *EventStore) RecentVisitors(ctx context.Context, limit int) ([]models.Visitor, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.DB.Conn.Query(ctx, `
		SELECT id, created_at, ip, city, region, country, country_code, timezone,
		       org, latitude, longitude, user_agent
		FROM visitors
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent visitors: %w", err)
	}
	defer rows.Close()

	var results []models.Visitor
	for rows.Next() {
		var v models.Visitor
		if err := rows.Scan(
			&v.ID, &v.CreatedAt, &v.IP, &v.City, &v.Region, &v.Country,
			&v.CountryCode, &v.Timezone, &v.Org, &v.Latitude, &v.Longitude, &v.UserAgent,
		); err != nil {
			return nil, fmt.Errorf("failed to scan recent visitor row: %w", err)
		}
		results = append(results, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during recent visitors query: %w", err)
	}

	return results, nil
}

func (s *EventStore) RecentSubmissions(ctx context.Context, limit int) ([]models.Submission, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.querySubmissions(ctx, "", nil, limit, 0)
}

func (s *EventStore) VisitorUserAgentsSince(ctx context.Context, since time.Time) ([]string, error) {
	rows, err := s.DB.Conn.Query(ctx, `
		SELECT user_agent FROM visitors WHERE created_at >= ?
	`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query visitor user agents: %w", err)
	}
	defer rows.Close()

	var results []string
	for rows.Next() {
		var ua *string
		if err := rows.Scan(&ua); err != nil {
			return nil, fmt.Errorf("failed to scan user agent row: %w", err)
		}
		if ua != nil {
			results = append(results, *ua)
		} else {
			results = append(results, "")
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during user agents query: %w", err)
	}

	return results, nil
}

// ListSubmissions pages through submissions for the admin table, optionally
// filtered by a name/phone substring and a country substring.
func (s *EventStore) ListSubmissions(ctx context.Context, search, country string, page, limit int) (models.SubmissionPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	where, args := submissionFilter(search, country)

	var total uint64
	countQuery := `SELECT count() FROM submissions` + where
	if err := s.DB.Conn.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return models.SubmissionPage{}, fmt.Errorf("failed to count filtered submissions: %w", err)
	}

	subs, err := s.querySubmissions(ctx, where, args, limit, (page-1)*limit)
	if err != nil {
		return models.SubmissionPage{}, err
	}
	if subs == nil {
		subs = []models.Submission{}
	}

	totalPages := int((total + uint64(limit) - 1) / uint64(limit))
	return models.SubmissionPage{
		Data: subs,
		Pagination: models.Pagination{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
		},
	}, nil
}

// FilteredSubmissions returns the entire filtered set, newest first, for the
// CSV export.
func (s *EventStore) FilteredSubmissions(ctx context.Context, search, country string) ([]models.Submission, error) {
	where, args := submissionFilter(search, country)
	return s.querySubmissions(ctx, where, args, 0, 0)
}

func submissionFilter(search, country string) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if search != "" {
		conds = append(conds, `(name ILIKE ? OR phone ILIKE ?)`)
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}
	if country != "" {
		conds = append(conds, `country ILIKE ?`)
		args = append(args, "%"+country+"%")
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (s *EventStore) querySubmissions(ctx context.Context, where string, args []interface{}, limit, offset int) ([]models.Submission, error) {
	query := `
		SELECT id, created_at, name, phone, ip, city, region, country, country_code,
		       timezone, org, latitude, longitude
		FROM submissions` + where + `
		ORDER BY created_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
	}

	rows, err := s.DB.Conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	var results []models.Submission
	for rows.Next() {
		var sub models.Submission
		if err := rows.Scan(
			&sub.ID, &sub.CreatedAt, &sub.Name, &sub.Phone, &sub.IP, &sub.City,
			&sub.Region, &sub.Country, &sub.CountryCode, &sub.Timezone, &sub.Org,
			&sub.Latitude, &sub.Longitude,
		); err != nil {
			return nil, fmt.Errorf("failed to scan submission row: %w", err)
		}
		results = append(results, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during submissions query: %w", err)
	}

	return results, nil
}
