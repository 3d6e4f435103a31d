// api/models/event.go
package models

import "time"

// Visitor is one landing-page load, enriched client-side with whatever the
// geolocation service returned. Geo fields are nullable in ClickHouse, hence
// the pointers.
type Visitor struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	IP          string    `json:"ip"`
	City        *string   `json:"city"`
	Region      *string   `json:"region"`
	Country     *string   `json:"country"`
	CountryCode *string   `json:"countryCode"`
	Timezone    *string   `json:"timezone"`
	Org         *string   `json:"org"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	UserAgent   *string   `json:"userAgent"`
}

// Submission is one completed lead form. Never linked to a Visitor by ID;
// the two are only correlated statistically (time window, country).
type Submission struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	IP          *string   `json:"ip"`
	City        *string   `json:"city"`
	Region      *string   `json:"region"`
	Country     *string   `json:"country"`
	CountryCode *string   `json:"countryCode"`
	Timezone    *string   `json:"timezone"`
	Org         *string   `json:"org"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
}

type TrackVisitorRequest struct {
	IP          string   `json:"ip"`
	City        *string  `json:"city"`
	Region      *string  `json:"region"`
	Country     *string  `json:"country"`
	CountryCode *string  `json:"countryCode"`
	Timezone    *string  `json:"timezone"`
	Org         *string  `json:"org"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	UserAgent   *string  `json:"userAgent"`
}

type CreateSubmissionRequest struct {
	Name        string   `json:"name" binding:"required"`
	Phone       string   `json:"phone" binding:"required"`
	IP          *string  `json:"ip"`
	City        *string  `json:"city"`
	Region      *string  `json:"region"`
	Country     *string  `json:"country"`
	CountryCode *string  `json:"countryCode"`
	Timezone    *string  `json:"timezone"`
	Org         *string  `json:"org"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// CountryCount is one row of a top-countries grouping. Country is never empty
// here: null/empty countries are collapsed into "Unknown" before counting.
type CountryCount struct {
	Country string `json:"country"`
	Count   uint64 `json:"count"`
}

// SubmissionPage is the paginated admin list of submissions.
type SubmissionPage struct {
	Data       []Submission `json:"data"`
	Pagination Pagination   `json:"pagination"`
}

type Pagination struct {
	Total      uint64 `json:"total"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"totalPages"`
}
