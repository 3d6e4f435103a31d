// api/handlers/event_handlers.go
package handlers

import (
	"context"
	"encoding/csv"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"takamul/api/models"
	"takamul/api/store"
)

// phonePattern is deliberately loose: digits plus the punctuation people
// actually type into a phone field.
var phonePattern = regexp.MustCompile(`^[0-9+\-() ]+$`)

type EventHandlers struct {
	EventStore *store.EventStore
}

func NewEventHandlers(s *store.EventStore) *EventHandlers {
	return &EventHandlers{EventStore: s}
}

// TrackVisitor records one landing-page load. The geo attributes come from
// the client's geolocation lookup and are stored as-is.
func (h *EventHandlers) TrackVisitor(c *gin.Context) {
	var req models.TrackVisitorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.IP == "" {
		req.IP = "Unknown"
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	visitor, err := h.EventStore.InsertVisitor(ctx, models.Visitor{
		IP:          req.IP,
		City:        req.City,
		Region:      req.Region,
		Country:     req.Country,
		CountryCode: req.CountryCode,
		Timezone:    req.Timezone,
		Org:         req.Org,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		UserAgent:   req.UserAgent,
	})
	if err != nil {
		log.Printf("Error inserting visitor: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to track visitor"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": visitor})
}

// CreateSubmission records a completed lead form.
func (h *EventHandlers) CreateSubmission(c *gin.Context) {
	var req models.CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if !phonePattern.MatchString(req.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	submission, err := h.EventStore.InsertSubmission(ctx, models.Submission{
		Name:        req.Name,
		Phone:       req.Phone,
		IP:          req.IP,
		City:        req.City,
		Region:      req.Region,
		Country:     req.Country,
		CountryCode: req.CountryCode,
		Timezone:    req.Timezone,
		Org:         req.Org,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		log.Printf("Error inserting submission: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create submission"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": submission})
}

// ListSubmissions serves the paginated admin table with optional name/phone
// search and country filter.
func (h *EventHandlers) ListSubmissions(c *gin.Context) {
	search := c.Query("search")
	country := c.Query("country")

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	result, err := h.EventStore.ListSubmissions(ctx, search, country, page, limit)
	if err != nil {
		log.Printf("Error listing submissions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ExportSubmissions streams the filtered submissions as CSV.
func (h *EventHandlers) ExportSubmissions(c *gin.Context) {
	search := c.Query("search")
	country := c.Query("country")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	subs, err := h.EventStore.FilteredSubmissions(ctx, search, country)
	if err != nil {
		log.Printf("Error exporting submissions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export submissions"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="submissions.csv"`)

	w := csv.NewWriter(c.Writer)
	record := []string{"name", "phone", "country", "city", "ip", "created_at"}
	if err := w.Write(record); err != nil {
		log.Printf("Error writing CSV header: %v", err)
		return
	}
	for _, sub := range subs {
		record = []string{
			sub.Name,
			sub.Phone,
			strOrEmpty(sub.Country),
			strOrEmpty(sub.City),
			strOrEmpty(sub.IP),
			sub.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			log.Printf("Error writing CSV row: %v", err)
			return
		}
	}
	w.Flush()
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
