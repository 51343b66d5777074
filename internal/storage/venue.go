package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"wedding-rsvp/internal/models"
)

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04"
	datetimeLayout = "2006-01-02 15:04"
)

// VenueParams carries the writable venue fields. EventDate and EventTime are
// the raw form strings; parsing happens inside the upsert so a bad value can
// warn without losing the rest of the update.
type VenueParams struct {
	Name        string
	Address     string
	MapLink     string
	Description string
	EventDate   string
	EventTime   string
}

// GetVenue returns the singleton venue row, or nil when none has been
// configured yet.
func (s *Store) GetVenue(ctx context.Context) (*models.VenueInfo, error) {
	var venue models.VenueInfo
	err := s.db.WithContext(ctx).Order("id").First(&venue).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load venue: %w", err)
	}
	return &venue, nil
}

// UpsertVenue creates the venue row if absent, otherwise mutates the single
// existing row in place. Date and time supplied together are parsed into the
// combined event datetime and the split fields are derived from it; a date
// alone updates only the date. Unparseable values produce a warning and
// leave the previous value untouched.
func (s *Store) UpsertVenue(ctx context.Context, p VenueParams) (*models.VenueInfo, []string, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, nil, &ValidationError{Field: "name"}
	}

	venue, err := s.GetVenue(ctx)
	if err != nil {
		return nil, nil, err
	}
	if venue == nil {
		venue = &models.VenueInfo{}
	}

	venue.Name = p.Name
	venue.Address = strings.TrimSpace(p.Address)
	venue.MapLink = strings.TrimSpace(p.MapLink)
	venue.Description = strings.TrimSpace(p.Description)

	var warnings []string
	switch {
	case p.EventDate != "" && p.EventTime != "":
		dt, err := time.Parse(datetimeLayout, p.EventDate+" "+p.EventTime)
		if err != nil {
			warnings = append(warnings, "invalid date or time format")
			break
		}
		d := dt.Truncate(24 * time.Hour)
		venue.EventDateTime = &dt
		venue.EventDate = &d
		venue.EventTime = dt.Format(timeLayout)
	case p.EventDate != "":
		d, err := time.Parse(dateLayout, p.EventDate)
		if err != nil {
			warnings = append(warnings, "invalid date format")
			break
		}
		venue.EventDate = &d
	}

	if err := s.db.WithContext(ctx).Save(venue).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to save venue: %w", err)
	}
	return venue, warnings, nil
}

// VenueFreshness is how long a cached venue snapshot is served before the
// next read goes back to the database.
const VenueFreshness = 300 * time.Second

// VenueCache memoizes the singleton venue row for VenueFreshness. It is
// deliberately unlocked: concurrent requests can at worst observe a stale
// snapshot bounded by the freshness window, which is fine for read-mostly
// display data. Writers must call Invalidate.
type VenueCache struct {
	fetch func(context.Context) (*models.VenueInfo, error)
	ttl   time.Duration
	now   func() time.Time

	venue     *models.VenueInfo
	fetchedAt time.Time
}

// NewVenueCache builds a cache over the given fetch function.
func NewVenueCache(fetch func(context.Context) (*models.VenueInfo, error)) *VenueCache {
	return &VenueCache{
		fetch: fetch,
		ttl:   VenueFreshness,
		now:   time.Now,
	}
}

// Get returns the cached snapshot while it is fresh, refetching otherwise.
func (c *VenueCache) Get(ctx context.Context) (*models.VenueInfo, error) {
	if !c.fetchedAt.IsZero() && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.venue, nil
	}

	venue, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}
	c.venue = venue
	c.fetchedAt = c.now()
	return venue, nil
}

// Invalidate drops the snapshot unconditionally. Every venue write calls
// this.
func (c *VenueCache) Invalidate() {
	c.venue = nil
	c.fetchedAt = time.Time{}
}
