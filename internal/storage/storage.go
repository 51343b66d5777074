package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"wedding-rsvp/internal/models"
)

var (
	// ErrNotFound is returned when the referenced row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when an operation is refused because it would
	// duplicate a name or orphan dependent rows.
	ErrConflict = errors.New("conflict")
)

// ValidationError reports a missing required field. Validation always runs
// before any write, so a ValidationError implies no state change.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// DefaultAdminPassword is the bootstrap credential for the seeded account.
// It is expected to be changed through the settings surface immediately.
const DefaultAdminPassword = "admin123"

type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

// Open connects to the database named by dsn. Postgres URLs get the postgres
// driver; anything else is treated as a sqlite path, matching the local
// fallback the service runs with when DATABASE_URL is unset.
func Open(dsn string, log zerolog.Logger) (*Store, error) {
	var dialector gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Store{
		db:  db,
		log: log.With().Str("component", "storage").Logger(),
	}, nil
}

// Migrate creates or updates the schema for all entities.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(
		&models.Admin{},
		&models.GuestGroup{},
		&models.Guest{},
		&models.GiftItem{},
		&models.VenueInfo{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Ping runs a trivial connectivity probe.
func (s *Store) Ping(ctx context.Context) error {
	var one int
	if err := s.db.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error; err != nil {
		return fmt.Errorf("connectivity probe failed: %w", err)
	}
	return nil
}

// SeedAdmin creates the default admin account if no admin rows exist yet.
// Called once at startup so concurrent first requests cannot race on the
// bootstrap.
func (s *Store) SeedAdmin(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Admin{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash default password: %w", err)
	}

	admin := models.Admin{Username: "admin", PasswordHash: string(hash)}
	if err := s.db.WithContext(ctx).Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}
	s.log.Info().Str("username", admin.Username).Msg("Default admin account created")
	return nil
}

// AdminByUsername returns the admin with the given username.
func (s *Store) AdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error; err != nil {
		return nil, notFound(err)
	}
	return &admin, nil
}

// AdminByID returns the admin with the given id.
func (s *Store) AdminByID(ctx context.Context, id uint) (*models.Admin, error) {
	var admin models.Admin
	if err := s.db.WithContext(ctx).First(&admin, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &admin, nil
}

// SetAdminPassword replaces the stored password hash for the admin.
func (s *Store) SetAdminPassword(ctx context.Context, id uint, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	res := s.db.WithContext(ctx).Model(&models.Admin{}).Where("id = ?", id).
		Update("password_hash", string(hash))
	if res.Error != nil {
		return fmt.Errorf("failed to update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats are the dashboard aggregate counts.
type Stats struct {
	TotalGuests     int64 `json:"total_guests"`
	ConfirmedGuests int64 `json:"confirmed"`
	PendingGuests   int64 `json:"pending"`
	DeclinedGuests  int64 `json:"declined"`
	TotalGroups     int64 `json:"total_groups"`
	ActiveGifts     int64 `json:"total_gifts"`
}

// GetStats computes the dashboard counters.
func (s *Store) GetStats(ctx context.Context) (*Stats, error) {
	db := s.db.WithContext(ctx)
	stats := &Stats{}

	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&stats.TotalGuests, db.Model(&models.Guest{})},
		{&stats.ConfirmedGuests, db.Model(&models.Guest{}).Where("rsvp_status = ?", models.RSVPConfirmed)},
		{&stats.PendingGuests, db.Model(&models.Guest{}).Where("rsvp_status = ?", models.RSVPPending)},
		{&stats.DeclinedGuests, db.Model(&models.Guest{}).Where("rsvp_status = ?", models.RSVPDeclined)},
		{&stats.TotalGroups, db.Model(&models.GuestGroup{})},
		{&stats.ActiveGifts, db.Model(&models.GiftItem{}).Where("active = ?", true)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dst).Error; err != nil {
			return nil, fmt.Errorf("failed to compute stats: %w", err)
		}
	}
	return stats, nil
}

// notFound maps gorm's record-not-found to the store's sentinel.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
