package storage

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"wedding-rsvp/internal/models"
)

// GuestParams carries the writable guest fields.
type GuestParams struct {
	Name    string
	Phone   string
	GroupID *uint
	Status  models.RSVPStatus
}

// RSVPSelection is one guest's attendance answer in a bulk confirmation.
type RSVPSelection struct {
	GuestID uint              `json:"guest_id"`
	Status  models.RSVPStatus `json:"status"`
}

// ListGuests returns every guest with its group eagerly loaded.
func (s *Store) ListGuests(ctx context.Context) ([]models.Guest, error) {
	var guests []models.Guest
	if err := s.db.WithContext(ctx).Preload("Group").Order("id").Find(&guests).Error; err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}
	return guests, nil
}

// GuestsByIDs returns the guests matching the given ids.
func (s *Store) GuestsByIDs(ctx context.Context, ids []uint) ([]models.Guest, error) {
	var guests []models.Guest
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&guests).Error; err != nil {
		return nil, fmt.Errorf("failed to load guests: %w", err)
	}
	return guests, nil
}

// GuestsWithPhone returns guests that have a phone number on record.
func (s *Store) GuestsWithPhone(ctx context.Context) ([]models.Guest, error) {
	var guests []models.Guest
	if err := s.db.WithContext(ctx).Where("phone <> ''").Order("name").Find(&guests).Error; err != nil {
		return nil, fmt.Errorf("failed to list guests with phone: %w", err)
	}
	return guests, nil
}

// SearchGuests does a case-insensitive prefix match on guest names. Prefixes
// shorter than 3 characters return an empty result without querying, so the
// search box cannot sweep the whole guest list.
func (s *Store) SearchGuests(ctx context.Context, prefix string) ([]models.Guest, error) {
	prefix = strings.TrimSpace(prefix)
	if utf8.RuneCountInString(prefix) < 3 {
		return []models.Guest{}, nil
	}

	var guests []models.Guest
	err := s.db.WithContext(ctx).
		Preload("Group").
		Where("LOWER(name) LIKE ?", strings.ToLower(prefix)+"%").
		Limit(10).
		Find(&guests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search guests: %w", err)
	}
	return guests, nil
}

// GuestGroupMembers returns the guest with the given id and everyone invited
// with them: the whole group when grouped, otherwise just the guest itself.
func (s *Store) GuestGroupMembers(ctx context.Context, guestID uint) (*models.Guest, []models.Guest, error) {
	var guest models.Guest
	if err := s.db.WithContext(ctx).First(&guest, guestID).Error; err != nil {
		return nil, nil, notFound(err)
	}

	if guest.GroupID == nil {
		return &guest, []models.Guest{guest}, nil
	}

	var members []models.Guest
	if err := s.db.WithContext(ctx).Where("group_id = ?", *guest.GroupID).Order("id").Find(&members).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load group members: %w", err)
	}
	return &guest, members, nil
}

// ConfirmRSVP applies a batch of attendance answers in a single transaction.
// Selections with an unrecognized status are dropped, not applied and not an
// error. Returns the number of rows actually updated; zero is the
// "nothing processed" outcome, not a failure.
func (s *Store) ConfirmRSVP(ctx context.Context, selections []RSVPSelection) (int, error) {
	valid := selections[:0:0]
	for _, sel := range selections {
		if sel.Status.Valid() {
			sel.Status = sel.Status.Canonical()
			valid = append(valid, sel)
		}
	}
	if len(valid) == 0 {
		return 0, nil
	}

	applied := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, sel := range valid {
			res := tx.Model(&models.Guest{}).Where("id = ?", sel.GuestID).
				Update("rsvp_status", sel.Status)
			if res.Error != nil {
				return res.Error
			}
			applied += int(res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to confirm rsvp: %w", err)
	}
	return applied, nil
}

// CreateGuest adds a guest. The name is required and exact duplicates are
// refused.
func (s *Store) CreateGuest(ctx context.Context, p GuestParams) (*models.Guest, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, &ValidationError{Field: "name"}
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Guest{}).Where("name = ?", p.Name).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check for duplicate guest: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("guest %q already exists: %w", p.Name, ErrConflict)
	}

	guest := models.Guest{
		Name:       p.Name,
		Phone:      strings.TrimSpace(p.Phone),
		GroupID:    p.GroupID,
		RSVPStatus: models.RSVPPending,
	}
	if err := s.db.WithContext(ctx).Create(&guest).Error; err != nil {
		return nil, fmt.Errorf("failed to create guest: %w", err)
	}
	return &guest, nil
}

// UpdateGuest rewrites the guest's editable fields.
func (s *Store) UpdateGuest(ctx context.Context, id uint, p GuestParams) (*models.Guest, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, &ValidationError{Field: "name"}
	}

	var guest models.Guest
	if err := s.db.WithContext(ctx).First(&guest, id).Error; err != nil {
		return nil, notFound(err)
	}

	guest.Name = p.Name
	guest.Phone = strings.TrimSpace(p.Phone)
	guest.GroupID = p.GroupID
	if p.Status.Valid() || p.Status == models.RSVPPending {
		guest.RSVPStatus = p.Status.Canonical()
	}

	if err := s.db.WithContext(ctx).Save(&guest).Error; err != nil {
		return nil, fmt.Errorf("failed to update guest: %w", err)
	}
	return &guest, nil
}

// DeleteGuest removes the guest with the given id.
func (s *Store) DeleteGuest(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Guest{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete guest: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AssignGuestGroup sets or clears (nil) the guest's group reference. Group
// existence is deliberately not checked; the admin surface only offers
// existing groups.
func (s *Store) AssignGuestGroup(ctx context.Context, guestID uint, groupID *uint) error {
	res := s.db.WithContext(ctx).Model(&models.Guest{}).Where("id = ?", guestID).
		Update("group_id", groupID)
	if res.Error != nil {
		return fmt.Errorf("failed to update guest group: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
