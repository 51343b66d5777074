package storage

import (
	"context"
	"fmt"
	"strings"

	"wedding-rsvp/internal/models"
)

// GroupParams carries the writable group fields.
type GroupParams struct {
	Name        string
	Description string
}

// ListGroups returns every group with its guests eagerly loaded.
func (s *Store) ListGroups(ctx context.Context) ([]models.GuestGroup, error) {
	var groups []models.GuestGroup
	if err := s.db.WithContext(ctx).Preload("Guests").Order("id").Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

// CreateGroup adds a group. The name is required and exact duplicates are
// refused.
func (s *Store) CreateGroup(ctx context.Context, p GroupParams) (*models.GuestGroup, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, &ValidationError{Field: "name"}
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.GuestGroup{}).Where("name = ?", p.Name).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check for duplicate group: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("group %q already exists: %w", p.Name, ErrConflict)
	}

	group := models.GuestGroup{
		Name:        p.Name,
		Description: strings.TrimSpace(p.Description),
	}
	if err := s.db.WithContext(ctx).Create(&group).Error; err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return &group, nil
}

// UpdateGroup rewrites the group's editable fields.
func (s *Store) UpdateGroup(ctx context.Context, id uint, p GroupParams) (*models.GuestGroup, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, &ValidationError{Field: "name"}
	}

	var group models.GuestGroup
	if err := s.db.WithContext(ctx).First(&group, id).Error; err != nil {
		return nil, notFound(err)
	}

	group.Name = p.Name
	group.Description = strings.TrimSpace(p.Description)
	if err := s.db.WithContext(ctx).Save(&group).Error; err != nil {
		return nil, fmt.Errorf("failed to update group: %w", err)
	}
	return &group, nil
}

// DeleteGroup removes a group. Deletion is refused while any guest still
// references it; those guests have to be reassigned or deleted first.
func (s *Store) DeleteGroup(ctx context.Context, id uint) error {
	var group models.GuestGroup
	if err := s.db.WithContext(ctx).First(&group, id).Error; err != nil {
		return notFound(err)
	}

	var members int64
	if err := s.db.WithContext(ctx).Model(&models.Guest{}).Where("group_id = ?", id).Count(&members).Error; err != nil {
		return fmt.Errorf("failed to count group members: %w", err)
	}
	if members > 0 {
		return fmt.Errorf("group %q still has %d guest(s): %w", group.Name, members, ErrConflict)
	}

	if err := s.db.WithContext(ctx).Delete(&group).Error; err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}

// GroupRoster returns the guests available for assignment (ungrouped) and
// the group's current members, for the assignment view.
func (s *Store) GroupRoster(ctx context.Context, groupID uint) (available, members []models.Guest, err error) {
	if err := s.db.WithContext(ctx).Where("group_id IS NULL").Order("name").Find(&available).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to list available guests: %w", err)
	}
	if err := s.db.WithContext(ctx).Where("group_id = ?", groupID).Order("name").Find(&members).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to list group members: %w", err)
	}
	return available, members, nil
}
