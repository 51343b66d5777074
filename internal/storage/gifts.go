package storage

import (
	"context"
	"fmt"
	"strings"

	"wedding-rsvp/internal/models"
)

// GiftParams carries the writable gift registry fields.
type GiftParams struct {
	Name        string
	Description string
	Price       string
	ImageURL    string
	PixKey      string
	PixLink     string
	CardLink    string
	Active      bool
}

// ListGifts returns every registry item, active or not, ordered by id.
func (s *Store) ListGifts(ctx context.Context) ([]models.GiftItem, error) {
	var gifts []models.GiftItem
	if err := s.db.WithContext(ctx).Order("id").Find(&gifts).Error; err != nil {
		return nil, fmt.Errorf("failed to list gifts: %w", err)
	}
	return gifts, nil
}

// ActiveGifts returns active items ordered newest first, capped at limit
// when limit is positive. The home page shows the top 3.
func (s *Store) ActiveGifts(ctx context.Context, limit int) ([]models.GiftItem, error) {
	q := s.db.WithContext(ctx).Where("active = ?", true).Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var gifts []models.GiftItem
	if err := q.Find(&gifts).Error; err != nil {
		return nil, fmt.Errorf("failed to list active gifts: %w", err)
	}
	return gifts, nil
}

// CreateGift adds a registry item; the name is required.
func (s *Store) CreateGift(ctx context.Context, p GiftParams) (*models.GiftItem, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, &ValidationError{Field: "name"}
	}

	gift := models.GiftItem{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		PixKey:      p.PixKey,
		PixLink:     p.PixLink,
		CardLink:    p.CardLink,
		Active:      true,
	}
	if err := s.db.WithContext(ctx).Create(&gift).Error; err != nil {
		return nil, fmt.Errorf("failed to create gift: %w", err)
	}
	return &gift, nil
}

// UpdateGift rewrites the item's editable fields, including the active flag.
func (s *Store) UpdateGift(ctx context.Context, id uint, p GiftParams) (*models.GiftItem, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, &ValidationError{Field: "name"}
	}

	var gift models.GiftItem
	if err := s.db.WithContext(ctx).First(&gift, id).Error; err != nil {
		return nil, notFound(err)
	}

	gift.Name = p.Name
	gift.Description = p.Description
	gift.Price = p.Price
	gift.ImageURL = p.ImageURL
	gift.PixKey = p.PixKey
	gift.PixLink = p.PixLink
	gift.CardLink = p.CardLink
	gift.Active = p.Active

	if err := s.db.WithContext(ctx).Save(&gift).Error; err != nil {
		return nil, fmt.Errorf("failed to update gift: %w", err)
	}
	return &gift, nil
}

// DeleteGift removes the registry item with the given id.
func (s *Store) DeleteGift(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.GiftItem{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete gift: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
