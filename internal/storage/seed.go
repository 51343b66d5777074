package storage

import (
	"context"
	"fmt"
	"time"

	"wedding-rsvp/internal/models"
)

// SeedDemo loads sample content for local development: a venue, a small gift
// registry, guest groups and guests. Each table is only seeded while empty,
// so rerunning is harmless.
func (s *Store) SeedDemo(ctx context.Context) error {
	if err := s.seedDemoVenue(ctx); err != nil {
		return err
	}
	if err := s.seedDemoGifts(ctx); err != nil {
		return err
	}
	return s.seedDemoGuests(ctx)
}

func (s *Store) seedDemoVenue(ctx context.Context) error {
	venue, err := s.GetVenue(ctx)
	if err != nil {
		return err
	}
	if venue != nil {
		return nil
	}

	dt := time.Date(2025, time.August, 15, 16, 0, 0, 0, time.UTC)
	d := dt.Truncate(24 * time.Hour)
	demo := models.VenueInfo{
		Name:          "Igreja São José",
		Address:       "Rua das Flores, 123 - Centro, São Paulo - SP",
		MapLink:       "https://maps.google.com/?q=Igreja+Sao+Jose+Sao+Paulo",
		Description:   "Cerimônia religiosa seguida de recepção no salão",
		EventDate:     &d,
		EventTime:     dt.Format(timeLayout),
		EventDateTime: &dt,
	}
	if err := s.db.WithContext(ctx).Create(&demo).Error; err != nil {
		return fmt.Errorf("failed to seed venue: %w", err)
	}
	s.log.Info().Msg("Seeded demo venue")
	return nil
}

func (s *Store) seedDemoGifts(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.GiftItem{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count gifts: %w", err)
	}
	if count > 0 {
		return nil
	}

	gifts := []models.GiftItem{
		{Name: "Jogo de Panelas", Description: "Conjunto com 5 panelas antiaderentes", Price: "R$ 299,00", Active: true},
		{Name: "Liquidificador", Description: "Liquidificador de alta potência", Price: "R$ 189,00", Active: true},
		{Name: "Jogo de Cama", Description: "Jogo de cama casal 100% algodão", Price: "R$ 149,00", Active: true},
	}
	if err := s.db.WithContext(ctx).Create(&gifts).Error; err != nil {
		return fmt.Errorf("failed to seed gifts: %w", err)
	}
	s.log.Info().Int("count", len(gifts)).Msg("Seeded demo gifts")
	return nil
}

func (s *Store) seedDemoGuests(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.GuestGroup{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count groups: %w", err)
	}
	if count > 0 {
		return nil
	}

	groups := []models.GuestGroup{
		{Name: "Família Silva", Description: "Parentes do lado da noiva"},
		{Name: "Família Santos", Description: "Parentes do lado do noivo"},
		{Name: "Amigos da Faculdade", Description: "Turma da universidade"},
	}
	if err := s.db.WithContext(ctx).Create(&groups).Error; err != nil {
		return fmt.Errorf("failed to seed groups: %w", err)
	}

	var guestCount int64
	if err := s.db.WithContext(ctx).Model(&models.Guest{}).Count(&guestCount).Error; err != nil {
		return fmt.Errorf("failed to count guests: %w", err)
	}
	if guestCount > 0 {
		return nil
	}

	guests := []models.Guest{
		{Name: "João Silva", Phone: "+5511999999999", GroupID: &groups[0].ID},
		{Name: "Maria Silva", Phone: "+5511888888888", GroupID: &groups[0].ID},
		{Name: "Ana Santos", Phone: "+5511666666666", GroupID: &groups[1].ID},
		{Name: "Carlos Santos", Phone: "+5511555555555", GroupID: &groups[1].ID},
		{Name: "Rafael Oliveira", Phone: "+5511333333333", GroupID: &groups[2].ID},
		{Name: "Marina Costa", Phone: "+5511222222222", GroupID: &groups[2].ID},
		{Name: "Roberto Lima", Phone: "+5511000000000"},
		{Name: "Fernanda Almeida"},
	}
	for i := range guests {
		guests[i].RSVPStatus = models.RSVPPending
	}
	if err := s.db.WithContext(ctx).Create(&guests).Error; err != nil {
		return fmt.Errorf("failed to seed guests: %w", err)
	}
	s.log.Info().Int("groups", len(groups)).Int("guests", len(guests)).Msg("Seeded demo guests")
	return nil
}
