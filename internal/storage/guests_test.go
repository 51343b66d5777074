package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-rsvp/internal/models"
)

func TestSearchGuestsShortPrefix(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateGuest(ctx, GuestParams{Name: "Ana Silva"})
	require.NoError(t, err)

	for _, prefix := range []string{"", "A", "An", "  An  "} {
		matches, err := s.SearchGuests(ctx, prefix)
		require.NoError(t, err)
		assert.Empty(t, matches, "prefix %q", prefix)
	}
}

func TestSearchGuestsShortPrefixCountsCharactersNotBytes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateGuest(ctx, GuestParams{Name: "Zé Roberto"})
	require.NoError(t, err)

	// Two characters, three bytes: still below the minimum.
	matches, err := s.SearchGuests(ctx, "Zé")
	require.NoError(t, err)
	assert.Empty(t, matches)

	matches, err = s.SearchGuests(ctx, "Zé R")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Zé Roberto", matches[0].Name)
}

func TestSearchGuestsCaseInsensitivePrefix(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	group, err := s.CreateGroup(ctx, GroupParams{Name: "Família Silva"})
	require.NoError(t, err)

	_, err = s.CreateGuest(ctx, GuestParams{Name: "Ana Silva", GroupID: &group.ID})
	require.NoError(t, err)
	_, err = s.CreateGuest(ctx, GuestParams{Name: "ana maria"})
	require.NoError(t, err)
	_, err = s.CreateGuest(ctx, GuestParams{Name: "Bruno Ferreira"})
	require.NoError(t, err)

	matches, err := s.SearchGuests(ctx, "ANA")
	require.NoError(t, err)
	require.Len(t, matches, 2)

	byName := map[string]models.Guest{}
	for _, m := range matches {
		byName[m.Name] = m
	}
	require.Contains(t, byName, "Ana Silva")
	require.NotNil(t, byName["Ana Silva"].Group)
	assert.Equal(t, "Família Silva", byName["Ana Silva"].Group.Name)
	assert.Nil(t, byName["ana maria"].Group)
}

func TestSearchGuestsLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		_, err := s.CreateGuest(ctx, GuestParams{Name: "Convidado " + string(rune('A'+i))})
		require.NoError(t, err)
	}

	matches, err := s.SearchGuests(ctx, "Convidado")
	require.NoError(t, err)
	assert.Len(t, matches, 10)
}

func TestGuestGroupMembersNotFound(t *testing.T) {
	s := newTestStore(t)

	_, _, err := s.GuestGroupMembers(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGuestGroupMembersUngrouped(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	guest, err := s.CreateGuest(ctx, GuestParams{Name: "Roberto Lima"})
	require.NoError(t, err)

	selected, members, err := s.GuestGroupMembers(ctx, guest.ID)
	require.NoError(t, err)
	assert.Equal(t, "Roberto Lima", selected.Name)
	require.Len(t, members, 1)
	assert.Equal(t, guest.ID, members[0].ID)
}

func TestGuestGroupMembersWholeGroup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	group, err := s.CreateGroup(ctx, GroupParams{Name: "Família Santos"})
	require.NoError(t, err)

	first, err := s.CreateGuest(ctx, GuestParams{Name: "Ana Santos", GroupID: &group.ID})
	require.NoError(t, err)
	_, err = s.CreateGuest(ctx, GuestParams{Name: "Carlos Santos", GroupID: &group.ID})
	require.NoError(t, err)
	_, err = s.CreateGuest(ctx, GuestParams{Name: "Fernanda Almeida"})
	require.NoError(t, err)

	_, members, err := s.GuestGroupMembers(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	for _, m := range members {
		assert.Equal(t, group.ID, *m.GroupID)
	}
}

func TestConfirmRSVPDropsUnknownStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	x, err := s.CreateGuest(ctx, GuestParams{Name: "Ana Silva"})
	require.NoError(t, err)
	y, err := s.CreateGuest(ctx, GuestParams{Name: "Bruno Ferreira"})
	require.NoError(t, err)

	applied, err := s.ConfirmRSVP(ctx, []RSVPSelection{
		{GuestID: x.ID, Status: models.RSVPConfirmed},
		{GuestID: y.ID, Status: models.RSVPStatus("bogus")},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, applied)

	var got models.Guest
	require.NoError(t, s.db.First(&got, x.ID).Error)
	assert.Equal(t, models.RSVPConfirmed, got.RSVPStatus)

	require.NoError(t, s.db.First(&got, y.ID).Error)
	assert.Equal(t, models.RSVPPending, got.RSVPStatus)
}

func TestConfirmRSVPAcceptsLegacyStatusLiterals(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	x, err := s.CreateGuest(ctx, GuestParams{Name: "Ana Silva"})
	require.NoError(t, err)
	y, err := s.CreateGuest(ctx, GuestParams{Name: "Bruno Ferreira"})
	require.NoError(t, err)

	applied, err := s.ConfirmRSVP(ctx, []RSVPSelection{
		{GuestID: x.ID, Status: models.RSVPStatus("confirmado")},
		{GuestID: y.ID, Status: models.RSVPStatus("bogus")},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, applied)

	// The legacy spelling lands as the canonical value, not as raw wire text.
	var got models.Guest
	require.NoError(t, s.db.First(&got, x.ID).Error)
	assert.Equal(t, models.RSVPConfirmed, got.RSVPStatus)

	applied, err = s.ConfirmRSVP(ctx, []RSVPSelection{
		{GuestID: y.ID, Status: models.RSVPStatus("nao_confirmado")},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, applied)
	require.NoError(t, s.db.First(&got, y.ID).Error)
	assert.Equal(t, models.RSVPDeclined, got.RSVPStatus)
}

func TestConfirmRSVPNothingProcessed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	guest, err := s.CreateGuest(ctx, GuestParams{Name: "Ana Silva"})
	require.NoError(t, err)

	applied, err := s.ConfirmRSVP(ctx, []RSVPSelection{
		{GuestID: guest.ID, Status: models.RSVPStatus("maybe")},
		{GuestID: guest.ID, Status: models.RSVPPending},
	})
	require.NoError(t, err)
	assert.Zero(t, applied)
}

func TestCreateGuestDuplicateName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateGuest(ctx, GuestParams{Name: "Ana Silva"})
	require.NoError(t, err)

	_, err = s.CreateGuest(ctx, GuestParams{Name: "Ana Silva"})
	assert.ErrorIs(t, err, ErrConflict)

	var count int64
	require.NoError(t, s.db.Model(&models.Guest{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateGuestRequiresName(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateGuest(context.Background(), GuestParams{Name: "   "})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
}

func TestUpdateGuest(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	guest, err := s.CreateGuest(ctx, GuestParams{Name: "Ana Silva"})
	require.NoError(t, err)

	updated, err := s.UpdateGuest(ctx, guest.ID, GuestParams{
		Name:   "Ana Oliveira",
		Phone:  "+5511999999999",
		Status: models.RSVPConfirmed,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Oliveira", updated.Name)
	assert.Equal(t, models.RSVPConfirmed, updated.RSVPStatus)

	_, err = s.UpdateGuest(ctx, 9999, GuestParams{Name: "Nobody"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteGuest(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	guest, err := s.CreateGuest(ctx, GuestParams{Name: "Ana Silva"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteGuest(ctx, guest.ID))
	assert.ErrorIs(t, s.DeleteGuest(ctx, guest.ID), ErrNotFound)
}

func TestAssignGuestGroup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	group, err := s.CreateGroup(ctx, GroupParams{Name: "Amigos da Faculdade"})
	require.NoError(t, err)
	guest, err := s.CreateGuest(ctx, GuestParams{Name: "Rafael Oliveira"})
	require.NoError(t, err)

	require.NoError(t, s.AssignGuestGroup(ctx, guest.ID, &group.ID))

	var got models.Guest
	require.NoError(t, s.db.First(&got, guest.ID).Error)
	require.NotNil(t, got.GroupID)
	assert.Equal(t, group.ID, *got.GroupID)

	require.NoError(t, s.AssignGuestGroup(ctx, guest.ID, nil))
	require.NoError(t, s.db.First(&got, guest.ID).Error)
	assert.Nil(t, got.GroupID)

	assert.ErrorIs(t, s.AssignGuestGroup(ctx, 9999, &group.ID), ErrNotFound)
}
