package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-rsvp/internal/models"
)

func TestCreateGroupDuplicateName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateGroup(ctx, GroupParams{Name: "Família Silva"})
	require.NoError(t, err)

	_, err = s.CreateGroup(ctx, GroupParams{Name: "Família Silva"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreateGroupRequiresName(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateGroup(context.Background(), GroupParams{Description: "sem nome"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
}

func TestDeleteGroupWithMembersRefused(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	group, err := s.CreateGroup(ctx, GroupParams{Name: "Família Santos"})
	require.NoError(t, err)
	guest, err := s.CreateGuest(ctx, GuestParams{Name: "Ana Santos", GroupID: &group.ID})
	require.NoError(t, err)

	err = s.DeleteGroup(ctx, group.ID)
	assert.ErrorIs(t, err, ErrConflict)

	// Both rows must be untouched.
	var gotGroup models.GuestGroup
	require.NoError(t, s.db.First(&gotGroup, group.ID).Error)
	var gotGuest models.Guest
	require.NoError(t, s.db.First(&gotGuest, guest.ID).Error)
	require.NotNil(t, gotGuest.GroupID)
	assert.Equal(t, group.ID, *gotGuest.GroupID)
}

func TestDeleteGroupAfterReassignment(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	group, err := s.CreateGroup(ctx, GroupParams{Name: "Amigos da Faculdade"})
	require.NoError(t, err)
	guest, err := s.CreateGuest(ctx, GuestParams{Name: "Marina Costa", GroupID: &group.ID})
	require.NoError(t, err)

	require.NoError(t, s.AssignGuestGroup(ctx, guest.ID, nil))
	require.NoError(t, s.DeleteGroup(ctx, group.ID))

	assert.ErrorIs(t, s.DeleteGroup(ctx, group.ID), ErrNotFound)
}

func TestUpdateGroup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	group, err := s.CreateGroup(ctx, GroupParams{Name: "Família Silva"})
	require.NoError(t, err)

	updated, err := s.UpdateGroup(ctx, group.ID, GroupParams{Name: "Família Oliveira", Description: "lado da noiva"})
	require.NoError(t, err)
	assert.Equal(t, "Família Oliveira", updated.Name)
	assert.Equal(t, "lado da noiva", updated.Description)

	_, err = s.UpdateGroup(ctx, 9999, GroupParams{Name: "Ninguém"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGroupRoster(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	group, err := s.CreateGroup(ctx, GroupParams{Name: "Família Silva"})
	require.NoError(t, err)
	other, err := s.CreateGroup(ctx, GroupParams{Name: "Família Santos"})
	require.NoError(t, err)

	_, err = s.CreateGuest(ctx, GuestParams{Name: "João Silva", GroupID: &group.ID})
	require.NoError(t, err)
	_, err = s.CreateGuest(ctx, GuestParams{Name: "Ana Santos", GroupID: &other.ID})
	require.NoError(t, err)
	_, err = s.CreateGuest(ctx, GuestParams{Name: "Roberto Lima"})
	require.NoError(t, err)

	available, members, err := s.GroupRoster(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "Roberto Lima", available[0].Name)
	require.Len(t, members, 1)
	assert.Equal(t, "João Silva", members[0].Name)
}

func TestListGroupsPreloadsGuests(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	group, err := s.CreateGroup(ctx, GroupParams{Name: "Família Silva"})
	require.NoError(t, err)
	_, err = s.CreateGuest(ctx, GuestParams{Name: "João Silva", GroupID: &group.ID})
	require.NoError(t, err)

	groups, err := s.ListGroups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Guests, 1)
	assert.Equal(t, "João Silva", groups[0].Guests[0].Name)
}
