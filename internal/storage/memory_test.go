package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealdash/dealdash/internal/crm"
)

func TestMemorySeedData(t *testing.T) {
	m := NewMemory(true)
	ctx := t.Context()

	deals, err := m.Deals(ctx)
	require.NoError(t, err)
	require.Len(t, deals, 1)
	assert.Equal(t, "TechFlow Industries", deals[0].CompanyName)

	parties, err := m.BuyingParties(ctx)
	require.NoError(t, err)
	require.Len(t, parties, 1)

	matches, err := m.DealBuyerMatches(ctx, deals[0].ID)
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	activities, err := m.Activities(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, activities)
}

func TestMemoryDealLifecycle(t *testing.T) {
	m := NewMemory(false)
	ctx := t.Context()

	d, err := m.CreateDeal(ctx, crm.DealCreate{
		CompanyName: "Lifecycle Co", Revenue: "100", Stage: "prospect", Owner: "o",
	})
	require.NoError(t, err)
	require.NotEmpty(t, d.ID)
	assert.Equal(t, "medium", d.Priority)
	assert.Equal(t, 85, d.HealthScore)

	stage := "due_diligence"
	updated, err := m.UpdateDeal(ctx, d.ID, crm.DealUpdate{Stage: &stage})
	require.NoError(t, err)
	assert.Equal(t, "due_diligence", updated.Stage)
	assert.Equal(t, "Lifecycle Co", updated.CompanyName)

	noted, err := m.UpdateDealNotes(ctx, d.ID, "watch the earnout")
	require.NoError(t, err)
	require.NotNil(t, noted.Notes)
	assert.Equal(t, "watch the earnout", *noted.Notes)

	require.NoError(t, m.DeleteDeal(ctx, d.ID))
	_, err = m.Deal(ctx, d.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, m.DeleteDeal(ctx, d.ID), ErrNotFound)
}

func TestMemoryActivityOrder(t *testing.T) {
	m := NewMemory(false)
	ctx := t.Context()

	first, err := m.CreateActivity(ctx, crm.ActivityCreate{Type: "task", Title: "first"})
	require.NoError(t, err)
	second, err := m.CreateActivity(ctx, crm.ActivityCreate{
		Type: "task", Title: "second", ParentActivityID: &first.ID,
	})
	require.NoError(t, err)
	third, err := m.CreateActivity(ctx, crm.ActivityCreate{Type: "call", Title: "third"})
	require.NoError(t, err)

	// Lists come back in creation order so traversal output is stable.
	all, err := m.Activities(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{first.ID, second.ID, third.ID},
		[]string{all[0].ID, all[1].ID, all[2].ID})
}

func TestMemoryActivitiesByEntity(t *testing.T) {
	m := NewMemory(false)
	ctx := t.Context()

	d, err := m.CreateDeal(ctx, crm.DealCreate{
		CompanyName: "Scoped", Revenue: "1", Stage: "prospect", Owner: "o",
	})
	require.NoError(t, err)
	p, err := m.CreateBuyingParty(ctx, crm.BuyingPartyCreate{Name: "Scoped Buyer"})
	require.NoError(t, err)

	_, err = m.CreateActivity(ctx, crm.ActivityCreate{Type: "task", Title: "deal task", DealID: &d.ID})
	require.NoError(t, err)
	_, err = m.CreateActivity(ctx, crm.ActivityCreate{Type: "task", Title: "party task", BuyingPartyID: &p.ID})
	require.NoError(t, err)

	forDeal, err := m.ActivitiesByEntity(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, forDeal, 1)
	assert.Equal(t, "deal task", forDeal[0].Title)

	forParty, err := m.ActivitiesByEntity(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, forParty, 1)
	assert.Equal(t, "party task", forParty[0].Title)
}

func TestMemoryUsers(t *testing.T) {
	m := NewMemory(false)
	ctx := t.Context()

	u, err := m.CreateUser(ctx, "a@b.co", "hash")
	require.NoError(t, err)

	_, err = m.CreateUser(ctx, "a@b.co", "other")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	byEmail, err := m.UserByEmail(ctx, "a@b.co")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	token := "reset-token"
	expires := time.Now().Add(time.Hour)
	require.NoError(t, m.SetResetToken(ctx, u.ID, &token, &expires))

	byToken, err := m.UserByResetToken(ctx, "reset-token")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byToken.ID)

	require.NoError(t, m.UpdateUserPassword(ctx, u.ID, "newhash"))
	fresh, err := m.UserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "newhash", fresh.PasswordHash)
	assert.Nil(t, fresh.ResetToken, "reset token should clear on password change")

	_, err = m.UserByResetToken(ctx, "reset-token")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryNDAQueryIsEmpty(t *testing.T) {
	// The in-memory backend carries no agreements table; the NDA board is
	// empty rather than an error, matching the API's empty-not-error posture.
	m := NewMemory(true)
	deals, err := m.Deals(t.Context())
	require.NoError(t, err)

	parties, err := m.BuyersWithSignedNDA(t.Context(), deals[0].ID)
	require.NoError(t, err)
	assert.Empty(t, parties)
}
