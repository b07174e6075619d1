package services

import (
	"context"
	"testing"

	"memberhub/internal/adapters/persistence/repositories"
	"memberhub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZoneListIncludesMemberCounts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewZoneService(repositories.NewZoneRepository(db))

	newTestMember(t, db, "MEM000120", "Ada Burr", "ada@example.com")
	newTestMember(t, db, "MEM000121", "Bea Cruz", "bea@example.com")

	inactive := newTestMember(t, db, "MEM000122", "Cyd Dent", "cyd@example.com")
	inactive.IsActive = false
	require.NoError(t, db.Save(inactive).Error)

	zones, err := svc.List(context.Background())
	require.NoError(t, err)

	require.Len(t, zones, 1)
	assert.Equal(t, "Central", zones[0].Name)
	assert.Equal(t, int64(2), zones[0].MemberCount)
}

func TestZoneCreateAndUpdate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewZoneService(repositories.NewZoneRepository(db))

	zone, err := svc.Create(context.Background(), &ZoneInput{Name: "East", Description: "East side"})
	require.NoError(t, err)
	require.NotZero(t, zone.ID)

	updated, err := svc.Update(context.Background(), zone.ID, &ZoneInput{Name: "East Bay", Description: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "East Bay", updated.Name)

	_, err = svc.Update(context.Background(), 9999, &ZoneInput{Name: "Ghost"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
