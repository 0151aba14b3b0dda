package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/bcnelson/netinventory/internal/domain"
	"github.com/bcnelson/netinventory/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	store := New()
	ctx := context.Background()

	mac := "AA:BB:CC:DD:EE:FF"
	id, err := store.CreateEquipment(ctx, &domain.EquipmentInput{Name: "Sw1", Type: "Switch", IP: "10.0.0.1", MAC: &mac})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	// Mutating the caller's value must not leak into the store.
	mac = "00:00:00:00:00:00"

	eq, err := store.GetEquipment(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, eq.MAC)
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", *eq.MAC)
	assert.False(t, eq.DateAdded.IsZero())

	*eq.MAC = "changed"
	again, err := store.GetEquipment(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", *again.MAC)
}

func TestStoreNotFoundAndDelete(t *testing.T) {
	store := New()
	ctx := context.Background()

	_, err := store.GetEquipment(ctx, 1)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	err = store.UpdateEquipment(ctx, 1, &domain.EquipmentInput{Name: "a", Type: "b", IP: "10.0.0.1"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	assert.NoError(t, store.DeleteEquipment(ctx, 1))
}

func TestStoreListFilteredAfterSeed(t *testing.T) {
	store := New()
	ctx := context.Background()

	n, err := storage.SeedIfEmpty(ctx, store, storage.SampleEquipment())
	require.NoError(t, err)
	require.Equal(t, 10, n)

	loc := "Salle 1"
	items, err := store.ListEquipment(ctx, domain.EquipmentFilter{Location: &loc})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Switch A", items[0].Name)

	all, err := store.ListEquipment(ctx, domain.EquipmentFilter{})
	require.NoError(t, err)
	require.Len(t, all, 10)
	assert.Equal(t, int64(1), all[0].ID)
	assert.Equal(t, int64(10), all[9].ID)
}
