package impl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationService_ListHierarchy(t *testing.T) {
	env := newTestEnv(t)
	srv := NewLocationService(env.repos.NewLocationRepository())
	ctx := context.Background()

	provinces, err := srv.ListProvinces(ctx)
	require.NoError(t, err)
	require.Len(t, provinces, 2)
	assert.Equal(t, "Kigali City", provinces[0].Name)

	districts, err := srv.ListDistricts(ctx, "northern")
	require.NoError(t, err)
	require.Len(t, districts, 1)
	assert.Equal(t, "musanze", districts[0].ID)

	sectors, err := srv.ListSectors(ctx, "gasabo")
	require.NoError(t, err)
	require.Len(t, sectors, 1)
	assert.Equal(t, "remera", sectors[0].ID)

	none, err := srv.ListDistricts(ctx, "atlantis")
	require.NoError(t, err)
	assert.Empty(t, none)
}
