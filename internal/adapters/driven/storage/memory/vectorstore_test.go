package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomad-labs/nomad-cli/internal/core/domain"
)

func TestVectorCollection_QueryOrdersByDistance(t *testing.T) {
	c := NewVectorCollection(domain.CollectionFAQ)
	ctx := context.Background()

	require.NoError(t, c.Upsert(ctx, domain.Document{ID: "far", Text: "far"}, []float32{0, 1}))
	require.NoError(t, c.Upsert(ctx, domain.Document{ID: "near", Text: "near"}, []float32{1, 0}))
	require.NoError(t, c.Upsert(ctx, domain.Document{ID: "mid", Text: "mid"}, []float32{0.7, 0.7}))

	got, err := c.Query(ctx, []float32{1, 0}, 3)

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "near", got[0].Document.ID)
	assert.Equal(t, "mid", got[1].Document.ID)
	assert.Equal(t, "far", got[2].Document.ID)
}

func TestVectorCollection_QueryLimitsResults(t *testing.T) {
	c := NewVectorCollection(domain.CollectionFAQ)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, c.Upsert(ctx, domain.Document{ID: id}, []float32{1, 0}))
	}

	got, err := c.Query(ctx, []float32{1, 0}, 2)

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestVectorCollection_TieBreaksByID(t *testing.T) {
	c := NewVectorCollection(domain.CollectionFAQ)
	ctx := context.Background()

	require.NoError(t, c.Upsert(ctx, domain.Document{ID: "b"}, []float32{1, 0}))
	require.NoError(t, c.Upsert(ctx, domain.Document{ID: "a"}, []float32{1, 0}))

	got, err := c.Query(ctx, []float32{1, 0}, 2)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Document.ID)
	assert.Equal(t, "b", got[1].Document.ID)
}

func TestVectorCollection_UpsertOverwrites(t *testing.T) {
	c := NewVectorCollection(domain.CollectionTrips)
	ctx := context.Background()

	require.NoError(t, c.Upsert(ctx, domain.Document{ID: "trip_0", Text: "v1"}, []float32{1}))
	require.NoError(t, c.Upsert(ctx, domain.Document{ID: "trip_0", Text: "v2"}, []float32{1}))

	count, err := c.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestVectorCollection_RejectsEmptyID(t *testing.T) {
	c := NewVectorCollection(domain.CollectionFAQ)

	err := c.Upsert(context.Background(), domain.Document{}, []float32{1})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
