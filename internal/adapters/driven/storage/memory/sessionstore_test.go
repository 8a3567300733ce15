package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomad-labs/nomad-cli/internal/core/domain"
)

func TestSessionStore_UpsertAndReadAll(t *testing.T) {
	s := NewSessionStore()
	ctx := context.Background()

	session := domain.Session{ConversationID: "conv-1", Header: "hi", CreatedAt: time.Now()}
	require.NoError(t, s.Upsert(ctx, session))

	got, err := s.ReadAll(ctx)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "conv-1", got[0].ConversationID)
}

func TestSessionStore_UpsertReplaces(t *testing.T) {
	s := NewSessionStore()
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, domain.Session{ConversationID: "conv-1", Header: "old"}))
	require.NoError(t, s.Upsert(ctx, domain.Session{ConversationID: "conv-1", Header: "new"}))

	got, err := s.ReadAll(ctx)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].Header)
}

func TestSessionStore_RejectsMissingConversationID(t *testing.T) {
	s := NewSessionStore()

	err := s.Upsert(context.Background(), domain.Session{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
