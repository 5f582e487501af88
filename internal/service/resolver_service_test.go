package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"feedback-be/internal/domain"
)

func TestResolveByLink(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves an active workshop", func(t *testing.T) {
		repo := newFakeWorkshopRepo(activeWorkshop())
		svc := NewResolverService(repo, setupTestRedis(t), zap.NewNop())

		workshop, err := svc.ResolveByLink(ctx, "AbCdEfGh12345678")
		require.NoError(t, err)
		assert.Equal(t, "ws-1", workshop.ID)
		assert.Equal(t, "Intro to Robotics", workshop.WorkshopName)
	})

	t.Run("unknown link", func(t *testing.T) {
		repo := newFakeWorkshopRepo()
		svc := NewResolverService(repo, setupTestRedis(t), zap.NewNop())

		_, err := svc.ResolveByLink(ctx, "NoSuchLink000000")
		assert.ErrorIs(t, err, domain.ErrWorkshopNotFound)
	})

	t.Run("empty link", func(t *testing.T) {
		repo := newFakeWorkshopRepo(activeWorkshop())
		svc := NewResolverService(repo, setupTestRedis(t), zap.NewNop())

		_, err := svc.ResolveByLink(ctx, "")
		assert.ErrorIs(t, err, domain.ErrWorkshopNotFound)
		assert.Zero(t, repo.getByLinkCalls)
	})

	t.Run("inactive workshop resolves as inactive", func(t *testing.T) {
		ws := activeWorkshop()
		ws.IsActive = false
		svc := NewResolverService(newFakeWorkshopRepo(ws), setupTestRedis(t), zap.NewNop())

		_, err := svc.ResolveByLink(ctx, ws.PublicLink)
		assert.ErrorIs(t, err, domain.ErrWorkshopInactive)
	})

	t.Run("repeat resolution is served from cache", func(t *testing.T) {
		repo := newFakeWorkshopRepo(activeWorkshop())
		svc := NewResolverService(repo, setupTestRedis(t), zap.NewNop())

		first, err := svc.ResolveByLink(ctx, "AbCdEfGh12345678")
		require.NoError(t, err)

		second, err := svc.ResolveByLink(ctx, "AbCdEfGh12345678")
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 1, repo.getByLinkCalls)
	})
}

func TestGetActiveWorkshop(t *testing.T) {
	ctx := context.Background()

	t.Run("bypasses the link cache", func(t *testing.T) {
		ws := activeWorkshop()
		repo := newFakeWorkshopRepo(ws)
		svc := NewResolverService(repo, setupTestRedis(t), zap.NewNop())

		// Populate the cache, then deactivate behind its back.
		_, err := svc.ResolveByLink(ctx, ws.PublicLink)
		require.NoError(t, err)
		require.NoError(t, repo.SetActive(ctx, ws.ID, false))

		_, err = svc.GetActiveWorkshop(ctx, ws.ID)
		assert.ErrorIs(t, err, domain.ErrWorkshopInactive)
	})

	t.Run("unknown id", func(t *testing.T) {
		svc := NewResolverService(newFakeWorkshopRepo(), setupTestRedis(t), zap.NewNop())

		_, err := svc.GetActiveWorkshop(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrWorkshopNotFound)
	})
}
