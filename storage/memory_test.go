package storage

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"location-consent/types"
)

func TestMemoryStatusRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStatusRepository()

	token, err := repo.Create(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	status, err := repo.Get(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, types.StatusPending, status)

	other, err := repo.Create(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestMemoryStatusRepository_GetUnknown(t *testing.T) {
	repo := NewMemoryStatusRepository()

	_, err := repo.Get(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStatusRepository_Transition(t *testing.T) {
	ctx := context.Background()

	t.Run("pending to completed", func(t *testing.T) {
		repo := NewMemoryStatusRepository()
		token, err := repo.Create(ctx)
		require.NoError(t, err)

		loc := &types.Coordinates{Lat: 37.77, Lon: -122.41}
		applied, current, err := repo.Transition(ctx, token, types.StatusCompleted, loc, "")
		require.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, types.StatusCompleted, current)
	})

	t.Run("terminal state is sticky", func(t *testing.T) {
		repo := NewMemoryStatusRepository()
		token, err := repo.Create(ctx)
		require.NoError(t, err)

		applied, _, err := repo.Transition(ctx, token, types.StatusDenied, nil, "Permission denied.")
		require.NoError(t, err)
		require.True(t, applied)

		// Second transition is an idempotent no-op, not an error.
		applied, current, err := repo.Transition(ctx, token, types.StatusCompleted, &types.Coordinates{Lat: 1, Lon: 2}, "")
		require.NoError(t, err)
		assert.False(t, applied)
		assert.Equal(t, types.StatusDenied, current)
	})

	t.Run("unknown token", func(t *testing.T) {
		repo := NewMemoryStatusRepository()
		_, _, err := repo.Transition(ctx, "no-such-token", types.StatusDenied, nil, "x")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemoryStatusRepository_ConcurrentTransitions(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStatusRepository()

	token, err := repo.Create(ctx)
	require.NoError(t, err)

	const workers = 50
	var wg sync.WaitGroup
	winners := make(chan types.Status, workers)
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		status := types.StatusCompleted
		var loc *types.Coordinates
		if i%2 == 0 {
			loc = &types.Coordinates{Lat: float64(i), Lon: float64(-i)}
		} else {
			status = types.StatusDenied
		}

		wg.Add(1)
		go func(status types.Status, loc *types.Coordinates) {
			defer wg.Done()
			applied, _, err := repo.Transition(ctx, token, status, loc, "denied")
			if err != nil {
				errs <- err
				return
			}
			if applied {
				winners <- status
			}
		}(status, loc)
	}
	wg.Wait()
	close(winners)
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent transition failed: %v", err)
	}

	var applied []types.Status
	for s := range winners {
		applied = append(applied, s)
	}
	require.Len(t, applied, 1, "exactly one transition must win")

	current, err := repo.Get(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, applied[0], current)
}

func TestMemoryStatusRepository_Rollback(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStatusRepository()

	token, err := repo.Create(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.Rollback(ctx, token))

	_, err = repo.Get(ctx, token)
	assert.ErrorIs(t, err, ErrNotFound)
}
