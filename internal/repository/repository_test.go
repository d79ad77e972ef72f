// Integration tests use testcontainers-go to spin up a PostgreSQL
// container and are skipped when Docker is unavailable.
package repository

import (
	"context"
	"os/exec"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/botabeer/linegames/internal/model"
	"github.com/botabeer/linegames/internal/pkg/db"
)

// checkDockerAvailable checks if Docker is available and running.
func checkDockerAvailable() bool {
	return exec.Command("docker", "info").Run() == nil
}

// setupTestDB creates a PostgreSQL container, applies migrations and
// returns a connection pool.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if !checkDockerAvailable() {
		t.Skip("Docker is not available, skipping integration test")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgContainer.Terminate(ctx) })

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, db.Migrate(ctx, pool))
	return pool
}

func TestUpsertCreatesAndIncrements(t *testing.T) {
	ctx := context.Background()
	pool := setupTestDB(t)
	repo := NewPlayerRepository(pool)

	p, err := repo.UpsertAndIncrement(ctx, "U1", "احمد", 2, true, model.GameOpposite)
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.Points)
	assert.Equal(t, 1, p.GamesPlayed)
	assert.Equal(t, 1, p.Wins)

	p, err = repo.UpsertAndIncrement(ctx, "U1", "احمد الجديد", 10, false, model.GameLetters)
	require.NoError(t, err)
	assert.Equal(t, int64(12), p.Points)
	assert.Equal(t, 2, p.GamesPlayed)
	assert.Equal(t, 1, p.Wins)
	assert.Equal(t, "احمد الجديد", p.DisplayName, "display name is last-seen-wins")
}

func TestPointsFlooredAtZero(t *testing.T) {
	ctx := context.Background()
	pool := setupTestDB(t)
	repo := NewPlayerRepository(pool)

	_, err := repo.UpsertAndIncrement(ctx, "U1", "احمد", 2, true, model.GameSong)
	require.NoError(t, err)

	p, err := repo.UpsertAndIncrement(ctx, "U1", "احمد", -50, false, model.GameSong)
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.Points, "cumulative total never goes negative")

	// Creation with a negative delta also floors.
	p, err = repo.UpsertAndIncrement(ctx, "U2", "بدر", -5, false, model.GameSong)
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.Points)
}

func TestHistoryAppendRules(t *testing.T) {
	ctx := context.Background()
	pool := setupTestDB(t)
	repo := NewPlayerRepository(pool)
	history := NewHistoryRepository(pool)

	_, err := repo.UpsertAndIncrement(ctx, "U1", "احمد", 2, true, model.GameSong)
	require.NoError(t, err)
	// Zero delta: no history row.
	_, err = repo.UpsertAndIncrement(ctx, "U1", "احمد", 0, false, model.GameSong)
	require.NoError(t, err)
	// Empty game type: no history row.
	_, err = repo.UpsertAndIncrement(ctx, "U1", "احمد", 5, false, "")
	require.NoError(t, err)

	entries, err := history.RecentByPlayer(ctx, "U1", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.GameSong, entries[0].GameType)
	assert.Equal(t, int64(2), entries[0].Points)
	assert.True(t, entries[0].Won)

	counts, err := history.CountByGameType(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{model.GameSong: 1}, counts)
}

func TestConcurrentIncrementsLoseNothing(t *testing.T) {
	ctx := context.Background()
	pool := setupTestDB(t)
	repo := NewPlayerRepository(pool)

	const workers = 8
	const perWorker = 10

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				_, err := repo.UpsertAndIncrement(ctx, "U1", "احمد", 2, false, model.GameSpeed)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	p, err := repo.GetByID(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, int64(2*workers*perWorker), p.Points)
	assert.Equal(t, workers*perWorker, p.GamesPlayed)
}

func TestLeaderboardOrdering(t *testing.T) {
	ctx := context.Background()
	pool := setupTestDB(t)
	repo := NewPlayerRepository(pool)

	_, err := repo.UpsertAndIncrement(ctx, "U1", "احمد", 5, false, model.GameSong)
	require.NoError(t, err)
	_, err = repo.UpsertAndIncrement(ctx, "U2", "بدر", 20, true, model.GameSong)
	require.NoError(t, err)
	_, err = repo.UpsertAndIncrement(ctx, "U3", "جميل", 5, true, model.GameSong)
	require.NoError(t, err)

	top, err := repo.Leaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "U2", top[0].ID)
	// Equal points: more wins first.
	assert.Equal(t, "U3", top[1].ID)
	assert.Equal(t, "U1", top[2].ID)

	top, err = repo.Leaderboard(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, top, 2)
}

func TestGetByIDNotFound(t *testing.T) {
	ctx := context.Background()
	pool := setupTestDB(t)
	repo := NewPlayerRepository(pool)

	_, err := repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestDeleteInactive(t *testing.T) {
	ctx := context.Background()
	pool := setupTestDB(t)
	repo := NewPlayerRepository(pool)

	_, err := repo.UpsertAndIncrement(ctx, "U1", "احمد", 2, false, model.GameSong)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, "UPDATE players SET last_active = NOW() - INTERVAL '40 days' WHERE id = 'U1'")
	require.NoError(t, err)
	_, err = repo.UpsertAndIncrement(ctx, "U2", "بدر", 2, false, model.GameSong)
	require.NoError(t, err)

	removed, err := repo.DeleteInactive(ctx, time.Now().AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = repo.GetByID(ctx, "U1")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
	_, err = repo.GetByID(ctx, "U2")
	assert.NoError(t, err)
}

func TestTouchDoesNotBumpCounters(t *testing.T) {
	ctx := context.Background()
	pool := setupTestDB(t)
	repo := NewPlayerRepository(pool)

	require.NoError(t, repo.Touch(ctx, "U1", "احمد"))
	p, err := repo.GetByID(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, 0, p.GamesPlayed)
	assert.Equal(t, int64(0), p.Points)

	require.NoError(t, repo.Touch(ctx, "U1", "اسم جديد"))
	p, err = repo.GetByID(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, "اسم جديد", p.DisplayName)
}
