//go:build integration

package repo_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/testutil"
	pkgdb "github.com/Skotchmaster/storefront/pkg/db"
)

func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase("storefront"),
		postgres.WithUsername("storefront"),
		postgres.WithPassword("storefront"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := pkgdb.Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pkgdb.Close(db) })

	require.NoError(t, repo.Migrate(db))
	return db
}

func TestPostgres_ConcurrentCheckoutsNeverOversell(t *testing.T) {
	db := setupPostgres(t)
	r := &repo.GormRepo{DB: db}
	ctx := context.Background()

	const stock, buyers = 7, 40
	p := testutil.CreateProduct(t, db, "Hot", 10, stock)

	users := make([]uuid.UUID, buyers)
	for i := range users {
		users[i] = testutil.CreateUser(t, db, uuid.NewString()+"@example.com", models.RoleUser).ID
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, fail int
	)
	start := make(chan struct{})
	for _, uid := range users {
		wg.Add(1)
		go func(uid uuid.UUID) {
			defer wg.Done()
			<-start
			err := r.PlaceOrder(ctx, newOrder(uid, line(p, 1)))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, repo.ErrInsufficientStock):
				fail++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(uid)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, stock, ok)
	assert.Equal(t, buyers-stock, fail)
	assert.Equal(t, 0, testutil.Stock(t, db, p.ID))
}

func TestPostgres_ConcurrentCancelRestocksOnce(t *testing.T) {
	db := setupPostgres(t)
	r := &repo.GormRepo{DB: db}
	ctx := context.Background()

	u := testutil.CreateUser(t, db, "ann@example.com", models.RoleUser)
	p := testutil.CreateProduct(t, db, "P", 10, 5)

	order := newOrder(u.ID, line(p, 3))
	require.NoError(t, r.PlaceOrder(ctx, order))

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = r.CancelOrder(ctx, order.ID, u.ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, repo.ErrOrderNotPending)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 5, testutil.Stock(t, db, p.ID))
}
