package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/testutil"
)

func sessionOwner(t *testing.T, sid string) domain.CartOwner {
	t.Helper()
	o, err := domain.NewCartOwner(nil, sid)
	require.NoError(t, err)
	return o
}

func userOwner(t *testing.T, id uuid.UUID, sid string) domain.CartOwner {
	t.Helper()
	o, err := domain.NewCartOwner(&domain.Principal{UserID: id}, sid)
	require.NoError(t, err)
	return o
}

func quantities(c *models.Cart) map[uuid.UUID]int {
	out := make(map[uuid.UUID]int, len(c.Items))
	for _, it := range c.Items {
		out[it.ProductID] = it.Quantity
	}
	return out
}

func TestResolveCart_CreatesLazily(t *testing.T) {
	db := testutil.NewDB(t)
	r := &repo.GormRepo{DB: db}
	ctx := context.Background()

	owner := sessionOwner(t, "guest-1")

	_, err := r.ResolveCart(ctx, owner, false)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	first, err := r.ResolveCart(ctx, owner, true)
	require.NoError(t, err)
	require.NotNil(t, first.SessionID)
	assert.Equal(t, "guest-1", *first.SessionID)
	assert.Nil(t, first.UserID)
	assert.Empty(t, first.Items)

	again, err := r.ResolveCart(ctx, owner, true)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
}

func TestCartLines_AddIncrementsAndUpdateOverwrites(t *testing.T) {
	db := testutil.NewDB(t)
	r := &repo.GormRepo{DB: db}
	ctx := context.Background()

	p := testutil.CreateProduct(t, db, "P", 10, 1)
	cart, err := r.ResolveCart(ctx, sessionOwner(t, "s"), true)
	require.NoError(t, err)

	cart, err = r.AddItem(ctx, cart.ID, p.ID, 2)
	require.NoError(t, err)
	cart, err = r.AddItem(ctx, cart.ID, p.ID, 3)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity, "add beyond stock is allowed until checkout")
	require.NotNil(t, cart.Items[0].Product)
	assert.Equal(t, "P", cart.Items[0].Product.Name)

	itemID := cart.Items[0].ID
	cart, err = r.SetItemQuantity(ctx, cart.ID, itemID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	cart, err = r.SetItemQuantity(ctx, cart.ID, itemID, 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = r.SetItemQuantity(ctx, cart.ID, itemID, 4)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCartLines_RemoveAndClear(t *testing.T) {
	db := testutil.NewDB(t)
	r := &repo.GormRepo{DB: db}
	ctx := context.Background()

	a := testutil.CreateProduct(t, db, "A", 10, 1)
	b := testutil.CreateProduct(t, db, "B", 10, 1)
	cart, err := r.ResolveCart(ctx, sessionOwner(t, "s"), true)
	require.NoError(t, err)

	_, err = r.AddItem(ctx, cart.ID, a.ID, 1)
	require.NoError(t, err)
	cart, err = r.AddItem(ctx, cart.ID, b.ID, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)

	cart, err = r.RemoveItem(ctx, cart.ID, cart.Items[0].ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)

	cart, err = r.RemoveItem(ctx, cart.ID, uuid.New())
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)

	cart, err = r.ClearCart(ctx, cart.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestResolveCart_ClaimsGuestCartOnLogin(t *testing.T) {
	db := testutil.NewDB(t)
	r := &repo.GormRepo{DB: db}
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "ann@example.com", models.RoleUser)
	p := testutil.CreateProduct(t, db, "P", 10, 1)

	guest, err := r.ResolveCart(ctx, sessionOwner(t, "guest-1"), true)
	require.NoError(t, err)
	_, err = r.AddItem(ctx, guest.ID, p.ID, 2)
	require.NoError(t, err)

	cart, err := r.ResolveCart(ctx, userOwner(t, user.ID, "guest-1"), true)
	require.NoError(t, err)
	assert.Equal(t, guest.ID, cart.ID)
	require.NotNil(t, cart.UserID)
	assert.Equal(t, user.ID, *cart.UserID)
	assert.Nil(t, cart.SessionID)
	assert.Equal(t, 2, quantities(cart)[p.ID])

	_, err = r.ResolveCart(ctx, sessionOwner(t, "guest-1"), false)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestResolveCart_MergesGuestIntoExistingUserCart(t *testing.T) {
	db := testutil.NewDB(t)
	r := &repo.GormRepo{DB: db}
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "ann@example.com", models.RoleUser)
	shared := testutil.CreateProduct(t, db, "Shared", 10, 1)
	guestOnly := testutil.CreateProduct(t, db, "GuestOnly", 10, 1)

	userCart, err := r.ResolveCart(ctx, userOwner(t, user.ID, ""), true)
	require.NoError(t, err)
	_, err = r.AddItem(ctx, userCart.ID, shared.ID, 1)
	require.NoError(t, err)

	guest, err := r.ResolveCart(ctx, sessionOwner(t, "guest-1"), true)
	require.NoError(t, err)
	_, err = r.AddItem(ctx, guest.ID, shared.ID, 2)
	require.NoError(t, err)
	_, err = r.AddItem(ctx, guest.ID, guestOnly.ID, 4)
	require.NoError(t, err)

	merged, err := r.ResolveCart(ctx, userOwner(t, user.ID, "guest-1"), false)
	require.NoError(t, err)
	assert.Equal(t, userCart.ID, merged.ID)

	q := quantities(merged)
	assert.Equal(t, 3, q[shared.ID])
	assert.Equal(t, 4, q[guestOnly.ID])

	var carts int64
	require.NoError(t, db.Model(&models.Cart{}).Count(&carts).Error)
	assert.EqualValues(t, 1, carts)
}
