package service_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/service/mocks"
	"github.com/Skotchmaster/storefront/internal/testutil"
	"github.com/Skotchmaster/storefront/internal/transport"
)

func intp(n int) *int { return &n }

func TestCartService_AddAndUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := testutil.NewDB(t)
	events := mocks.NewMockEventPublisher(ctrl)
	svc := &service.CartService{Repo: &repo.GormRepo{DB: db}, Events: events}
	ctx := context.Background()

	owner, err := domain.NewCartOwner(nil, "guest-1")
	require.NoError(t, err)
	p := testutil.CreateProduct(t, db, "Tea", 15, 1)

	events.EXPECT().PublishEvent(gomock.Any(), service.TopicCarts, "session:guest-1", eventOfType("cart_item_added")).Return(nil).Times(2)
	events.EXPECT().PublishEvent(gomock.Any(), service.TopicCarts, "session:guest-1", eventOfType("cart_item_updated")).Return(nil)
	events.EXPECT().PublishEvent(gomock.Any(), service.TopicCarts, "session:guest-1", eventOfType("cart_item_removed")).Return(nil)

	cart, err := svc.AddItem(ctx, owner, p.ID, nil)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	// no stock check before checkout
	cart, err = svc.AddItem(ctx, owner, p.ID, intp(4))
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	view := transport.NewCartView(cart)
	assert.Equal(t, 5, view.ItemCount)
	assert.True(t, decimal.NewFromInt(75).Equal(view.Subtotal))

	itemID := cart.Items[0].ID
	cart, err = svc.UpdateItem(ctx, owner, itemID, intp(2))
	require.NoError(t, err)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	cart, err = svc.UpdateItem(ctx, owner, itemID, intp(0))
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = svc.UpdateItem(ctx, owner, itemID, intp(3))
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestCartService_Errors(t *testing.T) {
	db := testutil.NewDB(t)
	svc := &service.CartService{Repo: &repo.GormRepo{DB: db}}
	ctx := context.Background()

	owner, err := domain.NewCartOwner(nil, "guest-2")
	require.NoError(t, err)
	p := testutil.CreateProduct(t, db, "Tea", 15, 10)

	_, err = svc.AddItem(ctx, owner, p.ID, intp(-1))
	require.ErrorIs(t, err, service.ErrValidation)
	_, err = svc.AddItem(ctx, owner, p.ID, intp(0))
	require.ErrorIs(t, err, service.ErrValidation)
	_, err = svc.AddItem(ctx, owner, uuid.New(), nil)
	require.ErrorIs(t, err, service.ErrNotFound)
	_, err = svc.UpdateItem(ctx, owner, uuid.New(), nil)
	require.ErrorIs(t, err, service.ErrValidation)

	// nothing has created the cart yet
	_, err = svc.UpdateItem(ctx, owner, uuid.New(), intp(1))
	require.ErrorIs(t, err, service.ErrNotFound)
	_, err = svc.RemoveItem(ctx, owner, uuid.New())
	require.ErrorIs(t, err, service.ErrNotFound)
	_, err = svc.Clear(ctx, owner)
	require.ErrorIs(t, err, service.ErrNotFound)

	cart, err := svc.GetCart(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = svc.AddItem(ctx, owner, p.ID, intp(2))
	require.NoError(t, err)
	cart, err = svc.Clear(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartService_LoginMergesGuestCart(t *testing.T) {
	db := testutil.NewDB(t)
	svc := &service.CartService{Repo: &repo.GormRepo{DB: db}}
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "ann@example.com", models.RoleUser)
	p := testutil.CreateProduct(t, db, "Tea", 15, 10)

	guest, err := domain.NewCartOwner(nil, "guest-3")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, guest, p.ID, intp(2))
	require.NoError(t, err)

	member, err := domain.NewCartOwner(principalOf(user), "")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, member, p.ID, intp(1))
	require.NoError(t, err)

	both, err := domain.NewCartOwner(principalOf(user), "guest-3")
	require.NoError(t, err)
	cart, err := svc.GetCart(ctx, both)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	_, err = svc.Clear(ctx, guest)
	require.ErrorIs(t, err, service.ErrNotFound)
}
