package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	cartErrors "github.com/Alturino/storefront/cart/internal/errors"
	"github.com/Alturino/storefront/cart/internal/persistence"
	"github.com/Alturino/storefront/cart/pkg/request"
	"github.com/Alturino/storefront/cart/pkg/store"
	commonErrors "github.com/Alturino/storefront/internal/common/errors"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/internal/testutil"
	orderRequest "github.com/Alturino/storefront/order/pkg/request"
	orderResponse "github.com/Alturino/storefront/order/pkg/response"
)

// memoryCookie is a browser holding one cart cookie tagged with its owner.
type memoryCookie struct {
	owner uuid.UUID
	items []store.Item
}

// view reads and writes the cookie as owner, like persistence.Cookie does.
func (m *memoryCookie) view(owner uuid.UUID) store.Persister {
	return cookieView{jar: m, owner: owner}
}

type cookieView struct {
	jar   *memoryCookie
	owner uuid.UUID
}

func (v cookieView) Load(context.Context) ([]store.Item, error) {
	if v.jar.owner != v.owner {
		return []store.Item{}, nil
	}
	return append([]store.Item{}, v.jar.items...), nil
}

func (v cookieView) Save(_ context.Context, items []store.Item) error {
	v.jar.owner = v.owner
	v.jar.items = append([]store.Item{}, items...)
	return nil
}

func (v cookieView) Erase(context.Context) error {
	v.jar.owner = uuid.Nil
	v.jar.items = nil
	return nil
}

type fakeRecorder struct {
	err      error
	received []orderRequest.Checkout
}

func (f *fakeRecorder) Checkout(_ context.Context, _ string, param orderRequest.Checkout) (orderResponse.Order, error) {
	f.received = append(f.received, param)
	if f.err != nil {
		return orderResponse.Order{}, f.err
	}
	return orderResponse.Order{
		ID:            uuid.New(),
		PaymentMethod: param.PaymentMethod,
		Status:        orderResponse.StatusCompleted,
		CreatedAt:     time.Now(),
	}, nil
}

type CartServiceSuite struct {
	suite.Suite
	queries  *repository.Queries
	service  *CartService
	recorder *fakeRecorder
	userID   uuid.UUID
}

func TestCartServiceSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	suite.Run(t, new(CartServiceSuite))
}

func (s *CartServiceSuite) SetupSuite() {
	c := context.Background()
	pool := testutil.StartPostgres(s.T(), c)
	cache := testutil.StartRedis(s.T(), c)
	s.queries = repository.New(pool)
	s.recorder = &fakeRecorder{}
	s.service = NewCartService(s.queries, cache, s.recorder)
}

func (s *CartServiceSuite) SetupTest() {
	user, err := s.queries.InsertUser(context.Background(), repository.InsertUserParams{
		Email:    gofakeit.Email(),
		Password: "hashed",
	})
	s.Require().NoError(err)
	s.userID = user.ID
	s.recorder.err = nil
	s.recorder.received = nil
}

func addItem(productID uuid.UUID, quantity int, color string) request.AddItem {
	return request.AddItem{
		ProductID: productID,
		Name:      gofakeit.ProductName(),
		Price:     decimal.RequireFromString("12.50"),
		Quantity:  quantity,
		Slug:      gofakeit.LetterN(8),
		Color:     color,
	}
}

func (s *CartServiceSuite) anonymous(sid string, cookie *memoryCookie) Visitor {
	return Visitor{SessionID: sid, Cookie: cookie.view(uuid.Nil), GuestCookie: cookie.view(uuid.Nil)}
}

func (s *CartServiceSuite) signedIn(sid string, cookie *memoryCookie) Visitor {
	return s.signedInAs(sid, s.userID, "sign-in", cookie)
}

func (s *CartServiceSuite) signedInAs(sid string, userID uuid.UUID, signInID string, cookie *memoryCookie) Visitor {
	return Visitor{
		SessionID:   sid,
		SignInID:    signInID,
		Cookie:      cookie.view(userID),
		GuestCookie: cookie.view(uuid.Nil),
		SignedIn:    true,
		UserID:      userID,
		Token:       "token",
	}
}

func quantities(items []store.Item) map[uuid.UUID]int {
	res := map[uuid.UUID]int{}
	for _, item := range items {
		res[item.ProductID] = item.Quantity
	}
	return res
}

func (s *CartServiceSuite) TestAnonymousCartFallsBackToLocalStorage() {
	c := context.Background()
	sid := uuid.NewString()
	productID := uuid.New()

	_, err := s.service.AddItem(c, s.anonymous(sid, &memoryCookie{}), addItem(productID, 2, "red"))
	s.Require().NoError(err)

	cart := s.service.FindCart(c, s.anonymous(sid, &memoryCookie{}))
	s.Require().Len(cart.Items, 1)
	s.Equal(2, cart.ItemCount)
	s.True(decimal.RequireFromString("25").Equal(cart.Total))
}

func (s *CartServiceSuite) TestSignInMergesLocalCartOnce() {
	c := context.Background()
	sid := uuid.NewString()
	shared := uuid.New()
	remoteOnly := uuid.New()
	localOnly := uuid.New()

	remote := persistence.NewRemote(s.queries, s.userID)
	s.Require().NoError(remote.Save(c, []store.Item{
		{ProductID: shared, Name: "shared", Price: decimal.NewFromInt(1), Quantity: 1},
		{ProductID: remoteOnly, Name: "remote", Price: decimal.NewFromInt(1), Quantity: 1},
	}))

	cookie := &memoryCookie{}
	_, err := s.service.AddItem(c, s.anonymous(sid, cookie), addItem(shared, 3, ""))
	s.Require().NoError(err)
	_, err = s.service.AddItem(c, s.anonymous(sid, cookie), addItem(localOnly, 1, ""))
	s.Require().NoError(err)

	v := s.signedIn(sid, cookie)
	cart := s.service.FindCart(c, v)

	s.Equal(map[uuid.UUID]int{shared: 3, remoteOnly: 1, localOnly: 1}, quantities(cart.Items))

	local, err := persistence.NewLocalStorage(s.service.cache, sid).Load(c)
	s.Require().NoError(err)
	s.Empty(local)
	s.True(s.service.gate.Done(v.mergeKey()))

	again, err := s.service.Reconcile(c, s.signedIn(sid, cookie))
	s.Require().NoError(err)
	s.Equal(cart.ItemCount, again.ItemCount)
}

func (s *CartServiceSuite) TestSignInAgainOnSameSessionMergesGuestCart() {
	c := context.Background()
	sid := uuid.NewString()
	cookie := &memoryCookie{}
	first := uuid.New()
	second := uuid.New()

	_, err := s.service.AddItem(c, s.anonymous(sid, cookie), addItem(first, 1, ""))
	s.Require().NoError(err)
	s.Equal(map[uuid.UUID]int{first: 1}, quantities(s.service.FindCart(c, s.signedInAs(sid, s.userID, "jti-1", cookie)).Items))

	// signed out, the browser keeps its sid and the cookie is erased
	s.Require().NoError(cookie.view(uuid.Nil).Erase(c))
	_, err = s.service.AddItem(c, s.anonymous(sid, cookie), addItem(second, 2, ""))
	s.Require().NoError(err)

	cart := s.service.FindCart(c, s.signedInAs(sid, s.userID, "jti-2", cookie))
	s.Equal(map[uuid.UUID]int{first: 1, second: 2}, quantities(cart.Items))
}

func (s *CartServiceSuite) TestSignedInMirrorIsNotMergedAsGuestCart() {
	c := context.Background()
	sid := uuid.NewString()
	cookie := &memoryCookie{}
	owned := uuid.New()

	_, err := s.service.AddItem(c, s.signedInAs(sid, s.userID, "jti-1", cookie), addItem(owned, 1, ""))
	s.Require().NoError(err)
	s.Equal(s.userID, cookie.owner)

	// the user removes the item elsewhere, the mirror in this browser is now stale
	s.Require().NoError(persistence.NewRemote(s.queries, s.userID).Save(c, []store.Item{}))

	cart, err := s.service.Reconcile(c, s.signedInAs(sid, s.userID, "jti-2", cookie))
	s.Require().NoError(err)
	s.Empty(cart.Items)

	other, err := s.queries.InsertUser(c, repository.InsertUserParams{Email: gofakeit.Email(), Password: "hashed"})
	s.Require().NoError(err)
	_, err = s.service.AddItem(c, s.signedInAs(sid, s.userID, "jti-2", cookie), addItem(owned, 1, ""))
	s.Require().NoError(err)

	leaked := s.service.FindCart(c, s.signedInAs(sid, other.ID, "jti-3", cookie))
	s.Empty(leaked.Items, "another user signing in on the same browser must not inherit the mirror")
}

func (s *CartServiceSuite) TestReconcileRequiresSignIn() {
	_, err := s.service.Reconcile(context.Background(), s.anonymous(uuid.NewString(), &memoryCookie{}))
	s.ErrorIs(err, commonErrors.ErrUnauthenticated)
}

func (s *CartServiceSuite) TestCheckoutClearsCartOnSuccess() {
	c := context.Background()
	v := s.signedIn(uuid.NewString(), &memoryCookie{})

	_, err := s.service.AddItem(c, v, addItem(uuid.New(), 2, "blue"))
	s.Require().NoError(err)

	order, checkout, err := s.service.Checkout(c, v, request.Checkout{PaymentMethod: orderRequest.PaymentMethodCard})
	s.Require().NoError(err)
	s.Equal(orderResponse.StatusCompleted, order.Status)
	s.Equal(StateCartCleared, checkout.State())
	s.Equal([]CheckoutState{StateIdle, StatePaying, StateSuccess, StateCartCleared}, checkout.History())

	s.Require().Len(s.recorder.received, 1)
	s.Len(s.recorder.received[0].Items, 1)
	s.Equal(2, s.recorder.received[0].Items[0].Quantity)

	s.Zero(s.service.FindCart(c, v).ItemCount)
}

func (s *CartServiceSuite) TestCheckoutFailureKeepsCart() {
	c := context.Background()
	v := s.signedIn(uuid.NewString(), &memoryCookie{})
	s.recorder.err = errors.New("insufficient wallet balance")

	_, err := s.service.AddItem(c, v, addItem(uuid.New(), 1, ""))
	s.Require().NoError(err)

	_, checkout, err := s.service.Checkout(c, v, request.Checkout{PaymentMethod: orderRequest.PaymentMethodWallet})
	s.Require().Error(err)
	s.Contains(err.Error(), "insufficient wallet balance")
	s.Equal(StateIdle, checkout.State())
	s.Equal([]CheckoutState{StateIdle, StatePaying, StateFailure, StateIdle}, checkout.History())

	s.Equal(1, s.service.FindCart(c, v).ItemCount)
}

func (s *CartServiceSuite) TestCheckoutRejectsEmptyCart() {
	v := s.signedIn(uuid.NewString(), &memoryCookie{})

	_, checkout, err := s.service.Checkout(context.Background(), v, request.Checkout{PaymentMethod: orderRequest.PaymentMethodCard})

	s.ErrorIs(err, cartErrors.ErrEmptyCart)
	s.Equal(StateIdle, checkout.State())
	s.Empty(s.recorder.received)
}

func TestKeepLargerQuantity(t *testing.T) {
	remote := store.Item{Quantity: 2, Name: "remote"}
	assert.Equal(t, 5, keepLargerQuantity(remote, store.Item{Quantity: 5}).Quantity)
	assert.Equal(t, "remote", keepLargerQuantity(remote, store.Item{Quantity: 5}).Name)
	assert.Equal(t, 2, keepLargerQuantity(remote, store.Item{Quantity: 1}).Quantity)
}
