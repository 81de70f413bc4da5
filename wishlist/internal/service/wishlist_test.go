package service

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	commonErrors "github.com/Alturino/storefront/internal/common/errors"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/internal/testutil"
	"github.com/Alturino/storefront/product/pkg/catalog"
	"github.com/Alturino/storefront/wishlist/internal/persistence"
	productResponse "github.com/Alturino/storefront/product/pkg/response"
)

type WishlistServiceSuite struct {
	suite.Suite
	queries *repository.Queries
	cache   *redis.Client
	service *WishlistService
	userID  uuid.UUID
}

func TestWishlistServiceSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	suite.Run(t, new(WishlistServiceSuite))
}

func (s *WishlistServiceSuite) SetupSuite() {
	c := context.Background()
	pool := testutil.StartPostgres(s.T(), c)
	cache := testutil.StartRedis(s.T(), c)
	s.queries = repository.New(pool)
	s.cache = cache
	s.service = NewWishlistService(s.queries, cache, catalog.New(s.queries, cache))
}

func (s *WishlistServiceSuite) SetupTest() {
	user, err := s.queries.InsertUser(context.Background(), repository.InsertUserParams{
		Email:    gofakeit.Email(),
		Password: gofakeit.Password(true, true, true, false, false, 12),
	})
	s.Require().NoError(err)
	s.userID = user.ID
}

func (s *WishlistServiceSuite) product() productResponse.Product {
	product, err := s.queries.UpsertProduct(context.Background(), repository.UpsertProductParams{
		Slug:     gofakeit.UUID(),
		Name:     gofakeit.ProductName(),
		Category: gofakeit.ProductCategory(),
		Price:    repository.NumericFromDecimal(decimal.NewFromInt(int64(gofakeit.IntRange(1, 100)))),
		Images:   []string{},
		Colors:   []string{},
		Sizes:    []string{},
	})
	s.Require().NoError(err)
	return product.Response()
}

func ids(products []productResponse.Product) []uuid.UUID {
	res := []uuid.UUID{}
	for _, p := range products {
		res = append(res, p.ID)
	}
	return res
}

func (s *WishlistServiceSuite) TestSignedOutKeepsSnapshotsInLocalStorage() {
	c := context.Background()
	visitor := Visitor{SessionID: uuid.NewString()}
	a := s.product()

	wishlist, err := s.service.AddItem(c, visitor, a.ID)
	s.Require().NoError(err)
	s.Equal(1, wishlist.Count)
	s.Equal(a.Name, wishlist.Items[0].Name)

	wishlist, listed, err := s.service.Toggle(c, visitor, a.ID)
	s.Require().NoError(err)
	s.False(listed)
	s.Zero(wishlist.Count)
}

func (s *WishlistServiceSuite) TestSignInMergesOnce() {
	c := context.Background()
	sessionID := uuid.NewString()
	a, b, d := s.product(), s.product(), s.product()

	anonymous := Visitor{SessionID: sessionID}
	_, err := s.service.AddItem(c, anonymous, a.ID)
	s.Require().NoError(err)
	_, err = s.service.AddItem(c, anonymous, b.ID)
	s.Require().NoError(err)

	s.Require().NoError(s.queries.InsertWishlistItem(c, repository.InsertWishlistItemParams{UserID: s.userID, ProductID: b.ID}))
	s.Require().NoError(s.queries.InsertWishlistItem(c, repository.InsertWishlistItemParams{UserID: s.userID, ProductID: d.ID}))

	signedIn := Visitor{SessionID: sessionID, SignInID: "jti-1", UserID: s.userID, SignedIn: true}
	wishlist, err := s.service.FindWishlist(c, signedIn)
	s.Require().NoError(err)
	s.ElementsMatch([]uuid.UUID{a.ID, b.ID, d.ID}, ids(wishlist.Items))

	stored, err := s.queries.FindWishlistProductIds(c, s.userID)
	s.Require().NoError(err)
	s.Len(stored, 3)

	local, err := s.service.FindWishlist(c, anonymous)
	s.Require().NoError(err)
	s.Zero(local.Count)

	wishlist, err = s.service.RemoveItem(c, signedIn, a.ID)
	s.Require().NoError(err)
	s.ElementsMatch([]uuid.UUID{b.ID, d.ID}, ids(wishlist.Items))
}

func (s *WishlistServiceSuite) TestSignInAgainOnSameSessionMergesGuestWishlist() {
	c := context.Background()
	sessionID := uuid.NewString()
	a, b := s.product(), s.product()
	anonymous := Visitor{SessionID: sessionID}

	_, err := s.service.AddItem(c, anonymous, a.ID)
	s.Require().NoError(err)
	wishlist, err := s.service.FindWishlist(c, Visitor{SessionID: sessionID, SignInID: "jti-1", UserID: s.userID, SignedIn: true})
	s.Require().NoError(err)
	s.ElementsMatch([]uuid.UUID{a.ID}, ids(wishlist.Items))

	_, err = s.service.AddItem(c, anonymous, b.ID)
	s.Require().NoError(err)

	wishlist, err = s.service.FindWishlist(c, Visitor{SessionID: sessionID, SignInID: "jti-2", UserID: s.userID, SignedIn: true})
	s.Require().NoError(err)
	s.ElementsMatch([]uuid.UUID{a.ID, b.ID}, ids(wishlist.Items))
}

func (s *WishlistServiceSuite) TestReconcileSkipsProductsGoneFromCatalog() {
	c := context.Background()
	sessionID := uuid.NewString()
	kept := s.product()
	gone := productResponse.Product{ID: uuid.New(), Name: gofakeit.ProductName(), Slug: gofakeit.UUID()}
	s.Require().NoError(persistence.NewLocalStorage(s.cache, sessionID).Save(c, []productResponse.Product{kept, gone}))

	wishlist, err := s.service.Reconcile(c, Visitor{SessionID: sessionID, SignInID: "jti-1", UserID: s.userID, SignedIn: true})
	s.Require().NoError(err)
	s.ElementsMatch([]uuid.UUID{kept.ID}, ids(wishlist.Items))

	local, err := persistence.NewLocalStorage(s.cache, sessionID).Load(c)
	s.Require().NoError(err)
	s.Empty(local)
}

func (s *WishlistServiceSuite) TestClearSignedInDeletesRemoteEntries() {
	c := context.Background()
	visitor := Visitor{SessionID: uuid.NewString(), UserID: s.userID, SignedIn: true}

	_, listed, err := s.service.Toggle(c, visitor, s.product().ID)
	s.Require().NoError(err)
	s.True(listed)

	s.Require().NoError(s.service.ClearWishlist(c, visitor))
	stored, err := s.queries.FindWishlistProductIds(c, s.userID)
	s.Require().NoError(err)
	s.Empty(stored)
}

func (s *WishlistServiceSuite) TestUnknownProductIsRejected() {
	_, err := s.service.AddItem(context.Background(), Visitor{SessionID: uuid.NewString()}, uuid.New())
	s.ErrorIs(err, catalog.ErrProductNotFound)
}

func (s *WishlistServiceSuite) TestReconcileRequiresSignIn() {
	_, err := s.service.Reconcile(context.Background(), Visitor{SessionID: uuid.NewString()})
	s.ErrorIs(err, commonErrors.ErrUnauthenticated)
}
