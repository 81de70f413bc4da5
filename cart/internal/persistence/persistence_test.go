package persistence

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/storefront/cart/pkg/store"
	"github.com/Alturino/storefront/internal/common/constants"
	commonErrors "github.com/Alturino/storefront/internal/common/errors"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/internal/testutil"
)

func fakeItems(n int) []store.Item {
	items := make([]store.Item, 0, n)
	for range n {
		items = append(items, store.Item{
			ProductID: uuid.New(),
			Name:      gofakeit.ProductName(),
			Slug:      gofakeit.LetterN(10),
			Image:     gofakeit.URL(),
			Price:     decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2),
			Quantity:  gofakeit.IntRange(1, 5),
			Color:     gofakeit.SafeColor(),
		})
	}
	return items
}

func assertSameItems(t *testing.T, want, got []store.Item) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Key(), got[i].Key())
		assert.Equal(t, want[i].Quantity, got[i].Quantity)
		assert.True(t, want[i].Price.Equal(got[i].Price), "price %s != %s", want[i].Price, got[i].Price)
	}
}

func TestCookieRoundTrip(t *testing.T) {
	c := context.Background()
	items := fakeItems(3)

	w := httptest.NewRecorder()
	p := NewCookie(w, httptest.NewRequest(http.MethodGet, "/", nil), true, uuid.Nil)
	require.NoError(t, p.Save(c, items))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constants.CookieCart, cookies[0].Name)
	assert.Equal(t, int(constants.CookieMaxAge.Seconds()), cookies[0].MaxAge)
	assert.True(t, cookies[0].Secure)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookies[0])
	loaded, err := NewCookie(httptest.NewRecorder(), r, true, uuid.Nil).Load(c)
	require.NoError(t, err)
	assertSameItems(t, items, loaded)
}

func TestCookieLoad(t *testing.T) {
	tests := []struct {
		name    string
		value   *string
		wantErr error
		wantLen int
	}{
		{name: "missing cookie is an empty cart"},
		{name: "garbage cookie", value: ptr("%%%"), wantErr: nil},
		{name: "cookie that is not a cart", value: ptr(base64.RawURLEncoding.EncodeToString([]byte(`{"a":1}`))), wantErr: commonErrors.ErrInvalidDocument},
		{name: "cookie without owner envelope", value: ptr(base64.RawURLEncoding.EncodeToString([]byte(`[{"name":"x","price":"1","quantity":1}]`))), wantErr: commonErrors.ErrInvalidDocument},
		{name: "cart line without product", value: ptr(base64.RawURLEncoding.EncodeToString([]byte(`{"owner":"00000000-0000-0000-0000-000000000000","items":[{"name":"x","price":"1","quantity":1}]}`))), wantErr: commonErrors.ErrInvalidDocument},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if test.value != nil {
				r.AddCookie(&http.Cookie{Name: constants.CookieCart, Value: *test.value})
			}
			items, err := NewCookie(httptest.NewRecorder(), r, false, uuid.Nil).Load(context.Background())
			switch {
			case test.value == nil:
				assert.NoError(t, err)
				assert.Empty(t, items)
			case test.wantErr != nil:
				assert.ErrorIs(t, err, test.wantErr)
			default:
				assert.Error(t, err)
			}
		})
	}
}

func TestCookieOwner(t *testing.T) {
	c := context.Background()
	owner := uuid.New()
	items := fakeItems(2)

	w := httptest.NewRecorder()
	require.NoError(t, NewCookie(w, httptest.NewRequest(http.MethodGet, "/", nil), false, owner).Save(c, items))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	read := func(reader uuid.UUID) []store.Item {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(cookies[0])
		loaded, err := NewCookie(httptest.NewRecorder(), r, false, reader).Load(c)
		require.NoError(t, err)
		return loaded
	}

	assertSameItems(t, items, read(owner))
	assert.Empty(t, read(uuid.Nil), "a user's mirror must not read as the guest cart")
	assert.Empty(t, read(uuid.New()), "a user's mirror must not read as another user's cart")
}

func TestCookieTooLarge(t *testing.T) {
	c := context.Background()
	items := fakeItems(100)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, NewCookie(w, r, false, uuid.Nil).Save(c, items))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)

	w = httptest.NewRecorder()
	require.NoError(t, NewCookie(w, r, false, uuid.Nil).Save(c, items[:1]))
	cookies = w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.LessOrEqual(t, len(cookies[0].Value), MaxCookieValue)
	assert.Positive(t, cookies[0].MaxAge)
}

func TestCookieErase(t *testing.T) {
	w := httptest.NewRecorder()
	p := NewCookie(w, httptest.NewRequest(http.MethodGet, "/", nil), false, uuid.Nil)

	require.NoError(t, p.Erase(context.Background()))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func ptr(s string) *string { return &s }

func TestLocalStorage(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	c := context.Background()
	cache := testutil.StartRedis(t, c)

	sid := uuid.NewString()
	p := NewLocalStorage(cache, sid)

	loaded, err := p.Load(c)
	require.NoError(t, err)
	assert.Empty(t, loaded)

	items := fakeItems(2)
	require.NoError(t, p.Save(c, items))

	ttl, err := cache.TTL(c, "storage:"+sid+":cart").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, constants.StorageMaxAge-constants.StorageMaxAge/100)

	loaded, err = p.Load(c)
	require.NoError(t, err)
	assertSameItems(t, items, loaded)

	other, err := NewLocalStorage(cache, uuid.NewString()).Load(c)
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, p.Erase(c))
	loaded, err = p.Load(c)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestRemote(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	c := context.Background()
	pool := testutil.StartPostgres(t, c)
	queries := repository.New(pool)

	user, err := queries.InsertUser(c, repository.InsertUserParams{
		Email:    gofakeit.Email(),
		Password: gofakeit.Password(true, true, true, false, false, 12),
	})
	require.NoError(t, err)

	p := NewRemote(queries, user.ID)

	loaded, err := p.Load(c)
	require.NoError(t, err)
	assert.Empty(t, loaded)

	items := fakeItems(3)
	require.NoError(t, p.Save(c, items))
	require.NoError(t, p.Save(c, items[:2]))

	loaded, err = p.Load(c)
	require.NoError(t, err)
	assertSameItems(t, items[:2], loaded)

	require.NoError(t, p.Erase(c))
	loaded, err = p.Load(c)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
