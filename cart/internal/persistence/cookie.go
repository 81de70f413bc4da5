package persistence

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/cart/pkg/store"
	"github.com/Alturino/storefront/internal/common/constants"
	commonErrors "github.com/Alturino/storefront/internal/common/errors"
	"github.com/Alturino/storefront/internal/log"
)

// MaxCookieValue keeps the cart cookie under the 4KB browsers accept once the
// name and attributes are added.
const MaxCookieValue = 3800

// cookieDocument tags the cookie with the user it mirrors. Guest carts carry
// uuid.Nil.
type cookieDocument struct {
	Owner uuid.UUID       `json:"owner"`
	Items json.RawMessage `json:"items"`
}

// Cookie keeps the cart in the visitor's browser as base64 encoded JSON. A
// cookie written for another owner reads as an empty cart.
type Cookie struct {
	w      http.ResponseWriter
	r      *http.Request
	secure bool
	owner  uuid.UUID
}

// NewCookie returns the cart cookie of owner. Pass uuid.Nil for the guest cart.
func NewCookie(w http.ResponseWriter, r *http.Request, secure bool, owner uuid.UUID) *Cookie {
	return &Cookie{w: w, r: r, secure: secure, owner: owner}
}

func (p *Cookie) Load(c context.Context) ([]store.Item, error) {
	cookie, err := p.r.Cookie(constants.CookieCart)
	if errors.Is(err, http.ErrNoCookie) {
		return []store.Item{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed reading cart cookie with error=%w", err)
	}
	data, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil, fmt.Errorf("failed decoding cart cookie with error=%w", err)
	}
	doc := cookieDocument{}
	if err = json.Unmarshal(data, &doc); err != nil || doc.Items == nil {
		return nil, fmt.Errorf("failed decoding cart cookie with error=%w", errors.Join(commonErrors.ErrInvalidDocument, err))
	}
	if doc.Owner != p.owner {
		zerolog.Ctx(c).Debug().
			Str(log.KeyTag, "Cookie Load").
			Str(log.KeyUserID, doc.Owner.String()).
			Msg("cart cookie belongs to another owner, ignoring")
		return []store.Item{}, nil
	}
	return decodeItems(doc.Items)
}

// Save writes the cart to the cookie. A cart too large for a cookie erases it
// instead; the local storage or remote copy stays authoritative.
func (p *Cookie) Save(c context.Context, items []store.Item) error {
	encoded, err := encodeItems(items)
	if err != nil {
		return err
	}
	data, err := json.Marshal(cookieDocument{Owner: p.owner, Items: encoded})
	if err != nil {
		return fmt.Errorf("failed encoding cart cookie with error=%w", err)
	}
	value := base64.RawURLEncoding.EncodeToString(data)
	if len(value) > MaxCookieValue {
		zerolog.Ctx(c).Warn().
			Str(log.KeyTag, "Cookie Save").
			Int(log.KeyCartItemsCount, len(items)).
			Int(log.KeyCookieSize, len(value)).
			Msg("cart does not fit in a cookie, erasing cookie")
		return p.Erase(c)
	}
	cookie := p.cookie(value)
	cookie.MaxAge = int(constants.CookieMaxAge.Seconds())
	http.SetCookie(p.w, cookie)
	return nil
}

func (p *Cookie) Erase(c context.Context) error {
	cookie := p.cookie("")
	cookie.MaxAge = -1
	http.SetCookie(p.w, cookie)
	return nil
}

func (p *Cookie) cookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     constants.CookieCart,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   p.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
