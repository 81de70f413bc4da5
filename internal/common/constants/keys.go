package constants

import "time"

const (
	CookieSession = "sid"
	CookieCart    = "cart"

	CookieMaxAge  = 30 * 24 * time.Hour
	StorageMaxAge = 30 * 24 * time.Hour
)

const (
	KeyStorageCart     = "storage:%s:cart"
	KeyStorageWishlist = "storage:%s:wishlist"
	KeyProducts        = "products:%s"
	KeyProductsSlug    = "products:slug:%s"
	KeyRevokedToken    = "auth:revoked:%s"
)

const ChannelOrderCreated = "order.created"
