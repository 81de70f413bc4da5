package constants

const (
	AppUserService         = "user-service"
	AppProductService      = "product-service"
	AppCartService         = "cart-service"
	AppWishlistService     = "wishlist-service"
	AppOrderService        = "order-service"
	AppNotificationService = "notification-service"
	AppSeed                = "seed"
	AppMainStorefront      = "main storefront"
	AudienceUser           = "audience-user"
)
