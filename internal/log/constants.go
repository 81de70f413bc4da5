package log

const (
	KeyAddress            = "address"
	KeyAddressID          = "addressId"
	KeyAppName            = "app"
	KeyAuthToken          = "authToken"
	KeyBody               = "body"
	KeyCacheKey           = "cacheKey"
	KeyCart               = "cart"
	KeyCartItem           = "cartItem"
	KeyCartItems          = "cartItems"
	KeyCartItemsCount     = "cartItemsCount"
	KeyCartTotal          = "cartTotal"
	KeyCategory           = "category"
	KeyCheckoutState      = "checkoutState"
	KeyConfig             = "config"
	KeyCookieSize         = "cookieSize"
	KeyDbURL              = "dbUrl"
	KeyEmail              = "email"
	KeyHeader             = "header"
	KeyJsonCache          = "jsonCache"
	KeyOrder              = "order"
	KeyOrderID            = "orderId"
	KeyOrders             = "orders"
	KeyPathValues         = "pathValues"
	KeyPaymentMethod      = "paymentMethod"
	KeyProcess            = "process"
	KeyProduct            = "product"
	KeyProductID          = "productId"
	KeyProductIDs         = "productIds"
	KeyProducts           = "products"
	KeyQuery              = "query"
	KeyRequest            = "request"
	KeyRequestBody        = "requestBody"
	KeyRequestHeader      = "requestHeader"
	KeyRequestHost        = "host"
	KeyRequestID          = "requestId"
	KeyRequestIp          = "requesterIP"
	KeyRequestMethod      = "requestMethod"
	KeyRequestProcessedAt = "requestProcessedAt"
	KeyRequestURI         = "requestURI"
	KeyRequestURL         = "requestURL"
	KeySessionID          = "sessionId"
	KeySignedIn           = "signedIn"
	KeySlug               = "slug"
	KeySpanID             = "spanId"
	KeyTag                = "tag"
	KeyToken              = "token"
	KeyTraceID            = "traceId"
	KeyUserID             = "userId"
	KeyWallet             = "wallet"
	KeyWishlist           = "wishlist"
)
