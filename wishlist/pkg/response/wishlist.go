package response

import productResponse "github.com/Alturino/storefront/product/pkg/response"

type Wishlist struct {
	Items []productResponse.Product `json:"items"`
	Count int                       `json:"count"`
}

func NewWishlist(items []productResponse.Product) Wishlist {
	if items == nil {
		items = []productResponse.Product{}
	}
	return Wishlist{Items: items, Count: len(items)}
}
