package app

import (
	"context"
	"log/slog"

	"github.com/vrcorp/videohive/internal/domain"
)

// Cart is the scoped cart container.
type Cart struct {
	*Container[domain.CartItem]
}

// NewCart creates the cart container.
func NewCart(kv domain.KeyValueStore, identity *Identity, roles *RoleStore, logger *slog.Logger) *Cart {
	return &Cart{Container: NewContainer[domain.CartItem](domain.KindCart, kv, identity, roles, logger)}
}

// TotalPrice sums Price over all items in the active partition.
// OriginalPrice is display-only and never enters the total.
func (c *Cart) TotalPrice(ctx context.Context) float64 {
	var total float64
	for _, item := range c.Items(ctx) {
		total += item.Price
	}
	return total
}

// Wishlist is the scoped wishlist container.
type Wishlist struct {
	*Container[domain.WishlistItem]
}

// NewWishlist creates the wishlist container.
func NewWishlist(kv domain.KeyValueStore, identity *Identity, roles *RoleStore, logger *slog.Logger) *Wishlist {
	return &Wishlist{Container: NewContainer[domain.WishlistItem](domain.KindWishlist, kv, identity, roles, logger)}
}
