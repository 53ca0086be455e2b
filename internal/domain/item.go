package domain

// Item is a line item held by a scoped state container. Identity and
// equality are by id only; all other fields are display payload.
type Item interface {
	ItemID() string
}

// CartItem is an immutable cart line item. Product fields are denormalized
// into the item so the cart renders without a catalog lookup.
type CartItem struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Thumbnail     string   `json:"thumbnail"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Instructor    string   `json:"instructor"`
	Duration      string   `json:"duration"`
	Level         string   `json:"level"`
}

func (i CartItem) ItemID() string { return i.ID }

// WishlistItem extends the cart line item with catalog metadata.
type WishlistItem struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Thumbnail     string   `json:"thumbnail"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Instructor    string   `json:"instructor"`
	Duration      string   `json:"duration"`
	Level         string   `json:"level"`
	Category      string   `json:"category"`
	Rating        float64  `json:"rating"`
	StudentsCount *int     `json:"studentsCount,omitempty"`
}

func (i WishlistItem) ItemID() string { return i.ID }
