package domain

// CartItem is one line of a customer's cart. UnitPrice is snapshotted from
// the product at add time and never re-derived afterwards; Subtotal is
// quantity times that frozen price.
type CartItem struct {
	ID          string `json:"cart_item_id"`
	VariantID   string `json:"variant_id"`
	SKU         string `json:"sku"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
	Subtotal    int64  `json:"subtotal"`
	ImageURL    string `json:"image_url,omitempty"`
}

type WishlistEntry struct {
	ID          string `json:"wishlist_id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"name"`
	Price       int64  `json:"price"`
	ImageURL    string `json:"image_url,omitempty"`
}
