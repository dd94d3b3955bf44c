package domain

type Category struct {
	ID          string `json:"category_id"`
	Name        string `json:"name"`
	ParentID    string `json:"parent_id,omitempty"`
	Description string `json:"description,omitempty"`
}

// CategoryNode is a category with its subcategories, composed in
// application code from the flat categories table.
type CategoryNode struct {
	Category
	Children []*CategoryNode `json:"children"`
}

type Size struct {
	ID   string `json:"size_id"`
	Name string `json:"name"`
}

type Color struct {
	ID      string `json:"color_id"`
	Name    string `json:"name"`
	HexCode string `json:"hex_code,omitempty"`
}

// ProductSummary is a catalog listing row. TotalStock is the sum of
// available stock across the product's variants.
type ProductSummary struct {
	ID           string `json:"product_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        int64  `json:"price"`
	TotalStock   int    `json:"total_stock"`
	CategoryName string `json:"category_name"`
	ImageURL     string `json:"image_url,omitempty"`
}

type Variant struct {
	ID        string `json:"variant_id"`
	ProductID string `json:"product_id,omitempty"`
	SizeID    string `json:"size_id"`
	SizeName  string `json:"size_name"`
	ColorID   string `json:"color_id"`
	ColorName string `json:"color_name"`
	HexCode   string `json:"hex_code,omitempty"`
	SKU       string `json:"sku"`
	Stock     int    `json:"stock_quantity"`
}

type ProductImage struct {
	URL          string `json:"image_url"`
	IsPrimary    bool   `json:"is_primary"`
	DisplayOrder int    `json:"display_order"`
}

type ProductDetail struct {
	ProductSummary
	Variants []Variant      `json:"variants"`
	Images   []ProductImage `json:"images"`
}
