package domain

// StockLevel is the ledger view of a single variant.
type StockLevel struct {
	VariantID string `json:"variant_id"`
	SKU       string `json:"sku"`
	Available int    `json:"available"`
}
