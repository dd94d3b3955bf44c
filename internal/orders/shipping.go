package orders

import "strings"

// Flat shipping tiers in rupees. The same figures are used by the
// payment-intent amount so the charge and the order total cannot drift.
const (
	StandardShippingCost int64 = 150
	ExpressShippingCost  int64 = 300
)

// ShippingCost resolves a shipping method to its flat rate. Anything that
// is not express ships standard, matching the old checkout behavior.
func ShippingCost(method string) int64 {
	if strings.EqualFold(method, "express") {
		return ExpressShippingCost
	}
	return StandardShippingCost
}
