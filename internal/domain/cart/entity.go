// internal/domain/cart/entity.go
package cart

import (
	"strings"

	"github.com/your-org/delivery-backend/internal/domain/product"
	"github.com/your-org/delivery-backend/internal/pkg/pricing"
)

// MaxSpecialInstructionsLen bounds the free-text note attached to a line item.
const MaxSpecialInstructionsLen = 200

// Customization describes a customer's choices for one product instance.
//
// Invariants: an ingredient that is not included by default may only appear in
// SelectedIngredients; an ingredient that is included and removable may only
// appear in RemovedIngredients; non-removable included ingredients appear in
// neither set. Normalize enforces these against the owning product.
type Customization struct {
	SelectedIngredients []string       `json:"selected_ingredients,omitempty"`
	RemovedIngredients  []string       `json:"removed_ingredients,omitempty"`
	SelectedAddons      map[string]int `json:"selected_addons,omitempty"`
	SpecialInstructions string         `json:"special_instructions,omitempty"`
}

// IsEmpty reports whether the customization carries no choices at all.
func (c *Customization) IsEmpty() bool {
	if c == nil {
		return true
	}
	return len(c.SelectedIngredients) == 0 &&
		len(c.RemovedIngredients) == 0 &&
		len(c.SelectedAddons) == 0 &&
		strings.TrimSpace(c.SpecialInstructions) == ""
}

// Normalize drops entries that violate the ingredient invariants, removes
// non-positive addon quantities, clamps quantities to the addon maximum and
// bounds the special instructions text.
func (c *Customization) Normalize(p *product.Product) {
	if c == nil {
		return
	}

	selected := c.SelectedIngredients[:0]
	for _, id := range c.SelectedIngredients {
		ing := p.FindIngredient(id)
		if ing != nil && !ing.Included {
			selected = append(selected, id)
		}
	}
	c.SelectedIngredients = selected

	removed := c.RemovedIngredients[:0]
	for _, id := range c.RemovedIngredients {
		ing := p.FindIngredient(id)
		if ing != nil && ing.Included && ing.Removable {
			removed = append(removed, id)
		}
	}
	c.RemovedIngredients = removed

	for id, qty := range c.SelectedAddons {
		if qty <= 0 {
			delete(c.SelectedAddons, id)
			continue
		}
		if addon := p.FindAddon(id); addon != nil && addon.MaxQuantity > 0 && qty > addon.MaxQuantity {
			c.SelectedAddons[id] = addon.MaxQuantity
		}
	}

	c.SpecialInstructions = strings.TrimSpace(c.SpecialInstructions)
	// Truncate by runes so a multi-byte character at the boundary is never
	// split into invalid UTF-8.
	if runes := []rune(c.SpecialInstructions); len(runes) > MaxSpecialInstructionsLen {
		c.SpecialInstructions = string(runes[:MaxSpecialInstructionsLen])
	}
}

// LineItem is one cart entry: a product snapshot plus quantity plus optional
// customization. The product is copied in so later catalog edits do not
// change what the customer already put in the cart.
type LineItem struct {
	ID            string          `json:"id"`
	Product       product.Product `json:"product"`
	Quantity      int             `json:"quantity"`
	Notes         string          `json:"notes,omitempty"`
	Customization *Customization  `json:"customization,omitempty"`
}

// UnitTotal is the price of one unit including selected addons.
func (li *LineItem) UnitTotal() float64 {
	total := pricing.ToNumeric(li.Product.Price)
	if li.Customization == nil {
		return total
	}
	for id, qty := range li.Customization.SelectedAddons {
		if qty <= 0 {
			continue
		}
		if addon := li.Product.FindAddon(id); addon != nil {
			total += pricing.ToNumeric(addon.Price) * float64(qty)
		}
	}
	return total
}

// Total is the full line cost: unit total times quantity.
func (li *LineItem) Total() float64 {
	return li.UnitTotal() * float64(li.Quantity)
}

// Cart is the per-tenant aggregate of line items. Total and ItemCount are
// derived values; Recompute rebuilds them from the full item list after every
// mutation so they can never drift from the items.
type Cart struct {
	Items     []LineItem `json:"items"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"item_count"`
	StoreSlug string     `json:"store_slug"`
}

// NewCart creates an empty cart tagged with the owning tenant.
func NewCart(storeSlug string) *Cart {
	return &Cart{
		Items:     []LineItem{},
		StoreSlug: storeSlug,
	}
}

// Recompute rebuilds Total and ItemCount from scratch.
func (c *Cart) Recompute() {
	var total float64
	count := 0
	for i := range c.Items {
		total += c.Items[i].Total()
		count += c.Items[i].Quantity
	}
	c.Total = pricing.Round2(total)
	c.ItemCount = count
}

// Subtotal is the sum of line totals. It equals Total because delivery fees
// and discounts are applied at checkout, never inside the cart.
func (c *Cart) Subtotal() float64 {
	return c.Total
}

// IsEmpty reports whether the cart holds no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// findLine returns the index of a line item by id, or -1.
func (c *Cart) findLine(lineID string) int {
	for i := range c.Items {
		if c.Items[i].ID == lineID {
			return i
		}
	}
	return -1
}

// findMergeableLine returns the index of an uncustomized line for the given
// product, or -1. Customized lines never participate in merging.
func (c *Cart) findMergeableLine(productID string) int {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID && c.Items[i].Customization == nil {
			return i
		}
	}
	return -1
}
