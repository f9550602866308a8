// internal/domain/cart/details.go
package cart

import (
	"fmt"
	"strings"

	"github.com/your-org/delivery-backend/internal/pkg/pricing"
)

// DetailRowKind discriminates the customization summary rows.
type DetailRowKind string

const (
	DetailRowAddon   DetailRowKind = "addon"
	DetailRowRemoved DetailRowKind = "removed"
	DetailRowNotes   DetailRowKind = "notes"
)

// DetailRow is one human-readable line of a customization summary, as shown
// in cart, checkout and order history views.
type DetailRow struct {
	Kind         DetailRowKind `json:"kind"`
	Label        string        `json:"label"`
	PriceDisplay string        `json:"price_display,omitempty"`
}

// DetailRows reconstructs the customization summary for a line item:
// one "+{qty}x {addon}" row with its line cost per selected addon, one
// "–{ingredient}" row per removed ingredient, and a trailing notes row when
// special instructions exist. A line item without customization data yields
// no rows at all. Addon and ingredient ids that no longer resolve against the
// product snapshot are silently skipped.
func DetailRows(item *LineItem) []DetailRow {
	if item == nil || item.Customization.IsEmpty() {
		return nil
	}

	cust := item.Customization
	var rows []DetailRow

	// Walk the product's addon list so row order is stable.
	for i := range item.Product.Addons {
		addon := &item.Product.Addons[i]
		qty, ok := cust.SelectedAddons[addon.ID]
		if !ok || qty <= 0 {
			continue
		}
		cost := pricing.ToNumeric(addon.Price) * float64(qty)
		rows = append(rows, DetailRow{
			Kind:         DetailRowAddon,
			Label:        fmt.Sprintf("+%dx %s", qty, addon.Name),
			PriceDisplay: "R$ " + pricing.Display(cost),
		})
	}

	for _, id := range cust.RemovedIngredients {
		ing := item.Product.FindIngredient(id)
		if ing == nil {
			continue
		}
		rows = append(rows, DetailRow{
			Kind:  DetailRowRemoved,
			Label: "–" + ing.Name,
		})
	}

	if notes := strings.TrimSpace(cust.SpecialInstructions); notes != "" {
		rows = append(rows, DetailRow{
			Kind:  DetailRowNotes,
			Label: notes,
		})
	}

	return rows
}
