package cart

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetailRows_FullCustomization(t *testing.T) {
	item := &LineItem{
		ID:       "line-1",
		Product:  *pizzaFixture(),
		Quantity: 1,
		Customization: &Customization{
			RemovedIngredients:  []string{"ingredient-2"},
			SelectedAddons:      map[string]int{"addon-1": 1, "addon-2": 2},
			SpecialInstructions: "  Bem assada  ",
		},
	}

	rows := DetailRows(item)
	require.Len(t, rows, 4)

	require.Equal(t, DetailRowAddon, rows[0].Kind)
	require.Equal(t, "+1x Borda Recheada", rows[0].Label)
	require.Equal(t, "R$ 5,00", rows[0].PriceDisplay)

	require.Equal(t, DetailRowAddon, rows[1].Kind)
	require.Equal(t, "+2x Extra Queijo", rows[1].Label)
	require.Equal(t, "R$ 6,00", rows[1].PriceDisplay)

	require.Equal(t, DetailRowRemoved, rows[2].Kind)
	require.Equal(t, "–Tomate", rows[2].Label)
	require.Empty(t, rows[2].PriceDisplay)

	require.Equal(t, DetailRowNotes, rows[3].Kind)
	require.Equal(t, "Bem assada", rows[3].Label)
}

func TestDetailRows_NoCustomizationRendersNothing(t *testing.T) {
	require.Nil(t, DetailRows(nil))

	item := &LineItem{Product: *pizzaFixture(), Quantity: 1}
	require.Nil(t, DetailRows(item))

	item.Customization = &Customization{}
	require.Nil(t, DetailRows(item))
}

func TestDetailRows_UnresolvableIDsAreSkipped(t *testing.T) {
	item := &LineItem{
		Product:  *pizzaFixture(),
		Quantity: 1,
		Customization: &Customization{
			RemovedIngredients: []string{"ghost-ingredient", "ingredient-2"},
			SelectedAddons:     map[string]int{"ghost-addon": 3},
		},
	}

	rows := DetailRows(item)
	require.Len(t, rows, 1)
	require.Equal(t, "–Tomate", rows[0].Label)
}

func TestDetailRows_ZeroQuantityAddonSkipped(t *testing.T) {
	item := &LineItem{
		Product:  *pizzaFixture(),
		Quantity: 1,
		Customization: &Customization{
			SelectedAddons: map[string]int{"addon-1": 0, "addon-2": 1},
		},
	}

	rows := DetailRows(item)
	require.Len(t, rows, 1)
	require.Equal(t, "+1x Extra Queijo", rows[0].Label)
	require.Equal(t, "R$ 3,00", rows[0].PriceDisplay)
}
