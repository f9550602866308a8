package cart

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"github.com/your-org/delivery-backend/internal/domain/product"
	"github.com/your-org/delivery-backend/internal/pkg/pricing"
)

func pizzaFixture() *product.Product {
	return &product.Product{
		ID:        "prod-1",
		StoreSlug: "pizzaria-do-ze",
		Name:      "Pizza Margherita",
		Price:     pricing.Price(32.15),
		IsActive:  true,
		Ingredients: []product.Ingredient{
			{ID: "ingredient-1", ProductID: "prod-1", Name: "Mussarela", Included: true, Removable: false},
			{ID: "ingredient-2", ProductID: "prod-1", Name: "Tomate", Included: true, Removable: true},
			{ID: "ingredient-3", ProductID: "prod-1", Name: "Manjericão", Included: false, Removable: false},
		},
		Addons: []product.Addon{
			{ID: "addon-1", ProductID: "prod-1", Name: "Borda Recheada", Price: pricing.Price(5), MaxQuantity: 1, IsActive: true},
			{ID: "addon-2", ProductID: "prod-1", Name: "Extra Queijo", Price: pricing.Price(3), IsActive: true},
		},
	}
}

func newTestService() (*Service, *MemoryRepository) {
	repo := NewMemoryRepository()
	return NewService(repo), repo
}

func TestAddToCart_UncustomizedMergesIntoOneLine(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	prod := pizzaFixture()

	_, err := svc.AddToCart(ctx, "pizzaria-do-ze", prod, 2, nil)
	require.NoError(t, err)

	c, err := svc.AddToCart(ctx, "pizzaria-do-ze", prod, 3, nil)
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	require.Equal(t, 5, c.Items[0].Quantity)
	require.Equal(t, 5, c.ItemCount)
}

func TestAddToCart_CustomizedNeverMerges(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	prod := pizzaFixture()

	cust := func() *Customization {
		return &Customization{SelectedAddons: map[string]int{"addon-2": 1}}
	}

	_, err := svc.AddToCart(ctx, "pizzaria-do-ze", prod, 1, cust())
	require.NoError(t, err)

	c, err := svc.AddToCart(ctx, "pizzaria-do-ze", prod, 1, cust())
	require.NoError(t, err)

	require.Len(t, c.Items, 2, "identical customizations still produce distinct lines")
	require.NotEqual(t, c.Items[0].ID, c.Items[1].ID)
}

func TestAddToCart_EmptyCustomizationBehavesLikeNone(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	prod := pizzaFixture()

	_, err := svc.AddToCart(ctx, "pizzaria-do-ze", prod, 1, &Customization{})
	require.NoError(t, err)

	c, err := svc.AddToCart(ctx, "pizzaria-do-ze", prod, 1, nil)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	require.Equal(t, 2, c.Items[0].Quantity)
}

func TestAddToCart_InvalidInput(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, "pizzaria-do-ze", nil, 1, nil)
	require.ErrorIs(t, err, ErrNilProduct)

	_, err = svc.AddToCart(ctx, "pizzaria-do-ze", pizzaFixture(), 0, nil)
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartTotal_IncludesAddonsPerLineQuantity(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	prod := pizzaFixture()

	// (32.15 + 1*5.00 + 2*3.00) * 2 = 86.30
	c, err := svc.AddToCart(ctx, "pizzaria-do-ze", prod, 2, &Customization{
		SelectedAddons: map[string]int{"addon-1": 1, "addon-2": 2},
	})
	require.NoError(t, err)
	require.Equal(t, 86.30, c.Total)
	require.Equal(t, 2, c.ItemCount)

	// Recomputing without mutation is idempotent.
	before := c.Total
	c.Recompute()
	require.Equal(t, before, c.Total)
}

func TestAddToCart_ClampsAddonQuantityToMax(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	prod := pizzaFixture()

	c, err := svc.AddToCart(ctx, "pizzaria-do-ze", prod, 1, &Customization{
		SelectedAddons: map[string]int{"addon-1": 4},
	})
	require.NoError(t, err)
	require.Equal(t, 1, c.Items[0].Customization.SelectedAddons["addon-1"])
	// 32.15 + 1*5.00
	require.Equal(t, 37.15, c.Total)
}

func TestCustomizationNormalize_TruncatesInstructionsByRunes(t *testing.T) {
	cust := &Customization{
		SpecialInstructions: strings.Repeat("ç", MaxSpecialInstructionsLen+20),
	}
	cust.Normalize(pizzaFixture())

	require.True(t, utf8.ValidString(cust.SpecialInstructions))
	require.Equal(t, MaxSpecialInstructionsLen, utf8.RuneCountInString(cust.SpecialInstructions))
}

func TestCustomizationNormalize_IngredientInvariants(t *testing.T) {
	prod := pizzaFixture()
	cust := &Customization{
		// ingredient-1 is included and not removable, ingredient-3 is optional
		SelectedIngredients: []string{"ingredient-1", "ingredient-3", "ghost"},
		RemovedIngredients:  []string{"ingredient-1", "ingredient-2", "ingredient-3"},
		SelectedAddons:      map[string]int{"addon-2": 0},
	}
	cust.Normalize(prod)

	require.Equal(t, []string{"ingredient-3"}, cust.SelectedIngredients)
	require.Equal(t, []string{"ingredient-2"}, cust.RemovedIngredients)
	require.Empty(t, cust.SelectedAddons)
}

func TestUpdateQuantity_ZeroAndNegativeRemoveLine(t *testing.T) {
	for _, qty := range []int{0, -1} {
		svc, _ := newTestService()
		ctx := context.Background()

		c, err := svc.AddToCart(ctx, "pizzaria-do-ze", pizzaFixture(), 2, nil)
		require.NoError(t, err)
		lineID := c.Items[0].ID

		c, err = svc.UpdateQuantity(ctx, "pizzaria-do-ze", lineID, qty)
		require.NoError(t, err)
		require.Empty(t, c.Items)
		require.Equal(t, 0, c.ItemCount)
		require.Equal(t, 0.0, c.Total)
	}
}

func TestUpdateQuantity_SetsQuantityAndRecomputes(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	c, err := svc.AddToCart(ctx, "pizzaria-do-ze", pizzaFixture(), 1, nil)
	require.NoError(t, err)

	c, err = svc.UpdateQuantity(ctx, "pizzaria-do-ze", c.Items[0].ID, 3)
	require.NoError(t, err)
	require.Equal(t, 3, c.Items[0].Quantity)
	require.Equal(t, 3, c.ItemCount)
	require.Equal(t, pricing.Round2(32.15*3), c.Total)
}

func TestRemoveFromCart_UnknownIDIsNoop(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	c, err := svc.AddToCart(ctx, "pizzaria-do-ze", pizzaFixture(), 1, nil)
	require.NoError(t, err)

	c, err = svc.RemoveFromCart(ctx, "pizzaria-do-ze", "does-not-exist")
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
}

func TestClearCart_RetainsTenantTag(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, "pizzaria-do-ze", pizzaFixture(), 2, nil)
	require.NoError(t, err)

	c, err := svc.ClearCart(ctx, "pizzaria-do-ze")
	require.NoError(t, err)
	require.Empty(t, c.Items)
	require.Equal(t, 0, c.ItemCount)
	require.Equal(t, 0.0, c.Total)
	require.Equal(t, "pizzaria-do-ze", c.StoreSlug)
}

func TestPersistenceRoundTrip(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	saved, err := svc.AddToCart(ctx, "pizzaria-do-ze", pizzaFixture(), 2, &Customization{
		RemovedIngredients:  []string{"ingredient-2"},
		SelectedAddons:      map[string]int{"addon-1": 1},
		SpecialInstructions: "Sem cebola, por favor",
	})
	require.NoError(t, err)

	// A fresh read goes through the serialized snapshot.
	loaded, err := svc.GetCart(ctx, "pizzaria-do-ze")
	require.NoError(t, err)
	require.Equal(t, saved.Total, loaded.Total)
	require.Equal(t, saved.ItemCount, loaded.ItemCount)
	require.Equal(t, saved.Items, loaded.Items)
}

func TestCorruptSnapshotLoadsAsEmptyCart(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, "pizzaria-do-ze", pizzaFixture(), 2, nil)
	require.NoError(t, err)

	repo.Corrupt("pizzaria-do-ze")

	c, err := svc.GetCart(ctx, "pizzaria-do-ze")
	require.NoError(t, err)
	require.Empty(t, c.Items)
	require.Equal(t, "pizzaria-do-ze", c.StoreSlug)
}

func TestCartsAreIsolatedPerTenant(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, "pizzaria-do-ze", pizzaFixture(), 2, nil)
	require.NoError(t, err)

	other, err := svc.GetCart(ctx, "hamburgueria-da-ana")
	require.NoError(t, err)
	require.Empty(t, other.Items)
	require.Equal(t, "hamburgueria-da-ana", other.StoreSlug)
}

func TestKey(t *testing.T) {
	require.Equal(t, "delivery-cart-pizzaria-do-ze", Key("pizzaria-do-ze"))
	require.Equal(t, "delivery-cart", Key(""))
}
