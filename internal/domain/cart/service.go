// internal/domain/cart/service.go
package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/your-org/delivery-backend/internal/domain/product"
)

// Sentinel errors for cart operations.
var (
	ErrInvalidQuantity = fmt.Errorf("a quantidade deve ser maior que zero")
	ErrNilProduct      = fmt.Errorf("produto é obrigatório")
)

// Service owns the cart state transitions for all tenants. It is stateless:
// every operation loads the snapshot, mutates it, recomputes the aggregates
// and persists the result, so two rapid mutations produce two sequential
// writes that each reflect a fully consistent cart.
type Service struct {
	repo Repository
}

// NewService creates a cart service on top of a snapshot repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetCart returns the current cart for a tenant, hydrating from storage.
// Absent or corrupt storage yields a fresh empty cart.
func (s *Service) GetCart(ctx context.Context, storeSlug string) (*Cart, error) {
	c, err := s.repo.Load(ctx, storeSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if c == nil {
		return NewCart(storeSlug), nil
	}
	c.StoreSlug = storeSlug
	c.Recompute()
	return c, nil
}

// AddToCart appends a product to the cart. An uncustomized add merges into an
// existing uncustomized line for the same product; a customized add always
// creates a new line, even when the customization is identical to an existing
// one.
func (s *Service) AddToCart(ctx context.Context, storeSlug string, prod *product.Product, quantity int, customization *Customization) (*Cart, error) {
	if prod == nil {
		return nil, ErrNilProduct
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	if customization != nil {
		customization.Normalize(prod)
		if customization.IsEmpty() {
			customization = nil
		}
	}

	c, err := s.GetCart(ctx, storeSlug)
	if err != nil {
		return nil, err
	}

	if customization == nil {
		if i := c.findMergeableLine(prod.ID); i >= 0 {
			c.Items[i].Quantity += quantity
			return s.commit(ctx, storeSlug, c)
		}
	}

	c.Items = append(c.Items, LineItem{
		ID:            uuid.New().String(),
		Product:       *prod,
		Quantity:      quantity,
		Customization: customization,
	})
	return s.commit(ctx, storeSlug, c)
}

// RemoveFromCart deletes a line item by id. An unknown id is a no-op.
func (s *Service) RemoveFromCart(ctx context.Context, storeSlug, lineID string) (*Cart, error) {
	c, err := s.GetCart(ctx, storeSlug)
	if err != nil {
		return nil, err
	}

	if i := c.findLine(lineID); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
	return s.commit(ctx, storeSlug, c)
}

// UpdateQuantity sets the quantity of a line item. A quantity of zero or less
// removes the line entirely.
func (s *Service) UpdateQuantity(ctx context.Context, storeSlug, lineID string, quantity int) (*Cart, error) {
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, storeSlug, lineID)
	}

	c, err := s.GetCart(ctx, storeSlug)
	if err != nil {
		return nil, err
	}

	if i := c.findLine(lineID); i >= 0 {
		c.Items[i].Quantity = quantity
	}
	return s.commit(ctx, storeSlug, c)
}

// ClearCart empties the item list, keeping the tenant tag.
func (s *Service) ClearCart(ctx context.Context, storeSlug string) (*Cart, error) {
	c := NewCart(storeSlug)
	return s.commit(ctx, storeSlug, c)
}

// commit recomputes the aggregates and persists the snapshot.
func (s *Service) commit(ctx context.Context, storeSlug string, c *Cart) (*Cart, error) {
	c.Recompute()
	if err := s.repo.Save(ctx, storeSlug, c); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return c, nil
}
