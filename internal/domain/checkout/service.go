// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/your-org/delivery-backend/internal/config"
	"github.com/your-org/delivery-backend/internal/domain/cart"
	"github.com/your-org/delivery-backend/internal/domain/order"
	"github.com/your-org/delivery-backend/internal/domain/store"
	"github.com/your-org/delivery-backend/internal/pkg/pricing"
)

// Sentinel errors for checkout.
var (
	ErrEmptyCart           = fmt.Errorf("o carrinho está vazio")
	ErrStoreClosed         = fmt.Errorf("a loja não está aceitando pedidos no momento")
	ErrDuplicateSubmission = fmt.Errorf("este pedido já está sendo processado")
)

// orderStore is the slice of the order service the checkout flow needs.
type orderStore interface {
	Create(input *order.CreateInput) (*order.Order, error)
	GetByNumber(storeSlug, orderNumber string) (*order.Order, error)
}

// storeDirectory resolves tenants by slug.
type storeDirectory interface {
	GetBySlug(slug string) (*store.Store, error)
}

// Service derives the final payable total and turns a cart into a submitted
// order. The cart, tenant config and customer data are explicit inputs so the
// composition rules stay directly unit-testable.
type Service struct {
	reservations ReservationStore
	config       *config.Config
	cartService  *cart.Service
	orderService orderStore
	storeService storeDirectory
}

// NewService creates a new checkout service
func NewService(redisClient *redis.Client, cfg *config.Config, cartSvc *cart.Service, orderSvc *order.Service, storeSvc *store.Service) *Service {
	return &Service{
		reservations: NewRedisReservationStore(redisClient),
		config:       cfg,
		cartService:  cartSvc,
		orderService: orderSvc,
		storeService: storeSvc,
	}
}

// SubmitRequest represents an order submission
type SubmitRequest struct {
	Type           order.OrderType `json:"type" binding:"required"`
	PaymentMethod  string          `json:"payment_method" binding:"required"`
	Customer       CustomerInfo    `json:"customer"`
	Notes          string          `json:"notes"`
	IdempotencyKey string          `json:"idempotency_key"`
}

// Summary is the pricing breakdown shown before submission.
type Summary struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"delivery_fee"`
	Discount    float64 `json:"discount"`
	Total       float64 `json:"total"`
}

// Summarize computes the pricing breakdown for a cart under a store's rules.
func Summarize(c *cart.Cart, st *store.Store, orderType order.OrderType, defaultFee float64) Summary {
	subtotal := c.Subtotal()
	fee := DeliveryFee(st, orderType, subtotal, defaultFee)
	return Summary{
		Subtotal:    pricing.Round2(subtotal),
		DeliveryFee: pricing.Round2(fee),
		Discount:    0,
		Total:       pricing.Round2(subtotal + fee),
	}
}

// Compose validates a submission against the cart and tenant config and
// builds the order creation payload. It mutates nothing.
func Compose(c *cart.Cart, st *store.Store, customerID string, req *SubmitRequest, defaultFee float64) (*order.CreateInput, error) {
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if !st.AcceptingOrders {
		return nil, ErrStoreClosed
	}
	if err := CheckMinimumOrder(st, c.Subtotal()); err != nil {
		return nil, err
	}
	if err := ValidateCustomer(&req.Customer, req.Type); err != nil {
		return nil, err
	}

	summary := Summarize(c, st, req.Type, defaultFee)

	input := &order.CreateInput{
		StoreSlug:     st.Slug,
		CustomerID:    customerID,
		Type:          req.Type,
		PaymentMethod: req.PaymentMethod,
		Subtotal:      summary.Subtotal,
		DeliveryFee:   summary.DeliveryFee,
		Discount:      summary.Discount,
		Total:         summary.Total,
		Notes:         FormatNotes(&req.Customer, req.Type, req.Notes),
	}
	if req.Type == order.OrderTypeDelivery {
		input.EstimatedDeliveryTime = st.EstimatedDeliveryTime
	}

	for i := range c.Items {
		item := &c.Items[i]
		input.Items = append(input.Items, order.ItemInput{
			ProductID:      item.Product.ID,
			Name:           item.Product.Name,
			Quantity:       item.Quantity,
			Price:          pricing.ToNumeric(item.Product.Price),
			Total:          item.Total(),
			Customizations: item.Customization,
		})
	}

	return input, nil
}

// Submit runs the full flow: resolve the store, guard against duplicate
// submission, compose from the cart, persist the order and clear the cart.
// Only a completed order keeps its reservation; every failure releases the
// key so the same submission stays retryable. A completed key replays the
// stored order instead of creating a second one.
func (s *Service) Submit(ctx context.Context, storeSlug, customerID string, req *SubmitRequest) (*order.Order, error) {
	st, err := s.storeService.GetBySlug(storeSlug)
	if err != nil {
		return nil, err
	}

	if req.IdempotencyKey != "" {
		replayed, err := s.reservations.Reserve(ctx, storeSlug, req.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if replayed != "" {
			return s.orderService.GetByNumber(storeSlug, replayed)
		}
	}

	c, err := s.cartService.GetCart(ctx, cart.Scope(storeSlug, customerID))
	if err != nil {
		s.releaseReservation(ctx, storeSlug, req)
		return nil, err
	}

	input, err := Compose(c, st, customerID, req, s.config.Delivery.DefaultFee)
	if err != nil {
		s.releaseReservation(ctx, storeSlug, req)
		return nil, err
	}

	o, err := s.orderService.Create(input)
	if err != nil {
		s.releaseReservation(ctx, storeSlug, req)
		return nil, err
	}

	if req.IdempotencyKey != "" {
		if err := s.reservations.Complete(ctx, storeSlug, req.IdempotencyKey, o.OrderNumber); err != nil {
			// A stale pending marker would turn replays into conflicts.
			logrus.WithError(err).Warn("Failed to record checkout reservation result")
			s.releaseReservation(ctx, storeSlug, req)
		}
	}

	if _, err := s.cartService.ClearCart(ctx, cart.Scope(storeSlug, customerID)); err != nil {
		// The order exists; a failed cart clear must not fail the submission.
		return o, nil
	}
	return o, nil
}

// releaseReservation drops the idempotency reservation of a submission that
// did not complete.
func (s *Service) releaseReservation(ctx context.Context, storeSlug string, req *SubmitRequest) {
	if req.IdempotencyKey == "" {
		return
	}
	if err := s.reservations.Release(ctx, storeSlug, req.IdempotencyKey); err != nil {
		logrus.WithError(err).Warn("Failed to release checkout reservation")
	}
}
