// internal/domain/order/service.go
package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/your-org/delivery-backend/internal/config"
	"github.com/your-org/delivery-backend/internal/domain/cart"
	"github.com/your-org/delivery-backend/internal/pkg/pricing"
)

// Sentinel errors for order operations.
var (
	ErrOrderNotFound     = fmt.Errorf("order not found")
	ErrInvalidTransition = fmt.Errorf("invalid status transition")
)

// Service handles order persistence and lifecycle
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ItemInput is one line of a composed order submission.
type ItemInput struct {
	ProductID      string
	Name           string
	Quantity       int
	Price          float64
	Total          float64
	Customizations *cart.Customization
}

// CreateInput is the composed submission payload produced by checkout.
type CreateInput struct {
	StoreSlug             string
	CustomerID            string
	Type                  OrderType
	PaymentMethod         string
	Subtotal              float64
	DeliveryFee           float64
	Discount              float64
	Total                 float64
	Notes                 string
	EstimatedDeliveryTime string
	Items                 []ItemInput
}

// ListRequest filters the order listings of the merchant dashboard.
type ListRequest struct {
	Status OrderStatus
	Limit  int
	Offset int
}

// Create persists a composed order.
func (s *Service) Create(input *CreateInput) (*Order, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("order requires at least one item")
	}

	o := Order{
		ID:                    uuid.New().String(),
		OrderNumber:           generateOrderNumber(),
		StoreSlug:             input.StoreSlug,
		CustomerID:            input.CustomerID,
		Type:                  input.Type,
		Status:                OrderStatusPending,
		PaymentMethod:         input.PaymentMethod,
		PaymentStatus:         PaymentStatusPending,
		Subtotal:              pricing.Price(pricing.Round2(input.Subtotal)),
		DeliveryFee:           pricing.Price(pricing.Round2(input.DeliveryFee)),
		Discount:              pricing.Price(pricing.Round2(input.Discount)),
		Total:                 pricing.Price(pricing.Round2(input.Total)),
		Notes:                 input.Notes,
		EstimatedDeliveryTime: input.EstimatedDeliveryTime,
	}

	for _, item := range input.Items {
		o.Items = append(o.Items, OrderItem{
			ID:             uuid.New().String(),
			OrderID:        o.ID,
			ProductID:      item.ProductID,
			Name:           item.Name,
			Quantity:       item.Quantity,
			Price:          pricing.Price(item.Price),
			Total:          pricing.Price(pricing.Round2(item.Total)),
			Customizations: item.Customizations,
		})
	}

	if err := s.db.Create(&o).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return &o, nil
}

// GetByNumber retrieves an order scoped to a store.
func (s *Service) GetByNumber(storeSlug, orderNumber string) (*Order, error) {
	var o Order
	err := s.db.Preload("Items").
		Where("order_number = ? AND store_slug = ?", orderNumber, storeSlug).
		First(&o).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}
	return &o, nil
}

// ListByStore returns the orders of a store, newest first.
func (s *Service) ListByStore(storeSlug string, req *ListRequest) ([]Order, error) {
	query := s.db.Preload("Items").
		Where("store_slug = ?", storeSlug).
		Order("created_at DESC")

	if req != nil {
		if req.Status != "" {
			query = query.Where("status = ?", req.Status)
		}
		if req.Limit > 0 {
			query = query.Limit(req.Limit).Offset(req.Offset)
		}
	}

	var orders []Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListByCustomer returns a customer's order history within a store.
func (s *Service) ListByCustomer(storeSlug, customerID string) ([]Order, error) {
	var orders []Order
	err := s.db.Preload("Items").
		Where("store_slug = ? AND customer_id = ?", storeSlug, customerID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus advances an order through its lifecycle.
func (s *Service) UpdateStatus(storeSlug, orderNumber string, next OrderStatus) (*Order, error) {
	o, err := s.GetByNumber(storeSlug, orderNumber)
	if err != nil {
		return nil, err
	}

	if !o.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, next)
	}

	if err := s.db.Model(o).Update("status", next).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	o.Status = next
	return o, nil
}

// Cancel cancels an order that has not started preparation.
func (s *Service) Cancel(storeSlug, orderNumber string) (*Order, error) {
	o, err := s.GetByNumber(storeSlug, orderNumber)
	if err != nil {
		return nil, err
	}
	if !o.CanBeCancelled() {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, OrderStatusCancelled)
	}

	if err := s.db.Model(o).Update("status", OrderStatusCancelled).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}
	o.Status = OrderStatusCancelled
	return o, nil
}

// MarkPaid records payment confirmation coming from the external collaborator.
func (s *Service) MarkPaid(storeSlug, orderNumber string) (*Order, error) {
	o, err := s.GetByNumber(storeSlug, orderNumber)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(o).Update("payment_status", PaymentStatusPaid).Error; err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}
	o.PaymentStatus = PaymentStatusPaid
	return o, nil
}

// generateOrderNumber builds a short, human-quotable order number.
// Format: PED-YYYYMMDD-XXXXXX
func generateOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return fmt.Sprintf("PED-%s-%s", time.Now().UTC().Format("20060102"), suffix)
}
