// internal/domain/order/entity.go
package order

import (
	"time"

	"gorm.io/gorm"

	"github.com/your-org/delivery-backend/internal/domain/cart"
	"github.com/your-org/delivery-backend/internal/pkg/pricing"
)

// OrderType distinguishes delivery from counter pickup.
type OrderType string

const (
	OrderTypeDelivery OrderType = "delivery"
	OrderTypePickup   OrderType = "pickup"
)

// OrderStatus represents the order status
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// PaymentStatus represents payment status
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Order represents a submitted order for one store tenant.
type Order struct {
	ID          string `gorm:"primaryKey;size:64" json:"id"`
	OrderNumber string `gorm:"uniqueIndex;not null;size:50" json:"order_number"`
	StoreSlug   string `gorm:"not null;index;size:100" json:"store_slug"`
	CustomerID  string `gorm:"index;size:64" json:"customer_id"`

	Type          OrderType     `gorm:"not null;size:20" json:"type"`
	Status        OrderStatus   `gorm:"not null;default:'pending';size:30" json:"status"`
	PaymentMethod string        `gorm:"not null;size:50" json:"payment_method"`
	PaymentStatus PaymentStatus `gorm:"not null;default:'pending';size:20" json:"payment_status"`

	// Financial information. No taxes are modeled; discount is reserved for a
	// future coupon engine and is always zero today.
	Subtotal    pricing.Price `gorm:"not null" json:"subtotal"`
	DeliveryFee pricing.Price `gorm:"default:0" json:"delivery_fee"`
	Discount    pricing.Price `gorm:"default:0" json:"discount"`
	Total       pricing.Price `gorm:"not null" json:"total"`

	// Free text: customer contact and formatted address travel here.
	Notes                 string `gorm:"type:text" json:"notes"`
	EstimatedDeliveryTime string `gorm:"size:50" json:"estimated_delivery_time,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// OrderItem is the immutable snapshot of one cart line at submission time.
type OrderItem struct {
	ID        string        `gorm:"primaryKey;size:64" json:"id"`
	OrderID   string        `gorm:"not null;index;size:64" json:"order_id"`
	ProductID string        `gorm:"not null;size:64" json:"product_id"`
	Name      string        `gorm:"not null;size:255" json:"name"`
	Quantity  int           `gorm:"not null" json:"quantity"`
	Price     pricing.Price `gorm:"not null" json:"price"`
	Total     pricing.Price `gorm:"not null" json:"total"`

	// Customization echo, serialized as JSON.
	Customizations *cart.Customization `gorm:"serializer:json" json:"customizations,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }

// CanBeCancelled checks if the order can still be cancelled.
func (o *Order) CanBeCancelled() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusConfirmed
}

// statusTransitions lists the allowed forward transitions.
var statusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:        {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:      {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing:      {OrderStatusOutForDelivery, OrderStatusDelivered},
	OrderStatusOutForDelivery: {OrderStatusDelivered},
}

// CanTransitionTo reports whether a status change is allowed.
func (o *Order) CanTransitionTo(next OrderStatus) bool {
	for _, s := range statusTransitions[o.Status] {
		if s == next {
			return true
		}
	}
	return false
}
