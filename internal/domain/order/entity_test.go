// internal/domain/order/entity_test.go
package order

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{"pending to confirmed", OrderStatusPending, OrderStatusConfirmed, true},
		{"pending to cancelled", OrderStatusPending, OrderStatusCancelled, true},
		{"pending cannot skip to preparing", OrderStatusPending, OrderStatusPreparing, false},
		{"confirmed to preparing", OrderStatusConfirmed, OrderStatusPreparing, true},
		{"preparing to out for delivery", OrderStatusPreparing, OrderStatusOutForDelivery, true},
		{"preparing straight to delivered for pickup", OrderStatusPreparing, OrderStatusDelivered, true},
		{"preparing cannot be cancelled", OrderStatusPreparing, OrderStatusCancelled, false},
		{"out for delivery to delivered", OrderStatusOutForDelivery, OrderStatusDelivered, true},
		{"delivered is terminal", OrderStatusDelivered, OrderStatusConfirmed, false},
		{"cancelled is terminal", OrderStatusCancelled, OrderStatusPending, false},
		{"no backwards movement", OrderStatusConfirmed, OrderStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Order{Status: tt.from}
			require.Equal(t, tt.allowed, o.CanTransitionTo(tt.to))
		})
	}
}

func TestCanBeCancelled(t *testing.T) {
	cancellable := []OrderStatus{OrderStatusPending, OrderStatusConfirmed}
	for _, status := range cancellable {
		o := Order{Status: status}
		require.True(t, o.CanBeCancelled(), "expected %s to be cancellable", status)
	}

	locked := []OrderStatus{OrderStatusPreparing, OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCancelled}
	for _, status := range locked {
		o := Order{Status: status}
		require.False(t, o.CanBeCancelled(), "expected %s to be locked", status)
	}
}

func TestGenerateOrderNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^PED-\d{8}-[0-9A-F]{6}$`)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		number := generateOrderNumber()
		require.Regexp(t, pattern, number)
		require.False(t, seen[number], "order numbers must not repeat: %s", number)
		seen[number] = true
	}
}
