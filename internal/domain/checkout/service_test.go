package checkout

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/your-org/delivery-backend/internal/config"
	"github.com/your-org/delivery-backend/internal/domain/cart"
	"github.com/your-org/delivery-backend/internal/domain/order"
	"github.com/your-org/delivery-backend/internal/domain/product"
	"github.com/your-org/delivery-backend/internal/domain/store"
	"github.com/your-org/delivery-backend/internal/pkg/pricing"
)

func storeFixture() *store.Store {
	return &store.Store{
		ID:                    "store-1",
		Slug:                  "pizzaria-do-ze",
		Name:                  "Pizzaria do Zé",
		DeliveryFee:           pricing.Price(5),
		FreeDeliveryThreshold: pricing.Price(100),
		EstimatedDeliveryTime: "40-50 min",
		AcceptingOrders:       true,
	}
}

func cartWithSubtotal(t *testing.T, subtotal float64) *cart.Cart {
	t.Helper()
	c := cart.NewCart("pizzaria-do-ze")
	c.Items = append(c.Items, cart.LineItem{
		ID: "line-1",
		Product: product.Product{
			ID:        "prod-1",
			StoreSlug: "pizzaria-do-ze",
			Name:      "Pizza Margherita",
			Price:     pricing.Price(subtotal),
		},
		Quantity: 1,
	})
	c.Recompute()
	require.Equal(t, subtotal, c.Subtotal())
	return c
}

func validDeliveryRequest() *SubmitRequest {
	return &SubmitRequest{
		Type:          order.OrderTypeDelivery,
		PaymentMethod: "pix",
		Customer: CustomerInfo{
			Name:         "Maria Silva",
			Phone:        "(11) 98765-4321",
			Email:        "maria@example.com",
			PostalCode:   "01310-100",
			Street:       "Avenida Paulista",
			Number:       "1578",
			Neighborhood: "Bela Vista",
			City:         "São Paulo",
		},
	}
}

func TestDeliveryFee(t *testing.T) {
	st := storeFixture()

	tests := []struct {
		name      string
		orderType order.OrderType
		subtotal  float64
		want      float64
	}{
		{name: "delivery below threshold pays fee", orderType: order.OrderTypeDelivery, subtotal: 64.30, want: 5},
		{name: "delivery at threshold is free", orderType: order.OrderTypeDelivery, subtotal: 100, want: 0},
		{name: "delivery above threshold is free", orderType: order.OrderTypeDelivery, subtotal: 150, want: 0},
		{name: "pickup is always free", orderType: order.OrderTypePickup, subtotal: 10, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DeliveryFee(st, tt.orderType, tt.subtotal, 7))
		})
	}
}

func TestDeliveryFee_UnconfiguredFeeFallsBack(t *testing.T) {
	st := storeFixture()
	st.DeliveryFee = 0
	st.FreeDeliveryThreshold = 0

	require.Equal(t, 7.0, DeliveryFee(st, order.OrderTypeDelivery, 20, 7))
}

func TestSummarize_DeliveryScenarios(t *testing.T) {
	st := storeFixture()

	s := Summarize(cartWithSubtotal(t, 64.30), st, order.OrderTypeDelivery, 0)
	require.Equal(t, 64.30, s.Subtotal)
	require.Equal(t, 5.0, s.DeliveryFee)
	require.Equal(t, 69.30, s.Total)
	require.Equal(t, 0.0, s.Discount)

	s = Summarize(cartWithSubtotal(t, 100), st, order.OrderTypeDelivery, 0)
	require.Equal(t, 0.0, s.DeliveryFee)
	require.Equal(t, 100.0, s.Total)
}

func TestCheckMinimumOrder_Shortfall(t *testing.T) {
	st := storeFixture()
	st.MinimumOrder = pricing.Price(15)

	err := CheckMinimumOrder(st, 10)
	require.Error(t, err)

	var minErr *MinimumOrderError
	require.ErrorAs(t, err, &minErr)
	require.Equal(t, 5.0, minErr.Shortfall)
	require.Contains(t, minErr.Error(), "5,00")

	require.NoError(t, CheckMinimumOrder(st, 15))
	require.NoError(t, CheckMinimumOrder(storeFixture(), 0.01))
}

func TestValidateCustomer_Delivery(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CustomerInfo)
		field  string
	}{
		{name: "missing name", mutate: func(c *CustomerInfo) { c.Name = "  " }, field: "name"},
		{name: "short phone", mutate: func(c *CustomerInfo) { c.Phone = "1234-5678" }, field: "phone"},
		{name: "bad email", mutate: func(c *CustomerInfo) { c.Email = "maria@" }, field: "email"},
		{name: "short cep", mutate: func(c *CustomerInfo) { c.PostalCode = "1310" }, field: "postal_code"},
		{name: "missing street", mutate: func(c *CustomerInfo) { c.Street = "" }, field: "street"},
		{name: "missing number", mutate: func(c *CustomerInfo) { c.Number = "" }, field: "number"},
		{name: "missing neighborhood", mutate: func(c *CustomerInfo) { c.Neighborhood = "" }, field: "neighborhood"},
		{name: "missing city", mutate: func(c *CustomerInfo) { c.City = "" }, field: "city"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validDeliveryRequest()
			tt.mutate(&req.Customer)

			err := ValidateCustomer(&req.Customer, order.OrderTypeDelivery)
			require.Error(t, err)

			var valErr *ValidationError
			require.ErrorAs(t, err, &valErr)
			require.Len(t, valErr.Fields, 1)
			require.Equal(t, tt.field, valErr.Fields[0].Field)
		})
	}
}

func TestValidateCustomer_ValidAndOptionalEmail(t *testing.T) {
	req := validDeliveryRequest()
	require.NoError(t, ValidateCustomer(&req.Customer, order.OrderTypeDelivery))

	req.Customer.Email = ""
	require.NoError(t, ValidateCustomer(&req.Customer, order.OrderTypeDelivery))
}

func TestValidateCustomer_PickupSkipsAddress(t *testing.T) {
	info := &CustomerInfo{Name: "João", Phone: "11987654321"}
	require.NoError(t, ValidateCustomer(info, order.OrderTypePickup))
}

func TestCompose_BuildsSubmissionPayload(t *testing.T) {
	st := storeFixture()
	c := cartWithSubtotal(t, 64.30)
	c.Items[0].Customization = &cart.Customization{
		SelectedAddons: map[string]int{"addon-1": 1},
	}
	c.Items[0].Product.Addons = []product.Addon{
		{ID: "addon-1", Name: "Borda Recheada", Price: pricing.Price(5), IsActive: true},
	}
	c.Recompute()

	input, err := Compose(c, st, "cust-1", validDeliveryRequest(), 0)
	require.NoError(t, err)

	require.Equal(t, "pizzaria-do-ze", input.StoreSlug)
	require.Equal(t, "cust-1", input.CustomerID)
	require.Equal(t, order.OrderTypeDelivery, input.Type)
	require.Equal(t, "pix", input.PaymentMethod)
	require.Equal(t, 69.30, input.Subtotal)
	require.Equal(t, 5.0, input.DeliveryFee)
	require.Equal(t, 0.0, input.Discount)
	require.Equal(t, 74.30, input.Total)
	require.Equal(t, "40-50 min", input.EstimatedDeliveryTime)

	require.Len(t, input.Items, 1)
	require.Equal(t, "prod-1", input.Items[0].ProductID)
	require.Equal(t, 64.30, input.Items[0].Price)
	require.Equal(t, 69.30, input.Items[0].Total)
	require.NotNil(t, input.Items[0].Customizations)

	require.Contains(t, input.Notes, "Maria Silva")
	require.Contains(t, input.Notes, "Avenida Paulista, 1578")
	require.Contains(t, input.Notes, "CEP 01310-100")
}

func TestCompose_EmptyCart(t *testing.T) {
	_, err := Compose(cart.NewCart("pizzaria-do-ze"), storeFixture(), "", validDeliveryRequest(), 0)
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestCompose_StoreClosed(t *testing.T) {
	st := storeFixture()
	st.AcceptingOrders = false

	_, err := Compose(cartWithSubtotal(t, 50), st, "", validDeliveryRequest(), 0)
	require.ErrorIs(t, err, ErrStoreClosed)
}

func TestCompose_MinimumOrderBlocksBeforeFieldValidation(t *testing.T) {
	st := storeFixture()
	st.MinimumOrder = pricing.Price(15)

	// Invalid customer data too: the minimum-order rule must win.
	req := validDeliveryRequest()
	req.Customer.Name = ""

	_, err := Compose(cartWithSubtotal(t, 10), st, "", req, 0)
	var minErr *MinimumOrderError
	require.ErrorAs(t, err, &minErr)
}

func TestCompose_PickupSkipsEstimatedDelivery(t *testing.T) {
	req := &SubmitRequest{
		Type:          order.OrderTypePickup,
		PaymentMethod: "dinheiro",
		Customer:      CustomerInfo{Name: "João", Phone: "11987654321"},
	}

	input, err := Compose(cartWithSubtotal(t, 30), storeFixture(), "", req, 0)
	require.NoError(t, err)
	require.Equal(t, 0.0, input.DeliveryFee)
	require.Equal(t, 30.0, input.Total)
	require.Empty(t, input.EstimatedDeliveryTime)
	require.Contains(t, input.Notes, "Retirada no balcão")
}

// fakeOrderStore records created orders and can be forced to fail.
type fakeOrderStore struct {
	createErr error
	created   []*order.Order
}

func (f *fakeOrderStore) Create(input *order.CreateInput) (*order.Order, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	o := &order.Order{
		ID:          fmt.Sprintf("order-%d", len(f.created)+1),
		OrderNumber: fmt.Sprintf("PED-20250901-%06d", len(f.created)+1),
		StoreSlug:   input.StoreSlug,
		Status:      order.OrderStatusPending,
		Total:       pricing.Price(input.Total),
	}
	f.created = append(f.created, o)
	return o, nil
}

func (f *fakeOrderStore) GetByNumber(storeSlug, orderNumber string) (*order.Order, error) {
	for _, o := range f.created {
		if o.OrderNumber == orderNumber && o.StoreSlug == storeSlug {
			return o, nil
		}
	}
	return nil, order.ErrOrderNotFound
}

type fakeStoreDirectory struct {
	st *store.Store
}

func (f *fakeStoreDirectory) GetBySlug(slug string) (*store.Store, error) {
	if f.st != nil && f.st.Slug == slug {
		return f.st, nil
	}
	return nil, store.ErrStoreNotFound
}

func newSubmitService(t *testing.T, orders *fakeOrderStore) (*Service, *MemoryReservationStore, *cart.Service) {
	t.Helper()
	cartSvc := cart.NewService(cart.NewMemoryRepository())
	reservations := NewMemoryReservationStore()
	svc := &Service{
		reservations: reservations,
		config:       &config.Config{},
		cartService:  cartSvc,
		orderService: orders,
		storeService: &fakeStoreDirectory{st: storeFixture()},
	}
	return svc, reservations, cartSvc
}

func seedCart(t *testing.T, cartSvc *cart.Service, customerID string) {
	t.Helper()
	prod := &product.Product{
		ID:        "prod-1",
		StoreSlug: "pizzaria-do-ze",
		Name:      "Pizza Margherita",
		Price:     pricing.Price(64.30),
		IsActive:  true,
	}
	_, err := cartSvc.AddToCart(context.Background(), cart.Scope("pizzaria-do-ze", customerID), prod, 1, nil)
	require.NoError(t, err)
}

func TestSubmit_CreatesOrderAndClearsCart(t *testing.T) {
	orders := &fakeOrderStore{}
	svc, _, cartSvc := newSubmitService(t, orders)
	ctx := context.Background()
	seedCart(t, cartSvc, "cust-1")

	req := validDeliveryRequest()
	req.IdempotencyKey = "key-1"

	o, err := svc.Submit(ctx, "pizzaria-do-ze", "cust-1", req)
	require.NoError(t, err)
	require.Len(t, orders.created, 1)
	require.Equal(t, orders.created[0].OrderNumber, o.OrderNumber)

	c, err := cartSvc.GetCart(ctx, cart.Scope("pizzaria-do-ze", "cust-1"))
	require.NoError(t, err)
	require.Empty(t, c.Items)
}

func TestSubmit_CompletedKeyReplaysOrder(t *testing.T) {
	orders := &fakeOrderStore{}
	svc, _, cartSvc := newSubmitService(t, orders)
	ctx := context.Background()
	seedCart(t, cartSvc, "cust-1")

	req := validDeliveryRequest()
	req.IdempotencyKey = "key-1"

	first, err := svc.Submit(ctx, "pizzaria-do-ze", "cust-1", req)
	require.NoError(t, err)

	// The cart is already cleared; a lost-response retry must replay the
	// stored order, not fail or create a second one.
	second, err := svc.Submit(ctx, "pizzaria-do-ze", "cust-1", req)
	require.NoError(t, err)
	require.Equal(t, first.OrderNumber, second.OrderNumber)
	require.Len(t, orders.created, 1)
}

func TestSubmit_InFlightKeyConflicts(t *testing.T) {
	orders := &fakeOrderStore{}
	svc, reservations, cartSvc := newSubmitService(t, orders)
	ctx := context.Background()
	seedCart(t, cartSvc, "cust-1")

	_, err := reservations.Reserve(ctx, "pizzaria-do-ze", "key-1")
	require.NoError(t, err)

	req := validDeliveryRequest()
	req.IdempotencyKey = "key-1"

	_, err = svc.Submit(ctx, "pizzaria-do-ze", "cust-1", req)
	require.ErrorIs(t, err, ErrDuplicateSubmission)
	require.Empty(t, orders.created)
}

func TestSubmit_FailedCreateReleasesReservation(t *testing.T) {
	orders := &fakeOrderStore{createErr: fmt.Errorf("database unavailable")}
	svc, _, cartSvc := newSubmitService(t, orders)
	ctx := context.Background()
	seedCart(t, cartSvc, "cust-1")

	req := validDeliveryRequest()
	req.IdempotencyKey = "key-1"

	_, err := svc.Submit(ctx, "pizzaria-do-ze", "cust-1", req)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrDuplicateSubmission)

	// The retry with the same key must go through, not hit a stale
	// reservation.
	orders.createErr = nil
	o, err := svc.Submit(ctx, "pizzaria-do-ze", "cust-1", req)
	require.NoError(t, err)
	require.Len(t, orders.created, 1)
	require.Equal(t, orders.created[0].OrderNumber, o.OrderNumber)
}

func TestSubmit_FailedCompositionReleasesReservation(t *testing.T) {
	orders := &fakeOrderStore{}
	svc, reservations, _ := newSubmitService(t, orders)
	ctx := context.Background()

	req := validDeliveryRequest()
	req.IdempotencyKey = "key-1"

	// Empty cart blocks the submission but must not burn the key.
	_, err := svc.Submit(ctx, "pizzaria-do-ze", "cust-1", req)
	require.ErrorIs(t, err, ErrEmptyCart)

	replayed, err := reservations.Reserve(ctx, "pizzaria-do-ze", "key-1")
	require.NoError(t, err)
	require.Empty(t, replayed)
}

func TestSubmit_FailedResultWriteReleasesReservation(t *testing.T) {
	orders := &fakeOrderStore{}
	svc, reservations, cartSvc := newSubmitService(t, orders)
	reservations.CompleteErr = fmt.Errorf("redis unavailable")
	ctx := context.Background()
	seedCart(t, cartSvc, "cust-1")

	req := validDeliveryRequest()
	req.IdempotencyKey = "key-1"

	o, err := svc.Submit(ctx, "pizzaria-do-ze", "cust-1", req)
	require.NoError(t, err)
	require.NotNil(t, o)

	// The key must not be left holding the pending marker.
	reservations.CompleteErr = nil
	replayed, err := reservations.Reserve(ctx, "pizzaria-do-ze", "key-1")
	require.NoError(t, err)
	require.Empty(t, replayed)
}
