// internal/domain/checkout/rules.go
package checkout

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/your-org/delivery-backend/internal/domain/order"
	"github.com/your-org/delivery-backend/internal/domain/store"
	"github.com/your-org/delivery-backend/internal/pkg/pricing"
)

// MinimumOrderError blocks submission when the subtotal is below the store's
// configured minimum. It carries the shortfall so the message can cite it.
type MinimumOrderError struct {
	Minimum   float64
	Subtotal  float64
	Shortfall float64
}

func (e *MinimumOrderError) Error() string {
	return fmt.Sprintf("Pedido mínimo de R$ %s. Faltam R$ %s para finalizar o pedido.",
		pricing.Display(e.Minimum), pricing.Display(e.Shortfall))
}

// FieldError is one inline validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates the field failures of a submission.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

// CustomerInfo carries the contact and address fields collected at checkout.
type CustomerInfo struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	PostalCode   string `json:"postal_code"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
}

var (
	nonDigits  = regexp.MustCompile(`\D`)
	emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// DeliveryFee applies the store's delivery rules. Pickup is always free;
// delivery is free once the subtotal reaches the configured threshold,
// otherwise the configured fee (or the platform default fallback) applies.
func DeliveryFee(st *store.Store, orderType order.OrderType, subtotal, defaultFee float64) float64 {
	if orderType == order.OrderTypePickup {
		return 0
	}
	if st.HasFreeDeliveryThreshold() && subtotal >= float64(st.FreeDeliveryThreshold) {
		return 0
	}
	if fee := float64(st.DeliveryFee); fee > 0 {
		return fee
	}
	return defaultFee
}

// CheckMinimumOrder blocks subtotals below the configured minimum. It runs
// independently of field validation.
func CheckMinimumOrder(st *store.Store, subtotal float64) error {
	if !st.HasMinimumOrder() {
		return nil
	}
	min := float64(st.MinimumOrder)
	if subtotal >= min {
		return nil
	}
	return &MinimumOrderError{
		Minimum:   min,
		Subtotal:  subtotal,
		Shortfall: pricing.Round2(min - subtotal),
	}
}

// ValidateCustomer checks the required fields for a submission. Pickup orders
// skip every address-related requirement; name and phone are always required.
func ValidateCustomer(info *CustomerInfo, orderType order.OrderType) error {
	var fields []FieldError

	if strings.TrimSpace(info.Name) == "" {
		fields = append(fields, FieldError{Field: "name", Message: "Nome é obrigatório"})
	}
	if len(nonDigits.ReplaceAllString(info.Phone, "")) < 10 {
		fields = append(fields, FieldError{Field: "phone", Message: "Telefone inválido"})
	}
	if email := strings.TrimSpace(info.Email); email != "" && !emailShape.MatchString(email) {
		fields = append(fields, FieldError{Field: "email", Message: "E-mail inválido"})
	}

	if orderType == order.OrderTypeDelivery {
		if len(nonDigits.ReplaceAllString(info.PostalCode, "")) != 8 {
			fields = append(fields, FieldError{Field: "postal_code", Message: "CEP deve ter 8 dígitos"})
		}
		if strings.TrimSpace(info.Street) == "" {
			fields = append(fields, FieldError{Field: "street", Message: "Endereço é obrigatório"})
		}
		if strings.TrimSpace(info.Number) == "" {
			fields = append(fields, FieldError{Field: "number", Message: "Número é obrigatório"})
		}
		if strings.TrimSpace(info.Neighborhood) == "" {
			fields = append(fields, FieldError{Field: "neighborhood", Message: "Bairro é obrigatório"})
		}
		if strings.TrimSpace(info.City) == "" {
			fields = append(fields, FieldError{Field: "city", Message: "Cidade é obrigatória"})
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// FormatNotes embeds the customer contact and address as formatted text on
// the order, the way the kitchen printout expects it.
func FormatNotes(info *CustomerInfo, orderType order.OrderType, extra string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Cliente: %s\nTelefone: %s", strings.TrimSpace(info.Name), strings.TrimSpace(info.Phone))
	if email := strings.TrimSpace(info.Email); email != "" {
		fmt.Fprintf(&b, "\nE-mail: %s", email)
	}

	if orderType == order.OrderTypeDelivery {
		addr := fmt.Sprintf("%s, %s", strings.TrimSpace(info.Street), strings.TrimSpace(info.Number))
		if c := strings.TrimSpace(info.Complement); c != "" {
			addr += " - " + c
		}
		fmt.Fprintf(&b, "\nEndereço: %s - %s, %s - CEP %s",
			addr, strings.TrimSpace(info.Neighborhood), strings.TrimSpace(info.City), strings.TrimSpace(info.PostalCode))
	} else {
		b.WriteString("\nRetirada no balcão")
	}

	if extra = strings.TrimSpace(extra); extra != "" {
		fmt.Fprintf(&b, "\nObservações: %s", extra)
	}
	return b.String()
}
