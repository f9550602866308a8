// internal/pkg/cep/client.go
package cep

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"time"
)

// Sentinel errors for postal-code lookups.
var (
	ErrInvalidCEP  = fmt.Errorf("CEP deve ter 8 dígitos")
	ErrCEPNotFound = fmt.Errorf("CEP não encontrado")
)

const defaultBaseURL = "https://viacep.com.br/ws"

var nonDigits = regexp.MustCompile(`\D`)

// Address is the result of a postal-code lookup, used to pre-fill the
// checkout address form.
type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// viaCEPResponse mirrors the upstream payload. The service signals unknown
// codes with an "erro" flag and HTTP 200; the flag has been serialized both
// as a bool and as a string over time, so it is kept raw.
type viaCEPResponse struct {
	CEP          string          `json:"cep"`
	Street       string          `json:"logradouro"`
	Neighborhood string          `json:"bairro"`
	City         string          `json:"localidade"`
	State        string          `json:"uf"`
	Error        json.RawMessage `json:"erro,omitempty"`
}

func (r *viaCEPResponse) notFound() bool {
	s := string(r.Error)
	return s == "true" || s == `"true"`
}

// Client looks up Brazilian postal codes against ViaCEP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a lookup client with a bounded request timeout.
func NewClient() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewClientWithBaseURL creates a client against a custom endpoint (tests).
func NewClientWithBaseURL(baseURL string) *Client {
	c := NewClient()
	c.baseURL = baseURL
	return c
}

// Lookup resolves an 8-digit postal code to an address. Malformed codes are
// rejected before any network call.
func (c *Client) Lookup(ctx context.Context, code string) (*Address, error) {
	digits := nonDigits.ReplaceAllString(code, "")
	if len(digits) != 8 {
		return nil, ErrInvalidCEP
	}

	url := fmt.Sprintf("%s/%s/json/", c.baseURL, digits)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build CEP request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("CEP lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("CEP lookup failed with status %d", resp.StatusCode)
	}

	var payload viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode CEP response: %w", err)
	}
	if payload.notFound() {
		return nil, ErrCEPNotFound
	}

	return &Address{
		CEP:          payload.CEP,
		Street:       payload.Street,
		Neighborhood: payload.Neighborhood,
		City:         payload.City,
		State:        payload.State,
	}, nil
}
