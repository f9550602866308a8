package pricing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToNumeric(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{name: "nil", in: nil, want: 0},
		{name: "float", in: 12.5, want: 12.5},
		{name: "decimal string", in: "12.5", want: 12.5},
		{name: "integer string", in: "7", want: 7},
		{name: "garbage string", in: "abc", want: 0},
		{name: "empty string", in: "", want: 0},
		{name: "negative string parses through", in: "-3.20", want: -3.2},
		{name: "int", in: 4, want: 4},
		{name: "json number", in: json.Number("19.90"), want: 19.9},
		{name: "price type", in: Price(8.5), want: 8.5},
		{name: "unsupported type", in: struct{}{}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ToNumeric(tt.in))
		})
	}
}

func TestToDisplay(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "nil", in: nil, want: "0,00"},
		{name: "garbage", in: "xyz", want: "0,00"},
		{name: "two decimals", in: 69.3, want: "69,30"},
		{name: "no thousands separator", in: 1234.5, want: "1234,50"},
		{name: "string input", in: "5", want: "5,00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ToDisplay(tt.in))
		})
	}
}

func TestPriceUnmarshalJSON(t *testing.T) {
	var doc struct {
		A Price `json:"a"`
		B Price `json:"b"`
		C Price `json:"c"`
		D Price `json:"d"`
	}

	err := json.Unmarshal([]byte(`{"a": 12.5, "b": "12.5", "c": null, "d": "not-a-price"}`), &doc)
	require.NoError(t, err)
	require.Equal(t, Price(12.5), doc.A)
	require.Equal(t, Price(12.5), doc.B)
	require.Equal(t, Price(0), doc.C)
	require.Equal(t, Price(0), doc.D)
}

func TestRound2(t *testing.T) {
	require.Equal(t, 69.3, Round2(64.3+5.0))
	require.Equal(t, 0.3, Round2(0.1+0.2))
}
