package cep

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookup_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/01310100/json/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"cep":"01310-100","logradouro":"Avenida Paulista","bairro":"Bela Vista","localidade":"São Paulo","uf":"SP"}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL)
	addr, err := client.Lookup(context.Background(), "01310-100")
	require.NoError(t, err)
	require.Equal(t, "Avenida Paulista", addr.Street)
	require.Equal(t, "Bela Vista", addr.Neighborhood)
	require.Equal(t, "São Paulo", addr.City)
	require.Equal(t, "SP", addr.State)
}

func TestLookup_NotFoundFlag(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "bool flag", body: `{"erro": true}`},
		{name: "string flag", body: `{"erro": "true"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClientWithBaseURL(srv.URL)
			_, err := client.Lookup(context.Background(), "99999999")
			require.ErrorIs(t, err, ErrCEPNotFound)
		})
	}
}

func TestLookup_RejectsMalformedCode(t *testing.T) {
	client := NewClient()
	for _, code := range []string{"", "123", "abcdefgh", "01310-10"} {
		_, err := client.Lookup(context.Background(), code)
		require.ErrorIs(t, err, ErrInvalidCEP)
	}
}

func TestLookup_StripsFormatting(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"cep":"01310-100"}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL)
	_, err := client.Lookup(context.Background(), "01.310-100")
	require.NoError(t, err)
	require.Equal(t, "/01310100/json/", gotPath)
}
