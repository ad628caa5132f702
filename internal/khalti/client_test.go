package khalti

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"parko/internal/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLink(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v2/epayment/initiate/", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]string{
			"pidx":        "Ax4fGh",
			"payment_url": "https://pay.example.com/Ax4fGh",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk-test", "https://app.example.com/return", "https://app.example.com")

	link, err := client.CreateLink(context.Background(), 25.50, 42, "ord-1234")
	require.NoError(t, err)
	assert.Equal(t, "Ax4fGh", link.Pidx)
	assert.Equal(t, "https://pay.example.com/Ax4fGh", link.PaymentURL)

	assert.Equal(t, "key sk-test", gotAuth)
	// 25.50 in the major unit is 2550 paisa.
	assert.Equal(t, float64(2550), gotBody["amount"])
	assert.Equal(t, "ord-1234", gotBody["purchase_order_id"])
	assert.Equal(t, "booking-42", gotBody["purchase_order_name"])
	assert.Equal(t, "42", gotBody["remarks"])
	assert.Equal(t, "https://app.example.com/return", gotBody["return_url"])
}

func TestCreateLinkNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Invalid token."}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "bad-key", "r", "w")
	link, err := client.CreateLink(context.Background(), 10, 1, "ord")
	assert.Error(t, err)
	assert.Nil(t, link)
}

func TestCreateLinkTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := NewClient(srv.URL, "key", "r", "w")
	link, err := client.CreateLink(context.Background(), 10, 1, "ord")
	assert.Error(t, err)
	assert.Nil(t, link)
}

func TestCheckStatusCompleted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v2/epayment/lookup/", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "Ax4fGh", body["pidx"])
		json.NewEncoder(w).Encode(map[string]string{
			"status":         "Completed",
			"transaction_id": "txn-99",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key", "r", "w")
	result, err := client.CheckStatus(context.Background(), "Ax4fGh")
	require.NoError(t, err)
	assert.Equal(t, db.PaymentSuccess, result.Status)
	assert.Equal(t, "Completed", result.GatewayStatus)
	assert.Equal(t, "txn-99", result.TransactionID)
}

// Unknown pidx values come back as a 404 whose body has a "detail" field
// instead of "status"; that still normalizes to Failed rather than erroring.
func TestCheckStatusNotFoundDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Not found."})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key", "r", "w")
	result, err := client.CheckStatus(context.Background(), "missing")
	require.NoError(t, err)
	assert.Equal(t, db.PaymentFailed, result.Status)
	assert.Equal(t, "Not found.", result.GatewayStatus)
	assert.Empty(t, result.TransactionID)
}

func TestCheckStatusTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, "key", "r", "w")
	result, err := client.CheckStatus(context.Background(), "Ax4fGh")
	assert.Error(t, err)
	assert.Nil(t, result)
}
