package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRoundTripper allows us to mock the HTTP response
type MockRoundTripper func(req *http.Request) *http.Response

func (f MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

type MockRoundTripperWithError func(req *http.Request) (*http.Response, error)

func (f MockRoundTripperWithError) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

func TestMidtransGateway_CreateTransaction(t *testing.T) {
	serverKey := "SB-Mid-server-abc123"
	gw := NewMidtransGateway(serverKey, false).(*midtransGateway)

	in := TransactionRequest{
		OrderReference: "ORDER-42-1739500000",
		GrossAmount:    96000,
		CustomerName:   "Sari",
		CustomerPhone:  "08123",
	}

	t.Run("Success", func(t *testing.T) {
		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			assert.Equal(t, http.MethodPost, req.Method)
			assert.Equal(t, "https://app.sandbox.midtrans.com/snap/v1/transactions", req.URL.String())

			user, pass, ok := req.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, serverKey, user)
			assert.Empty(t, pass)

			var body map[string]any
			assert.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			details := body["transaction_details"].(map[string]any)
			assert.Equal(t, "ORDER-42-1739500000", details["order_id"])
			assert.EqualValues(t, 96000, details["gross_amount"])
			assert.Equal(t, true, body["credit_card"].(map[string]any)["secure"])
			customer := body["customer_details"].(map[string]any)
			assert.Equal(t, "Sari", customer["first_name"])
			assert.Equal(t, "08123", customer["phone"])

			return jsonResponse(http.StatusCreated, `{"token":"snap-token-1","redirect_url":"https://app.sandbox.midtrans.com/snap/v2/vtweb/snap-token-1"}`)
		})

		resp, err := gw.CreateTransaction(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, "snap-token-1", resp.Token)
		assert.Contains(t, resp.RedirectURL, "snap-token-1")
	})

	t.Run("APIError", func(t *testing.T) {
		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return jsonResponse(http.StatusBadRequest, `{"error_messages":["transaction_details.order_id has already been taken"]}`)
		})

		_, err := gw.CreateTransaction(context.Background(), in)
		assert.ErrorIs(t, err, ErrGatewayRejected)
		assert.Contains(t, err.Error(), "already been taken")
	})

	t.Run("APIErrorWithoutBody", func(t *testing.T) {
		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return jsonResponse(http.StatusInternalServerError, `oops`)
		})

		_, err := gw.CreateTransaction(context.Background(), in)
		assert.ErrorIs(t, err, ErrGatewayRejected)
	})

	t.Run("EmptyToken", func(t *testing.T) {
		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return jsonResponse(http.StatusCreated, `{}`)
		})

		_, err := gw.CreateTransaction(context.Background(), in)
		assert.ErrorIs(t, err, ErrEmptyToken)
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return jsonResponse(http.StatusCreated, `{invalid`)
		})

		_, err := gw.CreateTransaction(context.Background(), in)
		assert.Error(t, err)
	})

	t.Run("NetworkError", func(t *testing.T) {
		gw.httpClient.Transport = MockRoundTripperWithError(func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection reset")
		})

		_, err := gw.CreateTransaction(context.Background(), in)
		assert.Error(t, err)
	})
}

func TestMidtransGateway_Production(t *testing.T) {
	gw := NewMidtransGateway("Mid-server-live", true).(*midtransGateway)

	gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
		assert.Equal(t, "https://app.midtrans.com/snap/v1/transactions", req.URL.String())
		return jsonResponse(http.StatusCreated, `{"token":"live"}`)
	})

	resp, err := gw.CreateTransaction(context.Background(), TransactionRequest{OrderReference: "ORDER-1-1"})
	require.NoError(t, err)
	assert.Equal(t, "live", resp.Token)
}

func TestMidtransGateway_DemoMode(t *testing.T) {
	gw := NewMidtransGateway("SB-Mid-server-YOUR_SERVER_KEY_HERE", false).(*midtransGateway)
	assert.True(t, gw.DemoMode())

	gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
		t.Fatal("demo mode must not call Midtrans")
		return nil
	})

	resp, err := gw.CreateTransaction(context.Background(), TransactionRequest{OrderReference: "ORDER-1-1", GrossAmount: 1})
	require.NoError(t, err)
	assert.Equal(t, DemoToken, resp.Token)
}
