package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"sukaikan/internal/logger"
	"sukaikan/internal/metrics"

	"go.uber.org/zap"
)

const (
	snapSandboxURL    = "https://app.sandbox.midtrans.com"
	snapProductionURL = "https://app.midtrans.com"

	// DemoToken is handed out instead of calling Midtrans while the server
	// key is still the placeholder.
	DemoToken      = "DUMMY_TOKEN_FOR_DEMO"
	placeholderKey = "YOUR_SERVER_KEY"
)

type midtransGateway struct {
	serverKey  string
	baseURL    string
	httpClient *http.Client
}

func NewMidtransGateway(serverKey string, production bool) Gateway {
	if serverKey == "" {
		logger.L().Warn("Midtrans server key is empty")
	}

	baseURL := snapSandboxURL
	if production {
		baseURL = snapProductionURL
	}

	return &midtransGateway{
		serverKey: serverKey,
		baseURL:   baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// DemoMode reports whether the gateway answers with DemoToken.
func (m *midtransGateway) DemoMode() bool {
	return strings.Contains(m.serverKey, placeholderKey)
}

func (m *midtransGateway) CreateTransaction(ctx context.Context, in TransactionRequest) (*TransactionResponse, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("order_reference", in.OrderReference),
		zap.Int("gross_amount", in.GrossAmount),
	)

	if m.DemoMode() {
		log.Info("Midtrans demo mode, returning dummy token")
		return &TransactionResponse{Token: DemoToken}, nil
	}

	body := snapRequest{
		TransactionDetails: snapTransactionDetails{
			OrderID:     in.OrderReference,
			GrossAmount: in.GrossAmount,
		},
		CreditCard: snapCreditCard{Secure: true},
		CustomerDetails: snapCustomerDetails{
			FirstName: in.CustomerName,
			Phone:     in.CustomerPhone,
		},
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		log.Error("Failed to marshal snap request", zap.Error(err))
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/snap/v1/transactions", bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Error("Failed creating request", zap.Error(err))
		return nil, err
	}

	req.SetBasicAuth(m.serverKey, "")
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")

	log.Info("Sending transaction request to Midtrans")

	timer := metrics.StartTimer()
	resp, err := m.httpClient.Do(req)
	if err != nil {
		log.Error("Midtrans request failed", zap.Duration("duration", timer.Duration()), zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()
	log = log.With(zap.Duration("duration", timer.Duration()))

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("failed to read midtrans response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Error("Midtrans returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		var apiErr snapErrorResponse
		if json.Unmarshal(bodyBytes, &apiErr) == nil && len(apiErr.ErrorMessages) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrGatewayRejected, strings.Join(apiErr.ErrorMessages, "; "))
		}
		return nil, fmt.Errorf("%w: status %d", ErrGatewayRejected, resp.StatusCode)
	}

	var res TransactionResponse
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Error("Failed decoding Midtrans response", zap.Error(err))
		return nil, err
	}
	if res.Token == "" {
		log.Error("Midtrans response has no token", zap.ByteString("response", bodyBytes))
		return nil, ErrEmptyToken
	}

	log.Info("Midtrans transaction created")
	return &res, nil
}
