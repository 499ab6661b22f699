package e2e

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricing-service/internal/config"
	"github.com/light-bringer/pricing-service/internal/pkg/logger"
	"github.com/light-bringer/pricing-service/internal/services"
)

// Suite is a running HTTP server wired the same way cmd/server wires it.
type Suite struct {
	Server *httptest.Server
	Client *http.Client
}

func setupTest(t *testing.T) (*Suite, func()) {
	t.Helper()

	cfg := &config.Config{
		Store:        config.StoreConfig{Driver: config.StoreMemory},
		Availability: config.AvailabilityConfig{Driver: config.AvailabilityMemory},
		Pricing:      config.PricingConfig{DefaultCurrency: "USD"},
	}
	opts, err := services.NewServiceOptions(context.Background(), cfg, logger.Nop(), prometheus.NewRegistry())
	require.NoError(t, err)

	srv := httptest.NewServer(opts.HTTPHandler)
	suite := &Suite{Server: srv, Client: srv.Client()}

	cleanup := func() {
		srv.Close()
		opts.Close()
	}
	return suite, cleanup
}

// Do sends a request and returns the status code and the decoded data or error envelope.
func (s *Suite) Do(t *testing.T, method, path, body string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, s.Server.URL+path, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	if data, ok := env["data"].(map[string]any); ok {
		return resp.StatusCode, data
	}
	if apiErr, ok := env["error"].(map[string]any); ok {
		return resp.StatusCode, apiErr
	}
	return resp.StatusCode, env
}

func cents(t *testing.T, data map[string]any, field string) int64 {
	t.Helper()
	money, ok := data[field].(map[string]any)
	require.True(t, ok, "missing money field %s", field)
	return int64(money["amountInCents"].(float64))
}
