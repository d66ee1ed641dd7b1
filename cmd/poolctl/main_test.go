package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poolpro/internal/adapter/persistence/memory"
)

func customerServer(t *testing.T, status int, body any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		require.NoError(t, json.NewEncoder(w).Encode(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRenderCustomers(t *testing.T) {
	customers := memory.SeedCustomers(time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC))

	t.Run("should list every customer with tab counts", func(t *testing.T) {
		out := renderCustomers(customers, "", "")

		assert.Contains(t, out, "All (5)")
		assert.Contains(t, out, "Paused (1)")
		assert.Contains(t, out, "John Anderson")
		assert.Contains(t, out, "$125.50 (owed)")
	})

	t.Run("should filter by term and status", func(t *testing.T) {
		out := renderCustomers(customers, "SARAH", "active")

		assert.Contains(t, out, "Sarah Mitchell")
		assert.NotContains(t, out, "John Anderson")
		assert.Contains(t, out, "All (5)")
	})

	t.Run("should show a placeholder when nothing matches", func(t *testing.T) {
		out := renderCustomers(customers, "no such customer", "")

		assert.Contains(t, out, "No customers match.")
	})

	t.Run("should render an empty book", func(t *testing.T) {
		out := renderCustomers(nil, "", "")

		assert.Contains(t, out, "All (0)")
		assert.Contains(t, out, "No customers match.")
	})
}

func TestRun(t *testing.T) {
	t.Run("should print the table from the api", func(t *testing.T) {
		srv := customerServer(t, http.StatusOK, memory.SeedCustomers(time.Now()))
		t.Setenv("POOLPRO_API_URL", srv.URL)
		var stdout, stderr bytes.Buffer

		code := run(context.Background(), []string{"customers", "-q", "austin"}, &stdout, &stderr)

		assert.Equal(t, 0, code)
		assert.Contains(t, stdout.String(), "Emily Roberts")
		assert.Empty(t, stderr.String())
	})

	t.Run("should report a failed load without panicking", func(t *testing.T) {
		srv := customerServer(t, http.StatusInternalServerError,
			map[string]any{"error": map[string]string{"code": "INTERNAL_ERROR", "message": "internal server error"}})
		t.Setenv("POOLPRO_API_URL", srv.URL)
		var stdout, stderr bytes.Buffer

		code := run(context.Background(), []string{"customers"}, &stdout, &stderr)

		assert.Equal(t, 1, code)
		assert.True(t, strings.HasPrefix(stderr.String(), "Failed to load customers:"))
		assert.Contains(t, stderr.String(), "internal server error")
		assert.Empty(t, stdout.String())
	})

	t.Run("should print usage for unknown commands", func(t *testing.T) {
		var stdout, stderr bytes.Buffer

		code := run(context.Background(), []string{"invoices"}, &stdout, &stderr)

		assert.Equal(t, 2, code)
		assert.Contains(t, stderr.String(), "usage: poolctl customers")
	})
}
