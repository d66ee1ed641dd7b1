package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poolpro/internal/domain/entities"
)

func TestListCustomers(t *testing.T) {
	t.Run("should decode the bare customer array", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/customers", r.URL.Path)
			assert.Empty(t, r.URL.RawQuery)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id":"cust-1","name":"Ava Martinez","status":"active","accountBalance":-125.5,"serviceDay":"Monday","pools":[]}]`))
		}))
		defer srv.Close()

		customers, err := New(srv.URL).ListCustomers(context.Background())

		require.NoError(t, err)
		require.Len(t, customers, 1)
		assert.Equal(t, "cust-1", customers[0].ID)
		assert.Equal(t, entities.CustomerStatusActive, customers[0].Status)
		assert.Equal(t, "-125.5", customers[0].AccountBalance.String())
	})

	t.Run("should return an empty slice for an empty body array", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`null`))
		}))
		defer srv.Close()

		customers, err := New(srv.URL).ListCustomers(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, customers)
		assert.Empty(t, customers)
	})

	t.Run("should surface the api error envelope", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"code":"INTERNAL_ERROR","message":"internal server error"}}`))
		}))
		defer srv.Close()

		_, err := New(srv.URL).ListCustomers(context.Background())

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
		assert.Equal(t, "INTERNAL_ERROR", apiErr.Code)
		assert.Equal(t, "internal server error", apiErr.Message)
	})

	t.Run("should fall back to the raw body for non-json errors", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "upstream down", http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := New(srv.URL).ListCustomers(context.Background())

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadGateway, apiErr.Status)
		assert.Equal(t, "upstream down", apiErr.Message)
	})

	t.Run("should abort when the context is cancelled", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := New(srv.URL).ListCustomers(ctx)

		require.Error(t, err)
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
	})
}

func TestNew(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, New("").baseURL)
	assert.Equal(t, "http://api.local", New("http://api.local/").baseURL)
}

func TestPageLoad(t *testing.T) {
	t.Run("should keep items and clear the error on success", func(t *testing.T) {
		p := Page[string]{Err: "previous failure"}

		ok := p.Load(context.Background(), func(context.Context) ([]string, error) {
			return []string{"a", "b"}, nil
		})

		assert.True(t, ok)
		assert.Equal(t, []string{"a", "b"}, p.Items)
		assert.False(t, p.Failed())
	})

	t.Run("should store the message on failure", func(t *testing.T) {
		p := Page[string]{Items: []string{"stale"}}

		ok := p.Load(context.Background(), func(context.Context) ([]string, error) {
			return nil, &APIError{Status: 503, Message: "unavailable"}
		})

		assert.False(t, ok)
		assert.Empty(t, p.Items)
		assert.Equal(t, "api error 503: unavailable", p.Err)
	})

	t.Run("should not call fetch again after a failure", func(t *testing.T) {
		calls := 0
		p := Page[int]{}

		p.Load(context.Background(), func(context.Context) ([]int, error) {
			calls++
			return nil, errors.New("boom")
		})

		assert.Equal(t, 1, calls)
		assert.True(t, p.Failed())
	})

	t.Run("should turn a panicking fetch into an error state", func(t *testing.T) {
		p := Page[int]{}

		ok := p.Load(context.Background(), func(context.Context) ([]int, error) {
			var pools []entities.Pool
			_ = pools[0]
			return nil, nil
		})

		assert.False(t, ok)
		assert.True(t, p.Failed())
		assert.NotNil(t, p.Items)
	})
}
