package paymentservice

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, NewClient(server.URL, 2*time.Second, nopLogger{})
}

func TestGetPaymentMethod(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/users/7/payment-methods/3", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":3,"user_id":7,"type":"card","label":"Visa *4242","is_active":true}`)
	})

	method, err := client.GetPaymentMethod(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), method.ID)
	assert.Equal(t, "card", method.Type)
	assert.True(t, method.IsActive)
}

func TestGetPaymentMethod_NotFound(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetPaymentMethod(context.Background(), 7, 3)
	assert.ErrorIs(t, err, ErrPaymentMethodNotFound)
}

func TestGetPaymentMethod_UnexpectedStatus(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.GetPaymentMethod(context.Background(), 7, 3)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestVerifyPaymentMethod(t *testing.T) {
	t.Run("active method passes", func(t *testing.T) {
		_, client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"id":3,"user_id":7,"type":"card","is_active":true}`)
		})

		assert.NoError(t, client.VerifyPaymentMethodWithGracefulDegradation(context.Background(), 7, 3))
	})

	t.Run("inactive method is treated as not found", func(t *testing.T) {
		_, client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"id":3,"user_id":7,"type":"card","is_active":false}`)
		})

		err := client.VerifyPaymentMethodWithGracefulDegradation(context.Background(), 7, 3)
		assert.ErrorIs(t, err, ErrPaymentMethodNotFound)
	})

	t.Run("missing method blocks", func(t *testing.T) {
		_, client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		err := client.VerifyPaymentMethodWithGracefulDegradation(context.Background(), 7, 3)
		assert.ErrorIs(t, err, ErrPaymentMethodNotFound)
	})

	t.Run("unavailable service degrades gracefully", func(t *testing.T) {
		server, client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		server.Close()

		err := client.VerifyPaymentMethodWithGracefulDegradation(context.Background(), 7, 3)
		assert.ErrorIs(t, err, ErrServiceDegraded)
	})
}
