package airalo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esimprocessor/internal/domain/fulfillment"
)

type capturedRequest struct {
	path   string
	auth   string
	accept string
	form   url.Values
}

func capture(t *testing.T, r *http.Request) capturedRequest {
	t.Helper()
	require.NoError(t, r.ParseForm())
	return capturedRequest{
		path:   r.URL.Path,
		auth:   r.Header.Get("Authorization"),
		accept: r.Header.Get("Accept"),
		form:   r.PostForm,
	}
}

func TestClient_Authenticate(t *testing.T) {
	t.Run("should post client credentials and return token", func(t *testing.T) {
		var got capturedRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = capture(t, r)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data":{"access_token":"tok-123"}}`))
		}))
		defer srv.Close()

		client := New(srv.URL, "client-1", "secret-1", srv.Client(), 5*time.Second)

		token, err := client.Authenticate(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "tok-123", token)
		assert.Equal(t, "/token", got.path)
		assert.Empty(t, got.auth)
		assert.Equal(t, "application/json", got.accept)
		assert.Equal(t, "client-1", got.form.Get("client_id"))
		assert.Equal(t, "secret-1", got.form.Get("client_secret"))
		assert.Equal(t, "client_credentials", got.form.Get("grant_type"))
	})

	t.Run("should fail on non-2xx", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"meta":{"message":"invalid credentials"}}`, http.StatusUnauthorized)
		}))
		defer srv.Close()

		client := New(srv.URL, "client-1", "wrong", srv.Client(), 5*time.Second)

		_, err := client.Authenticate(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
		assert.Contains(t, err.Error(), "invalid credentials")
	})

	t.Run("should fail on empty token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":{}}`))
		}))
		defer srv.Close()

		client := New(srv.URL, "client-1", "secret-1", srv.Client(), 5*time.Second)

		_, err := client.Authenticate(context.Background())

		assert.Error(t, err)
	})
}

func TestClient_CreateOrder(t *testing.T) {
	t.Run("should post form with fixed quantity and link sharing", func(t *testing.T) {
		var got capturedRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = capture(t, r)
			w.Write([]byte(`{
				"data": {
					"package": "Kallur Digital 7 Days 1GB",
					"sims": [{
						"iccid": "8944500612345678901",
						"lpa": "LPA:1$lpa.airalo.com$X",
						"qrcode_url": "https://cdn.example.com/qr/1.png",
						"qrcode": "LPA:1$lpa.airalo.com$X",
						"direct_apple_installation_url": "https://esimsetup.apple.com/x"
					}]
				}
			}`))
		}))
		defer srv.Close()

		client := New(srv.URL, "client-1", "secret-1", srv.Client(), 5*time.Second)

		result, err := client.CreateOrder(context.Background(), "tok-123", "kallur-digital-7days-1gb", "buyer@example.com")

		require.NoError(t, err)
		assert.Equal(t, "/orders", got.path)
		assert.Equal(t, "Bearer tok-123", got.auth)
		assert.Equal(t, "1", got.form.Get("quantity"))
		assert.Equal(t, "kallur-digital-7days-1gb", got.form.Get("package_id"))
		assert.Equal(t, "sim", got.form.Get("type"))
		assert.Equal(t, "buyer@example.com", got.form.Get("to_email"))
		assert.Equal(t, []string{"link"}, got.form["sharing_option[]"])

		assert.Equal(t, fulfillment.ProvisioningResult{
			PackageName: "Kallur Digital 7 Days 1GB",
			Sims: []fulfillment.Sim{{
				ICCID:           "8944500612345678901",
				LPA:             "LPA:1$lpa.airalo.com$X",
				QRCodeURL:       "https://cdn.example.com/qr/1.png",
				QRCode:          "LPA:1$lpa.airalo.com$X",
				AppleInstallURL: "https://esimsetup.apple.com/x",
			}},
		}, result)
	})

	t.Run("should surface non-2xx with body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"meta":{"message":"package out of stock"}}`, http.StatusUnprocessableEntity)
		}))
		defer srv.Close()

		client := New(srv.URL, "client-1", "secret-1", srv.Client(), 5*time.Second)

		_, err := client.CreateOrder(context.Background(), "tok-123", "sold-out", "buyer@example.com")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "422")
		assert.Contains(t, err.Error(), "package out of stock")
	})
}

func TestClient_CreateTopup(t *testing.T) {
	t.Run("should post iccid and package", func(t *testing.T) {
		var got capturedRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = capture(t, r)
			w.Write([]byte(`{"data":{"package":"Topup 1GB","sims":[]}}`))
		}))
		defer srv.Close()

		client := New(srv.URL, "client-1", "secret-1", srv.Client(), 5*time.Second)

		result, err := client.CreateTopup(context.Background(), "tok-123", "kallur-digital-7days-1gb", "8944500612345678901")

		require.NoError(t, err)
		assert.Equal(t, "/orders/topups", got.path)
		assert.Equal(t, "Bearer tok-123", got.auth)
		assert.Equal(t, "8944500612345678901", got.form.Get("iccid"))
		assert.Equal(t, "kallur-digital-7days-1gb", got.form.Get("package_id"))
		assert.Equal(t, "Topup 1GB", result.PackageName)
		assert.Empty(t, result.Sims)
	})

	t.Run("should surface transport failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // refuse connections

		client := New(srv.URL, "client-1", "secret-1", nil, 5*time.Second)

		_, err := client.CreateTopup(context.Background(), "tok-123", "pkg", "89445")

		assert.Error(t, err)
	})
}
