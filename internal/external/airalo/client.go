// Package airalo implements the partner provisioning API client.
package airalo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-querystring/query"

	"esimprocessor/internal/domain/fulfillment"
	"esimprocessor/pkg/metrics"
)

type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	authTimeout  time.Duration
	http         *http.Client
}

var _ fulfillment.Provisioner = (*Client)(nil)

// New creates a client. The injected http.Client's timeout bounds
// provisioning calls; authTimeout bounds token requests separately.
func New(baseURL, clientID, clientSecret string, httpClient *http.Client, authTimeout time.Duration) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		authTimeout:  authTimeout,
		http:         httpClient,
	}
}

type tokenReq struct {
	ClientID     string `url:"client_id"`
	ClientSecret string `url:"client_secret"`
	GrantType    string `url:"grant_type"`
}

type tokenResp struct {
	Data struct {
		AccessToken string `json:"access_token"`
	} `json:"data"`
}

type orderReq struct {
	Quantity      int      `url:"quantity"`
	PackageID     string   `url:"package_id"`
	Type          string   `url:"type"`
	ToEmail       string   `url:"to_email"`
	SharingOption []string `url:"sharing_option,brackets"`
}

type topupReq struct {
	ICCID     string `url:"iccid"`
	PackageID string `url:"package_id"`
}

type simPayload struct {
	ICCID                      string `json:"iccid"`
	LPA                        string `json:"lpa"`
	QRCodeURL                  string `json:"qrcode_url"`
	QRCode                     string `json:"qrcode"`
	DirectAppleInstallationURL string `json:"direct_apple_installation_url"`
}

type orderResp struct {
	Data struct {
		Package string       `json:"package"`
		Sims    []simPayload `json:"sims"`
	} `json:"data"`
}

// Authenticate obtains a bearer token via the client-credentials grant.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	if c.authTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.authTimeout)
		defer cancel()
	}

	raw, err := c.postForm(ctx, "/token", "", tokenReq{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		GrantType:    "client_credentials",
	})
	if err != nil {
		return "", err
	}

	var out tokenResp
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if out.Data.AccessToken == "" {
		return "", fmt.Errorf("token response carries no access token")
	}

	return out.Data.AccessToken, nil
}

// CreateOrder provisions a new eSIM, delivered by link, quantity fixed at 1.
func (c *Client) CreateOrder(ctx context.Context, token, packageSlug, toEmail string) (fulfillment.ProvisioningResult, error) {
	raw, err := c.postForm(ctx, "/orders", token, orderReq{
		Quantity:      1,
		PackageID:     packageSlug,
		Type:          "sim",
		ToEmail:       toEmail,
		SharingOption: []string{"link"},
	})
	if err != nil {
		return fulfillment.ProvisioningResult{}, err
	}

	return decodeResult(raw)
}

// CreateTopup adds a package to an already-provisioned eSIM.
func (c *Client) CreateTopup(ctx context.Context, token, packageSlug, iccid string) (fulfillment.ProvisioningResult, error) {
	raw, err := c.postForm(ctx, "/orders/topups", token, topupReq{
		ICCID:     iccid,
		PackageID: packageSlug,
	})
	if err != nil {
		return fulfillment.ProvisioningResult{}, err
	}

	return decodeResult(raw)
}

func decodeResult(raw []byte) (fulfillment.ProvisioningResult, error) {
	var out orderResp
	if err := json.Unmarshal(raw, &out); err != nil {
		return fulfillment.ProvisioningResult{}, fmt.Errorf("decode response: %w", err)
	}

	result := fulfillment.ProvisioningResult{PackageName: out.Data.Package}
	for _, sim := range out.Data.Sims {
		result.Sims = append(result.Sims, fulfillment.Sim{
			ICCID:           sim.ICCID,
			LPA:             sim.LPA,
			QRCodeURL:       sim.QRCodeURL,
			QRCode:          sim.QRCode,
			AppleInstallURL: sim.DirectAppleInstallationURL,
		})
	}

	return result, nil
}

func (c *Client) postForm(ctx context.Context, path, token string, body any) ([]byte, error) {
	form, err := query.Values(body)
	if err != nil {
		return nil, fmt.Errorf("encode form: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+path,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		metrics.ProvisioningDuration.WithLabelValues(path, "error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)

	metrics.ProvisioningDuration.WithLabelValues(path, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("airalo %s: %s", resp.Status, string(raw))
	}

	return raw, nil
}
