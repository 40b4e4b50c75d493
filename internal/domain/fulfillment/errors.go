package fulfillment

import "errors"

var (
	// ErrOrderNotFound means no order matches the provider order id.
	ErrOrderNotFound = errors.New("order not found")

	// ErrNoSims means the partner API accepted a new order but returned no SIM records.
	ErrNoSims = errors.New("provisioning result contains no sims")
)
