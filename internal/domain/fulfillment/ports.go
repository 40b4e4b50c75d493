package fulfillment

import "context"

//go:generate mockgen -source ports.go -destination mock_ports.go -package fulfillment

// OrderRepo is the order store collaborator. Both operations are keyed by the
// provider order id so the update targets exactly the looked-up record.
type OrderRepo interface {
	FindByProviderOrderID(ctx context.Context, providerOrderID string) (Order, error)
	UpdateByProviderOrderID(ctx context.Context, providerOrderID string, update OrderUpdate) error
}

// Provisioner is the partner API collaborator.
type Provisioner interface {
	Authenticate(ctx context.Context) (token string, err error)
	CreateOrder(ctx context.Context, token, packageSlug, toEmail string) (ProvisioningResult, error)
	CreateTopup(ctx context.Context, token, packageSlug, iccid string) (ProvisioningResult, error)
}
