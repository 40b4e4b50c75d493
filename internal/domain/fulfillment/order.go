package fulfillment

import "time"

type Status string

const (
	StatusPending Status = "pending"
	StatusActive  Status = "active"
)

type OrderType string

const (
	TypeNew   OrderType = "esim_new"
	TypeTopup OrderType = "esim_topup"
)

// Order is a purchase created by the upstream checkout. The provider order id
// is assigned before this worker runs and doubles as the invoice number in
// payment-notification emails.
type Order struct {
	ProviderOrderID string
	OrderType       OrderType
	CustomerEmail   string
	ICCID           string
	PlanName        string
	Status          Status
	Metadata        map[string]any
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PackageSlug is the provisioning catalog key, carried in checkout metadata.
func (o Order) PackageSlug() string {
	if v, ok := o.Metadata["package_slug"].(string); ok {
		return v
	}
	return ""
}

// TopupICCID is the SIM being topped up. Checkout records it in metadata;
// older orders only carry it on the order row itself.
func (o Order) TopupICCID() string {
	if v, ok := o.Metadata["existingEsimIccid"].(string); ok && v != "" {
		return v
	}
	return o.ICCID
}

// OrderUpdate is the single atomic write issued per fulfilled email.
// Nil fields are left untouched.
type OrderUpdate struct {
	ICCID           *string
	PlanName        *string
	LPA             *string
	QRCodeURL       *string
	QRCode          *string
	AppleInstallURL *string
	Status          *Status
}

// ProvisioningResult is the partner API response to a new-order or topup call.
type ProvisioningResult struct {
	PackageName string
	Sims        []Sim
}

// Sim is one provisioned eSIM profile.
type Sim struct {
	ICCID           string
	LPA             string
	QRCodeURL       string
	QRCode          string
	AppleInstallURL string
}
