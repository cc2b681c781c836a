package payment

// Category is the payment channel chosen at checkout
type Category string

const (
	CategoryQRIS           Category = "qris"
	CategoryVirtualAccount Category = "virtual_account"
	CategoryRetailOutlet   Category = "retail_outlet"
)

// Valid reports whether the category is one of the supported channels
func (c Category) Valid() bool {
	switch c {
	case CategoryQRIS, CategoryVirtualAccount, CategoryRetailOutlet:
		return true
	}
	return false
}

// State is the position of the checkout workflow. Redirecting is terminal:
// control leaves the application for the provider's checkout page and the
// backend becomes the system of record.
type State string

const (
	StateIdle            State = "idle"
	StateCollectingInput State = "collecting_input"
	StateSubmitting      State = "submitting"
	StateRedirecting     State = "redirecting"
)
