package checkout

import "errors"

var (
	// -- Submission preconditions --
	ErrAddressRequired = errors.New("please add a shipping address")
	ErrRateRequired    = errors.New("please choose a shipping method")
	ErrRatesPending    = errors.New("shipping rates are still loading")
	ErrEmptyCheckout   = errors.New("cart is empty, nothing to check out")

	// -- Input --
	ErrInvalidPaymentMethod = errors.New("payment method must be cod or vnpay")
	ErrUnknownAddress       = errors.New("address not found")
	ErrUnknownRate          = errors.New("shipping rate not offered for this address")
	ErrEmptyGatewayQuery    = errors.New("missing payment gateway parameters")

	// -- Flow state --
	ErrNotLoaded        = errors.New("checkout is still loading")
	ErrSubmitInProgress = errors.New("order is already being placed")
	ErrFlowClosed       = errors.New("checkout is closed")
)

// IsPrecondition reports whether err was raised before any request was sent.
func IsPrecondition(err error) bool {
	for _, target := range []error{
		ErrAddressRequired, ErrRateRequired, ErrRatesPending, ErrEmptyCheckout,
		ErrInvalidPaymentMethod, ErrUnknownAddress, ErrUnknownRate, ErrNotLoaded,
		ErrEmptyGatewayQuery,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
