package checkout

import (
	"fmt"
	"net/url"

	"hmade-storefront/internal/address"
)

type Phase string

const (
	PhaseLoading    Phase = "loading"
	PhaseNoAddress  Phase = "no-address"
	PhaseHasAddress Phase = "has-address"
)

type RatePhase string

const (
	RatesNone    RatePhase = "no-rates"
	RatesLoading RatePhase = "rates-loading"
	RatesReady   RatePhase = "rates-ready"
)

// State is the checkout page reduced to plain data. Every transition is a
// method; none of them perform I/O.
type State struct {
	itemIDs []string

	preview         *Preview
	previewLoaded   bool
	addresses       []address.Address
	addressesLoaded bool
	loadErr         string

	addressID string

	rates        []ShippingRate
	ratesFor     string
	ratesPending string
	rateID       string

	method     PaymentMethod
	note       string
	submitting bool
}

func NewState(itemIDs []string) *State {
	return &State{
		itemIDs: append([]string(nil), itemIDs...),
		method:  PaymentCOD,
	}
}

func (s *State) ItemIDs() []string { return s.itemIDs }

func (s *State) AddressID() string { return s.addressID }

func (s *State) Phase() Phase {
	switch {
	case !s.previewLoaded || !s.addressesLoaded:
		return PhaseLoading
	case s.addressID == "":
		return PhaseNoAddress
	default:
		return PhaseHasAddress
	}
}

func (s *State) RatePhase() RatePhase {
	switch {
	case s.addressID == "":
		return RatesNone
	case s.ratesPending == s.addressID:
		return RatesLoading
	case s.ratesFor == s.addressID && len(s.rates) > 0:
		return RatesReady
	default:
		return RatesNone
	}
}

func (s *State) ApplyPreview(p *Preview) {
	s.preview = p
	s.previewLoaded = true
	s.autoSelectAddress()
}

func (s *State) ApplyAddresses(list []address.Address) {
	s.addresses = append([]address.Address(nil), list...)
	s.addressesLoaded = true
	s.autoSelectAddress()
}

// FailLoad settles the loading phase after the preview or the address list
// could not be read.
func (s *State) FailLoad(msg string) {
	s.previewLoaded = true
	s.addressesLoaded = true
	s.loadErr = msg
}

// autoSelectAddress prefers the preview's suggestion, then the first saved
// address. It never replaces an existing selection.
func (s *State) autoSelectAddress() {
	if s.addressID != "" || !s.previewLoaded || !s.addressesLoaded {
		return
	}
	if s.preview != nil && s.preview.Address != nil && s.preview.Address.ID != "" {
		s.addressID = s.preview.Address.ID
		return
	}
	if len(s.addresses) > 0 {
		s.addressID = s.addresses[0].ID
	}
}

// SelectAddress is the user's choice. It reports whether the selection
// changed, in which case the old rate is gone and new rates must be fetched.
func (s *State) SelectAddress(id string) (bool, error) {
	if !s.hasAddress(id) {
		return false, ErrUnknownAddress
	}
	if id == s.addressID {
		return false, nil
	}
	s.addressID = id
	s.rateID = ""
	s.rates = nil
	s.ratesFor = ""
	s.ratesPending = ""
	return true, nil
}

// BeginRates marks rates for addressID as in flight. Requests for an address
// that is no longer selected are ignored.
func (s *State) BeginRates(addressID string) bool {
	if addressID == "" || addressID != s.addressID {
		return false
	}
	s.ratesPending = addressID
	return true
}

// ApplyRates stores rates fetched for addressID. Results for any other
// address are dropped so they can never be submitted.
func (s *State) ApplyRates(addressID string, rates []ShippingRate) bool {
	if addressID != s.addressID {
		return false
	}
	s.rates = append([]ShippingRate(nil), rates...)
	s.ratesFor = addressID
	if s.ratesPending == addressID {
		s.ratesPending = ""
	}
	if _, ok := s.findRate(s.rateID); !ok {
		s.rateID = ""
		if len(s.rates) > 0 {
			s.rateID = s.rates[0].ID
		}
	}
	return true
}

func (s *State) FailRates(addressID string) {
	if addressID != s.addressID {
		return
	}
	s.rates = nil
	s.rateID = ""
	s.ratesFor = addressID
	if s.ratesPending == addressID {
		s.ratesPending = ""
	}
}

func (s *State) SelectRate(id string) error {
	if s.ratesFor != s.addressID {
		return ErrUnknownRate
	}
	if _, ok := s.findRate(id); !ok {
		return ErrUnknownRate
	}
	s.rateID = id
	return nil
}

func (s *State) SetPaymentMethod(m string) error {
	pm, err := ParsePaymentMethod(m)
	if err != nil {
		return err
	}
	s.method = pm
	return nil
}

func (s *State) SetNote(note string) { s.note = note }

// Validate checks the submission preconditions. A failure means no request
// may be sent.
func (s *State) Validate() error {
	if s.Phase() == PhaseLoading {
		return ErrNotLoaded
	}
	if s.preview == nil || len(s.preview.Items) == 0 {
		return ErrEmptyCheckout
	}
	if s.addressID == "" {
		return ErrAddressRequired
	}
	if s.ratesPending == s.addressID {
		return ErrRatesPending
	}
	if s.rateID == "" && s.ratesFor == s.addressID && len(s.rates) > 0 {
		return ErrRateRequired
	}
	if _, err := ParsePaymentMethod(string(s.method)); err != nil {
		return err
	}
	return nil
}

// Request builds the create-checkout body. Call Validate first.
func (s *State) Request() Request {
	req := Request{
		PaymentMethod: s.method,
		AddressID:     s.addressID,
		Note:          s.note,
		ItemIDs:       s.itemIDs,
	}
	if r, ok := s.selectedRate(); ok {
		req.ShippingMethod = r.ID
		req.RateID = r.ID
		req.ShippingFee = r.Fee
	}
	return req
}

func (s *State) Totals() Totals {
	var t Totals
	if s.preview != nil {
		t.Subtotal = s.preview.Subtotal
	}
	if r, ok := s.selectedRate(); ok {
		t.ShippingFee = r.Fee
	}
	t.Total = t.Subtotal + t.ShippingFee
	return t
}

func (s *State) BeginSubmit() error {
	if s.submitting {
		return ErrSubmitInProgress
	}
	s.submitting = true
	return nil
}

func (s *State) EndSubmit() { s.submitting = false }

func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:         s.Phase(),
		RatePhase:     s.RatePhase(),
		ItemIDs:       s.itemIDs,
		Items:         []PreviewItem{},
		Addresses:     s.addresses,
		AddressID:     s.addressID,
		Rates:         []ShippingRate{},
		PaymentMethod: s.method,
		Note:          s.note,
		Totals:        s.Totals(),
		Submitting:    s.submitting,
		Error:         s.loadErr,
	}
	if snap.Addresses == nil {
		snap.Addresses = []address.Address{}
	}
	if s.preview != nil && s.preview.Items != nil {
		snap.Items = s.preview.Items
	}
	if s.ratesFor == s.addressID && s.rates != nil {
		snap.Rates = s.rates
		snap.RateID = s.rateID
	}
	return snap
}

func (s *State) hasAddress(id string) bool {
	if id == "" {
		return false
	}
	if s.preview != nil && s.preview.Address != nil && s.preview.Address.ID == id {
		return true
	}
	for _, a := range s.addresses {
		if a.ID == id {
			return true
		}
	}
	return false
}

func (s *State) findRate(id string) (ShippingRate, bool) {
	if id == "" {
		return ShippingRate{}, false
	}
	for _, r := range s.rates {
		if r.ID == id {
			return r, true
		}
	}
	return ShippingRate{}, false
}

func (s *State) selectedRate() (ShippingRate, bool) {
	if s.ratesFor != s.addressID {
		return ShippingRate{}, false
	}
	return s.findRate(s.rateID)
}

// Navigate decides where the browser goes after a placed order: the gateway
// page for vnpay when the backend returned one, the local result view
// otherwise.
func Navigate(method PaymentMethod, resp *Response) Navigation {
	if method == PaymentVNPay && resp.PaymentURL != "" {
		return Navigation{URL: resp.PaymentURL, External: true}
	}

	return Navigation{URL: fmt.Sprintf("/checkout/result?status=success&order_id=%s&method=%s",
		url.QueryEscape(resp.OrderID), url.QueryEscape(string(method)))}
}
