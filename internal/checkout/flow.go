package checkout

import (
	"context"
	"sync"

	"hmade-storefront/internal/address"
	"hmade-storefront/internal/auth"
	"hmade-storefront/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Backend is the slice of the upstream API checkout needs.
type Backend interface {
	OrderPreview(ctx context.Context, sess auth.Session, itemIDs []string) (*Preview, error)
	ShippingRates(ctx context.Context, sess auth.Session, req RatesRequest) (*RatesResponse, error)
	CreateCheckout(ctx context.Context, sess auth.Session, req Request) (*Response, error)
	VerifyGatewayReturn(ctx context.Context, sess auth.Session, rawQuery string) (*GatewayResult, error)
}

type AddressBook interface {
	List(ctx context.Context, sess auth.Session) ([]address.Address, error)
	CreateFromForm(ctx context.Context, sess auth.Session, form address.Form) (*address.Address, error)
}

// Flow drives one user's checkout page over the backend. State changes go
// through State; Flow only adds the I/O around them.
type Flow struct {
	api    Backend
	book   AddressBook
	weight int

	mu     sync.Mutex
	st     *State
	closed bool
}

func NewFlow(api Backend, book AddressBook, itemIDs []string, weight int) *Flow {
	return &Flow{
		api:    api,
		book:   book,
		weight: weight,
		st:     NewState(itemIDs),
	}
}

// Load reads the preview and the address book concurrently, picks the
// default address and fetches its rates.
func (f *Flow) Load(ctx context.Context, sess auth.Session) (Snapshot, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("component", "CheckoutFlow"),
		zap.String("method", "Load"),
		zap.String("user_id", sess.UserID),
	)

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return Snapshot{}, ErrFlowClosed
	}
	itemIDs := f.st.ItemIDs()
	f.mu.Unlock()

	var (
		preview   *Preview
		addresses []address.Address
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := f.api.OrderPreview(gctx, sess, itemIDs)
		preview = p
		return err
	})
	g.Go(func() error {
		list, err := f.book.List(gctx, sess)
		addresses = list
		return err
	})
	err := g.Wait()

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return Snapshot{}, ErrFlowClosed
	}
	if err != nil {
		log.Warn("checkout load failed", zap.Error(err))
		f.st.FailLoad(err.Error())
		snap := f.st.Snapshot()
		f.mu.Unlock()
		return snap, err
	}
	f.st.ApplyPreview(preview)
	f.st.ApplyAddresses(addresses)
	addressID := f.st.AddressID()
	f.mu.Unlock()

	f.fetchRates(ctx, sess, addressID)
	return f.Snapshot(), nil
}

// SelectAddress switches the shipping address. The previous rate is
// discarded and the new address's rates are fetched.
func (f *Flow) SelectAddress(ctx context.Context, sess auth.Session, id string) (Snapshot, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return Snapshot{}, ErrFlowClosed
	}
	changed, err := f.st.SelectAddress(id)
	f.mu.Unlock()
	if err != nil {
		return Snapshot{}, err
	}

	if changed {
		f.fetchRates(ctx, sess, id)
	}
	return f.Snapshot(), nil
}

func (f *Flow) SelectRate(id string) (Snapshot, error) {
	return f.update(func(st *State) error { return st.SelectRate(id) })
}

func (f *Flow) SetPaymentMethod(m string) (Snapshot, error) {
	return f.update(func(st *State) error { return st.SetPaymentMethod(m) })
}

func (f *Flow) SetNote(note string) (Snapshot, error) {
	return f.update(func(st *State) error {
		st.SetNote(note)
		return nil
	})
}

// AddAddress creates an address from the picker form and reloads the book.
// With no address selected yet, the new one becomes the selection.
func (f *Flow) AddAddress(ctx context.Context, sess auth.Session, form address.Form) (Snapshot, error) {
	if f.isClosed() {
		return Snapshot{}, ErrFlowClosed
	}

	created, err := f.book.CreateFromForm(ctx, sess, form)
	if err != nil {
		return Snapshot{}, err
	}
	list, err := f.book.List(ctx, sess)
	if err != nil {
		return Snapshot{}, err
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return Snapshot{}, ErrFlowClosed
	}
	before := f.st.AddressID()
	f.st.ApplyAddresses(list)
	if before == "" && created != nil {
		_, _ = f.st.SelectAddress(created.ID)
	}
	after := f.st.AddressID()
	f.mu.Unlock()

	if after != before {
		f.fetchRates(ctx, sess, after)
	}
	return f.Snapshot(), nil
}

// Submit places the order. Preconditions are checked before any request is
// sent; on failure the page keeps every input so the user can retry.
func (f *Flow) Submit(ctx context.Context, sess auth.Session) (*Response, Navigation, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("component", "CheckoutFlow"),
		zap.String("method", "Submit"),
		zap.String("user_id", sess.UserID),
	)

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, Navigation{}, ErrFlowClosed
	}
	if err := f.st.Validate(); err != nil {
		f.mu.Unlock()
		log.Info("checkout blocked", zap.Error(err))
		return nil, Navigation{}, err
	}
	if err := f.st.BeginSubmit(); err != nil {
		f.mu.Unlock()
		return nil, Navigation{}, err
	}
	req := f.st.Request()
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.st.EndSubmit()
		f.mu.Unlock()
	}()

	resp, err := f.api.CreateCheckout(ctx, sess, req)
	if err != nil {
		log.Error("create checkout failed", zap.Error(err))
		return nil, Navigation{}, err
	}

	nav := Navigate(req.PaymentMethod, resp)
	log.Info("order placed",
		zap.String("order_id", resp.OrderID),
		zap.String("payment_method", string(req.PaymentMethod)),
		zap.Bool("external", nav.External),
	)
	return resp, nav, nil
}

func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.st.Snapshot()
}

// Close unmounts the flow; results arriving later are dropped.
func (f *Flow) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

func (f *Flow) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *Flow) update(fn func(st *State) error) (Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return Snapshot{}, ErrFlowClosed
	}
	if err := fn(f.st); err != nil {
		return Snapshot{}, err
	}
	return f.st.Snapshot(), nil
}

// fetchRates loads rates for addressID. A failure leaves the address with no
// rates rather than failing the page.
func (f *Flow) fetchRates(ctx context.Context, sess auth.Session, addressID string) {
	f.mu.Lock()
	if f.closed || !f.st.BeginRates(addressID) {
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()

	resp, err := f.api.ShippingRates(ctx, sess, RatesRequest{AddressID: addressID, Weight: f.weight})

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	if err != nil {
		logger.FromCtx(ctx).Warn("shipping rates failed",
			zap.String("component", "CheckoutFlow"),
			zap.String("address_id", addressID),
			zap.Error(err),
		)
		f.st.FailRates(addressID)
		return
	}

	var rates []ShippingRate
	if resp != nil {
		rates = resp.Rates
	}
	f.st.ApplyRates(addressID, rates)
}
