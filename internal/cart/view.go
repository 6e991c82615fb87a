package cart

import (
	"context"
	"sync"

	"hmade-storefront/internal/auth"
	"hmade-storefront/internal/logger"
	"hmade-storefront/internal/product"
	"hmade-storefront/internal/validation"

	"go.uber.org/zap"
)

// Backend is the slice of the upstream API the cart view needs.
type Backend interface {
	GetCart(ctx context.Context, sess auth.Session) (*ServerCart, error)
	AddCartItem(ctx context.Context, sess auth.Session, in AddInput) (*Mutation, error)
	UpdateCartItem(ctx context.Context, sess auth.Session, id string, quantity int) (*Mutation, error)
	DeleteCartItem(ctx context.Context, sess auth.Session, id string) (*Mutation, error)
	ClearCart(ctx context.Context, sess auth.Session) error
}

type Catalog interface {
	GetMany(ctx context.Context, sess auth.Session, ids []string) map[string]*product.Product
}

// View is one user's mounted cart. Row mutations are optimistic: the requested
// quantity shows immediately and the row stays busy until the backend answers.
type View struct {
	api     Backend
	catalog Catalog

	mu       sync.Mutex
	lines    []Line
	products map[string]*product.Product
	sel      *Selection
	pending  map[string]int
	deleting map[string]struct{}
	loads    int
	closed   bool
}

func NewView(api Backend, catalog Catalog) *View {
	return &View{
		api:      api,
		catalog:  catalog,
		products: make(map[string]*product.Product),
		sel:      NewSelection(),
		pending:  make(map[string]int),
		deleting: make(map[string]struct{}),
	}
}

// Refresh re-reads the cart and the products it references.
func (v *View) Refresh(ctx context.Context, sess auth.Session) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrViewClosed
	}
	v.loads++
	v.mu.Unlock()

	defer func() {
		v.mu.Lock()
		v.loads--
		v.mu.Unlock()
	}()

	sc, err := v.api.GetCart(ctx, sess)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(sc.Items))
	for _, l := range sc.Items {
		ids = append(ids, l.ProductID)
	}
	products := v.catalog.GetMany(ctx, sess, ids)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrViewClosed
	}
	v.applyLinesLocked(sc.Items)
	for id, p := range products {
		v.products[id] = p
	}
	return nil
}

// Snapshot renders the current view.
func (v *View) Snapshot() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stateLocked()
}

func (v *View) Toggle(id string) (State, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return State{}, ErrViewClosed
	}
	if _, ok := v.lineLocked(id); !ok {
		return State{}, ErrCartItemNotFound
	}
	v.sel.Toggle(id)
	return v.stateLocked(), nil
}

func (v *View) SelectAll(on bool) (State, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return State{}, ErrViewClosed
	}
	v.sel.SelectAll(v.idsLocked(), on)
	return v.stateLocked(), nil
}

func (v *View) Increase(ctx context.Context, sess auth.Session, id string) error {
	q, err := v.displayedQuantity(id)
	if err != nil {
		return err
	}
	return v.SetQuantity(ctx, sess, id, q+1)
}

// Decrease never takes a row below one; use Delete for that.
func (v *View) Decrease(ctx context.Context, sess auth.Session, id string) error {
	q, err := v.displayedQuantity(id)
	if err != nil {
		return err
	}
	if q <= 1 {
		return nil
	}
	return v.SetQuantity(ctx, sess, id, q-1)
}

// SetQuantity clamps to one, shows the new quantity right away and sends it.
func (v *View) SetQuantity(ctx context.Context, sess auth.Session, id string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	v.mu.Lock()
	if err := v.claimRowLocked(id); err != nil {
		v.mu.Unlock()
		return err
	}
	v.pending[id] = quantity
	v.mu.Unlock()

	res, err := v.api.UpdateCartItem(ctx, sess, id, quantity)

	v.mu.Lock()
	delete(v.pending, id)
	if err == nil && !v.closed {
		v.applyMutationLocked(res)
	}
	v.mu.Unlock()

	if err != nil {
		return err
	}
	v.resync(ctx, sess, "SetQuantity")
	return nil
}

// Delete removes the row and its selection.
func (v *View) Delete(ctx context.Context, sess auth.Session, id string) error {
	v.mu.Lock()
	if err := v.claimRowLocked(id); err != nil {
		v.mu.Unlock()
		return err
	}
	v.deleting[id] = struct{}{}
	v.mu.Unlock()

	_, err := v.api.DeleteCartItem(ctx, sess, id)

	v.mu.Lock()
	delete(v.deleting, id)
	if err == nil && !v.closed {
		v.removeLineLocked(id)
	}
	v.mu.Unlock()

	if err != nil {
		return err
	}
	v.resync(ctx, sess, "Delete")
	return nil
}

func (v *View) Add(ctx context.Context, sess auth.Session, in AddInput) error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	if v.isClosed() {
		return ErrViewClosed
	}

	res, err := v.api.AddCartItem(ctx, sess, in)
	if err != nil {
		return err
	}

	v.mu.Lock()
	if !v.closed {
		v.applyMutationLocked(res)
	}
	v.mu.Unlock()

	v.resync(ctx, sess, "Add")
	return nil
}

func (v *View) Clear(ctx context.Context, sess auth.Session) error {
	if v.isClosed() {
		return ErrViewClosed
	}
	if err := v.api.ClearCart(ctx, sess); err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.closed {
		v.applyLinesLocked(nil)
	}
	return nil
}

// CheckoutItemIDs returns the selected line ids in cart order.
func (v *View) CheckoutItemIDs() ([]string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	ids := v.sel.IDs(v.idsLocked())
	if len(ids) == 0 {
		return nil, ErrNothingSelected
	}
	return ids, nil
}

// Close unmounts the view. Work still in flight settles without touching it.
func (v *View) Close() {
	v.mu.Lock()
	v.closed = true
	v.mu.Unlock()
}

func (v *View) isClosed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

// resync re-reads the authoritative cart after a mutation. The mutation has
// already succeeded, so a failed re-read is only logged.
func (v *View) resync(ctx context.Context, sess auth.Session, method string) {
	if err := v.Refresh(ctx, sess); err != nil && err != ErrViewClosed {
		logger.FromCtx(ctx).Warn("cart resync failed",
			zap.String("component", "CartView"),
			zap.String("method", method),
			zap.Error(err),
		)
	}
}

func (v *View) displayedQuantity(id string) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return 0, ErrViewClosed
	}
	if q, ok := v.pending[id]; ok {
		return q, ErrRowBusy
	}
	l, ok := v.lineLocked(id)
	if !ok {
		return 0, ErrCartItemNotFound
	}
	return l.Quantity, nil
}

func (v *View) claimRowLocked(id string) error {
	if v.closed {
		return ErrViewClosed
	}
	if _, ok := v.lineLocked(id); !ok {
		return ErrCartItemNotFound
	}
	if _, busy := v.pending[id]; busy {
		return ErrRowBusy
	}
	if _, busy := v.deleting[id]; busy {
		return ErrRowBusy
	}
	return nil
}

func (v *View) applyMutationLocked(m *Mutation) {
	switch {
	case m.hasSnapshot():
		v.applyLinesLocked(m.Items)
	case m != nil && m.CartItem != nil:
		id := ItemID(*m.CartItem)
		for i := range v.lines {
			if ItemID(v.lines[i]) == id {
				v.lines[i].Quantity = m.CartItem.Quantity
				return
			}
		}
		v.lines = append(v.lines, *m.CartItem)
	}
}

func (v *View) applyLinesLocked(lines []Line) {
	v.lines = append([]Line(nil), lines...)
	v.sel.Prune(v.idsLocked())
}

func (v *View) removeLineLocked(id string) {
	kept := v.lines[:0]
	for _, l := range v.lines {
		if ItemID(l) != id {
			kept = append(kept, l)
		}
	}
	v.lines = kept
	v.sel.Remove(id)
}

func (v *View) lineLocked(id string) (Line, bool) {
	for _, l := range v.lines {
		if ItemID(l) == id {
			return l, true
		}
	}
	return Line{}, false
}

func (v *View) idsLocked() []string {
	ids := make([]string, 0, len(v.lines))
	for _, l := range v.lines {
		ids = append(ids, ItemID(l))
	}
	return ids
}

func (v *View) stateLocked() State {
	items := Reconcile(Enrich(v.lines, v.products), v.pending)
	for i := range items {
		if _, ok := v.deleting[items[i].ID]; ok {
			items[i].Busy = true
		}
	}

	ids := v.idsLocked()
	selected := v.sel.IDs(ids)
	return State{
		Items:       items,
		Selected:    selected,
		AllSelected: len(ids) > 0 && len(selected) == len(ids),
		Totals:      ComputeTotals(items, v.sel),
		Loading:     v.loads > 0,
	}
}
