package order

import (
	"context"

	"hmade-storefront/internal/auth"
	"hmade-storefront/internal/logger"
	"hmade-storefront/internal/validation"

	"go.uber.org/zap"
)

const (
	defaultLimit = 100
	maxLimit     = 100
)

// Backend is the slice of the upstream API the order screens need.
type Backend interface {
	ListMyOrders(ctx context.Context, sess auth.Session, skip, limit int) ([]Order, error)
	GetMyOrder(ctx context.Context, sess auth.Session, id string) (*Order, error)
	CancelMyOrder(ctx context.Context, sess auth.Session, id string) (*Message, error)

	AdminListOrders(ctx context.Context, sess auth.Session, params ListParams) (*Page, error)
	AdminGetOrder(ctx context.Context, sess auth.Session, id string) (*Order, error)
	AdminUpdateStatus(ctx context.Context, sess auth.Session, id string, status Status) (*StatusUpdate, error)

	CreateShipment(ctx context.Context, sess auth.Session, req ShipmentRequest) (*Shipment, error)
	TrackShipment(ctx context.Context, sess auth.Session, orderID string) (*Shipment, error)
	CancelShipment(ctx context.Context, sess auth.Session, orderID string) (*Shipment, error)
}

// Service defines the customer and admin order operations.
type Service interface {
	ListMine(ctx context.Context, sess auth.Session, skip, limit int) ([]View, error)
	GetMine(ctx context.Context, sess auth.Session, id string) (*View, error)
	Cancel(ctx context.Context, sess auth.Session, id string) (*Message, error)

	AdminList(ctx context.Context, sess auth.Session, params ListParams) (*Page, error)
	AdminGet(ctx context.Context, sess auth.Session, id string) (*View, error)
	AdminUpdateStatus(ctx context.Context, sess auth.Session, id, status string) (*StatusUpdate, error)

	CreateShipment(ctx context.Context, sess auth.Session, req ShipmentRequest) (*Shipment, error)
	TrackShipment(ctx context.Context, sess auth.Session, orderID string) (*Shipment, error)
	CancelShipment(ctx context.Context, sess auth.Session, orderID string) (*Shipment, error)
}

type service struct {
	api Backend
}

func NewService(api Backend) Service {
	return &service{api: api}
}

func (s *service) ListMine(ctx context.Context, sess auth.Session, skip, limit int) ([]View, error) {
	skip, limit = clampPage(skip, limit)

	orders, err := s.api.ListMyOrders(ctx, sess, skip, limit)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(orders))
	for _, o := range orders {
		views = append(views, NewView(o))
	}
	return views, nil
}

func (s *service) GetMine(ctx context.Context, sess auth.Session, id string) (*View, error) {
	if id == "" {
		return nil, ErrOrderIDRequired
	}
	o, err := s.api.GetMyOrder(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	v := NewView(*o)
	return &v, nil
}

// Cancel withdraws a customer's own order. Only pending orders are offered
// the action; the backend still has the final word.
func (s *service) Cancel(ctx context.Context, sess auth.Session, id string) (*Message, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Cancel"),
		zap.String("user_id", sess.UserID),
		zap.String("order_id", id),
	)

	if id == "" {
		return nil, ErrOrderIDRequired
	}

	o, err := s.api.GetMyOrder(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if !CanCancel(o.Status) {
		log.Info("cancel refused", zap.String("status", string(o.Status)))
		return nil, ErrNotCancellable
	}

	msg, err := s.api.CancelMyOrder(ctx, sess, id)
	if err != nil {
		log.Error("cancel failed", zap.Error(err))
		return nil, err
	}

	log.Info("order cancelled")
	return msg, nil
}

func (s *service) AdminList(ctx context.Context, sess auth.Session, params ListParams) (*Page, error) {
	params.Skip, params.Limit = clampPage(params.Skip, params.Limit)
	if params.Status != "" {
		st, err := Parse(string(params.Status))
		if err != nil {
			return nil, err
		}
		params.Status = st
	}
	return s.api.AdminListOrders(ctx, sess, params)
}

func (s *service) AdminGet(ctx context.Context, sess auth.Session, id string) (*View, error) {
	if id == "" {
		return nil, ErrOrderIDRequired
	}
	o, err := s.api.AdminGetOrder(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	v := NewView(*o)
	return &v, nil
}

// AdminUpdateStatus only checks that status is part of the vocabulary. Any
// of the five values may be requested from any current status.
func (s *service) AdminUpdateStatus(ctx context.Context, sess auth.Session, id, status string) (*StatusUpdate, error) {
	if id == "" {
		return nil, ErrOrderIDRequired
	}
	st, err := Parse(status)
	if err != nil {
		return nil, err
	}

	res, err := s.api.AdminUpdateStatus(ctx, sess, id, st)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("order status updated",
		zap.String("layer", "service"),
		zap.String("order_id", id),
		zap.String("status", string(st)),
		zap.String("admin_id", sess.UserID),
	)
	return res, nil
}

func (s *service) CreateShipment(ctx context.Context, sess auth.Session, req ShipmentRequest) (*Shipment, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	return s.api.CreateShipment(ctx, sess, req)
}

func (s *service) TrackShipment(ctx context.Context, sess auth.Session, orderID string) (*Shipment, error) {
	if orderID == "" {
		return nil, ErrOrderIDRequired
	}
	return s.api.TrackShipment(ctx, sess, orderID)
}

func (s *service) CancelShipment(ctx context.Context, sess auth.Session, orderID string) (*Shipment, error) {
	if orderID == "" {
		return nil, ErrOrderIDRequired
	}
	return s.api.CancelShipment(ctx, sess, orderID)
}

func clampPage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return skip, limit
}
