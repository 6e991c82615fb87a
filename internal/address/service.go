package address

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"hmade-storefront/internal/auth"
	"hmade-storefront/internal/logger"
	"hmade-storefront/internal/validation"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

const locationCacheSize = 2048

// Backend is the slice of the upstream API the address service needs.
type Backend interface {
	ListAddresses(ctx context.Context, sess auth.Session) ([]Address, error)
	CreateAddress(ctx context.Context, sess auth.Session, in CreateInput) (*Address, error)
	UpdateAddress(ctx context.Context, sess auth.Session, id string, in UpdateInput) (*Address, error)
	DeleteAddress(ctx context.Context, sess auth.Session, id string) error

	Cities(ctx context.Context) ([]Location, error)
	Districts(ctx context.Context, cityID int) ([]Location, error)
	Wards(ctx context.Context, districtID int) ([]Location, error)
}

// Service defines the address book and location lookups.
type Service interface {
	List(ctx context.Context, sess auth.Session) ([]Address, error)
	Create(ctx context.Context, sess auth.Session, in CreateInput) (*Address, error)
	CreateFromForm(ctx context.Context, sess auth.Session, form Form) (*Address, error)
	Update(ctx context.Context, sess auth.Session, id string, in UpdateInput) (*Address, error)
	Delete(ctx context.Context, sess auth.Session, id string) error

	Cities(ctx context.Context) ([]Location, error)
	Districts(ctx context.Context, cityID int) ([]Location, error)
	Wards(ctx context.Context, districtID int) ([]Location, error)
}

type service struct {
	api       Backend
	locations *expirable.LRU[string, []Location]
}

func NewService(api Backend, locationTTL time.Duration) Service {
	return &service{
		api:       api,
		locations: expirable.NewLRU[string, []Location](locationCacheSize, nil, locationTTL),
	}
}

func (s *service) List(ctx context.Context, sess auth.Session) ([]Address, error) {
	return s.api.ListAddresses(ctx, sess)
}

func (s *service) Create(ctx context.Context, sess auth.Session, in CreateInput) (*Address, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.String("user_id", sess.UserID),
	)

	if err := validation.Struct(in); err != nil {
		log.Warn("invalid address input", zap.Error(err))
		return nil, err
	}

	a, err := s.api.CreateAddress(ctx, sess, in)
	if err != nil {
		log.Error("failed to create address", zap.Error(err))
		return nil, err
	}

	log.Info("address created", zap.String("address_id", a.ID))
	return a, nil
}

// CreateFromForm resolves the picked location ids to names, checking each
// child belongs to its parent, and creates the address.
func (s *service) CreateFromForm(ctx context.Context, sess auth.Session, form Form) (*Address, error) {
	if err := validation.Struct(form); err != nil {
		return nil, err
	}

	picker, err := s.resolve(ctx, form)
	if err != nil {
		return nil, err
	}

	return s.Create(ctx, sess, picker.Input(form.FullName, form.Street, form.Phone))
}

func (s *service) Update(ctx context.Context, sess auth.Session, id string, in UpdateInput) (*Address, error) {
	if id == "" {
		return nil, ErrAddressIDRequired
	}
	if in.Title == nil && in.PhoneNumber == nil {
		return nil, ErrNothingToUpdate
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	return s.api.UpdateAddress(ctx, sess, id, in)
}

func (s *service) Delete(ctx context.Context, sess auth.Session, id string) error {
	if id == "" {
		return ErrAddressIDRequired
	}
	return s.api.DeleteAddress(ctx, sess, id)
}

func (s *service) Cities(ctx context.Context) ([]Location, error) {
	return s.cached(ctx, "cities", func() ([]Location, error) {
		return s.api.Cities(ctx)
	})
}

func (s *service) Districts(ctx context.Context, cityID int) ([]Location, error) {
	return s.cached(ctx, "districts:"+strconv.Itoa(cityID), func() ([]Location, error) {
		return s.api.Districts(ctx, cityID)
	})
}

func (s *service) Wards(ctx context.Context, districtID int) ([]Location, error) {
	return s.cached(ctx, "wards:"+strconv.Itoa(districtID), func() ([]Location, error) {
		return s.api.Wards(ctx, districtID)
	})
}

func (s *service) cached(ctx context.Context, key string, load func() ([]Location, error)) ([]Location, error) {
	if list, ok := s.locations.Get(key); ok {
		return list, nil
	}

	list, err := load()
	if err != nil {
		logger.FromCtx(ctx).Warn("location lookup failed",
			zap.String("layer", "service"),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, err
	}
	if len(list) > 0 {
		s.locations.Add(key, list)
	}
	return list, nil
}

func (s *service) resolve(ctx context.Context, form Form) (*Picker, error) {
	var p Picker

	cities, err := s.Cities(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading cities: %w", err)
	}
	city, ok := findLocation(cities, form.CityID)
	if !ok {
		return nil, ErrCityNotFound
	}
	p.SelectCity(city)

	districts, err := s.Districts(ctx, city.ID)
	if err != nil {
		return nil, fmt.Errorf("loading districts: %w", err)
	}
	district, ok := findLocation(districts, form.DistrictID)
	if !ok {
		return nil, ErrDistrictNotFound
	}
	if err := p.SelectDistrict(district); err != nil {
		return nil, err
	}

	wards, err := s.Wards(ctx, district.ID)
	if err != nil {
		return nil, fmt.Errorf("loading wards: %w", err)
	}
	ward, ok := findLocation(wards, form.WardID)
	if !ok {
		return nil, ErrWardNotFound
	}
	if err := p.SelectWard(ward); err != nil {
		return nil, err
	}

	return &p, nil
}
