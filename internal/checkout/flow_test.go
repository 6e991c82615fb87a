package checkout

import (
	"context"
	"errors"
	"testing"

	"hmade-storefront/internal/address"
	"hmade-storefront/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) OrderPreview(ctx context.Context, sess auth.Session, itemIDs []string) (*Preview, error) {
	args := m.Called(ctx, sess, itemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Preview), args.Error(1)
}

func (m *MockBackend) ShippingRates(ctx context.Context, sess auth.Session, req RatesRequest) (*RatesResponse, error) {
	args := m.Called(ctx, sess, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*RatesResponse), args.Error(1)
}

func (m *MockBackend) CreateCheckout(ctx context.Context, sess auth.Session, req Request) (*Response, error) {
	args := m.Called(ctx, sess, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Response), args.Error(1)
}

func (m *MockBackend) VerifyGatewayReturn(ctx context.Context, sess auth.Session, rawQuery string) (*GatewayResult, error) {
	args := m.Called(ctx, sess, rawQuery)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GatewayResult), args.Error(1)
}

type MockAddressBook struct {
	mock.Mock
}

func (m *MockAddressBook) List(ctx context.Context, sess auth.Session) ([]address.Address, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]address.Address), args.Error(1)
}

func (m *MockAddressBook) CreateFromForm(ctx context.Context, sess auth.Session, form address.Form) (*address.Address, error) {
	args := m.Called(ctx, sess, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*address.Address), args.Error(1)
}

var sess = auth.Session{Token: "tok", UserID: "u1", RoleID: auth.RoleUser}

const weight = 500

func loadedFlow(t *testing.T) (*Flow, *MockBackend, *MockAddressBook) {
	t.Helper()
	api := new(MockBackend)
	bk := new(MockAddressBook)

	api.On("OrderPreview", mock.Anything, sess, []string{"A"}).Return(preview(""), nil).Once()
	bk.On("List", mock.Anything, sess).Return(book, nil).Once()
	api.On("ShippingRates", mock.Anything, sess, RatesRequest{AddressID: "a1", Weight: weight}).
		Return(&RatesResponse{Rates: ratesA1}, nil).Once()

	f := NewFlow(api, bk, []string{"A"}, weight)
	snap, err := f.Load(context.Background(), sess)
	require.NoError(t, err)
	require.Equal(t, PhaseHasAddress, snap.Phase)
	require.Equal(t, RatesReady, snap.RatePhase)
	require.Equal(t, "r1", snap.RateID)
	return f, api, bk
}

func TestFlow_Load(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		_, api, bk := loadedFlow(t)
		api.AssertExpectations(t)
		bk.AssertExpectations(t)
	})

	t.Run("Preview failure settles loading", func(t *testing.T) {
		api := new(MockBackend)
		bk := new(MockAddressBook)
		upstream := errors.New("Giỏ hàng trống")
		api.On("OrderPreview", mock.Anything, sess, []string(nil)).Return(nil, upstream).Once()
		bk.On("List", mock.Anything, sess).Return(book, nil).Maybe()

		f := NewFlow(api, bk, nil, weight)
		snap, err := f.Load(context.Background(), sess)

		assert.ErrorIs(t, err, upstream)
		assert.NotEqual(t, PhaseLoading, snap.Phase)
		assert.Equal(t, "Giỏ hàng trống", snap.Error)
		api.AssertNotCalled(t, "ShippingRates", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Rate failure is not fatal", func(t *testing.T) {
		api := new(MockBackend)
		bk := new(MockAddressBook)
		api.On("OrderPreview", mock.Anything, sess, []string(nil)).Return(preview(""), nil).Once()
		bk.On("List", mock.Anything, sess).Return(book, nil).Once()
		api.On("ShippingRates", mock.Anything, sess, mock.Anything).Return(nil, errors.New("goship down")).Once()

		f := NewFlow(api, bk, nil, weight)
		snap, err := f.Load(context.Background(), sess)

		require.NoError(t, err)
		assert.Equal(t, RatesNone, snap.RatePhase)
	})
}

func TestFlow_SelectAddress(t *testing.T) {
	f, api, _ := loadedFlow(t)
	api.On("ShippingRates", mock.Anything, sess, RatesRequest{AddressID: "a2", Weight: weight}).
		Return(&RatesResponse{Rates: ratesA2}, nil).Once()

	snap, err := f.SelectAddress(context.Background(), sess, "a2")
	require.NoError(t, err)
	assert.Equal(t, "a2", snap.AddressID)
	assert.Equal(t, "r9", snap.RateID)
	assert.Equal(t, ratesA2, snap.Rates)

	_, err = f.SelectAddress(context.Background(), sess, "missing")
	assert.ErrorIs(t, err, ErrUnknownAddress)
	api.AssertExpectations(t)
}

func TestFlow_Submit(t *testing.T) {
	t.Run("COD", func(t *testing.T) {
		f, api, _ := loadedFlow(t)
		api.On("CreateCheckout", mock.Anything, sess, mock.MatchedBy(func(r Request) bool {
			return r.PaymentMethod == PaymentCOD && r.RateID == "r1" && r.AddressID == "a1"
		})).Return(&Response{OrderID: "X", PaymentMethod: "cod"}, nil).Once()

		resp, nav, err := f.Submit(context.Background(), sess)
		require.NoError(t, err)
		assert.Equal(t, "X", resp.OrderID)
		assert.Equal(t, "/checkout/result?status=success&order_id=X&method=cod", nav.URL)
		assert.False(t, nav.External)
		assert.False(t, f.Snapshot().Submitting)
	})

	t.Run("VNPay", func(t *testing.T) {
		f, api, _ := loadedFlow(t)
		_, err := f.SetPaymentMethod("vnpay")
		require.NoError(t, err)
		api.On("CreateCheckout", mock.Anything, sess, mock.Anything).
			Return(&Response{OrderID: "Y", PaymentURL: "https://sandbox.vnpayment.vn/pay?x=1"}, nil).Once()

		_, nav, err := f.Submit(context.Background(), sess)
		require.NoError(t, err)
		assert.True(t, nav.External)
		assert.Equal(t, "https://sandbox.vnpayment.vn/pay?x=1", nav.URL)
	})

	t.Run("Failure keeps inputs", func(t *testing.T) {
		f, api, _ := loadedFlow(t)
		_, err := f.SelectRate("r2")
		require.NoError(t, err)
		_, err = f.SetNote("call first")
		require.NoError(t, err)

		upstream := errors.New("out of stock")
		api.On("CreateCheckout", mock.Anything, sess, mock.Anything).Return(nil, upstream).Once()

		_, _, err = f.Submit(context.Background(), sess)
		assert.ErrorIs(t, err, upstream)

		snap := f.Snapshot()
		assert.False(t, snap.Submitting)
		assert.Equal(t, "r2", snap.RateID)
		assert.Equal(t, "call first", snap.Note)
		assert.Equal(t, "a1", snap.AddressID)
	})

	t.Run("Precondition sends nothing", func(t *testing.T) {
		api := new(MockBackend)
		bk := new(MockAddressBook)
		api.On("OrderPreview", mock.Anything, sess, []string(nil)).Return(preview(""), nil).Once()
		bk.On("List", mock.Anything, sess).Return([]address.Address{}, nil).Once()

		f := NewFlow(api, bk, nil, weight)
		_, err := f.Load(context.Background(), sess)
		require.NoError(t, err)

		_, _, err = f.Submit(context.Background(), sess)
		assert.ErrorIs(t, err, ErrAddressRequired)
		api.AssertNotCalled(t, "CreateCheckout", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestFlow_AddAddress(t *testing.T) {
	api := new(MockBackend)
	bk := new(MockAddressBook)
	api.On("OrderPreview", mock.Anything, sess, []string(nil)).Return(preview(""), nil).Once()
	bk.On("List", mock.Anything, sess).Return([]address.Address{}, nil).Once()

	f := NewFlow(api, bk, nil, weight)
	snap, err := f.Load(context.Background(), sess)
	require.NoError(t, err)
	require.Equal(t, PhaseNoAddress, snap.Phase)

	form := address.Form{Phone: "0901234567", Street: "1 A", CityID: 1, DistrictID: 2, WardID: 3}
	bk.On("CreateFromForm", mock.Anything, sess, form).Return(&address.Address{ID: "a2"}, nil).Once()
	bk.On("List", mock.Anything, sess).Return(book, nil).Once()
	api.On("ShippingRates", mock.Anything, sess, RatesRequest{AddressID: "a2", Weight: weight}).
		Return(&RatesResponse{Rates: ratesA2}, nil).Once()

	snap, err = f.AddAddress(context.Background(), sess, form)
	require.NoError(t, err)
	assert.Equal(t, PhaseHasAddress, snap.Phase)
	assert.Equal(t, "a2", snap.AddressID)
	assert.Equal(t, "r9", snap.RateID)
	bk.AssertExpectations(t)
}

func TestFlow_Close(t *testing.T) {
	f, _, _ := loadedFlow(t)
	f.Close()

	_, err := f.SelectRate("r2")
	assert.ErrorIs(t, err, ErrFlowClosed)
	_, _, err = f.Submit(context.Background(), sess)
	assert.ErrorIs(t, err, ErrFlowClosed)
	_, err = f.SelectAddress(context.Background(), sess, "a2")
	assert.ErrorIs(t, err, ErrFlowClosed)
}

func TestVerifyGatewayReturn(t *testing.T) {
	api := new(MockBackend)

	_, err := VerifyGatewayReturn(context.Background(), api, sess, "  ")
	assert.ErrorIs(t, err, ErrEmptyGatewayQuery)

	api.On("VerifyGatewayReturn", mock.Anything, sess, "vnp_ResponseCode=00&vnp_TxnRef=X").
		Return(&GatewayResult{Success: true, OrderID: "X"}, nil).Once()

	res, err := VerifyGatewayReturn(context.Background(), api, sess, "?vnp_ResponseCode=00&vnp_TxnRef=X")
	require.NoError(t, err)
	assert.True(t, res.Success)
}
