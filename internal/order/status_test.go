package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressOf(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		want   Progress
	}{
		{"Pending", "pending", Progress{Step: 0, Total: 4}},
		{"Confirmed", "confirmed", Progress{Step: 1, Total: 4}},
		{"Shipping", "shipping", Progress{Step: 2, Total: 4}},
		{"Shipped alias", "SHIPPED", Progress{Step: 2, Total: 4}},
		{"Delivered mixed case", "Delivered", Progress{Step: 3, Total: 4}},
		{"Cancelled upper", "CANCELLED", Progress{Step: StepCancelled, Cancelled: true, Total: 4}},
		{"Cancelled lower", "cancelled", Progress{Step: StepCancelled, Cancelled: true, Total: 4}},
		{"Unknown", "weird", Progress{Step: 0, Total: 4}},
		{"Empty", "", Progress{Step: 0, Total: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProgressOf(tt.status))
		})
	}
}

func TestParse(t *testing.T) {
	s, err := Parse(" Confirmed ")
	assert.NoError(t, err)
	assert.Equal(t, StatusConfirmed, s)

	s, err = Parse("SHIPPED")
	assert.NoError(t, err)
	assert.Equal(t, StatusShipping, s)

	_, err = Parse("refunded")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestBadgeFor(t *testing.T) {
	assert.Equal(t, Badge{Status: StatusCancelled, Tone: ToneError, Label: "Đã hủy"}, BadgeFor("CANCELLED"))
	assert.Equal(t, ToneSuccess, BadgeFor("delivered").Tone)
	assert.Equal(t, BadgeFor(StatusPending), BadgeFor("weird"))
}

func TestAdminStatusOptions(t *testing.T) {
	opts := AdminStatusOptions()

	var got []Status
	for _, o := range opts {
		got = append(got, o.Status)
	}
	assert.Equal(t, []Status{StatusPending, StatusConfirmed, StatusShipping, StatusDelivered, StatusCancelled}, got)
}

func TestCanCancel(t *testing.T) {
	assert.True(t, CanCancel("PENDING"))
	assert.False(t, CanCancel(StatusConfirmed))
	assert.False(t, CanCancel(StatusCancelled))
	assert.False(t, CanCancel("weird"))
}
