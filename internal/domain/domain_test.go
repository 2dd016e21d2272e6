package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agrisetu/agrisetu/internal/domain"
)

func TestOrderStatusValidTransition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		from domain.OrderStatus
		to   domain.OrderStatus
		want bool
	}{
		{"pending to confirmed", domain.OrderStatusPending, domain.OrderStatusConfirmed, true},
		{"pending to cancelled", domain.OrderStatusPending, domain.OrderStatusCancelled, true},
		{"pending to shipped", domain.OrderStatusPending, domain.OrderStatusShipped, false},
		{"confirmed to shipped", domain.OrderStatusConfirmed, domain.OrderStatusShipped, true},
		{"confirmed to cancelled", domain.OrderStatusConfirmed, domain.OrderStatusCancelled, true},
		{"confirmed to delivered", domain.OrderStatusConfirmed, domain.OrderStatusDelivered, false},
		{"shipped to delivered", domain.OrderStatusShipped, domain.OrderStatusDelivered, true},
		{"shipped to cancelled", domain.OrderStatusShipped, domain.OrderStatusCancelled, false},
		{"delivered is terminal", domain.OrderStatusDelivered, domain.OrderStatusPending, false},
		{"cancelled is terminal", domain.OrderStatusCancelled, domain.OrderStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.from.ValidTransition(tt.to))
		})
	}
}

func TestStatusValidity(t *testing.T) {
	t.Parallel()

	assert.True(t, domain.OrderStatusPending.Valid())
	assert.False(t, domain.OrderStatus("returned").Valid())

	assert.True(t, domain.ProductStatusActive.Valid())
	assert.True(t, domain.ProductStatusSold.Valid())
	assert.False(t, domain.ProductStatus("archived").Valid())

	assert.True(t, domain.ReportKindSoil.Valid())
	assert.False(t, domain.ReportKind("weather").Valid())
}
