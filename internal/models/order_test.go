package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderPending, OrderProcessing, true},
		{OrderPending, OrderCancelled, true},
		{OrderPending, OrderCompleted, false},
		{OrderPending, OrderDelivered, false},
		{OrderProcessing, OrderCompleted, true},
		{OrderProcessing, OrderCancelled, true},
		{OrderProcessing, OrderDelivered, true},
		{OrderProcessing, OrderPending, false},
		{OrderCompleted, OrderCancelled, false},
		{OrderCancelled, OrderProcessing, false},
		{OrderDelivered, OrderCompleted, false},
	}
	for _, tc := range cases {
		order := Order{Status: tc.from}
		require.Equal(t, tc.allowed, order.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestDeliveryMethodRules(t *testing.T) {
	require.True(t, DeliveryMethodDelivery.NeedsAddress())
	require.True(t, DeliveryMethodCourier.NeedsAddress())
	require.False(t, DeliveryMethodDineIn.NeedsAddress())
	require.False(t, DeliveryMethodPickup.NeedsAddress())

	require.True(t, DeliveryMethodDineIn.AllowsCash())
	require.True(t, DeliveryMethodPickup.AllowsCash())
	require.False(t, DeliveryMethodDelivery.AllowsCash())
	require.False(t, DeliveryMethodCourier.AllowsCash())
}

func TestEffectivePrice(t *testing.T) {
	p := Product{Price: decimal.RequireFromString("8.00")}
	require.True(t, p.EffectivePrice().Equal(decimal.RequireFromString("8.00")))

	d := decimal.RequireFromString("5.00")
	p.DiscountedPrice = &d
	require.True(t, p.EffectivePrice().Equal(d))
}

func TestRecordStatusFor(t *testing.T) {
	require.Equal(t, PaymentRecSuccessful, RecordStatusFor(PaymentPaid))
	require.Equal(t, PaymentRecFailed, RecordStatusFor(PaymentFailed))
	require.Equal(t, PaymentRecRefunded, RecordStatusFor(PaymentRefunded))
	require.Equal(t, PaymentRecPending, RecordStatusFor(PaymentUnpaid))
	require.Equal(t, PaymentRecPending, RecordStatusFor(PaymentPending))
}
