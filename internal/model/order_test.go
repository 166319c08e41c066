package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	for _, s := range []string{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled} {
		assert.True(t, ValidStatus(s), "%s should be valid", s)
	}
	assert.False(t, ValidStatus("refunded"))
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("PENDING"))
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{OrderPending, OrderProcessing, true},
		{OrderProcessing, OrderShipped, true},
		{OrderShipped, OrderDelivered, true},

		// cancel from any non-terminal state
		{OrderPending, OrderCancelled, true},
		{OrderProcessing, OrderCancelled, true},
		{OrderShipped, OrderCancelled, true},

		// no skipping ahead or moving backwards
		{OrderPending, OrderShipped, false},
		{OrderPending, OrderDelivered, false},
		{OrderShipped, OrderProcessing, false},
		{OrderProcessing, OrderPending, false},

		// terminal states are final
		{OrderDelivered, OrderCancelled, false},
		{OrderDelivered, OrderProcessing, false},
		{OrderCancelled, OrderPending, false},
		{OrderCancelled, OrderDelivered, false},

		// no self transitions
		{OrderPending, OrderPending, false},

		// unknown statuses never transition
		{"refunded", OrderPending, false},
		{OrderPending, "refunded", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}
