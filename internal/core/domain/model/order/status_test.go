package order_test

import (
	"fmt"
	"testing"

	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []order.Status{
	order.Unknown,
	order.Created,
	order.Paid,
	order.Fulfilled,
	order.Cancelled,
}

func TestIsTransitionAllowed_MatchesTable(t *testing.T) {
	allowed := map[[2]order.Status]bool{
		{order.Created, order.Paid}:      true,
		{order.Created, order.Cancelled}: true,
		{order.Paid, order.Fulfilled}:    true,
		{order.Paid, order.Cancelled}:    true,
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			t.Run(fmt.Sprintf("%s to %s", from, to), func(t *testing.T) {
				assert.Equal(t, allowed[[2]order.Status{from, to}], order.IsTransitionAllowed(from, to))
			})
		}
	}
}

func TestIsTransitionAllowed_EdgeCases(t *testing.T) {
	t.Run("identity transitions are never allowed", func(t *testing.T) {
		for _, s := range allStatuses {
			assert.False(t, order.IsTransitionAllowed(s, s), s.String())
		}
	})

	t.Run("terminal states have no exits", func(t *testing.T) {
		for _, terminal := range []order.Status{order.Fulfilled, order.Cancelled} {
			require.True(t, terminal.IsTerminal())
			for _, to := range allStatuses {
				assert.False(t, order.IsTransitionAllowed(terminal, to))
			}
		}
	})

	t.Run("out of range values degrade to no transitions", func(t *testing.T) {
		assert.False(t, order.IsTransitionAllowed(order.Status(42), order.Paid))
		assert.False(t, order.IsTransitionAllowed(order.Created, order.Status(-1)))
	})
}

func TestParseStatus(t *testing.T) {
	testCases := []struct {
		input    string
		expected order.Status
	}{
		{"CREATED", order.Created},
		{"PAID", order.Paid},
		{"FULFILLED", order.Fulfilled},
		{"CANCELLED", order.Cancelled},
		{" paid ", order.Paid},
		{"", order.Unknown},
		{"SHIPPED", order.Unknown},
		{"UNKNOWN", order.Unknown},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, order.ParseStatus(tc.input))
		})
	}

	t.Run("round trips String", func(t *testing.T) {
		for _, s := range allStatuses[1:] {
			assert.Equal(t, s, order.ParseStatus(s.String()))
		}
	})
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range allStatuses[1:] {
		require.NoError(t, s.Validate())
	}

	err := order.Unknown.Validate()
	require.Error(t, err)
	assert.IsType(t, &errs.ValueIsInvalidError{}, err)
	assert.Contains(t, err.Error(), "0 is not a valid status")

	assert.Error(t, order.Status(9).Validate())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "CREATED", order.Created.String())
	assert.Equal(t, "CANCELLED", order.Cancelled.String())
	assert.Equal(t, "UNKNOWN", order.Unknown.String())
	assert.Equal(t, "UNKNOWN", order.Status(77).String())
}
