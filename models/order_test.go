package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountsTowardCapacity(t *testing.T) {
	tests := []struct {
		status OrderStatus
		counts bool
	}{
		{StatusPendingPayment, false},
		{StatusPending, true},
		{StatusConfirmed, true},
		{StatusCompleted, true},
		{StatusCancelled, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.counts, tt.status.CountsTowardCapacity())
		})
	}
}

func TestActiveStatusesMatchesCountsTowardCapacity(t *testing.T) {
	active := map[OrderStatus]bool{}
	for _, s := range ActiveStatuses() {
		active[s] = true
	}
	all := []OrderStatus{StatusPendingPayment, StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}
	for _, s := range all {
		assert.Equal(t, s.CountsTowardCapacity(), active[s], "status %s", s)
	}
}

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{"payment confirms", StatusPendingPayment, StatusPending, true},
		{"bakery confirms", StatusPending, StatusConfirmed, true},
		{"delivery completes", StatusConfirmed, StatusCompleted, true},
		{"cancel while pending payment", StatusPendingPayment, StatusCancelled, true},
		{"cancel while pending", StatusPending, StatusCancelled, true},
		{"cancel while confirmed", StatusConfirmed, StatusCancelled, true},
		{"cancel after completion", StatusCompleted, StatusCancelled, false},
		{"revive cancelled order", StatusCancelled, StatusPending, false},
		{"skip confirmation", StatusPending, StatusCompleted, false},
		{"confirm before payment", StatusPendingPayment, StatusConfirmed, false},
		{"walk back confirmation", StatusConfirmed, StatusPending, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPendingPayment.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
}

func TestIsValid(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.False(t, OrderStatus("shipped").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}
