package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocationStatusIsValid(t *testing.T) {
	for _, s := range []AllocationStatus{StatusAllocated, StatusActive, StatusBilling, StatusClear, StatusComplete} {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, AllocationStatus("").IsValid())
	assert.False(t, AllocationStatus("Cancelled").IsValid())
	assert.False(t, AllocationStatus("allocated").IsValid(), "values are case sensitive")
}

func TestAllocationStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusComplete.IsTerminal())
	for _, s := range []AllocationStatus{StatusAllocated, StatusActive, StatusBilling, StatusClear} {
		assert.False(t, s.IsTerminal(), s)
	}
}

func TestCallingFlagIsValid(t *testing.T) {
	for _, f := range []CallingFlag{NonCalling, Calling, CallingForCheckout} {
		assert.True(t, f.IsValid(), f)
	}
	assert.False(t, CallingFlag("").IsValid())
	assert.False(t, CallingFlag("Checkout").IsValid())
}

func TestSeatStatusIsValid(t *testing.T) {
	for _, s := range []SeatStatus{SeatFree, SeatAllocated, SeatBlocked} {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, SeatStatus("HELD").IsValid())
}
