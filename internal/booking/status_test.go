package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusWaiting, StatusApproved, true},
		{StatusWaiting, StatusRejected, true},
		{StatusWaiting, StatusWaiting, false},
		{StatusApproved, StatusRejected, false},
		{StatusApproved, StatusApproved, false},
		{StatusRejected, StatusApproved, false},
		{StatusRejected, StatusWaiting, false},
		{Status("CANCELED"), StatusApproved, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusWaiting.IsTerminal())
	assert.True(t, StatusApproved.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.False(t, Status("bogus").IsTerminal())
	assert.False(t, Status("bogus").IsValid())
}

func TestApprovalStatus(t *testing.T) {
	assert.Equal(t, StatusApproved, ApprovalStatus(true))
	assert.Equal(t, StatusRejected, ApprovalStatus(false))
}
