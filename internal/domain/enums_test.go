package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartStateIsValid(t *testing.T) {
	for _, s := range []CartState{CartStateEmpty, CartStateActive, CartStateSubmitted, CartStateCleared} {
		assert.True(t, s.IsValid(), "state %s", s)
	}
	assert.False(t, CartState("PENDING").IsValid())
	assert.False(t, CartState("").IsValid())
}

func TestCartStateTransitions(t *testing.T) {
	cases := []struct {
		from    CartState
		to      CartState
		allowed bool
	}{
		{CartStateEmpty, CartStateActive, true},
		{CartStateEmpty, CartStateSubmitted, false},
		{CartStateEmpty, CartStateCleared, false},
		{CartStateActive, CartStateActive, true},
		{CartStateActive, CartStateSubmitted, true},
		{CartStateActive, CartStateCleared, false},
		{CartStateSubmitted, CartStateActive, true},
		{CartStateSubmitted, CartStateSubmitted, true},
		{CartStateSubmitted, CartStateCleared, true},
		{CartStateCleared, CartStateEmpty, true},
		{CartStateCleared, CartStateActive, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}
