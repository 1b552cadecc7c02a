package domain

// CartState represents where a session's cart is in its lifecycle
type CartState string

const (
	CartStateEmpty     CartState = "EMPTY"
	CartStateActive    CartState = "ACTIVE"
	CartStateSubmitted CartState = "SUBMITTED"
	CartStateCleared   CartState = "CLEARED"
)

// IsValid checks if the cart state is valid
func (s CartState) IsValid() bool {
	switch s {
	case CartStateEmpty, CartStateActive, CartStateSubmitted, CartStateCleared:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a state transition is valid.
// Submitting does not clear the cart: a user may resubmit or navigate back
// before confirming, so only the explicit confirmation step reaches Cleared.
func (s CartState) CanTransitionTo(newState CartState) bool {
	switch s {
	case CartStateEmpty:
		return newState == CartStateActive
	case CartStateActive:
		return newState == CartStateActive ||
			newState == CartStateSubmitted
	case CartStateSubmitted:
		return newState == CartStateActive ||
			newState == CartStateSubmitted ||
			newState == CartStateCleared
	case CartStateCleared:
		return newState == CartStateEmpty
	default:
		return false
	}
}
