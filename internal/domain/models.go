package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products for browsing
type Category struct {
	ID           int64
	Name         string
	DisplayOrder int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Product is a catalog entry
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	ImageURL    *string
	CategoryID  int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// User represents a provisioned storefront user
type User struct {
	ID           uuid.UUID
	FullName     string
	Email        string
	Phone        string
	PasswordHash string
	IsAdmin      bool
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile returns the contact details embedded into inquiries
func (u *User) Profile() UserProfile {
	return UserProfile{
		FullName: u.FullName,
		Email:    u.Email,
		Phone:    u.Phone,
	}
}

// UserProfile is the contact slice of a user
type UserProfile struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// CartEntry is one product selection in a cart
type CartEntry struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// Cart is the ordered list of selections for one session.
// At most one entry exists per product id; order is first-add order.
type Cart struct {
	Entries []CartEntry `json:"entries"`
	State   CartState   `json:"state"`
}

// AddOrUpdate upserts an entry. Re-adding a carted product replaces its
// quantity in place, keeping the original position.
func (c *Cart) AddOrUpdate(productID int64, quantity int) {
	for i := range c.Entries {
		if c.Entries[i].ProductID == productID {
			c.Entries[i].Quantity = quantity
			return
		}
	}
	c.Entries = append(c.Entries, CartEntry{ProductID: productID, Quantity: quantity})
}

// Remove drops the entry for productID. Removing an absent product is a no-op.
func (c *Cart) Remove(productID int64) {
	for i := range c.Entries {
		if c.Entries[i].ProductID == productID {
			c.Entries = append(c.Entries[:i], c.Entries[i+1:]...)
			return
		}
	}
}

// Contains reports whether productID is carted
func (c *Cart) Contains(productID int64) bool {
	for _, e := range c.Entries {
		if e.ProductID == productID {
			return true
		}
	}
	return false
}

// ProductIDs returns the carted product ids in insertion order
func (c *Cart) ProductIDs() []int64 {
	ids := make([]int64, 0, len(c.Entries))
	for _, e := range c.Entries {
		ids = append(ids, e.ProductID)
	}
	return ids
}

// IsEmpty reports whether the cart has no entries
func (c *Cart) IsEmpty() bool {
	return len(c.Entries) == 0
}

// ResolvedCartLine joins a cart entry with its live catalog record.
// Never persisted, recomputed on every view.
type ResolvedCartLine struct {
	Product Product
	Entry   CartEntry
}

// InquiryRequest is the ephemeral payload of one inquiry submission
type InquiryRequest struct {
	User  UserProfile
	Lines []ResolvedCartLine
}
