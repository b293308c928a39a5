package domain

import (
	"errors"
	"time"
)

// DefaultCategory is applied when a menu item is created without one.
const DefaultCategory = "Main Course"

// DefaultImageURL is the placeholder shown for items without a photo.
const DefaultImageURL = "https://placehold.co/400x300/E0E0E0/333333?text=No+Image"

var (
	ErrMenuItemExists   = errors.New("menu item already exists")
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrInvalidMenuItem  = errors.New("invalid menu item")
)

// MenuItem is a dish on the restaurant menu. Name is unique across the
// catalog.
type MenuItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
