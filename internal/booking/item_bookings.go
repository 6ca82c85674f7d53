package booking

import (
	"github.com/shareit-go/shareit/internal/item"
)

// NewItemBookings exposes booking queries to the item engine.
func NewItemBookings(repo Repository) item.BookingFinder {
	return repo
}
