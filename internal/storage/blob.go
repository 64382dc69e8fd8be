// Package storage provides blob storage for hotel logos and booking-attached
// documents. Keys are hierarchical paths, e.g. "hotel-logos/<hotelId>/logo"
// or "bookings/<bookingId>/id-front".
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Delete when the object is already absent.
// Cascading deletes treat it as non-fatal.
var ErrNotFound = errors.New("blob not found")

// BlobStore is the minimal contract the services need from the blob backend.
type BlobStore interface {
	// Upload stores data under key and returns the public URL.
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// Delete removes the object under key, returning ErrNotFound when the
	// object does not exist.
	Delete(ctx context.Context, key string) error
}

// LogoKey is the blob key for a hotel's logo.
func LogoKey(hotelID string) string {
	return "hotel-logos/" + hotelID + "/logo"
}

// BookingDocKey is the blob key for a guest-uploaded booking document.
// kind is one of "id-front", "id-back", "payment-proof".
func BookingDocKey(bookingID, kind string) string {
	return "bookings/" + bookingID + "/" + kind
}
