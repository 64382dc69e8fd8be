package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	intconfig "hotelbackend/internal/config"
	"hotelbackend/internal/domain"
	"hotelbackend/internal/domain/models"
	"hotelbackend/internal/repositories"
	"hotelbackend/internal/storage"
	"hotelbackend/internal/utils"

	"github.com/google/uuid"
)

// BookingInput carries the hotelier-editable fields of a booking.
type BookingInput struct {
	GuestFirstName string  `json:"guestFirstName" binding:"required"`
	GuestLastName  string  `json:"guestLastName" binding:"required"`
	RoomType       string  `json:"roomType" binding:"required"`
	Adults         int     `json:"adults"`
	Children       int     `json:"children"`
	MealType       string  `json:"mealType"`
	CheckIn        string  `json:"checkIn" binding:"required"`
	CheckOut       string  `json:"checkOut" binding:"required"`
	TotalPrice     float64 `json:"totalPrice"`
	Status         string  `json:"status"`
	Notes          string  `json:"notes"`
}

// BookingService implements hotelier-scoped booking CRUD. Every operation
// cross-checks the stored hotelId against the caller's hotelId and fails
// closed on mismatch.
type BookingService struct {
	BookingRepo repositories.BookingRepo
	HotelRepo   repositories.HotelRepository
	Blobs       storage.BlobStore
	DB          *sql.DB
	RequestID   string
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.db()}
}

func (s BookingService) hotels() repositories.HotelRepository {
	if s.HotelRepo.DB != nil {
		return s.HotelRepo
	}
	return repositories.HotelRepository{DB: s.db()}
}

// getScoped loads a booking and enforces the tenant isolation guard: a
// booking belonging to another hotel is indistinguishable from a missing one.
func (s BookingService) getScoped(hotelID, bookingID string) (models.Booking, error) {
	b, err := s.bookings().GetByID(bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}
	if b.HotelID != hotelID {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	return b, nil
}

// List returns all bookings for the tenant.
func (s BookingService) List(hotelID string) ([]models.Booking, error) {
	list, err := s.bookings().ListByHotel(hotelID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return list, nil
}

// Get returns one booking under the tenant guard.
func (s BookingService) Get(hotelID, bookingID string) (models.Booking, error) {
	return s.getScoped(hotelID, bookingID)
}

// Create inserts a booking for the tenant. New bookings default to Sent, the
// state in which the guest link is live.
func (s BookingService) Create(hotelID string, in BookingInput) (models.Booking, error) {
	if _, err := s.hotels().GetByID(hotelID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "hotel", Err: err}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}

	b, err := bookingFromInput(in)
	if err != nil {
		return models.Booking{}, err
	}
	b.ID = uuid.NewString()
	b.HotelID = hotelID
	if b.Status == "" {
		b.Status = models.StatusSent
	}
	b.LastChanged = utils.NowUTC()

	if err := s.bookings().Create(b); err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "bookings", "create", fmt.Sprintf("hotel_id=%s booking_id=%s status=%s", hotelID, b.ID, b.Status))
	return b, nil
}

// Update rewrites the hotelier-editable fields, guarded by tenant.
func (s BookingService) Update(hotelID, bookingID string, in BookingInput) (models.Booking, error) {
	existing, err := s.getScoped(hotelID, bookingID)
	if err != nil {
		return models.Booking{}, err
	}

	b, err := bookingFromInput(in)
	if err != nil {
		return models.Booking{}, err
	}
	b.ID = existing.ID
	b.HotelID = existing.HotelID
	if b.Status == "" {
		b.Status = existing.Status
	}
	b.LastChanged = utils.NowUTC()

	if err := s.bookings().Update(b); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "bookings", "update", "booking_id="+bookingID)
	return s.getScoped(hotelID, bookingID)
}

// Cancel marks the booking Cancelled. Allowed from any non-terminal state.
func (s BookingService) Cancel(hotelID, bookingID string) (models.Booking, error) {
	b, err := s.getScoped(hotelID, bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if b.Terminal() {
		return models.Booking{}, domain.ConflictError{Resource: "booking", Msg: "already " + string(b.Status)}
	}
	if err := s.bookings().UpdateStatus(bookingID, models.StatusCancelled, utils.NowUTC()); err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "bookings", "cancel", "booking_id="+bookingID)
	return s.getScoped(hotelID, bookingID)
}

// Complete marks a paid booking Completed after the stay.
func (s BookingService) Complete(hotelID, bookingID string) (models.Booking, error) {
	b, err := s.getScoped(hotelID, bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if !b.CanComplete() {
		return models.Booking{}, domain.ConflictError{Resource: "booking", Msg: "cannot complete from status " + string(b.Status)}
	}
	if err := s.bookings().UpdateStatus(bookingID, models.StatusCompleted, utils.NowUTC()); err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "bookings", "complete", "booking_id="+bookingID)
	return s.getScoped(hotelID, bookingID)
}

// Delete removes a booking and its attached document blobs: collect the keys,
// best-effort delete them (absent blobs are fine), then delete the row.
func (s BookingService) Delete(ctx context.Context, hotelID, bookingID string) error {
	b, err := s.getScoped(hotelID, bookingID)
	if err != nil {
		return err
	}

	for _, key := range bookingBlobKeys(b) {
		if err := s.Blobs.Delete(ctx, key); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			utils.LogEvent(s.RequestID, "bookings", "blob_delete_failed", fmt.Sprintf("key=%s err=%v", key, err))
		}
	}

	if err := s.bookings().Delete(bookingID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "booking", Err: err}
		}
		return domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "bookings", "delete", "booking_id="+bookingID)
	return nil
}

// GuestLink returns the public wizard URL for a booking.
func (s BookingService) GuestLink(baseURL, hotelID, bookingID string) (string, error) {
	if _, err := s.getScoped(hotelID, bookingID); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/guest/%s/%s", baseURL, url.PathEscape(hotelID), url.PathEscape(bookingID)), nil
}

func bookingFromInput(in BookingInput) (models.Booking, error) {
	first := utils.TrimOrEmpty(in.GuestFirstName)
	last := utils.TrimOrEmpty(in.GuestLastName)
	if first == "" || last == "" {
		return models.Booking{}, domain.ValidationError{Field: "guest", Msg: "first and last name required"}
	}

	checkIn, err := utils.ParseDate(in.CheckIn)
	if err != nil {
		return models.Booking{}, domain.ValidationError{Field: "checkIn", Msg: "expected YYYY-MM-DD", Err: err}
	}
	checkOut, err := utils.ParseDate(in.CheckOut)
	if err != nil {
		return models.Booking{}, domain.ValidationError{Field: "checkOut", Msg: "expected YYYY-MM-DD", Err: err}
	}
	if !checkOut.After(checkIn) {
		return models.Booking{}, domain.ValidationError{Field: "checkOut", Msg: "must be after check-in"}
	}
	if in.TotalPrice < 0 {
		return models.Booking{}, domain.ValidationError{Field: "totalPrice", Msg: "must not be negative"}
	}

	status := models.BookingStatus(utils.TrimOrEmpty(in.Status))
	if status != "" && !models.ValidStatus(status) {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "unknown status"}
	}

	adults := in.Adults
	if adults <= 0 {
		adults = 1
	}

	return models.Booking{
		Guest: models.Guest{FirstName: first, LastName: last},
		Room: models.Room{
			Type:     utils.TrimOrEmpty(in.RoomType),
			Adults:   adults,
			Children: in.Children,
		},
		MealType:   utils.TrimOrEmpty(in.MealType),
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		TotalPrice: in.TotalPrice,
		Status:     status,
		Notes:      utils.TrimOrEmpty(in.Notes),
	}, nil
}
