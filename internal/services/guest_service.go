package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	intconfig "hotelbackend/internal/config"
	"hotelbackend/internal/domain"
	"hotelbackend/internal/domain/models"
	"hotelbackend/internal/repositories"
	"hotelbackend/internal/storage"
	"hotelbackend/internal/utils"
)

// CompletionInput is the guest wizard submission. First/last name, email and
// phone are mandatory; a submission missing any of them persists nothing.
type CompletionInput struct {
	FirstName     string `json:"firstName" binding:"required"`
	LastName      string `json:"lastName" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone" binding:"required"`
	Age           *int   `json:"age"`
	Notes         string `json:"notes"`
	PaymentOption string `json:"paymentOption" binding:"required"`
}

// WizardView is what the public wizard page needs to render.
type WizardView struct {
	Completed bool            `json:"completed"`
	Booking   *models.Booking `json:"booking,omitempty"`
	Hotel     *wizardHotel    `json:"hotel,omitempty"`
}

// wizardHotel is the public subset of the tenant record; bank and SMTP
// credentials never leave the server on this route.
type wizardHotel struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	LogoURL      string   `json:"logoUrl,omitempty"`
	ContactEmail string   `json:"contactEmail,omitempty"`
	ContactPhone string   `json:"contactPhone,omitempty"`
	MealTypes    []string `json:"mealTypes"`
}

// GuestService backs the public booking wizard.
type GuestService struct {
	BookingRepo repositories.BookingRepo
	HotelRepo   repositories.HotelRepository
	Blobs       storage.BlobStore
	DB          *sql.DB
	RequestID   string
}

func (s GuestService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s GuestService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.db()}
}

func (s GuestService) hotels() repositories.HotelRepository {
	if s.HotelRepo.DB != nil {
		return s.HotelRepo
	}
	return repositories.HotelRepository{DB: s.db()}
}

func (s GuestService) getScoped(hotelID, bookingID string) (models.Booking, error) {
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

// View resolves a guest link. When the booking is no longer open the view
// carries only the completed marker so the page can show the
// "booking already completed" message instead of the wizard.
func (s GuestService) View(hotelID, bookingID string) (WizardView, error) {
	b, err := s.getScoped(hotelID, bookingID)
	if err != nil {
		return WizardView{}, err
	}
	if !b.OpenForGuest() {
		return WizardView{Completed: true}, nil
	}

	h, err := s.hotels().GetByID(hotelID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return WizardView{}, domain.NotFoundError{Resource: "hotel", Err: err}
		}
		return WizardView{}, domain.InternalError{Err: err}
	}

	return WizardView{
		Booking: &b,
		Hotel: &wizardHotel{
			ID:           h.ID,
			Name:         h.Name,
			LogoURL:      h.LogoURL,
			ContactEmail: h.ContactEmail,
			ContactPhone: h.ContactPhone,
			MealTypes:    h.MealTypes,
		},
	}, nil
}

// Complete persists the wizard submission and advances the status: deposit
// yields Partial Payment, full yields Confirmed. The booking must still be in
// Sent or Draft, and validation failures leave the record untouched.
func (s GuestService) Complete(hotelID, bookingID string, in CompletionInput) (models.Booking, error) {
	b, err := s.getScoped(hotelID, bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if !b.OpenForGuest() {
		return models.Booking{}, domain.ConflictError{Resource: "booking", Msg: "already completed"}
	}

	details, opt, err := validateCompletion(in)
	if err != nil {
		return models.Booking{}, err
	}

	status, ok := models.StatusForPaymentOption(opt)
	if !ok {
		return models.Booking{}, domain.ValidationError{Field: "paymentOption", Msg: "must be deposit or full"}
	}

	now := utils.NowUTC()
	if err := s.bookings().CompleteByGuest(bookingID, details, utils.TrimOrEmpty(in.Notes), opt, status, now); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "guest", "complete", fmt.Sprintf("booking_id=%s option=%s status=%s", bookingID, opt, status))
	return s.getScoped(hotelID, bookingID)
}

// documentColumns maps the public document kind to its booking column.
var documentColumns = map[string]string{
	"id-front":      "id_front_url",
	"id-back":       "id_back_url",
	"payment-proof": "payment_proof_url",
}

// UploadDocument stores a guest-uploaded file (ID photo or payment proof) and
// records its URL on the booking.
func (s GuestService) UploadDocument(ctx context.Context, hotelID, bookingID, kind string, data []byte, contentType string) (string, error) {
	column, ok := documentColumns[kind]
	if !ok {
		return "", domain.ValidationError{Field: "kind", Msg: "must be id-front, id-back or payment-proof"}
	}
	if len(data) == 0 {
		return "", domain.ValidationError{Field: "file", Msg: "empty upload"}
	}

	b, err := s.getScoped(hotelID, bookingID)
	if err != nil {
		return "", err
	}
	if !b.OpenForGuest() {
		return "", domain.ConflictError{Resource: "booking", Msg: "already completed"}
	}

	url, err := s.Blobs.Upload(ctx, storage.BookingDocKey(bookingID, kind), data, contentType)
	if err != nil {
		return "", domain.InternalError{Msg: "document upload failed", Err: err}
	}
	if err := s.bookings().UpdateDocumentURL(bookingID, column, url, utils.NowUTC()); err != nil {
		return "", domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "guest", "upload_document", fmt.Sprintf("booking_id=%s kind=%s", bookingID, kind))
	return url, nil
}

func validateCompletion(in CompletionInput) (models.GuestDetails, models.PaymentOption, error) {
	first := utils.NormalizeSpace(in.FirstName)
	last := utils.NormalizeSpace(in.LastName)
	email := utils.TrimOrEmpty(in.Email)
	phone := utils.TrimOrEmpty(in.Phone)

	switch "" {
	case first:
		return models.GuestDetails{}, "", domain.ValidationError{Field: "firstName", Msg: "required"}
	case last:
		return models.GuestDetails{}, "", domain.ValidationError{Field: "lastName", Msg: "required"}
	case email:
		return models.GuestDetails{}, "", domain.ValidationError{Field: "email", Msg: "required"}
	case phone:
		return models.GuestDetails{}, "", domain.ValidationError{Field: "phone", Msg: "required"}
	}

	if in.Age != nil && *in.Age < 18 {
		return models.GuestDetails{}, "", domain.ValidationError{Field: "age", Msg: "must be at least 18"}
	}

	return models.GuestDetails{
		FirstName: first,
		LastName:  last,
		Email:     email,
		Phone:     phone,
		Age:       in.Age,
	}, models.PaymentOption(utils.TrimOrEmpty(in.PaymentOption)), nil
}
