package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "hotelbackend/internal/config"
	"hotelbackend/internal/domain"
	"hotelbackend/internal/domain/models"
	"hotelbackend/internal/repositories"
	"hotelbackend/internal/storage"
	"hotelbackend/internal/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SMTPInput mirrors models.SMTPSettings with a bindable password. The model
// hides the password on responses, so it cannot double as the bind target.
type SMTPInput struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	Sender   string `json:"sender"`
}

// HotelInput carries the agency-editable fields of a tenant.
type HotelInput struct {
	Name             string             `json:"name" binding:"required"`
	Domain           string             `json:"domain" binding:"required"`
	Address          string             `json:"address"`
	ContactEmail     string             `json:"contactEmail"`
	ContactPhone     string             `json:"contactPhone"`
	BankDetails      models.BankDetails `json:"bankDetails"`
	SMTP             SMTPInput          `json:"smtp"`
	HotelierEmail    string             `json:"hotelierEmail" binding:"required,email"`
	HotelierPassword string             `json:"hotelierPassword"`
	MealTypes        []string           `json:"mealTypes"`
	RoomCategories   []string           `json:"roomCategories"`
}

// LogoUpload is an optional logo image attached to a create or update.
type LogoUpload struct {
	Data        []byte
	ContentType string
}

// HotelService implements tenant CRUD including the logo blob lifecycle and
// the cascading tenant delete.
type HotelService struct {
	HotelRepo   repositories.HotelRepository
	BookingRepo repositories.BookingRepo
	Blobs       storage.BlobStore
	DB          *sql.DB
	RequestID   string
}

func (s HotelService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s HotelService) hotels() repositories.HotelRepository {
	if s.HotelRepo.DB != nil {
		return s.HotelRepo
	}
	return repositories.HotelRepository{DB: s.db()}
}

func (s HotelService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.db()}
}

// List returns all tenants.
func (s HotelService) List() ([]models.Hotel, error) {
	list, err := s.hotels().List()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return list, nil
}

// Get returns one tenant.
func (s HotelService) Get(id string) (models.Hotel, error) {
	h, err := s.hotels().GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Hotel{}, domain.NotFoundError{Resource: "hotel", Err: err}
		}
		return models.Hotel{}, domain.InternalError{Err: err}
	}
	return h, nil
}

// Create builds a new tenant. When a logo is attached, the blob upload must
// succeed before anything is written to the database; a failed upload aborts
// the creation so no partial record exists.
func (s HotelService) Create(ctx context.Context, in HotelInput, logo *LogoUpload) (models.Hotel, error) {
	if err := validateHotelInput(in, true); err != nil {
		return models.Hotel{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.HotelierPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.Hotel{}, domain.InternalError{Err: err}
	}

	h := hotelFromInput(in)
	h.ID = uuid.NewString()
	h.Hotelier.PasswordHash = string(hash)
	h.CreatedAt = utils.NowUTC()

	if logo != nil {
		url, err := s.Blobs.Upload(ctx, storage.LogoKey(h.ID), logo.Data, logo.ContentType)
		if err != nil {
			return models.Hotel{}, domain.InternalError{Msg: "logo upload failed", Err: err}
		}
		h.LogoURL = url
	}

	if err := s.hotels().Create(h); err != nil {
		return models.Hotel{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "hotels", "create", fmt.Sprintf("hotel_id=%s domain=%s", h.ID, h.Domain))
	return h, nil
}

// Update rewrites a tenant. A new logo replaces the previous blob; failing to
// remove the old blob is logged, never fatal.
func (s HotelService) Update(ctx context.Context, id string, in HotelInput, logo *LogoUpload) (models.Hotel, error) {
	if err := validateHotelInput(in, false); err != nil {
		return models.Hotel{}, err
	}

	existing, err := s.Get(id)
	if err != nil {
		return models.Hotel{}, err
	}

	h := hotelFromInput(in)
	h.ID = existing.ID
	h.CreatedAt = existing.CreatedAt
	h.LogoURL = existing.LogoURL

	if in.HotelierPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.HotelierPassword), bcrypt.DefaultCost)
		if err != nil {
			return models.Hotel{}, domain.InternalError{Err: err}
		}
		h.Hotelier.PasswordHash = string(hash)
	}

	if logo != nil {
		if existing.LogoURL != "" {
			if err := s.Blobs.Delete(ctx, storage.LogoKey(id)); err != nil && !errors.Is(err, storage.ErrNotFound) {
				utils.LogEvent(s.RequestID, "hotels", "logo_delete_failed", fmt.Sprintf("hotel_id=%s err=%v", id, err))
			}
		}
		url, err := s.Blobs.Upload(ctx, storage.LogoKey(id), logo.Data, logo.ContentType)
		if err != nil {
			return models.Hotel{}, domain.InternalError{Msg: "logo upload failed", Err: err}
		}
		h.LogoURL = url
	}

	if err := s.hotels().Update(h); err != nil {
		return models.Hotel{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "hotels", "update", "hotel_id="+id)
	return s.Get(id)
}

// Delete removes a tenant in two explicit phases: first collect every blob
// key owned by the hotel and its bookings and attempt a best-effort batch
// delete (missing objects are skipped, individual failures logged), then
// remove the booking rows and finally the hotel row.
func (s HotelService) Delete(ctx context.Context, id string) error {
	hotel, err := s.Get(id)
	if err != nil {
		return err
	}

	bookings, err := s.bookings().ListByHotel(id)
	if err != nil {
		return domain.InternalError{Err: err}
	}

	// Phase 1: blobs.
	keys := []string{}
	for _, b := range bookings {
		keys = append(keys, bookingBlobKeys(b)...)
	}
	if hotel.LogoURL != "" {
		keys = append(keys, storage.LogoKey(id))
	}
	s.deleteBlobs(ctx, "hotels", keys)

	// Phase 2: rows. Bookings go first so a failure here never orphans them
	// behind a deleted hotel.
	removed, err := s.bookings().DeleteByHotel(id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if err := s.hotels().Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "hotel", Err: err}
		}
		return domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "hotels", "delete", fmt.Sprintf("hotel_id=%s bookings_removed=%d blobs=%d", id, removed, len(keys)))
	return nil
}

// ResetHotelierPassword issues a fresh password for the tenant login and
// returns it in clear once, for the agency credentials dialog.
func (s HotelService) ResetHotelierPassword(id string) (string, error) {
	if _, err := s.Get(id); err != nil {
		return "", err
	}

	password := uuid.NewString()[:12]
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", domain.InternalError{Err: err}
	}
	if err := s.hotels().UpdateHotelierPassword(id, string(hash)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.NotFoundError{Resource: "hotel", Err: err}
		}
		return "", domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "hotels", "reset_hotelier_password", "hotel_id="+id)
	return password, nil
}

// deleteBlobs attempts each key, skipping already-absent objects and logging
// any other failure without aborting; the database delete proceeds regardless.
func (s HotelService) deleteBlobs(ctx context.Context, module string, keys []string) {
	for _, key := range keys {
		if err := s.Blobs.Delete(ctx, key); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			utils.LogEvent(s.RequestID, module, "blob_delete_failed", fmt.Sprintf("key=%s err=%v", key, err))
		}
	}
}

// bookingBlobKeys lists the document blobs a booking owns, by stored URL.
func bookingBlobKeys(b models.Booking) []string {
	keys := []string{}
	if b.GuestDetails != nil {
		if b.GuestDetails.IDFrontURL != "" {
			keys = append(keys, storage.BookingDocKey(b.ID, "id-front"))
		}
		if b.GuestDetails.IDBackURL != "" {
			keys = append(keys, storage.BookingDocKey(b.ID, "id-back"))
		}
	}
	if b.PaymentProofURL != "" {
		keys = append(keys, storage.BookingDocKey(b.ID, "payment-proof"))
	}
	return keys
}

func hotelFromInput(in HotelInput) models.Hotel {
	return models.Hotel{
		Name:         utils.NormalizeSpace(in.Name),
		Domain:       strings.ToLower(utils.TrimOrEmpty(in.Domain)),
		Address:      utils.TrimOrEmpty(in.Address),
		ContactEmail: utils.TrimOrEmpty(in.ContactEmail),
		ContactPhone: utils.TrimOrEmpty(in.ContactPhone),
		BankDetails:  in.BankDetails,
		SMTP: models.SMTPSettings{
			Host:     utils.TrimOrEmpty(in.SMTP.Host),
			Port:     in.SMTP.Port,
			Username: utils.TrimOrEmpty(in.SMTP.Username),
			Password: in.SMTP.Password,
			Sender:   utils.TrimOrEmpty(in.SMTP.Sender),
		},
		Hotelier: models.HotelierAccount{
			Email: strings.ToLower(utils.TrimOrEmpty(in.HotelierEmail)),
		},
		MealTypes:      in.MealTypes,
		RoomCategories: in.RoomCategories,
	}
}

func validateHotelInput(in HotelInput, creating bool) error {
	if utils.TrimOrEmpty(in.Name) == "" {
		return domain.ValidationError{Field: "name", Msg: "required"}
	}
	if utils.TrimOrEmpty(in.Domain) == "" {
		return domain.ValidationError{Field: "domain", Msg: "required"}
	}
	if utils.TrimOrEmpty(in.HotelierEmail) == "" {
		return domain.ValidationError{Field: "hotelierEmail", Msg: "required"}
	}
	if creating && len(in.HotelierPassword) < 8 {
		return domain.ValidationError{Field: "hotelierPassword", Msg: "must be at least 8 characters"}
	}
	return nil
}
