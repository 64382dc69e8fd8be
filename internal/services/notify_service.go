package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	intconfig "hotelbackend/internal/config"
	"hotelbackend/internal/domain"
	"hotelbackend/internal/repositories"
	"hotelbackend/internal/utils"
)

// ConfirmationEmailData is everything the prompt template interpolates.
type ConfirmationEmailData struct {
	GuestFirstName    string
	GuestLastName     string
	HotelName         string
	CheckInDate       string
	CheckOutDate      string
	RoomType          string
	TotalPrice        float64
	HotelContactEmail string
	HotelContactPhone string
	HotelAddress      string
	BookingID         string
}

// BuildConfirmationEmailPrompt renders the prompt sent to the text generator.
func BuildConfirmationEmailPrompt(d ConfirmationEmailData) string {
	var b strings.Builder
	b.WriteString("You are an AI assistant specialized in generating professional confirmation emails for hotel bookings.\n\n")
	b.WriteString("Given the following information, generate a confirmation email to be sent to the guest.\n\n")
	fmt.Fprintf(&b, "Guest First Name: %s\n", d.GuestFirstName)
	fmt.Fprintf(&b, "Guest Last Name: %s\n", d.GuestLastName)
	fmt.Fprintf(&b, "Hotel Name: %s\n", d.HotelName)
	fmt.Fprintf(&b, "Check-in Date: %s\n", d.CheckInDate)
	fmt.Fprintf(&b, "Check-out Date: %s\n", d.CheckOutDate)
	fmt.Fprintf(&b, "Room Type: %s\n", d.RoomType)
	fmt.Fprintf(&b, "Total Price: %s\n", utils.FormatMoney(d.TotalPrice))
	fmt.Fprintf(&b, "Hotel Contact Email: %s\n", d.HotelContactEmail)
	fmt.Fprintf(&b, "Hotel Contact Phone: %s\n", d.HotelContactPhone)
	fmt.Fprintf(&b, "Hotel Address: %s\n", d.HotelAddress)
	fmt.Fprintf(&b, "Booking ID: %s\n", d.BookingID)
	b.WriteString("\nThe email should be professional, friendly, and contain all the necessary information for the guest regarding their booking.\n")
	return b.String()
}

// NotifyService drafts the confirmation email through an opaque generative
// text endpoint. Delivery is out of scope; the hotelier copies the draft.
type NotifyService struct {
	BookingRepo repositories.BookingRepo
	HotelRepo   repositories.HotelRepository
	DB          *sql.DB
	RequestID   string

	Endpoint string
	APIKey   string

	// HTTPClient overrides the default client in tests.
	HTTPClient *http.Client
}

func (s NotifyService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s NotifyService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.db()}
}

func (s NotifyService) hotels() repositories.HotelRepository {
	if s.HotelRepo.DB != nil {
		return s.HotelRepo
	}
	return repositories.HotelRepository{DB: s.db()}
}

func (s NotifyService) client() *http.Client {
	if s.HTTPClient != nil {
		return s.HTTPClient
	}
	return &http.Client{Timeout: 60 * time.Second}
}

// DraftConfirmationEmail builds the prompt for one booking and asks the
// generator for the email body.
func (s NotifyService) DraftConfirmationEmail(ctx context.Context, hotelID, bookingID string) (string, error) {
	guarded := BookingService{BookingRepo: s.bookings(), HotelRepo: s.hotels(), DB: s.db(), RequestID: s.RequestID}
	b, err := guarded.Get(hotelID, bookingID)
	if err != nil {
		return "", err
	}
	h, err := s.hotels().GetByID(hotelID)
	if err != nil {
		return "", domain.InternalError{Err: err}
	}

	data := ConfirmationEmailData{
		GuestFirstName:    b.Guest.FirstName,
		GuestLastName:     b.Guest.LastName,
		HotelName:         h.Name,
		CheckInDate:       utils.FormatDate(b.CheckIn),
		CheckOutDate:      utils.FormatDate(b.CheckOut),
		RoomType:          b.Room.Type,
		TotalPrice:        b.TotalPrice,
		HotelContactEmail: h.ContactEmail,
		HotelContactPhone: h.ContactPhone,
		HotelAddress:      h.Address,
		BookingID:         b.ID,
	}
	if b.GuestDetails != nil {
		data.GuestFirstName = b.GuestDetails.FirstName
		data.GuestLastName = b.GuestDetails.LastName
	}

	body, err := s.generate(ctx, BuildConfirmationEmailPrompt(data))
	if err != nil {
		return "", err
	}

	utils.LogEvent(s.RequestID, "notify", "draft_confirmation", "booking_id="+bookingID)
	return body, nil
}

// generate POSTs the prompt to the configured endpoint and returns the text.
// The generator is treated as opaque: prompt in, drafted email out.
func (s NotifyService) generate(ctx context.Context, prompt string) (string, error) {
	if s.Endpoint == "" {
		return "", domain.ConflictError{Resource: "notify", Msg: "text generator not configured"}
	}

	payload, err := json.Marshal(map[string]string{"prompt": prompt})
	if err != nil {
		return "", domain.InternalError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", domain.InternalError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if s.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.APIKey)
	}

	res, err := s.client().Do(req)
	if err != nil {
		return "", domain.InternalError{Msg: "text generator unreachable", Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return "", domain.InternalError{Err: err}
	}
	if res.StatusCode != http.StatusOK {
		return "", domain.InternalError{Msg: fmt.Sprintf("text generator returned status %d", res.StatusCode)}
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", domain.InternalError{Msg: "text generator response unreadable", Err: err}
	}
	if strings.TrimSpace(out.Text) == "" {
		return "", domain.InternalError{Msg: "text generator returned an empty draft"}
	}
	return out.Text, nil
}
