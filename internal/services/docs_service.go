package services

import (
	"bytes"
	"database/sql"
	"fmt"
	"strings"

	intconfig "hotelbackend/internal/config"
	"hotelbackend/internal/domain/models"
	"hotelbackend/internal/repositories"
	"hotelbackend/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the booking confirmation PDF the hotelier can hand to
// the guest.
type DocsService struct {
	BookingRepo repositories.BookingRepo
	HotelRepo   repositories.HotelRepository
	DB          *sql.DB
	RequestID   string
}

func (s DocsService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s DocsService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.db()}
}

func (s DocsService) hotels() repositories.HotelRepository {
	if s.HotelRepo.DB != nil {
		return s.HotelRepo
	}
	return repositories.HotelRepository{DB: s.db()}
}

// GenerateConfirmation renders the PDF for one booking under the tenant guard.
func (s DocsService) GenerateConfirmation(hotelID, bookingID string) ([]byte, string, error) {
	guarded := BookingService{BookingRepo: s.bookings(), HotelRepo: s.hotels(), DB: s.db(), RequestID: s.RequestID}
	b, err := guarded.Get(hotelID, bookingID)
	if err != nil {
		return nil, "", err
	}
	h, err := s.hotels().GetByID(hotelID)
	if err != nil {
		return nil, "", err
	}

	utils.LogEvent(s.RequestID, "docs", "generate_confirmation", "booking_id="+bookingID)
	return buildConfirmationPDF(h, b)
}

func buildConfirmationPDF(h models.Hotel, b models.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Confirmation", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING CONFIRMATION")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, h.Name)
	pdf.Ln(10)

	guestName := strings.TrimSpace(b.Guest.FirstName + " " + b.Guest.LastName)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Guest          : %s", safe(guestName, "-")),
		fmt.Sprintf("Room           : %s (%d adults, %d children)", safe(b.Room.Type, "-"), b.Room.Adults, b.Room.Children),
		fmt.Sprintf("Meals          : %s", safe(b.MealType, "-")),
		fmt.Sprintf("Check-in       : %s", utils.FormatDate(b.CheckIn)),
		fmt.Sprintf("Check-out      : %s", utils.FormatDate(b.CheckOut)),
		fmt.Sprintf("Total price    : %s", utils.FormatMoney(b.TotalPrice)),
		fmt.Sprintf("Status         : %s", string(b.Status)),
		fmt.Sprintf("Booking code   : %s", b.ID),
	}
	if b.PaymentOption == models.PaymentDeposit {
		lines = append(lines, fmt.Sprintf("Deposit due    : %s", utils.FormatMoney(utils.DepositAmount(b.TotalPrice))))
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	if h.BankDetails.IBAN != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Payment details")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		bank := []string{
			fmt.Sprintf("Account holder : %s", safe(h.BankDetails.AccountHolder, "-")),
			fmt.Sprintf("IBAN           : %s", h.BankDetails.IBAN),
			fmt.Sprintf("BIC            : %s", safe(h.BankDetails.BIC, "-")),
			fmt.Sprintf("Bank           : %s", safe(h.BankDetails.BankName, "-")),
		}
		for _, line := range bank {
			pdf.Cell(0, 6, line)
			pdf.Ln(6)
		}
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	contact := strings.TrimSpace(h.ContactEmail + " " + h.ContactPhone)
	pdf.MultiCell(0, 6, "Questions about this booking? Contact us: "+safe(contact, "-"), "", "", false)
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, "Issued "+utils.FormatDateTime(utils.NowUTC())+" UTC")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("confirmation-%s.pdf", b.ID)
	return buf.Bytes(), filename, nil
}

func safe(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
