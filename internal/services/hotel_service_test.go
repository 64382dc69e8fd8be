package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"hotelbackend/internal/domain"
	"hotelbackend/internal/repositories"
	"hotelbackend/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
)

func newHotelService(t *testing.T) (HotelService, sqlmock.Sqlmock, *storage.MemoryStore) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	mem := storage.NewMemoryStore()
	svc := HotelService{
		HotelRepo:   repositories.HotelRepository{DB: db},
		BookingRepo: repositories.BookingRepo{DB: db},
		Blobs:       mem,
		DB:          db,
	}
	return svc, mock, mem
}

func validHotelInput() HotelInput {
	return HotelInput{
		Name:             "Hotel Seeblick",
		Domain:           "Seeblick.Test",
		HotelierEmail:    "Front@hotel.test",
		HotelierPassword: "initial-password",
		MealTypes:        []string{"Breakfast", "Half Board"},
	}
}

func TestHotelCreateFailedLogoUploadAborts(t *testing.T) {
	svc, mock, mem := newHotelService(t)
	mem.FailUpload = errors.New("upstream down")

	_, err := svc.Create(context.Background(), validHotelInput(), &LogoUpload{
		Data:        []byte{0x89, 0x50},
		ContentType: "image/png",
	})
	if !domain.IsInternal(err) {
		t.Fatalf("expected internal error from failed upload, got %v", err)
	}
	// no INSERT was expected; a partial record would fail here
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("hotel row written despite failed logo upload: %v", err)
	}
}

func TestHotelCreateNormalizesAndHashes(t *testing.T) {
	svc, mock, mem := newHotelService(t)

	mock.ExpectExec("INSERT INTO hotels").
		WillReturnResult(sqlmock.NewResult(0, 1))

	h, err := svc.Create(context.Background(), validHotelInput(), &LogoUpload{
		Data:        []byte{0x89, 0x50},
		ContentType: "image/png",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if h.ID == "" {
		t.Fatalf("hotel id not assigned")
	}
	if h.Domain != "seeblick.test" || h.Hotelier.Email != "front@hotel.test" {
		t.Fatalf("domain/email not normalized: %q %q", h.Domain, h.Hotelier.Email)
	}
	if h.Hotelier.PasswordHash == "" || h.Hotelier.PasswordHash == "initial-password" {
		t.Fatalf("password not hashed")
	}
	if !mem.Has(storage.LogoKey(h.ID)) {
		t.Fatalf("logo blob not stored")
	}
	if h.LogoURL == "" {
		t.Fatalf("logo url not recorded")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHotelInputBindsSMTPPassword(t *testing.T) {
	payload := `{
		"name": "Hotel Seeblick",
		"domain": "seeblick.test",
		"hotelierEmail": "front@hotel.test",
		"hotelierPassword": "initial-password",
		"smtp": {
			"host": "mail.seeblick.test",
			"port": 587,
			"username": "mailer",
			"password": "mail-secret",
			"sender": "noreply@seeblick.test"
		}
	}`
	var in HotelInput
	if err := json.Unmarshal([]byte(payload), &in); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if in.SMTP.Password != "mail-secret" {
		t.Fatalf("smtp password lost on bind: %+v", in.SMTP)
	}

	h := hotelFromInput(in)
	if h.SMTP.Password != "mail-secret" {
		t.Fatalf("smtp password not carried to the record: %+v", h.SMTP)
	}

	// the stored record still hides the password when serialized back out
	out, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	if strings.Contains(string(out), "mail-secret") {
		t.Fatalf("smtp password leaked into the response payload")
	}
}

func TestHotelCreateRejectsShortPassword(t *testing.T) {
	svc, mock, _ := newHotelService(t)

	in := validHotelInput()
	in.HotelierPassword = "short"

	_, err := svc.Create(context.Background(), in, nil)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHotelDeleteCascade(t *testing.T) {
	svc, mock, mem := newHotelService(t)

	mock.ExpectQuery("SELECT (.+) FROM hotels WHERE id=").WithArgs("h1").
		WillReturnRows(hotelRow("h1", "Hotel Seeblick"))
	// one booking with an uploaded payment proof
	rows := bookingRow("b1", "h1", "Confirmed", 1250.00)
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE hotel_id=").WithArgs("h1").
		WillReturnRows(rows)
	mock.ExpectExec("DELETE FROM bookings WHERE hotel_id=").WithArgs("h1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM hotels WHERE id=").WithArgs("h1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := svc.Delete(context.Background(), "h1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}

	// blob phase ran before the rows went away; the logo key is attempted even
	// though the store never held it
	found := false
	for _, key := range mem.Deleted {
		if key == storage.LogoKey("h1") {
			found = true
		}
	}
	if !found {
		t.Fatalf("logo blob not part of the cascade: %v", mem.Deleted)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHotelDeleteMissing(t *testing.T) {
	svc, mock, _ := newHotelService(t)

	mock.ExpectQuery("SELECT (.+) FROM hotels WHERE id=").WithArgs("gone").
		WillReturnRows(sqlmock.NewRows(hotelTestColumns))

	err := svc.Delete(context.Background(), "gone")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestResetHotelierPassword(t *testing.T) {
	svc, mock, _ := newHotelService(t)

	mock.ExpectQuery("SELECT (.+) FROM hotels WHERE id=").WithArgs("h1").
		WillReturnRows(hotelRow("h1", "Hotel Seeblick"))
	mock.ExpectExec("UPDATE hotels SET hotelier_password_hash=").
		WithArgs(sqlmock.AnyArg(), "h1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	password, err := svc.ResetHotelierPassword("h1")
	if err != nil {
		t.Fatalf("ResetHotelierPassword error: %v", err)
	}
	if len(password) < 10 {
		t.Fatalf("generated password too short: %q", password)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
