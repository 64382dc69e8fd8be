package repositories

import (
	"testing"
	"time"

	"hotelbackend/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestHotelUpdateKeepsSecretsWhenEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	h := models.Hotel{ID: "h1", Name: "Hotel Seeblick", Domain: "seeblick.test"}
	// 17 mutable columns plus the id; no smtp_password and no
	// hotelier_password_hash argument
	mock.ExpectExec("UPDATE hotels SET").
		WithArgs(
			h.Name, h.Domain, "", "", "",
			"", "", "", "",
			"", 0, "", "",
			"", "", "", "",
			h.ID,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := (HotelRepository{DB: db}).Update(h); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHotelUpdateWritesSecretsWhenPresent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	h := models.Hotel{ID: "h1", Name: "Hotel Seeblick", Domain: "seeblick.test"}
	h.SMTP.Password = "mail-secret"
	h.Hotelier.PasswordHash = "new-hash"
	mock.ExpectExec("UPDATE hotels SET").
		WithArgs(
			h.Name, h.Domain, "", "", "",
			"", "", "", "",
			"", 0, "", "",
			"", "", "", "",
			"mail-secret", "new-hash",
			h.ID,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := (HotelRepository{DB: db}).Update(h); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHotelUpdateUnchangedRowSucceeds(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// MySQL reports zero affected rows when the rewrite changed nothing;
	// that must not surface as an error.
	mock.ExpectExec("UPDATE hotels SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := (HotelRepository{DB: db}).Update(models.Hotel{ID: "h1"}); err != nil {
		t.Fatalf("Update error: %v", err)
	}
}

func TestHotelListSplitsJoinedColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	cols := []string{
		"id", "name", "domain",
		"address", "contact_email", "contact_phone",
		"bank_account_holder", "bank_iban", "bank_bic", "bank_name",
		"smtp_host", "smtp_port", "smtp_username", "smtp_password", "smtp_sender",
		"hotelier_email", "hotelier_password_hash",
		"logo_url", "meal_types", "room_categories",
		"created_at",
	}
	mock.ExpectQuery("SELECT (.+) FROM hotels ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			"h1", "Hotel Seeblick", "seeblick.test",
			"", "", "",
			"", "", "", "",
			"", 0, "", "", "",
			"front@hotel.test", "hash",
			"", "Breakfast, Half Board", "Single,Double",
			time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC),
		))

	list, err := (HotelRepository{DB: db}).List()
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one hotel, got %d", len(list))
	}
	h := list[0]
	if len(h.MealTypes) != 2 || h.MealTypes[1] != "Half Board" {
		t.Fatalf("meal types not split and trimmed: %v", h.MealTypes)
	}
	if len(h.RoomCategories) != 2 {
		t.Fatalf("room categories not split: %v", h.RoomCategories)
	}
}
