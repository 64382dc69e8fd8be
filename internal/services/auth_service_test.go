package services

import (
	"testing"

	"hotelbackend/internal/auth"
	"hotelbackend/internal/domain"
	"hotelbackend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) (AuthService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	svc := AuthService{
		AgencyRepo: repositories.AgencyUserRepository{DB: db},
		HotelRepo:  repositories.HotelRepository{DB: db},
		DB:         db,
	}
	return svc, mock
}

func testHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	return string(hash)
}

func TestAgencyLogin(t *testing.T) {
	svc, mock := newAuthService(t)

	hash := testHash(t, "agency-pass")
	mock.ExpectQuery("SELECT (.+) FROM agency_users").WithArgs("admin@agency.test").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash"}).
			AddRow(1, "Admin", "admin@agency.test", hash))

	id, err := svc.AgencyLogin("Admin@Agency.Test", "agency-pass")
	if err != nil {
		t.Fatalf("AgencyLogin error: %v", err)
	}
	if id.Role != auth.RoleAgency || id.HotelID != "" {
		t.Fatalf("unexpected identity %+v", id)
	}
}

func TestAgencyLoginWrongPassword(t *testing.T) {
	svc, mock := newAuthService(t)

	hash := testHash(t, "agency-pass")
	mock.ExpectQuery("SELECT (.+) FROM agency_users").WithArgs("admin@agency.test").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash"}).
			AddRow(1, "Admin", "admin@agency.test", hash))

	_, err := svc.AgencyLogin("admin@agency.test", "wrong")
	if !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestAgencyLoginUnknownUser(t *testing.T) {
	svc, mock := newAuthService(t)

	mock.ExpectQuery("SELECT (.+) FROM agency_users").WithArgs("ghost@agency.test").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash"}))

	_, err := svc.AgencyLogin("ghost@agency.test", "whatever")
	if !domain.IsForbidden(err) {
		t.Fatalf("unknown user must read as bad credentials, got %v", err)
	}
}

func TestHotelierLogin(t *testing.T) {
	svc, mock := newAuthService(t)

	hash := testHash(t, "hotel-pass")
	mock.ExpectQuery("SELECT (.+) FROM hotels WHERE id=").WithArgs("h1").
		WillReturnRows(hotelRowWithHash("h1", "Hotel Seeblick", hash))

	id, err := svc.HotelierLogin("h1", "Front@Hotel.Test", "hotel-pass")
	if err != nil {
		t.Fatalf("HotelierLogin error: %v", err)
	}
	if id.Role != auth.RoleHotelier || id.HotelID != "h1" {
		t.Fatalf("unexpected identity %+v", id)
	}
}

func TestHotelierLoginWrongEmail(t *testing.T) {
	svc, mock := newAuthService(t)

	hash := testHash(t, "hotel-pass")
	mock.ExpectQuery("SELECT (.+) FROM hotels WHERE id=").WithArgs("h1").
		WillReturnRows(hotelRowWithHash("h1", "Hotel Seeblick", hash))

	_, err := svc.HotelierLogin("h1", "other@hotel.test", "hotel-pass")
	if !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestHotelierLoginMissingHotel(t *testing.T) {
	svc, mock := newAuthService(t)

	mock.ExpectQuery("SELECT (.+) FROM hotels WHERE id=").WithArgs("gone").
		WillReturnRows(sqlmock.NewRows(hotelTestColumns))

	_, err := svc.HotelierLogin("gone", "front@hotel.test", "hotel-pass")
	if !domain.IsForbidden(err) {
		t.Fatalf("missing tenant must read as bad credentials, got %v", err)
	}
}
