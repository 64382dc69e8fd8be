package services

import (
	"database/sql"
	"errors"
	"strings"

	"hotelbackend/internal/auth"
	intconfig "hotelbackend/internal/config"
	"hotelbackend/internal/domain"
	"hotelbackend/internal/repositories"
	"hotelbackend/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// AuthService verifies credentials and produces validated identities. Token
// signing and session cookies stay in the HTTP layer.
type AuthService struct {
	AgencyRepo repositories.AgencyUserRepository
	HotelRepo  repositories.HotelRepository
	DB         *sql.DB
	RequestID  string
}

func (s AuthService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s AuthService) agencyUsers() repositories.AgencyUserRepository {
	if s.AgencyRepo.DB != nil {
		return s.AgencyRepo
	}
	return repositories.AgencyUserRepository{DB: s.db()}
}

func (s AuthService) hotels() repositories.HotelRepository {
	if s.HotelRepo.DB != nil {
		return s.HotelRepo
	}
	return repositories.HotelRepository{DB: s.db()}
}

var errBadCredentials = domain.ForbiddenError{Msg: "wrong email or password"}

// AgencyLogin checks an agency operator's credentials.
func (s AuthService) AgencyLogin(email, password string) (auth.Identity, error) {
	email = strings.ToLower(utils.TrimOrEmpty(email))
	if email == "" || password == "" {
		return auth.Identity{}, domain.ValidationError{Msg: "email and password required"}
	}

	user, err := s.agencyUsers().GetByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return auth.Identity{}, errBadCredentials
		}
		return auth.Identity{}, domain.InternalError{Err: err}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return auth.Identity{}, errBadCredentials
	}

	utils.LogEvent(s.RequestID, "auth", "agency_login", "email="+email)
	return auth.Identity{Role: auth.RoleAgency, Email: user.Email}, nil
}

// HotelierLogin checks tenant credentials against the hotel record the login
// page is scoped to. The resulting identity is bound to exactly that hotel.
func (s AuthService) HotelierLogin(hotelID, email, password string) (auth.Identity, error) {
	email = strings.ToLower(utils.TrimOrEmpty(email))
	if hotelID == "" {
		return auth.Identity{}, domain.ValidationError{Field: "hotelId", Msg: "required"}
	}
	if email == "" || password == "" {
		return auth.Identity{}, domain.ValidationError{Msg: "email and password required"}
	}

	hotel, err := s.hotels().GetByID(hotelID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Do not reveal whether the tenant exists.
			return auth.Identity{}, errBadCredentials
		}
		return auth.Identity{}, domain.InternalError{Err: err}
	}
	if !strings.EqualFold(hotel.Hotelier.Email, email) {
		return auth.Identity{}, errBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hotel.Hotelier.PasswordHash), []byte(password)); err != nil {
		return auth.Identity{}, errBadCredentials
	}

	utils.LogEvent(s.RequestID, "auth", "hotelier_login", "hotel_id="+hotelID)
	return auth.Identity{Role: auth.RoleHotelier, HotelID: hotelID, Email: email}, nil
}
