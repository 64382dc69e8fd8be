package repositories

import (
	"database/sql"
)

// AgencyUser is an operator account with access to every tenant.
type AgencyUser struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
}

// AgencyUserRepository provides SQL access to agency operator accounts.
type AgencyUserRepository struct {
	DB *sql.DB
}

// GetByEmail returns the agency user for a login attempt; sql.ErrNoRows when
// no account matches.
func (r AgencyUserRepository) GetByEmail(email string) (AgencyUser, error) {
	var u AgencyUser
	err := r.DB.QueryRow(`
		SELECT id, COALESCE(name,''), email, password_hash
		FROM agency_users
		WHERE email=? LIMIT 1`, email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash)
	if err != nil {
		return AgencyUser{}, err
	}
	return u, nil
}
