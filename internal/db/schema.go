package db

import (
	"database/sql"
	"fmt"
)

// schemaDDL creates the three tables the backend reads and writes. IDs are
// opaque UUID strings, statuses and payment options are free-form varchars
// validated in the service layer.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS hotels (
	id VARCHAR(64) PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	domain VARCHAR(255) NOT NULL,
	address VARCHAR(500) NULL,
	contact_email VARCHAR(255) NULL,
	contact_phone VARCHAR(100) NULL,
	bank_account_holder VARCHAR(255) NULL,
	bank_iban VARCHAR(100) NULL,
	bank_bic VARCHAR(50) NULL,
	bank_name VARCHAR(255) NULL,
	smtp_host VARCHAR(255) NULL,
	smtp_port INT NULL,
	smtp_username VARCHAR(255) NULL,
	smtp_password VARCHAR(255) NULL,
	smtp_sender VARCHAR(255) NULL,
	hotelier_email VARCHAR(255) NOT NULL,
	hotelier_password_hash VARCHAR(255) NOT NULL,
	logo_url VARCHAR(1024) NULL,
	meal_types TEXT NULL,
	room_categories TEXT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	KEY idx_hotels_domain (domain)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS bookings (
	id VARCHAR(64) PRIMARY KEY,
	hotel_id VARCHAR(64) NOT NULL,
	guest_first_name VARCHAR(255) NOT NULL,
	guest_last_name VARCHAR(255) NOT NULL,
	guest_email VARCHAR(255) NULL,
	guest_phone VARCHAR(100) NULL,
	guest_age INT NULL,
	id_front_url VARCHAR(1024) NULL,
	id_back_url VARCHAR(1024) NULL,
	room_type VARCHAR(255) NOT NULL,
	adults INT NOT NULL DEFAULT 1,
	children INT NOT NULL DEFAULT 0,
	meal_type VARCHAR(255) NULL,
	check_in DATETIME NOT NULL,
	check_out DATETIME NOT NULL,
	total_price DECIMAL(12,2) NOT NULL DEFAULT 0,
	status VARCHAR(50) NOT NULL,
	notes TEXT NULL,
	payment_option VARCHAR(50) NULL,
	payment_proof_url VARCHAR(1024) NULL,
	last_changed DATETIME NOT NULL,
	KEY idx_bookings_hotel (hotel_id),
	KEY idx_bookings_changed (hotel_id, last_changed)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS agency_users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	email VARCHAR(255) NOT NULL,
	password_hash VARCHAR(255) NOT NULL,
	name VARCHAR(255) NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_agency_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
}

// EnsureSchema creates missing tables on startup. Existing tables are left
// untouched.
func EnsureSchema(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("db not available")
	}
	if HasTable(db, "hotels") && HasTable(db, "bookings") && HasTable(db, "agency_users") {
		return nil
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}
