package repositories

import (
	"database/sql"
	"time"

	"hotelbackend/internal/domain/models"
	"hotelbackend/internal/utils"
)

// HotelRepository provides SQL access to hotel tenant records.
type HotelRepository struct {
	DB *sql.DB
}

const hotelColumns = `
	id, name, domain,
	COALESCE(address,''), COALESCE(contact_email,''), COALESCE(contact_phone,''),
	COALESCE(bank_account_holder,''), COALESCE(bank_iban,''), COALESCE(bank_bic,''), COALESCE(bank_name,''),
	COALESCE(smtp_host,''), COALESCE(smtp_port,0), COALESCE(smtp_username,''), COALESCE(smtp_password,''), COALESCE(smtp_sender,''),
	hotelier_email, hotelier_password_hash,
	COALESCE(logo_url,''), COALESCE(meal_types,''), COALESCE(room_categories,''),
	created_at`

func scanHotel(row interface{ Scan(...any) error }) (models.Hotel, error) {
	var (
		h          models.Hotel
		mealTypes  string
		categories string
		createdAt  time.Time
	)
	err := row.Scan(
		&h.ID, &h.Name, &h.Domain,
		&h.Address, &h.ContactEmail, &h.ContactPhone,
		&h.BankDetails.AccountHolder, &h.BankDetails.IBAN, &h.BankDetails.BIC, &h.BankDetails.BankName,
		&h.SMTP.Host, &h.SMTP.Port, &h.SMTP.Username, &h.SMTP.Password, &h.SMTP.Sender,
		&h.Hotelier.Email, &h.Hotelier.PasswordHash,
		&h.LogoURL, &mealTypes, &categories,
		&createdAt,
	)
	if err != nil {
		return models.Hotel{}, err
	}
	h.MealTypes = utils.SplitList(mealTypes)
	h.RoomCategories = utils.SplitList(categories)
	h.CreatedAt = createdAt
	return h, nil
}

// List returns all hotels, newest first.
func (r HotelRepository) List() ([]models.Hotel, error) {
	rows, err := r.DB.Query(`SELECT ` + hotelColumns + ` FROM hotels ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Hotel{}
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, h)
	}
	return list, rows.Err()
}

// GetByID returns one hotel; sql.ErrNoRows when missing.
func (r HotelRepository) GetByID(id string) (models.Hotel, error) {
	row := r.DB.QueryRow(`SELECT `+hotelColumns+` FROM hotels WHERE id=? LIMIT 1`, id)
	return scanHotel(row)
}

// Create inserts a complete hotel record.
func (r HotelRepository) Create(h models.Hotel) error {
	_, err := r.DB.Exec(`
		INSERT INTO hotels (
			id, name, domain, address, contact_email, contact_phone,
			bank_account_holder, bank_iban, bank_bic, bank_name,
			smtp_host, smtp_port, smtp_username, smtp_password, smtp_sender,
			hotelier_email, hotelier_password_hash,
			logo_url, meal_types, room_categories, created_at
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		h.ID, h.Name, h.Domain, h.Address, h.ContactEmail, h.ContactPhone,
		h.BankDetails.AccountHolder, h.BankDetails.IBAN, h.BankDetails.BIC, h.BankDetails.BankName,
		h.SMTP.Host, h.SMTP.Port, h.SMTP.Username, h.SMTP.Password, h.SMTP.Sender,
		h.Hotelier.Email, h.Hotelier.PasswordHash,
		h.LogoURL, utils.JoinList(h.MealTypes), utils.JoinList(h.RoomCategories), h.CreatedAt,
	)
	return err
}

// Update rewrites the mutable fields of a hotel record. The hotelier password
// hash and the SMTP password are only touched when non-empty, so reads that
// round-trip the record without the secrets cannot blank them. The driver
// reports changed rows, not matched rows, so a no-op rewrite is not an error;
// callers check existence beforehand.
func (r HotelRepository) Update(h models.Hotel) error {
	query := `
		UPDATE hotels SET
			name=?, domain=?, address=?, contact_email=?, contact_phone=?,
			bank_account_holder=?, bank_iban=?, bank_bic=?, bank_name=?,
			smtp_host=?, smtp_port=?, smtp_username=?, smtp_sender=?,
			hotelier_email=?, logo_url=?, meal_types=?, room_categories=?`
	args := []any{
		h.Name, h.Domain, h.Address, h.ContactEmail, h.ContactPhone,
		h.BankDetails.AccountHolder, h.BankDetails.IBAN, h.BankDetails.BIC, h.BankDetails.BankName,
		h.SMTP.Host, h.SMTP.Port, h.SMTP.Username, h.SMTP.Sender,
		h.Hotelier.Email, h.LogoURL, utils.JoinList(h.MealTypes), utils.JoinList(h.RoomCategories),
	}
	if h.SMTP.Password != "" {
		query += `, smtp_password=?`
		args = append(args, h.SMTP.Password)
	}
	if h.Hotelier.PasswordHash != "" {
		query += `, hotelier_password_hash=?`
		args = append(args, h.Hotelier.PasswordHash)
	}
	query += ` WHERE id=?`
	args = append(args, h.ID)

	_, err := r.DB.Exec(query, args...)
	return err
}

// UpdateHotelierPassword replaces the tenant login hash.
func (r HotelRepository) UpdateHotelierPassword(id, passwordHash string) error {
	res, err := r.DB.Exec(`UPDATE hotels SET hotelier_password_hash=? WHERE id=?`, passwordHash, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes the hotel row. Bookings must be removed first by the caller.
func (r HotelRepository) Delete(id string) error {
	res, err := r.DB.Exec(`DELETE FROM hotels WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
