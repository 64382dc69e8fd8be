package repositories

import (
	"database/sql"
	"time"

	intdb "hotelbackend/internal/db"
	"hotelbackend/internal/domain/models"
)

// BookingRepo provides SQL access to per-hotel booking records.
type BookingRepo struct {
	DB *sql.DB
}

const bookingColumns = `
	id, hotel_id, guest_first_name, guest_last_name,
	COALESCE(guest_email,''), COALESCE(guest_phone,''), guest_age,
	COALESCE(id_front_url,''), COALESCE(id_back_url,''),
	room_type, adults, children, COALESCE(meal_type,''),
	check_in, check_out, total_price, status,
	COALESCE(notes,''), COALESCE(payment_option,''), COALESCE(payment_proof_url,''),
	last_changed`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var (
		b           models.Booking
		email       string
		phone       string
		age         sql.NullInt64
		idFront     string
		idBack      string
		status      string
		payOpt      string
		lastChanged time.Time
	)
	err := row.Scan(
		&b.ID, &b.HotelID, &b.Guest.FirstName, &b.Guest.LastName,
		&email, &phone, &age,
		&idFront, &idBack,
		&b.Room.Type, &b.Room.Adults, &b.Room.Children, &b.MealType,
		&b.CheckIn, &b.CheckOut, &b.TotalPrice, &status,
		&b.Notes, &payOpt, &b.PaymentProofURL,
		&lastChanged,
	)
	if err != nil {
		return models.Booking{}, err
	}
	b.Status = models.BookingStatus(status)
	b.PaymentOption = models.PaymentOption(payOpt)
	b.LastChanged = lastChanged

	// Guest details only exist once the wizard (or an upload) has written any
	// of its fields.
	if email != "" || phone != "" || age.Valid || idFront != "" || idBack != "" {
		d := models.GuestDetails{
			FirstName:  b.Guest.FirstName,
			LastName:   b.Guest.LastName,
			Email:      email,
			Phone:      phone,
			IDFrontURL: idFront,
			IDBackURL:  idBack,
		}
		if age.Valid {
			a := int(age.Int64)
			d.Age = &a
		}
		b.GuestDetails = &d
	}
	return b, nil
}

// ListByHotel returns all bookings for one tenant, most recently changed first.
func (r BookingRepo) ListByHotel(hotelID string) ([]models.Booking, error) {
	rows, err := r.DB.Query(`SELECT `+bookingColumns+` FROM bookings WHERE hotel_id=? ORDER BY last_changed DESC`, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// GetByID returns one booking; sql.ErrNoRows when missing.
func (r BookingRepo) GetByID(id string) (models.Booking, error) {
	row := r.DB.QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id=? LIMIT 1`, id)
	return scanBooking(row)
}

// Create inserts a booking record. Optional fields go in as NULL so fresh
// bookings read back without phantom guest details.
func (r BookingRepo) Create(b models.Booking) error {
	var (
		email, phone, idFront, idBack string
		age                           *int
	)
	if b.GuestDetails != nil {
		email = b.GuestDetails.Email
		phone = b.GuestDetails.Phone
		idFront = b.GuestDetails.IDFrontURL
		idBack = b.GuestDetails.IDBackURL
		age = b.GuestDetails.Age
	}
	_, err := r.DB.Exec(`
		INSERT INTO bookings (
			id, hotel_id, guest_first_name, guest_last_name,
			guest_email, guest_phone, guest_age, id_front_url, id_back_url,
			room_type, adults, children, meal_type,
			check_in, check_out, total_price, status,
			notes, payment_option, payment_proof_url, last_changed
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		b.ID, b.HotelID, b.Guest.FirstName, b.Guest.LastName,
		intdb.NullIfEmpty(email), intdb.NullIfEmpty(phone), age,
		intdb.NullIfEmpty(idFront), intdb.NullIfEmpty(idBack),
		b.Room.Type, b.Room.Adults, b.Room.Children, intdb.NullIfEmpty(b.MealType),
		b.CheckIn, b.CheckOut, b.TotalPrice, string(b.Status),
		intdb.NullIfEmpty(b.Notes), intdb.NullIfEmpty(string(b.PaymentOption)),
		intdb.NullIfEmpty(b.PaymentProofURL), b.LastChanged,
	)
	return err
}

// Update rewrites the hotelier-editable fields of a booking.
func (r BookingRepo) Update(b models.Booking) error {
	res, err := r.DB.Exec(`
		UPDATE bookings SET
			guest_first_name=?, guest_last_name=?,
			room_type=?, adults=?, children=?, meal_type=?,
			check_in=?, check_out=?, total_price=?, status=?, notes=?, last_changed=?
		WHERE id=?`,
		b.Guest.FirstName, b.Guest.LastName,
		b.Room.Type, b.Room.Adults, b.Room.Children, b.MealType,
		b.CheckIn, b.CheckOut, b.TotalPrice, string(b.Status), b.Notes, b.LastChanged,
		b.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CompleteByGuest persists the wizard submission in one statement: guest
// details, notes, payment option, the resulting status, and lastChanged.
func (r BookingRepo) CompleteByGuest(id string, d models.GuestDetails, notes string, opt models.PaymentOption, status models.BookingStatus, at time.Time) error {
	res, err := r.DB.Exec(`
		UPDATE bookings SET
			guest_first_name=?, guest_last_name=?, guest_email=?, guest_phone=?, guest_age=?,
			notes=?, payment_option=?, status=?, last_changed=?
		WHERE id=?`,
		d.FirstName, d.LastName, d.Email, d.Phone, d.Age,
		notes, string(opt), string(status), at,
		id,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateStatus sets the status and bumps lastChanged.
func (r BookingRepo) UpdateStatus(id string, status models.BookingStatus, at time.Time) error {
	res, err := r.DB.Exec(`UPDATE bookings SET status=?, last_changed=? WHERE id=?`,
		string(status), at, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateDocumentURL stores the blob URL for one uploaded guest document.
// column is one of the fixed document columns; callers map the public
// document kind to it.
func (r BookingRepo) UpdateDocumentURL(id, column, url string, at time.Time) error {
	switch column {
	case "id_front_url", "id_back_url", "payment_proof_url":
	default:
		return sql.ErrNoRows
	}
	res, err := r.DB.Exec(`UPDATE bookings SET `+column+`=?, last_changed=? WHERE id=?`, url, at, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes one booking row.
func (r BookingRepo) Delete(id string) error {
	res, err := r.DB.Exec(`DELETE FROM bookings WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteByHotel removes every booking for a tenant and returns the count.
func (r BookingRepo) DeleteByHotel(hotelID string) (int64, error) {
	res, err := r.DB.Exec(`DELETE FROM bookings WHERE hotel_id=?`, hotelID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
