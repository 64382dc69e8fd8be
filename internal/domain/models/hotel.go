package models

import "time"

// BankDetails is the payout account printed on guest-facing documents.
type BankDetails struct {
	AccountHolder string `json:"accountHolder"`
	IBAN          string `json:"iban"`
	BIC           string `json:"bic"`
	BankName      string `json:"bankName"`
}

// SMTPSettings holds per-hotel mail credentials. They are stored for the
// notification flow but nothing here sends mail.
type SMTPSettings struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"-"`
	Sender   string `json:"sender"`
}

// HotelierAccount is the tenant-scoped login bound to one hotel.
type HotelierAccount struct {
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// Hotel is a tenant record managed by the agency.
type Hotel struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Domain         string          `json:"domain"`
	Address        string          `json:"address,omitempty"`
	ContactEmail   string          `json:"contactEmail,omitempty"`
	ContactPhone   string          `json:"contactPhone,omitempty"`
	BankDetails    BankDetails     `json:"bankDetails"`
	SMTP           SMTPSettings    `json:"smtp"`
	Hotelier       HotelierAccount `json:"hotelier"`
	LogoURL        string          `json:"logoUrl,omitempty"`
	MealTypes      []string        `json:"mealTypes"`
	RoomCategories []string        `json:"roomCategories"`
	CreatedAt      time.Time       `json:"createdAt"`
}
