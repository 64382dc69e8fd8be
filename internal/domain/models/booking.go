package models

import "time"

// BookingStatus is the lifecycle state of a booking. Transitions are driven by
// the guest wizard or by explicit hotelier actions, never by timers.
type BookingStatus string

const (
	StatusDraft          BookingStatus = "Draft"
	StatusSent           BookingStatus = "Sent"
	StatusPartialPayment BookingStatus = "Partial Payment"
	StatusConfirmed      BookingStatus = "Confirmed"
	StatusCompleted      BookingStatus = "Completed"
	StatusCancelled      BookingStatus = "Cancelled"
)

// PaymentOption is the guest's choice on the wizard payment step.
type PaymentOption string

const (
	PaymentDeposit PaymentOption = "deposit"
	PaymentFull    PaymentOption = "full"
)

// ValidStatus reports whether s is one of the known booking statuses.
func ValidStatus(s BookingStatus) bool {
	switch s {
	case StatusDraft, StatusSent, StatusPartialPayment, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// StatusForPaymentOption maps the guest's payment choice onto the resulting
// booking status: deposit means Partial Payment, full means Confirmed.
func StatusForPaymentOption(opt PaymentOption) (BookingStatus, bool) {
	switch opt {
	case PaymentDeposit:
		return StatusPartialPayment, true
	case PaymentFull:
		return StatusConfirmed, true
	}
	return "", false
}

// Guest holds the name a hotelier enters when creating a booking.
type Guest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// GuestDetails is the extended contact data the guest fills in via the wizard.
type GuestDetails struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Age        *int   `json:"age,omitempty"`
	IDFrontURL string `json:"idFrontUrl,omitempty"`
	IDBackURL  string `json:"idBackUrl,omitempty"`
}

// Room describes the booked room and occupancy.
type Room struct {
	Type     string `json:"type"`
	Adults   int    `json:"adults"`
	Children int    `json:"children"`
}

// Booking is a per-hotel booking record.
type Booking struct {
	ID              string        `json:"id"`
	HotelID         string        `json:"hotelId"`
	Guest           Guest         `json:"guest"`
	GuestDetails    *GuestDetails `json:"guestDetails,omitempty"`
	Room            Room          `json:"room"`
	MealType        string        `json:"mealType"`
	CheckIn         time.Time     `json:"checkIn"`
	CheckOut        time.Time     `json:"checkOut"`
	TotalPrice      float64       `json:"totalPrice"`
	Status          BookingStatus `json:"status"`
	Notes           string        `json:"notes,omitempty"`
	PaymentOption   PaymentOption `json:"paymentOption,omitempty"`
	PaymentProofURL string        `json:"paymentProofUrl,omitempty"`
	LastChanged     time.Time     `json:"lastChanged"`
}

// OpenForGuest reports whether the guest wizard may still run for this booking.
func (b Booking) OpenForGuest() bool {
	return b.Status == StatusSent || b.Status == StatusDraft
}

// Terminal reports whether no further status change is allowed.
func (b Booking) Terminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// CanComplete reports whether the hotelier may mark the booking Completed.
func (b Booking) CanComplete() bool {
	return b.Status == StatusPartialPayment || b.Status == StatusConfirmed
}
