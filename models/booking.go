package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingAccepted  BookingStatus = "accepted"
	BookingRejected  BookingStatus = "rejected"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingAccepted, BookingRejected, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no transition may leave s.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingCompleted || s == BookingRejected || s == BookingCancelled
}

// Blocking reports whether a booking in status s still occupies its interval.
// Completed bookings keep their interval; rejected and cancelled ones release it.
func (s BookingStatus) Blocking() bool {
	return s != BookingRejected && s != BookingCancelled
}

// BlockingStatuses are the statuses considered by overlap checks.
var BlockingStatuses = []BookingStatus{BookingPending, BookingAccepted, BookingCompleted}

// Booking is a reservation of one service slot with a provider.
type Booking struct {
	ID         string        `bson:"id" json:"id"`
	UserID     string        `bson:"userId" json:"userId"`
	ProviderID string        `bson:"providerId" json:"providerId"`
	ServiceID  string        `bson:"serviceId" json:"serviceId"`
	Start      time.Time     `bson:"bookingStart" json:"bookingStart"` // UTC
	End        time.Time     `bson:"bookingEnd" json:"bookingEnd"`     // UTC, Start + service duration
	Status     BookingStatus `bson:"status" json:"status"`
	Address    string        `bson:"address,omitempty" json:"address,omitempty"`
	Notes      string        `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt  time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// CreateBookingRequest is the body of POST /api/bookings.
type CreateBookingRequest struct {
	ServiceID string    `json:"serviceId" binding:"required"`
	Start     time.Time `json:"start" binding:"required"`
	Address   string    `json:"address"`
	Notes     string    `json:"notes"`
	UserID    string    `json:"userId"` // only honoured for admins booking on behalf of a user
}

// UpdateBookingStatusRequest is the body of PATCH /api/bookings/:bookingID/status.
type UpdateBookingStatusRequest struct {
	Status BookingStatus `json:"status" binding:"required"`
}
