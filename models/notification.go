package models

import "time"

// Notification events.
const (
	EventBookingCreated   = "booking.created"
	EventBookingAccepted  = "booking.accepted"
	EventBookingRejected  = "booking.rejected"
	EventBookingCompleted = "booking.completed"
	EventBookingCancelled = "booking.cancelled"
	EventBookingReminder  = "booking.reminder"
)

// Notification is a message for a user or provider about a booking.
type Notification struct {
	Event       string            `json:"event"`
	RecipientID string            `json:"recipientId"`
	Role        Role              `json:"role"` // "user" or "provider"
	BookingID   string            `json:"bookingId"`
	Title       string            `json:"title"`
	Body        string            `json:"body"`
	Data        map[string]string `json:"data,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}
