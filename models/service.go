package models

import "time"

const (
	ServiceKindAppointment = "appointment"
	ServiceKindProduct     = "product"
)

// Service is the catalog entry a booking is made against.
type Service struct {
	ID              string    `bson:"id" json:"id"`
	ProviderID      string    `bson:"providerId" json:"providerId"`
	Name            string    `bson:"name" json:"name"`
	Kind            string    `bson:"kind" json:"kind"`                       // "appointment" or "product"
	DurationMinutes int       `bson:"durationMinutes" json:"durationMinutes"` // appointment length
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
}

// Schedulable reports whether the service can be booked into time slots.
func (s Service) Schedulable() bool {
	return s.Kind == ServiceKindAppointment && s.DurationMinutes > 0
}

// Duration returns the service length as a time.Duration.
func (s Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

type CreateServiceRequest struct {
	ProviderID      string `json:"providerId"`
	Name            string `json:"name" binding:"required"`
	Kind            string `json:"kind"`
	DurationMinutes int    `json:"durationMinutes"`
}
