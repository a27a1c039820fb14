package models

import "time"

// Slot is one bookable window returned by the open-slots query.
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// OpenSlotsResponse is the body returned for GET /api/services/:serviceID/slots.
type OpenSlotsResponse struct {
	ServiceID  string `json:"serviceId"`
	ProviderID string `json:"providerId"`
	Date       string `json:"date"`
	Slots      []Slot `json:"slots"`
}
