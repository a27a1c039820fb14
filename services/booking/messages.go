package booking

import (
	"fmt"
	"time"

	"bookly/models"
)

const whenLayout = "Mon 2 Jan 2006, 15:04 UTC"

func bookingData(b *models.Booking) map[string]string {
	return map[string]string{
		"bookingId":    b.ID,
		"serviceId":    b.ServiceID,
		"providerId":   b.ProviderID,
		"userId":       b.UserID,
		"status":       string(b.Status),
		"bookingStart": b.Start.Format(time.RFC3339),
		"bookingEnd":   b.End.Format(time.RFC3339),
	}
}

func bookingCreatedMessage(b *models.Booking) models.Notification {
	return models.Notification{
		Event:       models.EventBookingCreated,
		RecipientID: b.ProviderID,
		Role:        models.RoleProvider,
		BookingID:   b.ID,
		Title:       "New booking request",
		Body:        fmt.Sprintf("You have a new booking request for %s.", b.Start.Format(whenLayout)),
		Data:        bookingData(b),
	}
}

var statusEvents = map[models.BookingStatus]string{
	models.BookingAccepted:  models.EventBookingAccepted,
	models.BookingRejected:  models.EventBookingRejected,
	models.BookingCompleted: models.EventBookingCompleted,
	models.BookingCancelled: models.EventBookingCancelled,
}

var statusTitles = map[models.BookingStatus]string{
	models.BookingAccepted:  "Booking confirmed",
	models.BookingRejected:  "Booking declined",
	models.BookingCompleted: "Booking completed",
	models.BookingCancelled: "Booking cancelled",
}

func statusChangedMessage(b *models.Booking) models.Notification {
	return models.Notification{
		Event:       statusEvents[b.Status],
		RecipientID: b.UserID,
		Role:        models.RoleUser,
		BookingID:   b.ID,
		Title:       statusTitles[b.Status],
		Body:        fmt.Sprintf("Your booking for %s is now %s.", b.Start.Format(whenLayout), b.Status),
		Data:        bookingData(b),
	}
}

func cancelledByUserMessage(b *models.Booking) models.Notification {
	return models.Notification{
		Event:       models.EventBookingCancelled,
		RecipientID: b.ProviderID,
		Role:        models.RoleProvider,
		BookingID:   b.ID,
		Title:       "Booking cancelled by client",
		Body:        fmt.Sprintf("The booking for %s was cancelled by the client.", b.Start.Format(whenLayout)),
		Data:        bookingData(b),
	}
}

func reminderMessage(b *models.Booking) models.Notification {
	return models.Notification{
		Event:       models.EventBookingReminder,
		RecipientID: b.UserID,
		Role:        models.RoleUser,
		BookingID:   b.ID,
		Title:       "Upcoming appointment",
		Body:        fmt.Sprintf("Reminder: your appointment is at %s.", b.Start.Format(whenLayout)),
		Data:        bookingData(b),
	}
}
