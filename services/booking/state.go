package booking

import "bookly/models"

// transitions lists the permitted status edges. Terminal statuses have none.
var transitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingPending:  {models.BookingAccepted, models.BookingRejected, models.BookingCancelled},
	models.BookingAccepted: {models.BookingCompleted, models.BookingCancelled},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to models.BookingStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// canActorTransition applies the role rules on top of the state table: the
// owning provider and admins may take any edge, the booking's user may only
// cancel.
func canActorTransition(actor models.Actor, b *models.Booking, to models.BookingStatus) bool {
	switch {
	case actor.IsAdmin(), actor.Is(models.RoleProvider, b.ProviderID):
		return true
	case actor.Is(models.RoleUser, b.UserID):
		return to == models.BookingCancelled
	}
	return false
}

func canView(actor models.Actor, b *models.Booking) bool {
	return actor.IsAdmin() ||
		actor.Is(models.RoleProvider, b.ProviderID) ||
		actor.Is(models.RoleUser, b.UserID)
}
