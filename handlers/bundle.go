package handlers

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Availability *AvailabilityHandler
	Slots        *SlotsHandler
	Bookings     *BookingHandler
	Catalog      *CatalogHandler
	Admin        *AdminHandler
}
