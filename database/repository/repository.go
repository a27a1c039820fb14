package repository

import (
	availabilityRepo "bookly/database/repository/availability"
	bookingRepo "bookly/database/repository/booking"
	serviceRepo "bookly/database/repository/service"
)

// Re-export the AvailabilityRepository interface and constructors.
type AvailabilityRepository = availabilityRepo.AvailabilityRepository

var (
	NewMongoAvailabilityRepo  = availabilityRepo.NewMongoAvailabilityRepo
	NewCachedAvailabilityRepo = availabilityRepo.NewCachedAvailabilityRepo
)

// Re-export the BookingRepository interface and constructors.
type (
	BookingRepository = bookingRepo.BookingRepository
	BookingListFilter = bookingRepo.ListFilter
)

var (
	NewMongoBookingRepo    = bookingRepo.NewMongoBookingRepo
	NewPostgresBookingRepo = bookingRepo.NewPostgresBookingRepo
)

// Re-export the ServiceRepository interface and constructor.
type ServiceRepository = serviceRepo.ServiceRepository

var NewMongoServiceRepo = serviceRepo.NewMongoServiceRepo
