package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bookly/config"
	"bookly/database"
	"bookly/database/repository"
	availabilityRepo "bookly/database/repository/availability"
	bookingRepo "bookly/database/repository/booking"
	"bookly/database/repository/memory"
	serviceRepo "bookly/database/repository/service"
	"bookly/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// stores holds the repositories selected by STORAGE_DRIVER and BOOKING_STORE,
// plus what is needed to health-check and close them.
type stores struct {
	availability repository.AvailabilityRepository
	services     repository.ServiceRepository
	bookings     repository.BookingRepository

	checks  []utils.HealthCheck
	closers []func(context.Context) error
}

func (s *stores) Close(ctx context.Context) {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			utils.GetLogger().Warn("Failed to close store", zap.Error(err))
		}
	}
}

func openStores(ctx context.Context, logger *zap.Logger) (*stores, error) {
	s := &stores{}

	if config.UsesMemoryStorage() {
		logger.Warn("Using in-memory storage; data is lost on restart")
		s.availability = memory.NewAvailabilityStore()
		s.services = memory.NewServiceStore()
		s.bookings = memory.NewBookingStore()
	} else {
		if err := openMongo(ctx, s, logger); err != nil {
			return s, err
		}
	}

	if strings.EqualFold(config.AppConfig.BookingStore, "postgres") {
		if err := openPostgresBookings(ctx, s, logger); err != nil {
			return s, err
		}
	}

	if !config.UsesMemoryStorage() && config.AppConfig.AvailabilityCacheTTLSeconds > 0 {
		attachAvailabilityCache(s, logger)
	}
	return s, nil
}

func openMongo(ctx context.Context, s *stores, logger *zap.Logger) error {
	database.InitDB()
	db := database.MongoDB()

	for name, ensure := range map[string]func(context.Context, *mongo.Database) error{
		"availabilities": availabilityRepo.EnsureIndexes,
		"services":       serviceRepo.EnsureIndexes,
		"bookings":       bookingRepo.EnsureIndexes,
	} {
		if err := ensure(ctx, db); err != nil {
			return fmt.Errorf("ensure %s indexes: %w", name, err)
		}
	}

	s.availability = repository.NewMongoAvailabilityRepo(db)
	s.services = repository.NewMongoServiceRepo(db)
	s.bookings = repository.NewMongoBookingRepo(db)
	s.checks = append(s.checks, utils.HealthCheck{
		Name: "mongo",
		Ping: func(ctx context.Context) error { return database.MongoClient.Ping(ctx, nil) },
	})
	s.closers = append(s.closers, database.CloseDB)
	logger.Info("MongoDB stores ready", zap.String("database", config.AppConfig.DatabaseName))
	return nil
}

func openPostgresBookings(ctx context.Context, s *stores, logger *zap.Logger) error {
	pool, err := database.OpenPostgres(ctx, config.AppConfig.PostgresURL)
	if err != nil {
		return err
	}
	if err := bookingRepo.EnsurePostgresSchema(ctx, pool); err != nil {
		pool.Close()
		return fmt.Errorf("ensure bookings schema: %w", err)
	}

	s.bookings = repository.NewPostgresBookingRepo(pool)
	s.checks = append(s.checks, utils.HealthCheck{Name: "postgres", Ping: pool.Ping})
	s.closers = append(s.closers, func(context.Context) error {
		pool.Close()
		return nil
	})
	logger.Info("Bookings stored in PostgreSQL")
	return nil
}

// attachAvailabilityCache wraps the schedule store in the Redis read-through
// cache. A Redis outage at startup only disables the cache.
func attachAvailabilityCache(s *stores, logger *zap.Logger) {
	if err := utils.InitCache(); err != nil {
		logger.Warn("Availability cache disabled", zap.Error(err))
		return
	}
	client := utils.CacheClient
	ttl := time.Duration(config.AppConfig.AvailabilityCacheTTLSeconds) * time.Second

	s.availability = repository.NewCachedAvailabilityRepo(s.availability, client, ttl, logger)
	s.checks = append(s.checks, utils.HealthCheck{
		Name: "redis",
		Ping: func(ctx context.Context) error { return client.Ping(ctx).Err() },
	})
	s.closers = append(s.closers, func(context.Context) error { return client.Close() })
	logger.Info("Availability cache enabled", zap.Duration("ttl", ttl))
}
