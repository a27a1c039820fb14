package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"bookly/config"
	"bookly/database"
	"bookly/database/repository"
	"bookly/models"
	"bookly/services/catalog"
	"bookly/services/schedule"
	"bookly/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Seeds a development database with providers, their services and a
// randomised weekly schedule for each.
func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	defer database.CloseDB(context.Background())
	db := database.MongoDB()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Clear existing seed data. Bookings are left alone.
	for _, name := range []string{"services", "availabilities"} {
		if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("Failed to clear %s collection: %v", name, err)
		}
	}

	catalogSvc, err := catalog.NewCatalogService(repository.NewMongoServiceRepo(db), logger)
	if err != nil {
		log.Fatal(err)
	}
	scheduleSvc, err := schedule.NewScheduleService(repository.NewMongoAvailabilityRepo(db), logger)
	if err != nil {
		log.Fatal(err)
	}

	offerings := []struct {
		Name     string
		Kind     string
		Duration int
	}{
		{"Haircut", models.ServiceKindAppointment, 30},
		{"Consultation", models.ServiceKindAppointment, 45},
		{"Deep Tissue Massage", models.ServiceKindAppointment, 90},
		{"Gift Card", models.ServiceKindProduct, 0},
	}
	providerCount := 10

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	today := time.Now().UTC()

	for i := 1; i <= providerCount; i++ {
		providerID := uuid.New().String()
		provider := models.Actor{ID: providerID, Role: models.RoleProvider}

		for _, o := range offerings {
			if rng.Intn(4) == 0 && o.Kind == models.ServiceKindAppointment {
				continue
			}
			svc, err := catalogSvc.CreateService(ctx, provider, models.CreateServiceRequest{
				Name:            o.Name,
				Kind:            o.Kind,
				DurationMinutes: o.Duration,
			})
			if err != nil {
				log.Fatalf("Failed to create service %q: %v", o.Name, err)
			}
			logger.Debug("Seeded service", zap.String("serviceID", svc.ID), zap.String("name", svc.Name))
		}

		days := make(map[models.Weekday]models.DaySchedule, len(models.Weekdays))
		for _, d := range models.Weekdays {
			days[d] = randomDay(rng, d)
		}

		// One closed date and one extended date within the next week.
		overrides := []models.CustomDateOverride{
			{Date: today.AddDate(0, 0, 1+rng.Intn(3)).Format("2006-01-02")},
			{
				Date: today.AddDate(0, 0, 4+rng.Intn(3)).Format("2006-01-02"),
				DaySchedule: models.DaySchedule{
					IsActive: true,
					Slots:    []models.TimeBlock{{Start: "07:00", End: "20:00"}},
				},
			},
		}

		if _, err := scheduleSvc.SetAvailability(ctx, providerID, days, overrides); err != nil {
			log.Fatalf("Failed to set availability for provider %d: %v", i, err)
		}

		token, err := utils.GenerateToken(providerID, models.RoleProvider, utils.DefaultTokenTTL)
		if err != nil {
			log.Fatalf("Failed to issue token: %v", err)
		}
		fmt.Printf("provider %02d  id=%s\n  token=%s\n", i, providerID, token)
	}

	logger.Info("Seeding complete", zap.Int("providers", providerCount))
}

// randomDay opens weekdays most of the time and weekends rarely, with an
// optional lunch break splitting the day into two blocks.
func randomDay(rng *rand.Rand, d models.Weekday) models.DaySchedule {
	weekend := d == models.Saturday || d == models.Sunday
	active := rng.Intn(10) < 8
	if weekend {
		active = rng.Intn(10) < 2
	}

	startHour := 8 + rng.Intn(3)
	endHour := 16 + rng.Intn(3)
	if rng.Intn(2) == 0 {
		return models.DaySchedule{
			IsActive: active,
			Slots:    []models.TimeBlock{{Start: hour(startHour), End: hour(endHour)}},
		}
	}
	return models.DaySchedule{
		IsActive: active,
		Slots: []models.TimeBlock{
			{Start: hour(startHour), End: "12:00"},
			{Start: "13:00", End: hour(endHour)},
		},
	}
}

func hour(h int) string {
	return schedule.FormatClock(h * 60)
}
