package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookly/config"
	"bookly/database/repository/memory"
	"bookly/handlers"
	"bookly/models"
	"bookly/services/booking"
	"bookly/services/catalog"
	"bookly/services/notification"
	"bookly/services/schedule"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type nopNotifier struct{}

func (nopNotifier) Notify(models.Notification)                      {}
func (nopNotifier) ScheduleReminder(models.Notification, time.Time) {}

var _ notification.Notifier = nopNotifier{}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig.JWTSecret = "routes-secret"
	config.AppConfig.AdminToken = "ops-token"
	t.Cleanup(func() {
		config.AppConfig.JWTSecret = ""
		config.AppConfig.AdminToken = ""
	})

	logger := zap.NewNop()
	services := memory.NewServiceStore()
	availability := memory.NewAvailabilityStore()
	bookings := memory.NewBookingStore()

	scheduleSvc, _ := schedule.NewScheduleService(availability, logger)
	resolver, _ := schedule.NewAvailabilityResolver(services, availability, bookings)
	catalogSvc, _ := catalog.NewCatalogService(services, logger)
	coordinator, _ := booking.NewBookingCoordinator(services, bookings, nopNotifier{}, logger, time.Hour)

	r := gin.New()
	RegisterRoutes(r, &handlers.HandlerBundle{
		Availability: &handlers.AvailabilityHandler{Service: scheduleSvc},
		Slots:        &handlers.SlotsHandler{Resolver: resolver},
		Bookings:     &handlers.BookingHandler{Coordinator: coordinator},
		Catalog:      &handlers.CatalogHandler{Service: catalogSvc},
		Admin:        &handlers.AdminHandler{},
	})
	return r
}

func call(t *testing.T, r http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func issue(t *testing.T, r http.Handler, subject string, role models.Role) string {
	t.Helper()
	w, out := call(t, r, http.MethodPost, "/api/admin/tokens", "ops-token", gin.H{"subject": subject, "role": role})
	if w.Code != http.StatusCreated {
		t.Fatalf("issue token: %d %s", w.Code, w.Body.String())
	}
	return out["token"].(string)
}

func TestBookingFlow(t *testing.T) {
	r := newTestEngine(t)
	providerTok := issue(t, r, "p1", models.RoleProvider)
	aliceTok := issue(t, r, "u1", models.RoleUser)
	bobTok := issue(t, r, "u2", models.RoleUser)

	w, out := call(t, r, http.MethodPost, "/api/services", providerTok, gin.H{"name": "Haircut", "durationMinutes": 30})
	if w.Code != http.StatusCreated {
		t.Fatalf("create service: %d %s", w.Code, w.Body.String())
	}
	serviceID := out["service"].(map[string]any)["id"].(string)

	date := time.Now().UTC().AddDate(0, 0, 7)
	weekday := schedule.WeekdayOf(date)
	w, _ = call(t, r, http.MethodPut, "/api/providers/p1/availability", providerTok, gin.H{
		"days": gin.H{string(weekday): gin.H{"isActive": true, "slots": []gin.H{{"start": "09:00", "end": "10:30"}}}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("set availability: %d %s", w.Code, w.Body.String())
	}

	slotsPath := "/api/services/" + serviceID + "/slots?date=" + date.Format("2006-01-02")
	w, out = call(t, r, http.MethodGet, slotsPath, "", nil)
	if w.Code != http.StatusOK || len(out["slots"].([]any)) != 3 {
		t.Fatalf("expected three open slots, got %d %s", w.Code, w.Body.String())
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), 9, 30, 0, 0, time.UTC)
	w, out = call(t, r, http.MethodPost, "/api/bookings", aliceTok, gin.H{"serviceId": serviceID, "start": start})
	if w.Code != http.StatusCreated {
		t.Fatalf("create booking: %d %s", w.Code, w.Body.String())
	}
	bookingID := out["booking"].(map[string]any)["id"].(string)

	w, _ = call(t, r, http.MethodPost, "/api/bookings", bobTok, gin.H{"serviceId": serviceID, "start": start.Add(15 * time.Minute)})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for overlapping booking, got %d %s", w.Code, w.Body.String())
	}

	_, out = call(t, r, http.MethodGet, slotsPath, "", nil)
	if got := len(out["slots"].([]any)); got != 2 {
		t.Fatalf("expected booked slot to disappear, got %d", got)
	}

	w, _ = call(t, r, http.MethodPatch, "/api/bookings/"+bookingID+"/status", aliceTok, gin.H{"status": "accepted"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected users to be refused acceptance, got %d", w.Code)
	}
	w, out = call(t, r, http.MethodPatch, "/api/bookings/"+bookingID+"/status", providerTok, gin.H{"status": "accepted"})
	if w.Code != http.StatusOK || out["booking"].(map[string]any)["status"] != "accepted" {
		t.Fatalf("accept: %d %s", w.Code, w.Body.String())
	}
	w, _ = call(t, r, http.MethodPatch, "/api/bookings/"+bookingID+"/status", providerTok, gin.H{"status": "pending"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected invalid transition to be 400, got %d", w.Code)
	}

	w, _ = call(t, r, http.MethodGet, "/api/bookings/"+bookingID, bobTok, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected other users to be refused, got %d", w.Code)
	}
	w, out = call(t, r, http.MethodGet, "/api/bookings", aliceTok, nil)
	if w.Code != http.StatusOK || out["count"].(float64) != 1 {
		t.Fatalf("list: %d %s", w.Code, w.Body.String())
	}
}

func TestAvailabilityValidationReportsField(t *testing.T) {
	r := newTestEngine(t)
	tok := issue(t, r, "p1", models.RoleProvider)

	w, out := call(t, r, http.MethodPut, "/api/providers/p1/availability", tok, gin.H{
		"days": gin.H{"monday": gin.H{"isActive": true, "slots": []gin.H{{"start": "09:00", "end": "10:00"}, {"start": "11:00", "end": "25:00"}}}},
	})
	if w.Code != http.StatusBadRequest || out["field"] != "days.monday.slots[1].end" {
		t.Fatalf("expected field error, got %d %s", w.Code, w.Body.String())
	}

	w, _ = call(t, r, http.MethodPut, "/api/providers/p2/availability", tok, gin.H{"days": gin.H{}})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected providers to be limited to their own schedule, got %d", w.Code)
	}

	w, out = call(t, r, http.MethodGet, "/api/providers/p9/availability", tok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected lazily created default, got %d", w.Code)
	}
	days := out["availability"].(map[string]any)["days"].(map[string]any)
	if len(days) != 7 {
		t.Fatalf("expected seven default days, got %d", len(days))
	}
}

func TestSlotsErrors(t *testing.T) {
	r := newTestEngine(t)
	cases := []struct {
		path string
		want int
	}{
		{"/api/services/missing/slots?date=2025-03-03", http.StatusNotFound},
		{"/api/services/missing/slots", http.StatusBadRequest},
		{"/api/services/missing/slots?date=03-03-2025", http.StatusBadRequest},
	}
	for _, tc := range cases {
		if w, _ := call(t, r, http.MethodGet, tc.path, "", nil); w.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.path, tc.want, w.Code)
		}
	}
}

func TestAdminTokensRequireStaticToken(t *testing.T) {
	r := newTestEngine(t)
	w, _ := call(t, r, http.MethodPost, "/api/admin/tokens", "wrong", gin.H{"subject": "x", "role": "user"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	w, _ = call(t, r, http.MethodPost, "/api/admin/tokens", "ops-token", gin.H{"subject": "x", "role": "root"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown role, got %d", w.Code)
	}
}
