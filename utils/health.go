package utils

import (
	"context"
	"sync"
	"time"
)

// HealthCheck pings one external dependency.
type HealthCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Services  map[string]bool `json:"services"`
	Healthy   bool            `json:"healthy"`
	CheckedAt time.Time       `json:"checkedAt"`
}

var (
	currentHealth = HealthStatus{Services: map[string]bool{}, Healthy: true}
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	out := currentHealth
	out.Services = make(map[string]bool, len(currentHealth.Services))
	for k, v := range currentHealth.Services {
		out.Services[k] = v
	}
	return out
}

// RunHealthChecks pings every dependency once and stores the snapshot.
func RunHealthChecks(ctx context.Context, checks []HealthCheck) HealthStatus {
	status := HealthStatus{Services: make(map[string]bool, len(checks)), Healthy: true, CheckedAt: time.Now().UTC()}
	for _, chk := range checks {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		ok := chk.Ping(pingCtx) == nil
		cancel()
		status.Services[chk.Name] = ok
		status.Healthy = status.Healthy && ok
	}

	mu.Lock()
	currentHealth = status
	mu.Unlock()
	return status
}

// StartHealthMonitor performs periodic health checks until ctx is done.
func StartHealthMonitor(ctx context.Context, interval time.Duration, checks []HealthCheck) {
	RunHealthChecks(ctx, checks)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				RunHealthChecks(ctx, checks)
			}
		}
	}()
}
