package utils

import "time"

// ActorKey is the gin context key holding the authenticated models.Actor.
const ActorKey = "actor"

// DefaultTokenTTL and MaxTokenTTL bound tokens minted by the admin endpoint.
const (
	DefaultTokenTTL = 24 * time.Hour
	MaxTokenTTL     = 30 * 24 * time.Hour
)

// HealthCheckInterval is how often external dependencies are pinged.
const HealthCheckInterval = 60 * time.Second
