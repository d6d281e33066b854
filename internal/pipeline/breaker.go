package pipeline

import (
	"time"

	"github.com/sony/gobreaker"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/lib"
	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

// NewCheckpointBreaker builds the circuit breaker guarding checkpoint
// writes. After the configured number of consecutive failures the breaker
// opens and checkpointing is skipped until the cooldown elapses; one trial
// success closes it again.
func NewCheckpointBreaker(cfg models.BreakerConfig, logger *lib.Logger) *gobreaker.CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        "checkpoint",
		MaxRequests: 1, // Single trial call while half-open
		Timeout:     time.Duration(cfg.CooldownSeconds) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String())
		},
	}
	return gobreaker.NewCircuitBreaker(settings)
}
