package service

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/supportflow/opsdash/internal/domain"
	"github.com/supportflow/opsdash/internal/events"
	"github.com/supportflow/opsdash/internal/storage"
)

// connection tests succeed 80% of the time; there is no real network
// call behind them.
const testFailureRate = 0.2

// IntegrationService runs the simulated connection test against a
// configured integration and stamps lastSync on success.
type IntegrationService struct {
	store      storage.Store
	dispatcher events.Dispatcher
	logger     *zap.Logger
	rng        func() float64
}

// NewIntegrationService creates the service. A nil rng uses the global
// math/rand source; tests inject a deterministic one.
func NewIntegrationService(store storage.Store, dispatcher events.Dispatcher, logger *zap.Logger, rng func() float64) *IntegrationService {
	if rng == nil {
		rng = rand.Float64
	}
	return &IntegrationService{store: store, dispatcher: dispatcher, logger: logger, rng: rng}
}

// TestConnection simulates a connection test for the integration.
// Returns storage.ErrNotFound when the id is unknown. On a successful
// outcome the integration's lastSync is stamped to now.
func (s *IntegrationService) TestConnection(ctx context.Context, id string) (bool, error) {
	integration, err := s.store.GetIntegration(ctx, id)
	if err != nil {
		return false, err
	}

	success := s.rng() > testFailureRate
	if success {
		now := time.Now()
		if _, err := s.store.UpdateIntegration(ctx, id, domain.IntegrationUpdate{LastSync: &now}); err != nil {
			return false, err
		}
	}

	s.logger.Info("integration connection test",
		zap.String("integration_id", id),
		zap.Bool("success", success))

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventIntegrationTested,
			SubjectID: id,
			Timestamp: time.Now(),
			Payload: events.IntegrationTestedPayload{
				PlatformID: integration.PlatformID,
				Success:    success,
			},
		})
	}
	return success, nil
}
