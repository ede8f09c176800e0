package service

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/supportflow/opsdash/internal/persistence"
	"github.com/supportflow/opsdash/internal/storage"
)

const metricsCacheKey = "opsdash:metrics:snapshot"

// DashboardMetrics is the aggregate shown on the dashboard landing page.
type DashboardMetrics struct {
	TotalTickets       int     `json:"totalTickets"`
	AutomatedTickets   int     `json:"automatedTickets"`
	AutomationRate     int     `json:"automationRate"`
	AvgResolutionHours float64 `json:"avgResolutionHours"`
	ActiveIntegrations int     `json:"activeIntegrations"`
}

// MetricsService computes dashboard aggregates over the store, with an
// optional Redis snapshot cache in front since the dashboard polls this
// endpoint.
type MetricsService struct {
	store  storage.Store
	cache  *persistence.Redis
	ttl    time.Duration
	logger *zap.Logger
}

// NewMetricsService creates the service. A nil or disabled cache means
// every call recomputes.
func NewMetricsService(store storage.Store, cache *persistence.Redis, ttl time.Duration, logger *zap.Logger) *MetricsService {
	return &MetricsService{store: store, cache: cache, ttl: ttl, logger: logger}
}

// Snapshot returns the current dashboard metrics. Cache failures are
// logged and fall through to a fresh computation.
func (s *MetricsService) Snapshot(ctx context.Context) (*DashboardMetrics, error) {
	if s.cacheEnabled() {
		if cached, err := s.cache.GetBytes(ctx, metricsCacheKey); err != nil {
			s.logger.Warn("metrics cache read failed", zap.Error(err))
		} else if cached != nil {
			var m DashboardMetrics
			if err := json.Unmarshal(cached, &m); err == nil {
				return &m, nil
			}
		}
	}

	m, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if s.cacheEnabled() {
		if payload, err := json.Marshal(m); err == nil {
			if err := s.cache.SetBytes(ctx, metricsCacheKey, payload, s.ttl); err != nil {
				s.logger.Warn("metrics cache write failed", zap.Error(err))
			}
		}
	}
	return m, nil
}

func (s *MetricsService) cacheEnabled() bool {
	return s.cache.Enabled() && s.ttl > 0
}

func (s *MetricsService) compute(ctx context.Context) (*DashboardMetrics, error) {
	tickets, err := s.store.ListTickets(ctx)
	if err != nil {
		return nil, err
	}
	integrations, err := s.store.ListIntegrations(ctx)
	if err != nil {
		return nil, err
	}

	m := &DashboardMetrics{TotalTickets: len(tickets)}

	var resolvedCount int
	var resolutionSum time.Duration
	for _, t := range tickets {
		if t.IsAutomated {
			m.AutomatedTickets++
		}
		if t.ResolvedAt != nil {
			resolvedCount++
			resolutionSum += t.ResolvedAt.Sub(t.CreatedAt)
		}
	}
	if m.TotalTickets > 0 {
		m.AutomationRate = int(math.Round(float64(m.AutomatedTickets) / float64(m.TotalTickets) * 100))
	}
	if resolvedCount > 0 {
		avgHours := (resolutionSum / time.Duration(resolvedCount)).Hours()
		m.AvgResolutionHours = math.Round(avgHours*10) / 10
	}

	for _, in := range integrations {
		if in.IsActive {
			m.ActiveIntegrations++
		}
	}
	return m, nil
}
