package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/supportflow/opsdash/internal/domain"
	"github.com/supportflow/opsdash/internal/storage"
)

func TestSnapshotEmptyStore(t *testing.T) {
	svc := NewMetricsService(storage.NewMemStore(), nil, 0, zap.NewNop())

	m, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, m.TotalTickets)
	require.Equal(t, 0, m.AutomationRate)
	require.Zero(t, m.AvgResolutionHours)
	require.Equal(t, 0, m.ActiveIntegrations)
}

func TestSnapshotAutomationRateRounds(t *testing.T) {
	store := storage.NewMemStore()
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		ticket := domain.Ticket{
			TicketNumber: fmt.Sprintf("TK-%04d", i),
			Subject:      "s",
			Priority:     domain.TicketPriorityLow,
			Status:       domain.TicketStatusOpen,
			IsAutomated:  i < 4,
		}
		require.NoError(t, store.CreateTicket(ctx, &ticket))
	}

	svc := NewMetricsService(store, nil, 0, zap.NewNop())
	m, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, 10, m.TotalTickets)
	require.Equal(t, 4, m.AutomatedTickets)
	require.Equal(t, 40, m.AutomationRate)
}

func TestSnapshotSeededDataset(t *testing.T) {
	store := storage.NewMemStore()
	store.Seed()
	ctx := context.Background()

	svc := NewMetricsService(store, nil, 0, zap.NewNop())
	m, err := svc.Snapshot(ctx)
	require.NoError(t, err)

	require.Equal(t, 3, m.TotalTickets)
	require.Equal(t, 2, m.AutomatedTickets)
	require.Equal(t, 67, m.AutomationRate)
	// the one resolved seed ticket was created four hours before it
	// was resolved one hour ago
	require.Equal(t, 3.0, m.AvgResolutionHours)
	require.Equal(t, 3, m.ActiveIntegrations)
}

func TestSnapshotIgnoresUnresolvedTickets(t *testing.T) {
	store := storage.NewMemStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ticket := domain.Ticket{
			TicketNumber: fmt.Sprintf("TK-%04d", i),
			Subject:      "s",
			Priority:     domain.TicketPriorityLow,
			Status:       domain.TicketStatusOpen,
		}
		require.NoError(t, store.CreateTicket(ctx, &ticket))
	}

	svc := NewMetricsService(store, nil, 0, zap.NewNop())
	m, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	require.Zero(t, m.AvgResolutionHours)
}

func TestSnapshotCountsActiveIntegrations(t *testing.T) {
	store := storage.NewMemStore()
	store.Seed()
	ctx := context.Background()

	svc := NewMetricsService(store, nil, 0, zap.NewNop())
	m, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, m.ActiveIntegrations)

	integrations, err := store.ListIntegrations(ctx)
	require.NoError(t, err)
	inactive := false
	_, err = store.UpdateIntegration(ctx, integrations[0].ID, domain.IntegrationUpdate{IsActive: &inactive})
	require.NoError(t, err)

	m, err = svc.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, m.ActiveIntegrations)
}
