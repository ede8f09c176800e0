package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/supportflow/opsdash/internal/domain"
)

func TestCreateTicketAssignsIDAndTimestamps(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	ticket := domain.Ticket{
		TicketNumber: "TK-3001",
		Subject:      "Printer offline",
		Priority:     domain.TicketPriorityMedium,
		Status:       domain.TicketStatusOpen,
	}
	require.NoError(t, store.CreateTicket(ctx, &ticket))

	require.NotEmpty(t, ticket.ID)
	require.False(t, ticket.CreatedAt.IsZero())
	require.False(t, ticket.UpdatedAt.IsZero())
	require.Nil(t, ticket.ResolvedAt)

	got, err := store.GetTicket(ctx, ticket.ID)
	require.NoError(t, err)
	require.Equal(t, ticket, *got)
}

func TestUpdateTicketPreservesUntouchedFields(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	ticket := domain.Ticket{
		TicketNumber: "TK-3002",
		Subject:      "Slow laptop",
		Description:  "Spinning cursor all day",
		Priority:     domain.TicketPriorityLow,
		Status:       domain.TicketStatusOpen,
		AssignedTo:   "Auto-Bot",
	}
	require.NoError(t, store.CreateTicket(ctx, &ticket))

	high := domain.TicketPriorityHigh
	updated, err := store.UpdateTicket(ctx, ticket.ID, domain.TicketUpdate{Priority: &high})
	require.NoError(t, err)

	require.Equal(t, domain.TicketPriorityHigh, updated.Priority)
	require.Equal(t, ticket.Subject, updated.Subject)
	require.Equal(t, ticket.Description, updated.Description)
	require.Equal(t, ticket.Status, updated.Status)
	require.Equal(t, ticket.AssignedTo, updated.AssignedTo)
	require.Equal(t, ticket.CreatedAt, updated.CreatedAt)
	require.True(t, !updated.UpdatedAt.Before(ticket.UpdatedAt))
	require.Nil(t, updated.ResolvedAt)
}

func TestUpdateTicketStampsResolvedAt(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	ticket := domain.Ticket{
		TicketNumber: "TK-3003",
		Subject:      "Locked account",
		Priority:     domain.TicketPriorityMedium,
		Status:       domain.TicketStatusOpen,
	}
	require.NoError(t, store.CreateTicket(ctx, &ticket))

	resolved := domain.TicketStatusResolved
	first, err := store.UpdateTicket(ctx, ticket.ID, domain.TicketUpdate{Status: &resolved})
	require.NoError(t, err)
	require.NotNil(t, first.ResolvedAt)
	require.True(t, !first.ResolvedAt.Before(first.CreatedAt))

	// a repeated resolved update re-stamps, monotonically non-decreasing
	second, err := store.UpdateTicket(ctx, ticket.ID, domain.TicketUpdate{Status: &resolved})
	require.NoError(t, err)
	require.NotNil(t, second.ResolvedAt)
	require.True(t, !second.ResolvedAt.Before(*first.ResolvedAt))
}

func TestUpdateTicketKeepsResolvedAtOnOtherStatusChanges(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	ticket := domain.Ticket{TicketNumber: "TK-3004", Subject: "x", Priority: domain.TicketPriorityLow, Status: domain.TicketStatusOpen}
	require.NoError(t, store.CreateTicket(ctx, &ticket))

	resolved := domain.TicketStatusResolved
	afterResolve, err := store.UpdateTicket(ctx, ticket.ID, domain.TicketUpdate{Status: &resolved})
	require.NoError(t, err)

	closed := domain.TicketStatusClosed
	afterClose, err := store.UpdateTicket(ctx, ticket.ID, domain.TicketUpdate{Status: &closed})
	require.NoError(t, err)
	require.NotNil(t, afterClose.ResolvedAt)
	require.Equal(t, *afterResolve.ResolvedAt, *afterClose.ResolvedAt)
}

func TestUpdateTicketNotFoundLeavesStoreUntouched(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	ticket := domain.Ticket{TicketNumber: "TK-3005", Subject: "x", Priority: domain.TicketPriorityLow, Status: domain.TicketStatusOpen}
	require.NoError(t, store.CreateTicket(ctx, &ticket))

	subject := "hijacked"
	_, err := store.UpdateTicket(ctx, "no-such-id", domain.TicketUpdate{Subject: &subject})
	require.ErrorIs(t, err, ErrNotFound)

	got, err := store.GetTicket(ctx, ticket.ID)
	require.NoError(t, err)
	require.Equal(t, "x", got.Subject)
}

func TestCreateTicketRejectsDuplicateNumber(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	first := domain.Ticket{TicketNumber: "TK-3006", Subject: "a", Priority: domain.TicketPriorityLow, Status: domain.TicketStatusOpen}
	require.NoError(t, store.CreateTicket(ctx, &first))

	dup := domain.Ticket{TicketNumber: "TK-3006", Subject: "b", Priority: domain.TicketPriorityLow, Status: domain.TicketStatusOpen}
	require.ErrorIs(t, store.CreateTicket(ctx, &dup), ErrConflict)

	all, err := store.ListTickets(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestCreateUserEnforcesUniqueUsernameAndEmail(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	user := domain.User{Username: "jdoe", Email: "jdoe@example.com", Password: "pw", Role: domain.RoleAgent, FirstName: "Jane", LastName: "Doe"}
	require.NoError(t, store.CreateUser(ctx, &user))

	sameName := domain.User{Username: "jdoe", Email: "other@example.com", Password: "pw", Role: domain.RoleAgent, FirstName: "J", LastName: "D"}
	require.ErrorIs(t, store.CreateUser(ctx, &sameName), ErrConflict)

	sameEmail := domain.User{Username: "other", Email: "jdoe@example.com", Password: "pw", Role: domain.RoleAgent, FirstName: "J", LastName: "D"}
	require.ErrorIs(t, store.CreateUser(ctx, &sameEmail), ErrConflict)
}

func TestGetUserByUsername(t *testing.T) {
	store := NewMemStore()
	store.Seed()
	ctx := context.Background()

	admin, err := store.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	require.Equal(t, "admin-user", admin.ID)
	require.Equal(t, domain.RoleAdmin, admin.Role)

	_, err = store.GetUserByUsername(ctx, "ghost")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTicketFilters(t *testing.T) {
	store := NewMemStore()
	store.Seed()
	ctx := context.Background()

	resolved, err := store.ListTicketsByStatus(ctx, domain.TicketStatusResolved)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	require.Equal(t, "TK-2023", resolved[0].TicketNumber)

	jira, err := store.ListTicketsByPlatform(ctx, "jira-platform")
	require.NoError(t, err)
	require.Len(t, jira, 1)
	require.Equal(t, "TK-2024", jira[0].TicketNumber)

	none, err := store.ListTicketsByStatus(ctx, domain.TicketStatus("bogus"))
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestIntegrationFiltersAndUpdate(t *testing.T) {
	store := NewMemStore()
	store.Seed()
	ctx := context.Background()

	zoho, err := store.ListIntegrationsByPlatform(ctx, "zoho-platform")
	require.NoError(t, err)
	require.Len(t, zoho, 1)
	require.Equal(t, "Zoho Desk", zoho[0].Name)

	inactive := false
	updated, err := store.UpdateIntegration(ctx, zoho[0].ID, domain.IntegrationUpdate{IsActive: &inactive})
	require.NoError(t, err)
	require.False(t, updated.IsActive)
	require.Equal(t, zoho[0].Name, updated.Name)

	_, err = store.UpdateIntegration(ctx, "no-such-id", domain.IntegrationUpdate{})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateIntegrationStartsUnsynced(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	integration := domain.Integration{
		PlatformID:  "jira-platform",
		Name:        "Jira Staging",
		APIEndpoint: "https://staging.atlassian.net",
		APIToken:    "tok",
		IsActive:    true,
	}
	require.NoError(t, store.CreateIntegration(ctx, &integration))
	require.NotEmpty(t, integration.ID)
	require.Nil(t, integration.LastSync)
}

func TestListReturnsSnapshots(t *testing.T) {
	store := NewMemStore()
	store.Seed()
	ctx := context.Background()

	integrations, err := store.ListIntegrations(ctx)
	require.NoError(t, err)
	integrations[0].Config.Set("autoAssign", domain.Bool(false))
	integrations[0].Name = "mutated"

	again, err := store.ListIntegrations(ctx)
	require.NoError(t, err)
	require.Equal(t, "Jira Production", again[0].Name)
	autoAssign, ok := again[0].Config.Get("autoAssign")
	require.True(t, ok)
	require.True(t, autoAssign.Bool)
}

func TestManagedAccountLifecycle(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	account := domain.ManagedAccount{
		CompanyName:        "Acme Corp",
		PrimaryContactName: "Wile E.",
		ContactEmail:       "wile@acme.example",
		CurrentPlatforms:   []string{"Jira"},
		OnboardingStatus:   domain.OnboardingPending,
		OnboardingStep:     1,
	}
	require.NoError(t, store.CreateManagedAccount(ctx, &account))

	step := 3
	inProgress := domain.OnboardingInProgress
	updated, err := store.UpdateManagedAccount(ctx, account.ID, domain.ManagedAccountUpdate{
		OnboardingStatus: &inProgress,
		OnboardingStep:   &step,
	})
	require.NoError(t, err)
	require.Equal(t, domain.OnboardingInProgress, updated.OnboardingStatus)
	require.Equal(t, 3, updated.OnboardingStep)
	require.Equal(t, "Acme Corp", updated.CompanyName)
	require.Equal(t, []string{"Jira"}, updated.CurrentPlatforms)
}

func TestAutomationRuleLifecycle(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	var conditions, actions domain.Document
	conditions.Set("subjectContains", domain.String("password"))
	actions.Set("assignTo", domain.String("Auto-Bot"))

	rule := domain.AutomationRule{
		Name:       "Password resets",
		Conditions: conditions,
		Actions:    actions,
		IsActive:   true,
		Priority:   1,
	}
	require.NoError(t, store.CreateAutomationRule(ctx, &rule))
	require.NotEmpty(t, rule.ID)

	disabled := false
	updated, err := store.UpdateAutomationRule(ctx, rule.ID, domain.AutomationRuleUpdate{IsActive: &disabled})
	require.NoError(t, err)
	require.False(t, updated.IsActive)
	require.Equal(t, "Password resets", updated.Name)
}

func TestSeedDataset(t *testing.T) {
	store := NewMemStore()
	store.Seed()
	ctx := context.Background()

	platforms, err := store.ListPlatforms(ctx)
	require.NoError(t, err)
	require.Len(t, platforms, 3)
	require.Equal(t, "Jira", platforms[0].Name)
	require.Equal(t, "ServiceNow", platforms[1].Name)
	require.Equal(t, "Zoho", platforms[2].Name)

	integrations, err := store.ListIntegrations(ctx)
	require.NoError(t, err)
	require.Len(t, integrations, 3)

	tickets, err := store.ListTickets(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 3)
}
