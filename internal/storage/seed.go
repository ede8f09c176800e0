package storage

import (
	"time"

	"github.com/supportflow/opsdash/internal/domain"
)

// Seed loads the sample dataset the dashboard ships with: the three
// supported platforms, one integration per platform, a handful of
// tickets in various states, and the admin user. Seed record ids are
// fixed so the client and the Postgres seed migration agree on them.
func (s *MemStore) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()

	platforms := []domain.Platform{
		{ID: "jira-platform", Name: "Jira", Type: "ticketing", Icon: "fab fa-jira", Color: "#0052CC", IsActive: true},
		{ID: "servicenow-platform", Name: "ServiceNow", Type: "ticketing", Icon: "fas fa-mountain", Color: "#62D84E", IsActive: true},
		{ID: "zoho-platform", Name: "Zoho", Type: "ticketing", Icon: "fas fa-z", Color: "#E94D36", IsActive: true},
	}
	for _, p := range platforms {
		s.platforms[p.ID] = p
		s.platformOrder = append(s.platformOrder, p.ID)
	}

	integrations := []domain.Integration{
		{
			ID:          "jira-integration-1",
			PlatformID:  "jira-platform",
			Name:        "Jira Production",
			APIEndpoint: "https://company.atlassian.net",
			Username:    "api@company.com",
			APIToken:    "encrypted_token_123",
			Config:      integrationConfig(true, true),
			IsActive:    true,
			LastSync:    timePtr(now),
			CreatedAt:   now,
		},
		{
			ID:          "servicenow-integration-1",
			PlatformID:  "servicenow-platform",
			Name:        "ServiceNow Instance",
			APIEndpoint: "https://dev123456.service-now.com",
			Username:    "admin",
			APIToken:    "encrypted_token_456",
			Config:      integrationConfig(true, true),
			IsActive:    true,
			LastSync:    timePtr(now),
			CreatedAt:   now,
		},
		{
			ID:          "zoho-integration-1",
			PlatformID:  "zoho-platform",
			Name:        "Zoho Desk",
			APIEndpoint: "https://desk.zoho.com",
			Username:    "support@company.com",
			APIToken:    "encrypted_token_789",
			Config:      integrationConfig(true, false),
			IsActive:    true,
			LastSync:    timePtr(now),
			CreatedAt:   now,
		},
	}
	for _, i := range integrations {
		s.integrations[i.ID] = i
		s.integrationOrder = append(s.integrationOrder, i.ID)
	}

	tickets := []domain.Ticket{
		{
			ID:            "ticket-1",
			TicketNumber:  "TK-2024",
			Subject:       "Email configuration issue",
			Description:   "User unable to configure email client",
			Priority:      domain.TicketPriorityMedium,
			Status:        domain.TicketStatusInProgress,
			AssignedTo:    "Auto-Bot",
			PlatformID:    "jira-platform",
			IntegrationID: "jira-integration-1",
			IsAutomated:   true,
			CreatedAt:     now.Add(-2 * time.Hour),
			UpdatedAt:     now,
		},
		{
			ID:            "ticket-2",
			TicketNumber:  "TK-2023",
			Subject:       "Password reset request",
			Description:   "User forgot password and needs reset",
			Priority:      domain.TicketPriorityLow,
			Status:        domain.TicketStatusResolved,
			AssignedTo:    "Auto-Bot",
			PlatformID:    "servicenow-platform",
			IntegrationID: "servicenow-integration-1",
			IsAutomated:   true,
			CreatedAt:     now.Add(-4 * time.Hour),
			UpdatedAt:     now.Add(-1 * time.Hour),
			ResolvedAt:    timePtr(now.Add(-1 * time.Hour)),
		},
		{
			ID:            "ticket-3",
			TicketNumber:  "TK-2022",
			Subject:       "VPN connection problem",
			Description:   "Unable to connect to company VPN",
			Priority:      domain.TicketPriorityHigh,
			Status:        domain.TicketStatusEscalated,
			AssignedTo:    "Manual Review",
			PlatformID:    "zoho-platform",
			IntegrationID: "zoho-integration-1",
			IsAutomated:   false,
			CreatedAt:     now.Add(-6 * time.Hour),
			UpdatedAt:     now.Add(-30 * time.Minute),
		},
	}
	for _, t := range tickets {
		s.tickets[t.ID] = t
		s.ticketOrder = append(s.ticketOrder, t.ID)
	}

	admin := domain.User{
		ID:        "admin-user",
		Username:  "admin",
		Email:     "admin@company.com",
		Password:  "hashed_password",
		Role:      domain.RoleAdmin,
		FirstName: "John",
		LastName:  "Smith",
		CreatedAt: now,
	}
	s.users[admin.ID] = admin
	s.userOrder = append(s.userOrder, admin.ID)
}

func integrationConfig(autoAssign, priorityEscalation bool) domain.Document {
	var doc domain.Document
	doc.Set("autoAssign", domain.Bool(autoAssign))
	doc.Set("priorityEscalation", domain.Bool(priorityEscalation))
	return doc
}

func timePtr(t time.Time) *time.Time {
	return &t
}
