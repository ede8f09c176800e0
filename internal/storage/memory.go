package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/supportflow/opsdash/internal/domain"
)

// MemStore keeps every collection in a map keyed by id, with a parallel
// id slice preserving insertion order for list results. All accessors
// copy records on the way in and out, so callers never share memory
// with the store. A single RWMutex guards the whole store; Fiber serves
// requests concurrently.
type MemStore struct {
	mu sync.RWMutex

	users        map[string]domain.User
	platforms    map[string]domain.Platform
	integrations map[string]domain.Integration
	tickets      map[string]domain.Ticket
	rules        map[string]domain.AutomationRule
	accounts     map[string]domain.ManagedAccount

	userOrder        []string
	platformOrder    []string
	integrationOrder []string
	ticketOrder      []string
	ruleOrder        []string
	accountOrder     []string
}

// NewMemStore returns an empty store. Call Seed to load the sample
// dataset the dashboard ships with.
func NewMemStore() *MemStore {
	return &MemStore{
		users:        make(map[string]domain.User),
		platforms:    make(map[string]domain.Platform),
		integrations: make(map[string]domain.Integration),
		tickets:      make(map[string]domain.Ticket),
		rules:        make(map[string]domain.AutomationRule),
		accounts:     make(map[string]domain.ManagedAccount),
	}
}

var _ Store = (*MemStore)(nil)

// Users

// ListUsers returns all users in insertion order.
func (s *MemStore) ListUsers(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		out = append(out, s.users[id])
	}
	return out, nil
}

// GetUser looks a user up by id.
func (s *MemStore) GetUser(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

// GetUserByUsername looks a user up by exact username match.
func (s *MemStore) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.userOrder {
		if s.users[id].Username == username {
			user := s.users[id]
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

// CreateUser stores a new user, assigning id and creation timestamp.
// Username and email must be unique.
func (s *MemStore) CreateUser(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.userOrder {
		existing := s.users[id]
		if existing.Username == user.Username {
			return fmt.Errorf("username %q: %w", user.Username, ErrConflict)
		}
		if existing.Email == user.Email {
			return fmt.Errorf("email %q: %w", user.Email, ErrConflict)
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	s.users[user.ID] = *user
	s.userOrder = append(s.userOrder, user.ID)
	return nil
}

// Platforms

// ListPlatforms returns all platforms in insertion order.
func (s *MemStore) ListPlatforms(_ context.Context) ([]domain.Platform, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Platform, 0, len(s.platformOrder))
	for _, id := range s.platformOrder {
		out = append(out, s.platforms[id])
	}
	return out, nil
}

// GetPlatform looks a platform up by id.
func (s *MemStore) GetPlatform(_ context.Context, id string) (*domain.Platform, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	platform, ok := s.platforms[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &platform, nil
}

// CreatePlatform stores a new platform, assigning its id.
func (s *MemStore) CreatePlatform(_ context.Context, platform *domain.Platform) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	platform.ID = uuid.NewString()
	s.platforms[platform.ID] = *platform
	s.platformOrder = append(s.platformOrder, platform.ID)
	return nil
}

// Integrations

// ListIntegrations returns all integrations in insertion order.
func (s *MemStore) ListIntegrations(_ context.Context) ([]domain.Integration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Integration, 0, len(s.integrationOrder))
	for _, id := range s.integrationOrder {
		out = append(out, copyIntegration(s.integrations[id]))
	}
	return out, nil
}

// GetIntegration looks an integration up by id.
func (s *MemStore) GetIntegration(_ context.Context, id string) (*domain.Integration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	integration, ok := s.integrations[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := copyIntegration(integration)
	return &out, nil
}

// ListIntegrationsByPlatform filters integrations by platform id.
func (s *MemStore) ListIntegrationsByPlatform(_ context.Context, platformID string) ([]domain.Integration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Integration, 0)
	for _, id := range s.integrationOrder {
		if s.integrations[id].PlatformID == platformID {
			out = append(out, copyIntegration(s.integrations[id]))
		}
	}
	return out, nil
}

// CreateIntegration stores a new integration, assigning id and creation
// timestamp. LastSync starts nil until a connection test succeeds.
func (s *MemStore) CreateIntegration(_ context.Context, integration *domain.Integration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	integration.ID = uuid.NewString()
	integration.LastSync = nil
	integration.CreatedAt = time.Now()
	s.integrations[integration.ID] = copyIntegration(*integration)
	s.integrationOrder = append(s.integrationOrder, integration.ID)
	return nil
}

// UpdateIntegration merges supplied fields onto an existing integration.
func (s *MemStore) UpdateIntegration(_ context.Context, id string, update domain.IntegrationUpdate) (*domain.Integration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	integration, ok := s.integrations[id]
	if !ok {
		return nil, ErrNotFound
	}
	if update.Name != nil {
		integration.Name = *update.Name
	}
	if update.APIEndpoint != nil {
		integration.APIEndpoint = *update.APIEndpoint
	}
	if update.Username != nil {
		integration.Username = *update.Username
	}
	if update.APIToken != nil {
		integration.APIToken = *update.APIToken
	}
	if update.Config != nil {
		integration.Config = update.Config.Clone()
	}
	if update.IsActive != nil {
		integration.IsActive = *update.IsActive
	}
	if update.LastSync != nil {
		sync := *update.LastSync
		integration.LastSync = &sync
	}
	s.integrations[id] = integration
	out := copyIntegration(integration)
	return &out, nil
}

// Tickets

// ListTickets returns all tickets in insertion order.
func (s *MemStore) ListTickets(_ context.Context) ([]domain.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Ticket, 0, len(s.ticketOrder))
	for _, id := range s.ticketOrder {
		out = append(out, copyTicket(s.tickets[id]))
	}
	return out, nil
}

// GetTicket looks a ticket up by id.
func (s *MemStore) GetTicket(_ context.Context, id string) (*domain.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ticket, ok := s.tickets[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := copyTicket(ticket)
	return &out, nil
}

// ListTicketsByStatus filters tickets by exact status match.
func (s *MemStore) ListTicketsByStatus(_ context.Context, status domain.TicketStatus) ([]domain.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Ticket, 0)
	for _, id := range s.ticketOrder {
		if s.tickets[id].Status == status {
			out = append(out, copyTicket(s.tickets[id]))
		}
	}
	return out, nil
}

// ListTicketsByPlatform filters tickets by platform id.
func (s *MemStore) ListTicketsByPlatform(_ context.Context, platformID string) ([]domain.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Ticket, 0)
	for _, id := range s.ticketOrder {
		if s.tickets[id].PlatformID == platformID {
			out = append(out, copyTicket(s.tickets[id]))
		}
	}
	return out, nil
}

// CreateTicket stores a new ticket, assigning id and timestamps.
// The ticket number must be unique.
func (s *MemStore) CreateTicket(_ context.Context, ticket *domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.ticketOrder {
		if s.tickets[id].TicketNumber == ticket.TicketNumber {
			return fmt.Errorf("ticket number %q: %w", ticket.TicketNumber, ErrConflict)
		}
	}
	now := time.Now()
	ticket.ID = uuid.NewString()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	ticket.ResolvedAt = nil
	s.tickets[ticket.ID] = copyTicket(*ticket)
	s.ticketOrder = append(s.ticketOrder, ticket.ID)
	return nil
}

// UpdateTicket merges supplied fields onto an existing ticket and stamps
// UpdatedAt. An update carrying status "resolved" re-stamps ResolvedAt
// even when the ticket was already resolved.
func (s *MemStore) UpdateTicket(_ context.Context, id string, update domain.TicketUpdate) (*domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ticket, ok := s.tickets[id]
	if !ok {
		return nil, ErrNotFound
	}
	now := time.Now()
	if update.TicketNumber != nil {
		ticket.TicketNumber = *update.TicketNumber
	}
	if update.Subject != nil {
		ticket.Subject = *update.Subject
	}
	if update.Description != nil {
		ticket.Description = *update.Description
	}
	if update.Priority != nil {
		ticket.Priority = *update.Priority
	}
	if update.Status != nil {
		ticket.Status = *update.Status
		if *update.Status == domain.TicketStatusResolved {
			resolved := now
			ticket.ResolvedAt = &resolved
		}
	}
	if update.AssignedTo != nil {
		ticket.AssignedTo = *update.AssignedTo
	}
	if update.PlatformID != nil {
		ticket.PlatformID = *update.PlatformID
	}
	if update.IntegrationID != nil {
		ticket.IntegrationID = *update.IntegrationID
	}
	if update.AccountID != nil {
		ticket.AccountID = *update.AccountID
	}
	if update.IsAutomated != nil {
		ticket.IsAutomated = *update.IsAutomated
	}
	ticket.UpdatedAt = now
	s.tickets[id] = ticket
	out := copyTicket(ticket)
	return &out, nil
}

// Automation rules

// ListAutomationRules returns all rules in insertion order.
func (s *MemStore) ListAutomationRules(_ context.Context) ([]domain.AutomationRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.AutomationRule, 0, len(s.ruleOrder))
	for _, id := range s.ruleOrder {
		out = append(out, copyRule(s.rules[id]))
	}
	return out, nil
}

// GetAutomationRule looks a rule up by id.
func (s *MemStore) GetAutomationRule(_ context.Context, id string) (*domain.AutomationRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rule, ok := s.rules[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := copyRule(rule)
	return &out, nil
}

// CreateAutomationRule stores a new rule, assigning id and creation timestamp.
func (s *MemStore) CreateAutomationRule(_ context.Context, rule *domain.AutomationRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rule.ID = uuid.NewString()
	rule.CreatedAt = time.Now()
	s.rules[rule.ID] = copyRule(*rule)
	s.ruleOrder = append(s.ruleOrder, rule.ID)
	return nil
}

// UpdateAutomationRule merges supplied fields onto an existing rule.
func (s *MemStore) UpdateAutomationRule(_ context.Context, id string, update domain.AutomationRuleUpdate) (*domain.AutomationRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rule, ok := s.rules[id]
	if !ok {
		return nil, ErrNotFound
	}
	if update.Name != nil {
		rule.Name = *update.Name
	}
	if update.Description != nil {
		rule.Description = *update.Description
	}
	if update.Conditions != nil {
		rule.Conditions = update.Conditions.Clone()
	}
	if update.Actions != nil {
		rule.Actions = update.Actions.Clone()
	}
	if update.IsActive != nil {
		rule.IsActive = *update.IsActive
	}
	if update.PlatformID != nil {
		rule.PlatformID = *update.PlatformID
	}
	if update.Priority != nil {
		rule.Priority = *update.Priority
	}
	s.rules[id] = rule
	out := copyRule(rule)
	return &out, nil
}

// Managed accounts

// ListManagedAccounts returns all accounts in insertion order.
func (s *MemStore) ListManagedAccounts(_ context.Context) ([]domain.ManagedAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ManagedAccount, 0, len(s.accountOrder))
	for _, id := range s.accountOrder {
		out = append(out, copyAccount(s.accounts[id]))
	}
	return out, nil
}

// GetManagedAccount looks an account up by id.
func (s *MemStore) GetManagedAccount(_ context.Context, id string) (*domain.ManagedAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := copyAccount(account)
	return &out, nil
}

// CreateManagedAccount stores a new account, assigning id and creation timestamp.
func (s *MemStore) CreateManagedAccount(_ context.Context, account *domain.ManagedAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	account.ID = uuid.NewString()
	account.CreatedAt = time.Now()
	s.accounts[account.ID] = copyAccount(*account)
	s.accountOrder = append(s.accountOrder, account.ID)
	return nil
}

// UpdateManagedAccount merges supplied fields onto an existing account.
func (s *MemStore) UpdateManagedAccount(_ context.Context, id string, update domain.ManagedAccountUpdate) (*domain.ManagedAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	if update.CompanyName != nil {
		account.CompanyName = *update.CompanyName
	}
	if update.Industry != nil {
		account.Industry = *update.Industry
	}
	if update.PrimaryContactName != nil {
		account.PrimaryContactName = *update.PrimaryContactName
	}
	if update.ContactEmail != nil {
		account.ContactEmail = *update.ContactEmail
	}
	if update.ContactPhone != nil {
		account.ContactPhone = *update.ContactPhone
	}
	if update.ExpectedVolume != nil {
		account.ExpectedVolume = *update.ExpectedVolume
	}
	if update.CurrentPlatforms != nil {
		account.CurrentPlatforms = append([]string(nil), *update.CurrentPlatforms...)
	}
	if update.SpecialRequirements != nil {
		account.SpecialRequirements = *update.SpecialRequirements
	}
	if update.OnboardingStatus != nil {
		account.OnboardingStatus = *update.OnboardingStatus
	}
	if update.OnboardingStep != nil {
		account.OnboardingStep = *update.OnboardingStep
	}
	s.accounts[id] = account
	out := copyAccount(account)
	return &out, nil
}

// Copy helpers keep stored records from sharing memory with callers.

func copyIntegration(in domain.Integration) domain.Integration {
	in.Config = in.Config.Clone()
	if in.LastSync != nil {
		sync := *in.LastSync
		in.LastSync = &sync
	}
	return in
}

func copyTicket(in domain.Ticket) domain.Ticket {
	if in.ResolvedAt != nil {
		resolved := *in.ResolvedAt
		in.ResolvedAt = &resolved
	}
	return in
}

func copyRule(in domain.AutomationRule) domain.AutomationRule {
	in.Conditions = in.Conditions.Clone()
	in.Actions = in.Actions.Clone()
	return in
}

func copyAccount(in domain.ManagedAccount) domain.ManagedAccount {
	in.CurrentPlatforms = append([]string(nil), in.CurrentPlatforms...)
	return in
}
