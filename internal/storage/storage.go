// Package storage holds the entity collections behind the REST API.
// Two implementations exist: an in-memory store seeded with sample
// data, and a Postgres-backed store selected when a DSN is configured.
package storage

import (
	"context"
	"errors"

	"github.com/supportflow/opsdash/internal/domain"
)

// ErrNotFound signals a lookup or update against an unknown id.
var ErrNotFound = errors.New("record not found")

// ErrConflict signals a create that would duplicate a unique field
// (username, email, ticketNumber).
var ErrConflict = errors.New("record already exists")

// Store exposes typed accessors over the six entity collections.
// Create methods assign the id and creation timestamp on the passed
// record; update methods merge supplied fields shallowly and return
// the merged record. Nothing is ever deleted.
type Store interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) error

	ListPlatforms(ctx context.Context) ([]domain.Platform, error)
	GetPlatform(ctx context.Context, id string) (*domain.Platform, error)
	CreatePlatform(ctx context.Context, platform *domain.Platform) error

	ListIntegrations(ctx context.Context) ([]domain.Integration, error)
	GetIntegration(ctx context.Context, id string) (*domain.Integration, error)
	ListIntegrationsByPlatform(ctx context.Context, platformID string) ([]domain.Integration, error)
	CreateIntegration(ctx context.Context, integration *domain.Integration) error
	UpdateIntegration(ctx context.Context, id string, update domain.IntegrationUpdate) (*domain.Integration, error)

	ListTickets(ctx context.Context) ([]domain.Ticket, error)
	GetTicket(ctx context.Context, id string) (*domain.Ticket, error)
	ListTicketsByStatus(ctx context.Context, status domain.TicketStatus) ([]domain.Ticket, error)
	ListTicketsByPlatform(ctx context.Context, platformID string) ([]domain.Ticket, error)
	CreateTicket(ctx context.Context, ticket *domain.Ticket) error
	UpdateTicket(ctx context.Context, id string, update domain.TicketUpdate) (*domain.Ticket, error)

	ListAutomationRules(ctx context.Context) ([]domain.AutomationRule, error)
	GetAutomationRule(ctx context.Context, id string) (*domain.AutomationRule, error)
	CreateAutomationRule(ctx context.Context, rule *domain.AutomationRule) error
	UpdateAutomationRule(ctx context.Context, id string, update domain.AutomationRuleUpdate) (*domain.AutomationRule, error)

	ListManagedAccounts(ctx context.Context) ([]domain.ManagedAccount, error)
	GetManagedAccount(ctx context.Context, id string) (*domain.ManagedAccount, error)
	CreateManagedAccount(ctx context.Context, account *domain.ManagedAccount) error
	UpdateManagedAccount(ctx context.Context, id string, update domain.ManagedAccountUpdate) (*domain.ManagedAccount, error)
}
