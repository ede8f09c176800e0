package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/supportflow/opsdash/internal/domain"
)

// PostgresStore implements Store over a pgx connection pool. The schema
// lives in migrations/; the column layout mirrors the in-memory model
// one to one.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an established pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

var _ Store = (*PostgresStore)(nil)

func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%s: %w", pgErr.ConstraintName, ErrConflict)
	}
	return err
}

// Users

const userColumns = `id, username, email, password, role, first_name, last_name, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Role, &u.FirstName, &u.LastName, &u.CreatedAt); err != nil {
		return nil, mapPgError(err)
	}
	return &u, nil
}

// ListUsers returns all users in insertion order.
func (s *PostgresStore) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

// GetUser looks a user up by id.
func (s *PostgresStore) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

// GetUserByUsername looks a user up by exact username match.
func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username=$1`, username))
}

// CreateUser stores a new user, assigning id and creation timestamp.
func (s *PostgresStore) CreateUser(ctx context.Context, user *domain.User) error {
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	_, err := s.pool.Exec(ctx, `
        INSERT INTO users (id, username, email, password, role, first_name, last_name, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		user.ID, user.Username, user.Email, user.Password, user.Role, user.FirstName, user.LastName, user.CreatedAt)
	return mapPgError(err)
}

// Platforms

// ListPlatforms returns all platforms in insertion order.
func (s *PostgresStore) ListPlatforms(ctx context.Context) ([]domain.Platform, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, type, icon, color, is_active FROM platforms ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]domain.Platform, 0)
	for rows.Next() {
		var p domain.Platform
		if err := rows.Scan(&p.ID, &p.Name, &p.Type, &p.Icon, &p.Color, &p.IsActive); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetPlatform looks a platform up by id.
func (s *PostgresStore) GetPlatform(ctx context.Context, id string) (*domain.Platform, error) {
	var p domain.Platform
	err := s.pool.QueryRow(ctx, `SELECT id, name, type, icon, color, is_active FROM platforms WHERE id=$1`, id).
		Scan(&p.ID, &p.Name, &p.Type, &p.Icon, &p.Color, &p.IsActive)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &p, nil
}

// CreatePlatform stores a new platform, assigning its id.
func (s *PostgresStore) CreatePlatform(ctx context.Context, platform *domain.Platform) error {
	platform.ID = uuid.NewString()
	_, err := s.pool.Exec(ctx, `
        INSERT INTO platforms (id, name, type, icon, color, is_active)
        VALUES ($1,$2,$3,$4,$5,$6)`,
		platform.ID, platform.Name, platform.Type, platform.Icon, platform.Color, platform.IsActive)
	return mapPgError(err)
}

// Integrations

const integrationColumns = `id, platform_id, name, api_endpoint, username, api_token, config, is_active, last_sync, created_at`

func scanIntegration(row pgx.Row) (*domain.Integration, error) {
	var in domain.Integration
	var config []byte
	if err := row.Scan(&in.ID, &in.PlatformID, &in.Name, &in.APIEndpoint, &in.Username, &in.APIToken,
		&config, &in.IsActive, &in.LastSync, &in.CreatedAt); err != nil {
		return nil, mapPgError(err)
	}
	if len(config) > 0 {
		if err := json.Unmarshal(config, &in.Config); err != nil {
			return nil, err
		}
	}
	return &in, nil
}

// ListIntegrations returns all integrations in insertion order.
func (s *PostgresStore) ListIntegrations(ctx context.Context) ([]domain.Integration, error) {
	return s.queryIntegrations(ctx, `SELECT `+integrationColumns+` FROM integrations ORDER BY seq`)
}

// GetIntegration looks an integration up by id.
func (s *PostgresStore) GetIntegration(ctx context.Context, id string) (*domain.Integration, error) {
	return scanIntegration(s.pool.QueryRow(ctx, `SELECT `+integrationColumns+` FROM integrations WHERE id=$1`, id))
}

// ListIntegrationsByPlatform filters integrations by platform id.
func (s *PostgresStore) ListIntegrationsByPlatform(ctx context.Context, platformID string) ([]domain.Integration, error) {
	return s.queryIntegrations(ctx, `SELECT `+integrationColumns+` FROM integrations WHERE platform_id=$1 ORDER BY seq`, platformID)
}

func (s *PostgresStore) queryIntegrations(ctx context.Context, query string, args ...any) ([]domain.Integration, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]domain.Integration, 0)
	for rows.Next() {
		in, err := scanIntegration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *in)
	}
	return out, rows.Err()
}

// CreateIntegration stores a new integration, assigning id and creation timestamp.
func (s *PostgresStore) CreateIntegration(ctx context.Context, integration *domain.Integration) error {
	integration.ID = uuid.NewString()
	integration.LastSync = nil
	integration.CreatedAt = time.Now()
	config, err := json.Marshal(integration.Config)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
        INSERT INTO integrations (id, platform_id, name, api_endpoint, username, api_token, config, is_active, last_sync, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		integration.ID, integration.PlatformID, integration.Name, integration.APIEndpoint,
		integration.Username, integration.APIToken, config, integration.IsActive,
		integration.LastSync, integration.CreatedAt)
	return mapPgError(err)
}

// UpdateIntegration merges supplied fields onto an existing integration.
func (s *PostgresStore) UpdateIntegration(ctx context.Context, id string, update domain.IntegrationUpdate) (*domain.Integration, error) {
	var out *domain.Integration
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		in, err := scanIntegration(tx.QueryRow(ctx, `SELECT `+integrationColumns+` FROM integrations WHERE id=$1 FOR UPDATE`, id))
		if err != nil {
			return err
		}
		if update.Name != nil {
			in.Name = *update.Name
		}
		if update.APIEndpoint != nil {
			in.APIEndpoint = *update.APIEndpoint
		}
		if update.Username != nil {
			in.Username = *update.Username
		}
		if update.APIToken != nil {
			in.APIToken = *update.APIToken
		}
		if update.Config != nil {
			cfg := update.Config.Clone()
			in.Config = cfg
		}
		if update.IsActive != nil {
			in.IsActive = *update.IsActive
		}
		if update.LastSync != nil {
			sync := *update.LastSync
			in.LastSync = &sync
		}
		config, err := json.Marshal(in.Config)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
            UPDATE integrations SET name=$1, api_endpoint=$2, username=$3, api_token=$4, config=$5, is_active=$6, last_sync=$7
            WHERE id=$8`,
			in.Name, in.APIEndpoint, in.Username, in.APIToken, config, in.IsActive, in.LastSync, id)
		if err != nil {
			return err
		}
		out = in
		return nil
	})
	if err != nil {
		return nil, mapPgError(err)
	}
	return out, nil
}

// Tickets

const ticketColumns = `id, ticket_number, subject, description, priority, status, assigned_to, platform_id, integration_id, account_id, is_automated, created_at, updated_at, resolved_at`

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var t domain.Ticket
	if err := row.Scan(&t.ID, &t.TicketNumber, &t.Subject, &t.Description, &t.Priority, &t.Status,
		&t.AssignedTo, &t.PlatformID, &t.IntegrationID, &t.AccountID, &t.IsAutomated,
		&t.CreatedAt, &t.UpdatedAt, &t.ResolvedAt); err != nil {
		return nil, mapPgError(err)
	}
	return &t, nil
}

// ListTickets returns all tickets in insertion order.
func (s *PostgresStore) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	return s.queryTickets(ctx, `SELECT `+ticketColumns+` FROM tickets ORDER BY seq`)
}

// GetTicket looks a ticket up by id.
func (s *PostgresStore) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	return scanTicket(s.pool.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id=$1`, id))
}

// ListTicketsByStatus filters tickets by exact status match.
func (s *PostgresStore) ListTicketsByStatus(ctx context.Context, status domain.TicketStatus) ([]domain.Ticket, error) {
	return s.queryTickets(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE status=$1 ORDER BY seq`, status)
}

// ListTicketsByPlatform filters tickets by platform id.
func (s *PostgresStore) ListTicketsByPlatform(ctx context.Context, platformID string) ([]domain.Ticket, error) {
	return s.queryTickets(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE platform_id=$1 ORDER BY seq`, platformID)
}

func (s *PostgresStore) queryTickets(ctx context.Context, query string, args ...any) ([]domain.Ticket, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]domain.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// CreateTicket stores a new ticket, assigning id and timestamps.
func (s *PostgresStore) CreateTicket(ctx context.Context, ticket *domain.Ticket) error {
	now := time.Now()
	ticket.ID = uuid.NewString()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	ticket.ResolvedAt = nil
	_, err := s.pool.Exec(ctx, `
        INSERT INTO tickets (id, ticket_number, subject, description, priority, status, assigned_to, platform_id, integration_id, account_id, is_automated, created_at, updated_at, resolved_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		ticket.ID, ticket.TicketNumber, ticket.Subject, ticket.Description, ticket.Priority, ticket.Status,
		ticket.AssignedTo, ticket.PlatformID, ticket.IntegrationID, ticket.AccountID, ticket.IsAutomated,
		ticket.CreatedAt, ticket.UpdatedAt, ticket.ResolvedAt)
	return mapPgError(err)
}

// UpdateTicket merges supplied fields onto an existing ticket, stamping
// UpdatedAt and, for updates that set status "resolved", ResolvedAt.
func (s *PostgresStore) UpdateTicket(ctx context.Context, id string, update domain.TicketUpdate) (*domain.Ticket, error) {
	var out *domain.Ticket
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		t, err := scanTicket(tx.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id=$1 FOR UPDATE`, id))
		if err != nil {
			return err
		}
		now := time.Now()
		if update.TicketNumber != nil {
			t.TicketNumber = *update.TicketNumber
		}
		if update.Subject != nil {
			t.Subject = *update.Subject
		}
		if update.Description != nil {
			t.Description = *update.Description
		}
		if update.Priority != nil {
			t.Priority = *update.Priority
		}
		if update.Status != nil {
			t.Status = *update.Status
			if *update.Status == domain.TicketStatusResolved {
				resolved := now
				t.ResolvedAt = &resolved
			}
		}
		if update.AssignedTo != nil {
			t.AssignedTo = *update.AssignedTo
		}
		if update.PlatformID != nil {
			t.PlatformID = *update.PlatformID
		}
		if update.IntegrationID != nil {
			t.IntegrationID = *update.IntegrationID
		}
		if update.AccountID != nil {
			t.AccountID = *update.AccountID
		}
		if update.IsAutomated != nil {
			t.IsAutomated = *update.IsAutomated
		}
		t.UpdatedAt = now
		_, err = tx.Exec(ctx, `
            UPDATE tickets SET ticket_number=$1, subject=$2, description=$3, priority=$4, status=$5,
                assigned_to=$6, platform_id=$7, integration_id=$8, account_id=$9, is_automated=$10,
                updated_at=$11, resolved_at=$12
            WHERE id=$13`,
			t.TicketNumber, t.Subject, t.Description, t.Priority, t.Status,
			t.AssignedTo, t.PlatformID, t.IntegrationID, t.AccountID, t.IsAutomated,
			t.UpdatedAt, t.ResolvedAt, id)
		if err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, mapPgError(err)
	}
	return out, nil
}

// Automation rules

const ruleColumns = `id, name, description, conditions, actions, is_active, platform_id, priority, created_at`

func scanRule(row pgx.Row) (*domain.AutomationRule, error) {
	var r domain.AutomationRule
	var conditions, actions []byte
	if err := row.Scan(&r.ID, &r.Name, &r.Description, &conditions, &actions, &r.IsActive,
		&r.PlatformID, &r.Priority, &r.CreatedAt); err != nil {
		return nil, mapPgError(err)
	}
	if len(conditions) > 0 {
		if err := json.Unmarshal(conditions, &r.Conditions); err != nil {
			return nil, err
		}
	}
	if len(actions) > 0 {
		if err := json.Unmarshal(actions, &r.Actions); err != nil {
			return nil, err
		}
	}
	return &r, nil
}

// ListAutomationRules returns all rules in insertion order.
func (s *PostgresStore) ListAutomationRules(ctx context.Context) ([]domain.AutomationRule, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+ruleColumns+` FROM automation_rules ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]domain.AutomationRule, 0)
	for rows.Next() {
		r, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// GetAutomationRule looks a rule up by id.
func (s *PostgresStore) GetAutomationRule(ctx context.Context, id string) (*domain.AutomationRule, error) {
	return scanRule(s.pool.QueryRow(ctx, `SELECT `+ruleColumns+` FROM automation_rules WHERE id=$1`, id))
}

// CreateAutomationRule stores a new rule, assigning id and creation timestamp.
func (s *PostgresStore) CreateAutomationRule(ctx context.Context, rule *domain.AutomationRule) error {
	rule.ID = uuid.NewString()
	rule.CreatedAt = time.Now()
	conditions, err := json.Marshal(rule.Conditions)
	if err != nil {
		return err
	}
	actions, err := json.Marshal(rule.Actions)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
        INSERT INTO automation_rules (id, name, description, conditions, actions, is_active, platform_id, priority, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		rule.ID, rule.Name, rule.Description, conditions, actions, rule.IsActive,
		rule.PlatformID, rule.Priority, rule.CreatedAt)
	return mapPgError(err)
}

// UpdateAutomationRule merges supplied fields onto an existing rule.
func (s *PostgresStore) UpdateAutomationRule(ctx context.Context, id string, update domain.AutomationRuleUpdate) (*domain.AutomationRule, error) {
	var out *domain.AutomationRule
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		r, err := scanRule(tx.QueryRow(ctx, `SELECT `+ruleColumns+` FROM automation_rules WHERE id=$1 FOR UPDATE`, id))
		if err != nil {
			return err
		}
		if update.Name != nil {
			r.Name = *update.Name
		}
		if update.Description != nil {
			r.Description = *update.Description
		}
		if update.Conditions != nil {
			r.Conditions = update.Conditions.Clone()
		}
		if update.Actions != nil {
			r.Actions = update.Actions.Clone()
		}
		if update.IsActive != nil {
			r.IsActive = *update.IsActive
		}
		if update.PlatformID != nil {
			r.PlatformID = *update.PlatformID
		}
		if update.Priority != nil {
			r.Priority = *update.Priority
		}
		conditions, err := json.Marshal(r.Conditions)
		if err != nil {
			return err
		}
		actions, err := json.Marshal(r.Actions)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
            UPDATE automation_rules SET name=$1, description=$2, conditions=$3, actions=$4, is_active=$5, platform_id=$6, priority=$7
            WHERE id=$8`,
			r.Name, r.Description, conditions, actions, r.IsActive, r.PlatformID, r.Priority, id)
		if err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, mapPgError(err)
	}
	return out, nil
}

// Managed accounts

const accountColumns = `id, company_name, industry, primary_contact_name, contact_email, contact_phone, expected_volume, current_platforms, special_requirements, onboarding_status, onboarding_step, created_at`

func scanAccount(row pgx.Row) (*domain.ManagedAccount, error) {
	var a domain.ManagedAccount
	var platforms []byte
	if err := row.Scan(&a.ID, &a.CompanyName, &a.Industry, &a.PrimaryContactName, &a.ContactEmail,
		&a.ContactPhone, &a.ExpectedVolume, &platforms, &a.SpecialRequirements,
		&a.OnboardingStatus, &a.OnboardingStep, &a.CreatedAt); err != nil {
		return nil, mapPgError(err)
	}
	if len(platforms) > 0 {
		if err := json.Unmarshal(platforms, &a.CurrentPlatforms); err != nil {
			return nil, err
		}
	}
	if a.CurrentPlatforms == nil {
		a.CurrentPlatforms = []string{}
	}
	return &a, nil
}

// ListManagedAccounts returns all accounts in insertion order.
func (s *PostgresStore) ListManagedAccounts(ctx context.Context) ([]domain.ManagedAccount, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+accountColumns+` FROM managed_accounts ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]domain.ManagedAccount, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// GetManagedAccount looks an account up by id.
func (s *PostgresStore) GetManagedAccount(ctx context.Context, id string) (*domain.ManagedAccount, error) {
	return scanAccount(s.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM managed_accounts WHERE id=$1`, id))
}

// CreateManagedAccount stores a new account, assigning id and creation timestamp.
func (s *PostgresStore) CreateManagedAccount(ctx context.Context, account *domain.ManagedAccount) error {
	account.ID = uuid.NewString()
	account.CreatedAt = time.Now()
	platforms, err := json.Marshal(account.CurrentPlatforms)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
        INSERT INTO managed_accounts (id, company_name, industry, primary_contact_name, contact_email, contact_phone, expected_volume, current_platforms, special_requirements, onboarding_status, onboarding_step, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		account.ID, account.CompanyName, account.Industry, account.PrimaryContactName, account.ContactEmail,
		account.ContactPhone, account.ExpectedVolume, platforms, account.SpecialRequirements,
		account.OnboardingStatus, account.OnboardingStep, account.CreatedAt)
	return mapPgError(err)
}

// UpdateManagedAccount merges supplied fields onto an existing account.
func (s *PostgresStore) UpdateManagedAccount(ctx context.Context, id string, update domain.ManagedAccountUpdate) (*domain.ManagedAccount, error) {
	var out *domain.ManagedAccount
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		a, err := scanAccount(tx.QueryRow(ctx, `SELECT `+accountColumns+` FROM managed_accounts WHERE id=$1 FOR UPDATE`, id))
		if err != nil {
			return err
		}
		if update.CompanyName != nil {
			a.CompanyName = *update.CompanyName
		}
		if update.Industry != nil {
			a.Industry = *update.Industry
		}
		if update.PrimaryContactName != nil {
			a.PrimaryContactName = *update.PrimaryContactName
		}
		if update.ContactEmail != nil {
			a.ContactEmail = *update.ContactEmail
		}
		if update.ContactPhone != nil {
			a.ContactPhone = *update.ContactPhone
		}
		if update.ExpectedVolume != nil {
			a.ExpectedVolume = *update.ExpectedVolume
		}
		if update.CurrentPlatforms != nil {
			a.CurrentPlatforms = append([]string(nil), *update.CurrentPlatforms...)
		}
		if update.SpecialRequirements != nil {
			a.SpecialRequirements = *update.SpecialRequirements
		}
		if update.OnboardingStatus != nil {
			a.OnboardingStatus = *update.OnboardingStatus
		}
		if update.OnboardingStep != nil {
			a.OnboardingStep = *update.OnboardingStep
		}
		platforms, err := json.Marshal(a.CurrentPlatforms)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
            UPDATE managed_accounts SET company_name=$1, industry=$2, primary_contact_name=$3, contact_email=$4,
                contact_phone=$5, expected_volume=$6, current_platforms=$7, special_requirements=$8,
                onboarding_status=$9, onboarding_step=$10
            WHERE id=$11`,
			a.CompanyName, a.Industry, a.PrimaryContactName, a.ContactEmail, a.ContactPhone,
			a.ExpectedVolume, platforms, a.SpecialRequirements, a.OnboardingStatus, a.OnboardingStep, id)
		if err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, mapPgError(err)
	}
	return out, nil
}
