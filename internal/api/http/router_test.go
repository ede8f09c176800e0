package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apihttp "github.com/supportflow/opsdash/internal/api/http"
	"github.com/supportflow/opsdash/internal/api/http/handlers"
	"github.com/supportflow/opsdash/internal/auth"
	"github.com/supportflow/opsdash/internal/config"
	"github.com/supportflow/opsdash/internal/events"
	"github.com/supportflow/opsdash/internal/observability"
	"github.com/supportflow/opsdash/internal/service"
	"github.com/supportflow/opsdash/internal/storage"
)

type testEnv struct {
	app   *fiber.App
	store *storage.MemStore
}

// newTestEnv stands up the full middleware and route stack over a
// fresh in-memory store. The rng passed to the integration service is
// pinned to a success so connection tests are deterministic.
func newTestEnv(t *testing.T, seed bool, rng func() float64) *testEnv {
	t.Helper()

	store := storage.NewMemStore()
	if seed {
		store.Seed()
	}

	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	credentials, err := auth.NewStaticCredentials(config.AuthConfig{
		JWTSecret:     "test-secret",
		AdminUsername: "admin",
		AdminPassword: "password123",
	})
	require.NoError(t, err)

	dispatcher := events.NewInMemoryDispatcher()
	integrations := service.NewIntegrationService(store, dispatcher, logger, rng)
	dashboard := service.NewMetricsService(store, nil, 0, logger)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	apihttp.RegisterMiddlewares(app, logger, metrics, 5*time.Second)
	apihttp.RegisterRoutes(app, apihttp.RouteConfig{
		Health:          handlers.NewHealthHandler("opsdash", "test", nil, nil),
		Auth:            handlers.NewAuthHandler(credentials),
		Users:           handlers.NewUsersHandler(store),
		Platforms:       handlers.NewPlatformsHandler(store),
		Integrations:    handlers.NewIntegrationsHandler(store, integrations),
		Tickets:         handlers.NewTicketsHandler(store, dispatcher),
		AutomationRules: handlers.NewAutomationRulesHandler(store),
		ManagedAccounts: handlers.NewManagedAccountsHandler(store),
		Metrics:         handlers.NewMetricsHandler(dashboard),
	})

	return &testEnv{app: app, store: store}
}

func (e *testEnv) request(t *testing.T, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) == 0 {
		return resp, nil
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		// list endpoints return arrays, let callers re-decode
		return resp, nil
	}
	return resp, decoded
}

func (e *testEnv) requestList(t *testing.T, path string) (*http.Response, []map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestHealthLive(t *testing.T) {
	env := newTestEnv(t, false, nil)

	resp, body := env.request(t, http.MethodGet, "/health/live", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "alive", body["status"])
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t, false, nil)

	resp, body := env.request(t, http.MethodPost, "/api/login", map[string]string{
		"username": "admin",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["success"])
	require.NotEmpty(t, body["token"])

	resp, body = env.request(t, http.MethodPost, "/api/login", map[string]string{
		"username": "admin",
		"password": "nope",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, false, body["success"])
	require.Equal(t, "Invalid username or password", body["message"])
}

func TestCreateAndListTickets(t *testing.T) {
	env := newTestEnv(t, false, nil)

	resp, created := env.request(t, http.MethodPost, "/api/tickets", map[string]any{
		"ticketNumber": "TK-9001",
		"subject":      "Email bounce",
		"priority":     "high",
		"platformId":   "jira-platform",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, created["id"])
	require.Equal(t, "open", created["status"])
	require.Nil(t, created["resolvedAt"])
	require.Equal(t, false, created["isAutomated"])

	resp, list := env.requestList(t, "/api/tickets")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, list, 1)
	require.Equal(t, "TK-9001", list[0]["ticketNumber"])
}

func TestCreateTicketValidation(t *testing.T) {
	env := newTestEnv(t, false, nil)

	resp, body := env.request(t, http.MethodPost, "/api/tickets", map[string]any{
		"subject": "missing everything else",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Invalid ticket data", body["message"])
	require.NotEmpty(t, body["details"])
}

func TestCreateTicketDuplicateNumber(t *testing.T) {
	env := newTestEnv(t, false, nil)

	payload := map[string]any{
		"ticketNumber": "TK-9002",
		"subject":      "first",
		"priority":     "low",
	}
	resp, _ := env.request(t, http.MethodPost, "/api/tickets", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = env.request(t, http.MethodPost, "/api/tickets", payload)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestUpdateTicket(t *testing.T) {
	env := newTestEnv(t, false, nil)

	_, created := env.request(t, http.MethodPost, "/api/tickets", map[string]any{
		"ticketNumber": "TK-9003",
		"subject":      "VPN down",
		"priority":     "medium",
	})
	id := created["id"].(string)

	resp, updated := env.request(t, http.MethodPatch, "/api/tickets/"+id, map[string]any{
		"status":     "resolved",
		"assignedTo": "Auto-Bot",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "resolved", updated["status"])
	require.Equal(t, "Auto-Bot", updated["assignedTo"])
	require.NotNil(t, updated["resolvedAt"])
	require.Equal(t, "VPN down", updated["subject"])
}

func TestUpdateTicketUnknownID(t *testing.T) {
	env := newTestEnv(t, false, nil)

	resp, body := env.request(t, http.MethodPatch, "/api/tickets/no-such-id", map[string]any{
		"status": "closed",
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "Ticket not found", body["message"])
}

func TestTicketFilterRoutes(t *testing.T) {
	env := newTestEnv(t, true, nil)

	resp, byStatus := env.requestList(t, "/api/tickets/status/resolved")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, byStatus, 1)
	require.Equal(t, "TK-2023", byStatus[0]["ticketNumber"])

	resp, byPlatform := env.requestList(t, "/api/tickets/platform/zoho-platform")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, byPlatform, 1)
	require.Equal(t, "TK-2022", byPlatform[0]["ticketNumber"])
}

func TestCreateUserHashesPassword(t *testing.T) {
	env := newTestEnv(t, false, nil)

	resp, created := env.request(t, http.MethodPost, "/api/users", map[string]any{
		"username":  "jdoe",
		"email":     "jdoe@example.com",
		"password":  "plain-text",
		"firstName": "Jane",
		"lastName":  "Doe",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "agent", created["role"])

	stored, err := env.store.GetUserByUsername(context.Background(), "jdoe")
	require.NoError(t, err)
	require.NotEqual(t, "plain-text", stored.Password)
	require.NoError(t, auth.ComparePassword(stored.Password, "plain-text"))
}

func TestCreateUserConflict(t *testing.T) {
	env := newTestEnv(t, false, nil)

	payload := map[string]any{
		"username":  "jdoe",
		"email":     "jdoe@example.com",
		"password":  "pw",
		"firstName": "Jane",
		"lastName":  "Doe",
	}
	resp, _ := env.request(t, http.MethodPost, "/api/users", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = env.request(t, http.MethodPost, "/api/users", payload)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestPlatformsRoundTrip(t *testing.T) {
	env := newTestEnv(t, false, nil)

	resp, created := env.request(t, http.MethodPost, "/api/platforms", map[string]any{
		"name":  "Freshdesk",
		"type":  "ticketing",
		"icon":  "fas fa-headset",
		"color": "#12A5A2",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, true, created["isActive"])

	resp, list := env.requestList(t, "/api/platforms")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, list, 1)
	require.Equal(t, "Freshdesk", list[0]["name"])
}

func TestIntegrationsByPlatform(t *testing.T) {
	env := newTestEnv(t, true, nil)

	resp, list := env.requestList(t, "/api/integrations/platform/jira-platform")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, list, 1)
	require.Equal(t, "Jira Production", list[0]["name"])

	resp, empty := env.requestList(t, "/api/integrations/platform/unknown")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, empty)
}

func TestConnectionTestEndpoint(t *testing.T) {
	success := newTestEnv(t, true, func() float64 { return 0.9 })
	id := seededIntegrationID(t, success.store)

	resp, body := success.request(t, http.MethodPost, fmt.Sprintf("/api/integrations/%s/test", id), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["success"])
	require.Equal(t, "Connection successful", body["message"])

	failure := newTestEnv(t, true, func() float64 { return 0.1 })
	id = seededIntegrationID(t, failure.store)

	resp, body = failure.request(t, http.MethodPost, fmt.Sprintf("/api/integrations/%s/test", id), nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, false, body["success"])
	require.Equal(t, "Connection failed: Invalid credentials", body["message"])
}

func TestConnectionTestUnknownIntegration(t *testing.T) {
	env := newTestEnv(t, false, func() float64 { return 0.9 })

	resp, body := env.request(t, http.MethodPost, "/api/integrations/no-such-id/test", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "Integration not found", body["message"])
}

func TestAutomationRulesRoundTrip(t *testing.T) {
	env := newTestEnv(t, false, nil)

	resp, created := env.request(t, http.MethodPost, "/api/automation-rules", map[string]any{
		"name":       "Password resets",
		"conditions": map[string]any{"subjectContains": "password"},
		"actions":    map[string]any{"assignTo": "Auto-Bot"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, true, created["isActive"])
	require.Equal(t, float64(1), created["priority"])

	resp, list := env.requestList(t, "/api/automation-rules")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, list, 1)
}

func TestManagedAccountsLifecycle(t *testing.T) {
	env := newTestEnv(t, false, nil)

	resp, created := env.request(t, http.MethodPost, "/api/managed-accounts", map[string]any{
		"companyName":        "Acme Corp",
		"primaryContactName": "Wile E.",
		"contactEmail":       "wile@acme.example",
		"currentPlatforms":   []string{"Jira"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "pending", created["onboardingStatus"])
	require.Equal(t, float64(1), created["onboardingStep"])

	id := created["id"].(string)
	resp, updated := env.request(t, http.MethodPatch, "/api/managed-accounts/"+id, map[string]any{
		"onboardingStatus": "in_progress",
		"onboardingStep":   3,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "in_progress", updated["onboardingStatus"])
	require.Equal(t, float64(3), updated["onboardingStep"])
	require.Equal(t, "Acme Corp", updated["companyName"])
}

func TestManagedAccountUpdateUnknownID(t *testing.T) {
	env := newTestEnv(t, false, nil)

	resp, body := env.request(t, http.MethodPatch, "/api/managed-accounts/no-such-id", map[string]any{
		"onboardingStep": 2,
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "Account not found", body["message"])
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, true, nil)

	resp, body := env.request(t, http.MethodGet, "/api/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, float64(3), body["totalTickets"])
	require.Equal(t, float64(2), body["automatedTickets"])
	require.Equal(t, float64(67), body["automationRate"])
	require.Equal(t, float64(3), body["avgResolutionHours"])
	require.Equal(t, float64(3), body["activeIntegrations"])
}

func seededIntegrationID(t *testing.T, store *storage.MemStore) string {
	t.Helper()
	integrations, err := store.ListIntegrations(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, integrations)
	return integrations[0].ID
}
