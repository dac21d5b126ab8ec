package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/motivity-labs/support-triage/internal/analytics"
	"github.com/motivity-labs/support-triage/internal/api/http/handlers"
	"github.com/motivity-labs/support-triage/internal/config"
	"github.com/motivity-labs/support-triage/internal/domain"
	"github.com/motivity-labs/support-triage/internal/enrich"
	"github.com/motivity-labs/support-triage/internal/events"
	"github.com/motivity-labs/support-triage/internal/observability"
	"github.com/motivity-labs/support-triage/internal/prompt"
	"github.com/motivity-labs/support-triage/internal/service"
	"github.com/motivity-labs/support-triage/internal/store"
)

type scriptedCompleter struct {
	responses map[string]string
}

func (s *scriptedCompleter) Complete(_ context.Context, p prompt.Rendered) (string, error) {
	return s.responses[p.Kind], nil
}

func (s *scriptedCompleter) ExtractText(context.Context, []byte, string) (string, error) {
	return s.responses["image_extraction"], nil
}

func newTestApp(t *testing.T, completer *scriptedCompleter) (*fiber.App, *store.TicketStore) {
	t.Helper()

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	profile := domain.LoadCategoryProfile("default")
	catalog := prompt.NewCatalog(profile)

	tickets := store.NewTicketStore(false)
	sessions := store.NewSessionTracker(0)
	dispatcher := events.NewInMemoryDispatcher(logger)

	pipeline := enrich.NewPipeline(catalog, completer, completer, profile)
	triageService := service.NewTriageService(service.TriageDependencies{
		Pipeline:   pipeline,
		TicketRepo: tickets,
		Dispatcher: dispatcher,
	})
	chatService := service.NewChatService(service.ChatDependencies{
		Catalog:    catalog,
		Completer:  completer,
		Sessions:   sessions,
		Dispatcher: dispatcher,
	})

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 5*time.Second, config.CORSConfig{AllowOrigin: "http://localhost:5173"})
	RegisterRoutes(app, RouteConfig{
		Health:    handlers.NewHealthHandler("support-triage", "test", true),
		Tickets:   handlers.NewTicketsHandler(triageService),
		Chat:      handlers.NewChatHandler(chatService),
		Analytics: handlers.NewAnalyticsHandler(analytics.NewAggregator(tickets, profile)),
		Metadata:  handlers.NewMetadataHandler(profile),
	})
	return app, tickets
}

func defaultCompleter() *scriptedCompleter {
	return &scriptedCompleter{responses: map[string]string{
		"category": "Product Support",
		"urgency":  "High",
		"response": "Try clearing your cache.",
		"chat":     "Happy to help!",
	}}
}

func decodeData(t *testing.T, body io.Reader, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(body).Decode(&envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) (int, *bytes.Buffer) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, bytes.NewBuffer(data)
}

func TestCreateAndFetchTicket(t *testing.T) {
	app, _ := newTestApp(t, defaultCompleter())

	status, body := postJSON(t, app, "/tickets/", map[string]string{
		"name":        "Jess",
		"description": "dashboard will not load",
		"user_email":  "jess@example.com",
	})
	require.Equal(t, fiber.StatusCreated, status)

	var created struct {
		ID       int64  `json:"id"`
		Category string `json:"category"`
		Urgency  string `json:"urgency"`
		Status   string `json:"status"`
		Response string `json:"response"`
	}
	decodeData(t, body, &created)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Product Support", created.Category)
	assert.Equal(t, "High", created.Urgency)
	assert.Equal(t, "Open", created.Status)
	assert.Equal(t, "Try clearing your cache.", created.Response)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/tickets/1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/tickets/99", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCreateTicketValidationFailureReturns400(t *testing.T) {
	completer := defaultCompleter()
	completer.responses["category"] = "Billing"
	app, tickets := newTestApp(t, completer)

	status, _ := postJSON(t, app, "/tickets/", map[string]string{
		"name":        "Jess",
		"description": "invoice question",
		"user_email":  "jess@example.com",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Empty(t, tickets.List())
}

func TestUpdateAndDeleteTicket(t *testing.T) {
	app, _ := newTestApp(t, defaultCompleter())
	_, _ = postJSON(t, app, "/tickets/", map[string]string{
		"name": "Jess", "description": "broken export", "user_email": "jess@example.com",
	})

	body, _ := json.Marshal(map[string]string{"status": "resolved"})
	req := httptest.NewRequest(fiber.MethodPut, "/tickets/1", bytes.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated struct {
		Status     string     `json:"status"`
		ResolvedAt *time.Time `json:"resolved_at"`
	}
	decodeData(t, resp.Body, &updated)
	assert.Equal(t, "Resolved", updated.Status)
	assert.NotNil(t, updated.ResolvedAt)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodDelete, "/tickets/1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/tickets/1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestFilteredRejectsMalformedDate(t *testing.T) {
	app, _ := newTestApp(t, defaultCompleter())

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/tickets/filtered?from_date=garbage", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestFilteredMatchesStatusCaseInsensitively(t *testing.T) {
	app, _ := newTestApp(t, defaultCompleter())
	_, _ = postJSON(t, app, "/tickets/", map[string]string{
		"name": "Jess", "description": "one", "user_email": "jess@example.com",
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/tickets/filtered?status=OPEN", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var matched []struct {
		ID int64 `json:"id"`
	}
	decodeData(t, resp.Body, &matched)
	assert.Len(t, matched, 1)
}

func TestChatTurnAndHistory(t *testing.T) {
	app, _ := newTestApp(t, defaultCompleter())

	status, body := postJSON(t, app, "/chat/", map[string]string{
		"user_id": "u1",
		"message": "I need help with a ticket",
	})
	require.Equal(t, fiber.StatusOK, status)

	var chat struct {
		Response         string `json:"response"`
		SuggestedActions []struct {
			Action string `json:"action"`
		} `json:"suggested_actions"`
	}
	decodeData(t, body, &chat)
	assert.Equal(t, "Happy to help!", chat.Response)
	require.Len(t, chat.SuggestedActions, 1)
	assert.Equal(t, "create_ticket", chat.SuggestedActions[0].Action)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/chat/u1/history", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var history []struct {
		User string `json:"user"`
		Bot  string `json:"bot"`
	}
	decodeData(t, resp.Body, &history)
	require.Len(t, history, 1)
	assert.Equal(t, "I need help with a ticket", history[0].User)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/chat/nobody/history", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var empty []any
	decodeData(t, resp.Body, &empty)
	assert.Empty(t, empty)
}

func TestAnalyticsEndpoint(t *testing.T) {
	app, _ := newTestApp(t, defaultCompleter())
	_, _ = postJSON(t, app, "/tickets/", map[string]string{
		"name": "Jess", "description": "one", "user_email": "jess@example.com",
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/analytics", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var report struct {
		Total              int            `json:"total"`
		OpenCount          int            `json:"open_count"`
		ByStatus           map[string]int `json:"by_status"`
		ResponseTimeSeries []any          `json:"response_time_series"`
		SeriesSynthetic    bool           `json:"series_synthetic"`
	}
	decodeData(t, resp.Body, &report)
	assert.Equal(t, 1, report.Total)
	assert.Equal(t, 1, report.OpenCount)
	assert.Len(t, report.ResponseTimeSeries, 7)
	assert.True(t, report.SeriesSynthetic)
}

func TestMetadataEndpoint(t *testing.T) {
	app, _ := newTestApp(t, defaultCompleter())

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/metadata", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var metadata struct {
		CategoryProfile string `json:"category_profile"`
		Categories      []struct {
			Value string `json:"value"`
		} `json:"categories"`
		Urgencies []any `json:"urgencies"`
		Statuses  []any `json:"statuses"`
	}
	decodeData(t, resp.Body, &metadata)
	assert.Equal(t, "default", metadata.CategoryProfile)
	assert.Len(t, metadata.Categories, 5)
	assert.Len(t, metadata.Urgencies, 4)
	assert.Len(t, metadata.Statuses, 2)
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	app, _ := newTestApp(t, defaultCompleter())

	req := httptest.NewRequest(fiber.MethodGet, "/health/live", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}
