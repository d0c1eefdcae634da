package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davidbz/llm-workflow/internal/config"
	"github.com/davidbz/llm-workflow/internal/domain"
	api "github.com/davidbz/llm-workflow/internal/http"
	"github.com/davidbz/llm-workflow/internal/http/middleware"
	"github.com/davidbz/llm-workflow/internal/mocks"
	"github.com/davidbz/llm-workflow/internal/observability"
	"github.com/davidbz/llm-workflow/internal/provider/echo"
	"github.com/davidbz/llm-workflow/internal/storage/sqlite"
)

type stubSearcher struct {
	hits []*domain.SearchHit
	err  error
}

func (s *stubSearcher) Search(_ context.Context, _ string, _ int) ([]*domain.SearchHit, error) {
	return s.hits, s.err
}

type testEnv struct {
	router     http.Handler
	embeddings *mocks.MockEmbeddingGateway
}

func newTestEnv(t *testing.T, search api.Searcher) *testEnv {
	t.Helper()

	db, err := sqlite.NewDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.MigrateUp(db))

	store := sqlite.NewStore(db)
	registry := domain.NewInMemoryPricingRegistry()
	require.NoError(t, echo.RegisterPricing(context.Background(), registry))

	runs := domain.NewRunService(
		echo.NewGateway(),
		store,
		store,
		domain.NewStandardCostCalculator(registry),
		observability.NewEventBus(zap.NewNop()),
		nil,
		"echo4",
	)
	embeddings := mocks.NewMockEmbeddingGateway(t)

	handler := api.NewHandler(domain.NewWorkspaceService(store, store, store), runs, embeddings, search)
	server := api.NewServer(&config.ServerConfig{Port: 0}, handler, middleware.Chain(middleware.Trace()))

	return &testEnv{router: server.Router(), embeddings: embeddings}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else if raw, ok := body.(string); ok {
		reader = bytes.NewReader([]byte(raw))
	} else {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, map[string]string{"status": "ok"}, decode[map[string]string](t, w))
	require.NotEmpty(t, w.Header().Get("X-Trace-Id"))
	require.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestProjects_CreateListGet(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/api/v1/projects", map[string]string{"name": "alpha", "description": "first"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[domain.Project](t, w)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "alpha", created.Name)

	w = env.do(t, http.MethodPost, "/api/v1/projects", map[string]string{"name": "beta"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)
	listed := decode[[]domain.Project](t, w)
	require.Len(t, listed, 2)
	require.Equal(t, "beta", listed[0].Name)

	w = env.do(t, http.MethodGet, "/api/v1/projects?limit=1&offset=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	paged := decode[[]domain.Project](t, w)
	require.Len(t, paged, 1)
	require.Equal(t, "alpha", paged[0].Name)

	w = env.do(t, http.MethodGet, "/api/v1/projects/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, created.ID, decode[domain.Project](t, w).ID)
}

func TestProjects_Errors(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{name: "missing name", method: http.MethodPost, path: "/api/v1/projects", body: map[string]string{"name": "  "}, status: http.StatusBadRequest},
		{name: "malformed body", method: http.MethodPost, path: "/api/v1/projects", body: "{not json", status: http.StatusBadRequest},
		{name: "unknown project", method: http.MethodGet, path: "/api/v1/projects/nope", status: http.StatusNotFound},
		{name: "bad limit", method: http.MethodGet, path: "/api/v1/projects?limit=abc", status: http.StatusBadRequest},
		{name: "negative offset", method: http.MethodGet, path: "/api/v1/projects?offset=-1", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, tt.method, tt.path, tt.body)
			require.Equal(t, tt.status, w.Code)
			require.NotEmpty(t, decode[map[string]string](t, w)["error"])
		})
	}
}

func TestPrompts_CreateAndVersions(t *testing.T) {
	env := newTestEnv(t, nil)

	project := decode[domain.Project](t, env.do(t, http.MethodPost, "/api/v1/projects", map[string]string{"name": "p"}))
	other := decode[domain.Project](t, env.do(t, http.MethodPost, "/api/v1/projects", map[string]string{"name": "q"}))

	w := env.do(t, http.MethodPost, "/api/v1/prompts", map[string]any{
		"project_id": project.ID,
		"name":       "greeting",
		"template":   "Hello {{name}}",
		"tags":       []string{"demo"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	prompt := decode[domain.Prompt](t, w)
	require.NotEmpty(t, prompt.LatestVersionID)
	require.Equal(t, []string{"demo"}, prompt.Tags)

	w = env.do(t, http.MethodPost, "/api/v1/prompts", map[string]any{
		"project_id": other.ID,
		"name":       "other",
		"template":   "x",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/prompts?project_id="+project.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	filtered := decode[[]domain.Prompt](t, w)
	require.Len(t, filtered, 1)
	require.Equal(t, prompt.ID, filtered[0].ID)

	w = env.do(t, http.MethodGet, "/api/v1/prompts/"+prompt.ID+"/versions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	versions := decode[[]domain.PromptVersion](t, w)
	require.Len(t, versions, 1)
	require.Equal(t, 1, versions[0].VersionNumber)
	require.Equal(t, prompt.LatestVersionID, versions[0].ID)

	w = env.do(t, http.MethodPost, "/api/v1/prompts", map[string]any{
		"project_id": "missing",
		"name":       "n",
		"template":   "t",
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/prompts/missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessions_MessagesRoundTrip(t *testing.T) {
	env := newTestEnv(t, nil)

	project := decode[domain.Project](t, env.do(t, http.MethodPost, "/api/v1/projects", map[string]string{"name": "p"}))

	w := env.do(t, http.MethodPost, "/api/v1/sessions", map[string]string{"project_id": project.ID, "title": "chat"})
	require.Equal(t, http.StatusCreated, w.Code)
	session := decode[domain.Session](t, w)

	w = env.do(t, http.MethodGet, "/api/v1/sessions/"+session.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "chat", decode[domain.Session](t, w).Title)

	w = env.do(t, http.MethodPost, "/api/v1/sessions/"+session.ID+"/messages", map[string]string{"role": "user", "content": "first"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = env.do(t, http.MethodPost, "/api/v1/sessions/"+session.ID+"/messages", map[string]string{"role": "assistant", "content": "second"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/sessions/"+session.ID+"/messages", nil)
	require.Equal(t, http.StatusOK, w.Code)
	messages := decode[[]domain.SessionMessage](t, w)
	require.Len(t, messages, 2)
	require.Equal(t, "first", messages[0].Content)
	require.Equal(t, session.ID, messages[1].SessionID)

	w = env.do(t, http.MethodGet, "/api/v1/sessions?project_id="+project.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decode[[]domain.Session](t, w), 1)

	w = env.do(t, http.MethodPost, "/api/v1/sessions/"+session.ID+"/messages", map[string]string{"role": "tool", "content": "x"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/sessions/missing/messages", map[string]string{"role": "user", "content": "x"})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/sessions", map[string]string{"project_id": "missing"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRun_EchoesAndRecords(t *testing.T) {
	env := newTestEnv(t, nil)

	project := decode[domain.Project](t, env.do(t, http.MethodPost, "/api/v1/projects", map[string]string{"name": "p"}))
	session := decode[domain.Session](t, env.do(t, http.MethodPost, "/api/v1/sessions", map[string]string{"project_id": project.ID}))

	w := env.do(t, http.MethodPost, "/api/v1/llm/run", map[string]any{
		"session_id": session.ID,
		"messages": []any{
			map[string]any{"role": "user", "content": []any{"look", map[string]any{"type": "text", "text": "here"}}},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	result := decode[domain.RunResult](t, w)
	require.NotEmpty(t, result.ID)
	require.Equal(t, "[user]: look here\n", result.Content)
	require.Equal(t, 3, result.Usage.PromptTokens())

	w = env.do(t, http.MethodGet, "/api/v1/sessions/"+session.ID+"/messages", nil)
	messages := decode[[]domain.SessionMessage](t, w)
	require.Len(t, messages, 2)
	require.Equal(t, domain.RoleUser, messages[0].Role)
	require.Equal(t, "look here", messages[0].Content)
	require.Equal(t, domain.RoleAssistant, messages[1].Role)
	require.Equal(t, result.ID, messages[1].ID)
}

func TestRun_Errors(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{name: "empty request", body: map[string]any{}, status: http.StatusBadRequest},
		{name: "bad role", body: map[string]any{"messages": []any{map[string]any{"role": "robot", "content": "hi"}}}, status: http.StatusBadRequest},
		{name: "unknown session", body: map[string]any{"session_id": "missing", "content": "hi"}, status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/v1/llm/run", tt.body)
			require.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRun_WithoutSession(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/api/v1/llm/run", map[string]any{"content": "hello there"})

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "[user]: hello there\n", decode[domain.RunResult](t, w).Content)
}

func TestEmbeddings(t *testing.T) {
	env := newTestEnv(t, nil)

	env.embeddings.EXPECT().
		Embed(mock.Anything, &domain.EmbeddingRequest{Texts: []string{"a", "b"}}).
		Return(&domain.EmbeddingResult{Vectors: [][]float64{{0.1, 0.2}, {0.3}}, Usage: domain.Usage{}}, nil).
		Once()

	w := env.do(t, http.MethodPost, "/api/v1/embeddings", map[string]any{"input": []string{"a", "b"}})

	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, w)
	require.Equal(t, []any{[]any{0.1, 0.2}, []any{0.3}}, body["data"])
}

func TestEmbeddings_GatewayErrorIsBadGateway(t *testing.T) {
	env := newTestEnv(t, nil)

	env.embeddings.EXPECT().
		Embed(mock.Anything, mock.Anything).
		Return(nil, &domain.EmbeddingError{Message: "no embedding credential configured"}).
		Once()

	w := env.do(t, http.MethodPost, "/api/v1/embeddings", map[string]any{"input": []string{"a"}})

	require.Equal(t, http.StatusBadGateway, w.Code)
	require.Equal(t, "no embedding credential configured", decode[map[string]string](t, w)["error"])
}

func TestSearch(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		env := newTestEnv(t, nil)

		w := env.do(t, http.MethodPost, "/api/v1/search", map[string]any{"query": "x"})
		require.Equal(t, http.StatusNotImplemented, w.Code)
	})

	t.Run("hits", func(t *testing.T) {
		searcher := &stubSearcher{hits: []*domain.SearchHit{{MessageID: "m1", Role: domain.RoleAssistant, Snippet: "hi", Similarity: 0.9}}}
		env := newTestEnv(t, searcher)

		w := env.do(t, http.MethodPost, "/api/v1/search", map[string]any{"query": "x", "limit": 3})
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Results []domain.SearchHit `json:"results"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		require.Len(t, body.Results, 1)
		require.Equal(t, "m1", body.Results[0].MessageID)
	})

	t.Run("invalid query", func(t *testing.T) {
		env := newTestEnv(t, &stubSearcher{err: domain.InvalidArgument("query is required")})

		w := env.do(t, http.MethodPost, "/api/v1/search", map[string]any{"query": ""})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("internal failure", func(t *testing.T) {
		env := newTestEnv(t, &stubSearcher{err: errors.New("index offline")})

		w := env.do(t, http.MethodPost, "/api/v1/search", map[string]any{"query": "x"})
		require.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
