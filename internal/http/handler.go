package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/davidbz/llm-workflow/internal/domain"
	"github.com/davidbz/llm-workflow/internal/observability"
)

// Searcher answers similarity searches over indexed messages.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]*domain.SearchHit, error)
}

// Handler handles HTTP requests.
type Handler struct {
	workspace  *domain.WorkspaceService
	runs       *domain.RunService
	embeddings domain.EmbeddingGateway
	search     Searcher
}

// NewHandler creates a new HTTP handler (DI constructor). search may be nil
// when message indexing is disabled.
func NewHandler(
	workspace *domain.WorkspaceService,
	runs *domain.RunService,
	embeddings domain.EmbeddingGateway,
	search Searcher,
) *Handler {
	return &Handler{
		workspace:  workspace,
		runs:       runs,
		embeddings: embeddings,
		search:     search,
	}
}

// Routes registers every endpoint on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", h.HandleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/projects", func(r chi.Router) {
			r.Post("/", h.HandleCreateProject)
			r.Get("/", h.HandleListProjects)
			r.Get("/{id}", h.HandleGetProject)
		})

		r.Route("/prompts", func(r chi.Router) {
			r.Post("/", h.HandleCreatePrompt)
			r.Get("/", h.HandleListPrompts)
			r.Get("/{id}", h.HandleGetPrompt)
			r.Get("/{id}/versions", h.HandleListPromptVersions)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", h.HandleCreateSession)
			r.Get("/", h.HandleListSessions)
			r.Get("/{id}", h.HandleGetSession)
			r.Get("/{id}/messages", h.HandleListMessages)
			r.Post("/{id}/messages", h.HandleAppendMessage)
		})

		r.Post("/llm/run", h.HandleRun)
		r.Post("/embeddings", h.HandleEmbeddings)
		r.Post("/search", h.HandleSearch)
	})
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleRun runs a chat completion and records it.
func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	var req domain.RunRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if len(req.Turns) == 0 && req.Content == "" {
		writeError(w, r, domain.InvalidArgument("messages or content is required"))
		return
	}

	for _, turn := range req.Turns {
		if !turn.Role.Valid() {
			writeError(w, r, domain.InvalidArgument("unsupported role "+strconv.Quote(string(turn.Role))))
			return
		}
	}

	result, err := h.runs.Run(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	observability.FromContext(r.Context()).Info("llm run succeeded",
		observability.String("message_id", result.ID),
		observability.Int("total_tokens", result.Usage.TotalTokens()))

	writeJSON(w, r, http.StatusOK, result)
}

// HandleEmbeddings embeds a batch of texts.
func (h *Handler) HandleEmbeddings(w http.ResponseWriter, r *http.Request) {
	var req domain.EmbeddingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.embeddings.Embed(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, result)
}

type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type searchResponse struct {
	Results []*domain.SearchHit `json:"results"`
}

// HandleSearch finds indexed messages similar to a query.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if h.search == nil {
		writeJSON(w, r, http.StatusNotImplemented, errorResponse{Error: "message search is not enabled"})
		return
	}

	var req searchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	hits, err := h.search.Search(r.Context(), req.Query, req.Limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, searchResponse{Results: hits})
}

// listOptions reads limit, offset and project_id query parameters.
func listOptions(r *http.Request) (domain.ListOptions, error) {
	query := r.URL.Query()
	opts := domain.ListOptions{ProjectID: query.Get("project_id")}

	for name, dst := range map[string]*int{"limit": &opts.Limit, "offset": &opts.Offset} {
		raw := query.Get(name)
		if raw == "" {
			continue
		}

		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			return domain.ListOptions{}, domain.InvalidArgument(name + " must be a non-negative integer")
		}
		*dst = value
	}

	return opts, nil
}
