package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/davidbz/llm-workflow/internal/domain"
)

// HandleCreateProject creates a project.
func (h *Handler) HandleCreateProject(w http.ResponseWriter, r *http.Request) {
	var in domain.NewProject
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	project, err := h.workspace.CreateProject(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, project)
}

// HandleListProjects lists projects newest first.
func (h *Handler) HandleListProjects(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	projects, err := h.workspace.ListProjects(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, projects)
}

// HandleGetProject returns a single project.
func (h *Handler) HandleGetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.workspace.GetProject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, project)
}

// HandleCreatePrompt creates a prompt and its first version.
func (h *Handler) HandleCreatePrompt(w http.ResponseWriter, r *http.Request) {
	var in domain.NewPrompt
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	prompt, err := h.workspace.CreatePrompt(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, prompt)
}

// HandleListPrompts lists prompts, optionally filtered by project_id.
func (h *Handler) HandleListPrompts(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	prompts, err := h.workspace.ListPrompts(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, prompts)
}

func (h *Handler) HandleGetPrompt(w http.ResponseWriter, r *http.Request) {
	prompt, err := h.workspace.GetPrompt(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, prompt)
}

func (h *Handler) HandleListPromptVersions(w http.ResponseWriter, r *http.Request) {
	versions, err := h.workspace.ListPromptVersions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, versions)
}

// HandleCreateSession opens a session inside an existing project.
func (h *Handler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	var in domain.NewSession
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	session, err := h.workspace.CreateSession(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, session)
}

func (h *Handler) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	sessions, err := h.workspace.ListSessions(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, sessions)
}

func (h *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.workspace.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, session)
}

// HandleListMessages lists the messages of a session in insertion order.
func (h *Handler) HandleListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.workspace.ListMessages(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, messages)
}

// HandleAppendMessage appends a message to a session.
func (h *Handler) HandleAppendMessage(w http.ResponseWriter, r *http.Request) {
	var in domain.NewMessage
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	in.SessionID = chi.URLParam(r, "id")

	message, err := h.workspace.AppendMessage(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, message)
}
