package domain

import (
	"context"
	"fmt"
	"strings"
)

// WorkspaceService validates and persists projects, prompts, sessions and messages.
type WorkspaceService struct {
	projects ProjectStore
	prompts  PromptStore
	sessions SessionStore
}

// NewWorkspaceService creates a new workspace service (DI constructor).
func NewWorkspaceService(projects ProjectStore, prompts PromptStore, sessions SessionStore) *WorkspaceService {
	return &WorkspaceService{
		projects: projects,
		prompts:  prompts,
		sessions: sessions,
	}
}

// CreateProject creates a project.
func (w *WorkspaceService) CreateProject(ctx context.Context, in NewProject) (*Project, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, InvalidArgument("name is required")
	}

	return w.projects.CreateProject(ctx, in)
}

// ListProjects lists projects, newest first.
func (w *WorkspaceService) ListProjects(ctx context.Context, opts ListOptions) ([]*Project, error) {
	return w.projects.ListProjects(ctx, opts.Normalize())
}

// GetProject returns a project or ErrNotFound.
func (w *WorkspaceService) GetProject(ctx context.Context, id string) (*Project, error) {
	return w.projects.GetProject(ctx, id)
}

// CreatePrompt creates a prompt and its first version.
func (w *WorkspaceService) CreatePrompt(ctx context.Context, in NewPrompt) (*Prompt, error) {
	switch {
	case in.ProjectID == "":
		return nil, InvalidArgument("project_id is required")
	case strings.TrimSpace(in.Name) == "":
		return nil, InvalidArgument("name is required")
	case in.Template == "":
		return nil, InvalidArgument("template is required")
	}

	if _, err := w.projects.GetProject(ctx, in.ProjectID); err != nil {
		return nil, err
	}

	if in.Tags == nil {
		in.Tags = []string{}
	}

	return w.prompts.CreatePrompt(ctx, in)
}

// ListPrompts lists prompts, optionally filtered by project.
func (w *WorkspaceService) ListPrompts(ctx context.Context, opts ListOptions) ([]*Prompt, error) {
	return w.prompts.ListPrompts(ctx, opts.Normalize())
}

// GetPrompt returns a prompt or ErrNotFound.
func (w *WorkspaceService) GetPrompt(ctx context.Context, id string) (*Prompt, error) {
	return w.prompts.GetPrompt(ctx, id)
}

// ListPromptVersions returns the versions of an existing prompt, oldest first.
func (w *WorkspaceService) ListPromptVersions(ctx context.Context, promptID string) ([]*PromptVersion, error) {
	if _, err := w.prompts.GetPrompt(ctx, promptID); err != nil {
		return nil, err
	}

	return w.prompts.ListPromptVersions(ctx, promptID)
}

// CreateSession creates a session in an existing project.
func (w *WorkspaceService) CreateSession(ctx context.Context, in NewSession) (*Session, error) {
	if in.ProjectID == "" {
		return nil, InvalidArgument("project_id is required")
	}

	if _, err := w.projects.GetProject(ctx, in.ProjectID); err != nil {
		return nil, err
	}

	return w.sessions.CreateSession(ctx, in)
}

// GetSession returns a session or ErrNotFound.
func (w *WorkspaceService) GetSession(ctx context.Context, id string) (*Session, error) {
	return w.sessions.GetSession(ctx, id)
}

// ListSessions lists sessions, optionally filtered by project.
func (w *WorkspaceService) ListSessions(ctx context.Context, opts ListOptions) ([]*Session, error) {
	return w.sessions.ListSessions(ctx, opts.Normalize())
}

// AppendMessage appends a message to an existing session.
func (w *WorkspaceService) AppendMessage(ctx context.Context, in NewMessage) (*SessionMessage, error) {
	if !in.Role.Valid() {
		return nil, InvalidArgument(fmt.Sprintf("unsupported role %q", in.Role))
	}

	if _, err := w.sessions.GetSession(ctx, in.SessionID); err != nil {
		return nil, err
	}

	return w.sessions.CreateMessage(ctx, in)
}

// ListMessages returns the messages of an existing session in creation order.
func (w *WorkspaceService) ListMessages(ctx context.Context, sessionID string) ([]*SessionMessage, error) {
	if _, err := w.sessions.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}

	return w.sessions.ListMessages(ctx, sessionID)
}
