package domain

import "context"

// ChatGateway sends a conversation upstream and normalizes the reply.
type ChatGateway interface {
	// Complete performs exactly one upstream call. Errors are *ProviderError.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResult, error)

	// Name returns the gateway identifier.
	Name() string
}

// EmbeddingGateway sends a batch of texts upstream and normalizes the vectors.
type EmbeddingGateway interface {
	// Embed performs at most one upstream call. Errors are *EmbeddingError.
	Embed(ctx context.Context, req *EmbeddingRequest) (*EmbeddingResult, error)
}

// ProjectStore persists projects.
type ProjectStore interface {
	CreateProject(ctx context.Context, in NewProject) (*Project, error)
	ListProjects(ctx context.Context, opts ListOptions) ([]*Project, error)
	GetProject(ctx context.Context, id string) (*Project, error)
}

// PromptStore persists prompts and their versions.
type PromptStore interface {
	CreatePrompt(ctx context.Context, in NewPrompt) (*Prompt, error)
	ListPrompts(ctx context.Context, opts ListOptions) ([]*Prompt, error)
	GetPrompt(ctx context.Context, id string) (*Prompt, error)
	ListPromptVersions(ctx context.Context, promptID string) ([]*PromptVersion, error)
}

// SessionStore persists sessions and their messages.
type SessionStore interface {
	CreateSession(ctx context.Context, in NewSession) (*Session, error)
	GetSession(ctx context.Context, id string) (*Session, error)
	ListSessions(ctx context.Context, opts ListOptions) ([]*Session, error)
	CreateMessage(ctx context.Context, in NewMessage) (*SessionMessage, error)
	ListMessages(ctx context.Context, sessionID string) ([]*SessionMessage, error)
	MarkMessageIndexed(ctx context.Context, id string) error
}

// UsageStore persists usage events.
type UsageStore interface {
	LogUsageEvent(ctx context.Context, in NewUsageEvent) (*UsageEvent, error)
}

// EmbeddingStore persists links between messages and indexed vectors.
type EmbeddingStore interface {
	RecordEmbedding(ctx context.Context, in NewEmbeddingRecord) (*EmbeddingRecord, error)
}

// EventPublisher publishes events for observability.
type EventPublisher interface {
	// Publish publishes an event with the given type and data.
	Publish(ctx context.Context, eventType string, data map[string]any)
}

// MessageIndexer makes a persisted message searchable.
type MessageIndexer interface {
	Index(ctx context.Context, msg *SessionMessage) error
}
