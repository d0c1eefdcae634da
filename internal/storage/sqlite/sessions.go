package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/davidbz/llm-workflow/internal/domain"
)

const (
	sessionColumns = "id, COALESCE(project_id, ''), title, tags, metadata, created_at, updated_at"
	messageColumns = "id, COALESCE(session_id, ''), role, COALESCE(prompt_id, ''), content, COALESCE(model, ''), " +
		"tokens_prompt, tokens_response, cost_usd, embed_indexed, created_at"
)

// CreateSession inserts a session with empty tags and metadata.
func (s *Store) CreateSession(ctx context.Context, in domain.NewSession) (*domain.Session, error) {
	now := s.now()
	session := &domain.Session{
		ID:        newID(),
		ProjectID: in.ProjectID,
		Title:     in.Title,
		Tags:      []string{},
		Metadata:  map[string]any{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, project_id, title, tags, metadata, created_at, updated_at)
		 VALUES (?, ?, ?, '[]', '{}', ?, ?)`,
		session.ID, nullable(session.ProjectID), session.Title, formatTime(now), formatTime(now))
	if err != nil {
		return nil, fmt.Errorf("failed to insert session: %w", err)
	}

	return session, nil
}

// GetSession returns a session or domain.ErrNotFound.
func (s *Store) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+sessionColumns+" FROM sessions WHERE id = ?", id)

	session, err := scanSession(row)
	if err != nil {
		return nil, notFound(err, "session")
	}
	return session, nil
}

// ListSessions returns sessions newest first, optionally filtered by project.
func (s *Store) ListSessions(ctx context.Context, opts domain.ListOptions) ([]*domain.Session, error) {
	opts = opts.Normalize()

	query := "SELECT " + sessionColumns + " FROM sessions"
	args := make([]any, 0, 3)
	if opts.ProjectID != "" {
		query += " WHERE project_id = ?"
		args = append(args, opts.ProjectID)
	}
	query += " ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?"
	args = append(args, opts.Limit, opts.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]*domain.Session, 0)
	for rows.Next() {
		session, scanErr := scanSession(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}

// CreateMessage inserts a message. An empty SessionID stores NULL.
func (s *Store) CreateMessage(ctx context.Context, in domain.NewMessage) (*domain.SessionMessage, error) {
	msg := &domain.SessionMessage{
		ID:             newID(),
		SessionID:      in.SessionID,
		Role:           in.Role,
		PromptID:       in.PromptID,
		Content:        in.Content,
		Model:          in.Model,
		TokensPrompt:   in.TokensPrompt,
		TokensResponse: in.TokensResponse,
		CostUSD:        in.CostUSD,
		CreatedAt:      s.now(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session_messages
		 (id, session_id, role, prompt_id, content, model, tokens_prompt, tokens_response, cost_usd, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		msg.ID, nullable(msg.SessionID), string(msg.Role), nullable(msg.PromptID), msg.Content,
		nullable(msg.Model), msg.TokensPrompt, msg.TokensResponse, msg.CostUSD, formatTime(msg.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to insert session message: %w", err)
	}

	return msg, nil
}

// ListMessages returns the messages of a session in creation order.
func (s *Store) ListMessages(ctx context.Context, sessionID string) ([]*domain.SessionMessage, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+messageColumns+" FROM session_messages WHERE session_id = ? ORDER BY created_at, rowid",
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list session messages: %w", err)
	}
	defer rows.Close()

	messages := make([]*domain.SessionMessage, 0)
	for rows.Next() {
		msg, scanErr := scanMessage(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}

// MarkMessageIndexed flags a message as present in the vector index.
func (s *Store) MarkMessageIndexed(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "UPDATE session_messages SET embed_indexed = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to mark message indexed: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to mark message indexed: %w", err)
	}
	if affected == 0 {
		return domain.NotFound("session message")
	}

	return nil
}

func scanSession(row rowScanner) (*domain.Session, error) {
	var (
		session              domain.Session
		tags, metadata       string
		createdAt, updatedAt string
	)

	if err := row.Scan(&session.ID, &session.ProjectID, &session.Title, &tags, &metadata,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(tags), &session.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode session tags: %w", err)
	}
	if err := json.Unmarshal([]byte(metadata), &session.Metadata); err != nil {
		return nil, fmt.Errorf("failed to decode session metadata: %w", err)
	}

	var err error
	if session.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if session.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return &session, nil
}

func scanMessage(row rowScanner) (*domain.SessionMessage, error) {
	var (
		msg       domain.SessionMessage
		role      string
		createdAt string
	)

	if err := row.Scan(&msg.ID, &msg.SessionID, &role, &msg.PromptID, &msg.Content, &msg.Model,
		&msg.TokensPrompt, &msg.TokensResponse, &msg.CostUSD, &msg.EmbedIndexed, &createdAt); err != nil {
		return nil, fmt.Errorf("failed to scan session message: %w", err)
	}
	msg.Role = domain.Role(role)

	var err error
	if msg.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}

	return &msg, nil
}
