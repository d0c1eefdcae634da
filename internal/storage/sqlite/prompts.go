package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/davidbz/llm-workflow/internal/domain"
)

const promptColumns = "id, COALESCE(project_id, ''), name, template, COALESCE(default_model, ''), tags, " +
	"COALESCE(latest_version_id, ''), created_at, updated_at"

// CreatePrompt inserts a prompt with version 1 of its template and points
// latest_version_id at it, in one transaction.
func (s *Store) CreatePrompt(ctx context.Context, in domain.NewPrompt) (*domain.Prompt, error) {
	now := s.now()
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	prompt := &domain.Prompt{
		ID:              newID(),
		ProjectID:       in.ProjectID,
		Name:            in.Name,
		Template:        in.Template,
		DefaultModel:    in.DefaultModel,
		Tags:            tags,
		LatestVersionID: newID(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	encodedTags, err := encodeJSON(tags)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO prompts (id, project_id, name, template, default_model, tags, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		prompt.ID, nullable(prompt.ProjectID), prompt.Name, prompt.Template, nullable(prompt.DefaultModel),
		encodedTags, formatTime(now), formatTime(now)); err != nil {
		return nil, fmt.Errorf("failed to insert prompt: %w", err)
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO prompt_versions (id, prompt_id, version_number, template, created_at)
		 VALUES (?, ?, 1, ?, ?)`,
		prompt.LatestVersionID, prompt.ID, prompt.Template, formatTime(now)); err != nil {
		return nil, fmt.Errorf("failed to insert prompt version: %w", err)
	}

	if _, err = tx.ExecContext(ctx,
		"UPDATE prompts SET latest_version_id = ? WHERE id = ?",
		prompt.LatestVersionID, prompt.ID); err != nil {
		return nil, fmt.Errorf("failed to update latest prompt version: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit prompt: %w", err)
	}

	return prompt, nil
}

// ListPrompts returns prompts newest first, optionally filtered by project.
func (s *Store) ListPrompts(ctx context.Context, opts domain.ListOptions) ([]*domain.Prompt, error) {
	opts = opts.Normalize()

	query := "SELECT " + promptColumns + " FROM prompts"
	args := make([]any, 0, 3)
	if opts.ProjectID != "" {
		query += " WHERE project_id = ?"
		args = append(args, opts.ProjectID)
	}
	query += " ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?"
	args = append(args, opts.Limit, opts.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}
	defer rows.Close()

	prompts := make([]*domain.Prompt, 0)
	for rows.Next() {
		prompt, scanErr := scanPrompt(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		prompts = append(prompts, prompt)
	}

	return prompts, rows.Err()
}

// GetPrompt returns a prompt or domain.ErrNotFound.
func (s *Store) GetPrompt(ctx context.Context, id string) (*domain.Prompt, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+promptColumns+" FROM prompts WHERE id = ?", id)

	prompt, err := scanPrompt(row)
	if err != nil {
		return nil, notFound(err, "prompt")
	}
	return prompt, nil
}

// ListPromptVersions returns the versions of a prompt, oldest first.
func (s *Store) ListPromptVersions(ctx context.Context, promptID string) ([]*domain.PromptVersion, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, prompt_id, version_number, template, created_at
		 FROM prompt_versions WHERE prompt_id = ? ORDER BY version_number`, promptID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompt versions: %w", err)
	}
	defer rows.Close()

	versions := make([]*domain.PromptVersion, 0)
	for rows.Next() {
		var (
			version   domain.PromptVersion
			createdAt string
		)
		if err = rows.Scan(&version.ID, &version.PromptID, &version.VersionNumber, &version.Template, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan prompt version: %w", err)
		}
		if version.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		versions = append(versions, &version)
	}

	return versions, rows.Err()
}

func scanPrompt(row rowScanner) (*domain.Prompt, error) {
	var (
		prompt               domain.Prompt
		tags                 string
		createdAt, updatedAt string
	)

	if err := row.Scan(&prompt.ID, &prompt.ProjectID, &prompt.Name, &prompt.Template, &prompt.DefaultModel,
		&tags, &prompt.LatestVersionID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(tags), &prompt.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode prompt tags: %w", err)
	}

	var err error
	if prompt.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if prompt.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return &prompt, nil
}
