package sqlite

import (
	"context"
	"fmt"

	"github.com/davidbz/llm-workflow/internal/domain"
)

const projectColumns = "id, COALESCE(team_id, ''), name, COALESCE(description, ''), created_at"

// CreateProject inserts a project.
func (s *Store) CreateProject(ctx context.Context, in domain.NewProject) (*domain.Project, error) {
	project := &domain.Project{
		ID:          newID(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   s.now(),
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO projects (id, name, description, created_at) VALUES (?, ?, ?, ?)",
		project.ID, project.Name, nullable(project.Description), formatTime(project.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to insert project: %w", err)
	}

	return project, nil
}

// ListProjects returns projects newest first.
func (s *Store) ListProjects(ctx context.Context, opts domain.ListOptions) ([]*domain.Project, error) {
	opts = opts.Normalize()

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+projectColumns+" FROM projects ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?",
		opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]*domain.Project, 0)
	for rows.Next() {
		project, scanErr := scanProject(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

// GetProject returns a project or domain.ErrNotFound.
func (s *Store) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+projectColumns+" FROM projects WHERE id = ?", id)

	project, err := scanProject(row)
	if err != nil {
		return nil, notFound(err, "project")
	}
	return project, nil
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var (
		project   domain.Project
		createdAt string
	)

	if err := row.Scan(&project.ID, &project.TeamID, &project.Name, &project.Description, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if project.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}

	return &project, nil
}
