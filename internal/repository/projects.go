package repository

import (
	"context"
	"time"

	"github.com/zestotech/cost-estimator/backend/internal/domain"
)

func (r *Repository) GetProjectByID(id int64) (*domain.Project, error) {
	query := `
		SELECT name, description, status, start_date, end_date, customer_id, created_at, updated_at, version
		FROM projects WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	project := &domain.Project{
		ID: id,
	}

	dst := []any{&project.Name, &project.Description, &project.Status, &project.StartDate, &project.EndDate, &project.CustomerID, &project.CreatedAt, &project.UpdatedAt, &project.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return project, nil
}

func (r *Repository) GetAllProjects() ([]*domain.Project, error) {
	query := `
		SELECT id, name, description, status, start_date, end_date, customer_id, created_at, updated_at, version
		FROM projects ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]*domain.Project, 0)
	for rows.Next() {
		project := &domain.Project{}
		dst := []any{&project.ID, &project.Name, &project.Description, &project.Status, &project.StartDate, &project.EndDate, &project.CustomerID, &project.CreatedAt, &project.UpdatedAt, &project.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return projects, nil
}

func (r *Repository) CreateProject(project *domain.Project) error {
	query := `
		INSERT INTO projects (name, description, status, start_date, end_date, customer_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{project.Name, project.Description, project.Status, project.StartDate, project.EndDate, project.CustomerID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt, &project.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateProject(project *domain.Project) error {
	query := `
		UPDATE projects
		SET
			name = $1,
			description = $2,
			status = $3,
			start_date = $4,
			end_date = $5,
			customer_id = $6,
			updated_at = now(),
			version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING created_at, updated_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{project.Name, project.Description, project.Status, project.StartDate, project.EndDate, project.CustomerID, project.ID, project.Version}
	dst := []any{&project.CreatedAt, &project.UpdatedAt, &project.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteProject(id int64) error {
	query := `
		DELETE FROM projects WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
