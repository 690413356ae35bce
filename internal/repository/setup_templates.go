package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/Jonp4208/cfa-eval-sub012/internal/domain"
)

func (r *Repository) GetAllSetupTemplates() ([]*domain.SetupTemplate, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, name, week_schedule, created_at, updated_at, version
		FROM setup_sheet_templates
		ORDER BY id
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := []*domain.SetupTemplate{}
	for rows.Next() {
		var template domain.SetupTemplate
		var scheduleJSON []byte

		dst := []any{
			&template.ID,
			&template.Name,
			&scheduleJSON,
			&template.CreatedAt,
			&template.UpdatedAt,
			&template.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(scheduleJSON, &template.WeekSchedule); err != nil {
			return nil, err
		}
		template.WeekSchedule.Normalize()
		templates = append(templates, &template)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return templates, nil
}

func (r *Repository) CreateSetupTemplate(template *domain.SetupTemplate) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	scheduleJSON, err := json.Marshal(template.WeekSchedule)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO setup_sheet_templates (name, week_schedule)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at, version
	`

	dst := []any{&template.ID, &template.CreatedAt, &template.UpdatedAt, &template.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, template.Name, scheduleJSON).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetSetupTemplate(id int64) (*domain.SetupTemplate, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT name, week_schedule, created_at, updated_at, version
		FROM setup_sheet_templates
		WHERE id = $1
	`

	template := &domain.SetupTemplate{
		ID: id,
	}
	var scheduleJSON []byte

	dst := []any{
		&template.Name,
		&scheduleJSON,
		&template.CreatedAt,
		&template.UpdatedAt,
		&template.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(scheduleJSON, &template.WeekSchedule); err != nil {
		return nil, err
	}
	template.WeekSchedule.Normalize()

	return template, nil
}

func (r *Repository) UpdateSetupTemplate(template *domain.SetupTemplate) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	scheduleJSON, err := json.Marshal(template.WeekSchedule)
	if err != nil {
		return err
	}

	query := `
		UPDATE setup_sheet_templates
		SET
			name = $1,
			week_schedule = $2,
			updated_at = NOW(),
			version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING updated_at, version
	`

	params := []any{template.Name, scheduleJSON, template.ID, template.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&template.UpdatedAt, &template.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrStaleWrite
		}
		return err
	}

	return nil
}

func (r *Repository) DeleteSetupTemplate(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		DELETE FROM setup_sheet_templates WHERE id = $1
	`

	result, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
