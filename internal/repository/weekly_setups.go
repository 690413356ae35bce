package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/Jonp4208/cfa-eval-sub012/internal/domain"
)

func (r *Repository) GetAllWeeklySetups() ([]*domain.WeeklySetup, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, name, start_date, end_date, week_schedule, uploaded_schedules, created_at, updated_at, version
		FROM weekly_setups
		ORDER BY start_date DESC, id
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	setups := []*domain.WeeklySetup{}
	for rows.Next() {
		setup, err := scanWeeklySetup(rows)
		if err != nil {
			return nil, err
		}
		setups = append(setups, setup)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return setups, nil
}

func scanWeeklySetup(rows *sql.Rows) (*domain.WeeklySetup, error) {
	var setup domain.WeeklySetup
	var scheduleJSON []byte
	var uploadsJSON []byte

	dst := []any{
		&setup.ID,
		&setup.Name,
		&setup.StartDate,
		&setup.EndDate,
		&scheduleJSON,
		&uploadsJSON,
		&setup.CreatedAt,
		&setup.UpdatedAt,
		&setup.Version,
	}
	if err := rows.Scan(dst...); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(scheduleJSON, &setup.WeekSchedule); err != nil {
		return nil, err
	}
	setup.WeekSchedule.Normalize()

	if len(uploadsJSON) > 0 {
		if err := json.Unmarshal(uploadsJSON, &setup.UploadedSchedules); err != nil {
			return nil, err
		}
	}

	return &setup, nil
}

func (r *Repository) CreateWeeklySetup(setup *domain.WeeklySetup) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	scheduleJSON, err := json.Marshal(setup.WeekSchedule)
	if err != nil {
		return err
	}
	uploadsJSON, err := json.Marshal(setup.UploadedSchedules)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO weekly_setups (name, start_date, end_date, week_schedule, uploaded_schedules)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at, version
	`

	params := []any{setup.Name, setup.StartDate, setup.EndDate, scheduleJSON, uploadsJSON}
	dst := []any{&setup.ID, &setup.CreatedAt, &setup.UpdatedAt, &setup.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetWeeklySetup(id int64) (*domain.WeeklySetup, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT name, start_date, end_date, week_schedule, uploaded_schedules, created_at, updated_at, version
		FROM weekly_setups
		WHERE id = $1
	`

	setup := &domain.WeeklySetup{
		ID: id,
	}
	var scheduleJSON []byte
	var uploadsJSON []byte

	dst := []any{
		&setup.Name,
		&setup.StartDate,
		&setup.EndDate,
		&scheduleJSON,
		&uploadsJSON,
		&setup.CreatedAt,
		&setup.UpdatedAt,
		&setup.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(scheduleJSON, &setup.WeekSchedule); err != nil {
		return nil, err
	}
	setup.WeekSchedule.Normalize()

	if len(uploadsJSON) > 0 {
		if err := json.Unmarshal(uploadsJSON, &setup.UploadedSchedules); err != nil {
			return nil, err
		}
	}

	return setup, nil
}

func (r *Repository) UpdateWeeklySetup(setup *domain.WeeklySetup) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	scheduleJSON, err := json.Marshal(setup.WeekSchedule)
	if err != nil {
		return err
	}
	uploadsJSON, err := json.Marshal(setup.UploadedSchedules)
	if err != nil {
		return err
	}

	query := `
		UPDATE weekly_setups
		SET
			name = $1,
			start_date = $2,
			end_date = $3,
			week_schedule = $4,
			uploaded_schedules = $5,
			updated_at = NOW(),
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING updated_at, version
	`

	params := []any{setup.Name, setup.StartDate, setup.EndDate, scheduleJSON, uploadsJSON, setup.ID, setup.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&setup.UpdatedAt, &setup.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrStaleWrite
		}
		return err
	}

	return nil
}

func (r *Repository) DeleteWeeklySetup(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		DELETE FROM weekly_setups WHERE id = $1
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
