package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/Jonp4208/cfa-eval-sub012/internal/domain"
	"github.com/redis/go-redis/v9"
)

const employeeCacheKey = "setup_sheet_employees"

// GetAllEmployees reads the employee directory. The roster is read-only
// reference data refreshed by the HR system, so it is served from a Redis
// read-through cache; a cache failure falls back to Postgres.
func (r *Repository) GetAllEmployees() ([]domain.Employee, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if r.rdb != nil {
		cached, err := r.rdb.Get(ctx, employeeCacheKey).Bytes()
		switch {
		case err == nil:
			employees := []domain.Employee{}
			if err := json.Unmarshal(cached, &employees); err == nil {
				return employees, nil
			}
			// unreadable cache entry, fall through to the database
		case errors.Is(err, redis.Nil):
		default:
			slog.Warn("employee cache read failed", "error", err)
		}
	}

	query := `
		SELECT id, name, shift_start, shift_end, area, day
		FROM employees
		ORDER BY name
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := []domain.Employee{}
	for rows.Next() {
		var employee domain.Employee
		var day sql.NullString

		dst := []any{
			&employee.ID,
			&employee.Name,
			&employee.ShiftStart,
			&employee.ShiftEnd,
			&employee.Area,
			&day,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		employee.Day = day.String
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if r.rdb != nil {
		if data, err := json.Marshal(employees); err == nil {
			ttl := time.Duration(r.cfg.Redis.EmployeeCacheTTL) * time.Second
			if err := r.rdb.Set(ctx, employeeCacheKey, data, ttl).Err(); err != nil {
				slog.Warn("employee cache write failed", "error", err)
			}
		}
	}

	return employees, nil
}

func (r *Repository) CreateEmployee(employee *domain.Employee) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO employees (id, name, shift_start, shift_end, area, day)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
	`

	params := []any{employee.ID, employee.Name, employee.ShiftStart, employee.ShiftEnd, employee.Area, employee.Day}
	if _, err := r.dbpool.ExecContext(ctx, query, params...); err != nil {
		return err
	}

	// keep the cache coherent with roster changes
	if r.rdb != nil {
		if err := r.rdb.Del(ctx, employeeCacheKey).Err(); err != nil {
			slog.Warn("employee cache invalidation failed", "error", err)
		}
	}

	return nil
}
