package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fekuna/ventstock/internal/model"
	"github.com/fekuna/ventstock/internal/sheetmetal/dto"
	"github.com/fekuna/ventstock/pkg/database/sqlite"
	"github.com/jmoiron/sqlx"
)

type SQLiteRepository struct {
	DB *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

const sheetMetalColumns = `id, thickness, dimensions, measurement, cost, extra, created_at, updated_at`

var searchColumns = []string{"thickness", "dimensions", "measurement", "extra"}

func (r *SQLiteRepository) Create(ctx context.Context, s *model.SheetMetal) error {
	query := `
        INSERT INTO sheet_metal (thickness, dimensions, measurement, cost, extra, created_at, updated_at)
        VALUES (:thickness, :dimensions, :measurement, :cost, :extra, :created_at, :updated_at)
    `
	res, err := r.DB.NamedExecContext(ctx, query, s)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id int64) (*model.SheetMetal, error) {
	var s model.SheetMetal
	query := `SELECT ` + sheetMetalColumns + ` FROM sheet_metal WHERE id = ? LIMIT 1`
	err := r.DB.GetContext(ctx, &s, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SQLiteRepository) FindAll(ctx context.Context, f *dto.SheetMetalFilters) ([]model.SheetMetal, error) {
	items := []model.SheetMetal{}

	query := `SELECT ` + sheetMetalColumns + ` FROM sheet_metal`
	args := []interface{}{}
	if f != nil && f.SearchQuery != "" {
		pattern := sqlite.LikePattern(f.SearchQuery)
		conditions := make([]string, 0, len(searchColumns))
		for _, col := range searchColumns {
			conditions = append(conditions, col+` LIKE ? ESCAPE '\'`)
			args = append(args, pattern)
		}
		query += " WHERE " + strings.Join(conditions, " OR ")
	}
	query += ` ORDER BY id ASC`

	err := r.DB.SelectContext(ctx, &items, query, args...)
	return items, err
}

func (r *SQLiteRepository) Update(ctx context.Context, s *model.SheetMetal) (bool, error) {
	query := `
        UPDATE sheet_metal
        SET thickness = :thickness,
            dimensions = :dimensions,
            measurement = :measurement,
            cost = :cost,
            extra = :extra,
            updated_at = :updated_at
        WHERE id = :id
    `
	res, err := r.DB.NamedExecContext(ctx, query, s)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM sheet_metal WHERE id = ?", id)
	return err
}
