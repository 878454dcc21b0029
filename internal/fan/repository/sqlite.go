package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/ventstock/internal/fan/dto"
	"github.com/fekuna/ventstock/internal/model"
	"github.com/fekuna/ventstock/pkg/database/sqlite"
	"github.com/jmoiron/sqlx"
)

type SQLiteRepository struct {
	DB *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

const fanColumns = `id, name, description, airflow, catalog_file_path, price_wholesale, price_retail, quantity, created_at, updated_at`

func (r *SQLiteRepository) Create(ctx context.Context, f *model.Fan) error {
	query := `
        INSERT INTO fans (name, description, airflow, catalog_file_path, price_wholesale, price_retail, quantity, created_at, updated_at)
        VALUES (:name, :description, :airflow, :catalog_file_path, :price_wholesale, :price_retail, :quantity, :created_at, :updated_at)
    `
	res, err := r.DB.NamedExecContext(ctx, query, f)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = id
	return nil
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id int64) (*model.Fan, error) {
	var f model.Fan
	query := `SELECT ` + fanColumns + ` FROM fans WHERE id = ? LIMIT 1`
	err := r.DB.GetContext(ctx, &f, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

func (r *SQLiteRepository) FindAll(ctx context.Context, f *dto.FanFilters) ([]model.Fan, error) {
	fans := []model.Fan{}

	query := `SELECT ` + fanColumns + ` FROM fans`
	args := []interface{}{}
	if f != nil && f.SearchQuery != "" {
		pattern := sqlite.LikePattern(f.SearchQuery)
		query += ` WHERE name LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\' OR airflow LIKE ? ESCAPE '\'`
		args = append(args, pattern, pattern, pattern)
	}
	query += ` ORDER BY name ASC, id ASC`

	err := r.DB.SelectContext(ctx, &fans, query, args...)
	return fans, err
}

func (r *SQLiteRepository) Update(ctx context.Context, f *model.Fan) (bool, error) {
	query := `
        UPDATE fans
        SET name = :name,
            description = :description,
            airflow = :airflow,
            catalog_file_path = :catalog_file_path,
            price_wholesale = :price_wholesale,
            price_retail = :price_retail,
            quantity = :quantity,
            updated_at = :updated_at
        WHERE id = :id
    `
	res, err := r.DB.NamedExecContext(ctx, query, f)
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
	_, err := r.DB.ExecContext(ctx, "DELETE FROM fans WHERE id = ?", id)
	return err
}

// AdjustQuantity returns (nil, nil) when the fan does not exist.
func (r *SQLiteRepository) AdjustQuantity(ctx context.Context, id int64, delta int, at time.Time) (*model.StockAdjustment, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var current int
	err = tx.GetContext(ctx, &current, `SELECT quantity FROM fans WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read quantity: %w", err)
	}

	next := current + delta
	if next < 0 {
		next = 0
	}

	_, err = tx.ExecContext(ctx, `UPDATE fans SET quantity = ?, updated_at = ? WHERE id = ?`, next, at, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update quantity: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &model.StockAdjustment{
		FanID:          id,
		QuantityChange: next - current,
		QuantityBefore: current,
		QuantityAfter:  next,
	}, nil
}
