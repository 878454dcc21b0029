package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/ventstock/internal/flexible/dto"
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

const flexibleColumns = `id, description, diameter, collection, meter, created_at, updated_at`

func (r *SQLiteRepository) Create(ctx context.Context, f *model.Flexible) error {
	query := `
        INSERT INTO flexible (description, diameter, collection, meter, created_at, updated_at)
        VALUES (:description, :diameter, :collection, :meter, :created_at, :updated_at)
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

func (r *SQLiteRepository) FindByID(ctx context.Context, id int64) (*model.Flexible, error) {
	var f model.Flexible
	query := `SELECT ` + flexibleColumns + ` FROM flexible WHERE id = ? LIMIT 1`
	err := r.DB.GetContext(ctx, &f, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

func (r *SQLiteRepository) FindAll(ctx context.Context, f *dto.FlexibleFilters) ([]model.Flexible, error) {
	items := []model.Flexible{}

	query := `SELECT ` + flexibleColumns + ` FROM flexible`
	args := map[string]interface{}{}
	if f != nil && f.SearchQuery != "" {
		query += ` WHERE description LIKE :term ESCAPE '\' OR diameter LIKE :term ESCAPE '\' OR collection LIKE :term ESCAPE '\'`
		args["term"] = sqlite.LikePattern(f.SearchQuery)
	}
	query += ` ORDER BY id ASC`

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, err
}

func (r *SQLiteRepository) Update(ctx context.Context, f *model.Flexible) (bool, error) {
	query := `
        UPDATE flexible
        SET description = :description,
            diameter = :diameter,
            collection = :collection,
            meter = :meter,
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
	_, err := r.DB.ExecContext(ctx, "DELETE FROM flexible WHERE id = ?", id)
	return err
}
