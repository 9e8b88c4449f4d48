package repository

import (
	"context"

	"backend/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type BadanPublikRepository interface {
	CreateBadanPublik(ctx context.Context, bp *models.BadanPublik) error
	GetBadanPublik(ctx context.Context, id int64) (*models.BadanPublik, error)
	ListBadanPublik(ctx context.Context) ([]models.BadanPublik, error)
	ListBadanPublikByIDs(ctx context.Context, ids []int64) ([]models.BadanPublik, error)
	UpdateBadanPublik(ctx context.Context, bp *models.BadanPublik) error
	DeleteBadanPublik(ctx context.Context, id int64) error
}

type badanPublikRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewBadanPublikRepository(db *sqlx.DB, log *zap.Logger) BadanPublikRepository {
	return &badanPublikRepository{db: db, log: log}
}

func (r *badanPublikRepository) CreateBadanPublik(ctx context.Context, bp *models.BadanPublik) error {
	query := `INSERT INTO badan_publik (name, category, email, website, address)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at, updated_at`
	return r.db.QueryRowxContext(ctx, query, bp.Name, bp.Category, bp.Email, bp.Website, bp.Address).
		Scan(&bp.ID, &bp.CreatedAt, &bp.UpdatedAt)
}

func (r *badanPublikRepository) GetBadanPublik(ctx context.Context, id int64) (*models.BadanPublik, error) {
	var bp models.BadanPublik
	query := `SELECT id, name, category, email, website, address, created_at, updated_at
	          FROM badan_publik WHERE id = $1`
	if err := r.db.GetContext(ctx, &bp, query, id); err != nil {
		return nil, err
	}
	return &bp, nil
}

func (r *badanPublikRepository) ListBadanPublik(ctx context.Context) ([]models.BadanPublik, error) {
	list := []models.BadanPublik{}
	query := `SELECT id, name, category, email, website, address, created_at, updated_at
	          FROM badan_publik ORDER BY name`
	if err := r.db.SelectContext(ctx, &list, query); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *badanPublikRepository) ListBadanPublikByIDs(ctx context.Context, ids []int64) ([]models.BadanPublik, error) {
	if len(ids) == 0 {
		return []models.BadanPublik{}, nil
	}
	query, args, err := sqlx.In(`SELECT id, name, category, email, website, address, created_at, updated_at
	                             FROM badan_publik WHERE id IN (?) ORDER BY name`, ids)
	if err != nil {
		return nil, err
	}
	query = r.db.Rebind(query)

	list := []models.BadanPublik{}
	if err := r.db.SelectContext(ctx, &list, query, args...); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *badanPublikRepository) UpdateBadanPublik(ctx context.Context, bp *models.BadanPublik) error {
	query := `UPDATE badan_publik
	          SET name = $2, category = $3, email = $4, website = $5, address = $6, updated_at = now()
	          WHERE id = $1
	          RETURNING updated_at`
	return r.db.QueryRowxContext(ctx, query, bp.ID, bp.Name, bp.Category, bp.Email, bp.Website, bp.Address).
		Scan(&bp.UpdatedAt)
}

func (r *badanPublikRepository) DeleteBadanPublik(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM badan_publik WHERE id = $1`, id)
	return err
}
