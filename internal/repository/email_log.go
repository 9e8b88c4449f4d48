package repository

import (
	"context"

	"backend/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type EmailLogRepository interface {
	CreateEmailLog(ctx context.Context, e *models.EmailLog) error
	ListEmailLogsByBadanPublik(ctx context.Context, badanPublikID int64) ([]models.EmailLog, error)
}

type emailLogRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewEmailLogRepository(db *sqlx.DB, log *zap.Logger) EmailLogRepository {
	return &emailLogRepository{db: db, log: log}
}

func (r *emailLogRepository) CreateEmailLog(ctx context.Context, e *models.EmailLog) error {
	query := `INSERT INTO email_logs (user_id, badan_publik_id, subject, recipient, status, sent_at)
	          VALUES ($1, $2, $3, $4, $5, now())
	          RETURNING id, sent_at, created_at`
	return r.db.QueryRowxContext(ctx, query, e.UserID, e.BadanPublikID, e.Subject, e.Recipient, e.Status).
		Scan(&e.ID, &e.SentAt, &e.CreatedAt)
}

func (r *emailLogRepository) ListEmailLogsByBadanPublik(ctx context.Context, badanPublikID int64) ([]models.EmailLog, error) {
	list := []models.EmailLog{}
	query := `SELECT id, user_id, badan_publik_id, subject, recipient, status, sent_at, created_at
	          FROM email_logs WHERE badan_publik_id = $1 ORDER BY sent_at DESC`
	if err := r.db.SelectContext(ctx, &list, query, badanPublikID); err != nil {
		return nil, err
	}
	return list, nil
}
