package repository

import (
	"context"

	"backend/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type ResetRepository interface {
	// ResetAll wipes all domain data in one transaction. Admin accounts
	// survive; everything else, including non-admin users and their
	// sessions, is removed. This is the only path that hard-deletes users.
	ResetAll(ctx context.Context) (*models.ResetCounts, error)
}

type resetRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewResetRepository(db *sqlx.DB, log *zap.Logger) ResetRepository {
	return &resetRepository{db: db, log: log}
}

func (r *resetRepository) ResetAll(ctx context.Context) (*models.ResetCounts, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	counts := &models.ResetCounts{}
	// Deletion order follows foreign keys: rows referencing users and
	// badan_publik go first.
	steps := []struct {
		dest  *int64
		query string
	}{
		{&counts.EmailLogs, `DELETE FROM email_logs`},
		{&counts.Reports, `DELETE FROM uji_akses_reports`},
		{&counts.Assignments, `DELETE FROM assignments`},
		{&counts.AssignmentHistory, `DELETE FROM assignment_history`},
		{&counts.Questions, `DELETE FROM uji_akses_questions`},
		{&counts.BadanPublik, `DELETE FROM badan_publik`},
		{&counts.Users, `DELETE FROM users WHERE role <> 'admin'`},
	}
	for _, step := range steps {
		res, err := tx.ExecContext(ctx, step.query)
		if err != nil {
			return nil, err
		}
		if *step.dest, err = res.RowsAffected(); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	r.log.Warn("Database reset executed",
		zap.Int64("users_deleted", counts.Users),
		zap.Int64("badan_publik_deleted", counts.BadanPublik))
	return counts, nil
}
