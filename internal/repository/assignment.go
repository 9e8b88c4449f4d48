package repository

import (
	"context"

	"backend/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type AssignmentRepository interface {
	CreateAssignment(ctx context.Context, a *models.Assignment) error
	AssignmentExists(ctx context.Context, userID, badanPublikID int64) (bool, error)
	ListAssignments(ctx context.Context) ([]models.Assignment, error)
	ListAssignmentsByUser(ctx context.Context, userID int64) ([]models.Assignment, error)
	ListAssignmentHistory(ctx context.Context) ([]models.AssignmentHistory, error)
	RecordHistory(ctx context.Context, h *models.AssignmentHistory) error
}

type assignmentRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewAssignmentRepository(db *sqlx.DB, log *zap.Logger) AssignmentRepository {
	return &assignmentRepository{db: db, log: log}
}

func (r *assignmentRepository) CreateAssignment(ctx context.Context, a *models.Assignment) error {
	query := `INSERT INTO assignments (user_id, badan_publik_id, assigned_by)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (user_id, badan_publik_id) DO UPDATE SET assigned_by = EXCLUDED.assigned_by
	          RETURNING id, created_at`
	return r.db.QueryRowxContext(ctx, query, a.UserID, a.BadanPublikID, a.AssignedBy).
		Scan(&a.ID, &a.CreatedAt)
}

func (r *assignmentRepository) AssignmentExists(ctx context.Context, userID, badanPublikID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM assignments WHERE user_id = $1 AND badan_publik_id = $2)`
	if err := r.db.GetContext(ctx, &exists, query, userID, badanPublikID); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *assignmentRepository) ListAssignments(ctx context.Context) ([]models.Assignment, error) {
	list := []models.Assignment{}
	query := `SELECT id, user_id, badan_publik_id, assigned_by, created_at FROM assignments ORDER BY id`
	if err := r.db.SelectContext(ctx, &list, query); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *assignmentRepository) ListAssignmentsByUser(ctx context.Context, userID int64) ([]models.Assignment, error) {
	list := []models.Assignment{}
	query := `SELECT id, user_id, badan_publik_id, assigned_by, created_at
	          FROM assignments WHERE user_id = $1 ORDER BY id`
	if err := r.db.SelectContext(ctx, &list, query, userID); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *assignmentRepository) ListAssignmentHistory(ctx context.Context) ([]models.AssignmentHistory, error) {
	list := []models.AssignmentHistory{}
	query := `SELECT id, user_id, badan_publik_id, action, actor_id, created_at
	          FROM assignment_history ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &list, query); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *assignmentRepository) RecordHistory(ctx context.Context, h *models.AssignmentHistory) error {
	query := `INSERT INTO assignment_history (user_id, badan_publik_id, action, actor_id)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at`
	return r.db.QueryRowxContext(ctx, query, h.UserID, h.BadanPublikID, h.Action, h.ActorID).
		Scan(&h.ID, &h.CreatedAt)
}
