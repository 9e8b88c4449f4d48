package repository

import (
	"context"

	"backend/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type ReportRepository interface {
	CreateReport(ctx context.Context, rep *models.UjiAksesReport) error
	GetReport(ctx context.Context, id int64) (*models.UjiAksesReport, error)
	ListReports(ctx context.Context) ([]models.UjiAksesReport, error)
	ListReportsByUser(ctx context.Context, userID int64) ([]models.UjiAksesReport, error)
}

type reportRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewReportRepository(db *sqlx.DB, log *zap.Logger) ReportRepository {
	return &reportRepository{db: db, log: log}
}

func (r *reportRepository) CreateReport(ctx context.Context, rep *models.UjiAksesReport) error {
	query := `INSERT INTO uji_akses_reports
	          (user_id, badan_publik_id, period, score, answers, status, notes, evidence_url)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id, created_at, updated_at`
	return r.db.QueryRowxContext(ctx, query,
		rep.UserID, rep.BadanPublikID, rep.Period, rep.Score, rep.Answers, rep.Status, rep.Notes, rep.EvidenceURL,
	).Scan(&rep.ID, &rep.CreatedAt, &rep.UpdatedAt)
}

func (r *reportRepository) GetReport(ctx context.Context, id int64) (*models.UjiAksesReport, error) {
	var rep models.UjiAksesReport
	query := `SELECT id, user_id, badan_publik_id, period, score, answers, status, notes, evidence_url, created_at, updated_at
	          FROM uji_akses_reports WHERE id = $1`
	if err := r.db.GetContext(ctx, &rep, query, id); err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *reportRepository) ListReports(ctx context.Context) ([]models.UjiAksesReport, error) {
	list := []models.UjiAksesReport{}
	query := `SELECT id, user_id, badan_publik_id, period, score, answers, status, notes, evidence_url, created_at, updated_at
	          FROM uji_akses_reports ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &list, query); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *reportRepository) ListReportsByUser(ctx context.Context, userID int64) ([]models.UjiAksesReport, error) {
	list := []models.UjiAksesReport{}
	query := `SELECT id, user_id, badan_publik_id, period, score, answers, status, notes, evidence_url, created_at, updated_at
	          FROM uji_akses_reports WHERE user_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &list, query, userID); err != nil {
		return nil, err
	}
	return list, nil
}
