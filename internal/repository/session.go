package repository

import (
	"context"
	"time"

	"backend/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type SessionRepository interface {
	CreateSession(ctx context.Context, session *models.Session) error
	GetSessionByID(ctx context.Context, id string) (*models.Session, error)
	// Rotate replaces the refresh hash and pushes both expiries forward,
	// but only if the stored hash still equals oldHash. Returns false when
	// another request rotated (or revoked) the session first.
	Rotate(ctx context.Context, id, oldHash, newHash string, sessionExpiresAt, refreshExpiresAt time.Time) (bool, error)
	RevokeSession(ctx context.Context, id string) error
	ExtendSession(ctx context.Context, id string, sessionExpiresAt time.Time) error
}

type sessionRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewSessionRepository(db *sqlx.DB, log *zap.Logger) SessionRepository {
	return &sessionRepository{db: db, log: log}
}

func (r *sessionRepository) CreateSession(ctx context.Context, session *models.Session) error {
	query := `INSERT INTO user_sessions
	          (id, user_id, refresh_token_hash, session_expires_at, refresh_expires_at, user_agent, ip_address, last_activity_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING created_at`
	return r.db.QueryRowxContext(ctx, query,
		session.ID, session.UserID, session.RefreshTokenHash,
		session.SessionExpiresAt, session.RefreshExpiresAt,
		session.UserAgent, session.IPAddress, session.LastActivityAt,
	).Scan(&session.CreatedAt)
}

func (r *sessionRepository) GetSessionByID(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	query := `SELECT id, user_id, refresh_token_hash, session_expires_at, refresh_expires_at,
	                 revoked, user_agent, ip_address, last_activity_at, created_at
	          FROM user_sessions WHERE id = $1`
	if err := r.db.GetContext(ctx, &session, query, id); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Rotate(ctx context.Context, id, oldHash, newHash string, sessionExpiresAt, refreshExpiresAt time.Time) (bool, error) {
	query := `UPDATE user_sessions
	          SET refresh_token_hash = $3,
	              session_expires_at = $4,
	              refresh_expires_at = $5,
	              last_activity_at = now()
	          WHERE id = $1 AND refresh_token_hash = $2 AND revoked = false`
	res, err := r.db.ExecContext(ctx, query, id, oldHash, newHash, sessionExpiresAt, refreshExpiresAt)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *sessionRepository) RevokeSession(ctx context.Context, id string) error {
	// Expiries are forced into the past so the row is dead on every path.
	query := `UPDATE user_sessions
	          SET revoked = true, session_expires_at = now(), refresh_expires_at = now()
	          WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *sessionRepository) ExtendSession(ctx context.Context, id string, sessionExpiresAt time.Time) error {
	query := `UPDATE user_sessions
	          SET session_expires_at = $2, last_activity_at = now()
	          WHERE id = $1 AND revoked = false`
	_, err := r.db.ExecContext(ctx, query, id, sessionExpiresAt)
	return err
}
