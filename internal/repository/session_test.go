package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMockSessionRepo(t *testing.T) (SessionRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSessionRepository(sqlx.NewDb(db, "postgres"), zap.NewNop()), mock
}

func TestRotate_WinnerUpdatesRow(t *testing.T) {
	repo, mock := newMockSessionRepo(t)

	sessionExp := time.Now().Add(5 * time.Minute)
	refreshExp := time.Now().Add(24 * time.Hour)
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE user_sessions`)).
		WithArgs("sess-1", "old-hash", "new-hash", sessionExp, refreshExp).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.Rotate(context.Background(), "sess-1", "old-hash", "new-hash", sessionExp, refreshExp)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRotate_StaleHashMatchesNothing(t *testing.T) {
	repo, mock := newMockSessionRepo(t)

	sessionExp := time.Now().Add(5 * time.Minute)
	refreshExp := time.Now().Add(24 * time.Hour)
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE user_sessions`)).
		WithArgs("sess-1", "already-rotated-hash", "new-hash", sessionExp, refreshExp).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.Rotate(context.Background(), "sess-1", "already-rotated-hash", "new-hash", sessionExp, refreshExp)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSessionByID_NotFound(t *testing.T) {
	repo, mock := newMockSessionRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, refresh_token_hash`)).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	session, err := repo.GetSessionByID(context.Background(), "missing")
	assert.Nil(t, session)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSessionByID_ScansRow(t *testing.T) {
	repo, mock := newMockSessionRepo(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "refresh_token_hash", "session_expires_at", "refresh_expires_at",
		"revoked", "user_agent", "ip_address", "last_activity_at", "created_at",
	}).AddRow("sess-1", int64(7), "hash", now.Add(5*time.Minute), now.Add(24*time.Hour),
		false, "curl/8.0", "10.0.0.1", now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, refresh_token_hash`)).
		WithArgs("sess-1").
		WillReturnRows(rows)

	session, err := repo.GetSessionByID(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", session.ID)
	assert.Equal(t, int64(7), session.UserID)
	assert.False(t, session.Revoked)
	assert.True(t, session.Usable(now))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRevokeSession(t *testing.T) {
	repo, mock := newMockSessionRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE user_sessions`)).
		WithArgs("sess-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.RevokeSession(context.Background(), "sess-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
