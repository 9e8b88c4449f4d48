package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMockResetRepo(t *testing.T) (ResetRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewResetRepository(sqlx.NewDb(db, "postgres"), zap.NewNop()), mock
}

func TestResetAll_DeletesEverythingButAdmins(t *testing.T) {
	repo, mock := newMockResetRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM email_logs`)).WillReturnResult(sqlmock.NewResult(0, 12))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM uji_akses_reports`)).WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM assignments`)).WillReturnResult(sqlmock.NewResult(0, 6))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM assignment_history`)).WillReturnResult(sqlmock.NewResult(0, 9))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM uji_akses_questions`)).WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM badan_publik`)).WillReturnResult(sqlmock.NewResult(0, 20))
	// Admin accounts are the only rows that survive a reset.
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE role <> 'admin'`)).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	counts, err := repo.ResetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), counts.EmailLogs)
	assert.Equal(t, int64(20), counts.BadanPublik)
	assert.Equal(t, int64(3), counts.Users)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResetAll_RollsBackOnFailure(t *testing.T) {
	repo, mock := newMockResetRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM email_logs`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM uji_akses_reports`)).WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	counts, err := repo.ResetAll(context.Background())
	assert.Nil(t, counts)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
